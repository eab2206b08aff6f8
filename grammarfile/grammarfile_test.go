package grammarfile

import (
	"bytes"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/npillmayer/cfgkit/lr"
	"github.com/npillmayer/cfgkit/lr/derivation"
	"github.com/npillmayer/cfgkit/lr/scanner/lexmach"
	"github.com/npillmayer/cfgkit/workbench"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var tokens = []lexmach.TokenDef{
	{ID: 1, Name: "id", Pattern: `[a-z]+`},
	{ID: 2, Name: "+", Pattern: `\+`},
	{Name: "ws", Pattern: `( |\t|\n)+`, Skip: true},
}

func makeGrammar(t *testing.T) *lr.Grammar {
	b := lr.NewGrammarBuilder("Sum")
	b.LHS("E").N("E").T("+", 2).T("id", 1).Action("add", join).End()
	b.LHS("E").T("id", 1).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func join(args []interface{}) interface{} {
	return args
}

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.lr")
	defer teardown()
	//
	g := makeGrammar(t)
	f := &File{Tokens: tokens, Grammars: []*lr.Grammar{g, g.RemoveLeftRecursion().Augment()}}
	var buf bytes.Buffer
	if err := Encode(&buf, f); err != nil {
		t.Fatal(err)
	}
	t.Logf("%s", buf.String())
	registry := lr.NewActionRegistry().Register("add", join)
	h, err := Decode(&buf, registry)
	if err != nil {
		t.Fatal(err)
	}
	if len(h.Tokens) != 3 || len(h.Grammars) != 2 {
		t.Fatalf("expected 3 tokens and 2 grammars, have %d and %d", len(h.Tokens), len(h.Grammars))
	}
	for i, g := range f.Grammars {
		hg := h.Grammar(g.Name)
		if hg == nil {
			t.Errorf("grammar %q not found", g.Name)
			continue
		}
		if hg != h.Grammars[i] || hg.Size() != g.Size() {
			t.Errorf("grammar %q not restored in place", g.Name)
		}
		if hg.Automaton() == nil {
			t.Errorf("expected grammar %q to receive the shared automaton", g.Name)
		}
	}
	lexer, err := h.Grammars[0].Automaton().Lexer("a + b")
	if err != nil {
		t.Fatal(err)
	}
	tok, _ := lexer.NextToken(0)
	if tok.TokType() != 1 || tok.Lexeme() != "a" {
		t.Errorf("expected first token to be id 'a', is %v %q", tok.TokType(), tok.Lexeme())
	}
}

func TestDecodeErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.lr")
	defer teardown()
	//
	inputs := []string{
		`{"grammars": [`,
		`{"tokens": [{"id": 1, "name": "x", "pattern": "("}], "grammars": []}`,
		`{"grammars": [{"name": "G", "initialSymbol": "S", "terminalSymbols": [1],
		  "nonTerminalSymbols": ["S"], "productions": [["S", [{"RHS": [1], "callback": "add"}]]]}]}`,
	}
	for i, input := range inputs {
		if _, err := Decode(strings.NewReader(input), nil); err == nil {
			t.Errorf("expected input #%d to be rejected", i)
		}
	}
}

func TestFiles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.lr")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "sum.json")
	if err := WriteFile(path, &File{Tokens: tokens, Grammars: []*lr.Grammar{makeGrammar(t)}}); err != nil {
		t.Fatal(err)
	}
	f, err := ReadFile(path, lr.NewActionRegistry().Register("add", join))
	if err != nil {
		t.Fatal(err)
	}
	if f.Grammar("Sum") == nil {
		t.Errorf("expected grammar Sum to be read back")
	}
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"), nil); err == nil {
		t.Errorf("expected missing file to produce an error")
	}
}

// --- Restored grammars accept the same language ----------------------------

func arithTokens() []lexmach.TokenDef {
	ids := map[string]int{"+": 2, "-": 3, "*": 4, "(": 5, ")": 6}
	defs := []lexmach.TokenDef{
		{ID: 1, Name: "num", Pattern: `[0-9]+`},
		{Name: "ws", Pattern: `( |\t)+`, Skip: true},
	}
	return append(defs, lexmach.Literals([]string{"+", "-", "*", "(", ")"}, ids)...)
}

func arithActions() *lr.ActionRegistry {
	return lr.NewActionRegistry().
		Register("add", func(args []interface{}) interface{} { return args[0].(int) + args[2].(int) }).
		Register("sub", func(args []interface{}) interface{} { return args[0].(int) - args[2].(int) }).
		Register("mul", func(args []interface{}) interface{} { return args[0].(int) * args[2].(int) }).
		Register("id", func(args []interface{}) interface{} { return args[0] }).
		Register("paren", func(args []interface{}) interface{} { return args[1] }).
		Register("num", func(args []interface{}) interface{} {
			n, _ := strconv.Atoi(args[0].(string))
			return n
		})
}

func makeArithGrammar(t *testing.T, actions *lr.ActionRegistry) *lr.Grammar {
	act := func(name string) lr.Action {
		a, _ := actions.Lookup(name)
		return a
	}
	b := lr.NewGrammarBuilder("Arithmetic")
	b.LHS("E").N("E").T("+", 2).N("T").Action("add", act("add")).End()
	b.LHS("E").N("E").T("-", 3).N("T").Action("sub", act("sub")).End()
	b.LHS("E").N("T").Action("id", act("id")).End()
	b.LHS("T").N("T").T("*", 4).N("F").Action("mul", act("mul")).End()
	b.LHS("T").N("F").Action("id", act("id")).End()
	b.LHS("F").T("(", 5).N("E").T(")", 6).Action("paren", act("paren")).End()
	b.LHS("F").T("num", 1).Action("num", act("num")).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

type outcome struct {
	accepted bool
	value    interface{}
}

// parseAll parses input with every strategy a grammar file entry supports:
// LL(1) for the grammar without left recursion, LR for the augmented one and
// Earley for the original.
func parseAll(t *testing.T, f *File, input string) map[string]outcome {
	results := make(map[string]outcome)
	note := func(name string, info *derivation.ParseInfo, err error) {
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		v, _ := workbench.RunActions(info, 0)
		results[name] = outcome{info.Accepted(), v}
	}
	orig, ll, aug := workbench.New(f.Grammars[0]), workbench.New(f.Grammars[1]), workbench.New(f.Grammars[2])
	info, err := ll.ParseLL1(input, nil)
	note("LL(1)", info, err)
	info, err = aug.ParseLR(input, false, false, nil)
	note("SLR", info, err)
	info, err = aug.ParseLR(input, true, false, nil)
	note("LR(1)", info, err)
	info, err = aug.ParseLR(input, true, true, nil)
	note("LALR", info, err)
	info, err = orig.ParseEarley(input, nil)
	note("Earley", info, err)
	return results
}

func TestRoundTripAcceptsSameLanguage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.lr")
	defer teardown()
	//
	actions := arithActions()
	g := makeArithGrammar(t, actions)
	a, err := lexmach.Compile(arithTokens())
	if err != nil {
		t.Fatal(err)
	}
	f := &File{
		Tokens: arithTokens(),
		Grammars: []*lr.Grammar{
			g.WithAutomaton(a),
			g.RemoveLeftRecursion().WithAutomaton(a),
			g.Augment().WithAutomaton(a),
		},
	}
	var buf bytes.Buffer
	if err := Encode(&buf, f); err != nil {
		t.Fatal(err)
	}
	h, err := Decode(&buf, actions)
	if err != nil {
		t.Fatal(err)
	}
	inputs := []string{"42", "8 - 2 - 1", "1 + 2 * 3", "2 * (3 + 4)", "10-(4-3)*2",
		"", "1 +", "(1", "1 2", "1 + * 2", "1 % 2"}
	for _, input := range inputs {
		want, have := parseAll(t, f, input), parseAll(t, h, input)
		for strategy, w := range want {
			if have[strategy] != w {
				t.Errorf("%s on %q: original gives %v, restored gives %v", strategy, input, w, have[strategy])
			}
		}
		if input == "42" && !have["LALR"].accepted {
			t.Errorf("expected restored grammar to accept %q", input)
		}
	}
}
