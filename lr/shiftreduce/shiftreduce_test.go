package shiftreduce

import (
	"strconv"
	"testing"

	"github.com/npillmayer/cfgkit/lr"
	"github.com/npillmayer/cfgkit/lr/derivation"
	"github.com/npillmayer/cfgkit/lr/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func makeGrammar(t *testing.T) *lr.Grammar {
	b := lr.NewGrammarBuilder("Arithmetic")
	b.LHS("E").N("E").T("+", '+').N("T").Action("add", add).End()
	b.LHS("E").N("E").T("-", '-').N("T").Action("sub", sub).End()
	b.LHS("E").N("T").Action("id", first).End()
	b.LHS("T").N("T").T("*", '*').N("F").Action("mul", mul).End()
	b.LHS("T").N("F").Action("id", first).End()
	b.LHS("F").T("(", '(').N("E").T(")", ')').Action("paren", second).End()
	b.LHS("F").T("num", scanner.Int).Action("num", num).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g.Augment()
}

func first(args []interface{}) interface{}  { return args[0] }
func second(args []interface{}) interface{} { return args[1] }
func add(args []interface{}) interface{}    { return args[0].(int) + args[2].(int) }
func sub(args []interface{}) interface{}    { return args[0].(int) - args[2].(int) }
func mul(args []interface{}) interface{}    { return args[0].(int) * args[2].(int) }
func num(args []interface{}) interface{} {
	n, _ := strconv.Atoi(args[0].(string))
	return n
}

var flavours = []struct {
	name                string
	useLookahead, merge bool
}{
	{"SLR(1)", false, false},
	{"LR(1)", true, false},
	{"LALR(1)", true, true},
}

func makeParser(t *testing.T, useLookahead, merge bool, opts ...Option) *Parser {
	lrgen := lr.NewTableGenerator(lr.Analysis(makeGrammar(t)))
	if err := lrgen.CreateTables(useLookahead, merge); err != nil {
		t.Fatal(err)
	}
	return NewParser(lrgen, opts...)
}

func TestParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.lr")
	defer teardown()
	//
	inputs := map[string]int{
		"7":        7,
		"8-2-1":    5,
		"1+2*3":    7,
		"2*(3+4)":  14,
		"10-(4-3)": 9,
	}
	for _, f := range flavours {
		p := makeParser(t, f.useLookahead, f.merge)
		for input, value := range inputs {
			info := p.Parse(input, scanner.NewGoLexer(input))
			if !info.Accepted() {
				t.Errorf("%s: expected %q to be accepted", f.name, input)
				continue
			}
			if len(info.Lexemes) == 0 {
				t.Errorf("%s: expected lexemes to be collected", f.name)
			}
			v, ok := derivation.RunActions(info, 0)
			if !ok || v != value {
				t.Errorf("%s: expected %q to evaluate to %d, is %v", f.name, input, value, v)
			}
		}
	}
}

func TestReject(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.lr")
	defer teardown()
	//
	for _, f := range flavours {
		p := makeParser(t, f.useLookahead, f.merge)
		for _, input := range []string{"", "1+", "(1", "1 2", "1+*2", "1 # 2", "1 /* open"} {
			info := p.Parse(input, scanner.NewGoLexer(input))
			if info.Accepted() {
				t.Errorf("%s: expected %q to be rejected", f.name, input)
			}
		}
	}
}

func TestObserver(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.lr")
	defer teardown()
	//
	var steps []Step
	p := makeParser(t, true, true, Observe(func(s Step) {
		steps = append(steps, s)
	}))
	p.Parse("1*2", scanner.NewGoLexer("1*2"))
	shifts, reduces := 0, 0
	for _, s := range steps {
		switch s.Action {
		case Shift:
			shifts++
		case Reduce:
			reduces++
		}
	}
	if shifts != 3 {
		t.Errorf("expected 3 shifts, have %d", shifts)
	}
	// F ➞ num, T ➞ F, F ➞ num, T ➞ T * F, E ➞ T
	if reduces != 5 {
		t.Errorf("expected 5 reductions, have %d", reduces)
	}
	if last := steps[len(steps)-1]; last.Action != Accept {
		t.Errorf("expected last step to accept, is %v", last)
	}
}

func TestParserWithoutTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.lr")
	defer teardown()
	//
	lrgen := lr.NewTableGenerator(lr.Analysis(makeGrammar(t)))
	p := NewParser(lrgen)
	if p.Parse("1", scanner.NewGoLexer("1")).Accepted() {
		t.Errorf("expected parser without tables to reject input")
	}
}

func TestAugmentedTwice(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.lr")
	defer teardown()
	//
	g := makeGrammar(t).Augment()
	if !g.IsAugmented() {
		t.Fatalf("expected grammar to be augmented")
	}
	for _, f := range flavours {
		lrgen := lr.NewTableGenerator(lr.Analysis(g))
		if err := lrgen.CreateTables(f.useLookahead, f.merge); err != nil {
			t.Fatalf("%s: %v", f.name, err)
		}
		p := NewParser(lrgen)
		info := p.Parse("2*(3+4)", scanner.NewGoLexer("2*(3+4)"))
		if v, ok := derivation.RunActions(info, 0); !ok || v != 14 {
			t.Errorf("%s: expected 14, is %v", f.name, v)
		}
		if p.Parse("1+", scanner.NewGoLexer("1+")).Accepted() {
			t.Errorf("%s: expected '1+' to be rejected", f.name)
		}
	}
}

func TestEmptyInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.lr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Optional")
	b.LHS("S").N("A").End()
	b.LHS("A").T("a", scanner.Ident).End()
	b.LHS("A").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	g = g.Augment()
	for _, f := range flavours {
		lrgen := lr.NewTableGenerator(lr.Analysis(g))
		if err := lrgen.CreateTables(f.useLookahead, f.merge); err != nil {
			t.Fatalf("%s: %v", f.name, err)
		}
		info := NewParser(lrgen).Parse("", scanner.NewGoLexer(""))
		if !info.Accepted() || len(info.Lexemes) != 0 {
			t.Errorf("%s: expected empty input to be accepted without lexemes", f.name)
			continue
		}
		n := info.Derivations[0]
		for len(n.Children) > 0 {
			n = n.Children[0]
		}
		if !n.Rule.IsEpsilon() {
			t.Errorf("%s: expected derivation to contain A ➞ ε", f.name)
		}
	}
}
