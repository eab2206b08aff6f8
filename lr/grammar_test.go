package lr

import (
	"strings"
	"testing"

	"github.com/npillmayer/cfgkit"
	"github.com/npillmayer/cfgkit/lr/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// makeExprGrammar creates the classic expression grammar
//
//     E ➞ E + T | T
//     T ➞ T * F | F
//     F ➞ ( E ) | id
//
func makeExprGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Expr")
	b.LHS("E").N("E").T("+", '+').N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").N("T").T("*", '*').N("F").End()
	b.LHS("T").N("F").End()
	b.LHS("F").T("(", '(').N("E").T(")", ')').End()
	b.LHS("F").T("id", scanner.Ident).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestGrammarBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").T("a", 1).End()
	b.LHS("A").N("B").N("D").End()
	b.LHS("B").T("b", 2).End()
	b.LHS("B").Epsilon()
	b.LHS("D").T("d", 3).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	g.Dump()
	if g.InitialSymbol() != "S" {
		t.Errorf("expected initial symbol to be S, is %s", g.InitialSymbol())
	}
	if g.Size() != 5 {
		t.Errorf("expected grammar to have 5 productions, has %d", g.Size())
	}
	for i := 0; i < g.Size(); i++ {
		if g.Production(i).Serial() != i {
			t.Errorf("expected production #%d to have serial %d", i, i)
		}
	}
	bs := g.Productions("B")
	if len(bs) != 2 || !bs[0].IsEpsilon() {
		t.Errorf("expected B ➞ ε to be ordered first, have %v", bs)
	}
	if len(g.Terminals()) != 3 || len(g.NonTerminals()) != 4 {
		t.Errorf("expected 3 terminals and 4 non-terminals, have %v and %v",
			g.Terminals(), g.NonTerminals())
	}
	if g.TokenName(2) != "b" {
		t.Errorf("expected token 2 to be named 'b', is %q", g.TokenName(2))
	}
	if _, err := b.Grammar(); err == nil {
		t.Errorf("expected builder to refuse a second call to Grammar()")
	}
}

func TestGrammarUndeclaredSymbols(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.NonTerminal("S").Terminal("a", 1)
	if _, ok := b.AddRule("S", []Symbol{NonTerminal("X")}, "", nil); ok {
		t.Errorf("expected rule with undeclared RHS symbol to be rejected")
	}
	if _, ok := b.AddRule("Y", []Symbol{Terminal(1)}, "", nil); ok {
		t.Errorf("expected rule with undeclared LHS to be rejected")
	}
	if _, ok := b.AddRule("S", []Symbol{Terminal(1)}, "", nil); !ok {
		t.Errorf("expected rule with declared symbols to be accepted")
	}
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if g.Size() != 1 {
		t.Errorf("expected 1 production, have %d", g.Size())
	}
}

func TestGrammarDuplicateRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	p1 := b.LHS("S").T("a", 1).End()
	p2 := b.LHS("S").T("a", 1).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if p1 != p2 {
		t.Errorf("expected duplicate rule to return the existing production")
	}
	if g.Size() != 1 {
		t.Errorf("expected 1 production, have %d", g.Size())
	}
}

func TestGrammarReservedToken(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").T("eof", cfgkit.EndOfInput).End()
	if _, err := b.Grammar(); err == nil {
		t.Errorf("expected reserved token value to be rejected")
	}
}

func TestGrammarUnnamedAction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").T("a", 1).Action("", func(args []interface{}) interface{} { return args[0] }).End()
	if _, err := b.Grammar(); err == nil || !strings.Contains(err.Error(), "no name") {
		t.Errorf("expected unnamed action to be rejected, have %v", err)
	}
	b = NewGrammarBuilder("G")
	b.LHS("S").T("a", 1).Action("", nil).End()
	if _, err := b.Grammar(); err != nil {
		t.Errorf("expected rule without action to be accepted, have %v", err)
	}
}

func TestSymbolOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.lr")
	defer teardown()
	//
	if compareSymbols(Terminal(100), NonTerminal("A")) >= 0 {
		t.Errorf("expected terminals to be ordered before non-terminals")
	}
	if Terminal(7) != Terminal(7) || Terminal(7) == NonTerminal("7") {
		t.Errorf("symbol equality broken")
	}
	g := makeExprGrammar(t)
	p := g.Productions("F")[1]
	if s := g.ProductionString(p); s != "F ➞ id" {
		t.Errorf("expected production string 'F ➞ id', is %q", s)
	}
}
