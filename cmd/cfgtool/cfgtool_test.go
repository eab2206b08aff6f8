package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/cfgkit/grammarfile"
	"github.com/npillmayer/cfgkit/lr"
	"github.com/npillmayer/cfgkit/lr/scanner"
	"github.com/npillmayer/cfgkit/workbench"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestExpressionGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.cli")
	defer teardown()
	//
	g, err := ExpressionGrammar()
	if err != nil {
		t.Fatal(err)
	}
	s := newSession(g)
	inputs := map[string]interface{}{
		"1 + 2 * 3":    7,
		"(8 - 2) / 3":  2,
		"100 - 10 - 1": 89,
	}
	for _, strategy := range strategies {
		for input, value := range inputs {
			info, _, err := s.parse(strategy, input)
			if err != nil {
				t.Fatalf("%s: %v", strategy, err)
			}
			v, ok := workbench.RunActions(info, 0)
			if !ok || v != value {
				t.Errorf("%s: expected %q to evaluate to %v, is %v", strategy, input, value, v)
			}
		}
	}
	if _, _, err := s.parse("cyk", "1"); err == nil {
		t.Errorf("expected unknown strategy to be rejected")
	}
	info, _, _ := s.parse(Earley, "1 / 0")
	if v, _ := workbench.RunActions(info, 0); v == nil {
		t.Errorf("expected division by zero to produce an error value")
	}
}

func TestVerdicts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.cli")
	defer teardown()
	//
	g, err := ExpressionGrammar()
	if err != nil {
		t.Fatal(err)
	}
	s := newSession(g)
	for _, strategy := range []string{LL1, SLR, LR1, LALR} {
		if v := verdict(s, strategy); v != "ok" {
			t.Errorf("%s: expected expression grammar to be ok, is %s", strategy, v)
		}
	}
}

func TestIntpCommands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.cli")
	defer teardown()
	//
	g, err := ExpressionGrammar()
	if err != nil {
		t.Fatal(err)
	}
	intp := &Intp{session: newSession(g), strategy: Earley}
	if _, err := intp.Eval(":strategy lalr"); err != nil || intp.strategy != LALR {
		t.Errorf("expected strategy to switch to lalr")
	}
	if _, err := intp.Eval(":strategy cyk"); err == nil {
		t.Errorf("expected unknown strategy to be rejected")
	}
	if _, err := intp.Eval(":steps on"); err != nil || intp.session.onStep == nil {
		t.Errorf("expected step printing to be switched on")
	}
	if _, err := intp.Eval("1 + 2"); err != nil {
		t.Errorf("expected input to be parsed, have %v", err)
	}
	if quit, _ := intp.Eval(":quit"); !quit {
		t.Errorf("expected :quit to quit")
	}
	if _, err := intp.Eval(":frobnicate"); err == nil {
		t.Errorf("expected unknown command to be rejected")
	}
}

func TestSelectGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.cli")
	defer teardown()
	//
	g, err := ExpressionGrammar()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "expr.json")
	f := &grammarfile.File{Tokens: expressionTokens(), Grammars: []*lr.Grammar{g, g.Augment()}}
	if err := grammarfile.WriteFile(path, f); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
	read, err := grammarfile.ReadFile(path, Actions())
	if err != nil {
		t.Fatal(err)
	}
	if h, err := selectGrammar(read, ""); err != nil || h.Name != g.Name {
		t.Errorf("expected first grammar to be selected by default")
	}
	if h, err := selectGrammar(read, "Expressions augmented"); err != nil || !h.IsAugmented() {
		t.Errorf("expected augmented grammar to be selected by name")
	}
	if _, err := selectGrammar(read, "nope"); err == nil {
		t.Errorf("expected unknown grammar name to be rejected")
	}
}

func TestExpressionGrammarTokenNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.cli")
	defer teardown()
	//
	g, err := ExpressionGrammar()
	if err != nil {
		t.Fatal(err)
	}
	if n := g.TokenName('('); n != "(" {
		t.Errorf("expected '(' to be named by its token definition, is %q", n)
	}
	if n := g.TokenName(scanner.Int); n != "number" {
		t.Errorf("expected integer token to be named 'number', is %q", n)
	}
}
