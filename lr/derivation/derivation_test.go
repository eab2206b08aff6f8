package derivation

import (
	"strings"
	"testing"

	"github.com/npillmayer/cfgkit/lr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

//     S ➞ a B c
//     B ➞ b b
//     B ➞ ε
func makeTree(t *testing.T) (*lr.Grammar, *Node) {
	b := lr.NewGrammarBuilder("G")
	b.LHS("S").T("a", 1).N("B").T("c", 3).Action("concat", concat).End()
	b.LHS("B").T("b", 2).T("b", 2).Action("concat", concat).End()
	b.LHS("B").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	S, B := g.Productions("S")[0], g.Productions("B")[1]
	return g, NewNode(S, NewNode(B))
}

func concat(args []interface{}) interface{} {
	var b strings.Builder
	for _, a := range args {
		if s, ok := a.(string); ok {
			b.WriteString(s)
		}
	}
	return b.String()
}

type spanCollector struct {
	spans map[string][2]uint64
	terms []string
}

func (c *spanCollector) EnterRule(rule *lr.Production, ctxt RuleCtxt) bool {
	c.spans[rule.LHS] = [2]uint64{ctxt.Span.From(), ctxt.Span.To()}
	return true
}

func (c *spanCollector) ExitRule(*lr.Production, []interface{}, RuleCtxt) interface{} {
	return nil
}

func (c *spanCollector) Terminal(_ lr.Symbol, lexeme string, _ RuleCtxt) interface{} {
	c.terms = append(c.terms, lexeme)
	return nil
}

func TestWalk(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.lr")
	defer teardown()
	//
	_, root := makeTree(t)
	if root.TerminalCount() != 4 {
		t.Errorf("expected tree to cover 4 terminals, covers %d", root.TerminalCount())
	}
	c := &spanCollector{spans: make(map[string][2]uint64)}
	Walk(root, []string{"a", "b", "b", "c"}, c)
	if c.spans["S"] != [2]uint64{0, 4} || c.spans["B"] != [2]uint64{1, 3} {
		t.Errorf("unexpected spans %v", c.spans)
	}
	if strings.Join(c.terms, "") != "abbc" {
		t.Errorf("expected terminals to be visited in input order, have %v", c.terms)
	}
}

func TestRunActions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.lr")
	defer teardown()
	//
	_, root := makeTree(t)
	info := &ParseInfo{Lexemes: []string{"x", "y", "z", "w"}, Derivations: []*Node{root}}
	v, ok := RunActions(info, 0)
	if !ok || v != "xyzw" {
		t.Errorf("expected actions to produce \"xyzw\", have %v", v)
	}
	if _, ok := RunActions(info, 1); ok {
		t.Errorf("expected RunActions to fail for a missing derivation")
	}
	if _, ok := RunActions(nil, 0); ok {
		t.Errorf("expected RunActions to fail for a missing parse")
	}
	if (&ParseInfo{}).Accepted() {
		t.Errorf("expected parse without derivations not to be accepted")
	}
}

func TestSprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.lr")
	defer teardown()
	//
	g, root := makeTree(t)
	s := Sprint(root, g, []string{"a", "b", "b", "c"})
	t.Logf("\n%s", s)
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) != 6 || lines[0] != "S" || lines[2] != "  B" {
		t.Errorf("unexpected tree rendering:\n%s", s)
	}
}
