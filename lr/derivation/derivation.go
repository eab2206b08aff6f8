/*
Package derivation holds derivation trees produced by the parsers of package lr,
and evaluates semantic actions over them.

A derivation node stores the production applied and one child per non-terminal
of the production's right hand side. Terminals are not stored in the tree: they
correspond, left to right, to the lexemes collected during parsing. Walking a
tree therefore consumes lexemes positionally.

Earley parsing may produce more than one derivation for ambiguous input. Trees
of different derivations of one parse may share sub-trees.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package derivation

import (
	"fmt"
	"strings"

	"github.com/npillmayer/cfgkit"
	"github.com/npillmayer/cfgkit/lr"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cfgkit.lr'.
func tracer() tracing.Trace {
	return tracing.Select("cfgkit.lr")
}

// Node is a node of a derivation tree.
type Node struct {
	Rule     *lr.Production
	Children []*Node // one per non-terminal of Rule's RHS, in order
}

// NewNode creates a node for a production.
func NewNode(rule *lr.Production, children ...*Node) *Node {
	return &Node{Rule: rule, Children: children}
}

// LHS returns the name of the non-terminal derived at this node.
func (n *Node) LHS() string {
	return n.Rule.LHS
}

// TerminalCount returns the number of terminals covered by the sub-tree.
func (n *Node) TerminalCount() int {
	cnt := 0
	for _, s := range n.Rule.RHS() {
		if s.IsTerminal() {
			cnt++
		}
	}
	for _, ch := range n.Children {
		cnt += ch.TerminalCount()
	}
	return cnt
}

func (n *Node) String() string {
	return fmt.Sprintf("(%s)", n.Rule)
}

// ParseInfo is the result of a parse run: the lexemes of all consumed tokens,
// and zero or more derivations. No derivation means the input was rejected.
type ParseInfo struct {
	Lexemes     []string
	Derivations []*Node
}

// Accepted is true if at least one derivation has been found.
func (pi *ParseInfo) Accepted() bool {
	return pi != nil && len(pi.Derivations) > 0
}

// --- Walking derivations ---------------------------------------------------

// Listener is a type for walking a derivation tree.
//
// EnterRule returns a boolean value indicating if the traversal should continue to
// the children of this node. ExitRule and Terminal may return user-defined values
// to be propagated upwards of the tree. ExitRule receives one value per RHS symbol;
// values of skipped sub-trees are nil.
type Listener interface {
	EnterRule(*lr.Production, RuleCtxt) bool
	ExitRule(*lr.Production, []interface{}, RuleCtxt) interface{}
	Terminal(lr.Symbol, string, RuleCtxt) interface{}
}

// RuleCtxt is a context structure for Listeners.
type RuleCtxt struct {
	Span  cfgkit.Span // span of lexemes covered by this rule
	Level int         // nesting level
}

// Walk traverses a derivation tree depth first, left to right, applying
// listener methods. Terminals consume lexemes from a cursor shared by the
// complete traversal.
func Walk(root *Node, lexemes []string, listener Listener) interface{} {
	w := walker{lexemes: lexemes, listener: listener}
	return w.walk(root, 0)
}

type walker struct {
	lexemes  []string
	cursor   int
	listener Listener
}

func (w *walker) walk(n *Node, level int) interface{} {
	if n == nil || n.Rule == nil {
		tracer().Errorf("derivation tree contains an empty node")
		return nil
	}
	from := w.cursor
	ctxt := RuleCtxt{Span: cfgkit.Span{uint64(from), uint64(from + n.TerminalCount())}, Level: level}
	rhs := n.Rule.RHS()
	values := make([]interface{}, len(rhs))
	if !w.listener.EnterRule(n.Rule, ctxt) {
		w.cursor = from + n.TerminalCount()
		return w.listener.ExitRule(n.Rule, values, ctxt)
	}
	child := 0
	for i, s := range rhs {
		if s.IsTerminal() {
			lexeme := ""
			if w.cursor < len(w.lexemes) {
				lexeme = w.lexemes[w.cursor]
			}
			tctxt := RuleCtxt{Span: cfgkit.Span{uint64(w.cursor), uint64(w.cursor + 1)}, Level: level + 1}
			w.cursor++
			values[i] = w.listener.Terminal(s, lexeme, tctxt)
			continue
		}
		if child < len(n.Children) {
			values[i] = w.walk(n.Children[child], level+1)
		}
		child++
	}
	return w.listener.ExitRule(n.Rule, values, ctxt)
}

// --- Semantic actions ------------------------------------------------------

type actionRunner struct{}

func (actionRunner) EnterRule(*lr.Production, RuleCtxt) bool {
	return true
}

func (actionRunner) ExitRule(rule *lr.Production, args []interface{}, _ RuleCtxt) interface{} {
	if a := rule.Action(); a != nil {
		return a(args)
	}
	return nil
}

func (actionRunner) Terminal(_ lr.Symbol, lexeme string, _ RuleCtxt) interface{} {
	return lexeme
}

// RunActions evaluates the semantic actions of derivation number index.
// Actions receive the lexeme for terminals and the action value of the child
// node for non-terminals. Productions without action evaluate to nil.
// If there is no derivation with this index, RunActions returns false.
func RunActions(info *ParseInfo, index int) (interface{}, bool) {
	if info == nil || index < 0 || index >= len(info.Derivations) {
		return nil, false
	}
	return Walk(info.Derivations[index], info.Lexemes, actionRunner{}), true
}

// --- Printing --------------------------------------------------------------

// Leveled calls f for every node and terminal of a derivation in pre-order,
// with its nesting level and a display text. Useful for tree printers.
func Leveled(root *Node, g *lr.Grammar, lexemes []string, f func(level int, text string)) {
	Walk(root, lexemes, printer{g: g, f: f})
}

type printer struct {
	g *lr.Grammar
	f func(int, string)
}

func (p printer) EnterRule(rule *lr.Production, ctxt RuleCtxt) bool {
	p.f(ctxt.Level, rule.LHS)
	return true
}

func (p printer) ExitRule(*lr.Production, []interface{}, RuleCtxt) interface{} {
	return nil
}

func (p printer) Terminal(s lr.Symbol, lexeme string, ctxt RuleCtxt) interface{} {
	name := s.String()
	if p.g != nil {
		name = p.g.SymbolString(s)
	}
	p.f(ctxt.Level, fmt.Sprintf("%s %q", name, lexeme))
	return nil
}

// Sprint renders a derivation as an indented multi-line string.
func Sprint(root *Node, g *lr.Grammar, lexemes []string) string {
	var b strings.Builder
	Leveled(root, g, lexemes, func(level int, text string) {
		b.WriteString(strings.Repeat("  ", level))
		b.WriteString(text)
		b.WriteByte('\n')
	})
	return b.String()
}
