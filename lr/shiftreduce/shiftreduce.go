/*
Package shiftreduce provides a table-driven LR parser. Clients have to use the
tools of package lr to prepare the parse table. The parser utilizes the table
to create a right derivation for a given input, provided through a lexer.

The same driver serves SLR(1), LR(1) and LALR(1) tables; the flavour is chosen
when the table is created.

This parser is intended for small to moderate grammars, e.g. for configuration
input or small domain-specific languages.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := lr.NewGrammarBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("a", scanner.Ident).End()  // Var  ➞ Sign Id
	b.LHS("Sign").T("+", '+').End()                     // Sign ➞ +
	b.LHS("Sign").T("-", '-').End()                     // Sign ➞ -
	b.LHS("Sign").Epsilon()                             // Sign ➞ ε
	g, err := b.Grammar()

This grammar is augmented, subjected to grammar analysis and table generation.

	ga := lr.Analysis(g.Augment())
	lrgen := lr.NewTableGenerator(ga)
	if err := lrgen.CreateTables(true, true); err != nil { ... }  // LALR(1)

Finally parse some input:

	p := shiftreduce.NewParser(lrgen)
	info := p.Parse("+a", scanner.NewGoLexer("+a"))

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package shiftreduce

import (
	"fmt"

	"github.com/npillmayer/cfgkit"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/cfgkit/lr"
	"github.com/npillmayer/cfgkit/lr/derivation"
	"github.com/npillmayer/cfgkit/lr/scanner"
)

// tracer traces with key 'cfgkit.lr'.
func tracer() tracing.Trace {
	return tracing.Select("cfgkit.lr")
}

// ActionKind is the kind of decision the parser takes in a step.
type ActionKind uint8

// Parser decisions.
const (
	Shift ActionKind = iota
	Reduce
	Accept
	Error
)

func (k ActionKind) String() string {
	switch k {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accepted"
	}
	return "error"
}

// StackEntry is a pair of a CFSM state and the symbol which led to it.
// The bottom entry has no symbol.
type StackEntry struct {
	State  int
	Symbol lr.Symbol
}

// Step describes one decision of the parser, for observers.
type Step struct {
	Stack  []StackEntry   // stack content before the decision, bottom first
	Token  cfgkit.TokType // lookahead
	Action ActionKind
	State  int            // target state for Shift
	Rule   *lr.Production // for Reduce and Accept
}

func (s Step) String() string {
	switch s.Action {
	case Shift:
		return fmt.Sprintf("%v | %v | shift %d", s.Stack, s.Token, s.State)
	case Reduce, Accept:
		return fmt.Sprintf("%v | %v | %v %v", s.Stack, s.Token, s.Action, s.Rule)
	}
	return fmt.Sprintf("%v | %v | error", s.Stack, s.Token)
}

// Option configures a parser.
type Option func(*Parser)

// Observe sets an observer, called synchronously for every decision.
func Observe(f func(Step)) Option {
	return func(p *Parser) {
		p.onStep = f
	}
}

// Parser is a shift-reduce parser. Create and initialize one with NewParser(...)
type Parser struct {
	G      *lr.Grammar
	table  *lr.Table
	start  int
	onStep func(Step)
}

// We store pairs of state-IDs and symbols on the parse stack, together with
// the derivation node for non-terminals.
type stackitem struct {
	StackEntry
	node *derivation.Node
}

// NewParser creates a parser from a table generator which has successfully
// created its tables.
func NewParser(lrgen *lr.TableGenerator, opts ...Option) *Parser {
	p := &Parser{
		G:     lrgen.Grammar(),
		table: lrgen.Table(),
	}
	if cfsm := lrgen.CFSM(); cfsm != nil {
		p.start = cfsm.S0.ID
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses an input, reading tokens from a lexer for it.
// A missing table entry is a syntax error. After a syntax error the parser
// stops deciding but keeps reading tokens, so the lexemes of the complete
// input are collected.
func (p *Parser) Parse(input string, lexer scanner.Lexer) *derivation.ParseInfo {
	info := &derivation.ParseInfo{}
	if p.G == nil || p.table == nil {
		tracer().Errorf("LR parser not initialized")
		return info
	}
	ts := scanner.NewTokenStream(input, lexer)
	stack := make([]stackitem, 1, 64)
	stack[0] = stackitem{StackEntry: StackEntry{State: p.start}}
	valid, accepted := true, false
	for {
		tok := ts.Next().TokType()
		for valid && !accepted {
			tos := stack[len(stack)-1]
			e := p.table.Entry(tos.State, lr.Terminal(tok))
			snapshot := entries(stack)
			if e.Kind == lr.ShiftEntry {
				stack = append(stack, stackitem{StackEntry: StackEntry{State: e.State, Symbol: lr.Terminal(tok)}})
				p.step(Step{Stack: snapshot, Token: tok, Action: Shift, State: e.State})
				break
			}
			if e.Kind == lr.NoEntry {
				p.step(Step{Stack: snapshot, Token: tok, Action: Error})
				valid = false
				break
			}
			var node *derivation.Node
			stack, node = reduce(stack, e.Rule)
			if e.Rule.LHS == p.G.InitialSymbol() {
				p.step(Step{Stack: snapshot, Token: tok, Action: Accept, Rule: e.Rule})
				info.Derivations = append(info.Derivations, node)
				accepted = true
				break
			}
			exposed := stack[len(stack)-1]
			g := p.table.Entry(exposed.State, lr.NonTerminal(e.Rule.LHS))
			if g.Kind != lr.ShiftEntry {
				tracer().Errorf("no GOTO for %s in state %d", e.Rule.LHS, exposed.State)
				p.step(Step{Stack: snapshot, Token: tok, Action: Error})
				valid = false
				break
			}
			stack = append(stack, stackitem{
				StackEntry: StackEntry{State: g.State, Symbol: lr.NonTerminal(e.Rule.LHS)},
				node:       node,
			})
			p.step(Step{Stack: snapshot, Token: tok, Action: Reduce, Rule: e.Rule})
		}
		if tok == cfgkit.EndOfInput {
			break
		}
		ts.Consume()
	}
	info.Lexemes = ts.Lexemes()
	tracer().Debugf("LR parse accepted=%v", accepted)
	return info
}

// reduce performs a reduce action for a rule
//
//    LHS ➞ X1 ... Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn are represented on the stack as states
//
//    [TOS]  Sn(Xn) ... S1(X1)  ...
//
// The nodes of non-terminals among them become the children of a new node.
func reduce(stack []stackitem, rule *lr.Production) ([]stackitem, *derivation.Node) {
	tracer().Debugf("reduce %v", rule)
	n := len(rule.RHS())
	handle := stack[len(stack)-n:]
	var children []*derivation.Node
	for i, sym := range rule.RHS() {
		if handle[i].Symbol != sym {
			tracer().Errorf("expected %v on stack, got %v", sym, handle[i].Symbol)
		}
		if !sym.IsTerminal() {
			children = append(children, handle[i].node)
		}
	}
	return stack[:len(stack)-n], derivation.NewNode(rule, children...)
}

func entries(stack []stackitem) []StackEntry {
	e := make([]StackEntry, len(stack))
	for i, s := range stack {
		e[i] = s.StackEntry
	}
	return e
}

func (p *Parser) step(s Step) {
	tracer().Debugf("LR %v", s)
	if p.onStep != nil {
		p.onStep(s)
	}
}
