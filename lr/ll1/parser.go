package ll1

import (
	"fmt"

	"github.com/npillmayer/cfgkit"
	"github.com/npillmayer/cfgkit/lr"
	"github.com/npillmayer/cfgkit/lr/derivation"
	"github.com/npillmayer/cfgkit/lr/scanner"
)

// ActionKind is the kind of decision the parser takes in a step.
type ActionKind uint8

// Parser decisions.
const (
	Expand ActionKind = iota // replace a non-terminal by the RHS of a production
	Match                    // pop a terminal matching the lookahead
	Accept                   // end of input matched
	Error                    // syntax error
)

func (k ActionKind) String() string {
	switch k {
	case Expand:
		return "expand"
	case Match:
		return "pop"
	case Accept:
		return "accepted"
	}
	return "error"
}

// Step describes one decision of the parser, for observers.
type Step struct {
	Stack  []lr.Symbol     // stack content before the decision, bottom first
	Token  cfgkit.TokType  // lookahead
	Action ActionKind
	Rule   *lr.Production // for Expand
}

func (s Step) String() string {
	if s.Action == Expand {
		return fmt.Sprintf("%v | %v | %v", s.Stack, s.Token, s.Rule)
	}
	return fmt.Sprintf("%v | %v | %v", s.Stack, s.Token, s.Action)
}

// Option configures a parser.
type Option func(*Parser)

// Observe sets an observer, called synchronously for every decision.
func Observe(f func(Step)) Option {
	return func(p *Parser) {
		p.onStep = f
	}
}

// Parser is a predictive LL(1) parser.
type Parser struct {
	table  *Table
	onStep func(Step)
}

// NewParser creates a parser for a prediction table.
func NewParser(table *Table, opts ...Option) *Parser {
	p := &Parser{table: table}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// stack entries are terminals or nodes to be expanded
type stackitem struct {
	sym  lr.Symbol
	node *derivation.Node
}

// Parse parses an input, reading tokens from a lexer for it.
// After a syntax error the parser stops deciding but keeps reading tokens,
// so the lexemes of the complete input are collected.
func (p *Parser) Parse(input string, lexer scanner.Lexer) *derivation.ParseInfo {
	g := p.table.Grammar()
	ts := scanner.NewTokenStream(input, lexer)
	root := &derivation.Node{}
	stack := []stackitem{
		{sym: lr.EOFSymbol},
		{sym: lr.NonTerminal(g.InitialSymbol()), node: root},
	}
	info := &derivation.ParseInfo{}
	valid, accepted := true, false
	for {
		tok := ts.Next().TokType()
		for valid && !accepted {
			snapshot := symbols(stack)
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.sym.IsTerminal() {
				if top.sym.TokType() != tok {
					p.step(Step{Stack: snapshot, Token: tok, Action: Error})
					valid = false
				} else if tok == cfgkit.EndOfInput {
					p.step(Step{Stack: snapshot, Token: tok, Action: Accept})
					accepted = true
				} else {
					p.step(Step{Stack: snapshot, Token: tok, Action: Match})
				}
				break
			}
			rule := p.table.Lookup(top.sym.Name(), tok)
			if rule == nil {
				p.step(Step{Stack: snapshot, Token: tok, Action: Error})
				valid = false
				break
			}
			stack = expand(stack, top.node, rule)
			p.step(Step{Stack: snapshot, Token: tok, Action: Expand, Rule: rule})
		}
		if tok == cfgkit.EndOfInput {
			break
		}
		ts.Consume()
	}
	info.Lexemes = ts.Lexemes()
	if accepted {
		info.Derivations = append(info.Derivations, root)
	}
	tracer().Debugf("LL(1) parse accepted=%v", accepted)
	return info
}

// expand fills node with rule and pushes the RHS of rule in reverse order.
// Non-terminals of the RHS get fresh child nodes.
func expand(stack []stackitem, node *derivation.Node, rule *lr.Production) []stackitem {
	node.Rule = rule
	rhs := rule.RHS()
	items := make([]stackitem, len(rhs))
	for i, s := range rhs {
		items[i] = stackitem{sym: s}
		if !s.IsTerminal() {
			items[i].node = &derivation.Node{}
			node.Children = append(node.Children, items[i].node)
		}
	}
	for i := len(items) - 1; i >= 0; i-- {
		stack = append(stack, items[i])
	}
	return stack
}

func symbols(stack []stackitem) []lr.Symbol {
	syms := make([]lr.Symbol, len(stack))
	for i, e := range stack {
		syms[i] = e.sym
	}
	return syms
}

func (p *Parser) step(s Step) {
	tracer().Debugf("LL(1) %v", s)
	if p.onStep != nil {
		p.onStep(s)
	}
}
