/*
Package earley provides an Earley parser. Earley parsers accept every
context-free grammar, including ambiguous and left-recursive ones, and do not
need any parser tables.

The chart of the parser holds one item set per input position. Items are
stored in per-position arenas and refer to their predecessors by arena
position. Every distinct way an item has been derived is recorded, thus no
ambiguity is lost: for ambiguous input the parser returns all derivations,
up to a configurable maximum.

	ga := lr.Analysis(g)
	p := earley.NewParser(ga, earley.MaxDerivations(10))
	info := p.Parse(input, lexer)

A good overview of how to construct a parse forest from Earley-items may be found in
"Parsing Techniques" by  Dick Grune and Ceriel J.H. Jacobs
(https://dickgrune.com/Books/PTAPG_2nd_Edition/), Section 7.2.1.2.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package earley

import (
	"fmt"

	"github.com/npillmayer/cfgkit"
	"github.com/npillmayer/cfgkit/lr"
	"github.com/npillmayer/cfgkit/lr/derivation"
	"github.com/npillmayer/cfgkit/lr/scanner"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cfgkit.lr'.
func tracer() tracing.Trace {
	return tracing.Select("cfgkit.lr")
}

// DefaultMaxDerivations limits the number of derivations returned for ambiguous input.
const DefaultMaxDerivations = 64

// ref addresses an item in the chart.
type ref struct {
	pos, idx int
}

var noRef = ref{-1, -1}

// link records one way an item has been derived: by advancing item prev over
// a terminal (complete == noRef) or over the completed item complete.
type link struct {
	prev, complete ref
}

type entry struct {
	item  lr.Item
	links []link
}

// itemSet is the arena of items for one input position.
type itemSet struct {
	entries []entry
	index   map[lr.Item]int
}

func newItemSet() *itemSet {
	return &itemSet{index: make(map[lr.Item]int)}
}

// add inserts an item, or records an additional link for an existing one.
// It returns true if the item or the link is new.
func (s *itemSet) add(item lr.Item, l *link) bool {
	i, found := s.index[item]
	if !found {
		s.index[item] = len(s.entries)
		e := entry{item: item}
		if l != nil {
			e.links = []link{*l}
		}
		s.entries = append(s.entries, e)
		return true
	}
	if l == nil {
		return false
	}
	for _, x := range s.entries[i].links {
		if x == *l {
			return false
		}
	}
	s.entries[i].links = append(s.entries[i].links, *l)
	return true
}

// chart holds one item set per input position. Every parse run owns its chart.
type chart []*itemSet

func (s *itemSet) items() []lr.Item {
	items := make([]lr.Item, len(s.entries))
	for i, e := range s.entries {
		items[i] = e.item
	}
	return items
}

// Step describes the item set of an input position after it has been
// completed, for observers.
type Step struct {
	Position int
	Token    cfgkit.TokType // token at this position
	Items    []lr.Item
}

func (s Step) String() string {
	return fmt.Sprintf("%d | %v | %d items", s.Position, s.Token, len(s.Items))
}

// Option configures a parser.
type Option func(*Parser)

// Observe sets an observer, called synchronously for every input position.
func Observe(f func(Step)) Option {
	return func(p *Parser) {
		p.onStep = f
	}
}

// MaxDerivations limits the number of derivations returned for ambiguous input.
func MaxDerivations(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDerivations = n
		}
	}
}

// Parser is an Earley parser.
type Parser struct {
	ga             *lr.GrammarAnalysis
	onStep         func(Step)
	maxDerivations int
}

// NewParser creates an Earley parser for a grammar.
func NewParser(ga *lr.GrammarAnalysis, opts ...Option) *Parser {
	p := &Parser{ga: ga, maxDerivations: DefaultMaxDerivations}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses an input, reading tokens from a lexer for it.
// The input is accepted if the final item set contains a completed item for
// the initial symbol, originating at position 0.
func (p *Parser) Parse(input string, lexer scanner.Lexer) *derivation.ParseInfo {
	g := p.ga.Grammar()
	ts := scanner.NewTokenStream(input, lexer)
	ch := chart{newItemSet()}
	for _, r := range g.Productions(g.InitialSymbol()) {
		ch[0].add(lr.StartItem(r, 0, cfgkit.Epsilon), nil)
	}
	n := 0
	for {
		tok := ts.Next().TokType()
		ch = append(ch, newItemSet())
		p.process(ch, n, tok)
		ch.dump(n)
		if p.onStep != nil {
			p.onStep(Step{Position: n, Token: tok, Items: ch[n].items()})
		}
		if tok == cfgkit.EndOfInput {
			break
		}
		ts.Consume()
		n++
	}
	info := &derivation.ParseInfo{Lexemes: ts.Lexemes()}
	f := newForest(ch, p.maxDerivations)
	for i, e := range ch[n].entries {
		item := e.item
		if item.IsComplete() && item.Origin == 0 && item.LHS() == g.InitialSymbol() {
			for _, node := range f.nodes(ref{n, i}) {
				if len(info.Derivations) >= p.maxDerivations {
					break
				}
				info.Derivations = append(info.Derivations, node)
			}
		}
	}
	tracer().Debugf("Earley parse found %d derivation(s)", len(info.Derivations))
	return info
}

// process applies completion, scanning and prediction to the items at
// position n until no more items or links are added.
func (p *Parser) process(ch chart, n int, tok cfgkit.TokType) {
	g := p.ga.Grammar()
	S, next := ch[n], ch[n+1]
	var predicted symset
	for change := true; change; {
		change = false
		for j := 0; j < len(S.entries); j++ {
			item := S.entries[j].item
			cur := ref{n, j}
			A, ok := item.PeekSymbol()
			switch {
			case !ok: // completion
				origin := ch[item.Origin]
				N := lr.NonTerminal(item.LHS())
				for k := 0; k < len(origin.entries); k++ {
					waiting := origin.entries[k].item
					if B, ok := waiting.PeekSymbol(); ok && B == N {
						l := link{prev: ref{item.Origin, k}, complete: cur}
						change = S.add(waiting.Advance(), &l) || change
					}
				}
			case A.IsTerminal(): // scan
				if A.TokType() == tok {
					next.add(item.Advance(), &link{prev: cur, complete: noRef})
				}
			default: // prediction
				if predicted.contains(A.Name()) {
					continue
				}
				predicted = predicted.add(A.Name())
				for _, r := range g.Productions(A.Name()) {
					change = S.add(lr.StartItem(r, n, cfgkit.Epsilon), nil) || change
				}
			}
		}
	}
}

// --- Derivations -----------------------------------------------------------

// forest enumerates the derivations recorded in the chart. Results are
// memoized per item, so derivations share sub-trees.
type forest struct {
	chart  chart
	limit  int
	built  map[ref][]*derivation.Node
	seqs   map[ref][][]*derivation.Node
	active map[ref]bool
}

func newForest(ch chart, limit int) *forest {
	return &forest{
		chart:  ch,
		limit:  limit,
		built:  make(map[ref][]*derivation.Node),
		seqs:   make(map[ref][][]*derivation.Node),
		active: make(map[ref]bool),
	}
}

func (f *forest) entry(r ref) entry {
	return f.chart[r.pos].entries[r.idx]
}

// nodes returns the alternative derivation nodes for a completed item.
// Derivations looping back to an item under construction are cut.
func (f *forest) nodes(r ref) []*derivation.Node {
	if nodes, ok := f.built[r]; ok {
		return nodes
	}
	if f.active[r] {
		return nil
	}
	f.active[r] = true
	rule := f.entry(r).item.Rule()
	var nodes []*derivation.Node
	for _, children := range f.sequences(r) {
		if len(nodes) >= f.limit {
			break
		}
		nodes = append(nodes, derivation.NewNode(rule, children...))
	}
	f.active[r] = false
	f.built[r] = nodes
	return nodes
}

// sequences returns the alternative lists of child nodes for the RHS prefix
// in front of an item's dot.
func (f *forest) sequences(r ref) [][]*derivation.Node {
	if seqs, ok := f.seqs[r]; ok {
		return seqs
	}
	e := f.entry(r)
	if e.item.Dot == 0 {
		return [][]*derivation.Node{nil}
	}
	if len(e.links) == 0 {
		stuck(fmt.Sprintf("predecessor for item missing: %v", e.item))
		return nil
	}
	var seqs [][]*derivation.Node
	for _, l := range e.links {
		prefixes := f.sequences(l.prev)
		if l.complete == noRef {
			seqs = append(seqs, prefixes...)
			continue
		}
		for _, child := range f.nodes(l.complete) {
			for _, prefix := range prefixes {
				seq := make([]*derivation.Node, len(prefix), len(prefix)+1)
				copy(seq, prefix)
				seqs = append(seqs, append(seq, child))
			}
		}
	}
	if len(seqs) > f.limit {
		seqs = seqs[:f.limit]
	}
	f.seqs[r] = seqs
	return seqs
}

// stuck reports an inconsistent chart.
func stuck(msg string) {
	tracer().Errorf(msg)
	if gconf.GetBool("panic-on-parser-stuck") {
		panic(msg)
	}
}
