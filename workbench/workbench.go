/*
Package workbench bundles a grammar with everything derived from it and offers
entry points for parsing with every strategy of package lr.

    wb := workbench.New(g)                       // g has an automaton attached
    info, err := wb.ParseLL1("a + b", nil)
    info, err = wb.ParseLR("a + b", true, true, nil)  // LALR(1)
    info, err = wb.ParseEarley("a + b", nil)
    value, ok := workbench.RunActions(info, 0)

Parser tables are built on first use and cached; grammars are immutable, so
cached tables never go stale. A grammar which cannot be parsed with a strategy
(table conflicts, missing augmentation) yields no ParseInfo and a
*lr.BuildError. The grammar remains usable with other strategies.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package workbench

import (
	"errors"
	"fmt"

	"github.com/npillmayer/cfgkit/lr"
	"github.com/npillmayer/cfgkit/lr/derivation"
	"github.com/npillmayer/cfgkit/lr/earley"
	"github.com/npillmayer/cfgkit/lr/ll1"
	"github.com/npillmayer/cfgkit/lr/scanner"
	"github.com/npillmayer/cfgkit/lr/shiftreduce"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cfgkit.lr'.
func tracer() tracing.Trace {
	return tracing.Select("cfgkit.lr")
}

// ErrNoAutomaton is returned for parse requests on grammars without a lexer automaton.
var ErrNoAutomaton = errors.New("grammar has no lexer automaton")

type lrFlavour struct {
	lookahead, merge bool
}

type lrResult struct {
	lrgen *lr.TableGenerator
	err   error
}

// Workbench holds a grammar, its analysis and the parser tables built so far.
type Workbench struct {
	G        *lr.Grammar
	ga       *lr.GrammarAnalysis
	ll1Table *ll1.Table
	ll1Err   error
	ll1Done  bool
	lrTables map[lrFlavour]lrResult
}

// New creates a workbench for a grammar.
func New(g *lr.Grammar) *Workbench {
	return &Workbench{
		G:        g,
		ga:       lr.Analysis(g),
		lrTables: make(map[lrFlavour]lrResult),
	}
}

// Analysis returns the FIRST/FOLLOW analysis of the grammar.
func (wb *Workbench) Analysis() *lr.GrammarAnalysis {
	return wb.ga
}

// LL1Table returns the LL(1) prediction table of the grammar.
func (wb *Workbench) LL1Table() (*ll1.Table, error) {
	if !wb.ll1Done {
		wb.ll1Table, wb.ll1Err = ll1.BuildTable(wb.ga)
		wb.ll1Done = true
	}
	return wb.ll1Table, wb.ll1Err
}

// LRTables returns a table generator which has built the LR tables of the
// requested flavour.
func (wb *Workbench) LRTables(useLookahead, merge bool) (*lr.TableGenerator, error) {
	flavour := lrFlavour{lookahead: useLookahead, merge: merge}
	if r, ok := wb.lrTables[flavour]; ok {
		return r.lrgen, r.err
	}
	lrgen := lr.NewTableGenerator(wb.ga)
	err := lrgen.CreateTables(useLookahead, merge)
	if err != nil {
		lrgen = nil
	}
	wb.lrTables[flavour] = lrResult{lrgen: lrgen, err: err}
	return lrgen, err
}

func (wb *Workbench) lexer(input string) (scanner.Lexer, error) {
	a := wb.G.Automaton()
	if a == nil {
		return nil, ErrNoAutomaton
	}
	lexer, err := a.Lexer(input)
	if err != nil {
		return nil, fmt.Errorf("creating lexer: %w", err)
	}
	return lexer, nil
}

// ParseLL1 parses input with a predictive LL(1) parser. onStep may be nil.
func (wb *Workbench) ParseLL1(input string, onStep func(ll1.Step)) (*derivation.ParseInfo, error) {
	table, err := wb.LL1Table()
	if err != nil {
		return nil, err
	}
	lexer, err := wb.lexer(input)
	if err != nil {
		return nil, err
	}
	p := ll1.NewParser(table, ll1.Observe(onStep))
	return p.Parse(input, lexer), nil
}

// ParseLR parses input with a shift-reduce parser. Without lookahead the parser
// is SLR(1), with lookahead LR(1); merge unifies states with identical cores.
// The grammar has to be augmented. onStep may be nil.
func (wb *Workbench) ParseLR(input string, useLookahead, merge bool, onStep func(shiftreduce.Step)) (*derivation.ParseInfo, error) {
	lrgen, err := wb.LRTables(useLookahead, merge)
	if err != nil {
		return nil, err
	}
	lexer, err := wb.lexer(input)
	if err != nil {
		return nil, err
	}
	p := shiftreduce.NewParser(lrgen, shiftreduce.Observe(onStep))
	return p.Parse(input, lexer), nil
}

// ParseEarley parses input with an Earley parser. onStep may be nil.
func (wb *Workbench) ParseEarley(input string, onStep func(earley.Step), opts ...earley.Option) (*derivation.ParseInfo, error) {
	lexer, err := wb.lexer(input)
	if err != nil {
		return nil, err
	}
	opts = append(opts, earley.Observe(onStep))
	p := earley.NewParser(wb.ga, opts...)
	info := p.Parse(input, lexer)
	tracer().Debugf("Earley: %d derivations for %q", len(info.Derivations), input)
	return info, nil
}

// RunActions evaluates the semantic actions of derivation number index.
func RunActions(info *derivation.ParseInfo, index int) (interface{}, bool) {
	return derivation.RunActions(info, index)
}
