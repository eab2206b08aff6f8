package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/cfgkit/lr"
	"github.com/npillmayer/cfgkit/lr/derivation"
	"github.com/npillmayer/cfgkit/lr/earley"
	"github.com/npillmayer/cfgkit/lr/ll1"
	"github.com/npillmayer/cfgkit/lr/shiftreduce"
	"github.com/npillmayer/cfgkit/workbench"
	"github.com/pterm/pterm"
)

// Parsing strategies.
const (
	LL1    = "ll1"
	SLR    = "slr"
	LR1    = "lr1"
	LALR   = "lalr"
	Earley = "earley"
)

var strategies = []string{LL1, SLR, LR1, LALR, Earley}

// session holds a grammar and the workbenches derived from it. LL(1) parsing
// uses the grammar without left recursion, LR parsing the augmented grammar.
type session struct {
	g              *lr.Grammar
	wbs            map[string]*workbench.Workbench
	onStep         func(string)
	maxDerivations int
}

func newSession(g *lr.Grammar) *session {
	return &session{g: g, wbs: make(map[string]*workbench.Workbench)}
}

func (s *session) bench(strategy string) *workbench.Workbench {
	key := strategy
	switch strategy {
	case SLR, LR1, LALR:
		key = "lr"
	}
	if wb, ok := s.wbs[key]; ok {
		return wb
	}
	g := s.g
	switch key {
	case LL1:
		g = g.RemoveLeftRecursion()
	case "lr":
		if !g.IsAugmented() {
			g = g.Augment()
		}
	}
	wb := workbench.New(g)
	s.wbs[key] = wb
	return wb
}

func (s *session) step(x fmt.Stringer) {
	if s.onStep != nil {
		s.onStep(x.String())
	}
}

// parse parses input with a strategy.
func (s *session) parse(strategy, input string) (*derivation.ParseInfo, *lr.Grammar, error) {
	wb := s.bench(strategy)
	var info *derivation.ParseInfo
	var err error
	switch strategy {
	case LL1:
		info, err = wb.ParseLL1(input, func(st ll1.Step) { s.step(st) })
	case SLR:
		info, err = wb.ParseLR(input, false, false, func(st shiftreduce.Step) { s.step(st) })
	case LR1:
		info, err = wb.ParseLR(input, true, false, func(st shiftreduce.Step) { s.step(st) })
	case LALR:
		info, err = wb.ParseLR(input, true, true, func(st shiftreduce.Step) { s.step(st) })
	case Earley:
		var opts []earley.Option
		if s.maxDerivations > 0 {
			opts = append(opts, earley.MaxDerivations(s.maxDerivations))
		}
		info, err = wb.ParseEarley(input, func(st earley.Step) { s.step(st) }, opts...)
	default:
		return nil, nil, fmt.Errorf("unknown strategy %q, use one of %s", strategy, strings.Join(strategies, ", "))
	}
	return info, wb.G, err
}

// report prints the result of a parse: a tree and a value per derivation.
func report(info *derivation.ParseInfo, g *lr.Grammar) {
	if !info.Accepted() {
		pterm.Error.Printf("input rejected, lexemes: %v\n", info.Lexemes)
		return
	}
	if n := len(info.Derivations); n > 1 {
		pterm.Warning.Printf("input is ambiguous, %d derivations\n", n)
	}
	for i, d := range info.Derivations {
		var ll pterm.LeveledList
		derivation.Leveled(d, g, info.Lexemes, func(level int, text string) {
			ll = append(ll, pterm.LeveledListItem{Level: level, Text: text})
		})
		pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll)).Render()
		if v, ok := workbench.RunActions(info, i); ok && v != nil {
			pterm.Info.Printf("value = %v\n", v)
		}
	}
}
