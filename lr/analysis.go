package lr

import (
	"github.com/npillmayer/cfgkit"
	"github.com/npillmayer/cfgkit/lr/iteratable"
)

// GrammarAnalysis holds the FIRST and FOLLOW sets of a grammar. As grammars are
// immutable, an analysis never goes stale; create one with Analysis(g).
type GrammarAnalysis struct {
	g      *Grammar
	first  map[string]*iteratable.Set // of cfgkit.TokType, may contain Epsilon
	follow map[string]*iteratable.Set // of cfgkit.TokType
}

// Analysis computes FIRST and FOLLOW sets for all non-terminals of g.
func Analysis(g *Grammar) *GrammarAnalysis {
	ga := &GrammarAnalysis{
		g:      g,
		first:  make(map[string]*iteratable.Set),
		follow: make(map[string]*iteratable.Set),
	}
	for _, n := range g.NonTerminals() {
		ga.first[n] = newTokSet()
		ga.follow[n] = newTokSet()
	}
	ga.computeFirst()
	ga.computeFollow()
	return ga
}

func newTokSet() *iteratable.Set {
	return iteratable.NewSet(tokTypeComparator, nil)
}

// Grammar returns the grammar under analysis.
func (ga *GrammarAnalysis) Grammar() *Grammar {
	return ga.g
}

func (ga *GrammarAnalysis) computeFirst() {
	for {
		more := false
		for _, p := range ga.g.productions {
			f := ga.first[p.LHS]
			before := f.Size()
			nullable := true
			for _, s := range p.rhs {
				if s.IsTerminal() {
					f.Add(s.token)
					nullable = false
					break
				}
				fs := ga.first[s.name]
				fs.Each(func(x interface{}) bool {
					if x.(cfgkit.TokType) != cfgkit.Epsilon {
						f.Add(x)
					}
					return true
				})
				if !fs.Contains(cfgkit.Epsilon) {
					nullable = false
					break
				}
			}
			if nullable {
				f.Add(cfgkit.Epsilon)
			}
			more = more || f.Size() != before
		}
		if !more {
			break
		}
	}
}

func (ga *GrammarAnalysis) computeFollow() {
	if f, ok := ga.follow[ga.g.initial]; ok {
		f.Add(cfgkit.EndOfInput)
	}
	for {
		more := false
		for _, p := range ga.g.productions {
			for i, s := range p.rhs {
				if s.IsTerminal() {
					continue
				}
				f := ga.follow[s.name]
				before := f.Size()
				rest := ga.firstOfSequence(p.rhs[i+1:])
				if rest.Contains(cfgkit.Epsilon) {
					rest.Remove(cfgkit.Epsilon)
					rest.Union(ga.follow[p.LHS])
				}
				f.Union(rest)
				more = more || f.Size() != before
			}
		}
		if !more {
			break
		}
	}
	for _, f := range ga.follow {
		f.Remove(cfgkit.Epsilon)
	}
}

// firstOfSymbol returns a fresh copy of FIRST(s).
func (ga *GrammarAnalysis) firstOfSymbol(s Symbol) *iteratable.Set {
	if s.IsTerminal() {
		set := newTokSet()
		set.Add(s.token)
		return set
	}
	if f, ok := ga.first[s.name]; ok {
		return f.Copy()
	}
	return newTokSet()
}

// firstOfSequence returns FIRST of a sequence of symbols, including Epsilon
// if all symbols are nullable (or the sequence is empty).
func (ga *GrammarAnalysis) firstOfSequence(seq []Symbol) *iteratable.Set {
	result := newTokSet()
	for _, s := range seq {
		f := ga.firstOfSymbol(s)
		nullable := f.Contains(cfgkit.Epsilon)
		f.Remove(cfgkit.Epsilon)
		result.Union(f)
		if !nullable {
			return result
		}
	}
	result.Add(cfgkit.Epsilon)
	return result
}

func toTokTypes(set *iteratable.Set) []cfgkit.TokType {
	if set == nil {
		return nil
	}
	vals := set.Values()
	tt := make([]cfgkit.TokType, len(vals))
	for i, v := range vals {
		tt[i] = v.(cfgkit.TokType)
	}
	return tt
}

// First returns FIRST(N) for a non-terminal N in ascending order. Epsilon is
// included if N derives the empty word.
func (ga *GrammarAnalysis) First(n string) []cfgkit.TokType {
	return toTokTypes(ga.first[n])
}

// Follow returns FOLLOW(N) for a non-terminal N in ascending order.
func (ga *GrammarAnalysis) Follow(n string) []cfgkit.TokType {
	return toTokTypes(ga.follow[n])
}

// FirstOfSequence returns FIRST of a sequence of symbols. Epsilon is included
// if every symbol in seq is nullable. EndOfInput may be used as a terminal.
func (ga *GrammarAnalysis) FirstOfSequence(seq []Symbol) []cfgkit.TokType {
	return toTokTypes(ga.firstOfSequence(seq))
}

// Nullable is true if non-terminal N derives the empty word.
func (ga *GrammarAnalysis) Nullable(n string) bool {
	f, ok := ga.first[n]
	return ok && f.Contains(cfgkit.Epsilon)
}

// Dump is a debugging helper, listing FIRST and FOLLOW sets to the trace.
func (ga *GrammarAnalysis) Dump() {
	for _, n := range ga.g.NonTerminals() {
		tracer().Debugf("FIRST(%s) = %v", n, ga.First(n))
		tracer().Debugf("FOLLOW(%s) = %v", n, ga.Follow(n))
	}
}
