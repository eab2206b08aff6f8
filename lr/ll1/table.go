package ll1

import (
	"github.com/npillmayer/cfgkit"
	"github.com/npillmayer/cfgkit/lr"
	"github.com/npillmayer/cfgkit/lr/sparse"
)

// Table is an LL(1) prediction table.
type Table struct {
	ga     *lr.GrammarAnalysis
	matrix *sparse.IntMatrix
	rows   map[string]int
	cols   map[cfgkit.TokType]int
}

// BuildTable creates the prediction table for a grammar. For every production
// X ➞ α and every t in FIRST(α), the table predicts the production for (X, t).
// If α is nullable, the same holds for every t in FOLLOW(X).
// A cell receiving two productions makes the grammar non-LL(1), and BuildTable
// returns a *lr.BuildError listing all conflicts.
func BuildTable(ga *lr.GrammarAnalysis) (*Table, error) {
	g := ga.Grammar()
	t := &Table{
		ga:   ga,
		rows: make(map[string]int),
		cols: make(map[cfgkit.TokType]int),
	}
	for i, n := range g.NonTerminals() {
		t.rows[n] = i
	}
	t.cols[cfgkit.EndOfInput] = 0
	for i, tok := range g.Terminals() {
		t.cols[tok] = i + 1
	}
	t.matrix = sparse.NewIntMatrix(len(t.rows), len(t.cols), sparse.DefaultNullValue)
	var conflicts []lr.Conflict
	g.EachProduction(func(p *lr.Production) {
		domain := ga.FirstOfSequence(p.RHS())
		var lookaheads []cfgkit.TokType
		for _, tok := range domain {
			if tok == cfgkit.Epsilon {
				lookaheads = append(lookaheads, ga.Follow(p.LHS)...)
			} else {
				lookaheads = append(lookaheads, tok)
			}
		}
		row := t.rows[p.LHS]
		for _, tok := range lookaheads {
			col := t.cols[tok]
			if t.matrix.IsSet(row, col) {
				existing := g.Production(int(t.matrix.Value(row, col)))
				if existing == p {
					continue
				}
				conflicts = append(conflicts, lr.Conflict{
					NonTerminal: p.LHS,
					Symbol:      lr.Terminal(tok),
					Existing:    g.ProductionString(existing),
					Rejected:    g.ProductionString(p),
				})
				t.matrix.Add(row, col, int32(p.Serial()))
				continue
			}
			t.matrix.Set(row, col, int32(p.Serial()))
		}
	})
	if len(conflicts) > 0 {
		tracer().Infof("grammar %s is not LL(1): %d conflicts", g.Name, len(conflicts))
		return nil, &lr.BuildError{Kind: lr.LL1Conflict, Grammar: g.Name, Conflicts: conflicts}
	}
	return t, nil
}

// Grammar returns the grammar of the table.
func (t *Table) Grammar() *lr.Grammar {
	return t.ga.Grammar()
}

// Lookup returns the production to expand for non-terminal n with lookahead
// tok, or nil.
func (t *Table) Lookup(n string, tok cfgkit.TokType) *lr.Production {
	row, ok := t.rows[n]
	if !ok {
		return nil
	}
	col, ok := t.cols[tok]
	if !ok {
		return nil
	}
	v := t.matrix.Value(row, col)
	if v == t.matrix.NullValue() {
		return nil
	}
	return t.Grammar().Production(int(v))
}

// Dump is a debugging helper, listing all table entries to the trace.
func (t *Table) Dump() {
	g := t.Grammar()
	for _, n := range g.NonTerminals() {
		for _, col := range t.matrix.Row(t.rows[n]) {
			p := g.Production(int(t.matrix.Value(t.rows[n], col)))
			tracer().Debugf("  %s, %d: %s", n, col, g.ProductionString(p))
		}
	}
}
