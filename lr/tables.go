package lr

import (
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/cfgkit"
	"github.com/npillmayer/cfgkit/lr/iteratable"
	"github.com/npillmayer/cfgkit/lr/sparse"
)

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.2.1 LR(0) Parsing, and to the dragon book for LR(1) and LALR(1).

// === Build errors ==========================================================

// BuildErrorKind classifies parser construction failures.
type BuildErrorKind uint8

// Kinds of parser construction failures.
const (
	NotAugmented BuildErrorKind = iota
	LRConflict
	LL1Conflict
)

// Conflict describes a table cell written twice. For LR tables State is set,
// for LL(1) tables NonTerminal.
type Conflict struct {
	State       int
	NonTerminal string
	Symbol      Symbol
	Existing    string
	Rejected    string
}

func (c Conflict) String() string {
	row := c.NonTerminal
	if row == "" {
		row = fmt.Sprintf("state %d", c.State)
	}
	return fmt.Sprintf("%s on %v: %s / %s", row, c.Symbol, c.Existing, c.Rejected)
}

// BuildError is returned when parser tables cannot be built. The grammar
// remains usable with other parsing strategies.
type BuildError struct {
	Kind      BuildErrorKind
	Grammar   string
	Conflicts []Conflict
}

func (e *BuildError) Error() string {
	switch e.Kind {
	case NotAugmented:
		return fmt.Sprintf("grammar %q is not augmented", e.Grammar)
	case LL1Conflict:
		return fmt.Sprintf("grammar %q is not LL(1): %d conflict(s), first: %v",
			e.Grammar, len(e.Conflicts), e.Conflicts[0])
	}
	return fmt.Sprintf("grammar %q has LR conflicts: %d conflict(s), first: %v",
		e.Grammar, len(e.Conflicts), e.Conflicts[0])
}

// === Parser tables =========================================================

// EntryKind is the kind of a parser table entry.
type EntryKind uint8

// A ShiftEntry for a non-terminal is a GOTO entry.
const (
	NoEntry EntryKind = iota
	ShiftEntry
	ReduceEntry
)

// Entry is an entry of an LR parser table.
type Entry struct {
	Kind  EntryKind
	State int         // target state for shift/goto
	Rule  *Production // production to reduce
}

func (e Entry) String() string {
	switch e.Kind {
	case ShiftEntry:
		return fmt.Sprintf("s%d", e.State)
	case ReduceEntry:
		return fmt.Sprintf("r%d", e.Rule.serial)
	}
	return "-"
}

// Table is an LR parser table, combining the ACTION and GOTO tables.
// Rows are states, columns are grammar symbols.
type Table struct {
	g       *Grammar
	matrix  *sparse.IntMatrix
	columns map[Symbol]int
	symbols []Symbol
}

// newTable creates an empty table with columns for all non-terminals of g,
// followed by end of input and all terminals.
func newTable(g *Grammar) *Table {
	t := &Table{g: g, columns: make(map[Symbol]int)}
	for _, n := range g.NonTerminals() {
		t.symbols = append(t.symbols, NonTerminal(n))
	}
	t.symbols = append(t.symbols, EOFSymbol)
	for _, tok := range g.Terminals() {
		t.symbols = append(t.symbols, Terminal(tok))
	}
	for i, s := range t.symbols {
		t.columns[s] = i
	}
	t.matrix = sparse.NewIntMatrix(0, len(t.symbols), sparse.DefaultNullValue)
	return t
}

// Symbols returns the column symbols of the table.
func (t *Table) Symbols() []Symbol {
	return t.symbols
}

// StateCount returns the number of rows of the table.
func (t *Table) StateCount() int {
	return t.matrix.M()
}

func (t *Table) encode(e Entry) int32 {
	if e.Kind == ReduceEntry {
		return int32(-(e.Rule.serial + 1))
	}
	return int32(e.State)
}

func (t *Table) decode(v int32) Entry {
	switch {
	case v == t.matrix.NullValue():
		return Entry{}
	case v < 0:
		return Entry{Kind: ReduceEntry, Rule: t.g.Production(int(-v) - 1)}
	}
	return Entry{Kind: ShiftEntry, State: int(v)}
}

// Entry returns the table entry for a state and a symbol.
func (t *Table) Entry(state int, s Symbol) Entry {
	col, ok := t.columns[s]
	if !ok {
		return Entry{}
	}
	return t.decode(t.matrix.Value(state, col))
}

// set writes an entry. If the cell is already occupied by a different entry,
// the existing entry is returned together with false.
func (t *Table) set(state int, s Symbol, e Entry) (Entry, bool) {
	col := t.columns[s]
	if t.matrix.IsSet(state, col) {
		existing := t.decode(t.matrix.Value(state, col))
		if existing == e {
			return e, true
		}
		t.matrix.Add(state, col, t.encode(e))
		return existing, false
	}
	t.matrix.Set(state, col, t.encode(e))
	return e, true
}

// Dump is a debugging helper, listing all table entries to the trace.
func (t *Table) Dump() {
	t.matrix.Each(func(i, j int, a, b int32) {
		tracer().Debugf("  [%3d, %8s] = %v", i, t.g.SymbolString(t.symbols[j]), t.decode(a))
	})
}

// === CFSM ==================================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     int
	items  *iteratable.Set
	Accept bool
}

// Items returns the items of a state in order.
func (s *CFSMState) Items() []Item {
	vals := s.items.Values()
	items := make([]Item, len(vals))
	for i, v := range vals {
		items[i] = v.(Item)
	}
	return items
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

// CFSM is the characteristic finite state machine for a LR grammar, i.e. the
// LR state diagram. It will be constructed by a TableGenerator.
// Clients normally do not use it directly, except for debugging purposes.
type CFSM struct {
	g      *Grammar
	states *arraylist.List // of *CFSMState, by ID
	sigs   map[string][]*CFSMState
	table  *Table
	S0     *CFSMState
}

func emptyCFSM(g *Grammar) *CFSM {
	return &CFSM{
		g:      g,
		states: arraylist.New(),
		sigs:   make(map[string][]*CFSMState),
	}
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return c.states.Size()
}

// State returns the state with a given ID.
func (c *CFSM) State(id int) *CFSMState {
	s, ok := c.states.Get(id)
	if !ok {
		return nil
	}
	return s.(*CFSMState)
}

func (c *CFSM) addState(iset *iteratable.Set) *CFSMState {
	s := &CFSMState{ID: c.states.Size(), items: iset}
	c.states.Add(s)
	sig := itemSetSignature(iset)
	c.sigs[sig] = append(c.sigs[sig], s)
	return s
}

func (c *CFSM) findStateByItems(iset *iteratable.Set) *CFSMState {
	for _, s := range c.sigs[itemSetSignature(iset)] {
		if s.items.Equals(iset) {
			return s
		}
	}
	return nil
}

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format.
func (c *CFSM) CFSM2GraphViz(w io.Writer) error {
	var b strings.Builder
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for i := 0; i < c.Size(); i++ {
		s := c.State(i)
		fmt.Fprintf(&b, "s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, itemsForGraphviz(s))
	}
	if c.table != nil {
		c.table.matrix.Each(func(i, j int, a, _ int32) {
			if e := c.table.decode(a); e.Kind == ShiftEntry {
				fmt.Fprintf(&b, "s%03d -> s%03d [label=\"%s\"]\n", i, e.State,
					escapeGraphviz(c.g.SymbolString(c.table.symbols[j])))
			}
		})
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

func itemsForGraphviz(s *CFSMState) string {
	var b strings.Builder
	for _, item := range s.Items() {
		b.WriteString(escapeGraphviz(item.String()))
		b.WriteString("\\l")
	}
	return b.String()
}

func escapeGraphviz(s string) string {
	r := strings.NewReplacer(`"`, `\"`, "{", `\{`, "}", `\}`, "|", `\|`, "<", `\<`, ">", `\>`)
	return r.Replace(s)
}

// === Table generator =======================================================

// TableGenerator is a generator object to construct LR parser tables.
// Clients usually create a Grammar G, augment it, create a GrammarAnalysis for it,
// and then a table generator. TableGenerator.CreateTables() constructs
// the CFSM and the parser table for an LR-parser recognizing grammar G.
type TableGenerator struct {
	g            *Grammar
	ga           *GrammarAnalysis
	cfsm         *CFSM
	table        *Table
	HasConflicts bool
	conflicts    []Conflict
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *GrammarAnalysis) *TableGenerator {
	return &TableGenerator{g: ga.Grammar(), ga: ga}
}

// Grammar returns the grammar the tables are generated for.
func (lrgen *TableGenerator) Grammar() *Grammar {
	return lrgen.g
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// Clients have to call CreateTables() first.
func (lrgen *TableGenerator) CFSM() *CFSM {
	return lrgen.cfsm
}

// Table returns the parser table, or nil if the tables could not be built.
func (lrgen *TableGenerator) Table() *Table {
	return lrgen.table
}

// Conflicts returns the conflicts found by CreateTables.
func (lrgen *TableGenerator) Conflicts() []Conflict {
	return lrgen.conflicts
}

// CreateTables creates the CFSM and the parser table.
//
// With useLookahead unset, items carry no lookahead and reductions are entered
// for FOLLOW(LHS), yielding an SLR(1) parser. With useLookahead set, items carry
// LR(1) lookaheads and reductions are entered for their lookahead only.
// Setting merge unifies states with identical item cores, which for LR(1)
// items yields an LALR(1) parser.
//
// Any table cell written twice is a conflict and makes CreateTables fail with
// a *BuildError. The grammar has to be augmented.
func (lrgen *TableGenerator) CreateTables(useLookahead, merge bool) error {
	lrgen.table, lrgen.conflicts, lrgen.HasConflicts = nil, nil, false
	if !lrgen.g.IsAugmented() {
		return &BuildError{Kind: NotAugmented, Grammar: lrgen.g.Name}
	}
	cfsm, table := lrgen.buildCFSM(useLookahead)
	if merge {
		cfsm, table = mergeStates(cfsm, table)
	}
	cfsm.table = table
	lrgen.cfsm = cfsm
	lrgen.addReductions(cfsm, table, useLookahead)
	if lrgen.HasConflicts {
		tracer().Infof("grammar %s has %d LR conflicts", lrgen.g.Name, len(lrgen.conflicts))
		return &BuildError{Kind: LRConflict, Grammar: lrgen.g.Name, Conflicts: lrgen.conflicts}
	}
	lrgen.table = table
	return nil
}

// buildCFSM explores the states reachable from the closure of the start item,
// breadth first. States are numbered in order of discovery.
func (lrgen *TableGenerator) buildCFSM(useLookahead bool) (*CFSM, *Table) {
	tracer().Debugf("=== build CFSM ==================================================")
	G := lrgen.g
	cfsm := emptyCFSM(G)
	table := newTable(G)
	la := cfgkit.Epsilon
	if useLookahead {
		la = cfgkit.EndOfInput
	}
	start := NewItemSet()
	start.Add(StartItem(G.Productions(G.initial)[0], 0, la))
	cfsm.S0 = cfsm.addState(lrgen.ga.Closure(start, useLookahead))
	for i := 0; i < cfsm.Size(); i++ {
		s := cfsm.State(i)
		for _, A := range table.symbols {
			gotoset := lrgen.ga.Goto(s.items, A, useLookahead)
			if gotoset.Empty() {
				continue
			}
			snew := cfsm.findStateByItems(gotoset)
			if snew == nil {
				snew = cfsm.addState(gotoset)
				tracer().Debugf("new state %d from %d on %v", snew.ID, s.ID, A)
			}
			table.set(s.ID, A, Entry{Kind: ShiftEntry, State: snew.ID})
		}
	}
	tracer().Debugf("CFSM has %d states", cfsm.Size())
	return cfsm, table
}

// mergeStates unifies states with identical cores. Merged states are numbered by
// the first occurrence of their core; transitions are translated accordingly.
func mergeStates(cfsm *CFSM, table *Table) (*CFSM, *Table) {
	type coreEntry struct {
		core  *iteratable.Set
		state *CFSMState
	}
	merged := emptyCFSM(cfsm.g)
	cores := make(map[string][]coreEntry)
	translate := make([]int, cfsm.Size())
	for i := 0; i < cfsm.Size(); i++ {
		s := cfsm.State(i)
		core := CoreItems(s.items)
		sig := itemSetSignature(core)
		var target *CFSMState
		for _, c := range cores[sig] {
			if c.core.Equals(core) {
				target = c.state
				break
			}
		}
		if target == nil {
			target = &CFSMState{ID: merged.Size(), items: s.items.Copy()}
			merged.states.Add(target)
			cores[sig] = append(cores[sig], coreEntry{core: core, state: target})
		} else {
			target.items.Union(s.items)
		}
		translate[i] = target.ID
	}
	for i := 0; i < merged.Size(); i++ {
		s := merged.State(i)
		sig := itemSetSignature(s.items)
		merged.sigs[sig] = append(merged.sigs[sig], s)
	}
	merged.S0 = merged.State(translate[cfsm.S0.ID])
	mtable := newTable(cfsm.g)
	table.matrix.Each(func(i, j int, a, _ int32) {
		target := translate[table.decode(a).State]
		mtable.matrix.Set(translate[i], j, mtable.encode(Entry{Kind: ShiftEntry, State: target}))
	})
	tracer().Debugf("merged %d states into %d", cfsm.Size(), merged.Size())
	return merged, mtable
}

// addReductions enters reduce entries for complete items, on their lookahead
// or on FOLLOW(LHS).
func (lrgen *TableGenerator) addReductions(cfsm *CFSM, table *Table, useLookahead bool) {
	for i := 0; i < cfsm.Size(); i++ {
		s := cfsm.State(i)
		for _, item := range s.Items() {
			if !item.IsComplete() {
				continue
			}
			if item.LHS() == lrgen.g.initial {
				s.Accept = true
			}
			lookaheads := []cfgkit.TokType{item.Lookahead}
			if !useLookahead {
				lookaheads = lrgen.ga.Follow(item.LHS())
			}
			for _, la := range lookaheads {
				e := Entry{Kind: ReduceEntry, Rule: item.rule}
				if existing, ok := table.set(s.ID, Terminal(la), e); !ok {
					lrgen.HasConflicts = true
					lrgen.conflicts = append(lrgen.conflicts, Conflict{
						State:    s.ID,
						Symbol:   Terminal(la),
						Existing: existing.String(),
						Rejected: e.String(),
					})
				}
			}
		}
	}
}
