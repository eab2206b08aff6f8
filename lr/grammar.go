package lr

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/cfgkit"
	"github.com/npillmayer/cfgkit/lr/iteratable"
	"github.com/npillmayer/cfgkit/lr/scanner"
	"golang.org/x/exp/slices"
)

// --- Symbols ---------------------------------------------------------------

type symbolKind uint8

const (
	terminalKind symbolKind = iota
	nonTerminalKind
)

// Symbol is a grammar symbol, either a terminal, identified by its token type,
// or a non-terminal, identified by its name. Symbols are comparable values and
// may be used as map keys.
type Symbol struct {
	kind  symbolKind
	token cfgkit.TokType
	name  string
}

// Terminal creates a terminal symbol for a token type.
func Terminal(t cfgkit.TokType) Symbol {
	return Symbol{kind: terminalKind, token: t}
}

// NonTerminal creates a non-terminal symbol.
func NonTerminal(name string) Symbol {
	return Symbol{kind: nonTerminalKind, name: name}
}

// EOFSymbol is the terminal for end of input.
var EOFSymbol = Terminal(cfgkit.EndOfInput)

// IsTerminal returns true if this symbol represents a terminal.
func (s Symbol) IsTerminal() bool {
	return s.kind == terminalKind
}

// TokType returns the token type of a terminal, and Epsilon for non-terminals.
func (s Symbol) TokType() cfgkit.TokType {
	if s.kind == terminalKind {
		return s.token
	}
	return cfgkit.Epsilon
}

// Name returns the name of a non-terminal, or the token value of a terminal.
func (s Symbol) Name() string {
	if s.kind == nonTerminalKind {
		return s.name
	}
	return s.token.String()
}

func (s Symbol) String() string {
	if s.kind == nonTerminalKind {
		return s.name
	}
	return "#" + s.token.String()
}

// compareSymbols orders terminals by token value, non-terminals by name.
// Terminals sort before non-terminals.
func compareSymbols(a, b Symbol) int {
	if a.kind != b.kind {
		if a.kind == terminalKind {
			return -1
		}
		return 1
	}
	if a.kind == terminalKind {
		return compareTokTypes(a.token, b.token)
	}
	return strings.Compare(a.name, b.name)
}

func compareTokTypes(a, b cfgkit.TokType) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareRHS(a, b []Symbol) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := compareSymbols(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

// --- Productions -----------------------------------------------------------

// Action is a semantic action attached to a production. It receives one
// argument per RHS symbol: the value of a non-terminal child, or the lexeme
// (string) of a terminal.
type Action func(args []interface{}) interface{}

// Production is a grammar rule LHS ➞ RHS, optionally carrying a semantic action.
// Actions are identified by name, which is what gets serialized.
type Production struct {
	LHS        string
	rhs        []Symbol
	serial     int
	actionName string
	action     Action
}

// RHS returns the right-hand side of a production. Clients must not modify it.
func (p *Production) RHS() []Symbol {
	return p.rhs
}

// Serial returns the production's number, unique within its grammar.
func (p *Production) Serial() int {
	return p.serial
}

// ActionName returns the identifier of the production's action, or "".
func (p *Production) ActionName() string {
	return p.actionName
}

// Action returns the semantic action of a production, or nil.
func (p *Production) Action() Action {
	return p.action
}

// IsEpsilon is true for productions with an empty RHS.
func (p *Production) IsEpsilon() bool {
	return len(p.rhs) == 0
}

func (p *Production) String() string {
	var b strings.Builder
	b.WriteString(p.LHS)
	b.WriteString(" ➞")
	if len(p.rhs) == 0 {
		b.WriteString(" ε")
	}
	for _, s := range p.rhs {
		b.WriteByte(' ')
		b.WriteString(s.String())
	}
	return b.String()
}

func productionComparator(a, b interface{}) int {
	return compareRHS(a.(*Production).rhs, b.(*Production).rhs)
}

// --- Grammar ---------------------------------------------------------------

// Grammar is a context-free grammar. Grammars are immutable once they have been
// built by a GrammarBuilder. Transformations create new grammars.
type Grammar struct {
	Name         string
	initial      string
	terminals    *iteratable.Set // of cfgkit.TokType
	nonterminals *iteratable.Set // of string
	rules        *treemap.Map    // LHS name -> set of *Production, ordered by RHS
	productions  []*Production   // by serial number
	tokenNames   map[cfgkit.TokType]string
	automaton    scanner.Automaton
}

func tokTypeComparator(a, b interface{}) int {
	return compareTokTypes(a.(cfgkit.TokType), b.(cfgkit.TokType))
}

func stringComparator(a, b interface{}) int {
	return strings.Compare(a.(string), b.(string))
}

func newGrammar(name string) *Grammar {
	return &Grammar{
		Name:         name,
		terminals:    iteratable.NewSet(tokTypeComparator, nil),
		nonterminals: iteratable.NewSet(stringComparator, nil),
		rules:        treemap.NewWithStringComparator(),
		tokenNames:   make(map[cfgkit.TokType]string),
	}
}

// InitialSymbol returns the name of the start symbol.
func (g *Grammar) InitialSymbol() string {
	return g.initial
}

// Automaton returns the lexer automaton attached to g, if any.
func (g *Grammar) Automaton() scanner.Automaton {
	return g.automaton
}

// WithAutomaton returns a copy of g using lexer automaton a.
func (g *Grammar) WithAutomaton(a scanner.Automaton) *Grammar {
	ng := *g
	ng.automaton = a
	return &ng
}

// Terminals returns all terminal token types of g in ascending order.
func (g *Grammar) Terminals() []cfgkit.TokType {
	vals := g.terminals.Values()
	tt := make([]cfgkit.TokType, len(vals))
	for i, v := range vals {
		tt[i] = v.(cfgkit.TokType)
	}
	return tt
}

// NonTerminals returns the names of all non-terminals of g in ascending order.
func (g *Grammar) NonTerminals() []string {
	vals := g.nonterminals.Values()
	nn := make([]string, len(vals))
	for i, v := range vals {
		nn[i] = v.(string)
	}
	return nn
}

// IsTerminal checks if t is a terminal of g.
func (g *Grammar) IsTerminal(t cfgkit.TokType) bool {
	return g.terminals.Contains(t)
}

// IsNonTerminal checks if name is a non-terminal of g.
func (g *Grammar) IsNonTerminal(name string) bool {
	return g.nonterminals.Contains(name)
}

// Declares checks if a symbol is declared in g.
func (g *Grammar) Declares(s Symbol) bool {
	if s.IsTerminal() {
		return g.IsTerminal(s.token)
	}
	return g.IsNonTerminal(s.name)
}

// Size returns the number of productions of g.
func (g *Grammar) Size() int {
	return len(g.productions)
}

// Production returns production number n, or nil.
func (g *Grammar) Production(n int) *Production {
	if n < 0 || n >= len(g.productions) {
		return nil
	}
	return g.productions[n]
}

// Productions returns the productions for a non-terminal, ordered by RHS.
func (g *Grammar) Productions(lhs string) []*Production {
	set, found := g.rules.Get(lhs)
	if !found {
		return nil
	}
	vals := set.(*iteratable.Set).Values()
	prods := make([]*Production, len(vals))
	for i, v := range vals {
		prods[i] = v.(*Production)
	}
	return prods
}

// EachProduction calls f for every production, in order of serial numbers.
func (g *Grammar) EachProduction(f func(*Production)) {
	for _, p := range g.productions {
		f(p)
	}
}

// TokenName returns the display name of a terminal.
func (g *Grammar) TokenName(t cfgkit.TokType) string {
	if name, ok := g.tokenNames[t]; ok {
		return name
	}
	return t.String()
}

// SymbolString renders a symbol, using display names for terminals.
func (g *Grammar) SymbolString(s Symbol) string {
	if s.IsTerminal() {
		return g.TokenName(s.token)
	}
	return s.name
}

// ProductionString renders a production, using display names for terminals.
func (g *Grammar) ProductionString(p *Production) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s ➞", p.LHS)
	if p.IsEpsilon() {
		b.WriteString(" ε")
	}
	for _, s := range p.rhs {
		b.WriteByte(' ')
		b.WriteString(g.SymbolString(s))
	}
	return b.String()
}

// Dump is a debugging helper, listing all productions to the trace.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	for _, p := range g.productions {
		tracer().Debugf("%3d: %s", p.serial, g.ProductionString(p))
	}
	tracer().Debugf("-------------------------------------------------------")
}

func (g *Grammar) declareTerminal(t cfgkit.TokType, name string) {
	g.terminals.Add(t)
	if name != "" {
		g.tokenNames[t] = name
	}
}

func (g *Grammar) declareNonTerminal(name string) {
	g.nonterminals.Add(name)
}

// addRule adds a production to g. It returns false if the LHS or a RHS symbol
// is undeclared. Adding an RHS already present for LHS is a no-op returning
// the existing production.
func (g *Grammar) addRule(lhs string, rhs []Symbol, actionName string, action Action) (*Production, bool) {
	if !g.nonterminals.Contains(lhs) {
		tracer().Errorf("grammar %s: LHS %s is not declared", g.Name, lhs)
		return nil, false
	}
	for _, s := range rhs {
		if !g.Declares(s) {
			tracer().Errorf("grammar %s: symbol %v in RHS of %s is not declared", g.Name, s, lhs)
			return nil, false
		}
	}
	var set *iteratable.Set
	if s, found := g.rules.Get(lhs); found {
		set = s.(*iteratable.Set)
	} else {
		set = iteratable.NewSet(productionComparator, nil)
		g.rules.Put(lhs, set)
	}
	p := &Production{
		LHS:        lhs,
		rhs:        slices.Clone(rhs),
		serial:     len(g.productions),
		actionName: actionName,
		action:     action,
	}
	if set.Contains(p) {
		var existing *Production
		set.Each(func(x interface{}) bool {
			if productionComparator(x, p) == 0 {
				existing = x.(*Production)
				return false
			}
			return true
		})
		return existing, true
	}
	set.Add(p)
	g.productions = append(g.productions, p)
	return p, true
}

// derive creates an empty grammar sharing the symbol declarations of g.
func (g *Grammar) derive(name string) *Grammar {
	ng := newGrammar(name)
	ng.initial = g.initial
	ng.terminals = g.terminals.Copy()
	ng.nonterminals = g.nonterminals.Copy()
	for t, n := range g.tokenNames {
		ng.tokenNames[t] = n
	}
	ng.automaton = g.automaton
	return ng
}

// freshName returns name with primes appended until it is unused in g.
func (g *Grammar) freshName(name string) string {
	for {
		name += "'"
		if !g.nonterminals.Contains(name) {
			return name
		}
	}
}

// --- Grammar Builder -------------------------------------------------------

// GrammarBuilder is a builder type for grammars.
//
//    b := lr.NewGrammarBuilder("G")
//    b.LHS("S").N("A").T("a", 1).End()  // S  ➞  A a
//    b.LHS("A").N("B").N("D").End()     // A  ➞  B D
//    b.LHS("B").T("b", 2).End()         // B  ➞  b
//    b.LHS("B").Epsilon()               // B  ➞  ε
//    g, err := b.Grammar()
//
// The LHS of the first rule is the initial symbol, unless set with Initial.
// Symbols used with LHS, N and T are declared implicitly. Alternatively clients
// may declare symbols upfront and use AddRule, which rejects undeclared symbols.
type GrammarBuilder struct {
	g    *Grammar
	errs []error
	done bool
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar to build.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	return &GrammarBuilder{g: newGrammar(gname)}
}

// Terminal declares a terminal with a display name.
func (gb *GrammarBuilder) Terminal(name string, t cfgkit.TokType) *GrammarBuilder {
	if t.IsReserved() {
		gb.errs = append(gb.errs, fmt.Errorf("token value %d of terminal %q is reserved", t, name))
		return gb
	}
	gb.g.declareTerminal(t, name)
	return gb
}

// NonTerminal declares non-terminals.
func (gb *GrammarBuilder) NonTerminal(names ...string) *GrammarBuilder {
	for _, n := range names {
		if n == "" {
			gb.errs = append(gb.errs, fmt.Errorf("non-terminal without name"))
			continue
		}
		gb.g.declareNonTerminal(n)
	}
	return gb
}

// Initial sets the initial symbol. It has to be declared as a non-terminal.
func (gb *GrammarBuilder) Initial(name string) *GrammarBuilder {
	gb.g.initial = name
	return gb
}

// Automaton attaches a lexer automaton to the grammar.
func (gb *GrammarBuilder) Automaton(a scanner.Automaton) *GrammarBuilder {
	gb.g.automaton = a
	return gb
}

// AddRule adds a production with declared symbols. It returns false if the LHS
// or any RHS symbol has not been declared before. Actions must be named, as
// only names survive serialization.
func (gb *GrammarBuilder) AddRule(lhs string, rhs []Symbol, actionName string, action Action) (*Production, bool) {
	if gb.done {
		return nil, false
	}
	if actionName == "" && action != nil {
		gb.errs = append(gb.errs, fmt.Errorf("action for rule of %s has no name", lhs))
		return nil, false
	}
	if gb.g.initial == "" && gb.g.IsNonTerminal(lhs) {
		gb.g.initial = lhs
	}
	return gb.g.addRule(lhs, rhs, actionName, action)
}

// LHS starts a new rule, declaring name as a non-terminal.
func (gb *GrammarBuilder) LHS(name string) *RuleBuilder {
	gb.NonTerminal(name)
	return &RuleBuilder{gb: gb, lhs: name}
}

// Grammar returns the grammar built. The builder must not be used afterwards.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.done {
		return nil, fmt.Errorf("grammar builder for %s already used", gb.g.Name)
	}
	gb.done = true
	if gb.g.initial == "" {
		gb.errs = append(gb.errs, fmt.Errorf("grammar %s has no initial symbol", gb.g.Name))
	} else if !gb.g.IsNonTerminal(gb.g.initial) {
		gb.errs = append(gb.errs, fmt.Errorf("initial symbol %s is not declared", gb.g.initial))
	}
	if len(gb.errs) > 0 {
		return nil, fmt.Errorf("building grammar %s: %v", gb.g.Name, gb.errs[0])
	}
	return gb.g, nil
}

// RuleBuilder is a builder type for a single production.
type RuleBuilder struct {
	gb         *GrammarBuilder
	lhs        string
	rhs        []Symbol
	actionName string
	action     Action
}

// N appends a non-terminal to the RHS.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.gb.NonTerminal(name)
	rb.rhs = append(rb.rhs, NonTerminal(name))
	return rb
}

// T appends a terminal to the RHS, with a display name.
func (rb *RuleBuilder) T(name string, t cfgkit.TokType) *RuleBuilder {
	rb.gb.Terminal(name, t)
	rb.rhs = append(rb.rhs, Terminal(t))
	return rb
}

// Action sets the semantic action of the rule.
func (rb *RuleBuilder) Action(name string, action Action) *RuleBuilder {
	rb.actionName, rb.action = name, action
	return rb
}

// End closes the rule and adds it to the grammar.
func (rb *RuleBuilder) End() *Production {
	p, ok := rb.gb.AddRule(rb.lhs, rb.rhs, rb.actionName, rb.action)
	if !ok {
		rb.gb.errs = append(rb.gb.errs, fmt.Errorf("cannot add rule for %s", rb.lhs))
	}
	return p
}

// Epsilon closes a rule with an empty RHS.
func (rb *RuleBuilder) Epsilon() *Production {
	rb.rhs = nil
	return rb.End()
}
