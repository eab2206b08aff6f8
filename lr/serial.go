package lr

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/npillmayer/cfgkit"
	"github.com/npillmayer/cfgkit/lr/scanner"
)

// MarshalJSON encodes terminals as JSON numbers and non-terminals as JSON strings.
func (s Symbol) MarshalJSON() ([]byte, error) {
	if s.IsTerminal() {
		return json.Marshal(int(s.token))
	}
	return json.Marshal(s.name)
}

// UnmarshalJSON decodes a symbol encoded by MarshalJSON.
func (s *Symbol) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*s = NonTerminal(name)
		return nil
	}
	var t int
	if err := json.Unmarshal(data, &t); err != nil {
		return fmt.Errorf("symbol is neither a string nor an integer: %s", data)
	}
	*s = Terminal(cfgkit.TokType(t))
	return nil
}

// GrammarRecord is the serialized form of a grammar.
type GrammarRecord struct {
	Name               string                    `json:"name"`
	InitialSymbol      string                    `json:"initialSymbol"`
	TerminalSymbols    []cfgkit.TokType          `json:"terminalSymbols"`
	TokenNames         map[cfgkit.TokType]string `json:"tokenNames,omitempty"`
	NonTerminalSymbols []string                  `json:"nonTerminalSymbols"`
	Productions        []RuleGroup               `json:"productions"`
	Automaton          json.RawMessage           `json:"automaton"`
}

// RuleGroup holds the alternatives for one LHS. It serializes as a
// two-element array [LHS, [alternatives]].
type RuleGroup struct {
	LHS          string
	Alternatives []Alternative
}

// Alternative is a RHS together with the identifier of its action.
// A nil Callback denotes a production without action.
type Alternative struct {
	RHS      []Symbol `json:"RHS"`
	Callback *string  `json:"callback"`
}

// MarshalJSON encodes a rule group as [LHS, [alternatives]].
func (rg RuleGroup) MarshalJSON() ([]byte, error) {
	alts := rg.Alternatives
	if alts == nil {
		alts = []Alternative{}
	}
	return json.Marshal([]interface{}{rg.LHS, alts})
}

// UnmarshalJSON decodes [LHS, [alternatives]].
func (rg *RuleGroup) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("rule group must be a pair [LHS, alternatives]")
	}
	if err := json.Unmarshal(pair[0], &rg.LHS); err != nil {
		return fmt.Errorf("rule group LHS: %w", err)
	}
	return json.Unmarshal(pair[1], &rg.Alternatives)
}

// Record creates the serialized form of g. The attached automaton is
// serialized if it implements json.Marshaler.
func (g *Grammar) Record() (*GrammarRecord, error) {
	rec := &GrammarRecord{
		Name:               g.Name,
		InitialSymbol:      g.initial,
		TerminalSymbols:    g.Terminals(),
		NonTerminalSymbols: g.NonTerminals(),
	}
	if len(g.tokenNames) > 0 {
		rec.TokenNames = make(map[cfgkit.TokType]string, len(g.tokenNames))
		for t, n := range g.tokenNames {
			rec.TokenNames[t] = n
		}
	}
	g.rules.Each(func(k, v interface{}) {
		group := RuleGroup{LHS: k.(string)}
		for _, p := range g.Productions(group.LHS) {
			alt := Alternative{RHS: p.rhs}
			if alt.RHS == nil {
				alt.RHS = []Symbol{}
			}
			if p.actionName != "" {
				name := p.actionName
				alt.Callback = &name
			}
			group.Alternatives = append(group.Alternatives, alt)
		}
		rec.Productions = append(rec.Productions, group)
	})
	if m, ok := g.automaton.(json.Marshaler); ok {
		data, err := m.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("serializing automaton of grammar %s: %w", g.Name, err)
		}
		rec.Automaton = data
	}
	return rec, nil
}

// MarshalJSON serializes a grammar.
func (g *Grammar) MarshalJSON() ([]byte, error) {
	rec, err := g.Record()
	if err != nil {
		return nil, err
	}
	return json.Marshal(rec)
}

// AutomatonLoader restores a lexer automaton from its serialized form.
type AutomatonLoader func(json.RawMessage) (scanner.Automaton, error)

// FromRecord restores a grammar from its serialized form. Action identifiers
// are resolved by registry, automata by load; both may be nil. Any malformed
// or inconsistent record results in an error and no grammar.
func FromRecord(rec *GrammarRecord, registry *ActionRegistry, load AutomatonLoader) (*Grammar, error) {
	if rec == nil {
		return nil, fmt.Errorf("no grammar record")
	}
	g := newGrammar(rec.Name)
	for _, t := range rec.TerminalSymbols {
		if t.IsReserved() {
			return nil, fmt.Errorf("grammar %s: terminal %d is reserved", rec.Name, t)
		}
		g.declareTerminal(t, rec.TokenNames[t])
	}
	for _, n := range rec.NonTerminalSymbols {
		if n == "" {
			return nil, fmt.Errorf("grammar %s: empty non-terminal name", rec.Name)
		}
		g.declareNonTerminal(n)
	}
	if !g.IsNonTerminal(rec.InitialSymbol) {
		return nil, fmt.Errorf("grammar %s: initial symbol %q not declared", rec.Name, rec.InitialSymbol)
	}
	g.initial = rec.InitialSymbol
	for _, group := range rec.Productions {
		for _, alt := range group.Alternatives {
			var name string
			if alt.Callback != nil {
				name = *alt.Callback
			}
			action, ok := registry.Lookup(name)
			if !ok {
				return nil, fmt.Errorf("grammar %s: unknown action %q", rec.Name, name)
			}
			if _, ok := g.addRule(group.LHS, alt.RHS, name, action); !ok {
				return nil, fmt.Errorf("grammar %s: invalid rule for %q", rec.Name, group.LHS)
			}
		}
	}
	if len(rec.Automaton) > 0 && !bytes.Equal(bytes.TrimSpace(rec.Automaton), []byte("null")) && load != nil {
		a, err := load(rec.Automaton)
		if err != nil {
			return nil, fmt.Errorf("grammar %s: %w", rec.Name, err)
		}
		g.automaton = a
	}
	return g, nil
}

// UnmarshalGrammar deserializes a grammar, see FromRecord.
func UnmarshalGrammar(data []byte, registry *ActionRegistry, load AutomatonLoader) (*Grammar, error) {
	rec := &GrammarRecord{}
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("malformed grammar: %w", err)
	}
	return FromRecord(rec, registry, load)
}
