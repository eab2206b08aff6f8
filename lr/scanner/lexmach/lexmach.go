package lexmach

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/npillmayer/cfgkit"
	"github.com/npillmayer/cfgkit/lr/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'cfgkit.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("cfgkit.scanner")
}

// TokenDef defines a token by a regular expression.
type TokenDef struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
	Skip    bool   `json:"skip,omitempty"`
}

// Literals creates token definitions for literal strings ('[', ';', …),
// escaping every character. ids maps literals to their token types.
func Literals(literals []string, ids map[string]int) []TokenDef {
	defs := make([]TokenDef, 0, len(literals))
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		defs = append(defs, TokenDef{ID: ids[lit], Name: lit, Pattern: r})
	}
	return defs
}

// Keywords creates token definitions for keywords ("if", "for", …), matching
// their lower case form. ids maps keywords to their token types.
func Keywords(keywords []string, ids map[string]int) []TokenDef {
	defs := make([]TokenDef, 0, len(keywords))
	for _, kw := range keywords {
		defs = append(defs, TokenDef{ID: ids[kw], Name: kw, Pattern: strings.ToLower(kw)})
	}
	return defs
}

// Automaton is a DFA compiled by lexmachine. It implements scanner.Automaton.
type Automaton struct {
	defs  []TokenDef
	lexer *lexmachine.Lexer
}

var _ scanner.Automaton = (*Automaton)(nil)

// Compile creates an automaton from token definitions. Earlier definitions
// take precedence over later ones for matches of equal length.
//
// Compile will return an error if compiling the DFA failed.
func Compile(defs []TokenDef) (*Automaton, error) {
	a := &Automaton{
		defs:  append([]TokenDef{}, defs...),
		lexer: lexmachine.NewLexer(),
	}
	for _, d := range a.defs {
		if d.Skip {
			a.lexer.Add([]byte(d.Pattern), Skip)
			continue
		}
		if cfgkit.TokType(d.ID).IsReserved() {
			return nil, fmt.Errorf("token %q uses reserved token value %d", d.Name, d.ID)
		}
		a.lexer.Add([]byte(d.Pattern), MakeToken(d.ID))
	}
	if err := a.lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return a, nil
}

// TokenDefs returns the definitions the automaton has been compiled from.
func (a *Automaton) TokenDefs() []TokenDef {
	return a.defs
}

// TokenNames maps token types to the names of their definitions.
func (a *Automaton) TokenNames() map[cfgkit.TokType]string {
	names := make(map[cfgkit.TokType]string)
	for _, d := range a.defs {
		if !d.Skip {
			names[cfgkit.TokType(d.ID)] = d.Name
		}
	}
	return names
}

// MarshalJSON serializes an automaton as its token definitions.
func (a *Automaton) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.defs)
}

// Load restores an automaton serialized by MarshalJSON.
func Load(data json.RawMessage) (scanner.Automaton, error) {
	var defs []TokenDef
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("malformed automaton: %w", err)
	}
	return Compile(defs)
}

// Lexer creates a lexer for an input string.
func (a *Automaton) Lexer(input string) (scanner.Lexer, error) {
	s, err := a.lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &Lexer{scanner: s, input: input}, nil
}

// Lexer is a lexer for lexmachine scanners, implementing the scanner.Lexer
// interface.
type Lexer struct {
	scanner *lexmachine.Scanner
	input   string
}

var _ scanner.Lexer = (*Lexer)(nil)

// NextToken is part of the scanner.Lexer interface.
// Unconsumable input yields a LexError token positioned at the start of
// the offending input.
func (l *Lexer) NextToken(pos int) (cfgkit.Token, int) {
	l.scanner.TC = pos
	tok, err, eof := l.scanner.Next()
	if eof {
		end := len(l.input)
		return scanner.MakeDefaultToken(cfgkit.EndOfInput, "", cfgkit.Span{uint64(end), uint64(end)}), end
	}
	if err != nil {
		start := pos
		if ui, is := err.(*machines.UnconsumedInput); is {
			tracer().Debugf("unconsumed input at %d..%d", ui.StartTC, ui.FailTC)
			start = ui.StartTC
		} else {
			tracer().Errorf("scanner error: %v", err)
		}
		return scanner.MakeDefaultToken(cfgkit.LexError, "", cfgkit.Span{uint64(start), uint64(start)}), start
	}
	token := tok.(*lexmachine.Token)
	t := scanner.MakeDefaultToken(
		cfgkit.TokType(token.Type),
		string(token.Lexeme),
		cfgkit.Span{uint64(token.TC), uint64(l.scanner.TC)},
	)
	return t, l.scanner.TC
}

// Advance is part of the scanner.Lexer interface.
func (l *Lexer) Advance(pos int) int {
	return scanner.AdvanceRune(l.input, pos)
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
