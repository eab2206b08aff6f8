/*
Package scanner defines the lexer interface used by the parsers of package lr.

Lexers are position based: given a scan position in the input, a lexer returns
the next token and the position behind it. This lets parsers re-scan and lets
them force progress after lexical errors.

Two lexer implementations are provided: (1) a thin wrapper over the Go std lib
'text/scanner', and (2) a lexmachine-based automaton, living in sub-package `lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"strings"
	"text/scanner"
	"unicode/utf8"

	"github.com/npillmayer/cfgkit"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cfgkit.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("cfgkit.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token types are replicated here for practical reasons.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Lexer produces tokens for an input string.
//
// NextToken scans the token starting at or after pos and returns it together
// with the position behind it. At the end of input it returns a token of type
// cfgkit.EndOfInput. Unrecognized input results in a token of type
// cfgkit.LexError.
//
// Advance returns the position one input character behind pos. Parsers use
// it to skip over unrecognized input.
type Lexer interface {
	NextToken(pos int) (cfgkit.Token, int)
	Advance(pos int) int
}

// Automaton is a recognizer which creates lexers for input strings.
type Automaton interface {
	Lexer(input string) (Lexer, error)
}

// AdvanceRune moves pos behind the next UTF-8 character of input.
func AdvanceRune(input string, pos int) int {
	if pos >= len(input) {
		return len(input)
	}
	_, w := utf8.DecodeRuneInString(input[pos:])
	return pos + w
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the Go
// lexer as well as the lexmachine lexer.
type DefaultToken struct {
	kind   cfgkit.TokType
	lexeme string
	Val    interface{}
	span   cfgkit.Span
}

// MakeDefaultToken creates a token.
func MakeDefaultToken(typ cfgkit.TokType, lexeme string, span cfgkit.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

// TokType is part of interface cfgkit.Token.
func (t DefaultToken) TokType() cfgkit.TokType {
	return t.kind
}

// Value is part of interface cfgkit.Token.
func (t DefaultToken) Value() interface{} {
	return t.Val
}

// Lexeme is part of interface cfgkit.Token.
func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

// Span is part of interface cfgkit.Token.
func (t DefaultToken) Span() cfgkit.Span {
	return t.span
}

func span(from, to int) cfgkit.Span {
	return cfgkit.Span{uint64(from), uint64(to)}
}

// --- Go lexer --------------------------------------------------------------

// GoLexer is a lexer accepting tokens similar to the Go language, backed by
// scanner.Scanner. Token types are the ones of text/scanner; single characters
// are tokens of their own, with the character's code as token type.
type GoLexer struct {
	input        string
	mode         uint
	unifyStrings bool
}

var _ Lexer = (*GoLexer)(nil)

// NewGoLexer creates a Go-like lexer for an input string.
func NewGoLexer(input string, opts ...Option) *GoLexer {
	l := &GoLexer{input: input, mode: scanner.GoTokens}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NextToken is part of the Lexer interface.
func (l *GoLexer) NextToken(pos int) (cfgkit.Token, int) {
	if pos >= len(l.input) {
		return MakeDefaultToken(cfgkit.EndOfInput, "", span(len(l.input), len(l.input))), len(l.input)
	}
	var s scanner.Scanner
	s.Init(strings.NewReader(l.input[pos:]))
	s.Mode = l.mode
	failed := false
	s.Error = func(_ *scanner.Scanner, msg string) {
		tracer().Errorf("scanner error at %d: %s", pos, msg)
		failed = true
	}
	r := s.Scan()
	from, to := pos+s.Position.Offset, pos+s.Pos().Offset
	if failed {
		if r == scanner.EOF { // e.g., unterminated comment
			rest := l.input[pos:]
			from, to = pos+len(rest)-len(strings.TrimLeft(rest, " \t\r\n")), len(l.input)
		}
		return MakeDefaultToken(cfgkit.LexError, l.input[from:to], span(from, to)), from
	}
	if r == scanner.EOF {
		return MakeDefaultToken(cfgkit.EndOfInput, "", span(len(l.input), len(l.input))), len(l.input)
	}
	if l.unifyStrings && (r == scanner.RawString || r == scanner.Char) {
		r = scanner.String
	}
	return MakeDefaultToken(cfgkit.TokType(r), s.TokenText(), span(from, to)), to
}

// Advance is part of the Lexer interface.
func (l *GoLexer) Advance(pos int) int {
	return AdvanceRune(l.input, pos)
}

// GoAutomaton creates Go lexers. It may be attached to grammars.
type GoAutomaton struct {
	Options []Option
}

// Lexer is part of interface Automaton.
func (a GoAutomaton) Lexer(input string) (Lexer, error) {
	return NewGoLexer(input, a.Options...), nil
}

// --- Lexer options for the Go lexer ----------------------------------------

// Option configures a Go lexer.
type Option func(l *GoLexer)

// SkipComments sets or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(l *GoLexer) {
		if b {
			l.mode |= scanner.SkipComments
		} else {
			l.mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(l *GoLexer) {
		l.unifyStrings = b
	}
}
