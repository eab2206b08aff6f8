package cfgkit

import (
	"fmt"
	"text/scanner"
)

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. Applications define their own token
// categories as positive integers; a few values are reserved, see below.
type TokType int

// Reserved token categories.
//
// EndOfInput is identical to text/scanner.EOF. Epsilon doubles as the placeholder
// lookahead of LR(0) items and never denotes an input token.
const (
	EndOfInput TokType = scanner.EOF
	Epsilon    TokType = 0
	LexError   TokType = -100
)

// IsReserved returns true for token categories clients must not use for terminals.
func (t TokType) IsReserved() bool {
	return t == EndOfInput || t == Epsilon || t == LexError
}

func (t TokType) String() string {
	switch t {
	case EndOfInput:
		return "#eof"
	case Epsilon:
		return "ε"
	case LexError:
		return "#err"
	}
	return fmt.Sprintf("%d", int(t))
}

// Tokens represent input tokens. They are usually produced by a lexer and
// reflect terminals in a language.
//
// An example would be a token for a floating point numer:
//
//    TokType = Float       // identifier for this kind of tokens (appliation specific)
//    Lexeme  = "3.1316"    // lexeme how it appreared in the input stream
//    Value   = 3.1416      // is a float64 value
//    Span    = 67…73       // occured from position 67 in the input stream
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run.
// A span denotes a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
