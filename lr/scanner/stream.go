package scanner

import (
	"github.com/npillmayer/cfgkit"
)

// TokenStream feeds tokens from a lexer to a parser and collects the lexemes
// of all tokens the parser consumes.
//
// A stream guarantees progress: a lexical error forces the lexer to skip one
// input character, and a token which does not move the scan position is turned
// into a lexical error and skipped.
type TokenStream struct {
	input   string
	lexer   Lexer
	pos     int
	next    int
	token   cfgkit.Token
	lexemes []string
}

// NewTokenStream creates a token stream for an input and a lexer for it.
func NewTokenStream(input string, lexer Lexer) *TokenStream {
	return &TokenStream{input: input, lexer: lexer}
}

// Next scans the next token, starting from the position behind the last
// consumed token. Calling Next again without Consume re-scans.
func (ts *TokenStream) Next() cfgkit.Token {
	tok, next := ts.lexer.NextToken(ts.pos)
	from := ts.pos
	if tok.TokType() == cfgkit.LexError {
		if start := int(tok.Span().From()); start > from && start <= next {
			from = start // lexer skipped input before failing
		}
		next = ts.lexer.Advance(next)
		tracer().Debugf("lexical error at %d, skipping to %d", from, next)
	}
	if tok.TokType() != cfgkit.EndOfInput && next <= ts.pos {
		next = ts.lexer.Advance(ts.pos)
		tracer().Debugf("lexer stalled at %d, skipping to %d", ts.pos, next)
		tok = nil
	}
	if tok == nil || tok.TokType() == cfgkit.LexError {
		if next > len(ts.input) {
			next = len(ts.input)
		}
		if from > next {
			from = next
		}
		tok = MakeDefaultToken(cfgkit.LexError, ts.input[from:next], span(from, next))
	}
	ts.token, ts.next = tok, next
	return tok
}

// Consume accepts the current token, records its lexeme and moves behind it.
// End of input is never consumed.
func (ts *TokenStream) Consume() {
	if ts.token == nil || ts.token.TokType() == cfgkit.EndOfInput {
		return
	}
	ts.lexemes = append(ts.lexemes, ts.token.Lexeme())
	ts.pos = ts.next
	ts.token = nil
}

// Lexemes returns the lexemes of all consumed tokens.
func (ts *TokenStream) Lexemes() []string {
	return ts.lexemes
}
