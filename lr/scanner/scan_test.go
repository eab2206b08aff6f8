package scanner

import (
	"testing"

	"github.com/npillmayer/cfgkit"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var tokenCounts = []int{1, 3, 3, 3, 5}

func TestGoLexer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.scanner")
	defer teardown()
	//
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		lexer := NewGoLexer(input)
		token, pos := lexer.NextToken(0)
		count := 0
		for token.TokType() != cfgkit.EndOfInput {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token, pos = lexer.NextToken(pos)
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestGoLexerRescan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.scanner")
	defer teardown()
	//
	lexer := NewGoLexer("a + b")
	tok1, p1 := lexer.NextToken(0)
	tok2, p2 := lexer.NextToken(0)
	if tok1.Lexeme() != tok2.Lexeme() || p1 != p2 {
		t.Errorf("scanning the same position twice should yield the same token")
	}
	tok, _ := lexer.NextToken(p1)
	if tok.TokType() != '+' {
		t.Errorf("expected '+', got %v", tok.TokType())
	}
	if tok.Span().From() != 2 {
		t.Errorf("expected '+' to start at 2, starts at %d", tok.Span().From())
	}
}

// stuckLexer never moves forward.
type stuckLexer struct {
	input string
}

func (l stuckLexer) NextToken(pos int) (cfgkit.Token, int) {
	if pos >= len(l.input) {
		return MakeDefaultToken(cfgkit.EndOfInput, "", span(pos, pos)), pos
	}
	return MakeDefaultToken(7, "", span(pos, pos)), pos
}

func (l stuckLexer) Advance(pos int) int {
	return AdvanceRune(l.input, pos)
}

func TestTokenStreamForcesProgress(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.scanner")
	defer teardown()
	//
	ts := NewTokenStream("xy", stuckLexer{input: "xy"})
	var types []cfgkit.TokType
	for tok := ts.Next(); tok.TokType() != cfgkit.EndOfInput; tok = ts.Next() {
		types = append(types, tok.TokType())
		ts.Consume()
	}
	if len(types) != 2 || types[0] != cfgkit.LexError || types[1] != cfgkit.LexError {
		t.Errorf("expected two lexical errors, got %v", types)
	}
	lx := ts.Lexemes()
	if len(lx) != 2 || lx[0] != "x" || lx[1] != "y" {
		t.Errorf("expected lexemes [x y], got %v", lx)
	}
}

func TestTokenStreamLexemes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.scanner")
	defer teardown()
	//
	input := "id + id"
	ts := NewTokenStream(input, NewGoLexer(input))
	for tok := ts.Next(); tok.TokType() != cfgkit.EndOfInput; tok = ts.Next() {
		ts.Consume()
	}
	lx := ts.Lexemes()
	if len(lx) != 3 || lx[0] != "id" || lx[1] != "+" || lx[2] != "id" {
		t.Errorf("expected lexemes [id + id], got %v", lx)
	}
}

func TestGoLexerUnterminatedComment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.scanner")
	defer teardown()
	//
	input := "1 /* open"
	lexer := NewGoLexer(input)
	_, pos := lexer.NextToken(0)
	tok, next := lexer.NextToken(pos)
	if tok.TokType() != cfgkit.LexError {
		t.Fatalf("expected lexical error for unterminated comment, got %v", tok.TokType())
	}
	if tok.Span().From() != 2 || next != 2 || tok.Lexeme() != "/* open" {
		t.Errorf("expected error at 2 covering '/* open', is %q @%d, next=%d",
			tok.Lexeme(), tok.Span().From(), next)
	}
	ts := NewTokenStream(input, NewGoLexer(input))
	var types []cfgkit.TokType
	for tok := ts.Next(); tok.TokType() != cfgkit.EndOfInput; tok = ts.Next() {
		types = append(types, tok.TokType())
		ts.Consume()
	}
	if len(types) < 2 || types[1] != cfgkit.LexError {
		t.Errorf("expected token stream to report the error, got %v", types)
	}
}
