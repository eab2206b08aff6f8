package lexmach

import (
	"encoding/json"
	"testing"

	"github.com/npillmayer/cfgkit"
	"github.com/npillmayer/cfgkit/lr/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var tokenCounts = []int{1, 3, 2, 3, 3}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.scanner")
	defer teardown()
	//
	A, err := Compile(lispTokens())
	if err != nil {
		t.Fatal(err)
	}
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		lexer, err := A.Lexer(input)
		if err != nil {
			t.Fatal(err)
		}
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

func TestLMUnconsumedInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.scanner")
	defer teardown()
	//
	A, err := Compile(lispTokens())
	if err != nil {
		t.Fatal(err)
	}
	input := "a % b"
	lexer, _ := A.Lexer(input)
	ts := scanner.NewTokenStream(input, lexer)
	var types []cfgkit.TokType
	for tok := ts.Next(); tok.TokType() != cfgkit.EndOfInput; tok = ts.Next() {
		types = append(types, tok.TokType())
		ts.Consume()
	}
	if len(types) != 3 || types[1] != cfgkit.LexError {
		t.Errorf("expected [ID #err ID], got %v", types)
	}
	if lx := ts.Lexemes(); len(lx) != 3 || lx[1] != "%" {
		t.Errorf("expected error lexeme %%, got %v", lx)
	}
}

func TestLMSerialization(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.scanner")
	defer teardown()
	//
	A, err := Compile(lispTokens())
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(A)
	if err != nil {
		t.Fatal(err)
	}
	B, err := Load(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(B.(*Automaton).TokenDefs()) != len(A.TokenDefs()) {
		t.Errorf("restored automaton has %d definitions, expected %d",
			len(B.(*Automaton).TokenDefs()), len(A.TokenDefs()))
	}
	if _, err := Load(json.RawMessage(`{"id": 1}`)); err == nil {
		t.Errorf("expected malformed automaton to be rejected")
	}
}

func lispTokens() []TokenDef {
	ids := map[string]int{"nil": 20, "t": 21}
	literals := []string{"'", "(", ")", "[", "]", "=", "+", "-", "*", "/"}
	for i, lit := range literals {
		ids[lit] = i + 10
	}
	defs := []TokenDef{
		{Name: "COMMENT", Pattern: `//[^\n]*\n?`, Skip: true},
		{ID: scanner.String, Name: "STRING", Pattern: `\"[^"]*\"`},
	}
	defs = append(defs, Keywords([]string{"nil", "t"}, ids)...)
	defs = append(defs, TokenDef{ID: scanner.Ident, Name: "ID",
		Pattern: `#?([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_|-)*[!\?]?`})
	defs = append(defs, TokenDef{ID: scanner.Int, Name: "NUM", Pattern: `[1-9][0-9]*`})
	defs = append(defs, TokenDef{Name: "WS", Pattern: `( |\,|\t|\n|\r)+`, Skip: true})
	defs = append(defs, Literals(literals, ids)...)
	return defs
}

func TestLMTokenNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgkit.scanner")
	defer teardown()
	//
	a, err := Compile(lispTokens())
	if err != nil {
		t.Fatal(err)
	}
	names := a.TokenNames()
	if names[scanner.Int] != "NUM" || names[scanner.Ident] != "ID" || names[10] != "'" {
		t.Errorf("unexpected token names: %v", names)
	}
	for _, n := range names {
		if n == "WS" || n == "COMMENT" {
			t.Errorf("expected skipped definitions to have no token type, found %q", n)
		}
	}
}
