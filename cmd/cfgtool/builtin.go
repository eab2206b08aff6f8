package main

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/cfgkit/lr"
	"github.com/npillmayer/cfgkit/lr/scanner"
	"github.com/npillmayer/cfgkit/lr/scanner/lexmach"
)

// We provide a simple expression grammar as a default for experiments.
//
//  Expr   ➞ Expr SumOp Term  |  Term
//  Term   ➞ Term ProdOp Factor  |   Factor
//  Factor ➞ number  |   ( Expr )
//  SumOp  ➞ +  |  -
//  ProdOp ➞ *  |  /
//
// Semantic actions evaluate expressions to integers.
func ExpressionGrammar() (*lr.Grammar, error) {
	a, err := lexmach.Compile(expressionTokens())
	if err != nil {
		return nil, err
	}
	tok := a.TokenNames()
	b := lr.NewGrammarBuilder("Expressions")
	b.LHS("Expr").N("Expr").N("SumOp").N("Term").Action("binop", binop).End()
	b.LHS("Expr").N("Term").Action("first", first).End()
	b.LHS("Term").N("Term").N("ProdOp").N("Factor").Action("binop", binop).End()
	b.LHS("Term").N("Factor").Action("first", first).End()
	b.LHS("Factor").T(tok[scanner.Int], scanner.Int).Action("number", number).End()
	b.LHS("Factor").T(tok['('], '(').N("Expr").T(tok[')'], ')').Action("second", second).End()
	b.LHS("SumOp").T(tok['+'], '+').Action("first", first).End()
	b.LHS("SumOp").T(tok['-'], '-').Action("first", first).End()
	b.LHS("ProdOp").T(tok['*'], '*').Action("first", first).End()
	b.LHS("ProdOp").T(tok['/'], '/').Action("first", first).End()
	b.Automaton(a)
	return b.Grammar()
}

func expressionTokens() []lexmach.TokenDef {
	literals := []string{"+", "-", "*", "/", "(", ")"}
	ids := make(map[string]int)
	for _, lit := range literals {
		ids[lit] = int(lit[0])
	}
	defs := []lexmach.TokenDef{
		{ID: scanner.Int, Name: "number", Pattern: `[0-9]+`},
		{Name: "ws", Pattern: `( |\t|\n|\r)+`, Skip: true},
	}
	return append(defs, lexmach.Literals(literals, ids)...)
}

// Actions returns the registry of actions used by the built-in grammar.
// Grammar files may refer to them, too.
func Actions() *lr.ActionRegistry {
	return lr.NewActionRegistry().
		Register("first", first).
		Register("second", second).
		Register("number", number).
		Register("binop", binop)
}

func first(args []interface{}) interface{}  { return args[0] }
func second(args []interface{}) interface{} { return args[1] }

func number(args []interface{}) interface{} {
	n, err := strconv.Atoi(fmt.Sprint(args[0]))
	if err != nil {
		return err
	}
	return n
}

// binop evaluates 'x op y'. Errors propagate as values.
func binop(args []interface{}) interface{} {
	for _, arg := range args {
		if err, ok := arg.(error); ok {
			return err
		}
	}
	x, ok1 := args[0].(int)
	y, ok2 := args[2].(int)
	if !ok1 || !ok2 {
		return fmt.Errorf("operands %v and %v are not numbers", args[0], args[2])
	}
	switch args[1] {
	case "+":
		return x + y
	case "-":
		return x - y
	case "*":
		return x * y
	case "/":
		if y == 0 {
			return fmt.Errorf("division by zero")
		}
		return x / y
	}
	return fmt.Errorf("unknown operator %v", args[1])
}
