/*
Package lexmach provides a lexer automaton built with the lexmachine scanner
generator.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

An automaton is compiled from a list of token definitions. Each definition
names a regular expression and the token type to produce for it; definitions
flagged as Skip produce no tokens (whitespace, comments).

	defs := []lexmach.TokenDef{
		{ID: 1, Name: "id", Pattern: `[a-z]+`},
		{ID: 2, Name: "+", Pattern: `\+`},
		{Name: "ws", Pattern: `( |\t|\n)+`, Skip: true},
	}
	A, err := lexmach.Compile(defs)
	if err != nil {
		// do error handling
	}

Helpers Literals and Keywords create definitions for fixed strings.

A lexer is instantiated for each concrete input sequence and implements the
scanner.Lexer interface.

	lexer, err := A.Lexer("input string to tokenize")

Automata serialize to JSON as their list of token definitions; Load restores
(and re-compiles) them.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
