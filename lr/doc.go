/*
Package lr implements grammars and the prerequisites for table-driven parsing.
It is mainly intended for small domain-specific languages and configuration
input, and for exploring parsing strategies.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals
carry a token value of type cfgkit.TokType. Grammars may contain epsilon-productions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a", 1).End()  // S  ➞  A a
    b.LHS("A").N("B").N("D").End()     // A  ➞  B D
    b.LHS("B").T("b", 2).End()         // B  ➞  b
    b.LHS("B").Epsilon()               // B  ➞  ε
    b.LHS("D").T("d", 3).End()         // D  ➞  d
    b.LHS("D").Epsilon()               // D  ➞  ε
    g, err := b.Grammar()

This results in the following trivial grammar:

   g.Dump()

   0: S ➞ A a
   1: A ➞ B D
   2: B ➞ b
   3: B ➞ ε
   4: D ➞ d
   5: D ➞ ε

Grammars are immutable. Transformations (RemoveLeftRecursion, Augment) create
new grammars, carrying over semantic actions. Actions are referenced by
identifier, which makes grammars serializable to JSON; an ActionRegistry
resolves identifiers when grammars are read back.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to a GrammarAnalysis object, which computes FIRST and
FOLLOW sets for the grammar and determines all epsilon-derivable non-terminals.

    ga := lr.Analysis(g)  // analyser for grammar above
    for _, n := range g.NonTerminals() {
        fmt.Printf("FIRST(%s) = %v\n", n, ga.First(n))
    }

    // Output:
    FIRST(A) = [ε 2 3]
    FIRST(B) = [ε 2]
    FIRST(D) = [ε 3]
    FIRST(S) = [1 2 3]

Parser Construction

Using grammar analysis as input, a bottom-up parser can be constructed.
First a characteristic finite state machine (CFSM) is built from the
grammar. The CFSM will then be transformed into a combined GOTO/ACTION table
for an SLR(1), LR(1) or LALR(1) parser. The CFSM will not be thrown away,
but is made available to the client. This is intended
for debugging purposes, but may be useful for error recovery, too.
It can be exported to Graphviz's Dot-format.

Example:

    lrgen := lr.NewTableGenerator(lr.Analysis(g.Augment()))
    err := lrgen.CreateTables(true, true)   // LALR(1)

Parsers using these tables live in sub-packages: shiftreduce for LR tables,
ll1 for predictive parsing and earley for general context-free parsing.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cfgkit.lr'.
func tracer() tracing.Trace {
	return tracing.Select("cfgkit.lr")
}
