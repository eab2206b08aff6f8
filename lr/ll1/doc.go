/*
Package ll1 implements predictive LL(1) parsing.

A prediction table maps (non-terminal, lookahead terminal) to the production
to expand. It is built from the FIRST and FOLLOW sets of a grammar and fails
if any cell would receive two productions. Left-recursive grammars are never
LL(1); use lr.Grammar.RemoveLeftRecursion first.

    ga := lr.Analysis(g)
    table, err := ll1.BuildTable(ga)
    if err != nil {
        // *lr.BuildError listing the conflicts
    }
    p := ll1.NewParser(table, ll1.Observe(func(s ll1.Step) { … }))
    info := p.Parse(input, lexer)

For grammars with a valid table, GenerateRecursiveDescent writes the skeleton
of an equivalent recursive-descent recognizer in C.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ll1

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cfgkit.lr'.
func tracer() tracing.Trace {
	return tracing.Select("cfgkit.lr")
}
