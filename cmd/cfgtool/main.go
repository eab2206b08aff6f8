/*
Command cfgtool is a workbench for context-free grammars. It analyses grammars,
transforms them, generates parser tables and parses input with any of the
strategies of package lr: LL(1), SLR(1), LR(1), LALR(1) and Earley.

Grammars are read from grammar files (see package grammarfile). Without a
grammar file, cfgtool uses a built-in grammar for arithmetic expressions:

    cfgtool analyze
    cfgtool parse --strategy lalr "1 + 2 * (3 - 4)"
    cfgtool transform --left-recursion --out expr.json
    cfgtool dot --lookahead --merge > lalr.dot
    cfgtool repl

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
)

// tracer traces with key 'cfgkit.cli'.
func tracer() tracing.Trace {
	return tracing.Select("cfgkit.cli")
}

func main() {
	initDisplay()
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
