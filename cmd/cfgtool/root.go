package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/cfgkit/grammarfile"
	"github.com/npillmayer/cfgkit/lr"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	trace   *string
	grammar *string
	name    *string
}{}

var rootCmd = &cobra.Command{
	Use:   "cfgtool",
	Short: "Analyse, transform and parse with context-free grammars",
	Long: `cfgtool is a workbench for context-free grammars:
- analyses grammars (FIRST/FOLLOW sets, parser table conflicts),
- removes left recursion and augments grammars,
- parses input with LL(1), SLR(1), LR(1), LALR(1) or Earley parsers.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setupTracing,
}

func init() {
	rootFlags.trace = rootCmd.PersistentFlags().StringP("trace", "t", "Error", "trace level [Debug|Info|Error]")
	rootFlags.grammar = rootCmd.PersistentFlags().StringP("grammar", "g", "", "grammar file (default built-in expression grammar)")
	rootFlags.name = rootCmd.PersistentFlags().StringP("name", "n", "", "name of grammar within grammar file (default first)")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	return nil
}

var traceKeys = []string{"cfgkit.lr", "cfgkit.scanner", "cfgkit.cli"}

func setupTracing(*cobra.Command, []string) error {
	gtrace.SyntaxTracer = gologadapter.New()
	level := tracing.TraceLevelFromString(*rootFlags.trace)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
	tracer().Debugf("trace level is %s", *rootFlags.trace)
	return nil
}

// loadGrammar returns the grammar selected by the global flags.
func loadGrammar() (*lr.Grammar, error) {
	if *rootFlags.grammar == "" {
		return ExpressionGrammar()
	}
	f, err := grammarfile.ReadFile(*rootFlags.grammar, Actions())
	if err != nil {
		return nil, fmt.Errorf("cannot read grammar file: %w", err)
	}
	return selectGrammar(f, *rootFlags.name)
}

func selectGrammar(f *grammarfile.File, name string) (*lr.Grammar, error) {
	if len(f.Grammars) == 0 {
		return nil, fmt.Errorf("grammar file contains no grammar")
	}
	if name == "" {
		return f.Grammars[0], nil
	}
	if g := f.Grammar(name); g != nil {
		return g, nil
	}
	return nil, fmt.Errorf("grammar file contains no grammar %q", name)
}

// output returns stdout or a created file, and a function to close it.
func output(path string) (*os.File, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
