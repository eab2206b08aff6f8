package main

import (
	"os"

	"github.com/npillmayer/cfgkit/grammarfile"
	"github.com/npillmayer/cfgkit/lr"
	"github.com/npillmayer/cfgkit/lr/ll1"
	"github.com/npillmayer/cfgkit/lr/scanner/lexmach"
	"github.com/spf13/cobra"
)

var transformFlags = struct {
	leftRecursion *bool
	augment       *bool
	out           *string
}{}

var dotFlags = struct {
	lookahead *bool
	merge     *bool
	out       *string
}{}

func init() {
	transform := &cobra.Command{
		Use:   "transform",
		Short: "Transform a grammar and write it as a grammar file",
		Args:  cobra.NoArgs,
		RunE:  runTransform,
	}
	transformFlags.leftRecursion = transform.Flags().BoolP("left-recursion", "l", false, "remove left recursion")
	transformFlags.augment = transform.Flags().BoolP("augment", "a", false, "augment the grammar")
	transformFlags.out = transform.Flags().StringP("out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(transform)
	//
	rdgen := &cobra.Command{
		Use:   "rdgen",
		Short: "Generate a recursive-descent recognizer in C for an LL(1) grammar",
		Args:  cobra.NoArgs,
		RunE:  runRDGen,
	}
	rootCmd.AddCommand(rdgen)
	//
	dot := &cobra.Command{
		Use:   "dot",
		Short: "Export the LR state machine in Graphviz Dot format",
		Args:  cobra.NoArgs,
		RunE:  runDot,
	}
	dotFlags.lookahead = dot.Flags().Bool("lookahead", false, "use LR(1) items")
	dotFlags.merge = dot.Flags().Bool("merge", false, "merge states with identical cores")
	dotFlags.out = dot.Flags().StringP("out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(dot)
}

func runTransform(*cobra.Command, []string) error {
	g, err := loadGrammar()
	if err != nil {
		return err
	}
	if *transformFlags.leftRecursion {
		g = g.RemoveLeftRecursion()
	}
	if *transformFlags.augment && !g.IsAugmented() {
		g = g.Augment()
	}
	f := &grammarfile.File{Grammars: []*lr.Grammar{g}}
	if a, ok := g.Automaton().(*lexmach.Automaton); ok {
		f.Tokens = a.TokenDefs()
	}
	w, closer, err := output(*transformFlags.out)
	if err != nil {
		return err
	}
	if err := grammarfile.Encode(w, f); err != nil {
		closer()
		return err
	}
	return closer()
}

func runRDGen(*cobra.Command, []string) error {
	g, err := loadGrammar()
	if err != nil {
		return err
	}
	wb := newSession(g).bench(LL1)
	if _, err := wb.LL1Table(); err != nil {
		return err
	}
	return ll1.GenerateRecursiveDescent(wb.Analysis(), os.Stdout)
}

func runDot(*cobra.Command, []string) error {
	g, err := loadGrammar()
	if err != nil {
		return err
	}
	lrgen, err := newSession(g).bench(LALR).LRTables(*dotFlags.lookahead, *dotFlags.merge)
	if err != nil {
		return err
	}
	w, closer, err := output(*dotFlags.out)
	if err != nil {
		return err
	}
	if err := lrgen.CFSM().CFSM2GraphViz(w); err != nil {
		closer()
		return err
	}
	return closer()
}
