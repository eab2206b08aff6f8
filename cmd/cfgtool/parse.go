package main

import (
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	strategy       *string
	steps          *bool
	maxDerivations *int
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse [input]",
		Short:   "Parse input with a parsing strategy",
		Example: `  cfgtool parse --strategy lalr "1 + 2 * 3"` + "\n" + `  echo "1+2" | cfgtool parse --strategy earley`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runParse,
	}
	parseFlags.strategy = cmd.Flags().StringP("strategy", "s", Earley, "parsing strategy [ll1|slr|lr1|lalr|earley]")
	parseFlags.steps = cmd.Flags().Bool("steps", false, "print every step of the parser")
	parseFlags.maxDerivations = cmd.Flags().Int("max-derivations", 0, "limit the number of Earley derivations (default 64)")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	g, err := loadGrammar()
	if err != nil {
		return err
	}
	var input string
	if len(args) > 0 {
		input = args[0]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		input = strings.TrimSpace(string(data))
	}
	s := newSession(g)
	s.maxDerivations = *parseFlags.maxDerivations
	if *parseFlags.steps {
		s.onStep = func(step string) { pterm.Println(step) }
	}
	info, pg, err := s.parse(*parseFlags.strategy, input)
	if err != nil {
		return err
	}
	report(info, pg)
	return nil
}
