package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

var replFlags = struct {
	strategy *string
	initFile *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse input lines interactively",
		Long: `repl starts an interactive session. Input lines are parsed with the
current strategy. Lines starting with ':' are commands:

  :strategy [ll1|slr|lr1|lalr|earley]   switch or show parsing strategy
  :steps [on|off]                       print parser steps
  :grammar                              print productions
  :analyze                              print FIRST/FOLLOW sets
  :quit                                 leave (or <ctrl>D)`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
	replFlags.strategy = cmd.Flags().StringP("strategy", "s", Earley, "initial parsing strategy")
	replFlags.initFile = cmd.Flags().String("init", "", "file with input lines to process first")
	rootCmd.AddCommand(cmd)
}

// Intp is our interpreter object.
type Intp struct {
	session  *session
	strategy string
	steps    bool
	repl     *readline.Instance
}

func runREPL(*cobra.Command, []string) error {
	g, err := loadGrammar()
	if err != nil {
		return err
	}
	repl, err := readline.New("cfgtool> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	intp := &Intp{session: newSession(g), repl: repl}
	if _, err := intp.Eval(":strategy " + *replFlags.strategy); err != nil {
		return err
	}
	pterm.Info.Printf("Grammar %s, quit with <ctrl>D\n", g.Name)
	intp.loadInitFile(*replFlags.initFile)
	intp.REPL()
	return nil
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	lineno := 1
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if _, err := intp.Eval(line); err != nil {
			tracer().Errorf("Error line %d: %v", lineno, err)
		}
		lineno++
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading init file: %v", err)
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Println("Good bye!")
}

// Eval processes a command or parses an input line. It returns true if the
// user asked to quit.
func (intp *Intp) Eval(line string) (bool, error) {
	if !strings.HasPrefix(line, ":") {
		info, g, err := intp.session.parse(intp.strategy, line)
		if err != nil {
			return false, err
		}
		report(info, g)
		return false, nil
	}
	args := strings.Fields(line[1:])
	if len(args) == 0 {
		return false, fmt.Errorf("empty command")
	}
	switch args[0] {
	case "quit", "q":
		return true, nil
	case "strategy":
		if len(args) > 1 {
			if !slices.Contains(strategies, args[1]) {
				return false, fmt.Errorf("unknown strategy %q, use one of %s",
					args[1], strings.Join(strategies, ", "))
			}
			intp.strategy = args[1]
		}
		pterm.Info.Printf("strategy is %s\n", intp.strategy)
	case "steps":
		intp.steps = len(args) < 2 || args[1] == "on"
		intp.session.onStep = nil
		if intp.steps {
			intp.session.onStep = func(step string) { pterm.Println(step) }
		}
	case "grammar":
		g := intp.session.bench(intp.strategy).G
		return false, productionTable(g).Render()
	case "analyze":
		return false, setTable(intp.session.bench(intp.strategy).Analysis()).Render()
	default:
		return false, fmt.Errorf("unknown command %q", args[0])
	}
	return false, nil
}
