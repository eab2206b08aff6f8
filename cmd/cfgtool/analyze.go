package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/cfgkit"
	"github.com/npillmayer/cfgkit/lr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print productions, FIRST/FOLLOW sets and parser table conflicts",
		Args:  cobra.NoArgs,
		RunE:  runAnalyze,
	}
	rootCmd.AddCommand(cmd)
}

func runAnalyze(*cobra.Command, []string) error {
	g, err := loadGrammar()
	if err != nil {
		return err
	}
	s := newSession(g)
	ga := s.bench(Earley).Analysis()
	pterm.DefaultSection.Println(g.Name)
	if err := productionTable(g).Render(); err != nil {
		return err
	}
	if err := setTable(ga).Render(); err != nil {
		return err
	}
	verdicts := pterm.TableData{{"Strategy", "Verdict"}}
	for _, strategy := range []string{LL1, SLR, LR1, LALR} {
		verdicts = append(verdicts, []string{strategy, verdict(s, strategy)})
	}
	verdicts = append(verdicts, []string{Earley, "ok"})
	return pterm.DefaultTable.WithHasHeader().WithData(verdicts).Render()
}

func productionTable(g *lr.Grammar) *pterm.TablePrinter {
	data := pterm.TableData{{"#", "Production", "Action"}}
	g.EachProduction(func(p *lr.Production) {
		data = append(data, []string{fmt.Sprint(p.Serial()), g.ProductionString(p), p.ActionName()})
	})
	return pterm.DefaultTable.WithHasHeader().WithData(data)
}

func setTable(ga *lr.GrammarAnalysis) *pterm.TablePrinter {
	g := ga.Grammar()
	data := pterm.TableData{{"Non-terminal", "Nullable", "FIRST", "FOLLOW"}}
	for _, n := range g.NonTerminals() {
		data = append(data, []string{
			n,
			fmt.Sprint(ga.Nullable(n)),
			tokenList(g, ga.First(n)),
			tokenList(g, ga.Follow(n)),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data)
}

func tokenList(g *lr.Grammar, toks []cfgkit.TokType) string {
	names := make([]string, len(toks))
	for i, t := range toks {
		names[i] = g.TokenName(t)
	}
	return strings.Join(names, " ")
}

// verdict tells if parser tables for a strategy can be built.
func verdict(s *session, strategy string) string {
	wb := s.bench(strategy)
	var err error
	switch strategy {
	case LL1:
		_, err = wb.LL1Table()
	case SLR:
		_, err = wb.LRTables(false, false)
	case LR1:
		_, err = wb.LRTables(true, false)
	case LALR:
		_, err = wb.LRTables(true, true)
	}
	var berr *lr.BuildError
	if errors.As(err, &berr) {
		if len(berr.Conflicts) > 0 {
			return fmt.Sprintf("%d conflict(s), e.g. %v", len(berr.Conflicts), berr.Conflicts[0])
		}
		return err.Error()
	}
	if err != nil {
		return err.Error()
	}
	return "ok"
}
