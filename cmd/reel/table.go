package main

import (
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/schuko/gconf"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/npillmayer/reel"
	"github.com/npillmayer/reel/lr"
)

type tableOptions struct {
	dot    string
	html   string
	sparse string
	strict bool
}

func newTableCmd() *cobra.Command {
	opts := &tableOptions{}
	cmd := &cobra.Command{
		Use:     "table FILE",
		Short:   "Construct and print the LR(1) parser tables of a grammar",
		Example: `  reel table expr.yaml --dot expr.dot --html expr.html --sparse expr.tbl`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args)
		},
	}
	cmd.Flags().StringVar(&opts.dot, "dot", "", "export the LR(1) automaton to a Graphviz file")
	cmd.Flags().StringVar(&opts.html, "html", "", "export the parser tables to an HTML file")
	cmd.Flags().StringVar(&opts.sparse, "sparse", "", "export the encoded parser tables to a file")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail if the grammar has conflicts")
	return cmd
}

func (opts *tableOptions) run(cmd *cobra.Command, args []string) error {
	_, lrgen, err := loadGrammar(args[0])
	if err != nil {
		return err
	}
	table := lrgen.Table()
	printRules(table.Grammar())
	printTable(table)
	for _, c := range table.Conflicts() {
		pterm.Warning.Println(conflictString(table.Grammar(), c))
	}
	if fp, err := table.Fingerprint(); err == nil {
		pterm.Info.Printf("%d states, %d conflicts, fingerprint %s\n", table.StateCount(),
			len(table.Conflicts()), fp)
	} else {
		tracer().Errorf("cannot fingerprint tables: %v", err)
	}
	if opts.dot != "" {
		if err := writeFile(opts.dot, lrgen.CFSM().CFSM2GraphViz); err != nil {
			return err
		}
	}
	if opts.html != "" {
		if err := writeFile(opts.html, table.TableAsHTML); err != nil {
			return err
		}
	}
	if opts.sparse != "" {
		if err := writeFile(opts.sparse, func(w io.Writer) { writeSparse(w, table) }); err != nil {
			return err
		}
	}
	strict := opts.strict
	if !cmd.Flags().Changed("strict") {
		strict = gconf.GetBool("reel-strict")
	}
	if strict && lrgen.HasConflicts {
		return fmt.Errorf("grammar %s has %d conflicts", table.Grammar().Name, len(table.Conflicts()))
	}
	return nil
}

// writeSparse dumps the encoded tables as triplets, one per line:
//
//    action <state> <symbol> <code>
//    goto   <state> <symbol> <state>
//
func writeSparse(w io.Writer, table *lr.Table[reel.TokType, string]) {
	g := table.Grammar()
	action, gototable := table.Encode()
	fmt.Fprintf(w, "# %s: %d states x %d symbols\n", g.Name, action.M(), action.N())
	action.Each(func(state, sym int, v int32) {
		fmt.Fprintf(w, "action %d %s %d\n", state, g.SymbolName(g.Symbol(sym)), v)
	})
	gototable.Each(func(state, sym int, v int32) {
		fmt.Fprintf(w, "goto   %d %s %d\n", state, g.SymbolName(g.Symbol(sym)), v)
	})
}

func printRules(g *lr.Grammar[reel.TokType, string]) {
	data := [][]string{{"#", "rule"}}
	for i := 0; i < g.Size(); i++ {
		data = append(data, []string{fmt.Sprintf("%d", i), g.RuleString(g.Rule(i))})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// printTable prints ACTION and GOTO tables side by side, one row per state.
func printTable(table *lr.Table[reel.TokType, string]) {
	g := table.Grammar()
	var terms, nonterms []lr.Symbol[reel.TokType, string]
	g.EachTerminal(func(sym lr.Symbol[reel.TokType, string]) { terms = append(terms, sym) })
	g.EachNonTerminal(func(sym lr.Symbol[reel.TokType, string]) { nonterms = append(nonterms, sym) })
	header := []string{"state"}
	for _, sym := range terms {
		header = append(header, g.SymbolName(sym))
	}
	for _, sym := range nonterms {
		header = append(header, g.SymbolName(sym))
	}
	data := [][]string{header}
	for state := 0; state < table.StateCount(); state++ {
		row := []string{fmt.Sprintf("%d", state)}
		for _, sym := range terms {
			cell := ""
			if a := table.Action(state, sym); !a.IsError() {
				cell = a.String()
			}
			row = append(row, cell)
		}
		for _, sym := range nonterms {
			cell := ""
			n, _ := sym.NonTerminal()
			if to, ok := table.Goto(state, n); ok {
				cell = fmt.Sprintf("%d", to)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func conflictString(g *lr.Grammar[reel.TokType, string], c lr.Conflict[reel.TokType, string]) string {
	return fmt.Sprintf("%s conflict in state %d on %s: %s replaced by %s", c.Kind(), c.State,
		g.SymbolName(c.Symbol), c.First, c.Second)
}

func writeFile(path string, export func(io.Writer)) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	export(f)
	tracer().Infof("wrote %s", path)
	return f.Close()
}
