package main

import (
	"os"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/npillmayer/reel"
	"github.com/npillmayer/reel/lr"
	"github.com/npillmayer/reel/lr/grammarfile"
)

// newRootCmd creates the command tree. Every call returns fresh commands with
// fresh flags.
func newRootCmd() *cobra.Command {
	var trace string
	root := &cobra.Command{
		Use:   "reel",
		Short: "Construct canonical LR(1) parser tables from a grammar",
		Long: `reel reads a grammar file and
- constructs the canonical LR(1) automaton and its parser tables, reporting conflicts,
- parses input interactively with these tables.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(trace)
		},
	}
	root.PersistentFlags().StringVarP(&trace, "trace", "t", "Error",
		"trace level [Debug|Info|Error]")
	root.AddCommand(newTableCmd(), newREPLCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

// initConfig sets up tracing and the global configuration. All trace keys of the
// module log to the Go logger with the level given on the command line.
func initConfig(level string) error {
	initDisplay()
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":             "go",
		"tracelevel.root":             level,
		"tracelevel.reel.cli":         level,
		"tracelevel.reel.lr":          level,
		"tracelevel.reel.scanner":     level,
		"tracelevel.reel.driver":      level,
		"tracelevel.reel.grammarfile": level,
		"reel-strict":                 os.Getenv("REEL_STRICT"),
	}
	if err := trace2go.ConfigureRoot(conf, "tracelevel", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	gconf.Initialize(conf)
	tracer().Infof("trace level is %s", tracing.TraceLevelFromString(level))
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// loadGrammar reads a grammar file and constructs its parser tables.
func loadGrammar(path string) (*grammarfile.File, *lr.TableGenerator[reel.TokType, string], error) {
	f, err := grammarfile.Load(path)
	if err != nil {
		return nil, nil, err
	}
	g, err := f.Grammar()
	if err != nil {
		return nil, nil, err
	}
	g.Dump()
	lrgen := lr.NewTableGenerator(lr.Analysis(g))
	if err := lrgen.CreateTables(); err != nil {
		return nil, nil, err
	}
	return f, lrgen, nil
}
