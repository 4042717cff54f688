package main

import (
	"errors"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/npillmayer/reel"
	"github.com/npillmayer/reel/lr/driver"
	"github.com/npillmayer/reel/lr/grammarfile"
	"github.com/npillmayer/reel/lr/scanner/lexmach"
)

func newREPLCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "repl FILE",
		Short:   "Parse input interactively with the LR(1) tables of a grammar",
		Example: `  reel repl expr.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE:    runREPL,
	}
}

// Intp is our interpreter object.
type Intp struct {
	file   *grammarfile.File
	lexer  *lexmach.LMAdapter
	parser *driver.Parser[string]
	repl   *readline.Instance
}

func runREPL(cmd *cobra.Command, args []string) error {
	f, lrgen, err := loadGrammar(args[0])
	if err != nil {
		return err
	}
	for _, c := range lrgen.Table().Conflicts() {
		pterm.Warning.Println(conflictString(lrgen.Table().Grammar(), c))
	}
	lexer, err := f.Lexer()
	if err != nil {
		return err
	}
	repl, err := readline.New("reel> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	intp := &Intp{
		file:   f,
		lexer:  lexer,
		parser: driver.NewParser(lrgen.Table()),
		repl:   repl,
	}
	pterm.Info.Printf("Welcome to the %s REPL\n", f.Name)
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()
	return nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		reductions, err := intp.Parse(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		pterm.Success.Printf("accepted after %d reductions\n", len(reductions))
		for _, r := range reductions {
			pterm.Info.Println(r)
		}
	}
	println("Good bye!")
}

// Parse parses a line of input and returns the reductions performed, in order.
func (intp *Intp) Parse(line string) ([]string, error) {
	scan, err := intp.lexer.Scanner(line)
	if err != nil {
		return nil, err
	}
	var scanErr error
	scan.SetErrorHandler(func(e error) {
		if scanErr == nil {
			scanErr = e
		}
	})
	g := intp.parser.G
	var reductions []string
	intp.parser.OnReduce(func(rule int, span reel.Span) {
		reductions = append(reductions, g.RuleString(g.Rule(rule))+"  "+span.String()+"  "+
			quote(line, span))
	})
	accept, err := intp.parser.Parse(scan)
	if scanErr != nil {
		return nil, scanErr
	}
	var serr *driver.SyntaxError
	if errors.As(err, &serr) {
		return nil, errors.New(intp.describe(serr))
	} else if err != nil {
		return nil, err
	}
	if !accept {
		return nil, errors.New("input not accepted")
	}
	return reductions, nil
}

func (intp *Intp) describe(serr *driver.SyntaxError) string {
	name := intp.file.TokenName(serr.Token.TokType())
	return "syntax error at " + serr.Token.Span().String() + ": unexpected " + name
}

func quote(line string, span reel.Span) string {
	if span.To() > uint64(len(line)) || span.From() > span.To() {
		return ""
	}
	return "'" + line[span.From():span.To()] + "'"
}
