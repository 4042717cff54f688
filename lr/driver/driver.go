/*
Package driver provides a table-driven shift-reduce parser. Clients have to use the
tools of package lr to prepare the parse tables. The parser utilizes these tables to
create a right derivation for a given input, provided through a scanner interface.

The main focus for this implementation is trying out grammars on the fly. Clients
are able to construct the parse tables from a grammar and use the parser directly,
without a code-generation or compile step.

Usage

Clients construct a grammar over token types, usually by using a grammar builder:

	b := lr.NewGrammarBuilder[reel.TokType, string]("Signed Variables")
	b.LHS("S'").N("Var").End()                      // S'   ➞ Var
	b.LHS("Var").N("Sign").T(scanner.Ident).End()   // Var  ➞ Sign Id
	b.LHS("Sign").T('+').End()                      // Sign ➞ +
	b.LHS("Sign").T('-').End()                      // Sign ➞ -
	b.LHS("Sign").Epsilon()                         // Sign ➞
	g, err := b.Grammar()

This grammar is subjected to grammar analysis and table generation.

	lrgen := lr.NewTableGenerator(lr.Analysis(g))
	err = lrgen.CreateTables()
	if lrgen.HasConflicts { … }  // parser will follow the last action inserted

Finally parse some input:

	p := driver.NewParser(lrgen.Table())
	accepted, err := p.Parse(scanner.GoTokenizer("input", strings.NewReader("+a")))

Clients may listen to reductions to build a parse tree or perform semantic actions.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package driver

import (
	"errors"
	"fmt"

	"github.com/npillmayer/reel"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/reel/lr"
	"github.com/npillmayer/reel/lr/scanner"
)

// tracer traces with key 'reel.driver'.
func tracer() tracing.Trace {
	return tracing.Select("reel.driver")
}

// Listener is called for every reduction, with the rule reduced and the input span
// the rule's LHS covers.
type Listener func(rule int, span reel.Span)

// Parser is a shift-reduce parser running on canonical LR(1) tables.
// Create and initialize one with driver.NewParser(...)
type Parser[N comparable] struct {
	G        *lr.Grammar[reel.TokType, N]
	table    *lr.Table[reel.TokType, N]
	stack    []stackitem // parser stack
	listener Listener
}

// We store pairs of state IDs and spans on the parse stack.
type stackitem struct {
	stateID int       // ID of a CFSM state
	span    reel.Span // input span over which this symbol reaches
}

// NewParser creates a parser for a table.
func NewParser[N comparable](table *lr.Table[reel.TokType, N]) *Parser[N] {
	return &Parser[N]{
		G:     table.Grammar(),
		table: table,
		stack: make([]stackitem, 0, 512),
	}
}

// OnReduce sets a listener for reductions.
func (p *Parser[N]) OnReduce(l Listener) {
	p.listener = l
}

// SyntaxError is returned if the parser encounters a token for which there is
// no action in the current state.
type SyntaxError struct {
	Token reel.Token
	State int
}

func (e *SyntaxError) Error() string {
	if e.Token.TokType() == scanner.EOF {
		return fmt.Sprintf("syntax error: unexpected end of input in state %d", e.State)
	}
	return fmt.Sprintf("syntax error at %v: unexpected %q in state %d", e.Token.Span(),
		e.Token.Lexeme(), e.State)
}

// ErrNotInitialized is returned by Parse for a parser without tables.
var ErrNotInitialized = errors.New("parser not initialized")

// Parse starts a new parse, given a scanner tokenizing the input.
// The parser starts in state 0 of the table.
//
// The parser returns true if the input string has been accepted. Syntax errors are
// reported as *SyntaxError.
func (p *Parser[N]) Parse(scan scanner.Tokenizer) (bool, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.G == nil || p.table == nil {
		tracer().Errorf("parser not initialized")
		return false, ErrNotInitialized
	}
	p.stack = append(p.stack[:0], stackitem{0, reel.Span{0, 0}}) // push S0
	token := scan.NextToken()
	for {
		sym := p.symbolFor(token)
		tos := p.stack[len(p.stack)-1]
		action := p.table.Action(tos.stateID, sym)
		tracer().Debugf("action(%d,%s)=%s", tos.stateID, p.G.SymbolName(sym), action)
		switch action.Kind {
		case lr.AcceptAction:
			tracer().Debugf("accepting")
			return true, nil
		case lr.ShiftAction:
			tracer().Debugf("shifting %q, next state = %d", token.Lexeme(), action.State)
			p.stack = append(p.stack, stackitem{action.State, token.Span()}) // push a terminal state onto stack
			token = scan.NextToken()
		case lr.ReduceAction:
			rule := p.G.Rule(action.Rule)
			nextstate, handlespan, err := p.reduce(rule)
			if err != nil {
				return false, err
			}
			if handlespan.IsNull() { // resulted from an epsilon production
				pos := token.Span().From()
				handlespan = reel.Span{pos, pos} // epsilon is just before lookahead
			}
			if p.listener != nil {
				p.listener(rule.Serial, handlespan)
			}
			tracer().Debugf("reduced %v to next state = %d", rule, nextstate)
			p.stack = append(p.stack, stackitem{nextstate, handlespan}) // push a non-terminal state onto stack
		default:
			return false, &SyntaxError{Token: token, State: tos.stateID}
		}
	}
}

// symbolFor maps a token to a grammar symbol. Token types are the grammar's
// terminals, scanner.EOF maps to end-of-input.
func (p *Parser[N]) symbolFor(token reel.Token) lr.Symbol[reel.TokType, N] {
	if token.TokType() == scanner.EOF {
		return p.G.EOF()
	}
	return p.G.T(token.TokType())
}

// reduce performs a reduce action for a rule
//
//    LHS ➞ X1 ... Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn are represented on the stack as states
//
//    [TOS]  Sn(span_n) ... S1(span_1)  ...
//
// reduce pops these and returns GOTO(state below S1, LHS) together with the span
// covered by the handle.
func (p *Parser[N]) reduce(rule *lr.Rule[reel.TokType, N]) (int, reel.Span, error) {
	tracer().Infof("reduce %v", rule)
	var handlespan reel.Span
	for i := 0; i < rule.Len(); i++ {
		tos := p.stack[len(p.stack)-1]
		handlespan = handlespan.Extend(tos.span)
		p.stack = p.stack[:len(p.stack)-1] // pop TOS
	}
	state := p.stack[len(p.stack)-1] // TOS
	nextstate, ok := p.table.Goto(state.stateID, rule.LHS)
	if !ok {
		return 0, handlespan, fmt.Errorf("no GOTO entry for state %d and %v", state.stateID, rule.LHS)
	}
	return nextstate, handlespan, nil
}
