/*
Package lr implements the construction of canonical LR(1) parser tables.

Building a Grammar

Grammars are specified using a grammar builder object. Terminals and non-terminals
are tagged with values of application-defined, comparable types. Grammars may contain
epsilon-productions. The start rule is not added automatically: clients provide an
augmenting rule S' ➞ S themselves.

Example:

    b := lr.NewGrammarBuilder[reel.TokType, string]("G")
    b.LHS("S'").N("S").End()             // S' ➞ S
    b.LHS("S").N("A").T(id).End()        // S  ➞ A id
    b.LHS("A").T(plus).End()             // A  ➞ +
    b.LHS("A").Epsilon()                 // A  ➞
    g, err := b.Grammar()

The first rule (or the first rule for a non-terminal designated with b.Start(…))
is the start rule.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. lr.Analysis computes FIRST sets
for all symbols and determines which non-terminals derive the empty string.

    ga := lr.Analysis(g)
    ga.First(g.N("S"))      // ⇒ [+ id]
    ga.Nullable(g.N("A"))   // ⇒ true

Parser Construction

From the grammar analysis the canonical collection of LR(1) states is built (the
CFSM). States are identified by their kernel items; unlike LALR(1), states with
equal cores but different lookaheads are kept apart. Shift, reduce, accept and goto
entries go into a Table, which records every conflicting double entry.

    lrgen := lr.NewTableGenerator(ga)
    if err := lrgen.CreateTables(); err != nil { … }
    if lrgen.HasConflicts { … }    // see lrgen.Table().Conflicts()

The CFSM is kept available for debugging and may be exported to Graphviz's
Dot-format.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'reel.lr'.
func tracer() tracing.Trace {
	return tracing.Select("reel.lr")
}

// Errors reported during grammar construction and table generation.
var (
	// ErrEmptyGrammar is returned for a grammar without any rules.
	ErrEmptyGrammar = errors.New("grammar has no rules")
	// ErrNoStartRule is returned if no rule has the designated start symbol as its LHS.
	ErrNoStartRule = errors.New("no rule found for start symbol")
	// ErrFirstSetMissing flags a symbol unknown to the FIRST-set analysis. This is an
	// internal inconsistency between grammar and analysis.
	ErrFirstSetMissing = errors.New("FIRST set does not contain symbol")
)
