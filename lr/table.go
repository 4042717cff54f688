package lr

import (
	"fmt"
	"io"

	"github.com/cnf/structhash"
	"github.com/npillmayer/reel/lr/sparse"
)

// === Actions ===============================================================

// ActionKind is the kind of a parser action.
type ActionKind uint8

// Kinds of parser actions. The zero value is the error action of empty table cells.
const (
	ErrorAction ActionKind = iota
	ShiftAction
	ReduceAction
	AcceptAction
)

// Action is an entry of the ACTION table.
type Action struct {
	Kind  ActionKind
	State int // target state for shift actions
	Rule  int // rule serial for reduce actions
}

// Shift creates a shift action to state s.
func Shift(s int) Action {
	return Action{Kind: ShiftAction, State: s}
}

// Reduce creates a reduce action for rule r.
func Reduce(r int) Action {
	return Action{Kind: ReduceAction, Rule: r}
}

// Accept creates an accept action.
func Accept() Action {
	return Action{Kind: AcceptAction}
}

// IsError is true for empty cells.
func (a Action) IsError() bool {
	return a.Kind == ErrorAction
}

func (a Action) String() string {
	switch a.Kind {
	case ShiftAction:
		return fmt.Sprintf("s%d", a.State)
	case ReduceAction:
		return fmt.Sprintf("r%d", a.Rule)
	case AcceptAction:
		return "acc"
	}
	return "err"
}

// Conflict records a second action inserted into an occupied ACTION cell.
type Conflict[T, N comparable] struct {
	State  int
	Symbol Symbol[T, N]
	First  Action // displaced action
	Second Action // action now in the table
}

// Kind returns a short classification, e.g. "shift/reduce".
func (c Conflict[T, N]) Kind() string {
	return fmt.Sprintf("%s/%s", kindName(c.First.Kind), kindName(c.Second.Kind))
}

func (c Conflict[T, N]) String() string {
	return fmt.Sprintf("%s conflict in state %d on %v: %s vs %s", c.Kind(), c.State, c.Symbol,
		c.First, c.Second)
}

func kindName(k ActionKind) string {
	switch k {
	case ShiftAction:
		return "shift"
	case ReduceAction:
		return "reduce"
	case AcceptAction:
		return "accept"
	}
	return "error"
}

// === Tables ================================================================

// Table holds the ACTION and GOTO tables of an LR(1) parser, together with all
// conflicts found while filling them.
//
// A Table is filled by a TableGenerator and read-only afterwards.
type Table[T, N comparable] struct {
	g         *Grammar[T, N]
	actions   []map[Symbol[T, N]]Action
	gotos     []map[N]int
	conflicts []Conflict[T, N]
}

// NewTable creates an empty table for a grammar.
func NewTable[T, N comparable](g *Grammar[T, N]) *Table[T, N] {
	return &Table[T, N]{g: g}
}

func (t *Table[T, N]) grow(state int) {
	for len(t.actions) <= state {
		t.actions = append(t.actions, make(map[Symbol[T, N]]Action))
		t.gotos = append(t.gotos, make(map[N]int))
	}
}

// InsertAction sets ACTION[state, sym]. If the cell already holds a different
// action, a conflict is recorded and the new action replaces the old one.
func (t *Table[T, N]) InsertAction(state int, sym Symbol[T, N], action Action) {
	t.grow(state)
	if old, ok := t.actions[state][sym]; ok && old != action {
		c := Conflict[T, N]{State: state, Symbol: sym, First: old, Second: action}
		tracer().Debugf("%s", c)
		t.conflicts = append(t.conflicts, c)
	}
	t.actions[state][sym] = action
}

// InsertGoto sets GOTO[state, n] = to.
func (t *Table[T, N]) InsertGoto(state int, n N, to int) {
	t.grow(state)
	t.gotos[state][n] = to
}

// Action returns ACTION[state, sym]. Empty cells hold an error action.
func (t *Table[T, N]) Action(state int, sym Symbol[T, N]) Action {
	if state < 0 || state >= len(t.actions) {
		return Action{}
	}
	return t.actions[state][sym]
}

// Goto returns GOTO[state, n], or false for empty cells.
func (t *Table[T, N]) Goto(state int, n N) (int, bool) {
	if state < 0 || state >= len(t.gotos) {
		return 0, false
	}
	to, ok := t.gotos[state][n]
	return to, ok
}

// Conflicts returns all conflicts in order of their detection.
func (t *Table[T, N]) Conflicts() []Conflict[T, N] {
	return t.conflicts
}

// HasConflicts is true if at least one conflict has been recorded.
func (t *Table[T, N]) HasConflicts() bool {
	return len(t.conflicts) > 0
}

// StateCount returns the number of rows of the table.
func (t *Table[T, N]) StateCount() int {
	return len(t.actions)
}

// Grammar returns the grammar this table is for.
func (t *Table[T, N]) Grammar() *Grammar[T, N] {
	return t.g
}

// EachAction calls f for every non-empty ACTION cell, ordered by state and then by
// symbol order.
func (t *Table[T, N]) EachAction(f func(state int, sym Symbol[T, N], a Action)) {
	for state, row := range t.actions {
		t.g.EachTerminal(func(sym Symbol[T, N]) {
			if a, ok := row[sym]; ok {
				f(state, sym, a)
			}
		})
	}
}

// EachGoto calls f for every non-empty GOTO cell, ordered by state and then by
// symbol order.
func (t *Table[T, N]) EachGoto(f func(state int, n N, to int)) {
	for state, row := range t.gotos {
		t.g.EachNonTerminal(func(sym Symbol[T, N]) {
			n, _ := sym.NonTerminal()
			if to, ok := row[n]; ok {
				f(state, n, to)
			}
		})
	}
}

// --- Encoding --------------------------------------------------------------

// Encode packs the tables into sparse matrices, with symbol IDs as column indices.
// ACTION entries are encoded as
//
//    shift s   ⇒   s+1
//    reduce r  ⇒   -(r+1)
//    accept    ⇒   0
//
// and GOTO entries as the target state. Empty cells hold the matrices' null value.
// This is the representation used by code generators.
func (t *Table[T, N]) Encode() (action *sparse.IntMatrix, gototable *sparse.IntMatrix) {
	m, n := t.StateCount(), t.g.SymbolCount()
	tracer().Infof("encoding tables of size %d x %d", m, n)
	action = sparse.NewIntMatrix(m, n, sparse.DefaultNullValue)
	gototable = sparse.NewIntMatrix(m, n, sparse.DefaultNullValue)
	t.EachAction(func(state int, sym Symbol[T, N], a Action) {
		id, _ := t.g.SymbolID(sym)
		action.Set(state, id, EncodeAction(a))
	})
	t.EachGoto(func(state int, nt N, to int) {
		id, _ := t.g.SymbolID(NonTerm[T, N](nt))
		gototable.Set(state, id, int32(to))
	})
	return action, gototable
}

// EncodeAction encodes an action as an int32, see Encode.
func EncodeAction(a Action) int32 {
	switch a.Kind {
	case ShiftAction:
		return int32(a.State + 1)
	case ReduceAction:
		return int32(-(a.Rule + 1))
	case AcceptAction:
		return 0
	}
	return sparse.DefaultNullValue
}

// DecodeAction reverses EncodeAction.
func DecodeAction(v int32) Action {
	switch {
	case v == sparse.DefaultNullValue:
		return Action{}
	case v > 0:
		return Shift(int(v) - 1)
	case v < 0:
		return Reduce(int(-v) - 1)
	}
	return Accept()
}

// --- Fingerprint -----------------------------------------------------------

// tableSnapshot is an ordered, reflection-friendly copy of a table's contents.
type tableSnapshot struct {
	Grammar   string
	States    int
	Actions   []string
	Gotos     []string
	Conflicts []string
}

// Fingerprint returns a hash over the contents of the tables, including the
// conflicts. Tables built from the same grammar have the same fingerprint.
func (t *Table[T, N]) Fingerprint() (string, error) {
	snap := tableSnapshot{Grammar: t.g.Name, States: t.StateCount()}
	t.EachAction(func(state int, sym Symbol[T, N], a Action) {
		snap.Actions = append(snap.Actions, fmt.Sprintf("%d:%s:%s", state, t.g.SymbolName(sym), a))
	})
	t.EachGoto(func(state int, n N, to int) {
		snap.Gotos = append(snap.Gotos, fmt.Sprintf("%d:%v:%d", state, n, to))
	})
	for _, c := range t.conflicts {
		snap.Conflicts = append(snap.Conflicts, c.String())
	}
	return structhash.Hash(snap, 1)
}

// --- Export ----------------------------------------------------------------

// TableAsHTML exports the ACTION and GOTO tables in HTML format. Cells with conflicts
// are marked.
func (t *Table[T, N]) TableAsHTML(w io.Writer) {
	var terms, nonterms []Symbol[T, N]
	t.g.EachTerminal(func(sym Symbol[T, N]) { terms = append(terms, sym) })
	t.g.EachNonTerminal(func(sym Symbol[T, N]) { nonterms = append(nonterms, sym) })
	conflicting := make(map[[2]interface{}]bool)
	for _, c := range t.conflicts {
		conflicting[[2]interface{}{c.State, c.Symbol}] = true
	}
	io.WriteString(w, "<html><body>\n")
	fmt.Fprintf(w, "<h3>%s: %d states, %d conflicts</h3>\n", t.g.Name, t.StateCount(), len(t.conflicts))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>")
	for _, sym := range terms {
		fmt.Fprintf(w, "<td>%s</td>", t.g.SymbolName(sym))
	}
	for _, sym := range nonterms {
		fmt.Fprintf(w, "<td><i>%s</i></td>", t.g.SymbolName(sym))
	}
	io.WriteString(w, "</tr>\n")
	for state := 0; state < t.StateCount(); state++ {
		fmt.Fprintf(w, "<tr><td>state %d</td>", state)
		for _, sym := range terms {
			td := "&nbsp;"
			if a := t.Action(state, sym); !a.IsError() {
				td = a.String()
			}
			if conflicting[[2]interface{}{state, sym}] {
				fmt.Fprintf(w, "<td bgcolor=#ffcccc>%s</td>", td)
			} else {
				fmt.Fprintf(w, "<td>%s</td>", td)
			}
		}
		for _, sym := range nonterms {
			n, _ := sym.NonTerminal()
			td := "&nbsp;"
			if to, ok := t.Goto(state, n); ok {
				td = fmt.Sprintf("%d", to)
			}
			fmt.Fprintf(w, "<td>%s</td>", td)
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</table></body></html>\n")
}
