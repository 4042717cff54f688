package lr

import (
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
)

// === CFSM Construction =====================================================

// CFSMState is a state of the canonical LR(1) automaton.
type CFSMState struct {
	ID     int      // serial ID of this state, index into the CFSM's states
	items  *ItemSet // LR(1) items of this state
	Accept bool     // is this an accepting state?
}

// Items returns the item set of the state.
func (s *CFSMState) Items() *ItemSet {
	return s.items
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

// CFSM edge between 2 states, directed and labeled with a symbol ID.
type cfsmEdge struct {
	from  int
	to    int
	label int
}

// CFSM is the characteristic finite state machine for an LR(1) grammar, i.e. the
// canonical collection of LR(1) states together with the transitions between them.
// It is constructed by a TableGenerator. Clients normally do not use it directly,
// but it is available for debugging and for exporting.
type CFSM[T, N comparable] struct {
	g      *Grammar[T, N]
	states []*CFSMState    // all states, indexed by ID
	edges  *arraylist.List // all edges between states, in order of creation
	S0     *CFSMState      // start state
}

func emptyCFSM[T, N comparable](g *Grammar[T, N]) *CFSM[T, N] {
	return &CFSM[T, N]{
		g:     g,
		edges: arraylist.New(),
	}
}

// Size returns the number of states.
func (c *CFSM[T, N]) Size() int {
	return len(c.states)
}

// State returns the state with a given ID, or nil.
func (c *CFSM[T, N]) State(id int) *CFSMState {
	if id < 0 || id >= len(c.states) {
		return nil
	}
	return c.states[id]
}

// Transition returns the target of the transition from state `from` on sym.
func (c *CFSM[T, N]) Transition(from int, sym Symbol[T, N]) (int, bool) {
	label, ok := c.g.SymbolID(sym)
	if !ok {
		return 0, false
	}
	it := c.edges.Iterator()
	for it.Next() {
		e := it.Value().(cfsmEdge)
		if e.from == from && e.label == label {
			return e.to, true
		}
	}
	return 0, false
}

// findState searches for a state with a given kernel, in construction order.
func (c *CFSM[T, N]) findState(iset *ItemSet) *CFSMState {
	for _, s := range c.states {
		if s.items.SameKernel(iset) {
			return s
		}
	}
	return nil
}

// addState appends a new state for an item set.
func (c *CFSM[T, N]) addState(iset *ItemSet) *CFSMState {
	s := &CFSMState{ID: len(c.states), items: iset}
	c.states = append(c.states, s)
	return s
}

func (c *CFSM[T, N]) addEdge(from, to *CFSMState, label int) {
	c.edges.Add(cfsmEdge{from: from.ID, to: to.ID, label: label})
}

// Dump is a debugging helper.
func (c *CFSM[T, N]) Dump(s *CFSMState) {
	tracer().Debugf("--- state %03d -----------", s.ID)
	for _, i := range s.items.Items() {
		tracer().Debugf("    %s", c.g.ItemString(i))
	}
	tracer().Debugf("-------------------------")
}

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format.
func (c *CFSM[T, N]) CFSM2GraphViz(w io.Writer) {
	io.WriteString(w, `digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.states {
		fmt.Fprintf(w, "s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, c.forGraphviz(s.items))
	}
	it := c.edges.Iterator()
	for it.Next() {
		e := it.Value().(cfsmEdge)
		fmt.Fprintf(w, "s%03d -> s%03d [label=%q]\n", e.from, e.to,
			c.g.SymbolName(c.g.symbols[e.label]))
	}
	io.WriteString(w, "}\n")
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

var graphvizEscaper = strings.NewReplacer(`"`, `\"`, `{`, `\{`, `}`, `\}`, `|`, `\|`,
	`<`, `\<`, `>`, `\>`)

func (c *CFSM[T, N]) forGraphviz(iset *ItemSet) string {
	var lines []string
	for _, i := range iset.Items() {
		lines = append(lines, graphvizEscaper.Replace(c.g.ItemString(i)))
	}
	return strings.Join(lines, "\\l") + "\\l"
}

// === Table Generator =======================================================

// TableGenerator is a generator object to construct canonical LR(1) parser tables.
// Clients usually create a Grammar G, then an LRAnalysis for G, and then a table
// generator. TableGenerator.CreateTables() constructs the CFSM and the parser
// tables for an LR(1) parser recognizing G.
type TableGenerator[T, N comparable] struct {
	g            *Grammar[T, N]
	ga           *LRAnalysis[T, N]
	dfa          *CFSM[T, N]
	table        *Table[T, N]
	HasConflicts bool
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator[T, N comparable](ga *LRAnalysis[T, N]) *TableGenerator[T, N] {
	return &TableGenerator[T, N]{
		g:  ga.Grammar(),
		ga: ga,
	}
}

// CFSM returns the automaton. It is nil until CreateTables() has been called
// successfully.
func (lrgen *TableGenerator[T, N]) CFSM() *CFSM[T, N] {
	return lrgen.dfa
}

// Table returns the parser tables. It is nil until CreateTables() has been called
// successfully.
func (lrgen *TableGenerator[T, N]) Table() *Table[T, N] {
	if lrgen.table == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.table
}

// AcceptingStates returns the IDs of all states with an accept action.
func (lrgen *TableGenerator[T, N]) AcceptingStates() []int {
	if lrgen.dfa == nil {
		tracer().Errorf("tables not yet generated; call CreateTables() first")
		return nil
	}
	var acc []int
	for _, s := range lrgen.dfa.states {
		if s.Accept {
			acc = append(acc, s.ID)
		}
	}
	return acc
}

// CreateTables builds the canonical collection of LR(1) states and fills the
// ACTION and GOTO tables.
//
// States are processed in order of their creation. For every state we
//
//    (a) compute the closure of its kernel,
//    (b) for every symbol after a dot, build the kernel of the successor state and
//        find an existing state with the same kernel or append a new one,
//    (c) create reduce entries for complete items, keyed by their lookahead, or an
//        accept entry if the item belongs to the start rule.
//
// Conflicts do not stop construction, they are collected in the table. Errors
// leave the generator without tables.
func (lrgen *TableGenerator[T, N]) CreateTables() error {
	tracer().Debugf("=== build CFSM ==================================================")
	lrgen.dfa, lrgen.table, lrgen.HasConflicts = nil, nil, false
	g := lrgen.g
	if g.Rule(g.start) == nil {
		return fmt.Errorf("grammar %s: %w", g.Name, ErrNoStartRule)
	}
	dfa := emptyCFSM(g)
	table := NewTable(g)
	dfa.S0 = dfa.addState(NewItemSet(StartItem(g)))
	for n := 0; n < len(dfa.states); n++ {
		s := dfa.states[n]
		if err := lrgen.ga.closeState(s.items); err != nil {
			return fmt.Errorf("grammar %s, state %d: %w", g.Name, s.ID, err)
		}
		dfa.Dump(s)
		lrgen.gotoAll(dfa, table, s)
		lrgen.reduceAll(table, s)
	}
	table.grow(len(dfa.states) - 1)
	tracer().Infof("grammar %s: %d states, %d conflicts", g.Name, len(dfa.states), len(table.conflicts))
	lrgen.dfa, lrgen.table = dfa, table
	lrgen.HasConflicts = table.HasConflicts()
	return nil
}

// gotoAll creates the transitions out of state s.
func (lrgen *TableGenerator[T, N]) gotoAll(dfa *CFSM[T, N], table *Table[T, N], s *CFSMState) {
	g := lrgen.g
	for _, A := range activeSymbols(g, s.items) {
		kernel := gotoKernel(g, s.items, A)
		next := dfa.findState(kernel)
		if next == nil {
			next = dfa.addState(kernel)
		}
		tracer().Debugf("goto(%d) --%s--> %d", s.ID, g.SymbolName(g.symbols[A]), next.ID)
		dfa.addEdge(s, next, A)
		sym := g.symbols[A]
		if n, ok := sym.NonTerminal(); ok {
			table.InsertGoto(s.ID, n, next.ID)
		} else {
			table.InsertAction(s.ID, sym, Shift(next.ID))
		}
	}
}

// reduceAll creates reduce and accept entries for the complete items of state s.
func (lrgen *TableGenerator[T, N]) reduceAll(table *Table[T, N], s *CFSMState) {
	g := lrgen.g
	for _, i := range s.items.Items() {
		if !g.complete(i) {
			continue
		}
		la := g.symbols[i.la]
		if i.rule == g.start {
			s.Accept = true
			table.InsertAction(s.ID, la, Accept())
		} else {
			table.InsertAction(s.ID, la, Reduce(i.rule))
		}
	}
}
