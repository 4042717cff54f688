package lr

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// === Rules =================================================================

// Rule is a grammar production LHS ➞ RHS. Rules are owned by their grammar and are
// referred to by their serial number everywhere else.
type Rule[T, N comparable] struct {
	Serial   int  // ordinal number of this rule within its grammar
	LHS      N    // left hand side non-terminal
	KeepAll  bool // client flag: keep all children in a parse tree
	Priority int  // client priority, not interpreted by table construction
	rhs      []Symbol[T, N]
	lhsID    int   // symbol ID of LHS
	rhsIDs   []int // symbol IDs of RHS
}

// RHS returns the right hand side symbols. Clients must not modify the slice.
func (r *Rule[T, N]) RHS() []Symbol[T, N] {
	return r.rhs
}

// Len returns the number of symbols on the right hand side.
func (r *Rule[T, N]) Len() int {
	return len(r.rhs)
}

// IsEps is true for epsilon-productions.
func (r *Rule[T, N]) IsEps() bool {
	return len(r.rhs) == 0
}

func (r *Rule[T, N]) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v ➞", r.LHS)
	for _, sym := range r.rhs {
		b.WriteByte(' ')
		b.WriteString(sym.String())
	}
	return b.String()
}

// === Grammar ===============================================================

// Grammar is a context-free grammar: an ordered list of rules together with a start
// rule. A grammar is read-only once it has been built by a GrammarBuilder.
//
// All symbols of a grammar are numbered in order of their first appearance (LHS of
// the start rule first, then rule by rule, each LHS followed by its RHS symbols).
// The end-of-input sentinel gets the last number. This numbering is the stable
// symbol order used throughout table construction.
type Grammar[T, N comparable] struct {
	Name    string
	rules   []*Rule[T, N]
	start   int                  // serial of start rule
	symbols []Symbol[T, N]       // symbols by ID
	symIDs  map[Symbol[T, N]]int // symbol ➞ ID
	byLHS   map[int][]int        // LHS symbol ID ➞ rule serials
	names   map[Symbol[T, N]]string
}

// Size returns the number of rules.
func (g *Grammar[T, N]) Size() int {
	return len(g.rules)
}

// Rule returns rule number no. It returns nil if no is out of range.
func (g *Grammar[T, N]) Rule(no int) *Rule[T, N] {
	if no < 0 || no >= len(g.rules) {
		return nil
	}
	return g.rules[no]
}

// StartRule returns the designated start rule.
func (g *Grammar[T, N]) StartRule() *Rule[T, N] {
	return g.rules[g.start]
}

// T is a shortcut for creating a terminal symbol of the grammar's type.
func (g *Grammar[T, N]) T(t T) Symbol[T, N] {
	return Term[T, N](t)
}

// N is a shortcut for creating a non-terminal symbol of the grammar's type.
func (g *Grammar[T, N]) N(n N) Symbol[T, N] {
	return NonTerm[T, N](n)
}

// EOF returns the end-of-input sentinel of the grammar's type.
func (g *Grammar[T, N]) EOF() Symbol[T, N] {
	return EOF[T, N]()
}

// SymbolCount returns the number of distinct symbols, including end-of-input.
func (g *Grammar[T, N]) SymbolCount() int {
	return len(g.symbols)
}

// Symbol returns the symbol with a given ID.
func (g *Grammar[T, N]) Symbol(id int) Symbol[T, N] {
	return g.symbols[id]
}

// SymbolID returns the ID of a symbol, or false if the symbol does not occur in g.
func (g *Grammar[T, N]) SymbolID(sym Symbol[T, N]) (int, bool) {
	id, ok := g.symIDs[sym]
	return id, ok
}

// SymbolName returns a display name for a symbol. Terminal names may be set with
// GrammarBuilder.Terminal; otherwise the symbol's String() is used.
func (g *Grammar[T, N]) SymbolName(sym Symbol[T, N]) string {
	if name, ok := g.names[sym]; ok {
		return name
	}
	return sym.String()
}

// RulesFor returns all rules with LHS n, in grammar order.
func (g *Grammar[T, N]) RulesFor(n N) []*Rule[T, N] {
	id, ok := g.symIDs[NonTerm[T, N](n)]
	if !ok {
		return nil
	}
	var rules []*Rule[T, N]
	for _, serial := range g.byLHS[id] {
		rules = append(rules, g.rules[serial])
	}
	return rules
}

// EachSymbol calls f for every symbol of g, in symbol order.
func (g *Grammar[T, N]) EachSymbol(f func(Symbol[T, N])) {
	for _, sym := range g.symbols {
		f(sym)
	}
}

// EachTerminal calls f for every terminal of g, followed by end-of-input.
func (g *Grammar[T, N]) EachTerminal(f func(Symbol[T, N])) {
	for _, sym := range g.symbols {
		if sym.IsTerminal() {
			f(sym)
		}
	}
}

// EachNonTerminal calls f for every non-terminal of g, in symbol order.
func (g *Grammar[T, N]) EachNonTerminal(f func(Symbol[T, N])) {
	for _, sym := range g.symbols {
		if !sym.IsTerminal() {
			f(sym)
		}
	}
}

// Dump is a debugging helper, tracing all rules.
func (g *Grammar[T, N]) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.Serial, g.RuleString(r))
	}
	tracer().Debugf("-------------------------------------------------------")
}

// RuleString returns a rule with display names for its symbols.
func (g *Grammar[T, N]) RuleString(r *Rule[T, N]) string {
	var b strings.Builder
	b.WriteString(g.SymbolName(g.symbols[r.lhsID]))
	b.WriteString(" ➞")
	for _, sym := range r.rhs {
		b.WriteByte(' ')
		b.WriteString(g.SymbolName(sym))
	}
	return b.String()
}

func (g *Grammar[T, N]) isTerminal(id int) bool {
	return g.symbols[id].IsTerminal()
}

func (g *Grammar[T, N]) eofID() int {
	return len(g.symbols) - 1
}

// --- Grammar Builder -------------------------------------------------------

// GrammarBuilder is a builder type for grammars.
//
//    b := NewGrammarBuilder[string, string]("G")
//    b.LHS("S'").N("S").End()
//    b.LHS("S").T("id").End()
//    g, err := b.Grammar()
//
type GrammarBuilder[T, N comparable] struct {
	name     string
	rules    []*Rule[T, N]
	start    N
	hasStart bool
	names    map[Symbol[T, N]]string
	err      error
}

// NewGrammarBuilder creates a builder for a grammar with a given name.
func NewGrammarBuilder[T, N comparable](name string) *GrammarBuilder[T, N] {
	return &GrammarBuilder[T, N]{
		name:  name,
		names: make(map[Symbol[T, N]]string),
	}
}

// Start designates the non-terminal whose first rule is the start rule.
// Without a call to Start, the first rule is the start rule.
func (gb *GrammarBuilder[T, N]) Start(n N) *GrammarBuilder[T, N] {
	gb.start = n
	gb.hasStart = true
	return gb
}

// Terminal sets a display name for a terminal, used in dumps and exports.
func (gb *GrammarBuilder[T, N]) Terminal(t T, name string) *GrammarBuilder[T, N] {
	gb.names[Term[T, N](t)] = name
	return gb
}

// LHS starts a new rule for non-terminal n.
func (gb *GrammarBuilder[T, N]) LHS(n N) *RuleBuilder[T, N] {
	return &RuleBuilder[T, N]{gb: gb, rule: &Rule[T, N]{LHS: n}}
}

// Grammar returns the grammar built so far. It returns ErrEmptyGrammar if no rule
// has been added and ErrNoStartRule if the start symbol has no rules.
//
// The grammar takes ownership of the rules created by the builder: a rule returned
// by RuleBuilder.End is the rule of the grammar with the same serial number.
func (gb *GrammarBuilder[T, N]) Grammar() (*Grammar[T, N], error) {
	if gb.err != nil {
		return nil, gb.err
	}
	if len(gb.rules) == 0 {
		return nil, fmt.Errorf("grammar %s: %w", gb.name, ErrEmptyGrammar)
	}
	start := 0
	if gb.hasStart {
		start = slices.IndexFunc(gb.rules, func(r *Rule[T, N]) bool {
			return r.LHS == gb.start
		})
		if start < 0 {
			return nil, fmt.Errorf("grammar %s, start symbol %v: %w", gb.name, gb.start, ErrNoStartRule)
		}
	}
	g := &Grammar[T, N]{
		Name:   gb.name,
		start:  start,
		symIDs: make(map[Symbol[T, N]]int),
		byLHS:  make(map[int][]int),
		names:  gb.names,
	}
	g.intern(NonTerm[T, N](gb.rules[start].LHS))
	for i, rule := range gb.rules {
		rule.Serial = i
		rule.lhsID = g.intern(NonTerm[T, N](rule.LHS))
		rule.rhsIDs = make([]int, len(rule.rhs))
		for j, sym := range rule.rhs {
			rule.rhsIDs[j] = g.intern(sym)
		}
		g.byLHS[rule.lhsID] = append(g.byLHS[rule.lhsID], i)
		g.rules = append(g.rules, rule)
	}
	g.intern(EOF[T, N]())
	g.checkStart()
	return g, nil
}

// intern assigns the next free ID to a symbol, if it is not yet known.
func (g *Grammar[T, N]) intern(sym Symbol[T, N]) int {
	if id, ok := g.symIDs[sym]; ok {
		return id
	}
	id := len(g.symbols)
	g.symbols = append(g.symbols, sym)
	g.symIDs[sym] = id
	return id
}

// checkStart warns if the start rule is not a proper augmenting rule. This is not an
// error, but a grammar where the start symbol occurs on a RHS or has more than one
// rule will not accept at the points a client might expect.
func (g *Grammar[T, N]) checkStart() {
	startID := g.rules[g.start].lhsID
	if len(g.byLHS[startID]) > 1 {
		tracer().Infof("grammar %s: start symbol %v has %d rules, only rule %d accepts",
			g.Name, g.symbols[startID], len(g.byLHS[startID]), g.start)
	}
	for _, r := range g.rules {
		if slices.Contains(r.rhsIDs, startID) {
			tracer().Infof("grammar %s: start symbol %v used in rule %d",
				g.Name, g.symbols[startID], r.Serial)
		}
	}
}

// RuleBuilder adds symbols to a rule under construction.
type RuleBuilder[T, N comparable] struct {
	gb   *GrammarBuilder[T, N]
	rule *Rule[T, N]
}

// T appends a terminal.
func (rb *RuleBuilder[T, N]) T(t T) *RuleBuilder[T, N] {
	rb.rule.rhs = append(rb.rule.rhs, Term[T, N](t))
	return rb
}

// N appends a non-terminal.
func (rb *RuleBuilder[T, N]) N(n N) *RuleBuilder[T, N] {
	rb.rule.rhs = append(rb.rule.rhs, NonTerm[T, N](n))
	return rb
}

// KeepAll sets the client flag to keep all children of this rule.
func (rb *RuleBuilder[T, N]) KeepAll() *RuleBuilder[T, N] {
	rb.rule.KeepAll = true
	return rb
}

// Priority sets a client priority for this rule.
func (rb *RuleBuilder[T, N]) Priority(p int) *RuleBuilder[T, N] {
	rb.rule.Priority = p
	return rb
}

// End completes the rule and adds it to the grammar.
func (rb *RuleBuilder[T, N]) End() *Rule[T, N] {
	rb.rule.Serial = len(rb.gb.rules)
	rb.gb.rules = append(rb.gb.rules, rb.rule)
	return rb.rule
}

// Epsilon completes the rule as an epsilon-production. Symbols appended before are
// an error.
func (rb *RuleBuilder[T, N]) Epsilon() *Rule[T, N] {
	if len(rb.rule.rhs) > 0 && rb.gb.err == nil {
		rb.gb.err = fmt.Errorf("rule for %v: epsilon-production must not have RHS symbols", rb.rule.LHS)
	}
	return rb.End()
}
