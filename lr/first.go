package lr

import (
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// LRAnalysis holds the results of a static analysis of a grammar: FIRST sets for all
// symbols and the set of nullable non-terminals. Create one with Analysis(g).
// An LRAnalysis is read-only after creation.
type LRAnalysis[T, N comparable] struct {
	g        *Grammar[T, N]
	first    []*treeset.Set // FIRST sets of symbol IDs, indexed by symbol ID
	nullable []bool         // indexed by symbol ID
}

// Analysis creates an analyser for a grammar and computes FIRST sets and
// nullability.
func Analysis[T, N comparable](g *Grammar[T, N]) *LRAnalysis[T, N] {
	ga := &LRAnalysis[T, N]{g: g}
	ga.computeFirstSets()
	return ga
}

// Grammar returns the grammar this analysis is for.
func (ga *LRAnalysis[T, N]) Grammar() *Grammar[T, N] {
	return ga.g
}

// First returns FIRST(sym), sorted by symbol order. It returns nil for symbols not
// occurring in the grammar. The end-of-input sentinel is its own FIRST set.
func (ga *LRAnalysis[T, N]) First(sym Symbol[T, N]) []Symbol[T, N] {
	id, ok := ga.g.SymbolID(sym)
	if !ok {
		return nil
	}
	return ga.symbols(ga.first[id])
}

// Nullable is true if sym derives the empty string. Terminals and end-of-input are
// never nullable.
func (ga *LRAnalysis[T, N]) Nullable(sym Symbol[T, N]) bool {
	id, ok := ga.g.SymbolID(sym)
	if !ok {
		return false
	}
	return ga.nullable[id]
}

// FirstOfSequence returns FIRST(β a) for a sequence of symbols β followed by a
// lookahead a.
func (ga *LRAnalysis[T, N]) FirstOfSequence(beta []Symbol[T, N], la Symbol[T, N]) ([]Symbol[T, N], error) {
	ids := make([]int, len(beta))
	for i, sym := range beta {
		id, ok := ga.g.SymbolID(sym)
		if !ok {
			return nil, fmt.Errorf("symbol %v: %w", sym, ErrFirstSetMissing)
		}
		ids[i] = id
	}
	laID, ok := ga.g.SymbolID(la)
	if !ok {
		return nil, fmt.Errorf("symbol %v: %w", la, ErrFirstSetMissing)
	}
	set, err := ga.firstOfSequence(ids, laID)
	if err != nil {
		return nil, err
	}
	return ga.symbols(set), nil
}

// FIRST sets and nullability only ever grow, over finite sets of symbols, so the
// iteration reaches a fixed point.
func (ga *LRAnalysis[T, N]) computeFirstSets() {
	g := ga.g
	ga.first = make([]*treeset.Set, g.SymbolCount())
	ga.nullable = make([]bool, g.SymbolCount())
	for id, sym := range g.symbols {
		ga.first[id] = treeset.NewWith(utils.IntComparator)
		if sym.IsTerminal() {
			ga.first[id].Add(id)
		}
	}
	passes := 0
	for changed := true; changed; passes++ {
		changed = false
		for _, r := range g.rules {
			lhs := ga.first[r.lhsID]
			size := lhs.Size()
			allNullable := true
			for _, id := range r.rhsIDs {
				lhs.Add(ga.first[id].Values()...)
				if !ga.nullable[id] {
					allNullable = false
					break
				}
			}
			if lhs.Size() > size {
				changed = true
			}
			if allNullable && !ga.nullable[r.lhsID] {
				ga.nullable[r.lhsID] = true
				changed = true
			}
		}
	}
	tracer().Debugf("FIRST sets for grammar %s stable after %d passes", g.Name, passes)
	for id, sym := range g.symbols {
		if !sym.IsTerminal() {
			tracer().Debugf("FIRST(%s) = %v, nullable = %v", g.SymbolName(sym),
				ga.symbols(ga.first[id]), ga.nullable[id])
		}
	}
}

// firstOf returns FIRST for a symbol ID. A missing entry is an internal error.
func (ga *LRAnalysis[T, N]) firstOf(id int) (*treeset.Set, error) {
	if id < 0 || id >= len(ga.first) || ga.first[id] == nil {
		return nil, fmt.Errorf("symbol ID %d: %w", id, ErrFirstSetMissing)
	}
	return ga.first[id], nil
}

// firstOfSequence computes FIRST(β a) for symbol IDs β and a lookahead a.
// The result is a fresh set.
func (ga *LRAnalysis[T, N]) firstOfSequence(beta []int, la int) (*treeset.Set, error) {
	result := treeset.NewWith(utils.IntComparator)
	for _, id := range beta {
		f, err := ga.firstOf(id)
		if err != nil {
			return nil, err
		}
		result.Add(f.Values()...)
		if !ga.nullable[id] {
			return result, nil
		}
	}
	f, err := ga.firstOf(la)
	if err != nil {
		return nil, err
	}
	result.Add(f.Values()...)
	return result, nil
}

func (ga *LRAnalysis[T, N]) symbols(set *treeset.Set) []Symbol[T, N] {
	syms := make([]Symbol[T, N], 0, set.Size())
	for _, v := range set.Values() {
		syms = append(syms, ga.g.symbols[v.(int)])
	}
	return syms
}
