package lr

import (
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
)

// === Closure ===============================================================

// closeKey identifies one expansion step: a non-terminal B together with the
// lookaheads its items receive. Expanding the same key twice yields the same items.
type closeKey struct {
	sym int
	las string
}

// Closure computes the LR(1) closure of a set of kernel items.
func (ga *LRAnalysis[T, N]) Closure(kernel ...Item) (*ItemSet, error) {
	iset := NewItemSet(kernel...)
	if err := ga.closeState(iset); err != nil {
		return nil, err
	}
	return iset, nil
}

// closeState expands the kernel of an item set to its full closure. It repeats
// one-level expansions until a pass adds no new items.
func (ga *LRAnalysis[T, N]) closeState(iset *ItemSet) error {
	closed := make(map[closeKey]struct{})
	queue := iset.Kernel()
	passes := 0
	for len(queue) > 0 {
		derived, err := ga.closeSet(queue, closed)
		if err != nil {
			return err
		}
		queue = iset.extendClosure(derived)
		passes++
	}
	tracer().Debugf("closure complete after %d passes: %s", passes, itemSetString(ga.g, iset))
	return nil
}

// closeSet performs a single level of expansion. For every item
//
//    [ A ➞ α • B β , a ]
//
// with B a non-terminal, items [ B ➞ • γ , b ] are created for all rules of B and
// all b ∈ FIRST(β a). A non-terminal already expanded for the same lookaheads is
// skipped; this keeps left-recursive rules from being expanded over and over.
// The items returned may themselves be open to further expansion.
func (ga *LRAnalysis[T, N]) closeSet(items []Item, closed map[closeKey]struct{}) ([]Item, error) {
	g := ga.g
	result := treeset.NewWith(itemComparator)
	for _, i := range items {
		B := g.peek(i)
		if B < 0 || g.isTerminal(B) {
			continue
		}
		lookaheads, err := ga.firstOfSequence(g.rest(i), i.la)
		if err != nil {
			return nil, fmt.Errorf("closure of %s: %w", g.ItemString(i), err)
		}
		key := closeKey{sym: B, las: fmt.Sprint(lookaheads.Values())}
		if _, ok := closed[key]; ok {
			continue
		}
		closed[key] = struct{}{}
		for _, serial := range g.byLHS[B] {
			for _, la := range lookaheads.Values() {
				result.Add(Item{rule: serial, dot: 0, la: la.(int)})
			}
		}
	}
	return itemSlice(result), nil
}

// gotoKernel computes the kernel of the state reached from iset by a transition on
// symbol A: all items with A after the dot, advanced by one position.
func gotoKernel[T, N comparable](g *Grammar[T, N], iset *ItemSet, A int) *ItemSet {
	next := newItemSet()
	for _, i := range iset.Items() {
		if g.peek(i) == A {
			next.kernel.Add(i.advance())
		}
	}
	return next
}
