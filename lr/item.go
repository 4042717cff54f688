package lr

import (
	"bytes"
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// === Items =================================================================

// Item is an LR(1) item: a rule with a dot marking parse progress, plus a lookahead.
//
//    [ A ➞ α • β , a ]
//
// Items refer to rules and symbols by number. They are meaningful only in the
// context of a grammar and are compared as plain values.
type Item struct {
	rule int // serial of rule
	dot  int // position of dot within RHS, 0…len(RHS)
	la   int // symbol ID of lookahead
}

// StartItem returns [ S' ➞ • S , #eof ] for the start rule of a grammar.
func StartItem[T, N comparable](g *Grammar[T, N]) Item {
	return Item{rule: g.start, dot: 0, la: g.eofID()}
}

// Rule returns the serial number of the item's rule.
func (i Item) Rule() int {
	return i.rule
}

// Dot returns the position of the dot.
func (i Item) Dot() int {
	return i.dot
}

// Lookahead returns the symbol ID of the item's lookahead.
func (i Item) Lookahead() int {
	return i.la
}

// advance moves the dot one position to the right. Callers check for completeness.
func (i Item) advance() Item {
	return Item{rule: i.rule, dot: i.dot + 1, la: i.la}
}

// Items are sorted by rule, dot and lookahead. The order of items is the order in
// which symbols for goto transitions are enumerated, and therefore determines the
// numbering of states.
func itemComparator(a, b interface{}) int {
	i1, i2 := a.(Item), b.(Item)
	if c := utils.IntComparator(i1.rule, i2.rule); c != 0 {
		return c
	}
	if c := utils.IntComparator(i1.dot, i2.dot); c != 0 {
		return c
	}
	return utils.IntComparator(i1.la, i2.la)
}

func asItem(x interface{}) Item {
	return x.(Item)
}

// --- Grammar-dependent item operations -------------------------------------

// peek returns the symbol ID after the dot, or -1 if the item is complete.
func (g *Grammar[T, N]) peek(i Item) int {
	r := g.rules[i.rule]
	if i.dot >= len(r.rhsIDs) {
		return -1
	}
	return r.rhsIDs[i.dot]
}

// rest returns the symbol IDs following the active symbol.
func (g *Grammar[T, N]) rest(i Item) []int {
	r := g.rules[i.rule]
	if i.dot+1 >= len(r.rhsIDs) {
		return nil
	}
	return r.rhsIDs[i.dot+1:]
}

func (g *Grammar[T, N]) complete(i Item) bool {
	return i.dot >= len(g.rules[i.rule].rhsIDs)
}

// ActiveSymbol returns the symbol after the dot of an item. It returns false for
// complete items.
func (g *Grammar[T, N]) ActiveSymbol(i Item) (Symbol[T, N], bool) {
	if id := g.peek(i); id >= 0 {
		return g.symbols[id], true
	}
	return Symbol[T, N]{}, false
}

// ItemString formats an item like "[E ➞ E • + id, #eof]".
func (g *Grammar[T, N]) ItemString(i Item) string {
	var b bytes.Buffer
	r := g.rules[i.rule]
	b.WriteString("[")
	b.WriteString(g.SymbolName(g.symbols[r.lhsID]))
	b.WriteString(" ➞")
	for n, id := range r.rhsIDs {
		if n == i.dot {
			b.WriteString(" •")
		}
		b.WriteString(" ")
		b.WriteString(g.SymbolName(g.symbols[id]))
	}
	if g.complete(i) {
		b.WriteString(" •")
	}
	fmt.Fprintf(&b, ", %s]", g.SymbolName(g.symbols[i.la]))
	return b.String()
}

// === Item Sets =============================================================

// ItemSet is the set of items of an LR(1) state, partitioned into kernel items
// and closure items. Two item sets describe the same state iff their kernels are
// equal.
type ItemSet struct {
	kernel  *treeset.Set
	closure *treeset.Set
}

func newItemSet() *ItemSet {
	return &ItemSet{
		kernel:  treeset.NewWith(itemComparator),
		closure: treeset.NewWith(itemComparator),
	}
}

// NewItemSet creates an item set with a given kernel.
func NewItemSet(kernel ...Item) *ItemSet {
	iset := newItemSet()
	for _, i := range kernel {
		iset.kernel.Add(i)
	}
	return iset
}

// Kernel returns the kernel items in item order.
func (iset *ItemSet) Kernel() []Item {
	return itemSlice(iset.kernel)
}

// Closure returns the items derived from the kernel, in item order.
func (iset *ItemSet) Closure() []Item {
	return itemSlice(iset.closure)
}

// Items returns all items of the set in item order.
func (iset *ItemSet) Items() []Item {
	all := treeset.NewWith(itemComparator)
	all.Add(iset.kernel.Values()...)
	all.Add(iset.closure.Values()...)
	return itemSlice(all)
}

// Contains checks whether an item is a kernel item or a closure item.
func (iset *ItemSet) Contains(i Item) bool {
	return iset.kernel.Contains(i) || iset.closure.Contains(i)
}

// Size returns the number of items.
func (iset *ItemSet) Size() int {
	return iset.kernel.Size() + iset.closure.Size()
}

// SameKernel checks whether two item sets have equal kernels, i.e. whether they
// represent the same LR(1) state.
func (iset *ItemSet) SameKernel(other *ItemSet) bool {
	if iset.kernel.Size() != other.kernel.Size() {
		return false
	}
	it1, it2 := iset.kernel.Iterator(), other.kernel.Iterator()
	for it1.Next() && it2.Next() {
		if itemComparator(it1.Value(), it2.Value()) != 0 {
			return false
		}
	}
	return true
}

// extendClosure adds derived items which are not already present. It returns the
// items actually added.
func (iset *ItemSet) extendClosure(items []Item) []Item {
	var added []Item
	for _, i := range items {
		if !iset.Contains(i) {
			iset.closure.Add(i)
			added = append(added, i)
		}
	}
	return added
}

// activeSymbols returns the IDs of all symbols after a dot, in order of their first
// appearance when iterating over the items.
func activeSymbols[T, N comparable](g *Grammar[T, N], iset *ItemSet) []int {
	seen := make(map[int]bool)
	var syms []int
	for _, i := range iset.Items() {
		if A := g.peek(i); A >= 0 && !seen[A] {
			seen[A] = true
			syms = append(syms, A)
		}
	}
	return syms
}

func itemSlice(set *treeset.Set) []Item {
	items := make([]Item, 0, set.Size())
	for _, x := range set.Values() {
		items = append(items, asItem(x))
	}
	return items
}

// itemSetString is a debugging helper.
func itemSetString[T, N comparable](g *Grammar[T, N], iset *ItemSet) string {
	var b bytes.Buffer
	b.WriteString("{")
	first := true
	for _, i := range iset.Items() {
		if first {
			b.WriteString(" ")
			first = false
		} else {
			b.WriteString(", ")
		}
		b.WriteString(g.ItemString(i))
	}
	b.WriteString(" }")
	return b.String()
}
