package lr

import "fmt"

// SymbolKind discriminates terminals, non-terminals and the end-of-input sentinel.
type SymbolKind uint8

// Kinds of grammar symbols.
const (
	NonTerminalKind SymbolKind = iota
	TerminalKind
	EOFKind
)

func (k SymbolKind) String() string {
	switch k {
	case NonTerminalKind:
		return "non-terminal"
	case TerminalKind:
		return "terminal"
	}
	return "end-of-input"
}

// Symbol is a grammar symbol. Terminals carry a tag of type T, non-terminals a tag of
// type N. The end-of-input sentinel carries neither.
//
// Symbols are values and may be compared with == and used as map keys.
type Symbol[T, N comparable] struct {
	kind SymbolKind
	t    T
	n    N
}

// Term creates a terminal symbol.
func Term[T, N comparable](t T) Symbol[T, N] {
	return Symbol[T, N]{kind: TerminalKind, t: t}
}

// NonTerm creates a non-terminal symbol.
func NonTerm[T, N comparable](n N) Symbol[T, N] {
	return Symbol[T, N]{kind: NonTerminalKind, n: n}
}

// EOF returns the end-of-input sentinel.
func EOF[T, N comparable]() Symbol[T, N] {
	return Symbol[T, N]{kind: EOFKind}
}

// Kind returns the kind of symbol.
func (sym Symbol[T, N]) Kind() SymbolKind {
	return sym.kind
}

// IsTerminal is true for terminals and for the end-of-input sentinel.
func (sym Symbol[T, N]) IsTerminal() bool {
	return sym.kind != NonTerminalKind
}

// IsEOF is true for the end-of-input sentinel.
func (sym Symbol[T, N]) IsEOF() bool {
	return sym.kind == EOFKind
}

// Terminal returns the tag of a terminal. ok is false for other kinds of symbols.
func (sym Symbol[T, N]) Terminal() (t T, ok bool) {
	return sym.t, sym.kind == TerminalKind
}

// NonTerminal returns the tag of a non-terminal. ok is false for other kinds of symbols.
func (sym Symbol[T, N]) NonTerminal() (n N, ok bool) {
	return sym.n, sym.kind == NonTerminalKind
}

func (sym Symbol[T, N]) String() string {
	switch sym.kind {
	case TerminalKind:
		return fmt.Sprintf("%v", sym.t)
	case NonTerminalKind:
		return fmt.Sprintf("%v", sym.n)
	}
	return "#eof"
}
