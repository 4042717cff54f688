package reel

import "fmt"

// --- Tokens ----------------------------------------------------------------

// TokType is the category of a token. Applications define their own constants;
// a grammar's terminals are usually tagged with these values.
type TokType int

// Token is an input token, as produced by a scanner and consumed by a table-driven
// parser.
//
// A token for an identifier could look like this:
//
//    TokType = Ident       // application specific category
//    Lexeme  = "counter"   // how it appeared in the input
//    Span    = 12…19       // input positions covered
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans -----------------------------------------------------------------

// Span captures a run of input positions. Parsers track for every terminal and
// non-terminal which positions it covers. A span denotes a start position and the
// position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull is true for the zero span, which epsilon-derivations start out with.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering s and other. A null span is neutral.
func (s Span) Extend(other Span) Span {
	if s.IsNull() {
		return other
	}
	if other.IsNull() {
		return s
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
