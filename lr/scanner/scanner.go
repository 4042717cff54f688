/*
Package scanner defines an interface for scanners feeding the table-driven parsers
of package lr/driver.

Two scanner implementations are provided: (1) a thin wrapper over the Go std lib
'text/scanner', useful for grammars over Go-like tokens, and (2) a regex and literal
based scanner on top of lexmachine, living in sub-package `lexmach`.

Scanners signal the end of input with a token of type EOF. Parsers map this token
to the end-of-input symbol of a grammar.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"io"
	"text/scanner"

	"github.com/npillmayer/reel"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'reel.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("reel.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token types are replicated here for practical reasons.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() reel.Token
	SetErrorHandler(func(error))
}

// LogError is the default error reporting function for scanners.
func LogError(e error) {
	tracer().Errorf("scanner error: %s", e.Error())
}

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	Error func(error) // error handler
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
// Single characters which are not part of another token are returned with their
// rune value as token type, e.g. '+' for a plus sign.
func GoTokenizer(sourceID string, input io.Reader) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = LogError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(errorAt(s.Position.String(), msg))
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = LogError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() reel.Token {
	tok := t.Scan()
	if tok == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
	}
	return DefaultToken{
		kind:   reel.TokType(tok),
		lexeme: t.TokenText(),
		span:   reel.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
	}
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the Go
// tokenizer as well as the lexmachine scanner.
type DefaultToken struct {
	kind   reel.TokType
	lexeme string
	Val    interface{}
	span   reel.Span
}

var _ reel.Token = DefaultToken{}

// MakeDefaultToken creates a token.
func MakeDefaultToken(typ reel.TokType, lexeme string, span reel.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

// TokType is part of the reel.Token interface.
func (t DefaultToken) TokType() reel.TokType {
	return t.kind
}

// Value is part of the reel.Token interface.
func (t DefaultToken) Value() interface{} {
	return t.Val
}

// Lexeme is part of the reel.Token interface.
func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

// Span is part of the reel.Token interface.
func (t DefaultToken) Span() reel.Span {
	return t.span
}

// --- Scanner errors --------------------------------------------------------

// Error is an error reported by a scanner, with a position description.
type Error struct {
	Pos string
	Msg string
}

func errorAt(pos, msg string) *Error {
	return &Error{Pos: pos, Msg: msg}
}

func (e *Error) Error() string {
	if e.Pos == "" {
		return e.Msg
	}
	return e.Pos + ": " + e.Msg
}
