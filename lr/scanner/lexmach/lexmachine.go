package lexmach

import (
	"errors"
	"strings"

	"github.com/npillmayer/reel"
	"github.com/npillmayer/reel/lr/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'reel.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("reel.scanner")
}

// TokenDef defines a token category. Either a regular expression pattern or a
// literal string has to be given. Literals are matched verbatim.
type TokenDef struct {
	Name    string       // display name of the token category
	Type    reel.TokType // token type, i.e. the terminal of a grammar
	Pattern string       // lexmachine regular expression
	Literal string       // literal, used if Pattern is empty
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives an init function for
// patterns which should be tried before the token definitions, e.g. for skipping
// white space, and a list of token definitions. Definitions are tried in order.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), defs []TokenDef) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	if init != nil {
		init(adapter.Lexer)
	}
	for _, def := range defs {
		pattern := def.Pattern
		if pattern == "" {
			if def.Literal == "" {
				return nil, errors.New("token " + def.Name + " has neither pattern nor literal")
			}
			pattern = QuoteLiteral(def.Literal)
		}
		tracer().Debugf("token %s = /%s/", def.Name, pattern)
		adapter.Lexer.Add([]byte(pattern), MakeToken(def.Name, int(def.Type)))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, Error: scanner.LogError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = scanner.LogError
		return
	}
	lms.Error = h
}

// NextToken is part of the Tokenizer interface. Unmatched input is reported to the
// error handler and skipped. At the end of input, a token of type scanner.EOF is
// returned, spanning the empty input position after the last character.
func (lms *LMScanner) NextToken() reel.Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		ui, is := err.(*machines.UnconsumedInput)
		if !is {
			return lms.eofToken()
		}
		if ui.FailTC > lms.scanner.TC {
			lms.scanner.TC = ui.FailTC
		} else {
			lms.scanner.TC++ // skip at least the offending character
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return lms.eofToken()
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	token := tok.(*lexmachine.Token)
	return scanner.MakeDefaultToken(
		reel.TokType(token.Type),
		string(token.Lexeme),
		reel.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
	)
}

func (lms *LMScanner) eofToken() reel.Token {
	end := uint64(len(lms.scanner.Text))
	return scanner.MakeDefaultToken(scanner.EOF, "", reel.Span{end, end})
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// QuoteLiteral escapes all characters of a literal which have a special meaning in
// a lexmachine regular expression.
func QuoteLiteral(lit string) string {
	var b strings.Builder
	for _, r := range lit {
		if strings.ContainsRune(metaChars, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

const metaChars = `\.+*?()|[]{}^$-`
