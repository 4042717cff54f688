package lexmach

import (
	"testing"

	"github.com/npillmayer/reel"
	"github.com/npillmayer/reel/lr/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"
)

const (
	tokIf reel.TokType = iota + 1
	tokID
	tokNum
	tokPlus
	tokAssign
)

var defs = []TokenDef{
	{Name: "if", Type: tokIf, Literal: "if"},
	{Name: "ID", Type: tokID, Pattern: `([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_)*`},
	{Name: "NUM", Type: tokNum, Pattern: `[0-9]+`},
	{Name: "+", Type: tokPlus, Literal: "+"},
	{Name: ":=", Type: tokAssign, Literal: ":="},
}

func skipping(lexer *lexmachine.Lexer) {
	lexer.Add([]byte(`//[^\n]*\n?`), Skip)
	lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reel.scanner")
	defer teardown()
	//
	LM, err := NewLMAdapter(skipping, defs)
	if err != nil {
		t.Fatal(err)
	}
	for i, test := range []struct {
		input string
		count int
	}{
		{"1", 1},
		{"1+12", 3},
		{"x := y", 3},
		{"x + 1 // comment", 3},
		{"if x", 2},
	} {
		t.Logf("------+-----------------+--------")
		sc, err := LM.Scanner(test.input)
		if err != nil {
			t.Fatal(err)
		}
		count := 0
		for token := sc.NextToken(); token.TokType() != scanner.EOF; token = sc.NextToken() {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			count++
		}
		if count != test.count {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, test.count, count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestKeywordBeforeIdentifier(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reel.scanner")
	defer teardown()
	//
	LM, err := NewLMAdapter(skipping, defs)
	if err != nil {
		t.Fatal(err)
	}
	sc, _ := LM.Scanner("if iffy")
	if tok := sc.NextToken(); tok.TokType() != tokIf {
		t.Errorf("expected keyword 'if', got %d/%q", tok.TokType(), tok.Lexeme())
	}
	tok := sc.NextToken()
	if tok.TokType() != tokID || tok.Lexeme() != "iffy" {
		t.Errorf("expected identifier 'iffy', got %d/%q", tok.TokType(), tok.Lexeme())
	}
	if tok.Span() != (reel.Span{3, 7}) {
		t.Errorf("expected span of 'iffy' to be (3…7), is %v", tok.Span())
	}
	eof := sc.NextToken()
	if eof.TokType() != scanner.EOF || eof.Span().From() != 7 {
		t.Errorf("expected EOF at position 7, got %d at %v", eof.TokType(), eof.Span())
	}
}

func TestMissingPattern(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reel.scanner")
	defer teardown()
	//
	_, err := NewLMAdapter(nil, []TokenDef{{Name: "broken", Type: 1}})
	if err == nil {
		t.Errorf("expected token definition without pattern to be rejected")
	}
}

func TestQuoteLiteral(t *testing.T) {
	for _, test := range []struct{ lit, quoted string }{
		{"if", "if"},
		{"+", `\+`},
		{":=", ":="},
		{"(*)", `\(\*\)`},
		{"a_1", "a_1"},
	} {
		if q := QuoteLiteral(test.lit); q != test.quoted {
			t.Errorf("expected %q to be quoted as %q, is %q", test.lit, test.quoted, q)
		}
	}
}
