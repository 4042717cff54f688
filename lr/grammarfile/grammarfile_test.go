package grammarfile

import (
	"errors"
	"testing"

	"github.com/npillmayer/reel/lr"
	"github.com/npillmayer/reel/lr/driver"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const exprGrammar = `
name: Expr
start: "S'"
skip: ['[ \t]+']
tokens:
  - { name: if,  literal: if }
  - { name: id,  pattern: '[a-z]+' }
  - { name: '+', literal: '+' }
rules:
  - "S' -> E"
  - "E -> E + T"
  - "E -> T"
  - "T -> id"
  - { rule: "T -> if Opt", keep: true, priority: 2 }
  - "Opt -> "
`

func TestParseFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reel.grammarfile")
	defer teardown()
	//
	f, err := Parse([]byte(exprGrammar))
	if err != nil {
		t.Fatal(err)
	}
	if f.Name != "Expr" || f.Start != "S'" {
		t.Errorf("unexpected header: name=%q, start=%q", f.Name, f.Start)
	}
	if len(f.Tokens) != 3 || len(f.Rules) != 6 {
		t.Fatalf("expected 3 tokens and 6 rules, got %d and %d", len(f.Tokens), len(f.Rules))
	}
	if f.Rules[4].Rule != "T -> if Opt" || !f.Rules[4].Keep || f.Rules[4].Priority != 2 {
		t.Errorf("rule mapping not decoded correctly: %+v", f.Rules[4])
	}
	if typ, ok := f.TokenType("id"); !ok || typ != 2 {
		t.Errorf("expected token 'id' to have type 2, got %d", typ)
	}
	if f.TokenName(3) != "+" {
		t.Errorf("expected name of type 3 to be '+', got %q", f.TokenName(3))
	}
}

func TestFileGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reel.grammarfile")
	defer teardown()
	//
	f, err := Parse([]byte(exprGrammar))
	if err != nil {
		t.Fatal(err)
	}
	g, err := f.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if g.Size() != 6 {
		t.Errorf("expected 6 rules, got %d", g.Size())
	}
	if g.StartRule().LHS != "S'" {
		t.Errorf("expected start rule for S', got %v", g.StartRule())
	}
	if !g.Rule(5).IsEps() {
		t.Errorf("expected rule 5 to be an epsilon-production")
	}
	if r := g.Rule(4); !r.KeepAll || r.Priority != 2 {
		t.Errorf("expected rule 4 to carry client flags")
	}
	if name := g.SymbolName(g.T(3)); name != "+" {
		t.Errorf("expected terminal 3 to be named '+', got %q", name)
	}
}

func TestFileParsesInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reel.grammarfile")
	defer teardown()
	//
	f, err := Parse([]byte(exprGrammar))
	if err != nil {
		t.Fatal(err)
	}
	g, err := f.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	lrgen := lr.NewTableGenerator(lr.Analysis(g))
	if err = lrgen.CreateTables(); err != nil {
		t.Fatal(err)
	}
	if lrgen.HasConflicts {
		t.Fatalf("unexpected conflicts: %v", lrgen.Table().Conflicts())
	}
	lexer, err := f.Lexer()
	if err != nil {
		t.Fatal(err)
	}
	p := driver.NewParser(lrgen.Table())
	for input, expected := range map[string]bool{
		"a + b":      true,
		"a + if":     true,
		"if + b + c": true,
		"a b":        false,
		"+":          false,
	} {
		scan, err := lexer.Scanner(input)
		if err != nil {
			t.Fatal(err)
		}
		accept, _ := p.Parse(scan)
		if accept != expected {
			t.Errorf("input %q: expected accept=%v, got %v", input, expected, accept)
		}
	}
}

func TestFileErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reel.grammarfile")
	defer teardown()
	//
	for _, c := range []struct {
		yaml string
		err  error
	}{
		{"tokens: [{name: a, literal: a}, {name: a, literal: b}]", ErrTokenDefined},
		{"tokens: [{name: a}]", ErrTokenWithoutSpec},
		{"tokens: [{name: a, literal: a}]\nrules: ['S a']", ErrRuleSyntax},
		{"tokens: [{name: a, literal: a}]\nrules: ['a -> S']", ErrTokenAsLHS},
		{"tokens: [{name: a, literal: a}]\nrules: ['S -> a B']", ErrUndefinedSymbol},
		{"rules: []", lr.ErrEmptyGrammar},
	} {
		f, err := Parse([]byte(c.yaml))
		if err == nil {
			_, err = f.Grammar()
		}
		if !errors.Is(err, c.err) {
			t.Errorf("%q: expected error %v, got %v", c.yaml, c.err, err)
		}
	}
}

func TestSplitRule(t *testing.T) {
	lhs, rhs, err := splitRule("E ➞ E + T")
	if err != nil || lhs != "E" || len(rhs) != 3 {
		t.Errorf("unexpected split: %q %v %v", lhs, rhs, err)
	}
	if _, _, err = splitRule("E F -> x"); !errors.Is(err, ErrRuleSyntax) {
		t.Errorf("expected rule syntax error, got %v", err)
	}
}
