package driver

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/reel"
	"github.com/npillmayer/reel/lr"
	"github.com/npillmayer/reel/lr/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func makeTable(t *testing.T, b *lr.GrammarBuilder[reel.TokType, string]) *lr.Table[reel.TokType, string] {
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	g.Dump()
	lrgen := lr.NewTableGenerator(lr.Analysis(g))
	if err := lrgen.CreateTables(); err != nil {
		t.Fatal(err)
	}
	if lrgen.HasConflicts {
		t.Fatalf("grammar %s has conflicts: %v", g.Name, lrgen.Table().Conflicts())
	}
	return lrgen.Table()
}

func exprTable(t *testing.T) *lr.Table[reel.TokType, string] {
	b := lr.NewGrammarBuilder[reel.TokType, string]("Expr")
	b.LHS("S'").N("E").End()
	b.LHS("E").N("E").T('+').T(scanner.Ident).End()
	b.LHS("E").T(scanner.Ident).End()
	return makeTable(t, b)
}

func TestParser1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reel.driver")
	defer teardown()
	//
	p := NewParser(exprTable(t))
	for _, input := range []string{"a", "a+b", "a + b + c"} {
		accept, err := p.Parse(scanner.GoTokenizer(t.Name(), strings.NewReader(input)))
		if err != nil {
			t.Errorf("parsing %q: %v", input, err)
		}
		if !accept {
			t.Errorf("expected %q to be accepted", input)
		}
	}
}

func TestParserSyntaxError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reel.driver")
	defer teardown()
	//
	p := NewParser(exprTable(t))
	for _, input := range []string{"", "a+", "a b", "+a"} {
		accept, err := p.Parse(scanner.GoTokenizer(t.Name(), strings.NewReader(input)))
		if accept {
			t.Errorf("expected %q to be rejected", input)
		}
		var serr *SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("expected syntax error for %q, got %v", input, err)
		}
	}
}

func TestParserErrorPosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reel.driver")
	defer teardown()
	//
	p := NewParser(exprTable(t))
	_, err := p.Parse(scanner.GoTokenizer(t.Name(), strings.NewReader("a+b c")))
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("expected syntax error, got %v", err)
	}
	if serr.Token.Lexeme() != "c" || serr.Token.Span().From() != 4 {
		t.Errorf("expected error at 'c' (pos 4), got %q at %v", serr.Token.Lexeme(), serr.Token.Span())
	}
}

func TestParserReductions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reel.driver")
	defer teardown()
	//
	p := NewParser(exprTable(t))
	var rules []int
	var spans []reel.Span
	p.OnReduce(func(rule int, span reel.Span) {
		rules = append(rules, rule)
		spans = append(spans, span)
	})
	accept, err := p.Parse(scanner.GoTokenizer(t.Name(), strings.NewReader("a+b")))
	if err != nil || !accept {
		t.Fatalf("expected input to be accepted, got %v", err)
	}
	// right derivation in reverse: E ➞ id, then E ➞ E + id
	if len(rules) != 2 || rules[0] != 2 || rules[1] != 1 {
		t.Fatalf("expected reductions [2 1], got %v", rules)
	}
	if spans[0] != (reel.Span{0, 1}) || spans[1] != (reel.Span{0, 3}) {
		t.Errorf("unexpected spans of reductions: %v", spans)
	}
}

func TestParserEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reel.driver")
	defer teardown()
	//
	b := lr.NewGrammarBuilder[reel.TokType, string]("Signed Variables")
	b.LHS("S'").N("Var").End()
	b.LHS("Var").N("Sign").T(scanner.Ident).End()
	b.LHS("Sign").T('+').End()
	b.LHS("Sign").T('-').End()
	b.LHS("Sign").Epsilon()
	p := NewParser(makeTable(t, b))
	var epsSpan reel.Span
	p.OnReduce(func(rule int, span reel.Span) {
		if rule == 4 {
			epsSpan = span
		}
	})
	for _, input := range []string{"a", "+a", "-a"} {
		accept, err := p.Parse(scanner.GoTokenizer(t.Name(), strings.NewReader(input)))
		if err != nil || !accept {
			t.Errorf("expected %q to be accepted, got %v", input, err)
		}
	}
	accept, _ := p.Parse(scanner.GoTokenizer(t.Name(), strings.NewReader(" x")))
	if !accept {
		t.Fatalf("expected ' x' to be accepted")
	}
	if epsSpan != (reel.Span{1, 1}) {
		t.Errorf("expected epsilon span to be empty at position 1, got %v", epsSpan)
	}
}
