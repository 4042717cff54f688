package lr

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// Grammar with an epsilon-production:
//
//     S' ➞ S
//     S  ➞ A id
//     A  ➞ +  |  ε
//
func epsGrammar(t *testing.T) *Grammar[string, string] {
	b := NewGrammarBuilder[string, string]("Eps")
	b.LHS("S'").N("S").End()
	b.LHS("S").N("A").T("id").End()
	b.LHS("A").T("+").End()
	b.LHS("A").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func symbolNames(syms []Symbol[string, string]) map[string]bool {
	names := make(map[string]bool, len(syms))
	for _, sym := range syms {
		names[sym.String()] = true
	}
	return names
}

func TestFirstSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reel.lr")
	defer teardown()
	//
	g := epsGrammar(t)
	ga := Analysis(g)
	first := symbolNames(ga.First(g.N("S")))
	if len(first) != 2 || !first["+"] || !first["id"] {
		t.Errorf("expected FIRST(S) = {+ id}, is %v", ga.First(g.N("S")))
	}
	first = symbolNames(ga.First(g.N("A")))
	if len(first) != 1 || !first["+"] {
		t.Errorf("expected FIRST(A) = {+}, is %v", ga.First(g.N("A")))
	}
	if f := ga.First(g.T("id")); len(f) != 1 || f[0] != g.T("id") {
		t.Errorf("expected FIRST(id) = {id}, is %v", f)
	}
	if ga.First(g.N("X")) != nil {
		t.Errorf("expected no FIRST set for unknown symbol")
	}
}

func TestNullable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reel.lr")
	defer teardown()
	//
	g := epsGrammar(t)
	ga := Analysis(g)
	if !ga.Nullable(g.N("A")) {
		t.Errorf("expected A to be nullable")
	}
	if ga.Nullable(g.N("S")) || ga.Nullable(g.N("S'")) {
		t.Errorf("expected S and S' not to be nullable")
	}
	if ga.Nullable(g.T("+")) || ga.Nullable(g.EOF()) {
		t.Errorf("terminals are never nullable")
	}
}

func TestNullableChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reel.lr")
	defer teardown()
	//
	b := NewGrammarBuilder[string, string]("Chain")
	b.LHS("S").N("A").N("B").T("x").End()
	b.LHS("A").N("B").N("B").End()
	b.LHS("B").T("b").End()
	b.LHS("B").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	ga := Analysis(g)
	if !ga.Nullable(g.N("A")) || !ga.Nullable(g.N("B")) {
		t.Errorf("expected A and B to be nullable")
	}
	first := symbolNames(ga.First(g.N("S")))
	if len(first) != 2 || !first["b"] || !first["x"] {
		t.Errorf("expected FIRST(S) = {b x}, is %v", ga.First(g.N("S")))
	}
}

// Every terminal starting a right hand side (possibly after nullable symbols) has to
// be in FIRST of the left hand side.
func TestFirstSoundness(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reel.lr")
	defer teardown()
	//
	for _, g := range []*Grammar[string, string]{exprGrammar(t), epsGrammar(t), dragonGrammar(t)} {
		ga := Analysis(g)
		for n := 0; n < g.Size(); n++ {
			r := g.Rule(n)
			lhs := symbolNames(ga.First(g.N(r.LHS)))
			for _, sym := range r.RHS() {
				for name := range symbolNames(ga.First(sym)) {
					if !lhs[name] {
						t.Errorf("grammar %s: %s in FIRST(%v) but not in FIRST(%s)",
							g.Name, name, sym, r.LHS)
					}
				}
				if !ga.Nullable(sym) {
					break
				}
			}
		}
	}
}

func TestFirstOfSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reel.lr")
	defer teardown()
	//
	g := epsGrammar(t)
	ga := Analysis(g)
	first, err := ga.FirstOfSequence([]Symbol[string, string]{g.N("A")}, g.EOF())
	if err != nil {
		t.Fatal(err)
	}
	if names := symbolNames(first); len(names) != 2 || !names["+"] || !names["#eof"] {
		t.Errorf("expected FIRST(A #eof) = {+ #eof}, is %v", first)
	}
	first, _ = ga.FirstOfSequence([]Symbol[string, string]{g.N("A"), g.T("id")}, g.EOF())
	if names := symbolNames(first); len(names) != 2 || !names["+"] || !names["id"] {
		t.Errorf("expected FIRST(A id #eof) = {+ id}, is %v", first)
	}
	first, _ = ga.FirstOfSequence(nil, g.T("id"))
	if len(first) != 1 || first[0] != g.T("id") {
		t.Errorf("expected FIRST(ε id) = {id}, is %v", first)
	}
	_, err = ga.FirstOfSequence([]Symbol[string, string]{g.N("X")}, g.EOF())
	if !errors.Is(err, ErrFirstSetMissing) {
		t.Errorf("expected ErrFirstSetMissing, got %v", err)
	}
}
