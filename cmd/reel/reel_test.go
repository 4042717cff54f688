package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/reel/lr/driver"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const exprYAML = `
name: Expr
skip: ['[ \t]+']
tokens:
  - { name: id,  pattern: '[a-z]+' }
  - { name: '+', literal: '+' }
rules:
  - "S' -> E"
  - "E -> E + id"
  - "E -> id"
`

const ambiguousYAML = `
name: Ambiguous
tokens:
  - { name: id,  pattern: '[a-z]+' }
  - { name: '+', literal: '+' }
rules:
  - "S' -> E"
  - "E -> E + E"
  - "E -> id"
`

func writeGrammar(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "grammar.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reel.cli")
	defer teardown()
	//
	f, lrgen, err := loadGrammar(writeGrammar(t, exprYAML))
	if err != nil {
		t.Fatal(err)
	}
	if f.Name != "Expr" {
		t.Errorf("expected grammar name Expr, got %q", f.Name)
	}
	if lrgen.HasConflicts {
		t.Errorf("expected grammar to be conflict-free")
	}
}

// execute runs a fresh command tree, so flags do not leak between invocations.
func execute(args ...string) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestTableCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reel.cli")
	defer teardown()
	//
	dir := t.TempDir()
	dot, html := filepath.Join(dir, "expr.dot"), filepath.Join(dir, "expr.html")
	tbl := filepath.Join(dir, "expr.tbl")
	if err := execute("table", writeGrammar(t, exprYAML), "--dot", dot, "--html", html,
		"--sparse", tbl); err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{dot, html, tbl} {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if len(data) == 0 {
			t.Errorf("expected %s to have content", path)
		}
	}
	data, _ := os.ReadFile(tbl)
	// accept is encoded as 0
	for _, line := range []string{"action 0 id ", " #eof 0\n", "goto   0 E "} {
		if !strings.Contains(string(data), line) {
			t.Errorf("expected encoded tables to contain %q, have\n%s", line, data)
		}
	}
}

func TestTableCommandStrict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reel.cli")
	defer teardown()
	//
	path := writeGrammar(t, ambiguousYAML)
	err := execute("table", path, "--strict")
	if err == nil || !strings.Contains(err.Error(), "conflicts") {
		t.Errorf("expected strict mode to fail for ambiguous grammar, got %v", err)
	}
	if err = execute("table", path); err != nil {
		t.Errorf("expected ambiguous grammar to pass in non-strict mode, got %v", err)
	}
	t.Setenv("REEL_STRICT", "true")
	if err = execute("table", path); err == nil {
		t.Errorf("expected REEL_STRICT to make ambiguous grammar fail")
	}
	if err = execute("table", path, "--strict=false"); err != nil {
		t.Errorf("expected --strict=false to override REEL_STRICT, got %v", err)
	}
}

func TestIntpParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reel.cli")
	defer teardown()
	//
	f, lrgen, err := loadGrammar(writeGrammar(t, exprYAML))
	if err != nil {
		t.Fatal(err)
	}
	lexer, err := f.Lexer()
	if err != nil {
		t.Fatal(err)
	}
	intp := &Intp{file: f, lexer: lexer, parser: driver.NewParser(lrgen.Table())}
	reductions, err := intp.Parse("a + b")
	if err != nil {
		t.Fatal(err)
	}
	if len(reductions) != 2 {
		t.Fatalf("expected 2 reductions, got %v", reductions)
	}
	if !strings.HasPrefix(reductions[1], "E ➞ E + id") || !strings.HasSuffix(reductions[1], "'a + b'") {
		t.Errorf("unexpected reduction %q", reductions[1])
	}
	_, err = intp.Parse("a +")
	if err == nil || !strings.Contains(err.Error(), "#eof") {
		t.Errorf("expected syntax error at end of input, got %v", err)
	}
	_, err = intp.Parse("a ? b")
	if err == nil {
		t.Errorf("expected scanner error for '?'")
	}
}
