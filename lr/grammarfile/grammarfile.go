/*
Package grammarfile reads grammars together with their token definitions from YAML
files. This allows experimenting with grammars without writing Go code:

	name: Expr
	start: S'
	skip: ['[ \t]+']
	tokens:
	  - { name: id,  pattern: '[a-z]+' }
	  - { name: '+', literal: '+' }
	rules:
	  - "S' -> E"
	  - "E -> E + id"
	  - "E -> id"

Rules are written as `LHS -> sym sym …`, with symbols separated by white space. A
symbol is a terminal if and only if it names a token, every other symbol has to
appear on the left hand side of some rule. An empty right hand side denotes an
epsilon-production. Rules may alternatively be given as a mapping with client
flags:

	  - { rule: "Opt -> ", keep: true, priority: 2 }

Token types are positions in the token list, starting at 1.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammarfile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/reel"
	"github.com/npillmayer/reel/lr"
	"github.com/npillmayer/reel/lr/scanner"
	"github.com/npillmayer/reel/lr/scanner/lexmach"
	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
	"gopkg.in/yaml.v3"
)

// tracer traces with key 'reel.grammarfile'.
func tracer() tracing.Trace {
	return tracing.Select("reel.grammarfile")
}

// Errors reported for malformed grammar files. They are wrapped with details about
// the offending token or rule.
var (
	ErrRuleSyntax       = errors.New("malformed rule")
	ErrTokenDefined     = errors.New("token already defined")
	ErrUndefinedSymbol  = errors.New("undefined non-terminal")
	ErrTokenAsLHS       = errors.New("token used as left hand side")
	ErrTokenWithoutSpec = errors.New("token has neither pattern nor literal")
)

// File is the contents of a grammar file.
type File struct {
	Name   string      `yaml:"name"`
	Start  string      `yaml:"start"`  // optional start symbol, default is the LHS of the first rule
	Skip   []string    `yaml:"skip"`   // patterns for input to ignore, e.g. white space
	Tokens []TokenSpec `yaml:"tokens"` // token definitions, in order of priority
	Rules  []RuleSpec  `yaml:"rules"`
}

// TokenSpec defines a token by a lexmachine regular expression or by a literal.
type TokenSpec struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
	Literal string `yaml:"literal"`
}

// RuleSpec is a rule of a grammar file.
type RuleSpec struct {
	Rule     string `yaml:"rule"`
	Keep     bool   `yaml:"keep"`
	Priority int    `yaml:"priority"`
}

// UnmarshalYAML accepts either a plain string or a mapping for a rule.
func (r *RuleSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		r.Rule = node.Value
		return nil
	}
	type plain RuleSpec // avoid recursion
	return node.Decode((*plain)(r))
}

// Parse decodes a grammar file from YAML and checks the token definitions.
func Parse(data []byte) (*File, error) {
	f := &File{}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("grammar file: %w", err)
	}
	seen := make(map[string]bool, len(f.Tokens))
	for _, tok := range f.Tokens {
		if seen[tok.Name] {
			return nil, fmt.Errorf("grammar %s, token %q: %w", f.Name, tok.Name, ErrTokenDefined)
		}
		seen[tok.Name] = true
		if tok.Pattern == "" && tok.Literal == "" {
			return nil, fmt.Errorf("grammar %s, token %q: %w", f.Name, tok.Name, ErrTokenWithoutSpec)
		}
	}
	tracer().Infof("grammar file %s: %d tokens, %d rules", f.Name, len(f.Tokens), len(f.Rules))
	return f, nil
}

// Load reads and parses a grammar file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if f.Name == "" {
		f.Name = path
	}
	return f, nil
}

// TokenType returns the token type for a token name.
func (f *File) TokenType(name string) (reel.TokType, bool) {
	for i, tok := range f.Tokens {
		if tok.Name == name {
			return reel.TokType(i + 1), true
		}
	}
	return 0, false
}

// TokenName returns the name of a token type.
func (f *File) TokenName(t reel.TokType) string {
	if t == scanner.EOF {
		return "#eof"
	}
	if t < 1 || int(t) > len(f.Tokens) {
		return fmt.Sprintf("<%d>", t)
	}
	return f.Tokens[t-1].Name
}

// Grammar creates a grammar from the rules of f. Non-terminals are named by strings,
// terminals are the token types of f.
func (f *File) Grammar() (*lr.Grammar[reel.TokType, string], error) {
	b := lr.NewGrammarBuilder[reel.TokType, string](f.Name)
	if f.Start != "" {
		b.Start(f.Start)
	}
	for i, tok := range f.Tokens {
		b.Terminal(reel.TokType(i+1), tok.Name)
	}
	type rule struct {
		lhs  string
		rhs  []string
		spec RuleSpec
	}
	rules := make([]rule, 0, len(f.Rules))
	lhs := make(map[string]bool)
	for n, spec := range f.Rules {
		l, rhs, err := splitRule(spec.Rule)
		if err != nil {
			return nil, fmt.Errorf("grammar %s, rule %d: %w", f.Name, n, err)
		}
		if _, isToken := f.TokenType(l); isToken {
			return nil, fmt.Errorf("grammar %s, rule %d, %q: %w", f.Name, n, l, ErrTokenAsLHS)
		}
		lhs[l] = true
		rules = append(rules, rule{lhs: l, rhs: rhs, spec: spec})
	}
	var undefined []string
	for _, r := range rules {
		rb := b.LHS(r.lhs)
		for _, sym := range r.rhs {
			if t, isToken := f.TokenType(sym); isToken {
				rb.T(t)
			} else {
				if !lhs[sym] {
					undefined = append(undefined, sym)
				}
				rb.N(sym)
			}
		}
		if r.spec.Keep {
			rb.KeepAll()
		}
		rb.Priority(r.spec.Priority)
		if len(r.rhs) == 0 {
			rb.Epsilon()
		} else {
			rb.End()
		}
	}
	if len(undefined) > 0 {
		return nil, fmt.Errorf("grammar %s, %s: %w", f.Name, strings.Join(undefined, ", "), ErrUndefinedSymbol)
	}
	return b.Grammar()
}

// splitRule splits "LHS -> a b c" into its LHS and RHS symbols.
func splitRule(r string) (string, []string, error) {
	arrow := "->"
	if !strings.Contains(r, arrow) {
		arrow = "➞"
	}
	parts := strings.SplitN(r, arrow, 2)
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("%q: %w", r, ErrRuleSyntax)
	}
	l := strings.Fields(parts[0])
	if len(l) != 1 {
		return "", nil, fmt.Errorf("%q: %w", r, ErrRuleSyntax)
	}
	return l[0], strings.Fields(parts[1]), nil
}

// Lexer creates a lexmachine adapter recognizing the tokens of f. Skip patterns are
// tried before token definitions.
func (f *File) Lexer() (*lexmach.LMAdapter, error) {
	defs := make([]lexmach.TokenDef, len(f.Tokens))
	for i, tok := range f.Tokens {
		defs[i] = lexmach.TokenDef{
			Name:    tok.Name,
			Type:    reel.TokType(i + 1),
			Pattern: tok.Pattern,
			Literal: tok.Literal,
		}
	}
	init := func(lexer *lexmachine.Lexer) {
		for _, pattern := range f.Skip {
			lexer.Add([]byte(pattern), lexmach.Skip)
		}
	}
	adapter, err := lexmach.NewLMAdapter(init, defs)
	if err != nil {
		return nil, fmt.Errorf("grammar %s: %w", f.Name, err)
	}
	return adapter, nil
}
