/*
Package lexmach provides an adapter to use the lexmachine scanner generator with
the parsers of reel.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Tokens are defined by a list of token definitions, each with either a regular
expression or a literal string. Definitions are tried in order, i.e. keywords
should be listed before a pattern for identifiers. Patterns which do not produce
tokens, e.g. for white space or comments, are added with an init function.

	defs := []lexmach.TokenDef{
		{Name: "if", Type: 1, Literal: "if"},
		{Name: "id", Type: 2, Pattern: `[a-z]+`},
		{Name: "+",  Type: 3, Literal: "+"},
	}
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`( |\t|\n)+`), lexmach.Skip)
	}

Having that, clients use `NewLMAdapter` to wrap lexmachine into a scanner.Tokenizer.
NewLMAdapter will return an error if compiling the DFA failed.

	LM, err := lexmach.NewLMAdapter(init, defs)

A scanner is instantiated for each concrete input sequence.
The scanner implements the scanner.Tokenizer interface.

	scan, err := LM.Scanner("if a + b")

Tokens are read until EOF.

	for token := scan.NextToken(); token.TokType() != scanner.EOF; token = scan.NextToken() {
		…
	}

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
