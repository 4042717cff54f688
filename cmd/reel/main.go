/*
Reel is a command line tool to experiment with canonical LR(1) grammars.

Grammars are read from YAML grammar files (see package lr/grammarfile). Sub-command
`table` constructs the LR(1) automaton and prints the parser tables together with all
conflicts found, optionally exporting the automaton to Graphviz and the tables to
HTML. Sub-command `repl` starts an interactive loop, where each line of input is
parsed with the tables of the grammar.

	reel table expr.yaml --dot expr.dot --html expr.html
	reel repl expr.yaml

Setting REEL_STRICT=true in the environment makes `table` fail on conflicts, as does
flag --strict.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'reel.cli'.
func tracer() tracing.Trace {
	return tracing.Select("reel.cli")
}

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
