/*
Package reel is a generator for canonical LR(1) parser tables.

Reel takes a context-free grammar, computes the canonical collection of LR(1)
states and assembles ACTION and GOTO tables for a table-driven shift-reduce parser.
States with equal cores but different lookaheads are kept apart (CLR(1), not LALR(1)).
Package structure is as follows:

■ lr: Package lr holds the grammar model, FIRST-set analysis, LR(1) items and the
automaton/table construction.

■ lr/driver: a shift-reduce parser running on the generated tables.

■ lr/scanner: tokenizer interface and scanner implementations feeding the driver.

■ lr/grammarfile: loading grammars and token definitions from YAML.

■ cmd/reel: command line tool to inspect tables and try out grammars.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package reel
