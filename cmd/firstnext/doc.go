/*
Command firstnext is an interactive command line tool for exploring the
FIRST and NEXT sets of a BNF grammar.

Usage:

    firstnext [-trace level] [-backward] [-opaque] [-ebnf [-start S]] [-init file] [grammar-file]

Without a grammar file, a small expression grammar is loaded. Commands:

    rules                 list the rules of the grammar
    tree <rule>           display the expression tree of a rule
    first <rule>          FIRST set of a rule
    next <rule>           NEXT set of a rule, with the usages followers stem from
    check                 report rules and alternatives with problems
    recover <rule>        suggest a recoverWhile predicate for a rule
    backward on|off       switch direction of analysis
    opaque on|off         switch opacity of public rules
    hash                  fingerprint of the grammar
    quit                  leave (or <ctrl>D)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'firstnext.cmd'
func tracer() tracing.Trace {
	return tracing.Select("firstnext.cmd")
}
