/*
Package bnf implements the grammar model for lookahead analysis.

A grammar is a list of named rules, each owning an expression tree. Grammars
are written in a BNF notation close to the one of the IntelliJ Grammar-Kit:

    {
      tokens = [ plus='+' minus='-' ]
    }
    expr     ::= term (add_op term)*
    private add_op ::= '+' | '-'
    term     ::= number | '(' expr ')' { pin=1 recoverWhile=term_recover }
    private term_recover ::= !(')' | add_op)

Supported expression forms are literals ('x' or "x"), references to rules or
tokens, choices (a | b), sequences (a b), groups ( (a) and optional [a] ),
quantifiers (a? a* a+), predicates (&a !a) and calls of meta rules or
external parse methods (<<meta_rule arg1 arg2>>).

Rule modifiers private, external and meta change how the analysis treats a
rule; fake, inner, left and upper are accepted and recorded.

Grammars are immutable once loaded. Besides rule lookup the grammar answers
the queries needed by a FIRST/NEXT analysis: usages of a rule across the
grammar, pinned items of sequences, parameters of meta rules and arguments of
external rules.

Go-style EBNF (as used in the Go language specification) may be imported
with ParseEBNF.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package bnf

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'firstnext.bnf'.
func tracer() tracing.Trace {
	return tracing.Select("firstnext.bnf")
}
