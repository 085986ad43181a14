/*
Package analysis computes FIRST and NEXT sets for BNF grammars.

FIRST(e) is the set of leaf expressions (literals, token references, calls of
external methods) which can start a match of expression e. NEXT(e) is the set
of leaf expressions which may immediately follow a match of e, across all the
places where the enclosing rule is used.

Result sets carry three sentinels as out-of-band markers:

    EOF      the construct may be followed by nothing / may match empty input
    Nothing  the construct can never match
    Any      the result is statically unbounded (external rules,
             recovery clauses, opaque predicates)

Example:

    g := bnf.MustParse("G", `
        list ::= item (',' item)*
        item ::= number | '(' list ')'`)
    a := analysis.NewAnalyzer(g)
    first := a.CalcFirst(g.LookupRule("item"))
    fmt.Println(a.Render(first))                            // ['(' number]
    fmt.Println(a.Render(a.CalcNext(g.LookupRule("item")).KeySet()))  // [')' ',' -eof-]

Semantic predicates are approximated by looking at one token only.
An unexpanded reference to a rule starting with a predicate contributes
nothing, so FIRST may be empty in that case.
Recursion is handled well enough to terminate, not to produce minimal sets.

An analyzer is configured once (direction, opacity of public rules) and may
then be used for any number of queries. Queries do not modify the grammar and
keep all intermediate state local to a single call.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package analysis

import (
	"fmt"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'firstnext.analysis'.
func tracer() tracing.Trace {
	return tracing.Select("firstnext.analysis")
}

// internalError reports a malformed grammar construct the analysis has to
// skip. If configuration flag 'panic-on-internal-error' is set, it panics.
func internalError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	tracer().Errorf("internal error: %s", msg)
	if gconf.GetBool("panic-on-internal-error") {
		panic(msg)
	}
}
