/*
Package inspect reports problems of a grammar which show up in its FIRST
and NEXT sets, and derives error recovery clauses from them.

Findings are:

    never-matches        a rule or alternative which can never match
    unreachable-branch   an alternative following one which matches empty input
    first-conflict       two alternatives starting with the same token

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package inspect

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'firstnext.inspect'.
func tracer() tracing.Trace {
	return tracing.Select("firstnext.inspect")
}
