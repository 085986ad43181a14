/*
Package firstnext is a toolbox for static lookahead analysis of BNF grammars.

It computes FIRST and NEXT (follow) sets over grammars in a Grammar-Kit like
BNF notation. These sets drive error-recovery heuristics, ambiguity
diagnostics and the resolution of semantic predicates in parser generators.
Package structure is as follows:

■ bnf: Package bnf implements the grammar model: rules, expression trees,
attributes and the queries the analysis needs (rule lookup, usages, pins).
Grammars are loaded from BNF text or imported from Go-style EBNF.

■ analysis: Package analysis implements the FIRST-set and NEXT-set engines.

■ inspect: Package inspect implements grammar diagnostics on top of the
analysis, e.g. unreachable choice branches or recovery predicates.

■ cmd/firstnext: An interactive command line tool for exploring the FIRST and
NEXT sets of a grammar.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package firstnext
