package analysis

import (
	"github.com/npillmayer/firstnext/bnf"
)

// firstOfSequence adds the FIRST set of a list of sequence items to result.
//
// Items contribute as long as all preceding items may match empty input.
// In backward mode items are visited last to first. Once a pinned item has
// been passed, the remaining items are optional as far as the caller is
// concerned, so EOF is reported.
//
// If result contains EOF on entry, EOF is kept. An empty list yields EOF.
func (a *Analyzer) firstOfSequence(items []*bnf.Expression, result *Set, visited *Visited) *Set {
	matchesEOF := !result.Add(EOF)
	if len(items) == 0 {
		return result
	}
	list := items
	if a.backward {
		list = reversed(items)
	}
	var pinned []*bnf.Expression
	if !a.backward {
		pinned = a.g.PinnedExpressions(list[0].Rule())
	}
	pinApplied := false
	for i, item := range list {
		if !result.Remove(EOF) {
			break
		}
		matchesEOF = matchesEOF || pinApplied
		var tail []*bnf.Expression
		if i < len(list)-1 {
			tail = list[i+1:]
		}
		a.CalcFirstInner(item, result, visited, tail)
		pinApplied = pinApplied || contains(pinned, item)
	}
	if matchesEOF {
		result.Add(EOF)
	}
	return result
}

func reversed(items []*bnf.Expression) []*bnf.Expression {
	r := make([]*bnf.Expression, len(items))
	for i, e := range items {
		r[len(items)-1-i] = e
	}
	return r
}

func contains(exprs []*bnf.Expression, e *bnf.Expression) bool {
	for _, x := range exprs {
		if x == e {
			return true
		}
	}
	return false
}

func indexOfExpr(exprs []*bnf.Expression, e *bnf.Expression) int {
	for i, x := range exprs {
		if x == e {
			return i
		}
	}
	return -1
}
