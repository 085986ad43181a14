package analysis

import (
	"github.com/npillmayer/firstnext/bnf"
)

// firstOfPredicate resolves a predicate against the tokens following it,
// looking at one token only.
//
// For &P the result is the followers which P admits, for !P the followers
// P rejects. Nothing is reported if no follower survives. Predicates over
// sequences of more than one item and predicates involving external
// methods cannot be decided by a single token; they are skipped and the
// followers are passed through.
func (a *Analyzer) firstOfPredicate(e *bnf.Expression, result *Set, visited *Visited,
	forcedNext []*bnf.Expression) {
	//
	inner := e.Inner()
	conditions := a.CalcFirstInner(inner, NewTextSet(), visited, nil)
	var next *Set
	if forcedNext == nil {
		next = a.predicateFollowers(e, visited)
	} else {
		next = a.firstOfSequence(forcedNext, NewTextSet(), visited)
	}
	body := inner
	if body.Kind() == bnf.Paren {
		body = body.Inner()
	}
	skip := body.Kind() == bnf.Sequence && len(body.Children()) > 1
	if !skip {
		skip = a.anyExternalReference(next) || a.anyExternalReference(conditions)
	}
	mixed := NewTextSet()
	switch {
	case skip:
		mixed.AddAll(next)
		mixed.Remove(EOF)
	case e.Sign() == bnf.And:
		if conditions.Contains(EOF) {
			mixed.AddAll(next)
		} else if next.Contains(Any) {
			mixed.AddAll(conditions)
		} else {
			mixed.AddAll(next)
			mixed.RetainAll(conditions)
			if mixed.Empty() {
				mixed.Add(Nothing)
			}
		}
	default:
		if conditions.Contains(EOF) {
			mixed.Add(Nothing)
		} else {
			mixed.AddAll(next)
			mixed.RemoveAll(conditions)
			if mixed.Empty() {
				mixed.Add(Nothing)
			}
		}
	}
	tracer().Debugf("%s: conditions=%s, next=%s => %s", e, conditions, next, mixed)
	result.AddAll(mixed)
}

// predicateFollowers computes the NEXT set of a predicate as a text set.
func (a *Analyzer) predicateFollowers(e *bnf.Expression, visited *Visited) *Set {
	follow := a.calcNextInner(e, NewFollow(), visited)
	next := NewTextSet()
	next.AddAll(follow.KeySet())
	return next
}

func (a *Analyzer) anyExternalReference(s *Set) bool {
	for _, x := range s.Values() {
		if a.g.IsExternalReference(x) {
			return true
		}
	}
	return false
}
