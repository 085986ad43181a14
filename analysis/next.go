package analysis

import (
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/firstnext/bnf"
)

// calcNextInner adds the NEXT set of expression target to result.
//
// Starting at target, the enclosing expressions are walked up. Within a
// sequence, the FIRST set of the remaining items contributes; if that may
// be empty, the walk continues. Repetitions contribute their own FIRST set.
// Reaching the top of a rule body, the walk continues at every usage of the
// rule, each rule being expanded at most once per call.
//
// Calls of external methods may be followed by anything, as may usages
// within a 'recoverWhile' attribute. Usages within predicates and other
// attributes do not contribute.
func (a *Analyzer) calcNextInner(target *bnf.Expression, result *Follow, visited *Visited) *Follow {
	stack := arraystack.New()
	totalVisited := ruleset{}
	curResult := NewSet()
	stack.Push(target)
main:
	for !stack.Empty() {
		v, _ := stack.Pop()
		cur := v.(*bnf.Expression)
		var startingExpr *bnf.Expression
		if cur.Kind() == bnf.Reference {
			startingExpr = cur
		}
		for parent := cur.Parent(); parent != nil; parent = parent.Parent() {
			curResult.Clear()
			grandPa := parent.Parent()
			if (parent.IsTop() && parent.Rule().IsExternal()) ||
				(grandPa != nil && grandPa.Kind() == bnf.External) {
				result.Put(Any, startingExpr)
				continue main
			}
			switch parent.Kind() {
			case bnf.Sequence:
				children := parent.Children()
				idx := indexOfExpr(children, cur)
				var sub []*bnf.Expression
				if a.backward {
					sub = children[:idx]
				} else {
					sub = children[idx+1:]
				}
				a.firstOfSequence(sub, curResult, visited)
				stop := !curResult.Contains(EOF)
				for _, x := range curResult.Values() {
					result.Put(x, startingExpr)
				}
				if stop {
					continue main
				}
			case bnf.Quantified:
				if q := parent.Quantifier(); q == bnf.ZeroOrMore || q == bnf.OneOrMore {
					a.CalcFirstInner(parent, curResult, visited, nil)
					for _, x := range curResult.Values() {
						result.Put(x, startingExpr)
					}
				}
			}
			cur = parent
		}
		if !cur.IsTop() || !totalVisited.add(cur.Rule()) {
			continue
		}
		for _, usage := range a.g.FindUsages(cur.Rule()) {
			if bnf.InsidePredicate(usage) {
				continue
			}
			if attr := usage.Attr(); attr != nil {
				if attr.Name == bnf.RecoverAttrName {
					result.Put(Any, startingExpr)
				}
				continue
			}
			stack.Push(usage)
		}
	}
	if result.Empty() {
		result.Put(EOF, nil)
	}
	return result
}
