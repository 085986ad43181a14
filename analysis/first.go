package analysis

import (
	"github.com/npillmayer/firstnext/bnf"
)

// CalcFirstInner adds the FIRST set of expression e to result and returns
// result.
//
// visited holds the rules entered along the current descent path; references
// to them are not expanded again. forcedNext, if not nil, are the sequence
// items following e. They stand in for NEXT(e) when a predicate at the start
// of e has to be resolved.
func (a *Analyzer) CalcFirstInner(e *bnf.Expression, result *Set, visited *Visited,
	forcedNext []*bnf.Expression) *Set {
	//
	switch e.Kind() {
	case bnf.Literal, bnf.Fake:
		result.Add(e)
	case bnf.Reference:
		a.firstOfReference(e, result, visited, forcedNext)
	case bnf.Paren:
		a.CalcFirstInner(e.Inner(), result, visited, forcedNext)
	case bnf.ParenOpt:
		a.CalcFirstInner(e.Inner(), result, visited, forcedNext)
		result.Add(EOF)
	case bnf.Choice:
		a.firstOfChoice(e, result, visited, forcedNext)
	case bnf.Sequence:
		a.firstOfSequence(e.Children(), result, visited)
	case bnf.Quantified:
		a.CalcFirstInner(e.Inner(), result, visited, forcedNext)
		if q := e.Quantifier(); q == bnf.Optional || q == bnf.ZeroOrMore {
			result.Add(EOF)
		}
	case bnf.External:
		a.firstOfExternal(e, result, visited, forcedNext)
	case bnf.Predicate:
		if a.backward {
			result.Add(EOF)
		} else {
			a.firstOfPredicate(e, result, visited, forcedNext)
		}
	}
	return result
}

func (a *Analyzer) firstOfReference(e *bnf.Expression, result *Set, visited *Visited,
	forcedNext []*bnf.Expression) {
	//
	rule := a.g.Resolve(e)
	if rule == nil { // token
		result.Add(e)
		return
	}
	if rule.IsExternal() {
		args := a.g.ExternalCallArguments(rule)
		if len(args) > 0 && args[0].Kind() == bnf.Reference && a.g.Resolve(args[0]) == nil {
			result.Add(args[0])
			return
		}
	}
	if (a.publicRuleOpaque && !rule.IsPrivate()) || !visited.Enter(rule) {
		if ft := a.g.FirstNotTrivial(rule); ft == nil || ft.Kind() != bnf.Predicate {
			result.Add(e)
		}
		return
	}
	a.CalcFirstInner(rule.Body(), result, visited, forcedNext)
	if !visited.Leave(rule) {
		tracer().Errorf("rule %s has been removed from the descent path", rule.Name())
		panic("path corruption detected")
	}
}

// firstOfChoice unites the alternatives. Nothing is kept only if no
// alternative can match or if it has been present before.
func (a *Analyzer) firstOfChoice(e *bnf.Expression, result *Set, visited *Visited,
	forcedNext []*bnf.Expression) {
	//
	matchesNothing := result.Remove(Nothing)
	matchesSomething := false
	for _, alt := range e.Children() {
		a.CalcFirstInner(alt, result, visited, forcedNext)
		if !result.Remove(Nothing) {
			matchesSomething = true
		}
	}
	if !matchesSomething || matchesNothing {
		result.Add(Nothing)
	}
}

// firstOfExternal handles calls of meta rules and external methods.
// A placeholder <<p>> within a meta rule is reported as is. For a call
// <<m arg1 arg2>> the FIRST set of m is computed, and every placeholder
// found therein is replaced by the FIRST set of the matching argument.
func (a *Analyzer) firstOfExternal(e *bnf.Expression, result *Set, visited *Visited,
	forcedNext []*bnf.Expression) {
	//
	args := e.Children()
	if len(args) == 1 && e.Rule() != nil && e.Rule().IsMeta() {
		result.Add(e)
		return
	}
	callee := args[0]
	metaResults := a.CalcFirstInner(callee, NewSet(), visited, forcedNext)
	var params []string
	paramsKnown := false
	for _, x := range metaResults.Values() {
		if x.Kind() != bnf.External {
			result.Add(x)
			continue
		}
		if !paramsKnown {
			metaRule := a.g.Resolve(callee)
			if metaRule == nil {
				internalError("ruleRef: %s, metaResult: %s", callee, x)
				continue
			}
			params = a.g.CollectMetaParameters(metaRule)
			paramsKnown = true
		}
		name, _ := bnf.MetaParameter(x)
		idx := indexOf(params, name)
		if idx > -1 && idx+1 < len(args) {
			a.CalcFirstInner(args[idx+1], result, visited, nil)
		}
	}
}

func indexOf(params []string, name string) int {
	for i, p := range params {
		if p == name {
			return i
		}
	}
	return -1
}
