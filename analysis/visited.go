package analysis

import "github.com/npillmayer/firstnext/bnf"

type ruleset map[*bnf.Rule]struct{}

var exists = struct{}{}

// add adds a rule and returns true if it was not yet present.
func (set ruleset) add(r *bnf.Rule) bool {
	if _, ok := set[r]; ok {
		return false
	}
	set[r] = exists
	return true
}

func (set ruleset) contains(r *bnf.Rule) bool {
	if set == nil || r == nil {
		return false
	}
	_, ok := set[r]
	return ok
}

// delete removes a rule and returns true if it was present.
func (set ruleset) delete(r *bnf.Rule) bool {
	if _, ok := set[r]; !ok {
		return false
	}
	delete(set, r)
	return true
}

// Visited tracks the rules currently entered along a descent path of a
// FIRST computation. A rule is added when descending into its body and
// removed when returning from it. References to rules on the path are not
// expanded again, which guarantees termination for recursive grammars.
type Visited struct {
	rules ruleset
}

// NewVisited creates a path containing rules.
func NewVisited(rules ...*bnf.Rule) *Visited {
	v := &Visited{rules: ruleset{}}
	for _, r := range rules {
		v.rules.add(r)
	}
	return v
}

// Enter adds a rule to the path and returns true if it was not on it.
func (v *Visited) Enter(r *bnf.Rule) bool {
	return v.rules.add(r)
}

// Leave removes a rule from the path and returns true if it was on it.
func (v *Visited) Leave(r *bnf.Rule) bool {
	return v.rules.delete(r)
}

// Contains is true if a rule is on the path.
func (v *Visited) Contains(r *bnf.Rule) bool {
	return v.rules.contains(r)
}

// Size returns the number of rules on the path.
func (v *Visited) Size() int {
	return len(v.rules)
}
