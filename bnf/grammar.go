package bnf

import (
	"fmt"
)

// Grammar is a list of rules, together with attributes of the grammar header.
// A grammar is immutable once created, and all queries on it are free of
// side effects.
type Grammar struct {
	name   string
	rules  []*Rule
	byName map[string]*Rule
	header []*Attr
	usages map[string][]*Expression // reverse reference index
}

// NewGrammar creates a grammar from a list of rules. Rule names have to be
// unique. Rules and expressions must not be shared between grammars.
func NewGrammar(name string, header []*Attr, rules ...*Rule) (*Grammar, error) {
	g := &Grammar{
		name:   name,
		byName: make(map[string]*Rule, len(rules)),
		header: header,
		usages: make(map[string][]*Expression),
	}
	for _, r := range rules {
		if err := g.add(r); err != nil {
			return nil, err
		}
	}
	g.seal()
	return g, nil
}

func (g *Grammar) add(r *Rule) error {
	if r == nil || r.name == "" {
		return fmt.Errorf("grammar %s: rule without a name", g.name)
	}
	if r.body == nil {
		return fmt.Errorf("grammar %s: rule %s has no body", g.name, r.name)
	}
	if _, exists := g.byName[r.name]; exists {
		return fmt.Errorf("grammar %s: duplicate rule %s", g.name, r.name)
	}
	r.serial = len(g.rules)
	g.rules = append(g.rules, r)
	g.byName[r.name] = r
	return nil
}

// seal links all expressions to their parents, rules and attributes and
// builds the index of rule usages.
func (g *Grammar) seal() {
	for _, a := range g.header {
		if a.Value != nil {
			a.Value.link(nil, nil, a)
			g.indexAttrValue(a.Value)
		}
	}
	for _, r := range g.rules {
		r.body.link(nil, r, nil)
		g.index(r.body)
		for _, a := range r.attrs {
			if a.Value != nil {
				a.Value.link(nil, r, a)
				g.indexAttrValue(a.Value)
			}
		}
	}
	tracer().Debugf("grammar %s sealed with %d rules", g.name, len(g.rules))
}

func (g *Grammar) index(e *Expression) {
	Walk(e, func(x *Expression) bool {
		if x.kind == Reference {
			g.usages[x.text] = append(g.usages[x.text], x)
		}
		return true
	})
}

// indexAttrValue indexes an attribute value. A quoted value naming a rule,
// as in recoverWhile="stmt_recover", counts as a usage of that rule.
func (g *Grammar) indexAttrValue(e *Expression) {
	if e.kind == Literal && IsQuoted(e.text) {
		if name := Unquote(e.text); g.byName[name] != nil {
			g.usages[name] = append(g.usages[name], e)
		}
		return
	}
	g.index(e)
}

// Walk visits an expression tree in pre-order. If f returns false, the
// children of the current expression are skipped.
func Walk(e *Expression, f func(*Expression) bool) {
	if e == nil || !f(e) {
		return
	}
	for _, ch := range e.children {
		Walk(ch, f)
	}
}

// Name returns the name of a grammar.
func (g *Grammar) Name() string {
	return g.name
}

// Rules returns all rules in order of definition.
func (g *Grammar) Rules() []*Rule {
	return g.rules
}

// Header returns the attributes of the grammar header.
func (g *Grammar) Header() []*Attr {
	return g.header
}

// LookupRule finds a rule by name. Returns nil if there is no such rule.
func (g *Grammar) LookupRule(name string) *Rule {
	return g.byName[name]
}

// Resolve returns the rule a reference expression refers to, or nil.
func (g *Grammar) Resolve(ref *Expression) *Rule {
	if ref == nil || ref.kind != Reference {
		return nil
	}
	return g.byName[ref.text]
}

// FindUsages returns every reference to a rule across the grammar, including
// references within attribute values.
func (g *Grammar) FindUsages(rule *Rule) []*Expression {
	if rule == nil {
		return nil
	}
	return g.usages[rule.name]
}

// ExternalCallArguments returns the call expressions of an external rule:
// the parse method, followed by its arguments.
func (g *Grammar) ExternalCallArguments(rule *Rule) []*Expression {
	if rule == nil || rule.body == nil {
		return nil
	}
	if rule.body.kind == Sequence {
		return rule.body.children
	}
	return []*Expression{rule.body}
}

// CollectMetaParameters returns the formal parameter names of a meta rule,
// in order of their first appearance as <<param>> in the rule body.
func (g *Grammar) CollectMetaParameters(rule *Rule) []string {
	if rule == nil || !rule.IsMeta() {
		return nil
	}
	var params []string
	seen := make(map[string]bool)
	Walk(rule.body, func(x *Expression) bool {
		if p, ok := MetaParameter(x); ok && !seen[p] {
			seen[p] = true
			params = append(params, p)
		}
		return true
	})
	return params
}

// MetaParameter checks if an expression is a parameter placeholder <<p>>
// and returns the parameter name.
func MetaParameter(e *Expression) (string, bool) {
	if e == nil || e.kind != External || len(e.children) != 1 {
		return "", false
	}
	return e.children[0].text, true
}

// IsExternalReference is true for the callee of an external call
// expression and for the parse method of an external rule.
func (g *Grammar) IsExternalReference(e *Expression) bool {
	if e == nil {
		return false
	}
	parent := e.parent
	if parent != nil && parent.kind == External && parent.children[0] == e {
		return true
	}
	ctx := e
	if parent != nil && parent.kind == Sequence && parent.children[0] == e {
		ctx = parent
	}
	return ctx.IsTop() && ctx.rule.IsExternal()
}

// FirstNotTrivial descends along first children of a rule's body and
// returns the first expression which is neither a group nor a choice or
// sequence with a single item.
func (g *Grammar) FirstNotTrivial(rule *Rule) *Expression {
	if rule == nil {
		return nil
	}
	for e := rule.body; e != nil; e = e.Inner() {
		if !isTrivial(e) {
			return e
		}
	}
	return nil
}

func isTrivial(e *Expression) bool {
	switch e.kind {
	case Paren:
		return true
	case Sequence, Choice:
		return len(e.children) == 1
	}
	return false
}

// InsidePredicate is true if an expression is nested within a predicate.
func InsidePredicate(e *Expression) bool {
	for p := e.parent; p != nil; p = p.parent {
		if p.kind == Predicate {
			return true
		}
	}
	return false
}

// Dump is a debugging helper, tracing all rules of a grammar.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s -----------", g.name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.serial, r)
	}
	tracer().Debugf("-------------------------")
}
