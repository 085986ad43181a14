package bnf

import (
	"fmt"
	"regexp"
)

// Attribute finds the attribute with a given name, applicable to a function
// of a rule. funcName is the name of the rule itself or of a sub-expression
// function (see FuncNames).
//
// Rule attributes take precedence over header attributes. An attribute
// without a selector applies to the rule's own function only; a selector
// is matched as a regular expression against the complete function name.
func (g *Grammar) Attribute(rule *Rule, name string, funcName string) *Attr {
	if rule == nil {
		return nil
	}
	for _, a := range rule.attrs {
		if a.Name == name && selects(a, rule, funcName) {
			return a
		}
	}
	for _, a := range g.header {
		if a.Name == name && selects(a, rule, funcName) {
			return a
		}
	}
	return nil
}

func selects(a *Attr, rule *Rule, funcName string) bool {
	if a.Selector == "" {
		return funcName == rule.name
	}
	return fullMatch(a.Selector, funcName)
}

func fullMatch(pattern, s string) bool {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		tracer().Errorf("invalid pattern %q: %v", pattern, err)
		return false
	}
	return re.MatchString(s)
}

// FuncNames calls f for every expression of a rule body, together with the
// name of the parser function generated for it: the rule name for the body,
// name_i for the i-th item of a choice or sequence and name_0 for the
// operand of a quantified or predicate expression. Groups are transparent.
func FuncNames(rule *Rule, f func(funcName string, e *Expression)) {
	var visit func(name string, e *Expression)
	visit = func(name string, e *Expression) {
		f(name, e)
		switch e.kind {
		case Paren, ParenOpt:
			visit(name, e.children[0])
		case Choice, Sequence:
			for i, ch := range e.children {
				visit(fmt.Sprintf("%s_%d", name, i), ch)
			}
		case Quantified, Predicate:
			visit(name+"_0", e.children[0])
		}
	}
	if rule != nil && rule.body != nil {
		visit(rule.name, rule.body)
	}
}

// PinnedExpressions returns the pinned items of all sequences of a rule.
// A sequence is pinned at the first item matched by the 'pin' attribute
// applicable to the sequence's function: a number n pins the n-th item,
// a string is a pattern matched against the items' text.
func (g *Grammar) PinnedExpressions(rule *Rule) []*Expression {
	var pinned []*Expression
	FuncNames(rule, func(funcName string, e *Expression) {
		if e.kind != Sequence || len(e.children) < 2 {
			return
		}
		pin := g.Attribute(rule, PinAttrName, funcName)
		if pin == nil {
			return
		}
		for i, ch := range e.children {
			if pinMatches(pin, i, ch) {
				tracer().Debugf("%s: pinned at %s", funcName, ch)
				pinned = append(pinned, ch)
				return
			}
		}
	})
	return pinned
}

func pinMatches(pin *Attr, i int, item *Expression) bool {
	if n, ok := pin.Int(); ok {
		return n == i+1
	}
	return fullMatch(pin.String(), item.text)
}
