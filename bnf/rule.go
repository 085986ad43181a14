package bnf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/firstnext"
)

// Modifier is a flag preceding a rule name.
type Modifier uint8

// Rule modifiers. Only private, external and meta influence the analysis.
const (
	Private Modifier = 1 << iota
	ExternalRule
	Meta
	FakeRule
	Inner
	Left
	Upper
)

var modifierNames = map[string]Modifier{
	"private":  Private,
	"external": ExternalRule,
	"meta":     Meta,
	"fake":     FakeRule,
	"inner":    Inner,
	"left":     Left,
	"upper":    Upper,
}

var modifierOrder = []string{"private", "external", "meta", "fake", "inner", "left", "upper"}

// ParseModifier returns the modifier for a keyword.
func ParseModifier(s string) (Modifier, bool) {
	m, ok := modifierNames[s]
	return m, ok
}

// Names of known attributes.
const (
	PinAttrName     = "pin"
	RecoverAttrName = "recoverWhile"
)

// Attr is an attribute of a rule or of the grammar header, written as
//
//    name=value
//    name("selector")=value
//
// The selector is a regular expression over generated function names (see
// Grammar.PinnedExpressions). Values are numbers, strings, identifiers or
// lists; list values have no value expression, only raw text.
type Attr struct {
	Name     string
	Selector string      // regexp pattern, empty if none
	Value    *Expression // nil for list values
	Raw      string      // value as written
	span     firstnext.Span
}

// Int returns the value of an attribute as an integer, if it is a number.
func (a *Attr) Int() (int, bool) {
	if a == nil || a.Value == nil || a.Value.kind != Literal {
		return 0, false
	}
	n, err := strconv.Atoi(a.Value.text)
	if err != nil {
		return 0, false
	}
	return n, true
}

// String returns the value of an attribute with quotes removed.
func (a *Attr) String() string {
	if a == nil {
		return ""
	}
	return Unquote(a.Raw)
}

// Rule is a named production of a grammar. Rules are read-only after the
// grammar has been loaded.
type Rule struct {
	name      string
	body      *Expression
	modifiers Modifier
	attrs     []*Attr
	span      firstnext.Span
	serial    int // position within grammar
}

// NewRule creates a rule. The rule is not linked to a grammar before it is
// passed to NewGrammar.
func NewRule(name string, body *Expression, modifiers Modifier, attrs ...*Attr) *Rule {
	return &Rule{name: name, body: body, modifiers: modifiers, attrs: attrs}
}

// Name returns the name of a rule.
func (r *Rule) Name() string {
	return r.name
}

// Body returns the top-level expression of a rule.
func (r *Rule) Body() *Expression {
	return r.body
}

// Attrs returns the attributes of a rule, in order of appearance.
func (r *Rule) Attrs() []*Attr {
	return r.attrs
}

// Span returns the source position of a rule.
func (r *Rule) Span() firstnext.Span {
	return r.span
}

// Has is true if a rule carries modifier m.
func (r *Rule) Has(m Modifier) bool {
	return r.modifiers&m != 0
}

// IsPrivate is true for rules which do not produce a node of their own.
func (r *Rule) IsPrivate() bool {
	return r.Has(Private)
}

// IsExternal is true for rules implemented by an external parse method.
func (r *Rule) IsExternal() bool {
	return r.Has(ExternalRule)
}

// IsMeta is true for parameterized rules.
func (r *Rule) IsMeta() bool {
	return r.Has(Meta)
}

// Modifiers returns the modifier keywords of a rule.
func (r *Rule) Modifiers() []string {
	var mods []string
	for _, name := range modifierOrder {
		if r.Has(modifierNames[name]) {
			mods = append(mods, name)
		}
	}
	return mods
}

func (r *Rule) String() string {
	var b strings.Builder
	for _, m := range r.Modifiers() {
		b.WriteString(m)
		b.WriteString(" ")
	}
	b.WriteString(r.name)
	b.WriteString(" ::= ")
	if r.body != nil {
		b.WriteString(r.body.text)
	}
	if len(r.attrs) > 0 {
		b.WriteString(" {")
		for _, a := range r.attrs {
			b.WriteString(" ")
			b.WriteString(a.key())
			b.WriteString("=")
			b.WriteString(a.Raw)
		}
		b.WriteString(" }")
	}
	return b.String()
}

func (a *Attr) key() string {
	if a.Selector == "" {
		return a.Name
	}
	return fmt.Sprintf("%s(%q)", a.Name, a.Selector)
}

// --- Quoting ---------------------------------------------------------------

// IsQuoted is true for text enclosed in matching single or double quotes.
func IsQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	q := s[0]
	return (q == '\'' || q == '"') && s[len(s)-1] == q
}

// Unquote strips matching quotes from s. Double-quoted text has escape
// sequences resolved, single-quoted text is taken verbatim.
func Unquote(s string) string {
	if !IsQuoted(s) {
		return s
	}
	if s[0] == '"' {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
	}
	return s[1 : len(s)-1]
}
