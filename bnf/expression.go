package bnf

import (
	"fmt"
	"strings"

	"github.com/npillmayer/firstnext"
)

// Kind is the kind of an expression node. The set of kinds is closed.
type Kind int8

// Kinds of expressions.
const (
	Literal    Kind = iota // quoted string or raw token text
	Reference              // identifier, resolving to a rule or standing for a token
	Paren                  // ( expr )
	ParenOpt               // [ expr ], the group may be skipped
	Choice                 // a | b | …
	Sequence               // a b …
	Quantified             // a?  a*  a+
	External               // <<callee arg …>>
	Predicate              // &a  !a
	Fake                   // placeholder, not part of any grammar
)

var kindNames = [...]string{"literal", "reference", "paren", "paren-opt", "choice",
	"sequence", "quantified", "external", "predicate", "fake"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", k)
	}
	return kindNames[k]
}

// Quantifier is the multiplicity of a quantified expression.
type Quantifier int8

// Multiplicities of quantified expressions.
const (
	NoQuantifier Quantifier = iota
	Optional                // ?
	ZeroOrMore              // *
	OneOrMore               // +
)

func (q Quantifier) String() string {
	switch q {
	case Optional:
		return "?"
	case ZeroOrMore:
		return "*"
	case OneOrMore:
		return "+"
	}
	return ""
}

// PredicateSign is the sign of a semantic lookahead predicate.
type PredicateSign int8

// Signs of predicates.
const (
	NoSign PredicateSign = iota
	And                  // &
	Not                  // !
)

func (s PredicateSign) String() string {
	switch s {
	case And:
		return "&"
	case Not:
		return "!"
	}
	return ""
}

// Expression is a node of a rule's derivation tree.
//
// Expressions are linked to their parent expression, to the rule they belong
// to and, for attribute values, to the attribute they are the value of.
// The top-level expression of a rule body has no parent expression.
type Expression struct {
	kind     Kind
	text     string         // canonical text
	span     firstnext.Span // position in grammar source, if any
	children []*Expression
	quant    Quantifier
	sign     PredicateSign
	parent   *Expression
	rule     *Rule
	attr     *Attr
}

// NewFake creates a placeholder expression which is not part of any grammar.
// Fakes are used as out-of-band markers in result sets.
func NewFake(text string) *Expression {
	return &Expression{kind: Fake, text: text}
}

// --- Constructors ----------------------------------------------------------

// NewLiteral creates a literal expression. text is the literal as written,
// including quotes.
func NewLiteral(text string) *Expression {
	return &Expression{kind: Literal, text: text}
}

// NewReference creates a reference to a rule or token.
func NewReference(name string) *Expression {
	return &Expression{kind: Reference, text: name}
}

// NewParen creates a group. If optional is true, the group may be skipped.
func NewParen(inner *Expression, optional bool) *Expression {
	e := &Expression{kind: Paren, children: []*Expression{inner}}
	if optional {
		e.kind = ParenOpt
	}
	return e.canonical()
}

// NewChoice creates a choice over alternatives.
func NewChoice(alternatives ...*Expression) *Expression {
	return (&Expression{kind: Choice, children: alternatives}).canonical()
}

// NewSequence creates a sequence of items.
func NewSequence(items ...*Expression) *Expression {
	return (&Expression{kind: Sequence, children: items}).canonical()
}

// NewQuantified creates a quantified expression.
func NewQuantified(inner *Expression, q Quantifier) *Expression {
	return (&Expression{kind: Quantified, quant: q, children: []*Expression{inner}}).canonical()
}

// NewPredicate creates a lookahead predicate.
func NewPredicate(sign PredicateSign, inner *Expression) *Expression {
	return (&Expression{kind: Predicate, sign: sign, children: []*Expression{inner}}).canonical()
}

// NewExternal creates a call of a meta rule or external method. The first
// argument is the callee.
func NewExternal(callee *Expression, args ...*Expression) *Expression {
	children := append([]*Expression{callee}, args...)
	return (&Expression{kind: External, children: children}).canonical()
}

// canonical sets the text of a composite expression from its children and
// extends its span over them.
func (e *Expression) canonical() *Expression {
	var b strings.Builder
	switch e.kind {
	case Paren:
		b.WriteString("(")
		b.WriteString(e.children[0].text)
		b.WriteString(")")
	case ParenOpt:
		b.WriteString("[")
		b.WriteString(e.children[0].text)
		b.WriteString("]")
	case Choice:
		joinTexts(&b, e.children, " | ")
	case Sequence:
		joinTexts(&b, e.children, " ")
	case Quantified:
		b.WriteString(e.children[0].text)
		b.WriteString(e.quant.String())
	case Predicate:
		b.WriteString(e.sign.String())
		b.WriteString(e.children[0].text)
	case External:
		b.WriteString("<<")
		joinTexts(&b, e.children, " ")
		b.WriteString(">>")
	}
	e.text = b.String()
	for _, ch := range e.children {
		e.span = e.span.Extend(ch.span)
	}
	return e
}

func joinTexts(b *strings.Builder, exprs []*Expression, sep string) {
	for i, x := range exprs {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(x.text)
	}
}

// at sets the source span of an expression. Returns the expression.
func (e *Expression) at(span firstnext.Span) *Expression {
	e.span = e.span.Extend(span)
	return e
}

// link sets parent, rule and attribute links for a tree of expressions.
func (e *Expression) link(parent *Expression, rule *Rule, attr *Attr) {
	e.parent = parent
	e.rule = rule
	e.attr = attr
	for _, ch := range e.children {
		ch.link(e, rule, attr)
	}
}

// --- Accessors -------------------------------------------------------------

// Kind returns the kind of an expression.
func (e *Expression) Kind() Kind {
	return e.kind
}

// Text returns the canonical text of an expression.
func (e *Expression) Text() string {
	return e.text
}

// Span returns the grammar source positions an expression covers. Expressions
// not created from source text return a null span.
func (e *Expression) Span() firstnext.Span {
	return e.span
}

// Children returns the sub-expressions: the alternatives of a choice, the
// items of a sequence, the callee and arguments of an external call, or the
// single inner expression of a group, quantified or predicate.
func (e *Expression) Children() []*Expression {
	return e.children
}

// Inner returns the inner expression of a group, quantified expression or
// predicate; for other kinds it returns the first child, if any.
func (e *Expression) Inner() *Expression {
	if len(e.children) == 0 {
		return nil
	}
	return e.children[0]
}

// Quantifier returns the multiplicity of a quantified expression.
func (e *Expression) Quantifier() Quantifier {
	return e.quant
}

// Sign returns the sign of a predicate.
func (e *Expression) Sign() PredicateSign {
	return e.sign
}

// Parent returns the enclosing expression, or nil for the top of a rule body
// or of an attribute value.
func (e *Expression) Parent() *Expression {
	return e.parent
}

// Rule returns the rule an expression belongs to. For fakes and for
// expressions of grammar header attributes it is nil.
func (e *Expression) Rule() *Rule {
	return e.rule
}

// Attr returns the attribute an expression is (part of) the value of, or nil
// if the expression is part of a rule body.
func (e *Expression) Attr() *Attr {
	return e.attr
}

// IsTop is true for the top-level expression of a rule body.
func (e *Expression) IsTop() bool {
	return e.parent == nil && e.attr == nil && e.rule != nil
}

// IsFake is true for placeholder expressions.
func (e *Expression) IsFake() bool {
	return e.kind == Fake
}

func (e *Expression) String() string {
	return e.text
}
