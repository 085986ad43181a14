package bnf

import (
	"fmt"

	"github.com/npillmayer/firstnext"
)

// Parse parses grammar source text in BNF notation and returns the grammar.
// name identifies the source in error messages. Errors are of type
// *SyntaxError.
//
//    grammar ::= [ attrs ] rule*
//    rule    ::= modifier* name '::=' choice [ attrs ] [ ';' ]
//    attrs   ::= '{' ( attr [ ';' | ',' ] )* '}'
//    attr    ::= name [ '(' string ')' ] '=' value
//    value   ::= number | string | name | '[' ( [ name '=' ] value [ ';' | ',' ] )* ']'
//
// A rule ends where the next rule starts, i.e. at a name, optionally preceded
// by modifiers, followed by '::='.
func Parse(name string, src string) (*Grammar, error) {
	tokens, err := tokenize(name, src)
	if err != nil {
		return nil, err
	}
	p := &parser{source: name, src: src, tokens: tokens}
	header, rules, err := p.grammar()
	if err != nil {
		return nil, err
	}
	g, err := NewGrammar(name, header, rules...)
	if err != nil {
		return nil, err
	}
	g.Dump()
	return g, nil
}

// MustParse is like Parse, but panics on error. It is intended for grammars
// given as literals.
func MustParse(name string, src string) *Grammar {
	g, err := Parse(name, src)
	if err != nil {
		panic(fmt.Sprintf("cannot parse grammar: %v", err))
	}
	return g
}

type parser struct {
	source string
	src    string
	tokens []bnfToken
	pos    int
}

func (p *parser) peek() bnfToken {
	return p.tokens[p.pos]
}

func (p *parser) peekAt(i int) bnfToken {
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *parser) next() bnfToken {
	t := p.tokens[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) accept(kind firstnext.TokType) (bnfToken, bool) {
	if p.peek().kind == kind {
		return p.next(), true
	}
	return bnfToken{}, false
}

func (p *parser) expect(kind firstnext.TokType, what string) (bnfToken, error) {
	if t, ok := p.accept(kind); ok {
		return t, nil
	}
	return bnfToken{}, p.errorf("expected %s, found %s", what, p.describe(p.peek()))
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return syntaxError(p.source, p.src, int(p.peek().span.From()), format, args...)
}

func (p *parser) describe(t bnfToken) string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.lexeme)
}

// atRuleStart is true if the tokens at position i are a run of modifiers,
// followed by an identifier and '::='.
func (p *parser) atRuleStart(i int) bool {
	if p.peekAt(i).kind != tokIdent {
		return false
	}
	for p.peekAt(i+1).kind == tokIdent {
		if _, ok := ParseModifier(p.peekAt(i).lexeme); !ok {
			return false
		}
		i++
	}
	return p.peekAt(i+1).kind == tokDefine
}

func (p *parser) grammar() ([]*Attr, []*Rule, error) {
	var header []*Attr
	var err error
	if p.peek().kind == tokLBrace {
		if header, err = p.attrs(); err != nil {
			return nil, nil, err
		}
	}
	var rules []*Rule
	for p.peek().kind != tokEOF {
		if _, ok := p.accept(tokSemi); ok {
			continue
		}
		r, err := p.rule()
		if err != nil {
			return nil, nil, err
		}
		rules = append(rules, r)
	}
	return header, rules, nil
}

func (p *parser) rule() (*Rule, error) {
	start := p.peek().span
	var words []bnfToken
	for p.peekAt(p.pos+len(words)).kind == tokIdent {
		words = append(words, p.peekAt(p.pos+len(words)))
	}
	if len(words) == 0 || p.peekAt(p.pos+len(words)).kind != tokDefine {
		return nil, p.errorf("expected rule definition, found %s", p.describe(p.peek()))
	}
	nameTok := words[len(words)-1]
	var mods Modifier
	for _, w := range words[:len(words)-1] {
		m, ok := ParseModifier(w.lexeme)
		if !ok {
			return nil, syntaxError(p.source, p.src, int(w.span.From()),
				"unknown modifier %q for rule %s", w.lexeme, nameTok.lexeme)
		}
		mods |= m
	}
	p.pos += len(words) + 1 // words and '::='
	body, err := p.choice()
	if err != nil {
		return nil, err
	}
	var attrs []*Attr
	if p.peek().kind == tokLBrace {
		if attrs, err = p.attrs(); err != nil {
			return nil, err
		}
	}
	p.accept(tokSemi)
	r := NewRule(nameTok.lexeme, body, mods, attrs...)
	r.span = start.Extend(p.tokens[p.pos-1].span)
	tracer().Debugf("rule %s", r)
	return r, nil
}

// endOfSequence is true at tokens which cannot start a sequence item.
func (p *parser) endOfSequence() bool {
	switch p.peek().kind {
	case tokBar, tokRParen, tokRBrack, tokRCall, tokLBrace, tokSemi, tokEOF:
		return true
	}
	return p.atRuleStart(p.pos)
}

func (p *parser) choice() (*Expression, error) {
	first, err := p.sequence()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokBar {
		return first, nil
	}
	alts := []*Expression{first}
	for {
		if _, ok := p.accept(tokBar); !ok {
			break
		}
		alt, err := p.sequence()
		if err != nil {
			return nil, err
		}
		alts = append(alts, alt)
	}
	return NewChoice(alts...), nil
}

func (p *parser) sequence() (*Expression, error) {
	var items []*Expression
	start := p.peek().span
	for !p.endOfSequence() {
		item, err := p.prefixed()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if len(items) == 1 {
		return items[0], nil
	}
	seq := NewSequence(items...)
	if len(items) == 0 {
		seq.at(firstnext.Span{start.From(), start.From()})
	}
	return seq, nil
}

func (p *parser) prefixed() (*Expression, error) {
	t := p.peek()
	var sign PredicateSign
	switch t.kind {
	case tokAnd:
		sign = And
	case tokNot:
		sign = Not
	default:
		return p.quantified()
	}
	p.next()
	inner, err := p.prefixed()
	if err != nil {
		return nil, err
	}
	return NewPredicate(sign, inner).at(t.span), nil
}

func (p *parser) quantified() (*Expression, error) {
	e, err := p.atom()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		var q Quantifier
		switch t.kind {
		case tokOpt:
			q = Optional
		case tokStar:
			q = ZeroOrMore
		case tokPlus:
			q = OneOrMore
		default:
			return e, nil
		}
		p.next()
		e = NewQuantified(e, q).at(t.span)
	}
}

func (p *parser) atom() (*Expression, error) {
	t := p.peek()
	switch t.kind {
	case tokIdent:
		p.next()
		return NewReference(t.lexeme).at(t.span), nil
	case tokString:
		p.next()
		return NewLiteral(t.lexeme).at(t.span), nil
	case tokLParen, tokLBrack:
		p.next()
		inner, err := p.choice()
		if err != nil {
			return nil, err
		}
		closing, what := tokRParen, "')'"
		if t.kind == tokLBrack {
			closing, what = tokRBrack, "']'"
		}
		end, err := p.expect(closing, what)
		if err != nil {
			return nil, err
		}
		return NewParen(inner, t.kind == tokLBrack).at(t.span.Extend(end.span)), nil
	case tokLCall:
		p.next()
		callee, err := p.expect(tokIdent, "name of meta rule or method")
		if err != nil {
			return nil, err
		}
		var args []*Expression
		for p.peek().kind != tokRCall {
			if p.peek().kind == tokEOF {
				return nil, p.errorf("expected '>>', found end of input")
			}
			arg, err := p.prefixed()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		end := p.next()
		ref := NewReference(callee.lexeme).at(callee.span)
		return NewExternal(ref, args...).at(t.span.Extend(end.span)), nil
	}
	return nil, p.errorf("unexpected %s", p.describe(t))
}

// --- Attributes ------------------------------------------------------------

func (p *parser) attrs() ([]*Attr, error) {
	if _, err := p.expect(tokLBrace, "'{'"); err != nil {
		return nil, err
	}
	var attrs []*Attr
	for {
		if _, ok := p.accept(tokRBrace); ok {
			return attrs, nil
		}
		a, err := p.attr()
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
		if _, ok := p.accept(tokSemi); !ok {
			p.accept(tokComma)
		}
	}
}

func (p *parser) attr() (*Attr, error) {
	name, err := p.expect(tokIdent, "attribute name")
	if err != nil {
		return nil, err
	}
	a := &Attr{Name: name.lexeme}
	if _, ok := p.accept(tokLParen); ok {
		sel, err := p.expect(tokString, "attribute selector")
		if err != nil {
			return nil, err
		}
		a.Selector = Unquote(sel.lexeme)
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(tokEq, "'='"); err != nil {
		return nil, err
	}
	if a.Value, a.span, err = p.attrValue(); err != nil {
		return nil, err
	}
	a.Raw = p.src[a.span.From():a.span.To()]
	return a, nil
}

// attrValue parses a scalar or list value. List values are returned without
// an expression.
func (p *parser) attrValue() (*Expression, firstnext.Span, error) {
	t := p.next()
	switch t.kind {
	case tokNumber, tokString:
		return NewLiteral(t.lexeme).at(t.span), t.span, nil
	case tokIdent:
		return NewReference(t.lexeme).at(t.span), t.span, nil
	case tokLBrack:
		span := t.span
		for {
			if end, ok := p.accept(tokRBrack); ok {
				return nil, span.Extend(end.span), nil
			}
			if p.peek().kind == tokIdent && p.peekAt(p.pos+1).kind == tokEq {
				p.next()
				p.next()
			}
			if _, _, err := p.attrValue(); err != nil {
				return nil, span, err
			}
			if _, ok := p.accept(tokSemi); !ok {
				p.accept(tokComma)
			}
		}
	}
	return nil, t.span, syntaxError(p.source, p.src, int(t.span.From()),
		"unexpected %s in attribute value", p.describe(t))
}
