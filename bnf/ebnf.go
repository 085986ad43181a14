package bnf

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// ParseEBNF reads a grammar in Go-style EBNF, as used in the Go language
// specification, and converts it to a grammar. If start is not empty, the
// EBNF grammar is verified for the start production first.
func ParseEBNF(name string, r io.Reader, start string) (*Grammar, error) {
	eg, err := ebnf.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("cannot read EBNF grammar %s: %w", name, err)
	}
	if start != "" {
		if err := ebnf.Verify(eg, start); err != nil {
			return nil, fmt.Errorf("invalid EBNF grammar %s: %w", name, err)
		}
	}
	return FromEBNF(name, eg, start)
}

// FromEBNF converts an EBNF grammar. Productions of lexical tokens (names
// starting with a lower-case letter) become private rules. Rules are ordered
// by name, with the start production (if any) first.
//
//    "x"          ⇒  "x"
//    "a" … "b"    ⇒  "a…b"
//    [ x ]        ⇒  [x]
//    ( x )        ⇒  (x)
//    { x }        ⇒  (x)*
func FromEBNF(name string, eg ebnf.Grammar, start string) (*Grammar, error) {
	names := make([]string, 0, len(eg))
	for n := range eg {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		if names[i] == start || names[j] == start {
			return names[i] == start
		}
		return names[i] < names[j]
	})
	rules := make([]*Rule, 0, len(names))
	for _, n := range names {
		prod := eg[n]
		body, err := fromEBNFExpression(prod.Expr)
		if err != nil {
			return nil, fmt.Errorf("production %s: %w", n, err)
		}
		var mods Modifier
		if isLexical(n) {
			mods = Private
		}
		rules = append(rules, NewRule(n, body, mods))
	}
	return NewGrammar(name, nil, rules...)
}

func isLexical(name string) bool {
	ch, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(ch)
}

func fromEBNFExpression(e ebnf.Expression) (*Expression, error) {
	switch x := e.(type) {
	case nil:
		return NewSequence(), nil
	case *ebnf.Name:
		return NewReference(x.String), nil
	case *ebnf.Token:
		return NewLiteral(strconv.Quote(x.String)), nil
	case *ebnf.Range:
		return NewLiteral(strconv.Quote(x.Begin.String + "…" + x.End.String)), nil
	case ebnf.Sequence:
		items, err := fromEBNFList(x)
		if err != nil {
			return nil, err
		}
		if len(items) == 1 {
			return items[0], nil
		}
		return NewSequence(items...), nil
	case ebnf.Alternative:
		alts, err := fromEBNFList(x)
		if err != nil {
			return nil, err
		}
		if len(alts) == 1 {
			return alts[0], nil
		}
		return NewChoice(alts...), nil
	case *ebnf.Group:
		inner, err := fromEBNFExpression(x.Body)
		if err != nil {
			return nil, err
		}
		return NewParen(inner, false), nil
	case *ebnf.Option:
		inner, err := fromEBNFExpression(x.Body)
		if err != nil {
			return nil, err
		}
		return NewParen(inner, true), nil
	case *ebnf.Repetition:
		inner, err := fromEBNFExpression(x.Body)
		if err != nil {
			return nil, err
		}
		return NewQuantified(NewParen(inner, false), ZeroOrMore), nil
	case *ebnf.Bad:
		return nil, fmt.Errorf("bad expression: %s", x.Error)
	}
	return nil, fmt.Errorf("unsupported EBNF expression %T", e)
}

func fromEBNFList(list []ebnf.Expression) ([]*Expression, error) {
	r := make([]*Expression, 0, len(list))
	for _, e := range list {
		x, err := fromEBNFExpression(e)
		if err != nil {
			return nil, err
		}
		r = append(r, x)
	}
	return r, nil
}
