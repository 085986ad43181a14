package analysis

import (
	"github.com/npillmayer/firstnext/bnf"
)

// Texts of the sentinel expressions.
const (
	MatchesEOF     = "-eof-"
	MatchesNothing = "-never-matches-"
	MatchesAny     = "-any-"
)

// Sentinels marking out-of-band results. They are never part of a grammar.
var (
	EOF     = bnf.NewFake(MatchesEOF)
	Nothing = bnf.NewFake(MatchesNothing)
	Any     = bnf.NewFake(MatchesAny)
)

// IsSentinel is true for EOF, Nothing and Any, and for expressions carrying
// one of their texts.
func IsSentinel(e *bnf.Expression) bool {
	if e == nil {
		return false
	}
	switch e.Text() {
	case MatchesEOF, MatchesNothing, MatchesAny:
		return e.IsFake()
	}
	return false
}

// Analyzer computes FIRST and NEXT sets for the rules of a grammar.
// An analyzer holds configuration only and is safe for concurrent use.
type Analyzer struct {
	g                *bnf.Grammar
	backward         bool
	publicRuleOpaque bool
}

// Option configures an analyzer.
type Option func(*Analyzer)

// Backward makes an analyzer treat sequences right-to-left. FIRST then
// reports possible end tokens and NEXT reports possible predecessors.
// Predicates are ignored in this mode.
func Backward(b bool) Option {
	return func(a *Analyzer) {
		a.backward = b
	}
}

// PublicRuleOpaque makes an analyzer stop at references to public rules
// and report the reference itself instead of descending into it.
func PublicRuleOpaque(b bool) Option {
	return func(a *Analyzer) {
		a.publicRuleOpaque = b
	}
}

// NewAnalyzer creates an analyzer for a grammar. The default is forward
// mode with all rules transparent.
func NewAnalyzer(g *bnf.Grammar, opts ...Option) *Analyzer {
	a := &Analyzer{g: g}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// With returns a copy of the analyzer with additional options applied.
func (a *Analyzer) With(opts ...Option) *Analyzer {
	b := *a
	for _, opt := range opts {
		opt(&b)
	}
	return &b
}

// Grammar returns the grammar under analysis.
func (a *Analyzer) Grammar() *bnf.Grammar {
	return a.g
}

// IsBackward is true for analyzers in backward mode.
func (a *Analyzer) IsBackward() bool {
	return a.backward
}

// IsPublicRuleOpaque is true if references to public rules are not
// expanded.
func (a *Analyzer) IsPublicRuleOpaque() bool {
	return a.publicRuleOpaque
}

// CalcFirst computes the FIRST set of a rule.
func (a *Analyzer) CalcFirst(rule *bnf.Rule) *Set {
	if rule == nil {
		return NewSet()
	}
	tracer().Debugf("FIRST(%s)", rule.Name())
	return a.CalcFirstInner(rule.Body(), NewSet(), NewVisited(rule), nil)
}

// FirstOf computes the FIRST set of an arbitrary expression of the grammar,
// e.g. a single alternative of a choice.
func (a *Analyzer) FirstOf(e *bnf.Expression) *Set {
	visited := NewVisited()
	if e.Rule() != nil {
		visited.Enter(e.Rule())
	}
	return a.CalcFirstInner(e, NewSet(), visited, nil)
}

// CalcNext computes the NEXT set of a rule, mapping every follower to the
// reference of the rule it was found at. If nothing follows the rule, the
// result is {EOF}.
func (a *Analyzer) CalcNext(rule *bnf.Rule) *Follow {
	if rule == nil {
		return NewFollow()
	}
	tracer().Debugf("NEXT(%s)", rule.Name())
	return a.calcNextInner(rule.Body(), NewFollow(), NewVisited())
}

// NextOf computes the NEXT set of an arbitrary expression of the grammar.
func (a *Analyzer) NextOf(e *bnf.Expression) *Follow {
	return a.calcNextInner(e, NewFollow(), NewVisited())
}
