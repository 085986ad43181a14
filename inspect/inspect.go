package inspect

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/firstnext/analysis"
	"github.com/npillmayer/firstnext/bnf"
)

// Kind is the kind of a finding.
type Kind int

// Kinds of findings
const (
	NeverMatches Kind = iota
	UnreachableBranch
	FirstConflict
)

func (k Kind) String() string {
	switch k {
	case NeverMatches:
		return "never-matches"
	case UnreachableBranch:
		return "unreachable-branch"
	case FirstConflict:
		return "first-conflict"
	}
	return "<unknown>"
}

// Finding is a problem found for an expression of a rule. Tokens are the
// rendered tokens involved, if any.
type Finding struct {
	Kind   Kind
	Rule   *bnf.Rule
	Expr   *bnf.Expression
	Tokens []string
}

func (f Finding) String() string {
	var b strings.Builder
	b.WriteString(f.Rule.Name())
	b.WriteString(": ")
	b.WriteString(f.Kind.String())
	if f.Expr != nil && f.Expr != f.Rule.Body() {
		fmt.Fprintf(&b, " at %s", f.Expr)
	}
	if len(f.Tokens) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(f.Tokens, " "))
	}
	return b.String()
}

// Check inspects the rules of the analyzer's grammar, in grammar order.
// External rules are skipped.
func Check(a *analysis.Analyzer) []Finding {
	var findings []Finding
	for _, r := range a.Grammar().Rules() {
		if r.IsExternal() {
			continue
		}
		if neverMatches(a.CalcFirst(r)) {
			findings = append(findings, Finding{Kind: NeverMatches, Rule: r, Expr: r.Body()})
		}
		bnf.Walk(r.Body(), func(e *bnf.Expression) bool {
			if e.Kind() == bnf.Choice {
				findings = append(findings, checkChoice(a, r, e)...)
			}
			return true
		})
	}
	tracer().Infof("%d findings for grammar %s", len(findings), a.Grammar().Name())
	return findings
}

func checkChoice(a *analysis.Analyzer, r *bnf.Rule, choice *bnf.Expression) []Finding {
	var findings []Finding
	alts := choice.Children()
	tokens := make([]*treeset.Set, len(alts))
	var emptyAt *bnf.Expression
	for i, alt := range alts {
		first := a.FirstOf(alt)
		if emptyAt != nil {
			tracer().Debugf("%s: %s matches empty input", r.Name(), emptyAt)
			findings = append(findings, Finding{Kind: UnreachableBranch, Rule: r, Expr: alt})
		}
		if neverMatches(first) {
			findings = append(findings, Finding{Kind: NeverMatches, Rule: r, Expr: alt})
		}
		if emptyAt == nil && first.Contains(analysis.EOF) {
			emptyAt = alt
		}
		tokens[i] = treeset.NewWithStringComparator()
		for _, x := range first.Values() {
			if !analysis.IsSentinel(x) {
				tokens[i].Add(a.Render(analysis.NewSet(x))[0])
			}
		}
	}
	for j := 1; j < len(alts); j++ {
		for i := 0; i < j; i++ {
			if shared := intersect(tokens[i], tokens[j]); len(shared) > 0 {
				tracer().Debugf("%s: alternatives %d and %d share %v", r.Name(), i, j, shared)
				findings = append(findings, Finding{Kind: FirstConflict, Rule: r, Expr: alts[j],
					Tokens: shared})
			}
		}
	}
	return findings
}

func neverMatches(first *analysis.Set) bool {
	return first.Size() == 1 && first.Contains(analysis.Nothing)
}

func intersect(s1, s2 *treeset.Set) []string {
	var shared []string
	for _, v := range s1.Values() {
		if s2.Contains(v) {
			shared = append(shared, v.(string))
		}
	}
	return shared
}

// RecoverPredicate suggests a 'recoverWhile' clause for a rule: a predicate
// which skips tokens until one of the rule's followers is found. It is
// empty if the followers are unbounded or unknown.
func RecoverPredicate(a *analysis.Analyzer, rule *bnf.Rule) string {
	follow := a.CalcNext(rule)
	if follow.Contains(analysis.Any) {
		return ""
	}
	var tokens []string
	for _, t := range a.Render(follow.KeySet()) {
		if t != analysis.MatchesEOF && t != analysis.MatchesNothing {
			tokens = append(tokens, t)
		}
	}
	switch len(tokens) {
	case 0:
		return ""
	case 1:
		return "!" + tokens[0]
	}
	return "!(" + strings.Join(tokens, " | ") + ")"
}
