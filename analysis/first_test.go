package analysis

import (
	"strings"
	"testing"

	"github.com/npillmayer/firstnext/bnf"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func first(a *Analyzer, rule string) string {
	r := a.Grammar().LookupRule(rule)
	return strings.Join(a.Render(a.CalcFirst(r)), " ")
}

type firstCase struct {
	rule  string
	first string
}

func checkFirst(t *testing.T, a *Analyzer, cases []firstCase) {
	for _, c := range cases {
		if f := first(a, c.rule); f != c.first {
			t.Errorf("FIRST(%s): expected [%s], have [%s]", c.rule, c.first, f)
		}
	}
}

const basicGrammar = `
    root ::= item*
    item ::= 'a' value ';' | "b"
    value ::= number | string | '(' value ')'
    opt ::= 'x'? 'y'
    plus ::= 'x'+
    nested ::= ('x'?)+
    group ::= ['x'] 'y' | 'z'
    empty ::=
    ops ::= '+' | "-" | tok
    short ::= 'a' value item
`

func TestFirstBasic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "firstnext.analysis")
	defer teardown()
	//
	a := NewAnalyzer(bnf.MustParse("basic", basicGrammar))
	checkFirst(t, a, []firstCase{
		{"root", "'a' 'b' -eof-"},
		{"item", "'a' 'b'"},
		{"value", "'(' number string"},
		{"opt", "'x' 'y'"},
		{"plus", "'x'"},
		{"nested", "'x' -eof-"},
		{"group", "'x' 'y' 'z'"},
		{"empty", "-eof-"},
		{"ops", "'+' '-' tok"},
		{"short", "'a'"},
	})
}

func TestFirstIsTotalAndIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "firstnext.analysis")
	defer teardown()
	//
	g := bnf.MustParse("basic", basicGrammar)
	fp, err := g.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	a := NewAnalyzer(g)
	for _, r := range g.Rules() {
		f1 := a.Render(a.CalcFirst(r))
		if len(f1) == 0 {
			t.Errorf("FIRST(%s) is empty", r.Name())
		}
		f2 := a.Render(a.CalcFirst(r))
		if strings.Join(f1, " ") != strings.Join(f2, " ") {
			t.Errorf("FIRST(%s) not stable: %v vs %v", r.Name(), f1, f2)
		}
		a.CalcNext(r)
	}
	fp2, _ := g.Fingerprint()
	if fp != fp2 {
		t.Errorf("analysis modified the grammar")
	}
}

func TestFirstRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "firstnext.analysis")
	defer teardown()
	//
	a := NewAnalyzer(bnf.MustParse("rec", `
        R ::= R 'x' | 'y'
        A ::= B 'a'
        B ::= A 'b' | 'c'`))
	checkFirst(t, a, []firstCase{
		{"R", "'y' R"},
		{"A", "'c' A"},
		{"B", "'c' B"},
	})
}

func TestFirstPredicates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "firstnext.analysis")
	defer teardown()
	//
	a := NewAnalyzer(bnf.MustParse("pred", `
        and_rule ::= &'t' ('t' | 'u')
        not_rule ::= !'t' ('t' | 'u')
        dead ::= &'a' 'b'
        multi ::= !('a' 'b') 'c'
        not_opt ::= !'a'? 'b'
        and_opt ::= &'a'? 'b'
        both ::= &'a' 'b' | &'c' 'd'
        one ::= &'a' 'b' | 'c'`))
	checkFirst(t, a, []firstCase{
		{"and_rule", "'t'"},
		{"not_rule", "'u'"},
		{"dead", "-never-matches-"},
		{"multi", "'c'"},
		{"not_opt", "-never-matches-"},
		{"and_opt", "'b'"},
		{"both", "-never-matches-"},
		{"one", "'c'"},
	})
}

func TestFirstPredicateAtRuleEnd(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "firstnext.analysis")
	defer teardown()
	//
	a := NewAnalyzer(bnf.MustParse("pred", `
        s ::= &'a'
        r ::= s 'a' | s 'b'
        stmt ::= expr ';' {recoverWhile=stmt_rec}
        stmt_rec ::= !';'
        expr ::= 'e'`))
	checkFirst(t, a, []firstCase{
		{"s", "'a'"},
		{"r", "'a'"},
		{"stmt_rec", "-any-"},
	})
}

func TestFirstPins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "firstnext.analysis")
	defer teardown()
	//
	a := NewAnalyzer(bnf.MustParse("pins", `
        pinned ::= a b {pin=1}
        free ::= a b
        strict ::= 'k' b {pin=1}
        a ::= 'x'?
        b ::= 'z'`))
	checkFirst(t, a, []firstCase{
		{"pinned", "'x' 'z' -eof-"},
		{"free", "'x' 'z'"},
		{"strict", "'k'"},
	})
}

func TestFirstMeta(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "firstnext.analysis")
	defer teardown()
	//
	a := NewAnalyzer(bnf.MustParse("meta", `
        meta comma_list ::= <<p>> (',' <<p>>)*
        meta pair ::= <<k>> ':' <<v>>
        list ::= <<comma_list item>>
        args ::= '(' <<comma_list item>> ')'
        entry ::= <<pair key item>>
        item ::= 'i' | number
        key ::= string`))
	checkFirst(t, a, []firstCase{
		{"comma_list", "<<p>>"},
		{"list", "'i' number"},
		{"args", "'('"},
		{"entry", "string"},
	})
}

func TestFirstExternal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "firstnext.analysis")
	defer teardown()
	//
	a := NewAnalyzer(bnf.MustParse("ext", `
        external ext ::= parseExt number
        r ::= ext 'x'
        s ::= <<guard inner>> 'y'
        inner ::= 'q'`))
	checkFirst(t, a, []firstCase{
		{"r", "#parseExt"},
		{"s", "#guard"},
	})
}

func TestFirstBackward(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "firstnext.analysis")
	defer teardown()
	//
	a := NewAnalyzer(bnf.MustParse("back", `
        r ::= 'a' 'b' 'c'
        s ::= 'x' r 'y'
        p ::= 'a' !'b'
        o ::= 'a' 'b'?`), Backward(true))
	checkFirst(t, a, []firstCase{
		{"r", "'c'"},
		{"s", "'y'"},
		{"p", "'a'"},
		{"o", "'a' 'b'"},
	})
}

func TestFirstOpacity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "firstnext.analysis")
	defer teardown()
	//
	a := NewAnalyzer(bnf.MustParse("opaque", `
        r ::= a 'x'
        a ::= 'y'
        q ::= b
        private b ::= 'z'`))
	opaque := a.With(PublicRuleOpaque(true))
	if a.IsPublicRuleOpaque() || !opaque.IsPublicRuleOpaque() {
		t.Fatalf("expected With to return a modified copy")
	}
	checkFirst(t, a, []firstCase{
		{"r", "'y'"},
		{"q", "'z'"},
	})
	checkFirst(t, opaque, []firstCase{
		{"r", "a"},
		{"q", "'z'"},
	})
}

// An unexpanded reference to a rule starting with a predicate contributes
// nothing, so FIRST may be empty. This is the only case of an empty FIRST set.
func TestFirstOpaquePredicateRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "firstnext.analysis")
	defer teardown()
	//
	g := bnf.MustParse("opaque", `
        r ::= guard 'x'
        guard ::= !'y'
        p ::= &'a' p 'b' | 'a'`)
	a := NewAnalyzer(g)
	checkFirst(t, a, []firstCase{
		{"r", "'x'"},
		{"p", "'a'"},
	})
	checkFirst(t, a.With(PublicRuleOpaque(true)), []firstCase{
		{"r", ""},
	})
	guard := g.LookupRule("r").Body().Children()[0]
	first := a.CalcFirstInner(guard, NewSet(), NewVisited(g.LookupRule("guard")), nil)
	if !first.Empty() {
		t.Errorf("expected recursive reference to guard to add nothing, have %s", first)
	}
}

func TestFirstCalleeSeesCallerTail(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "firstnext.analysis")
	defer teardown()
	//
	g := bnf.MustParse("callee", `
        r ::= <<guard>> 'a' | <<guard>> 'b'
        guard ::= &'a'`)
	a := NewAnalyzer(g)
	checkFirst(t, a, []firstCase{
		{"r", "'a'"},
	})
	alts := g.LookupRule("r").Body().Children()
	if f := strings.Join(a.Render(a.FirstOf(alts[1])), " "); f != "-never-matches-" {
		t.Errorf("expected second alternative to never match, have [%s]", f)
	}
}

func TestFirstOf(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "firstnext.analysis")
	defer teardown()
	//
	g := bnf.MustParse("alts", `r ::= 'a' x | y? 'b'
                                y ::= 'c'`)
	a := NewAnalyzer(g)
	alts := g.LookupRule("r").Body().Children()
	if f := strings.Join(a.Render(a.FirstOf(alts[1])), " "); f != "'b' 'c'" {
		t.Errorf("expected FIRST of second alternative to be ['b' 'c'], have [%s]", f)
	}
}
