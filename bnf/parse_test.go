package bnf

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const exprGrammar = `
{
  tokens = [ plus='+' minus='-' number='regexp:\d+' ]
  pin(".*_stmt") = 1
}
// expressions
root     ::= expr_stmt*
expr_stmt ::= expr ';' { recoverWhile=stmt_recover }
private stmt_recover ::= !';'
expr     ::= term (add_op term)*
private add_op ::= '+' | "-"
term     ::= number | '(' expr ')' { pin=1 }
/* meta rules and external calls */
meta comma_list ::= <<p>> (',' <<p>>)*
args     ::= '(' <<comma_list expr>> ')'
external ext ::= parseExt number
`

func TestParseRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "firstnext.bnf")
	defer teardown()
	//
	g, err := Parse("expr", exprGrammar)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Rules()) != 9 {
		t.Errorf("expected 9 rules, have %d", len(g.Rules()))
	}
	if len(g.Header()) != 2 {
		t.Errorf("expected 2 header attributes, have %d", len(g.Header()))
	}
	for _, tc := range []struct {
		rule string
		body string
		kind Kind
	}{
		{"root", "expr_stmt*", Quantified},
		{"expr_stmt", "expr ';'", Sequence},
		{"stmt_recover", "!';'", Predicate},
		{"expr", "term (add_op term)*", Sequence},
		{"add_op", `'+' | "-"`, Choice},
		{"term", "number | '(' expr ')'", Choice},
		{"comma_list", "<<p>> (',' <<p>>)*", Sequence},
		{"args", "'(' <<comma_list expr>> ')'", Sequence},
		{"ext", "parseExt number", Sequence},
	} {
		r := g.LookupRule(tc.rule)
		if r == nil {
			t.Errorf("rule %s not found", tc.rule)
			continue
		}
		if r.Body().Text() != tc.body {
			t.Errorf("rule %s: expected body %q, have %q", tc.rule, tc.body, r.Body().Text())
		}
		if r.Body().Kind() != tc.kind {
			t.Errorf("rule %s: expected body of kind %s, have %s", tc.rule, tc.kind, r.Body().Kind())
		}
	}
	if !g.LookupRule("add_op").IsPrivate() || g.LookupRule("expr").IsPrivate() {
		t.Errorf("private modifier not recognized")
	}
	if !g.LookupRule("comma_list").IsMeta() || !g.LookupRule("ext").IsExternal() {
		t.Errorf("meta/external modifiers not recognized")
	}
}

func TestParseLinks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "firstnext.bnf")
	defer teardown()
	//
	g := MustParse("links", `r ::= a (b | c)+ d`)
	r := g.LookupRule("r")
	body := r.Body()
	if !body.IsTop() || body.Rule() != r {
		t.Fatalf("expected body to be top-level expression of r")
	}
	q := body.Children()[1]
	if q.Kind() != Quantified || q.Quantifier() != OneOrMore {
		t.Fatalf("expected (b | c)+, have %s", q)
	}
	c := q.Inner().Inner().Children()[1]
	if c.Text() != "c" || c.Parent().Kind() != Choice {
		t.Errorf("expected c within choice, have %s under %v", c, c.Parent())
	}
	if c.Rule() != r || c.IsTop() {
		t.Errorf("expected c to be nested in r")
	}
	if c.Span().IsNull() {
		t.Errorf("expected c to carry a source span")
	}
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "firstnext.bnf")
	defer teardown()
	//
	for _, src := range []string{
		"r ::= (a b",
		"r ::= a\nr ::= b",
		"bogus r ::= a",
		"r ::= a %",
		"r ::= <<>>",
		"r ::= a { pin }",
	} {
		_, err := Parse("bad", src)
		if err == nil {
			t.Errorf("expected error for %q", src)
			continue
		}
		t.Logf("%q: %v", src, err)
	}
	_, err := Parse("bad", "r ::= a\n   ) b")
	serr, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("expected syntax error, have %v", err)
	}
	if serr.Line != 2 || serr.Column != 4 {
		t.Errorf("expected error at 2:4, have %d:%d", serr.Line, serr.Column)
	}
}

func TestParseEmptyBody(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "firstnext.bnf")
	defer teardown()
	//
	g := MustParse("empty", "r ::= ;\ns ::= r 'x'")
	r := g.LookupRule("r")
	if r.Body().Kind() != Sequence || len(r.Body().Children()) != 0 {
		t.Errorf("expected empty sequence, have %s %q", r.Body().Kind(), r.Body())
	}
}
