package bnf

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestFindUsages(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "firstnext.bnf")
	defer teardown()
	//
	g := MustParse("expr", exprGrammar)
	usages := g.FindUsages(g.LookupRule("expr"))
	if len(usages) != 3 { // expr_stmt, term, args
		t.Fatalf("expected 3 usages of expr, have %d", len(usages))
	}
	for _, u := range usages {
		if u.Kind() != Reference || u.Text() != "expr" {
			t.Errorf("expected reference to expr, have %s", u)
		}
	}
	rec := g.FindUsages(g.LookupRule("stmt_recover"))
	if len(rec) != 1 || rec[0].Attr() == nil || rec[0].Attr().Name != RecoverAttrName {
		t.Errorf("expected usage of stmt_recover in recoverWhile attribute, have %v", rec)
	}
	if rec[0].Rule() != g.LookupRule("expr_stmt") {
		t.Errorf("expected attribute value to belong to expr_stmt")
	}
	if len(g.FindUsages(g.LookupRule("root"))) != 0 {
		t.Errorf("expected root to be unused")
	}
}

func TestFindUsagesQuotedAttribute(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "firstnext.bnf")
	defer teardown()
	//
	g := MustParse("quoted", `
        stmt ::= 'x' ';' { recoverWhile="stmt_rec" pin="nosuchrule" }
        stmt_rec ::= !';'`)
	rec := g.FindUsages(g.LookupRule("stmt_rec"))
	if len(rec) != 1 || rec[0].Attr() == nil || rec[0].Attr().Name != RecoverAttrName {
		t.Fatalf("expected quoted recoverWhile value to be a usage of stmt_rec, have %v", rec)
	}
	if rec[0].Rule() != g.LookupRule("stmt") {
		t.Errorf("expected attribute value to belong to stmt")
	}
}

func TestMetaParameters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "firstnext.bnf")
	defer teardown()
	//
	g := MustParse("meta", `
        meta pair ::= <<first>> ':' <<second>> <<first>>
        plain ::= <<first>>`)
	params := g.CollectMetaParameters(g.LookupRule("pair"))
	if strings.Join(params, ",") != "first,second" {
		t.Errorf("expected parameters first,second, have %v", params)
	}
	if len(g.CollectMetaParameters(g.LookupRule("plain"))) != 0 {
		t.Errorf("expected no parameters for non-meta rule")
	}
	if p, ok := MetaParameter(g.LookupRule("plain").Body()); !ok || p != "first" {
		t.Errorf("expected <<first>> to be a placeholder")
	}
}

func TestExternalReference(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "firstnext.bnf")
	defer teardown()
	//
	g := MustParse("ext", `
        external ext ::= parseExt number
        external ext1 ::= parseOne
        r ::= <<method x>> y`)
	args := g.ExternalCallArguments(g.LookupRule("ext"))
	if len(args) != 2 || args[0].Text() != "parseExt" {
		t.Fatalf("expected 2 call arguments, have %v", args)
	}
	if !g.IsExternalReference(args[0]) || g.IsExternalReference(args[1]) {
		t.Errorf("expected only parseExt to be an external reference")
	}
	one := g.ExternalCallArguments(g.LookupRule("ext1"))
	if len(one) != 1 || !g.IsExternalReference(one[0]) {
		t.Errorf("expected parseOne to be an external reference")
	}
	call := g.LookupRule("r").Body().Children()[0]
	if !g.IsExternalReference(call.Children()[0]) || g.IsExternalReference(call.Children()[1]) {
		t.Errorf("expected callee of <<method x>> to be an external reference")
	}
}

func TestPinnedExpressions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "firstnext.bnf")
	defer teardown()
	//
	g := MustParse("expr", exprGrammar)
	pinned := g.PinnedExpressions(g.LookupRule("expr_stmt")) // header pin(".*_stmt")=1
	if len(pinned) != 1 || pinned[0].Text() != "expr" {
		t.Errorf("expected expr_stmt to be pinned at expr, have %v", pinned)
	}
	pinned = g.PinnedExpressions(g.LookupRule("term")) // pin=1 applies to top level only
	if len(pinned) != 0 {
		t.Errorf("expected no pins for term, have %v", pinned)
	}
	g = MustParse("pins", `
        r ::= a b (c d e)* { pin=2 pin("r_2_0")="d" }
        s ::= (x y) z { pin="z" }`)
	pinned = g.PinnedExpressions(g.LookupRule("r"))
	if len(pinned) != 2 || pinned[0].Text() != "b" || pinned[1].Text() != "d" {
		t.Errorf("expected r pinned at b and d, have %v", pinned)
	}
	pinned = g.PinnedExpressions(g.LookupRule("s"))
	if len(pinned) != 1 || pinned[0].Text() != "z" {
		t.Errorf("expected s pinned at z, have %v", pinned)
	}
}

func TestFirstNotTrivial(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "firstnext.bnf")
	defer teardown()
	//
	g := MustParse("trivial", `
        p ::= ((!x))
        q ::= (a b)`)
	if e := g.FirstNotTrivial(g.LookupRule("p")); e == nil || e.Kind() != Predicate {
		t.Errorf("expected predicate, have %v", e)
	}
	if e := g.FirstNotTrivial(g.LookupRule("q")); e == nil || e.Kind() != Sequence {
		t.Errorf("expected sequence, have %v", e)
	}
}

func TestFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "firstnext.bnf")
	defer teardown()
	//
	h1, err := MustParse("g", "r ::= a  b\ns ::= 'x'").Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	h2, _ := MustParse("g", "r ::= a b // same\ns ::= 'x'").Fingerprint()
	h3, _ := MustParse("g", "r ::= a b\nprivate s ::= 'x'").Fingerprint()
	if h1 != h2 {
		t.Errorf("expected equal fingerprints for equal grammars")
	}
	if h1 == h3 {
		t.Errorf("expected modifiers to change the fingerprint")
	}
}
