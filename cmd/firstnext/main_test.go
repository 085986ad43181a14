package main

import (
	"strings"
	"testing"

	"github.com/npillmayer/firstnext/analysis"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestEval(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "firstnext.cmd")
	defer teardown()
	//
	g, err := loadGrammar("", false, "")
	if err != nil {
		t.Fatal(err)
	}
	intp := &Intp{G: g, A: analysis.NewAnalyzer(g)}
	for _, cmd := range []string{"rules", "tree stmt", "first expr", "next term", "check",
		"recover expr", "hash"} {
		if quit, err := intp.Eval(cmd); quit || err != nil {
			t.Errorf("command %q: quit=%v, err=%v", cmd, quit, err)
		}
	}
	if _, err := intp.Eval("first nosuchrule"); err == nil {
		t.Errorf("expected error for unknown rule")
	}
	if _, err := intp.Eval("frist expr"); err == nil {
		t.Errorf("expected error for unknown command")
	}
	if _, err := intp.Eval("backward on"); err != nil || !intp.A.IsBackward() {
		t.Errorf("expected analyzer to be switched to backward mode")
	}
	if _, err := intp.Eval("   "); err == nil {
		t.Errorf("expected error for blank command")
	}
	if quit, _ := intp.Eval("quit"); !quit {
		t.Errorf("expected quit command to quit")
	}
}

func TestEvalCommandsLineNumbers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "firstnext.cmd")
	defer teardown()
	//
	g, err := loadGrammar("", false, "")
	if err != nil {
		t.Fatal(err)
	}
	intp := &Intp{G: g, A: analysis.NewAnalyzer(g)}
	failed := intp.evalCommands(strings.NewReader("rules\n\n\nfirst nosuchrule\n\nhash\nbogus\n"))
	if len(failed) != 2 || failed[0] != 4 || failed[1] != 7 {
		t.Errorf("expected lines 4 and 7 to fail, have %v", failed)
	}
}
