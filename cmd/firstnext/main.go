package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/firstnext/analysis"
	"github.com/npillmayer/firstnext/bnf"
	"github.com/npillmayer/firstnext/inspect"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// We provide a simple expression grammar as a default.
const exprGrammar = `
    {
        tokens = [ plus='+' minus='-' mul='*' div='/' ]
    }
    root ::= stmt*
    stmt ::= expr ';' { pin=1 recoverWhile=stmt_recover }
    private stmt_recover ::= !(';' | number | '(')
    expr ::= term (sum_op term)*
    term ::= factor (prod_op factor)*
    factor ::= number | '(' expr ')' | <<call_args number>>
    meta call_args ::= '(' <<p>> (',' <<p>>)* ')'
    private sum_op ::= '+' | '-'
    private prod_op ::= '*' | '/'
`

// main() starts an interactive CLI, where users may query FIRST and NEXT
// sets of the rules of a grammar.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	backward := flag.Bool("backward", false, "Analyse sequences right to left")
	opaque := flag.Bool("opaque", false, "Do not descend into public rules")
	isEBNF := flag.Bool("ebnf", false, "Grammar file is in Go-style EBNF")
	start := flag.String("start", "", "Start production of an EBNF grammar")
	initf := flag.String("init", "", "File of commands to execute first")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelInfo) // will set the correct level later
	pterm.Info.Println("Welcome to firstnext")
	tracer().Infof("Trace level is %s", *tlevel)
	//
	g, err := loadGrammar(flag.Arg(0), *isEBNF, *start)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	g.Dump() // only visible in debug mode
	//
	repl, err := readline.New("firstnext> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{
		G:    g,
		A:    analysis.NewAnalyzer(g, analysis.Backward(*backward), analysis.PublicRuleOpaque(*opaque)),
		repl: repl,
	}
	tracer().Infof("Quit with <ctrl>D")
	intp.loadInitFile(*initf)
	intp.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func loadGrammar(filename string, isEBNF bool, start string) (*bnf.Grammar, error) {
	if filename == "" {
		tracer().Infof("No grammar file given, using expression grammar")
		return bnf.Parse("expr", exprGrammar)
	}
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if isEBNF {
		f, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return bnf.ParseEBNF(name, f, start)
	}
	src, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return bnf.Parse(name, string(src))
}

// Intp is our interpreter object
type Intp struct {
	G    *bnf.Grammar
	A    *analysis.Analyzer
	repl *readline.Instance
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()
	intp.evalCommands(f)
}

// evalCommands executes commands line by line and returns the numbers of
// the lines which failed.
func (intp *Intp) evalCommands(r io.Reader) []int {
	var failed []int
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if _, err := intp.Eval(line); err != nil {
			tracer().Errorf("Error line %d: %v", lineno, err)
			failed = append(failed, lineno)
		}
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading init file: %v", err)
	}
	return failed
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	defer intp.repl.Close()
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Eval executes a command, given on a line by itself.
func (intp *Intp) Eval(line string) (bool, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false, fmt.Errorf("empty command")
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "quit", "exit":
		return true, nil
	case "rules":
		for _, r := range intp.G.Rules() {
			pterm.Println(r.String())
		}
	case "tree":
		r, err := intp.rule(args)
		if err != nil {
			return false, err
		}
		pterm.Println(r.Name())
		root := pterm.NewTreeFromLeveledList(leveledExpr(r.Body(), pterm.LeveledList{}, 0))
		pterm.DefaultTree.WithRoot(root).Render()
	case "first":
		r, err := intp.rule(args)
		if err != nil {
			return false, err
		}
		first := intp.A.CalcFirst(r)
		pterm.Info.Println(strings.Join(intp.A.Render(first), "  "))
	case "next":
		r, err := intp.rule(args)
		if err != nil {
			return false, err
		}
		intp.printFollow(intp.A.CalcNext(r))
	case "check":
		findings := inspect.Check(intp.A)
		for _, f := range findings {
			pterm.Warning.Println(f.String())
		}
		pterm.Info.Println(fmt.Sprintf("%d findings", len(findings)))
	case "recover":
		r, err := intp.rule(args)
		if err != nil {
			return false, err
		}
		p := inspect.RecoverPredicate(intp.A, r)
		if p == "" {
			return false, fmt.Errorf("followers of %s are unbounded", r.Name())
		}
		pterm.Info.Println(p)
	case "backward", "opaque":
		on, err := onOff(args)
		if err != nil {
			return false, err
		}
		if cmd == "backward" {
			intp.A = intp.A.With(analysis.Backward(on))
		} else {
			intp.A = intp.A.With(analysis.PublicRuleOpaque(on))
		}
		tracer().Infof("%s = %v", cmd, on)
	case "hash":
		h, err := intp.G.Fingerprint()
		if err != nil {
			return false, err
		}
		pterm.Info.Println(h)
	default:
		return false, fmt.Errorf("unknown command: %s", cmd)
	}
	return false, nil
}

func (intp *Intp) rule(args []string) (*bnf.Rule, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("expected a single rule name")
	}
	r := intp.G.LookupRule(args[0])
	if r == nil {
		return nil, fmt.Errorf("no rule named %s", args[0])
	}
	return r, nil
}

func (intp *Intp) printFollow(follow *analysis.Follow) {
	for _, e := range follow.Keys() {
		token := intp.A.Render(analysis.NewSet(e))[0]
		origin, _ := follow.Get(e)
		if origin == nil || origin.Rule() == nil {
			pterm.Info.Println(token)
			continue
		}
		pterm.Info.Println(fmt.Sprintf("%-16s (%s in %s)", token, origin, origin.Rule().Name()))
	}
}

func onOff(args []string) (bool, error) {
	if len(args) == 1 {
		switch args[0] {
		case "on":
			return true, nil
		case "off":
			return false, nil
		}
	}
	return false, fmt.Errorf("expected on or off")
}

// leveledExpr flattens an expression tree for display with pterm.
func leveledExpr(e *bnf.Expression, ll pterm.LeveledList, level int) pterm.LeveledList {
	text := e.Kind().String()
	switch e.Kind() {
	case bnf.Literal, bnf.Reference:
		text = e.Text()
	case bnf.Quantified:
		text += " " + e.Quantifier().String()
	case bnf.Predicate:
		text += " " + e.Sign().String()
	}
	ll = append(ll, pterm.LeveledListItem{Level: level, Text: text})
	for _, ch := range e.Children() {
		ll = leveledExpr(ch, ll, level+1)
	}
	return ll
}
