package bnf

import (
	"strings"
	"sync"

	"github.com/npillmayer/firstnext"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Token types of BNF grammar text.
const (
	tokEOF firstnext.TokType = iota - 1
	_
	tokIdent
	tokString
	tokNumber
	tokDefine // ::=
	tokBar    // |
	tokLParen
	tokRParen
	tokLBrack
	tokRBrack
	tokLBrace
	tokRBrace
	tokOpt  // ?
	tokStar // *
	tokPlus // +
	tokAnd  // &
	tokNot  // !
	tokEq   // =
	tokLCall
	tokRCall
	tokSemi
	tokComma
)

// The tokens representing operators and punctuation
var literals = map[string]firstnext.TokType{
	"::=": tokDefine, "|": tokBar, "(": tokLParen, ")": tokRParen,
	"[": tokLBrack, "]": tokRBrack, "{": tokLBrace, "}": tokRBrace,
	"?": tokOpt, "*": tokStar, "+": tokPlus, "&": tokAnd, "!": tokNot,
	"=": tokEq, "<<": tokLCall, ">>": tokRCall, ";": tokSemi, ",": tokComma,
}

var lexer *lexmachine.Lexer
var lexerErr error
var initOnce sync.Once // monitors one-time creation of the lexer

// bnfLexer creates the lexmachine lexer for BNF text.
func bnfLexer() (*lexmachine.Lexer, error) {
	initOnce.Do(func() {
		lexer = lexmachine.NewLexer()
		lexer.Add([]byte(`//[^\n]*\n?`), skip)
		lexer.Add([]byte(`/\*([^\*]|\*+[^\*/])*\*+/`), skip)
		lexer.Add([]byte(`( |\t|\n|\r)+`), skip)
		lexer.Add([]byte(`'[^']*'`), makeToken(tokString))
		lexer.Add([]byte(`"([^"\\]|\\.)*"`), makeToken(tokString))
		lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), makeToken(tokIdent))
		lexer.Add([]byte(`[0-9]+`), makeToken(tokNumber))
		for lit, id := range literals {
			r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
			lexer.Add([]byte(r), makeToken(id))
		}
		if lexerErr = lexer.Compile(); lexerErr != nil {
			tracer().Errorf("error compiling DFA: %v", lexerErr)
		}
	})
	return lexer, lexerErr
}

// skip is a lexmachine action which ignores the scanned match.
func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// makeToken is a lexmachine action which wraps a scanned match into a token.
func makeToken(id firstnext.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(id), string(m.Bytes), m), nil
	}
}

// bnfToken is the token type produced for BNF text.
type bnfToken struct {
	kind   firstnext.TokType
	lexeme string
	span   firstnext.Span
}

var _ firstnext.Token = bnfToken{}

func (t bnfToken) TokType() firstnext.TokType {
	return t.kind
}

func (t bnfToken) Lexeme() string {
	return t.lexeme
}

func (t bnfToken) Value() interface{} {
	return nil
}

func (t bnfToken) Span() firstnext.Span {
	return t.span
}

// tokenize splits BNF text into tokens. The last token is always tokEOF.
func tokenize(source, src string) ([]bnfToken, error) {
	lx, err := bnfLexer()
	if err != nil {
		return nil, err
	}
	scanner, err := lx.Scanner([]byte(src))
	if err != nil {
		return nil, err
	}
	var tokens []bnfToken
	for {
		tok, err, eof := scanner.Next()
		if err != nil {
			if ui, is := err.(*machines.UnconsumedInput); is {
				return nil, syntaxError(source, src, ui.FailTC, "unexpected input")
			}
			return nil, err
		}
		if eof {
			break
		}
		token := tok.(*lexmachine.Token)
		tracer().Debugf("token %d | %q", token.Type, token.Lexeme)
		tokens = append(tokens, bnfToken{
			kind:   firstnext.TokType(token.Type),
			lexeme: string(token.Lexeme),
			span:   firstnext.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
		})
	}
	end := uint64(len(src))
	tokens = append(tokens, bnfToken{kind: tokEOF, span: firstnext.Span{end, end}})
	return tokens, nil
}
