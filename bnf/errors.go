package bnf

import (
	"fmt"
	"strings"
)

// SyntaxError is an error in grammar source text.
type SyntaxError struct {
	Source string // name of the grammar source
	Line   int    // 1-based
	Column int    // 1-based
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Line, e.Column, e.Msg)
}

// syntaxError creates a SyntaxError for a byte offset into src.
func syntaxError(source, src string, offset int, format string, args ...interface{}) *SyntaxError {
	if offset > len(src) {
		offset = len(src)
	}
	line := strings.Count(src[:offset], "\n") + 1
	col := offset - strings.LastIndex(src[:offset], "\n")
	return &SyntaxError{
		Source: source,
		Line:   line,
		Column: col,
		Msg:    fmt.Sprintf(format, args...),
	}
}
