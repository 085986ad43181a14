package firstnext

import "fmt"

// --- Tokens of grammar source text -----------------------------------------

// TokType is a category type for a Token. Constants are defined by the
// scanner producing the tokens.
type TokType int

// Token represents a lexeme of grammar source text, as produced by the
// grammar scanner.
//
//    TokType = Ident       // identifier for this kind of tokens
//    Lexeme  = "expr"      // lexeme as it appeared in the grammar text
//    Value   = nil         // scanner-specific value, if any
//    Span    = 67…71       // occured from position 67 in the grammar text
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of grammar source text. Every
// expression of a grammar tracks the input positions it covers. A span
// denotes a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull is true for the zero span, which is used for expressions not
// originating from source text.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering s and other. Null spans are
// neutral.
func (s Span) Extend(other Span) Span {
	if s.IsNull() {
		return other
	}
	if other.IsNull() {
		return s
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
