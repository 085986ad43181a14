package analysis

import (
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/firstnext/bnf"
)

// Set is an insertion-ordered set of expressions.
//
// Sets come in two flavours: identity sets distinguish expressions by
// address, text sets consider expressions equal if their canonical texts
// are equal. The sentinels are found in either flavour.
type Set struct {
	byText bool
	m      *linkedhashmap.Map
}

// NewSet creates an identity set containing exprs.
func NewSet(exprs ...*bnf.Expression) *Set {
	s := &Set{m: linkedhashmap.New()}
	for _, e := range exprs {
		s.Add(e)
	}
	return s
}

// NewTextSet creates a text set containing exprs.
func NewTextSet(exprs ...*bnf.Expression) *Set {
	s := &Set{byText: true, m: linkedhashmap.New()}
	for _, e := range exprs {
		s.Add(e)
	}
	return s
}

func (s *Set) key(e *bnf.Expression) interface{} {
	if s.byText {
		return e.Text()
	}
	return e
}

// IsTextSet is true if the set compares expressions by text.
func (s *Set) IsTextSet() bool {
	return s.byText
}

// Add adds an expression and returns true if it was not yet present.
func (s *Set) Add(e *bnf.Expression) bool {
	k := s.key(e)
	if _, found := s.m.Get(k); found {
		return false
	}
	s.m.Put(k, e)
	return true
}

// AddAll adds every expression of other.
func (s *Set) AddAll(other *Set) {
	for _, e := range other.Values() {
		s.Add(e)
	}
}

// Remove removes an expression and returns true if it was present.
func (s *Set) Remove(e *bnf.Expression) bool {
	k := s.key(e)
	if _, found := s.m.Get(k); !found {
		return false
	}
	s.m.Remove(k)
	return true
}

// RemoveAll removes every expression of other.
func (s *Set) RemoveAll(other *Set) {
	for _, e := range other.Values() {
		s.Remove(e)
	}
}

// RetainAll removes every expression not contained in other, as decided
// by other.
func (s *Set) RetainAll(other *Set) {
	for _, e := range s.Values() {
		if !other.Contains(e) {
			s.Remove(e)
		}
	}
}

// Contains is true if an expression (or, for text sets, an expression with
// equal text) is in the set.
func (s *Set) Contains(e *bnf.Expression) bool {
	_, found := s.m.Get(s.key(e))
	return found
}

// ContainsText is true if an expression with the given text is in the set.
func (s *Set) ContainsText(text string) bool {
	for _, e := range s.Values() {
		if e.Text() == text {
			return true
		}
	}
	return false
}

// Values returns the expressions in insertion order.
func (s *Set) Values() []*bnf.Expression {
	vals := s.m.Values()
	exprs := make([]*bnf.Expression, len(vals))
	for i, v := range vals {
		exprs[i] = v.(*bnf.Expression)
	}
	return exprs
}

// Size returns the number of expressions in the set.
func (s *Set) Size() int {
	return s.m.Size()
}

// Empty is true for a set without expressions.
func (s *Set) Empty() bool {
	return s.m.Empty()
}

// Clear removes all expressions.
func (s *Set) Clear() {
	s.m.Clear()
}

// Copy returns a set of the same flavour with the same expressions.
func (s *Set) Copy() *Set {
	c := &Set{byText: s.byText, m: linkedhashmap.New()}
	c.AddAll(s)
	return c
}

func (s *Set) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range s.Values() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.Text())
	}
	b.WriteByte('}')
	return b.String()
}

// --- Follow ----------------------------------------------------------------

// Follow is the result of a NEXT computation. It maps every follower
// expression to the reference the rule was entered by when the follower
// was found. The origin may be nil.
type Follow struct {
	m *linkedhashmap.Map
}

// NewFollow creates an empty follower map.
func NewFollow() *Follow {
	return &Follow{m: linkedhashmap.New()}
}

// Put records a follower together with its origin. An existing follower
// keeps its position but gets the new origin.
func (f *Follow) Put(e *bnf.Expression, origin *bnf.Expression) {
	f.m.Put(e, origin)
}

// Get returns the origin of a follower.
func (f *Follow) Get(e *bnf.Expression) (*bnf.Expression, bool) {
	v, found := f.m.Get(e)
	if !found {
		return nil, false
	}
	return v.(*bnf.Expression), true
}

// Contains is true if e is a follower.
func (f *Follow) Contains(e *bnf.Expression) bool {
	_, found := f.m.Get(e)
	return found
}

// Keys returns the followers in insertion order.
func (f *Follow) Keys() []*bnf.Expression {
	keys := f.m.Keys()
	exprs := make([]*bnf.Expression, len(keys))
	for i, k := range keys {
		exprs[i] = k.(*bnf.Expression)
	}
	return exprs
}

// KeySet returns the followers as an identity set.
func (f *Follow) KeySet() *Set {
	return NewSet(f.Keys()...)
}

// Size returns the number of followers.
func (f *Follow) Size() int {
	return f.m.Size()
}

// Empty is true if there are no followers.
func (f *Follow) Empty() bool {
	return f.m.Empty()
}
