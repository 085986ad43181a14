package analysis

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/firstnext/bnf"
)

// Render converts a result set into sorted display strings. Quoted literals
// are shown in single quotes, callees of external methods are prefixed
// with '#', everything else shows its text.
func (a *Analyzer) Render(s *Set) []string {
	set := treeset.NewWithStringComparator()
	for _, e := range s.Values() {
		set.Add(a.display(e))
	}
	vals := set.Values()
	strs := make([]string, len(vals))
	for i, v := range vals {
		strs[i] = v.(string)
	}
	return strs
}

func (a *Analyzer) display(e *bnf.Expression) string {
	text := e.Text()
	if e.Kind() == bnf.Literal && bnf.IsQuoted(text) {
		return "'" + text[1:len(text)-1] + "'"
	}
	if a.g.IsExternalReference(e) {
		return "#" + text
	}
	return text
}
