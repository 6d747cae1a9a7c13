package audit

import (
	"sort"
	"strings"
)

// CodeSet is a set of course codes.
type CodeSet map[string]struct{}

func NewCodeSet(codes ...string) CodeSet {
	s := make(CodeSet, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

func (s CodeSet) Add(code string) {
	s[code] = struct{}{}
}

func (s CodeSet) Has(code string) bool {
	_, ok := s[code]
	return ok
}

func (s CodeSet) Len() int { return len(s) }

// Diff returns the codes of s that are not in o.
func (s CodeSet) Diff(o CodeSet) CodeSet {
	r := NewCodeSet()
	for c := range s {
		if !o.Has(c) {
			r.Add(c)
		}
	}
	return r
}

func (s CodeSet) Intersect(o CodeSet) CodeSet {
	r := NewCodeSet()
	for c := range s {
		if o.Has(c) {
			r.Add(c)
		}
	}
	return r
}

func (s CodeSet) Union(o CodeSet) CodeSet {
	r := make(CodeSet, len(s)+len(o))
	for c := range s {
		r.Add(c)
	}
	for c := range o {
		r.Add(c)
	}
	return r
}

// FilterPrefix keeps the codes starting with prefix. The match is
// case-sensitive, like the Jupiterp prefix filter. An empty prefix keeps
// everything.
func (s CodeSet) FilterPrefix(prefix string) CodeSet {
	if prefix == "" {
		return s
	}
	r := NewCodeSet()
	for c := range s {
		if strings.HasPrefix(c, prefix) {
			r.Add(c)
		}
	}
	return r
}

// Sorted returns the codes in ascending byte order.
func (s CodeSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
