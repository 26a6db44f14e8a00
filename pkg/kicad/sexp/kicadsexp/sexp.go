// Package kicadsexp is a small streaming S-expression reader for KiCad board
// files. Every node remembers the line it started on so callers can point
// back into the original text.
package kicadsexp

import (
	"io"
	"strings"
)

// Sexp is either an *Atom or a *List
type Sexp interface {
	IsLeaf() bool
	Line() int
	String() string
}

// Atom is a symbol, number or string
type Atom struct {
	Value  string
	Quoted bool
	line   int
}

func (a *Atom) IsLeaf() bool { return true }
func (a *Atom) Line() int    { return a.line }

func (a *Atom) String() string {
	if a.Quoted {
		return `"` + strings.ReplaceAll(a.Value, `"`, `\"`) + `"`
	}
	return a.Value
}

// List is a parenthesized sequence of nodes
type List struct {
	Items []Sexp
	line  int
}

func (l *List) IsLeaf() bool { return false }
func (l *List) Line() int    { return l.line }

func (l *List) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, item := range l.Items {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(item.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Len returns the number of items in the list
func (l *List) Len() int { return len(l.Items) }

// Get returns the item at index, or nil when out of range
func (l *List) Get(index int) Sexp {
	if index < 0 || index >= len(l.Items) {
		return nil
	}
	return l.Items[index]
}

// Name returns the leading symbol of the list, e.g. "footprint" for
// (footprint ...). It is empty when the list is empty or starts with a list.
func (l *List) Name() string {
	if a, ok := l.Get(0).(*Atom); ok && !a.Quoted {
		return a.Value
	}
	return ""
}

// AtomAt returns the value of the atom at index
func (l *List) AtomAt(index int) (string, bool) {
	if a, ok := l.Get(index).(*Atom); ok {
		return a.Value, true
	}
	return "", false
}

// Children returns the direct sub-lists named name
func (l *List) Children(name string) []*List {
	var out []*List
	for _, item := range l.Items {
		if sub, ok := item.(*List); ok && sub.Name() == name {
			out = append(out, sub)
		}
	}
	return out
}

// Child returns the first direct sub-list named name
func (l *List) Child(name string) (*List, bool) {
	for _, item := range l.Items {
		if sub, ok := item.(*List); ok && sub.Name() == name {
			return sub, true
		}
	}
	return nil, false
}

// Walk calls fn for l and every nested list, depth first. Returning false
// from fn skips that list's children.
func (l *List) Walk(fn func(*List) bool) {
	if !fn(l) {
		return
	}
	for _, item := range l.Items {
		if sub, ok := item.(*List); ok {
			sub.Walk(fn)
		}
	}
}

// Parse reads every top-level expression from r
func Parse(r io.Reader) ([]Sexp, error) {
	return NewParser(r).ParseAll()
}

// ParseString reads every top-level expression from s
func ParseString(s string) ([]Sexp, error) {
	return Parse(strings.NewReader(s))
}
