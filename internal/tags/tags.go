// Package tags normalizes the free-form string lists carried by profiles,
// modules and terms (interests, term history, prerequisites, related terms).
package tags

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	MaxItems   = 50
	MaxItemLen = 128
)

var (
	ErrTooMany     = errors.New("too many items")
	ErrItemTooLong = errors.New("item too long")
)

// List is an ordered set of strings: insertion order is kept, blanks and
// repeats are dropped.
type List []string

// New builds a List from raw values, trimming whitespace and dropping empty
// strings and duplicates. Matching is exact after trimming.
func New(values []string) List {
	out := make(List, 0, len(values))
	for _, v := range values {
		out = out.Add(v)
	}
	return out
}

// Contains reports whether v (trimmed) is present.
func (l List) Contains(v string) bool {
	v = strings.TrimSpace(v)
	for _, it := range l {
		if it == v {
			return true
		}
	}
	return false
}

// Add appends v unless it is blank or already present.
func (l List) Add(v string) List {
	v = strings.TrimSpace(v)
	if v == "" || l.Contains(v) {
		return l
	}
	return append(l, v)
}

// Merge appends the members of other that are not yet present.
func (l List) Merge(other List) List {
	for _, v := range other {
		l = l.Add(v)
	}
	return l
}

// Validate enforces the item count and per-item length limits.
func (l List) Validate() error {
	if len(l) > MaxItems {
		return ErrTooMany
	}
	for _, v := range l {
		if utf8.RuneCountInString(v) > MaxItemLen {
			return ErrItemTooLong
		}
	}
	return nil
}

// Strings returns the list as a plain, never-nil slice.
func (l List) Strings() []string {
	if l == nil {
		return []string{}
	}
	return []string(l)
}

// Normalize is shorthand for New(values).Strings() plus validation.
func Normalize(values []string) ([]string, error) {
	l := New(values)
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l.Strings(), nil
}
