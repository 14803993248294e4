package util

import (
	"fmt"
	"sort"
	"strings"
)

// StringSet is a map[string]bool with methods added for set-like use. It is
// used by vpa/elaborate to remember which bindings a rule's Transform has
// already named, so that a binding named twice is caught.
type StringSet map[string]bool

// NewStringSet creates an empty StringSet, optionally seeded from existing
// string-keyed maps.
func NewStringSet(of ...map[string]bool) StringSet {
	s := StringSet{}
	for _, m := range of {
		for k := range m {
			s.Add(k)
		}
	}
	return s
}

// Has returns whether value is in the set.
func (s StringSet) Has(value string) bool {
	_, has := s[value]
	return has
}

// Add adds value to the set. No effect if it is already present.
func (s StringSet) Add(value string) {
	s[value] = true
}

// Remove removes value from the set. No effect if it is not present.
func (s StringSet) Remove(value string) {
	delete(s, value)
}

// Len returns the number of elements in the set.
func (s StringSet) Len() int {
	return len(s)
}

// Elements returns the set's contents as a slice, in no particular order.
func (s StringSet) Elements() []string {
	if s == nil {
		return nil
	}
	sl := make([]string, 0, len(s))
	for item := range s {
		sl = append(sl, item)
	}
	return sl
}

// StringOrdered shows the contents of the set, alphabetized.
func (s StringSet) StringOrdered() string {
	convs := s.Elements()
	sort.Strings(convs)

	var sb strings.Builder
	sb.WriteRune('{')
	for i := range convs {
		sb.WriteString(convs[i])
		if i+1 < len(convs) {
			sb.WriteString(", ")
		}
	}
	sb.WriteRune('}')
	return sb.String()
}

// String shows the contents of the set, in no particular order.
func (s StringSet) String() string {
	var sb strings.Builder
	sb.WriteRune('{')
	i, total := 0, s.Len()
	for k := range s {
		sb.WriteString(fmt.Sprintf("%v", k))
		i++
		if i < total {
			sb.WriteString(", ")
		}
	}
	sb.WriteRune('}')
	return sb.String()
}
