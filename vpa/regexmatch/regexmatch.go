// Package regexmatch implements a multi-alternative regex matcher: N pattern
// strings are coalesced into a single anchored regex so that a prefix match
// against any alternative costs one stdlib regexp match regardless of how
// many alternatives there are, with a deterministic, first-declared-wins
// tie-break when more than one alternative could match.
//
// Go's regexp package compiles a pattern containing two capture groups with
// the same name, but a lookup by name cannot then tell which group is
// meant, and two grammar rules are free to both declare a capture named
// e.g. "value".
// To keep the captures of different alternatives apart while still
// compiling to one stdlib regexp, every alternative's named captures are qualified with a
// per-alternative-unique prefix before the patterns are coalesced, and
// unqualified again when captures are reported back to the caller. This
// rewriting is purely internal bookkeeping; it is invisible to every other
// package in this module.
package regexmatch

import (
	"fmt"
	"regexp"

	"github.com/dekarrin/vpagen/vpa/vpaerr"
)

// altGroupPrefix names the synthetic capture group wrapping alternative i.
const altGroupPrefix = "alt__"

// namedCapture matches a named capture group opener, e.g. "(?P<value>".
var namedCapture = regexp.MustCompile(`\(\?P<([A-Za-z_][A-Za-z0-9_]*)>`)

// Matcher combines a set of alternative regex patterns into a single
// anchored regex and reports, for a successful match, which alternative
// matched and its named captures.
type Matcher struct {
	re       *regexp.Regexp
	patterns []string // original pattern strings, in declaration order

	// qualifiedToOriginal maps each synthetic qualified group name (unique
	// across the whole combined regex) back to the user-declared name it
	// came from, scoped per alternative.
	qualifiedToOriginal [][2]string // flattened (qualified, original) pairs, grouped by alternative, in no particular order within one
	captureNames        [][]string  // per-alternative, qualified capture names in declaration order
}

// New builds a Matcher from the given alternative patterns, in declaration
// order. patterns must be non-empty.
func New(patterns []string) (*Matcher, error) {
	if len(patterns) == 0 {
		return nil, vpaerr.Build(fmt.Errorf("no alternatives given"), "cannot build a matcher with zero alternatives")
	}

	captureNames := make([][]string, len(patterns))
	qualifiedNames := make([]map[string]string, len(patterns)) // qualified -> original, per alternative

	combined := "^("
	for i, p := range patterns {
		qualifiedNames[i] = make(map[string]string)
		qualified := qualifyNames(p, i, captureNames, qualifiedNames[i])

		if _, err := regexp.Compile(p); err != nil {
			return nil, vpaerr.Build(err, "alternative %d regex %q does not compile", i, p)
		}

		if i > 0 {
			combined += "|"
		}
		combined += fmt.Sprintf("(?P<%s%d>%s)", altGroupPrefix, i, qualified)
	}
	combined += ")"

	re, err := regexp.Compile(combined)
	if err != nil {
		return nil, vpaerr.Build(err, "combined alternation of %d patterns does not compile", len(patterns))
	}

	m := &Matcher{
		re:           re,
		patterns:     patterns,
		captureNames: captureNames,
	}
	for i, names := range qualifiedNames {
		for qualified, original := range names {
			_ = i
			m.qualifiedToOriginal = append(m.qualifiedToOriginal, [2]string{qualified, original})
		}
	}
	return m, nil
}

// qualifyNames rewrites every "(?P<name>" in p to a qualified name unique to
// alternative i, recording the qualified name (in declaration order) into
// captureNames[i] and the qualified->original mapping into out.
func qualifyNames(p string, i int, captureNames [][]string, out map[string]string) string {
	return namedCapture.ReplaceAllStringFunc(p, func(match string) string {
		name := match[len("(?P<") : len(match)-1]
		qualified := fmt.Sprintf("c%d__%s", i, name)
		captureNames[i] = append(captureNames[i], qualified)
		out[qualified] = name
		return "(?P<" + qualified + ">"
	})
}

// Patterns returns the original alternative patterns, in declaration order.
func (m *Matcher) Patterns() []string {
	return m.patterns
}

// Capture is one named capture from a matched alternative, in the order its
// group opens in the alternative's original pattern text. Preserving
// declaration order (rather than, say, handing captures back in a map) lets
// callers line a regex item's captures up with the transform slots
// vpa/elaborate assigned them in the same left-to-right order.
type Capture struct {
	Name  string
	Value string
}

// Match attempts a prefix match of text against the combined alternation. If
// more than one alternative could match the same prefix, the smallest index
// wins: a deterministic, non-ambiguity-checked tie-break.
//
// On success it returns the index of the matching alternative, the remainder
// of text with the matched prefix removed, and the user-named captures
// declared by that alternative in declaration order (captures from other
// alternatives are never returned, even if present in the overall match
// object).
func (m *Matcher) Match(text string) (index int, rest string, captures []Capture, ok bool) {
	loc := m.re.FindStringSubmatchIndex(text)
	if loc == nil {
		return 0, "", nil, false
	}

	names := m.re.SubexpNames()
	groupIndex := make(map[string]int, len(names))
	for gi, n := range names {
		if n != "" {
			groupIndex[n] = gi
		}
	}

	for i := range m.patterns {
		gi, ok := groupIndex[fmt.Sprintf("%s%d", altGroupPrefix, i)]
		if !ok || loc[2*gi] < 0 {
			continue
		}
		end := loc[2*gi+1]

		captures = make([]Capture, 0, len(m.captureNames[i]))
		for _, qualified := range m.captureNames[i] {
			qgi, ok := groupIndex[qualified]
			if !ok || loc[2*qgi] < 0 {
				continue
			}
			original := m.originalName(qualified)
			captures = append(captures, Capture{Name: original, Value: text[loc[2*qgi]:loc[2*qgi+1]]})
		}
		return i, text[end:], captures, true
	}

	return 0, "", nil, false
}

func (m *Matcher) originalName(qualified string) string {
	for _, pair := range m.qualifiedToOriginal {
		if pair[0] == qualified {
			return pair[1]
		}
	}
	return qualified
}
