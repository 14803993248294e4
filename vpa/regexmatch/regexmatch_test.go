package regexmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Matcher_Match(t *testing.T) {
	testCases := []struct {
		name     string
		patterns []string
		input    string
		wantOK   bool
		wantIdx  int
		wantRest string
		wantCaps []Capture
	}{
		{
			name:     "single alternative, no captures",
			patterns: []string{"a"},
			input:    "abc",
			wantOK:   true,
			wantIdx:  0,
			wantRest: "bc",
		},
		{
			name:     "first-declared-wins on overlapping alternatives",
			patterns: []string{"a", "ab"},
			input:    "abc",
			wantOK:   true,
			wantIdx:  0,
			wantRest: "bc",
		},
		{
			name:     "later alternative chosen when earlier ones do not match",
			patterns: []string{"x", "a"},
			input:    "abc",
			wantOK:   true,
			wantIdx:  1,
			wantRest: "bc",
		},
		{
			name:     "no alternative matches",
			patterns: []string{"x", "y"},
			input:    "abc",
			wantOK:   false,
		},
		{
			name:     "named captures returned in declaration order",
			patterns: []string{`(?P<first>[a-z])(?P<second>[0-9])`},
			input:    "a1rest",
			wantOK:   true,
			wantIdx:  0,
			wantRest: "rest",
			wantCaps: []Capture{{Name: "first", Value: "a"}, {Name: "second", Value: "1"}},
		},
		{
			name:     "same capture name legal across different alternatives",
			patterns: []string{`(?P<v>x)`, `(?P<v>y)`},
			input:    "yrest",
			wantOK:   true,
			wantIdx:  1,
			wantRest: "rest",
			wantCaps: []Capture{{Name: "v", Value: "y"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			m, err := New(tc.patterns)
			if !assert.NoError(err) {
				return
			}

			idx, rest, caps, ok := m.Match(tc.input)
			assert.Equal(tc.wantOK, ok)
			if !tc.wantOK {
				return
			}
			assert.Equal(tc.wantIdx, idx)
			assert.Equal(tc.wantRest, rest)
			assert.Equal(tc.wantCaps, caps)
		})
	}
}

func Test_New_rejects_empty(t *testing.T) {
	assert := assert.New(t)

	_, err := New(nil)
	assert.Error(err)
}

func Test_New_rejects_bad_regex(t *testing.T) {
	assert := assert.New(t)

	_, err := New([]string{"("})
	assert.Error(err)
}

func Test_Matcher_Patterns_preserves_order(t *testing.T) {
	assert := assert.New(t)

	m, err := New([]string{"a", "b", "c"})
	if !assert.NoError(err) {
		return
	}
	assert.Equal([]string{"a", "b", "c"}, m.Patterns())
}
