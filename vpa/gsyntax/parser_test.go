package gsyntax

import (
	"testing"

	"github.com/dekarrin/vpagen/vpa/ast"
	"github.com/stretchr/testify/assert"
)

func Test_Parse(t *testing.T) {
	testCases := []struct {
		name   string
		src    string
		expect ast.Grammar
	}{
		{
			name: "trivial language",
			src: `S:
				"a" -> "a"
			`,
			expect: ast.Grammar{Nonterminals: []ast.Nonterminal{
				{Name: "S", Rules: []ast.Rule{
					{
						Source:    ast.Source{Items: []ast.SourceItem{{Kind: ast.SourceRegex, Regex: "a"}}},
						Transform: ast.Transform{Items: []ast.TransformItem{{Kind: ast.TransformLiteral, Literal: "a"}}},
					},
				}},
			}},
		},
		{
			name: "regular chain, multiple nonterminals",
			src: `reg2:
				"c" reg1=reg1 -> reg1 "c"
			reg1:
				"b" reg0=reg0 -> reg0 "b"
			reg0:
				"a" -> "a"
			`,
			expect: ast.Grammar{Nonterminals: []ast.Nonterminal{
				{Name: "reg2", Rules: []ast.Rule{{
					Source: ast.Source{Items: []ast.SourceItem{
						{Kind: ast.SourceRegex, Regex: "c"},
						{Kind: ast.SourceIdentifier, Ident: ast.Identifier{Internal: "reg1", External: "reg1"}},
					}},
					Transform: ast.Transform{Items: []ast.TransformItem{
						{Kind: ast.TransformBinding, Binding: "reg1"},
						{Kind: ast.TransformLiteral, Literal: "c"},
					}},
				}}},
				{Name: "reg1", Rules: []ast.Rule{{
					Source: ast.Source{Items: []ast.SourceItem{
						{Kind: ast.SourceRegex, Regex: "b"},
						{Kind: ast.SourceIdentifier, Ident: ast.Identifier{Internal: "reg0", External: "reg0"}},
					}},
					Transform: ast.Transform{Items: []ast.TransformItem{
						{Kind: ast.TransformBinding, Binding: "reg0"},
						{Kind: ast.TransformLiteral, Literal: "b"},
					}},
				}}},
				{Name: "reg0", Rules: []ast.Rule{{
					Source:    ast.Source{Items: []ast.SourceItem{{Kind: ast.SourceRegex, Regex: "a"}}},
					Transform: ast.Transform{Items: []ast.TransformItem{{Kind: ast.TransformLiteral, Literal: "a"}}},
				}}},
			}},
		},
		{
			name: "nested balance, two rules under one nonterminal",
			src: `N:
				["\(" N=N "\)"] -> "[" N "]"
				"a" -> "a"
			`,
			expect: ast.Grammar{Nonterminals: []ast.Nonterminal{
				{Name: "N", Rules: []ast.Rule{
					{
						Source: ast.Source{Items: []ast.SourceItem{{
							Kind: ast.SourceNested,
							Nested: ast.Nested{
								CallSymbol:   `\(`,
								Rule:         ast.Identifier{Internal: "N", External: "N"},
								ReturnSymbol: `\)`,
							},
						}}},
						Transform: ast.Transform{Items: []ast.TransformItem{
							{Kind: ast.TransformLiteral, Literal: "["},
							{Kind: ast.TransformBinding, Binding: "N"},
							{Kind: ast.TransformLiteral, Literal: "]"},
						}},
					},
					{
						Source:    ast.Source{Items: []ast.SourceItem{{Kind: ast.SourceRegex, Regex: "a"}}},
						Transform: ast.Transform{Items: []ast.TransformItem{{Kind: ast.TransformLiteral, Literal: "a"}}},
					},
				}},
			}},
		},
		{
			name: "multi-rule nonterminal, later rule's source starts with a bare identifier",
			src: `M:
				"x" -> "x"
				A=A -> A
			A:
				"y" -> "y"
			`,
			expect: ast.Grammar{Nonterminals: []ast.Nonterminal{
				{Name: "M", Rules: []ast.Rule{
					{
						Source:    ast.Source{Items: []ast.SourceItem{{Kind: ast.SourceRegex, Regex: "x"}}},
						Transform: ast.Transform{Items: []ast.TransformItem{{Kind: ast.TransformLiteral, Literal: "x"}}},
					},
					{
						Source:    ast.Source{Items: []ast.SourceItem{{Kind: ast.SourceIdentifier, Ident: ast.Identifier{Internal: "A", External: "A"}}}},
						Transform: ast.Transform{Items: []ast.TransformItem{{Kind: ast.TransformBinding, Binding: "A"}}},
					},
				}},
				{Name: "A", Rules: []ast.Rule{{
					Source:    ast.Source{Items: []ast.SourceItem{{Kind: ast.SourceRegex, Regex: "y"}}},
					Transform: ast.Transform{Items: []ast.TransformItem{{Kind: ast.TransformLiteral, Literal: "y"}}},
				}}},
			}},
		},
		{
			name: "identifier binding",
			src: `S:
				A=A -> A
			A:
				"x" -> "x"
			`,
			expect: ast.Grammar{Nonterminals: []ast.Nonterminal{
				{Name: "S", Rules: []ast.Rule{{
					Source:    ast.Source{Items: []ast.SourceItem{{Kind: ast.SourceIdentifier, Ident: ast.Identifier{Internal: "A", External: "A"}}}},
					Transform: ast.Transform{Items: []ast.TransformItem{{Kind: ast.TransformBinding, Binding: "A"}}},
				}}},
				{Name: "A", Rules: []ast.Rule{{
					Source:    ast.Source{Items: []ast.SourceItem{{Kind: ast.SourceRegex, Regex: "x"}}},
					Transform: ast.Transform{Items: []ast.TransformItem{{Kind: ast.TransformLiteral, Literal: "x"}}},
				}}},
			}},
		},
		{
			name: "duplicate named captures in one rule parse fine; rejection is elaborate's job",
			src: `S:
				"(?P<a>x)" "(?P<a>x)" -> a a
			`,
			expect: ast.Grammar{Nonterminals: []ast.Nonterminal{
				{Name: "S", Rules: []ast.Rule{{
					Source: ast.Source{Items: []ast.SourceItem{
						{Kind: ast.SourceRegex, Regex: "(?P<a>x)"},
						{Kind: ast.SourceRegex, Regex: "(?P<a>x)"},
					}},
					Transform: ast.Transform{Items: []ast.TransformItem{
						{Kind: ast.TransformBinding, Binding: "a"},
						{Kind: ast.TransformBinding, Binding: "a"},
					}},
				}}},
			}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := Parse(tc.src)
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Parse_errors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{name: "empty input", src: ""},
		{name: "nonterminal with no rules", src: "S:\n"},
		{name: "unterminated string", src: `S:
			"a -> "a"`},
		{name: "missing arrow", src: `S:
			"a" "a"`},
		{name: "unterminated escape sequence at eof", src: "S:\n\t\t\t\"a\\"},
		{name: "unexpected character", src: "S: & -> \"a\""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			_, err := Parse(tc.src)
			assert.Error(err)
		})
	}
}
