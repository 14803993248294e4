package translate

import (
	"testing"

	"github.com/dekarrin/vpagen/vpa/ir"
	"github.com/dekarrin/vpagen/vpa/runtime"
	"github.com/stretchr/testify/assert"
)

func Test_Translate_literal_and_slot(t *testing.T) {
	assert := assert.New(t)

	grammar := &ir.Grammar{Nonterminals: []ir.Nonterminal{
		{ID: 1, Rules: []ir.Rule{{
			Transform: ir.Transform{Items: []ir.TransformItem{
				{Kind: ir.TransformLiteral, Literal: "["},
				{Kind: ir.TransformSlot, Slot: 0},
				{Kind: ir.TransformLiteral, Literal: "]"},
			}},
		}}},
	}}

	root := &runtime.Node{Identifier: 0, RuleNr: 0}
	root.Children = []runtime.Child{{Leaf: "x"}}

	got := Translate(grammar, root, len("x"), TerminalSize(grammar))
	assert.Equal("[x]", got)
}

func Test_Translate_nested_node_slot(t *testing.T) {
	assert := assert.New(t)

	grammar := &ir.Grammar{Nonterminals: []ir.Nonterminal{
		{ID: 1, Rules: []ir.Rule{{
			Transform: ir.Transform{Items: []ir.TransformItem{
				{Kind: ir.TransformLiteral, Literal: "["},
				{Kind: ir.TransformSlot, Slot: 0},
				{Kind: ir.TransformLiteral, Literal: "]"},
			}},
		}}},
	}}

	root := &runtime.Node{Identifier: 0, RuleNr: 0}
	child := &runtime.Node{Identifier: 0, RuleNr: 0, Parent: root}
	child.Children = []runtime.Child{{Leaf: "y"}}
	root.Children = []runtime.Child{{Node: child}}

	// Reuse the same single-rule grammar for both levels: the child's
	// Transform is "[", slot(0), "]" too, so the expected output nests once.
	got := Translate(grammar, root, len("y"), TerminalSize(grammar))
	assert.Equal("[[y]]", got)
}

func Test_TerminalSize_sums_literals_across_every_rule(t *testing.T) {
	assert := assert.New(t)

	grammar := &ir.Grammar{Nonterminals: []ir.Nonterminal{
		{ID: 1, Rules: []ir.Rule{
			{Transform: ir.Transform{Items: []ir.TransformItem{
				{Kind: ir.TransformLiteral, Literal: "ab"},
				{Kind: ir.TransformSlot, Slot: 0},
			}}},
			{Transform: ir.Transform{Items: []ir.TransformItem{
				{Kind: ir.TransformLiteral, Literal: "c"},
			}}},
		}},
		{ID: 2, Rules: []ir.Rule{
			{Transform: ir.Transform{Items: []ir.TransformItem{
				{Kind: ir.TransformLiteral, Literal: "de"},
			}}},
		}},
	}}

	assert.Equal(len("ab")+len("c")+len("de"), TerminalSize(grammar))
}
