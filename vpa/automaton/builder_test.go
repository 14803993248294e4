package automaton

import (
	"testing"

	"github.com/dekarrin/vpagen/vpa/ir"
	"github.com/stretchr/testify/assert"
)

// nestedBracketGrammar is a nested-bracket-matching grammar expressed
// directly in IR form:
//
//	N:
//	  ["\(" N=N "\)"] -> "[" N "]"
//	  "a" -> "a"
func nestedBracketGrammar() *ir.Grammar {
	return &ir.Grammar{Nonterminals: []ir.Nonterminal{
		{ID: 1, Rules: []ir.Rule{
			{
				Source: ir.Source{Items: []ir.SourceItem{{
					Kind: ir.SourceNested,
					Nested: ir.Nested{
						CallSymbol:   `\(`,
						ReturnSymbol: `\)`,
						Nonterminal:  ir.Identifier{Source: 1, Slot: 0},
					},
				}}},
				Transform: ir.Transform{Items: []ir.TransformItem{
					{Kind: ir.TransformLiteral, Literal: "["},
					{Kind: ir.TransformSlot, Slot: 0},
					{Kind: ir.TransformLiteral, Literal: "]"},
				}},
			},
			{
				Source:    ir.Source{Items: []ir.SourceItem{{Kind: ir.SourceRegex, Regex: "a"}}},
				Transform: ir.Transform{Items: []ir.TransformItem{{Kind: ir.TransformLiteral, Literal: "a"}}},
			},
		}},
	}}
}

func Test_Build_nested_bracket_epsilon_key_uses_entry_state(t *testing.T) {
	assert := assert.New(t)

	table, err := Build(nestedBracketGrammar())
	if !assert.NoError(err) {
		return
	}

	// The epsilon-return hub (state 0) must carry a Return action whose map
	// is keyed by N's own entry state (1), since the Nested item is rule 0's
	// first (and only) SourceItem: the call is taken directly from state 1,
	// so the value saved for the later return is state 1, not some
	// synthesized "callee+1" state no Call action ever actually pushes.
	hub, ok := table.States[0]
	if !assert.True(ok) {
		return
	}
	if !assert.Len(hub.Actions, 1) {
		return
	}
	assert.Equal(ActionReturn, hub.Actions[0].Kind)
	next, ok := hub.Actions[0].Returns[1]
	assert.True(ok, "epsilon map must have an entry keyed by state 1")
	assert.Equal(0, next) // rule 0's exit state: the rule has nothing after the Nested item
}

func Test_Build_fresh_states_start_after_nonterminal_count(t *testing.T) {
	assert := assert.New(t)

	// A chain where reg0's rule is a bare regex, reg1's rule has a second
	// Source item (forcing one synthesized state), over 2 nonterminals:
	// fresh states must start at 3, never colliding with states 1 or 2.
	grammar := &ir.Grammar{Nonterminals: []ir.Nonterminal{
		{ID: 1, Rules: []ir.Rule{{
			Source: ir.Source{Items: []ir.SourceItem{
				{Kind: ir.SourceRegex, Regex: "b"},
				{Kind: ir.SourceRegex, Regex: "c"},
			}},
			Transform: ir.Transform{Items: []ir.TransformItem{{Kind: ir.TransformLiteral, Literal: "bc"}}},
		}}},
		{ID: 2, Rules: []ir.Rule{{
			Source:    ir.Source{Items: []ir.SourceItem{{Kind: ir.SourceRegex, Regex: "a"}}},
			Transform: ir.Transform{Items: []ir.TransformItem{{Kind: ir.TransformLiteral, Literal: "a"}}},
		}}},
	}}

	table, err := Build(grammar)
	if !assert.NoError(err) {
		return
	}

	_, hasEntry1 := table.States[1]
	_, hasEntry2 := table.States[2]
	_, hasThree := table.States[3]
	assert.True(hasEntry1, "nonterminal 1's entry state")
	assert.True(hasEntry2, "nonterminal 2's entry state")
	assert.True(hasThree, "the synthesized state for the first rule's second source item should be numbered 3 (N+1), not 1")
}

func Test_Build_rejects_empty_source(t *testing.T) {
	assert := assert.New(t)

	grammar := &ir.Grammar{Nonterminals: []ir.Nonterminal{
		{ID: 1, Rules: []ir.Rule{{Source: ir.Source{}, Transform: ir.Transform{}}}},
	}}

	_, err := Build(grammar)
	assert.Error(err)
}
