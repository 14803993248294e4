// Package automaton compiles an elaborated vpa/ir.Grammar into a transition
// table: a mapping from state to a multi-alternative matcher plus one
// action per alternative.
package automaton

import "github.com/dekarrin/vpagen/vpa/regexmatch"

// State is a non-negative automaton state number. State 0 is always the
// epsilon-return hub; states 1..=N are nonterminal entry states; any other
// state is a builder-synthesized intermediate.
type State = int

// ActionKind discriminates the three transition kinds a state can take.
type ActionKind int

const (
	// ActionCall pushes Saved and transitions to Target.
	ActionCall ActionKind = iota

	// ActionNext transitions to Target without touching the stack.
	ActionNext

	// ActionReturn pops the stack and transitions to Returns[popped].
	ActionReturn
)

// TrailEntry is one (nonterminal, rule) pair in a Call/Next action's trail,
// used by the parser runtime to materialize the chain of parse-tree nodes
// implied by identifier-only rules. Nonterminal is the 0-based index into
// the originating ir.Grammar.Nonterminals slice (not the 1-based IR/state
// ID).
type TrailEntry struct {
	Nonterminal int
	Rule        int
}

// Action is the tagged union of the three transition kinds.
type Action struct {
	Kind ActionKind

	// Saved and Target are used by ActionCall; only Target is used by
	// ActionNext.
	Saved  State
	Target State

	// Trail is used by ActionCall and ActionNext.
	Trail []TrailEntry

	// Returns is used by ActionReturn: it maps a saved caller state (as
	// pushed by some ActionCall) to the state execution resumes in.
	Returns map[State]State
}

// StateEntry is one row of the transition table: a matcher and, in parallel,
// one Action per alternative the matcher can report.
type StateEntry struct {
	Matcher *regexmatch.Matcher
	Actions []Action
}

// Table is the compiled automaton: every reachable state's StateEntry, plus
// the nonterminal count needed to distinguish entry states from synthesized
// ones.
type Table struct {
	States          map[State]StateEntry
	NumNonterminals int
}
