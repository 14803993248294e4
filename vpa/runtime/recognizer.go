// Package runtime steps a compiled vpa/automaton.Table over input text in
// two modes: recognition (accept/reject, no tree), and parsing (accept/
// reject plus a parse tree and a size hint for its eventual translation).
// Grounded on original_source/src/recognizer/recognizer_automaton.rs.
package runtime

import "github.com/dekarrin/vpagen/vpa/automaton"

// Recognizer steps one compiled automaton over input text. It is not safe
// for concurrent use from multiple goroutines, but a single Recognizer can
// be reused across any number of sequential Recognize/Parse calls: both
// reset the stack and state to their initial values before returning.
type Recognizer struct {
	table *automaton.Table
	stack []automaton.State
	state automaton.State
}

// New creates a Recognizer for the given compiled transition table.
func New(table *automaton.Table) *Recognizer {
	return &Recognizer{table: table, state: 1}
}

// callKind distinguishes, on the runtime's own call_stack, a descent made to
// materialize an identifier-chain passthrough node from a descent made for
// an actual Nested call. Grounded on the Rust Call enum in
// recognizer_automaton.rs.
type callKind int

const (
	callNested callKind = iota
	callIdentifier
)

// step advances the automaton by one matched alternative against text. ok is
// false when the current state has no transition matching text's prefix (the
// input is rejected at this point) or there is no state transition defined
// for the current state at all.
type stepResult struct {
	kind       automaton.ActionKind
	trail      []automaton.TrailEntry
	rest       string
	captures   []capture
	matchIndex int
}

type capture struct {
	name  string
	value string
}

func (r *Recognizer) push(s automaton.State) {
	r.stack = append(r.stack, s)
}

func (r *Recognizer) pop() (automaton.State, bool) {
	if len(r.stack) == 0 {
		return 0, false
	}
	last := len(r.stack) - 1
	s := r.stack[last]
	r.stack = r.stack[:last]
	return s, true
}

func (r *Recognizer) step(text string) (stepResult, bool) {
	entry, ok := r.table.States[r.state]
	if !ok {
		return stepResult{}, false
	}

	idx, rest, matched, ok := entry.Matcher.Match(text)
	if !ok {
		return stepResult{}, false
	}

	action := entry.Actions[idx]
	switch action.Kind {
	case automaton.ActionCall:
		r.push(action.Saved)
		r.state = action.Target
	case automaton.ActionNext:
		r.state = action.Target
	case automaton.ActionReturn:
		orig, ok := r.pop()
		if !ok {
			return stepResult{}, false
		}
		next, ok := action.Returns[orig]
		if !ok {
			return stepResult{}, false
		}
		r.state = next
	}

	caps := make([]capture, len(matched))
	for i, c := range matched {
		caps[i] = capture{name: c.Name, value: c.Value}
	}

	return stepResult{
		kind:       action.Kind,
		trail:      action.Trail,
		rest:       rest,
		captures:   caps,
		matchIndex: idx,
	}, true
}

func (r *Recognizer) reset() {
	r.stack = nil
	r.state = 1
}

func (r *Recognizer) accepting() bool {
	return r.state == 0 && len(r.stack) == 0
}

// Recognize reports whether text belongs to the recognizer's language. It
// consumes no memory proportional to a parse tree: only whether the input is
// accepted is computed.
func (r *Recognizer) Recognize(text string) bool {
	rest := text
	for {
		res, ok := r.step(rest)
		if !ok {
			break
		}
		rest = res.rest
		if rest == "" {
			break
		}
	}
	accepted := r.accepting() && rest == ""
	r.reset()
	return accepted
}

// Parse recognizes text and, on acceptance, also returns its parse tree and
// a size hint: the total byte length of every leaf string in the tree (spec
// §4.5). ok is false when text is rejected; no tree or size hint is
// meaningful in that case.
func (r *Recognizer) Parse(text string) (tree *Node, sizeHint int, ok bool) {
	rest := text
	size := 0

	root := &Node{Identifier: 0, RuleNr: 0}
	current := root
	var callStack []callKind
	previousState := automaton.State(1)

	for {
		res, stepOK := r.step(rest)
		if !stepOK {
			break
		}
		rest = res.rest

		if previousState <= automaton.State(r.table.NumNonterminals) && previousState > 0 {
			current.RuleNr = res.matchIndex
		}

		switch res.kind {
		case automaton.ActionCall:
			for _, e := range res.trail[:len(res.trail)-1] {
				callStack = append(callStack, callIdentifier)
				current = current.addNode(e.Nonterminal, e.Rule)
			}
			last := res.trail[len(res.trail)-1]
			callStack = append(callStack, callNested)
			current = current.addNode(last.Nonterminal, last.Rule)

		case automaton.ActionNext:
			for i := len(res.trail) - 1; i >= 0; i-- {
				e := res.trail[i]
				callStack = append(callStack, callIdentifier)
				current = current.addNode(e.Nonterminal, e.Rule)
			}

		case automaton.ActionReturn:
			if len(callStack) > 0 {
				callStack = callStack[:len(callStack)-1]
			}
			if current.Parent == nil {
				r.reset()
				return nil, 0, false
			}
			current = current.Parent
		}

		for _, c := range res.captures {
			current.addLeaf(c.value)
			size += len(c.value)
		}

		if r.state == 0 {
			for len(callStack) > 0 && callStack[len(callStack)-1] == callIdentifier {
				callStack = callStack[:len(callStack)-1]
				if current.Parent == nil {
					r.reset()
					return nil, 0, false
				}
				current = current.Parent
			}
		}

		if rest == "" {
			break
		}
		previousState = r.state
	}

	accepted := r.accepting() && rest == ""
	r.reset()
	if !accepted {
		return nil, 0, false
	}
	return root, size, true
}
