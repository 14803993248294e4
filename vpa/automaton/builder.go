package automaton

import (
	"sort"

	"github.com/dekarrin/vpagen/vpa/ir"
	"github.com/dekarrin/vpagen/vpa/regexmatch"
	"github.com/dekarrin/vpagen/vpa/vpaerr"
)

// Build compiles grammar into a transition table. Nonterminals are
// processed in reverse declaration order so that every bare Identifier
// reference (which, by the forward-reference invariant, always points at a
// later-declared nonterminal) is already built by the time it needs to be
// inlined.
func Build(grammar *ir.Grammar) (*Table, error) {
	n := len(grammar.Nonterminals)
	b := &builder{
		grammar:      grammar,
		n:            n,
		state:        n + 1,
		epsilonRules: make(map[epsilonKey]State),
		states:       make(map[State]StateEntry),
	}

	for i := n - 1; i >= 0; i-- {
		if err := b.buildNonterminal(i); err != nil {
			return nil, err
		}
	}

	if err := b.buildEpsilonState(); err != nil {
		return nil, err
	}

	return &Table{States: b.states, NumNonterminals: n}, nil
}

// epsilonKey identifies one entry of the epsilon-rule map: a return symbol
// paired with the state that was saved when the matching call was taken.
type epsilonKey struct {
	returnSymbol string
	callerState  State
}

// builder holds the mutable state threaded through one compilation, mirroring
// original_source/src/recognizer/builder.rs's RecognizerBuilder.
type builder struct {
	grammar *ir.Grammar
	n       int // len(grammar.Nonterminals)

	// state is the next fresh state number to hand out. States 1..=n are
	// reserved for nonterminal entry states, so synthesized states start
	// at n+1 and only ever grow from there.
	state State

	epsilonRules map[epsilonKey]State
	states       map[State]StateEntry
}

// buildNonterminal builds every rule of nonterminal ntIndex (0-based) and
// then assembles its entry state: the coalesced matcher over every rule's
// first SourceItem, in declaration order, with one action per alternative.
func (b *builder) buildNonterminal(ntIndex int) error {
	nt := b.grammar.Nonterminals[ntIndex]

	exits := make([]State, len(nt.Rules))
	for ri, rule := range nt.Rules {
		exit, err := b.buildRule(ntIndex, rule)
		if err != nil {
			return err
		}
		exits[ri] = exit
	}

	var patterns []string
	var actions []Action

	for ri, rule := range nt.Rules {
		if len(rule.Source.Items) == 0 {
			return vpaerr.Build(nil, "nonterminal %d rule %d has an empty source", ntIndex+1, ri)
		}
		item0 := rule.Source.Items[0]

		switch item0.Kind {
		case ir.SourceRegex:
			next := exits[ri]
			patterns = append(patterns, item0.Regex)
			actions = append(actions, Action{Kind: ActionNext, Target: next, Trail: entryTrail(b.n, next)})

		case ir.SourceNested:
			target := item0.Nested.Nonterminal.Source
			caller := ntIndex + 1

			// The call is taken directly from this nonterminal's own entry
			// state, so the value saved for the later return is this
			// nonterminal's own entry id, and the value it must resume at
			// is this rule's exit state.
			b.epsilonRules[epsilonKey{item0.Nested.ReturnSymbol, caller}] = exits[ri]

			patterns = append(patterns, item0.Nested.CallSymbol)
			actions = append(actions, Action{
				Kind:   ActionCall,
				Saved:  caller,
				Target: target,
				Trail:  []TrailEntry{{Nonterminal: target - 1, Rule: 0}},
			})

		case ir.SourceIdentifier:
			target := item0.Ident.Source
			subPatterns, subActions, err := b.collectStartingRules(target - 1)
			if err != nil {
				return err
			}
			patterns = append(patterns, subPatterns...)
			actions = append(actions, subActions...)
		}
	}

	matcher, err := regexmatch.New(patterns)
	if err != nil {
		return err
	}
	b.states[ntIndex+1] = StateEntry{Matcher: matcher, Actions: actions}
	return nil
}

// entryTrail returns the single-entry trail a Next/Call action records when
// its target is itself a nonterminal entry state (so the runtime knows to
// materialize an intermediate identifier-chain node), or nil when the target
// is 0 (rule simply finished) or a synthesized non-entry state.
func entryTrail(n int, target State) []TrailEntry {
	if target <= n && target != 0 {
		return []TrailEntry{{Nonterminal: target - 1, Rule: 0}}
	}
	return nil
}

// buildRule builds every SourceItem but the first (which is handled by the
// caller, buildNonterminal, as part of the entry state) and returns the
// rule's exit state: the state execution resumes in once the whole rule has
// matched.
func (b *builder) buildRule(ntIndex int, rule ir.Rule) (State, error) {
	items := rule.Source.Items
	if len(items) == 0 {
		return 0, vpaerr.Build(nil, "nonterminal %d has a rule with no source items", ntIndex+1)
	}

	last := items[len(items)-1]

	var next State
	skipOne := false
	if last.Kind == ir.SourceIdentifier {
		skipOne = true
		if len(items) == 1 {
			next = 0
		} else {
			next = last.Ident.Source
		}
	}

	for i := len(items) - 1; i >= 1; i-- {
		if skipOne {
			skipOne = false
			continue
		}
		n, err := b.buildRuleItem(next, items[i])
		if err != nil {
			return 0, err
		}
		next = n
	}

	return next, nil
}

// buildRuleItem allocates a fresh state for one SourceItem that is not the
// first in its rule, wiring it to transition into next once matched.
func (b *builder) buildRuleItem(next State, item ir.SourceItem) (State, error) {
	switch item.Kind {
	case ir.SourceRegex:
		s := b.state
		b.state++

		matcher, err := regexmatch.New([]string{item.Regex})
		if err != nil {
			return 0, err
		}
		b.states[s] = StateEntry{
			Matcher: matcher,
			Actions: []Action{{Kind: ActionNext, Target: next, Trail: entryTrail(b.n, next)}},
		}
		return s, nil

	case ir.SourceNested:
		s := b.state
		b.state++

		b.epsilonRules[epsilonKey{item.Nested.ReturnSymbol, s}] = next

		matcher, err := regexmatch.New([]string{item.Nested.CallSymbol})
		if err != nil {
			return 0, err
		}
		target := item.Nested.Nonterminal.Source
		b.states[s] = StateEntry{
			Matcher: matcher,
			Actions: []Action{{
				Kind:   ActionCall,
				Saved:  s,
				Target: target,
				Trail:  []TrailEntry{{Nonterminal: target - 1, Rule: 0}},
			}},
		}
		return s, nil

	default:
		// checkForwardReferences/elaborate guarantee a bare Identifier is
		// only ever the last item of a rule, which buildRule never routes
		// here.
		return 0, vpaerr.Build(nil, "internal: identifier item outside of tail position")
	}
}

// collectStartingRules inlines targetIndex's (0-based) already-built entry
// alternatives into a calling rule's own starting alternatives, extending
// each action's trail with (targetIndex, r), where r is the rule of
// targetIndex that contributed that alternative, so the runtime can
// reconstruct the identifier chain it passed through. This implements spec
// §4.4's "identifier inlining" for a rule whose first SourceItem is a bare
// Identifier.
func (b *builder) collectStartingRules(targetIndex int) ([]string, []Action, error) {
	entry, ok := b.states[targetIndex+1]
	if !ok {
		return nil, nil, vpaerr.Build(nil, "internal: nonterminal %d not yet built during identifier inlining", targetIndex+1)
	}

	// ruleOf[i] is the rule of targetIndex that contributed entry alternative
	// i: one alternative per rule, except that a rule starting with a bare
	// identifier contributes every alternative of the nonterminal it inlines.
	var ruleOf []int
	for ri, rule := range b.grammar.Nonterminals[targetIndex].Rules {
		count := 1
		if item0 := rule.Source.Items[0]; item0.Kind == ir.SourceIdentifier {
			count = len(b.states[item0.Ident.Source].Actions)
		}
		for k := 0; k < count; k++ {
			ruleOf = append(ruleOf, ri)
		}
	}

	patterns := append([]string(nil), entry.Matcher.Patterns()...)
	actions := make([]Action, len(entry.Actions))
	for i, act := range entry.Actions {
		extended, err := appendTrail(act, targetIndex, ruleOf[i])
		if err != nil {
			return nil, nil, err
		}
		actions[i] = extended
	}
	return patterns, actions, nil
}

func appendTrail(a Action, ntIndex, ruleIndex int) (Action, error) {
	switch a.Kind {
	case ActionCall, ActionNext:
		trail := append(append([]TrailEntry(nil), a.Trail...), TrailEntry{Nonterminal: ntIndex, Rule: ruleIndex})
		out := a
		out.Trail = trail
		return out, nil
	default:
		return Action{}, vpaerr.Build(nil, "internal: a nonterminal's starting alternatives must never be a return action")
	}
}

// buildEpsilonState assembles state 0, the epsilon-return hub, from every
// (return symbol, caller state) -> next state entry recorded while building
// rules. Distinct return-symbol patterns become distinct alternatives of
// state 0's matcher; identical return-symbol patterns recorded from multiple
// call sites collapse into one alternative whose Return action demultiplexes
// by caller state.
func (b *builder) buildEpsilonState() error {
	if len(b.epsilonRules) == 0 {
		return nil
	}

	byReturn := make(map[string]map[State]State)
	for key, next := range b.epsilonRules {
		m, ok := byReturn[key.returnSymbol]
		if !ok {
			m = make(map[State]State)
			byReturn[key.returnSymbol] = m
		}
		m[key.callerState] = next
	}

	symbols := make([]string, 0, len(byReturn))
	for sym := range byReturn {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	patterns := make([]string, 0, len(symbols))
	actions := make([]Action, 0, len(symbols))
	for _, sym := range symbols {
		patterns = append(patterns, sym)
		actions = append(actions, Action{Kind: ActionReturn, Returns: byReturn[sym]})
	}

	matcher, err := regexmatch.New(patterns)
	if err != nil {
		return err
	}
	b.states[0] = StateEntry{Matcher: matcher, Actions: actions}
	return nil
}
