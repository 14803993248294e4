// Package translate turns a vpa/runtime parse tree into output text by
// walking each node's Transform in the order its rule declared. Grounded
// on original_source/src/translator.rs's work-queue.
package translate

import (
	"github.com/dekarrin/vpagen/vpa/ir"
	"github.com/dekarrin/vpagen/vpa/runtime"
)

// actionKind distinguishes the two queue entries a node's Transform expands
// into. Grounded on translator.rs's TranslateAction enum.
type actionKind int

const (
	actionParent actionKind = iota
	actionEmitTransformItem
)

type action struct {
	kind actionKind
	item ir.TransformItem
}

// Translate walks tree, producing the output text its Transform items
// describe. grammar must be the same (or an equivalent) grammar the tree's
// automaton was compiled from: tree.Identifier/RuleNr index into it.
//
// terminalSize is a grammar-wide constant: the sum, over every rule's
// Transform in grammar, of every literal string's length. Passing it in
// lets a caller compute it once per grammar (it never changes across calls)
// instead of paying for the walk on every translation; vpa's facade package
// computes it once at construction time.
func Translate(grammar *ir.Grammar, tree *runtime.Node, leafSizeHint, terminalSize int) string {
	current := tree
	var out []byte
	if capacity := leafSizeHint + terminalSize; capacity > 0 {
		out = make([]byte, 0, capacity)
	}

	var queue []action
	queue = pushRuleItems(queue, grammar, current)

	for len(queue) > 0 {
		last := len(queue) - 1
		act := queue[last]
		queue = queue[:last]

		switch act.kind {
		case actionParent:
			current = current.Parent

		case actionEmitTransformItem:
			switch act.item.Kind {
			case ir.TransformLiteral:
				out = append(out, act.item.Literal...)
			case ir.TransformSlot:
				child, ok := current.ChildAt(act.item.Slot)
				if !ok {
					continue
				}
				if child.IsNode() {
					current = child.Node
					queue = pushRuleItems(queue, grammar, current)
				} else {
					out = append(out, child.Leaf...)
				}
			}
		}
	}

	return string(out)
}

// pushRuleItems pushes a Parent marker followed by node's rule's Transform
// items in reverse, so popping the queue (LIFO) yields them in forward
// declaration order, ending with the Parent marker that returns the walk to
// node's parent once its Transform is exhausted.
func pushRuleItems(queue []action, grammar *ir.Grammar, node *runtime.Node) []action {
	rule := grammar.Nonterminals[node.Identifier].Rules[node.RuleNr]

	queue = append(queue, action{kind: actionParent})
	items := rule.Transform.Items
	for i := len(items) - 1; i >= 0; i-- {
		queue = append(queue, action{kind: actionEmitTransformItem, item: items[i]})
	}
	return queue
}

// TerminalSize computes the grammar-wide constant described in Translate's
// doc comment.
func TerminalSize(grammar *ir.Grammar) int {
	total := 0
	for _, nt := range grammar.Nonterminals {
		for _, rule := range nt.Rules {
			for _, item := range rule.Transform.Items {
				if item.Kind == ir.TransformLiteral {
					total += len(item.Literal)
				}
			}
		}
	}
	return total
}
