// Package ir holds the numeric-ID-indexed form of a grammar, ready for
// compilation by vpa/automaton. It is produced exclusively by vpa/elaborate,
// which has already checked that the grammar obeys every invariant in spec
// §3; nothing in this package re-validates those invariants.
package ir

// ID identifies a nonterminal. IDs are dense and start at 1; see Grammar.
type ID = int

// Grammar is the elaborated form of an ast.Grammar: nonterminals are
// numbered 1..=N in declaration order and every binding reference has been
// resolved to a (nonterminal ID, transform slot) pair.
type Grammar struct {
	Nonterminals []Nonterminal
}

// Nonterminal is a renumbered nonterminal. ID is its 1-based declaration
// position; it doubles as the automaton state number for this nonterminal's
// entry state (see vpa/automaton).
type Nonterminal struct {
	ID    ID
	Rules []Rule
}

// Rule is a Source -> Transform production with all bindings resolved to
// slot indices.
type Rule struct {
	Source    Source
	Transform Transform
}

// Source is the elaborated form of ast.Source.
type Source struct {
	Items []SourceItem
}

// SourceItemKind mirrors ast.SourceItemKind.
type SourceItemKind int

const (
	SourceRegex SourceItemKind = iota
	SourceIdentifier
	SourceNested
)

// SourceItem is one elaborated Source element.
type SourceItem struct {
	Kind   SourceItemKind
	Regex  string
	Ident  Identifier
	Nested Nested
}

// Identifier is a resolved reference to another nonterminal: Source is the
// referenced nonterminal's ID, and Slot is the position of this binding
// within the rule's flattened capture list (every regex named capture,
// Identifier binding, and Nested binding in declaration order).
type Identifier struct {
	Source ID
	Slot   int
}

// Nested is the elaborated form of ast.Nested.
type Nested struct {
	CallSymbol   string
	ReturnSymbol string
	Nonterminal  Identifier
}

// Transform is the elaborated form of ast.Transform.
type Transform struct {
	Items []TransformItem
}

// TransformItemKind mirrors ast.TransformItemKind.
type TransformItemKind int

const (
	TransformLiteral TransformItemKind = iota
	TransformSlot
)

// TransformItem is one elaborated Transform element: either a literal string
// or the slot index of the binding it refers to.
type TransformItem struct {
	Kind    TransformItemKind
	Literal string
	Slot    int
}
