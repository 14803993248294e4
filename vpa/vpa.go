// Package vpa is the public facade for building and running visibly
// pushdown language recognizers and translators from grammar text. It wires
// the sub-packages together in pipeline order:
//
//	gsyntax.Parse -> elaborate.Elaborate -> automaton.Build -> runtime/translate
//
// Mirrors the top-level constructor shape of internal/ictiobus/ictiobus.go's
// NewLexer/NewParser, adapted to this package's two concrete products
// instead of ictiobus's general lexer/parser interfaces: a VPL has no
// alternate lexer or SDD implementations to select between, so there is
// nothing for an interface to abstract over here.
package vpa

import (
	"github.com/dekarrin/vpagen/vpa/automaton"
	"github.com/dekarrin/vpagen/vpa/elaborate"
	"github.com/dekarrin/vpagen/vpa/gsyntax"
	"github.com/dekarrin/vpagen/vpa/ir"
	"github.com/dekarrin/vpagen/vpa/runtime"
	"github.com/dekarrin/vpagen/vpa/translate"
)

// ParseTree is the parse tree a Recognizer's Parse method returns: an
// internal node carrying the (nonterminal, rule) pair that produced it and
// its ordered children, each either a further ParseTree or a leaf string.
type ParseTree = runtime.Node

// build runs the full grammar_text -> automaton pipeline shared by
// NewRecognizer and NewTranslator. Errors are whatever gsyntax, elaborate,
// or automaton returned: a *vpaerr.SyntaxError, *vpaerr.ValidationError, or
// *vpaerr.BuildError respectively.
func build(grammarText string) (*ir.Grammar, *automaton.Table, error) {
	tree, err := gsyntax.Parse(grammarText)
	if err != nil {
		return nil, nil, err
	}

	grammar, err := elaborate.Elaborate(tree)
	if err != nil {
		return nil, nil, err
	}

	table, err := automaton.Build(grammar)
	if err != nil {
		return nil, nil, err
	}

	return grammar, table, nil
}

// Recognizer recognizes and parses input text against one compiled grammar.
// A Recognizer is safe to call Recognize and Parse on repeatedly and
// concurrently: each call runs against a freshly constructed runtime
// stepper, so no mutable state is shared across calls.
type Recognizer struct {
	table *automaton.Table
}

// NewRecognizer parses, validates, and compiles grammarText into a
// Recognizer.
func NewRecognizer(grammarText string) (*Recognizer, error) {
	_, table, err := build(grammarText)
	if err != nil {
		return nil, err
	}
	return &Recognizer{table: table}, nil
}

// Recognize reports whether input belongs to the language r was built from.
func (r *Recognizer) Recognize(input string) bool {
	return runtime.New(r.table).Recognize(input)
}

// Parse recognizes input and, on acceptance, also returns its parse tree and
// a size hint: the total byte length of every leaf string in the tree. ok is
// false when input is rejected, in which case tree and leafBytes are not
// meaningful.
func (r *Recognizer) Parse(input string) (tree *ParseTree, leafBytes int, ok bool) {
	return runtime.New(r.table).Parse(input)
}

// Translator recognizes input against one compiled grammar and, on
// acceptance, renders it to output text via the grammar's Transform rules.
// Like Recognizer, a Translator is safe for repeated and concurrent use.
type Translator struct {
	grammar      *ir.Grammar
	table        *automaton.Table
	terminalSize int
}

// NewTranslator parses, validates, and compiles grammarText into a
// Translator, retaining the IR needed to resolve Transform items.
func NewTranslator(grammarText string) (*Translator, error) {
	grammar, table, err := build(grammarText)
	if err != nil {
		return nil, err
	}
	return &Translator{
		grammar:      grammar,
		table:        table,
		terminalSize: translate.TerminalSize(grammar),
	}, nil
}

// Translate recognizes input and, on acceptance, returns the text its
// matched parse translates to. ok is false when input is rejected:
// translation fails exactly when recognition fails, and no partial output
// is ever returned in that case.
func (t *Translator) Translate(input string) (output string, ok bool) {
	tree, leafBytes, ok := runtime.New(t.table).Parse(input)
	if !ok {
		return "", false
	}
	return translate.Translate(t.grammar, tree, leafBytes, t.terminalSize), true
}
