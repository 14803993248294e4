// Package vpaerr defines the error kinds that can be produced while building
// a Recognizer or Translator. Input rejection is never represented as an
// error (vpa reports it as a false ok result); these types only ever surface during
// grammar parsing, elaboration, and automaton construction.
package vpaerr

import "fmt"

// SyntaxError is returned when grammar text cannot be parsed into an AST at
// all. It names the line and column at which parsing stopped making
// progress.
type SyntaxError struct {
	msg  string
	Line int
	Col  int
	wrap error
}

func (e *SyntaxError) Error() string {
	return e.msg
}

// Unwrap gives the underlying scanning error, if any.
func (e *SyntaxError) Unwrap() error {
	return e.wrap
}

// Syntax creates a new SyntaxError at the given line/column, formatting msg
// with the given args the way fmt.Errorf would.
func Syntax(line, col int, msgFmt string, args ...interface{}) error {
	return &SyntaxError{
		msg:  fmt.Sprintf("line %d, col %d: %s", line, col, fmt.Sprintf(msgFmt, args...)),
		Line: line,
		Col:  col,
	}
}

// ValidationError is returned when elaboration finds that the grammar
// violates one of the invariants in §4.2: an undefined reference, an unused
// or duplicated transform binding, a non-last bare identifier, or a
// backward identifier reference.
type ValidationError struct {
	msg     string
	Word    string
	Binding string
	wrap    error
}

func (e *ValidationError) Error() string {
	return e.msg
}

// Unwrap gives the underlying regex-compile error, if this ValidationError
// was raised because a source regex itself did not compile.
func (e *ValidationError) Unwrap() error {
	return e.wrap
}

// Validation creates a new ValidationError naming the offending nonterminal
// (word) and, if applicable, the offending binding.
func Validation(word, binding, msgFmt string, args ...interface{}) error {
	return &ValidationError{
		msg:     fmt.Sprintf(msgFmt, args...),
		Word:    word,
		Binding: binding,
	}
}

// WrapValidation is like Validation but additionally wraps a lower-level
// error (e.g. a malformed regex reported by regexp.Compile).
func WrapValidation(wrapped error, word, binding, msgFmt string, args ...interface{}) error {
	return &ValidationError{
		msg:     fmt.Sprintf(msgFmt, args...),
		Word:    word,
		Binding: binding,
		wrap:    wrapped,
	}
}

// BuildError is returned when the automaton builder cannot compile a regex
// pattern that passed elaboration's own well-formedness check (this should
// not normally happen for a grammar that passed elaborate.Elaborate, but the
// builder re-validates defensively since it composes patterns together).
type BuildError struct {
	msg  string
	wrap error
}

func (e *BuildError) Error() string {
	return e.msg
}

// Unwrap gives the wrapped regexp compile error.
func (e *BuildError) Unwrap() error {
	return e.wrap
}

// Build wraps a lower-level error encountered while compiling the
// automaton's transition table.
func Build(wrapped error, msgFmt string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFmt, args...)
	if wrapped != nil {
		msg = fmt.Sprintf("%s: %v", msg, wrapped)
	}
	return &BuildError{msg: msg, wrap: wrapped}
}
