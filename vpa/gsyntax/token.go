// Package gsyntax is the external grammar-text parser: a recursive-descent
// reader over the normative textual notation, producing a vpa/ast.Grammar.
// It never does the work of vpa/elaborate; a grammar that parses cleanly
// here can still be rejected there.
package gsyntax

// tokenKind enumerates the lexical categories the scanner produces.
type tokenKind int

const (
	tEOF tokenKind = iota
	tIdent
	tString
	tColon
	tArrow
	tEquals
	tLBracket
	tRBracket
)

// token is one lexical unit, with its 1-based source position for
// diagnostics. newlineBefore records whether a newline appeared anywhere in
// the whitespace skipped to reach this token: it is what lets the parser
// tell a rule's own source/transform item list (whose items may only be
// separated by non-newline space) apart from the next rule's or header's
// leading items, which always follow at least one newline.
type token struct {
	kind          tokenKind
	text          string // identifier name, or the unescaped content of a string literal
	line          int
	col           int
	newlineBefore bool
}

func (k tokenKind) String() string {
	switch k {
	case tEOF:
		return "end of input"
	case tIdent:
		return "identifier"
	case tString:
		return "string literal"
	case tColon:
		return "':'"
	case tArrow:
		return "'->'"
	case tEquals:
		return "'='"
	case tLBracket:
		return "'['"
	case tRBracket:
		return "']'"
	default:
		return "unknown token"
	}
}
