// Package elaborate validates a grammar's ast.Grammar against its binding
// and reference invariants and, on success, produces the numbered
// vpa/ir.Grammar that vpa/automaton compiles.
package elaborate

import (
	"regexp"

	"github.com/dekarrin/vpagen/internal/util"
	"github.com/dekarrin/vpagen/vpa/ast"
	"github.com/dekarrin/vpagen/vpa/ir"
	"github.com/dekarrin/vpagen/vpa/vpaerr"
)

// nameIndex maps a nonterminal's declared name to its 0-based position in
// the grammar's Nonterminals slice. The IR ID for a nonterminal is its
// position + 1 (state 0 is reserved for the epsilon-return hub).
type nameIndex map[string]int

// Elaborate validates grammar and, if it obeys every binding and reference
// invariant, returns the numbered IR ready for compilation. Definition
// closure and transform bijection (which also covers named-capture
// coherence) are checked rule-by-rule first, then the tail-position and
// forward-reference rules for bare identifiers are checked across the whole
// grammar.
func Elaborate(grammar ast.Grammar) (*ir.Grammar, error) {
	names, err := buildNameIndex(grammar)
	if err != nil {
		return nil, err
	}

	if err := checkDefinitionsAndBindings(grammar, names); err != nil {
		return nil, err
	}

	if err := checkForwardReferences(grammar, names); err != nil {
		return nil, err
	}

	return toIR(grammar, names)
}

func buildNameIndex(grammar ast.Grammar) (nameIndex, error) {
	names := make(nameIndex, len(grammar.Nonterminals))
	for i, nt := range grammar.Nonterminals {
		if _, exists := names[nt.Name]; exists {
			return nil, vpaerr.Validation(nt.Name, "", "nonterminal %q is defined more than once", nt.Name)
		}
		names[nt.Name] = i
	}
	return names, nil
}

// checkDefinitionsAndBindings checks that every internal reference resolves,
// and that within each rule the declared externals
// (regex named captures, Identifier externals, Nested externals) are each
// consumed by exactly one Transform binding, and vice versa.
func checkDefinitionsAndBindings(grammar ast.Grammar, names nameIndex) error {
	for _, word := range grammar.Nonterminals {
		for _, rule := range word.Rules {
			externs, err := transformExternals(word.Name, rule.Transform)
			if err != nil {
				return err
			}

			for _, item := range rule.Source.Items {
				switch item.Kind {
				case ast.SourceIdentifier:
					if _, ok := names[item.Ident.Internal]; !ok {
						return vpaerr.Validation(word.Name, item.Ident.Internal, "word %s is not defined", item.Ident.Internal)
					}
					if !consume(externs, item.Ident.External) {
						return vpaerr.Validation(word.Name, item.Ident.External, "word %s is not used in the transform", item.Ident.External)
					}
				case ast.SourceNested:
					n := item.Nested
					if _, ok := names[n.Rule.Internal]; !ok {
						return vpaerr.Validation(word.Name, n.Rule.Internal, "word %s is not defined", n.Rule.Internal)
					}
					if !consume(externs, n.Rule.External) {
						return vpaerr.Validation(word.Name, n.Rule.External, "word %s is not used in the transform", n.Rule.External)
					}
					if err := consumeRegexCaptures(word.Name, n.CallSymbol, externs); err != nil {
						return err
					}
					if err := consumeRegexCaptures(word.Name, n.ReturnSymbol, externs); err != nil {
						return err
					}
				case ast.SourceRegex:
					if err := consumeRegexCaptures(word.Name, item.Regex, externs); err != nil {
						return err
					}
				}
			}

			if len(*externs) > 0 {
				remaining := (*externs)[0]
				return vpaerr.Validation(word.Name, remaining, "word %s is not used in the source", remaining)
			}
		}
	}
	return nil
}

// transformExternals collects the Identifier bindings declared on a rule's
// Transform side, erroring if the same binding is declared twice.
func transformExternals(word string, t ast.Transform) (*[]string, error) {
	seen := util.NewStringSet()
	var externs []string
	for _, item := range t.Items {
		if item.Kind != ast.TransformBinding {
			continue
		}
		if seen.Has(item.Binding) {
			return nil, vpaerr.Validation(word, item.Binding, "word %s has a rule with two identical identifiers in the transform", word)
		}
		seen.Add(item.Binding)
		externs = append(externs, item.Binding)
	}
	return &externs, nil
}

// consume removes name from *externs if present, reporting whether it was
// found.
func consume(externs *[]string, name string) bool {
	for i, e := range *externs {
		if e == name {
			*externs = append((*externs)[:i], (*externs)[i+1:]...)
			return true
		}
	}
	return false
}

// consumeRegexCaptures checks that pattern compiles and that every one of
// its named captures is consumed from externs.
func consumeRegexCaptures(word, pattern string, externs *[]string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return vpaerr.WrapValidation(err, word, "", "word %s has a malformed regex %q: %v", word, pattern, err)
	}
	for _, name := range re.SubexpNames() {
		if name == "" {
			continue
		}
		if !consume(externs, name) {
			return vpaerr.Validation(word, name, "word %s is not used in the transform", name)
		}
	}
	return nil
}

// checkForwardReferences checks that every bare Identifier SourceItem is the
// last item of its rule and references a nonterminal declared strictly later
// than the referring one.
func checkForwardReferences(grammar ast.Grammar, names nameIndex) error {
	for index, word := range grammar.Nonterminals {
		for _, rule := range word.Rules {
			for i, item := range rule.Source.Items {
				if item.Kind != ast.SourceIdentifier {
					continue
				}
				if i != len(rule.Source.Items)-1 {
					return vpaerr.Validation(word.Name, item.Ident.External,
						"word %s has identifier %s before the last item of a rule", word.Name, item.Ident.Internal)
				}
				targetIndex := names[item.Ident.Internal]
				if targetIndex <= index {
					return vpaerr.Validation(word.Name, item.Ident.Internal,
						"rule %s is not defined before rule %d", item.Ident.Internal, index)
				}
			}
		}
	}
	return nil
}
