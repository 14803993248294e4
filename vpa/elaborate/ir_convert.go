package elaborate

import (
	"regexp"

	"github.com/dekarrin/vpagen/vpa/ast"
	"github.com/dekarrin/vpagen/vpa/ir"
)

// toIR numbers grammar's nonterminals 1..=N and resolves every binding
// reference to a (nonterminal ID, transform slot) pair using the flattened
// capture list rule (every regex named capture, Identifier binding, and
// Nested binding in declaration order). It assumes grammar has already passed checkDefinitionsAndBindings
// and checkForwardReferences.
func toIR(grammar ast.Grammar, names nameIndex) (*ir.Grammar, error) {
	out := &ir.Grammar{Nonterminals: make([]ir.Nonterminal, len(grammar.Nonterminals))}

	for wi, word := range grammar.Nonterminals {
		nt := ir.Nonterminal{ID: wi + 1, Rules: make([]ir.Rule, len(word.Rules))}
		for ri, rule := range word.Rules {
			irRule, err := toIRRule(rule, names)
			if err != nil {
				return nil, err
			}
			nt.Rules[ri] = irRule
		}
		out.Nonterminals[wi] = nt
	}

	return out, nil
}

// slotMap assigns each externally-bound name in a rule's Source its
// flattened capture-list position, in left-to-right traversal order.
func slotMap(source ast.Source) (map[string]int, error) {
	slots := make(map[string]int)
	next := 0

	assign := func(name string) {
		slots[name] = next
		next++
	}

	assignCaptures := func(pattern string) error {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return err
		}
		for _, name := range re.SubexpNames() {
			if name != "" {
				assign(name)
			}
		}
		return nil
	}

	for _, item := range source.Items {
		switch item.Kind {
		case ast.SourceIdentifier:
			assign(item.Ident.External)
		case ast.SourceRegex:
			if err := assignCaptures(item.Regex); err != nil {
				return nil, err
			}
		case ast.SourceNested:
			n := item.Nested
			if err := assignCaptures(n.CallSymbol); err != nil {
				return nil, err
			}
			assign(n.Rule.External)
			if err := assignCaptures(n.ReturnSymbol); err != nil {
				return nil, err
			}
		}
	}

	return slots, nil
}

func toIRRule(rule ast.Rule, names nameIndex) (ir.Rule, error) {
	slots, err := slotMap(rule.Source)
	if err != nil {
		return ir.Rule{}, err
	}

	irSource := ir.Source{Items: make([]ir.SourceItem, len(rule.Source.Items))}
	for i, item := range rule.Source.Items {
		switch item.Kind {
		case ast.SourceRegex:
			irSource.Items[i] = ir.SourceItem{Kind: ir.SourceRegex, Regex: item.Regex}
		case ast.SourceIdentifier:
			irSource.Items[i] = ir.SourceItem{
				Kind: ir.SourceIdentifier,
				Ident: ir.Identifier{
					Source: names[item.Ident.Internal] + 1,
					Slot:   slots[item.Ident.External],
				},
			}
		case ast.SourceNested:
			n := item.Nested
			irSource.Items[i] = ir.SourceItem{
				Kind: ir.SourceNested,
				Nested: ir.Nested{
					CallSymbol:   n.CallSymbol,
					ReturnSymbol: n.ReturnSymbol,
					Nonterminal: ir.Identifier{
						Source: names[n.Rule.Internal] + 1,
						Slot:   slots[n.Rule.External],
					},
				},
			}
		}
	}

	irTransform := ir.Transform{Items: make([]ir.TransformItem, len(rule.Transform.Items))}
	for i, item := range rule.Transform.Items {
		switch item.Kind {
		case ast.TransformLiteral:
			irTransform.Items[i] = ir.TransformItem{Kind: ir.TransformLiteral, Literal: item.Literal}
		case ast.TransformBinding:
			irTransform.Items[i] = ir.TransformItem{Kind: ir.TransformSlot, Slot: slots[item.Binding]}
		}
	}

	return ir.Rule{Source: irSource, Transform: irTransform}, nil
}
