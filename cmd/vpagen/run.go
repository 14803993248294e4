package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/vpagen/vpa"
	"github.com/spf13/pflag"
)

func runCommand(args []string) error {
	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	grammarFile := fs.StringP("grammar", "g", "", "Grammar file to compile (required)")
	op := fs.StringP("op", "o", "recognize", "Operation to run: recognize, parse, or translate")
	input := fs.StringP("input", "i", "", "Input text to run the operation against")
	inputFile := fs.StringP("input-file", "f", "", "Read input text from a file instead of --input")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *grammarFile == "" {
		return fmt.Errorf("--grammar is required")
	}

	grammarText, err := os.ReadFile(*grammarFile)
	if err != nil {
		return fmt.Errorf("read grammar file: %w", err)
	}

	inputText := *input
	if *inputFile != "" {
		data, err := os.ReadFile(*inputFile)
		if err != nil {
			return fmt.Errorf("read input file: %w", err)
		}
		inputText = string(data)
	}

	switch *op {
	case "recognize":
		r, err := vpa.NewRecognizer(string(grammarText))
		if err != nil {
			return fmt.Errorf("compile grammar: %w", err)
		}
		fmt.Println(r.Recognize(inputText))

	case "parse":
		r, err := vpa.NewRecognizer(string(grammarText))
		if err != nil {
			return fmt.Errorf("compile grammar: %w", err)
		}
		tree, _, ok := r.Parse(inputText)
		if !ok {
			fmt.Println("rejected")
			return nil
		}
		fmt.Println(formatTree(tree, 0))

	case "translate":
		t, err := vpa.NewTranslator(string(grammarText))
		if err != nil {
			return fmt.Errorf("compile grammar: %w", err)
		}
		output, ok := t.Translate(inputText)
		if !ok {
			fmt.Println("rejected")
			return nil
		}
		fmt.Println(output)

	default:
		return fmt.Errorf("unknown operation %q: must be recognize, parse, or translate", *op)
	}

	return nil
}

func formatTree(n *vpa.ParseTree, depth int) string {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	out := fmt.Sprintf("%snonterminal=%d rule=%d", indent, n.Identifier, n.RuleNr)
	for _, c := range n.Children {
		if c.IsNode() {
			out += "\n" + formatTree(c.Node, depth+1)
		} else {
			out += fmt.Sprintf("\n%s  leaf=%q", indent, c.Leaf)
		}
	}
	return out
}
