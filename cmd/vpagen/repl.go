package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dekarrin/vpagen/internal/input"
	"github.com/dekarrin/vpagen/vpa"
	"github.com/spf13/pflag"
)

type lineReader interface {
	ReadLine() (string, error)
	AllowBlank(bool)
	Close() error
}

func replCommand(args []string) error {
	fs := pflag.NewFlagSet("repl", pflag.ContinueOnError)
	grammarFile := fs.StringP("grammar", "g", "", "Grammar file to compile (required)")
	op := fs.StringP("op", "o", "translate", "Operation to run on each line: recognize, parse, or translate")
	forceDirect := fs.BoolP("direct", "d", false, "Force reading directly from stdin instead of via GNU readline")
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

	switch *op {
	case "recognize", "parse", "translate":
	default:
		return fmt.Errorf("unknown operation %q: must be recognize, parse, or translate", *op)
	}

	recognizer, err := vpa.NewRecognizer(string(grammarText))
	if err != nil {
		return fmt.Errorf("compile grammar: %w", err)
	}
	var translator *vpa.Translator
	if *op == "translate" {
		translator, err = vpa.NewTranslator(string(grammarText))
		if err != nil {
			return fmt.Errorf("compile grammar: %w", err)
		}
	}

	var reader lineReader
	if *forceDirect {
		reader = input.NewDirectReader(os.Stdin)
	} else {
		reader, err = input.NewInteractiveReader()
		if err != nil {
			reader = input.NewDirectReader(os.Stdin)
		}
	}
	defer reader.Close()

	for {
		line, err := reader.ReadLine()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("read line: %w", err)
		}

		switch *op {
		case "recognize":
			fmt.Println(recognizer.Recognize(line))
		case "parse":
			tree, _, ok := recognizer.Parse(line)
			if !ok {
				fmt.Println("rejected")
				continue
			}
			fmt.Println(formatTree(tree, 0))
		case "translate":
			output, ok := translator.Translate(line)
			if !ok {
				fmt.Println("rejected")
				continue
			}
			fmt.Println(output)
		}
	}
}
