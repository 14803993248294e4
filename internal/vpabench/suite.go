package vpabench

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is one benchmark entry in a suite file: a grammar, an input to
// run against it, which operation to time, and how many times to repeat it.
type Scenario struct {
	Name      string `yaml:"name"`
	Grammar   string `yaml:"grammar"`
	Input     string `yaml:"input"`
	Operation string `yaml:"operation"`
	Repeat    int    `yaml:"repeat"`
}

// Suite is a named collection of Scenarios, loaded from a YAML file such as:
//
//	scenarios:
//	  - name: nested-depth-16
//	    grammar: builtin:nested
//	    input: builtin:nested
//	    operation: translate
//	    repeat: 1000
type Suite struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// builtinFixtures maps a "builtin:name" grammar/input reference to the
// checked-in fixture pair of the same name.
var builtinFixtures = map[string]struct{ grammar, input string }{
	"regular":    {regularGrammar, regularInput},
	"nested":     {nestedGrammar, nestedInput},
	"identifier": {identifierGrammar, identifierInput},
}

// LoadSuite reads and parses a suite file from path.
func LoadSuite(path string) (Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Suite{}, fmt.Errorf("read suite file: %w", err)
	}
	return ParseSuite(data)
}

// ParseSuite parses suite YAML already read into memory.
func ParseSuite(data []byte) (Suite, error) {
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Suite{}, fmt.Errorf("parse suite YAML: %w", err)
	}
	for i, sc := range s.Scenarios {
		if sc.Name == "" {
			return Suite{}, fmt.Errorf("scenario %d: name is required", i)
		}
		switch sc.Operation {
		case "recognize", "parse", "translate":
		default:
			return Suite{}, fmt.Errorf("scenario %q: operation must be recognize, parse, or translate, got %q", sc.Name, sc.Operation)
		}
		if sc.Repeat <= 0 {
			s.Scenarios[i].Repeat = 1
		}
	}
	return s, nil
}

// resolveGrammar returns the grammar text a Scenario's Grammar field names:
// either a built-in fixture ("builtin:nested") or a path to a file on disk.
func resolveGrammar(ref string) (string, error) {
	if fixtureName, ok := stripBuiltinPrefix(ref); ok {
		f, ok := builtinFixtures[fixtureName]
		if !ok {
			return "", fmt.Errorf("no builtin fixture named %q", fixtureName)
		}
		return f.grammar, nil
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		return "", fmt.Errorf("read grammar file: %w", err)
	}
	return string(data), nil
}

func resolveInput(ref string) (string, error) {
	if fixtureName, ok := stripBuiltinPrefix(ref); ok {
		f, ok := builtinFixtures[fixtureName]
		if !ok {
			return "", fmt.Errorf("no builtin fixture named %q", fixtureName)
		}
		return f.input, nil
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		return "", fmt.Errorf("read input file: %w", err)
	}
	return string(data), nil
}

const builtinPrefix = "builtin:"

func stripBuiltinPrefix(ref string) (string, bool) {
	if len(ref) > len(builtinPrefix) && ref[:len(builtinPrefix)] == builtinPrefix {
		return ref[len(builtinPrefix):], true
	}
	return "", false
}
