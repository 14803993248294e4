package vpabench

import (
	"fmt"
	"time"

	"github.com/dekarrin/vpagen/vpa"
)

// Result is the outcome of timing one Scenario: total elapsed time across
// Repeat runs and the input size, from which NsPerByte derives per-byte
// throughput.
type Result struct {
	Scenario   string
	Operation  string
	Repeat     int
	InputBytes int
	Elapsed    time.Duration
	Accepted   bool
}

// RunScenario compiles sc's grammar, then runs its operation against its
// input Repeat times, returning the total elapsed wall-clock time.
func RunScenario(sc Scenario) (Result, error) {
	grammarText, err := resolveGrammar(sc.Grammar)
	if err != nil {
		return Result{}, err
	}
	input, err := resolveInput(sc.Input)
	if err != nil {
		return Result{}, err
	}

	result := Result{Scenario: sc.Name, Operation: sc.Operation, Repeat: sc.Repeat, InputBytes: len(input)}

	switch sc.Operation {
	case "recognize":
		r, err := vpa.NewRecognizer(grammarText)
		if err != nil {
			return Result{}, fmt.Errorf("scenario %q: build recognizer: %w", sc.Name, err)
		}
		start := time.Now()
		var accepted bool
		for i := 0; i < sc.Repeat; i++ {
			accepted = r.Recognize(input)
		}
		result.Elapsed = time.Since(start)
		result.Accepted = accepted

	case "parse":
		r, err := vpa.NewRecognizer(grammarText)
		if err != nil {
			return Result{}, fmt.Errorf("scenario %q: build recognizer: %w", sc.Name, err)
		}
		start := time.Now()
		var accepted bool
		for i := 0; i < sc.Repeat; i++ {
			_, _, accepted = r.Parse(input)
		}
		result.Elapsed = time.Since(start)
		result.Accepted = accepted

	case "translate":
		t, err := vpa.NewTranslator(grammarText)
		if err != nil {
			return Result{}, fmt.Errorf("scenario %q: build translator: %w", sc.Name, err)
		}
		start := time.Now()
		var accepted bool
		for i := 0; i < sc.Repeat; i++ {
			_, accepted = t.Translate(input)
		}
		result.Elapsed = time.Since(start)
		result.Accepted = accepted

	default:
		return Result{}, fmt.Errorf("scenario %q: unknown operation %q", sc.Name, sc.Operation)
	}

	return result, nil
}

// RunSuite runs every Scenario in s in order, stopping at the first error.
func RunSuite(s Suite) ([]Result, error) {
	results := make([]Result, 0, len(s.Scenarios))
	for _, sc := range s.Scenarios {
		r, err := RunScenario(sc)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, nil
}

// NsPerByte returns the average time spent per input byte across all Repeat
// runs, the figure original_source's criterion benches reported implicitly
// through their per-size benchmark groups.
func (r Result) NsPerByte() float64 {
	if r.InputBytes == 0 || r.Repeat == 0 {
		return 0
	}
	return float64(r.Elapsed.Nanoseconds()) / float64(r.Repeat) / float64(r.InputBytes)
}
