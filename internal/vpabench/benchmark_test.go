package vpabench

import (
	"testing"

	"github.com/dekarrin/vpagen/vpa"
)

// These mirror original_source's criterion benches/{regular,nested,identifier}.rs
// at the single checked-in depth-16 fixture size, as a secondary, CI-friendly
// surface alongside the YAML-driven RunScenario path.

func BenchmarkRegularRecognize(b *testing.B) {
	r, err := vpa.NewRecognizer(regularGrammar)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Recognize(regularInput)
	}
}

func BenchmarkRegularTranslate(b *testing.B) {
	tr, err := vpa.NewTranslator(regularGrammar)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.Translate(regularInput)
	}
}

func BenchmarkNestedRecognize(b *testing.B) {
	r, err := vpa.NewRecognizer(nestedGrammar)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Recognize(nestedInput)
	}
}

func BenchmarkNestedTranslate(b *testing.B) {
	tr, err := vpa.NewTranslator(nestedGrammar)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.Translate(nestedInput)
	}
}

func BenchmarkIdentifierRecognize(b *testing.B) {
	r, err := vpa.NewRecognizer(identifierGrammar)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Recognize(identifierInput)
	}
}

func BenchmarkIdentifierTranslate(b *testing.B) {
	tr, err := vpa.NewTranslator(identifierGrammar)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.Translate(identifierInput)
	}
}
