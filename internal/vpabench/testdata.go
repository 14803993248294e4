package vpabench

import _ "embed"

// Checked-in fixtures for the three corpora original_source's criterion
// benchmarks exercised (regular chain, nested bracket, identifier chain),
// generated once at depth 16 rather than regenerated at benchmark time:
// grammar-text generators for benchmarking are out of scope here, so the
// corpora are static fixtures instead of a ported generator.

//go:embed testdata/regular_16.vpg
var regularGrammar string

//go:embed testdata/regular_16.input
var regularInput string

//go:embed testdata/nested_16.vpg
var nestedGrammar string

//go:embed testdata/nested_16.input
var nestedInput string

//go:embed testdata/identifier_16.vpg
var identifierGrammar string

//go:embed testdata/identifier_16.input
var identifierInput string
