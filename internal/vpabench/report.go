package vpabench

import (
	"fmt"
	"io"
)

// WriteReport prints one line per Result to w: scenario name, operation,
// repeat count, input size, total elapsed time, and derived ns/byte.
func WriteReport(w io.Writer, results []Result) {
	fmt.Fprintf(w, "%-24s %-10s %8s %10s %14s %12s\n", "SCENARIO", "OP", "REPEAT", "BYTES", "ELAPSED", "NS/BYTE")
	for _, r := range results {
		fmt.Fprintf(w, "%-24s %-10s %8d %10d %14s %12.2f\n",
			r.Scenario, r.Operation, r.Repeat, r.InputBytes, r.Elapsed, r.NsPerByte())
	}
}
