package interpret

import "strings"

// Operation names one deterministic computation over a parsed column
type Operation string

const (
	OpSum         Operation = "SUM"
	OpAverage     Operation = "AVERAGE"
	OpMedian      Operation = "MEDIAN"
	OpMode        Operation = "MODE"
	OpMin         Operation = "MIN"
	OpMax         Operation = "MAX"
	OpCount       Operation = "COUNT"
	OpCountA      Operation = "COUNTA"
	OpCountUnique Operation = "COUNTUNIQUE"
	OpStdev       Operation = "STDEV"
	OpVar         Operation = "VAR"
	// OpUnknown is the sentinel for requests that could not be mapped to
	// a supported operation
	OpUnknown Operation = "UNKNOWN"
)

// knownOperations lists every operation the calculator supports
var knownOperations = []Operation{
	OpSum, OpAverage, OpMedian, OpMode, OpMin, OpMax,
	OpCount, OpCountA, OpCountUnique, OpStdev, OpVar,
}

// ParseOperation normalizes a free-form operation name. The second
// return reports whether the name matched a supported operation or the
// UNKNOWN sentinel itself.
func ParseOperation(raw string) (Operation, bool) {
	candidate := Operation(strings.ToUpper(strings.TrimSpace(raw)))
	if candidate == OpUnknown {
		return OpUnknown, true
	}
	for _, op := range knownOperations {
		if candidate == op {
			return op, true
		}
	}
	return OpUnknown, false
}

// ColumnRef is the name/type pair handed to the interpretation service
// so it can ground a question against the real schema
type ColumnRef struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// CalculationInterpretation is the service's structured reading of a
// natural-language question, after local validation
type CalculationInterpretation struct {
	Operation    Operation `json:"operation"`
	ColumnName   string    `json:"columnName,omitempty"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
}
