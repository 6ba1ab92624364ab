package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	profileadapter "datasense/adapters/profile"
	"datasense/adapters/tabular"
	"datasense/domain/interpret"
	"datasense/domain/profile"
	"datasense/domain/table"
)

// stubInterpreter returns a canned interpretation or error
type stubInterpreter struct {
	result *interpret.CalculationInterpretation
	err    error
	calls  int
}

func (s *stubInterpreter) Interpret(ctx context.Context, question string, columns []interpret.ColumnRef) (*interpret.CalculationInterpretation, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func fixture(t *testing.T) (*table.Table, []profile.ColumnInfo) {
	t.Helper()
	tbl := tabular.ParseDelimited("Age,City\n30,Oslo\n25,Oslo\nna,Bergen\n45,Trondheim", ',')
	return tbl, profileadapter.NewAnalyzer().Analyze(tbl)
}

func newTestBridge(stub *stubInterpreter) *Bridge {
	return NewBridge(stub, profileadapter.NewCalculator())
}

// An unrecognized operation is forced to UNKNOWN with a diagnostic,
// while the column name is preserved
func TestInterpretForcesUnknownOperation(t *testing.T) {
	_, columns := fixture(t)

	stub := &stubInterpreter{result: &interpret.CalculationInterpretation{
		Operation:  "FOOBAR",
		ColumnName: "Age",
	}}
	result := newTestBridge(stub).Interpret(context.Background(), "ds1", "foobar the age", columns)

	assert.Equal(t, interpret.OpUnknown, result.Operation)
	assert.Equal(t, "Age", result.ColumnName)
	assert.NotEmpty(t, result.ErrorMessage)
}

// Operation casing from the service is normalized
func TestInterpretNormalizesCasing(t *testing.T) {
	_, columns := fixture(t)

	stub := &stubInterpreter{result: &interpret.CalculationInterpretation{
		Operation:  "average",
		ColumnName: "Age",
	}}
	result := newTestBridge(stub).Interpret(context.Background(), "ds1", "avg age", columns)

	assert.Equal(t, interpret.OpAverage, result.Operation)
	assert.Empty(t, result.ErrorMessage)
}

// An unresolvable column keeps the operation but gains a diagnostic
func TestInterpretFlagsUnknownColumn(t *testing.T) {
	_, columns := fixture(t)

	stub := &stubInterpreter{result: &interpret.CalculationInterpretation{
		Operation:  "SUM",
		ColumnName: "Salary",
	}}
	result := newTestBridge(stub).Interpret(context.Background(), "ds1", "total salary", columns)

	assert.Equal(t, interpret.OpSum, result.Operation)
	assert.Equal(t, "Salary", result.ColumnName)
	assert.NotEmpty(t, result.ErrorMessage)
}

// A service failure recovers locally to a well-formed UNKNOWN
// interpretation; Interpret never surfaces an error
func TestInterpretRecoversFromServiceFailure(t *testing.T) {
	_, columns := fixture(t)

	stub := &stubInterpreter{err: errors.New("upstream timeout")}
	result := newTestBridge(stub).Interpret(context.Background(), "ds1", "anything", columns)

	require.NotNil(t, result)
	assert.Equal(t, interpret.OpUnknown, result.Operation)
	assert.Empty(t, result.ColumnName)
	assert.Contains(t, result.ErrorMessage, "upstream timeout")
}

// Cached statistics serve the pre-computed operations
func TestResolveFromCache(t *testing.T) {
	tbl, columns := fixture(t)
	bridge := newTestBridge(&stubInterpreter{})

	resolution := bridge.Resolve(&interpret.CalculationInterpretation{
		Operation:  interpret.OpAverage,
		ColumnName: "age",
	}, tbl, columns)

	require.NotNil(t, resolution.Value)
	assert.InDelta(t, 33.333, resolution.Value.AsFloat64(), 0.001)
	assert.Contains(t, resolution.Context, "AVERAGE")
	assert.Contains(t, resolution.Context, "Age")
}

// SUM is not cached and routes through the dynamic calculator
func TestResolveSumViaCalculator(t *testing.T) {
	tbl, columns := fixture(t)
	bridge := newTestBridge(&stubInterpreter{})

	resolution := bridge.Resolve(&interpret.CalculationInterpretation{
		Operation:  interpret.OpSum,
		ColumnName: "Age",
	}, tbl, columns)

	require.NotNil(t, resolution.Value)
	assert.Equal(t, float64(100), resolution.Value.AsFloat64())
}

// COUNT derives from the missing-count invariant without a rescan
func TestResolveCountFromMissingInvariant(t *testing.T) {
	tbl, columns := fixture(t)
	bridge := newTestBridge(&stubInterpreter{})

	resolution := bridge.Resolve(&interpret.CalculationInterpretation{
		Operation:  interpret.OpCount,
		ColumnName: "Age",
	}, tbl, columns)

	require.NotNil(t, resolution.Value)
	assert.Equal(t, float64(3), resolution.Value.AsFloat64())
}

func TestResolveCountUnique(t *testing.T) {
	tbl, columns := fixture(t)
	bridge := newTestBridge(&stubInterpreter{})

	resolution := bridge.Resolve(&interpret.CalculationInterpretation{
		Operation:  interpret.OpCountUnique,
		ColumnName: "City",
	}, tbl, columns)

	require.NotNil(t, resolution.Value)
	assert.Equal(t, float64(3), resolution.Value.AsFloat64())
}

// Resolving a column that matches nothing states so explicitly and
// attempts no computation
func TestResolveColumnNotFound(t *testing.T) {
	tbl, columns := fixture(t)
	bridge := newTestBridge(&stubInterpreter{})

	resolution := bridge.Resolve(&interpret.CalculationInterpretation{
		Operation:  interpret.OpAverage,
		ColumnName: "Salary",
	}, tbl, columns)

	assert.Nil(t, resolution.Value)
	assert.Contains(t, resolution.Context, "Salary")
	assert.Contains(t, strings.ToLower(resolution.Context), "does not exist")
}

// A diagnostic-only interpretation surfaces its message verbatim
func TestResolveSurfacesDiagnostic(t *testing.T) {
	tbl, columns := fixture(t)
	bridge := newTestBridge(&stubInterpreter{})

	resolution := bridge.Resolve(&interpret.CalculationInterpretation{
		Operation:    interpret.OpUnknown,
		ErrorMessage: "the question does not name a statistic",
	}, tbl, columns)

	assert.Nil(t, resolution.Value)
	assert.Equal(t, "the question does not name a statistic", resolution.Context)
}

// An attempted resolution with no determinate value says so
func TestResolveIndeterminateValue(t *testing.T) {
	tbl, columns := fixture(t)
	bridge := newTestBridge(&stubInterpreter{})

	// STDEV reads the cached profile; a categorical column has none
	resolution := bridge.Resolve(&interpret.CalculationInterpretation{
		Operation:  interpret.OpStdev,
		ColumnName: "City",
	}, tbl, columns)

	assert.Nil(t, resolution.Value)
	assert.Contains(t, resolution.Context, "no determinate result")
}

// Numbers format with locale-aware separators and at most two fraction
// digits
func TestResolveFormatsNumbers(t *testing.T) {
	tbl := tabular.ParseDelimited("n\n1234567\n1234568", ',')
	columns := profileadapter.NewAnalyzer().Analyze(tbl)
	bridge := newTestBridge(&stubInterpreter{})

	resolution := bridge.Resolve(&interpret.CalculationInterpretation{
		Operation:  interpret.OpAverage,
		ColumnName: "n",
	}, tbl, columns)

	require.NotNil(t, resolution.Value)
	assert.Contains(t, resolution.Context, "1,234,567.5")
}
