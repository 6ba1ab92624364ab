package app

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/singleflight"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	profileadapter "datasense/adapters/profile"
	"datasense/domain/interpret"
	"datasense/domain/profile"
	"datasense/domain/table"
	"datasense/internal"
	"datasense/ports"
)

// Bridge reconciles a free-form question against a dataset's real
// column schema: it invokes the interpretation service, sanitizes its
// structured output, and resolves the result to a cached statistic or a
// fresh calculation.
type Bridge struct {
	interpreter ports.Interpreter
	calculator  *profileadapter.Calculator
	group       singleflight.Group
	logger      *internal.Logger
}

// NewBridge creates an interpreter bridge
func NewBridge(interpreter ports.Interpreter, calculator *profileadapter.Calculator) *Bridge {
	return &Bridge{
		interpreter: interpreter,
		calculator:  calculator,
		logger:      internal.DefaultLogger,
	}
}

// Resolution is the bridge's final output: an optional computed value
// and the context message handed downstream as prompt context.
type Resolution struct {
	Value   *table.Value `json:"value,omitempty"`
	Context string       `json:"context"`
}

// Interpret asks the service to read the question against the schema
// and validates the reply locally. Service failures recover to a
// well-formed UNKNOWN interpretation; this never returns an error.
// Duplicate in-flight requests for the same dataset/question pair share
// one service call.
func (b *Bridge) Interpret(ctx context.Context, datasetID, question string, columns []profile.ColumnInfo) *interpret.CalculationInterpretation {
	refs := make([]interpret.ColumnRef, 0, len(columns))
	for _, col := range columns {
		refs = append(refs, interpret.ColumnRef{Name: col.Name, Type: string(col.Type)})
	}

	key := datasetID + "|" + question
	result, err, _ := b.group.Do(key, func() (interface{}, error) {
		return b.interpreter.Interpret(ctx, question, refs)
	})
	if err != nil {
		b.logger.Warn("interpretation service failed: %v", err)
		return &interpret.CalculationInterpretation{
			Operation:    interpret.OpUnknown,
			ErrorMessage: fmt.Sprintf("interpretation service failed: %v", err),
		}
	}

	raw := result.(*interpret.CalculationInterpretation)
	return b.validate(raw, columns)
}

// validate sanitizes the service's reply against the real schema. An
// unrecognized operation is forced to UNKNOWN; a column name that
// matches nothing keeps the operation but gains a diagnostic.
func (b *Bridge) validate(raw *interpret.CalculationInterpretation, columns []profile.ColumnInfo) *interpret.CalculationInterpretation {
	validated := &interpret.CalculationInterpretation{
		ColumnName:   raw.ColumnName,
		ErrorMessage: raw.ErrorMessage,
	}

	op, known := interpret.ParseOperation(string(raw.Operation))
	validated.Operation = op
	if !known {
		if validated.ErrorMessage == "" {
			validated.ErrorMessage = fmt.Sprintf("%q is not a supported operation", raw.Operation)
		}
		validated.Operation = interpret.OpUnknown
	}

	if validated.ColumnName != "" && findColumn(columns, validated.ColumnName) == nil {
		if validated.ErrorMessage == "" {
			validated.ErrorMessage = fmt.Sprintf("column %q was not found in the dataset", validated.ColumnName)
		}
	}

	return validated
}

// Resolve turns a validated interpretation into a context message,
// reading cached statistics where the analyzer already computed them
// and recomputing only for SUM and VAR.
func (b *Bridge) Resolve(interpretation *interpret.CalculationInterpretation, t *table.Table, columns []profile.ColumnInfo) Resolution {
	if interpretation.Operation == interpret.OpUnknown || interpretation.ColumnName == "" {
		if interpretation.ErrorMessage != "" {
			return Resolution{Context: interpretation.ErrorMessage}
		}
		return Resolution{Context: "The question could not be mapped to a calculation over the dataset."}
	}

	col := findColumn(columns, interpretation.ColumnName)
	if col == nil {
		return Resolution{Context: fmt.Sprintf(
			"The column %q does not exist in the dataset.", interpretation.ColumnName)}
	}

	value := b.lookup(interpretation.Operation, col, t)
	if value.IsMissing() {
		return Resolution{Context: fmt.Sprintf(
			"The %s of column %q was computed but no determinate result was available.",
			interpretation.Operation, col.Name)}
	}

	return Resolution{
		Value: &value,
		Context: fmt.Sprintf("The %s of column %q is %s.",
			interpretation.Operation, col.Name, formatValue(value)),
	}
}

// lookup serves cached statistics where possible and falls back to the
// dynamic calculator for operations the analyzer does not pre-cache.
func (b *Bridge) lookup(op interpret.Operation, col *profile.ColumnInfo, t *table.Table) table.Value {
	stats := col.Stats

	switch op {
	case interpret.OpAverage:
		return fromFloat(stats.Mean)
	case interpret.OpMedian:
		return fromFloat(stats.Median)
	case interpret.OpStdev:
		return fromFloat(stats.StdDev)
	case interpret.OpMin:
		if col.Type == profile.TypeDate {
			return fromString(stats.DateMin)
		}
		return fromFloat(stats.NumMin)
	case interpret.OpMax:
		if col.Type == profile.TypeDate {
			return fromString(stats.DateMax)
		}
		return fromFloat(stats.NumMax)
	case interpret.OpMode:
		if stats.NumMode != nil {
			return table.NewNumberValue(*stats.NumMode)
		}
		if stats.StrMode != nil {
			return fromString(*stats.StrMode)
		}
		return table.NewMissingValue()
	case interpret.OpCount, interpret.OpCountA:
		// Derived from the missing-count invariant; no rescan needed.
		return table.NewNumberValue(float64(len(t.Rows) - stats.MissingCount))
	case interpret.OpCountUnique:
		return table.NewNumberValue(float64(len(stats.UniqueValues)))
	case interpret.OpSum, interpret.OpVar:
		return b.calculator.Calculate(t, col.Name, op)
	}

	return table.NewMissingValue()
}

func findColumn(columns []profile.ColumnInfo, name string) *profile.ColumnInfo {
	for i := range columns {
		if strings.EqualFold(columns[i].Name, name) {
			return &columns[i]
		}
	}
	return nil
}

func fromFloat(f *float64) table.Value {
	if f == nil {
		return table.NewMissingValue()
	}
	return table.NewNumberValue(*f)
}

func fromString(s string) table.Value {
	if s == "" {
		return table.NewMissingValue()
	}
	return table.NewStringValue(s)
}

var displayPrinter = message.NewPrinter(language.English)

// formatValue renders a result for display: locale-aware thousands and
// decimal separators with 0-2 fraction digits for numbers, verbatim for
// strings.
func formatValue(v table.Value) string {
	if v.IsNumber() {
		return displayPrinter.Sprintf("%v", number.Decimal(
			v.AsFloat64(),
			number.MaxFractionDigits(2),
			number.MinFractionDigits(0),
		))
	}
	return v.Key()
}
