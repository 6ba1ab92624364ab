package profile

import (
	"github.com/montanaflynn/stats"

	"datasense/domain/interpret"
	"datasense/domain/table"
)

// Calculator recomputes statistics directly from a table, independently
// of any cached column profile. Used for operations the analyzer does
// not pre-cache (SUM, VAR) and for offline runs.
type Calculator struct{}

// NewCalculator creates a dynamic statistic calculator
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate runs one operation over the named column. The result is a
// Number, a String (dates and categorical modes), or Missing when no
// determinate value exists. Nonexistent column names behave exactly
// like columns with zero values; existence checks belong to the caller.
func (c *Calculator) Calculate(t *table.Table, column string, op interpret.Operation) table.Value {
	values := present(t.Column(column))

	switch op {
	case interpret.OpSum:
		return table.NewNumberValue(sum(values))
	case interpret.OpAverage:
		return numericStat(values, stats.Mean)
	case interpret.OpMedian:
		return numericStat(values, stats.Median)
	case interpret.OpMode:
		return modeOf(values)
	case interpret.OpMin:
		return extremum(values, stats.Min, false)
	case interpret.OpMax:
		return extremum(values, stats.Max, true)
	case interpret.OpCount, interpret.OpCountA:
		// No numeric-only vs any-non-blank distinction is drawn; both
		// count non-missing values.
		return table.NewNumberValue(float64(len(values)))
	case interpret.OpCountUnique:
		return table.NewNumberValue(float64(countUnique(values)))
	case interpret.OpStdev:
		return spreadStat(values, stats.StandardDeviationSample)
	case interpret.OpVar:
		return spreadStat(values, stats.VarS)
	}

	return table.NewMissingValue()
}

func present(values []table.Value) []table.Value {
	kept := make([]table.Value, 0, len(values))
	for _, v := range values {
		if !v.IsMissing() {
			kept = append(kept, v)
		}
	}
	return kept
}

// sum adds the numerically coercible values; non-numeric entries are
// excluded rather than counted as zero. An empty column sums to 0.
func sum(values []table.Value) float64 {
	total := 0.0
	for _, v := range values {
		if n, ok := asNumeric(v); ok {
			total += n
		}
	}
	return total
}

func numericStat(values []table.Value, fn func(stats.Float64Data) (float64, error)) table.Value {
	numbers := numericValues(values)
	if len(numbers) == 0 {
		return table.NewMissingValue()
	}
	result, err := fn(numbers)
	if err != nil {
		return table.NewMissingValue()
	}
	return table.NewNumberValue(result)
}

// spreadStat computes sample dispersion; fewer than 2 numeric values
// has no determinate result.
func spreadStat(values []table.Value, fn func(stats.Float64Data) (float64, error)) table.Value {
	numbers := numericValues(values)
	if len(numbers) < 2 {
		return table.NewMissingValue()
	}
	result, err := fn(numbers)
	if err != nil {
		return table.NewMissingValue()
	}
	return table.NewNumberValue(result)
}

// modeOf picks the most frequent value over all non-missing entries by
// string key. Ties break toward the first value to reach the shared
// maximum, in original row order. Numeric modes come back as numbers,
// date modes as YYYY-MM-DD strings.
func modeOf(values []table.Value) table.Value {
	if len(values) == 0 {
		return table.NewMissingValue()
	}

	counts := make(map[string]int, len(values))
	best := 0
	var winner table.Value
	for _, v := range values {
		key := v.Key()
		counts[key]++
		if counts[key] > best {
			best = counts[key]
			winner = v
		}
	}

	switch {
	case winner.IsNumber():
		return winner
	case winner.IsDate():
		return table.NewStringValue(winner.AsDate().Format(table.DateLayout))
	default:
		return table.NewStringValue(winner.Key())
	}
}

// extremum compares chronologically when the column is date-dominated,
// numerically otherwise.
func extremum(values []table.Value, fn func(stats.Float64Data) (float64, error), max bool) table.Value {
	dates := make([]table.Value, 0)
	for _, v := range values {
		if v.IsDate() {
			dates = append(dates, v)
		}
	}
	numbers := numericValues(values)

	if len(dates) > 0 && len(dates) >= len(numbers) {
		pick := dates[0]
		for _, v := range dates[1:] {
			if max && v.AsDate().After(pick.AsDate()) {
				pick = v
			}
			if !max && v.AsDate().Before(pick.AsDate()) {
				pick = v
			}
		}
		return table.NewStringValue(pick.AsDate().Format(table.DateLayout))
	}

	if len(numbers) == 0 {
		return table.NewMissingValue()
	}
	result, err := fn(numbers)
	if err != nil {
		return table.NewMissingValue()
	}
	return table.NewNumberValue(result)
}

// countUnique counts distinct values by coerced identity: the value tag
// participates, so a number and an equal-looking string stay distinct.
func countUnique(values []table.Value) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[string(v.Type)+"|"+v.Key()] = struct{}{}
	}
	return len(seen)
}
