package tabular

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"datasense/domain/table"
)

// numericPattern accepts plain integers and decimals only. Scientific
// notation and thousands separators intentionally do not match; values
// like "1e5" or "1,000" stay strings.
var numericPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// dateLayouts are tried in order: ISO 8601 date(-time), M/D/YY(YY),
// D-Mon-YY(YY), Mon D, YYYY.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006",
	"1/2/06",
	"2-Jan-2006",
	"2-Jan-06",
	"Jan 2, 2006",
}

// Coerce converts a raw cell value into a typed table.Value. It is a
// total function: every input produces a value, never an error.
func Coerce(raw interface{}) table.Value {
	switch v := raw.(type) {
	case nil:
		return table.NewMissingValue()
	case table.Value:
		return v
	case time.Time:
		if v.IsZero() {
			return table.NewMissingValue()
		}
		return table.NewDateValue(v)
	case bool:
		return table.NewBooleanValue(v)
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return table.NewMissingValue()
		}
		return table.NewNumberValue(v)
	case float32:
		return Coerce(float64(v))
	case int:
		return table.NewNumberValue(float64(v))
	case int64:
		return table.NewNumberValue(float64(v))
	case string:
		return coerceString(v)
	default:
		return coerceString(fmt.Sprint(raw))
	}
}

func coerceString(raw string) table.Value {
	trimmed := strings.TrimSpace(raw)
	if isNullToken(trimmed) {
		return table.NewMissingValue()
	}

	if numericPattern.MatchString(trimmed) {
		if n, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsInf(n, 0) {
			return table.NewNumberValue(n)
		}
	}

	switch strings.ToLower(trimmed) {
	case "true":
		return table.NewBooleanValue(true)
	case "false":
		return table.NewBooleanValue(false)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return table.NewDateValue(t)
		}
	}

	return table.NewStringValue(trimmed)
}

// isNullToken recognizes the tokens that coerce to missing: empty
// string and case-insensitive "na" / "null".
func isNullToken(trimmed string) bool {
	if trimmed == "" {
		return true
	}
	lower := strings.ToLower(trimmed)
	return lower == "na" || lower == "null"
}
