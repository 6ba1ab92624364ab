package table

import (
	"strconv"
	"strings"
	"time"
)

// ValueType defines the storage type for cell values
type ValueType string

const (
	ValueTypeString  ValueType = "string"
	ValueTypeNumber  ValueType = "number"
	ValueTypeBoolean ValueType = "boolean"
	ValueTypeDate    ValueType = "date"
	ValueTypeMissing ValueType = "missing"
)

// DateLayout is the canonical rendering for date values
const DateLayout = "2006-01-02"

// Value represents a typed cell value with deterministic coercion.
// Exactly one payload field is set for non-missing values.
type Value struct {
	Type       ValueType  `json:"type"`
	StringVal  *string    `json:"string_val,omitempty"`
	NumberVal  *float64   `json:"number_val,omitempty"`
	BooleanVal *bool      `json:"boolean_val,omitempty"`
	DateVal    *time.Time `json:"date_val,omitempty"`
}

// NewStringValue creates a string value
func NewStringValue(s string) Value {
	if s == "" {
		return NewMissingValue()
	}
	return Value{Type: ValueTypeString, StringVal: &s}
}

// NewNumberValue creates a numeric value
func NewNumberValue(n float64) Value {
	return Value{Type: ValueTypeNumber, NumberVal: &n}
}

// NewBooleanValue creates a boolean value
func NewBooleanValue(b bool) Value {
	return Value{Type: ValueTypeBoolean, BooleanVal: &b}
}

// NewDateValue creates a date value
func NewDateValue(t time.Time) Value {
	return Value{Type: ValueTypeDate, DateVal: &t}
}

// NewMissingValue creates a missing value
func NewMissingValue() Value {
	return Value{Type: ValueTypeMissing}
}

// IsMissing reports whether the value carries no data
func (v Value) IsMissing() bool {
	return v.Type == ValueTypeMissing
}

// IsNumber reports whether the value holds a valid number
func (v Value) IsNumber() bool {
	return v.Type == ValueTypeNumber && v.NumberVal != nil
}

// IsBoolean reports whether the value holds a valid boolean
func (v Value) IsBoolean() bool {
	return v.Type == ValueTypeBoolean && v.BooleanVal != nil
}

// IsDate reports whether the value holds a valid date
func (v Value) IsDate() bool {
	return v.Type == ValueTypeDate && v.DateVal != nil
}

// IsString reports whether the value holds a valid string
func (v Value) IsString() bool {
	return v.Type == ValueTypeString && v.StringVal != nil
}

// AsFloat64 returns the numeric payload, or 0 if not numeric
func (v Value) AsFloat64() float64 {
	if v.NumberVal != nil {
		return *v.NumberVal
	}
	return 0
}

// AsString returns the string payload, or empty string if not a string
func (v Value) AsString() string {
	if v.StringVal != nil {
		return *v.StringVal
	}
	return ""
}

// AsBoolean returns the boolean payload, or false if not a boolean
func (v Value) AsBoolean() bool {
	if v.BooleanVal != nil {
		return *v.BooleanVal
	}
	return false
}

// AsDate returns the date payload, or the zero time if not a date
func (v Value) AsDate() time.Time {
	if v.DateVal != nil {
		return *v.DateVal
	}
	return time.Time{}
}

// Key returns the canonical string rendering used for value counting
// and unique-value tracking. Numbers render without trailing zeros,
// dates as YYYY-MM-DD.
func (v Value) Key() string {
	switch v.Type {
	case ValueTypeString:
		return v.AsString()
	case ValueTypeNumber:
		return strconv.FormatFloat(v.AsFloat64(), 'f', -1, 64)
	case ValueTypeBoolean:
		return strconv.FormatBool(v.AsBoolean())
	case ValueTypeDate:
		return v.AsDate().Format(DateLayout)
	}
	return ""
}

// Row maps a column name to its typed value. Rows are immutable once a
// parser produces them; downstream components only read.
type Row map[string]Value

// Table is a rectangular, typed view of one uploaded file. Headers keep
// the source column order; every row carries exactly the header keys.
type Table struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// Empty is the deliberate "no usable structure" terminal state for
// degenerate inputs, distinct from a parse failure.
func Empty() *Table {
	return &Table{Headers: []string{}, Rows: []Row{}}
}

// Column returns the values of one column in row order. A name that is
// not a header yields an empty slice.
func (t *Table) Column(name string) []Value {
	values := make([]Value, 0, len(t.Rows))
	for _, row := range t.Rows {
		v, ok := row[name]
		if !ok {
			continue
		}
		values = append(values, v)
	}
	return values
}

// HasColumn reports whether name matches a header case-insensitively and
// returns the canonical header spelling.
func (t *Table) HasColumn(name string) (string, bool) {
	for _, h := range t.Headers {
		if strings.EqualFold(h, name) {
			return h, true
		}
	}
	return "", false
}
