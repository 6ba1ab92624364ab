package profile

import "datasense/domain/table"

// ColumnType is the dominant semantic type inferred for a column
type ColumnType string

const (
	TypeNumber  ColumnType = "number"
	TypeBoolean ColumnType = "boolean"
	TypeDate    ColumnType = "date"
	TypeString  ColumnType = "string"
	// TypeUnknown occurs only when a column has zero non-missing values
	TypeUnknown ColumnType = "unknown"
)

// ColumnStats holds the per-column summary computed by the analyzer.
// MissingCount is always populated; the remaining fields depend on the
// inferred column type.
type ColumnStats struct {
	MissingCount int `json:"missing_count"`

	// Numeric columns (present iff at least one coercible number exists)
	Mean   *float64 `json:"mean,omitempty"`
	Median *float64 `json:"median,omitempty"`
	StdDev *float64 `json:"std_dev,omitempty"`
	NumMin *float64 `json:"num_min,omitempty"`
	NumMax *float64 `json:"num_max,omitempty"`

	// Mode: numeric for number columns, string key otherwise
	NumMode *float64 `json:"num_mode,omitempty"`
	StrMode *string  `json:"str_mode,omitempty"`

	// Categorical columns (string, boolean, or number with zero valid
	// numeric values)
	ValueCounts  map[string]int `json:"value_counts,omitempty"`
	UniqueValues []string       `json:"unique_values,omitempty"`

	// Date columns, rendered YYYY-MM-DD
	DateMin string `json:"date_min,omitempty"`
	DateMax string `json:"date_max,omitempty"`

	// Optional shape markers for numeric columns with enough data
	Distribution *DistributionMarkers `json:"distribution,omitempty"`
}

// DistributionMarkers describes the shape of a numeric column
type DistributionMarkers struct {
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
}

// ColumnInfo pairs a header with its inferred type and stats. Computed
// once per table and treated as immutable for the session.
type ColumnInfo struct {
	Name  string      `json:"name"`
	Type  ColumnType  `json:"type"`
	Stats ColumnStats `json:"stats"`
}

// TypeForTag maps a value tag to its column-type counterpart
func TypeForTag(tag table.ValueType) ColumnType {
	switch tag {
	case table.ValueTypeNumber:
		return TypeNumber
	case table.ValueTypeBoolean:
		return TypeBoolean
	case table.ValueTypeDate:
		return TypeDate
	case table.ValueTypeString:
		return TypeString
	}
	return TypeUnknown
}
