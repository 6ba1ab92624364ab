package dataset

import (
	"time"

	"datasense/domain/profile"
	"datasense/domain/table"
)

// Dataset is one uploaded table together with its computed profile.
// Table and Columns are produced once on upload and never mutated; a new
// upload creates an independent Dataset.
type Dataset struct {
	ID               string    `json:"id"`
	OriginalFilename string    `json:"original_filename"`
	RecordCount      int       `json:"record_count"`
	FieldCount       int       `json:"field_count"`
	MissingRate      float64   `json:"missing_rate"`
	CreatedAt        time.Time `json:"created_at"`

	Table   *table.Table         `json:"-"`
	Columns []profile.ColumnInfo `json:"columns"`
}

// MissingRateOf computes the share of missing cells across all columns
func MissingRateOf(columns []profile.ColumnInfo, recordCount int) float64 {
	if recordCount == 0 || len(columns) == 0 {
		return 0
	}
	missing := 0
	for _, col := range columns {
		missing += col.Stats.MissingCount
	}
	return float64(missing) / float64(recordCount*len(columns))
}
