package app

import (
	"fmt"
	"strings"

	"datasense/domain/dataset"
	"datasense/domain/profile"
)

// SummaryBlock renders the dataset profile as a markdown block: one
// line per column with its type and inline stats. The text is handed
// verbatim to downstream prompt assembly and to the summary endpoint.
func SummaryBlock(ds *dataset.Dataset) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Dataset: %s\n\n", ds.OriginalFilename)
	fmt.Fprintf(&b, "%d rows, %d columns, %.1f%% missing cells\n\n", ds.RecordCount, ds.FieldCount, ds.MissingRate*100)

	for _, col := range ds.Columns {
		fmt.Fprintf(&b, "- **%s** (%s): %s\n", col.Name, col.Type, inlineStats(col))
	}
	return b.String()
}

func inlineStats(col profile.ColumnInfo) string {
	s := col.Stats
	parts := []string{fmt.Sprintf("%d missing", s.MissingCount)}

	switch col.Type {
	case profile.TypeNumber:
		if s.Mean != nil {
			parts = append(parts, fmt.Sprintf("mean %.4g", *s.Mean))
		}
		if s.Median != nil {
			parts = append(parts, fmt.Sprintf("median %.4g", *s.Median))
		}
		if s.StdDev != nil {
			parts = append(parts, fmt.Sprintf("stddev %.4g", *s.StdDev))
		}
		if s.NumMin != nil && s.NumMax != nil {
			parts = append(parts, fmt.Sprintf("range %.4g to %.4g", *s.NumMin, *s.NumMax))
		}
	case profile.TypeDate:
		if s.DateMin != "" {
			parts = append(parts, fmt.Sprintf("from %s to %s", s.DateMin, s.DateMax))
		}
	default:
		if len(s.UniqueValues) > 0 {
			parts = append(parts, fmt.Sprintf("%d distinct values", len(s.UniqueValues)))
		}
		if s.StrMode != nil {
			parts = append(parts, fmt.Sprintf("most frequent %q", *s.StrMode))
		}
	}

	return strings.Join(parts, ", ")
}
