package profile

import (
	"sort"

	"github.com/montanaflynn/stats"

	"datasense/domain/profile"
	"datasense/domain/table"
)

// typeSampleSize bounds the deterministic prefix of non-missing values
// used for majority-vote type inference.
const typeSampleSize = 200

// Analyzer infers one dominant semantic type per column and computes a
// per-column statistics summary.
type Analyzer struct{}

// NewAnalyzer creates a column analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze profiles every column of the table, order-preserving
func (a *Analyzer) Analyze(t *table.Table) []profile.ColumnInfo {
	infos := make([]profile.ColumnInfo, 0, len(t.Headers))
	for _, header := range t.Headers {
		infos = append(infos, a.analyzeColumn(header, t.Column(header), len(t.Rows)))
	}
	return infos
}

func (a *Analyzer) analyzeColumn(name string, values []table.Value, total int) profile.ColumnInfo {
	present := make([]table.Value, 0, len(values))
	for _, v := range values {
		if !v.IsMissing() {
			present = append(present, v)
		}
	}

	info := profile.ColumnInfo{
		Name:  name,
		Stats: profile.ColumnStats{MissingCount: total - len(present)},
	}

	if len(present) == 0 {
		info.Type = profile.TypeUnknown
		return info
	}

	sample := present
	if len(sample) > typeSampleSize {
		sample = sample[:typeSampleSize]
	}
	info.Type = inferType(sample)

	switch info.Type {
	case profile.TypeNumber:
		numbers := numericValues(present)
		if len(numbers) == 0 {
			// Typed numeric but nothing survived re-coercion; profile
			// it as categorical instead.
			fillCategorical(&info.Stats, present)
		} else {
			fillNumeric(&info.Stats, numbers)
		}
	case profile.TypeString, profile.TypeBoolean:
		fillCategorical(&info.Stats, present)
	case profile.TypeDate:
		fillDateRange(&info.Stats, present)
	}

	if info.Stats.UniqueValues == nil {
		info.Stats.UniqueValues = uniqueKeys(present)
	}

	return info
}

// inferType tallies value tags over the sample and picks the strict
// majority. The first tag to reach the running maximum stands unless a
// later tag exceeds it.
func inferType(sample []table.Value) profile.ColumnType {
	counts := make(map[table.ValueType]int, 4)
	var winner table.ValueType
	best := 0
	for _, v := range sample {
		counts[v.Type]++
		if counts[v.Type] > best {
			best = counts[v.Type]
			winner = v.Type
		}
	}

	inferred := profile.TypeForTag(winner)
	if inferred == profile.TypeString && allNumericLooking(sample) {
		return profile.TypeNumber
	}
	return inferred
}

// allNumericLooking is the correction policy for columns the vote left
// as String even though every sampled value is blank or renders as a
// plain numeric string.
func allNumericLooking(sample []table.Value) bool {
	for _, v := range sample {
		key := v.Key()
		if key == "" {
			continue
		}
		if _, ok := asNumeric(v); !ok {
			return false
		}
	}
	return true
}

func fillNumeric(s *profile.ColumnStats, numbers []float64) {
	sorted := append([]float64(nil), numbers...)
	sort.Float64s(sorted)

	mean, _ := stats.Mean(sorted)
	median, _ := stats.Median(sorted)
	s.Mean = &mean
	s.Median = &median
	s.NumMin = &sorted[0]
	s.NumMax = &sorted[len(sorted)-1]

	// Sample standard deviation; a single value is well-defined as 0
	// since the variance numerator is already 0.
	stdDev := 0.0
	if len(sorted) > 1 {
		stdDev, _ = stats.StandardDeviationSample(sorted)
	}
	s.StdDev = &stdDev

	mode := numericMode(numbers)
	s.NumMode = &mode

	if markers := shapeMarkers(numbers); markers != nil {
		s.Distribution = markers
	}
}

// numericMode picks the most frequent value; ties break toward the
// first value to reach the shared maximum, in first-occurrence order.
func numericMode(numbers []float64) float64 {
	counts := make(map[float64]int, len(numbers))
	best := 0
	mode := numbers[0]
	for _, n := range numbers {
		counts[n]++
		if counts[n] > best {
			best = counts[n]
			mode = n
		}
	}
	return mode
}

func fillCategorical(s *profile.ColumnStats, present []table.Value) {
	s.ValueCounts = make(map[string]int, len(present))
	s.UniqueValues = make([]string, 0)
	best := 0
	var mode string
	for _, v := range present {
		key := v.Key()
		if _, seen := s.ValueCounts[key]; !seen {
			s.UniqueValues = append(s.UniqueValues, key)
		}
		s.ValueCounts[key]++
		if s.ValueCounts[key] > best {
			best = s.ValueCounts[key]
			mode = key
		}
	}
	s.StrMode = &mode
}

func fillDateRange(s *profile.ColumnStats, present []table.Value) {
	var hasDate bool
	var min, max table.Value
	for _, v := range present {
		if !v.IsDate() {
			continue
		}
		if !hasDate {
			min, max = v, v
			hasDate = true
			continue
		}
		if v.AsDate().Before(min.AsDate()) {
			min = v
		}
		if v.AsDate().After(max.AsDate()) {
			max = v
		}
	}
	if hasDate {
		s.DateMin = min.AsDate().Format(table.DateLayout)
		s.DateMax = max.AsDate().Format(table.DateLayout)
	}
}

// uniqueKeys deduplicates values by canonical key in first-occurrence
// order.
func uniqueKeys(present []table.Value) []string {
	seen := make(map[string]struct{}, len(present))
	keys := make([]string, 0, len(present))
	for _, v := range present {
		key := v.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}

// numericValues re-coerces values to numbers, dropping any that fail
func numericValues(present []table.Value) []float64 {
	numbers := make([]float64, 0, len(present))
	for _, v := range present {
		if n, ok := asNumeric(v); ok {
			numbers = append(numbers, n)
		}
	}
	return numbers
}
