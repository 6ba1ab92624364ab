package profile

import (
	"math"
	"testing"

	"datasense/adapters/tabular"
	"datasense/domain/interpret"
	"datasense/domain/table"
)

func calcCSV(t *testing.T, text string, op interpret.Operation) table.Value {
	t.Helper()
	return NewCalculator().Calculate(tabular.ParseDelimited(text, ','), "col", op)
}

// Non-numeric entries are excluded from SUM, not counted as zero
func TestCalculateSumExcludesNonNumeric(t *testing.T) {
	result := calcCSV(t, "col\n5\nabc\n10\nnull", interpret.OpSum)
	if !result.IsNumber() || result.AsFloat64() != 15 {
		t.Fatalf("SUM = %v, want 15", result)
	}
}

func TestCalculateAverageAndMedian(t *testing.T) {
	if avg := calcCSV(t, "col\n1\n2\n3\n4", interpret.OpAverage); avg.AsFloat64() != 2.5 {
		t.Errorf("AVERAGE = %v, want 2.5", avg)
	}
	if med := calcCSV(t, "col\n1\n2\n3\n4", interpret.OpMedian); med.AsFloat64() != 2.5 {
		t.Errorf("MEDIAN = %v, want 2.5", med)
	}
	if med := calcCSV(t, "col\n1\n2\n3", interpret.OpMedian); med.AsFloat64() != 2 {
		t.Errorf("MEDIAN = %v, want 2", med)
	}
	if avg := calcCSV(t, "col\nx\ny", interpret.OpAverage); !avg.IsMissing() {
		t.Errorf("AVERAGE over non-numeric column = %v, want missing", avg)
	}
}

// COUNT and COUNTA draw no distinction; both count non-missing values
func TestCalculateCountVariants(t *testing.T) {
	text := "col\n5\nabc\n\n10"
	count := calcCSV(t, text, interpret.OpCount)
	counta := calcCSV(t, text, interpret.OpCountA)
	if count.AsFloat64() != counta.AsFloat64() {
		t.Fatalf("COUNT %v != COUNTA %v", count, counta)
	}
	if count.AsFloat64() != 3 {
		t.Fatalf("COUNT = %v, want 3", count)
	}
}

// Distinctness is by coerced identity; plain "1" coerces to the number
// 1, so it collapses with numeric 1 rather than staying a string
func TestCalculateCountUnique(t *testing.T) {
	result := calcCSV(t, "col\n1\n1\n1\n2", interpret.OpCountUnique)
	if result.AsFloat64() != 2 {
		t.Fatalf("COUNTUNIQUE = %v, want 2", result)
	}

	// Differing tags stay distinct even when keys collide
	tbl := columnTable(
		table.NewNumberValue(1),
		table.NewStringValue("1x"),
		table.NewBooleanValue(true),
		table.NewStringValue("true"),
	)
	mixed := NewCalculator().Calculate(tbl, "col", interpret.OpCountUnique)
	if mixed.AsFloat64() != 4 {
		t.Fatalf("COUNTUNIQUE over mixed tags = %v, want 4", mixed)
	}
}

func TestCalculateModeTieBreak(t *testing.T) {
	result := calcCSV(t, "col\na\nb\na\nb", interpret.OpMode)
	if result.AsString() != "a" {
		t.Fatalf("MODE = %v, want a (first to reach max)", result)
	}
}

func TestCalculateModeTypes(t *testing.T) {
	if num := calcCSV(t, "col\n7\n7\n3", interpret.OpMode); !num.IsNumber() || num.AsFloat64() != 7 {
		t.Errorf("numeric MODE = %v, want number 7", num)
	}
	date := calcCSV(t, "col\n2023-05-01\n2023-05-01\n2023-06-01", interpret.OpMode)
	if !date.IsString() || date.AsString() != "2023-05-01" {
		t.Errorf("date MODE = %v, want 2023-05-01", date)
	}
}

func TestCalculateMinMax(t *testing.T) {
	if min := calcCSV(t, "col\n5\n-2\n9", interpret.OpMin); min.AsFloat64() != -2 {
		t.Errorf("MIN = %v, want -2", min)
	}
	if max := calcCSV(t, "col\n5\n-2\n9", interpret.OpMax); max.AsFloat64() != 9 {
		t.Errorf("MAX = %v, want 9", max)
	}
}

// Date-dominated columns compare chronologically and render YYYY-MM-DD
func TestCalculateMinMaxDates(t *testing.T) {
	text := "col\n2023-03-10\n2023-01-05\n2023-12-01"
	if min := calcCSV(t, text, interpret.OpMin); min.AsString() != "2023-01-05" {
		t.Errorf("MIN = %v, want 2023-01-05", min)
	}
	if max := calcCSV(t, text, interpret.OpMax); max.AsString() != "2023-12-01" {
		t.Errorf("MAX = %v, want 2023-12-01", max)
	}
}

func TestCalculateSpread(t *testing.T) {
	stdev := calcCSV(t, "col\n2\n4\n4\n4\n5\n5\n7\n9", interpret.OpStdev)
	if math.Abs(stdev.AsFloat64()-2.138) > 0.001 {
		t.Errorf("STDEV = %v, want ~2.138", stdev.AsFloat64())
	}

	variance := calcCSV(t, "col\n1\n2\n3", interpret.OpVar)
	if variance.AsFloat64() != 1 {
		t.Errorf("VAR = %v, want 1", variance)
	}

	// Fewer than 2 numeric values has no determinate spread
	if single := calcCSV(t, "col\n5", interpret.OpStdev); !single.IsMissing() {
		t.Errorf("STDEV of single value = %v, want missing", single)
	}
}

// A nonexistent column behaves exactly like a column with zero values
func TestCalculateUnknownColumn(t *testing.T) {
	tbl := tabular.ParseDelimited("col\n1\n2", ',')
	calc := NewCalculator()

	if sum := calc.Calculate(tbl, "nope", interpret.OpSum); sum.AsFloat64() != 0 {
		t.Errorf("SUM of unknown column = %v, want 0", sum)
	}
	if avg := calc.Calculate(tbl, "nope", interpret.OpAverage); !avg.IsMissing() {
		t.Errorf("AVERAGE of unknown column = %v, want missing", avg)
	}
	if count := calc.Calculate(tbl, "nope", interpret.OpCount); count.AsFloat64() != 0 {
		t.Errorf("COUNT of unknown column = %v, want 0", count)
	}
}

func TestCalculateUnknownOperation(t *testing.T) {
	tbl := tabular.ParseDelimited("col\n1", ',')
	if r := NewCalculator().Calculate(tbl, "col", interpret.OpUnknown); !r.IsMissing() {
		t.Fatalf("UNKNOWN op = %v, want missing", r)
	}
}
