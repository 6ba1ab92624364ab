package interpret

import "testing"

func TestParseOperation(t *testing.T) {
	tests := []struct {
		raw       string
		want      Operation
		wantKnown bool
	}{
		{"SUM", OpSum, true},
		{"average", OpAverage, true},
		{" Median ", OpMedian, true},
		{"COUNTUNIQUE", OpCountUnique, true},
		{"UNKNOWN", OpUnknown, true},
		{"unknown", OpUnknown, true},
		{"FOOBAR", OpUnknown, false},
		{"", OpUnknown, false},
	}
	for _, tc := range tests {
		got, known := ParseOperation(tc.raw)
		if got != tc.want || known != tc.wantKnown {
			t.Errorf("ParseOperation(%q) = %v/%v, want %v/%v", tc.raw, got, known, tc.want, tc.wantKnown)
		}
	}
}
