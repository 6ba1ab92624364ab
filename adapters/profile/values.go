package profile

import (
	"datasense/adapters/tabular"
	"datasense/domain/table"
)

// asNumeric re-coerces a value to a number where possible. Numbers pass
// through; strings go back through the coercion rules so numeric-looking
// text still counts. Booleans and dates are never numeric.
func asNumeric(v table.Value) (float64, bool) {
	switch {
	case v.IsNumber():
		return v.AsFloat64(), true
	case v.IsString():
		if c := tabular.Coerce(v.AsString()); c.IsNumber() {
			return c.AsFloat64(), true
		}
	}
	return 0, false
}
