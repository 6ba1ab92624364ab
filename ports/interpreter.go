package ports

import (
	"context"

	"datasense/domain/interpret"
)

// Interpreter maps a free-form question onto a statistical operation
// against a concrete column schema. Implementations return the raw,
// unvalidated reading; the bridge sanitizes it against the real schema.
type Interpreter interface {
	Interpret(ctx context.Context, question string, columns []interpret.ColumnRef) (*interpret.CalculationInterpretation, error)
}
