package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"datasense/domain/interpret"
	"datasense/ports"
)

const interpreterSystemMessage = "You translate questions about a dataset into a single " +
	"statistical operation. Respond with a JSON object containing: \"operation\" (one of " +
	"SUM, AVERAGE, MEDIAN, MODE, MIN, MAX, COUNT, COUNTA, COUNTUNIQUE, STDEV, VAR, or " +
	"UNKNOWN), \"columnName\" (the exact column the question refers to, or empty), and " +
	"\"errorMessage\" (why no operation applies, or empty)."

// InterpretationService turns a natural-language question plus a column
// schema into a raw CalculationInterpretation via the chat client. It
// performs no schema validation itself; that is the bridge's job.
type InterpretationService struct {
	client ports.ChatClient
}

// NewInterpretationService creates an interpretation service
func NewInterpretationService(client ports.ChatClient) *InterpretationService {
	return &InterpretationService{client: client}
}

// Interpret sends the verbatim question and the {name,type} schema to
// the model and decodes its flat JSON reply.
func (s *InterpretationService) Interpret(ctx context.Context, question string, columns []interpret.ColumnRef) (*interpret.CalculationInterpretation, error) {
	schema, err := json.Marshal(columns)
	if err != nil {
		return nil, fmt.Errorf("marshal column schema: %w", err)
	}

	prompt := fmt.Sprintf("Dataset columns:\n%s\n\nQuestion: %s", schema, question)

	reply, err := s.client.ChatCompletion(ctx, interpreterSystemMessage, prompt)
	if err != nil {
		return nil, err
	}

	// Wire shape is string-only; operation casing is normalized by the
	// bridge, not here.
	var wire struct {
		Operation    string `json:"operation"`
		ColumnName   string `json:"columnName"`
		ErrorMessage string `json:"errorMessage"`
	}
	if err := json.Unmarshal([]byte(stripFences(reply)), &wire); err != nil {
		return nil, fmt.Errorf("parse interpretation reply: %w", err)
	}

	return &interpret.CalculationInterpretation{
		Operation:    interpret.Operation(wire.Operation),
		ColumnName:   strings.TrimSpace(wire.ColumnName),
		ErrorMessage: strings.TrimSpace(wire.ErrorMessage),
	}, nil
}

// stripFences removes a markdown code fence some models wrap around
// JSON replies.
func stripFences(reply string) string {
	trimmed := strings.TrimSpace(reply)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
