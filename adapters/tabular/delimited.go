package tabular

import (
	"strings"

	"datasense/domain/table"
)

// ParseDelimited turns delimited text (CSV or TSV) into a typed table.
// The first non-empty line is the header row; whitespace-only lines are
// skipped entirely. Fields are trimmed and stripped of one layer of
// surrounding quotes before coercion. Quoted fields containing the
// delimiter itself are not supported.
func ParseDelimited(text string, delimiter rune) *table.Table {
	lines := splitLines(text)

	headers := []string{}
	start := 0
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		for _, cell := range strings.Split(line, string(delimiter)) {
			headers = append(headers, unquote(strings.TrimSpace(cell)))
		}
		start = i + 1
		break
	}
	if len(headers) == 0 {
		return table.Empty()
	}

	rows := make([]table.Row, 0, len(lines)-start)
	for _, line := range lines[start:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, string(delimiter))
		row := make(table.Row, len(headers))
		for i, header := range headers {
			if i < len(fields) {
				row[header] = Coerce(unquote(strings.TrimSpace(fields[i])))
			} else {
				row[header] = table.NewMissingValue()
			}
		}
		rows = append(rows, row)
	}

	return &table.Table{Headers: headers, Rows: rows}
}

// splitLines breaks text on CRLF, CR, or LF boundaries
func splitLines(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return strings.Split(normalized, "\n")
}

// unquote strips one layer of surrounding matching quote characters
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
