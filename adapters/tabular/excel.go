package tabular

import (
	"bytes"
	"strings"

	"github.com/xuri/excelize/v2"

	"datasense/domain/table"
	"datasense/internal/errors"
)

// ParseWorkbook reads the first sheet of an xlsx workbook into a typed
// table. Only unreadable or corrupt binary input is an error; degenerate
// sheets (no header row, all-empty headers with no data) degrade to an
// empty table.
func ParseWorkbook(data []byte) (*table.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.ParseError("failed to open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return table.Empty(), nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.ParseError("failed to read first sheet", err)
	}
	if len(rows) == 0 {
		return table.Empty(), nil
	}

	headers := make([]string, len(rows[0]))
	allHeadersEmpty := true
	for i, cell := range rows[0] {
		headers[i] = strings.TrimSpace(cell)
		if headers[i] != "" {
			allHeadersEmpty = false
		}
	}

	dataRows := make([]table.Row, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		row := make(table.Row, len(headers))
		empty := true
		for i, header := range headers {
			var v table.Value
			if i < len(raw) {
				v = Coerce(raw[i])
			} else {
				v = table.NewMissingValue()
			}
			row[header] = v
			if !v.IsMissing() {
				empty = false
			}
		}
		// Rows missing across every column carry no information
		if empty {
			continue
		}
		dataRows = append(dataRows, row)
	}

	if allHeadersEmpty && len(dataRows) == 0 {
		return table.Empty(), nil
	}

	return &table.Table{Headers: headers, Rows: dataRows}, nil
}
