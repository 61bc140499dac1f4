// =============================================================================
// UPN Tools - XLSX Payer List Reader
// =============================================================================
//
// Some payer lists are kept as spreadsheets rather than exported to CSV.
// This module reads the first sheet of an XLSX workbook with the same rules
// the CSV parser applies:
//
//   | Row 1 (header) | Ime   | Priimek | Naslov            | Postna stevilka | Posta naziv |
//   |----------------|-------|---------|-------------------|-----------------|-------------|
//   | Row 2..n       | Janez | Novak   | Slovenska cesta 1 | 1000            | Ljubljana   |
//
//   - Header names and cell values are whitespace-trimmed
//   - Columns with an empty header are dropped
//   - Rows keep sheet order; fully empty sheet rows are skipped
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/upn-tools/internal/types"
)

// Sheet is the parsed content of a payer list workbook.
type Sheet struct {
	// SourceFile is the path to the workbook.
	SourceFile string

	// SheetName is the name of the sheet that was read.
	SheetName string

	// Headers contains the kept (non-empty) column headers in sheet order.
	Headers []string

	// Rows contains the data rows in column order.
	Rows []types.Row
}

// Parse reads the first sheet of an XLSX workbook.
func Parse(path string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	sheet := &Sheet{
		SourceFile: path,
		SheetName:  sheetName,
		Rows:       []types.Row{},
	}
	if len(rows) == 0 {
		return sheet, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
		if headers[i] != "" {
			sheet.Headers = append(sheet.Headers, headers[i])
		}
	}

	for _, cells := range rows[1:] {
		// GetRows trims trailing empty cells, so an all-blank row is empty.
		if isRowEmpty(cells) {
			continue
		}
		sheet.Rows = append(sheet.Rows, parseRow(cells, headers))
	}

	return sheet, nil
}

// parseRow pairs one sheet row with the header names, in column order.
func parseRow(cells []string, headers []string) types.Row {
	row := make(types.Row, 0, len(headers))
	for i, header := range headers {
		if header == "" {
			continue
		}
		value := ""
		if i < len(cells) {
			value = strings.TrimSpace(cells[i])
		}
		row = append(row, types.Cell{Column: header, Value: value})
	}
	return row
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
