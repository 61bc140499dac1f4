// =============================================================================
// UPN Tools - CSV Parser Module
// =============================================================================
//
// This module parses the semicolon-delimited payer list exported from the
// membership spreadsheet. Exports arrive in whatever encoding the exporting
// machine used, so the file is decoded by trying a fixed, ordered list of
// candidate encodings; the first that decodes cleanly wins.
//
// PARSING RULES:
//   - Delimiter is ';'
//   - The first record is the header row
//   - Header names and cell values are whitespace-trimmed
//   - Columns with an empty header are dropped from every row
//   - Missing trailing cells become ""; surplus cells are dropped
//   - Rows keep file order; no deduplication, no type coercion
//
// =============================================================================

package csvparser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/upn-tools/internal/types"
)

// Delimiter separates fields in the payer list.
const Delimiter = ';'

// =============================================================================
// CSV DATA STRUCTURE
// =============================================================================

// CSVData represents the parsed CSV file.
type CSVData struct {
	// Headers contains the kept (non-empty) column headers in file order.
	Headers []string

	// Rows contains the data rows in column order.
	Rows []types.Row

	// SourceFile is the path to the source CSV file.
	SourceFile string

	// Encoding is the name of the candidate encoding that decoded the file.
	Encoding string

	// Attempts records every decode attempt made, in order. The last entry
	// is the successful one.
	Attempts []DecodeAttempt
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the parsed rows.
//
// PARSING PROCESS:
//  1. Read the raw bytes
//  2. Decode them with the first candidate encoding that succeeds
//  3. Read all records with ';' as delimiter
//  4. Clean the header row and convert every data record to a Row
//
// If no candidate decodes the file, a *DecodeError is returned.
func Parse(filePath string) (*CSVData, error) {
	return parseWith(filePath, DefaultCandidates())
}

func parseWith(filePath string, candidates []Candidate) (*CSVData, error) {
	raw, err := readFile(filePath)
	if err != nil {
		return nil, err
	}

	text, attempts, err := Decode(raw, candidates)
	if err != nil {
		return nil, &DecodeError{Path: filePath, Attempts: attempts}
	}

	records, err := readRecords(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV %s: %w", filePath, err)
	}

	data := &CSVData{
		SourceFile: filePath,
		Encoding:   attempts[len(attempts)-1].Encoding,
		Attempts:   attempts,
		Rows:       []types.Row{},
	}

	if len(records) == 0 {
		return data, nil
	}

	headers := cleanHeaders(records[0])
	data.Headers = keptHeaders(headers)
	data.Rows = extractDataRows(records[1:], headers)

	return data, nil
}

// readFile loads the whole file; the encoding can only be decided once all
// bytes have been seen.
func readFile(filePath string) ([]byte, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return buf.Bytes(), nil
}

// readRecords reads every record of already-decoded text.
func readRecords(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	configureReader(reader)
	return reader.ReadAll()
}

// configureReader configures the CSV reader for the payer list dialect.
func configureReader(reader *csv.Reader) {
	reader.Comma = Delimiter

	// Exports are hand-edited; rows may be short or long.
	reader.FieldsPerRecord = -1

	// Allow lazy quotes (quotes that don't follow strict CSV rules).
	reader.LazyQuotes = true
}

// cleanHeaders trims every header. Empty headers stay in place (so column
// indexes still line up) and are skipped when rows are built.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		cleaned[i] = strings.TrimSpace(header)
	}
	return cleaned
}

func keptHeaders(headers []string) []string {
	kept := make([]string, 0, len(headers))
	for _, header := range headers {
		if header != "" {
			kept = append(kept, header)
		}
	}
	return kept
}

// extractDataRows converts records to rows in header order.
// Columns with an empty header are dropped.
func extractDataRows(records [][]string, headers []string) []types.Row {
	rows := make([]types.Row, 0, len(records))

	for _, record := range records {
		row := make(types.Row, 0, len(headers))

		for colIndex, header := range headers {
			if header == "" {
				continue
			}
			value := ""
			if colIndex < len(record) {
				value = strings.TrimSpace(record[colIndex])
			}
			row = append(row, types.Cell{Column: header, Value: value})
		}

		rows = append(rows, row)
	}

	return rows
}
