// =============================================================================
// UPN Tools - Converter Module
// =============================================================================
//
// This module orchestrates a full payer-list-to-XML conversion.
//
// CONVERSION PIPELINE:
//   1. Resolve input and output paths against the base directory
//   2. Parse the payer list (CSV with encoding fallback, or XLSX)
//   3. Build one UPN record per row
//   4. Check records against UPN form limits (warnings only)
//   5. Serialize the ArrayOfUPN document (UTF-16)
//   6. Write the optional CSV report, then the output file
//
// Nothing is written until every record is built and serialized. Each file
// is replaced atomically; if the XML write fails, the report written by the
// same run is removed again. Nothing is retried.
//
// =============================================================================

package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ginjaninja78/upn-tools/internal/config"
	"github.com/ginjaninja78/upn-tools/internal/csvparser"
	"github.com/ginjaninja78/upn-tools/internal/types"
	"github.com/ginjaninja78/upn-tools/internal/validation"
	"github.com/ginjaninja78/upn-tools/internal/xlsxparser"
	"github.com/ginjaninja78/upn-tools/internal/xmlwriter"
	"github.com/ginjaninja78/upn-tools/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one conversion run.
type Result struct {
	// RunID identifies this run in logs.
	RunID string

	// InputFile is the resolved path of the payer list.
	InputFile string

	// OutputFile is the resolved path of the XML document.
	// It is set even on a dry run, where nothing is written.
	OutputFile string

	// ReportFile is the CSV report path, if one was requested.
	ReportFile string

	// Records are the built UPN records, in row order.
	Records []types.UPN

	// Preview is the document as UTF-8 text. Only set on a dry run.
	Preview string

	// Success indicates whether the run completed.
	Success bool

	// Error contains the error if the run failed.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// RowsProcessed is the number of payer rows read.
	RowsProcessed int

	// RecordsCreated is the number of UPN records written.
	RecordsCreated int

	// ValidationWarnings is the number of form-limit warnings.
	ValidationWarnings int

	// Encoding is the encoding the payer list was decoded with
	// ("xlsx" for workbooks).
	Encoding string

	// BytesWritten is the size of the XML document.
	BytesWritten int

	// ProcessingTime is the time taken by the run.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Options controls a conversion run.
type Options struct {
	// BaseDir anchors relative CSV_FILE / OUTPUT_* paths. Default ".".
	BaseDir string

	// DryRun parses and builds records but writes nothing.
	DryRun bool

	// CSVReport, if set, is an extra semicolon CSV of the built records.
	// Relative paths are resolved against BaseDir.
	CSVReport string
}

// Logger is the logging surface the converter needs. *slog.Logger
// satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Converter runs one conversion for a resolved configuration.
type Converter struct {
	settings config.Settings
	options  Options
	logger   Logger
}

// New creates a new Converter. A nil logger discards all output.
func New(settings config.Settings, options Options, logger Logger) *Converter {
	if options.BaseDir == "" {
		options.BaseDir = "."
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &Converter{
		settings: settings,
		options:  options,
		logger:   logger,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{
		RunID:      uuid.New().String(),
		InputFile:  utils.ResolvePath(c.options.BaseDir, c.settings.CSVFile),
		OutputFile: utils.ResolvePath(c.options.BaseDir, c.settings.OutputFile),
	}
	log := withRun(c.logger, result.RunID)

	// =========================================================================
	// STEP 1: PARSE PAYER LIST
	// =========================================================================

	log.Info("reading payer list", "file", result.InputFile)

	rows, encoding, err := loadRows(result.InputFile)
	if err != nil {
		result.Error = err
		return result
	}

	result.Stats.RowsProcessed = len(rows)
	result.Stats.Encoding = encoding
	log.Debug("parsed payer list", "rows", len(rows), "encoding", encoding)

	// =========================================================================
	// STEP 2: BUILD RECORDS
	// =========================================================================

	result.Records = NewBuilder(c.settings).BuildAll(rows)
	result.Stats.RecordsCreated = len(result.Records)

	// =========================================================================
	// STEP 3: VALIDATE (NON-FATAL)
	// =========================================================================

	warnings := validation.Validate(result.Records)
	result.Stats.ValidationWarnings = len(warnings)
	for _, w := range warnings {
		log.Warn("form limit exceeded", "record", w.RecordID, "field", w.Field, "rule", w.Rule, "value", w.Value)
	}

	// =========================================================================
	// STEP 4: SERIALIZE
	// =========================================================================

	doc, err := xmlwriter.Generate(result.Records)
	if err != nil {
		result.Error = fmt.Errorf("failed to generate XML: %w", err)
		return result
	}
	result.Stats.BytesWritten = len(doc)

	if c.options.DryRun {
		result.Preview = string(xmlwriter.GenerateUTF8(result.Records))
		log.Info("dry run, nothing written", "records", len(result.Records), "output", result.OutputFile)
		result.Success = true
		result.Stats.ProcessingTime = time.Since(startTime)
		return result
	}

	// =========================================================================
	// STEP 5: WRITE OUTPUT
	// =========================================================================

	if c.options.CSVReport != "" {
		result.ReportFile = utils.ResolvePath(c.options.BaseDir, c.options.CSVReport)
		if err := utils.WriteCSVReport(result.ReportFile, result.Records); err != nil {
			result.Error = fmt.Errorf("failed to write CSV report: %w", err)
			return result
		}
		log.Debug("wrote CSV report", "file", result.ReportFile)
	}

	if err := utils.WriteFile(result.OutputFile, doc); err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		if result.ReportFile != "" {
			if rmErr := os.Remove(result.ReportFile); rmErr != nil {
				log.Error("failed to remove CSV report", "file", result.ReportFile, "error", rmErr)
			}
		}
		return result
	}
	log.Debug("wrote XML", "file", result.OutputFile, "bytes", len(doc))

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)
	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// loadRows reads the payer list, picking the reader by file extension.
func loadRows(path string) ([]types.Row, string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		sheet, err := xlsxparser.Parse(path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to parse workbook: %w", err)
		}
		return sheet.Rows, "xlsx", nil
	}

	data, err := csvparser.Parse(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse CSV: %w", err)
	}
	return data.Rows, data.Encoding, nil
}

// =============================================================================
// LOGGING
// =============================================================================

// runLogger prefixes every log call with the run identifier.
type runLogger struct {
	base  Logger
	runID string
}

func withRun(l Logger, runID string) Logger {
	return runLogger{base: l, runID: runID}
}

func (l runLogger) with(args []any) []any {
	return append([]any{"run", l.runID}, args...)
}

func (l runLogger) Debug(msg string, args ...any) { l.base.Debug(msg, l.with(args)...) }
func (l runLogger) Info(msg string, args ...any)  { l.base.Info(msg, l.with(args)...) }
func (l runLogger) Warn(msg string, args ...any)  { l.base.Warn(msg, l.with(args)...) }
func (l runLogger) Error(msg string, args ...any) { l.base.Error(msg, l.with(args)...) }

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
