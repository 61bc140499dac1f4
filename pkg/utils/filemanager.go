// =============================================================================
// UPN Tools - File Manager Utility
// =============================================================================
//
// This module provides the file handling shared by the converter and the
// PDF aligner:
//   - Path resolution against a base directory
//   - Parent directory creation
//   - Whole-file writes that never leave a partial file behind
//   - The optional semicolon CSV report of built records
//
// WRITE STRATEGY:
//   - Data is written to a temporary file next to the target
//   - The temporary file is synced, closed and renamed over the target
//   - On any error the temporary file is removed and the target is untouched
//
// =============================================================================

package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/ginjaninja78/upn-tools/internal/types"
)

// ReportDelimiter separates CSV report columns, matching the payer list.
const ReportDelimiter = ';'

// =============================================================================
// PATHS AND DIRECTORIES
// =============================================================================

// ResolvePath anchors a relative path at baseDir. Absolute paths are
// returned cleaned but otherwise unchanged.
func ResolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	if baseDir == "" {
		baseDir = "."
	}
	return filepath.Join(baseDir, path)
}

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// =============================================================================
// FILE WRITING
// =============================================================================

// WriteFile writes data to path, creating parent directories as needed.
func WriteFile(path string, data []byte) error {
	if err := EnsureParentDir(path); err != nil {
		return err
	}

	return writeAtomic(path, func(f *os.File) error {
		_, err := f.Write(data)
		return err
	})
}

// WriteCSVReport writes the records as a semicolon-separated CSV with one
// header row of UPN tag names.
func WriteCSVReport(path string, records []types.UPN) error {
	if err := EnsureParentDir(path); err != nil {
		return err
	}

	return writeAtomic(path, func(f *os.File) error {
		w := csv.NewWriter(f)
		w.Comma = ReportDelimiter

		out := gocsv.NewSafeCSVWriter(w)
		if err := gocsv.MarshalCSV(records, out); err != nil {
			return err
		}
		out.Flush()
		return out.Error()
	})
}

// writeAtomic fills a temporary file through fill and renames it to path.
func writeAtomic(path string, fill func(*os.File) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = fill(tmp); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}
