// =============================================================================
// UPN Tools - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, which turns the payer list into
// the ArrayOfUPN document.
//
// COMMAND USAGE:
//   upn convert [flags]
//
// FLAGS:
//   --base-dir    : Directory that relative CSV_FILE / OUTPUT_* paths and
//                   the env file are resolved against (default ".")
//   --env-file    : KEY=VALUE file loaded before settings are resolved
//   --dry-run     : Print the document as UTF-8 instead of writing anything
//   --csv-report  : Also write the built records as semicolon CSV
//
// PROCESSING PIPELINE:
//   1. Load the env file (existing environment variables win)
//   2. Resolve settings (environment > profile > defaults)
//   3. Run the converter
//   4. Print the output path and record count
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/upn-tools/internal/config"
	"github.com/ginjaninja78/upn-tools/internal/converter"
	"github.com/ginjaninja78/upn-tools/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// baseDir anchors relative paths.
var baseDir string

// envFile is loaded into the environment before settings are resolved.
var envFile string

// dryRun builds records without writing output files.
var dryRun bool

// csvReport is an optional CSV copy of the built records.
var csvReport string

// =============================================================================
// CONVERT COMMAND DEFINITION
// =============================================================================

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert the payer list to ArrayOfUPN XML",
	Long: `The convert command reads the payer list named by CSV_FILE (semicolon
separated; UTF-8, Windows-1250 or Latin-1; or an .xlsx workbook) and writes
one UPN record per row to OUTPUT_TXT (or OUTPUT_XML) as UTF-16 XML.

Payee, amount, purpose and flags come from the environment, optionally
pre-loaded from the env file. Payer name and address come from the row
unless BREME_IME / BREME_ULICA / BREME_KRAJ are set.

Records that exceed the printed form's limits are reported as warnings and
written unchanged. With --dry-run the document is printed as UTF-8 and no
file is written.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	addSettingsFlags(convertCmd)

	convertCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Parse and build records without writing output files",
	)

	convertCmd.Flags().StringVar(
		&csvReport,
		"csv-report",
		"",
		"Also write the built records to this semicolon CSV file",
	)
}

// addSettingsFlags registers the flags that control settings resolution.
func addSettingsFlags(c *cobra.Command) {
	c.Flags().StringVar(&baseDir, "base-dir", ".", "Directory relative paths are resolved against")
	c.Flags().StringVar(&envFile, "env-file", ".env", "KEY=VALUE file loaded before resolving settings")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runConvert(cmd *cobra.Command) error {
	logger := newLogger(cmd.ErrOrStderr())

	settings, err := loadSettings(logger)
	if err != nil {
		return err
	}

	result := converter.New(settings, converter.Options{
		BaseDir:   baseDir,
		DryRun:    dryRun,
		CSVReport: csvReport,
	}, logger).Run()
	if result.Error != nil {
		return result.Error
	}

	logger.Debug("conversion finished",
		"run", result.RunID,
		"rows", result.Stats.RowsProcessed,
		"warnings", result.Stats.ValidationWarnings,
		"encoding", result.Stats.Encoding,
		"elapsed", result.Stats.ProcessingTime)

	out := cmd.OutOrStdout()
	if dryRun {
		fmt.Fprintf(out, "Dry run: %s not written (UPN records: %d)\n", result.OutputFile, len(result.Records))
		fmt.Fprintln(out, result.Preview)
		return nil
	}
	fmt.Fprintf(out, "Created: %s (UPN records: %d)\n", result.OutputFile, len(result.Records))
	if result.ReportFile != "" {
		fmt.Fprintf(out, "Report:  %s\n", result.ReportFile)
	}
	return nil
}

// loadSettings loads the env file and resolves the effective settings.
func loadSettings(logger *slog.Logger) (config.Settings, error) {
	path := utils.ResolvePath(baseDir, envFile)
	keys, err := config.LoadEnvFile(path)
	if err != nil {
		return config.Settings{}, fmt.Errorf("failed to load %s: %w", path, err)
	}
	logger.Debug("env file", "file", path, "exported", len(keys))

	settings, err := config.Resolve(config.Options{ProfileFile: cfgFile})
	if err != nil {
		return config.Settings{}, err
	}
	return settings, nil
}
