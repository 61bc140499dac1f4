// =============================================================================
// UPN Tools - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (upn)
//   ├── convertCmd (upn convert)   payer list -> ArrayOfUPN XML
//   ├── alignCmd   (upn align)     UPN form overlay on printed PDF
//   ├── configCmd  (upn config)    show effective settings
//   └── versionCmd (upn version)
//
// The root command owns the global flags (--config, --verbose) and the
// structured logger shared by all subcommands.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile is an optional YAML profile layered under environment variables.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "upn",
	Short: "UPN Tools - payment order XML export and PDF form alignment",
	Long: `UPN Tools prepares Slovenian universal payment orders (UPN) for printing.

It converts a semicolon-separated payer list into the ArrayOfUPN XML document
read by the bank's UPN software, and it lays the scanned UPN form under (or
over) printed slips so printer offsets can be corrected.

Example Usage:
  upn convert                          # 2026.csv -> 2026.txt using .env settings
  upn convert --dry-run -v             # Parse and build without writing
  upn align --x-mm 1.5 --y-mm -2       # Shift the form 1.5 mm right, 2 mm down
  upn config                           # Show the effective settings`,

	SilenceErrors: true,
	SilenceUsage:  true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// LOGGING
// =============================================================================

// newLogger returns a text logger on w, at debug level with --verbose.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Optional YAML profile with default settings (environment still wins)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
