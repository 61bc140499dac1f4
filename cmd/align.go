// =============================================================================
// UPN Tools - Align Command
// =============================================================================
//
// This file defines the 'align' command, which lays the first page of the
// UPN form PDF under or over every page of the printed slips.
//
// COMMAND USAGE:
//   upn align [flags]
//
// FLAGS:
//   --input    : Printed slips (default 2026_izpis.pdf)
//   --overlay  : UPN form, first page used (default ozadje_UPN.pdf)
//   --output   : Result (default 2026_poravnano.pdf)
//   --x-mm     : Shift right in mm, negative shifts left
//   --y-mm     : Shift up in mm, negative shifts down
//   --scale    : Uniform scale of the form, e.g. 0.998 or 1.002
//   --mode     : background (under the content) or stamp (over it)
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/upn-tools/internal/pdfalign"
)

var alignOpts struct {
	input   string
	overlay string
	output  string
	xMM     float64
	yMM     float64
	scale   float64
	mode    string
}

var alignCmd = &cobra.Command{
	Use:   "align",
	Short: "Overlay the UPN form on printed slips with an offset and scale",
	Long: `The align command places the first page of the overlay PDF on every page
of the input PDF. The overlay is scaled first and then shifted by the given
millimetre offsets, measured from the bottom-left corner of the page.

Use --mode background to put the form underneath the printed text, or
--mode stamp to draw it on top.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runAlign(cmd)
	},
}

func init() {
	rootCmd.AddCommand(alignCmd)

	f := alignCmd.Flags()
	f.StringVar(&alignOpts.input, "input", "2026_izpis.pdf", "Input PDF")
	f.StringVar(&alignOpts.overlay, "overlay", "ozadje_UPN.pdf", "PDF with the UPN form (first page)")
	f.StringVar(&alignOpts.output, "output", "2026_poravnano.pdf", "Output PDF")
	f.Float64Var(&alignOpts.xMM, "x-mm", 0, "X offset in mm (+ right, - left)")
	f.Float64Var(&alignOpts.yMM, "y-mm", 0, "Y offset in mm (+ up, - down)")
	f.Float64Var(&alignOpts.scale, "scale", 1.0, "Overlay scale, e.g. 0.998 or 1.002")
	f.StringVar(&alignOpts.mode, "mode", string(pdfalign.ModeBackground), "background = under the content, stamp = over the content")
}

func runAlign(cmd *cobra.Command) error {
	logger := newLogger(cmd.ErrOrStderr())

	mode, err := pdfalign.ParseMode(alignOpts.mode)
	if err != nil {
		return err
	}

	opts := pdfalign.Options{
		Input:     alignOpts.input,
		Overlay:   alignOpts.overlay,
		Output:    alignOpts.output,
		XOffsetMM: alignOpts.xMM,
		YOffsetMM: alignOpts.yMM,
		Scale:     alignOpts.scale,
		Mode:      mode,
	}
	logger.Debug("aligning",
		"input", opts.Input,
		"overlay", opts.Overlay,
		"matrix", pdfalign.NewPlacement(opts.XOffsetMM, opts.YOffsetMM, opts.Scale).Matrix(),
		"mode", opts.Mode)

	if err := pdfalign.Align(opts); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", opts.Output)
	return nil
}
