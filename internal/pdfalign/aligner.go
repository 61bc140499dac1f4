// =============================================================================
// UPN Tools - PDF Aligner
// =============================================================================
//
// This module lays the first page of an overlay PDF (the scanned UPN form)
// under or over every page of a foreground PDF (the printed payment slips),
// so printer offsets can be corrected before the slips go out.
//
// PLACEMENT:
//   The overlay page is scaled uniformly, then translated:
//
//     [ s  0  0  s  tx  ty ]      tx, ty in points (1 mm = 72/25.4 pt)
//
//   Positive X moves the overlay right, positive Y moves it up. Both
//   documents are measured from their own coordinate origin, not from the
//   corner of a crop box, so a cropped page gets the same placement as an
//   uncropped one.
//
// MODES:
//   - background: overlay is drawn underneath the page content
//   - stamp:      overlay is drawn on top of the page content
//
// Every foreground page gets its own watermark, built from the same
// immutable Placement.
//
// =============================================================================

package pdfalign

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/ginjaninja78/upn-tools/pkg/utils"
)

// MMToPt converts millimetres to PDF points.
const MMToPt = 72.0 / 25.4

var (
	// ErrEmptyOverlay is returned when the overlay document has no pages.
	ErrEmptyOverlay = errors.New("overlay has no pages")

	// ErrInvalidMode is returned for a mode other than background or stamp.
	ErrInvalidMode = errors.New("invalid mode")

	// ErrInvalidScale is returned for a scale factor that is not positive.
	ErrInvalidScale = errors.New("scale must be positive")
)

// readContext is replaced in tests.
var readContext = api.ReadContextFile

// =============================================================================
// MODE
// =============================================================================

// Mode selects where the overlay goes in the page's drawing order.
type Mode string

const (
	ModeBackground Mode = "background"
	ModeStamp      Mode = "stamp"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeBackground, ModeStamp:
		return m, nil
	}
	return "", fmt.Errorf("%w %q (want %s or %s)", ErrInvalidMode, s, ModeBackground, ModeStamp)
}

// OnTop reports whether the overlay is drawn over the page content.
func (m Mode) OnTop() bool {
	return m == ModeStamp
}

// =============================================================================
// PLACEMENT
// =============================================================================

// Placement is the scale-then-translate transform applied to the overlay.
type Placement struct {
	Scale float64
	TxPt  float64
	TyPt  float64
}

// NewPlacement converts millimetre offsets to a Placement.
func NewPlacement(xOffsetMM, yOffsetMM, scale float64) Placement {
	return Placement{
		Scale: scale,
		TxPt:  xOffsetMM * MMToPt,
		TyPt:  yOffsetMM * MMToPt,
	}
}

// Matrix returns the PDF transformation matrix [a b c d e f].
func (p Placement) Matrix() [6]float64 {
	return [6]float64{p.Scale, 0, 0, p.Scale, p.TxPt, p.TyPt}
}

// Apply maps an overlay point into foreground page space.
func (p Placement) Apply(x, y float64) (float64, float64) {
	m := p.Matrix()
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// description renders the placement as a pdfcpu watermark description.
//
// pdfcpu pins the lower-left corner of the overlay's visible box (overlayLL)
// to the lower-left corner of the page's visible box (pageLL), then shifts it
// by the offset. The offset is chosen so that corner lands where Matrix maps
// it.
func (p Placement) description(overlayLL, pageLL types.Point) string {
	x, y := p.Apply(overlayLL.X, overlayLL.Y)
	return fmt.Sprintf("position:bl, offset:%.6f %.6f, scalefactor:%.6f abs, rotation:0, opacity:1",
		x-pageLL.X, y-pageLL.Y, p.Scale)
}

// =============================================================================
// ALIGN
// =============================================================================

// Options controls one alignment run.
type Options struct {
	// Input is the foreground PDF.
	Input string

	// Overlay is the PDF whose first page is laid onto every input page.
	Overlay string

	// Output is written whole; parent directories are created.
	Output string

	XOffsetMM float64
	YOffsetMM float64
	Scale     float64
	Mode      Mode
}

// Align writes Output: every page of Input combined with the transformed
// first page of Overlay.
func Align(opts Options) error {
	mode, err := ParseMode(string(opts.Mode))
	if err != nil {
		return err
	}
	if opts.Scale <= 0 {
		return fmt.Errorf("%w: %g", ErrInvalidScale, opts.Scale)
	}

	overlayCtx, err := readContext(opts.Overlay)
	if err != nil {
		return fmt.Errorf("failed to read overlay %s: %w", opts.Overlay, err)
	}
	if overlayCtx.PageCount == 0 {
		return fmt.Errorf("%s: %w", opts.Overlay, ErrEmptyOverlay)
	}
	overlayLL, err := visibleOrigin(overlayCtx, 1)
	if err != nil {
		return fmt.Errorf("failed to read overlay %s: %w", opts.Overlay, err)
	}

	inputCtx, err := readContext(opts.Input)
	if err != nil {
		return fmt.Errorf("failed to read input %s: %w", opts.Input, err)
	}

	placement := NewPlacement(opts.XOffsetMM, opts.YOffsetMM, opts.Scale)

	watermarks := make(map[int]*model.Watermark, inputCtx.PageCount)
	for page := 1; page <= inputCtx.PageCount; page++ {
		pageLL, err := visibleOrigin(inputCtx, page)
		if err != nil {
			return fmt.Errorf("failed to read input %s page %d: %w", opts.Input, page, err)
		}
		wm, err := placement.watermark(opts.Overlay, mode, overlayLL, pageLL)
		if err != nil {
			return err
		}
		watermarks[page] = wm
	}

	f, err := os.Open(opts.Input)
	if err != nil {
		return err
	}
	defer f.Close()

	var out bytes.Buffer
	if err := api.AddWatermarksMap(f, &out, watermarks, model.NewDefaultConfiguration()); err != nil {
		return fmt.Errorf("failed to apply overlay: %w", err)
	}

	return utils.WriteFile(opts.Output, out.Bytes())
}

// watermark builds a new watermark for the overlay's first page.
func (p Placement) watermark(overlay string, mode Mode, overlayLL, pageLL types.Point) (*model.Watermark, error) {
	wm, err := api.PDFWatermark(overlay+":1", p.description(overlayLL, pageLL), mode.OnTop(), false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare overlay %s: %w", overlay, err)
	}
	return wm, nil
}

// visibleOrigin returns the lower-left corner of a page's crop box, or of its
// media box when the page has no crop box. Inherited boxes count.
func visibleOrigin(ctx *model.Context, pageNr int) (types.Point, error) {
	_, _, attrs, err := ctx.PageDict(pageNr, false)
	if err != nil {
		return types.Point{}, err
	}
	box := attrs.MediaBox
	if attrs.CropBox != nil {
		box = attrs.CropBox
	}
	if box == nil {
		return types.Point{}, nil
	}
	return box.LL, nil
}
