// Package renderer defines the output contract for rendering design
// documents. Implementations live in subpackages: raster (print-resolution
// PNG) and the PDF proof writer that shares its geometry.
package renderer

import (
	"context"

	"github.com/foldline/foldline/design"
	"github.com/foldline/foldline/printspec"
)

// Options selects the output geometry for one render.
type Options struct {
	// DPI is the output resolution. Zero takes the document's stored DPI.
	DPI float64
	// IncludeBleed extends the output to the bleed box; production export
	// wants this on, previews usually off.
	IncludeBleed bool
	// Guides overlays trim/safe outlines and fold lines, for proofs. Fold
	// lines require Spec to be set.
	Guides bool
	// Spec optionally supplies the full print specification; needed only
	// for fold-line guides, since the document's compact descriptor does
	// not carry fold geometry.
	Spec *printspec.Spec
	// Data is the optional merge-field payload applied to text content.
	Data any
}

// Renderer renders one page of a design document into an output format.
// The returned bytes are the complete encoded artifact (PNG, PDF).
type Renderer interface {
	RenderPage(ctx context.Context, doc *design.Document, page printspec.SideID, opts Options) ([]byte, error)
}

// SideFor reconstructs a page's panel geometry from the document's compact
// descriptor, or from opts.Spec when supplied. Fold lines exist only in the
// latter case.
func SideFor(doc *design.Document, pageID printspec.SideID, opts Options) printspec.Side {
	if opts.Spec != nil {
		if side, ok := opts.Spec.Side(pageID); ok {
			return side
		}
	}
	return printspec.Side{
		ID:      pageID,
		TrimMm:  printspec.Size{W: doc.PrintSpec.TrimWMm, H: doc.PrintSpec.TrimHMm},
		BleedMm: doc.PrintSpec.BleedMm,
		SafeMm:  doc.PrintSpec.SafeMm,
	}
}

// DPIFor resolves the effective DPI for a render.
func DPIFor(doc *design.Document, opts Options) float64 {
	if opts.DPI > 0 {
		return opts.DPI
	}
	if doc.PrintSpec.DPI > 0 {
		return float64(doc.PrintSpec.DPI)
	}
	return printspec.DefaultDPI
}
