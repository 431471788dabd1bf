// Package preflight validates a populated design against its print
// specification before export. Errors block export; warnings never do.
//
// The text-safety check estimates text extents as
// charCount * fontSize * 0.6 wide and fontSize tall. That is a deliberate
// conservative heuristic: real font metrics are not available at validation
// time, and the renderer's shaper may produce a tighter box. Treat a pass
// as "not obviously unsafe", not a guarantee.
package preflight

import (
	"fmt"
	"strings"

	"github.com/foldline/foldline/binding"
	"github.com/foldline/foldline/design"
	"github.com/foldline/foldline/printspec"
	"github.com/foldline/foldline/units"
)

// Report is the preflight result consumed by the export gate.
type Report struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Options tunes a preflight run.
type Options struct {
	// Data is the optional merge-field payload; text is interpolated
	// before measuring so personalized names are checked at their real
	// length.
	Data any
	// MinFontPt is the readability floor; below it a warning is emitted.
	// Zero means the default.
	MinFontPt float64
	// MinImagePx is the print-pixel floor for an image's footprint in
	// either dimension. Zero means the default.
	MinImagePx float64
}

const (
	defaultMinFontPt  = 7.0
	defaultMinImagePx = 100.0

	// textWidthFactor is the average glyph advance as a fraction of the
	// font size used by the text-safety estimate.
	textWidthFactor = 0.6
)

// Run checks the document against the spec and collects every finding.
// Validation problems are values in the report, never Go errors.
func Run(sp printspec.Spec, doc *design.Document, opts Options) Report {
	if opts.MinFontPt == 0 {
		opts.MinFontPt = defaultMinFontPt
	}
	if opts.MinImagePx == 0 {
		opts.MinImagePx = defaultMinImagePx
	}

	rep := Report{IsValid: true, Errors: []string{}, Warnings: []string{}}
	dpi := float64(sp.DPI)
	if dpi == 0 {
		dpi = printspec.DefaultDPI
	}

	for _, page := range doc.Pages {
		side, ok := sp.Side(page.ID)
		if !ok {
			rep.fail("page %q has no panel in the print specification", page.ID)
			continue
		}
		for _, el := range page.Elements {
			switch el.Kind {
			case design.KindText, design.KindLabel:
				checkText(&rep, side, page.ID, el, opts)
			case design.KindImage:
				checkImage(&rep, page.ID, el, dpi, opts)
			}
		}
	}
	return rep
}

func checkText(rep *Report, side printspec.Side, pageID printspec.SideID, el design.Element, opts Options) {
	text := binding.Interpolate(el.Text, opts.Data)
	if strings.TrimSpace(text) == "" {
		return
	}
	if el.FontSizePt > 0 && el.FontSizePt < opts.MinFontPt {
		rep.warn("%s: %q is set at %.1fpt, below the %.0fpt readability floor",
			pageID, truncate(text), el.FontSizePt, opts.MinFontPt)
	}

	box := estimateTextBox(el, text)
	if !side.SafeBox().Contains(box) {
		rep.fail("%s: text %q extends outside the safe zone (box %.1f,%.1f %gx%.1fmm)",
			pageID, truncate(text), box.X, box.Y, box.W, box.H)
	}
}

// estimateTextBox returns the approximate extent of a text element in the
// panel's mm space. The longest line drives the width.
func estimateTextBox(el design.Element, text string) printspec.Rect {
	fontMm := el.FontSizePt * units.PtToMm
	lines := strings.Split(text, "\n")
	longest := 0
	for _, ln := range lines {
		if n := len([]rune(ln)); n > longest {
			longest = n
		}
	}
	return printspec.Rect{
		X: el.XMm,
		Y: el.YMm,
		W: float64(longest) * fontMm * textWidthFactor,
		H: float64(len(lines)) * fontMm,
	}
}

func checkImage(rep *Report, pageID printspec.SideID, el design.Element, dpi float64, opts Options) {
	wPx := units.MmToPx(el.WMm, dpi)
	hPx := units.MmToPx(el.HMm, dpi)
	if wPx < opts.MinImagePx || hPx < opts.MinImagePx {
		rep.warn("%s: image %q covers only %.0fx%.0fpx at %gdpi and may print poorly",
			pageID, el.ImageRef, wPx, hPx, dpi)
	}
}

func (r *Report) fail(format string, args ...any) {
	r.IsValid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func truncate(s string) string {
	const max = 24
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
