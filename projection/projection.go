// Package projection maps panel geometry from millimeters into a pixel
// space at a caller-supplied DPI. The same functions serve the interactive
// editor (screen DPI) and the export path (print DPI); neither resolution
// is hardcoded here, so the two paths cannot drift apart.
//
// Pixel boxes share a single origin: the bleed box's top-left corner is
// pixel (0,0). The trim box sits one bleed margin in on both axes, the safe
// box one safe margin further. Fold lines, stored trim-relative, are
// translated by the same trim offset.
package projection

import (
	"github.com/foldline/foldline/printspec"
	"github.com/foldline/foldline/units"
)

// Rect is a pixel-space box. Values are not rounded; rounding belongs to
// the rasterization boundary alone.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Line is a pixel-space segment.
type Line struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
}

// Panel is one panel's complete pixel geometry at a given DPI.
type Panel struct {
	DPI       float64
	BleedBox  Rect
	TrimBox   Rect
	SafeBox   Rect
	FoldLines []Line
}

// Project derives the pixel geometry of a panel at the given DPI.
func Project(side printspec.Side, dpi float64) Panel {
	bleedPx := units.MmToPx(side.BleedMm, dpi)
	safePx := units.MmToPx(side.SafeMm, dpi)
	trimW := units.MmToPx(side.TrimMm.W, dpi)
	trimH := units.MmToPx(side.TrimMm.H, dpi)

	p := Panel{
		DPI:      dpi,
		BleedBox: Rect{X: 0, Y: 0, W: trimW + 2*bleedPx, H: trimH + 2*bleedPx},
		TrimBox:  Rect{X: bleedPx, Y: bleedPx, W: trimW, H: trimH},
		SafeBox:  Rect{X: bleedPx + safePx, Y: bleedPx + safePx, W: trimW - 2*safePx, H: trimH - 2*safePx},
	}
	for _, fl := range side.FoldLines {
		p.FoldLines = append(p.FoldLines, Line{
			X1: units.MmToPx(fl.X1, dpi) + bleedPx,
			Y1: units.MmToPx(fl.Y1, dpi) + bleedPx,
			X2: units.MmToPx(fl.X2, dpi) + bleedPx,
			Y2: units.MmToPx(fl.Y2, dpi) + bleedPx,
		})
	}
	return p
}

// PanelToScreen projects a panel into the editor's pixel space.
func PanelToScreen(side printspec.Side, screenDPI float64) Panel {
	return Project(side, screenDPI)
}

// PanelToPrint projects a panel into export pixel space. Same logic as the
// screen projection on purpose; only the DPI differs.
func PanelToPrint(side printspec.Side, printDPI float64) Panel {
	return Project(side, printDPI)
}

// ToMm maps a pixel point in a projected panel back to trim-relative
// millimeters, the inverse of the trim-offset translation in Project.
func (p Panel) ToMm(xPx, yPx float64) (xMm, yMm float64) {
	return units.PxToMm(xPx-p.TrimBox.X, p.DPI), units.PxToMm(yPx-p.TrimBox.Y, p.DPI)
}

// FromMm maps a trim-relative millimeter point into the panel's pixel
// space.
func (p Panel) FromMm(xMm, yMm float64) (xPx, yPx float64) {
	return units.MmToPx(xMm, p.DPI) + p.TrimBox.X, units.MmToPx(yMm, p.DPI) + p.TrimBox.Y
}
