package printspec

import (
	"fmt"

	"github.com/foldline/foldline/internal/logging"
)

// Default margins and resolution for every product in the line.
const (
	DefaultBleedMm = 4.0
	DefaultSafeMm  = 4.0
	DefaultDPI     = 300
)

// Options tunes Generate. Zero values take the line defaults above; the
// product line has no zero-bleed or zero-safe configurations.
type Options struct {
	BleedMm float64
	SafeMm  float64
	DPI     int
	Logger  logging.Logger
}

func (o Options) withDefaults() Options {
	if o.BleedMm == 0 {
		o.BleedMm = DefaultBleedMm
	}
	if o.SafeMm == 0 {
		o.SafeMm = DefaultSafeMm
	}
	if o.DPI == 0 {
		o.DPI = DefaultDPI
	}
	o.Logger = logging.Or(o.Logger)
	return o
}

// Generate produces the complete print specification for one product
// configuration. An unknown sizeID falls back to DefaultSizeID and is
// logged rather than failing: the editor must stay usable even when the
// catalog references a size this build does not know.
func Generate(product ProductType, sizeID string, orientation Orientation, fold FoldOption, opts Options) Spec {
	opts = opts.withDefaults()
	if orientation != Landscape {
		orientation = Portrait
	}

	trim, known := lookupSize(sizeID, orientation)
	if !known {
		opts.Logger.Warn("unknown size id, using default",
			"sizeID", sizeID, "default", DefaultSizeID, "product", string(product))
		sizeID = DefaultSizeID
	}

	sp := Spec{
		ID:   fmt.Sprintf("%s-%s-%s-%s", product, sizeID, orientation, fold),
		Name: fmt.Sprintf("%s %s %s", product, sizeID, orientation),
		DPI:  opts.DPI,
	}

	side := func(id SideID, folds ...Line) Side {
		return Side{
			ID:        id,
			TrimMm:    trim,
			BleedMm:   opts.BleedMm,
			SafeMm:    opts.SafeMm,
			FoldLines: folds,
		}
	}

	switch {
	case product == ProductCard && fold == FoldBifold:
		sp.Sides = bifoldSides(trim, orientation, side)
	case product == ProductCard || product == ProductPostcard:
		sp.Sides = []Side{side(SideFront), side(SideBack)}
	default:
		// invitation, announcement, print: single printable face.
		sp.Sides = []Side{side(SideFront)}
	}

	sp.mustValid()
	return sp
}

// bifoldSides lays out the four panels of a bifold card in physical reading
// order. Each adjacent pair of panels shares exactly one fold line at the
// boundary between them.
//
// Portrait folds run vertically:
//
//	front        fold at left edge (hinges to inside-right when closed)
//	inside-left  fold at right edge (center spine)
//	inside-right folds at both edges (spine on the left, back hinge on the right)
//	back         fold at right edge, mirroring front
//
// Landscape is the same topology rotated 90°: folds run along the top and
// bottom edges, and the inside panels become inside-top/inside-bottom.
func bifoldSides(trim Size, orientation Orientation, side func(SideID, ...Line) Side) []Side {
	if orientation == Landscape {
		top := Line{X1: 0, Y1: 0, X2: trim.W, Y2: 0}
		bottom := Line{X1: 0, Y1: trim.H, X2: trim.W, Y2: trim.H}
		return []Side{
			side(SideFront, top),
			side(SideInsideTop, bottom),
			side(SideInsideBottom, top, bottom),
			side(SideBack, bottom),
		}
	}
	left := Line{X1: 0, Y1: 0, X2: 0, Y2: trim.H}
	right := Line{X1: trim.W, Y1: 0, X2: trim.W, Y2: trim.H}
	return []Side{
		side(SideFront, left),
		side(SideInsideLeft, right),
		side(SideInsideRight, left, right),
		side(SideBack, right),
	}
}
