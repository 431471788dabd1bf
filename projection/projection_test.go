package projection

import (
	"math"
	"testing"

	"github.com/foldline/foldline/printspec"
	"github.com/foldline/foldline/units"
)

const eps = 1e-9

func postcardFront(t *testing.T) printspec.Side {
	t.Helper()
	sp := printspec.Generate(printspec.ProductPostcard, "4x6", printspec.Portrait, printspec.FoldFlat, printspec.Options{})
	return sp.Sides[0]
}

// TestSharedOrigin asserts the offset chain: bleed box at (0,0), trim box
// one bleed in, safe box one safe margin further.
func TestSharedOrigin(t *testing.T) {
	side := postcardFront(t)
	for _, dpi := range []float64{96, 300} {
		p := Project(side, dpi)
		bleedPx := units.MmToPx(side.BleedMm, dpi)
		safePx := units.MmToPx(side.SafeMm, dpi)

		if p.BleedBox.X != 0 || p.BleedBox.Y != 0 {
			t.Fatalf("dpi %g: bleed box must sit at the origin, got %+v", dpi, p.BleedBox)
		}
		if math.Abs(p.TrimBox.X-bleedPx) > eps || math.Abs(p.TrimBox.Y-bleedPx) > eps {
			t.Fatalf("dpi %g: trim box offset: want %g, got %+v", dpi, bleedPx, p.TrimBox)
		}
		if math.Abs(p.SafeBox.X-(bleedPx+safePx)) > eps {
			t.Fatalf("dpi %g: safe box offset: want %g, got %+v", dpi, bleedPx+safePx, p.SafeBox)
		}
		if math.Abs(p.BleedBox.W-(p.TrimBox.W+2*bleedPx)) > eps {
			t.Fatalf("dpi %g: bleed width not derived from trim: %+v", dpi, p)
		}
	}
}

// TestScreenAndPrintAgree verifies both projections are the same logic at
// different scales: print geometry equals screen geometry times dpi ratio.
func TestScreenAndPrintAgree(t *testing.T) {
	side := postcardFront(t)
	screen := PanelToScreen(side, 96)
	export := PanelToPrint(side, 300)
	ratio := 300.0 / 96.0

	pairs := []struct{ s, p float64 }{
		{screen.TrimBox.X, export.TrimBox.X},
		{screen.TrimBox.W, export.TrimBox.W},
		{screen.SafeBox.Y, export.SafeBox.Y},
		{screen.BleedBox.H, export.BleedBox.H},
	}
	for i, pr := range pairs {
		if math.Abs(pr.s*ratio-pr.p) > 1e-6 {
			t.Fatalf("pair %d: screen %g * %g != print %g", i, pr.s, ratio, pr.p)
		}
	}
}

func TestFoldLineTranslation(t *testing.T) {
	sp := printspec.Generate(printspec.ProductCard, "5x7", printspec.Portrait, printspec.FoldBifold, printspec.Options{})
	front, _ := sp.Side(printspec.SideFront)
	p := Project(front, 300)
	if len(p.FoldLines) != 1 {
		t.Fatalf("front must project one fold line, got %d", len(p.FoldLines))
	}
	// The fold sits at the trim box's left edge, i.e. one bleed offset in.
	bleedPx := units.MmToPx(front.BleedMm, 300)
	fl := p.FoldLines[0]
	if math.Abs(fl.X1-bleedPx) > eps || math.Abs(fl.X2-bleedPx) > eps {
		t.Fatalf("fold line must be translated by the trim offset: %+v, want x=%g", fl, bleedPx)
	}
	if math.Abs(fl.Y1-bleedPx) > eps || math.Abs(fl.Y2-(bleedPx+p.TrimBox.H)) > eps {
		t.Fatalf("fold line must span the trim height: %+v", fl)
	}
}

func TestPointRoundTrip(t *testing.T) {
	side := postcardFront(t)
	p := Project(side, 137.5)
	for _, pt := range [][2]float64{{0, 0}, {24, 24}, {101.6, 152.4}, {-4, -4}} {
		xPx, yPx := p.FromMm(pt[0], pt[1])
		xMm, yMm := p.ToMm(xPx, yPx)
		if math.Abs(xMm-pt[0]) > eps || math.Abs(yMm-pt[1]) > eps {
			t.Fatalf("point %v drifted to (%g,%g)", pt, xMm, yMm)
		}
	}
}
