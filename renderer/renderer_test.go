package renderer

import (
	"testing"
	"time"

	"github.com/foldline/foldline/design"
	"github.com/foldline/foldline/printspec"
)

func TestSideForPrefersSuppliedSpec(t *testing.T) {
	sp := printspec.Generate(printspec.ProductCard, "5x7", printspec.Portrait, printspec.FoldBifold, printspec.Options{})
	doc := design.New(sp, time.Now())

	side := SideFor(doc, printspec.SideFront, Options{Spec: &sp})
	if len(side.FoldLines) == 0 {
		t.Error("spec-backed side lost its fold lines")
	}

	side = SideFor(doc, printspec.SideFront, Options{})
	if len(side.FoldLines) != 0 {
		t.Error("descriptor-backed side cannot carry fold lines")
	}
	if side.TrimMm.W != 127 || side.TrimMm.H != 177.8 {
		t.Errorf("descriptor trim = %gx%gmm, want 127x177.8", side.TrimMm.W, side.TrimMm.H)
	}
}

func TestDPIForFallbackChain(t *testing.T) {
	sp := printspec.Generate(printspec.ProductPostcard, "4x6", printspec.Portrait, printspec.FoldFlat, printspec.Options{})
	doc := design.New(sp, time.Now())

	if got := DPIFor(doc, Options{DPI: 96}); got != 96 {
		t.Errorf("explicit DPI = %g, want 96", got)
	}
	if got := DPIFor(doc, Options{}); got != 300 {
		t.Errorf("document DPI = %g, want 300", got)
	}
	doc.PrintSpec.DPI = 0
	if got := DPIFor(doc, Options{}); got != printspec.DefaultDPI {
		t.Errorf("default DPI = %g, want %d", got, printspec.DefaultDPI)
	}
}
