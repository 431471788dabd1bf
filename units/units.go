// Package units holds the unit conversion primitives shared by every other
// package: millimeters are the stored truth, pixels exist only relative to a
// DPI, and points are used for typography and vector export.
//
// No function here rounds. Rounding happens exactly once, at the raster
// boundary; chaining conversions through this package must not compound
// error.
package units

import (
	"fmt"
	"strconv"
	"strings"
)

// MmPerInch is the exact definition of the inch.
const MmPerInch = 25.4

// Conversion constants between pt and mm (1pt = 1/72 inch).
const (
	PtToMm = MmPerInch / 72.0
	MmToPt = 72.0 / MmPerInch
)

// PxPerPt is the CSS reference ratio between pixels and points (96/72).
// Font sizes are stored in points and edited in pixels; this factor is the
// deliberate bridge between the two, applied only at the editor boundary.
const PxPerPt = 96.0 / 72.0

// MmToPx converts a length in millimeters to pixels at the given DPI.
// dpi must be positive; a non-positive DPI is a caller bug.
func MmToPx(mm, dpi float64) float64 {
	mustValidDPI(dpi)
	return (mm / MmPerInch) * dpi
}

// PxToMm converts a length in pixels at the given DPI back to millimeters.
func PxToMm(px, dpi float64) float64 {
	mustValidDPI(dpi)
	return (px / dpi) * MmPerInch
}

// MmToPoints converts millimeters to PostScript points, for vector output.
func MmToPoints(mm float64) float64 { return (mm / MmPerInch) * 72.0 }

// PointsToMm converts PostScript points to millimeters.
func PointsToMm(pt float64) float64 { return (pt / 72.0) * MmPerInch }

// InchesToMm converts inches to millimeters.
func InchesToMm(in float64) float64 { return in * MmPerInch }

func mustValidDPI(dpi float64) {
	if dpi <= 0 {
		panic(fmt.Sprintf("units: dpi must be positive, got %g", dpi))
	}
}

// Unit tags a Length value with the unit it was authored in.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers like factors
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
	UnitPT               // points
)

// String returns the short suffix for a Unit value.
func (u Unit) String() string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length preserves a numeric value with its authored unit, so catalog
// entries written in inches and designs stored in millimeters never mix raw
// numbers in one expression.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// Mm returns the length in millimeters.
func (l Length) Mm() float64 {
	switch l.Unit {
	case UnitMM, UnitNone:
		return l.Value
	case UnitCM:
		return l.Value * 10
	case UnitIN:
		return l.Value * MmPerInch
	case UnitPT:
		return l.Value * PtToMm
	default:
		return l.Value
	}
}

// Pt returns the length in points.
func (l Length) Pt() float64 {
	if l.Unit == UnitPT {
		return l.Value
	}
	return l.Mm() * MmToPt
}

// Px returns the length in pixels at the given DPI.
func (l Length) Px(dpi float64) float64 { return MmToPx(l.Mm(), dpi) }

// ParseLength parses strings like "5in", "127mm", "12.5 cm" or "18pt",
// preserving the authored unit. A bare number parses as UnitNone.
func ParseLength(s string) (Length, error) {
	v := strings.TrimSpace(strings.ToLower(s))
	if v == "" {
		return Length{}, fmt.Errorf("units: empty length")
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("units: bad length %q: %w", s, err)
	}
	return Length{Value: f, Unit: unit}, nil
}
