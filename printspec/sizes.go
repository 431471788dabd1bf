package printspec

import "github.com/foldline/foldline/units"

// The size table stores nominal dimensions in inches, the unit the print
// shop quotes them in. Generate converts to millimeters once, through
// units.Length, and never mixes inch and mm arithmetic in one expression.
//
// Entries may be written in either order; orientation handling sorts the
// two dimensions, so "7x5" and "5x7" would resolve identically.
var sizeTable = map[string]struct{ w, h units.Length }{
	"4x6":      {in(4), in(6)},
	"5x7":      {in(5), in(7)},
	"4.25x5.5": {in(4.25), in(5.5)},
	"5x5":      {in(5), in(5)},
	"8x10":     {in(8), in(10)},
	"11x14":    {in(11), in(14)},
	"a2":       {in(4.25), in(5.5)},
	"a7":       {in(5), in(7)},
}

// DefaultSizeID is the fallback applied when a size lookup misses.
const DefaultSizeID = "5x7"

func in(v float64) units.Length { return units.Length{Value: v, Unit: units.UnitIN} }

// lookupSize resolves a size ID to trim dimensions in millimeters, already
// adjusted for orientation: portrait takes the smaller dimension as width,
// landscape the larger. The second return reports whether the ID was known.
func lookupSize(sizeID string, orientation Orientation) (Size, bool) {
	entry, ok := sizeTable[sizeID]
	if !ok {
		entry = sizeTable[DefaultSizeID]
	}
	wMm, hMm := entry.w.Mm(), entry.h.Mm()
	lo, hi := wMm, hMm
	if lo > hi {
		lo, hi = hi, lo
	}
	if orientation == Landscape {
		return Size{W: hi, H: lo}, ok
	}
	return Size{W: lo, H: hi}, ok
}

// SizeIDs lists the known size IDs, for catalog validation and CLI help.
func SizeIDs() []string {
	ids := make([]string, 0, len(sizeTable))
	for id := range sizeTable {
		ids = append(ids, id)
	}
	return ids
}
