// Package printspec derives the physical geometry of a printed product: the
// trim, bleed and safe boxes of every panel, and the fold lines between
// adjacent panels of folded products.
//
// Millimeters relative to each panel's trim-box top-left corner are the only
// stored coordinates. Bleed and safe boxes are always derived from TrimMm
// plus the margins; they are never stored, so they cannot drift.
//
// The bifold fold topology follows the production sheet layout in use today.
// The second fold line on inside-right (at its right edge) is under design
// review against a physical proof; do not change it here without one.
package printspec

import "fmt"

// ProductType enumerates the product families the storefront sells.
type ProductType string

const (
	ProductCard         ProductType = "card"
	ProductPostcard     ProductType = "postcard"
	ProductInvitation   ProductType = "invitation"
	ProductAnnouncement ProductType = "announcement"
	ProductPrint        ProductType = "print"
)

// cardLike reports whether a product may never fall back to a default spec.
// Postcards, invitations and prints degrade softly; cards and announcements
// block checkout instead.
func (t ProductType) cardLike() bool {
	return t == ProductCard || t == ProductAnnouncement
}

// Orientation of the finished piece.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// FoldOption selects between a flat and a bifold construction. Only cards
// fold.
type FoldOption string

const (
	FoldFlat   FoldOption = "flat"
	FoldBifold FoldOption = "bifold"
)

// SideID names one physical panel. The set is closed; persistence and
// rendering key pages by these values.
type SideID string

const (
	SideFront        SideID = "front"
	SideInside       SideID = "inside"
	SideInsideLeft   SideID = "inside-left"
	SideInsideRight  SideID = "inside-right"
	SideInsideTop    SideID = "inside-top"
	SideInsideBottom SideID = "inside-bottom"
	SideBack         SideID = "back"
)

// Size is a width/height pair in millimeters.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Rect is an axis-aligned box in millimeters, origin at the trim box's
// top-left corner. The bleed box therefore has a negative origin.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Contains reports whether r fully contains inner.
func (r Rect) Contains(inner Rect) bool {
	return inner.X >= r.X && inner.Y >= r.Y &&
		inner.X+inner.W <= r.X+r.W && inner.Y+inner.H <= r.Y+r.H
}

// Line is a segment in millimeters, trim-relative like Rect.
type Line struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Side describes one physical panel. TrimMm is authoritative; everything
// else about the panel's geometry is derived from it on demand.
type Side struct {
	ID        SideID  `json:"id"`
	TrimMm    Size    `json:"trimMm"`
	BleedMm   float64 `json:"bleedMm"`
	SafeMm    float64 `json:"safeMm"`
	FoldLines []Line  `json:"foldLines,omitempty"`
}

// TrimBox is the final cut box: origin (0,0), TrimMm in extent.
func (s Side) TrimBox() Rect {
	return Rect{X: 0, Y: 0, W: s.TrimMm.W, H: s.TrimMm.H}
}

// BleedBox is the trim box expanded by BleedMm on every edge.
func (s Side) BleedBox() Rect {
	return Rect{
		X: -s.BleedMm,
		Y: -s.BleedMm,
		W: s.TrimMm.W + 2*s.BleedMm,
		H: s.TrimMm.H + 2*s.BleedMm,
	}
}

// SafeBox is the trim box inset by SafeMm on every edge. All meaningful
// content must stay inside it.
func (s Side) SafeBox() Rect {
	return Rect{
		X: s.SafeMm,
		Y: s.SafeMm,
		W: s.TrimMm.W - 2*s.SafeMm,
		H: s.TrimMm.H - 2*s.SafeMm,
	}
}

// Spec is the complete physical description of one product configuration.
type Spec struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Sides []Side `json:"sides"`
	DPI   int    `json:"dpi"`
}

// Folded reports whether any side declares fold lines. Derived, not stored.
func (sp Spec) Folded() bool {
	for _, s := range sp.Sides {
		if len(s.FoldLines) > 0 {
			return true
		}
	}
	return false
}

// Side returns the panel with the given ID.
func (sp Spec) Side(id SideID) (Side, bool) {
	for _, s := range sp.Sides {
		if s.ID == id {
			return s, true
		}
	}
	return Side{}, false
}

// SideIDs returns the panel IDs in physical reading order.
func (sp Spec) SideIDs() []SideID {
	ids := make([]SideID, len(sp.Sides))
	for i, s := range sp.Sides {
		ids[i] = s.ID
	}
	return ids
}

// mustValid panics on geometry a caller should never have produced.
func (sp Spec) mustValid() {
	for _, s := range sp.Sides {
		if s.TrimMm.W <= 0 || s.TrimMm.H <= 0 {
			panic(fmt.Sprintf("printspec: side %s has non-positive trim %gx%g", s.ID, s.TrimMm.W, s.TrimMm.H))
		}
		for _, fl := range s.FoldLines {
			if !onTrimEdge(fl, s.TrimMm) {
				panic(fmt.Sprintf("printspec: side %s fold line %+v not on a trim edge", s.ID, fl))
			}
		}
	}
}

// onTrimEdge reports whether the segment runs along one edge of the trim
// box: both endpoints share x in {0, W} or y in {0, H}. Diagonal folds do
// not exist in this product line.
func onTrimEdge(l Line, trim Size) bool {
	vertical := l.X1 == l.X2 && (l.X1 == 0 || l.X1 == trim.W)
	horizontal := l.Y1 == l.Y2 && (l.Y1 == 0 || l.Y1 == trim.H)
	return vertical || horizontal
}
