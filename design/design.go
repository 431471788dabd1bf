// Package design holds the persisted design document: a resolution
// independent scene graph of pages and positioned elements, denominated
// entirely in millimeters. Pixel values never enter this model; they exist
// only in editor objects (editor.go) and in projected geometry
// (package projection).
package design

import (
	"fmt"
	"sort"
	"time"

	"github.com/foldline/foldline/printspec"
)

// ElementKind tags the element variants.
type ElementKind string

const (
	KindImage    ElementKind = "image"
	KindText     ElementKind = "text"
	KindLabel    ElementKind = "label"
	KindOrnament ElementKind = "ornament"
)

// FitMode selects how an image fills its box.
type FitMode string

const (
	FitCover   FitMode = "cover"
	FitContain FitMode = "contain"
)

// LabelShape is the background shape painted behind a label's text.
type LabelShape string

const (
	ShapeRect        LabelShape = "rect"
	ShapeEllipse     LabelShape = "ellipse"
	ShapeRoundedRect LabelShape = "rounded-rect"
)

// Color is an opaque RGB value, 0-255 per channel.
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Element is one positioned item on a page. Kind decides which of the
// type-specific fields apply; the positional fields are always millimeters
// relative to the panel's trim-box top-left corner. Font sizes are stored
// in points, the print typography unit, not millimeters.
type Element struct {
	Kind        ElementKind `json:"kind"`
	XMm         float64     `json:"x_mm"`
	YMm         float64     `json:"y_mm"`
	WMm         float64     `json:"w_mm"`
	HMm         float64     `json:"h_mm"`
	RotationDeg float64     `json:"rotation_deg,omitempty"`
	ZIndex      int         `json:"zIndex"`
	Locked      bool        `json:"locked,omitempty"`

	// image
	ImageRef string  `json:"imageRef,omitempty"`
	Fit      FitMode `json:"fit,omitempty"`

	// text, and the text run embedded in a label
	Text       string  `json:"text,omitempty"`
	FontFamily string  `json:"fontFamily,omitempty"`
	FontSizePt float64 `json:"fontSize_pt,omitempty"`
	Color      *Color  `json:"color,omitempty"`
	Align      string  `json:"align,omitempty"` // left/center/right

	// label
	Shape         LabelShape `json:"shape,omitempty"`
	FillColor     *Color     `json:"fillColor,omitempty"`
	BorderColor   *Color     `json:"borderColor,omitempty"`
	BorderWidthMm float64    `json:"borderWidth_mm,omitempty"`

	// ornament
	OrnamentRef string `json:"ornamentRef,omitempty"`
}

// Page holds the elements of one panel, keyed by the panel's side ID.
type Page struct {
	ID       printspec.SideID `json:"id"`
	Elements []Element        `json:"elements"`
}

// Spec is the compact physical descriptor persisted with a document. It is
// a snapshot of the printspec the document was created against, sufficient
// to re-derive every panel box without a catalog lookup.
type Spec struct {
	TrimWMm     float64               `json:"trimW_mm"`
	TrimHMm     float64               `json:"trimH_mm"`
	BleedMm     float64               `json:"bleed_mm"`
	SafeMm      float64               `json:"safe_mm"`
	Orientation printspec.Orientation `json:"orientation"`
	DPI         int                   `json:"dpi"`
}

// Document is the persisted design. One document belongs to one product
// configuration instance; it never spans products.
type Document struct {
	PrintSpec Spec      `json:"printSpec"`
	Pages     []Page    `json:"pages"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CurrentVersion is written into new documents.
const CurrentVersion = 2

// New creates an empty document for the given print spec: one page per
// panel, in the spec's physical reading order.
func New(sp printspec.Spec, now time.Time) *Document {
	doc := &Document{
		Version:   CurrentVersion,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	if len(sp.Sides) > 0 {
		first := sp.Sides[0]
		doc.PrintSpec = Spec{
			TrimWMm: first.TrimMm.W,
			TrimHMm: first.TrimMm.H,
			BleedMm: first.BleedMm,
			SafeMm:  first.SafeMm,
			DPI:     sp.DPI,
		}
		if first.TrimMm.W > first.TrimMm.H {
			doc.PrintSpec.Orientation = printspec.Landscape
		} else {
			doc.PrintSpec.Orientation = printspec.Portrait
		}
	}
	for _, side := range sp.Sides {
		doc.Pages = append(doc.Pages, Page{ID: side.ID, Elements: []Element{}})
	}
	return doc
}

// Page returns the page for a side ID.
func (d *Document) Page(id printspec.SideID) (*Page, bool) {
	for i := range d.Pages {
		if d.Pages[i].ID == id {
			return &d.Pages[i], true
		}
	}
	return nil, false
}

// Touch bumps UpdatedAt. Callers mutate pages directly and touch on save.
func (d *Document) Touch(now time.Time) { d.UpdatedAt = now.UTC() }

// ValidateAgainst checks the document's pages line up with the panels of a
// print spec: every page maps to a spec side, and the stored descriptor
// matches the spec's geometry. It returns the first problem found.
func (d *Document) ValidateAgainst(sp printspec.Spec) error {
	for _, p := range d.Pages {
		if _, ok := sp.Side(p.ID); !ok {
			return fmt.Errorf("design: page %q has no panel in spec %q", p.ID, sp.ID)
		}
	}
	if len(sp.Sides) > 0 {
		s := sp.Sides[0]
		if d.PrintSpec.TrimWMm != s.TrimMm.W || d.PrintSpec.TrimHMm != s.TrimMm.H {
			return fmt.Errorf("design: stored trim %gx%gmm does not match spec %gx%gmm",
				d.PrintSpec.TrimWMm, d.PrintSpec.TrimHMm, s.TrimMm.W, s.TrimMm.H)
		}
		if d.PrintSpec.BleedMm != s.BleedMm || d.PrintSpec.SafeMm != s.SafeMm {
			return fmt.Errorf("design: stored margins bleed=%g safe=%g do not match spec bleed=%g safe=%g",
				d.PrintSpec.BleedMm, d.PrintSpec.SafeMm, s.BleedMm, s.SafeMm)
		}
	}
	return nil
}

// PaintOrder returns the page's elements sorted by ascending ZIndex, ties
// broken by list position. The page itself is not reordered.
func PaintOrder(p *Page) []Element {
	out := make([]Element, len(p.Elements))
	copy(out, p.Elements)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	return out
}
