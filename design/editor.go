package design

import (
	"github.com/foldline/foldline/printspec"
	"github.com/foldline/foldline/units"
)

// ObjectKind covers the element kinds plus editor-only object types that
// have no millimeter representation and must never be persisted.
type ObjectKind string

const (
	ObjectImage    ObjectKind = ObjectKind(KindImage)
	ObjectText     ObjectKind = ObjectKind(KindText)
	ObjectLabel    ObjectKind = ObjectKind(KindLabel)
	ObjectOrnament ObjectKind = ObjectKind(KindOrnament)

	// ObjectGuide is a pure-UI overlay (fold/trim/safe guides, snap lines).
	ObjectGuide ObjectKind = "guide"
)

// EditorObject is the live, screen-pixel counterpart of an Element inside
// an interactive editing session. All lengths are pixels at the session's
// screen DPI, except BorderWidthPx's font sibling: font sizes are pixels
// here and points in the document, bridged by the fixed 0.75 pt-per-px
// convention.
type EditorObject struct {
	Kind        ObjectKind
	XPx         float64
	YPx         float64
	WPx         float64
	HPx         float64
	RotationDeg float64
	Locked      bool

	// UI-only state, dropped on save.
	Selected bool
	DragDXPx float64
	DragDYPx float64

	ImageRef string
	Fit      FitMode

	Text       string
	FontFamily string
	FontSizePx float64
	Color      *Color
	Align      string

	Shape         LabelShape
	FillColor     *Color
	BorderColor   *Color
	BorderWidthPx float64

	OrnamentRef string
}

// PtPerPx converts editor font pixels to document points.
const PtPerPx = 1.0 / units.PxPerPt

// FromEditorObject projects a live editor object into the persisted model,
// converting every length with the screen DPI that was active during
// editing. It returns nil for editor-only kinds. ZIndex is not set here;
// PageFromEditorObjects derives it from list position.
func FromEditorObject(obj EditorObject, screenDPI float64) *Element {
	switch obj.Kind {
	case ObjectImage, ObjectText, ObjectLabel, ObjectOrnament:
	default:
		return nil
	}
	el := &Element{
		Kind:        ElementKind(obj.Kind),
		XMm:         units.PxToMm(obj.XPx, screenDPI),
		YMm:         units.PxToMm(obj.YPx, screenDPI),
		WMm:         units.PxToMm(obj.WPx, screenDPI),
		HMm:         units.PxToMm(obj.HPx, screenDPI),
		RotationDeg: obj.RotationDeg,
		Locked:      obj.Locked,

		ImageRef: obj.ImageRef,
		Fit:      obj.Fit,

		Text:       obj.Text,
		FontFamily: obj.FontFamily,
		FontSizePt: obj.FontSizePx * PtPerPx,
		Color:      obj.Color,
		Align:      obj.Align,

		Shape:         obj.Shape,
		FillColor:     obj.FillColor,
		BorderColor:   obj.BorderColor,
		BorderWidthMm: units.PxToMm(obj.BorderWidthPx, screenDPI),

		OrnamentRef: obj.OrnamentRef,
	}
	return el
}

// PageFromEditorObjects normalizes a session's object list back into the
// page for the given panel, deriving ZIndex from list position. Editor-only
// objects are dropped.
func PageFromEditorObjects(objs []EditorObject, side printspec.SideID, screenDPI float64) Page {
	out := make([]Element, 0, len(objs))
	for _, obj := range objs {
		el := FromEditorObject(obj, screenDPI)
		if el == nil {
			continue
		}
		el.ZIndex = len(out)
		out = append(out, *el)
	}
	return Page{ID: side, Elements: out}
}

// ToEditorObject is the inverse projection, instantiating a live object at
// the given screen DPI. UI-only state starts zeroed.
func ToEditorObject(el Element, screenDPI float64) EditorObject {
	return EditorObject{
		Kind:        ObjectKind(el.Kind),
		XPx:         units.MmToPx(el.XMm, screenDPI),
		YPx:         units.MmToPx(el.YMm, screenDPI),
		WPx:         units.MmToPx(el.WMm, screenDPI),
		HPx:         units.MmToPx(el.HMm, screenDPI),
		RotationDeg: el.RotationDeg,
		Locked:      el.Locked,

		ImageRef: el.ImageRef,
		Fit:      el.Fit,

		Text:       el.Text,
		FontFamily: el.FontFamily,
		FontSizePx: el.FontSizePt / PtPerPx,
		Color:      el.Color,
		Align:      el.Align,

		Shape:         el.Shape,
		FillColor:     el.FillColor,
		BorderColor:   el.BorderColor,
		BorderWidthPx: units.MmToPx(el.BorderWidthMm, screenDPI),

		OrnamentRef: el.OrnamentRef,
	}
}

// ToEditorObjects instantiates a page's elements in paint order.
func ToEditorObjects(p *Page, screenDPI float64) []EditorObject {
	elements := PaintOrder(p)
	out := make([]EditorObject, len(elements))
	for i, el := range elements {
		out[i] = ToEditorObject(el, screenDPI)
	}
	return out
}
