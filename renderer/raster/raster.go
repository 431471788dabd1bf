// Package raster renders design pages to print-resolution PNG via
// github.com/tdewolff/canvas. The canvas is built in millimeters straight
// from the document's geometry; pixels appear exactly once, when the
// finished canvas is rasterized at the requested DPI.
package raster

import (
	"bytes"
	"context"
	"fmt"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"

	"github.com/foldline/foldline/assets"
	"github.com/foldline/foldline/design"
	"github.com/foldline/foldline/internal/logging"
	"github.com/foldline/foldline/printspec"
	"github.com/foldline/foldline/renderer"
	"github.com/foldline/foldline/units"
)

// Resource provides a font either by bytes or by path.
type Resource struct {
	Bytes []byte
	Path  string
}

// Options configures a Renderer.
type Options struct {
	// Assets resolves image and ornament references.
	Assets assets.Source
	// Fonts maps family names to font resources.
	Fonts map[string]Resource
	// Logger receives skipped-element reports.
	Logger logging.Logger
}

// Renderer is the PNG rasterization adapter. It is safe for concurrent use;
// the font family cache is the only shared state.
type Renderer struct {
	assets assets.Source
	log    logging.Logger

	fonts *fontRegistry
}

var _ renderer.Renderer = (*Renderer)(nil)

// New creates a raster renderer with injected assets and fonts.
func New(opts Options) *Renderer {
	src := opts.Assets
	if src == nil {
		src = assets.Memory{}
	}
	return &Renderer{
		assets: src,
		log:    logging.Or(opts.Logger),
		fonts:  newFontRegistry(opts.Fonts),
	}
}

// RenderPage composites one page to a PNG at print DPI. A single failing
// element is logged and skipped so one broken asset cannot block an entire
// export; cancellation discards the partial canvas and returns the context
// error.
func (r *Renderer) RenderPage(ctx context.Context, doc *design.Document, pageID printspec.SideID, opts renderer.Options) ([]byte, error) {
	c, err := r.compose(ctx, doc, pageID, opts)
	if err != nil {
		return nil, err
	}
	dpi := renderer.DPIFor(doc, opts)

	var buf bytes.Buffer
	if err := c.Write(&buf, renderers.PNG(canvas.DPMM(dpi/units.MmPerInch))); err != nil {
		return nil, fmt.Errorf("raster: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// compose draws the page onto a mm-sized canvas. Shared by the PNG path
// and the PDF proof writer.
func (r *Renderer) compose(ctx context.Context, doc *design.Document, pageID printspec.SideID, opts renderer.Options) (*canvas.Canvas, error) {
	page, ok := doc.Page(pageID)
	if !ok {
		return nil, fmt.Errorf("raster: document has no page %q", pageID)
	}
	side := renderer.SideFor(doc, pageID, opts)

	wMm, hMm := side.TrimMm.W, side.TrimMm.H
	off := 0.0
	if opts.IncludeBleed {
		wMm += 2 * side.BleedMm
		hMm += 2 * side.BleedMm
		off = side.BleedMm
	}

	c := canvas.New(wMm, hMm)
	cc := canvas.NewContext(c)
	cc.SetCoordSystem(canvas.CartesianIV) // top-left origin, like the document

	// white stock
	cc.SetFillColor(canvas.White)
	cc.DrawPath(0, 0, canvas.Rectangle(wMm, hMm))

	dpi := renderer.DPIFor(doc, opts)
	for _, el := range design.PaintOrder(page) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.drawElement(ctx, cc, el, off, dpi, opts.Data); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			r.log.Warn("element skipped",
				"page", string(pageID), "kind", string(el.Kind), "err", err)
		}
	}

	if opts.Guides {
		drawGuides(cc, side, off)
	}
	return c, nil
}

func (r *Renderer) drawElement(ctx context.Context, cc *canvas.Context, el design.Element, off, dpi float64, data any) error {
	restore := pushRotation(cc, el, off)
	defer restore()

	switch el.Kind {
	case design.KindImage, design.KindOrnament:
		return r.drawImage(ctx, cc, el, off, dpi)
	case design.KindText:
		return r.drawText(cc, el, off, data)
	case design.KindLabel:
		return r.drawLabel(cc, el, off, data)
	default:
		return fmt.Errorf("unknown element kind %q", el.Kind)
	}
}

// pushRotation applies the element's rotation about its box center and
// returns the state restore function.
func pushRotation(cc *canvas.Context, el design.Element, off float64) func() {
	if el.RotationDeg == 0 {
		return func() {}
	}
	cc.Push()
	cx := el.XMm + off + el.WMm/2
	cy := el.YMm + off + el.HMm/2
	cc.RotateAbout(el.RotationDeg, cx, cy)
	return cc.Pop
}

// drawGuides overlays the trim outline, the safe-zone outline and any fold
// lines. Guide geometry reuses the same derived boxes as everything else.
func drawGuides(cc *canvas.Context, side printspec.Side, off float64) {
	trim := side.TrimBox()
	safe := side.SafeBox()

	cc.SetFillColor(canvas.Transparent)
	cc.SetStrokeWidth(0.2)

	cc.SetStrokeColor(canvas.Hex("#00a0ff"))
	cc.DrawPath(trim.X+off, trim.Y+off, canvas.Rectangle(trim.W, trim.H))

	cc.SetStrokeColor(canvas.Hex("#00c853"))
	cc.SetDashes(0, 2, 1.5)
	cc.DrawPath(safe.X+off, safe.Y+off, canvas.Rectangle(safe.W, safe.H))

	cc.SetStrokeColor(canvas.Hex("#aaaaaa"))
	for _, fl := range side.FoldLines {
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(fl.X2-fl.X1, fl.Y2-fl.Y1)
		cc.DrawPath(fl.X1+off, fl.Y1+off, p)
	}
	cc.SetDashes(0)
}
