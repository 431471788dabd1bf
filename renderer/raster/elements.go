package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/tdewolff/canvas"
	xdraw "golang.org/x/image/draw"

	"github.com/foldline/foldline/binding"
	"github.com/foldline/foldline/design"
	"github.com/foldline/foldline/units"
)

func (r *Renderer) drawImage(ctx context.Context, cc *canvas.Context, el design.Element, off, dpi float64) error {
	ref := el.ImageRef
	if el.Kind == design.KindOrnament {
		ref = el.OrnamentRef
	}
	if ref == "" {
		return fmt.Errorf("element has no asset reference")
	}
	blob, err := r.assets.FetchBytes(ctx, ref)
	if err != nil {
		return fmt.Errorf("fetch %q: %w", ref, err)
	}
	img, _, err := image.Decode(bytes.NewReader(blob))
	if err != nil {
		return fmt.Errorf("decode %q: %w", ref, err)
	}
	img = capResolution(img, el.WMm, el.HMm, dpi)

	box := canvas.Rect{
		X0: el.XMm + off,
		Y0: el.YMm + off,
		X1: el.XMm + off + el.WMm,
		Y1: el.YMm + off + el.HMm,
	}
	fit := canvas.ImageCover
	if el.Fit == design.FitContain {
		fit = canvas.ImageContain
	}
	cc.FitImage(img, box, fit)
	return nil
}

// capResolution downscales a source image whose pixel density exceeds the
// output resolution. Anything at or below the output budget is returned
// unchanged; upscaling is left to the rasterizer.
func capResolution(img image.Image, wMm, hMm, dpi float64) image.Image {
	if wMm <= 0 || hMm <= 0 {
		return img
	}
	budgetW := int(units.MmToPx(wMm, dpi) + 0.5)
	budgetH := int(units.MmToPx(hMm, dpi) + 0.5)
	b := img.Bounds()
	if b.Dx() <= budgetW*2 && b.Dy() <= budgetH*2 {
		return img
	}
	scale := float64(budgetW) / float64(b.Dx())
	if s := float64(budgetH) / float64(b.Dy()); s > scale {
		scale = s
	}
	dst := image.NewRGBA(image.Rect(0, 0,
		int(float64(b.Dx())*scale+0.5), int(float64(b.Dy())*scale+0.5)))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}

func (r *Renderer) drawText(cc *canvas.Context, el design.Element, off float64, data any) error {
	text := binding.Interpolate(el.Text, data)
	if text == "" {
		return nil
	}
	face, err := r.fonts.face(el.FontFamily, el.FontSizePt, el.Color)
	if err != nil {
		return err
	}

	align, anchorX := textAnchor(el, off)
	metrics := face.Metrics()

	cursorY := el.YMm + off
	for _, line := range strings.Split(text, "\n") {
		baseline := cursorY + metrics.Ascent
		cc.DrawText(anchorX, baseline, canvas.NewTextLine(face, line, align))
		cursorY += metrics.LineHeight
	}
	return nil
}

// textAnchor resolves the horizontal alignment and the x coordinate text
// lines anchor at.
func textAnchor(el design.Element, off float64) (canvas.TextAlign, float64) {
	switch strings.ToLower(el.Align) {
	case "center":
		return canvas.Center, el.XMm + off + el.WMm/2
	case "right", "end":
		return canvas.Right, el.XMm + off + el.WMm
	default:
		return canvas.Left, el.XMm + off
	}
}

func (r *Renderer) drawLabel(cc *canvas.Context, el design.Element, off float64, data any) error {
	x, y := el.XMm+off, el.YMm+off

	if el.FillColor != nil {
		cc.SetFillColor(faceColor(el.FillColor))
	} else {
		cc.SetFillColor(canvas.Transparent)
	}
	if el.BorderColor != nil && el.BorderWidthMm > 0 {
		cc.SetStrokeColor(faceColor(el.BorderColor))
		cc.SetStrokeWidth(el.BorderWidthMm)
	} else {
		cc.SetStrokeColor(canvas.Transparent)
	}
	cc.DrawPath(x, y, labelPath(el))
	cc.SetStrokeColor(canvas.Transparent)

	text := binding.Interpolate(el.Text, data)
	if text == "" {
		return nil
	}
	face, err := r.fonts.face(el.FontFamily, el.FontSizePt, el.Color)
	if err != nil {
		return err
	}
	metrics := face.Metrics()

	// center the line block vertically inside the shape
	lines := strings.Split(text, "\n")
	blockH := float64(len(lines)) * metrics.LineHeight
	cursorY := y + (el.HMm-blockH)/2
	for _, line := range lines {
		baseline := cursorY + metrics.Ascent
		cc.DrawText(x+el.WMm/2, baseline, canvas.NewTextLine(face, line, canvas.Center))
		cursorY += metrics.LineHeight
	}
	return nil
}

func labelPath(el design.Element) *canvas.Path {
	switch el.Shape {
	case design.ShapeEllipse:
		return canvas.Ellipse(el.WMm/2, el.HMm/2).Translate(el.WMm/2, el.HMm/2)
	case design.ShapeRoundedRect:
		r := min(el.WMm, el.HMm) * 0.12
		return canvas.RoundedRectangle(el.WMm, el.HMm, r)
	default:
		return canvas.Rectangle(el.WMm, el.HMm)
	}
}
