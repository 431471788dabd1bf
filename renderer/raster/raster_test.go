package raster

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/foldline/foldline/assets"
	"github.com/foldline/foldline/design"
	"github.com/foldline/foldline/printspec"
	"github.com/foldline/foldline/renderer"
)

func postcardDoc(t *testing.T) (printspec.Spec, *design.Document) {
	t.Helper()
	sp := printspec.Generate(printspec.ProductPostcard, "4x6", printspec.Portrait, printspec.FoldFlat, printspec.Options{})
	doc := design.New(sp, time.Now())
	return sp, doc
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png decode: %v", err)
	}
	return img
}

func TestRenderPageBleedDimensions(t *testing.T) {
	_, doc := postcardDoc(t)
	r := New(Options{})

	out, err := r.RenderPage(context.Background(), doc, printspec.SideFront, renderer.Options{
		DPI:          300,
		IncludeBleed: true,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	// 101.6x152.4mm trim plus 4mm bleed all around, at 300dpi
	img := decodePNG(t, out)
	if w := img.Bounds().Dx(); w != 1294 {
		t.Errorf("width = %d px, want 1294", w)
	}
	if h := img.Bounds().Dy(); h != 1894 {
		t.Errorf("height = %d px, want 1894", h)
	}
}

func TestRenderPageTrimDimensions(t *testing.T) {
	_, doc := postcardDoc(t)
	r := New(Options{})

	out, err := r.RenderPage(context.Background(), doc, printspec.SideFront, renderer.Options{DPI: 300})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	img := decodePNG(t, out)
	if w, h := img.Bounds().Dx(), img.Bounds().Dy(); w != 1200 || h != 1800 {
		t.Errorf("trim-only output = %dx%d px, want 1200x1800", w, h)
	}
}

func TestRenderPageWhiteStock(t *testing.T) {
	_, doc := postcardDoc(t)
	r := New(Options{})

	out, err := r.RenderPage(context.Background(), doc, printspec.SideFront, renderer.Options{DPI: 72})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	img := decodePNG(t, out)
	c := img.At(img.Bounds().Dx()/2, img.Bounds().Dy()/2)
	r8, g8, b8, _ := c.RGBA()
	if r8 != 0xffff || g8 != 0xffff || b8 != 0xffff {
		t.Errorf("empty page center = %v, want white", c)
	}
}

func TestRenderPageUnknownPage(t *testing.T) {
	_, doc := postcardDoc(t)
	r := New(Options{})

	if _, err := r.RenderPage(context.Background(), doc, printspec.SideInsideLeft, renderer.Options{DPI: 72}); err == nil {
		t.Fatal("expected error for page absent from the document")
	}
}

func TestRenderPageDrawsImage(t *testing.T) {
	_, doc := postcardDoc(t)

	// a solid red 10x10 source image
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			src.Set(x, y, color.RGBA{R: 0xff, A: 0xff})
		}
	}
	var blob bytes.Buffer
	if err := png.Encode(&blob, src); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	page, _ := doc.Page(printspec.SideFront)
	page.Elements = append(page.Elements, design.Element{
		Kind:     design.KindImage,
		ImageRef: "photos/red.png",
		XMm:      10, YMm: 10, WMm: 40, HMm: 40,
		Fit: design.FitCover,
	})

	log := &recordingLogger{}
	r := New(Options{
		Assets: assets.Memory{"photos/red.png": blob.Bytes()},
		Logger: log,
	})

	out, err := r.RenderPage(context.Background(), doc, printspec.SideFront, renderer.Options{DPI: 72})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(log.warns) != 0 {
		t.Fatalf("unexpected skipped elements: %v", log.warns)
	}

	// element box center: (30mm, 30mm) at 72dpi
	img := decodePNG(t, out)
	mm := 30.0
	px := int(mm/25.4*72.0 + 0.5)
	r8, g8, b8, _ := img.At(px, px).RGBA()
	if r8 < 0xf000 || g8 > 0x0fff || b8 > 0x0fff {
		t.Errorf("image box center = rgb(%d,%d,%d), want red", r8>>8, g8>>8, b8>>8)
	}
}

func TestRenderPageSkipsBrokenElement(t *testing.T) {
	_, doc := postcardDoc(t)
	page, _ := doc.Page(printspec.SideFront)
	page.Elements = append(page.Elements, design.Element{
		Kind:     design.KindImage,
		ImageRef: "missing.png",
		XMm:      10, YMm: 10, WMm: 40, HMm: 40,
	})

	log := &recordingLogger{}
	r := New(Options{Logger: log})

	out, err := r.RenderPage(context.Background(), doc, printspec.SideFront, renderer.Options{DPI: 72})
	if err != nil {
		t.Fatalf("one broken asset must not fail the render: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("no output produced")
	}
	if len(log.warns) != 1 {
		t.Fatalf("warns = %d, want 1 skipped-element report", len(log.warns))
	}
}

func TestRenderPageCanceled(t *testing.T) {
	_, doc := postcardDoc(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(Options{})
	if _, err := r.RenderPage(ctx, doc, printspec.SideFront, renderer.Options{DPI: 72}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestRenderPageDeterministic(t *testing.T) {
	_, doc := postcardDoc(t)
	r := New(Options{})
	opts := renderer.Options{DPI: 150, IncludeBleed: true, Guides: true}

	a, err := r.RenderPage(context.Background(), doc, printspec.SideFront, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	b, err := r.RenderPage(context.Background(), doc, printspec.SideFront, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("two renders of the same page differ")
	}
}

func TestRenderGuidesDoNotChangeDimensions(t *testing.T) {
	sp := printspec.Generate(printspec.ProductCard, "5x7", printspec.Portrait, printspec.FoldBifold, printspec.Options{})
	doc := design.New(sp, time.Now())
	r := New(Options{})

	out, err := r.RenderPage(context.Background(), doc, printspec.SideFront, renderer.Options{
		DPI:    150,
		Guides: true,
		Spec:   &sp,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	// 5x7 portrait trim is 127x177.8mm
	img := decodePNG(t, out)
	trimW, trimH := 127.0, 177.8
	wantW := int(trimW/25.4*150.0 + 0.5)
	wantH := int(trimH/25.4*150.0 + 0.5)
	if w, h := img.Bounds().Dx(), img.Bounds().Dy(); w != wantW || h != wantH {
		t.Errorf("guide render = %dx%d px, want %dx%d", w, h, wantW, wantH)
	}
}

func TestRenderProofPDF(t *testing.T) {
	sp := printspec.Generate(printspec.ProductCard, "5x7", printspec.Portrait, printspec.FoldBifold, printspec.Options{})
	doc := design.New(sp, time.Now())
	r := New(Options{})

	out, err := r.RenderProof(context.Background(), doc, renderer.Options{Guides: true, Spec: &sp})
	if err != nil {
		t.Fatalf("proof: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("proof does not start with a PDF header")
	}
}

type recordingLogger struct {
	warns []string
}

func (l *recordingLogger) Debug(string, ...any)      {}
func (l *recordingLogger) Info(string, ...any)       {}
func (l *recordingLogger) Warn(msg string, _ ...any) { l.warns = append(l.warns, msg) }
func (l *recordingLogger) Error(string, ...any)      {}
