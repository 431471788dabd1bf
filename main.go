package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/foldline/foldline/assets"
	"github.com/foldline/foldline/catalog"
	"github.com/foldline/foldline/design"
	"github.com/foldline/foldline/internal/logging"
	"github.com/foldline/foldline/preflight"
	"github.com/foldline/foldline/printspec"
	"github.com/foldline/foldline/renderer"
	"github.com/foldline/foldline/renderer/raster"
	"github.com/foldline/foldline/units"
)

func main() {
	catalogPath := flag.String("catalog", "examples/catalog.fold", "catalog file path")
	product := flag.String("product", "", "product slug to resolve")
	variant := flag.String("variant", "", "variant UID within the product")
	designPath := flag.String("design", "", "design document JSON; empty renders a blank document")
	page := flag.String("page", "front", "panel to export")
	output := flag.String("out", "output/export.png", "output path")
	proof := flag.Bool("proof", false, "write a multi-page PDF proof instead of a PNG")
	dpi := flag.Float64("dpi", 0, "output resolution; 0 uses the spec's DPI")
	bleed := flag.Bool("bleed", false, "extend the output to the bleed box")
	guides := flag.Bool("guides", false, "overlay trim/safe/fold guides")
	dataJSON := flag.String("data", "", "merge-field payload as JSON")
	assetsDir := flag.String("assets", "", "directory image references resolve against")
	flag.Parse()

	if *product == "" {
		log.Fatal("missing -product")
	}

	var data any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &data); err != nil {
			log.Fatalf("parse data JSON: %v", err)
		}
	}

	var src assets.Source
	if *assetsDir != "" {
		src = assets.Dir{Root: *assetsDir}
	}
	r := raster.New(raster.Options{
		Assets: src,
		Logger: logging.Slog(slog.Default()),
	})

	if err := run(*catalogPath, *product, *variant, *designPath, *page, *output,
		*proof, *dpi, *bleed, *guides, data, r); err != nil {
		log.Fatalf("export failed: %v", err)
	}
}

// run chains catalog resolution, preflight and rendering.
func run(catalogPath, product, variant, designPath, page, output string,
	proof bool, dpi float64, bleed, guides bool, data any, r *raster.Renderer) error {
	cat, err := catalog.ParseFile(catalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	sp, err := printspec.Resolver{Catalog: cat}.ResolveForProduct(product, variant)
	if err != nil {
		return err
	}

	var doc *design.Document
	if designPath != "" {
		doc, err = design.LoadFile(designPath)
		if err != nil {
			return fmt.Errorf("load design: %w", err)
		}
		if err := doc.ValidateAgainst(sp); err != nil {
			return err
		}
	} else {
		doc = design.New(sp, time.Now())
	}

	report := preflight.Run(sp, doc, preflight.Options{Data: data})
	for _, w := range report.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if !report.IsValid {
		for _, e := range report.Errors {
			fmt.Fprintf(os.Stderr, "error: %s\n", e)
		}
		return fmt.Errorf("preflight found %d blocking problem(s)", len(report.Errors))
	}

	opts := renderer.Options{
		DPI:          dpi,
		IncludeBleed: bleed,
		Guides:       guides,
		Spec:         &sp,
		Data:         data,
	}

	var out []byte
	if proof {
		out, err = r.RenderProof(context.Background(), doc, opts)
	} else {
		out, err = r.RenderPage(context.Background(), doc, printspec.SideID(page), opts)
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(output, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	side := renderer.SideFor(doc, printspec.SideID(page), opts)
	fmt.Printf("wrote %s (%s, trim %.1fx%.1fmm / %.1fx%.1fpt)\n",
		output, sp.ID, side.TrimMm.W, side.TrimMm.H,
		units.MmToPoints(side.TrimMm.W), units.MmToPoints(side.TrimMm.H))
	return nil
}
