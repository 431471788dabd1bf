package raster

import (
	"bytes"
	"context"
	"fmt"

	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/foldline/foldline/design"
	"github.com/foldline/foldline/renderer"
)

// RenderProof writes every page of the document into one PDF, in the
// document's panel order. Proofs are review artifacts, not press files, so
// callers typically enable Guides and leave IncludeBleed off.
func (r *Renderer) RenderProof(ctx context.Context, doc *design.Document, opts renderer.Options) ([]byte, error) {
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("raster: document has no pages")
	}

	var buf bytes.Buffer
	var writer *pdf.PDF
	for i, page := range doc.Pages {
		c, err := r.compose(ctx, doc, page.ID, opts)
		if err != nil {
			return nil, err
		}
		w, h := c.Size()
		if i == 0 {
			writer = pdf.New(&buf, w, h, nil)
			writer.SetInfo("Print proof", "", "", "", "foldline")
		} else {
			writer.NewPage(w, h)
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("raster: write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
