package design

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Decode reads a document from its wire JSON form and checks the contract
// basics. It does not require a print spec; use ValidateAgainst for that.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("design: decode: %w", err)
	}
	if doc.PrintSpec.TrimWMm <= 0 || doc.PrintSpec.TrimHMm <= 0 {
		return nil, fmt.Errorf("design: document has no trim size")
	}
	seen := map[string]bool{}
	for _, p := range doc.Pages {
		if p.ID == "" {
			return nil, fmt.Errorf("design: page with empty id")
		}
		if seen[string(p.ID)] {
			return nil, fmt.Errorf("design: duplicate page %q", p.ID)
		}
		seen[string(p.ID)] = true
		for i, el := range p.Elements {
			switch el.Kind {
			case KindImage, KindText, KindLabel, KindOrnament:
			default:
				return nil, fmt.Errorf("design: page %q element %d has unknown kind %q", p.ID, i, el.Kind)
			}
		}
	}
	return &doc, nil
}

// Encode writes the document in its wire JSON form, indented for diffable
// persistence.
func Encode(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("design: encode: %w", err)
	}
	return nil
}

// LoadFile reads a document from disk.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("design: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// SaveFile writes a document to disk.
func SaveFile(path string, doc *Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("design: create %s: %w", path, err)
	}
	defer f.Close()
	return Encode(f, doc)
}
