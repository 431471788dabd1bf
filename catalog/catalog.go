// Package catalog parses the product catalog definition file: the list of
// sellable products, their print configuration, and per-variant overrides.
// The parsed catalog implements printspec.CatalogSource.
//
// The format is a small block language:
//
//	catalog "spring" {
//	    product birthday-card {
//	        type: card
//	        size: 5x7
//	        orientation: portrait
//	        fold: bifold
//	        variant bd-ls {
//	            orientation: landscape
//	        }
//	    }
//	}
package catalog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/foldline/foldline/printspec"
)

var (
	catalogLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z0-9_.][A-Za-z0-9_.\-]*`},
		{Name: "Punct", Pattern: `[{}:]`},
	})

	fileParser = participle.MustBuild[File](
		participle.Lexer(catalogLexer),
		participle.Elide("Whitespace", "LineComment", "HashComment"),
	)
)

// File is the root AST node for a catalog file.
type File struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     string         `parser:"'catalog' @(String|Ident)"`
	Products []*Product     `parser:"'{' @@* '}'"`
}

// Product declares one sellable product.
type Product struct {
	Pos     lexer.Position `parser:""`
	Slug    string         `parser:"'product' @Ident"`
	Entries []*Entry       `parser:"'{' @@* '}'"`
}

// Entry is either a variant block or a key/value attribute.
type Entry struct {
	Variant *Variant `parser:"  @@"`
	Attr    *Attr    `parser:"| @@"`
}

// Variant overrides parts of the product configuration for one variant UID.
type Variant struct {
	Pos   lexer.Position `parser:""`
	UID   string         `parser:"'variant' @Ident"`
	Attrs []*Attr        `parser:"'{' @@* '}'"`
}

// Attr uses colon syntax (key: value).
type Attr struct {
	Pos   lexer.Position `parser:""`
	Key   string         `parser:"@Ident ':'"`
	Value string         `parser:"@(String|Ident)"`
}

// Catalog is the validated catalog, keyed by product slug.
type Catalog struct {
	Name     string
	products map[string]printspec.ProductEntry
}

// Product implements printspec.CatalogSource.
func (c *Catalog) Product(slug string) (printspec.ProductEntry, bool) {
	e, ok := c.products[slug]
	return e, ok
}

// Slugs returns the product slugs in no particular order.
func (c *Catalog) Slugs() []string {
	out := make([]string, 0, len(c.products))
	for slug := range c.products {
		out = append(out, slug)
	}
	return out
}

// Parse reads and validates a catalog file.
func Parse(r io.Reader) (*Catalog, error) {
	file, err := fileParser.Parse("catalog", r)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}
	return build(file)
}

// ParseFile is Parse over a file path.
func ParseFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

func build(file *File) (*Catalog, error) {
	c := &Catalog{
		Name:     unquote(file.Name),
		products: make(map[string]printspec.ProductEntry, len(file.Products)),
	}
	for _, p := range file.Products {
		if _, dup := c.products[p.Slug]; dup {
			return nil, fmt.Errorf("catalog: %s: duplicate product %q", p.Pos, p.Slug)
		}
		entry, err := buildProduct(p)
		if err != nil {
			return nil, err
		}
		c.products[p.Slug] = entry
	}
	return c, nil
}

func buildProduct(p *Product) (printspec.ProductEntry, error) {
	entry := printspec.ProductEntry{
		Slug:     p.Slug,
		Variants: map[string]printspec.VariantEntry{},
	}
	for _, e := range p.Entries {
		switch {
		case e.Attr != nil:
			if err := applyProductAttr(&entry, e.Attr); err != nil {
				return entry, err
			}
		case e.Variant != nil:
			v := printspec.VariantEntry{UID: e.Variant.UID}
			for _, a := range e.Variant.Attrs {
				if err := applyVariantAttr(&v, a); err != nil {
					return entry, err
				}
			}
			if _, dup := entry.Variants[v.UID]; dup {
				return entry, fmt.Errorf("catalog: %s: duplicate variant %q", e.Variant.Pos, v.UID)
			}
			entry.Variants[v.UID] = v
		}
	}
	if entry.Type == "" {
		return entry, fmt.Errorf("catalog: %s: product %q missing type", p.Pos, p.Slug)
	}
	return entry, nil
}

func applyProductAttr(entry *printspec.ProductEntry, a *Attr) error {
	val := unquote(a.Value)
	switch a.Key {
	case "type":
		t, err := parseProductType(val)
		if err != nil {
			return fmt.Errorf("catalog: %s: %w", a.Pos, err)
		}
		entry.Type = t
	case "size":
		entry.SizeID = val
	case "orientation":
		o, err := parseOrientation(val)
		if err != nil {
			return fmt.Errorf("catalog: %s: %w", a.Pos, err)
		}
		entry.Orientation = o
	case "fold":
		f, err := parseFold(val)
		if err != nil {
			return fmt.Errorf("catalog: %s: %w", a.Pos, err)
		}
		entry.Fold = f
	default:
		return fmt.Errorf("catalog: %s: unknown product attribute %q", a.Pos, a.Key)
	}
	return nil
}

func applyVariantAttr(v *printspec.VariantEntry, a *Attr) error {
	val := unquote(a.Value)
	switch a.Key {
	case "size":
		v.SizeID = val
	case "orientation":
		o, err := parseOrientation(val)
		if err != nil {
			return fmt.Errorf("catalog: %s: %w", a.Pos, err)
		}
		v.Orientation = o
	case "fold":
		f, err := parseFold(val)
		if err != nil {
			return fmt.Errorf("catalog: %s: %w", a.Pos, err)
		}
		v.Fold = f
	default:
		return fmt.Errorf("catalog: %s: unknown variant attribute %q", a.Pos, a.Key)
	}
	return nil
}

func parseProductType(s string) (printspec.ProductType, error) {
	switch printspec.ProductType(s) {
	case printspec.ProductCard, printspec.ProductPostcard, printspec.ProductInvitation,
		printspec.ProductAnnouncement, printspec.ProductPrint:
		return printspec.ProductType(s), nil
	}
	return "", fmt.Errorf("unknown product type %q", s)
}

func parseOrientation(s string) (printspec.Orientation, error) {
	switch printspec.Orientation(s) {
	case printspec.Portrait, printspec.Landscape:
		return printspec.Orientation(s), nil
	}
	return "", fmt.Errorf("unknown orientation %q", s)
}

func parseFold(s string) (printspec.FoldOption, error) {
	switch printspec.FoldOption(s) {
	case printspec.FoldFlat, printspec.FoldBifold:
		return printspec.FoldOption(s), nil
	}
	return "", fmt.Errorf("unknown fold option %q", s)
}

func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
		s = strings.ReplaceAll(s, `\"`, `"`)
		s = strings.ReplaceAll(s, `\\`, `\`)
	}
	return s
}
