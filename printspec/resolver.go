package printspec

import (
	"errors"
	"fmt"
)

// ErrUnknownVariant is returned when a variant UID maps to no configured
// print format. This is the enforcement point that keeps unconfigured
// formats out of checkout; it is never softened into a default.
var ErrUnknownVariant = errors.New("printspec: unknown product variant")

// ErrUnknownProduct is returned when a product slug is not in the catalog.
var ErrUnknownProduct = errors.New("printspec: unknown product")

// VariantEntry is one sellable variant of a product, overriding the
// product's default configuration.
type VariantEntry struct {
	UID         string
	SizeID      string
	Orientation Orientation
	Fold        FoldOption
}

// ProductEntry is catalog metadata for one product. SizeID may be empty for
// products whose size only exists per-variant.
type ProductEntry struct {
	Slug        string
	Type        ProductType
	SizeID      string
	Orientation Orientation
	Fold        FoldOption
	Variants    map[string]VariantEntry
}

// CatalogSource supplies product entries by slug. The catalog package
// implements it over the parsed catalog file.
type CatalogSource interface {
	Product(slug string) (ProductEntry, bool)
}

// Resolver resolves print specs from catalog identifiers instead of
// explicit size/orientation parameters.
type Resolver struct {
	Catalog CatalogSource
	Opts    Options
}

// ResolveForProduct resolves the spec for a product slug and optional
// variant UID.
//
// A supplied variant that the catalog does not know is always an error.
// With no variant, a product with no usable configuration errors when it is
// card-like and falls back to the default spec otherwise.
func (r Resolver) ResolveForProduct(slug, variantUID string) (Spec, error) {
	entry, ok := r.Catalog.Product(slug)
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", ErrUnknownProduct, slug)
	}

	sizeID := entry.SizeID
	orientation := entry.Orientation
	fold := entry.Fold

	if variantUID != "" {
		v, ok := entry.Variants[variantUID]
		if !ok {
			return Spec{}, fmt.Errorf("%w: product %q variant %q", ErrUnknownVariant, slug, variantUID)
		}
		if v.SizeID != "" {
			sizeID = v.SizeID
		}
		if v.Orientation != "" {
			orientation = v.Orientation
		}
		if v.Fold != "" {
			fold = v.Fold
		}
	}

	if sizeID == "" {
		if entry.Type.cardLike() {
			return Spec{}, fmt.Errorf("printspec: product %q has no print format configured", slug)
		}
		sizeID = DefaultSizeID
	}
	if fold == "" {
		fold = FoldFlat
	}

	return Generate(entry.Type, sizeID, orientation, fold, r.Opts), nil
}
