package raster

import (
	"fmt"
	"image/color"
	"os"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/foldline/foldline/design"
)

// fontRegistry caches loaded canvas font families by family name. Loading a
// font parses the whole file, so each family is loaded once and shared by
// every face built from it. Safe for concurrent use.
type fontRegistry struct {
	mu        sync.Mutex
	resources map[string]Resource
	families  map[string]*canvas.FontFamily
	fallback  *canvas.FontFamily
}

func newFontRegistry(resources map[string]Resource) *fontRegistry {
	reg := &fontRegistry{
		resources: map[string]Resource{},
		families:  map[string]*canvas.FontFamily{},
	}
	for name, res := range resources {
		if name == "" {
			continue
		}
		reg.resources[name] = res
	}
	return reg
}

// face builds a canvas face for a family name, size in points and fill
// color. An unknown family falls back to a system sans-serif so a missing
// font never blocks an export.
func (reg *fontRegistry) face(familyName string, sizePt float64, col *design.Color) (*canvas.FontFace, error) {
	style := parseFontStyle(familyName)
	family, err := reg.ensureFamily(familyName, style)
	if err != nil {
		return nil, err
	}
	return family.Face(sizePt, faceColor(col), style, canvas.FontNormal), nil
}

func (reg *fontRegistry) ensureFamily(name string, style canvas.FontStyle) (*canvas.FontFamily, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if family, ok := reg.families[name]; ok {
		return family, nil
	}

	res, ok := reg.resources[name]
	if !ok {
		return reg.fallbackFamily()
	}
	data, err := fontBytes(name, res)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, 0, style); err != nil {
		return nil, fmt.Errorf("load font %q: %w", name, err)
	}
	reg.families[name] = family
	return family, nil
}

func (reg *fontRegistry) fallbackFamily() (*canvas.FontFamily, error) {
	if reg.fallback != nil {
		return reg.fallback, nil
	}
	family := canvas.NewFontFamily("fallback")
	if err := family.LoadSystemFont("sans-serif", canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("load fallback font: %w", err)
	}
	reg.fallback = family
	return family, nil
}

func fontBytes(name string, res Resource) ([]byte, error) {
	if len(res.Bytes) > 0 {
		return res.Bytes, nil
	}
	if res.Path != "" {
		data, err := os.ReadFile(res.Path)
		if err != nil {
			return nil, fmt.Errorf("read font %q: %w", name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("font %q has neither bytes nor path", name)
}

// parseFontStyle derives the font style from suffixes in the family name,
// e.g. "Inter Bold" or "Lora Italic".
func parseFontStyle(name string) canvas.FontStyle {
	s := strings.ToLower(name)
	result := canvas.FontRegular
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		result = canvas.FontSemiBold
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}

func faceColor(col *design.Color) color.Color {
	if col == nil {
		return canvas.Black
	}
	return canvas.RGBA(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, 1.0)
}
