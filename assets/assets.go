// Package assets supplies image bytes to the renderer. The core never
// knows how an asset was uploaded or authorized; it only asks a Source for
// the bytes behind an opaque reference.
package assets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a reference resolves to nothing.
var ErrNotFound = errors.New("assets: not found")

// Source fetches the bytes behind an asset reference. Implementations must
// honor context cancellation for anything slower than a map lookup.
type Source interface {
	FetchBytes(ctx context.Context, ref string) ([]byte, error)
}

// Memory is an in-memory source keyed by reference, for injected built-in
// assets and for tests.
type Memory map[string][]byte

func (m Memory) FetchBytes(_ context.Context, ref string) ([]byte, error) {
	data, ok := m[ref]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, ref)
	}
	return data, nil
}

// Dir serves references as file paths under a root directory. References
// may not escape the root.
type Dir struct {
	Root string
}

func (d Dir) FetchBytes(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.Root == "" {
		return nil, fmt.Errorf("assets: dir source has no root")
	}
	clean := filepath.Clean(ref)
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return nil, fmt.Errorf("assets: reference %q escapes the asset root", ref)
	}
	data, err := os.ReadFile(filepath.Join(d.Root, clean))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, ref)
		}
		return nil, fmt.Errorf("assets: read %q: %w", ref, err)
	}
	return data, nil
}

// Chain tries each source in order, returning the first hit. A miss in one
// source falls through; other errors stop the chain.
type Chain []Source

func (c Chain) FetchBytes(ctx context.Context, ref string) ([]byte, error) {
	for _, s := range c {
		data, err := s.FetchBytes(ctx, ref)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, ref)
}
