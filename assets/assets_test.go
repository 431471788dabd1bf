package assets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMemorySource(t *testing.T) {
	src := Memory{"logo": []byte("png-bytes")}
	data, err := src.FetchBytes(context.Background(), "logo")
	if err != nil || string(data) != "png-bytes" {
		t.Fatalf("FetchBytes: %v %q", err, data)
	}
	if _, err := src.FetchBytes(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDirSource(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.png"), []byte("abc"), 0o644); err != nil {
		t.Fatal(err)
	}
	src := Dir{Root: root}

	data, err := src.FetchBytes(context.Background(), "a.png")
	if err != nil || string(data) != "abc" {
		t.Fatalf("FetchBytes: %v %q", err, data)
	}
	if _, err := src.FetchBytes(context.Background(), "b.png"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound for missing file, got %v", err)
	}
	if _, err := src.FetchBytes(context.Background(), "../escape"); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("escaping reference must be refused outright, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.FetchBytes(ctx, "a.png"); !errors.Is(err, context.Canceled) {
		t.Fatalf("canceled context must stop the fetch, got %v", err)
	}
}

func TestChain(t *testing.T) {
	chain := Chain{
		Memory{"a": []byte("1")},
		Memory{"a": []byte("shadowed"), "b": []byte("2")},
	}
	if data, err := chain.FetchBytes(context.Background(), "a"); err != nil || string(data) != "1" {
		t.Fatalf("chain order: %v %q", err, data)
	}
	if data, err := chain.FetchBytes(context.Background(), "b"); err != nil || string(data) != "2" {
		t.Fatalf("chain fallthrough: %v %q", err, data)
	}
	if _, err := chain.FetchBytes(context.Background(), "c"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("chain miss: %v", err)
	}
}
