package deckio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteDeckAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.i")
	w := &Writer{Path: path}

	want := "title\n1 0 -1 2\n"
	if err := w.WriteDeck([]byte(want)); err != nil {
		t.Fatalf("WriteDeck: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if e.Name() != "out.i" {
			t.Errorf("unexpected leftover file %q, temp file was not cleaned up", e.Name())
		}
	}
}

func TestWriteDeckOverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.i")
	if err := os.WriteFile(path, []byte("stale\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	w := &Writer{Path: path}
	want := "fresh\n"
	if err := w.WriteDeck([]byte(want)); err != nil {
		t.Fatalf("WriteDeck: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
