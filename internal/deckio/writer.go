package deckio

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer writes a rewritten deck to a filesystem path atomically.
//
// Adapted from internal/writer.FileWriter.WriteHive: temp file in the same
// directory, fsync, then rename. Repurposed here for whole rewritten MCNP
// decks instead of hive export buffers.
type Writer struct {
	Path string
}

// WriteDeck writes buf to the configured path atomically via temp file +
// rename, so a crash or interrupted process never leaves a half-written
// deck at Path.
func (w *Writer) WriteDeck(buf []byte) error {
	dir := filepath.Dir(w.Path)
	tmpFile, err := os.CreateTemp(dir, ".numjuggler-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(buf); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	tmpFile = nil

	if err := os.Rename(tmpPath, w.Path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
