package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunReindexAssignsDenseIndices(t *testing.T) {
	dir := t.TempDir()
	deckPath := filepath.Join(dir, "deck.i")
	outPath := filepath.Join(dir, "out.i")

	require.NoError(t, os.WriteFile(deckPath, []byte("title\n10 0 -5\n\n5 px 1.0\n\n"), 0o644))

	reindexOutput = outPath
	out, err := captureOutput(t, func() error {
		return runReindex(deckPath)
	})
	require.NoError(t, err)
	require.Contains(t, out, "Wrote "+outPath)

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, "title\n1  0 -1\n\n1 px 1.0\n\n", string(got))
}

func TestRunReindexMissingDeckReturnsError(t *testing.T) {
	dir := t.TempDir()
	reindexOutput = filepath.Join(dir, "out.i")
	_, err := captureOutput(t, func() error {
		return runReindex(filepath.Join(dir, "missing.i"))
	})
	require.Error(t, err)
}
