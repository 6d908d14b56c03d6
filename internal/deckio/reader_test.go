package deckio

import (
	"io"
	"strings"
	"testing"
)

func TestOpenPlainASCIIPassesThrough(t *testing.T) {
	want := "title\n1 0 -1 2\n"
	r, err := Open(strings.NewReader(want))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestOpenStripsUTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("title\n1 0 -1\n")...)
	r, err := Open(strings.NewReader(string(input)))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != "title\n1 0 -1\n" {
		t.Errorf("got %q, want BOM stripped", got)
	}
}

func TestOpenDecodesWindows1252(t *testing.T) {
	// 0x93/0x94 are Windows-1252 curly quotes, invalid as UTF-8 continuation
	// bytes on their own — utf8.Valid must reject this and fall through to
	// the Windows-1252 decoder, which maps them to U+201C/U+201D.
	input := []byte("c author \x93quoted\x94 title\n1 0 -1\n")
	r, err := Open(strings.NewReader(string(input)))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	want := "c author “quoted” title\n1 0 -1\n"
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
