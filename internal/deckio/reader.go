// Package deckio is the ambient encoding-tolerant reader and atomic writer
// used by the driver to open and save MCNP decks.
package deckio

import (
	"bytes"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Open reads the full contents of r and returns an io.Reader over UTF-8
// bytes ready for the lexer. MCNP decks are overwhelmingly plain ASCII, but
// decks authored on Windows sometimes carry a UTF-8 BOM or Windows-1252
// bytes in title/comment text (curly quotes, accented author names).
//
// Grounded on internal/regtext.decodeInputToBytes/ParseRegFile: sniff a
// UTF-8 BOM and strip it; otherwise, if the bytes do not already form valid
// UTF-8, decode them as Windows-1252 (a superset of ASCII, so plain decks
// pass through unchanged either way).
func Open(r io.Reader) (io.Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if bytes.HasPrefix(data, utf8BOM) {
		return bytes.NewReader(data[len(utf8BOM):]), nil
	}
	if utf8.Valid(data) {
		return bytes.NewReader(data), nil
	}

	decoder := charmap.Windows1252.NewDecoder()
	decoded, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(decoded), nil
}
