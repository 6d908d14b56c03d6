package types

// ParseOptions controls how a deck file is read and lexed.
type ParseOptions struct {
	// InputEncoding declares the deck's text encoding ("", "UTF-8", or
	// "Windows-1252"). No code in this module reads it: deck.ParseDeck
	// always decodes through internal/deckio.Open, which strips a UTF-8 BOM
	// and decodes input that is not valid UTF-8 as Windows-1252.
	InputEncoding string
}

// EmitOptions controls how a Card is re-materialized into text.
type EmitOptions struct {
	// Wrap re-wraps any input segment exceeding 79 visible columns (spec
	// §4.6). Off by default so P1/P5 (exact round-trip) hold.
	Wrap bool

	// RemoveSpaces collapses runs of whitespace in meaningful segments and
	// tightens spacing around '(', ')', ':' before emission, mirroring the
	// original implementation's remove_spaces(). Off by default: it is not
	// named by spec.md's component list, so the default preserves exact
	// round-trip.
	RemoveSpaces bool
}
