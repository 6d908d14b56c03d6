// Package decompose is the card decomposer (spec component C): it takes one
// internal/lexer.RawCard and splits its joined text into the
// template/input/hidden/values artifacts of a types.Card, extracting every
// identifier and recognized parameter along the way.
//
// Grounded on original_source/numjuggler/parser.py's Card class: get_input
// (template/input split), _protect_nums (hidden masking), get_values plus
// _split_cell/_split_surface/_split_data (identifier extraction). The
// original builds its template as a Python format string consumed by
// str.format at emission time; this package instead marks each slot with
// types.SegmentPlaceholder/types.ValuePlaceholder bytes consumed by
// internal/emit, since Go has no equivalent of positional str.format.
package decompose

import (
	"regexp"
	"strings"

	"github.com/dvp2015/numjuggler/internal/diag"
	"github.com/dvp2015/numjuggler/internal/kindreg"
	"github.com/dvp2015/numjuggler/internal/lexer"
	"github.com/dvp2015/numjuggler/pkg/types"
)

var (
	// reEndOfInput finds where the meaningful part of an ordinary physical
	// line stops: a space followed by '$' or '&' (an inline comment or
	// continuation marker), or the line's own newline. Mirrors parser.py's
	// re_end = r'\s[$&]|\n'.
	reEndOfInput = regexp.MustCompile(`\s[$&]|\n`)

	// reRepeat masks MCNP's "Nr"/"Ni" repetition shorthand (spec §4.3 hidden
	// sentinel '!'). Mirrors parser.py's re_rpt.
	reRepeat = regexp.MustCompile(`(?i)\d+[ri]`)

	// reBrackets masks a tally card's lattice index list (hidden sentinel
	// '|'). Greedy on purpose: parser.py's re_lat = r'\[.+\]' captures from
	// the first '[' to the last ']' in the text.
	reBrackets = regexp.MustCompile(`\[.+\]`)

	reTallyCard = regexp.MustCompile(`(?i)^\s*f\d`)
	reLikeCell  = regexp.MustCompile(`(?i)like`)
	reLikeSpace = regexp.MustCompile(`(?i)like `)

	// reGeomInt finds an optional single leading non-digit character (e.g. a
	// '-' orientation sign or a '#' cell-complement marker) followed by a
	// digit run. Mirrors parser.py's per-character scan in _split_cell and
	// _split_data: only the digit run becomes a Value, the prefix
	// character (if any) is left behind as untouched text.
	reGeomInt = regexp.MustCompile(`\D?\d+`)
)

func stripNonDigitPrefix(m string) (prefix byte, digits string) {
	if m == "" {
		return 0, ""
	}
	if m[0] >= '0' && m[0] <= '9' {
		return 0, m
	}
	return m[0], m[1:]
}

// Decompose builds a types.Card from a lexer-level RawCard. sink receives
// any diagnostics raised while extracting identifiers; pass diag.NewSink()
// if the caller does not need to inspect them.
func Decompose(raw lexer.RawCard, sink *diag.Sink) *types.Card {
	if sink == nil {
		sink = diag.NewSink()
	}

	card := &types.Card{
		Pos:      raw.Pos,
		CardKind: raw.CardKind,
		Hidden:   map[byte][]string{},
	}

	switch raw.CardKind {
	case types.CardComment, types.CardBlankLine, types.CardMessage, types.CardTitle:
		// These card kinds carry no identifiers; preserve their bytes
		// verbatim as a single template segment with no input.
		card.Template = raw.Text()
		return card
	}

	segments, templateParts := splitTemplate(raw)
	joined := strings.Join(segments, "\n")

	joined = maskHidden(card, raw.CardKind, joined)

	var values []types.Value
	switch raw.CardKind {
	case types.CardCell:
		joined, values = splitCell(card, sink, raw.Pos, joined)
	case types.CardSurface:
		joined, values = splitSurface(raw.Pos, joined)
	case types.CardData:
		joined, values = splitData(card, raw.Pos, joined)
	}

	card.Input = strings.Split(joined, "\n")
	card.Values = values
	card.Template = strings.Join(templateParts, "")

	if len(values) > 0 {
		if first, ok := values[0].Element(); ok {
			card.ElementKind = first
			card.HasElement = true
			n := values[0].Int
			card.OriginalName = &n
		}
	}
	card.Params = projectParams(card.ElementKind, values)

	return card
}

// splitTemplate implements step 1 (spec §4.3): each physical line of raw is
// split into a preserved template part and, for lines carrying meaningful
// content, an input segment. A template part for a line with an input
// segment is template-text-after-the-split plus a leading
// types.SegmentPlaceholder marking where that segment's materialized text
// goes; a comment line (or the remainder of a split-off line) is preserved
// as-is.
//
// fc-prefixed tally-comment cards are the original's one special case: the
// card's first line, without its newline and cut at 80 bytes, is a single
// atomic input segment; the rest of that line, its newline and any further
// lines are preserved as template only.
func splitTemplate(raw lexer.RawCard) (segments []string, templateParts []string) {
	if isFcCard(raw.Lines) {
		joined := raw.Text()
		cut := len(joined)
		if nl := strings.IndexByte(joined, '\n'); nl >= 0 {
			cut = nl
		}
		if cut > 80 {
			cut = 80
		}
		segments = append(segments, joined[:cut])
		templateParts = append(templateParts, string(types.SegmentPlaceholder), joined[cut:])
		return segments, templateParts
	}

	for _, line := range raw.Lines {
		if lexer.IsCommentLine(line) {
			templateParts = append(templateParts, line)
			continue
		}
		loc := reEndOfInput.FindStringIndex(line)
		if loc == nil {
			// No delimiter found (should not normally happen since every
			// line carries its newline); treat the whole line as input.
			segments = append(segments, line)
			templateParts = append(templateParts, string(types.SegmentPlaceholder))
			continue
		}
		segments = append(segments, line[:loc[0]])
		templateParts = append(templateParts, string(types.SegmentPlaceholder), line[loc[0]:])
	}
	return segments, templateParts
}

func isFcCard(lines []string) bool {
	if len(lines) == 0 {
		return false
	}
	return reFcCard.MatchString(lines[0])
}

var reFcCard = regexp.MustCompile(`(?i)^\s*fc\d`)

// maskHidden implements step 2 (spec §4.3): replaces substrings that would
// otherwise confuse identifier extraction with single-byte sentinels,
// recording the originals in card.Hidden for emission to reverse.
func maskHidden(card *types.Card, kind types.CardKind, joined string) string {
	if kind == types.CardCell && !reLikeCell.MatchString(joined) {
		// Reserved sentinel: the original implementation registers this key
		// but never actually populates it with substitutions either.
		card.Hidden['~'] = []string{}
	}

	joined = reRepeat.ReplaceAllStringFunc(joined, func(m string) string {
		card.Hidden['!'] = append(card.Hidden['!'], m)
		return "!"
	})

	if kind == types.CardData && reTallyCard.MatchString(joined) {
		joined = reBrackets.ReplaceAllStringFunc(joined, func(m string) string {
			card.Hidden['|'] = append(card.Hidden['|'], m)
			return "|"
		})
	}

	return joined
}

func projectParams(elem types.ElementKind, values []types.Value) map[types.ParameterKind]types.Value {
	allowed := kindreg.AllowedParams(elem)
	if len(allowed) == 0 {
		return nil
	}
	out := map[types.ParameterKind]types.Value{}
	for _, v := range values {
		if p, ok := v.Param(); ok && allowed[p] {
			out[p] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// replaceFirst substitutes the first occurrence of old in s with new,
// mirroring the original implementation's same str.replace(old, new, 1)
// call (and its same latent fragility when two tokens share identical
// text — accepted here as a faithful limitation, not fixed away).
func replaceFirst(s, old, new string) string {
	return strings.Replace(s, old, new, 1)
}
