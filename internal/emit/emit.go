// Package emit is the card emitter (spec component F): it substitutes a
// Card's current values back into its template, restores hidden sentinels,
// and optionally re-wraps overlong lines to 79 visible columns.
//
// Grounded on original_source/numjuggler/parser.py's Card.card: values are
// materialized into the joined input text first, then hidden substitutions
// are replayed in first-occurrence order, then (if wrap is requested) the
// template is walked segment by segment re-inserting break points. The
// original drives this with positional str.format calls against a "{}"
// template; this package walks types.SegmentPlaceholder/ValuePlaceholder
// bytes instead, since Go has no equivalent of positional str.format.
package emit

import (
	"fmt"
	"strings"

	"github.com/dvp2015/numjuggler/internal/diag"
	"github.com/dvp2015/numjuggler/pkg/types"
)

// Card reconstructs the bytes for one card. With wrap=false this is a pure
// substitution and, when Values is unmodified, reproduces the original
// bytes exactly (spec P1). With wrap=true, any materialized input segment
// still exceeding 79 visible columns is folded per spec §4.6.
func Card(card *types.Card, wrap bool, sink *diag.Sink) string {
	if sink == nil {
		sink = diag.NewSink()
	}
	if len(card.Input) == 0 {
		return card.Template
	}

	inpt := strings.Join(card.Input, "\n")
	inpt = materializeValues(inpt, card.Values)
	inpt = restoreHidden(inpt, card.Hidden)
	segments := strings.Split(inpt, "\n")

	template := card.Template
	if wrap {
		segments, template = wrapSegments(segments, template, card.Pos, sink)
	}
	return substituteSegments(template, segments)
}

// materializeValues replaces each ValuePlaceholder occurrence, in order,
// with its value formatted for re-insertion: an integer is left-justified
// to its original Width (mirroring parser.py's fmt_d, "{:<Nd}"); opaque
// text is inserted verbatim (parser.py's fmt_s, "{}").
func materializeValues(inpt string, values []types.Value) string {
	for _, v := range values {
		var repl string
		if v.IsText {
			repl = v.Text
		} else {
			repl = fmt.Sprintf("%-*d", v.Width, v.Int)
		}
		inpt = replaceFirstByte(inpt, types.ValuePlaceholder, repl)
	}
	return inpt
}

// restoreHidden replays each masking sentinel's buffered originals, in
// first-occurrence order, same as parser.py's Card.card loop over
// self.hidden.items().
func restoreHidden(inpt string, hidden map[byte][]string) string {
	for sentinel, originals := range hidden {
		for _, orig := range originals {
			inpt = replaceFirstByte(inpt, sentinel, orig)
		}
	}
	return inpt
}

func replaceFirstByte(s string, sentinel byte, repl string) string {
	i := strings.IndexByte(s, sentinel)
	if i < 0 {
		return s
	}
	return s[:i] + repl + s[i+1:]
}

// substituteSegments walks template's types.SegmentPlaceholder occurrences
// in order, filling each with the next entry of segments.
func substituteSegments(template string, segments []string) string {
	var b strings.Builder
	idx := 0
	for {
		i := strings.IndexByte(template, types.SegmentPlaceholder)
		if i < 0 {
			b.WriteString(template)
			break
		}
		b.WriteString(template[:i])
		if idx < len(segments) {
			b.WriteString(segments[idx])
			idx++
		}
		template = template[i+1:]
	}
	return b.String()
}

// templateTails splits template on its SegmentPlaceholder occurrences and
// drops the leading piece (the text before the first placeholder), mirroring
// parser.py's `re_fmt.split(self.template)[1:]`: element i is the template
// text that immediately follows the i-th materialized segment.
func templateTails(template string) []string {
	parts := strings.Split(template, string(types.SegmentPlaceholder))
	if len(parts) <= 1 {
		return nil
	}
	return parts[1:]
}

// wrapSegments folds overlong segments, rebuilding both the segment list
// and the template around the new break points. Ported line for line from
// parser.py's Card.card(wrap=True): each original (segment, trailingText)
// pair may expand into several (segment, trailingText) pairs, with a bare
// "\n" inserted as the trailing text of every synthetic break and the
// original trailing text kept for the break that happens to precede it in
// iteration order — this off-by-one-looking layout is the original's
// actual behavior, not a simplification of it.
func wrapSegments(segments []string, template string, pos int, sink *diag.Sink) ([]string, string) {
	tails := templateTails(template)

	newTails := []string{""}
	var newSegments []string

	for idx, seg := range segments {
		tail := ""
		if idx < len(tails) {
			tail = tails[idx]
		}
		var heads []string
		pieces := []string{tail}

		for visibleLen(strings.TrimRight(seg, " \t\n\r\v\f")) > 79 {
			if strings.HasPrefix(seg, "     ") {
				seg = "     " + strings.TrimLeft(seg, " \t\n\r\v\f")
			}
			if visibleLen(strings.TrimRight(seg, " \t\n\r\v\f")) <= 79 {
				break
			}
			trimmed := strings.TrimRight(seg, " \t\n\r\v\f")
			broke := false
			for _, dc := range []byte{' ', ':'} {
				limit := len(trimmed)
				if limit > 75 {
					limit = 75
				}
				k := strings.LastIndexByte(trimmed[:limit], dc)
				if k > 6 {
					heads = append(heads, seg[:k])
					pieces = append(pieces, "\n")
					seg = "     " + seg[k:]
					broke = true
					break
				}
			}
			if !broke {
				sink.Report(types.DiagWrapImpossible, pos, fmt.Sprintf("cannot wrap card on line %d", pos))
				break
			}
		}

		newTails = append(newTails, pieces...)
		newSegments = append(newSegments, heads...)
		newSegments = append(newSegments, seg)
	}

	return newSegments, strings.Join(newTails, string(types.SegmentPlaceholder))
}

func visibleLen(s string) int {
	return len(s)
}

// RemoveSpaces collapses runs of whitespace in card's Input segments to a
// single space and tightens spacing around ')' and ':', preserving a
// leading 5-space continuation indent where one was already present.
//
// Grounded on parser.py's Card.remove_spaces (lines 297-319): unlike
// Card.card, this is not folded into emission there either — the original
// calls it as a separate, opt-in pass over self.input before card() runs.
// Mirrored the same way here: it mutates card.Input in place and is meant
// to be called before Card, never implicitly inside it, so that the
// default (no options requested) path stays a byte-exact round trip
// (spec P1/P5). ValuePlaceholder/SegmentPlaceholder bytes carry no spaces
// of their own, so collapsing whitespace around them is always safe.
func RemoveSpaces(card *types.Card) {
	switch card.CardKind {
	case types.CardCell, types.CardSurface, types.CardData:
	default:
		return
	}

	for i, seg := range card.Input {
		indented := strings.HasPrefix(seg, "     ")

		collapsed := strings.Join(strings.Fields(seg), " ")
		for _, c := range []string{")", ":"} {
			collapsed = strings.ReplaceAll(collapsed, " "+c, c)
		}
		for _, c := range []string{"(", ":"} {
			collapsed = strings.ReplaceAll(collapsed, c+" ", c)
		}

		if indented {
			collapsed = "     " + collapsed
		}
		card.Input[i] = collapsed
	}
}
