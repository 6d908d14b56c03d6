package decompose

import (
	"strconv"
	"strings"

	"github.com/dvp2015/numjuggler/internal/kindreg"
	"github.com/dvp2015/numjuggler/pkg/types"
)

// splitData implements the data-card identifier extraction of spec §4.3,
// grounded on original_source/numjuggler/parser.py's _get_int and
// _split_data. A card whose leading token is not one of the recognized
// data-card keywords (m/mt/mpn/f/tr) passes through untouched: no
// DataCardKind, no values, no OriginalName.
func splitData(card *types.Card, pos int, joined string) (string, []types.Value) {
	fields := strings.Fields(joined)
	if len(fields) == 0 {
		return joined, nil
	}

	dk, ok := kindreg.ClassifyDataToken(fields[0])
	if !ok {
		return joined, nil
	}
	card.DataKind = dk
	card.HasDataKind = true

	var ownKind types.ElementKind
	switch dk {
	case types.DataTR:
		ownKind = types.ElementTransformation
	case types.DataM, types.DataMT, types.DataMPN:
		ownKind = types.ElementMaterial
	case types.DataF:
		ownKind = types.ElementTally
	}

	var values []types.Value
	n, width, digits, ok := getInt(fields[0])
	if !ok {
		return joined, values
	}
	joined = replaceFirst(joined, digits, string(types.ValuePlaceholder))
	values = append(values, types.IntValue(n, width, ownKind))

	if dk != types.DataF {
		return joined, values
	}

	// The tally number's last digit selects the reference kind applied to
	// every other integer in the card body (spec §4.3): *1/*2 reference
	// surfaces, *4/*6/*7/*8 reference cells; any other last digit leaves
	// the remaining integers unextracted.
	lastDigit := digits[len(digits)-1]
	var refKind types.ElementKind
	var hasRef bool
	switch lastDigit {
	case '1', '2':
		refKind, hasRef = types.ElementSurface, true
	case '4', '6', '7', '8':
		refKind, hasRef = types.ElementCell, true
	}
	if !hasRef {
		return joined, values
	}

	rest := strings.Join(fields[1:], " ")
	for _, loc := range reGeomInt.FindAllStringIndex(rest, -1) {
		m := rest[loc[0]:loc[1]]
		_, matchDigits := stripNonDigitPrefix(m)
		if matchDigits == "" {
			continue
		}
		val, err := strconv.ParseInt(matchDigits, 10, 64)
		if err != nil {
			continue
		}
		kind := refKind
		if precededByUEquals(rest[:loc[0]]) {
			kind = types.ElementUniverse
		}
		joined = replaceFirst(joined, matchDigits, string(types.ValuePlaceholder))
		values = append(values, types.IntValue(val, len(matchDigits), kind))
	}

	return joined, values
}

// precededByUEquals reports whether before, with internal whitespace
// stripped, ends with "u=" (case-insensitive) — the original's signal
// that the very next integer is a universe reference rather than the
// tally's usual surface/cell reference.
func precededByUEquals(before string) bool {
	stripped := strings.ToLower(strings.ReplaceAll(before, " ", ""))
	return strings.HasSuffix(stripped, "u=")
}

// getInt extracts a data card's leading keyword token's digit run,
// tolerating the alphabetic keyword prefix (spec §4.3's _get_int):
// characters are scanned left to right, skipping anything that is not a
// digit until the first digit is seen, then accumulating digits until a
// non-digit stops the run.
func getInt(tok string) (n int64, width int, digits string, ok bool) {
	i := 0
	for i < len(tok) && !(tok[i] >= '0' && tok[i] <= '9') {
		i++
	}
	j := i
	for j < len(tok) && tok[j] >= '0' && tok[j] <= '9' {
		j++
	}
	if i == j {
		return 0, 0, "", false
	}
	digits = tok[i:j]
	val, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, 0, "", false
	}
	return val, len(digits), digits, true
}
