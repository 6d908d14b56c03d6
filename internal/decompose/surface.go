package decompose

import (
	"strconv"
	"strings"

	"github.com/dvp2015/numjuggler/pkg/types"
)

// splitSurface implements the surface-card identifier extraction of spec
// §4.3, grounded on original_source/numjuggler/parser.py's _split_surface.
func splitSurface(pos int, joined string) (string, []types.Value) {
	fields := strings.Fields(joined)
	if len(fields) == 0 {
		return joined, nil
	}

	var values []types.Value

	_, idDigits := stripNonDigitPrefix(fields[0])
	if idDigits != "" {
		if n, err := strconv.ParseInt(idDigits, 10, 64); err == nil {
			joined = replaceFirst(joined, idDigits, string(types.ValuePlaceholder))
			values = append(values, types.IntValue(n, len(idDigits), types.ElementSurface))
		}
	}

	if len(fields) < 2 {
		return joined, values
	}

	tok2 := fields[1]
	switch {
	case startsDigit(tok2):
		if n, err := strconv.ParseInt(tok2, 10, 64); err == nil {
			joined = replaceFirst(joined, tok2, string(types.ValuePlaceholder))
			values = append(values, types.IntValue(n, len(tok2), types.ElementTransformation))
		}
	case strings.HasPrefix(tok2, "-"):
		digits := tok2[1:]
		if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
			joined = replaceFirst(joined, digits, string(types.ValuePlaceholder))
			values = append(values, types.IntValue(n, len(digits), types.ElementSurface))
		}
	default:
		// Alphabetic surface-shape keyword; not extracted as a value.
	}

	return joined, values
}

func startsDigit(tok string) bool {
	if tok == "" {
		return false
	}
	return tok[0] >= '0' && tok[0] <= '9'
}
