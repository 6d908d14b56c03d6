// Package kindreg is the kind registry (spec component A): name<->id
// bimaps for element and parameter kinds with prefix-tolerant lookup, plus
// the allowed-parameter table per element kind.
//
// Grounded on original_source/numjuggler/names.py's _TypeName class and
// _paramNames table: a user string matches a registered name if it is a
// prefix of that name, exactly as names.py's __call__ does with
// `str(V) == k[:len(str(V))]`.
package kindreg

import (
	"strings"

	"github.com/dvp2015/numjuggler/pkg/types"
)

type elementEntry struct {
	name string
	kind types.ElementKind
}

type paramEntry struct {
	name string
	kind types.ParameterKind
}

// elementNames is declared in the same order as names.py's _eTypes positive
// entries (cell, sur, mat, tr, tal, u, fill). Declaration order is the
// tie-break when one registered name is a prefix of another.
var elementNames = []elementEntry{
	{"cell", types.ElementCell},
	{"sur", types.ElementSurface},
	{"mat", types.ElementMaterial},
	{"tr", types.ElementTransformation},
	{"tal", types.ElementTally},
	{"u", types.ElementUniverse},
	{"fill", types.ElementFill},
}

// paramNames mirrors _eTypes' negative (parameter) entries.
var paramNames = []paramEntry{
	{"den", types.ParamDensity},
	{"imp:n", types.ParamImpN},
	{"imp:p", types.ParamImpP},
	{"tmp", types.ParamTemp},
	{"nlib", types.ParamNlib},
	{"mt", types.ParamMtKey},
}

// dataCardNames mirrors _dcTypes.
var dataCardNames = []struct {
	name string
	kind types.DataCardKind
}{
	{"m", types.DataM},
	{"mt", types.DataMT},
	{"mpn", types.DataMPN},
	{"f", types.DataF},
	{"tr", types.DataTR},
}

// allowedParams mirrors names.py's _paramNames table (spec §4.1).
var allowedParams = map[types.ElementKind]map[types.ParameterKind]bool{
	types.ElementCell: {
		types.ParamDensity: true,
		types.ParamImpN:    true,
		types.ParamImpP:    true,
		types.ParamTemp:    true,
	},
	types.ElementSurface: {},
	types.ElementMaterial: {
		types.ParamNlib: true,
		types.ParamMtKey: true,
	},
}

// ElementByName looks up an ElementKind by a user string that is a
// case-insensitive prefix of the registered name, returning (kind, true) on
// the first match in declaration order, or (0, false) if nothing matches.
func ElementByName(s string) (types.ElementKind, bool) {
	s = strings.ToLower(s)
	for _, e := range elementNames {
		if isPrefixOf(s, e.name) {
			return e.kind, true
		}
	}
	return 0, false
}

// ElementName returns the canonical registered name for an ElementKind.
func ElementName(k types.ElementKind) string {
	for _, e := range elementNames {
		if e.kind == k {
			return e.name
		}
	}
	return k.String()
}

// ParamByName looks up a ParameterKind by a user string that is a
// case-insensitive prefix of the registered name.
func ParamByName(s string) (types.ParameterKind, bool) {
	s = strings.ToLower(s)
	for _, p := range paramNames {
		if isPrefixOf(s, p.name) {
			return p.kind, true
		}
	}
	return 0, false
}

// ParamName returns the canonical registered name for a ParameterKind.
func ParamName(k types.ParameterKind) string {
	for _, p := range paramNames {
		if p.kind == k {
			return p.name
		}
	}
	return k.String()
}

// AllowedParams reports the set of ParameterKind values recognized on cards
// of the given ElementKind (spec §4.1).
func AllowedParams(e types.ElementKind) map[types.ParameterKind]bool {
	return allowedParams[e]
}

// ClassifyDataToken recognizes a data-card's leading whitespace-delimited
// token (e.g. "m1", "mt6", "f4", "tr2") and reports its DataCardKind. Unlike
// ElementByName/ParamByName's plain prefix rule, MCNP data-card keywords
// share leading letters ("m"/"mt"/"mpn" all start with 'm'), so this looks
// one character past the shared prefix to disambiguate — the same check
// original_source/numjuggler/parser.py's _split_data performs by hand — and
// explicitly rejects keyword-lookalikes such as "mode" that are not
// followed by a digit.
func ClassifyDataToken(tok string) (types.DataCardKind, bool) {
	lower := strings.ToLower(tok)
	switch {
	case strings.HasPrefix(lower, "tr") && len(lower) > 2 && isDigit(lower[2]):
		return types.DataTR, true
	case len(lower) > 1 && lower[0] == 'm' && isDigit(lower[1]):
		return types.DataM, true
	case strings.HasPrefix(lower, "mt") && len(lower) > 2 && isDigit(lower[2]):
		return types.DataMT, true
	case strings.HasPrefix(lower, "mpn") && len(lower) > 3 && isDigit(lower[3]):
		return types.DataMPN, true
	case len(lower) > 1 && lower[0] == 'f' && isDigit(lower[1]):
		return types.DataF, true
	default:
		return 0, false
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isPrefixOf(short, long string) bool {
	if len(short) > len(long) {
		return false
	}
	return long[:len(short)] == short
}

// DataCardName returns the canonical registered name for a DataCardKind.
func DataCardName(k types.DataCardKind) string {
	for _, d := range dataCardNames {
		if d.kind == k {
			return d.name
		}
	}
	return k.String()
}
