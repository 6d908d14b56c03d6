package types

import "fmt"

// CardKind classifies a card by its position in the deck (spec §3).
type CardKind int

const (
	CardComment CardKind = iota
	CardBlankLine
	CardMessage
	CardTitle
	CardCell
	CardSurface
	CardData
)

// String implements the Stringer interface for CardKind.
func (k CardKind) String() string {
	switch k {
	case CardComment:
		return "comment"
	case CardBlankLine:
		return "blankline"
	case CardMessage:
		return "message"
	case CardTitle:
		return "title"
	case CardCell:
		return "cell"
	case CardSurface:
		return "surface"
	case CardData:
		return "data"
	default:
		return fmt.Sprintf("CardKind(%d)", int(k))
	}
}

// Kind is the sealed tag attached to a Value: either an ElementKind or a
// ParameterKind. It mirrors the original implementation's single eID
// namespace (element names and parameter names sharing one lookup table,
// distinguished only by sign) without collapsing the two closed sets the
// spec defines separately.
type Kind interface {
	isValueKind()
}

// ElementKind identifies what a card (or a value on a card) semantically is.
// Universe and Fill are distinct kinds even though they share a numeric
// namespace (spec §4.5's rename coupling).
type ElementKind int

func (ElementKind) isValueKind() {}

const (
	ElementCell ElementKind = iota
	ElementSurface
	ElementMaterial
	ElementTransformation
	ElementTally
	ElementUniverse
	ElementFill
)

// String implements the Stringer interface for ElementKind.
func (k ElementKind) String() string {
	switch k {
	case ElementCell:
		return "cell"
	case ElementSurface:
		return "sur"
	case ElementMaterial:
		return "mat"
	case ElementTransformation:
		return "tr"
	case ElementTally:
		return "tal"
	case ElementUniverse:
		return "u"
	case ElementFill:
		return "fill"
	default:
		return fmt.Sprintf("ElementKind(%d)", int(k))
	}
}

// ParameterKind identifies a named attribute carried on a card (spec §3).
type ParameterKind int

func (ParameterKind) isValueKind() {}

const (
	ParamDensity ParameterKind = iota
	ParamImpN
	ParamImpP
	ParamTemp
	ParamNlib
	ParamMtKey
)

// String implements the Stringer interface for ParameterKind.
func (k ParameterKind) String() string {
	switch k {
	case ParamDensity:
		return "den"
	case ParamImpN:
		return "imp:n"
	case ParamImpP:
		return "imp:p"
	case ParamTemp:
		return "tmp"
	case ParamNlib:
		return "nlib"
	case ParamMtKey:
		return "mt"
	default:
		return fmt.Sprintf("ParameterKind(%d)", int(k))
	}
}

// DataCardKind distinguishes recognized data-block card variants (spec §3).
type DataCardKind int

const (
	DataM   DataCardKind = iota // material
	DataMT                      // thermal treatment
	DataMPN                     // material photonuclear
	DataF                       // tally
	DataTR                      // transformation
)

// String implements the Stringer interface for DataCardKind.
func (k DataCardKind) String() string {
	switch k {
	case DataM:
		return "m"
	case DataMT:
		return "mt"
	case DataMPN:
		return "mpn"
	case DataF:
		return "f"
	case DataTR:
		return "tr"
	default:
		return fmt.Sprintf("DataCardKind(%d)", int(k))
	}
}
