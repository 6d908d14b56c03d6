// Package deck is the public facade (spec §6 "Operations exposed to the
// driver"): it wires internal/deckio, internal/lexer, internal/decompose,
// internal/mapfile, internal/rewrite, internal/emit and internal/numbering
// into the handful of calls cmd/numjuggler actually needs.
package deck

import (
	"os"

	"github.com/dvp2015/numjuggler/internal/deckio"
	"github.com/dvp2015/numjuggler/internal/decompose"
	"github.com/dvp2015/numjuggler/internal/diag"
	"github.com/dvp2015/numjuggler/internal/emit"
	"github.com/dvp2015/numjuggler/internal/lexer"
	"github.com/dvp2015/numjuggler/internal/mapfile"
	"github.com/dvp2015/numjuggler/internal/numbering"
	"github.com/dvp2015/numjuggler/internal/rewrite"
	"github.com/dvp2015/numjuggler/pkg/types"
)

// Engine re-exports internal/rewrite.Engine: the stateful rename/change
// applicator a driver constructs once per file and feeds every card
// through, so the non-injective-rename check (spec P6) sees the whole
// deck rather than resetting per card. Spec §6 writes this operation as
// the stateless-looking "apply(card, Rules)"; NewEngine/Apply below are
// that operation's shape once the cross-card bookkeeping P6 requires is
// accounted for (see DESIGN.md's pkg/deck entry).
type Engine = rewrite.Engine

// NewEngine compiles rules into an Engine ready to apply to a stream of
// cards from the same deck.
func NewEngine(rules types.MapRules, sink *diag.Sink) *Engine {
	return rewrite.New(rules, sink)
}

// Apply mutates card in place per spec §4.5, using engine's accumulated
// state for the non-injective-rename check.
func Apply(card *types.Card, engine *Engine) {
	engine.Apply(card)
}

// Cards iterates the cards of one opened deck, decomposing each as it is
// pulled (spec §5: "lazy producer ... each card is fully decomposed ...
// before the next is pulled").
type Cards struct {
	lx   *lexer.Lexer
	sink *diag.Sink
}

// Next returns the next decomposed Card, or io.EOF once the deck is
// exhausted.
func (c *Cards) Next() (*types.Card, error) {
	raw, err := c.lx.Next()
	if err != nil {
		return nil, err
	}
	return decompose.Decompose(*raw, c.sink), nil
}

// ParseDeck opens path, normalizes its encoding (internal/deckio.Open),
// and returns a lazy Card iterator over it. An unreadable file is the
// only fatal condition in this whole pipeline (spec §7 Error kind 1,
// IOFailure) and is the only thing this returns as a non-nil error.
func ParseDeck(path string, sink *diag.Sink) (*Cards, error) {
	if sink == nil {
		sink = diag.NewSink()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &types.Error{Kind: types.ErrIOFailure, Msg: "open deck " + path, Err: err}
	}
	defer f.Close()

	r, err := deckio.Open(f)
	if err != nil {
		return nil, &types.Error{Kind: types.ErrIOFailure, Msg: "decode deck " + path, Err: err}
	}
	// deckio.Open already buffered the whole file into memory; f can close
	// safely once it returns.
	return &Cards{lx: lexer.New(r, sink), sink: sink}, nil
}

// CompileMap opens and compiles a map file (spec component D).
func CompileMap(path string, sink *diag.Sink) (types.MapRules, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.MapRules{}, &types.Error{Kind: types.ErrIOFailure, Msg: "open map file " + path, Err: err}
	}
	defer f.Close()
	return mapfile.Compile(f, sink)
}

// EmitOptions controls card re-materialization. The zero value is a pure,
// byte-exact substitution (spec P1/P5): both fields default to off.
type EmitOptions struct {
	// Wrap folds any input segment still over 79 visible columns after
	// substitution (spec §4.6).
	Wrap bool

	// RemoveSpaces collapses redundant whitespace in a card's input
	// segments before substitution (parser.py's Card.remove_spaces,
	// SPEC_FULL.md §E.4). Applied before Wrap, as in the original.
	RemoveSpaces bool
}

// Emit reconstructs card's bytes per opts.
func Emit(card *types.Card, opts EmitOptions, sink *diag.Sink) string {
	if opts.RemoveSpaces {
		emit.RemoveSpaces(card)
	}
	return emit.Card(card, opts.Wrap, sink)
}

// WriteDeck writes buf to path atomically (internal/deckio.Writer).
func WriteDeck(path string, buf []byte) error {
	w := &deckio.Writer{Path: path}
	if err := w.WriteDeck(buf); err != nil {
		return &types.Error{Kind: types.ErrIOFailure, Msg: "write deck " + path, Err: err}
	}
	return nil
}

// CollectNumbers flattens every card's ElementKind values into per-kind
// lists, in order of appearance (spec §4.7).
func CollectNumbers(cards []*types.Card) map[types.ElementKind][]int64 {
	return numbering.CollectNumbers(cards)
}

// SequentialIndex assigns each distinct non-zero number, per kind, a
// 1-based index in first-appearance order, compiled as a rename-only
// Rules table (spec §6: "sequential_index(cards) -> Rules (rename-only,
// offset form)").
func SequentialIndex(cards []*types.Card) types.MapRules {
	return numbering.SequentialIndex(cards)
}

// RangeSummary produces the minimal set of closed ranges covering nn.
func RangeSummary(nn []int64) []types.Range {
	return numbering.RangeSummary(nn)
}
