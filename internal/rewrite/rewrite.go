// Package rewrite is the rewrite engine (spec component E): the rename
// pass applies a compiled types.MapRules' renumbering rules to a card's
// values, and the change pass substitutes recognized parameter values.
//
// Grounded on original_source/numjuggler/numbering.py's LikeFunction
// (rename, change) and parser.py's Card.apply_renumbering (the
// Fill<->Universe coupling: a Fill value is looked up under the Universe
// rule table but keeps its own kind on output).
package rewrite

import (
	"fmt"

	"github.com/dvp2015/numjuggler/internal/diag"
	"github.com/dvp2015/numjuggler/pkg/types"
)

// Engine applies a compiled rules table to cards, one at a time, keeping
// the running rename log the spec's non-injectivity check (P6) needs
// across the whole deck.
type Engine struct {
	Rules types.MapRules
	Sink  *diag.Sink

	// log[kind][n'] = n records the first source value mapped to each
	// rewritten value, per element kind, so a later collision with a
	// different source value can be reported (spec P6).
	log map[types.ElementKind]map[int64]int64
}

// New returns an Engine ready to apply rules to a stream of cards.
func New(rules types.MapRules, sink *diag.Sink) *Engine {
	if sink == nil {
		sink = diag.NewSink()
	}
	return &Engine{Rules: rules, Sink: sink, log: map[types.ElementKind]map[int64]int64{}}
}

// Apply runs the rename pass then the change pass over card, mutating it
// in place (spec §4.5). The two passes are independent: the change pass
// selects its rule by the card's original (pre-rename) identifier, exactly
// as the rename pass leaves it.
func (e *Engine) Apply(card *types.Card) {
	e.rename(card)
	e.change(card)
}

func (e *Engine) rename(card *types.Card) {
	for i := range card.Values {
		k, ok := card.Values[i].Element()
		if !ok {
			continue // parameter-kind values are never renamed
		}
		lookupKind := k
		if k == types.ElementFill {
			// Fill and Universe share a numbering namespace; fill values
			// are renumbered by Universe's rule but keep their own kind.
			lookupKind = types.ElementUniverse
		}
		table, ok := e.Rules.Rename[lookupKind]
		if !ok {
			continue // no rule at all for this kind: identity
		}

		orig := card.Values[i].Int

		if lookupKind == types.ElementMaterial && orig == 0 {
			// Void is never renumbered, and never reported: it's a
			// sentinel, not a material identifier (spec P4/Scenario 3;
			// numbering.py's get_indices excludes v==0 outright).
			continue
		}

		nnew := applyRenameTable(table, orig)

		if lookupKind == types.ElementMaterial && nnew == 0 {
			e.Sink.Report(types.DiagVoidCrossover, card.Pos, fmt.Sprintf(
				"material %d would be remapped to void; left unchanged", orig))
			nnew = orig
		}

		e.recordAndCheck(lookupKind, orig, nnew, card.Pos)
		card.Values[i].Int = nnew
	}
}

// RenameLog returns the accumulated rename log: for each ElementKind,
// a map from rewritten value to the first original value that produced it
// (spec component F/G's reporting surface, and the Go analogue of
// numbering.py's LikeFunction.__ld). The caller must treat the returned
// maps as read-only; they alias the Engine's own bookkeeping.
func (e *Engine) RenameLog() map[types.ElementKind]map[int64]int64 {
	return e.log
}

func applyRenameTable(table types.RenameTable, n int64) int64 {
	for _, entry := range table.Entries {
		if entry.Range.Contains(n) {
			return entry.Rule.Apply(n)
		}
	}
	return table.Default.Apply(n)
}

func (e *Engine) recordAndCheck(kind types.ElementKind, orig, nnew int64, pos int) {
	bucket := e.log[kind]
	if bucket == nil {
		bucket = map[int64]int64{}
		e.log[kind] = bucket
	}
	if prev, seen := bucket[nnew]; seen {
		if prev != orig {
			e.Sink.Report(types.DiagNonInjectiveRename, pos, fmt.Sprintf(
				"non-injective mapping: %d and %d are both mapped to %d", prev, orig, nnew))
		}
		return
	}
	bucket[nnew] = orig
}

func (e *Engine) change(card *types.Card) {
	if !card.HasElement || card.OriginalName == nil {
		return
	}
	table, ok := e.Rules.Change[card.ElementKind]
	if !ok {
		return
	}

	rule := table.Default
	for _, entry := range table.Entries {
		if entry.Range.Contains(*card.OriginalName) {
			rule = entry.Rule
			break
		}
	}
	if rule == nil {
		return
	}

	for i, v := range card.Values {
		pk, ok := v.Param()
		if !ok {
			continue
		}
		if repl, ok := rule[pk]; ok {
			card.Values[i] = types.TextValue(repl, pk)
			if _, projected := card.Params[pk]; projected {
				card.Params[pk] = card.Values[i]
			}
		}
	}
}
