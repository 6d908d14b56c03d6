package rewrite

import (
	"testing"

	"github.com/dvp2015/numjuggler/internal/diag"
	"github.com/dvp2015/numjuggler/pkg/types"
)

func cellWith(values ...types.Value) *types.Card {
	n := values[0].Int
	return &types.Card{
		CardKind:    types.CardCell,
		ElementKind: types.ElementCell,
		HasElement:  true,
		OriginalName: &n,
		Values:      values,
		Params:      map[types.ParameterKind]types.Value{},
	}
}

func TestRenameOffset(t *testing.T) {
	rules := types.NewMapRules()
	rules.Rename[types.ElementCell] = types.RenameTable{Default: types.RenameRule{Offset: 100}}
	e := New(rules, nil)

	card := cellWith(types.IntValue(1, 1, types.ElementCell))
	e.Apply(card)
	if card.Values[0].Int != 101 {
		t.Errorf("got %d, want 101", card.Values[0].Int)
	}
}

func TestRenameVoidMaterialPreserved(t *testing.T) {
	rules := types.NewMapRules()
	rules.Rename[types.ElementMaterial] = types.RenameTable{Default: types.RenameRule{Offset: 10}}
	sink := diag.NewSink()
	e := New(rules, sink)

	card := cellWith(
		types.IntValue(7, 1, types.ElementCell),
		types.IntValue(0, 1, types.ElementMaterial),
	)
	e.Apply(card)
	for _, v := range card.Values {
		if k, ok := v.Element(); ok && k == types.ElementMaterial {
			if v.Int != 0 {
				t.Errorf("void material must stay 0, got %d", v.Int)
			}
		}
	}
	if sink.Has(types.DiagVoidCrossover) {
		t.Error("a rule that never touches the void material must not warn")
	}
}

func TestRenameMaterialCrossoverWarns(t *testing.T) {
	rules := types.NewMapRules()
	// An offset of -5 maps material 5 onto 0: a nonzero->void crossing,
	// which must warn and be left unchanged (unlike the 0->nonzero
	// direction covered by TestRenameVoidMaterialPreserved).
	rules.Rename[types.ElementMaterial] = types.RenameTable{Default: types.RenameRule{Offset: -5}}
	sink := diag.NewSink()
	e := New(rules, sink)

	card := cellWith(
		types.IntValue(7, 1, types.ElementCell),
		types.IntValue(5, 1, types.ElementMaterial),
	)
	e.Apply(card)
	for _, v := range card.Values {
		if k, ok := v.Element(); ok && k == types.ElementMaterial {
			if v.Int != 5 {
				t.Errorf("material 5 would cross into void at 0; should be left unchanged, got %d", v.Int)
			}
		}
	}
	if !sink.Has(types.DiagVoidCrossover) {
		t.Error("expected a void-crossover warning")
	}
}

func TestChangeParameter(t *testing.T) {
	rules := types.NewMapRules()
	rules.Change[types.ElementCell] = types.ChangeTable{
		Entries: []types.ChangeEntry{
			{Range: types.Range{Lo: 3, Hi: 3}, Rule: types.ChangeRule{types.ParamImpN: "0"}},
		},
	}
	e := New(rules, nil)

	card := cellWith(
		types.IntValue(3, 1, types.ElementCell),
		types.IntValue(5, 1, types.ElementMaterial),
		types.TextValue("1", types.ParamImpN),
		types.TextValue("1", types.ParamImpP),
	)
	e.Apply(card)
	for _, v := range card.Values {
		if p, ok := v.Param(); ok {
			switch p {
			case types.ParamImpN:
				if v.Text != "0" {
					t.Errorf("imp:n = %q, want 0", v.Text)
				}
			case types.ParamImpP:
				if v.Text != "1" {
					t.Errorf("imp:p = %q, want unchanged 1", v.Text)
				}
			}
		}
	}
}

func TestRenameFillUniverseCoupling(t *testing.T) {
	rules := types.NewMapRules()
	rules.Rename[types.ElementUniverse] = types.RenameTable{Default: types.RenameRule{Offset: 10}}
	e := New(rules, nil)

	card := cellWith(
		types.IntValue(1, 1, types.ElementCell),
		types.IntValue(4, 1, types.ElementUniverse),
		types.IntValue(4, 1, types.ElementFill),
	)
	e.Apply(card)
	for _, v := range card.Values {
		if k, ok := v.Element(); ok {
			switch k {
			case types.ElementUniverse:
				if v.Int != 14 {
					t.Errorf("universe = %d, want 14", v.Int)
				}
			case types.ElementFill:
				if v.Int != 14 {
					t.Errorf("fill = %d, want 14 (coupled to universe's rule)", v.Int)
				}
			}
		}
	}
}

func TestRenameLogRecordsFirstOriginal(t *testing.T) {
	rules := types.NewMapRules()
	rules.Rename[types.ElementCell] = types.RenameTable{Default: types.RenameRule{Offset: 100}}
	e := New(rules, nil)

	e.Apply(cellWith(types.IntValue(1, 1, types.ElementCell)))
	e.Apply(cellWith(types.IntValue(2, 1, types.ElementCell)))

	log := e.RenameLog()
	if log[types.ElementCell][101] != 1 {
		t.Errorf("log[cell][101] = %d, want 1", log[types.ElementCell][101])
	}
	if log[types.ElementCell][102] != 2 {
		t.Errorf("log[cell][102] = %d, want 2", log[types.ElementCell][102])
	}
}

func TestNonInjectiveRenameWarns(t *testing.T) {
	rules := types.NewMapRules()
	rules.Rename[types.ElementCell] = types.RenameTable{
		Entries: []types.RenameEntry{
			{Range: types.Range{Lo: 1, Hi: 1}, Rule: types.RenameRule{Offset: 9}},
			{Range: types.Range{Lo: 2, Hi: 2}, Rule: types.RenameRule{Offset: 8}},
		},
	}
	sink := diag.NewSink()
	e := New(rules, sink)

	c1 := cellWith(types.IntValue(1, 1, types.ElementCell))
	c2 := cellWith(types.IntValue(2, 1, types.ElementCell))
	e.Apply(c1) // 1 -> 10
	e.Apply(c2) // 2 -> 10, collides
	if !sink.Has(types.DiagNonInjectiveRename) {
		t.Error("expected a non-injective rename warning")
	}
}
