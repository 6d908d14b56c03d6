package numbering

import (
	"testing"

	"github.com/dvp2015/numjuggler/pkg/types"
)

func cellWith(values ...types.Value) *types.Card {
	return &types.Card{
		CardKind:    types.CardCell,
		ElementKind: types.ElementCell,
		HasElement:  true,
		Values:      values,
	}
}

func TestCollectNumbersFlattensInOrder(t *testing.T) {
	cards := []*types.Card{
		cellWith(types.IntValue(10, 2, types.ElementCell), types.IntValue(5, 1, types.ElementMaterial)),
		cellWith(types.IntValue(20, 2, types.ElementCell), types.IntValue(5, 1, types.ElementMaterial)),
	}
	got := CollectNumbers(cards)
	if want := []int64{10, 20}; !int64sEqual(got[types.ElementCell], want) {
		t.Errorf("cell numbers = %v, want %v", got[types.ElementCell], want)
	}
	if want := []int64{5, 5}; !int64sEqual(got[types.ElementMaterial], want) {
		t.Errorf("material numbers = %v, want %v (duplicates kept)", got[types.ElementMaterial], want)
	}
}

func TestSequentialIndexAssignsInFirstAppearanceOrder(t *testing.T) {
	cards := []*types.Card{
		cellWith(types.IntValue(10, 2, types.ElementCell)),
		cellWith(types.IntValue(20, 2, types.ElementCell)),
		cellWith(types.IntValue(10, 2, types.ElementCell)), // repeat, must not consume a new index
	}
	rules := SequentialIndex(cards)
	table := rules.Rename[types.ElementCell]
	if len(table.Entries) != 2 {
		t.Fatalf("expected 2 distinct entries, got %d", len(table.Entries))
	}
	for _, e := range table.Entries {
		switch e.Range.Lo {
		case 10:
			if e.Rule.Offset != -9 {
				t.Errorf("10 -> index 1 wants offset -9, got %d", e.Rule.Offset)
			}
		case 20:
			if e.Rule.Offset != -18 {
				t.Errorf("20 -> index 2 wants offset -18, got %d", e.Rule.Offset)
			}
		default:
			t.Errorf("unexpected entry %+v", e)
		}
	}
}

func TestSequentialIndexPreservesVoidMaterial(t *testing.T) {
	cards := []*types.Card{
		cellWith(types.IntValue(1, 1, types.ElementCell), types.IntValue(0, 1, types.ElementMaterial)),
	}
	rules := SequentialIndex(cards)
	table := rules.Rename[types.ElementMaterial]
	if len(table.Entries) != 1 || table.Entries[0].Rule.Offset != 0 {
		t.Errorf("void material must map to offset 0, got %+v", table.Entries)
	}
}

func TestRangeSummaryMergesConsecutiveRuns(t *testing.T) {
	got := RangeSummary([]int64{1, 3, 4, 5, 7})
	want := []types.Range{{Lo: 1, Hi: 1}, {Lo: 3, Hi: 5}, {Lo: 7, Hi: 7}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("range %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRangeSummarySingleton(t *testing.T) {
	got := RangeSummary([]int64{42})
	if len(got) != 1 || got[0] != (types.Range{Lo: 42, Hi: 42}) {
		t.Errorf("got %v, want [(42,42)]", got)
	}
}

func TestRangeSummaryEmpty(t *testing.T) {
	if got := RangeSummary(nil); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func int64sEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
