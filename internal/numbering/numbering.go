// Package numbering is the numbering utility (spec component G): it
// inventories the identifier numbers actually used in a deck and derives
// sequential-index rename tables and range-set summaries from them.
//
// Grounded on original_source/numjuggler/numbering.py's get_numbers,
// get_indices and _get_ranges_from_set.
package numbering

import (
	"sort"

	"github.com/dvp2015/numjuggler/pkg/types"
)

// CollectNumbers flattens every card's ElementKind values into per-kind
// lists, in order of appearance. Mirrors numbering.py's get_numbers: every
// occurrence is appended, duplicates included, nothing deduplicated here.
func CollectNumbers(cards []*types.Card) map[types.ElementKind][]int64 {
	out := make(map[types.ElementKind][]int64)
	for _, c := range cards {
		for _, v := range c.Values {
			k, ok := v.Element()
			if !ok {
				continue
			}
			out[k] = append(out[k], v.Int)
		}
	}
	return out
}

// SequentialIndex assigns each distinct non-zero number, per kind, a
// 1-based index in first-appearance order. 0 always maps to 0, mirroring
// get_indices's "v == 0 excluded to skip renumbering of u=0 and m=0". The
// result is compiled straight into a rename-only Rules table in offset
// form (spec §6: "sequential_index(cards) -> Rules (rename-only, offset
// form)"): each distinct value becomes its own single-number Range entry,
// with Offset = newIndex - value.
func SequentialIndex(cards []*types.Card) types.MapRules {
	numbers := CollectNumbers(cards)
	rules := types.NewMapRules()

	for kind, vals := range numbers {
		seen := make(map[int64]bool, len(vals))
		table := types.RenameTable{}
		next := int64(1)
		for _, v := range vals {
			if seen[v] {
				continue
			}
			seen[v] = true

			newIndex := int64(0)
			if v != 0 {
				newIndex = next
				next++
			}
			table.Entries = append(table.Entries, types.RenameEntry{
				Range: types.Range{Lo: v, Hi: v},
				Rule: types.RenameRule{
					Offset:  newIndex - v,
					Form:    types.RenameFormOffset,
					Literal: newIndex,
				},
			})
		}
		rules.Rename[kind] = table
	}
	return rules
}

// RangeSummary produces the minimal set of closed, inclusive ranges
// covering nn, in ascending order, merging runs of consecutive integers
// into a single range — numbering.py's _get_ranges_from_set. The original
// also special-cases a set containing non-integer elements, collapsing it
// to one (min, max) range; every ElementKind value this package deals with
// is an integer identifier, so that branch has no counterpart here.
func RangeSummary(nn []int64) []types.Range {
	if len(nn) == 0 {
		return nil
	}

	uniq := make(map[int64]bool, len(nn))
	for _, n := range nn {
		uniq[n] = true
	}
	sorted := make([]int64, 0, len(uniq))
	for n := range uniq {
		sorted = append(sorted, n)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	ranges := make([]types.Range, 0, len(sorted))
	lo, prev := sorted[0], sorted[0]
	for _, n := range sorted[1:] {
		if n == prev+1 {
			prev = n
			continue
		}
		ranges = append(ranges, types.Range{Lo: lo, Hi: prev})
		lo, prev = n, n
	}
	ranges = append(ranges, types.Range{Lo: lo, Hi: prev})
	return ranges
}
