// Package rulesdump renders a compiled types.MapRules table, and the
// rewrite engine's rename log, for human and machine audit.
//
// DumpLog is the Go analogue of numbering.py's LikeFunction.write_log_as_map
// (map-file syntax, for a human comparing against the original map file).
// DumpYAML is a SPEC_FULL.md addition: the same information, plus the
// compiled rules themselves, as YAML for debugging. No subcommand calls it;
// `report --format=yaml` renders its own ranges-only document.
package rulesdump

import (
	"fmt"
	"io"
	"sort"

	"github.com/dvp2015/numjuggler/internal/kindreg"
	"github.com/dvp2015/numjuggler/pkg/types"

	"gopkg.in/yaml.v3"
)

// elementOrder fixes a deterministic iteration order for map-keyed output,
// since Go (like the original's Python 2 dicts) gives no ordering
// guarantee of its own. Declaration order mirrors kindreg's own table.
var elementOrder = []types.ElementKind{
	types.ElementCell,
	types.ElementSurface,
	types.ElementMaterial,
	types.ElementTransformation,
	types.ElementTally,
	types.ElementUniverse,
	types.ElementFill,
}

// DumpLog writes the rename log back out in map-file-adjacent syntax, one
// dash-ruled section per ElementKind with a non-empty log (even if every
// entry in it is unchanged), one line per rewritten value that differs
// from its original.
//
// Grounded on write_log_as_map's effective behavior (the original's
// preceding loop that rebuilds a `d` dict from `self.__ld.items()` and
// then never reads it back is dead code in the source; this function
// implements what the second loop actually does, not the unused first
// one): for each kind, for each new value nnew in ascending order, if the
// original n differs from nnew, print
// "   <kind> <nnew right-justified 6>: <n right-justified 6>". That
// ordering — new value before old — is the original's own layout, kept
// deliberately rather than swapped to a more conventional old-before-new
// reading.
func DumpLog(w io.Writer, log map[types.ElementKind]map[int64]int64) error {
	for _, kind := range elementOrder {
		bucket := log[kind]
		if len(bucket) == 0 {
			continue
		}

		newValues := make([]int64, 0, len(bucket))
		for nnew := range bucket {
			newValues = append(newValues, nnew)
		}
		sort.Slice(newValues, func(i, j int) bool { return newValues[i] < newValues[j] })

		if _, err := fmt.Fprintln(w, "--------------------------------------------------------------------------------"); err != nil {
			return err
		}
		for _, nnew := range newValues {
			n := bucket[nnew]
			if n == nnew {
				continue
			}
			if _, err := fmt.Fprintf(w, "   %s %6d: %6d\n", kindreg.ElementName(kind), nnew, n); err != nil {
				return err
			}
		}
	}
	return nil
}

// yamlDoc is the structured rendering of a compiled rules table plus the
// rename log a rewrite.Engine accumulated while applying it.
type yamlDoc struct {
	Rename map[string]yamlRenameTable `yaml:"rename,omitempty"`
	Change map[string]yamlChangeTable `yaml:"change,omitempty"`
	Log    map[string]map[int64]int64 `yaml:"rename_log,omitempty"`
}

type yamlRenameTable struct {
	Default int64            `yaml:"default_offset"`
	Entries []yamlRangeEntry `yaml:"entries,omitempty"`
}

type yamlRangeEntry struct {
	Lo     int64 `yaml:"lo"`
	Hi     int64 `yaml:"hi"`
	Offset int64 `yaml:"offset"`
}

type yamlChangeTable struct {
	Default map[string]string `yaml:"default,omitempty"`
	Entries []yamlChangeEntry `yaml:"entries,omitempty"`
}

type yamlChangeEntry struct {
	Lo   int64             `yaml:"lo"`
	Hi   int64             `yaml:"hi"`
	Rule map[string]string `yaml:"rule"`
}

// DumpYAML renders rules and, if non-nil, log as YAML to w.
func DumpYAML(w io.Writer, rules types.MapRules, log map[types.ElementKind]map[int64]int64) error {
	doc := yamlDoc{
		Rename: map[string]yamlRenameTable{},
		Change: map[string]yamlChangeTable{},
	}

	for _, kind := range elementOrder {
		if table, ok := rules.Rename[kind]; ok {
			yt := yamlRenameTable{Default: table.Default.Offset}
			for _, e := range table.Entries {
				yt.Entries = append(yt.Entries, yamlRangeEntry{Lo: e.Range.Lo, Hi: e.Range.Hi, Offset: e.Rule.Offset})
			}
			doc.Rename[kindreg.ElementName(kind)] = yt
		}
		if table, ok := rules.Change[kind]; ok {
			yt := yamlChangeTable{Default: changeRuleStrings(table.Default)}
			for _, e := range table.Entries {
				yt.Entries = append(yt.Entries, yamlChangeEntry{Lo: e.Range.Lo, Hi: e.Range.Hi, Rule: changeRuleStrings(e.Rule)})
			}
			doc.Change[kindreg.ElementName(kind)] = yt
		}
	}

	if log != nil {
		doc.Log = map[string]map[int64]int64{}
		for _, kind := range elementOrder {
			if bucket, ok := log[kind]; ok && len(bucket) > 0 {
				doc.Log[kindreg.ElementName(kind)] = bucket
			}
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(doc)
}

func changeRuleStrings(rule types.ChangeRule) map[string]string {
	if len(rule) == 0 {
		return nil
	}
	out := make(map[string]string, len(rule))
	for pk, v := range rule {
		out[kindreg.ParamName(pk)] = v
	}
	return out
}
