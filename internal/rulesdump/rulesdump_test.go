package rulesdump

import (
	"strings"
	"testing"

	"github.com/dvp2015/numjuggler/pkg/types"
)

func TestDumpLogWritesChangedValuesOnly(t *testing.T) {
	log := map[types.ElementKind]map[int64]int64{
		types.ElementCell: {101: 1, 102: 2, 5: 5}, // 5:5 unchanged, must be skipped
	}
	var buf strings.Builder
	if err := DumpLog(&buf, log); err != nil {
		t.Fatalf("DumpLog: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "cell    101:      1") {
		t.Errorf("missing expected cell 101:1 line, got:\n%s", out)
	}
	if !strings.Contains(out, "cell    102:      2") {
		t.Errorf("missing expected cell 102:2 line, got:\n%s", out)
	}
	if strings.Contains(out, "      5:      5") {
		t.Errorf("unchanged mapping 5:5 must not be printed, got:\n%s", out)
	}
}

func TestDumpLogSkipsEmptyKinds(t *testing.T) {
	var buf strings.Builder
	if err := DumpLog(&buf, map[types.ElementKind]map[int64]int64{}); err != nil {
		t.Fatalf("DumpLog: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output for an empty log, got %q", buf.String())
	}
}

func TestDumpYAMLRendersRenameTableAndLog(t *testing.T) {
	rules := types.NewMapRules()
	rules.Rename[types.ElementCell] = types.RenameTable{
		Default: types.RenameRule{Offset: 100},
		Entries: []types.RenameEntry{{Range: types.Range{Lo: 1, Hi: 1}, Rule: types.RenameRule{Offset: 9}}},
	}
	log := map[types.ElementKind]map[int64]int64{
		types.ElementCell: {10: 1},
	}

	var buf strings.Builder
	if err := DumpYAML(&buf, rules, log); err != nil {
		t.Fatalf("DumpYAML: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"rename:", "cell:", "default_offset: 100", "rename_log:", "10: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("YAML output missing %q, got:\n%s", want, out)
		}
	}
}

func TestDumpYAMLOmitsNilLog(t *testing.T) {
	rules := types.NewMapRules()
	var buf strings.Builder
	if err := DumpYAML(&buf, rules, nil); err != nil {
		t.Fatalf("DumpYAML: %v", err)
	}
	if strings.Contains(buf.String(), "rename_log:") {
		t.Errorf("expected no rename_log section when log is nil, got:\n%s", buf.String())
	}
}
