// Package mapfile is the map-file compiler (spec component D): it parses
// the renumbering DSL into a types.MapRules value the rewrite engine walks
// per card.
//
// Grounded on original_source/numjuggler/numbering.py's read_map_file,
// _read_map_line, _read_range, _read_rename_rule, _read_change_rule.
package mapfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dvp2015/numjuggler/internal/diag"
	"github.com/dvp2015/numjuggler/internal/kindreg"
	"github.com/dvp2015/numjuggler/pkg/types"
)

// Compile reads a map file and returns its compiled rules. A line that does
// not conform to the grammar (spec §4.4) — no ':', unrecognized element
// prefix, or an empty right-hand side — is treated as a comment rather than
// rejected (spec Error kind 2, MalformedMapLine, is always recoverable).
// Lines without ':' or with an empty right-hand side are skipped silently;
// an unrecognized element prefix or an unparseable range is also reported
// via sink.
func Compile(r io.Reader, sink *diag.Sink) (types.MapRules, error) {
	if sink == nil {
		sink = diag.NewSink()
	}
	rules := types.NewMapRules()

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.ToLower(strings.TrimLeft(sc.Text(), " \t"))
		if err := applyLine(&rules, lineNo, line); err != nil {
			sink.Report(types.DiagMalformedMapLine, lineNo, err.Error())
		}
	}
	if err := sc.Err(); err != nil {
		return rules, fmt.Errorf("mapfile: %w", err)
	}
	return rules, nil
}

// applyLine parses one map-file line and folds it into rules. A nil error
// with no table mutation means the line was a (silent) comment; a non-nil
// error means the line looked like a rule but failed to parse, which is
// still recoverable (spec Error kind 2) but worth surfacing as a
// diagnostic.
func applyLine(rules *types.MapRules, lineNo int, line string) error {
	if !strings.Contains(line, ":") {
		return nil // comment line, per grammar
	}

	lhs, rhs, _ := strings.Cut(line, ":")
	lhsFields := strings.Fields(lhs)
	if len(lhsFields) == 0 {
		return nil
	}
	// The range may follow the element prefix directly ("c100--140").
	name, rangeFields := lhsFields[0], lhsFields[1:]
	if i := strings.IndexFunc(name, func(r rune) bool { return r < 'a' || r > 'z' }); i > 0 {
		rangeFields = append([]string{name[i:]}, rangeFields...)
		name = name[:i]
	}
	elem, ok := kindreg.ElementByName(name)
	if !ok {
		return fmt.Errorf("unrecognized element prefix %q", name)
	}

	rng, err := readRange(strings.Join(rangeFields, " "))
	if err != nil {
		return err
	}

	rhsTokens := strings.Fields(strings.ReplaceAll(rhs, "=", " "))
	if len(rhsTokens) == 0 {
		return nil // empty right-hand side: treat as a comment
	}

	if n, err := strconv.ParseInt(rhsTokens[0], 10, 64); err == nil {
		applyRename(rules, elem, lineNo, rng, rhsTokens[0], n)
		return nil
	}

	rule := readChangeRule(rhsTokens)
	if len(rule) == 0 {
		return nil // nothing recognizable: treat as a comment
	}
	applyChange(rules, elem, lineNo, rng, rule)
	return nil
}

// readRange parses the optional range portion of a map-file line's left
// side (spec §4.4 <range>). An empty string means "no range" (the default
// rule for this line's element kind).
func readRange(s string) (rangeInfo, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return rangeInfo{}, nil
	}
	if lo, hi, ok := strings.Cut(s, "--"); ok {
		n1, err1 := strconv.ParseInt(strings.TrimSpace(lo), 10, 64)
		n2, err2 := strconv.ParseInt(strings.TrimSpace(hi), 10, 64)
		if err1 != nil || err2 != nil {
			return rangeInfo{}, fmt.Errorf("invalid range %q", s)
		}
		return rangeInfo{r: types.Range{Lo: n1, Hi: n2}, has: true}, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return rangeInfo{}, fmt.Errorf("invalid range %q", s)
	}
	return rangeInfo{r: types.Range{Lo: n, Hi: n}, has: true}, nil
}

func applyRename(rules *types.MapRules, elem types.ElementKind, lineNo int, rngInfo rangeInfo, rawRHS string, n int64) {
	var offset int64
	var form types.RenameForm
	signed := rawRHS[0] == '+' || rawRHS[0] == '-'
	if signed {
		offset = n
		form = types.RenameFormOffset
	} else if rngInfo.has {
		// Unsigned value with an explicit range is an anchor: n maps the
		// range's low end to this value.
		offset = n - rngInfo.r.Lo
		form = types.RenameFormAnchor
	} else {
		// Spec §9 open question (a): an unsigned default-rule value (no
		// range) is undefined upstream; treated here as a plain offset.
		offset = n
		form = types.RenameFormOffset
	}
	rule := types.RenameRule{Offset: offset, Form: form, Literal: n}

	table := rules.Rename[elem]
	if rngInfo.has {
		table.Entries = append(table.Entries, types.RenameEntry{Line: lineNo, Range: rngInfo.r, Rule: rule})
	} else {
		table.DefaultLine = lineNo
		table.Default = rule
	}
	rules.Rename[elem] = table
}

func applyChange(rules *types.MapRules, elem types.ElementKind, lineNo int, rngInfo rangeInfo, rule types.ChangeRule) {
	table := rules.Change[elem]
	if rngInfo.has {
		table.Entries = append(table.Entries, types.ChangeEntry{Line: lineNo, Range: rngInfo.r, Rule: rule})
	} else {
		table.DefaultLine = lineNo
		table.Default = rule
	}
	rules.Change[elem] = table
}

type rangeInfo struct {
	r   types.Range
	has bool
}

func readChangeRule(tokens []string) types.ChangeRule {
	rule := types.ChangeRule{}
	for len(tokens) >= 2 {
		name := tokens[0]
		pk, ok := kindreg.ParamByName(name)
		if !ok {
			break // unrecognized token: the rest of the line is a comment
		}
		rule[pk] = tokens[1]
		tokens = tokens[2:]
	}
	return rule
}
