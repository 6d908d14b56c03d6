package types

// Range is an inclusive, closed interval of identifier numbers a rule
// applies to. A single-number map-file entry compiles to Range{N, N}.
type Range struct {
	Lo, Hi int64
}

// Contains reports whether n falls within the closed interval [Lo, Hi].
func (r Range) Contains(n int64) bool {
	return r.Lo <= n && n <= r.Hi
}

// RenameForm records how a rename rule was written in the map file, purely
// for audit/report purposes: application is identical either way, n -> n +
// Offset (spec §4.4 compiles an anchor down to an offset at parse time).
type RenameForm int

const (
	RenameFormOffset RenameForm = iota
	RenameFormAnchor
)

// RenameRule is a compiled renumbering rule: apply(n) = n + Offset.
type RenameRule struct {
	Offset  int64
	Form    RenameForm
	Literal int64 // the value as written on the map-file line, for reporting
}

// Apply returns n + r.Offset.
func (r RenameRule) Apply(n int64) int64 {
	return n + r.Offset
}

// ChangeRule replaces the stored value of the given parameter kinds with a
// literal replacement string. Parameter kinds absent from the map pass
// through unchanged.
type ChangeRule map[ParameterKind]string

// RenameEntry is one explicit-range line of the map file's rename section.
type RenameEntry struct {
	Line  int
	Range Range
	Rule  RenameRule
}

// ChangeEntry is one explicit-range line of the map file's change section.
type ChangeEntry struct {
	Line  int
	Range Range
	Rule  ChangeRule
}

// RenameTable is the compiled rename rule set for one ElementKind: a
// default rule (applied when no explicit range matches) plus explicit
// ranges walked in declaration order, first match wins (spec §4.4/§9b).
type RenameTable struct {
	DefaultLine int
	Default     RenameRule
	Entries     []RenameEntry
}

// ChangeTable is the compiled change rule set for one ElementKind.
type ChangeTable struct {
	DefaultLine int
	Default     ChangeRule
	Entries     []ChangeEntry
}

// MapRules is the compiled form of a map file: two tables keyed by
// ElementKind (spec §3/§4.4).
type MapRules struct {
	Rename map[ElementKind]RenameTable
	Change map[ElementKind]ChangeTable
}

// NewMapRules returns an empty rules table — the identity mapping for every
// ElementKind (spec P5: applying empty rules leaves every card unchanged).
func NewMapRules() MapRules {
	return MapRules{
		Rename: make(map[ElementKind]RenameTable),
		Change: make(map[ElementKind]ChangeTable),
	}
}
