// Package types defines the contract layer for numjuggler: the closed-set
// kind enums, the Card decomposition, map-file rule tables, and the typed
// error/diagnostic categories shared by every internal package.
//
// Design goals:
//   - Byte-accurate round-trip: a Card's template/input/hidden decomposition
//     always reconstructs the original bytes when no rewrite is applied.
//   - Small, explicit value types (Value is a tagged union of int/string)
//     instead of interface{} soup.
//   - Typed errors with stable categories (IOFailure/MalformedMapLine/
//     UnsupportedForm/SemanticWarning).
//
// This package has no dependencies beyond the standard library.
package types
