// Package descriptor declares everything that crosses the boundary,
// independent of either side's implementation.
//
// The descriptor is a set of pinned tables: types (with exhaustive enum
// variants and their ordinals), and flat functions (with per-parameter pass
// modes and declared failure domains). Ordinals and names are frozen once
// published; compiled consumers cache ordinal-based dispatch, so a reorder is
// a silent wire break. The regression test in this package compares the live
// tables against a frozen copy.
//
// Validate checks structural invariants: unique names, contiguous ordinals
// starting at zero, and function signatures that only reference declared
// types.
package descriptor
