// Package filter is the query normalization core: one canonical filter
// representation for tabular sports-statistics datasets that are physically
// served by dozens of unrelated backends.
//
// The package provides four pieces, used in order:
//
//   - Spec: the canonical, validated representation of a user query,
//     constructed with New and functional options. Malformed queries
//     (reversed date ranges, non-positive periods) fail at construction.
//
//   - Validate: checks a Spec against a dataset's registry entry plus the
//     static league-restriction, dependency, and conflict tables. Strict
//     mode turns unsupported-filter findings into errors; lenient mode
//     returns them as warnings so callers can proceed degraded.
//
//   - Compile: splits a Spec into backend-native pushdown parameters and a
//     client-side post-mask. Compilation never fails: names that cannot be
//     resolved to ids simply stay in the name channel, and the post-mask is
//     populated for every present field even when a pushdown parameter was
//     emitted, so a backend that ignores pushdown still yields correct
//     results.
//
//   - Apply: executes a post-mask against a record set in six fixed phases
//     (identity, categorical, temporal, numeric, string, completeness),
//     resolving each predicate's column through a case-insensitive alias
//     chain. A predicate whose column does not exist in the record set is
//     skipped, never an error; the skip count is surfaced in the returned
//     Report so silently-ineffective filters are detectable.
//
// All four are pure, synchronous functions over their inputs and are safe
// for concurrent use once the registry has finished loading. The only
// potentially blocking call is the caller-supplied name resolver invoked by
// Compile, once per unresolved name, with no retry or timeout.
//
// # Pushdown is an optimization, the post-mask is the contract
//
// Backends are trusted to use pushdown parameters to reduce fetched volume
// but are not trusted to honor them fully. Because every phase of the
// post-mask is conjunctive, applying it after any fetch produces the same
// final record set regardless of how much filtering the backend actually
// performed; phase order affects performance only.
package filter
