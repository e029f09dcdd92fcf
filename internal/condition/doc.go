// SPDX-License-Identifier: MPL-2.0

// Package condition implements fast-path filtering of module candidates.
// Filters are predicates over raw identifiers and precomputed metadata: they
// run in one pass over the whole candidate vector, before any module
// definition is loaded, so candidates that can never activate are dropped
// cheaply. Filters only drop candidates; they never reorder them.
package condition
