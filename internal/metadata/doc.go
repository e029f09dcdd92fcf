// SPDX-License-Identifier: MPL-2.0

// Package metadata holds the read-only fact index consulted by the resolution
// engine and the priority sorter. Facts are precomputed per-module hints
// (declared order, after/before relationships, capability requirements)
// flattened into "identifier.factKey=value" entries and merged from every
// modwire.metadata file on the load path. The index is built once and never
// mutated afterwards, so it is safe for concurrent readers.
package metadata
