// SPDX-License-Identifier: MPL-2.0

// Package manifest parses the two declarative file formats shipped by
// pluggable modwire units: the capability registry (modwire.manifest), which
// maps capability keys to ordered module identifiers, and the precomputed
// fact metadata (modwire.metadata), which carries flattened per-module facts
// used for ordering and fast-path filtering.
//
// Both formats use Java-style properties syntax. Registry values are
// whitespace-separated identifier lists (line continuations allowed); fact
// values are scalars or comma-delimited sets.
package manifest
