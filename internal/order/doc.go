// SPDX-License-Identifier: MPL-2.0

// Package order computes the final activation order of the filtered module
// set. It is a pure function of identifiers plus precomputed metadata: a
// stable topological sort seeded by declared absolute order, refined by
// pairwise after/before hints, with remaining ties broken by input position.
// It never reloads or re-filters modules.
package order
