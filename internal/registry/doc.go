// SPDX-License-Identifier: MPL-2.0

// Package registry discovers unit manifests on the configured search paths
// and merges them into the candidate registry the resolution engine queries.
// Every manifest visible on the load path contributes; entries are merged in
// discovery order and order within each manifest is preserved. There is no
// last-definition-wins: a capability registered by several units yields the
// concatenation of their identifier lists.
package registry
