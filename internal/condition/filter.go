// SPDX-License-Identifier: MPL-2.0

package condition

import (
	"strings"

	"github.com/modwire/modwire/internal/metadata"
)

type (
	// Filter is a fast-path predicate over the full candidate vector. Match
	// returns one boolean per candidate, in input order; false drops the
	// candidate. Implementations receive their collaborators at construction
	// and must not mutate shared state during Match, which may be called for
	// several resolution passes against the same immutable index.
	Filter interface {
		// Name identifies the filter in logs and errors.
		Name() string
		// Match evaluates all candidates in one pass.
		Match(candidates []string, index *metadata.Index) []bool
	}

	// RequiresCapability drops candidates whose "requires" fact names a
	// capability marker that is not available. Candidates without
	// precomputed facts match by default: fast-path filtering only rejects
	// what the metadata proves cannot activate.
	RequiresCapability struct {
		available map[string]struct{}
	}

	// OnProperty drops candidates whose "onProperty" fact names an
	// environment property that is unset or has a different value. Fact
	// entries are "key" (any value accepted) or "key=value" (exact match).
	OnProperty struct {
		lookup func(name string) (string, bool)
	}
)

// NewRequiresCapability builds the filter for the given available capability
// markers.
func NewRequiresCapability(available []string) *RequiresCapability {
	set := make(map[string]struct{}, len(available))
	for _, c := range available {
		set[c] = struct{}{}
	}
	return &RequiresCapability{available: set}
}

// Name implements Filter.
func (f *RequiresCapability) Name() string { return "requires-capability" }

// Match implements Filter.
func (f *RequiresCapability) Match(candidates []string, index *metadata.Index) []bool {
	match := make([]bool, len(candidates))
	for i, id := range candidates {
		match[i] = true
		for _, required := range index.Set(id, metadata.FactRequires) {
			if _, ok := f.available[required]; !ok {
				match[i] = false
				break
			}
		}
	}
	return match
}

// NewOnProperty builds the filter around a property lookup, typically the
// environment collaborator handed to the resolution engine.
func NewOnProperty(lookup func(name string) (string, bool)) *OnProperty {
	return &OnProperty{lookup: lookup}
}

// Name implements Filter.
func (f *OnProperty) Name() string { return "on-property" }

// Match implements Filter.
func (f *OnProperty) Match(candidates []string, index *metadata.Index) []bool {
	match := make([]bool, len(candidates))
	for i, id := range candidates {
		match[i] = true
		for _, gate := range index.Set(id, metadata.FactOnProperty) {
			name, want, exact := strings.Cut(gate, "=")
			got, present := f.lookup(name)
			if !present || (exact && got != want) {
				match[i] = false
				break
			}
		}
	}
	return match
}
