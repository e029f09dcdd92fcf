// SPDX-License-Identifier: MPL-2.0

package metadata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/modwire/modwire/pkg/manifest"
)

// Fact keys recognized by the engine. A flattened entry is addressed as
// "<identifier>.<factKey>"; a bare "<identifier>" entry marks the module as
// processed by the manifest tooling.
const (
	// FactOrder is the declared absolute order (integer, lower = earlier).
	FactOrder = "order"
	// FactAfter names modules this module must follow.
	FactAfter = "after"
	// FactBefore names modules this module must precede.
	FactBefore = "before"
	// FactRequires names capability markers that must be available for the
	// module to activate.
	FactRequires = "requires"
	// FactOnProperty names environment properties (key or key=value) that
	// must be set for the module to activate.
	FactOnProperty = "onProperty"
)

// DefaultOrder is the neutral order value for modules without an order fact.
const DefaultOrder = 0

// Index is the flattened (identifier, factKey) -> value store. Absence of a
// key means "no fact", never "false".
type Index struct {
	entries map[string]string
}

// NewIndex builds an index from flattened entries. The map is copied.
func NewIndex(entries map[string]string) *Index {
	copied := make(map[string]string, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return &Index{entries: copied}
}

// Merge builds an index from parsed fact files, applied in order. Later
// sources override earlier ones for identical flattened keys.
func Merge(facts ...*manifest.Facts) *Index {
	entries := make(map[string]string)
	for _, f := range facts {
		for k, v := range f.Entries() {
			entries[k] = v
		}
	}
	return &Index{entries: entries}
}

// Processed reports whether the identifier appears in the metadata at all,
// either as a bare marker or through any flattened fact.
func (ix *Index) Processed(id string) bool {
	if _, ok := ix.entries[id]; ok {
		return true
	}
	prefix := id + "."
	for key := range ix.entries {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// Get returns the raw fact value and whether it is present.
func (ix *Index) Get(id, key string) (string, bool) {
	v, ok := ix.entries[id+"."+key]
	return v, ok
}

// String returns the fact value, or def when absent.
func (ix *Index) String(id, key, def string) string {
	if v, ok := ix.Get(id, key); ok {
		return v
	}
	return def
}

// Int returns the fact parsed as an integer, or def when absent. A present
// but malformed value is a configuration error.
func (ix *Index) Int(id, key string, def int) (int, error) {
	v, ok := ix.Get(id, key)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("malformed integer fact %s.%s=%q: %w", id, key, v, err)
	}
	return n, nil
}

// Set returns the fact parsed as a comma-delimited set, preserving
// declaration order. Absent facts yield nil.
func (ix *Index) Set(id, key string) []string {
	v, ok := ix.Get(id, key)
	if !ok {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Entries returns a copy of all flattened entries.
func (ix *Index) Entries() map[string]string {
	out := make(map[string]string, len(ix.entries))
	for k, v := range ix.entries {
		out[k] = v
	}
	return out
}

// Len returns the number of flattened entries.
func (ix *Index) Len() int { return len(ix.entries) }
