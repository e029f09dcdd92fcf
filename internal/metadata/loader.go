// SPDX-License-Identifier: MPL-2.0

package metadata

import (
	"os"
	"strings"
	"sync"

	"github.com/modwire/modwire/pkg/manifest"
)

// loadCache caches built indexes keyed by loader identity (the ordered set of
// metadata paths). Manifests are static per process, so a cache hit can never
// be stale; the guard only ensures at-most-once parsing per identity.
var loadCache = struct {
	mu      sync.Mutex
	indexes map[string]*Index
}{indexes: make(map[string]*Index)}

// Load reads and merges the given modwire.metadata files into an Index,
// applied in path order. Paths that do not exist are skipped: absent metadata
// means "no facts". Results are cached process-wide keyed by the path list.
func Load(paths []string) (*Index, error) {
	key := strings.Join(paths, string(os.PathListSeparator))

	loadCache.mu.Lock()
	defer loadCache.mu.Unlock()
	if ix, ok := loadCache.indexes[key]; ok {
		return ix, nil
	}

	var all []*manifest.Facts
	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		facts, err := manifest.LoadFacts(path)
		if err != nil {
			return nil, err
		}
		all = append(all, facts)
	}

	ix := Merge(all...)
	loadCache.indexes[key] = ix
	return ix, nil
}

// ResetCache clears the process-wide load cache. Call from test cleanup when
// a test rewrites metadata files under a reused path set.
func ResetCache() {
	loadCache.mu.Lock()
	defer loadCache.mu.Unlock()
	loadCache.indexes = make(map[string]*Index)
}
