// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/modwire/modwire/pkg/manifest"
)

// DefaultCapability is the capability key under which auto-activatable
// modules register themselves.
const DefaultCapability = "io.modwire.module"

// Registry is the merged, read-only candidate lookup built from all
// discovered manifests. Safe for concurrent readers once built.
type Registry struct {
	capabilities []string
	candidates   map[string][]string
	known        map[string]struct{}
	sources      []string
	metadata     []string
}

// Discover walks each search path in order and merges every
// modwire.manifest it finds. Within one search path, files are visited in
// lexical directory order, so discovery order is a deterministic function of
// the declared search paths, not of filesystem enumeration quirks.
// A modwire.metadata file sitting next to a manifest is recorded for the
// metadata loader. Search paths that do not exist are skipped.
func Discover(searchPaths []string) (*Registry, error) {
	var manifests []*manifest.Manifest
	var metadataPaths []string

	for _, root := range searchPaths {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(absRoot); os.IsNotExist(err) {
			continue
		}

		err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || d.Name() != manifest.RegistryFileName {
				return nil
			}
			m, err := manifest.LoadManifest(path)
			if err != nil {
				return err
			}
			manifests = append(manifests, m)

			metaPath := filepath.Join(filepath.Dir(path), manifest.MetadataFileName)
			if _, err := os.Stat(metaPath); err == nil {
				metadataPaths = append(metadataPaths, metaPath)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	r := FromManifests(manifests)
	r.metadata = metadataPaths
	return r, nil
}

// FromManifests merges already-parsed manifests into a Registry, preserving
// the given order. Used directly by tests and by hosts that assemble
// manifests without filesystem discovery.
func FromManifests(manifests []*manifest.Manifest) *Registry {
	r := &Registry{
		candidates: make(map[string][]string),
		known:      make(map[string]struct{}),
	}
	for _, m := range manifests {
		r.sources = append(r.sources, m.Source())
		for _, capability := range m.Capabilities() {
			ids := m.Identifiers(capability)
			if _, seen := r.candidates[capability]; !seen {
				r.capabilities = append(r.capabilities, capability)
			}
			r.candidates[capability] = append(r.candidates[capability], ids...)
			for _, id := range ids {
				r.known[id] = struct{}{}
			}
		}
	}
	return r
}

// Candidates returns the module identifiers registered under the capability,
// in merged discovery order. Duplicates across manifests are preserved.
func (r *Registry) Candidates(capability string) []string {
	ids := r.candidates[capability]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// Known reports whether the identifier is registered under any capability in
// the merged manifest universe. Used to validate explicit exclusions: only
// exclusions naming real, discoverable modules can be invalid.
func (r *Registry) Known(id string) bool {
	_, ok := r.known[id]
	return ok
}

// KnownIdentifiers returns every identifier registered under any capability,
// in lexical order.
func (r *Registry) KnownIdentifiers() []string {
	out := make([]string, 0, len(r.known))
	for id := range r.known {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Capabilities returns all capability keys in merged discovery order.
func (r *Registry) Capabilities() []string {
	out := make([]string, len(r.capabilities))
	copy(out, r.capabilities)
	return out
}

// Sources returns the manifest paths that contributed, in discovery order.
func (r *Registry) Sources() []string {
	out := make([]string, len(r.sources))
	copy(out, r.sources)
	return out
}

// MetadataPaths returns the modwire.metadata files found during discovery,
// in discovery order, for the metadata loader.
func (r *Registry) MetadataPaths() []string {
	out := make([]string, len(r.metadata))
	copy(out, r.metadata)
	return out
}
