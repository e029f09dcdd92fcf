// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"fmt"
	"os"
	"strings"

	"github.com/magiconair/properties"
)

const (
	// RegistryFileName is the file name of the capability registry shipped by a unit.
	RegistryFileName = "modwire.manifest"
	// MetadataFileName is the file name of the precomputed fact metadata shipped by a unit.
	MetadataFileName = "modwire.metadata"
)

type (
	// Manifest is one parsed capability registry file. It preserves the
	// declaration order of both capability keys and the identifiers listed
	// under each key. Immutable once parsed.
	Manifest struct {
		source       string
		capabilities []string
		entries      map[string][]string
	}

	// Facts is one parsed fact metadata file: a flattened
	// "identifier.factKey=value" property set. Immutable once parsed.
	Facts struct {
		source  string
		entries map[string]string
	}
)

// ParseManifest parses registry manifest content. The source string is used
// in error messages and retained for diagnostics.
func ParseManifest(data []byte, source string) (*Manifest, error) {
	props, err := properties.Load(data, properties.UTF8)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", source, err)
	}

	m := &Manifest{
		source:  source,
		entries: make(map[string][]string),
	}
	for _, key := range props.Keys() {
		capability := strings.TrimSpace(key)
		if capability == "" {
			continue
		}
		value, _ := props.Get(key)
		// Identifiers are whitespace-separated; properties line continuations
		// fold multi-line values into a single space-joined string.
		ids := strings.Fields(value)
		if _, seen := m.entries[capability]; !seen {
			m.capabilities = append(m.capabilities, capability)
		}
		m.entries[capability] = append(m.entries[capability], ids...)
	}
	return m, nil
}

// LoadManifest reads and parses a registry manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data, path)
}

// Source returns the path or label this manifest was parsed from.
func (m *Manifest) Source() string { return m.source }

// Capabilities returns the capability keys in declaration order.
func (m *Manifest) Capabilities() []string {
	out := make([]string, len(m.capabilities))
	copy(out, m.capabilities)
	return out
}

// Identifiers returns the module identifiers registered under the capability,
// in declaration order. Duplicates are preserved; deduplication is the
// resolution engine's job.
func (m *Manifest) Identifiers(capability string) []string {
	ids := m.entries[capability]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// ParseFacts parses fact metadata content.
func ParseFacts(data []byte, source string) (*Facts, error) {
	props, err := properties.Load(data, properties.UTF8)
	if err != nil {
		return nil, fmt.Errorf("failed to parse metadata %s: %w", source, err)
	}

	f := &Facts{
		source:  source,
		entries: make(map[string]string, props.Len()),
	}
	for _, key := range props.Keys() {
		flat := strings.TrimSpace(key)
		if flat == "" {
			continue
		}
		value, _ := props.Get(key)
		f.entries[flat] = strings.TrimSpace(value)
	}
	return f, nil
}

// LoadFacts reads and parses a fact metadata file.
func LoadFacts(path string) (*Facts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}
	return ParseFacts(data, path)
}

// Source returns the path or label these facts were parsed from.
func (f *Facts) Source() string { return f.source }

// Entries returns a copy of the flattened key/value pairs.
func (f *Facts) Entries() map[string]string {
	out := make(map[string]string, len(f.entries))
	for k, v := range f.entries {
		out[k] = v
	}
	return out
}
