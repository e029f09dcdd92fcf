// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"github.com/modwire/modwire/internal/metadata"
	"github.com/modwire/modwire/internal/order"
)

// Group collects the entries produced by every trigger of one startup pass
// and computes the final, globally ordered activation set. Exclusions merge
// across triggers: an exclusion declared by any trigger removes the module
// even when another trigger selected it.
//
// A Group is used by a single goroutine; host runtimes process triggers
// sequentially.
type Group struct {
	index *metadata.Index

	// owners records which trigger first contributed each configuration,
	// for diagnostics and reports. First registration wins.
	owners     map[string]string
	sequence   []string
	exclusions []string

	finalized []string
}

// NewGroup builds a Group ordering its final output with the given index.
func NewGroup(index *metadata.Index) *Group {
	return &Group{
		index:  index,
		owners: make(map[string]string),
	}
}

// Add records one trigger's entry.
func (g *Group) Add(trigger string, entry Entry) {
	for _, id := range entry.Configurations {
		if _, taken := g.owners[id]; !taken {
			g.owners[id] = trigger
			g.sequence = append(g.sequence, id)
		}
	}
	g.exclusions = append(g.exclusions, entry.Exclusions...)
}

// Owner reports the trigger that first contributed the given configuration.
func (g *Group) Owner(id string) (string, bool) {
	trigger, ok := g.owners[id]
	return trigger, ok
}

// Finalize merges all entries and returns the activation order: the union of
// contributed configurations, minus the union of exclusions, topologically
// sorted. The result is computed once; repeated calls return the cached
// order even if Add is called in between.
func (g *Group) Finalize() ([]string, error) {
	if g.finalized != nil {
		return append([]string{}, g.finalized...), nil
	}
	selected := subtract(g.sequence, g.exclusions)
	sorted, err := order.Sort(selected, g.index)
	if err != nil {
		return nil, err
	}
	g.finalized = sorted
	return append([]string{}, sorted...), nil
}
