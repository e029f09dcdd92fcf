// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/modwire/modwire/internal/condition"
	"github.com/modwire/modwire/internal/metadata"
	"github.com/modwire/modwire/internal/registry"
)

type (
	// Trigger is one invocation site requesting resolution. A startup pass
	// may carry several triggers; each contributes one Entry to the Group.
	Trigger struct {
		// Name identifies the trigger for attribution and events.
		Name string
		// Excludes are the module identifiers this trigger explicitly
		// excludes from activation.
		Excludes []string
	}

	// Entry is the result of resolving one trigger: the selected
	// configurations (post-filter) and the exclusions that were applied.
	// It is owned by the trigger that produced it and read-only afterwards.
	Entry struct {
		Configurations []string
		Exclusions     []string
	}

	// Event is the discovery notification delivered synchronously to every
	// listener before Resolve returns.
	Event struct {
		Trigger        string
		Configurations []string
		Exclusions     []string
	}

	// Listener observes resolution results. A listener error aborts the
	// remainder of the pass and propagates to the caller.
	Listener interface {
		Name() string
		OnResolution(Event) error
	}

	// Environment exposes the process-wide flags the engine reads: the
	// global enable switch, the global exclusion list, and arbitrary
	// properties consumed by condition filters.
	Environment interface {
		Enabled() bool
		Excludes() []string
		Property(name string) (string, bool)
	}

	// Registry is the candidate lookup the engine queries. Implemented by
	// registry.Registry; declared here so tests and embedding hosts can
	// substitute their own provider.
	Registry interface {
		Candidates(capability string) []string
		Known(id string) bool
	}

	// Dependencies defines the injection points for building a Resolver.
	// Registry, Index, and Environment are required; the rest default.
	Dependencies struct {
		Registry    Registry
		Index       *metadata.Index
		Environment Environment
		// Capability overrides the capability key queried for candidates.
		Capability string
		// Filters are evaluated in order; any rejection drops a candidate.
		Filters []condition.Filter
		// Listeners receive one Event per resolved trigger.
		Listeners []Listener
		Logger    *log.Logger
	}

	// Resolver is the resolution engine. It holds only immutable
	// collaborators and is safe for use across sequential passes.
	Resolver struct {
		registry   Registry
		index      *metadata.Index
		env        Environment
		capability string
		filters    []condition.Filter
		listeners  []Listener
		log        *log.Logger
	}
)

// New builds a Resolver from its dependencies.
func New(deps Dependencies) *Resolver {
	capability := deps.Capability
	if capability == "" {
		capability = registry.DefaultCapability
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{
		registry:   deps.Registry,
		index:      deps.Index,
		env:        deps.Environment,
		capability: capability,
		filters:    deps.Filters,
		listeners:  deps.Listeners,
		log:        logger,
	}
}

// Resolve computes the ResolutionEntry for one trigger: gather, dedupe,
// exclude, validate, filter, notify. It has no side effect on shared state
// beyond the listener notifications.
func (r *Resolver) Resolve(trigger Trigger) (Entry, error) {
	if !r.env.Enabled() {
		r.log.Debug("auto-configuration disabled, returning empty entry", "trigger", trigger.Name)
		return Entry{}, nil
	}

	candidates := r.registry.Candidates(r.capability)
	if len(candidates) == 0 {
		return Entry{}, &NoCandidatesError{Capability: r.capability}
	}
	candidates = dedupe(candidates)

	exclusions := dedupe(append(append([]string{}, trigger.Excludes...), r.env.Excludes()...))
	if err := r.checkExclusions(candidates, exclusions); err != nil {
		return Entry{}, err
	}
	candidates = subtract(candidates, exclusions)

	filtered, err := r.filter(candidates)
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{Configurations: filtered, Exclusions: exclusions}
	if err := r.fireEvent(trigger, entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// checkExclusions validates that every exclusion naming a real, discoverable
// module is actually a candidate. Unknown identifiers are tolerated: the
// excluded unit may simply be absent from the load path. All offenders are
// collected into a single error.
func (r *Resolver) checkExclusions(candidates, exclusions []string) error {
	inCandidates := toSet(candidates)
	var invalid []string
	for _, id := range exclusions {
		if _, ok := inCandidates[id]; ok {
			continue
		}
		if r.registry.Known(id) || r.index.Processed(id) {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		return &InvalidExclusionError{Invalid: invalid}
	}
	return nil
}

// filter runs every registered fast-path filter over the whole candidate
// vector in one call each. A candidate is dropped as soon as any filter
// rejects it.
func (r *Resolver) filter(candidates []string) ([]string, error) {
	if len(r.filters) == 0 {
		return candidates, nil
	}

	start := time.Now()
	skip := make([]bool, len(candidates))
	skipped := 0
	for _, f := range r.filters {
		match := f.Match(candidates, r.index)
		if len(match) != len(candidates) {
			return nil, &FilterResultError{Filter: f.Name(), Got: len(match), Want: len(candidates)}
		}
		for i, ok := range match {
			if !ok && !skip[i] {
				skip[i] = true
				skipped++
			}
		}
	}
	if skipped == 0 {
		return candidates, nil
	}

	result := make([]string, 0, len(candidates)-skipped)
	for i, id := range candidates {
		if !skip[i] {
			result = append(result, id)
		}
	}
	r.log.Debug("fast-path filtering complete",
		"dropped", skipped,
		"remaining", len(result),
		"elapsed", time.Since(start))
	return result, nil
}

// fireEvent notifies every listener synchronously. The first failure aborts
// the pass.
func (r *Resolver) fireEvent(trigger Trigger, entry Entry) error {
	if len(r.listeners) == 0 {
		return nil
	}
	event := Event{
		Trigger:        trigger.Name,
		Configurations: append([]string{}, entry.Configurations...),
		Exclusions:     append([]string{}, entry.Exclusions...),
	}
	for _, l := range r.listeners {
		if err := l.OnResolution(event); err != nil {
			return &ListenerError{Listener: l.Name(), Cause: err}
		}
	}
	return nil
}

// dedupe removes duplicates preserving first-occurrence order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// subtract removes every identifier in remove from ids, preserving order.
func subtract(ids, remove []string) []string {
	drop := toSet(remove)
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := drop[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
