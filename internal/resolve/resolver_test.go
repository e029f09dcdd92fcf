// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/modwire/modwire/internal/condition"
	"github.com/modwire/modwire/internal/metadata"
)

type fakeRegistry struct {
	candidates map[string][]string
	known      map[string]bool
}

func (r *fakeRegistry) Candidates(capability string) []string {
	return r.candidates[capability]
}

func (r *fakeRegistry) Known(id string) bool { return r.known[id] }

type fakeEnv struct {
	enabled  bool
	excludes []string
	props    map[string]string
}

func (e *fakeEnv) Enabled() bool      { return e.enabled }
func (e *fakeEnv) Excludes() []string { return e.excludes }
func (e *fakeEnv) Property(name string) (string, bool) {
	v, ok := e.props[name]
	return v, ok
}

type recordingListener struct {
	name   string
	events []Event
	err    error
}

func (l *recordingListener) Name() string { return l.name }
func (l *recordingListener) OnResolution(e Event) error {
	l.events = append(l.events, e)
	return l.err
}

func quietLogger() *log.Logger { return log.New(io.Discard) }

func newTestResolver(t *testing.T, deps Dependencies) *Resolver {
	t.Helper()
	if deps.Index == nil {
		deps.Index = metadata.NewIndex(nil)
	}
	if deps.Environment == nil {
		deps.Environment = &fakeEnv{enabled: true}
	}
	deps.Logger = quietLogger()
	return New(deps)
}

func TestResolve_DeduplicatesPreservingOrder(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t, Dependencies{
		Registry: &fakeRegistry{candidates: map[string][]string{
			"cap": {"web", "data", "web", "security", "data"},
		}},
		Capability: "cap",
	})

	entry, err := r.Resolve(Trigger{Name: "app"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"web", "data", "security"}
	if !slices.Equal(entry.Configurations, want) {
		t.Errorf("expected %v, got %v", want, entry.Configurations)
	}
}

func TestResolve_DisabledReturnsEmptyEntry(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t, Dependencies{
		Registry:    &fakeRegistry{},
		Environment: &fakeEnv{enabled: false},
	})

	entry, err := r.Resolve(Trigger{Name: "app"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entry.Configurations) != 0 || len(entry.Exclusions) != 0 {
		t.Errorf("expected empty entry when disabled, got %+v", entry)
	}
}

func TestResolve_NoCandidatesIsFatal(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t, Dependencies{
		Registry:   &fakeRegistry{},
		Capability: "cap",
	})

	_, err := r.Resolve(Trigger{Name: "app"})
	if !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
	var ncErr *NoCandidatesError
	if !errors.As(err, &ncErr) {
		t.Fatal("expected a *NoCandidatesError")
	}
	if ncErr.Capability != "cap" {
		t.Errorf("expected capability %q, got %q", "cap", ncErr.Capability)
	}
}

func TestResolve_ExclusionsUnionTriggerAndEnvironment(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t, Dependencies{
		Registry: &fakeRegistry{candidates: map[string][]string{
			"cap": {"web", "data", "security", "cache"},
		}},
		Environment: &fakeEnv{enabled: true, excludes: []string{"cache", "web"}},
		Capability:  "cap",
	})

	entry, err := r.Resolve(Trigger{Name: "app", Excludes: []string{"web"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"data", "security"}; !slices.Equal(entry.Configurations, want) {
		t.Errorf("expected %v, got %v", want, entry.Configurations)
	}
	if want := []string{"web", "cache"}; !slices.Equal(entry.Exclusions, want) {
		t.Errorf("expected exclusions %v, got %v", want, entry.Exclusions)
	}
}

func TestResolve_InvalidExclusionAggregatesOffenders(t *testing.T) {
	t.Parallel()
	ix := metadata.NewIndex(map[string]string{"legacy.order": "10"})
	r := newTestResolver(t, Dependencies{
		Registry: &fakeRegistry{
			candidates: map[string][]string{"cap": {"web", "data"}},
			known:      map[string]bool{"extra": true},
		},
		Index:      ix,
		Capability: "cap",
	})

	// "extra" is known to the registry and "legacy" has processed metadata,
	// but neither is a candidate. "ghost" is entirely unknown and tolerated.
	_, err := r.Resolve(Trigger{
		Name:     "app",
		Excludes: []string{"extra", "ghost", "legacy", "web"},
	})
	if !errors.Is(err, ErrInvalidExclusion) {
		t.Fatalf("expected ErrInvalidExclusion, got %v", err)
	}
	var exErr *InvalidExclusionError
	if !errors.As(err, &exErr) {
		t.Fatal("expected a *InvalidExclusionError")
	}
	if want := []string{"extra", "legacy"}; !slices.Equal(exErr.Invalid, want) {
		t.Errorf("expected offenders %v, got %v", want, exErr.Invalid)
	}
}

func TestResolve_UnknownExclusionTolerated(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t, Dependencies{
		Registry:   &fakeRegistry{candidates: map[string][]string{"cap": {"web"}}},
		Capability: "cap",
	})

	entry, err := r.Resolve(Trigger{Name: "app", Excludes: []string{"ghost"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"web"}; !slices.Equal(entry.Configurations, want) {
		t.Errorf("expected %v, got %v", want, entry.Configurations)
	}
}

func TestResolve_FiltersDropCandidates(t *testing.T) {
	t.Parallel()
	ix := metadata.NewIndex(map[string]string{
		"data.requires":     "sql",
		"security.requires": "crypto",
	})
	r := newTestResolver(t, Dependencies{
		Registry: &fakeRegistry{candidates: map[string][]string{
			"cap": {"web", "data", "security"},
		}},
		Index:      ix,
		Capability: "cap",
		Filters: []condition.Filter{
			condition.NewRequiresCapability([]string{"sql"}),
		},
	})

	entry, err := r.Resolve(Trigger{Name: "app"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"web", "data"}; !slices.Equal(entry.Configurations, want) {
		t.Errorf("expected %v, got %v", want, entry.Configurations)
	}
}

type brokenFilter struct{}

func (brokenFilter) Name() string { return "broken" }
func (brokenFilter) Match(candidates []string, _ *metadata.Index) []bool {
	return make([]bool, len(candidates)+1)
}

func TestResolve_FilterVectorLengthMismatch(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t, Dependencies{
		Registry:   &fakeRegistry{candidates: map[string][]string{"cap": {"web"}}},
		Capability: "cap",
		Filters:    []condition.Filter{brokenFilter{}},
	})

	_, err := r.Resolve(Trigger{Name: "app"})
	if !errors.Is(err, ErrFilterResult) {
		t.Fatalf("expected ErrFilterResult, got %v", err)
	}
}

func TestResolve_NotifiesListeners(t *testing.T) {
	t.Parallel()
	listener := &recordingListener{name: "recorder"}
	r := newTestResolver(t, Dependencies{
		Registry: &fakeRegistry{candidates: map[string][]string{
			"cap": {"web", "data"},
		}},
		Capability: "cap",
		Listeners:  []Listener{listener},
	})

	entry, err := r.Resolve(Trigger{Name: "app", Excludes: []string{"data"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listener.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(listener.events))
	}
	event := listener.events[0]
	if event.Trigger != "app" {
		t.Errorf("expected trigger %q, got %q", "app", event.Trigger)
	}
	if !slices.Equal(event.Configurations, entry.Configurations) {
		t.Errorf("event configurations %v do not match entry %v", event.Configurations, entry.Configurations)
	}
	if !slices.Equal(event.Exclusions, []string{"data"}) {
		t.Errorf("expected event exclusions [data], got %v", event.Exclusions)
	}
}

func TestResolve_ListenerErrorPropagates(t *testing.T) {
	t.Parallel()
	cause := fmt.Errorf("sink unavailable")
	r := newTestResolver(t, Dependencies{
		Registry:   &fakeRegistry{candidates: map[string][]string{"cap": {"web"}}},
		Capability: "cap",
		Listeners:  []Listener{&recordingListener{name: "sink", err: cause}},
	})

	_, err := r.Resolve(Trigger{Name: "app"})
	if !errors.Is(err, ErrListener) {
		t.Fatalf("expected ErrListener, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected the listener cause to be wrapped, got %v", err)
	}
	var lErr *ListenerError
	if !errors.As(err, &lErr) {
		t.Fatal("expected a *ListenerError")
	}
	if lErr.Listener != "sink" {
		t.Errorf("expected listener %q, got %q", "sink", lErr.Listener)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t, Dependencies{
		Registry: &fakeRegistry{candidates: map[string][]string{
			"cap": {"web", "data", "security", "cache", "web"},
		}},
		Capability: "cap",
	})

	first, err := r.Resolve(Trigger{Name: "app", Excludes: []string{"cache"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		next, err := r.Resolve(Trigger{Name: "app", Excludes: []string{"cache"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !slices.Equal(first.Configurations, next.Configurations) {
			t.Fatalf("resolution not deterministic: %v vs %v", first.Configurations, next.Configurations)
		}
	}
}
