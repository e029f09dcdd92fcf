// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"slices"
	"testing"

	"github.com/modwire/modwire/internal/metadata"
)

func TestGroup_MergesEntriesWithGlobalExclusions(t *testing.T) {
	t.Parallel()
	g := NewGroup(metadata.NewIndex(nil))

	g.Add("alpha", Entry{Configurations: []string{"x", "y"}})
	g.Add("beta", Entry{Configurations: []string{"y", "z"}, Exclusions: []string{"x"}})

	got, err := g.Finalize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// beta's exclusion of x removes it even though alpha selected it.
	if want := []string{"y", "z"}; !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestGroup_UnionPreservesFirstAppearance(t *testing.T) {
	t.Parallel()
	g := NewGroup(metadata.NewIndex(nil))

	g.Add("alpha", Entry{Configurations: []string{"a", "b"}})
	g.Add("beta", Entry{Configurations: []string{"b", "c"}})

	got, err := g.Finalize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"a", "b", "c"}; !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestGroup_FinalOrderFollowsDependencyFacts(t *testing.T) {
	t.Parallel()
	ix := metadata.NewIndex(map[string]string{
		"security.after": "web",
		"web.after":      "data",
	})
	g := NewGroup(ix)
	g.Add("app", Entry{Configurations: []string{"security", "web", "data"}})

	got, err := g.Finalize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"data", "web", "security"}; !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestGroup_OwnerAttribution(t *testing.T) {
	t.Parallel()
	g := NewGroup(metadata.NewIndex(nil))

	g.Add("alpha", Entry{Configurations: []string{"x", "y"}})
	g.Add("beta", Entry{Configurations: []string{"y", "z"}})

	for id, want := range map[string]string{"x": "alpha", "y": "alpha", "z": "beta"} {
		got, ok := g.Owner(id)
		if !ok {
			t.Fatalf("expected an owner for %q", id)
		}
		if got != want {
			t.Errorf("expected owner of %q to be %q, got %q", id, want, got)
		}
	}
	if _, ok := g.Owner("ghost"); ok {
		t.Error("expected no owner for an unregistered configuration")
	}
}

func TestGroup_FinalizeIsIdempotent(t *testing.T) {
	t.Parallel()
	g := NewGroup(metadata.NewIndex(nil))
	g.Add("alpha", Entry{Configurations: []string{"a", "b"}})

	first, err := g.Finalize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A late Add must not change the already-finalized order.
	g.Add("beta", Entry{Configurations: []string{"c"}})
	second, err := g.Finalize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(first, second) {
		t.Errorf("expected Finalize to cache its result, got %v then %v", first, second)
	}
}
