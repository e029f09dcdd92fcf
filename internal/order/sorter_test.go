// SPDX-License-Identifier: MPL-2.0

package order

import (
	"errors"
	"slices"
	"testing"

	"github.com/modwire/modwire/internal/metadata"
)

func TestSort_Empty(t *testing.T) {
	t.Parallel()
	got, err := Sort(nil, metadata.NewIndex(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestSort_NoHintsPreservesInputOrder(t *testing.T) {
	t.Parallel()
	ix := metadata.NewIndex(nil)
	got, err := Sort([]string{"web", "data", "security"}, ix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"web", "data", "security"}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSort_AbsoluteOrderAndAfterHint(t *testing.T) {
	t.Parallel()
	// "data" declares before-all via a low absolute order; "security" must
	// follow "web".
	ix := metadata.NewIndex(map[string]string{
		"data.order":     "-2147483648",
		"security.after": "web",
	})

	got, err := Sort([]string{"web", "data", "security"}, ix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"data", "web", "security"}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSort_BeforeHint(t *testing.T) {
	t.Parallel()
	ix := metadata.NewIndex(map[string]string{
		"security.before": "web",
	})

	got, err := Sort([]string{"web", "data", "security"}, ix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	webIdx := slices.Index(got, "web")
	secIdx := slices.Index(got, "security")
	if secIdx >= webIdx {
		t.Errorf("expected security before web, got %v", got)
	}
}

func TestSort_HintNamingAbsentModuleIgnored(t *testing.T) {
	t.Parallel()
	ix := metadata.NewIndex(map[string]string{
		"web.after": "filtered-out",
	})

	got, err := Sort([]string{"web", "data"}, ix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"web", "data"}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSort_Deterministic(t *testing.T) {
	t.Parallel()
	ix := metadata.NewIndex(map[string]string{
		"c.after":  "a",
		"b.order":  "-10",
		"d.before": "c",
	})
	in := []string{"a", "b", "c", "d"}

	first, err := Sort(in, ix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Sort(in, ix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(first, second) {
		t.Errorf("expected identical sequences, got %v then %v", first, second)
	}
}

func TestSort_CycleReported(t *testing.T) {
	t.Parallel()
	ix := metadata.NewIndex(map[string]string{
		"a.after": "b",
		"b.after": "a",
	})

	_, err := Sort([]string{"a", "b", "c"}, ix)
	if err == nil {
		t.Fatal("expected cycle error, got nil")
	}
	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected *CycleError, got %T: %v", err, err)
	}
	if !slices.Contains(cycleErr.Cycle, "a") || !slices.Contains(cycleErr.Cycle, "b") {
		t.Errorf("expected cycle to name a and b, got %v", cycleErr.Cycle)
	}
	if slices.Contains(cycleErr.Cycle, "c") {
		t.Errorf("expected c outside the cycle, got %v", cycleErr.Cycle)
	}
}

func TestSort_MalformedOrderFact(t *testing.T) {
	t.Parallel()
	ix := metadata.NewIndex(map[string]string{
		"web.order": "soon",
	})

	if _, err := Sort([]string{"web"}, ix); err == nil {
		t.Fatal("expected error for malformed order fact")
	}
}

func TestSort_DuplicateInputDeduplicated(t *testing.T) {
	t.Parallel()
	got, err := Sort([]string{"a", "b", "a"}, metadata.NewIndex(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"a", "b"}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
