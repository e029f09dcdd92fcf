// SPDX-License-Identifier: MPL-2.0

package order

import (
	"fmt"
	"sort"
	"strings"

	"github.com/modwire/modwire/internal/metadata"
)

// CycleError indicates that the after/before hints form a cycle, preventing
// a total activation order.
type CycleError struct {
	// Cycle contains the modules participating in the unsatisfiable
	// constraint set, in seed order.
	Cycle []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("module ordering cycle detected among: %s", strings.Join(e.Cycle, ", "))
}

// Sort returns the activation order for the given module identifiers.
//
// The seed order is the input sequence stably sorted by the declared absolute
// order fact (lower = earlier, default neutral), so modules without hints
// keep their relative input positions. Pairwise after/before facts become
// edges refining the seed; an edge only applies when both endpoints are in
// the set. When several modules are simultaneously ready, the one earliest in
// the seed is emitted first, which makes the output a deterministic function
// of (identifiers, metadata).
func Sort(ids []string, index *metadata.Index) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	seed, err := seedOrder(ids, index)
	if err != nil {
		return nil, err
	}

	seedIdx := make(map[string]int, len(seed))
	for i, id := range seed {
		seedIdx[id] = i
	}

	// Edges mean "must come before". Hints naming modules outside the set
	// are ignored: the absent module was filtered or excluded, and the
	// constraint is vacuously satisfied.
	succ := make(map[string][]string, len(seed))
	inDegree := make(map[string]int, len(seed))
	addEdge := func(from, to string) {
		if from == to {
			return
		}
		succ[from] = append(succ[from], to)
		inDegree[to]++
	}
	for _, id := range seed {
		for _, after := range index.Set(id, metadata.FactAfter) {
			if _, in := seedIdx[after]; in {
				addEdge(after, id)
			}
		}
		for _, before := range index.Set(id, metadata.FactBefore) {
			if _, in := seedIdx[before]; in {
				addEdge(id, before)
			}
		}
	}

	// Kahn's algorithm with a ready queue kept sorted by seed position.
	var ready []string
	push := func(id string) {
		at := sort.Search(len(ready), func(i int) bool {
			return seedIdx[ready[i]] > seedIdx[id]
		})
		ready = append(ready, "")
		copy(ready[at+1:], ready[at:])
		ready[at] = id
	}
	for _, id := range seed {
		if inDegree[id] == 0 {
			ready = append(ready, id)
		}
	}

	result := make([]string, 0, len(seed))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		result = append(result, id)

		for _, next := range succ[id] {
			inDegree[next]--
			if inDegree[next] == 0 {
				push(next)
			}
		}
	}

	if len(result) != len(seed) {
		var cycle []string
		for _, id := range seed {
			if inDegree[id] > 0 {
				cycle = append(cycle, id)
			}
		}
		return nil, &CycleError{Cycle: cycle}
	}

	return result, nil
}

// seedOrder stably sorts the deduplicated input by the absolute order fact.
func seedOrder(ids []string, index *metadata.Index) ([]string, error) {
	seed := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		seed = append(seed, id)
	}

	orders := make(map[string]int, len(seed))
	for _, id := range seed {
		n, err := index.Int(id, metadata.FactOrder, metadata.DefaultOrder)
		if err != nil {
			return nil, err
		}
		orders[id] = n
	}

	sort.SliceStable(seed, func(i, j int) bool {
		return orders[seed[i]] < orders[seed[j]]
	})
	return seed, nil
}
