// Package schedule computes execution order and the ready frontier over a
// validated task specification. Sorting is Kahn's algorithm with
// declaration order as the tie-break, so resolution is deterministic:
// the same spec always yields the same order and the same ready set.
package schedule

import (
	"github.com/felixgeelhaar/stratum/internal/errors"
	"github.com/felixgeelhaar/stratum/internal/taskspec"
)

// Sort returns the tasks in a total order consistent with their
// dependency edges. Zero-in-degree tasks are seeded in declaration
// order and the worklist is FIFO, so ties always resolve the same way.
//
// If the graph contains a cycle no partial order is returned; the error
// names every task whose in-degree never reached zero, which can
// over-include tasks downstream of the cycle.
func Sort(tasks []taskspec.Task) ([]taskspec.Task, error) {
	byID := make(map[string]taskspec.Task, len(tasks))
	inDegree := make(map[string]int, len(tasks))
	dependents := make(map[string][]string, len(tasks))

	for _, t := range tasks {
		byID[t.ID] = t
		inDegree[t.ID] = 0
	}

	for _, t := range tasks {
		for _, dep := range t.Deps {
			// Unknown deps are rejected by taskspec validation; guarding
			// here keeps Sort usable on hand-built slices in tests.
			if _, ok := byID[dep]; !ok {
				continue
			}
			dependents[dep] = append(dependents[dep], t.ID)
			inDegree[t.ID]++
		}
	}

	queue := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if inDegree[t.ID] == 0 {
			queue = append(queue, t.ID)
		}
	}

	order := make([]taskspec.Task, 0, len(tasks))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, byID[current])

		for _, dependent := range dependents[current] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(order) != len(tasks) {
		members := make([]string, 0)
		for _, t := range tasks {
			if inDegree[t.ID] > 0 {
				members = append(members, t.ID)
			}
		}
		return nil, errors.NewCycleError(members)
	}

	return order, nil
}
