package schedule

import "github.com/felixgeelhaar/stratum/internal/taskspec"

// Ready returns the tasks eligible to start: pending tasks whose
// dependencies are all complete. The input must already be in
// topological order (from Sort); the ready set preserves that order so
// a consumer offered several ready tasks sees dependency-respecting
// priority, not declaration order.
func Ready(sorted []taskspec.Task) []taskspec.Task {
	complete := make(map[string]struct{}, len(sorted))
	for _, t := range sorted {
		if t.Status == taskspec.StatusComplete {
			complete[t.ID] = struct{}{}
		}
	}

	ready := make([]taskspec.Task, 0)
	for _, t := range sorted {
		if t.Status != taskspec.StatusPending {
			continue
		}
		if depsComplete(t, complete) {
			ready = append(ready, t)
		}
	}

	return ready
}

func depsComplete(t taskspec.Task, complete map[string]struct{}) bool {
	for _, dep := range t.Deps {
		if _, ok := complete[dep]; !ok {
			return false
		}
	}
	return true
}

// InProgress returns the tasks that have been started but not finished,
// in the order given. These are never ready: work on them already began.
func InProgress(tasks []taskspec.Task) []taskspec.Task {
	started := make([]taskspec.Task, 0)
	for _, t := range tasks {
		if t.Status == taskspec.StatusInProgress {
			started = append(started, t)
		}
	}
	return started
}

// Pending returns the tasks not yet started, in the order given.
func Pending(tasks []taskspec.Task) []taskspec.Task {
	pending := make([]taskspec.Task, 0)
	for _, t := range tasks {
		if t.Status == taskspec.StatusPending {
			pending = append(pending, t)
		}
	}
	return pending
}
