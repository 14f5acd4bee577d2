package taskspec

import (
	"fmt"

	"github.com/felixgeelhaar/stratum/internal/errors"
)

// normalize applies schema defaults in place. Runs before Validate so
// that omitted optional fields never fail validation.
func (s *TaskSpec) normalize() {
	if s.Status == "" {
		s.Status = SpecDraft
	}
	if s.Project.WorktreeBase == "" {
		s.Project.WorktreeBase = DefaultWorktreeBase
	}
	for i := range s.Tasks {
		if s.Tasks[i].Status == "" {
			s.Tasks[i].Status = StatusPending
		}
		s.Tasks[i].Deps = dedupe(s.Tasks[i].Deps)
	}
}

// dedupe collapses duplicate dependency ids, preserving first occurrence
// order. Dependency sets are order-irrelevant but a stable order keeps
// output deterministic.
func dedupe(ids []string) []string {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Validate checks the specification against the schema rules. It is
// called by the loader after parsing; a spec that fails validation is
// never handed to the scheduler.
func (s *TaskSpec) Validate() error {
	if s.Version != SupportedVersion {
		return errors.New(errors.ErrCodeTaskSpecVersion,
			fmt.Sprintf("unsupported spec version: %d (supported: %d)", s.Version, SupportedVersion))
	}

	if !s.Status.Valid() {
		return errors.New(errors.ErrCodeTaskSpecStatus,
			fmt.Sprintf("invalid spec status: %q", s.Status)).
			WithSuggestion(`Use one of: "draft", "needs_review", "ready_for_implementation"`)
	}

	taskIDs := make(map[string]struct{}, len(s.Tasks))
	for i, task := range s.Tasks {
		if err := task.validate(i); err != nil {
			return err
		}
		// Duplicate ids fail construction rather than first-wins: a silent
		// drop would change the dependency graph behind the author's back.
		if _, ok := taskIDs[task.ID]; ok {
			return errors.NewDuplicateTaskError(task.ID)
		}
		taskIDs[task.ID] = struct{}{}
	}

	for _, task := range s.Tasks {
		for _, dep := range task.Deps {
			if _, ok := taskIDs[dep]; !ok {
				return errors.NewUnknownDepError(task.ID, dep)
			}
		}
	}

	return nil
}

// validate checks a single task's required fields and status
func (t *Task) validate(index int) error {
	if t.ID == "" {
		return errors.New(errors.ErrCodeTaskMissingField,
			fmt.Sprintf("task at index %d must have an id", index))
	}
	if t.Title == "" {
		return errors.New(errors.ErrCodeTaskMissingField,
			fmt.Sprintf("task %s must have a title", t.ID))
	}
	if t.Acceptance == "" {
		return errors.New(errors.ErrCodeTaskMissingField,
			fmt.Sprintf("task %s must have acceptance criteria", t.ID))
	}
	if !t.Status.Valid() {
		return errors.New(errors.ErrCodeTaskInvalidStatus,
			fmt.Sprintf("task %s has invalid status: %q", t.ID, t.Status)).
			WithSuggestion(`Use one of: "pending", "in_progress", "complete"`)
	}
	return nil
}
