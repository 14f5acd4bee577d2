package taskspec

import "path/filepath"

// SupportedVersion is the only task specification schema version this
// build understands.
const SupportedVersion = 1

// DefaultWorktreeBase is the directory used for task worktrees when the
// project does not configure one.
const DefaultWorktreeBase = ".worktrees"

// TaskStatus represents the lifecycle state of a single task
type TaskStatus string

const (
	// StatusPending means the task has not been started
	StatusPending TaskStatus = "pending"
	// StatusInProgress means the task has been started but not finished
	StatusInProgress TaskStatus = "in_progress"
	// StatusComplete means the task is done
	StatusComplete TaskStatus = "complete"
)

// Valid reports whether the status is one of the allowed task statuses
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusComplete:
		return true
	default:
		return false
	}
}

// SpecStatus represents the lifecycle state of the specification itself
type SpecStatus string

const (
	// SpecDraft means the specification is still being written
	SpecDraft SpecStatus = "draft"
	// SpecNeedsReview means the specification awaits review
	SpecNeedsReview SpecStatus = "needs_review"
	// SpecReady means tasks may be executed
	SpecReady SpecStatus = "ready_for_implementation"
)

// Valid reports whether the status is one of the allowed spec statuses
func (s SpecStatus) Valid() bool {
	switch s {
	case SpecDraft, SpecNeedsReview, SpecReady:
		return true
	default:
		return false
	}
}

// Project holds project-level metadata from the specification
type Project struct {
	Name         string `yaml:"name" toml:"name" json:"name"`
	Description  string `yaml:"description,omitempty" toml:"description" json:"description,omitempty"`
	WorktreeBase string `yaml:"worktree_base,omitempty" toml:"worktree_base" json:"worktree_base,omitempty"`
}

// Task is a single unit of work in the specification.
// Construct through the loader so validation and defaulting run;
// treat instances as immutable once built.
type Task struct {
	ID         string     `yaml:"id" toml:"id" json:"id"`
	Title      string     `yaml:"title" toml:"title" json:"title"`
	Acceptance string     `yaml:"acceptance" toml:"acceptance" json:"acceptance"`
	Status     TaskStatus `yaml:"status,omitempty" toml:"status" json:"status"`
	Deps       []string   `yaml:"deps,omitempty" toml:"deps" json:"deps,omitempty"`
	SpecFile   string     `yaml:"spec_file,omitempty" toml:"spec_file" json:"spec_file,omitempty"`
	Worktree   string     `yaml:"worktree,omitempty" toml:"worktree" json:"worktree,omitempty"`
}

// TaskSpec is the full task specification: project metadata plus the
// ordered task list. Task order is preserved from the source document
// because the scheduler uses declaration order as a tie-break.
type TaskSpec struct {
	Version int        `yaml:"version" toml:"version" json:"version"`
	Status  SpecStatus `yaml:"status" toml:"status" json:"status"`
	Project Project    `yaml:"project" toml:"project" json:"project"`
	Tasks   []Task     `yaml:"tasks" toml:"tasks" json:"tasks"`
}

// Task returns the task with the given id, or false if absent
func (s *TaskSpec) Task(id string) (Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// WorktreePath returns the worktree directory for a task, relative to
// projectDir. An explicit task worktree wins over the project base.
func (s *TaskSpec) WorktreePath(projectDir string, task Task) string {
	if task.Worktree != "" {
		return filepath.Join(projectDir, task.Worktree)
	}
	base := s.Project.WorktreeBase
	if base == "" {
		base = DefaultWorktreeBase
	}
	return filepath.Join(projectDir, base, task.ID)
}
