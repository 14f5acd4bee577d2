package taskspec

import (
	"encoding/json"
	"fmt"

	"github.com/zeebo/blake3"
)

// Canonicalize returns a canonical JSON representation of the spec with
// stable ordering for consistent hashing. Only semantic fields
// participate: formatting or comment changes in the source file do not
// change the hash.
func Canonicalize(spec *TaskSpec) ([]byte, error) {
	tasks := make([]map[string]interface{}, len(spec.Tasks))
	for i, t := range spec.Tasks {
		m := map[string]interface{}{
			"id":         t.ID,
			"title":      t.Title,
			"acceptance": t.Acceptance,
			"status":     string(t.Status),
		}
		if len(t.Deps) > 0 {
			m["deps"] = t.Deps
		}
		if t.SpecFile != "" {
			m["spec_file"] = t.SpecFile
		}
		if t.Worktree != "" {
			m["worktree"] = t.Worktree
		}
		tasks[i] = m
	}

	data := map[string]interface{}{
		"version": spec.Version,
		"status":  string(spec.Status),
		"project": map[string]interface{}{
			"name":          spec.Project.Name,
			"description":   spec.Project.Description,
			"worktree_base": spec.Project.WorktreeBase,
		},
		"tasks": tasks,
	}

	// encoding/json sorts map keys, which gives the stable ordering.
	return json.Marshal(data)
}

// Hash computes the blake3 hash of the canonicalized specification
func Hash(spec *TaskSpec) (string, error) {
	canonical, err := Canonicalize(spec)
	if err != nil {
		return "", fmt.Errorf("canonicalize spec: %w", err)
	}

	hasher := blake3.New()
	if _, err := hasher.Write(canonical); err != nil {
		return "", fmt.Errorf("hash spec: %w", err)
	}

	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}
