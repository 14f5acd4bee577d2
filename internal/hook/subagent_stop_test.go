package hook

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("Git not available in test environment")
	}
}

func gitRun(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
}

func setupMainRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	gitRun(t, dir, "init", "-b", "main")
	gitRun(t, dir, "config", "user.email", "test@example.com")
	gitRun(t, dir, "config", "user.name", "Test")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	gitRun(t, dir, "add", "a.txt")
	gitRun(t, dir, "commit", "-m", "init")
	return dir
}

func TestSubagentStopOutsideWorktree(t *testing.T) {
	response := NewSubagentStopHandler(testLogger()).
		Handle(context.Background(), &Input{Cwd: t.TempDir()})
	assert.Nil(t, response)
}

func TestSubagentStopEmptyCwd(t *testing.T) {
	response := NewSubagentStopHandler(testLogger()).
		Handle(context.Background(), &Input{})
	assert.Nil(t, response)
}

func TestSubagentStopRebasedBranchAllowed(t *testing.T) {
	requireGit(t)
	main := setupMainRepo(t)

	// Branch created at the main tip and never advanced: merge-base
	// equals the branch tip, so it sits in linear history.
	worktree := filepath.Join(t.TempDir(), "feature")
	gitRun(t, main, "worktree", "add", "-b", "feature", worktree)

	response := NewSubagentStopHandler(testLogger()).
		Handle(context.Background(), &Input{Cwd: worktree})
	assert.Nil(t, response)
}

func TestSubagentStopDriftedBranchBlocked(t *testing.T) {
	requireGit(t)
	main := setupMainRepo(t)

	worktree := filepath.Join(t.TempDir(), "feature")
	gitRun(t, main, "worktree", "add", "-b", "feature", worktree)

	// Diverge: a commit on the feature branch that main does not have
	require.NoError(t, os.WriteFile(filepath.Join(worktree, "b.txt"), []byte("b"), 0o644))
	gitRun(t, worktree, "add", "b.txt")
	gitRun(t, worktree, "commit", "-m", "feature work")

	response := NewSubagentStopHandler(testLogger()).
		Handle(context.Background(), &Input{Cwd: worktree})

	require.NotNil(t, response)
	assert.Equal(t, "block", response.Decision)
	assert.Contains(t, response.Reason, "Rebase Required")
	assert.Contains(t, response.Reason, "`feature`")
	assert.Contains(t, response.Reason, "git rebase main")
}
