// Package gitx exposes the small slice of repository identity stratum
// needs: the current content hash, the worktree inventory, and linear
// history checks. Every operation degrades to an empty result when git
// or the repository is unavailable; repository identity being unknown
// is a valid state, never an error.
package gitx

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// commandTimeout bounds every git invocation. Gate checks run on each
// prompt, so a hung git must not hang the session.
const commandTimeout = 5 * time.Second

// Repo provides read-only access to one repository's metadata
type Repo struct {
	dir string
}

// NewRepo creates a Repo rooted at the given directory
func NewRepo(dir string) *Repo {
	return &Repo{dir: dir}
}

// Dir returns the repository root this Repo reads from
func (r *Repo) Dir() string {
	return r.dir
}

// run executes git with the given arguments and returns trimmed stdout.
// Any failure (git missing, not a repository, timeout) yields ok=false.
func (r *Repo) run(ctx context.Context, args ...string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.dir
	output, err := cmd.Output()
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(output)), true
}

// Head returns the current HEAD commit hash, or an empty string when
// the repository identity is unavailable.
func (r *Repo) Head(ctx context.Context) string {
	hash, _ := r.run(ctx, "rev-parse", "HEAD")
	return hash
}

// CurrentBranch returns the checked-out branch name, or an empty string
// for a detached HEAD or when unavailable.
func (r *Repo) CurrentBranch(ctx context.Context) string {
	branch, ok := r.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if !ok || branch == "HEAD" {
		return ""
	}
	return branch
}

// Worktrees returns the repository's worktrees as a path-to-branch map,
// parsed from the porcelain listing. Unavailable git yields an empty map.
func (r *Repo) Worktrees(ctx context.Context) map[string]string {
	worktrees := make(map[string]string)

	output, ok := r.run(ctx, "worktree", "list", "--porcelain")
	if !ok {
		return worktrees
	}

	var currentPath string
	for _, line := range strings.Split(output, "\n") {
		switch {
		case strings.HasPrefix(line, "worktree "):
			currentPath = strings.TrimPrefix(line, "worktree ")
		case strings.HasPrefix(line, "branch ") && currentPath != "":
			worktrees[currentPath] = strings.TrimPrefix(line, "branch ")
			currentPath = ""
		}
	}

	return worktrees
}

// MainBranch returns "main" if the repository has a main branch,
// otherwise "master".
func (r *Repo) MainBranch(ctx context.Context) string {
	if _, ok := r.run(ctx, "rev-parse", "--verify", "refs/heads/main"); ok {
		return "main"
	}
	return "master"
}

// MainRepoDir resolves the primary repository directory. Called from a
// linked worktree it returns the main checkout; from the main checkout
// it returns the checkout itself. Empty when unavailable.
func (r *Repo) MainRepoDir(ctx context.Context) string {
	output, ok := r.run(ctx, "rev-parse", "--git-common-dir")
	if !ok || output == "" {
		return ""
	}

	common := output
	if !filepath.IsAbs(common) {
		common = filepath.Join(r.dir, common)
	}
	return filepath.Dir(common)
}

// InLinearHistory reports whether every commit of branch is already part
// of mainBranch's history, either directly (merge-base equals the branch
// tip) or as rebased equivalents (git cherry finds no unpicked commits).
func (r *Repo) InLinearHistory(ctx context.Context, branch, mainBranch string) bool {
	mergeBase, ok := r.run(ctx, "merge-base", branch, mainBranch)
	if !ok {
		return false
	}

	tip, ok := r.run(ctx, "rev-parse", branch)
	if !ok {
		return false
	}

	if mergeBase == tip {
		return true
	}

	output, ok := r.run(ctx, "cherry", mainBranch, branch)
	if !ok {
		return false
	}
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, "+") {
			return false
		}
	}
	return true
}

// IsLinkedWorktree reports whether dir is a linked git worktree: linked
// worktrees carry a .git file pointing at the main repository, while
// the main checkout has a .git directory.
func IsLinkedWorktree(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
