package hook

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/stratum/internal/gitx"
	"github.com/felixgeelhaar/stratum/internal/log"
)

// SubagentStopHandler keeps worktree branches rebased: when a subagent
// finishes inside a linked worktree whose branch has drifted from the
// main branch's linear history, it blocks with rebase instructions.
type SubagentStopHandler struct {
	logger *log.Logger
}

// NewSubagentStopHandler creates a subagent-stop handler
func NewSubagentStopHandler(logger *log.Logger) *SubagentStopHandler {
	return &SubagentStopHandler{logger: logger}
}

// Handle renders the subagent-stop decision based on the worktree the
// subagent ran in. Anything outside a linked worktree, or any git
// ambiguity, resolves to allow: this gate must never trap a session on
// missing repository information.
func (h *SubagentStopHandler) Handle(ctx context.Context, input *Input) *Response {
	cwd := input.Cwd
	if cwd == "" || !gitx.IsLinkedWorktree(cwd) {
		return nil
	}

	worktree := gitx.NewRepo(cwd)
	branch := worktree.CurrentBranch(ctx)
	if branch == "" {
		return nil
	}

	mainDir := worktree.MainRepoDir(ctx)
	if mainDir == "" {
		return nil
	}

	mainRepo := gitx.NewRepo(mainDir)
	mainBranch := mainRepo.MainBranch(ctx)

	if mainRepo.InLinearHistory(ctx, branch, mainBranch) {
		return nil
	}

	h.logger.Info("worktree branch requires rebase",
		"branch", branch,
		"main_branch", mainBranch)

	return Block(formatRebaseInstructions(branch, mainBranch, mainDir, cwd))
}

func formatRebaseInstructions(branch, mainBranch, mainDir, worktreeDir string) string {
	return fmt.Sprintf("## Rebase Required\n\n"+
		"Worktree branch `%[1]s` has not been rebased into `%[2]s`.\n\n"+
		"### Rebase Instructions\n\n"+
		"1. Ensure all changes are committed in the worktree\n"+
		"2. Switch to the main repo: `cd %[3]s`\n"+
		"3. Update main: `git checkout %[2]s && git pull`\n"+
		"4. Rebase the branch:\n"+
		"   ```bash\n"+
		"   git checkout %[1]s\n"+
		"   git rebase %[2]s\n"+
		"   ```\n"+
		"5. Resolve any conflicts\n"+
		"6. Force push if needed: `git push --force-with-lease origin %[1]s`\n"+
		"7. Return to the worktree: `cd %[4]s`\n\n"+
		"### Or Fast-Forward Merge\n\n"+
		"If the branch is ready:\n"+
		"```bash\n"+
		"cd %[3]s\n"+
		"git checkout %[2]s\n"+
		"git merge --ff-only %[1]s\n"+
		"```\n",
		branch, mainBranch, mainDir, worktreeDir)
}
