package hook

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/felixgeelhaar/stratum/internal/gate"
	"github.com/felixgeelhaar/stratum/internal/log"
	"github.com/felixgeelhaar/stratum/internal/schedule"
	"github.com/felixgeelhaar/stratum/internal/session"
	"github.com/felixgeelhaar/stratum/internal/taskspec"
)

// starterSpec is offered when a project has no task specification yet
const starterSpec = "version: 1\n" +
	"status: ready_for_implementation\n" +
	"\n" +
	"project:\n" +
	"  name: my-project\n" +
	"  worktree_base: .worktrees\n" +
	"\n" +
	"tasks:\n" +
	"  - id: task-001\n" +
	"    title: Implement feature X\n" +
	"    acceptance: Tests pass, no warnings\n" +
	"    status: pending\n" +
	"    deps: []\n"

// SessionStartHandler validates the task graph at session start and
// injects the ready tasks, with worktree and acceptance context, into
// the session.
type SessionStartHandler struct {
	projectDir string
	logger     *log.Logger
}

// NewSessionStartHandler creates a session-start handler for a project
func NewSessionStartHandler(projectDir string, logger *log.Logger) *SessionStartHandler {
	return &SessionStartHandler{projectDir: projectDir, logger: logger}
}

// Handle renders the session-start decision. Task context is delivered
// as a block reason so the session reads it before doing anything else;
// only a fully complete task graph yields allow.
func (h *SessionStartHandler) Handle(ctx context.Context, input *Input) *Response {
	state, err := session.NewStore(h.projectDir).Load()
	if err != nil {
		h.logger.Warn("failed to load session state", "error", err)
	}

	specPath := taskspec.FindSpecFile(h.projectDir)
	if specPath == "" {
		return Block("No task specification found. Create `.stratum/tasks.yaml` to define implementation tasks:\n\n" +
			"```yaml\n" + starterSpec + "```")
	}

	spec, err := taskspec.Load(specPath)
	if err != nil {
		return Block(fmt.Sprintf("Invalid task specification: %v", err))
	}

	if spec.Status != taskspec.SpecReady {
		return Block(fmt.Sprintf("Spec status is %q. Complete the design phase first.", spec.Status))
	}
	if len(spec.Tasks) == 0 {
		return Block(fmt.Sprintf("No tasks defined in %s", filepath.Base(specPath)))
	}

	sorted, err := schedule.Sort(spec.Tasks)
	if err != nil {
		return Block(err.Error())
	}

	pending := schedule.Pending(sorted)
	inProgress := schedule.InProgress(sorted)
	if len(pending) == 0 && len(inProgress) == 0 {
		return Allow("All tasks complete.")
	}

	ready := schedule.Ready(sorted)
	if len(ready) == 0 && len(inProgress) == 0 {
		return Block(fmt.Sprintf("No tasks ready - all pending tasks are blocked by incomplete dependencies.\nPending: %s",
			strings.Join(taskIDs(pending), ", ")))
	}

	var parts []string
	if banner := formatLoopStatus(state); banner != "" {
		parts = append(parts, banner)
	}

	parts = append(parts, "## Implementation Tasks\n")
	for _, task := range inProgress {
		parts = append(parts, "**[IN PROGRESS]**\n"+h.formatTaskContext(spec, task)+"\n")
	}
	for _, task := range ready {
		parts = append(parts, "**[READY]**\n"+h.formatTaskContext(spec, task)+"\n")
	}

	parts = append(parts, "\n## Workflow\n"+
		"1. Create worktree: `git worktree add <path> -b <task-id>`\n"+
		"2. Update task status to `in_progress` in the task specification\n"+
		"3. TDD: Write failing test, implement, refactor\n"+
		"4. Run `make verify` (must pass without warnings)\n"+
		"5. Update task status to `complete`\n")

	return Block(strings.Join(parts, "\n"))
}

func (h *SessionStartHandler) formatTaskContext(spec *taskspec.TaskSpec, task taskspec.Task) string {
	lines := []string{
		fmt.Sprintf("### %s: %s", task.ID, task.Title),
		fmt.Sprintf("**Worktree:** `%s`", spec.WorktreePath(h.projectDir, task)),
		fmt.Sprintf("**Acceptance:** %s", task.Acceptance),
	}

	if len(task.Deps) > 0 {
		lines = append(lines, fmt.Sprintf("**Dependencies:** %s", strings.Join(task.Deps, ", ")))
	}

	if task.SpecFile != "" {
		if content, err := os.ReadFile(filepath.Join(h.projectDir, task.SpecFile)); err == nil {
			lines = append(lines, fmt.Sprintf("\n**Specification:**\n%s", content))
		}
	}

	return strings.Join(lines, "\n")
}

// formatLoopStatus renders the persisted validation-loop banner, or an
// empty string when no loop is active or paused.
func formatLoopStatus(state *session.State) string {
	if state == nil || (!state.LoopActive && !state.LoopPaused) {
		return ""
	}

	lines := []string{"## Session State\n"}
	if state.LoopPaused {
		lines = append(lines, "**LOOP PAUSED** - resume to continue the validation loop\n")
	} else {
		lines = append(lines, "**LOOP ACTIVE**\n")
	}

	lines = append(lines, fmt.Sprintf("**Current Layer:** %d - %s\n", state.CurrentLayer, layerName(state.CurrentLayer)))

	if len(state.LayerResults) > 0 {
		lines = append(lines, "**Layer Results:**")
		nums := make([]int, 0, len(state.LayerResults))
		for num := range state.LayerResults {
			nums = append(nums, num)
		}
		sort.Ints(nums)
		for _, num := range nums {
			lines = append(lines, fmt.Sprintf("  - Layer %d (%s): %s", num, layerName(num), state.LayerResults[num]))
		}
		lines = append(lines, "")
	}

	if !state.LastUpdated.IsZero() {
		lines = append(lines, fmt.Sprintf("*Last updated: %s*\n", state.LastUpdated.Format("2006-01-02 15:04:05 UTC")))
	}

	return strings.Join(lines, "\n")
}

func layerName(num int) string {
	if layer, ok := gate.LayerByNum(num); ok {
		return layer.Name
	}
	return fmt.Sprintf("layer %d", num)
}

func taskIDs(tasks []taskspec.Task) []string {
	ids := make([]string, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}
	return ids
}
