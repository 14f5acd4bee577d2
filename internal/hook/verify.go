package hook

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/stratum/internal/log"
	"github.com/felixgeelhaar/stratum/internal/runner"
)

// verifyTimeout bounds the stop-gate verification run
const verifyTimeout = 5 * time.Minute

// VerifyHandler is the stop gate: a session may not finish while
// `make verify` fails.
type VerifyHandler struct {
	projectDir string
	runner     *runner.Runner
	logger     *log.Logger
}

// NewVerifyHandler creates a stop-gate handler for a project
func NewVerifyHandler(projectDir string, logger *log.Logger) *VerifyHandler {
	return &VerifyHandler{
		projectDir: projectDir,
		runner:     runner.NewRunner(projectDir).WithTimeout(verifyTimeout),
		logger:     logger,
	}
}

// Handle renders the stop decision. stop_hook_active means this stop
// was already forced through a previous block; allowing it breaks the
// retry loop. A project without a Makefile has nothing to verify.
func (h *VerifyHandler) Handle(ctx context.Context, input *Input) *Response {
	if input.StopHookActive {
		return nil
	}

	if !h.runner.HasMakefile() {
		return nil
	}

	result, err := h.runner.Run(ctx, "verify")
	if err != nil {
		return Block(fmt.Sprintf("Verification could not run: %v\n\nRun `make verify` to check your fixes.", err))
	}

	if result.Passed() {
		return nil
	}

	h.logger.Info("stop blocked by failing verification", "exit_code", result.ExitCode)

	return Block(fmt.Sprintf("Verification failed. Fix issues before completing:\n\n"+
		"```\n%s\n```\n\n"+
		"Run `make verify` to check your fixes.", result.Output))
}
