package hook

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/stratum/internal/gate"
	"github.com/felixgeelhaar/stratum/internal/gitx"
	"github.com/felixgeelhaar/stratum/internal/log"
)

// failureOutputLimit caps how much gate output the status message quotes
const failureOutputLimit = 400

// GateCheckHandler surfaces cached validation results on every prompt.
// It is strictly read-only: the report is generated elsewhere, this
// handler only reads it and compares hashes, keeping the per-prompt
// cost well under the interactive budget.
type GateCheckHandler struct {
	projectDir string
	repo       *gitx.Repo
	logger     *log.Logger
}

// NewGateCheckHandler creates a gate-check handler for a project
func NewGateCheckHandler(projectDir string, logger *log.Logger) *GateCheckHandler {
	return &GateCheckHandler{
		projectDir: projectDir,
		repo:       gitx.NewRepo(projectDir),
		logger:     logger,
	}
}

// Handle renders the prompt-submit decision. The prompt always
// proceeds; a failing or stale report only adds a system message.
func (h *GateCheckHandler) Handle(ctx context.Context, input *Input) *Response {
	report, err := gate.ReadReport(gate.ReportPath(h.projectDir))
	if err != nil || report == nil {
		return Proceed()
	}

	staleness := gate.CheckStaleness(report.Meta.GitHash, h.repo.Head(ctx))
	failure := gate.FirstFailingLayer(report)

	if failure == nil {
		if staleness.IsStale {
			return ProceedWith("## Stratum Gate Status\n\n" +
				"**Status**: All gates PASS\n\n" +
				formatStalenessWarning(staleness))
		}
		return Proceed()
	}

	return ProceedWith(formatFailureMessage(failure, staleness))
}

func formatStalenessWarning(staleness gate.StalenessResult) string {
	return fmt.Sprintf("**Warning**: Report is stale (report: %s, HEAD: %s). "+
		"Run `stratum report generate` to update.",
		staleness.ReportHash, staleness.CurrentHash)
}

func formatFailureMessage(failure *gate.Failure, staleness gate.StalenessResult) string {
	lines := []string{
		"## Stratum Gate Status",
		"",
		fmt.Sprintf("**Current Layer**: %d - %s", failure.Layer.Num, failure.Layer.Name),
		"**Status**: FAIL",
	}

	if staleness.IsStale {
		lines = append(lines, "", formatStalenessWarning(staleness))
	}

	message := failure.Message
	if len(message) > failureOutputLimit {
		message = message[:failureOutputLimit]
	}
	lines = append(lines,
		"",
		"**Gate Output**:",
		"```",
		message,
		"```",
		"",
		fmt.Sprintf("Run `make %s` to debug.", failure.Layer.Target),
	)

	return strings.Join(lines, "\n")
}
