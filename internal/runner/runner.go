// Package runner executes make targets for validation layers. A failing
// target is a result, not an error: gate aggregation needs the exit
// status and trailing output, and reserves errors for the target being
// unrunnable in the first place.
package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	stratumerrors "github.com/felixgeelhaar/stratum/internal/errors"
)

// outputTailLimit caps how much combined output a Result retains.
// Validation targets can be chatty; the tail carries the failure.
const outputTailLimit = 2048

// DefaultTimeout bounds a single target run
const DefaultTimeout = 10 * time.Minute

// Result captures one target run
type Result struct {
	Target   string
	ExitCode int
	Output   string
	Duration time.Duration
}

// Passed reports whether the target exited cleanly
func (r *Result) Passed() bool {
	return r.ExitCode == 0
}

// Runner executes make targets in a project directory
type Runner struct {
	dir     string
	timeout time.Duration
}

// NewRunner creates a Runner for the given project directory
func NewRunner(dir string) *Runner {
	return &Runner{dir: dir, timeout: DefaultTimeout}
}

// WithTimeout overrides the per-target timeout
func (r *Runner) WithTimeout(timeout time.Duration) *Runner {
	r.timeout = timeout
	return r
}

// HasMakefile reports whether the project directory carries a Makefile
// and make is available to run it.
func (r *Runner) HasMakefile() bool {
	if _, err := exec.LookPath("make"); err != nil {
		return false
	}
	for _, name := range []string{"Makefile", "makefile", "GNUmakefile"} {
		if _, err := os.Stat(filepath.Join(r.dir, name)); err == nil {
			return true
		}
	}
	return false
}

// TargetExists reports whether make knows the given target. Probed with
// a dry run so the target is never actually executed.
func (r *Runner) TargetExists(ctx context.Context, target string) bool {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "make", "-n", target)
	cmd.Dir = r.dir
	return cmd.Run() == nil
}

// Run executes the target and returns its outcome. A non-zero exit is
// reported in the Result; only an unrunnable target (make missing,
// timeout) returns an error.
func (r *Runner) Run(ctx context.Context, target string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, "make", target)
	cmd.Dir = r.dir
	cmd.Stdout = &output
	cmd.Stderr = &output

	start := time.Now()
	err := cmd.Run()
	result := &Result{
		Target:   target,
		Output:   tail(output.Bytes()),
		Duration: time.Since(start),
	}

	if err == nil {
		return result, nil
	}

	if ctx.Err() == context.DeadlineExceeded {
		return nil, stratumerrors.NewGateTimeoutError(target, r.timeout)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	return nil, stratumerrors.NewGateRunError(target, err)
}

func tail(output []byte) string {
	if len(output) > outputTailLimit {
		output = output[len(output)-outputTailLimit:]
	}
	return string(output)
}
