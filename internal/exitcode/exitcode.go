package exitcode

import (
	"errors"
	"os"

	stratumerrors "github.com/felixgeelhaar/stratum/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// ValidationFailed indicates an invalid task specification
	ValidationFailed = 3

	// CycleDetected indicates the task dependency graph is not a DAG
	CycleDetected = 4

	// GateFailed indicates one or more validation gates failed
	GateFailed = 5

	// Interrupted indicates the operation was cancelled by the user
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	var serr *stratumerrors.StratumError
	if errors.As(err, &serr) {
		switch serr.Code {
		case stratumerrors.ErrCodeGraphCyclicDep:
			return CycleDetected
		case stratumerrors.ErrCodeTaskSpecNotFound,
			stratumerrors.ErrCodeTaskSpecInvalid,
			stratumerrors.ErrCodeTaskSpecUnmarshal,
			stratumerrors.ErrCodeTaskSpecVersion,
			stratumerrors.ErrCodeTaskSpecStatus,
			stratumerrors.ErrCodeTaskMissingField,
			stratumerrors.ErrCodeTaskUnknownDep,
			stratumerrors.ErrCodeTaskDuplicateID,
			stratumerrors.ErrCodeTaskInvalidStatus,
			stratumerrors.ErrCodeTaskSpecNotReady:
			return ValidationFailed
		case stratumerrors.ErrCodeGateRunFailed,
			stratumerrors.ErrCodeGateTimeout:
			return GateFailed
		}
	}

	return GeneralError
}

// Description returns a human-readable description of an exit code
func Description(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case ValidationFailed:
		return "Task specification validation failed"
	case CycleDetected:
		return "Dependency cycle detected"
	case GateFailed:
		return "Validation gate failed"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
