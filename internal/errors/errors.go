package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Task specification errors (TASK-001 to TASK-099)
	ErrCodeTaskSpecNotFound   ErrorCode = "TASK-001"
	ErrCodeTaskSpecInvalid    ErrorCode = "TASK-002"
	ErrCodeTaskSpecUnmarshal  ErrorCode = "TASK-003"
	ErrCodeTaskSpecVersion    ErrorCode = "TASK-004"
	ErrCodeTaskSpecStatus     ErrorCode = "TASK-005"
	ErrCodeTaskMissingField   ErrorCode = "TASK-006"
	ErrCodeTaskUnknownDep     ErrorCode = "TASK-007"
	ErrCodeTaskDuplicateID    ErrorCode = "TASK-008"
	ErrCodeTaskInvalidStatus  ErrorCode = "TASK-009"
	ErrCodeTaskSpecNotReady   ErrorCode = "TASK-010"

	// Dependency graph errors (GRAPH-001 to GRAPH-099)
	ErrCodeGraphCyclicDep ErrorCode = "GRAPH-001"
	ErrCodeGraphEmpty     ErrorCode = "GRAPH-002"

	// Session state errors (STATE-001 to STATE-099)
	ErrCodeStateWriteFailed ErrorCode = "STATE-001"

	// Gate errors (GATE-001 to GATE-099)
	ErrCodeGateTargetMissing ErrorCode = "GATE-001"
	ErrCodeGateRunFailed     ErrorCode = "GATE-002"
	ErrCodeGateTimeout       ErrorCode = "GATE-003"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
	ErrCodeDirectoryFailed ErrorCode = "IO-004"
	ErrCodeFileUnmarshal   ErrorCode = "IO-005"
	ErrCodeFileMarshal     ErrorCode = "IO-006"
)

// StratumError represents an enhanced error with code, suggestions, and documentation
type StratumError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *StratumError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *StratumError) Unwrap() error {
	return e.Cause
}

// New creates a new StratumError
func New(code ErrorCode, message string) *StratumError {
	return &StratumError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new StratumError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *StratumError {
	return &StratumError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *StratumError) WithSuggestion(suggestion string) *StratumError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *StratumError) WithSuggestions(suggestions ...string) *StratumError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *StratumError) WithDocs(url string) *StratumError {
	e.DocsURL = url
	return e
}

// Common error constructors for frequently used errors

// NewTaskSpecNotFoundError creates a task spec file not found error
func NewTaskSpecNotFoundError(path string) *StratumError {
	return New(ErrCodeTaskSpecNotFound, fmt.Sprintf("task specification not found: %s", path)).
		WithSuggestion("Create .stratum/tasks.yaml to define implementation tasks").
		WithSuggestion("Check if the file path is correct").
		WithDocs("https://github.com/felixgeelhaar/stratum#task-specifications")
}

// NewTaskSpecInvalidError creates a task spec validation error
func NewTaskSpecInvalidError(details string) *StratumError {
	return New(ErrCodeTaskSpecInvalid, fmt.Sprintf("invalid task specification: %s", details)).
		WithSuggestion("Run 'stratum status' to see validation errors").
		WithDocs("https://github.com/felixgeelhaar/stratum#task-specifications")
}

// NewUnknownDepError creates an error for a dependency on a nonexistent task
func NewUnknownDepError(taskID, depID string) *StratumError {
	return New(ErrCodeTaskUnknownDep, fmt.Sprintf("task %s depends on unknown task: %s", taskID, depID)).
		WithSuggestion(fmt.Sprintf("Add a task with id %q or remove it from the deps of %s", depID, taskID))
}

// NewDuplicateTaskError creates an error for a duplicated task id
func NewDuplicateTaskError(taskID string) *StratumError {
	return New(ErrCodeTaskDuplicateID, fmt.Sprintf("duplicate task id: %s", taskID)).
		WithSuggestion("Task ids must be unique across the specification")
}

// NewCycleError creates a dependency cycle error naming the implicated tasks.
// The member list may be over-inclusive: it contains every task whose
// in-degree never reached zero, which can include tasks merely downstream
// of the cycle.
func NewCycleError(members []string) *StratumError {
	return New(ErrCodeGraphCyclicDep, fmt.Sprintf("dependency cycle detected involving: %s", strings.Join(members, ", "))).
		WithSuggestion("Remove one of the dependency edges between the listed tasks").
		WithDocs("https://github.com/felixgeelhaar/stratum#dependency-resolution")
}

// NewGateTargetMissingError creates an error for a missing make target
func NewGateTargetMissingError(target string) *StratumError {
	return New(ErrCodeGateTargetMissing, fmt.Sprintf("make target not found: %s", target)).
		WithSuggestion(fmt.Sprintf("Add a %q target to your Makefile", target)).
		WithDocs("https://github.com/felixgeelhaar/stratum#validation-layers")
}

// NewGateRunError creates an error for a gate target that could not be executed
func NewGateRunError(target string, cause error) *StratumError {
	return Wrap(ErrCodeGateRunFailed, fmt.Sprintf("failed to run make target: %s", target), cause).
		WithSuggestion("Verify make is installed and on PATH")
}

// NewGateTimeoutError creates an error for a gate target exceeding its time budget
func NewGateTimeoutError(target string, timeout time.Duration) *StratumError {
	return New(ErrCodeGateTimeout, fmt.Sprintf("make target %s timed out after %s", target, timeout)).
		WithSuggestion("Speed up the validation target or raise the timeout")
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *StratumError {
	return New(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}

// NewFileUnmarshalError creates an unmarshal error
func NewFileUnmarshalError(path string, format string, cause error) *StratumError {
	return Wrap(ErrCodeFileUnmarshal, fmt.Sprintf("failed to parse %s file: %s", format, path), cause).
		WithSuggestion("Check the file syntax and format").
		WithSuggestion(fmt.Sprintf("Ensure the file is valid %s", format))
}
