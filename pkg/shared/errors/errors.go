package errors

import (
	"fmt"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// CommandError represents an error that occurred during command execution, storing the exit code to report.
type CommandError struct {
	ExitCode    int
	CommonError string
	Err         error
}

// Error implements the error interface, returning the message from the common error.
func (e *CommandError) Error() string {
	return e.CommonError
}

// Unwrap returns the underlying error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError instance wrapping err with the given exit code.
func NewCommandError(err error, code int) *CommandError {
	return &CommandError{
		ExitCode:    code,
		CommonError: err.Error(),
		Err:         err,
	}
}

// NewCommandErrorf formats a message and wraps it into a CommandError.
func NewCommandErrorf(code int, format string, args ...interface{}) *CommandError {
	return NewCommandError(fmt.Errorf(format, args...), code)
}

// VerificationFailedError is returned when the report contains failed checks.
// The report itself already explains the failures, so callers usually don't print it again.
type VerificationFailedError struct {
	Failed int
	Total  int
}

// Error implements the error interface.
func (e *VerificationFailedError) Error() string {
	return fmt.Sprintf("verification failed: %d of %d checks failed", e.Failed, e.Total)
}
