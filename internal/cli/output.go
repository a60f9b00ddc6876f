package cli

import (
	"errors"
	"fmt"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution (including empty query results)
	ExitFailure      = 1 // Operation failure (sync validation or commit failed)
	ExitCommandError = 2 // Command error (no marker directory, bad arguments)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// hinter is implemented by errors that carry a remediation suggestion.
type hinter interface {
	Remediation() string
}

// remediationFor returns the remediation hint buried in an error chain,
// or empty if none exists.
func remediationFor(err error) string {
	for err != nil {
		if h, ok := err.(hinter); ok {
			return h.Remediation()
		}
		err = errors.Unwrap(err)
	}
	return ""
}
