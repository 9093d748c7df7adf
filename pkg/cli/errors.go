package cli

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitCodeOK         = 0
	ExitCodeRuntime    = 1
	ExitCodeGateFailed = 2
)

// ErrGateFailed is wrapped by the ExitError returned when a run reports
// errors, or warnings under --fail-on-warn.
var ErrGateFailed = errors.New("gate failed")

// ConfigError represents an error in configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExitError carries the process exit code out of a command. A nil Err
// means the command already reported the outcome and main should exit
// quietly.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// NewGateFailedError returns the exit error for a failed gate.
func NewGateFailedError() *ExitError {
	return &ExitError{Code: ExitCodeGateFailed, Err: ErrGateFailed}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitCodeOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCodeRuntime
}
