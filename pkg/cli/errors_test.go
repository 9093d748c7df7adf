package cli

import (
	"errors"
	"fmt"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("gate.mode", "must be import or publish")

	expected := "config error in gate.mode: must be import or publish"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestCommandError(t *testing.T) {
	inner := errors.New("no inputs")
	err := NewCommandError("check", inner)

	if err.Error() != "command check failed: no inputs" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("CommandError should unwrap to the inner error")
	}
}

func TestExitError(t *testing.T) {
	quiet := &ExitError{Code: 3}
	if quiet.Error() != "exit status 3" {
		t.Errorf("Error() = %q", quiet.Error())
	}

	failed := NewGateFailedError()
	if failed.Code != ExitCodeGateFailed {
		t.Errorf("Code = %d, want %d", failed.Code, ExitCodeGateFailed)
	}
	if !errors.Is(failed, ErrGateFailed) {
		t.Error("gate failure should unwrap to ErrGateFailed")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitCodeOK},
		{"plain error", errors.New("boom"), ExitCodeRuntime},
		{"gate failed", NewGateFailedError(), ExitCodeGateFailed},
		{"wrapped exit error", fmt.Errorf("check: %w", &ExitError{Code: 2}), 2},
		{"command error", NewCommandError("check", errors.New("bad")), ExitCodeRuntime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
