package health

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrNoRun is reported by RunTracker.Check before the first run finished.
var ErrNoRun = errors.New("no gate run has finished yet")

// RunSummary describes the most recent gate run of a watch process.
type RunSummary struct {
	RunID      string    `json:"run_id,omitempty"`
	Mode       string    `json:"mode,omitempty"`
	Trigger    string    `json:"trigger"`
	Passed     bool      `json:"passed"`
	Rows       int       `json:"rows"`
	Errors     int       `json:"errors"`
	Warnings   int       `json:"warnings"`
	FinishedAt time.Time `json:"finished_at"`
	Error      string    `json:"error,omitempty"`
}

// RunTracker remembers the outcome of the last gate run. A failed gate
// is a normal outcome; only runs that could not load their inputs make
// the process unready.
type RunTracker struct {
	mu   sync.RWMutex
	last *RunSummary
	runs int
}

// NewRunTracker creates an empty tracker.
func NewRunTracker() *RunTracker {
	return &RunTracker{}
}

// Record stores s as the latest run.
func (t *RunTracker) Record(s RunSummary) {
	if s.FinishedAt.IsZero() {
		s.FinishedAt = time.Now().UTC()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = &s
	t.runs++
}

// Last returns the latest run, if any.
func (t *RunTracker) Last() (RunSummary, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.last == nil {
		return RunSummary{}, false
	}
	return *t.last, true
}

// Runs returns the number of recorded runs.
func (t *RunTracker) Runs() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.runs
}

// Check is a CheckFunc for the "last_run" readiness check.
func (t *RunTracker) Check(ctx context.Context) error {
	last, ok := t.Last()
	if !ok {
		return ErrNoRun
	}
	if last.Error != "" {
		return fmt.Errorf("last run failed: %s", last.Error)
	}
	return nil
}
