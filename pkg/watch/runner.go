package watch

import (
	"context"
	"sync"
)

// Trigger names what caused a run.
type Trigger string

const (
	TriggerInitial  Trigger = "initial"
	TriggerChange   Trigger = "change"
	TriggerSchedule Trigger = "schedule"
)

// Runner serializes gate runs requested by the file watcher and the
// scheduler. A request that arrives while a run is in progress is queued;
// further requests coalesce into that one queued run.
type Runner struct {
	fn func(ctx context.Context, trigger Trigger)

	mu      sync.Mutex
	running bool
	queued  bool
	next    Trigger
	idle    *sync.Cond
	runs    int
}

// NewRunner creates a runner for fn.
func NewRunner(fn func(ctx context.Context, trigger Trigger)) *Runner {
	r := &Runner{fn: fn}
	r.idle = sync.NewCond(&r.mu)
	return r
}

// Request runs fn now, or after the current run if one is in progress.
// It returns once the request has been executed or queued.
func (r *Runner) Request(ctx context.Context, trigger Trigger) {
	r.mu.Lock()
	if r.running {
		r.queued = true
		r.next = trigger
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	for {
		if ctx.Err() == nil {
			r.fn(ctx, trigger)
		}

		r.mu.Lock()
		r.runs++
		if !r.queued {
			r.running = false
			r.idle.Broadcast()
			r.mu.Unlock()
			return
		}
		r.queued = false
		trigger = r.next
		r.mu.Unlock()
	}
}

// Wait blocks until no run is in progress or queued.
func (r *Runner) Wait() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for r.running {
		r.idle.Wait()
	}
}

// Runs returns the number of completed runs.
func (r *Runner) Runs() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runs
}
