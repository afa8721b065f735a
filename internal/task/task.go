// Package task runs load and update work off the interactive loop. A Runner
// admits one task at a time; each task is observed through a Handle whose
// status the caller polls.
package task

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

var (
	// ErrBusy is returned by Start while another task is running.
	ErrBusy = goerr.New("task already running")
	// ErrNotCompleted is returned by Result for a handle that has not completed.
	ErrNotCompleted = goerr.New("task not completed")
)

type Status int32

const (
	Idle Status = iota
	Running
	Completed
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Progress is a coarse step counter. Total 0 means indeterminate.
type Progress struct {
	Step  int
	Total int
	Label string
}

// Indeterminate reports whether the progress carries no step count.
func (p Progress) Indeterminate() bool { return p.Total <= 0 }

// Reporter receives progress from inside a work function.
type Reporter interface {
	Report(Progress)
}

type discard struct{}

func (discard) Report(Progress) {}

// Discard is a Reporter that drops every report.
var Discard Reporter = discard{}

// Work is the body of a task. It should return promptly once ctx is done.
type Work[T any] func(ctx context.Context, rep Reporter) (T, error)

// Runner admits at most one running task.
type Runner struct {
	mu      sync.Mutex
	current any
	obs     Observer
}

// NewRunner returns a runner that signals obs. A nil obs discards signals.
func NewRunner(obs Observer) *Runner {
	if obs == nil {
		obs = NopObserver{}
	}
	return &Runner{obs: obs}
}

// Busy reports whether a task currently occupies the runner.
func (r *Runner) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current != nil
}

func (r *Runner) acquire(owner any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current != nil {
		return false
	}
	r.current = owner
	return true
}

func (r *Runner) release(owner any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == owner {
		r.current = nil
	}
}

// Start moves a fresh handle from Idle to Running, emits LoadingStarted and
// runs work on its own goroutine with a cancellable child of ctx.
func Start[T any](ctx context.Context, r *Runner, name string, work Work[T]) (*Handle[T], error) {
	h := &Handle[T]{
		name:   name,
		runner: r,
		done:   make(chan struct{}),
	}
	if !r.acquire(h) {
		return nil, goerr.Wrap(ErrBusy, "failed to start task", goerr.V("name", name))
	}

	workCtx, cancel := context.WithCancel(ctx)
	h.cancel = cancel
	h.status = Running
	r.obs.LoadingStarted(name)
	ctxlog.From(ctx).Debug("task started", "name", name)

	go h.run(workCtx, work)
	return h, nil
}

// Handle tracks one task instance.
type Handle[T any] struct {
	name   string
	runner *Runner
	cancel context.CancelFunc
	done   chan struct{}

	mu       sync.Mutex
	status   Status
	progress Progress
	seq      uint64
	polled   uint64
	result   T
	err      error
}

func (h *Handle[T]) run(ctx context.Context, work Work[T]) {
	defer close(h.done)
	defer h.cancel()

	result, err := work(ctx, reporter[T]{h})

	h.mu.Lock()
	finished := h.status == Running
	if finished {
		h.status = Completed
		h.result = result
		h.err = err
	}
	h.mu.Unlock()

	if !finished {
		ctxlog.From(ctx).Debug("cancelled task returned", "name", h.name, "error", err)
		return
	}
	h.runner.release(h)
	h.runner.obs.LoadingFinished(h.name)
}

type reporter[T any] struct{ h *Handle[T] }

func (r reporter[T]) Report(p Progress) {
	r.h.mu.Lock()
	defer r.h.mu.Unlock()
	r.h.progress = p
	r.h.seq++
}

// Name returns the name given to Start.
func (h *Handle[T]) Name() string { return h.name }

// Status returns the current state without side effects.
func (h *Handle[T]) Status() Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

// Progress returns the latest reported progress.
func (h *Handle[T]) Progress() Progress {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.progress
}

// Poll is the cooperative tick of the interactive loop. While the task is
// running it forwards progress reported since the previous poll to the
// observer, then returns the status and latest progress.
func (h *Handle[T]) Poll() (Status, Progress) {
	h.mu.Lock()
	status, progress := h.status, h.progress
	fresh := status == Running && h.seq != h.polled
	h.polled = h.seq
	h.mu.Unlock()

	if fresh {
		h.runner.obs.LoadingProgress(h.name, progress)
	}
	return status, progress
}

// Cancel abandons a running task. The handle becomes Cancelled at once and
// the runner is freed; the worker stops at its next context check and its
// result is discarded. Cancel reports whether the call changed the status.
func (h *Handle[T]) Cancel() bool {
	h.mu.Lock()
	if h.status != Running {
		h.mu.Unlock()
		return false
	}
	h.status = Cancelled
	h.mu.Unlock()

	h.cancel()
	h.runner.release(h)
	return true
}

// Done is closed when the worker goroutine returns, cancelled or not.
func (h *Handle[T]) Done() <-chan struct{} { return h.done }

// Result returns the value and error of work once the handle is Completed.
func (h *Handle[T]) Result() (T, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.status != Completed {
		var zero T
		return zero, goerr.Wrap(ErrNotCompleted, "no result",
			goerr.V("name", h.name), goerr.V("status", h.status.String()))
	}
	return h.result, h.err
}

// Wait polls h every interval until it leaves Running. If ctx ends first the
// task is cancelled and the context error is returned.
func (h *Handle[T]) Wait(ctx context.Context, every time.Duration) (Status, error) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		if status, _ := h.Poll(); status != Running {
			return status, nil
		}
		select {
		case <-ctx.Done():
			h.Cancel()
			return h.Status(), goerr.Wrap(ctx.Err(), "stopped waiting for task", goerr.V("name", h.name))
		case <-ticker.C:
		case <-h.done:
		}
	}
}
