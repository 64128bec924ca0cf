package batch

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrEmptyJob       = errors.New("no files selected")
	ErrAlreadyRunning = errors.New("a conversion is already running")
)

// Runner owns at most one active run and is the entry point for front ends:
// Start launches the orchestrator on its own goroutine, Cancel requests a
// cooperative stop, and the returned channel carries updates until it is
// closed after the final one.
type Runner struct {
	orch *Orchestrator

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
	done   chan struct{}
	result Result
}

// NewRunner wraps o. A nil o uses a zero Orchestrator.
func NewRunner(o *Orchestrator) *Runner {
	if o == nil {
		o = &Orchestrator{}
	}
	return &Runner{orch: o}
}

// Start begins processing job. It fails if job has no files or another run
// is in progress.
func (r *Runner) Start(ctx context.Context, job Job) (<-chan Update, error) {
	if len(job.Files) == 0 {
		return nil, ErrEmptyJob
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateRunning {
		return nil, ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	updates := make(chan Update, 64)
	done := make(chan struct{})

	r.state = StateRunning
	r.cancel = cancel
	r.done = done
	r.result = Result{}

	go func() {
		defer close(done)
		defer close(updates)
		defer cancel()

		res := r.orch.Run(runCtx, job, updates)

		r.mu.Lock()
		r.state = res.State
		r.result = res
		r.mu.Unlock()
	}()

	return updates, nil
}

// Cancel asks the active run to stop. It is a no-op when nothing runs.
func (r *Runner) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateRunning && r.cancel != nil {
		r.cancel()
	}
}

// State reports the lifecycle state of the latest run.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Wait blocks until the latest run ends and returns its result. Updates must
// be drained concurrently or Wait may block forever.
func (r *Runner) Wait() Result {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done == nil {
		return Result{State: StateIdle}
	}

	<-done

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result
}
