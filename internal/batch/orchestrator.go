// Package batch runs a Job: for each file in order it plans the folder
// layout, copies the source, runs the converter, and reports progress on an
// update channel.
package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"bagextract/internal/converter"
	"bagextract/internal/layout"
	"bagextract/internal/logging"
	"bagextract/internal/progress"
)

// Milestones within one file's share of the batch.
const (
	milestoneFolders  = 0.1
	milestoneCopy     = 0.2
	milestoneFinalize = 0.9
	extractSpan       = milestoneFinalize - milestoneCopy
)

// Converter runs the external converter for one request.
type Converter interface {
	Run(ctx context.Context, req converter.Request, onLine func(string)) error
}

// Orchestrator processes jobs sequentially. The zero value is usable: it
// runs converter.Invoker with the job's converter path and the default line
// estimator.
type Orchestrator struct {
	Converter Converter
	Estimator progress.Estimator
	Logger    *logging.Logger
	Now       func() time.Time
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Run processes every file of job in order and returns when the list is
// exhausted or ctx is canceled. Per-file failures are reported on updates
// and recorded in the result; they never stop the batch. The final update
// has Done set. updates may be nil; Run does not close it.
func (o *Orchestrator) Run(ctx context.Context, job Job, updates chan<- Update) Result {
	conv := o.Converter
	if conv == nil {
		conv = converter.Invoker{Path: job.ConverterPath}
	}
	est := o.Estimator
	if est == nil {
		est = progress.NewLineEstimator()
	}

	res := Result{JobID: job.ID, State: StateRunning, Tasks: make([]FileTask, len(job.Files))}
	for i, f := range job.Files {
		res.Tasks[i] = FileTask{Source: f, Name: filepath.Base(f)}
	}

	em := &emitter{updates: updates, total: len(job.Files)}
	start := o.now()
	o.Logger.Info("Job %s: %d files, mode %s, converter %s", job.ID, len(job.Files), job.Mode, job.ConverterPath)

	canceled := false
	for i := range res.Tasks {
		if ctx.Err() != nil {
			canceled = true
			break
		}
		em.index = i + 1
		if !o.processFile(ctx, job, conv, est, &res.Tasks[i], i, em) {
			canceled = true
			break
		}
	}

	res.Elapsed = o.now().Sub(start)
	if canceled {
		res.State = StateCanceled
		o.Logger.Warn("Job %s canceled after %s", job.ID, res.Elapsed.Round(time.Millisecond))
		em.done(StateCanceled, "Conversion canceled")
		return res
	}

	res.State = StateCompleted
	s := res.Summary()
	o.Logger.Info("Job %s done: %d succeeded, %d failed", job.ID, s.Succeeded, s.Failed)
	em.advance(100)
	em.done(StateCompleted, "Conversion completed!")
	return res
}

// processFile runs one file through all stages. It returns false when the
// converter was stopped by cancellation.
func (o *Orchestrator) processFile(
	ctx context.Context,
	job Job,
	conv Converter,
	est progress.Estimator,
	task *FileTask,
	i int,
	em *emitter,
) bool {
	n := len(job.Files)
	base := float64(i) / float64(n) * 100
	weight := 100 / float64(n)
	at := func(frac float64) float64 { return base + weight*frac }

	task.Status = StatusRunning
	em.send(base, fmt.Sprintf("Starting file %d/%d: %s", i+1, n, task.Name))
	o.Logger.Info("[%d/%d] %s", i+1, n, task.Name)

	// --- Folders ---
	task.Progress = milestoneFolders
	em.send(at(milestoneFolders), "Creating folders for "+task.Name)
	l, err := layout.Plan(task.Source, job.Mode)
	if err != nil {
		o.fail(task, err, base, em)
		return true
	}
	task.Layout = l

	// --- Copy ---
	task.Progress = milestoneCopy
	em.send(at(milestoneCopy), "Copying "+task.Name)
	if err := CopyFile(task.Source, filepath.Join(l.ItemFolder, filepath.Base(task.Source))); err != nil {
		o.fail(task, err, base, em)
		return true
	}

	// --- Extract ---
	em.send(at(milestoneCopy), fmt.Sprintf("Extracting data from %s (this may take a while)", task.Name))
	req := converter.Request{Input: task.Source, PlyPrefix: l.PlyPrefix(), PngPrefix: l.PngPrefix()}
	o.Logger.Debug("  %s %v", job.ConverterPath, converter.BuildArgs(req))

	est.Reset()
	budget := est.Budget()
	status := fmt.Sprintf("Extracting %s from %s", job.Mode.Label(), task.Name)
	extractStart := o.now()

	err = conv.Run(ctx, req, func(line string) {
		e := est.Observe(line, o.now().Sub(extractStart), n-i-1)
		frac := milestoneCopy + e.Extract/budget*extractSpan
		task.Progress = frac

		msg := fmt.Sprintf("%s (%d%%)", status, percent(frac*100))
		if eta := e.ETAText(); eta != "" {
			msg += " - " + eta
		}
		em.send(at(frac), msg)
	})

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		task.Status = StatusCanceled
		task.Err = err
		o.Logger.Warn("  Canceled during extraction of %s", task.Name)
		return false
	}

	// --- Finalize ---
	task.Progress = milestoneFinalize
	em.send(at(milestoneFinalize), "Finalizing "+task.Name)
	if err != nil {
		o.fail(task, err, base, em)
		return true
	}

	task.Progress = 1
	task.Status = StatusSucceeded
	em.send(at(1), fmt.Sprintf("Completed file %d/%d: %s", i+1, n, task.Name))
	o.Logger.Success("  Extracted %s in %s", task.Name, o.now().Sub(extractStart).Round(time.Millisecond))
	return true
}

func (o *Orchestrator) fail(task *FileTask, err error, base float64, em *emitter) {
	task.Status = StatusFailed
	task.Err = err
	em.failed++
	em.send(base, fmt.Sprintf("Error processing %s: %v", task.Name, err))

	o.Logger.Error("  %s: %v", task.Name, err)
	var exitErr *converter.ExitError
	if errors.As(err, &exitErr) {
		for _, line := range exitErr.Tail {
			o.Logger.Error("    %s", line)
		}
	}
}

// emitter publishes updates with the percentage clamped to [0, 100] and never
// lower than the previous update.
type emitter struct {
	updates chan<- Update
	total   int
	index   int
	failed  int
	last    int
}

// percent truncates pct, absorbing float error so 0.2+0.7 reads as 90.
func percent(pct float64) int {
	return int(pct + 1e-9)
}

func (e *emitter) advance(pct float64) int {
	p := percent(pct)
	if p > 100 {
		p = 100
	}
	if p < e.last {
		p = e.last
	}
	e.last = p
	return p
}

func (e *emitter) send(pct float64, msg string) {
	p := e.advance(pct)
	if e.updates == nil {
		return
	}
	e.updates <- Update{Percent: p, Message: msg, Index: e.index, Total: e.total, Failed: e.failed, State: StateRunning}
}

func (e *emitter) done(state State, msg string) {
	if e.updates == nil {
		return
	}
	e.updates <- Update{Percent: e.last, Message: msg, Index: e.index, Total: e.total, Failed: e.failed, Done: true, State: state}
}
