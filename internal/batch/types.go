package batch

import (
	"time"

	"github.com/google/uuid"

	"bagextract/internal/layout"
)

// State is the lifecycle of a run.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateCanceled
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCanceled:
		return "canceled"
	default:
		return "idle"
	}
}

// Status is the terminal (or current) state of one file.
type Status int

const (
	StatusPending Status = iota
	StatusRunning
	StatusSucceeded
	StatusFailed
	StatusCanceled
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	case StatusCanceled:
		return "canceled"
	default:
		return "pending"
	}
}

// Job is one batch request. It is not modified once a run starts.
type Job struct {
	ID            string
	Files         []string
	ConverterPath string
	Mode          layout.Mode
}

// NewJob copies files into a new Job with a fresh ID.
func NewJob(files []string, converterPath string, mode layout.Mode) Job {
	return Job{
		ID:            uuid.NewString(),
		Files:         append([]string(nil), files...),
		ConverterPath: converterPath,
		Mode:          mode,
	}
}

// FileTask tracks one input file through a run. Progress is in [0, 1].
type FileTask struct {
	Source   string
	Name     string
	Layout   layout.Layout
	Progress float64
	Status   Status
	Err      error
}

// Update is a progress snapshot for the presentation layer. Percent is the
// overall batch percentage; Index is 1-based; Failed counts files that have
// failed so far. The last update of a run has Done set and State holding the
// outcome.
type Update struct {
	Percent int
	Message string
	Index   int
	Total   int
	Failed  int
	Done    bool
	State   State
}

// Result is returned when a run ends.
type Result struct {
	JobID   string
	State   State
	Tasks   []FileTask
	Elapsed time.Duration
}

// Summary counts tasks by status.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Canceled  int
	Pending   int
}

// Summary tallies the tasks of r.
func (r Result) Summary() Summary {
	s := Summary{Total: len(r.Tasks)}
	for _, t := range r.Tasks {
		switch t.Status {
		case StatusSucceeded:
			s.Succeeded++
		case StatusFailed:
			s.Failed++
		case StatusCanceled:
			s.Canceled++
		default:
			s.Pending++
		}
	}
	return s
}
