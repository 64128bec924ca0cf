// Package progress turns converter output into a rough completion estimate.
//
// The converter reports nothing machine-readable, so the default strategy
// counts output lines against an assumed total. Other strategies can be
// plugged in through the Estimator interface.
package progress

import (
	"fmt"
	"time"
)

const (
	// DefaultExpectedLines is the assumed output length of one extraction.
	DefaultExpectedLines = 100
	// DefaultBudget is the share of a file's progress covered by extraction.
	DefaultBudget = 0.7

	minETAElapsed  = 2 * time.Second
	minETAProgress = 0.1
)

// Estimate is the result of observing one output line. Extract is in
// [0, budget]; Remaining is only meaningful when HasETA is set.
type Estimate struct {
	Extract   float64
	Remaining time.Duration
	HasETA    bool
}

// ETAText renders the remaining time the way the status line shows it.
func (e Estimate) ETAText() string {
	if !e.HasETA {
		return ""
	}
	secs := e.Remaining.Seconds()
	if secs < 60 {
		return fmt.Sprintf("Est. %d seconds remaining", int(secs))
	}
	return fmt.Sprintf("Est. %d minutes remaining", int(secs/60))
}

// Estimator consumes converter output for one file at a time.
type Estimator interface {
	// Reset prepares the estimator for the next file.
	Reset()
	// Observe records one output line. elapsed is measured from the start of
	// this file's extraction; remainingFiles counts files after this one.
	Observe(line string, elapsed time.Duration, remainingFiles int) Estimate
	// Budget is the upper bound of Estimate.Extract.
	Budget() float64
}

// LineEstimator maps the number of lines seen onto the extraction budget.
type LineEstimator struct {
	ExpectedLines int
	Share         float64

	seen int
}

// NewLineEstimator returns a LineEstimator with the default constants.
func NewLineEstimator() *LineEstimator {
	return &LineEstimator{ExpectedLines: DefaultExpectedLines, Share: DefaultBudget}
}

func (e *LineEstimator) Reset() { e.seen = 0 }

func (e *LineEstimator) Budget() float64 {
	if e.Share <= 0 {
		return DefaultBudget
	}
	return e.Share
}

func (e *LineEstimator) Observe(_ string, elapsed time.Duration, remainingFiles int) Estimate {
	e.seen++

	expected := e.ExpectedLines
	if expected <= 0 {
		expected = DefaultExpectedLines
	}
	budget := e.Budget()

	extract := float64(e.seen) / float64(expected) * budget
	if extract > budget {
		extract = budget
	}

	est := Estimate{Extract: extract}
	if elapsed > minETAElapsed && extract > minETAProgress {
		est.Remaining, est.HasETA = remaining(elapsed, extract, budget, remainingFiles), true
	}
	return est
}

// remaining extrapolates the time left for this file plus the files after it.
func remaining(elapsed time.Duration, extract, budget float64, remainingFiles int) time.Duration {
	secs := elapsed.Seconds()
	file := secs * (budget - extract) / extract
	rest := secs / extract * float64(remainingFiles)
	return time.Duration((file + rest) * float64(time.Second))
}
