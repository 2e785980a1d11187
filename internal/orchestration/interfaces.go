package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/limbkit/internal/limbs"
)

// StrategyResult is the outcome of one strategy over the whole workload.
type StrategyResult struct {
	// Name is the strategy name, e.g. "alt2".
	Name string
	// Remainders holds one result per workload case. Entries for skipped
	// cases are zero.
	Remainders []limbs.Limb
	// Skipped marks cases whose divisor or length the strategy rejects.
	Skipped []bool
	// Duration is the time spent in the strategy itself.
	Duration time.Duration
	// Err is set when the run was canceled or panicked.
	Err error
}

// Covered returns the number of cases the strategy actually computed.
func (r StrategyResult) Covered() int {
	n := 0
	for _, s := range r.Skipped {
		if !s {
			n++
		}
	}
	return n
}

// CheckResult is the outcome of one cross-check against math/big.
type CheckResult struct {
	// Name identifies the checked operation, e.g. "shr_round".
	Name     string
	Cases    int
	Failures int
	Duration time.Duration
	// Err holds the first failure as an apperrors.MismatchError, or the
	// cancellation cause.
	Err error
}

// ProgressUpdate reports the progress (0.0 to 1.0) of one worker.
type ProgressUpdate struct {
	WorkerIndex int
	Value       float64
}

// ProgressReporter displays progress updates until the channel is closed and
// then calls wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numWorkers int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numWorkers int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numWorkers int, out io.Writer) {
	f(wg, progressChan, numWorkers, out)
}

// NullProgressReporter drains the channel without output. It is used in
// quiet mode and tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders comparison and check results.
type ResultPresenter interface {
	// PresentComparisonTable displays one row per strategy.
	PresentComparisonTable(results []StrategyResult, out io.Writer)
	// PresentChecks displays one row per cross-check.
	PresentChecks(checks []CheckResult, out io.Writer)
}

// ErrorHandler maps a run error to an exit code, printing it if needed.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
