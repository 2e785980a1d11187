package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/limbkit/internal/format"
	"github.com/agbru/limbkit/internal/orchestration"
)

const (
	// ProgressRefreshRate is the spinner and progress line refresh period.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with an aggregated progress bar and ETA
// until progressChan is closed, then prints a final full bar.
//
// Parameters:
//   - wg: Done is called on return.
//   - progressChan: Per-worker updates.
//   - numWorkers: The number of workers reporting.
//   - out: The terminal writer.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numWorkers int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numWorkers)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(" " + format.FormatProgressBarWithETA(0, 0, ProgressBarWidth))
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	var last orchestration.AggregatedProgress
	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				fmt.Fprintf(out, "%s\n", format.FormatProgressBarWithETA(1, 0, ProgressBarWidth))
				return
			}
			last = agg.Update(update)
		case <-ticker.C:
			s.UpdateSuffix(" " + format.FormatProgressBarWithETA(last.AverageProgress, last.ETA, ProgressBarWidth))
		}
	}
}

// ProgressFunc returns a func(float64) feeding a single-worker progress
// channel, for callers that report a plain fraction, and a stop function that
// closes the channel and waits for the display to finish.
func ProgressFunc(reporter orchestration.ProgressReporter, out io.Writer) (report func(float64), stop func()) {
	ch := make(chan orchestration.ProgressUpdate, 1)
	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, ch, 1, out)
	report = func(v float64) {
		select {
		case ch <- orchestration.ProgressUpdate{Value: v}:
		default:
		}
	}
	stop = func() {
		close(ch)
		wg.Wait()
	}
	return report, stop
}
