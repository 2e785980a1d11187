package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	apperrors "github.com/agbru/limbkit/internal/errors"
	"github.com/agbru/limbkit/internal/format"
	"github.com/agbru/limbkit/internal/metrics"
	"github.com/agbru/limbkit/internal/orchestration"
	"github.com/agbru/limbkit/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner and progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numWorkers int, out io.Writer) {
	DisplayProgress(wg, progressChan, numWorkers, out)
}

// CLIResultPresenter renders results as colorized tables.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

func displayDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// PresentComparisonTable prints one row per strategy. Padding is computed on
// the visible text so ANSI color codes do not break alignment.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.StrategyResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	maxNameLen, maxDurationLen, maxCoveredLen := len("Strategy"), len("Duration"), len("Cases")
	for _, res := range results {
		maxNameLen = max(maxNameLen, len(res.Name))
		maxDurationLen = max(maxDurationLen, len(displayDuration(res.Duration)))
		maxCoveredLen = max(maxCoveredLen, len(coveredLabel(res)))
	}

	fmt.Fprintf(out, "%sStrategy%s%s   %sDuration%s%s   %sCases%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-len("Strategy")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxCoveredLen-len("Cases")),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		}
		duration, covered := displayDuration(res.Duration), coveredLabel(res)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", maxNameLen-len(res.Name)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			covered, padRight("", maxCoveredLen-len(covered)),
			status)
	}
}

func coveredLabel(res orchestration.StrategyResult) string {
	return fmt.Sprintf("%d/%d", res.Covered(), len(res.Skipped))
}

// PresentChecks prints the cross-checks in a lipgloss box.
func (CLIResultPresenter) PresentChecks(checks []orchestration.CheckResult, out io.Writer) {
	styles := ui.CurrentStyles()
	lines := make([]string, 0, len(checks)+1)
	lines = append(lines, styles.Title.Render("Cross-checks against math/big"))
	for _, c := range checks {
		var mark string
		switch {
		case c.Err == nil:
			mark = styles.Pass.Render("PASS")
		case c.Failures == 0:
			mark = styles.Fail.Render("ERROR")
		default:
			mark = styles.Fail.Render(fmt.Sprintf("FAIL %d", c.Failures))
		}
		lines = append(lines, fmt.Sprintf("%-18s %6d cases  %-8s %s", c.Name, c.Cases, displayDuration(c.Duration), mark))
	}
	fmt.Fprintln(out, styles.Box.Render(strings.Join(lines, "\n")))
}

// PresentSummary prints the final status box.
func PresentSummary(out io.Writer, ok bool, lines ...string) {
	styles := ui.CurrentStyles()
	title := styles.Pass.Render("✓ Run succeeded")
	if !ok {
		title = styles.Fail.Render("✗ Run failed")
	}
	body := append([]string{title}, lines...)
	fmt.Fprintln(out, styles.Box.Render(strings.Join(body, "\n")))
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + strings.Repeat(" ", length)
}

// HandleError prints err and returns its exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	code := apperrors.ExitCodeFor(err)
	if err == nil {
		return code
	}
	var mismatch apperrors.MismatchError
	switch {
	case errors.As(err, &mismatch):
		fmt.Fprintf(out, "%sMismatch after %s: %v%s\n", ui.ColorRed(), displayDuration(duration), err, ui.ColorReset())
		fmt.Fprintf(out, "Replay with the same --seed and --lengths to reproduce.\n")
	case code == apperrors.ExitErrorTimeout:
		fmt.Fprintf(out, "%sTimed out after %s.%s\n", ui.ColorRed(), displayDuration(duration), ui.ColorReset())
	case code == apperrors.ExitErrorCanceled:
		fmt.Fprintf(out, "%sCanceled after %s.%s\n", ui.ColorYellow(), displayDuration(duration), ui.ColorReset())
	default:
		fmt.Fprintf(out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	}
	return code
}

// DisplayMemoryStats shows the memory growth of a run.
func DisplayMemoryStats(stats metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(stats.HeapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(stats.TotalAlloc))
	fmt.Fprintf(out, "  Allocations:     %s\n", format.FormatNumberString(strconv.FormatUint(stats.Mallocs, 10)))
	fmt.Fprintf(out, "  GC cycles:       %d\n", stats.NumGC)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(stats.PauseTotalNs)/1e6)
}
