// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteReportToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/limbkit/internal/calibration"
	"github.com/agbru/limbkit/internal/format"
	"github.com/agbru/limbkit/internal/limbs"
	"github.com/agbru/limbkit/internal/orchestration"
	"github.com/agbru/limbkit/internal/ui"
)

// Report is the outcome of one limbcheck run.
type Report struct {
	Command    string
	Seed       uint64
	Lengths    []int
	Cases      int
	Thresholds limbs.ModThresholds
	Strategies []orchestration.StrategyResult
	Checks     []orchestration.CheckResult
	Bench      []calibration.BenchResult
	Duration   time.Duration
	Err        error
}

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the report path (empty for no file output).
	OutputFile string
	// Quiet mode prints a single status line.
	Quiet bool
}

// WriteReportToFile writes r as plain text to config.OutputFile.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteReportToFile(r Report, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writeReport(file, r)
	return file.Close()
}

func writeReport(w io.Writer, r Report) {
	fmt.Fprintf(w, "# limbcheck %s report\n", r.Command)
	fmt.Fprintf(w, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "# Seed: %d\n", r.Seed)
	fmt.Fprintf(w, "# Lengths: %v\n", r.Lengths)
	fmt.Fprintf(w, "# Cases: %d\n", r.Cases)
	fmt.Fprintf(w, "# Duration: %s\n", format.FormatExecutionDuration(r.Duration))
	th := r.Thresholds
	fmt.Fprintf(w, "# Thresholds: norm=%d unnorm=%d 1n->1_1=%d 1u->1_1=%d 1_1->1_2=%d 1_2->1_4=%d method1=%t\n",
		th.Norm, th.Unnorm, th.Mod1NToMod11, th.Mod1UToMod11, th.Mod11ToMod12, th.Mod12ToMod14, th.Mod11PMethod)
	fmt.Fprintln(w)

	for _, s := range r.Strategies {
		fmt.Fprintf(w, "strategy %-20s covered=%d duration=%s%s\n", s.Name, s.Covered(), format.FormatExecutionDuration(s.Duration), errSuffix(s.Err))
	}
	for _, c := range r.Checks {
		fmt.Fprintf(w, "check    %-20s cases=%d failures=%d%s\n", c.Name, c.Cases, c.Failures, errSuffix(c.Err))
	}
	for _, b := range r.Bench {
		fmt.Fprintf(w, "bench    %-20s limbs=%d %s\n", b.Class, b.Length, format.FormatNsPerLimb(b.NsPerLimb))
	}
	fmt.Fprintf(w, "\nstatus: %s\n", FormatQuietResult(r))
}

func errSuffix(err error) string {
	if err == nil {
		return ""
	}
	return " error=" + err.Error()
}

// FormatQuietResult returns a single status line suitable for scripting.
func FormatQuietResult(r Report) string {
	if r.Err != nil {
		return fmt.Sprintf("FAIL %s: %v", r.Command, r.Err)
	}
	return fmt.Sprintf("OK %s %d cases in %s", r.Command, r.Cases, format.FormatExecutionDuration(r.Duration))
}

// DisplayQuietResult prints FormatQuietResult.
func DisplayQuietResult(out io.Writer, r Report) {
	fmt.Fprintln(out, FormatQuietResult(r))
}

// DisplayResultWithConfig prints the quiet status line when requested and
// writes the report file if one is configured.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, r Report, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, r)
	}
	if config.OutputFile == "" {
		return nil
	}
	if err := WriteReportToFile(r, config); err != nil {
		return err
	}
	if !config.Quiet {
		fmt.Fprintf(out, "\n%s✓ Report saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
	}
	return nil
}
