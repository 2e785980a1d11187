package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/limbkit/internal/calibration"
	"github.com/agbru/limbkit/internal/config"
	"github.com/agbru/limbkit/internal/limbs"
	"github.com/agbru/limbkit/internal/orchestration"
	"github.com/agbru/limbkit/internal/ui"
)

// PrintExecutionConfig displays the workload, environment and thresholds of
// the run.
//
// Parameters:
//   - cfg: The application configuration.
//   - th: The resolved mod_limb thresholds.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, th limbs.ModThresholds, out io.Writer) {
	fmt.Fprintf(out, "%s--- Execution Configuration ---%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "Command %s%s%s, seed %s%d%s, %d rounds over lengths %s%v%s, %s divisors, timeout %s%s%s.\n",
		ui.ColorMagenta(), cfg.Command, ui.ColorReset(),
		ui.ColorYellow(), cfg.Seed, ui.ColorReset(),
		cfg.Rounds,
		ui.ColorCyan(), cfg.Lengths, ui.ColorReset(),
		cfg.DivisorClass,
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	features := strings.Join(calibration.CPUFeatures(), " ")
	if features == "" {
		features = "none detected"
	}
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, %d-bit limbs, Go %s%s%s, CPU features: %s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), limbs.Width,
		ui.ColorCyan(), runtime.Version(), ui.ColorReset(), features)
	calibration.PrintThresholds(out, th)
}

// PrintExecutionMode displays which strategies will run.
func PrintExecutionMode(strategies []orchestration.Strategy, out io.Writer) {
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = s.Name()
	}
	if len(strategies) > 1 {
		fmt.Fprintf(out, "Execution mode: parallel comparison of %d strategies (%s).\n", len(strategies), strings.Join(names, ", "))
	} else {
		fmt.Fprintf(out, "Execution mode: single strategy %s%s%s.\n", ui.ColorGreen(), strings.Join(names, ""), ui.ColorReset())
	}
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
