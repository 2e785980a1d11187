package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agbru/limbkit/internal/format"
	"github.com/agbru/limbkit/internal/limbs"
	"github.com/agbru/limbkit/internal/metrics"
	"github.com/agbru/limbkit/internal/ui"
)

// PrintCalibrationResults prints one table row per measurement, marking the
// length each crossover settled on.
func PrintCalibrationResults(out io.Writer, res Result) {
	fmt.Fprintf(out, "\n--- Calibration Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sCrossover%s\t%sLimbs%s\t%sBelow%s\t%sFrom%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", strings.Repeat("─", 20), strings.Repeat("─", 6), strings.Repeat("─", 14), strings.Repeat("─", 14))
	for _, m := range res.Measurements {
		highlight := ""
		if m.Length == thresholdValue(res.Thresholds, m.Threshold) {
			highlight = fmt.Sprintf(" %s(crossover)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%s%s\t%d\t%s%s%s\t%s%s%s%s\n",
			ui.ColorCyan(), m.Threshold, ui.ColorReset(),
			m.Length,
			ui.ColorYellow(), format.FormatNsPerLimb(m.Below), ui.ColorReset(),
			ui.ColorYellow(), format.FormatNsPerLimb(m.From), ui.ColorReset(),
			highlight)
	}
	tw.Flush()
	fmt.Fprintf(out, "Calibration took %s\n", format.FormatExecutionDuration(res.Duration))
}

// PrintThresholds prints the thresholds on one line.
func PrintThresholds(out io.Writer, th limbs.ModThresholds) {
	fmt.Fprintf(out, "%sThresholds%s: norm=%s%d%s unnorm=%s%d%s 1n->1_1=%s%d%s 1u->1_1=%s%d%s 1_1->1_2=%s%d%s 1_2->1_4=%s%d%s method=%s%d%s\n",
		ui.ColorGreen(), ui.ColorReset(),
		ui.ColorYellow(), th.Norm, ui.ColorReset(),
		ui.ColorYellow(), th.Unnorm, ui.ColorReset(),
		ui.ColorYellow(), th.Mod1NToMod11, ui.ColorReset(),
		ui.ColorYellow(), th.Mod1UToMod11, ui.ColorReset(),
		ui.ColorYellow(), th.Mod11ToMod12, ui.ColorReset(),
		ui.ColorYellow(), th.Mod12ToMod14, ui.ColorReset(),
		ui.ColorYellow(), methodNumber(th.Mod11PMethod), ui.ColorReset())
}

// PrintBenchResults prints the dispatch cost per divisor class and length.
func PrintBenchResults(out io.Writer, results []BenchResult) {
	fmt.Fprintf(out, "\n--- ModLimb Benchmark ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sDivisor%s\t%sLimbs%s\t%sCost%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	for _, r := range results {
		fmt.Fprintf(tw, "  %s%s%s\t%d\t%s%s%s\n",
			ui.ColorCyan(), r.Class, ui.ColorReset(), r.Length, ui.ColorYellow(), format.FormatNsPerLimb(r.NsPerLimb), ui.ColorReset())
	}
	tw.Flush()
}

func thresholdValue(th limbs.ModThresholds, name string) int {
	switch name {
	case "mod_1_norm":
		return th.Norm
	case "mod_1_unnorm":
		return th.Unnorm
	case "mod_1n_to_mod_1_1":
		return th.Mod1NToMod11
	case "mod_1u_to_mod_1_1":
		return th.Mod1UToMod11
	case "mod_1_1_to_mod_1_2":
		return th.Mod11ToMod12
	case "mod_1_2_to_mod_1_4":
		return th.Mod12ToMod14
	}
	return -1
}

// RecordThresholds exports th as mod_threshold_limbs gauges. The fold
// variant is recorded as its method number.
func RecordThresholds(r *metrics.Recorder, th limbs.ModThresholds) {
	for _, xo := range crossovers() {
		if xo.set == nil {
			r.SetThreshold(xo.name, methodNumber(th.Mod11PMethod))
			continue
		}
		r.SetThreshold(xo.name, thresholdValue(th, xo.name))
	}
}
