package calibration

import (
	"runtime"
	"slices"
	"testing"

	"github.com/agbru/limbkit/internal/limbs"
)

func TestGenerateCalibrationLengths(t *testing.T) {
	t.Parallel()
	lengths := GenerateCalibrationLengths()

	if len(lengths) == 0 || lengths[0] != 2 {
		t.Fatalf("Expected lengths to start at 2, got %v", lengths)
	}
	if !slices.IsSorted(lengths) {
		t.Errorf("Lengths not sorted: %v", lengths)
	}
	for i := 1; i < len(lengths); i++ {
		if lengths[i] == lengths[i-1] {
			t.Errorf("Duplicate length %d in %v", lengths[i], lengths)
		}
	}

	// The sweep must straddle the last default crossover.
	if last := lengths[len(lengths)-1]; last <= limbs.DefaultModThresholds().Mod12ToMod14 {
		t.Errorf("Longest length %d does not pass Mod12ToMod14", last)
	}

	t.Logf("Generated %d calibration lengths for %d-bit limbs: %v", len(lengths), limbs.Width, lengths)
}

func TestGenerateQuickCalibrationLengths(t *testing.T) {
	t.Parallel()
	quick := GenerateQuickCalibrationLengths()
	full := GenerateCalibrationLengths()

	if len(quick) > len(full) {
		t.Errorf("Quick lengths (%d) should not outnumber full lengths (%d)", len(quick), len(full))
	}
	if !slices.IsSorted(quick) {
		t.Errorf("Quick lengths not sorted: %v", quick)
	}

	th := limbs.DefaultModThresholds()
	for _, want := range []int{th.Mod1NToMod11, th.Mod11ToMod12, th.Mod12ToMod14} {
		if !slices.Contains(quick, want) {
			t.Errorf("Quick lengths %v miss crossover %d", quick, want)
		}
	}
}

func TestCalibrationWorkers(t *testing.T) {
	t.Parallel()
	workers := CalibrationWorkers()
	if workers < 1 {
		t.Errorf("CalibrationWorkers() = %d, want at least 1", workers)
	}
	if numCPU := runtime.NumCPU(); numCPU > 1 && workers > numCPU/2 {
		t.Errorf("CalibrationWorkers() = %d exceeds half of %d CPUs", workers, numCPU)
	}
}
