package calibration

import (
	"runtime"
	"slices"

	"github.com/agbru/limbkit/internal/limbs"
)

// GenerateCalibrationLengths returns the dividend lengths timed by a full
// calibration: every length up to 8, then a geometric sweep far enough past
// the default Mod12ToMod14 crossover for the current limb width.
func GenerateCalibrationLengths() []int {
	limit := 2 * limbs.DefaultModThresholds().Mod12ToMod14
	lengths := []int{2, 3, 4, 5, 6, 7, 8}
	for n := 10; n <= limit; n += max(2, n/4) {
		lengths = append(lengths, n)
	}
	return lengths
}

// GenerateQuickCalibrationLengths returns a smaller set that still straddles
// every default crossover.
func GenerateQuickCalibrationLengths() []int {
	th := limbs.DefaultModThresholds()
	lengths := []int{2, 3, 4}
	for _, t := range []int{th.Mod1NToMod11, th.Mod1UToMod11, th.Mod11ToMod12, th.Mod12ToMod14} {
		if t >= 2 {
			lengths = append(lengths, t-1, t, t+1)
		}
	}
	lengths = append(lengths, 2*th.Mod12ToMod14)
	slices.Sort(lengths)
	return slices.Compact(lengths)
}

// CalibrationWorkers returns how many crossovers to time at once. Timings
// share caches and memory bandwidth, so at most half the cores are used.
func CalibrationWorkers() int {
	switch numCPU := runtime.NumCPU(); {
	case numCPU <= 2:
		return 1
	case numCPU <= 8:
		return numCPU / 2
	default:
		return 4
	}
}
