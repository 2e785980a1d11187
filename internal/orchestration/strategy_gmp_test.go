//go:build gmp

package orchestration

import (
	"testing"

	"github.com/agbru/limbkit/internal/limbs"
	"github.com/agbru/limbkit/internal/workload"
)

func TestGMPStrategyMatchesReference(t *testing.T) {
	t.Parallel()
	reg := DefaultRegistry(limbs.DefaultModThresholds())
	g, err := reg.Get("gmp")
	if err != nil {
		t.Fatalf("gmp strategy not registered: %v", err)
	}
	for _, c := range workload.Generate(workload.Options{Seed: 5, Lengths: []int{1, 2, 9, 33}, Class: workload.Any, Rounds: 10}) {
		if got, want := g.ModLimb(c.Xs, c.D), limbs.ModLimbNaive(c.Xs, c.D); got != want {
			t.Fatalf("gmp = %#x, naive = %#x", got, want)
		}
	}
}
