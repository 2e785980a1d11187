package limbs

import (
	"math/big"
	"math/rand/v2"
	"slices"
)

// ─────────────────────────────────────────────────────────────────────────────
// Test Utilities
// ─────────────────────────────────────────────────────────────────────────────

func toBig(xs []Limb) *big.Int {
	return new(big.Int).SetBits(slices.Clone(xs))
}

func fromBig(x *big.Int) []Limb {
	return Clone(x.Bits())
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// randLimbs returns n limbs with a nonzero top limb. One vector in four is
// built from runs of all-zero and all-one limbs so carries and borrows travel
// far.
func randLimbs(r *rand.Rand, n int) []Limb {
	if n == 0 {
		return nil
	}
	xs := make([]Limb, n)
	runs := r.IntN(4) == 0
	for i := range xs {
		switch {
		case !runs:
			xs[i] = Limb(r.Uint())
		case r.IntN(2) == 0:
			xs[i] = MaxLimb
		default:
			xs[i] = 0
		}
	}
	for xs[n-1] == 0 {
		xs[n-1] = Limb(r.Uint())
	}
	return xs
}

// divisorClasses produces divisors with 0, 1, 2 and many leading zeros.
func divisorClasses(r *rand.Rand) map[string]Limb {
	return map[string]Limb{
		"normalized":   Limb(r.Uint()) | HighBit,
		"one zero":     (Limb(r.Uint()) | HighBit>>1) &^ HighBit,
		"two zeros":    (Limb(r.Uint()) | HighBit>>2) &^ (HighBit | HighBit>>1),
		"small":        Limb(r.IntN(1000) + 1),
		"power of two": Limb(1) << r.IntN(Width),
		"max":          MaxLimb,
		"one":          1,
	}
}
