package natural

import (
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/agbru/limbkit/internal/limbs"
	"github.com/agbru/limbkit/internal/rounding"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// randNatural returns a value of up to maxLimbs limbs. Small values, powers of
// two and values with long runs of ones are all drawn regularly.
func randNatural(r *rand.Rand, maxLimbs int) *Natural {
	n := r.IntN(maxLimbs + 1)
	xs := make([]Limb, n)
	shape := r.IntN(5)
	for i := range xs {
		switch shape {
		case 0:
			xs[i] = limbs.MaxLimb
		case 1:
			if i == n-1 {
				xs[i] = Limb(1) << r.IntN(limbs.Width)
			}
		default:
			xs[i] = Limb(r.Uint())
		}
	}
	return FromLimbs(xs)
}

// shrRoundBig is the math/big reference for ShrRound.
func shrRoundBig(x *big.Int, bits uint64, rm rounding.Mode) (*big.Int, rounding.Ordering, bool) {
	q := new(big.Int).Rsh(x, uint(bits))
	rem := new(big.Int).Sub(x, new(big.Int).Lsh(q, uint(bits)))
	if rem.Sign() == 0 {
		return q, rounding.Equal, true
	}
	up := false
	switch rm {
	case rounding.Up, rounding.Ceiling:
		up = true
	case rounding.Nearest:
		half := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
		switch rem.Cmp(half) {
		case 1:
			up = true
		case 0:
			up = q.Bit(0) == 1
		}
	case rounding.Exact:
		return nil, rounding.Equal, false
	}
	if up {
		return q.Add(q, big.NewInt(1)), rounding.Greater, true
	}
	return q, rounding.Less, true
}

// expectPanic fails the test unless f panics with exactly want.
func expectPanic(t *testing.T, want string, f func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic %q, got none", want)
		}
		if got, _ := r.(string); got != want {
			t.Fatalf("panic = %v, want %q", r, want)
		}
	}()
	f()
}

func checkValid(t *testing.T, name string, n *Natural) {
	t.Helper()
	if !n.IsValid() {
		t.Fatalf("%s produced a non-canonical value: small=%#x large=%v", name, n.small, n.large)
	}
}
