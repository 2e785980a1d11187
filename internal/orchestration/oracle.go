package orchestration

import (
	"math/big"

	"github.com/agbru/limbkit/internal/limbs"
	"github.com/agbru/limbkit/internal/rounding"
)

func toBig(xs []limbs.Limb) *big.Int {
	return new(big.Int).SetBits(limbs.Clone(xs))
}

// shrRoundBig rounds x / 2^bits according to rm for either sign of x. It
// reports false when rm is Exact and the division is inexact.
func shrRoundBig(x *big.Int, bits uint64, rm rounding.Mode) (*big.Int, rounding.Ordering, bool) {
	// Rsh on a negative value floors, so the remainder is never negative.
	q := new(big.Int).Rsh(x, uint(bits))
	rem := new(big.Int).Sub(x, new(big.Int).Lsh(q, uint(bits)))
	if rem.Sign() == 0 {
		return q, rounding.Equal, true
	}
	var up bool
	switch rm {
	case rounding.Floor:
	case rounding.Ceiling:
		up = true
	case rounding.Down:
		up = x.Sign() < 0
	case rounding.Up:
		up = x.Sign() > 0
	case rounding.Nearest:
		half := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
		switch rem.Cmp(half) {
		case 1:
			up = true
		case 0:
			up = q.Bit(0) == 1
		}
	default:
		return nil, rounding.Equal, false
	}
	if up {
		return q.Add(q, big.NewInt(1)), rounding.Greater, true
	}
	return q, rounding.Less, true
}

// roundFloatBig rounds the integer x to p significant bits according to rm.
// It reports false when rm is Exact and the rounding is inexact.
func roundFloatBig(x *big.Int, p uint64, rm rounding.Mode) (*big.Float, rounding.Ordering, bool) {
	exact := new(big.Float).SetInt(x)
	bm, ok := rm.ToBig()
	if !ok {
		bm = big.ToZero
	}
	f := new(big.Float).Copy(exact).SetMode(bm).SetPrec(uint(p))
	o := rounding.Ordering(f.Acc())
	if !ok && o != rounding.Equal {
		return nil, rounding.Equal, false
	}
	return f, o, true
}
