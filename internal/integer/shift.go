package integer

import (
	"fmt"

	"github.com/agbru/limbkit/internal/rounding"
)

func (x *Integer) checkExactShift(bits uint64, rm rounding.Mode) {
	if rm == rounding.Exact && !x.abs.DivisibleByPowerOfTwo(bits) {
		panic(fmt.Sprintf("Right shift is not exact: %s >> %d", x, bits))
	}
}

// ShrRound returns x / 2^bits rounded according to rm, together with the
// ordering of the result against the exact quotient. Floor and Ceiling round
// toward negative and positive infinity.
//
// It panics if rm is Exact and x is not divisible by 2^bits.
func (x *Integer) ShrRound(bits uint64, rm rounding.Mode) (*Integer, rounding.Ordering) {
	x.checkExactShift(bits, rm)
	if !x.neg {
		q, o := x.abs.ShrRound(bits, rm)
		return fromAbs(false, q), o
	}
	q, o := x.abs.ShrRound(bits, rm.Neg())
	return fromAbs(true, q), o.Reverse()
}

// ShrRoundAssign is ShrRound in place. When it panics, x is unchanged.
func (x *Integer) ShrRoundAssign(bits uint64, rm rounding.Mode) rounding.Ordering {
	x.checkExactShift(bits, rm)
	if !x.neg {
		return x.abs.ShrRoundAssign(bits, rm)
	}
	o := x.abs.ShrRoundAssign(bits, rm.Neg())
	x.neg = !x.abs.IsZero()
	return o.Reverse()
}
