package float

import (
	"github.com/agbru/limbkit/internal/natural"
	"github.com/agbru/limbkit/internal/rounding"
)

// GetPrec returns the precision of a finite nonzero x, and false otherwise.
func (x *Float) GetPrec() (uint64, bool) {
	if x.kind != finite {
		return 0, false
	}
	return x.prec, true
}

// GetMinPrec returns the smallest precision that represents x exactly, and
// false when x is not finite and nonzero.
func (x *Float) GetMinPrec() (uint64, bool) {
	if x.kind != finite {
		return 0, false
	}
	tz, _ := x.sig.TrailingZeros()
	return x.sigBits() - tz, true
}

// SetPrec changes the precision of x to p, rounding to nearest, and returns
// the ordering of the new value against the old one.
func (x *Float) SetPrec(p uint64) rounding.Ordering {
	return x.SetPrecRound(p, rounding.Nearest)
}

// SetPrecRound changes the precision of x to p, rounding according to rm, and
// returns the ordering of the new value against the old one. NaN, infinities
// and zeros are unchanged.
//
// When x has exponent MaxExponent and rounding carries out of the
// significand, x becomes an infinity of its sign. This happens under Nearest
// as well, even though the largest finite value would be nearer.
//
// It panics if p is zero, or if rm is Exact and x cannot be represented at
// precision p. In the latter case x is unchanged.
func (x *Float) SetPrecRound(p uint64, rm rounding.Mode) rounding.Ordering {
	checkPrec(p)
	if x.kind != finite {
		return rounding.Equal
	}
	target := limbBits(p)
	bits := x.sigBits()
	if target > bits {
		x.sig.ShlAssign(target - bits)
		x.prec = p
		return rounding.Equal
	}
	if rm == rounding.Exact && !x.sig.DivisibleByPowerOfTwo(bits-p) {
		panic("Float precision rounding is not exact")
	}
	absRM := rm
	if x.neg {
		absRM = rm.Neg()
	}
	n := x.sig.LimbCount()
	o := x.sig.RoundToMultipleOfPowerOfTwoAssign(bits-p, absRM)
	if x.sig.LimbCount() > n {
		if x.exp == MaxExponent {
			*x = Float{kind: infinity, neg: x.neg}
			if x.neg {
				return rounding.Less
			}
			return rounding.Greater
		}
		x.sig.ShrAssign(1)
		x.exp++
	}
	x.sig.ShrAssign(bits - target)
	x.prec = p
	if x.neg {
		return o.Reverse()
	}
	return o
}

// FromFloatPrecRound returns x rounded to precision p according to rm,
// together with the ordering of the result against x.
func FromFloatPrecRound(x *Float, p uint64, rm rounding.Mode) (*Float, rounding.Ordering) {
	f := x.Clone()
	o := f.SetPrecRound(p, rm)
	return f, o
}

// FromFloatPrec is FromFloatPrecRound with Nearest.
func FromFloatPrec(x *Float, p uint64) (*Float, rounding.Ordering) {
	return FromFloatPrecRound(x, p, rounding.Nearest)
}

// FromNaturalPrecRound returns n rounded to precision p according to rm,
// together with the ordering of the result against n.
func FromNaturalPrecRound(n *natural.Natural, p uint64, rm rounding.Mode) (*Float, rounding.Ordering) {
	checkPrec(p)
	f := FromNatural(n)
	o := f.SetPrecRound(p, rm)
	return f, o
}
