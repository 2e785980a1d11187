package natural

import (
	"fmt"

	"github.com/agbru/limbkit/internal/limbs"
	"github.com/agbru/limbkit/internal/rounding"
)

// Shl returns x << bits.
func (x *Natural) Shl(bits uint64) *Natural {
	n := new(Natural)
	n.setOwned(limbs.Shl(x.view(), bits))
	return n
}

// ShlAssign sets x to x << bits.
func (x *Natural) ShlAssign(bits uint64) {
	x.setOwned(limbs.ShlInPlace(x.view(), bits))
}

// Shr returns x >> bits, rounding down.
func (x *Natural) Shr(bits uint64) *Natural {
	n := new(Natural)
	n.setOwned(limbs.Shr(x.view(), bits))
	return n
}

// ShrAssign sets x to x >> bits, rounding down.
func (x *Natural) ShrAssign(bits uint64) {
	if x.large == nil {
		if bits >= limbs.Width {
			x.small = 0
		} else {
			x.small >>= bits
		}
		return
	}
	x.setOwned(limbs.ShrInPlace(x.large, bits))
}

func shrNotExact(x *Natural, bits uint64) string {
	return fmt.Sprintf("Right shift is not exact: %s >> %d", x, bits)
}

// ShrRound returns x / 2^bits rounded according to rm, together with the
// ordering of the result against the exact quotient. On a Natural, Floor
// behaves like Down and Ceiling like Up.
//
// It panics if rm is Exact and x is not divisible by 2^bits.
func (x *Natural) ShrRound(bits uint64, rm rounding.Mode) (*Natural, rounding.Ordering) {
	if x.large == nil {
		q, o, ok := limbs.ShrRoundLimb(x.small, bits, rm)
		if !ok {
			panic(shrNotExact(x, bits))
		}
		return FromLimb(q), o
	}
	qs, o, ok := limbs.ShrRound(x.large, bits, rm)
	if !ok {
		panic(shrNotExact(x, bits))
	}
	n := new(Natural)
	n.setOwned(qs)
	return n, o
}

// ShrRoundAssign is ShrRound in place. When it panics, x is unchanged.
func (x *Natural) ShrRoundAssign(bits uint64, rm rounding.Mode) rounding.Ordering {
	if x.large == nil {
		q, o, ok := limbs.ShrRoundLimb(x.small, bits, rm)
		if !ok {
			panic(shrNotExact(x, bits))
		}
		x.small = q
		return o
	}
	qs, o, ok := limbs.ShrRoundInPlace(x.large, bits, rm)
	if !ok {
		panic(shrNotExact(x, bits))
	}
	x.setOwned(qs)
	return o
}

// ShlRound returns x·2^bits for a non-negative bits, which is always exact,
// and x / 2^-bits rounded according to rm otherwise.
func (x *Natural) ShlRound(bits int64, rm rounding.Mode) (*Natural, rounding.Ordering) {
	if bits >= 0 {
		return x.Shl(uint64(bits)), rounding.Equal
	}
	return x.ShrRound(uint64(-bits), rm)
}

func roundNotExact(x *Natural, pow uint64) string {
	return fmt.Sprintf("Rounding %s to multiple of 2^%d is not exact", x, pow)
}

// RoundToMultipleOfPowerOfTwo returns the multiple of 2^pow nearest to x in
// the direction given by rm, together with its ordering against x.
//
// It panics if rm is Exact and x is not a multiple of 2^pow.
func (x *Natural) RoundToMultipleOfPowerOfTwo(pow uint64, rm rounding.Mode) (*Natural, rounding.Ordering) {
	qs, o, ok := limbs.ShrRound(x.view(), pow, rm)
	if !ok {
		panic(roundNotExact(x, pow))
	}
	n := new(Natural)
	n.setOwned(limbs.ShlInPlace(qs, pow))
	return n, o
}

// RoundToMultipleOfPowerOfTwoAssign is RoundToMultipleOfPowerOfTwo in place.
// When it panics, x is unchanged.
func (x *Natural) RoundToMultipleOfPowerOfTwoAssign(pow uint64, rm rounding.Mode) rounding.Ordering {
	qs, o, ok := limbs.ShrRoundInPlace(x.view(), pow, rm)
	if !ok {
		panic(roundNotExact(x, pow))
	}
	x.setOwned(limbs.ShlInPlace(qs, pow))
	return o
}
