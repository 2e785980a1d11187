package limbs

import "github.com/agbru/limbkit/internal/rounding"

// discarded describes the bits a right shift by bits removes from xs: half is
// the highest removed bit, sticky is set when any bit below it is set.
func discarded(xs []Limb, bits uint64) (half, sticky bool) {
	return GetBit(xs, bits-1), !DivisibleByPowerOfTwo(xs, bits-1)
}

// finishRound applies the rounding decision to an already shifted vector.
func finishRound(out []Limb, half, sticky bool, rm rounding.Mode) ([]Limb, rounding.Ordering, bool) {
	loOdd := len(out) > 0 && out[0]&1 != 0
	up, o, ok := rounding.Round(loOdd, half, sticky, rm)
	if up {
		out = AddLimbInPlace(out, 1)
	}
	return out, o, ok
}

// ShrRound returns xs / 2^bits rounded according to rm as a new vector,
// together with the ordering of the result against the exact quotient. It
// returns false, and no vector, when rm is Exact and xs is not divisible by
// 2^bits.
func ShrRound(xs []Limb, bits uint64, rm rounding.Mode) ([]Limb, rounding.Ordering, bool) {
	xs = Trim(xs)
	if bits == 0 || len(xs) == 0 {
		return Clone(xs), rounding.Equal, true
	}
	half, sticky := discarded(xs, bits)
	if rm == rounding.Exact && (half || sticky) {
		return nil, rounding.Equal, false
	}
	return finishRound(Shr(xs, bits), half, sticky, rm)
}

// ShrRoundInPlace is ShrRound reusing the storage of xs for the result. When
// it returns false, xs is left unmodified.
func ShrRoundInPlace(xs []Limb, bits uint64, rm rounding.Mode) ([]Limb, rounding.Ordering, bool) {
	xs = Trim(xs)
	if bits == 0 || len(xs) == 0 {
		return xs, rounding.Equal, true
	}
	half, sticky := discarded(xs, bits)
	if rm == rounding.Exact && (half || sticky) {
		return xs, rounding.Equal, false
	}
	return finishRound(ShrInPlace(xs, bits), half, sticky, rm)
}

// ShrRoundLimb is ShrRound for a single limb.
func ShrRoundLimb(x Limb, bits uint64, rm rounding.Mode) (Limb, rounding.Ordering, bool) {
	if bits == 0 || x == 0 {
		return x, rounding.Equal, true
	}
	var lo Limb
	var half, sticky bool
	switch {
	case bits > Width:
		sticky = true
	case bits == Width:
		half = x&HighBit != 0
		sticky = x&^HighBit != 0
	default:
		lo = x >> bits
		half = x>>(bits-1)&1 != 0
		sticky = x&(Limb(1)<<(bits-1)-1) != 0
	}
	up, o, ok := rounding.Round(lo&1 != 0, half, sticky, rm)
	if !ok {
		return x, rounding.Equal, false
	}
	if up {
		lo++
	}
	return lo, o, true
}
