package limbs

import (
	"math/big"
	"math/bits"
)

// Limb is one base-2^Width digit.
type Limb = big.Word

const (
	// Width is the number of bits in a Limb.
	Width = bits.UintSize
	// LogWidth is log2(Width).
	LogWidth = 5 + Width/64
	// WidthMask extracts the sub-limb part of a bit count.
	WidthMask = Width - 1

	// MaxLimb has every bit set.
	MaxLimb = ^Limb(0)
	// HighBit is the most significant bit of a Limb.
	HighBit = Limb(1) << (Width - 1)
)

func mulWW(x, y Limb) (hi, lo Limb) {
	h, l := bits.Mul(uint(x), uint(y))
	return Limb(h), Limb(l)
}

func addWW(x, y, c Limb) (sum, carry Limb) {
	s, cc := bits.Add(uint(x), uint(y), uint(c))
	return Limb(s), Limb(cc)
}

func subWW(x, y, b Limb) (diff, borrow Limb) {
	d, bb := bits.Sub(uint(x), uint(y), uint(b))
	return Limb(d), Limb(bb)
}

// divWW divides hi:lo by d. hi must be less than d.
func divWW(hi, lo, d Limb) (q, r Limb) {
	qq, rr := bits.Div(uint(hi), uint(lo), uint(d))
	return Limb(qq), Limb(rr)
}

// remWW returns hi:lo mod d for any hi.
func remWW(hi, lo, d Limb) Limb {
	return Limb(bits.Rem(uint(hi), uint(lo), uint(d)))
}

func leadingZeros(x Limb) uint {
	return uint(bits.LeadingZeros(uint(x)))
}

func trailingZeros(x Limb) uint {
	return uint(bits.TrailingZeros(uint(x)))
}

func bitLen(x Limb) uint {
	return uint(bits.Len(uint(x)))
}

// dlimb is a double-width value hi·2^Width + lo.
type dlimb struct {
	hi, lo Limb
}

func mulD(x, y Limb) dlimb {
	hi, lo := mulWW(x, y)
	return dlimb{hi, lo}
}

func fromLimb(x Limb) dlimb {
	return dlimb{0, x}
}

// add returns a+b and whether the sum overflowed 2·Width bits.
func (a dlimb) add(b dlimb) (dlimb, bool) {
	lo, c := addWW(a.lo, b.lo, 0)
	hi, c := addWW(a.hi, b.hi, c)
	return dlimb{hi, lo}, c != 0
}

// wrappingAdd returns a+b mod 2^(2·Width).
func (a dlimb) wrappingAdd(b dlimb) dlimb {
	s, _ := a.add(b)
	return s
}

func (a dlimb) shl(s uint) dlimb {
	if s == 0 {
		return a
	}
	return dlimb{a.hi<<s | a.lo>>(Width-s), a.lo << s}
}

// InvertLimb returns floor((2^(2·Width) - 1) / d) - 2^Width, the reciprocal
// used by ModByPreinversion. d must have its high bit set.
func InvertLimb(d Limb) Limb {
	if d&HighBit == 0 {
		panic("limbs: InvertLimb requires a normalized divisor")
	}
	q, _ := divWW(^d, MaxLimb, d)
	return q
}

// ModByPreinversion returns (nh·2^Width + nl) mod d, given inv = InvertLimb(d).
// d must be normalized and nh < d.
func ModByPreinversion(nh, nl, d, inv Limb) Limb {
	q := mulD(nh, inv).wrappingAdd(dlimb{nh + 1, nl})
	r := nl - q.hi*d
	if r > q.lo {
		r += d
	}
	if r >= d {
		r -= d
	}
	return r
}

// ModularInvertLimb returns the inverse of the odd limb x modulo 2^Width.
func ModularInvertLimb(x Limb) Limb {
	if x&1 == 0 {
		panic("limbs: ModularInvertLimb requires an odd limb")
	}
	// x·x ≡ 1 mod 8; each Newton step doubles the number of correct bits.
	inv := x
	for i := 0; i < 5; i++ {
		inv *= 2 - x*inv
	}
	return inv
}
