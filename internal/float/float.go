// Package float provides Float, a multiple-precision binary floating-point
// number whose significand is a natural.Natural.
//
// A finite nonzero Float with precision p stores its significand in the
// smallest whole number of limbs that holds p bits, with the top bit set and
// every bit below the precision clear. Its value is
//
//	±significand × 2^(exponent − significand bits)
//
// so 2^(exponent−1) ≤ |x| < 2^exponent.
package float

import (
	"math/big"

	"github.com/agbru/limbkit/internal/limbs"
	"github.com/agbru/limbkit/internal/natural"
)

// Exponent bounds. Rounding past MaxExponent produces an infinity.
const (
	MaxExponent int32 = 1<<30 - 1
	MinExponent int32 = -MaxExponent
)

type kind uint8

const (
	zero kind = iota
	finite
	infinity
	nan
)

// Float is a multiple-precision binary floating-point number. The zero value
// is +0.
type Float struct {
	kind kind
	neg  bool
	exp  int32
	prec uint64
	sig  natural.Natural
}

// NaN returns a new NaN.
func NaN() *Float {
	return &Float{kind: nan}
}

// Infinity returns a new infinity of the given sign.
func Infinity(neg bool) *Float {
	return &Float{kind: infinity, neg: neg}
}

// Zero returns a new zero of the given sign.
func Zero(neg bool) *Float {
	return &Float{kind: zero, neg: neg}
}

// limbBits rounds p up to a whole number of limbs, in bits.
func limbBits(p uint64) uint64 {
	return (p + limbs.WidthMask) &^ limbs.WidthMask
}

func checkPrec(p uint64) {
	if p == 0 {
		panic("precision cannot be zero")
	}
}

// OnePrec returns 1 with precision p. It panics if p is zero.
func OnePrec(p uint64) *Float {
	checkPrec(p)
	f := &Float{kind: finite, exp: 1, prec: p}
	f.sig.SetBit(limbBits(p) - 1)
	return f
}

// FromNatural returns n exactly, with a precision equal to its bit length.
// Zero becomes +0. A value too large for MaxExponent becomes +Inf.
func FromNatural(n *natural.Natural) *Float {
	bits := n.SignificantBits()
	switch {
	case bits == 0:
		return Zero(false)
	case bits > uint64(MaxExponent):
		return Infinity(false)
	}
	f := &Float{kind: finite, exp: int32(bits), prec: bits}
	f.sig.Set(n)
	f.sig.ShlAssign(limbBits(bits) - bits)
	return f
}

// FromUint64 returns x exactly.
func FromUint64(x uint64) *Float {
	return FromNatural(natural.FromUint64(x))
}

// FromBig returns x exactly, with the precision of x. Exponents beyond
// MaxExponent become infinities and exponents below MinExponent become
// zeros of the same sign.
func FromBig(x *big.Float) *Float {
	switch {
	case x.IsInf():
		return Infinity(x.Signbit())
	case x.Sign() == 0:
		return Zero(x.Signbit())
	}
	mant := new(big.Float)
	exp := x.MantExp(mant)
	switch {
	case exp > int(MaxExponent):
		return Infinity(x.Signbit())
	case exp < int(MinExponent):
		return Zero(x.Signbit())
	}
	prec := uint64(x.Prec())
	// mant is in [0.5, 1) with at most prec bits, so this is exact.
	m, _ := mant.Abs(mant).SetMantExp(mant, int(prec)).Int(nil)
	f := &Float{kind: finite, neg: x.Signbit(), exp: int32(exp), prec: prec}
	f.sig.Set(natural.FromBig(m))
	f.sig.ShlAssign(limbBits(prec) - uint64(m.BitLen()))
	return f
}

// ToBig returns x as a new big.Float with the precision of x. It returns nil
// for NaN, which big.Float cannot represent.
func (x *Float) ToBig() *big.Float {
	switch x.kind {
	case nan:
		return nil
	case infinity:
		return new(big.Float).SetInf(x.neg)
	case zero:
		z := new(big.Float)
		if x.neg {
			z.Neg(z)
		}
		return z
	}
	b := new(big.Float).SetPrec(uint(x.prec)).SetInt(x.sig.ToBig())
	b.SetMantExp(b, int(x.exp)-int(x.sigBits()))
	if x.neg {
		b.Neg(b)
	}
	return b
}

func (x *Float) sigBits() uint64 {
	return uint64(x.sig.LimbCount()) * limbs.Width
}

// IsNaN reports whether x is NaN.
func (x *Float) IsNaN() bool { return x.kind == nan }

// IsInf reports whether x is an infinity of either sign.
func (x *Float) IsInf() bool { return x.kind == infinity }

// IsZero reports whether x is a zero of either sign.
func (x *Float) IsZero() bool { return x.kind == zero }

// IsFinite reports whether x is zero or a finite nonzero value.
func (x *Float) IsFinite() bool { return x.kind == zero || x.kind == finite }

// Sign returns -1, 0 or +1 according to the sign of x. Zeros and NaN return
// 0.
func (x *Float) Sign() int {
	switch {
	case x.kind == zero || x.kind == nan:
		return 0
	case x.neg:
		return -1
	}
	return 1
}

// Signbit reports whether x is negative or negative zero.
func (x *Float) Signbit() bool {
	return x.neg && x.kind != nan
}

// Neg returns -x.
func (x *Float) Neg() *Float {
	f := x.Clone()
	if f.kind != nan {
		f.neg = !f.neg
	}
	return f
}

// Clone returns a deep copy of x.
func (x *Float) Clone() *Float {
	f := &Float{kind: x.kind, neg: x.neg, exp: x.exp, prec: x.prec}
	f.sig.Set(&x.sig)
	return f
}

// Exponent returns the exponent of a finite nonzero x, and false otherwise.
func (x *Float) Exponent() (int32, bool) {
	if x.kind != finite {
		return 0, false
	}
	return x.exp, true
}

// Significand returns a copy of the significand of a finite nonzero x, and
// false otherwise.
func (x *Float) Significand() (*natural.Natural, bool) {
	if x.kind != finite {
		return nil, false
	}
	return x.sig.Clone(), true
}

// IsValid reports whether x satisfies the representation invariants.
func (x *Float) IsValid() bool {
	switch x.kind {
	case nan:
		return !x.neg && x.sig.IsZero()
	case zero, infinity:
		return x.sig.IsZero()
	case finite:
	default:
		return false
	}
	bits := x.sigBits()
	return x.prec > 0 &&
		x.sig.IsValid() &&
		bits == limbBits(x.prec) &&
		x.sig.TestBit(bits-1) &&
		x.sig.DivisibleByPowerOfTwo(bits-x.prec) &&
		x.exp >= MinExponent && x.exp <= MaxExponent
}

// String formats x in the shortest decimal form that identifies it at its
// precision.
func (x *Float) String() string {
	switch x.kind {
	case nan:
		return "NaN"
	case infinity:
		if x.neg {
			return "-Inf"
		}
		return "Inf"
	case zero:
		if x.neg {
			return "-0"
		}
		return "0"
	}
	return x.ToBig().Text('g', -1)
}
