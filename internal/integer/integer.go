// Package integer provides Integer, an arbitrary-precision signed integer
// stored as a sign and a natural.Natural magnitude.
//
// Signed rounding is magnitude rounding: a negative value is rounded with the
// mode passed through rounding.Mode.Neg and the resulting ordering reversed.
package integer

import (
	"math/big"

	"github.com/agbru/limbkit/internal/natural"
)

// Integer is an arbitrary-precision signed integer. The zero value is 0.
// Zero is never negative.
type Integer struct {
	neg bool
	abs natural.Natural
}

// FromInt64 returns an Integer equal to v.
func FromInt64(v int64) *Integer {
	u := uint64(v)
	if v < 0 {
		u = -u
	}
	return fromAbs(v < 0, natural.FromUint64(u))
}

// FromNatural returns a non-negative Integer equal to n.
func FromNatural(n *natural.Natural) *Integer {
	return fromAbs(false, n.Clone())
}

// FromSignAndAbs returns -abs when neg is true and abs otherwise.
func FromSignAndAbs(neg bool, abs *natural.Natural) *Integer {
	return fromAbs(neg, abs.Clone())
}

// FromBig returns an Integer equal to x.
func FromBig(x *big.Int) *Integer {
	return fromAbs(x.Sign() < 0, natural.FromBig(new(big.Int).Abs(x)))
}

// fromAbs wraps a freshly allocated magnitude, which the result takes over.
func fromAbs(neg bool, abs *natural.Natural) *Integer {
	z := &Integer{abs: *abs}
	z.neg = neg && !z.abs.IsZero()
	return z
}

// ToBig returns x as a new big.Int.
func (x *Integer) ToBig() *big.Int {
	b := x.abs.ToBig()
	if x.neg {
		b.Neg(b)
	}
	return b
}

// Sign returns -1, 0 or +1 according to the sign of x.
func (x *Integer) Sign() int {
	switch {
	case x.neg:
		return -1
	case x.abs.IsZero():
		return 0
	}
	return 1
}

// IsZero reports whether x == 0.
func (x *Integer) IsZero() bool {
	return x.abs.IsZero()
}

// IsValid reports whether x is canonical: its magnitude is canonical and zero
// carries no sign.
func (x *Integer) IsValid() bool {
	return x.abs.IsValid() && !(x.neg && x.abs.IsZero())
}

// Abs returns |x|.
func (x *Integer) Abs() *natural.Natural {
	return x.abs.Clone()
}

// Neg returns -x.
func (x *Integer) Neg() *Integer {
	return fromAbs(!x.neg, x.abs.Clone())
}

// Clone returns a deep copy of x.
func (x *Integer) Clone() *Integer {
	return fromAbs(x.neg, x.abs.Clone())
}

// Cmp compares x and y, returning -1, 0 or +1.
func (x *Integer) Cmp(y *Integer) int {
	switch {
	case x.neg && !y.neg:
		return -1
	case !x.neg && y.neg:
		return 1
	case x.neg:
		return y.abs.Cmp(&x.abs)
	}
	return x.abs.Cmp(&y.abs)
}

// String returns the decimal representation of x.
func (x *Integer) String() string {
	if x.neg {
		return "-" + x.abs.String()
	}
	return x.abs.String()
}
