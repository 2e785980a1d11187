package natural

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/agbru/limbkit/internal/limbs"
)

// Limb is the digit type of a Natural.
type Limb = limbs.Limb

// Natural is an arbitrary-precision unsigned integer. The zero value is 0.
type Natural struct {
	// large is nil for a Small value.
	small Limb
	large []Limb
}

// FromLimb returns a Natural equal to x.
func FromLimb(x Limb) *Natural {
	return &Natural{small: x}
}

// FromUint64 returns a Natural equal to x.
func FromUint64(x uint64) *Natural {
	if limbs.Width == 64 || x <= uint64(limbs.MaxLimb) {
		return &Natural{small: Limb(x)}
	}
	return &Natural{large: []Limb{Limb(x), Limb(x >> 32)}}
}

// FromLimbs returns a Natural whose limbs, least significant first, are a copy
// of xs. Leading zero limbs are ignored.
func FromLimbs(xs []Limb) *Natural {
	n := new(Natural)
	n.setOwned(limbs.Clone(xs))
	return n
}

// FromBig returns a Natural equal to x. It panics if x is negative.
func FromBig(x *big.Int) *Natural {
	if x.Sign() < 0 {
		panic(fmt.Sprintf("natural: cannot convert negative value %s", x))
	}
	return FromLimbs(x.Bits())
}

// ToBig returns x as a new big.Int.
func (x *Natural) ToBig() *big.Int {
	return new(big.Int).SetBits(x.Limbs())
}

// setOwned stores xs as the value of x, taking ownership of the slice. This is
// the only place where the Small/Large invariant is established.
func (x *Natural) setOwned(xs []Limb) {
	xs = limbs.Trim(xs)
	switch len(xs) {
	case 0:
		x.small, x.large = 0, nil
	case 1:
		x.small, x.large = xs[0], nil
	default:
		x.small, x.large = 0, xs
	}
}

// view returns the limbs of x without copying. A caller may modify the result
// only when it hands the slice back to x through setOwned.
func (x *Natural) view() []Limb {
	if x.large != nil {
		return x.large
	}
	if x.small == 0 {
		return nil
	}
	return []Limb{x.small}
}

// IsValid reports whether x is in canonical form: Small when its value fits
// one limb, otherwise at least two limbs with a nonzero top limb.
func (x *Natural) IsValid() bool {
	if x.large == nil {
		return true
	}
	return x.small == 0 && len(x.large) >= 2 && x.large[len(x.large)-1] != 0
}

// Limbs returns a copy of the limbs of x, least significant first. Zero has
// no limbs.
func (x *Natural) Limbs() []Limb {
	return limbs.Clone(x.view())
}

// LimbCount returns the number of limbs in the representation of x.
func (x *Natural) LimbCount() int {
	if x.large != nil {
		return len(x.large)
	}
	if x.small == 0 {
		return 0
	}
	return 1
}

// SignificantBits returns the bit length of x.
func (x *Natural) SignificantBits() uint64 {
	return limbs.SignificantBits(x.view())
}

// TrailingZeros returns the number of trailing zero bits of x, and false when
// x is zero.
func (x *Natural) TrailingZeros() (uint64, bool) {
	if x.IsZero() {
		return 0, false
	}
	return limbs.TrailingZeros(x.view()), true
}

// IsZero reports whether x == 0.
func (x *Natural) IsZero() bool {
	return x.large == nil && x.small == 0
}

// Cmp compares x and y, returning -1, 0 or +1.
func (x *Natural) Cmp(y *Natural) int {
	if x.large == nil && y.large == nil {
		switch {
		case x.small < y.small:
			return -1
		case x.small > y.small:
			return 1
		}
		return 0
	}
	return limbs.Cmp(x.view(), y.view())
}

// Clone returns a deep copy of x.
func (x *Natural) Clone() *Natural {
	if x.large == nil {
		return &Natural{small: x.small}
	}
	return &Natural{large: limbs.Clone(x.large)}
}

// Set sets x to the value of y and returns x.
func (x *Natural) Set(y *Natural) *Natural {
	if x != y {
		x.setOwned(limbs.Clone(y.view()))
	}
	return x
}

// String returns the decimal representation of x.
func (x *Natural) String() string {
	if x.large == nil {
		return strconv.FormatUint(uint64(x.small), 10)
	}
	return x.ToBig().String()
}
