package natural

import (
	"fmt"

	"github.com/agbru/limbkit/internal/limbs"
)

// TestBit reports whether bit i of x is set.
func (x *Natural) TestBit(i uint64) bool {
	if x.large == nil {
		return i < limbs.Width && x.small>>i&1 != 0
	}
	return limbs.GetBit(x.large, i)
}

// SetBit sets bit i of x.
func (x *Natural) SetBit(i uint64) {
	li := limbs.LimbIndex(i)
	xs := x.view()
	if li >= len(xs) {
		xs = append(xs, make([]Limb, li+1-len(xs))...)
	}
	xs[li] |= Limb(1) << (i & limbs.WidthMask)
	x.setOwned(xs)
}

// ClearBit clears bit i of x.
func (x *Natural) ClearBit(i uint64) {
	if !x.TestBit(i) {
		return
	}
	xs := x.view()
	xs[i>>limbs.LogWidth] &^= Limb(1) << (i & limbs.WidthMask)
	x.setOwned(xs)
}

// FlipBit inverts bit i of x.
func (x *Natural) FlipBit(i uint64) {
	if x.TestBit(i) {
		x.ClearBit(i)
	} else {
		x.SetBit(i)
	}
}

// LimbRange returns the Natural made of limbs start through end-1 of x. Limbs
// past the top of x read as zero. It panics if start > end.
func (x *Natural) LimbRange(start, end int) *Natural {
	if start < 0 || start > end {
		panic(fmt.Sprintf("natural: invalid limb range [%d, %d)", start, end))
	}
	xs := x.view()
	if start >= len(xs) {
		return new(Natural)
	}
	return FromLimbs(xs[start:min(end, len(xs))])
}
