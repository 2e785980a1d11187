package natural

import (
	"fmt"

	"github.com/agbru/limbkit/internal/limbs"
)

// Add returns x + y.
func (x *Natural) Add(y *Natural) *Natural {
	n := new(Natural)
	n.setOwned(limbs.Add(x.view(), y.view()))
	return n
}

// AddAssign sets x to x + y.
func (x *Natural) AddAssign(y *Natural) {
	if x == y {
		x.ShlAssign(1)
		return
	}
	x.setOwned(limbs.AddInPlaceLeft(x.view(), y.view()))
}

// CheckedSub returns x - y, or false if y > x.
func (x *Natural) CheckedSub(y *Natural) (*Natural, bool) {
	d, ok := limbs.Sub(x.view(), y.view())
	if !ok {
		return nil, false
	}
	n := new(Natural)
	n.setOwned(d)
	return n, true
}

// Sub returns x - y. It panics if y > x.
func (x *Natural) Sub(y *Natural) *Natural {
	d, ok := x.CheckedSub(y)
	if !ok {
		panic(fmt.Sprintf("Cannot subtract a number from a smaller number. self: %s, other: %s", x, y))
	}
	return d
}

// AbsDiff returns |x - y|.
func (x *Natural) AbsDiff(y *Natural) *Natural {
	n := new(Natural)
	n.setOwned(limbs.AbsDiff(x.view(), y.view()))
	return n
}

// Mul returns x·y.
func (x *Natural) Mul(y *Natural) *Natural {
	n := new(Natural)
	n.setOwned(limbs.Mul(x.view(), y.view()))
	return n
}
