package natural

import (
	"fmt"

	"github.com/agbru/limbkit/internal/limbs"
)

// AddMul returns x + y·z.
func (x *Natural) AddMul(y, z *Natural) *Natural {
	n := new(Natural)
	n.setOwned(limbs.AddMul(x.view(), y.view(), z.view()))
	return n
}

// AddMulAssign sets x to x + y·z. y and z may alias x.
func (x *Natural) AddMulAssign(y, z *Natural) {
	if y == x || z == x {
		x.setOwned(limbs.AddMul(x.view(), y.view(), z.view()))
		return
	}
	x.setOwned(limbs.AddMulInPlaceLeft(x.view(), y.view(), z.view()))
}

// AddMulAssignOwned sets x to x + y·z and consumes y, leaving it zero. When z
// fits one limb the sum is accumulated in whichever of x and y has the longer
// buffer, so no limbs are copied. If y is x, it behaves like AddMulAssign.
func (x *Natural) AddMulAssignOwned(y, z *Natural) {
	if y == x {
		x.AddMulAssign(y, z)
		return
	}
	if z.large == nil && z.small != 0 {
		out, _ := limbs.AddMulLimbInPlaceEither(x.view(), y.view(), z.small)
		x.setOwned(out)
	} else {
		x.AddMulAssign(y, z)
	}
	y.small, y.large = 0, nil
}

// CheckedSubMul returns x - y·z, or false if y·z > x.
func (x *Natural) CheckedSubMul(y, z *Natural) (*Natural, bool) {
	d, ok := limbs.SubMul(x.view(), y.view(), z.view())
	if !ok {
		return nil, false
	}
	n := new(Natural)
	n.setOwned(d)
	return n, true
}

// SubMul returns x - y·z. It panics if y·z > x.
func (x *Natural) SubMul(y, z *Natural) *Natural {
	d, ok := x.CheckedSubMul(y, z)
	if !ok {
		panic(fmt.Sprintf("Cannot perform sub_mul. a: %s, b: %s, c: %s", x, y, z))
	}
	return d
}

// CheckedSubMulAssign sets x to x - y·z and reports true, or reports false and
// leaves x unchanged if y·z > x. y and z may alias x.
func (x *Natural) CheckedSubMulAssign(y, z *Natural) bool {
	if y == x || z == x {
		d, ok := limbs.SubMul(x.view(), y.view(), z.view())
		if ok {
			x.setOwned(d)
		}
		return ok
	}
	d, ok := limbs.SubMulInPlaceLeft(x.view(), y.view(), z.view())
	if ok {
		x.setOwned(d)
	}
	return ok
}

// SubMulAssign sets x to x - y·z. It panics if y·z > x, leaving x unchanged.
func (x *Natural) SubMulAssign(y, z *Natural) {
	if !x.CheckedSubMulAssign(y, z) {
		panic("Natural sub_mul_assign cannot have a negative result")
	}
}
