package natural

import "github.com/agbru/limbkit/internal/limbs"

// ModLimb returns x mod d. It panics if d is zero.
func (x *Natural) ModLimb(d Limb) Limb {
	if x.large == nil {
		if d == 0 {
			panic("division by zero")
		}
		return x.small % d
	}
	return limbs.ModLimb(x.large, d)
}

// ModLimbWith is ModLimb with explicit strategy thresholds.
func (x *Natural) ModLimbWith(d Limb, th limbs.ModThresholds) Limb {
	return limbs.ModLimbWith(x.view(), d, th)
}

// RemLimb returns the remainder of x divided by d. For a Natural it is the
// same as ModLimb.
func (x *Natural) RemLimb(d Limb) Limb {
	return x.ModLimb(d)
}

// ModLimbAssign sets x to x mod d.
func (x *Natural) ModLimbAssign(d Limb) {
	x.small, x.large = x.ModLimb(d), nil
}

// NegModLimb returns (-x) mod d, the smallest r with x + r ≡ 0 (mod d).
func (x *Natural) NegModLimb(d Limb) Limb {
	r := x.ModLimb(d)
	if r == 0 {
		return 0
	}
	return d - r
}
