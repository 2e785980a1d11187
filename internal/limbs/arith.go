package limbs

// The exported vector primitives require len(x) (and len(y)) to equal len(z).
// z may alias x or y exactly.

// AddVV computes z = x + y and returns the carry.
func AddVV(z, x, y []Limb) Limb {
	if len(z) == 0 {
		return 0
	}
	return addVV(z, x[:len(z)], y[:len(z)])
}

// SubVV computes z = x - y and returns the borrow.
func SubVV(z, x, y []Limb) Limb {
	if len(z) == 0 {
		return 0
	}
	return subVV(z, x[:len(z)], y[:len(z)])
}

// AddVW computes z = x + y and returns the carry.
func AddVW(z, x []Limb, y Limb) Limb {
	if len(z) == 0 {
		return y
	}
	return addVW(z, x[:len(z)], y)
}

// SubVW computes z = x - y and returns the borrow.
func SubVW(z, x []Limb, y Limb) Limb {
	if len(z) == 0 {
		return y
	}
	return subVW(z, x[:len(z)], y)
}

// ShlVU computes z = x << s for s < Width and returns the bits shifted out.
func ShlVU(z, x []Limb, s uint) Limb {
	if len(z) == 0 {
		return 0
	}
	if s == 0 {
		copy(z, x)
		return 0
	}
	return shlVU(z, x[:len(z)], s)
}

// ShrVU computes z = x >> s for s < Width and returns the bits shifted out,
// left-aligned in the returned limb. z may alias x.
func ShrVU(z, x []Limb, s uint) Limb {
	if len(z) == 0 {
		return 0
	}
	if s == 0 {
		copy(z, x)
		return 0
	}
	x = x[:len(z)]
	c := x[0] << (Width - s)
	for i := 0; i < len(z)-1; i++ {
		z[i] = x[i]>>s | x[i+1]<<(Width-s)
	}
	z[len(z)-1] = x[len(z)-1] >> s
	return c
}

// MulAddVWW computes z = x*y + r and returns the carry limb.
func MulAddVWW(z, x []Limb, y, r Limb) Limb {
	if len(z) == 0 {
		return r
	}
	return mulAddVWW(z, x[:len(z)], y, r)
}

// AddMulVVW computes z += x*y and returns the carry limb.
func AddMulVVW(z, x []Limb, y Limb) Limb {
	if len(z) == 0 {
		return 0
	}
	return addMulVVW(z, x[:len(z)], y)
}
