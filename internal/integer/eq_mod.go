package integer

// EqMod reports whether x ≡ y (mod m). The sign of m is ignored, and a zero
// modulus means x == y.
func (x *Integer) EqMod(y, m *Integer) bool {
	if x.neg == y.neg || x.IsZero() || y.IsZero() {
		return x.abs.EqMod(&y.abs, &m.abs)
	}
	// x - y = ±(|x| + |y|)
	return x.abs.Add(&y.abs).DivisibleBy(&m.abs)
}

// EqModPowerOfTwo reports whether x ≡ y (mod 2^pow).
func (x *Integer) EqModPowerOfTwo(y *Integer, pow uint64) bool {
	if x.neg == y.neg || x.IsZero() || y.IsZero() {
		return x.abs.EqModPowerOfTwo(&y.abs, pow)
	}
	return x.abs.Add(&y.abs).DivisibleByPowerOfTwo(pow)
}

// DivisibleBy reports whether d divides x. Zero is divisible by everything,
// including zero.
func (x *Integer) DivisibleBy(d *Integer) bool {
	return x.abs.DivisibleBy(&d.abs)
}

// DivisibleByPowerOfTwo reports whether 2^pow divides x.
func (x *Integer) DivisibleByPowerOfTwo(pow uint64) bool {
	return x.abs.DivisibleByPowerOfTwo(pow)
}
