package natural

import "github.com/agbru/limbkit/internal/limbs"

// EqMod reports whether x ≡ y (mod m). When m is zero, this is x == y.
func (x *Natural) EqMod(y, m *Natural) bool {
	return limbs.EqMod(x.view(), y.view(), m.view())
}

// EqModPowerOfTwo reports whether x ≡ y (mod 2^pow).
func (x *Natural) EqModPowerOfTwo(y *Natural, pow uint64) bool {
	return limbs.EqModPowerOfTwo(x.view(), y.view(), pow)
}

// DivisibleBy reports whether d divides x. Zero is divisible by everything,
// including zero; nothing else is divisible by zero.
func (x *Natural) DivisibleBy(d *Natural) bool {
	return limbs.DivisibleBy(x.view(), d.view())
}

// DivisibleByLimb is DivisibleBy for a single-limb divisor.
func (x *Natural) DivisibleByLimb(d Limb) bool {
	return limbs.DivisibleByLimb(x.view(), d)
}

// DivisibleByPowerOfTwo reports whether 2^pow divides x.
func (x *Natural) DivisibleByPowerOfTwo(pow uint64) bool {
	return limbs.DivisibleByPowerOfTwo(x.view(), pow)
}
