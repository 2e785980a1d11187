package limbs

import "slices"

// Trim returns xs without its most significant zero limbs.
func Trim(xs []Limb) []Limb {
	n := len(xs)
	for n > 0 && xs[n-1] == 0 {
		n--
	}
	return xs[:n]
}

// IsZero reports whether every limb of xs is zero.
func IsZero(xs []Limb) bool {
	for _, x := range xs {
		if x != 0 {
			return false
		}
	}
	return true
}

// Clone returns a trimmed copy of xs, or nil if xs is zero.
func Clone(xs []Limb) []Limb {
	xs = Trim(xs)
	if len(xs) == 0 {
		return nil
	}
	return slices.Clone(xs)
}

// Cmp compares the values of xs and ys, returning -1, 0 or +1. Leading zero
// limbs are ignored.
func Cmp(xs, ys []Limb) int {
	xs, ys = Trim(xs), Trim(ys)
	switch {
	case len(xs) < len(ys):
		return -1
	case len(xs) > len(ys):
		return 1
	}
	for i := len(xs) - 1; i >= 0; i-- {
		if xs[i] != ys[i] {
			if xs[i] < ys[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// at returns xs[i], or zero past the end of xs.
func at(xs []Limb, i int) Limb {
	if i < len(xs) {
		return xs[i]
	}
	return 0
}

// LimbIndex converts a bit index to a limb index, panicking when the limb
// position does not fit an int.
func LimbIndex(bit uint64) int {
	i := bit >> LogWidth
	if i > uint64(maxInt) {
		panic("limbs: bit index out of range")
	}
	return int(i)
}

const maxInt = int(^uint(0) >> 1)

// SignificantBits returns the bit length of xs.
func SignificantBits(xs []Limb) uint64 {
	xs = Trim(xs)
	if len(xs) == 0 {
		return 0
	}
	return uint64(len(xs)-1)*Width + uint64(bitLen(xs[len(xs)-1]))
}

// TrailingZeros returns the number of trailing zero bits of xs. It returns 0
// when xs is zero.
func TrailingZeros(xs []Limb) uint64 {
	for i, x := range xs {
		if x != 0 {
			return uint64(i)*Width + uint64(trailingZeros(x))
		}
	}
	return 0
}

// GetBit reports whether bit i of xs is set.
func GetBit(xs []Limb, i uint64) bool {
	li := i >> LogWidth
	if li >= uint64(len(xs)) {
		return false
	}
	return xs[li]>>(i&WidthMask)&1 != 0
}

// DivisibleByPowerOfTwo reports whether the low pow bits of xs are all zero.
func DivisibleByPowerOfTwo(xs []Limb, pow uint64) bool {
	li := pow >> LogWidth
	if li >= uint64(len(xs)) {
		return IsZero(xs)
	}
	if !IsZero(xs[:li]) {
		return false
	}
	return xs[li]&(Limb(1)<<(pow&WidthMask)-1) == 0
}

// EqModPowerOfTwo reports whether xs ≡ ys (mod 2^pow).
func EqModPowerOfTwo(xs, ys []Limb, pow uint64) bool {
	whole := pow >> LogWidth
	n := len(xs)
	if len(ys) > n {
		n = len(ys)
	}
	if whole > uint64(n) {
		whole = uint64(n)
	}
	for i := 0; i < int(whole); i++ {
		if at(xs, i) != at(ys, i) {
			return false
		}
	}
	if whole == uint64(n) {
		return true
	}
	mask := Limb(1)<<(pow&WidthMask) - 1
	return (at(xs, int(whole))^at(ys, int(whole)))&mask == 0
}

// AddLimbInPlace adds y to xs, appending a limb on carry, and returns the
// result.
func AddLimbInPlace(xs []Limb, y Limb) []Limb {
	if c := AddVW(xs, xs, y); c != 0 {
		xs = append(xs, c)
	}
	return xs
}

// SubLimbInPlace subtracts y from xs and reports whether the subtraction
// borrowed out of the top limb.
func SubLimbInPlace(xs []Limb, y Limb) bool {
	return SubVW(xs, xs, y) != 0
}

// Add returns xs + ys as a new vector.
func Add(xs, ys []Limb) []Limb {
	if len(xs) < len(ys) {
		xs, ys = ys, xs
	}
	out := make([]Limb, len(xs), len(xs)+1)
	n := len(ys)
	c := AddVV(out[:n], xs[:n], ys)
	c = AddVW(out[n:], xs[n:], c)
	if c != 0 {
		out = append(out, c)
	}
	return Trim(out)
}

// AddInPlaceLeft sets xs += ys, growing xs as needed, and returns it.
func AddInPlaceLeft(xs, ys []Limb) []Limb {
	if len(xs) < len(ys) {
		xs = append(xs, make([]Limb, len(ys)-len(xs))...)
	}
	n := len(ys)
	c := AddVV(xs[:n], xs[:n], ys)
	c = AddVW(xs[n:], xs[n:], c)
	if c != 0 {
		xs = append(xs, c)
	}
	return xs
}

// SubGreaterInPlaceLeft sets xs -= ys and reports whether the result went
// negative, in which case xs holds the difference modulo 2^(Width·len(xs)).
// len(xs) must be at least len(ys).
func SubGreaterInPlaceLeft(xs, ys []Limb) bool {
	n := len(ys)
	b := SubVV(xs[:n], xs[:n], ys)
	b = SubVW(xs[n:], xs[n:], b)
	return b != 0
}

// Sub returns xs - ys as a new vector, or false if ys > xs.
func Sub(xs, ys []Limb) ([]Limb, bool) {
	xs, ys = Trim(xs), Trim(ys)
	if len(ys) > len(xs) {
		return nil, false
	}
	out := slices.Clone(xs)
	if SubGreaterInPlaceLeft(out, ys) {
		return nil, false
	}
	return Trim(out), true
}

// AbsDiff returns |xs - ys| as a new vector.
func AbsDiff(xs, ys []Limb) []Limb {
	if Cmp(xs, ys) < 0 {
		xs, ys = ys, xs
	}
	d, _ := Sub(xs, ys)
	return d
}

// Mul returns xs·ys as a new vector.
func Mul(xs, ys []Limb) []Limb {
	return AddMul(nil, xs, ys)
}
