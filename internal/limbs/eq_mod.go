package limbs

// limbModExactOdd is ModExactOdd for a single limb n.
func limbModExactOdd(n, d, c Limb) Limb {
	if n > c {
		r := (n - c) % d
		if r == 0 {
			return 0
		}
		return d - r
	}
	return (c - n) % d
}

// ModExactOdd returns an r with r·2^(Width·k) + xs - c ≡ 0 (mod d), where k
// is len(xs) or len(xs)-1. d must be odd and xs nonempty. xs - c is divisible
// by d exactly when r is 0 or d.
func ModExactOdd(xs []Limb, d, c Limb) Limb {
	if d&1 == 0 {
		panic("limbs: ModExactOdd requires an odd divisor")
	}
	n := len(xs)
	if n == 1 {
		return limbModExactOdd(xs[0], d, c)
	}
	inv := ModularInvertLimb(d)
	for _, x := range xs[:n-1] {
		diff, b := subWW(x, c, 0)
		c, _ = mulWW(diff*inv, d)
		c += b
	}
	last := xs[n-1]
	if last <= d {
		if c >= last {
			return c - last
		}
		return c + (d - last)
	}
	diff, b := subWW(last, c, 0)
	c, _ = mulWW(diff*inv, d)
	return c + b
}

// EqLimbModLimb reports whether xs ≡ y (mod m) for a nonzero limb m.
func EqLimbModLimb(xs []Limb, y, m Limb) bool {
	checkDivisor(m)
	xs = Trim(xs)
	if len(xs) == 0 {
		return y%m == 0
	}
	twos := trailingZeros(m)
	if (xs[0]-y)&(Limb(1)<<twos-1) != 0 {
		return false
	}
	m >>= twos
	if m == 1 {
		return true
	}
	r := ModExactOdd(xs, m, y)
	return r == 0 || r == m
}

// DivisibleByLimb reports whether d divides xs. Zero is divisible by every
// limb, including zero; no other value is divisible by zero.
func DivisibleByLimb(xs []Limb, d Limb) bool {
	xs = Trim(xs)
	if len(xs) == 0 {
		return true
	}
	if d == 0 {
		return false
	}
	twos := trailingZeros(d)
	if !DivisibleByPowerOfTwo(xs, uint64(twos)) {
		return false
	}
	d >>= twos
	if d == 1 {
		return true
	}
	r := ModExactOdd(xs, d, 0)
	return r == 0 || r == d
}

// DivisibleByOdd reports whether the odd multi-limb ms divides xs, by Hensel
// reduction: each step adds the multiple of ms that clears the lowest limb,
// which preserves divisibility because ms is coprime to 2^Width.
func DivisibleByOdd(xs, ms []Limb) bool {
	xs, ms = Trim(xs), Trim(ms)
	if len(ms) == 0 || ms[0]&1 == 0 {
		panic("limbs: DivisibleByOdd requires an odd divisor")
	}
	if len(xs) < len(ms) {
		return len(xs) == 0
	}
	k, n := len(xs), len(ms)
	work := make([]Limb, k+1)
	copy(work, xs)
	minv := -ModularInvertLimb(ms[0])
	for i := 0; i <= k-n; i++ {
		q := work[i] * minv
		if q == 0 {
			continue
		}
		c := AddMulLimbSameLengthInPlaceLeft(work[i:i+n], ms, q)
		AddVW(work[i+n:], work[i+n:], c)
	}
	// The reduced value is below 2·ms.
	rest := Trim(work[k-n+1:])
	return len(rest) == 0 || Cmp(rest, ms) == 0
}

// DivisibleBy reports whether ds divides xs. Zero divides only zero.
func DivisibleBy(xs, ds []Limb) bool {
	xs, ds = Trim(xs), Trim(ds)
	switch {
	case len(xs) == 0:
		return true
	case len(ds) == 0:
		return false
	case len(ds) == 1:
		return DivisibleByLimb(xs, ds[0])
	}
	twos := TrailingZeros(ds)
	if !DivisibleByPowerOfTwo(xs, twos) {
		return false
	}
	odd := Shr(ds, twos)
	if len(odd) == 1 {
		return DivisibleByLimb(xs, odd[0])
	}
	return DivisibleByOdd(xs, odd)
}

// EqMod reports whether xs ≡ ys (mod ms). A zero modulus means equality.
//
// The modulus is split as ms = odd·2^k. The 2^k part is settled by comparing
// the low k bits of xs and ys, the odd part by a divisibility test on
// |xs - ys| without computing a remainder.
func EqMod(xs, ys, ms []Limb) bool {
	xs, ys, ms = Trim(xs), Trim(ys), Trim(ms)
	if Cmp(xs, ys) == 0 {
		return true
	}
	if len(ms) == 0 {
		return false
	}
	twos := TrailingZeros(ms)
	if !EqModPowerOfTwo(xs, ys, twos) {
		return false
	}
	odd := Shr(ms, twos)
	if len(odd) == 1 {
		if odd[0] == 1 {
			return true
		}
		if len(xs) < len(ys) {
			xs, ys = ys, xs
		}
		if len(ys) <= 1 {
			y := at(ys, 0)
			if len(xs) >= bmodToModThreshold {
				return ModLimb(xs, odd[0]) == y%odd[0]
			}
			r := ModExactOdd(xs, odd[0], y)
			return r == 0 || r == odd[0]
		}
		return DivisibleByLimb(AbsDiff(xs, ys), odd[0])
	}
	return DivisibleByOdd(AbsDiff(xs, ys), odd)
}
