package limbs

// addCarryAt adds c to xs starting at limb i, appending a limb when the carry
// runs off the top, and returns xs.
func addCarryAt(xs []Limb, i int, c Limb) []Limb {
	if c == 0 {
		return xs
	}
	if AddVW(xs[i:], xs[i:], c) != 0 {
		xs = append(xs, 1)
	}
	return xs
}

// AddMulLimbSameLengthInPlaceLeft sets xs += ys·z in one fused pass and
// returns the carry limb. xs and ys must have the same length.
func AddMulLimbSameLengthInPlaceLeft(xs, ys []Limb, z Limb) Limb {
	if len(xs) != len(ys) {
		panic("limbs: length mismatch")
	}
	return AddMulVVW(xs, ys, z)
}

// AddMulLimbSameLengthInPlaceRight sets ys = xs + ys·z in one fused pass and
// returns the carry limb. xs and ys must have the same length.
func AddMulLimbSameLengthInPlaceRight(xs, ys []Limb, z Limb) Limb {
	if len(xs) != len(ys) {
		panic("limbs: length mismatch")
	}
	var carry Limb
	for i, x := range xs {
		hi, lo := mulWW(ys[i], z)
		var c Limb
		lo, c = addWW(lo, x, 0)
		hi += c
		lo, c = addWW(lo, carry, 0)
		ys[i] = lo
		carry = hi + c
	}
	return carry
}

// AddMulLimb returns xs + ys·z as a new vector.
func AddMulLimb(xs, ys []Limb, z Limb) []Limb {
	var out []Limb
	if len(xs) >= len(ys) {
		out = make([]Limb, len(xs), len(xs)+1)
		copy(out, xs)
		out = AddMulLimbGreaterInPlaceLeft(out, ys, z)
	} else {
		out = make([]Limb, len(ys), len(ys)+1)
		copy(out, ys)
		out = AddMulLimbInPlaceRight(xs, out, z)
	}
	return Trim(out)
}

// AddMulLimbGreaterInPlaceLeft sets xs += ys·z, where len(xs) >= len(ys),
// and returns xs, extended by one limb if the sum needs it.
func AddMulLimbGreaterInPlaceLeft(xs, ys []Limb, z Limb) []Limb {
	n := len(ys)
	c := AddMulVVW(xs[:n], ys, z)
	if n == len(xs) {
		if c != 0 {
			xs = append(xs, c)
		}
		return xs
	}
	return addCarryAt(xs, n, c)
}

// AddMulLimbSmallerInPlaceLeft sets xs += ys·z, where len(xs) < len(ys),
// growing xs to hold the result.
func AddMulLimbSmallerInPlaceLeft(xs, ys []Limb, z Limb) []Limb {
	n := len(xs)
	c := AddMulVVW(xs, ys[:n], z)
	xs = append(xs, make([]Limb, len(ys)-n)...)
	if c = MulAddVWW(xs[n:], ys[n:], z, c); c != 0 {
		xs = append(xs, c)
	}
	return xs
}

// AddMulLimbInPlaceLeft sets xs += ys·z for any lengths and returns xs.
func AddMulLimbInPlaceLeft(xs, ys []Limb, z Limb) []Limb {
	if len(xs) >= len(ys) {
		return AddMulLimbGreaterInPlaceLeft(xs, ys, z)
	}
	return AddMulLimbSmallerInPlaceLeft(xs, ys, z)
}

// AddMulLimbInPlaceRight sets ys = xs + ys·z for any lengths and returns ys.
func AddMulLimbInPlaceRight(xs, ys []Limb, z Limb) []Limb {
	if len(xs) <= len(ys) {
		n := len(xs)
		c := AddMulLimbSameLengthInPlaceRight(xs, ys[:n], z)
		if c = MulAddVWW(ys[n:], ys[n:], z, c); c != 0 {
			ys = append(ys, c)
		}
		return ys
	}
	n := len(ys)
	c := AddMulLimbSameLengthInPlaceRight(xs[:n], ys, z)
	ys = append(ys, xs[n:]...)
	return addCarryAt(ys, n, c)
}

// AddMulLimbInPlaceEither computes xs + ys·z in whichever of the two buffers
// is longer, without copying, and reports whether the result lives in ys.
func AddMulLimbInPlaceEither(xs, ys []Limb, z Limb) (out []Limb, right bool) {
	if len(xs) >= len(ys) {
		return AddMulLimbGreaterInPlaceLeft(xs, ys, z), false
	}
	return AddMulLimbInPlaceRight(xs, ys, z), true
}

// addMulRows accumulates ys·zs into out, one row per limb of zs. out must be
// long enough to hold the final sum; the final carry is discarded.
func addMulRows(out, ys, zs []Limb) {
	for i, z := range zs {
		if z == 0 {
			continue
		}
		c := AddMulVVW(out[i:i+len(ys)], ys, z)
		AddVW(out[i+len(ys):], out[i+len(ys):], c)
	}
}

// AddMul returns xs + ys·zs as a new vector.
func AddMul(xs, ys, zs []Limb) []Limb {
	ys, zs = Trim(ys), Trim(zs)
	if len(ys) == 0 || len(zs) == 0 {
		return Clone(xs)
	}
	if len(ys) < len(zs) {
		ys, zs = zs, ys
	}
	if len(zs) == 1 {
		return AddMulLimb(xs, ys, zs[0])
	}
	n := max(len(xs), len(ys)+len(zs)) + 1
	out := make([]Limb, n)
	copy(out, xs)
	addMulRows(out, ys, zs)
	return Trim(out)
}

// AddMulInPlaceLeft sets xs += ys·zs, reusing the storage of xs when its
// capacity allows, and returns the trimmed result.
func AddMulInPlaceLeft(xs, ys, zs []Limb) []Limb {
	ys, zs = Trim(ys), Trim(zs)
	if len(ys) == 0 || len(zs) == 0 {
		return Trim(xs)
	}
	if len(ys) < len(zs) {
		ys, zs = zs, ys
	}
	if len(zs) == 1 {
		return Trim(AddMulLimbInPlaceLeft(xs, ys, zs[0]))
	}
	if n := max(len(xs), len(ys)+len(zs)) + 1; n > len(xs) {
		xs = append(xs, make([]Limb, n-len(xs))...)
	}
	addMulRows(xs, ys, zs)
	return Trim(xs)
}
