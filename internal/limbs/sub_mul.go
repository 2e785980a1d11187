package limbs

// SubMulLimbSameLengthInPlaceLeft sets xs -= ys·z in one fused pass and
// returns the borrow limb. A nonzero borrow means ys·z > xs, in which case xs
// holds the difference modulo 2^(Width·len(xs)). xs and ys must have the same
// length.
func SubMulLimbSameLengthInPlaceLeft(xs, ys []Limb, z Limb) Limb {
	if len(xs) != len(ys) {
		panic("limbs: length mismatch")
	}
	var borrow Limb
	for i, y := range ys {
		hi, lo := mulWW(y, z)
		var c Limb
		lo, c = addWW(lo, borrow, 0)
		hi += c
		xs[i], c = subWW(xs[i], lo, 0)
		borrow = hi + c
	}
	return borrow
}

// SubMulLimbSameLengthInPlaceRight sets ys = xs - ys·z and returns the borrow
// limb, with the same conventions as SubMulLimbSameLengthInPlaceLeft.
func SubMulLimbSameLengthInPlaceRight(xs, ys []Limb, z Limb) Limb {
	if len(xs) != len(ys) {
		panic("limbs: length mismatch")
	}
	var borrow Limb
	for i, x := range xs {
		hi, lo := mulWW(ys[i], z)
		var c Limb
		lo, c = addWW(lo, borrow, 0)
		hi += c
		ys[i], c = subWW(x, lo, 0)
		borrow = hi + c
	}
	return borrow
}

// SubMulLimbGreaterInPlaceLeft sets xs -= ys·z, where len(xs) >= len(ys),
// and returns the borrow out of the top limb. The caller interprets a nonzero
// borrow: the true result is negative and xs holds it modulo
// 2^(Width·len(xs)).
func SubMulLimbGreaterInPlaceLeft(xs, ys []Limb, z Limb) Limb {
	n := len(ys)
	borrow := SubMulLimbSameLengthInPlaceLeft(xs[:n], ys, z)
	if borrow == 0 || n == len(xs) {
		return borrow
	}
	return SubVW(xs[n:], xs[n:], borrow)
}

// SubMulLimbGreater returns xs - ys·z as a new vector, or false if the result
// would be negative. len(xs) must be at least len(ys).
func SubMulLimbGreater(xs, ys []Limb, z Limb) ([]Limb, bool) {
	out := make([]Limb, len(xs))
	copy(out, xs)
	if SubMulLimbGreaterInPlaceLeft(out, ys, z) != 0 {
		return nil, false
	}
	return Trim(out), true
}

// SubMulInPlaceLeft sets xs -= ys·zs and returns the trimmed result. When the
// result would be negative it returns false and restores xs to its original
// value before returning.
func SubMulInPlaceLeft(xs, ys, zs []Limb) ([]Limb, bool) {
	ys, zs = Trim(ys), Trim(zs)
	if len(ys) == 0 || len(zs) == 0 {
		return Trim(xs), true
	}
	if len(ys) < len(zs) {
		ys, zs = zs, ys
	}
	// The product has at least len(ys)+len(zs)-1 limbs.
	if len(ys)+len(zs)-1 > len(Trim(xs)) {
		return xs, false
	}
	m := len(ys)
	for i, z := range zs {
		if z == 0 {
			continue
		}
		if i+m > len(xs) {
			// ys·z·B^i >= B^(i+m-1) >= B^len(xs) > xs
			restoreRows(xs, ys, zs[:i])
			return xs, false
		}
		borrow := SubMulLimbSameLengthInPlaceLeft(xs[i:i+m], ys, z)
		if borrow != 0 && SubVW(xs[i+m:], xs[i+m:], borrow) != 0 {
			restoreRows(xs, ys, zs[:i+1])
			return xs, false
		}
	}
	return Trim(xs), true
}

// restoreRows undoes the subtraction of ys·zs from xs. Both directions are
// exact modulo 2^(Width·len(xs)), so the original value comes back.
func restoreRows(xs, ys, zs []Limb) {
	addMulRows(xs, ys, zs)
}

// SubMul returns xs - ys·zs as a new vector, or false if the result would be
// negative.
func SubMul(xs, ys, zs []Limb) ([]Limb, bool) {
	out := Clone(xs)
	out, ok := SubMulInPlaceLeft(out, ys, zs)
	if !ok {
		return nil, false
	}
	return out, true
}
