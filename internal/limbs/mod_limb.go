package limbs

// highestTwoBits masks the two most significant bits of a limb.
const highestTwoBits = ^(MaxLimb >> 2)

func checkDivisor(d Limb) {
	if d == 0 {
		panic("division by zero")
	}
}

// ModLimb returns xs mod d using the default thresholds. It panics if d is
// zero.
func ModLimb(xs []Limb, d Limb) Limb {
	return ModLimbWith(xs, d, DefaultModThresholds())
}

// ModLimbWith returns xs mod d, choosing a strategy from the divisor shape and
// the length of xs according to th. It panics if d is zero.
func ModLimbWith(xs []Limb, d Limb, th ModThresholds) Limb {
	checkDivisor(d)
	switch len(xs) {
	case 0:
		return 0
	case 1:
		return xs[0] % d
	}
	n := len(xs)
	if d&HighBit != 0 {
		if n < th.Mod1NToMod11 {
			return modLimbSmallNormalized(xs, d, th.Norm)
		}
		return modLimbAnyLeadingZeros(xs, d, th.Mod11PMethod)
	}
	switch {
	case n < th.Mod1UToMod11:
		return modLimbSmallUnnormalized(xs, d, th.Unnorm)
	case n < th.Mod11ToMod12:
		return modLimbAnyLeadingZeros(xs, d, th.Mod11PMethod)
	case n < th.Mod12ToMod14 || d&highestTwoBits != 0:
		return ModLimbAtLeast1LeadingZero(xs, d)
	default:
		return ModLimbAtLeast2LeadingZeros(xs, d)
	}
}

func modLimbAnyLeadingZeros(xs []Limb, d Limb, method1 bool) Limb {
	if method1 {
		return ModLimbAnyLeadingZeros1(xs, d)
	}
	return ModLimbAnyLeadingZeros2(xs, d)
}

// ModLimbNaive returns xs mod d by repeated two-limb long division. It is the
// reference every other strategy is checked against.
func ModLimbNaive(xs []Limb, d Limb) Limb {
	checkDivisor(d)
	var r Limb
	for i := len(xs) - 1; i >= 0; i-- {
		r = remWW(r, xs[i], d)
	}
	return r
}

// modLimbSmallSmall continues a long division with remainder r using the
// hardware two-limb division.
func modLimbSmallSmall(xs []Limb, d, r Limb) Limb {
	for i := len(xs) - 1; i >= 0; i-- {
		_, r = divWW(r, xs[i], d)
	}
	return r
}

// ModLimbSmallNormalized reduces xs by a divisor with its high bit set, one
// limb at a time. len(xs) must be at least 1.
func ModLimbSmallNormalized(xs []Limb, d Limb) Limb {
	return modLimbSmallNormalized(xs, d, DefaultModThresholds().Norm)
}

func modLimbSmallNormalized(xs []Limb, d Limb, norm int) Limb {
	if d&HighBit == 0 {
		panic("limbs: divisor is not normalized")
	}
	n := len(xs) - 1
	r := xs[n]
	if r >= d {
		r -= d
	}
	if n == 0 {
		return r
	}
	xs = xs[:n]
	if n < norm {
		return modLimbSmallSmall(xs, d, r)
	}
	inv := InvertLimb(d)
	for i := n - 1; i >= 0; i-- {
		r = ModByPreinversion(r, xs[i], d, inv)
	}
	return r
}

// ModLimbSmallUnnormalized reduces xs by a nonzero divisor with its high bit
// clear, one limb at a time. len(xs) must be at least 1.
func ModLimbSmallUnnormalized(xs []Limb, d Limb) Limb {
	return modLimbSmallUnnormalized(xs, d, DefaultModThresholds().Unnorm)
}

func modLimbSmallUnnormalized(xs []Limb, d Limb, unnorm int) Limb {
	checkDivisor(d)
	if d&HighBit != 0 {
		panic("limbs: divisor is normalized")
	}
	n := len(xs)
	r := xs[n-1]
	if r < d {
		n--
		if n == 0 {
			return r
		}
	} else {
		r = 0
	}
	xs = xs[:n]
	if n < unnorm {
		return modLimbSmallSmall(xs, d, r)
	}
	shift := leadingZeros(d)
	d <<= shift
	inv := InvertLimb(d)
	prev := xs[n-1]
	r = r<<shift | prev>>(Width-shift)
	for i := n - 2; i >= 0; i-- {
		r = ModByPreinversion(r, prev<<shift|xs[i]>>(Width-shift), d, inv)
		prev = xs[i]
	}
	return ModByPreinversion(r, prev<<shift, d, inv) >> shift
}

// baseModDivisor returns B mod d' (possibly unreduced, at most d') for the
// normalized divisor d' = d << shift, scaled by 2^shift.
func baseModDivisor(d, inv Limb, shift uint) Limb {
	return -d * (inv>>(Width-shift) | Limb(1)<<shift)
}

// ModLimbAnyLeadingZeros1 reduces xs (len >= 2) two limbs at a time using
// precomputed B mod d and B² mod d.
func ModLimbAnyLeadingZeros1(xs []Limb, d Limb) Limb {
	n := len(xs)
	if n < 2 {
		panic("limbs: need at least two limbs")
	}
	checkDivisor(d)
	shift := leadingZeros(d)
	d <<= shift
	inv := InvertLimb(d)
	b1 := -d
	if shift != 0 {
		b1 = baseModDivisor(d, inv, shift)
	}
	b2 := ModByPreinversion(b1, 0, d, inv) >> shift
	b1 >>= shift
	r := mulD(xs[n-1], b1).wrappingAdd(fromLimb(xs[n-2]))
	for i := n - 3; i >= 0; i-- {
		r = mulD(r.hi, b2).wrappingAdd(mulD(r.lo, b1)).wrappingAdd(fromLimb(xs[i]))
	}
	rh, rl := r.hi, r.lo
	if shift != 0 {
		rh = rh<<shift | rl>>(Width-shift)
	}
	if rh >= d {
		rh -= d
	}
	return ModByPreinversion(rh, rl<<shift, d, inv) >> shift
}

// ModLimbAnyLeadingZeros2 reduces xs (len >= 2) one limb at a time, folding
// the top limb with B² mod d and tracking the overflow explicitly.
func ModLimbAnyLeadingZeros2(xs []Limb, d Limb) Limb {
	n := len(xs)
	if n < 2 {
		panic("limbs: need at least two limbs")
	}
	checkDivisor(d)
	shift := leadingZeros(d)
	d <<= shift
	inv := InvertLimb(d)
	var b1 Limb
	if shift != 0 {
		b1 = baseModDivisor(d, inv, shift) >> shift
	}
	b2 := -d * inv
	rl, rh := xs[n-2], xs[n-1]
	if n > 2 {
		r, carry := dlimb{rl, xs[n-3]}.add(mulD(rh, b2))
		rh, rl = r.hi, r.lo
		for i := n - 4; i >= 0; i-- {
			if carry {
				var c Limb
				rl, c = addWW(rl, b2, 0)
				if c != 0 {
					rl -= d
				}
			}
			r, carry = dlimb{rl, xs[i]}.add(mulD(rh, b2))
			rh, rl = r.hi, r.lo
		}
		if carry {
			rh -= d
		}
	}
	if shift != 0 {
		p := mulD(rh, b1)
		r := dlimb{p.hi, rl}.wrappingAdd(fromLimb(p.lo)).shl(shift)
		rh, rl = r.hi, r.lo
	} else if rh >= d {
		rh -= d
	}
	return ModByPreinversion(rh, rl, d, inv) >> shift
}

// powersModDivisor returns B^k mod d' for k = 1..count, each shifted back
// down by shift, where d' = d << shift is normalized.
func powersModDivisor(d, inv Limb, shift uint, count int) []Limb {
	pows := make([]Limb, count)
	p := baseModDivisor(d, inv, shift)
	for k := range pows {
		if k > 0 {
			p = ModByPreinversion(p, 0, d, inv)
		}
		pows[k] = p >> shift
	}
	return pows
}

// ModLimbAtLeast1LeadingZero reduces xs two limbs per step. d must be nonzero
// with its high bit clear.
func ModLimbAtLeast1LeadingZero(xs []Limb, d Limb) Limb {
	n := len(xs)
	if n == 0 {
		return 0
	}
	checkDivisor(d)
	shift := leadingZeros(d)
	if shift == 0 {
		panic("limbs: divisor has no leading zero")
	}
	d <<= shift
	inv := InvertLimb(d)
	pows := powersModDivisor(d, inv, shift, 3)
	b1, b2, b3 := pows[0], pows[1], pows[2]
	var r dlimb
	if n%2 == 1 {
		n--
		if n == 0 {
			x := xs[0]
			return ModByPreinversion(x>>(Width-shift), x<<shift, d, inv) >> shift
		}
		r = mulD(xs[n], b2).wrappingAdd(mulD(xs[n-1], b1)).wrappingAdd(fromLimb(xs[n-2]))
	} else {
		r = dlimb{xs[n-1], xs[n-2]}
	}
	for i := n - 4; i >= 0; i -= 2 {
		r = mulD(r.hi, b3).
			wrappingAdd(mulD(r.lo, b2)).
			wrappingAdd(mulD(xs[i+1], b1)).
			wrappingAdd(fromLimb(xs[i]))
	}
	r = mulD(r.hi, b1).wrappingAdd(fromLimb(r.lo))
	return ModByPreinversion(r.hi<<shift|r.lo>>(Width-shift), r.lo<<shift, d, inv) >> shift
}

// ModLimbAtLeast2LeadingZeros reduces xs four limbs per step. d must be
// nonzero with its two high bits clear.
func ModLimbAtLeast2LeadingZeros(xs []Limb, d Limb) Limb {
	n := len(xs)
	if n == 0 {
		return 0
	}
	checkDivisor(d)
	shift := leadingZeros(d)
	if shift < 2 {
		panic("limbs: divisor has fewer than two leading zeros")
	}
	d <<= shift
	inv := InvertLimb(d)
	pows := powersModDivisor(d, inv, shift, 5)
	b1, b2, b3, b4, b5 := pows[0], pows[1], pows[2], pows[3], pows[4]
	var r dlimb
	switch n % 4 {
	case 0:
		n -= 4
		r = mulD(xs[n+3], b3).
			wrappingAdd(mulD(xs[n+2], b2)).
			wrappingAdd(mulD(xs[n+1], b1)).
			wrappingAdd(fromLimb(xs[n]))
	case 1:
		n--
		r = fromLimb(xs[n])
	case 2:
		n -= 2
		r = dlimb{xs[n+1], xs[n]}
	case 3:
		n -= 3
		r = mulD(xs[n+2], b2).
			wrappingAdd(mulD(xs[n+1], b1)).
			wrappingAdd(fromLimb(xs[n]))
	}
	for i := n - 4; i >= 0; i -= 4 {
		r = mulD(r.hi, b5).
			wrappingAdd(mulD(r.lo, b4)).
			wrappingAdd(mulD(xs[i+3], b3)).
			wrappingAdd(mulD(xs[i+2], b2)).
			wrappingAdd(mulD(xs[i+1], b1)).
			wrappingAdd(fromLimb(xs[i]))
	}
	r = mulD(r.hi, b1).wrappingAdd(fromLimb(r.lo))
	return ModByPreinversion(r.hi<<shift|r.lo>>(Width-shift), r.lo<<shift, d, inv) >> shift
}

// ModLimbAlt1 reduces xs (len >= 2) with a single normalized pass that folds
// two limbs at a time through 2^Width mod d.
func ModLimbAlt1(xs []Limb, d Limb) Limb {
	n := len(xs)
	if n < 2 {
		panic("limbs: need at least two limbs")
	}
	checkDivisor(d)
	top := xs[n-1]
	shift := leadingZeros(d)
	if shift == 0 {
		if top >= d {
			top -= d
		}
		return modLimbNormalized(xs[:n-1], top, d, InvertLimb(d))
	}
	d <<= shift
	co := Width - shift
	inv := InvertLimb(d)
	r := ModByPreinversion(top>>co, top<<shift|xs[n-2]>>co, d, inv)
	return modLimbNormalizedShl(xs[:n-1], r, d, inv, shift) >> shift
}

func modLimbNormalized(xs []Limb, high, d, inv Limb) Limb {
	n := len(xs)
	if n == 1 {
		return ModByPreinversion(high, xs[0], d, inv)
	}
	p := -d * inv
	sum, carry := dlimb{xs[n-1], xs[n-2]}.add(mulD(p, high))
	for i := n - 3; i >= 0; i-- {
		sum, carry = foldStep(sum, carry, xs[i], p, d)
	}
	return finishFold(sum, carry, d, inv)
}

func modLimbNormalizedShl(xs []Limb, high, d, inv Limb, shift uint) Limb {
	n := len(xs)
	if n == 1 {
		return ModByPreinversion(high, xs[0]<<shift, d, inv)
	}
	p := -d * inv
	co := Width - shift
	second := xs[n-2]
	top := xs[n-1]<<shift | second>>co
	second <<= shift
	if n > 2 {
		second |= xs[n-3] >> co
	}
	sum, carry := dlimb{top, second}.add(mulD(p, high))
	for j := n - 3; j >= 0; j-- {
		x := xs[j] << shift
		if j != 0 {
			x |= xs[j-1] >> co
		}
		sum, carry = foldStep(sum, carry, x, p, d)
	}
	return finishFold(sum, carry, d, inv)
}

// foldStep folds the next limb x into the running two-limb sum using
// p = 2^Width mod d.
func foldStep(sum dlimb, carry bool, x, p, d Limb) (dlimb, bool) {
	lo := sum.lo
	if carry {
		var c Limb
		lo, c = addWW(lo, p, 0)
		if c != 0 {
			lo -= d
		}
	}
	return dlimb{lo, x}.add(mulD(sum.hi, p))
}

func finishFold(sum dlimb, carry bool, d, inv Limb) Limb {
	hi := sum.hi
	if carry {
		hi -= d
	}
	if hi >= d {
		hi -= d
	}
	return ModByPreinversion(hi, sum.lo, d, inv)
}

// ModLimbAlt3 reduces xs (len >= 2) one limb at a time by preinversion,
// shifting an unnormalized divisor up on the fly.
func ModLimbAlt3(xs []Limb, d Limb) Limb {
	n := len(xs)
	if n < 2 {
		panic("limbs: need at least two limbs")
	}
	checkDivisor(d)
	shift := leadingZeros(d)
	if shift == 0 {
		r := xs[n-1]
		if r >= d {
			r -= d
		}
		inv := InvertLimb(d)
		for i := n - 2; i >= 0; i-- {
			r = ModByPreinversion(r, xs[i], d, inv)
		}
		return r
	}
	var r Limb
	if xs[n-1] < d {
		r = xs[n-1]
		xs = xs[:n-1]
	}
	d <<= shift
	r <<= shift
	inv := InvertLimb(d)
	co := Width - shift
	m := len(xs)
	prev := xs[m-1]
	r |= prev >> co
	for i := m - 2; i >= 0; i-- {
		r = ModByPreinversion(r, prev<<shift|xs[i]>>co, d, inv)
		prev = xs[i]
	}
	return ModByPreinversion(r, prev<<shift, d, inv) >> shift
}
