package integer

// AddMul returns x + y·z.
func (x *Integer) AddMul(y, z *Integer) *Integer {
	r := x.Clone()
	r.addMulAssign(y, z, y.neg != z.neg)
	return r
}

// AddMulAssign sets x to x + y·z. y and z may alias x.
func (x *Integer) AddMulAssign(y, z *Integer) {
	x.addMulAssign(y, z, y.neg != z.neg)
}

// SubMul returns x - y·z.
func (x *Integer) SubMul(y, z *Integer) *Integer {
	r := x.Clone()
	r.addMulAssign(y, z, y.neg == z.neg)
	return r
}

// SubMulAssign sets x to x - y·z. y and z may alias x.
func (x *Integer) SubMulAssign(y, z *Integer) {
	x.addMulAssign(y, z, y.neg == z.neg)
}

// addMulAssign adds |y|·|z| carrying the sign pneg to x.
func (x *Integer) addMulAssign(y, z *Integer, pneg bool) {
	if y.IsZero() || z.IsZero() {
		return
	}
	if x.IsZero() || x.neg == pneg {
		x.abs.AddMulAssign(&y.abs, &z.abs)
		x.neg = pneg
		return
	}
	// Opposite signs: the magnitudes subtract.
	if x.abs.CheckedSubMulAssign(&y.abs, &z.abs) {
		x.neg = x.neg && !x.abs.IsZero()
		return
	}
	p := y.abs.Mul(&z.abs)
	d := p.Sub(&x.abs)
	x.abs.Set(d)
	x.neg = pneg
}
