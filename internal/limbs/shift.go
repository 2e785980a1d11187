package limbs

// Shr returns xs >> bits as a new vector.
func Shr(xs []Limb, bits uint64) []Limb {
	del := bits >> LogWidth
	if del >= uint64(len(xs)) {
		return nil
	}
	src := xs[del:]
	out := make([]Limb, len(src), len(src)+1)
	ShrVU(out, src, uint(bits&WidthMask))
	return Trim(out)
}

// ShrInPlace shifts xs right by bits and returns the trimmed result, which
// shares storage with xs.
func ShrInPlace(xs []Limb, bits uint64) []Limb {
	del := bits >> LogWidth
	if del >= uint64(len(xs)) {
		return xs[:0]
	}
	n := copy(xs, xs[del:])
	xs = xs[:n]
	ShrVU(xs, xs, uint(bits&WidthMask))
	return Trim(xs)
}

// Shl returns xs << bits as a new vector.
func Shl(xs []Limb, bits uint64) []Limb {
	xs = Trim(xs)
	if len(xs) == 0 {
		return nil
	}
	whole := LimbIndex(bits)
	out := make([]Limb, whole+len(xs)+1)
	out[whole+len(xs)] = ShlVU(out[whole:whole+len(xs)], xs, uint(bits&WidthMask))
	return Trim(out)
}

// ShlInPlace shifts xs left by bits, growing it as needed, and returns the
// trimmed result.
func ShlInPlace(xs []Limb, bits uint64) []Limb {
	xs = Trim(xs)
	if len(xs) == 0 {
		return xs
	}
	whole := LimbIndex(bits)
	n := len(xs)
	xs = append(xs, make([]Limb, whole+1)...)
	copy(xs[whole:], xs[:n])
	clear(xs[:whole])
	body := xs[whole : whole+n]
	xs[whole+n] = ShlVU(body, body, uint(bits&WidthMask))
	return Trim(xs)
}
