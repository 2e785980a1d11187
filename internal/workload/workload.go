// Package workload builds the seeded random inputs the limbcheck tool feeds to
// every strategy. The same seed always yields the same cases, so a mismatch
// reported on one machine can be replayed on another.
package workload

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/agbru/limbkit/internal/limbs"
	"github.com/agbru/limbkit/internal/rounding"
)

// DivisorClass selects the leading-zero shape of generated divisors.
type DivisorClass string

const (
	Normalized   DivisorClass = "normalized"
	Unnormalized DivisorClass = "unnormalized"
	TwoZeros     DivisorClass = "two-zero"
	Any          DivisorClass = "any"
)

// Classes lists the accepted divisor classes.
var Classes = []DivisorClass{Normalized, Unnormalized, TwoZeros, Any}

// ParseDivisorClass validates a class name.
func ParseDivisorClass(s string) (DivisorClass, error) {
	for _, c := range Classes {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown divisor class %q", s)
}

// Case is one input shared by all strategies.
type Case struct {
	// Xs is the dividend and the shifted value. Its top limb is nonzero.
	Xs []limbs.Limb
	// D is a nonzero single-limb divisor of the requested class.
	D limbs.Limb
	// Ys and Zs are the multiplicands of the fused checks.
	Ys, Zs []limbs.Limb
	// Bits is the right-shift amount of the rounding checks.
	Bits uint64
	// Mode is the rounding mode paired with Bits.
	Mode rounding.Mode
}

// Options configures Generate.
type Options struct {
	Seed    uint64
	Lengths []int
	Class   DivisorClass
	// Rounds is the number of cases per length.
	Rounds int
}

// NewRand returns the PCG source used for every workload.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate builds len(Lengths)*Rounds cases, grouped by length in the order
// given.
func Generate(opts Options) []Case {
	r := NewRand(opts.Seed)
	cases := make([]Case, 0, len(opts.Lengths)*opts.Rounds)
	for _, n := range opts.Lengths {
		for range opts.Rounds {
			cases = append(cases, newCase(r, n, opts.Class))
		}
	}
	return cases
}

func newCase(r *rand.Rand, n int, class DivisorClass) Case {
	xs := Limbs(r, n)
	ys := Limbs(r, 1+r.IntN(n))
	var zs []limbs.Limb
	if r.IntN(3) == 0 {
		zs = []limbs.Limb{Divisor(r, Any)}
	} else {
		zs = Limbs(r, 1+r.IntN(n-len(ys)+1))
	}
	return Case{
		Xs:   xs,
		D:    Divisor(r, class),
		Ys:   ys,
		Zs:   zs,
		Bits: uint64(r.IntN(n*limbs.Width + limbs.Width)),
		Mode: rounding.Modes[r.IntN(len(rounding.Modes))],
	}
}

// Limbs returns n random limbs with a nonzero top limb. One vector in four is
// built from runs of all-zero and all-one limbs.
func Limbs(r *rand.Rand, n int) []limbs.Limb {
	if n <= 0 {
		return nil
	}
	xs := make([]limbs.Limb, n)
	runs := r.IntN(4) == 0
	for i := range xs {
		switch {
		case !runs:
			xs[i] = limbs.Limb(r.Uint())
		case r.IntN(2) == 0:
			xs[i] = limbs.MaxLimb
		}
	}
	if xs[n-1] == 0 {
		xs[n-1] = 1
	}
	return xs
}

// Divisor returns a nonzero divisor of the given class.
func Divisor(r *rand.Rand, class DivisorClass) limbs.Limb {
	d := limbs.Limb(r.Uint())
	switch class {
	case Normalized:
		return d | limbs.HighBit
	case Unnormalized:
		return (d | limbs.HighBit>>1) &^ limbs.HighBit
	case TwoZeros:
		return (d | 1) &^ (limbs.HighBit | limbs.HighBit>>1)
	default:
		switch r.IntN(4) {
		case 0:
			return d | limbs.HighBit
		case 1:
			return limbs.Limb(r.IntN(1000) + 1)
		default:
			return d | 1
		}
	}
}

// Clone deep-copies c so a strategy can work in place.
func (c Case) Clone() Case {
	c.Xs = slices.Clone(c.Xs)
	c.Ys = slices.Clone(c.Ys)
	c.Zs = slices.Clone(c.Zs)
	return c
}
