package limbs

import (
	"math/big"
	"testing"

	"github.com/agbru/limbkit/internal/rounding"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func limbsOf(ws []uint64) []Limb {
	xs := make([]Limb, len(ws))
	for i, w := range ws {
		xs[i] = Limb(w)
	}
	return Trim(xs)
}

func genLimbs() gopter.Gen {
	return gen.SliceOf(gen.OneGenOf(
		gen.UInt64(),
		gen.Const(uint64(0)),
		gen.Const(^uint64(0)),
	))
}

func TestKernelProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("Exact shift succeeds iff divisible and loses nothing", prop.ForAll(
		func(ws []uint64, bits uint64) bool {
			xs := limbsOf(ws)
			got, ord, ok := ShrRound(xs, bits, rounding.Exact)
			if ok != DivisibleByPowerOfTwo(xs, bits) {
				return false
			}
			if !ok {
				return true
			}
			return ord == rounding.Equal && Cmp(Shl(got, bits), xs) == 0
		},
		genLimbs(), gen.UInt64Range(0, 400),
	))

	properties.Property("AddMul then SubMul round-trips", prop.ForAll(
		func(a, b, c []uint64) bool {
			xs, ys, zs := limbsOf(a), limbsOf(b), limbsOf(c)
			sum := AddMul(xs, ys, zs)
			back, ok := SubMul(sum, ys, zs)
			return ok && Cmp(back, xs) == 0
		},
		genLimbs(), genLimbs(), genLimbs(),
	))

	properties.Property("SubMul fails exactly when a < b·c", prop.ForAll(
		func(a, b, c []uint64) bool {
			xs, ys, zs := limbsOf(a), limbsOf(b), limbsOf(c)
			_, ok := SubMul(xs, ys, zs)
			return ok == (Cmp(xs, Mul(ys, zs)) >= 0)
		},
		genLimbs(), genLimbs(), genLimbs(),
	))

	properties.Property("mod_limb strategies agree with long division", prop.ForAll(
		func(ws []uint64, d uint64) bool {
			xs := limbsOf(ws)
			dl := Limb(d)
			if dl == 0 {
				dl = 1
			}
			want := ModLimbNaive(xs, dl)
			for _, s := range allModStrategies() {
				if s.accepts(len(xs), dl) && s.fn(xs, dl) != want {
					return false
				}
			}
			return true
		},
		genLimbs(), gen.UInt64(),
	))

	properties.Property("EqMod agrees with (x - y) mod m == 0", prop.ForAll(
		func(a, b, m []uint64) bool {
			xs, ys, ms := limbsOf(a), limbsOf(b), limbsOf(m)
			return EqMod(xs, ys, ms) == eqModBig(xs, ys, ms)
		},
		genLimbs(), genLimbs(), gen.SliceOfN(2, gen.UInt64()),
	))

	properties.Property("Mul agrees with math/big", prop.ForAll(
		func(a, b []uint64) bool {
			xs, ys := limbsOf(a), limbsOf(b)
			return toBig(Mul(xs, ys)).Cmp(new(big.Int).Mul(toBig(xs), toBig(ys))) == 0
		},
		genLimbs(), genLimbs(),
	))

	properties.TestingRun(t)
}
