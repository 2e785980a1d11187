package integer

import (
	"testing"

	"github.com/agbru/limbkit/internal/natural"
	"github.com/agbru/limbkit/internal/rounding"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func genInteger() gopter.Gen {
	return gopter.CombineGens(gen.Bool(), gen.SliceOf(gen.UInt64())).Map(func(v []interface{}) *Integer {
		ws := v[1].([]uint64)
		xs := make([]natural.Limb, len(ws))
		for i, w := range ws {
			xs[i] = natural.Limb(w)
		}
		return FromSignAndAbs(v[0].(bool), natural.FromLimbs(xs))
	})
}

func TestIntegerProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	parameters.MaxSize = 6
	properties := gopter.NewProperties(parameters)

	properties.Property("negation mirrors Floor and Ceiling", prop.ForAll(
		func(x *Integer, bits uint64) bool {
			f, fo := x.ShrRound(bits, rounding.Floor)
			c, co := x.Neg().ShrRound(bits, rounding.Ceiling)
			return f.Cmp(c.Neg()) == 0 && fo == co.Reverse()
		},
		genInteger(), gen.UInt64Range(0, 300),
	))

	properties.Property("SubMul undoes AddMul", prop.ForAll(
		func(a, b, c *Integer) bool {
			return a.AddMul(b, c).SubMul(b, c).Cmp(a) == 0
		},
		genInteger(), genInteger(), genInteger(),
	))

	properties.Property("a + b·c ≡ a (mod b)", prop.ForAll(
		func(a, b, c *Integer) bool {
			return a.AddMul(b, c).EqMod(a, b)
		},
		genInteger(), genInteger(), genInteger(),
	))

	properties.TestingRun(t)
}
