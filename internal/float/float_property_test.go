package float

import (
	"math/big"
	"testing"

	"github.com/agbru/limbkit/internal/rounding"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func genFloat() gopter.Gen {
	return gopter.CombineGens(
		gen.UInt64Range(1, 1<<62),
		gen.IntRange(-300, 300),
		gen.Bool(),
	).Map(func(v []interface{}) *Float {
		b := new(big.Float).SetUint64(v[0].(uint64))
		b.SetMantExp(b, v[1].(int))
		if v[2].(bool) {
			b.Neg(b)
		}
		return FromBig(b)
	})
}

func TestFloatProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("Floor ≤ Nearest ≤ Ceiling", prop.ForAll(
		func(f *Float, p uint64) bool {
			lo, _ := FromFloatPrecRound(f, p, rounding.Floor)
			mid, _ := FromFloatPrecRound(f, p, rounding.Nearest)
			hi, _ := FromFloatPrecRound(f, p, rounding.Ceiling)
			return lo.ToBig().Cmp(mid.ToBig()) <= 0 && mid.ToBig().Cmp(hi.ToBig()) <= 0
		},
		genFloat(), gen.UInt64Range(1, 70),
	))

	properties.Property("the ordering describes the rounded value", prop.ForAll(
		func(f *Float, p uint64, i int) bool {
			rm := rounding.Modes[i]
			g, o := FromFloatPrecRound(f, p, rm)
			return g.IsValid() && g.ToBig().Cmp(f.ToBig()) == int(o)
		},
		genFloat(), gen.UInt64Range(1, 70), gen.IntRange(0, len(rounding.Modes)-2),
	))

	properties.Property("raising the precision is exact", prop.ForAll(
		func(f *Float, extra uint64) bool {
			p, _ := f.GetPrec()
			g, o := FromFloatPrecRound(f, p+extra, rounding.Exact)
			return o == rounding.Equal && g.IsValid() && g.ToBig().Cmp(f.ToBig()) == 0
		},
		genFloat(), gen.UInt64Range(0, 200),
	))

	properties.TestingRun(t)
}
