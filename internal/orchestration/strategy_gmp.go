//go:build gmp

package orchestration

import (
	"math/big"

	"github.com/ncw/gmp"

	"github.com/agbru/limbkit/internal/limbs"
)

func init() {
	extraStrategies = append(extraStrategies, gmpStrategy)
}

// gmpStrategy reduces through libgmp. It needs cgo and the gmp build tag.
func gmpStrategy() Strategy {
	return NewStrategy("gmp", nil, func(xs []limbs.Limb, d limbs.Limb) limbs.Limb {
		x := new(gmp.Int).SetBytes(new(big.Int).SetBits(xs).Bytes())
		r := new(gmp.Int).Mod(x, new(gmp.Int).SetUint64(uint64(d)))
		return limbs.Limb(r.Uint64())
	})
}
