package natural

import (
	"math/big"
	"testing"

	"github.com/agbru/limbkit/internal/limbs"
)

func eqModBig(x, y, m *big.Int) bool {
	d := new(big.Int).Sub(x, y)
	if m.Sign() == 0 {
		return d.Sign() == 0
	}
	return d.Mod(d, m).Sign() == 0
}

func TestEqModKnownValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		x, y, m *Natural
		want    bool
	}{
		{FromLimb(0), FromLimb(0), FromLimb(0), true},
		{FromLimb(5), FromLimb(5), FromLimb(0), true},
		{FromLimb(5), FromLimb(6), FromLimb(0), false},
		{FromLimb(13), FromLimb(21), FromLimb(8), true},
		{FromLimb(13), FromLimb(21), FromLimb(6), false},
		{FromLimb(12), FromLimb(0), FromLimb(4), true},
		{FromLimbs([]Limb{0, 1}), FromLimb(0), FromLimbs([]Limb{0, 1}), true},
		{FromLimbs([]Limb{3, 1}), FromLimb(3), FromLimbs([]Limb{0, 1}), true},
		{FromLimbs([]Limb{3, 1}), FromLimb(4), FromLimbs([]Limb{0, 1}), false},
	}
	for _, tt := range tests {
		if got := tt.x.EqMod(tt.y, tt.m); got != tt.want {
			t.Errorf("EqMod(%s, %s, %s) = %v, want %v", tt.x, tt.y, tt.m, got, tt.want)
		}
	}
}

func TestEqModMatchesBig(t *testing.T) {
	t.Parallel()

	r := newRand(41)
	for i := 0; i < 2000; i++ {
		x, m := randNatural(r, 5), randNatural(r, 3)
		var y *Natural
		switch i % 3 {
		case 0:
			y = randNatural(r, 5)
		case 1:
			y = x.AddMul(m, randNatural(r, 2))
		default:
			tz, _ := m.TrailingZeros()
			y = x.AddMul(m.Shr(tz), FromLimb(Limb(r.Uint())|1))
		}
		want := eqModBig(x.ToBig(), y.ToBig(), m.ToBig())
		if got := x.EqMod(y, m); got != want {
			t.Fatalf("EqMod(%s, %s, %s) = %v, want %v", x, y, m, got, want)
		}
	}
}

func TestDivisibility(t *testing.T) {
	t.Parallel()

	r := newRand(42)
	for i := 0; i < 1000; i++ {
		x, d := randNatural(r, 5), randNatural(r, 3)
		if i%2 == 0 {
			x = x.Mul(d)
		}
		bx, bd := x.ToBig(), d.ToBig()
		want := bx.Sign() == 0 || (bd.Sign() != 0 && new(big.Int).Mod(bx, bd).Sign() == 0)
		if got := x.DivisibleBy(d); got != want {
			t.Fatalf("DivisibleBy(%s, %s) = %v, want %v", x, d, got, want)
		}

		l := Limb(r.Uint()) >> r.IntN(limbs.Width)
		bl := new(big.Int).SetUint64(uint64(l))
		want = bx.Sign() == 0 || (l != 0 && new(big.Int).Mod(bx, bl).Sign() == 0)
		if got := x.DivisibleByLimb(l); got != want {
			t.Fatalf("DivisibleByLimb(%s, %d) = %v, want %v", x, l, got, want)
		}

		pow := uint64(r.IntN(4 * limbs.Width))
		want = bx.Sign() == 0 || uint64(bx.TrailingZeroBits()) >= pow
		if got := x.DivisibleByPowerOfTwo(pow); got != want {
			t.Fatalf("DivisibleByPowerOfTwo(%s, %d) = %v, want %v", x, pow, got, want)
		}

		y := randNatural(r, 5)
		mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(pow)), big.NewInt(1))
		want = new(big.Int).And(bx, mask).Cmp(new(big.Int).And(y.ToBig(), mask)) == 0
		if got := x.EqModPowerOfTwo(y, pow); got != want {
			t.Fatalf("EqModPowerOfTwo(%s, %s, %d) = %v, want %v", x, y, pow, got, want)
		}
	}
}
