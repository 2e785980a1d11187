package limbs

import (
	"math/big"
	"testing"
)

func eqModBig(xs, ys, ms []Limb) bool {
	m := toBig(ms)
	d := new(big.Int).Sub(toBig(xs), toBig(ys))
	if m.Sign() == 0 {
		return d.Sign() == 0
	}
	return d.Mod(d, m).Sign() == 0
}

func TestEqModMatchesBig(t *testing.T) {
	t.Parallel()

	r := newRand(50)
	for trial := 0; trial < 3000; trial++ {
		nm := r.IntN(5)
		ms := randLimbs(r, nm)
		if nm > 0 && trial%4 == 0 {
			// Force a power-of-two factor that crosses a limb boundary.
			ms = Shl(ms, uint64(r.IntN(2*Width)))
		}
		xs := randLimbs(r, r.IntN(7))
		var ys []Limb
		switch trial % 3 {
		case 0:
			ys = randLimbs(r, r.IntN(7))
		case 1:
			// y = x + k·m keeps the pair congruent.
			ys = AddMul(xs, ms, randLimbs(r, r.IntN(3)))
		default:
			// Congruent modulo the odd part only.
			odd := Shr(ms, TrailingZeros(ms))
			ys = AddMul(xs, odd, []Limb{Limb(r.Uint()) | 1})
		}
		want := eqModBig(xs, ys, ms)
		if got := EqMod(xs, ys, ms); got != want {
			t.Fatalf("EqMod(%v, %v, %v) = %v, want %v", toBig(xs), toBig(ys), toBig(ms), got, want)
		}
		if got := EqMod(ys, xs, ms); got != want {
			t.Fatalf("EqMod is not symmetric for (%v, %v, %v)", toBig(xs), toBig(ys), toBig(ms))
		}
	}
}

func TestEqModKnownValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		x, y, m []Limb
		want    bool
	}{
		{nil, nil, nil, true},
		{[]Limb{5}, []Limb{5}, nil, true},
		{[]Limb{5}, []Limb{6}, nil, false},
		{[]Limb{13}, []Limb{21}, []Limb{8}, true},
		{[]Limb{13}, []Limb{21}, []Limb{16}, false},
		{[]Limb{1, 1}, []Limb{1}, []Limb{0, 1}, true},
		{[]Limb{1, 1}, []Limb{2}, []Limb{0, 1}, false},
		{[]Limb{0, 0, 1}, nil, []Limb{0, 1}, true},
		{[]Limb{7}, []Limb{7, 3}, []Limb{3}, true},
	}
	for _, tt := range tests {
		if got := EqMod(tt.x, tt.y, tt.m); got != tt.want {
			t.Errorf("EqMod(%v, %v, %v) = %v, want %v", toBig(tt.x), toBig(tt.y), toBig(tt.m), got, tt.want)
		}
	}
}

func TestDivisibility(t *testing.T) {
	t.Parallel()

	r := newRand(51)
	for trial := 0; trial < 2000; trial++ {
		ds := randLimbs(r, 1+r.IntN(4))
		var xs []Limb
		if trial%2 == 0 {
			xs = Mul(ds, randLimbs(r, r.IntN(5)))
		} else {
			xs = randLimbs(r, r.IntN(8))
		}
		x, d := toBig(xs), toBig(ds)
		want := new(big.Int).Mod(x, d).Sign() == 0
		if got := DivisibleBy(xs, ds); got != want {
			t.Fatalf("DivisibleBy(%v, %v) = %v, want %v", x, d, got, want)
		}
		if len(ds) == 1 {
			if got := DivisibleByLimb(xs, ds[0]); got != want {
				t.Fatalf("DivisibleByLimb(%v, %v) = %v, want %v", x, d, got, want)
			}
		}
		if ds[0]&1 == 1 && len(ds) > 1 {
			if got := DivisibleByOdd(xs, ds); got != want {
				t.Fatalf("DivisibleByOdd(%v, %v) = %v, want %v", x, d, got, want)
			}
		}
	}

	if !DivisibleBy(nil, nil) || DivisibleBy([]Limb{1}, nil) {
		t.Error("divisibility by zero is wrong")
	}
	if !DivisibleByLimb(nil, 0) || DivisibleByLimb([]Limb{4}, 0) {
		t.Error("limb divisibility by zero is wrong")
	}
}

func TestModExactOdd(t *testing.T) {
	t.Parallel()

	r := newRand(52)
	for trial := 0; trial < 1000; trial++ {
		xs := randLimbs(r, 1+r.IntN(6))
		d := Limb(r.Uint()) | 1
		if trial%2 == 0 {
			d = Limb(r.IntN(1000)) | 1
		}
		c := Limb(r.Uint())
		got := ModExactOdd(xs, d, c)
		diff := new(big.Int).Sub(toBig(xs), toBig([]Limb{c}))
		divisible := new(big.Int).Mod(diff, toBig([]Limb{d})).Sign() == 0
		if (got == 0 || got == d) != divisible {
			t.Fatalf("ModExactOdd(%v, %#x, %#x) = %#x, divisible = %v", toBig(xs), d, c, got, divisible)
		}
		if got > d {
			t.Fatalf("ModExactOdd result %#x exceeds divisor %#x", got, d)
		}
	}
}

func TestEqLimbModLimb(t *testing.T) {
	t.Parallel()

	r := newRand(53)
	for trial := 0; trial < 1000; trial++ {
		xs := randLimbs(r, r.IntN(5))
		y := Limb(r.Uint())
		m := Limb(r.Uint())
		if trial%3 == 0 {
			m = Limb(r.IntN(64) + 1)
		}
		if m == 0 {
			m = 1
		}
		if trial%2 == 0 {
			// Make x ≡ y.
			xs = AddMul([]Limb{y}, []Limb{m}, randLimbs(r, 1+r.IntN(3)))
		}
		want := eqModBig(xs, []Limb{y}, []Limb{m})
		if got := EqLimbModLimb(xs, y, m); got != want {
			t.Fatalf("EqLimbModLimb(%v, %#x, %#x) = %v, want %v", toBig(xs), y, m, got, want)
		}
	}
}

func TestEqModPowerOfTwo(t *testing.T) {
	t.Parallel()

	r := newRand(54)
	for trial := 0; trial < 500; trial++ {
		xs, ys := randLimbs(r, r.IntN(4)), randLimbs(r, r.IntN(4))
		if trial%2 == 0 && len(xs) > 0 {
			ys = append([]Limb{xs[0]}, ys...)
		}
		pow := uint64(r.IntN(5 * Width))
		mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(pow)), big.NewInt(1))
		x := new(big.Int).And(toBig(xs), mask)
		y := new(big.Int).And(toBig(ys), mask)
		if got, want := EqModPowerOfTwo(xs, ys, pow), x.Cmp(y) == 0; got != want {
			t.Fatalf("EqModPowerOfTwo(%v, %v, %d) = %v, want %v", toBig(xs), toBig(ys), pow, got, want)
		}
	}
}
