//go:build gmp

// These tests compare the kernel with GMP and need libgmp:
//
//	go test -tags=gmp ./internal/limbs/

package limbs

import (
	"testing"

	"github.com/ncw/gmp"
)

func toGMP(xs []Limb) *gmp.Int {
	return new(gmp.Int).SetBytes(toBig(xs).Bytes())
}

func TestModLimbMatchesGMP(t *testing.T) {
	t.Parallel()

	r := newRand(60)
	for n := 1; n <= 64; n++ {
		xs := randLimbs(r, n)
		for class, d := range divisorClasses(r) {
			want := new(gmp.Int).Mod(toGMP(xs), toGMP([]Limb{d}))
			if got := toGMP([]Limb{ModLimb(xs, d)}); got.Cmp(want) != 0 {
				t.Fatalf("ModLimb(%d limbs, %s %#x) = %s, GMP says %s", n, class, d, got, want)
			}
		}
	}
}

func TestFusedMultiplyMatchesGMP(t *testing.T) {
	t.Parallel()

	r := newRand(61)
	for trial := 0; trial < 500; trial++ {
		xs, ys, zs := randLimbs(r, r.IntN(9)), randLimbs(r, r.IntN(6)), randLimbs(r, r.IntN(6))
		p := new(gmp.Int).Mul(toGMP(ys), toGMP(zs))
		sum := new(gmp.Int).Add(toGMP(xs), p)
		if got := toGMP(AddMul(xs, ys, zs)); got.Cmp(sum) != 0 {
			t.Fatalf("AddMul = %s, GMP says %s", got, sum)
		}
		diff := new(gmp.Int).Sub(toGMP(xs), p)
		got, ok := SubMul(xs, ys, zs)
		if ok != (diff.Sign() >= 0) {
			t.Fatalf("SubMul ok = %v, GMP difference %s", ok, diff)
		}
		if ok && toGMP(got).Cmp(diff) != 0 {
			t.Fatalf("SubMul = %s, GMP says %s", toGMP(got), diff)
		}
	}
}

func TestEqModMatchesGMP(t *testing.T) {
	t.Parallel()

	r := newRand(62)
	for trial := 0; trial < 1000; trial++ {
		xs, ys, ms := randLimbs(r, r.IntN(6)), randLimbs(r, r.IntN(6)), randLimbs(r, 1+r.IntN(3))
		if trial%2 == 0 {
			ys = AddMul(xs, ms, []Limb{Limb(r.Uint())})
		}
		d := new(gmp.Int).Sub(toGMP(xs), toGMP(ys))
		want := d.Mod(d, toGMP(ms)).Sign() == 0
		if got := EqMod(xs, ys, ms); got != want {
			t.Fatalf("EqMod(%s, %s, %s) = %v, GMP says %v", toGMP(xs), toGMP(ys), toGMP(ms), got, want)
		}
	}
}
