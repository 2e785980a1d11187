package limbs

import (
	"math/big"
	"slices"
	"testing"
)

func addMulBig(xs, ys, zs []Limb) *big.Int {
	p := new(big.Int).Mul(toBig(ys), toBig(zs))
	return p.Add(p, toBig(xs))
}

func TestAddMulLimbVariantsMatchBig(t *testing.T) {
	t.Parallel()

	r := newRand(20)
	lengths := []int{0, 1, 2, 3, 5, 8}
	for _, nx := range lengths {
		for _, ny := range lengths {
			for trial := 0; trial < 10; trial++ {
				xs, ys := randLimbs(r, nx), randLimbs(r, ny)
				z := Limb(r.Uint())
				if trial == 0 {
					z = MaxLimb
				}
				want := addMulBig(xs, ys, []Limb{z})

				check := func(name string, got []Limb) {
					t.Helper()
					if toBig(got).Cmp(want) != 0 {
						t.Fatalf("%s(%v, %v, %#x) = %v, want %v", name, toBig(xs), toBig(ys), z, toBig(got), want)
					}
				}

				check("AddMulLimb", AddMulLimb(xs, ys, z))
				check("AddMulLimbInPlaceLeft", AddMulLimbInPlaceLeft(slices.Clone(xs), ys, z))
				check("AddMulLimbInPlaceRight", AddMulLimbInPlaceRight(xs, slices.Clone(ys), z))
				if nx >= ny {
					check("AddMulLimbGreaterInPlaceLeft", AddMulLimbGreaterInPlaceLeft(slices.Clone(xs), ys, z))
				} else {
					check("AddMulLimbSmallerInPlaceLeft", AddMulLimbSmallerInPlaceLeft(slices.Clone(xs), ys, z))
				}

				left, right := slices.Clone(xs), slices.Clone(ys)
				out, inRight := AddMulLimbInPlaceEither(left, right, z)
				check("AddMulLimbInPlaceEither", out)
				if inRight != (nx < ny) {
					t.Fatalf("AddMulLimbInPlaceEither(len %d, len %d) right = %v", nx, ny, inRight)
				}
				if inRight {
					if toBig(left).Cmp(toBig(xs)) != 0 {
						t.Fatal("AddMulLimbInPlaceEither modified the left buffer when writing right")
					}
				} else if toBig(right).Cmp(toBig(ys)) != 0 {
					t.Fatal("AddMulLimbInPlaceEither modified the right buffer when writing left")
				}
			}
		}
	}
}

func TestAddMulLimbSameLength(t *testing.T) {
	t.Parallel()

	r := newRand(21)
	for _, n := range []int{1, 4, 16} {
		xs, ys := randLimbs(r, n), randLimbs(r, n)
		z := Limb(r.Uint())
		want := addMulBig(xs, ys, []Limb{z})

		left := slices.Clone(xs)
		c := AddMulLimbSameLengthInPlaceLeft(left, ys, z)
		if got := toBig(append(left, c)); got.Cmp(want) != 0 {
			t.Errorf("left: got %v, want %v", got, want)
		}

		right := slices.Clone(ys)
		c = AddMulLimbSameLengthInPlaceRight(xs, right, z)
		if got := toBig(append(right, c)); got.Cmp(want) != 0 {
			t.Errorf("right: got %v, want %v", got, want)
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("expected a panic on length mismatch")
		}
	}()
	AddMulLimbSameLengthInPlaceLeft(make([]Limb, 2), make([]Limb, 3), 1)
}

func TestAddMulMatchesBig(t *testing.T) {
	t.Parallel()

	r := newRand(22)
	lengths := []int{0, 1, 2, 3, 6, 11}
	for _, nx := range lengths {
		for _, ny := range lengths {
			for _, nz := range lengths {
				xs, ys, zs := randLimbs(r, nx), randLimbs(r, ny), randLimbs(r, nz)
				want := addMulBig(xs, ys, zs)
				if got := AddMul(xs, ys, zs); toBig(got).Cmp(want) != 0 {
					t.Fatalf("AddMul(%d, %d, %d limbs) = %v, want %v", nx, ny, nz, toBig(got), want)
				}
				if got := AddMulInPlaceLeft(slices.Clone(xs), ys, zs); toBig(got).Cmp(want) != 0 {
					t.Fatalf("AddMulInPlaceLeft(%d, %d, %d limbs) = %v, want %v", nx, ny, nz, toBig(got), want)
				}
			}
		}
	}
}

func TestAddMulZero(t *testing.T) {
	t.Parallel()

	if got := AddMul(nil, nil, []Limb{123}); len(got) != 0 {
		t.Errorf("AddMul(0, 0, 123) = %v, want 0", got)
	}
	if got := Mul([]Limb{MaxLimb}, []Limb{MaxLimb}); toBig(got).Cmp(new(big.Int).Mul(toBig([]Limb{MaxLimb}), toBig([]Limb{MaxLimb}))) != 0 {
		t.Errorf("Mul(max, max) = %v", got)
	}
}

func TestAddSub(t *testing.T) {
	t.Parallel()

	r := newRand(23)
	for trial := 0; trial < 200; trial++ {
		xs, ys := randLimbs(r, r.IntN(6)), randLimbs(r, r.IntN(6))
		x, y := toBig(xs), toBig(ys)
		if got := toBig(Add(xs, ys)); got.Cmp(new(big.Int).Add(x, y)) != 0 {
			t.Fatalf("Add(%v, %v) = %v", x, y, got)
		}
		if got := toBig(AddInPlaceLeft(slices.Clone(xs), ys)); got.Cmp(new(big.Int).Add(x, y)) != 0 {
			t.Fatalf("AddInPlaceLeft(%v, %v) = %v", x, y, got)
		}
		d, ok := Sub(xs, ys)
		if ok != (x.Cmp(y) >= 0) {
			t.Fatalf("Sub(%v, %v) ok = %v", x, y, ok)
		}
		if ok && toBig(d).Cmp(new(big.Int).Sub(x, y)) != 0 {
			t.Fatalf("Sub(%v, %v) = %v", x, y, toBig(d))
		}
		if got := toBig(AbsDiff(xs, ys)); got.Cmp(new(big.Int).Abs(new(big.Int).Sub(x, y))) != 0 {
			t.Fatalf("AbsDiff(%v, %v) = %v", x, y, got)
		}
		if Cmp(xs, ys) != x.Cmp(y) {
			t.Fatalf("Cmp(%v, %v) = %d", x, y, Cmp(xs, ys))
		}
	}
}
