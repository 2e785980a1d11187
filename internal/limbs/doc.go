// Package limbs implements the arithmetic kernel of limbkit over raw limb
// slices.
//
// A limb vector stores a natural number in base 2^Width, least significant limb
// first. Functions in this package do not allocate unless their name or
// documentation says so, and they never retain their arguments. Vectors
// returned by the allocating forms carry no leading zero limbs.
//
// The vector primitives (AddVV, SubVV, AddVW, SubVW, ShlVU, MulAddVWW,
// AddMulVVW) are the math/big assembly kernels reached through go:linkname;
// the pure Go versions in the tests serve as their oracle.
package limbs
