// Package natural provides Natural, an arbitrary-precision unsigned integer
// built on the limb kernel.
//
// A Natural is either Small, holding a single limb inline, or Large, holding a
// vector of at least two limbs whose most significant limb is nonzero. Every
// operation restores that invariant before it returns, so two equal values
// always have the same representation.
//
// As with math/big, Natural values must not be copied by assignment; use
// Clone. Methods that return a *Natural allocate a fresh value and never share
// storage with their receiver or arguments. Methods with an Assign suffix
// mutate the receiver.
package natural
