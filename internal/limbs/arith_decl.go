// Copyright 2010 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// WARNING: This file uses //go:linkname to reach unexported vector kernels in
// math/big. They are not part of Go's public API. If the package fails to
// compile or misbehaves after a Go upgrade, check these signatures against the
// current math/big sources; the pure Go oracles in arith_ref_test.go pin the
// expected behaviour.

package limbs

import _ "unsafe" // Required for go:linkname

// addVV computes z = x + y element-wise and returns the carry.
//
//go:linkname addVV math/big.addVV
func addVV(z, x, y []Limb) (c Limb)

// subVV computes z = x - y element-wise and returns the borrow.
//
//go:linkname subVV math/big.subVV
func subVV(z, x, y []Limb) (c Limb)

// addVW computes z = x + y where y is a single limb, and returns the carry.
//
//go:linkname addVW math/big.addVW
func addVW(z, x []Limb, y Limb) (c Limb)

// subVW computes z = x - y where y is a single limb, and returns the borrow.
//
//go:linkname subVW math/big.subVW
func subVW(z, x []Limb, y Limb) (c Limb)

// shlVU computes z = x << s and returns the shifted-out high bits.
//
//go:linkname shlVU math/big.shlVU
func shlVU(z, x []Limb, s uint) (c Limb)

// mulAddVWW computes z = x*y + r and returns the carry limb.
//
//go:linkname mulAddVWW math/big.mulAddVWW
func mulAddVWW(z, x []Limb, y, r Limb) (c Limb)

// addMulVVW computes z += x*y and returns the carry limb.
//
//go:linkname addMulVVW math/big.addMulVVW
func addMulVVW(z, x []Limb, y Limb) (c Limb)
