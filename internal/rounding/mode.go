// Package rounding defines the rounding modes shared by every limbkit type and
// the single decision function that applies them to a discarded remainder.
package rounding

import (
	"fmt"
	"math/big"
	"strings"
)

// Mode selects how a value that cannot be represented exactly is resolved.
//
// For unsigned magnitudes Floor behaves like Down and Ceiling like Up. Signed
// callers round the magnitude with Neg applied to the mode when the value is
// negative.
type Mode uint8

const (
	// Down rounds toward zero.
	Down Mode = iota
	// Up rounds away from zero.
	Up
	// Floor rounds toward negative infinity.
	Floor
	// Ceiling rounds toward positive infinity.
	Ceiling
	// Nearest rounds to the closest candidate, breaking ties toward the
	// candidate whose least significant bit is zero.
	Nearest
	// Exact requires the value to be representable.
	Exact
)

// Modes lists every rounding mode in declaration order.
var Modes = [...]Mode{Down, Up, Floor, Ceiling, Nearest, Exact}

var modeNames = [...]string{"Down", "Up", "Floor", "Ceiling", "Nearest", "Exact"}

// String returns the mode name, e.g. "Nearest".
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Neg returns the mode to use on the magnitude of a negated value: Floor and
// Ceiling swap, every other mode is its own negation.
func (m Mode) Neg() Mode {
	switch m {
	case Floor:
		return Ceiling
	case Ceiling:
		return Floor
	default:
		return m
	}
}

// ToBig maps m onto the equivalent math/big rounding mode. Exact has no
// counterpart and reports false.
func (m Mode) ToBig() (big.RoundingMode, bool) {
	switch m {
	case Down:
		return big.ToZero, true
	case Up:
		return big.AwayFromZero, true
	case Floor:
		return big.ToNegativeInf, true
	case Ceiling:
		return big.ToPositiveInf, true
	case Nearest:
		return big.ToNearestEven, true
	default:
		return 0, false
	}
}

// ParseMode parses a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rounding mode %q", s)
}
