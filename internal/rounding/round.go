package rounding

import "fmt"

// Round decides between the low candidate lo and its successor lo+1 after a
// value has been truncated.
//
// Parameters:
//   - loOdd: whether the least significant bit of lo is set.
//   - half: whether the most significant discarded bit is set.
//   - sticky: whether any discarded bit below it is set.
//   - m: the rounding mode.
//
// Returns:
//   - up: true if the caller must add one to lo.
//   - o: Equal when nothing was discarded, Less when lo is kept, Greater when
//     the result was bumped.
//   - ok: false only when m is Exact and bits were discarded. The caller owns
//     the panic message because only it knows the operands.
func Round(loOdd, half, sticky bool, m Mode) (up bool, o Ordering, ok bool) {
	if !half && !sticky {
		return false, Equal, true
	}
	switch m {
	case Down, Floor:
		up = false
	case Up, Ceiling:
		up = true
	case Nearest:
		up = half && (sticky || loOdd)
	case Exact:
		return false, Equal, false
	default:
		panic(fmt.Sprintf("invalid rounding mode %d", uint8(m)))
	}
	if up {
		return true, Greater, true
	}
	return false, Less, true
}
