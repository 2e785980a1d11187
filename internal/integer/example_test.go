package integer_test

import (
	"fmt"

	"github.com/agbru/limbkit/internal/integer"
	"github.com/agbru/limbkit/internal/rounding"
)

func ExampleInteger_ShrRound() {
	x := integer.FromInt64(-123)
	for _, rm := range []rounding.Mode{rounding.Floor, rounding.Ceiling} {
		q, ord := x.ShrRound(31, rm)
		fmt.Println(rm, q, ord)
	}
	// Output:
	// Floor -1 Less
	// Ceiling 0 Greater
}

func ExampleInteger_EqMod() {
	fmt.Println(integer.FromInt64(-3).EqMod(integer.FromInt64(5), integer.FromInt64(8)))
	// Output: true
}
