package orchestration

import (
	"fmt"
	"math/big"
	"math/bits"
	"slices"
	"sort"
	"strings"

	"github.com/agbru/limbkit/internal/limbs"
)

// ReferenceStrategy is the strategy every other one is compared against.
const ReferenceStrategy = "naive"

// Strategy is one way of computing xs mod d.
type Strategy interface {
	Name() string
	// Accepts reports whether the strategy is defined for a dividend of n
	// limbs and divisor d.
	Accepts(n int, d limbs.Limb) bool
	ModLimb(xs []limbs.Limb, d limbs.Limb) limbs.Limb
}

type modStrategy struct {
	name    string
	accepts func(n int, d limbs.Limb) bool
	fn      func([]limbs.Limb, limbs.Limb) limbs.Limb
}

// NewStrategy builds a Strategy from a reduction function and its domain.
// A nil accepts admits every nonzero divisor.
func NewStrategy(name string, accepts func(n int, d limbs.Limb) bool, fn func([]limbs.Limb, limbs.Limb) limbs.Limb) Strategy {
	if accepts == nil {
		accepts = func(int, limbs.Limb) bool { return true }
	}
	return modStrategy{name: name, accepts: accepts, fn: fn}
}

func (s modStrategy) Name() string { return s.name }

func (s modStrategy) Accepts(n int, d limbs.Limb) bool { return d != 0 && s.accepts(n, d) }

func (s modStrategy) ModLimb(xs []limbs.Limb, d limbs.Limb) limbs.Limb { return s.fn(xs, d) }

func atLeast(n0 int) func(int, limbs.Limb) bool {
	return func(n int, _ limbs.Limb) bool { return n >= n0 }
}

func leadingZeros(zeros int) func(int, limbs.Limb) bool {
	return func(n int, d limbs.Limb) bool {
		return n >= 1 && bits.LeadingZeros(uint(d)) >= zeros
	}
}

// kernelStrategies lists the exported mod_limb strategies of the limbs
// package with their preconditions.
func kernelStrategies(th limbs.ModThresholds) []Strategy {
	return []Strategy{
		NewStrategy(ReferenceStrategy, nil, limbs.ModLimbNaive),
		NewStrategy("dispatch", nil, func(xs []limbs.Limb, d limbs.Limb) limbs.Limb {
			return limbs.ModLimbWith(xs, d, th)
		}),
		NewStrategy("small-normalized", func(n int, d limbs.Limb) bool {
			return n >= 1 && d&limbs.HighBit != 0
		}, limbs.ModLimbSmallNormalized),
		NewStrategy("small-unnormalized", func(n int, d limbs.Limb) bool {
			return n >= 1 && d&limbs.HighBit == 0
		}, limbs.ModLimbSmallUnnormalized),
		NewStrategy("any-lz-1", atLeast(2), limbs.ModLimbAnyLeadingZeros1),
		NewStrategy("any-lz-2", atLeast(2), limbs.ModLimbAnyLeadingZeros2),
		NewStrategy("lz-1", leadingZeros(1), limbs.ModLimbAtLeast1LeadingZero),
		NewStrategy("lz-2", leadingZeros(2), limbs.ModLimbAtLeast2LeadingZeros),
		NewStrategy("alt1", atLeast(2), limbs.ModLimbAlt1),
		NewStrategy("alt2", nil, limbs.ModLimb),
		NewStrategy("alt3", atLeast(2), limbs.ModLimbAlt3),
	}
}

// bigStrategy reduces through math/big.
func bigStrategy() Strategy {
	return NewStrategy("big", nil, func(xs []limbs.Limb, d limbs.Limb) limbs.Limb {
		x := new(big.Int).SetBits(xs)
		r := new(big.Int).Rem(x, new(big.Int).SetBits([]big.Word{d}))
		if r.Sign() == 0 {
			return 0
		}
		return r.Bits()[0]
	})
}

// extraStrategies is extended by build-tagged files.
var extraStrategies []func() Strategy

// Registry holds strategies by name.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry registers ss, later entries replacing earlier ones of the same
// name.
func NewRegistry(ss ...Strategy) *Registry {
	r := &Registry{strategies: make(map[string]Strategy, len(ss))}
	for _, s := range ss {
		r.Register(s)
	}
	return r
}

// DefaultRegistry registers every kernel strategy (the dispatch one using
// th), the math/big oracle and any build-tagged extras.
func DefaultRegistry(th limbs.ModThresholds) *Registry {
	r := NewRegistry(kernelStrategies(th)...)
	r.Register(bigStrategy())
	for _, extra := range extraStrategies {
		r.Register(extra())
	}
	return r
}

// Register adds or replaces s.
func (r *Registry) Register(s Strategy) {
	r.strategies[s.Name()] = s
}

// Get returns the strategy called name.
func (r *Registry) Get(name string) (Strategy, error) {
	s, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (available: %s)", name, strings.Join(r.List(), ", "))
	}
	return s, nil
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select returns the named strategies, or all of them when names is empty,
// in sorted order. The reference strategy is always included.
func (r *Registry) Select(names []string) ([]Strategy, error) {
	if len(names) == 0 {
		names = r.List()
	}
	if !slices.Contains(names, ReferenceStrategy) {
		names = append(slices.Clone(names), ReferenceStrategy)
	}
	slices.Sort(names)
	names = slices.Compact(names)
	out := make([]Strategy, 0, len(names))
	for _, name := range names {
		s, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
