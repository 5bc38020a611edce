package distribution

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// MinLen is the smallest workload DefaultProfile is tuned for.
const MinLen = 1 << 23

// Range is the half-open interval [Min, Max).
type Range struct {
	Min, Max int
}

func (r Range) valid() bool { return r.Min > 0 && r.Max > r.Min }

// Special is a fixed value repeated an exact number of times.
type Special struct {
	Name  string
	Value fr.Element
	Count int
}

// Tier is a randomized frequency tier: Values distinct random scalars, each
// repeated a number of times drawn from Repeats.
type Tier struct {
	Name    string
	Values  Range
	Repeats Range
}

// Profile describes a non-uniform scalar workload.
type Profile struct {
	Specials []Special
	Tiers    []Tier
	MinLen   int
}

// DefaultProfile models witness data from proving systems: a couple of
// special values with very high counts, a few hundred values occurring in
// the thousands, ~20k values occurring a few hundred times, and unique
// random values for the remainder.
func DefaultProfile() Profile {
	var zero, one fr.Element
	zero.SetZero()
	one.SetOne()
	return Profile{
		Specials: []Special{
			{Name: "zero", Value: zero, Count: 150_000},
			{Name: "one", Value: one, Count: 50_000},
		},
		Tiers: []Tier{
			{Name: "high", Values: Range{200, 300}, Repeats: Range{4000, 8000}},
			{Name: "low", Values: Range{19_000, 21_000}, Repeats: Range{200, 400}},
		},
		MinLen: MinLen,
	}
}

// Validate reports malformed profiles.
func (p Profile) Validate() error {
	fixed := 0
	for _, s := range p.Specials {
		if s.Count < 0 {
			return fmt.Errorf("%w: special %q has negative count %d", ErrInvalidInput, s.Name, s.Count)
		}
		fixed += s.Count
	}
	for _, t := range p.Tiers {
		if !t.Values.valid() || !t.Repeats.valid() {
			return fmt.Errorf("%w: tier %q has empty range", ErrInvalidInput, t.Name)
		}
	}
	if p.MinLen < fixed || p.MinLen <= 0 {
		return fmt.Errorf("%w: min length %d below fixed special count %d", ErrInvalidInput, p.MinLen, fixed)
	}
	return nil
}
