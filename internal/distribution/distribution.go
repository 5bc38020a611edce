// Package distribution generates non-uniform scalar workloads that mimic
// production MSM inputs: a few values repeated thousands of times mixed with
// unique random values.
package distribution

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

	"github.com/Han-16/msmbench/internal/randutil"
)

var (
	ErrInvalidInput       = errors.New("distribution: invalid input")
	ErrInvariantViolation = errors.New("distribution: invariant violation")
)

// TierStats counts what one special value or tier contributed. Distinct is
// the number of values with at least one entry.
type TierStats struct {
	Name     string
	Distinct int
	Entries  int
}

// Stats summarizes a generated sequence. The sum of all tier entries plus
// Fill equals the sequence length.
type Stats struct {
	Tiers []TierStats
	Fill  int
}

// Total returns the number of entries accounted for by s.
func (s Stats) Total() int {
	total := s.Fill
	for _, t := range s.Tiers {
		total += t.Entries
	}
	return total
}

// NonUniform returns n shuffled scalars following DefaultProfile.
// n must be at least MinLen.
func NonUniform(rng *rand.Rand, n int) ([]fr.Element, Stats, error) {
	return Generate(rng, n, DefaultProfile())
}

// Generate returns n shuffled scalars following p.
func Generate(rng *rand.Rand, n int, p Profile) ([]fr.Element, Stats, error) {
	return generate(rng, n, p, true)
}

func generate(rng *rand.Rand, n int, p Profile, shuffle bool) ([]fr.Element, Stats, error) {
	if err := p.Validate(); err != nil {
		return nil, Stats{}, err
	}
	if n < p.MinLen {
		return nil, Stats{}, fmt.Errorf("%w: length %d below minimum %d", ErrInvalidInput, n, p.MinLen)
	}

	b := builder{buf: make([]fr.Element, 0, n), n: n}

	for _, s := range p.Specials {
		b.repeat(s.Value, s.Count)
		b.closeTier(s.Name)
	}

	for _, t := range p.Tiers {
		nValues := randRange(rng, t.Values)
		values := randutil.RandomScalars(rng, nValues)
		for i := range values {
			b.repeat(values[i], randRange(rng, t.Repeats))
		}
		b.closeTier(t.Name)
	}

	// the fill tier absorbs all variance from the randomized tiers
	rest := n - len(b.buf)
	for i := 0; i < rest; i++ {
		b.buf = append(b.buf, randutil.RandomScalar(rng))
	}
	b.stats.Fill = rest

	if shuffle {
		rng.Shuffle(len(b.buf), func(i, j int) {
			b.buf[i], b.buf[j] = b.buf[j], b.buf[i]
		})
	}

	if len(b.buf) != n || b.stats.Total() != n {
		return nil, Stats{}, fmt.Errorf("%w: generated %d scalars (accounted %d), want %d",
			ErrInvariantViolation, len(b.buf), b.stats.Total(), n)
	}
	return b.buf, b.stats, nil
}

type builder struct {
	buf     []fr.Element
	n       int
	pending int // entries of the open tier
	values  int // values of the open tier with entries
	stats   Stats
}

// repeat appends count copies of v, clamped to the remaining capacity.
func (b *builder) repeat(v fr.Element, count int) {
	count = min(count, b.n-len(b.buf))
	if count <= 0 {
		return
	}
	for i := 0; i < count; i++ {
		b.buf = append(b.buf, v)
	}
	b.pending += count
	b.values++
}

func (b *builder) closeTier(name string) {
	b.stats.Tiers = append(b.stats.Tiers, TierStats{Name: name, Distinct: b.values, Entries: b.pending})
	b.pending, b.values = 0, 0
}

// randRange draws uniformly from [r.Min, r.Max).
func randRange(rng *rand.Rand, r Range) int {
	return r.Min + rng.IntN(r.Max-r.Min)
}
