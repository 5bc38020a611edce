package distribution

import (
	"cmp"
	"slices"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// ValueCount is a scalar and its number of occurrences.
type ValueCount struct {
	Value fr.Element
	Count int
}

// TopValues returns the k most frequent values of scalars, most frequent
// first. Ties are ordered by value.
func TopValues(scalars []fr.Element, k int) []ValueCount {
	if k <= 0 || len(scalars) == 0 {
		return nil
	}
	freq := make(map[fr.Element]int)
	for i := range scalars {
		freq[scalars[i]]++
	}
	out := make([]ValueCount, 0, len(freq))
	for v, c := range freq {
		out = append(out, ValueCount{Value: v, Count: c})
	}
	slices.SortFunc(out, func(a, b ValueCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return a.Value.Cmp(&b.Value)
	})
	return out[:min(k, len(out))]
}
