// Package points builds benchmark point sets: a pool of random G1 points,
// batch-normalized once and replicated up to the workload size.
package points

import (
	"errors"
	"fmt"
	"math/rand/v2"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

	"github.com/Han-16/msmbench/internal/randutil"
)

// PoolSize is the number of distinct random points sampled per workload.
const PoolSize = 1 << 15

var ErrInvalidInput = errors.New("points: invalid input")

// GeneratePool samples size random points in Jacobian form and converts
// them to affine with a single batch inversion.
func GeneratePool(rng *rand.Rand, size, workers int) []bls12377.G1Affine {
	jac := randutil.RandomPointsJacPar(rng, size, workers)
	return bls12377.BatchJacobianToAffineG1(jac)
}

// Pad replicates pool by self-concatenation until it holds at least n points,
// then truncates to exactly n. The result satisfies out[i] == pool[i%len(pool)].
func Pad(pool []bls12377.G1Affine, n int) []bls12377.G1Affine {
	if n <= 0 || len(pool) == 0 {
		return []bls12377.G1Affine{}
	}
	// doubling copies stop at n, so the overshoot is never allocated
	out := make([]bls12377.G1Affine, n)
	filled := copy(out, pool)
	for filled < len(out) {
		filled += copy(out[filled:], out[:filled])
	}
	return out
}

// GeneratePointsScalars returns n points drawn from a PoolSize pool and
// n*batches uniform scalars.
func GeneratePointsScalars(rng *rand.Rand, n, batches, workers int) ([]bls12377.G1Affine, []fr.Element, error) {
	if n <= 0 {
		return nil, nil, fmt.Errorf("%w: length must be positive, got %d", ErrInvalidInput, n)
	}
	if batches < 1 {
		return nil, nil, fmt.Errorf("%w: batches must be >= 1, got %d", ErrInvalidInput, batches)
	}
	pool := GeneratePool(rng, PoolSize, workers)
	pts := Pad(pool, n)
	scalars := randutil.RandomScalarsPar(rng, n*batches, workers)
	return pts, scalars, nil
}
