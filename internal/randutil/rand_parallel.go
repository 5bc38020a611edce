package randutil

import (
	"math/rand/v2"
	"runtime"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"golang.org/x/sync/errgroup"
)

// ChunkSize is the number of values drawn from one derived source in the
// parallel generators. Chunks are seeded in order from the parent source, so
// results depend on the parent seed only and never on the worker count.
const ChunkSize = 1 << 12

// parallelChunks runs fn over [0, n) split into ChunkSize chunks, each with its
// own source derived from rng. workers <= 0 => runtime.NumCPU().
//
// fn has no error path, so the group is used only for its concurrency limit
// and Wait always returns nil.
func parallelChunks(rng *rand.Rand, n, workers int, fn func(r *rand.Rand, i0, i1 int)) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	nChunks := (n + ChunkSize - 1) / ChunkSize
	sources := make([]*rand.Rand, nChunks)
	for c := range sources {
		sources[c] = Derive(rng)
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for c := 0; c < nChunks; c++ {
		i0 := c * ChunkSize
		i1 := min(i0+ChunkSize, n)
		r := sources[c]
		g.Go(func() error {
			fn(r, i0, i1)
			return nil
		})
	}
	g.Wait() //nolint:errcheck // every closure returns nil
}

// RandomScalarsPar generates n uniform scalars in parallel.
// If workers <= 0, it defaults to runtime.NumCPU().
// It returns a slice of length n (possibly empty if n<=0).
func RandomScalarsPar(rng *rand.Rand, n, workers int) []fr.Element {
	if n <= 0 {
		return []fr.Element{}
	}
	out := make([]fr.Element, n)
	parallelChunks(rng, n, workers, func(r *rand.Rand, i0, i1 int) {
		for i := i0; i < i1; i++ {
			out[i] = RandomScalar(r)
		}
	})
	return out
}

// RandomPointsJacPar generates n random G1 points in Jacobian form in
// parallel. Each point is (random non-zero scalar) * G1 generator.
func RandomPointsJacPar(rng *rand.Rand, n, workers int) []bls12377.G1Jac {
	if n <= 0 {
		return []bls12377.G1Jac{}
	}
	out := make([]bls12377.G1Jac, n)
	parallelChunks(rng, n, workers, func(r *rand.Rand, i0, i1 int) {
		for i := i0; i < i1; i++ {
			out[i] = RandomPointJac(r)
		}
	})
	return out
}
