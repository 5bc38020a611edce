// Package bench drives the MSM timing runs: one point set, uniform scalars
// first, then a non-uniform workload against the same engine context.
package bench

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"time"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/rs/zerolog"

	"github.com/Han-16/msmbench/internal/distribution"
	"github.com/Han-16/msmbench/internal/msm"
	"github.com/Han-16/msmbench/internal/points"
)

var ErrInvalidInput = errors.New("bench: invalid input")

// Distribution labels used in timings.
const (
	Uniform    = "random"
	NonUniform = "nonuniform"
)

// Timing is one measured distribution.
type Timing struct {
	Distribution string
	Batch        int
	N            int
	Iters        int
	Best         time.Duration
	Avg          time.Duration
}

type Report struct {
	Exp     int
	N       int
	Seed    uint64
	Engine  string
	Timings []Timing
}

// Driver owns the engine context for the duration of a run and is not safe
// for concurrent use.
type Driver struct {
	Engine  msm.Engine
	Rand    *rand.Rand
	Log     zerolog.Logger
	Seed    uint64 // recorded in the report only
	Batches int
	Iters   int
	Workers int
	Profile distribution.Profile // zero value => distribution.DefaultProfile()
}

// Run benchmarks a workload of 2^npow points.
func (d *Driver) Run(npow int) (Report, error) {
	if npow <= 0 || npow >= 31 {
		return Report{}, fmt.Errorf("%w: exponent %d", ErrInvalidInput, npow)
	}
	n := 1 << npow
	profile := d.Profile
	if profile.MinLen == 0 && len(profile.Specials) == 0 && len(profile.Tiers) == 0 {
		profile = distribution.DefaultProfile()
	}
	if err := profile.Validate(); err != nil {
		return Report{}, err
	}
	if n < profile.MinLen {
		return Report{}, fmt.Errorf("%w: workload 2^%d below non-uniform minimum %d",
			distribution.ErrInvalidInput, npow, profile.MinLen)
	}
	if d.Engine == nil || d.Rand == nil {
		return Report{}, fmt.Errorf("%w: driver needs an engine and a random source", ErrInvalidInput)
	}
	batches := max(d.Batches, 1)
	iters := max(d.Iters, 1)

	rep := Report{Exp: npow, N: n, Seed: d.Seed, Engine: d.Engine.Name()}
	log := d.Log.With().Int("exp", npow).Int("n", n).Str("engine", rep.Engine).Logger()

	start := time.Now()
	pts, scalars, err := points.GeneratePointsScalars(d.Rand, n, batches, d.Workers)
	if err != nil {
		return Report{}, err
	}
	log.Debug().Int("points", len(pts)).Int("scalars", len(scalars)).
		Dur("took", time.Since(start)).Msg("generated points and uniform scalars")

	start = time.Now()
	ctx, err := d.Engine.Init(pts)
	if err != nil {
		return Report{}, fmt.Errorf("init context: %w", err)
	}
	log.Debug().Dur("took", time.Since(start)).Msg("initialized msm context")

	for b := 0; b < batches; b++ {
		batch := msm.ScalarsFromElements(scalars[b*n : (b+1)*n])
		tm, err := d.measure(ctx, pts, batch, iters)
		if err != nil {
			return Report{}, fmt.Errorf("%s batch %d: %w", Uniform, b, err)
		}
		tm.Distribution, tm.Batch = Uniform, b
		log.Info().Str("distribution", Uniform).Int("batch", b).
			Dur("best", tm.Best).Dur("avg", tm.Avg).Msg("msm done")
		rep.Timings = append(rep.Timings, tm)
	}

	start = time.Now()
	nonUniform, stats, err := distribution.Generate(d.Rand, n, profile)
	if err != nil {
		return Report{}, err
	}
	ev := log.Debug().Dur("took", time.Since(start)).Int("fill", stats.Fill)
	for _, t := range stats.Tiers {
		ev = ev.Dict(t.Name, zerolog.Dict().Int("distinct", t.Distinct).Int("entries", t.Entries))
	}
	ev.Msg("generated non-uniform scalars")

	tm, err := d.measure(ctx, pts, msm.ScalarsFromElements(nonUniform), iters)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", NonUniform, err)
	}
	tm.Distribution = NonUniform
	log.Info().Str("distribution", NonUniform).
		Dur("best", tm.Best).Dur("avg", tm.Avg).Msg("msm done")
	rep.Timings = append(rep.Timings, tm)

	return rep, nil
}

// measure times iters Compute calls; the result point is not checked.
func (d *Driver) measure(ctx *msm.Context, pts []bls12377.G1Affine, scalars []msm.Scalar, iters int) (Timing, error) {
	tm := Timing{N: len(scalars), Iters: iters}
	var total time.Duration
	for it := 0; it < iters; it++ {
		start := time.Now()
		res, err := d.Engine.Compute(ctx, pts, scalars)
		elapsed := time.Since(start)
		if err != nil {
			return Timing{}, err
		}
		runtime.KeepAlive(res)

		if it == 0 || elapsed < tm.Best {
			tm.Best = elapsed
		}
		total += elapsed
	}
	tm.Avg = time.Duration(int64(total) / int64(iters))
	return tm, nil
}
