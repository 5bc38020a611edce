// BENCH_NPOW=23 go run ./cmd/msmbench
//   BENCH_NPOW    : n = 2^BENCH_NPOW (default 23, the non-uniform minimum)
//   BENCH_BATCHES : uniform scalar batches (default 1)
//   BENCH_ITERS   : runs per distribution, best and average reported (default 1)
//   BENCH_PROCS   : GOMAXPROCS setting (default: number of CPU cores)
//   BENCH_ENGINE  : "multiexp" (default) or "naive"
//   BENCH_SEED    : replay a previous run's workload
//   BENCH_RESULTS : results file to append to
//   LOG_LEVEL     : zerolog level (default info)

package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/Han-16/msmbench/internal/bench"
	"github.com/Han-16/msmbench/internal/config"
	"github.com/Han-16/msmbench/internal/logging"
	"github.com/Han-16/msmbench/internal/msm"
	"github.com/Han-16/msmbench/internal/randutil"
	"github.com/Han-16/msmbench/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logging.New(cfg.Level)

	procs := cfg.Procs
	if procs <= 0 {
		procs = runtime.NumCPU()
	}
	runtime.GOMAXPROCS(procs)

	engine, err := msm.Lookup(cfg.Engine, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("select engine")
	}

	seed := cfg.Seed
	rng := randutil.NewRand(seed)
	if !cfg.HasSeed {
		rng, seed, err = randutil.NewEntropyRand()
		if err != nil {
			log.Fatal().Err(err).Msg("seed random source")
		}
	}
	log.Info().Int("exp", cfg.NPow).Int("procs", procs).Uint64("seed", seed).
		Str("engine", engine.Name()).Msg("starting msm benchmark")

	d := &bench.Driver{
		Engine:  engine,
		Rand:    rng,
		Log:     log,
		Seed:    seed,
		Batches: cfg.Batches,
		Iters:   cfg.Iters,
		Workers: procs,
	}
	rep, err := d.Run(cfg.NPow)
	if err != nil {
		log.Fatal().Err(err).Msg("benchmark failed")
	}

	for _, t := range rep.Timings {
		switch {
		case t.Distribution == bench.Uniform && cfg.Batches > 1:
			fmt.Printf("%s time (batch %d): %v\n", t.Distribution, t.Batch, t.Best)
		default:
			fmt.Printf("%s time: %v\n", t.Distribution, t.Best)
		}
	}

	if cfg.Results != "" {
		if err := report.Append(cfg.Results, procs, rep); err != nil {
			log.Fatal().Err(err).Msg("append results")
		}
		log.Info().Str("path", cfg.Results).Msg("appended results")
	}
}
