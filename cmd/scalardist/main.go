// go run ./cmd/scalardist <exp> [seed] [show]
//   exp  : n = 2^exp (at least 23)
//   seed : random seed (default: entropy)
//   show : number of most repeated values to print (default 10)

package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/Han-16/msmbench/internal/distribution"
	"github.com/Han-16/msmbench/internal/logging"
	"github.com/Han-16/msmbench/internal/randutil"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./cmd/scalardist <exp> [seed] [show]")
		fmt.Println("Example: go run ./cmd/scalardist 23 42   # 2^23 non-uniform scalars from seed 42")
		return
	}
	log := logging.New(zerolog.InfoLevel)

	exp, err := strconv.Atoi(os.Args[1])
	if err != nil || exp <= 0 || exp >= 31 {
		log.Fatal().Str("exp", os.Args[1]).Msg("invalid exponent")
	}
	n := 1 << exp

	rng, seed, err := randutil.NewEntropyRand()
	if err != nil {
		log.Fatal().Err(err).Msg("seed random source")
	}
	if len(os.Args) >= 3 {
		seed, err = strconv.ParseUint(os.Args[2], 0, 64)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid seed")
		}
		rng = randutil.NewRand(seed)
	}

	show := 10
	if len(os.Args) >= 4 {
		show, err = strconv.Atoi(os.Args[3])
		if err != nil {
			log.Fatal().Err(err).Msg("invalid show count")
		}
	}

	start := time.Now()
	scalars, stats, err := distribution.NonUniform(rng, n)
	if err != nil {
		log.Fatal().Err(err).Msg("generate scalars")
	}
	elapsed := time.Since(start)

	fmt.Printf("Generated %d non-uniform scalars (seed %d) in %v\n", len(scalars), seed, elapsed)
	fmt.Println("# tier | distinct | entries | share")
	for _, t := range stats.Tiers {
		fmt.Printf("%s | %d | %d | %.2f%%\n", t.Name, t.Distinct, t.Entries, pct(t.Entries, n))
	}
	fmt.Printf("fill | %d | %d | %.2f%%\n", stats.Fill, stats.Fill, pct(stats.Fill, n))

	fmt.Println("=============================")
	fmt.Println("# rank | count | value")
	for i, vc := range distribution.TopValues(scalars, show) {
		fmt.Printf("%d | %d | %s\n", i+1, vc.Count, vc.Value.String())
	}
}

func pct(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}
