// Package config reads the benchmark settings from the environment.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	DefaultNPow   = 23
	DefaultEngine = "multiexp"
)

// Engines lists the accepted BENCH_ENGINE values.
var Engines = []string{"multiexp", "naive"}

type Config struct {
	NPow    int    // workload size is 2^NPow
	Batches int    // uniform scalar batches
	Iters   int    // measured runs per distribution
	Procs   int    // GOMAXPROCS, <= 0 keeps the runtime default
	Engine  string // msm engine name
	Seed    uint64
	HasSeed bool // false => seed from entropy
	Results string
	Level   zerolog.Level
}

// New returns a viper instance bound to the BENCH_* variables and LOG_LEVEL.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("BENCH")
	v.AutomaticEnv()
	v.SetDefault("npow", DefaultNPow)
	v.SetDefault("batches", 1)
	v.SetDefault("iters", 1)
	v.SetDefault("procs", 0)
	v.SetDefault("engine", DefaultEngine)
	v.SetDefault("seed", "")
	v.SetDefault("results", "")
	v.SetDefault("log_level", zerolog.InfoLevel.String())
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	return v
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return FromViper(New())
}

// FromViper validates the settings held by v.
func FromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	var err error

	if cfg.NPow, err = intKey(v, "npow"); err != nil {
		return Config{}, err
	}
	if cfg.NPow <= 0 || cfg.NPow >= 31 {
		return Config{}, fmt.Errorf("%w: BENCH_NPOW must be in (0, 31), got %d", ErrInvalidConfig, cfg.NPow)
	}
	if cfg.Batches, err = intKey(v, "batches"); err != nil {
		return Config{}, err
	}
	if cfg.Batches < 1 {
		return Config{}, fmt.Errorf("%w: BENCH_BATCHES must be >= 1, got %d", ErrInvalidConfig, cfg.Batches)
	}
	if cfg.Iters, err = intKey(v, "iters"); err != nil {
		return Config{}, err
	}
	cfg.Iters = max(cfg.Iters, 1)
	if cfg.Procs, err = intKey(v, "procs"); err != nil {
		return Config{}, err
	}

	cfg.Engine = strings.ToLower(strings.TrimSpace(v.GetString("engine")))
	if cfg.Engine == "" {
		cfg.Engine = DefaultEngine
	}
	if !slices.Contains(Engines, cfg.Engine) {
		return Config{}, fmt.Errorf("%w: BENCH_ENGINE %q, want one of %s",
			ErrInvalidConfig, cfg.Engine, strings.Join(Engines, ", "))
	}

	if s := strings.TrimSpace(v.GetString("seed")); s != "" {
		cfg.Seed, err = strconv.ParseUint(s, 0, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%w: BENCH_SEED: %v", ErrInvalidConfig, err)
		}
		cfg.HasSeed = true
	}
	cfg.Results = strings.TrimSpace(v.GetString("results"))

	cfg.Level, err = zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(v.GetString("log_level"))))
	if err != nil {
		return Config{}, fmt.Errorf("%w: LOG_LEVEL: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// N returns the workload size 2^NPow.
func (c Config) N() int { return 1 << c.NPow }

// intKey parses key strictly; viper's GetInt maps malformed input to 0.
func intKey(v *viper.Viper, key string) (int, error) {
	raw := v.Get(key)
	if s, ok := raw.(string); ok {
		raw = strings.TrimSpace(s)
	}
	n, err := cast.ToIntE(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: BENCH_%s: %v", ErrInvalidConfig, strings.ToUpper(key), err)
	}
	return n, nil
}
