// config.go
//
// Command-line configuration.
// Responsibilities:
//   - Declare the persistent flags shared by every subcommand.
//   - Fill flags the user did not set from the environment (.env included).
//   - Build the code space and strategies from the resolved values.
//
// Environment variables:
//   MASTERMIND_LENGTH=4          code length
//   MASTERMIND_COLORS=6          colors, first K of 1-9A-Z
//   MASTERMIND_ALPHABET=RGBYOW   custom symbols (overrides colors)
//   MASTERMIND_STRATEGY=minimax  minimax | random
//   MASTERMIND_WORKERS=8         batch sessions / minimax fan-out
//   MASTERMIND_MAX_GUESSES=0     guess ceiling, 0 = none
//   MASTERMIND_SEED=0            rng seed, 0 = time based
//   DEBUG_ADDR=:9090             diagnostics listener, empty = off
//   DAILY_SALT=...               salt for the daily secret

package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/robalobadob/mastermind/internal/alphabet"
	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/strategy"
)

type config struct {
	length         int
	colors         int
	alphabet       string
	strategy       string
	workers        int
	maxGuesses     int
	seed           int64
	randomOpening  bool
	computeOpening bool
	debugAddr      string
	dailySalt      string
}

var cfg config

// bindFlags registers the shared flags on the root command.
func bindFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.IntVarP(&cfg.length, "length", "l", 4, "code length (env MASTERMIND_LENGTH)")
	f.IntVarP(&cfg.colors, "colors", "k", 6, "number of colors (env MASTERMIND_COLORS)")
	f.StringVar(&cfg.alphabet, "alphabet", "", "custom symbols, one per color (env MASTERMIND_ALPHABET)")
	f.StringVarP(&cfg.strategy, "strategy", "s", string(strategy.KindMinimax), "minimax or random (env MASTERMIND_STRATEGY)")
	f.IntVarP(&cfg.workers, "workers", "w", runtime.NumCPU(), "parallel workers (env MASTERMIND_WORKERS)")
	f.IntVar(&cfg.maxGuesses, "max-guesses", 0, "give up after this many guesses, 0 = never (env MASTERMIND_MAX_GUESSES)")
	f.Int64Var(&cfg.seed, "seed", 0, "random seed, 0 = time based (env MASTERMIND_SEED)")
	f.BoolVar(&cfg.randomOpening, "random-opening", false, "open with random distinct pairs")
	f.BoolVar(&cfg.computeOpening, "compute-opening", false, "search the full space for the minimax opening")
	f.StringVar(&cfg.debugAddr, "debug-addr", "", "diagnostics listen address, empty = off (env DEBUG_ADDR)")
	f.StringVar(&cfg.dailySalt, "daily-salt", "local_dev_salt", "salt for the daily secret (env DAILY_SALT)")
}

// applyEnv fills every flag left at its default from the environment.
func applyEnv(cmd *cobra.Command) error {
	fs := cmd.Flags()
	str := func(flag, key string, dst *string) {
		if !fs.Changed(flag) {
			*dst = getEnv(key, *dst)
		}
	}
	num := func(flag, key string, dst *int) error {
		if fs.Changed(flag) {
			return nil
		}
		n, err := getEnvInt(key, *dst)
		*dst = n
		return err
	}

	str("alphabet", "MASTERMIND_ALPHABET", &cfg.alphabet)
	str("strategy", "MASTERMIND_STRATEGY", &cfg.strategy)
	str("debug-addr", "DEBUG_ADDR", &cfg.debugAddr)
	str("daily-salt", "DAILY_SALT", &cfg.dailySalt)
	for _, e := range []struct {
		flag, key string
		dst       *int
	}{
		{"length", "MASTERMIND_LENGTH", &cfg.length},
		{"colors", "MASTERMIND_COLORS", &cfg.colors},
		{"workers", "MASTERMIND_WORKERS", &cfg.workers},
		{"max-guesses", "MASTERMIND_MAX_GUESSES", &cfg.maxGuesses},
	} {
		if err := num(e.flag, e.key, e.dst); err != nil {
			return err
		}
	}
	if !fs.Changed("seed") {
		seed, err := getEnvInt("MASTERMIND_SEED", int(cfg.seed))
		if err != nil {
			return err
		}
		cfg.seed = int64(seed)
	}
	return nil
}

// space builds the rune code space from the resolved config.
func (c *config) space() (*game.Space[rune], error) {
	return alphabet.NewSpace(c.length, c.colors, c.alphabet)
}

func (c *config) kind() (strategy.Kind, error) {
	return strategy.ParseKind(c.strategy)
}

// options returns strategy options; seedOffset keeps per-game rngs apart
// in a batch while staying reproducible for a fixed seed.
func (c *config) options(workers int, seedOffset int64) strategy.Options {
	seed := c.seed
	if seed != 0 {
		seed += seedOffset
	}
	return strategy.Options{
		Seed:           seed,
		RandomOpening:  c.randomOpening,
		Workers:        workers,
		ComputeOpening: c.computeOpening,
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getEnvInt parses k as an int, returning def if unset/empty.
func getEnvInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}
