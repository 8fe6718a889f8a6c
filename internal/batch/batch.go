// internal/batch/batch.go
//
// Batch harness: solve every secret in a code space.
// Responsibilities:
//   - Run one independent session per secret with a fresh concealed secret.
//   - Bound concurrency with an errgroup limit.
//   - Aggregate solved/unsolved counts, worst case, and the guess
//     distribution.
//
// Exhausted sessions are counted as unsolved and the run continues. Only
// cancellation or a strategy failure aborts the batch.

package batch

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/solver"
	"github.com/robalobadob/mastermind/internal/strategy"
)

// StrategyFactory returns the strategy for the game against the secret at
// index secret. Strategies holding per-game state (random) must be fresh
// per call; stateless ones may be shared.
type StrategyFactory[S constraints.Ordered] func(secret int) (strategy.Strategy[S], error)

// Options configures a batch run.
type Options struct {
	// Workers bounds the number of concurrent sessions. Zero means
	// GOMAXPROCS.
	Workers int

	// MaxGuesses is passed to every session; zero means no ceiling.
	MaxGuesses int

	// Progress, when set, is called after each finished game with the
	// number of finished games and the total. Calls are serialized.
	Progress func(done, total int)

	// Tracker, when set, receives live counters.
	Tracker *Tracker

	// Logger replaces the global logger for the run and its sessions.
	Logger *zerolog.Logger
}

// Summary aggregates a finished batch.
type Summary struct {
	Solved       int
	Unsolved     int
	WorstCase    int
	TotalGuesses int
	Distribution map[int]int // guesses -> solved games
	Unsolvable   []int       // indices of secrets that ended exhausted
	Elapsed      time.Duration
}

// Average is the mean number of guesses over solved games.
func (s *Summary) Average() float64 {
	if s.Solved == 0 {
		return 0
	}
	return float64(s.TotalGuesses) / float64(s.Solved)
}

// Print writes the summary report.
func (s *Summary) Print(w io.Writer) error {
	_, err := fmt.Fprintf(w, "total solved: %d\nworst case: %d\naverage: %f\ntotal unsolved: %d\n",
		s.Solved, s.WorstCase, s.Average(), s.Unsolved)
	return err
}

// PrintDistribution writes one "guesses: games" line per bucket in
// ascending order.
func (s *Summary) PrintDistribution(w io.Writer) error {
	keys := make([]int, 0, len(s.Distribution))
	for k := range s.Distribution {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%2d: %d\n", k, s.Distribution[k]); err != nil {
			return err
		}
	}
	return nil
}

// Run solves every code in space as a secret.
func Run[S constraints.Ordered](ctx context.Context, space *game.Space[S], newStrategy StrategyFactory[S], opts Options) (*Summary, error) {
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	total := space.Size()
	if opts.Tracker != nil {
		opts.Tracker.begin(total)
		defer opts.Tracker.end()
	}

	start := time.Now()
	sum := &Summary{Distribution: make(map[int]int)}
	var (
		mu   sync.Mutex
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < total; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			strat, err := newStrategy(i)
			if err != nil {
				return fmt.Errorf("strategy for secret %d: %w", i, err)
			}
			sess := solver.New(space, strat,
				solver.WithMaxGuesses(opts.MaxGuesses),
				solver.WithLogger(logger))
			res, err := sess.Run(gctx, solver.NewOracle(space.Code(i)))
			if err != nil {
				return fmt.Errorf("secret %v: %w", space.Code(i), err)
			}

			solved := res.Kind == solver.ResultSolved
			if opts.Tracker != nil {
				opts.Tracker.record(solved, res.Guesses)
			}

			mu.Lock()
			defer mu.Unlock()
			if solved {
				sum.Solved++
				sum.TotalGuesses += res.Guesses
				sum.Distribution[res.Guesses]++
				sum.WorstCase = max(sum.WorstCase, res.Guesses)
			} else {
				sum.Unsolved++
				sum.Unsolvable = append(sum.Unsolvable, i)
				logger.Warn().Str("secret", space.Code(i).String()).Str("reason", res.Reason).
					Int("guesses", res.Guesses).Msg("secret not solved")
			}
			done++
			if opts.Progress != nil {
				opts.Progress(done, total)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Ints(sum.Unsolvable)
	sum.Elapsed = time.Since(start)
	logger.Info().Int("solved", sum.Solved).Int("unsolved", sum.Unsolved).
		Int("worst", sum.WorstCase).Float64("average", sum.Average()).
		Dur("took", sum.Elapsed).Msg("batch finished")
	return sum, nil
}
