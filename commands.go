package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/robalobadob/mastermind/internal/alphabet"
	"github.com/robalobadob/mastermind/internal/batch"
	"github.com/robalobadob/mastermind/internal/daily"
	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/httpserver"
	"github.com/robalobadob/mastermind/internal/prompt"
	"github.com/robalobadob/mastermind/internal/solver"
	"github.com/robalobadob/mastermind/internal/strategy"
)

var (
	showDistribution bool
	dailyDate        string

	rootCmd = &cobra.Command{
		Use:           "mastermind",
		Short:         "Solve Mastermind codes with minimax or random-consistent play",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return applyEnv(cmd)
		},
	}

	batchCmd = &cobra.Command{
		Use:   "batch",
		Short: "Solve every possible secret and report worst case and average",
		Args:  cobra.NoArgs,
		RunE:  runBatch,
	}

	solveCmd = &cobra.Command{
		Use:   "solve <secret>",
		Short: "Solve a known secret, showing every guess",
		Args:  cobra.ExactArgs(1),
		RunE:  runSolve,
	}

	playCmd = &cobra.Command{
		Use:   "play",
		Short: "Think of a secret and answer the solver's guesses",
		Args:  cobra.NoArgs,
		RunE:  runPlay,
	}

	dailyCmd = &cobra.Command{
		Use:   "daily",
		Short: "Solve the secret of the day",
		Args:  cobra.NoArgs,
		RunE:  runDaily,
	}
)

func init() {
	bindFlags(rootCmd)
	batchCmd.Flags().BoolVar(&showDistribution, "distribution", false, "print games per guess count")
	dailyCmd.Flags().StringVar(&dailyDate, "date", "", "YYYY-MM-DD, default today (UTC)")
	rootCmd.AddCommand(batchCmd, solveCmd, playCmd, dailyCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	space, err := cfg.space()
	if err != nil {
		return err
	}
	kind, err := cfg.kind()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	var tracker batch.Tracker
	if cfg.debugAddr != "" {
		srvCtx, stop := context.WithCancel(ctx)
		defer stop()
		go func() {
			if err := httpserver.New(&tracker).Start(srvCtx, cfg.debugAddr); err != nil {
				log.Error().Err(err).Msg("diagnostics server exited")
			}
		}()
	}

	opts := batch.Options{Workers: cfg.workers, MaxGuesses: cfg.maxGuesses, Tracker: &tracker}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bar := progressbar.Default(int64(space.Size()), "solving")
		defer bar.Close()
		opts.Progress = func(done, _ int) { _ = bar.Set(done) }
	}

	// Sessions already run in parallel; each minimax search stays on one
	// goroutine.
	factory := func(secret int) (strategy.Strategy[rune], error) {
		return strategy.New[rune](kind, cfg.options(1, int64(secret)))
	}
	log.Info().Int("length", space.Len()).Int("colors", space.Colors()).Int("codes", space.Size()).
		Str("strategy", string(kind)).Int("workers", cfg.workers).Msg("batch starting")

	sum, err := batch.Run(ctx, space, factory, opts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := sum.Print(out); err != nil {
		return err
	}
	if showDistribution {
		return sum.PrintDistribution(out)
	}
	return nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	space, err := cfg.space()
	if err != nil {
		return err
	}
	secret, err := alphabet.ParseCode(space, args[0])
	if err != nil {
		return fmt.Errorf("secret %q: %w", args[0], err)
	}
	sess, err := newSession(space)
	if err != nil {
		return err
	}
	return play(cmd.Context(), cmd.OutOrStdout(), sess, solver.NewOracle(secret), true)
}

func runPlay(cmd *cobra.Command, _ []string) error {
	space, err := cfg.space()
	if err != nil {
		return err
	}
	sess, err := newSession(space)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Think of a %d-symbol code over %s. Answer each guess with exact and partial matches.\n",
		space.Len(), string(space.Alphabet()))
	term := prompt.New(cmd.InOrStdin(), out, space.Len())
	return play(cmd.Context(), out, sess, solver.Interactive[rune]{Respondent: term}, false)
}

func runDaily(cmd *cobra.Command, _ []string) error {
	space, err := cfg.space()
	if err != nil {
		return err
	}
	date := time.Now()
	if dailyDate != "" {
		if date, err = time.Parse("2006-01-02", dailyDate); err != nil {
			return fmt.Errorf("date: %w", err)
		}
	}
	sess, err := newSession(space)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Daily %s\n", daily.DateKey(date))
	return play(cmd.Context(), out, sess, solver.NewOracle(daily.Secret(space, date, cfg.dailySalt)), true)
}

func newSession(space *game.Space[rune]) (*solver.Session[rune], error) {
	kind, err := cfg.kind()
	if err != nil {
		return nil, err
	}
	strat, err := strategy.New[rune](kind, cfg.options(cfg.workers, 0))
	if err != nil {
		return nil, err
	}
	return solver.New(space, strat, solver.WithMaxGuesses(cfg.maxGuesses)), nil
}

// play steps sess to the end, printing one line per guess. echoGuess is
// false when the source already showed the guess to the user.
func play(ctx context.Context, out io.Writer, sess *solver.Session[rune], src solver.FeedbackSource[rune], echoGuess bool) error {
	for {
		res, err := sess.Step(ctx, src)
		if errors.Is(err, game.ErrInvalidFeedback) {
			continue
		}
		if err != nil {
			return err
		}

		switch res.Kind {
		case solver.ResultSolved:
			if echoGuess {
				fmt.Fprintf(out, "Guess %d: %s\n", res.Guesses, alphabet.Format(res.Guess))
			}
			fmt.Fprintf(out, "Solved: %s in %d guesses (%s)\n",
				alphabet.Format(res.Guess), res.Guesses, sess.Elapsed().Round(time.Microsecond))
			return nil
		case solver.ResultExhausted:
			fmt.Fprintf(out, "No solution after %d guesses: %s\n", res.Guesses, res.Reason)
			return nil
		}

		if echoGuess {
			fmt.Fprintf(out, "Guess %d: %s -> %s", res.Guesses, alphabet.Format(res.Guess), alphabet.FormatFeedback(res.Feedback))
		}
		fmt.Fprintf(out, "  removed %d, %d left\n", res.Removed, res.Remaining)
	}
}
