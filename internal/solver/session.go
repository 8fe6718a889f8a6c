// internal/solver/session.go
//
// Solving loop for a single secret.
// Responsibilities:
//   - Own one candidate set and one guess history for the session.
//   - Drive AwaitingGuess → AwaitingFeedback → Pruning → (AwaitingGuess |
//     Solved | Exhausted).
//   - Validate feedback before it touches the candidate set.
//
// State transitions:
//   - Feedback (L, 0) → Solved; the guess is the secret.
//   - Empty candidate set after a prune → Exhausted ("no candidates").
//   - Guess ceiling reached → Exhausted ("guess limit").
//   - Source error or invalid feedback → no transition; the next Step asks
//     for feedback on the same guess again.

package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/constraints"

	"github.com/robalobadob/mastermind/internal/candidates"
	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/metrics"
	"github.com/robalobadob/mastermind/internal/strategy"
)

// ErrSessionFinished is returned by Step once the session is terminal.
var ErrSessionFinished = errors.New("session finished")

// Exhaustion reasons.
const (
	ReasonNoCandidates = "no candidates"
	ReasonGuessLimit   = "guess limit"
)

// State is a solving loop state.
type State int

const (
	AwaitingGuess State = iota
	AwaitingFeedback
	Pruning
	Solved
	Exhausted
)

func (s State) String() string {
	switch s {
	case AwaitingGuess:
		return "awaiting_guess"
	case AwaitingFeedback:
		return "awaiting_feedback"
	case Pruning:
		return "pruning"
	case Solved:
		return "solved"
	case Exhausted:
		return "exhausted"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Terminal reports whether no further steps are possible.
func (s State) Terminal() bool { return s == Solved || s == Exhausted }

// ResultKind classifies a StepResult.
type ResultKind int

const (
	ResultGuessed ResultKind = iota
	ResultSolved
	ResultExhausted
)

func (k ResultKind) String() string {
	switch k {
	case ResultGuessed:
		return "guessed"
	case ResultSolved:
		return "solved"
	case ResultExhausted:
		return "exhausted"
	}
	return fmt.Sprintf("result(%d)", int(k))
}

// StepResult reports one completed guess/feedback/prune cycle.
type StepResult[S constraints.Ordered] struct {
	Kind      ResultKind
	Guess     game.Code[S] // the guess made; the secret when Solved
	Feedback  game.Feedback
	Guesses   int    // guesses made so far
	Remaining int    // candidates left after pruning
	Removed   int    // candidates discarded by this step
	Reason    string // set when Exhausted
}

// Session solves one secret.
type Session[S constraints.Ordered] struct {
	id    string
	space *game.Space[S]
	cands *candidates.Set[S]
	hist  *game.History[S]
	strat strategy.Strategy[S]
	log   zerolog.Logger

	state      State
	pending    game.Code[S]
	pendingIdx int
	maxGuesses int
	started    time.Time
	elapsed    time.Duration
}

// Option configures a Session.
type Option func(*config)

type config struct {
	maxGuesses int
	logger     *zerolog.Logger
}

// WithMaxGuesses aborts the session as Exhausted once n guesses have been
// made without solving. Zero means no ceiling.
func WithMaxGuesses(n int) Option { return func(c *config) { c.maxGuesses = n } }

// WithLogger replaces the global logger.
func WithLogger(l zerolog.Logger) Option { return func(c *config) { c.logger = &l } }

// New starts a session over space using strat.
func New[S constraints.Ordered](space *game.Space[S], strat strategy.Strategy[S], opts ...Option) *Session[S] {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	base := log.Logger
	if cfg.logger != nil {
		base = *cfg.logger
	}
	id := uuid.NewString()
	return &Session[S]{
		id:         id,
		space:      space,
		cands:      candidates.New(space),
		hist:       game.NewHistory[S](),
		strat:      strat,
		log:        base.With().Str("session", id).Str("strategy", string(strat.Kind())).Logger(),
		state:      AwaitingGuess,
		maxGuesses: cfg.maxGuesses,
	}
}

// NewSession starts a session over codes of the given length drawn from
// the integer symbols 1..colors.
func NewSession(length, colors int, kind strategy.Kind, opts ...Option) (*Session[int], error) {
	alphabet := make([]int, max(colors, 0))
	for i := range alphabet {
		alphabet[i] = i + 1
	}
	space, err := game.NewSpace(length, alphabet)
	if err != nil {
		return nil, err
	}
	strat, err := strategy.New[int](kind, strategy.Options{})
	if err != nil {
		return nil, err
	}
	return New(space, strat, opts...), nil
}

// ID returns the session identifier used in logs.
func (s *Session[S]) ID() string { return s.id }

// State returns the current loop state.
func (s *Session[S]) State() State { return s.state }

// Space returns the session's code space.
func (s *Session[S]) Space() *game.Space[S] { return s.space }

// Candidates exposes the candidate set read-only.
func (s *Session[S]) Candidates() *candidates.Set[S] { return s.cands }

// History exposes the guess history read-only.
func (s *Session[S]) History() *game.History[S] { return s.hist }

// Guesses returns the number of guesses made.
func (s *Session[S]) Guesses() int { return s.hist.Len() }

// Elapsed returns the time from the first guess to termination, or so far.
func (s *Session[S]) Elapsed() time.Duration {
	if s.state.Terminal() || s.started.IsZero() {
		return s.elapsed
	}
	return time.Since(s.started)
}

// Step runs one guess → feedback → prune cycle.
func (s *Session[S]) Step(ctx context.Context, src FeedbackSource[S]) (StepResult[S], error) {
	if s.state.Terminal() {
		return StepResult[S]{}, ErrSessionFinished
	}
	if s.started.IsZero() {
		s.started = time.Now()
	}

	if s.state == AwaitingGuess {
		if s.maxGuesses > 0 && s.hist.Len() >= s.maxGuesses {
			return s.exhaust(ReasonGuessLimit, game.Feedback{}, 0), nil
		}
		guess, err := s.strat.NextGuess(ctx, s.cands, s.hist)
		if errors.Is(err, strategy.ErrNoCandidates) {
			return s.exhaust(ReasonNoCandidates, game.Feedback{}, 0), nil
		}
		if err != nil {
			return StepResult[S]{}, fmt.Errorf("next guess: %w", err)
		}
		idx, err := s.space.Index(guess)
		if err != nil {
			return StepResult[S]{}, fmt.Errorf("next guess: %w", err)
		}
		s.hist.Append(guess, idx)
		s.pending, s.pendingIdx = guess, idx
		s.state = AwaitingFeedback
	}

	fb, err := src.Feedback(ctx, s.pending)
	if err != nil {
		return StepResult[S]{}, fmt.Errorf("feedback for %v: %w", s.pending, err)
	}
	if err := game.ValidateFeedback(fb, s.space.Len()); err != nil {
		s.log.Warn().Err(err).Str("guess", s.pending.String()).Msg("rejected feedback")
		return StepResult[S]{}, err
	}
	s.hist.Answer(fb)
	s.state = Pruning

	removed := s.cands.PruneIndex(s.pendingIdx, fb)
	metrics.PrunedCodes.Add(float64(removed))
	s.log.Debug().Int("guess_no", s.hist.Len()).Str("guess", s.pending.String()).
		Str("feedback", fb.String()).Int("removed", removed).Int("remaining", s.cands.Size()).
		Msg("pruned")

	switch {
	case fb.IsWin(s.space.Len()):
		s.finish(Solved, "solved")
		return s.result(ResultSolved, fb, removed, ""), nil
	case s.cands.Size() == 0:
		return s.exhaust(ReasonNoCandidates, fb, removed), nil
	}
	s.state = AwaitingGuess
	return s.result(ResultGuessed, fb, removed, ""), nil
}

// Run steps until the session is Solved or Exhausted.
func (s *Session[S]) Run(ctx context.Context, src FeedbackSource[S]) (StepResult[S], error) {
	for {
		res, err := s.Step(ctx, src)
		if err != nil {
			return res, err
		}
		if res.Kind != ResultGuessed {
			return res, nil
		}
	}
}

func (s *Session[S]) exhaust(reason string, fb game.Feedback, removed int) StepResult[S] {
	s.finish(Exhausted, "exhausted")
	s.log.Info().Str("reason", reason).Int("guesses", s.hist.Len()).Msg("no solution")
	return s.result(ResultExhausted, fb, removed, reason)
}

func (s *Session[S]) finish(st State, outcome string) {
	s.state = st
	s.elapsed = time.Since(s.started)
	kind := string(s.strat.Kind())
	metrics.SessionsTotal.WithLabelValues(kind, outcome).Inc()
	if st == Solved {
		metrics.GuessesPerSession.WithLabelValues(kind).Observe(float64(s.hist.Len()))
	}
}

func (s *Session[S]) result(kind ResultKind, fb game.Feedback, removed int, reason string) StepResult[S] {
	return StepResult[S]{
		Kind:      kind,
		Guess:     s.pending,
		Feedback:  fb,
		Guesses:   s.hist.Len(),
		Remaining: s.cands.Size(),
		Removed:   removed,
		Reason:    reason,
	}
}
