// internal/strategy/strategy.go
//
// Guess strategies.
// Responsibilities:
//   - Define the Strategy contract shared by every policy.
//   - Construct a policy by kind (random-consistent or minimax).
//
// A strategy only reads the candidate set and history; the solver owns
// and mutates both.

package strategy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"

	"github.com/robalobadob/mastermind/internal/candidates"
	"github.com/robalobadob/mastermind/internal/game"
)

// Kind names a guess strategy.
type Kind string

const (
	KindRandom  Kind = "random"
	KindMinimax Kind = "minimax"
)

var (
	ErrUnknownKind  = errors.New("unknown strategy")
	ErrNoCandidates = errors.New("no candidates left")
)

// ParseKind maps a user-facing name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindRandom, "rand":
		return KindRandom, nil
	case KindMinimax, "knuth":
		return KindMinimax, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Strategy proposes the next guess.
//
// cands is the current candidate set (its Space is the full code space);
// hist holds every guess made so far. Implementations must not mutate
// either.
type Strategy[S constraints.Ordered] interface {
	Kind() Kind
	NextGuess(ctx context.Context, cands *candidates.Set[S], hist *game.History[S]) (game.Code[S], error)
}

// Options configures a strategy.
type Options struct {
	// Seed drives the random strategy and random openings. Zero picks a
	// time-based seed.
	Seed int64

	// RandomOpening draws the opening pairs at random instead of taking
	// the book or the fixed pair rule.
	RandomOpening bool

	// Workers bounds the minimax fan-out. Zero means GOMAXPROCS.
	Workers int

	// ComputeOpening makes minimax search the full space for its first
	// guess (cached per dimensions) instead of using the book.
	ComputeOpening bool

	// Book overrides the embedded opening book.
	Book *Book
}

// New constructs the strategy named by kind.
func New[S constraints.Ordered](kind Kind, opts Options) (Strategy[S], error) {
	switch kind {
	case KindRandom:
		return NewRandom[S](opts), nil
	case KindMinimax:
		return NewMinimax[S](opts), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
