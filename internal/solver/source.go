package solver

import (
	"context"

	"golang.org/x/exp/constraints"

	"github.com/robalobadob/mastermind/internal/game"
)

// FeedbackSource answers a guess.
type FeedbackSource[S constraints.Ordered] interface {
	Feedback(ctx context.Context, guess game.Code[S]) (game.Feedback, error)
}

// Oracle scores guesses against a concealed secret. It is the only place a
// secret lives, and it is scoped to the session it is passed to.
type Oracle[S constraints.Ordered] struct {
	secret game.Code[S]
}

// NewOracle conceals secret.
func NewOracle[S constraints.Ordered](secret game.Code[S]) *Oracle[S] {
	return &Oracle[S]{secret: secret}
}

func (o *Oracle[S]) Feedback(_ context.Context, guess game.Code[S]) (game.Feedback, error) {
	return game.Score(guess, o.secret)
}

// Respondent is an external party that reports feedback for a guess, such
// as a human at a terminal. It is expected to re-ask on malformed input
// rather than return it.
type Respondent[S constraints.Ordered] interface {
	Respond(ctx context.Context, guess game.Code[S]) (game.Feedback, error)
}

// Interactive delegates feedback to a Respondent.
type Interactive[S constraints.Ordered] struct {
	Respondent Respondent[S]
}

func (i Interactive[S]) Feedback(ctx context.Context, guess game.Code[S]) (game.Feedback, error) {
	return i.Respondent.Respond(ctx, guess)
}

// SourceFunc adapts a function to FeedbackSource.
type SourceFunc[S constraints.Ordered] func(ctx context.Context, guess game.Code[S]) (game.Feedback, error)

func (f SourceFunc[S]) Feedback(ctx context.Context, guess game.Code[S]) (game.Feedback, error) {
	return f(ctx, guess)
}
