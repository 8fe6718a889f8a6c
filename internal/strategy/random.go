package strategy

import (
	"context"
	"math/rand"
	"time"

	"golang.org/x/exp/constraints"

	"github.com/robalobadob/mastermind/internal/candidates"
	"github.com/robalobadob/mastermind/internal/game"
)

// Random opens with the pair rule and then draws uniformly from the
// remaining candidates. Under honest feedback the secret is always a
// candidate, so it converges; it gives no worst-case bound.
//
// A Random owns its rng and must not be shared between concurrent sessions.
type Random[S constraints.Ordered] struct {
	rng           *rand.Rand
	randomOpening bool
	book          *Book
}

// NewRandom builds a random-consistent strategy.
func NewRandom[S constraints.Ordered](opts Options) *Random[S] {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Random[S]{
		rng:           rand.New(rand.NewSource(seed)),
		randomOpening: opts.RandomOpening,
		book:          opts.Book,
	}
}

func (r *Random[S]) Kind() Kind { return KindRandom }

func (r *Random[S]) NextGuess(ctx context.Context, cands *candidates.Set[S], hist *game.History[S]) (game.Code[S], error) {
	if err := ctx.Err(); err != nil {
		return game.Code[S]{}, err
	}
	if cands.Size() == 0 {
		return game.Code[S]{}, ErrNoCandidates
	}
	space := cands.Space()
	if hist.Len() == 0 {
		var rng *rand.Rand
		if r.randomOpening {
			rng = r.rng
		}
		return space.Code(bookOrRule(space, r.book, rng)), nil
	}
	members := cands.Indices()
	return space.Code(members[r.rng.Intn(len(members))]), nil
}
