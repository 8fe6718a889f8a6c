package strategy

import (
	"context"
	"math/rand"
	"runtime"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/mastermind/internal/candidates"
	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/metrics"
)

// Computed openings keyed by dimensions. A full-space search is the most
// expensive turn of a game and its answer depends only on (L, K).
var openingCache = mustCache(64)

func mustCache(size int) *lru.Cache[dims, int] {
	c, err := lru.New[dims, int](size)
	if err != nil {
		panic(err)
	}
	return c
}

// Minimax is Knuth's worst-case minimizing strategy.
//
// Every code in the full space is scored as a hypothetical guess p: the
// candidates are partitioned by the feedback they would give against p and
// worst(p) is the largest partition. The guess minimizing worst(p) wins;
// ties go to a current candidate, then to the smallest index.
//
// Evaluation is split across workers over a read-only candidate snapshot
// and reduced after all of them finish, so the choice does not depend on
// scheduling. Minimax holds no per-session state and may be shared.
type Minimax[S constraints.Ordered] struct {
	workers        int
	computeOpening bool
	book           *Book
	rng            *rand.Rand
}

// NewMinimax builds a minimax strategy.
func NewMinimax[S constraints.Ordered](opts Options) *Minimax[S] {
	m := &Minimax[S]{
		workers:        opts.Workers,
		computeOpening: opts.ComputeOpening,
		book:           opts.Book,
	}
	if m.workers <= 0 {
		m.workers = runtime.GOMAXPROCS(0)
	}
	if opts.RandomOpening {
		seed := opts.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		m.rng = rand.New(rand.NewSource(seed))
	}
	return m
}

func (m *Minimax[S]) Kind() Kind { return KindMinimax }

func (m *Minimax[S]) NextGuess(ctx context.Context, cands *candidates.Set[S], hist *game.History[S]) (game.Code[S], error) {
	if cands.Size() == 0 {
		return game.Code[S]{}, ErrNoCandidates
	}
	space := cands.Space()

	if hist.Len() == 0 {
		idx, err := m.opening(ctx, cands, hist)
		if err != nil {
			return game.Code[S]{}, err
		}
		return space.Code(idx), nil
	}
	if cands.IsSingleton() {
		return cands.PopSingleton()
	}

	best, err := m.search(ctx, cands, hist)
	if err != nil {
		return game.Code[S]{}, err
	}
	if !best.ok {
		return game.Code[S]{}, ErrNoCandidates
	}
	return space.Code(best.index), nil
}

func (m *Minimax[S]) opening(ctx context.Context, cands *candidates.Set[S], hist *game.History[S]) (int, error) {
	space := cands.Space()
	if !m.computeOpening || m.rng != nil {
		return bookOrRule(space, m.book, m.rng), nil
	}
	key := dims{space.Len(), space.Colors()}
	if idx, ok := openingCache.Get(key); ok {
		return idx, nil
	}
	best, err := m.search(ctx, cands, hist)
	if err != nil {
		return 0, err
	}
	openingCache.Add(key, best.index)
	log.Debug().Int("length", key.length).Int("colors", key.colors).
		Str("opening", space.Code(best.index).String()).Int("worst", best.worst).
		Msg("computed opening")
	return best.index, nil
}

// pick is one hypothetical guess and its score.
type pick struct {
	index  int
	worst  int
	member bool
	ok     bool
}

// better orders picks by worst case, then candidate membership, then index.
// It is a total order, so any reduction order gives the same winner.
func (a pick) better(b pick) bool {
	switch {
	case !b.ok:
		return a.ok
	case !a.ok:
		return false
	case a.worst != b.worst:
		return a.worst < b.worst
	case a.member != b.member:
		return a.member
	}
	return a.index < b.index
}

// search evaluates every code in the space against the candidate snapshot.
func (m *Minimax[S]) search(ctx context.Context, cands *candidates.Set[S], hist *game.History[S]) (pick, error) {
	start := time.Now()
	space := cands.Space()
	snapshot := cands.Indices()
	n := space.Size()

	workers := m.workers
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers
	results := make([]pick, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		lo, hi := w*chunk, min((w+1)*chunk, n)
		g.Go(func() error {
			best, err := evaluateRange(gctx, cands, hist, snapshot, lo, hi)
			results[w] = best
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return pick{}, err
	}

	var best pick
	for _, r := range results {
		if r.better(best) {
			best = r
		}
	}
	metrics.MinimaxDuration.Observe(time.Since(start).Seconds())
	log.Debug().Int("candidates", len(snapshot)).Int("worst", best.worst).
		Bool("member", best.member).Dur("took", time.Since(start)).Msg("minimax pick")
	return best, nil
}

// evaluateRange scores hypothetical guesses [lo, hi).
func evaluateRange[S constraints.Ordered](ctx context.Context, cands *candidates.Set[S], hist *game.History[S], snapshot []int, lo, hi int) (pick, error) {
	space := cands.Space()
	counts := make([]int, space.KeyCount())
	var best pick

	for p := lo; p < hi; p++ {
		if (p-lo)&255 == 0 {
			if err := ctx.Err(); err != nil {
				return best, err
			}
		}
		if hist.Guessed(p) {
			continue
		}

		clear(counts)
		worst := 0
		for _, c := range snapshot {
			k := space.ScoreKey(p, c)
			counts[k]++
			if counts[k] > worst {
				worst = counts[k]
				// Strictly worse than the best so far: stop early.
				if best.ok && worst > best.worst {
					break
				}
			}
		}

		cand := pick{index: p, worst: worst, member: cands.ContainsIndex(p), ok: true}
		if cand.better(best) {
			best = cand
		}
	}
	return best, nil
}
