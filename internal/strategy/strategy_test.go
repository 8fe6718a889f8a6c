package strategy

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/mastermind/internal/candidates"
	"github.com/robalobadob/mastermind/internal/game"
)

func classicSpace(t *testing.T) *game.Space[int] {
	t.Helper()
	s, err := game.NewSpace(4, []int{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	return s
}

// afterOpening plays the opening 1122 against secret and returns the
// pruned candidates and history.
func afterOpening(t *testing.T, space *game.Space[int], secret game.Code[int]) (*candidates.Set[int], *game.History[int]) {
	t.Helper()
	opening := game.NewCode(1, 1, 2, 2)
	idx, err := space.Index(opening)
	require.NoError(t, err)

	fb, err := game.Score(opening, secret)
	require.NoError(t, err)

	cands := candidates.New(space)
	hist := game.NewHistory[int]()
	hist.Append(opening, idx)
	hist.Answer(fb)
	_, err = cands.Prune(opening, fb)
	require.NoError(t, err)
	return cands, hist
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Minimax ")
	require.NoError(t, err)
	assert.Equal(t, KindMinimax, k)

	k, err = ParseKind("random")
	require.NoError(t, err)
	assert.Equal(t, KindRandom, k)

	_, err = ParseKind("genetic")
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = New[int]("genetic", Options{})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestOpening_PairRule(t *testing.T) {
	space := classicSpace(t)
	assert.Equal(t, game.NewCode(1, 1, 2, 2), space.Code(Opening(space, nil)))

	odd, err := game.NewSpace(5, []int{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, game.NewCode(1, 1, 2, 2, 3), odd.Code(Opening(odd, nil)))

	// One color: the pairs wrap onto the only symbol.
	mono, err := game.NewSpace(4, []int{7})
	require.NoError(t, err)
	assert.Equal(t, game.NewCode(7, 7, 7, 7), mono.Code(Opening(mono, nil)))
}

func TestOpening_RandomPairsAreDistinct(t *testing.T) {
	space := classicSpace(t)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		c := space.Code(Opening(space, rng))
		assert.Equal(t, c.At(0), c.At(1))
		assert.Equal(t, c.At(2), c.At(3))
		assert.NotEqual(t, c.At(0), c.At(2))
	}
}

func TestParseBook(t *testing.T) {
	b, err := ParseBook([]string{"4 6 0 0 1 1", "5 6 0 0 1 2 3"})
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())

	p, ok := b.Lookup(5, 6)
	require.True(t, ok)
	assert.Equal(t, []int{0, 0, 1, 2, 3}, p)

	_, ok = b.Lookup(4, 8)
	assert.False(t, ok)

	_, err = ParseBook([]string{"4 6 0 0 1"})
	assert.Error(t, err)
	_, err = ParseBook([]string{"4 6 0 0 1 9"})
	assert.Error(t, err)
	_, err = ParseBook([]string{"4 six 0 0 1 1"})
	assert.Error(t, err)
}

func TestDefaultBook_Embedded(t *testing.T) {
	b := DefaultBook()
	p, ok := b.Lookup(4, 6)
	require.True(t, ok)
	assert.Equal(t, []int{0, 0, 1, 1}, p)
}

func TestRandom_DrawsFromCandidates(t *testing.T) {
	space := classicSpace(t)
	secret := game.NewCode(3, 1, 4, 2)
	cands, hist := afterOpening(t, space, secret)

	r := NewRandom[int](Options{Seed: 7})
	for i := 0; i < 100; i++ {
		g, err := r.NextGuess(context.Background(), cands, hist)
		require.NoError(t, err)
		assert.True(t, cands.Contains(g), "%v is not a candidate", g)
	}
}

func TestRandom_FirstGuessIsOpening(t *testing.T) {
	space := classicSpace(t)
	r := NewRandom[int](Options{Seed: 1})
	g, err := r.NextGuess(context.Background(), candidates.New(space), game.NewHistory[int]())
	require.NoError(t, err)
	assert.Equal(t, game.NewCode(1, 1, 2, 2), g)
}

func TestStrategies_EmptyCandidates(t *testing.T) {
	space := classicSpace(t)
	cands := candidates.New(space)
	cands.PruneIndex(0, game.Feedback{Exact: 3, Partial: 1})
	require.Equal(t, 0, cands.Size())

	for _, s := range []Strategy[int]{NewRandom[int](Options{Seed: 1}), NewMinimax[int](Options{})} {
		_, err := s.NextGuess(context.Background(), cands, game.NewHistory[int]())
		assert.ErrorIs(t, err, ErrNoCandidates, string(s.Kind()))
	}
}

func TestMinimax_PrefersNonCandidateWhenStrictlyBetter(t *testing.T) {
	space := classicSpace(t)
	// 1122 -> (2,0) leaves 114 candidates; Knuth's follow-up is 1234,
	// which is not itself a candidate.
	cands, hist := afterOpening(t, space, game.NewCode(3, 1, 4, 2))
	require.Equal(t, 114, cands.Size())

	m := NewMinimax[int](Options{Workers: 3})
	g, err := m.NextGuess(context.Background(), cands, hist)
	require.NoError(t, err)
	assert.Equal(t, game.NewCode(1, 2, 3, 4), g)
	assert.False(t, cands.Contains(g))
}

func TestMinimax_PrefersCandidateOnTie(t *testing.T) {
	space := classicSpace(t)
	// 1122 -> (0,0) leaves 256 candidates; Knuth's follow-up is 3345.
	cands, hist := afterOpening(t, space, game.NewCode(6, 6, 6, 6))
	require.Equal(t, 256, cands.Size())

	m := NewMinimax[int](Options{Workers: 4})
	g, err := m.NextGuess(context.Background(), cands, hist)
	require.NoError(t, err)
	assert.Equal(t, game.NewCode(3, 3, 4, 5), g)
	assert.True(t, cands.Contains(g))
}

func TestMinimax_DeterministicAcrossWorkerCounts(t *testing.T) {
	space := classicSpace(t)
	cands, hist := afterOpening(t, space, game.NewCode(2, 5, 2, 1))

	var first game.Code[int]
	for i, w := range []int{1, 2, 5, 16} {
		g, err := NewMinimax[int](Options{Workers: w}).NextGuess(context.Background(), cands, hist)
		require.NoError(t, err)
		if i == 0 {
			first = g
			continue
		}
		assert.Equal(t, first, g, "workers=%d", w)
	}
}

func TestMinimax_SingletonIsReturned(t *testing.T) {
	space := classicSpace(t)
	secret := game.NewCode(4, 4, 2, 6)
	cands := candidates.New(space)
	hist := game.NewHistory[int]()

	idx, _ := space.Index(secret)
	hist.Append(space.Code(0), 0)
	cands.PruneIndex(idx, game.Win(4))
	require.True(t, cands.IsSingleton())

	g, err := NewMinimax[int](Options{}).NextGuess(context.Background(), cands, hist)
	require.NoError(t, err)
	assert.Equal(t, secret, g)
}

func TestMinimax_NeverRepeatsGuess(t *testing.T) {
	space, err := game.NewSpace(3, []int{1, 2, 3})
	require.NoError(t, err)
	secret := game.NewCode(3, 1, 2)

	cands := candidates.New(space)
	hist := game.NewHistory[int]()
	m := NewMinimax[int](Options{Workers: 2})
	seen := map[int]bool{}
	for turn := 0; turn < 10; turn++ {
		g, err := m.NextGuess(context.Background(), cands, hist)
		require.NoError(t, err)
		idx, _ := space.Index(g)
		require.False(t, seen[idx], "repeated %v", g)
		seen[idx] = true

		fb, _ := game.Score(g, secret)
		hist.Append(g, idx)
		hist.Answer(fb)
		if fb.IsWin(3) {
			return
		}
		cands.PruneIndex(idx, fb)
	}
	t.Fatal("secret not found in 10 guesses")
}

func TestMinimax_ComputedOpening(t *testing.T) {
	space := classicSpace(t)
	m := NewMinimax[int](Options{ComputeOpening: true})
	g, err := m.NextGuess(context.Background(), candidates.New(space), game.NewHistory[int]())
	require.NoError(t, err)
	assert.Equal(t, game.NewCode(1, 1, 2, 2), g)

	_, cached := openingCache.Get(dims{4, 6})
	assert.True(t, cached)
}

func TestMinimax_Cancelled(t *testing.T) {
	space := classicSpace(t)
	cands, hist := afterOpening(t, space, game.NewCode(6, 6, 6, 6))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMinimax[int](Options{}).NextGuess(ctx, cands, hist)
	assert.ErrorIs(t, err, context.Canceled)
}
