package candidates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/mastermind/internal/game"
)

func classicSpace(t *testing.T) *game.Space[int] {
	t.Helper()
	s, err := game.NewSpace(4, []int{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	return s
}

func TestNew_FullSpace(t *testing.T) {
	c := New(classicSpace(t))
	assert.Equal(t, 1296, c.Size())
	assert.False(t, c.IsSingleton())
	assert.True(t, c.Contains(game.NewCode(6, 6, 6, 6)))
	assert.False(t, c.Contains(game.NewCode(7, 6, 6, 6)))
	assert.Equal(t, 0, c.Indices()[0])
	assert.Equal(t, 1295, c.Indices()[1295])
}

func TestPrune_KeepsSecretAndShrinks(t *testing.T) {
	space := classicSpace(t)
	c := New(space)
	secret := game.NewCode(3, 1, 4, 2)

	for _, guess := range []game.Code[int]{
		game.NewCode(1, 1, 2, 2),
		game.NewCode(1, 3, 4, 5),
		game.NewCode(3, 4, 1, 2),
	} {
		before := c.Size()
		fb, err := game.Score(guess, secret)
		require.NoError(t, err)

		removed, err := c.Prune(guess, fb)
		require.NoError(t, err)

		assert.LessOrEqual(t, c.Size(), before)
		assert.Equal(t, before-c.Size(), removed)
		assert.Equal(t, removed, c.Removed())
		assert.True(t, c.Contains(secret), "secret pruned after %v", guess)
		for _, code := range c.Codes() {
			got, _ := game.Score(guess, code)
			require.Equal(t, fb, got)
		}
	}
}

func TestPrune_FirstGuessPartition(t *testing.T) {
	c := New(classicSpace(t))
	_, err := c.Prune(game.NewCode(1, 1, 2, 2), game.Feedback{Exact: 1, Partial: 1})
	require.NoError(t, err)
	assert.Equal(t, 208, c.Size())
	assert.True(t, c.Contains(game.NewCode(2, 1, 3, 4)))
	assert.False(t, c.Contains(game.NewCode(3, 1, 4, 2)))
	assert.False(t, c.Contains(game.NewCode(1, 1, 2, 2)))
}

func TestPrune_InconsistentFeedbackEmptiesSet(t *testing.T) {
	c := New(classicSpace(t))
	guess := game.NewCode(1, 2, 3, 4)

	_, err := c.Prune(guess, game.Feedback{Exact: 0, Partial: 4})
	require.NoError(t, err)
	require.Greater(t, c.Size(), 0)

	// Every remaining code is a permutation of 1234; none can score (0,0).
	_, err = c.Prune(guess, game.Feedback{Exact: 0, Partial: 0})
	require.NoError(t, err)
	assert.Equal(t, 0, c.Size())
	assert.False(t, c.IsSingleton())

	_, err = c.PopSingleton()
	assert.ErrorIs(t, err, ErrNotSingleton)
}

func TestPopSingleton(t *testing.T) {
	space := classicSpace(t)
	c := New(space)
	secret := game.NewCode(2, 5, 2, 1)

	_, err := c.Prune(secret, game.Win(4))
	require.NoError(t, err)
	require.True(t, c.IsSingleton())

	got, err := c.PopSingleton()
	require.NoError(t, err)
	assert.Equal(t, secret, got)
}

func TestPrune_RejectsForeignGuess(t *testing.T) {
	c := New(classicSpace(t))
	_, err := c.Prune(game.NewCode(1, 2, 3), game.Feedback{})
	assert.ErrorIs(t, err, game.ErrLengthMismatch)
	assert.Equal(t, 1296, c.Size())
}

func TestIndices_SnapshotSurvivesPrune(t *testing.T) {
	c := New(classicSpace(t))
	snap := c.Indices()
	c.PruneIndex(0, game.Feedback{Exact: 0, Partial: 0})
	assert.Len(t, snap, 1296)
	assert.Equal(t, 625, c.Size()) // codes without a 1: 5^4
}
