package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_ConcreteScenarios(t *testing.T) {
	cases := []struct {
		name   string
		guess  []int
		secret []int
		want   Feedback
	}{
		// Positions 2 and 4 both match; nothing else overlaps.
		{"pairs against 3142", []int{1, 1, 2, 2}, []int{3, 1, 4, 2}, Feedback{2, 0}},
		{"pairs against 2134", []int{1, 1, 2, 2}, []int{2, 1, 3, 4}, Feedback{1, 1}},
		{"full reversal", []int{1, 2, 3, 4}, []int{4, 3, 2, 1}, Feedback{0, 4}},
		{"self match", []int{5, 4, 3, 2}, []int{5, 4, 3, 2}, Feedback{4, 0}},
		{"no overlap", []int{1, 1, 1, 1}, []int{5, 4, 3, 2}, Feedback{0, 0}},
		{"one exact two partial", []int{1, 2, 3, 4}, []int{5, 4, 3, 2}, Feedback{1, 2}},
		{"repeats counted as multiset", []int{1, 1, 2, 2}, []int{2, 2, 1, 1}, Feedback{0, 4}},
		{"repeat in guess bounded by reference", []int{1, 1, 1, 2}, []int{2, 1, 3, 3}, Feedback{1, 1}},
		{"three exact", []int{5, 4, 3, 1}, []int{5, 4, 3, 2}, Feedback{3, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Score(NewCode(tc.guess...), NewCode(tc.secret...))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestScore_LengthMismatch(t *testing.T) {
	_, err := Score(NewCode(1, 2, 3), NewCode(1, 2, 3, 4))
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestScore_NonNumericSymbols(t *testing.T) {
	got, err := Score(NewCode("red", "red", "blue"), NewCode("blue", "red", "green"))
	require.NoError(t, err)
	assert.Equal(t, Feedback{Exact: 1, Partial: 1}, got)
}

// Exhaustive over 4x4: symmetry, self-match, and the feedback bound.
func TestScore_Properties(t *testing.T) {
	space, err := NewSpace(4, []int{1, 2, 3, 4})
	require.NoError(t, err)
	codes := space.Codes()

	for _, a := range codes {
		self, err := Score(a, a)
		require.NoError(t, err)
		require.Equal(t, Win(4), self)

		for _, b := range codes {
			ab, _ := Score(a, b)
			ba, _ := Score(b, a)
			require.Equal(t, ab, ba, "score(%v,%v)", a, b)
			require.LessOrEqual(t, ab.Exact+ab.Partial, 4)
			require.NotEqual(t, Feedback{3, 1}, ab)
		}
	}
}

func TestValidateFeedback(t *testing.T) {
	assert.NoError(t, ValidateFeedback(Feedback{4, 0}, 4))
	assert.NoError(t, ValidateFeedback(Feedback{0, 4}, 4))
	assert.NoError(t, ValidateFeedback(Feedback{2, 2}, 4))
	assert.ErrorIs(t, ValidateFeedback(Feedback{3, 1}, 4), ErrInvalidFeedback)
	assert.ErrorIs(t, ValidateFeedback(Feedback{3, 2}, 4), ErrInvalidFeedback)
	assert.ErrorIs(t, ValidateFeedback(Feedback{-1, 0}, 4), ErrInvalidFeedback)
	assert.ErrorIs(t, ValidateFeedback(Feedback{5, 0}, 4), ErrInvalidFeedback)
}

func TestFeedbacks_ExcludesImpossiblePair(t *testing.T) {
	fbs := Feedbacks(4)
	assert.Len(t, fbs, 14)
	assert.NotContains(t, fbs, Feedback{3, 1})
	assert.Contains(t, fbs, Feedback{4, 0})
	assert.Equal(t, Feedback{0, 0}, fbs[0])
}
