package game

import "golang.org/x/exp/constraints"

// Turn is one entry of a guess history.
type Turn[S constraints.Ordered] struct {
	Guess    Code[S]
	Index    int      // lexicographic index of Guess in its space
	Feedback Feedback // valid once Answered is set
	Answered bool
}

// History is the append-only record of guesses and their feedback.
// A guess is appended before its feedback is known; Answer fills the
// feedback in on the most recent turn.
type History[S constraints.Ordered] struct {
	turns   []Turn[S]
	guessed map[int]struct{}
}

// NewHistory returns an empty history.
func NewHistory[S constraints.Ordered]() *History[S] {
	return &History[S]{guessed: make(map[int]struct{})}
}

// Append records a new guess awaiting feedback.
func (h *History[S]) Append(guess Code[S], index int) {
	h.turns = append(h.turns, Turn[S]{Guess: guess, Index: index})
	h.guessed[index] = struct{}{}
}

// Answer records the feedback for the most recent guess.
// It is a no-op on an empty history.
func (h *History[S]) Answer(f Feedback) {
	if len(h.turns) == 0 {
		return
	}
	last := &h.turns[len(h.turns)-1]
	last.Feedback, last.Answered = f, true
}

// Len returns the number of guesses made.
func (h *History[S]) Len() int { return len(h.turns) }

// Last returns the most recent turn.
func (h *History[S]) Last() (Turn[S], bool) {
	if len(h.turns) == 0 {
		return Turn[S]{}, false
	}
	return h.turns[len(h.turns)-1], true
}

// Turns returns a copy of every turn in order.
func (h *History[S]) Turns() []Turn[S] {
	out := make([]Turn[S], len(h.turns))
	copy(out, h.turns)
	return out
}

// Guessed reports whether the code at index has been guessed before.
// Safe for concurrent readers while nobody appends.
func (h *History[S]) Guessed(index int) bool {
	_, ok := h.guessed[index]
	return ok
}
