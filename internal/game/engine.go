// internal/game/engine.go
//
// Scoring engine.
// Responsibilities:
//   - Score a guess against a reference code using the two-pass algorithm.
//   - Validate externally supplied feedback.
//   - Enumerate every feedback value a code length can produce.
//
// The reference code is always an explicit argument; nothing here holds a
// secret.

package game

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Score compares guess against reference and returns the feedback.
//
// Pass 1:
//   - Count exact matches.
//   - Count the remaining (non-exact) reference symbols.
//
// Pass 2:
//   - For each non-exact guess symbol with a remaining count, add a partial
//     match and consume one count.
//
// Consuming counts bounds each symbol by the minimum of its remaining
// occurrences in guess and reference, so repeated symbols are not double
// counted. Score is symmetric in its arguments.
func Score[S constraints.Ordered](guess, reference Code[S]) (Feedback, error) {
	n := guess.Len()
	if n != reference.Len() {
		return Feedback{}, fmt.Errorf("%w: guess has %d symbols, reference has %d", ErrLengthMismatch, n, reference.Len())
	}

	var fb Feedback
	remaining := make(map[S]int, n)

	// First pass: exact matches and counts for the rest of the reference.
	for i := 0; i < n; i++ {
		if guess.syms[i] == reference.syms[i] {
			fb.Exact++
		} else {
			remaining[reference.syms[i]]++
		}
	}

	// Second pass: partial matches among non-exact guess positions.
	for i := 0; i < n; i++ {
		s := guess.syms[i]
		if s == reference.syms[i] {
			continue
		}
		if remaining[s] > 0 {
			fb.Partial++
			remaining[s]--
		}
	}
	return fb, nil
}

// ValidateFeedback reports whether f can be produced by two codes of the
// given length. It is the gate for interactive feedback.
func ValidateFeedback(f Feedback, length int) error {
	switch {
	case f.Exact < 0 || f.Partial < 0:
		return fmt.Errorf("%w: negative count in %v", ErrInvalidFeedback, f)
	case f.Exact+f.Partial > length:
		return fmt.Errorf("%w: %v exceeds %d positions", ErrInvalidFeedback, f, length)
	case f.Exact == length-1 && f.Partial == 1:
		return fmt.Errorf("%w: %v is impossible", ErrInvalidFeedback, f)
	}
	return nil
}

// Feedbacks enumerates every valid feedback value for the given length,
// ordered by exact then partial. (L-1, 1) is never included.
func Feedbacks(length int) []Feedback {
	out := make([]Feedback, 0, (length+1)*(length+2)/2)
	for exact := 0; exact <= length; exact++ {
		for partial := 0; partial <= length-exact; partial++ {
			f := Feedback{Exact: exact, Partial: partial}
			if ValidateFeedback(f, length) == nil {
				out = append(out, f)
			}
		}
	}
	return out
}
