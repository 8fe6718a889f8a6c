// internal/candidates/set.go
//
// Candidate set: the codes still consistent with every feedback received.
//
// Characteristics:
//   - Starts as the full space (all K^L codes) in lexicographic order.
//   - Only ever shrinks; a prune is irrevocable within a session.
//   - An empty set is a legal state. It means the feedback history is
//     inconsistent and is reported by the solver, not raised here.
//   - Not safe for concurrent mutation. Indices returns a snapshot that a
//     prune never touches, so readers may keep using it while the owner
//     prunes.

package candidates

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/robalobadob/mastermind/internal/game"
)

// ErrNotSingleton is returned by PopSingleton when the set does not hold
// exactly one code.
var ErrNotSingleton = errors.New("candidate set is not a singleton")

// Set is the evolving universe of consistent codes, stored as indices into
// a game.Space.
type Set[S constraints.Ordered] struct {
	space   *game.Space[S]
	members []int  // ascending
	in      []bool // membership by index
	removed int    // codes discarded by the last prune
}

// New materializes every code in space as a candidate.
func New[S constraints.Ordered](space *game.Space[S]) *Set[S] {
	n := space.Size()
	c := &Set[S]{
		space:   space,
		members: make([]int, n),
		in:      make([]bool, n),
	}
	for i := 0; i < n; i++ {
		c.members[i] = i
		c.in[i] = true
	}
	return c
}

// Space returns the code space the set draws from.
func (c *Set[S]) Space() *game.Space[S] { return c.space }

// Size returns the number of remaining candidates.
func (c *Set[S]) Size() int { return len(c.members) }

// IsSingleton reports whether exactly one candidate remains.
func (c *Set[S]) IsSingleton() bool { return len(c.members) == 1 }

// Removed returns how many codes the last prune discarded.
func (c *Set[S]) Removed() int { return c.removed }

// PopSingleton returns the sole remaining candidate.
// The set itself is left as is: the answer stays consistent with its history.
func (c *Set[S]) PopSingleton() (game.Code[S], error) {
	if len(c.members) != 1 {
		return game.Code[S]{}, fmt.Errorf("%w: %d remain", ErrNotSingleton, len(c.members))
	}
	return c.space.Code(c.members[0]), nil
}

// Contains reports whether code is still a candidate. Codes outside the
// space are never candidates.
func (c *Set[S]) Contains(code game.Code[S]) bool {
	i, err := c.space.Index(code)
	if err != nil {
		return false
	}
	return c.in[i]
}

// ContainsIndex reports whether the code at index i is still a candidate.
func (c *Set[S]) ContainsIndex(i int) bool {
	return i >= 0 && i < len(c.in) && c.in[i]
}

// Indices returns the remaining candidate indices in ascending order.
// The slice is a snapshot shared with the set and must not be modified.
func (c *Set[S]) Indices() []int { return c.members }

// Codes materializes the remaining candidates in lexicographic order.
func (c *Set[S]) Codes() []game.Code[S] {
	out := make([]game.Code[S], len(c.members))
	for k, i := range c.members {
		out[k] = c.space.Code(i)
	}
	return out
}

// Prune keeps exactly the candidates c with score(guess, c) == fb and
// returns the number discarded.
func (c *Set[S]) Prune(guess game.Code[S], fb game.Feedback) (int, error) {
	g, err := c.space.Index(guess)
	if err != nil {
		return 0, fmt.Errorf("prune: %w", err)
	}
	return c.PruneIndex(g, fb), nil
}

// PruneIndex is Prune for a guess given by index.
func (c *Set[S]) PruneIndex(guess int, fb game.Feedback) int {
	want := c.space.Key(fb)
	kept := make([]int, 0, len(c.members))
	for _, i := range c.members {
		if c.space.ScoreKey(guess, i) == want {
			kept = append(kept, i)
		} else {
			c.in[i] = false
		}
	}
	c.removed = len(c.members) - len(kept)
	c.members = kept
	return c.removed
}
