package strategy

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/constraints"

	"github.com/robalobadob/mastermind/assets"
	"github.com/robalobadob/mastermind/internal/game"
)

// Opening returns the pair-rule first guess: two copies each of distinct
// symbols (AABB for four positions), plus one more symbol when the length
// is odd. With rng nil the symbols are the first in alphabet order;
// otherwise they are drawn at random. Alphabets too small for distinct
// pairs wrap around.
func Opening[S constraints.Ordered](space *game.Space[S], rng *rand.Rand) int {
	k, length := space.Colors(), space.Len()
	order := make([]int, k)
	for i := range order {
		order[i] = i
	}
	if rng != nil {
		order = rng.Perm(k)
	}

	positions := make([]int, length)
	for p := 0; p < length; p++ {
		positions[p] = order[(p/2)%k]
	}
	return indexOf(space, positions)
}

// indexOf converts alphabet positions (most significant first) to a code
// index. Positions are assumed valid for the space.
func indexOf[S constraints.Ordered](space *game.Space[S], positions []int) int {
	idx := 0
	for _, d := range positions {
		idx = idx*space.Colors() + d
	}
	return idx
}

type dims struct{ length, colors int }

// Book maps code dimensions to a known-good opening.
type Book struct {
	entries map[dims][]int
}

// ParseBook reads entries of the form "<length> <colors> <positions...>".
func ParseBook(lines []string) (*Book, error) {
	b := &Book{entries: make(map[dims][]int)}
	for n, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("opening book line %d: too few fields", n+1)
		}
		nums := make([]int, len(fields))
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil || v < 0 {
				return nil, fmt.Errorf("opening book line %d: bad field %q", n+1, f)
			}
			nums[i] = v
		}
		d := dims{length: nums[0], colors: nums[1]}
		positions := nums[2:]
		if len(positions) != d.length {
			return nil, fmt.Errorf("opening book line %d: %d positions for length %d", n+1, len(positions), d.length)
		}
		for _, p := range positions {
			if p >= d.colors {
				return nil, fmt.Errorf("opening book line %d: position %d out of %d colors", n+1, p, d.colors)
			}
		}
		b.entries[d] = positions
	}
	return b, nil
}

// Lookup returns the book opening (alphabet positions) for the dimensions.
func (b *Book) Lookup(length, colors int) ([]int, bool) {
	if b == nil {
		return nil, false
	}
	p, ok := b.entries[dims{length, colors}]
	return p, ok
}

// Len returns the number of entries.
func (b *Book) Len() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}

var (
	bookOnce    sync.Once
	defaultBook *Book
)

// DefaultBook returns the embedded opening book. A malformed embedded book
// is logged and treated as empty.
func DefaultBook() *Book {
	bookOnce.Do(func() {
		lines, err := assets.OpeningLines()
		if err == nil {
			defaultBook, err = ParseBook(lines)
		}
		if err != nil {
			log.Error().Err(err).Msg("load opening book")
			defaultBook = &Book{entries: map[dims][]int{}}
		}
	})
	return defaultBook
}

// bookOrRule picks the opening for a space: random pairs when rng is set,
// then the book, then the fixed pair rule.
func bookOrRule[S constraints.Ordered](space *game.Space[S], book *Book, rng *rand.Rand) int {
	if rng != nil {
		return Opening(space, rng)
	}
	if book == nil {
		book = DefaultBook()
	}
	if p, ok := book.Lookup(space.Len(), space.Colors()); ok {
		return indexOf(space, p)
	}
	return Opening[S](space, nil)
}
