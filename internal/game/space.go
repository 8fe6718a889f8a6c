// internal/game/space.go
//
// Space is the full universe of K^L codes for one (length, alphabet) pair.
// Responsibilities:
//   - Validate dimensions before any session starts.
//   - Enumerate codes in lexicographic order of the (sorted) alphabet, so a
//     code's index doubles as its tie-break rank.
//   - Convert between codes and indices.
//   - Score codes by index on a fast path shared by pruning and minimax.
//
// Notes:
//   - Each code is stored once as a row of alphabet positions (digits).
//   - For small spaces a full score table is built on first use and shared
//     read-only by every caller, including concurrent batch sessions.

package game

import (
	"fmt"
	"sync"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

const (
	// MaxSpaceSize bounds K^L. The minimax strategy is deliberately brute
	// force and is only practical far below this.
	MaxSpaceSize = 1 << 24

	// MaxColors is the largest alphabet a Space accepts (digits are bytes).
	MaxColors = 256

	// tableLimit is the largest space that gets a precomputed score table.
	tableLimit = 4096
)

// Space holds the full code space for a length and alphabet.
type Space[S constraints.Ordered] struct {
	length   int
	alphabet []S
	position map[S]uint8
	size     int
	digits   []uint8 // size rows of length digits

	tableOnce sync.Once
	table     []uint8 // size*size feedback keys, nil when too large
}

// NewSpace validates the dimensions and enumerates every code.
// The alphabet is copied and sorted; duplicates are rejected.
func NewSpace[S constraints.Ordered](length int, alphabet []S) (*Space[S], error) {
	if length <= 0 || len(alphabet) == 0 {
		return nil, fmt.Errorf("%w: length=%d colors=%d", ErrEmptyAlphabetOrZeroLength, length, len(alphabet))
	}
	if len(alphabet) > MaxColors {
		return nil, fmt.Errorf("%w: %d colors (max %d)", ErrSpaceTooLarge, len(alphabet), MaxColors)
	}

	sorted := slices.Clone(alphabet)
	slices.Sort(sorted)
	position := make(map[S]uint8, len(sorted))
	for i, s := range sorted {
		if _, dup := position[s]; dup {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateSymbol, s)
		}
		position[s] = uint8(i)
	}

	size := 1
	for i := 0; i < length; i++ {
		size *= len(sorted)
		if size > MaxSpaceSize {
			return nil, fmt.Errorf("%w: %d^%d codes (max %d)", ErrSpaceTooLarge, len(sorted), length, MaxSpaceSize)
		}
	}

	s := &Space[S]{
		length:   length,
		alphabet: sorted,
		position: position,
		size:     size,
		digits:   make([]uint8, size*length),
	}
	// Odometer over the alphabet, last position fastest.
	row := make([]uint8, length)
	for i := 0; i < size; i++ {
		copy(s.digits[i*length:], row)
		for p := length - 1; p >= 0; p-- {
			row[p]++
			if int(row[p]) < len(sorted) {
				break
			}
			row[p] = 0
		}
	}
	return s, nil
}

// Len returns the code length L.
func (s *Space[S]) Len() int { return s.length }

// Colors returns the alphabet size K.
func (s *Space[S]) Colors() int { return len(s.alphabet) }

// Size returns K^L.
func (s *Space[S]) Size() int { return s.size }

// Alphabet returns a copy of the sorted alphabet.
func (s *Space[S]) Alphabet() []S { return slices.Clone(s.alphabet) }

// Symbol returns the alphabet symbol at position i.
func (s *Space[S]) Symbol(i int) S { return s.alphabet[i] }

// Code returns the code at index i.
func (s *Space[S]) Code(i int) Code[S] {
	row := s.row(i)
	syms := make([]S, s.length)
	for p, d := range row {
		syms[p] = s.alphabet[d]
	}
	return Code[S]{syms: syms}
}

// Index returns the lexicographic index of c.
func (s *Space[S]) Index(c Code[S]) (int, error) {
	if c.Len() != s.length {
		return 0, fmt.Errorf("%w: code has %d symbols, space has %d", ErrLengthMismatch, c.Len(), s.length)
	}
	idx := 0
	for _, sym := range c.syms {
		d, ok := s.position[sym]
		if !ok {
			return 0, fmt.Errorf("%w: %v", ErrUnknownSymbol, sym)
		}
		idx = idx*len(s.alphabet) + int(d)
	}
	return idx, nil
}

// Codes materializes every code in index order.
func (s *Space[S]) Codes() []Code[S] {
	out := make([]Code[S], s.size)
	for i := range out {
		out[i] = s.Code(i)
	}
	return out
}

// Feedbacks enumerates the valid feedback values for this space.
func (s *Space[S]) Feedbacks() []Feedback { return Feedbacks(s.length) }

// KeyCount is the number of distinct feedback keys ScoreKey can return.
func (s *Space[S]) KeyCount() int { return (s.length + 1) * (s.length + 1) }

// Key encodes f as a dense integer in [0, KeyCount).
func (s *Space[S]) Key(f Feedback) int { return f.Exact*(s.length+1) + f.Partial }

// FeedbackOf decodes a key produced by Key or ScoreKey.
func (s *Space[S]) FeedbackOf(key int) Feedback {
	return Feedback{Exact: key / (s.length + 1), Partial: key % (s.length + 1)}
}

// Score returns the feedback for the codes at indices i and j.
func (s *Space[S]) Score(i, j int) Feedback { return s.FeedbackOf(s.ScoreKey(i, j)) }

// ScoreKey returns the feedback key for the codes at indices i and j.
// Indices must be in range; this is the hot path for pruning and minimax.
func (s *Space[S]) ScoreKey(i, j int) int {
	s.tableOnce.Do(s.buildTable)
	if s.table != nil {
		return int(s.table[i*s.size+j])
	}
	return s.scoreRows(s.row(i), s.row(j))
}

// CheckIndex validates an index against the space.
func (s *Space[S]) CheckIndex(i int) error {
	if i < 0 || i >= s.size {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, i, s.size)
	}
	return nil
}

func (s *Space[S]) row(i int) []uint8 {
	return s.digits[i*s.length : (i+1)*s.length]
}

// scoreRows is the two-pass algorithm of Score over digit rows.
func (s *Space[S]) scoreRows(a, b []uint8) int {
	var remaining [MaxColors]uint8
	exact, partial := 0, 0
	for p := range a {
		if a[p] == b[p] {
			exact++
		} else {
			remaining[b[p]]++
		}
	}
	for p := range a {
		if a[p] != b[p] && remaining[a[p]] > 0 {
			partial++
			remaining[a[p]]--
		}
	}
	return exact*(s.length+1) + partial
}

// buildTable precomputes every pairwise score for small spaces.
// Keys fit a byte whenever the table is built: size <= 4096 implies L <= 12
// for K >= 2, and K == 1 has a single code.
func (s *Space[S]) buildTable() {
	if s.size > tableLimit || s.KeyCount() > 256 {
		return
	}
	t := make([]uint8, s.size*s.size)
	for i := 0; i < s.size; i++ {
		ri := s.row(i)
		for j := i; j < s.size; j++ {
			k := uint8(s.scoreRows(ri, s.row(j)))
			t[i*s.size+j] = k
			t[j*s.size+i] = k
		}
	}
	s.table = t
}
