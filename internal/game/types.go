// internal/game/types.go
//
// Core type definitions for the solving engine.
// Defines:
//   - Code: an immutable, ordered sequence of symbols (a secret or a guess).
//   - Feedback: exact ("black peg") and partial ("white peg") match counts.
//
// Symbols are any ordered, comparable type. Nothing in this package depends
// on symbols being numeric.

package game

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Code is an ordered sequence of symbols of fixed length.
// The zero value is the empty code. Codes are immutable once constructed:
// the backing slice is never handed out.
type Code[S constraints.Ordered] struct {
	syms []S
}

// NewCode copies syms into a new Code.
func NewCode[S constraints.Ordered](syms ...S) Code[S] {
	c := make([]S, len(syms))
	copy(c, syms)
	return Code[S]{syms: c}
}

// Len returns the number of positions in the code.
func (c Code[S]) Len() int { return len(c.syms) }

// At returns the symbol at position i.
func (c Code[S]) At(i int) S { return c.syms[i] }

// Symbols returns a copy of the code's symbols.
func (c Code[S]) Symbols() []S {
	out := make([]S, len(c.syms))
	copy(out, c.syms)
	return out
}

// Equal reports whether both codes hold the same symbols in the same order.
func (c Code[S]) Equal(o Code[S]) bool {
	if len(c.syms) != len(o.syms) {
		return false
	}
	for i := range c.syms {
		if c.syms[i] != o.syms[i] {
			return false
		}
	}
	return true
}

// String renders rune codes as text and anything else with %v.
func (c Code[S]) String() string {
	if rs, ok := any(c.syms).([]rune); ok {
		return string(rs)
	}
	return fmt.Sprintf("%v", c.syms)
}

// Feedback is the response to a guess.
//   - Exact:   positions where guess and code share the same symbol.
//   - Partial: further symbols present in both, counted with multiplicity,
//     after exact matches are removed.
type Feedback struct {
	Exact   int `json:"exact"`
	Partial int `json:"partial"`
}

// Win returns the full exact-match feedback for codes of the given length.
func Win(length int) Feedback { return Feedback{Exact: length} }

// IsWin reports whether f is the full exact match for the given length.
func (f Feedback) IsWin(length int) bool { return f.Exact == length && f.Partial == 0 }

func (f Feedback) String() string { return fmt.Sprintf("(%d,%d)", f.Exact, f.Partial) }
