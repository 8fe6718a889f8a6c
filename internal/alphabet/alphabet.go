// internal/alphabet/alphabet.go
//
// Text alphabets for the command line.
//
// Responsibilities:
//   - Provide the default symbol set for K colors ("123456…9ABC…Z").
//   - Accept a custom alphabet string (one rune per color).
//   - Parse and format codes and feedback typed by a human.
//
// Feedback formats accepted by ParseFeedback:
//   "21"   two digits, exact then partial (lengths up to 9)
//   "2 1"  whitespace separated
//   "2,1"  comma or slash separated
//
// Constraints:
//   • Symbols in a custom alphabet must be unique and non-space.
//   • Parsing is case-insensitive when the alphabet has no lowercase runes.

package alphabet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/robalobadob/mastermind/internal/game"
)

// Digits is the default symbol order. K colors use its first K runes.
const Digits = "123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var (
	ErrTooManyColors     = errors.New("alphabet: too many colors for the default alphabet")
	ErrBadAlphabet       = errors.New("alphabet: invalid custom alphabet")
	ErrMalformedCode     = errors.New("alphabet: malformed code")
	ErrMalformedFeedback = errors.New("alphabet: malformed feedback")
)

// Default returns the first colors runes of Digits.
func Default(colors int) ([]rune, error) {
	all := []rune(Digits)
	if colors <= 0 {
		return nil, fmt.Errorf("%w: colors=%d", game.ErrEmptyAlphabetOrZeroLength, colors)
	}
	if colors > len(all) {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrTooManyColors, colors, len(all))
	}
	return all[:colors], nil
}

// FromString splits a custom alphabet into runes.
func FromString(s string) ([]rune, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrBadAlphabet)
	}
	seen := make(map[rune]struct{}, len(s))
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == ',' {
			return nil, fmt.Errorf("%w: separator %q", ErrBadAlphabet, r)
		}
		if _, dup := seen[r]; dup {
			return nil, fmt.Errorf("%w: %q", game.ErrDuplicateSymbol, r)
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out, nil
}

// Resolve picks the custom alphabet when one is given, otherwise the
// default one for colors.
func Resolve(colors int, custom string) ([]rune, error) {
	if strings.TrimSpace(custom) != "" {
		return FromString(custom)
	}
	return Default(colors)
}

// NewSpace builds the code space for length and a resolved alphabet.
func NewSpace(length, colors int, custom string) (*game.Space[rune], error) {
	syms, err := Resolve(colors, custom)
	if err != nil {
		return nil, err
	}
	return game.NewSpace(length, syms)
}

// ParseCode reads a code such as "3142", "3 1 4 2", or "3,1,4,2" and
// checks every symbol against space.
func ParseCode(space *game.Space[rune], s string) (game.Code[rune], error) {
	var syms []rune
	for _, r := range s {
		if unicode.IsSpace(r) || r == ',' {
			continue
		}
		syms = append(syms, r)
	}
	if len(syms) == 0 {
		return game.Code[rune]{}, fmt.Errorf("%w: %q", ErrMalformedCode, s)
	}
	if foldable(space) {
		for i, r := range syms {
			syms[i] = unicode.ToUpper(r)
		}
	}
	code := game.NewCode(syms...)
	if _, err := space.Index(code); err != nil {
		return game.Code[rune]{}, err
	}
	return code, nil
}

// Format renders a code as plain text.
func Format(c game.Code[rune]) string { return string(c.Symbols()) }

// ParseFeedback reads "XY", "X Y", "X,Y" or "X/Y" and validates the result
// for codes of the given length.
func ParseFeedback(s string, length int) (game.Feedback, error) {
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == '/'
	})
	if len(fields) == 1 && len(fields[0]) == 2 {
		fields = []string{fields[0][:1], fields[0][1:]}
	}
	if len(fields) != 2 {
		return game.Feedback{}, fmt.Errorf("%w: want two numbers, got %q", ErrMalformedFeedback, s)
	}
	var n [2]int
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return game.Feedback{}, fmt.Errorf("%w: %q is not a number", ErrMalformedFeedback, f)
		}
		n[i] = v
	}
	fb := game.Feedback{Exact: n[0], Partial: n[1]}
	if err := game.ValidateFeedback(fb, length); err != nil {
		return game.Feedback{}, err
	}
	return fb, nil
}

// FormatFeedback renders feedback the way ParseFeedback reads it back.
func FormatFeedback(f game.Feedback) string { return fmt.Sprintf("%d %d", f.Exact, f.Partial) }

// foldable reports whether the alphabet has no lowercase runes, so typed
// input can be upper-cased safely.
func foldable(space *game.Space[rune]) bool {
	for _, r := range space.Alphabet() {
		if unicode.IsLower(r) {
			return false
		}
	}
	return true
}
