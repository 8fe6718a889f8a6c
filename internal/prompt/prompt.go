// internal/prompt/prompt.go
//
// Terminal respondent: shows each guess to a human holding the secret and
// reads back the feedback.
//
// Input handling:
//   - Malformed or impossible feedback is reported and asked for again; it
//     never reaches the solver.
//   - End of input ends the game with io.ErrUnexpectedEOF.
//   - "q" or "quit" ends the game with ErrQuit.

package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/robalobadob/mastermind/internal/alphabet"
	"github.com/robalobadob/mastermind/internal/game"
)

// ErrQuit is returned when the player asks to stop.
var ErrQuit = errors.New("player quit")

// Terminal reads feedback line by line.
type Terminal struct {
	in     *bufio.Scanner
	out    io.Writer
	length int
	turn   int
}

// New returns a Terminal for codes of the given length.
func New(in io.Reader, out io.Writer, length int) *Terminal {
	return &Terminal{in: bufio.NewScanner(in), out: out, length: length}
}

// Respond prints guess and blocks until valid feedback is entered.
func (t *Terminal) Respond(ctx context.Context, guess game.Code[rune]) (game.Feedback, error) {
	t.turn++
	fmt.Fprintf(t.out, "Guess %d: %s\n", t.turn, alphabet.Format(guess))
	for {
		if err := ctx.Err(); err != nil {
			return game.Feedback{}, err
		}
		fmt.Fprintf(t.out, "exact and partial (e.g. %d0 or %d 0): ", t.length, t.length)
		if !t.in.Scan() {
			if err := t.in.Err(); err != nil {
				return game.Feedback{}, err
			}
			return game.Feedback{}, io.ErrUnexpectedEOF
		}
		line := strings.TrimSpace(t.in.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "q", "quit":
			return game.Feedback{}, ErrQuit
		}
		fb, err := alphabet.ParseFeedback(line, t.length)
		if err != nil {
			fmt.Fprintf(t.out, "  %s\n", explain(err, t.length))
			continue
		}
		return fb, nil
	}
}

func explain(err error, length int) string {
	switch {
	case errors.Is(err, alphabet.ErrMalformedFeedback):
		return "please enter two numbers: exact matches, then partial matches"
	case errors.Is(err, game.ErrInvalidFeedback):
		return fmt.Sprintf("that feedback is impossible for %d positions", length)
	}
	return err.Error()
}
