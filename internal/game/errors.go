package game

import "errors"

var (
	// ErrLengthMismatch is returned when two codes (or a code and a space)
	// disagree on length. Retrying with the same inputs cannot succeed.
	ErrLengthMismatch = errors.New("code length mismatch")

	// ErrInvalidFeedback is returned for feedback values that no pair of
	// codes can produce: negative counts, exact+partial > L, or (L-1, 1).
	ErrInvalidFeedback = errors.New("invalid feedback")

	// ErrEmptyAlphabetOrZeroLength rejects a code space before any session starts.
	ErrEmptyAlphabetOrZeroLength = errors.New("empty alphabet or zero code length")

	ErrDuplicateSymbol = errors.New("duplicate symbol in alphabet")
	ErrUnknownSymbol   = errors.New("symbol not in alphabet")
	ErrSpaceTooLarge   = errors.New("code space too large")
	ErrIndexOutOfRange = errors.New("code index out of range")
)
