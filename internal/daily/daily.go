// internal/daily/daily.go
//
// Deterministic daily secret selection.
//
// Every date maps to one secret per (space, salt): the index is
// HMAC-SHA256(salt, YYYY-MM-DD) reduced modulo the space size. Anyone with
// the same salt picks the same secret on the same UTC day.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"golang.org/x/exp/constraints"

	"github.com/robalobadob/mastermind/internal/game"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// SecretIndex returns a deterministic index in [0, n) for the date.
// It returns 0 when n <= 0.
func SecretIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes are plenty for spaces up to game.MaxSpaceSize
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Secret returns the code of the day in space.
func Secret[S constraints.Ordered](space *game.Space[S], date time.Time, salt string) game.Code[S] {
	return space.Code(SecretIndex(date, salt, space.Size()))
}
