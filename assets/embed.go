// assets/embed.go
//
// Embedded data files shipped with the binary.
//   - openings.txt: opening book of first guesses keyed by (length, colors).

package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed openings.txt
var FS embed.FS

// readLines returns the non-blank, non-comment lines of an embedded file.
func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// OpeningLines returns the raw entries of the opening book.
func OpeningLines() ([]string, error) {
	return readLines("openings.txt")
}
