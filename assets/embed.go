// Package assets embeds the default word lists.
//
//   - words.txt:   seed for the solver's persisted word list.
//   - answers.txt: solutions the simulated game draws from.
package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed words.txt answers.txt
var FS embed.FS

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

// WordsList returns the embedded seed word list, as written.
func WordsList() ([]string, error) {
	return readLines("words.txt")
}

// AnswersList returns the embedded answer list, as written.
func AnswersList() ([]string, error) {
	return readLines("answers.txt")
}
