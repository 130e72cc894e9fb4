// apps/go-solver/internal/words/defaults.go
//
// Embedded default lists, wrapping assets.WordsList/AnswersList:
//   - Defaults(): seed list for a fresh word list file.
//   - Answers():  solutions for the simulated game.
//   - IsAllowed(): guesses the simulated game accepts (defaults ∪ answers).
//
// Data is lazily initialized once and normalized to uppercase.

package words

import (
	"sync"

	"github.com/robalobadob/wordle/apps/go-solver/assets"
)

var (
	defaultsOnce    sync.Once
	defaultWords    []string
	defaultAnswers  []string
	defaultAllowed  map[string]struct{}
	defaultsInitErr error
)

func initDefaults() {
	ws, err := assets.WordsList()
	if err != nil {
		defaultsInitErr = err
		return
	}
	as, err := assets.AnswersList()
	if err != nil {
		defaultsInitErr = err
		return
	}
	defaultWords = normalizeLines(ws)
	defaultAnswers = normalizeLines(as)
	defaultAllowed = toSet(defaultWords)
	for _, w := range defaultAnswers {
		defaultAllowed[w] = struct{}{}
	}
}

// Defaults returns the embedded seed list.
func Defaults() ([]string, error) {
	defaultsOnce.Do(initDefaults)
	return append([]string(nil), defaultWords...), defaultsInitErr
}

// Answers returns the embedded answer list.
func Answers() ([]string, error) {
	defaultsOnce.Do(initDefaults)
	return append([]string(nil), defaultAnswers...), defaultsInitErr
}

// IsAllowed reports whether w is in the embedded dictionary.
func IsAllowed(w string) bool {
	defaultsOnce.Do(initDefaults)
	n, ok := Normalize(w)
	if !ok {
		return false
	}
	_, ok = defaultAllowed[n]
	return ok
}

// Stats returns counts of the embedded lists: (seed words, answers).
func Stats() (wordsCount int, answersCount int) {
	defaultsOnce.Do(initDefaults)
	return len(defaultWords), len(defaultAnswers)
}
