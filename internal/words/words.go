// apps/go-solver/internal/words/words.go
//
// Persisted word list for the solver.
//
// Format:
//   - Flat, newline-delimited, order-preserving, one word per line.
//   - Words are written lowercase and compared uppercase.
//
// Responsibilities:
//   - Load the full list, normalized to uppercase 5-letter words.
//   - Append an observed solution if it is not already listed.
//   - Remove a word the game refused as a guess.
//   - Seed a missing file from the embedded defaults.
//
// Every mutation reads the file, rewrites it in full to a temp file and
// renames it into place while holding the list's mutex, so concurrent
// callers in one process cannot lose updates. Cross-process locking is not
// attempted.

package words

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// Length is the fixed word length of the game.
const Length = 5

// ErrInvalidWord is returned when a word is not Length letters A–Z.
var ErrInvalidWord = errors.New("words: invalid word")

// FileList is a word list stored in a flat file.
type FileList struct {
	path string
	mu   sync.Mutex // guards read-modify-write of the file
}

// NewFileList returns a list backed by path. The file is not touched.
func NewFileList(path string) *FileList {
	return &FileList{path: path}
}

// Path returns the backing file path.
func (l *FileList) Path() string { return l.path }

// Load reads every valid word in file order, uppercased.
// Blank and malformed lines are skipped.
func (l *FileList) Load(ctx context.Context) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	lines, err := l.readLines()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if w, ok := Normalize(line); ok {
			out = append(out, w)
		}
	}
	return out, nil
}

// Append adds word to the end of the file unless it is already present.
// It reports whether the file changed.
func (l *FileList) Append(ctx context.Context, word string) (bool, error) {
	w, ok := Normalize(word)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrInvalidWord, word)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	lines, err := l.readLines()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	for _, line := range lines {
		if strings.ToUpper(strings.TrimSpace(line)) == w {
			log.Debug().Str("word", w).Msg("already in word list")
			return false, nil
		}
	}
	if err := l.writeLines(append(lines, strings.ToLower(w))); err != nil {
		return false, err
	}
	log.Info().Str("word", w).Str("path", l.path).Msg("added to word list")
	return true, nil
}

// Remove deletes every line equal to word. It reports whether the file
// changed.
func (l *FileList) Remove(ctx context.Context, word string) (bool, error) {
	w := strings.ToUpper(strings.TrimSpace(word))
	l.mu.Lock()
	defer l.mu.Unlock()

	lines, err := l.readLines()
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.ToUpper(strings.TrimSpace(line)) != w {
			kept = append(kept, line)
		}
	}
	if len(kept) == len(lines) {
		return false, nil
	}
	if err := l.writeLines(kept); err != nil {
		return false, err
	}
	log.Info().Str("word", w).Str("path", l.path).Msg("removed from word list")
	return true, nil
}

// Seed writes seed to the backing file if it does not exist yet.
// It reports whether the file was created.
func (l *FileList) Seed(seed []string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := os.Stat(l.path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	lines := make([]string, 0, len(seed))
	for _, s := range seed {
		if w, ok := Normalize(s); ok {
			lines = append(lines, strings.ToLower(w))
		}
	}
	if err := l.writeLines(lines); err != nil {
		return false, err
	}
	log.Info().Int("words", len(lines)).Str("path", l.path).Msg("seeded word list")
	return true, nil
}

// readLines returns the raw non-blank lines of the file.
func (l *FileList) readLines() ([]string, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out = append(out, line)
		}
	}
	return out, sc.Err()
}

// writeLines replaces the file with lines via a temp file and rename.
func (l *FileList) writeLines(lines []string) error {
	dir := filepath.Dir(l.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(l.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	bw := bufio.NewWriter(tmp)
	for _, line := range lines {
		bw.WriteString(line)
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), l.path); err != nil {
		return fmt.Errorf("rename to %s: %w", l.path, err)
	}
	return nil
}

// Normalize trims and upper-cases s, reporting whether it is a valid word.
func Normalize(s string) (string, bool) {
	w := strings.ToUpper(strings.TrimSpace(s))
	return w, len(w) == Length && isAlpha(w)
}

// normalizeLines turns raw lines into valid uppercase words, dropping the rest.
func normalizeLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if w, ok := Normalize(line); ok {
			out = append(out, w)
		}
	}
	return out
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
