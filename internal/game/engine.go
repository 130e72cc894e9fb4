// apps/go-solver/internal/game/engine.go
//
// Game engine for a single Wordle game.
// Responsibilities:
//   - Create new games with fixed dimensions (6x5).
//   - Validate and apply guesses (length, alphabetic, allowed list).
//   - Score guesses using the classic two-pass Wordle algorithm.
//   - Track state transitions: running → win/lost.
//
// Notes:
//   - The allowed-word check is injected so callers decide the dictionary.
//   - A rejected guess never adds a row; the board only grows on acceptance.

package game

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
)

const (
	DefaultRows = 6
	DefaultCols = 5
)

var (
	ErrFinished     = errors.New("game finished")
	ErrInvalidGuess = errors.New("invalid guess")
	ErrNotAllowed   = errors.New("not in word list")
)

// New constructs a new game instance for answer.
func New(answer string) *Game {
	return &Game{
		ID:     uuid.NewString(),
		Answer: strings.ToUpper(strings.TrimSpace(answer)),
		Rows:   DefaultRows,
		Cols:   DefaultCols,
	}
}

// ApplyGuess validates and scores a guess, mutating the game state.
// allowed may be nil, in which case any well-formed word is accepted.
//
// Validation rules:
//   - Game must not be finished.
//   - Guess must be exactly g.Cols letters and alphabetic A–Z.
//   - Guess must satisfy allowed.
//
// State transitions:
//   - If all tiles are Correct → Finished = true, Won = true.
//   - Else if the number of rows reaches g.Rows → Finished = true (loss).
func (g *Game) ApplyGuess(guess string, allowed func(string) bool) (feedback.Row, State, error) {
	if g.Finished {
		return nil, g.State(), ErrFinished
	}
	guess = strings.ToUpper(strings.TrimSpace(guess))
	if len(guess) != g.Cols || !isAlpha(guess) {
		return nil, g.State(), ErrInvalidGuess
	}
	if allowed != nil && !allowed(guess) {
		return nil, g.State(), ErrNotAllowed
	}

	row := Score(g.Answer, guess)
	g.Board = append(g.Board, row)

	if row.Solved() {
		g.Finished, g.Won = true, true
	} else if len(g.Board) >= g.Rows {
		g.Finished = true
	}
	return row, g.State(), nil
}

// State reports the current game state.
func (g *Game) State() State {
	if g.Finished {
		if g.Won {
			return StateWin
		}
		return StateLost
	}
	return StateRunning
}

// Score implements the standard Wordle two-pass scoring algorithm.
// Both words must be uppercase and of equal length.
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count remaining (non-correct) answer letters.
//
// Pass 2:
//   - For each remaining guess letter: if there is remaining count for that
//     letter, mark Present and decrement the count; otherwise mark Absent.
func Score(answer, guess string) feedback.Row {
	n := len(guess)
	row := make(feedback.Row, n)

	var counts [26]int
	for i := 0; i < n; i++ {
		row[i] = feedback.Clue{Position: i, Letter: guess[i]}
		if i < len(answer) && guess[i] == answer[i] {
			row[i].Judgment = feedback.Correct
		} else if i < len(answer) {
			if j := idx(answer[i]); j >= 0 && j < 26 {
				counts[j]++
			}
		}
	}

	for i := 0; i < n; i++ {
		if row[i].Judgment == feedback.Correct {
			continue
		}
		j := idx(guess[i])
		if j >= 0 && j < 26 && counts[j] > 0 {
			row[i].Judgment = feedback.Present
			counts[j]--
		} else {
			row[i].Judgment = feedback.Absent
		}
	}
	return row
}

// idx maps an uppercase ASCII letter to 0..25.
func idx(b byte) int { return int(b) - 'A' }

// isAlpha checks that a string consists only of uppercase A–Z.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
