// apps/go-solver/internal/game/types.go
//
// Core type definitions for the Wordle game engine that backs the simulated
// game surface.
// Defines:
//   - State: coarse game state (running/win/lost).
//   - Game:  state for a single in-progress or finished game.

package game

import "github.com/robalobadob/wordle/apps/go-solver/internal/feedback"

// State is the coarse state of a game, using the values a web board reports.
type State string

const (
	StateRunning State = "running"
	StateWin     State = "win"
	StateLost    State = "lost"
)

// Game holds the state of a single Wordle game.
type Game struct {
	ID       string         // Unique game identifier.
	Answer   string         // The solution word (always uppercase).
	Rows     int            // Maximum number of guesses allowed (typically 6).
	Cols     int            // Number of letters per word (typically 5).
	Board    feedback.Board // Accepted rows, in order.
	Finished bool           // True once the game is over (won or lost).
	Won      bool           // True if the game was finished with a win.
}
