// apps/go-solver/internal/session/types.go
//
// Types shared by the session controller and its collaborators.
// Defines:
//   - State:    session state machine values.
//   - Surface:  the game board the solver plays against.
//   - WordList: the persisted word list.
//   - Observer: read-only consumer of session views (display, status API).
//   - View/Result: snapshots handed to observers and recorders.

package session

import (
	"context"
	"errors"
	"time"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// State is a session state.
//
//	Ready → Running → {Win, Lost}; Lost → Learning; then Ready again, or Closed.
type State string

const (
	StateReady    State = "ready"
	StateRunning  State = "running"
	StateWin      State = "win"
	StateLost     State = "lost"
	StateLearning State = "learning"
	StateClosed   State = "closed"
)

// Terminal reports whether s ends a game.
func (s State) Terminal() bool { return s == StateWin || s == StateLost }

var (
	// ErrNoCandidates means the candidate set ran out before a win.
	ErrNoCandidates = solver.ErrNoCandidates
	// ErrGuessRejected means the surface did not accept a submitted word.
	ErrGuessRejected = errors.New("guess rejected")
	// ErrFeedbackRead means the surface could not be queried; the session is
	// abandoned.
	ErrFeedbackRead = errors.New("feedback read failure")
	// ErrSurfaceClosed means the game surface is gone; it is fatal to the
	// process.
	ErrSurfaceClosed = errors.New("game surface closed")
)

// Forced tags the forced-loss guess submitted when no candidates remain.
const Forced solver.Kind = "forced"

// Surface is the game the solver plays. Implementations must not add a row
// for a word they refuse.
type Surface interface {
	SubmitGuess(ctx context.Context, word string) error
	Board(ctx context.Context) (feedback.Board, error)
	// RevealedSolution returns the answer once a game is lost.
	RevealedSolution(ctx context.Context) (string, bool, error)
	Reset(ctx context.Context) error
}

// WordList is the persisted candidate list.
type WordList interface {
	Load(ctx context.Context) ([]string, error)
	Append(ctx context.Context, word string) (bool, error)
	Remove(ctx context.Context, word string) (bool, error)
}

// Observer receives a View after every step of a session.
type Observer interface {
	Observe(View)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(View)

func (f ObserverFunc) Observe(v View) { f(v) }

// Recorder stores finished sessions.
type Recorder interface {
	Record(ctx context.Context, r Result) error
}

// View is a read-only snapshot of a session for display collaborators.
type View struct {
	SessionID   string         `json:"sessionId"`
	State       State          `json:"state"`
	Round       int            `json:"round"`
	Board       feedback.Board `json:"board"`
	Candidates  int            `json:"candidates"`
	Pruned      []string       `json:"pruned"`
	Removed     []string       `json:"removed"`
	Confidence  float64        `json:"confidence"`
	GuessesLeft int            `json:"guessesLeft"`
	LastGuess   string         `json:"lastGuess,omitempty"`
	Solution    string         `json:"solution,omitempty"`
}

// Result summarizes a finished session.
type Result struct {
	ID         string    `json:"id"`
	State      State     `json:"state"`
	Rounds     int       `json:"rounds"`
	Guesses    []string  `json:"guesses"`
	Removed    []string  `json:"removed"`
	Solution   string    `json:"solution,omitempty"`
	Learned    bool      `json:"learned"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}
