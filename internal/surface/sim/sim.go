// apps/go-solver/internal/surface/sim/sim.go
//
// In-process game surface backed by the Wordle engine.
//
// Behaves like a web board:
//   - A refused word (wrong length, not in the dictionary) is silently
//     dropped; the board does not grow.
//   - The answer is revealed only after a lost game.
//   - After Close every call returns session.ErrSurfaceClosed.

package sim

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/daily"
	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/session"
)

// ErrNoGame is returned before the first Reset.
var ErrNoGame = errors.New("sim: no game started")

// Picker returns the answer for the next game.
type Picker func() string

// Fixed cycles through answers in order.
func Fixed(answers ...string) Picker {
	i := 0
	return func() string {
		a := answers[i%len(answers)]
		i++
		return a
	}
}

// Random draws answers uniformly using src.
func Random(answers []string, src rand.Source) Picker {
	rng := rand.New(src)
	return func() string { return answers[rng.IntN(len(answers))] }
}

// Daily plays one answer per simulated day starting at start: the n-th game
// uses the answer daily.WordIndex picks for start+n days.
func Daily(answers []string, salt string, start time.Time) Picker {
	n := 0
	return func() string {
		d := start.AddDate(0, 0, n)
		n++
		return answers[daily.WordIndex(d, salt, len(answers))]
	}
}

// Surface is a simulated game board.
type Surface struct {
	mu      sync.Mutex
	pick    Picker
	allowed func(string) bool
	game    *game.Game
	closed  bool
}

// New returns a surface drawing answers from pick. allowed decides which
// guesses the board accepts; nil accepts any five-letter word.
func New(pick Picker, allowed func(string) bool) *Surface {
	return &Surface{pick: pick, allowed: allowed}
}

// Reset starts a new game.
func (s *Surface) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return session.ErrSurfaceClosed
	}
	s.game = game.New(s.pick())
	log.Debug().Str("game", s.game.ID).Msg("sim: new game")
	return nil
}

// SubmitGuess types word on the board. Refused words are dropped silently.
func (s *Surface) SubmitGuess(ctx context.Context, word string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	_, st, err := s.game.ApplyGuess(word, s.allowed)
	if err != nil {
		log.Debug().Err(err).Str("game", s.game.ID).Str("guess", strings.ToUpper(word)).Msg("sim: guess refused")
		return nil
	}
	log.Debug().Str("game", s.game.ID).Str("guess", strings.ToUpper(word)).Str("state", string(st)).Msg("sim: guess accepted")
	return nil
}

// Board returns a copy of the accepted rows.
func (s *Surface) Board(ctx context.Context) (feedback.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.game.Board.Clone(), nil
}

// RevealedSolution returns the answer of a lost game.
func (s *Surface) RevealedSolution(ctx context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return "", false, err
	}
	if s.game.State() != game.StateLost {
		return "", false, nil
	}
	return s.game.Answer, true, nil
}

// State reports the current game state.
func (s *Surface) State() game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game == nil {
		return game.StateRunning
	}
	return s.game.State()
}

// Close makes the surface unavailable.
func (s *Surface) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Surface) ready() error {
	if s.closed {
		return session.ErrSurfaceClosed
	}
	if s.game == nil {
		return ErrNoGame
	}
	return nil
}
