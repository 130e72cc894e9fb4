// apps/go-solver/internal/session/controller.go
//
// Session controller: plays one game from an empty board to Win or Lost.
//
// Round cycle:
//   1. Absorb the latest row (none on the first round).
//   2. Filter the candidates and estimate win confidence.
//   3. Choose a guess: scripted opener, random candidate, or the forced-loss
//      word when nothing is left.
//   4. Submit it and re-read the board.
//   5. If the board did not grow the word was refused: drop it from the
//      persisted list and retry the round. Otherwise check for Win/Lost.
//
// After a loss the revealed solution is appended to the persisted list when
// it is missing (Learning).

package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// Defaults for Config.
const (
	DefaultMaxRows    = 6
	DefaultWidth      = 5
	DefaultForcedLoss = "FORCE"
	DefaultMaxRejects = 20
)

// Config tunes a Controller. Zero fields take the defaults above.
type Config struct {
	MaxRows    int    // rows per game
	Width      int    // letters per word
	ForcedLoss string // word submitted when no candidates remain
	MaxRejects int    // refused guesses tolerated in one round
}

func (c Config) withDefaults() Config {
	if c.MaxRows <= 0 {
		c.MaxRows = DefaultMaxRows
	}
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.ForcedLoss == "" {
		c.ForcedLoss = DefaultForcedLoss
	}
	c.ForcedLoss = strings.ToUpper(c.ForcedLoss)
	if c.MaxRejects <= 0 {
		c.MaxRejects = DefaultMaxRejects
	}
	return c
}

// Controller runs sessions against one surface and word list.
type Controller struct {
	surface  Surface
	list     WordList
	policy   *solver.Policy
	cfg      Config
	observer Observer
	now      func() time.Time

	constraints *solver.Constraints
}

// NewController wires a controller. observer may be nil.
func NewController(surface Surface, list WordList, policy *solver.Policy, cfg Config, observer Observer) *Controller {
	return &Controller{
		surface:     surface,
		list:        list,
		policy:      policy,
		cfg:         cfg.withDefaults(),
		observer:    observer,
		now:         time.Now,
		constraints: solver.NewConstraints(),
	}
}

// run holds the mutable state of one session.
type run struct {
	res   Result
	store *solver.CandidateStore
	board feedback.Board
	conf  float64
	last  string
}

// Play runs one session on the surface's current board. The board is
// expected to be fresh; call Surface.Reset between sessions.
//
// A returned error abandons the session without a Learning step. It wraps
// ErrSurfaceClosed, ErrFeedbackRead, or the context error.
func (c *Controller) Play(ctx context.Context) (Result, error) {
	r := &run{res: Result{ID: ulid.Make().String(), StartedAt: c.now().UTC()}}
	logger := log.With().Str("session", r.res.ID).Logger()

	// Ready
	c.constraints.Reset()
	c.policy.Reset()
	ws, err := c.list.Load(ctx)
	if err != nil {
		return r.res, fmt.Errorf("load word list: %w", err)
	}
	r.store = solver.NewCandidateStore(ws)
	c.emit(r, StateReady)
	logger.Info().Int("candidates", r.store.Len()).Msg("session ready")

	if r.board, err = c.readBoard(ctx); err != nil {
		return r.res, err
	}

	state := StateRunning
	rejects := 0
	for !state.Terminal() {
		if err := ctx.Err(); err != nil {
			return r.res, err
		}

		if row := r.board.Last(); row != nil {
			c.constraints.Absorb(row)
		}
		r.store.Apply(c.constraints)
		guessesLeft := c.cfg.MaxRows - len(r.board)
		r.conf = solver.Estimate(r.store.Len(), guessesLeft)
		c.emit(r, StateRunning)

		guess := c.choose(len(r.board), r)
		r.last = guess.Word
		logger.Info().
			Int("round", len(r.board)).
			Str("guess", guess.Word).
			Str("kind", string(guess.Kind)).
			Int("candidates", r.store.Len()).
			Float64("confidence", r.conf).
			Msg("guessing")

		if err := c.submit(ctx, guess.Word); err != nil {
			return r.res, err
		}
		next, err := c.readBoard(ctx)
		if err != nil {
			return r.res, err
		}

		if len(next) <= len(r.board) {
			if guess.Kind == Forced {
				logger.Warn().Str("guess", guess.Word).Msg("forced-loss guess refused; ending session as lost")
				state = StateLost
				break
			}
			rejects++
			if rejects > c.cfg.MaxRejects {
				return r.res, fmt.Errorf("%w: %d guesses refused in round %d", ErrFeedbackRead, rejects, len(r.board))
			}
			c.reject(ctx, r, guess.Word, logger)
			continue
		}

		rejects = 0
		r.board = next
		r.res.Guesses = append(r.res.Guesses, guess.Word)
		switch {
		case r.board.Solved():
			state = StateWin
		case len(r.board) >= c.cfg.MaxRows:
			state = StateLost
		}
	}

	r.res.State = state
	r.res.Rounds = len(r.board)
	if row := r.board.Last(); row != nil {
		c.constraints.Absorb(row)
		r.store.Apply(c.constraints)
	}
	r.conf = solver.Estimate(r.store.Len(), c.cfg.MaxRows-len(r.board))

	if state == StateWin {
		r.res.Solution = r.board.Last().Word()
	} else if err := c.learn(ctx, r, logger); err != nil {
		return r.res, err
	}
	r.res.FinishedAt = c.now().UTC()
	c.emit(r, state)
	logger.Info().
		Str("state", string(state)).
		Int("rounds", r.res.Rounds).
		Str("solution", r.res.Solution).
		Msg("session finished")
	return r.res, nil
}

// choose picks the next guess. Openers are skipped once a win is certain.
func (c *Controller) choose(round int, r *run) solver.Guess {
	var (
		g   solver.Guess
		err error
	)
	if r.store.Len() > 0 && r.conf >= 100 {
		g, err = c.policy.Random(r.store)
	} else {
		g, err = c.policy.Select(round, r.store)
	}
	if errors.Is(err, solver.ErrNoCandidates) {
		log.Warn().Str("session", r.res.ID).Str("word", c.cfg.ForcedLoss).Msg("no valid words left; forcing a loss")
		return solver.Guess{Word: c.cfg.ForcedLoss, Kind: Forced}
	}
	return g
}

// reject drops a refused guess from the persisted list.
func (c *Controller) reject(ctx context.Context, r *run, word string, logger zerolog.Logger) {
	r.res.Removed = append(r.res.Removed, word)
	removed, err := c.list.Remove(ctx, word)
	if err != nil {
		logger.Warn().Err(err).Str("guess", word).Msg("remove refused guess")
		return
	}
	logger.Info().Str("guess", word).Bool("removed", removed).Err(ErrGuessRejected).Msg("guess refused; retrying round")
}

// learn appends the revealed solution of a lost game to the word list.
func (c *Controller) learn(ctx context.Context, r *run, logger zerolog.Logger) error {
	c.emit(r, StateLearning)
	sol, ok, err := c.surface.RevealedSolution(ctx)
	if err != nil {
		if errors.Is(err, ErrSurfaceClosed) {
			return err
		}
		logger.Warn().Err(err).Msg("read revealed solution; skipping learning")
		return nil
	}
	if !ok {
		logger.Info().Msg("no solution revealed")
		return nil
	}
	r.res.Solution = strings.ToUpper(strings.TrimSpace(sol))
	added, err := c.list.Append(ctx, sol)
	if err != nil {
		logger.Warn().Err(err).Str("solution", r.res.Solution).Msg("append solution")
		return nil
	}
	r.res.Learned = added
	return nil
}

func (c *Controller) submit(ctx context.Context, word string) error {
	if err := c.surface.SubmitGuess(ctx, word); err != nil {
		return classify("submit guess", err)
	}
	return nil
}

// readBoard fetches the board and checks every row's shape.
func (c *Controller) readBoard(ctx context.Context) (feedback.Board, error) {
	b, err := c.surface.Board(ctx)
	if err != nil {
		return nil, classify("read board", err)
	}
	for i, row := range b {
		if err := row.Validate(c.cfg.Width); err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrFeedbackRead, i, err)
		}
	}
	return b, nil
}

// classify maps collaborator errors onto the session taxonomy.
func classify(op string, err error) error {
	switch {
	case errors.Is(err, ErrSurfaceClosed),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, err)
	default:
		log.Warn().Err(err).Str("op", op).Msg("game surface error")
		return fmt.Errorf("%w: %s: %w", ErrFeedbackRead, op, err)
	}
}

func (c *Controller) emit(r *run, state State) {
	if c.observer == nil {
		return
	}
	c.observer.Observe(View{
		SessionID:   r.res.ID,
		State:       state,
		Round:       len(r.board),
		Board:       r.board.Clone(),
		Candidates:  r.store.Len(),
		Pruned:      r.store.Pruned(),
		Removed:     append([]string(nil), r.res.Removed...),
		Confidence:  r.conf,
		GuessesLeft: c.cfg.MaxRows - len(r.board),
		LastGuess:   r.last,
		Solution:    r.res.Solution,
	})
}
