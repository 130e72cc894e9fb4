package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// DefaultMaxFailures bounds consecutive abandoned sessions before Run gives up.
const DefaultMaxFailures = 10

// Tally counts the sessions a Supervisor has run.
type Tally struct {
	Sessions  int `json:"sessions"`
	Wins      int `json:"wins"`
	Losses    int `json:"losses"`
	Abandoned int `json:"abandoned"`
}

// Supervisor plays sessions back to back until stopped.
//
// ErrSurfaceClosed ends Run with that error. Context cancellation ends Run
// cleanly, abandoning the current session. Any other error abandons only the
// current session; the surface is reset and a new one starts.
type Supervisor struct {
	Controller  *Controller
	Surface     Surface
	Recorder    Recorder // optional
	Observer    Observer // optional, told when the supervisor closes
	MaxSessions int      // 0 means unbounded
	MaxFailures int      // consecutive abandoned sessions; 0 means DefaultMaxFailures
}

// Run plays sessions and returns the tally when it stops.
func (s *Supervisor) Run(ctx context.Context) (Tally, error) {
	var t Tally
	maxFailures := s.MaxFailures
	if maxFailures <= 0 {
		maxFailures = DefaultMaxFailures
	}
	defer s.close()

	failures := 0
	for s.MaxSessions == 0 || t.Sessions < s.MaxSessions {
		if ctx.Err() != nil {
			return t, nil
		}
		if err := s.Surface.Reset(ctx); err != nil {
			if stop, err := s.fatal(ctx, err); stop {
				return t, err
			}
			failures++
			if failures >= maxFailures {
				return t, fmt.Errorf("reset surface: %d consecutive failures: %w", failures, err)
			}
			log.Error().Err(err).Msg("reset surface")
			continue
		}

		res, err := s.Controller.Play(ctx)
		t.Sessions++
		if err != nil {
			if stop, err := s.fatal(ctx, err); stop {
				t.Abandoned++
				return t, err
			}
			t.Abandoned++
			failures++
			log.Error().Err(err).Str("session", res.ID).Msg("session abandoned")
			if failures >= maxFailures {
				return t, fmt.Errorf("%d consecutive sessions abandoned: %w", failures, err)
			}
			continue
		}
		failures = 0

		switch res.State {
		case StateWin:
			t.Wins++
		case StateLost:
			t.Losses++
		}
		if s.Recorder != nil {
			if err := s.Recorder.Record(ctx, res); err != nil {
				log.Warn().Err(err).Str("session", res.ID).Msg("record session")
			}
		}
	}
	return t, nil
}

// fatal reports whether err stops the supervisor, and the error to return.
func (s *Supervisor) fatal(ctx context.Context, err error) (bool, error) {
	switch {
	case errors.Is(err, ErrSurfaceClosed):
		log.Error().Err(err).Msg("game surface closed; stopping")
		return true, err
	case ctx.Err() != nil:
		log.Info().Msg("stopped; current session abandoned")
		return true, nil
	}
	return false, nil
}

func (s *Supervisor) close() {
	if s.Observer != nil {
		s.Observer.Observe(View{State: StateClosed})
	}
}
