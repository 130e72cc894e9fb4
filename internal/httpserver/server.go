// apps/go-solver/internal/httpserver/server.go
//
// Status API for the solver.
// Responsibilities:
//   - Router + middleware (JSON, timeouts, panic recovery, request IDs).
//   - Public read-only endpoints: "/", "/health", "/state", "/state/{id}",
//     "/stats", "/sessions".
//   - Admin endpoints: POST /auth/token (password -> JWT) and
//     POST /control/stop (requires a bearer JWT).
//
// Views come from the in-memory store fed by the session controller; totals
// and recent sessions come from the history database.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/history"
	"github.com/robalobadob/wordle/apps/go-solver/internal/session"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// History is the read side of the session history.
type History interface {
	Stats(ctx context.Context) (history.Stats, error)
	Recent(ctx context.Context, limit int) ([]session.Result, error)
}

// Server bundles the router and its data sources.
type Server struct {
	r       *chi.Mux
	views   store.Store
	history History // optional
	auth    Auth
	stop    func() // optional; cancels the supervisor

	stopOnce sync.Once
}

// New constructs a Server, installs middleware, and registers routes.
// hist and stop may be nil; their endpoints then answer 503.
func New(views store.Store, hist History, auth Auth, stop func()) *Server {
	s := &Server{r: chi.NewRouter(), views: views, history: hist, auth: auth.withDefaults(), stop: stop}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-solver","endpoints":["/health","/state","/stats","/sessions","POST /auth/token","POST /control/stop"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := words.Stats()
		_ = json.NewEncoder(w).Encode(map[string]int{"answers": a, "allowed": g})
	})

	s.r.Get("/state", s.handleLatest)
	s.r.Get("/state/{id}", s.handleState)
	s.r.Get("/stats", s.handleStats)
	s.r.Get("/sessions", s.handleSessions)

	s.r.Post("/auth/token", s.handleToken)
	s.r.With(s.requireAuth()).Post("/control/stop", s.handleStop)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Run serves HTTP on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ STATE --------------------------------------

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	v, err := s.views.Latest(r.Context())
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"no_session"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"store_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	v, err := s.views.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"store_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// ------------------------------ HISTORY ------------------------------------

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		http.Error(w, `{"error":"history_disabled"}`, http.StatusServiceUnavailable)
		return
	}
	st, err := s.history.Stats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("read stats")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(st)
}

// handleSessions lists recent sessions. ?limit=N, default 20, max 100.
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		http.Error(w, `{"error":"history_disabled"}`, http.StatusServiceUnavailable)
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, `{"error":"bad_limit"}`, http.StatusBadRequest)
			return
		}
		limit = min(n, 100)
	}
	out, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("read sessions")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	if out == nil {
		out = []session.Result{}
	}
	_ = json.NewEncoder(w).Encode(out)
}

// ------------------------------ CONTROL ------------------------------------

// handleStop cancels the supervisor. Repeated calls are accepted and ignored.
func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	if s.stop == nil {
		http.Error(w, `{"error":"control_disabled"}`, http.StatusServiceUnavailable)
		return
	}
	s.stopOnce.Do(func() {
		log.Info().Str("requestId", chimw.GetReqID(r.Context())).Msg("stop requested")
		s.stop()
	})
	w.WriteHeader(http.StatusAccepted)
	_, _ = w.Write([]byte(`{"stopping":true}`))
}
