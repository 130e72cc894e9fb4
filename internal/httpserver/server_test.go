package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/wordle/apps/go-solver/internal/history"
	"github.com/robalobadob/wordle/apps/go-solver/internal/session"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
)

type fakeHistory struct {
	stats  history.Stats
	recent []session.Result
	limit  int
	err    error
}

func (f *fakeHistory) Stats(ctx context.Context) (history.Stats, error) { return f.stats, f.err }

func (f *fakeHistory) Recent(ctx context.Context, limit int) ([]session.Result, error) {
	f.limit = limit
	return f.recent, f.err
}

func do(t *testing.T, s *Server, method, path, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	s := New(store.NewMemoryStore(0), nil, Auth{}, nil)
	rec := do(t, s, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestState(t *testing.T) {
	views := store.NewMemoryStore(0)
	s := New(views, nil, Auth{}, nil)

	if rec := do(t, s, http.MethodGet, "/state", ""); rec.Code != http.StatusNotFound {
		t.Errorf("empty /state status = %d, want 404", rec.Code)
	}

	want := session.View{SessionID: "abc", State: session.StateRunning, Round: 2, Candidates: 7, Confidence: 27.1, GuessesLeft: 4}
	views.Observe(want)

	rec := do(t, s, http.MethodGet, "/state", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("/state status = %d", rec.Code)
	}
	if diff := cmp.Diff(want, decode[session.View](t, rec)); diff != "" {
		t.Errorf("/state mismatch (-want +got):\n%s", diff)
	}

	rec = do(t, s, http.MethodGet, "/state/abc", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("/state/abc status = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/state/nope", ""); rec.Code != http.StatusNotFound {
		t.Errorf("/state/nope status = %d, want 404", rec.Code)
	}
}

func TestStatsAndSessions(t *testing.T) {
	h := &fakeHistory{
		stats:  history.Stats{GamesPlayed: 4, Wins: 3, Streak: 1, BestStreak: 2, WinRate: 75},
		recent: []session.Result{{ID: "s1", State: session.StateWin, Rounds: 3}},
	}
	s := New(store.NewMemoryStore(0), h, Auth{}, nil)

	rec := do(t, s, http.MethodGet, "/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("/stats status = %d", rec.Code)
	}
	if diff := cmp.Diff(h.stats, decode[history.Stats](t, rec)); diff != "" {
		t.Errorf("/stats mismatch (-want +got):\n%s", diff)
	}

	rec = do(t, s, http.MethodGet, "/sessions?limit=500", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("/sessions status = %d", rec.Code)
	}
	if h.limit != 100 {
		t.Errorf("limit passed = %d, want 100", h.limit)
	}
	got := decode[[]session.Result](t, rec)
	if len(got) != 1 || got[0].ID != "s1" {
		t.Errorf("/sessions = %+v", got)
	}

	if rec := do(t, s, http.MethodGet, "/sessions?limit=x", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit status = %d, want 400", rec.Code)
	}

	h.err = errors.New("disk gone")
	if rec := do(t, s, http.MethodGet, "/stats", ""); rec.Code != http.StatusInternalServerError {
		t.Errorf("failing /stats status = %d, want 500", rec.Code)
	}
}

func TestHistoryDisabled(t *testing.T) {
	s := New(store.NewMemoryStore(0), nil, Auth{}, nil)
	for _, p := range []string{"/stats", "/sessions"} {
		if rec := do(t, s, http.MethodGet, p, ""); rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s status = %d, want 503", p, rec.Code)
		}
	}
}

func TestControlStop(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	stops := 0
	s := New(store.NewMemoryStore(0), nil, Auth{Secret: "test", PasswordHash: string(hash)}, func() { stops++ })

	if rec := do(t, s, http.MethodPost, "/control/stop", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("stop without token status = %d, want 401", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/auth/token", `{"password":"wrong"}`); rec.Code != http.StatusUnauthorized {
		t.Errorf("token with bad password status = %d, want 401", rec.Code)
	}

	rec := do(t, s, http.MethodPost, "/auth/token", `{"password":"hunter22"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("token status = %d: %s", rec.Code, rec.Body)
	}
	tok := decode[tokenRes](t, rec)
	if tok.Token == "" || !tok.ExpiresAt.After(time.Now()) {
		t.Fatalf("token response = %+v", tok)
	}

	if rec := do(t, s, http.MethodPost, "/control/stop", "", "Authorization", "Bearer garbage"); rec.Code != http.StatusUnauthorized {
		t.Errorf("stop with bad token status = %d, want 401", rec.Code)
	}
	for i := 0; i < 2; i++ {
		if rec := do(t, s, http.MethodPost, "/control/stop", "", "Authorization", "Bearer "+tok.Token); rec.Code != http.StatusAccepted {
			t.Errorf("stop #%d status = %d, want 202", i, rec.Code)
		}
	}
	if stops != 1 {
		t.Errorf("stop called %d times, want 1", stops)
	}
}

func TestTokenRejectsOtherSecret(t *testing.T) {
	other := New(store.NewMemoryStore(0), nil, Auth{Secret: "other"}, nil)
	tok, _, err := other.signJWT(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	s := New(store.NewMemoryStore(0), nil, Auth{Secret: "test"}, func() {})
	if rec := do(t, s, http.MethodPost, "/control/stop", "", "Authorization", "Bearer "+tok); rec.Code != http.StatusUnauthorized {
		t.Errorf("stop with foreign token status = %d, want 401", rec.Code)
	}
}

func TestTokenExpired(t *testing.T) {
	s := New(store.NewMemoryStore(0), nil, Auth{Secret: "test", Expires: time.Hour}, func() {})
	tok, _, err := s.signJWT(time.Now().Add(-2 * time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if rec := do(t, s, http.MethodPost, "/control/stop", "", "Authorization", "Bearer "+tok); rec.Code != http.StatusUnauthorized {
		t.Errorf("stop with expired token status = %d, want 401", rec.Code)
	}
}

func TestTokenDisabledWithoutHash(t *testing.T) {
	s := New(store.NewMemoryStore(0), nil, Auth{}, nil)
	if rec := do(t, s, http.MethodPost, "/auth/token", `{"password":"x"}`); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
