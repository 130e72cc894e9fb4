package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/robalobadob/wordle/apps/go-solver/internal/session"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "solver.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func result(id string, state session.State, at time.Time) session.Result {
	return session.Result{
		ID:         id,
		State:      state,
		Rounds:     3,
		Guesses:    []string{"SLATE", "BRICK", "CRANE"},
		Solution:   "CRANE",
		StartedAt:  at.Add(-time.Minute),
		FinishedAt: at,
	}
}

func TestRecordAndStats(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, st := range []session.State{session.StateWin, session.StateWin, session.StateLost, session.StateWin} {
		if err := s.Record(ctx, result(string(rune('a'+i)), st, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
	}

	got, err := s.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := Stats{GamesPlayed: 4, Wins: 3, Streak: 1, BestStreak: 2, WinRate: 75}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Stats mismatch (-want +got):\n%s", diff)
	}
}

func TestStatsEmpty(t *testing.T) {
	got, err := openStore(t).Stats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Stats{}, got); diff != "" {
		t.Errorf("Stats mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordIgnoresDuplicatesAndUnfinished(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	r := result("dup", session.StateWin, at)
	for i := 0; i < 2; i++ {
		if err := s.Record(ctx, r); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Record(ctx, result("open", session.StateRunning, at)); err != nil {
		t.Fatal(err)
	}

	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.GamesPlayed != 1 {
		t.Errorf("GamesPlayed = %d, want 1", st.GamesPlayed)
	}
}

func TestRecent(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	first := result("first", session.StateWin, base)
	second := result("second", session.StateLost, base.Add(time.Hour))
	second.Removed = []string{"VOZHD"}
	second.Learned = true
	second.Solution = "QUEUE"
	for _, r := range []session.Result{first, second} {
		if err := s.Record(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]session.Result{second, first}, got); diff != "" {
		t.Errorf("Recent mismatch (-want +got):\n%s", diff)
	}

	got, err = s.Recent(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "second" {
		t.Errorf("Recent(1) = %+v, want only second", got)
	}
}

func TestMigrateTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solver.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open #%d: %v", i, err)
		}
		s.Close()
	}
}
