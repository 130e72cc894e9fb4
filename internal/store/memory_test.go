package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/robalobadob/wordle/apps/go-solver/internal/session"
)

func TestMemorySaveGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(0)

	if _, err := m.Latest(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Latest on empty store: err = %v, want ErrNotFound", err)
	}

	m.Observe(session.View{SessionID: "a", State: session.StateReady, Candidates: 10})
	m.Observe(session.View{SessionID: "a", State: session.StateRunning, Candidates: 4})

	got, err := m.Get(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	want := session.View{SessionID: "a", State: session.StateRunning, Candidates: 4}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Get mismatch (-want +got):\n%s", diff)
	}
	if _, err := m.Get(ctx, "b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get unknown: err = %v, want ErrNotFound", err)
	}
}

func TestMemoryClosedViewOnlyUpdatesLatest(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(0)
	m.Observe(session.View{SessionID: "a", State: session.StateWin})
	m.Observe(session.View{State: session.StateClosed})

	latest, err := m.Latest(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if latest.State != session.StateClosed {
		t.Errorf("Latest state = %q, want closed", latest.State)
	}
	if diff := cmp.Diff([]string{"a"}, m.Sessions()); diff != "" {
		t.Errorf("Sessions mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryEvictsOldest(t *testing.T) {
	m := NewMemoryStore(2)
	for _, id := range []string{"a", "b", "c"} {
		m.Observe(session.View{SessionID: id})
	}
	if diff := cmp.Diff([]string{"b", "c"}, m.Sessions()); diff != "" {
		t.Errorf("Sessions mismatch (-want +got):\n%s", diff)
	}
	if _, err := m.Get(context.Background(), "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("evicted session still present: err = %v", err)
	}
}

func TestMemoryConcurrent(t *testing.T) {
	m := NewMemoryStore(10)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			m.Observe(session.View{SessionID: fmt.Sprintf("s%d", i)})
		}(i)
		go func() {
			defer wg.Done()
			_, _ = m.Latest(context.Background())
		}()
	}
	wg.Wait()
	if n := len(m.Sessions()); n != 10 {
		t.Errorf("len(Sessions) = %d, want 10", n)
	}
}
