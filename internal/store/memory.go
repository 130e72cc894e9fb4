// apps/go-solver/internal/store/memory.go
//
// In-memory store of session views for the status API.
// It is also a session.Observer, so the controller feeds it directly.
//
// Characteristics:
//   - Keeps the latest view of each of the most recent sessions, keyed by session ID.
//   - Concurrency-safe via RWMutex (the supervisor writes, HTTP handlers read).
//   - Oldest sessions are evicted once the limit is reached; state is lost on restart.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/wordle/apps/go-solver/internal/session"
)

// DefaultLimit is the number of sessions kept when NewMemoryStore gets 0.
const DefaultLimit = 50

// ErrNotFound is returned for unknown session IDs, or by Latest before any view.
var ErrNotFound = errors.New("not found")

// Store defines the read/write interface for session views.
type Store interface {
	// Save records v as the latest view of its session.
	Save(ctx context.Context, v session.View) error

	// Get retrieves the latest view of a session by ID.
	Get(ctx context.Context, id string) (session.View, error)

	// Latest returns the most recently saved view of any session.
	Latest(ctx context.Context) (session.View, error)
}

// Memory is an in-memory Store that also observes sessions.
type Memory struct {
	mu     sync.RWMutex
	views  map[string]session.View // keyed by View.SessionID
	order  []string                // session IDs, oldest first
	latest session.View
	seen   bool
	limit  int
}

var (
	_ Store            = (*Memory)(nil)
	_ session.Observer = (*Memory)(nil)
)

// NewMemoryStore constructs an empty store holding up to limit sessions.
func NewMemoryStore(limit int) *Memory {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Memory{views: make(map[string]session.View), limit: limit}
}

// Observe implements session.Observer.
func (m *Memory) Observe(v session.View) { _ = m.Save(context.Background(), v) }

// Save stores the view. Views without a session ID (the supervisor closing)
// only update Latest.
func (m *Memory) Save(ctx context.Context, v session.View) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latest, m.seen = v, true
	if v.SessionID == "" {
		return nil
	}
	if _, ok := m.views[v.SessionID]; !ok {
		m.order = append(m.order, v.SessionID)
		for len(m.order) > m.limit {
			delete(m.views, m.order[0])
			m.order = m.order[1:]
		}
	}
	m.views[v.SessionID] = v
	return nil
}

// Get looks up a session by ID.
func (m *Memory) Get(ctx context.Context, id string) (session.View, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.views[id]; ok {
		return v, nil
	}
	return session.View{}, ErrNotFound
}

// Latest returns the last saved view.
func (m *Memory) Latest(ctx context.Context) (session.View, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.seen {
		return session.View{}, ErrNotFound
	}
	return m.latest, nil
}

// Sessions returns the IDs held, oldest first.
func (m *Memory) Sessions() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.order...)
}
