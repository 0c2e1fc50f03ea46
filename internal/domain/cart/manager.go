package cart

import (
	"context"
	"sync"

	"github.com/example/quickbasket/internal/catalog"
	"github.com/example/quickbasket/internal/notify"
	"github.com/example/quickbasket/internal/storage"
)

// Manager hands out one Session per user. Sessions are created lazily and
// restored from storage on first access after a restart.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	catalog catalog.Provider
	store   storage.KV
	sink    notify.Sink
}

func NewManager(cat catalog.Provider, kv storage.KV, sink notify.Sink) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		catalog:  cat,
		store:    kv,
		sink:     sink,
	}
}

// Session returns the user's cart session, creating it if needed.
func (m *Manager) Session(ctx context.Context, userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[userID]; ok {
		return s
	}
	s := NewSession(ctx, userID, m.catalog, m.store, m.sink)
	m.sessions[userID] = s
	return s
}

// Drop forgets a user's in-memory session. The persisted cart survives and
// is restored on next access.
func (m *Manager) Drop(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
