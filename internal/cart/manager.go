package cart

import (
	"sync"
	"time"
)

type session struct {
	store    *Store
	lastSeen time.Time
}

// Manager owns one Store per shopping session and evicts sessions that have
// been idle longer than the configured TTL.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session
	idleTTL  time.Duration
	now      func() time.Time
}

// NewManager builds a session manager. A non-positive TTL disables eviction.
func NewManager(idleTTL time.Duration) *Manager {
	return &Manager{
		sessions: map[string]*session{},
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// Get returns the store for the session, creating it on first use, and
// refreshes the session's idle clock.
func (m *Manager) Get(sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.sessions[sessionID]
	if !ok {
		entry = &session{store: NewStore()}
		m.sessions[sessionID] = entry
	}
	entry.lastSeen = m.now()
	return entry.store
}

// Remove drops the session and its cart.
func (m *Manager) Remove(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// PurgeIdle evicts sessions whose last access is older than the idle TTL and
// returns how many were dropped.
func (m *Manager) PurgeIdle() int {
	if m.idleTTL <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-m.idleTTL)
	purged := 0
	for id, entry := range m.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			purged++
		}
	}
	return purged
}
