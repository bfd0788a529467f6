package sessions

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/verdict-ml/verdict/pkg/lifecycle"
)

// Manager owns the in-memory session table and evicts sessions whose
// idle time exceeds the TTL.
type Manager struct {
	ttl   time.Duration
	sweep time.Duration

	logger *slog.Logger
	now    func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a Manager that expires sessions idle longer than
// ttl, checking every sweep interval.
func NewManager(ttl, sweep time.Duration, logger *slog.Logger) *Manager {
	return &Manager{
		ttl:      ttl,
		sweep:    sweep,
		logger:   logger.With("system", "sessions"),
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session for id and refreshes its idle timer.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()

	if ok {
		sess.touch(m.now())
	}
	return sess, ok
}

// Create registers and returns a new empty session.
func (m *Manager) Create() *Session {
	sess := newSession(uuid.NewString(), m.now())

	m.mu.Lock()
	m.sessions[sess.ID()] = sess
	m.mu.Unlock()

	return sess
}

// Remove drops the session for id, if present.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Start registers the sweep goroutine with the lifecycle coordinator.
// The goroutine runs until the coordinator's context is cancelled.
func (m *Manager) Start(lc *lifecycle.Coordinator) {
	lc.OnStartup(func() {
		go m.run(lc)
	})
}

func (m *Manager) run(lc *lifecycle.Coordinator) {
	ticker := time.NewTicker(m.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-lc.Context().Done():
			return
		case <-ticker.C:
			if evicted := m.sweepIdle(m.now()); evicted > 0 {
				m.logger.Info("idle sessions evicted", "count", evicted)
			}
		}
	}
}

func (m *Manager) sweepIdle(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, sess := range m.sessions {
		if sess.idleSince(now) > m.ttl {
			delete(m.sessions, id)
			evicted++
		}
	}
	return evicted
}
