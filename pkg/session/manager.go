package session

import (
	"mindcare-be/internal/repository/memory"
	"mindcare-be/pkg/store"

	"github.com/google/uuid"
)

// Manager handles session lifecycle on top of the cache
type Manager struct {
	sessionRepo *memory.SessionRepository
}

func NewManager(sessionRepo *memory.SessionRepository) *Manager {
	return &Manager{sessionRepo: sessionRepo}
}

// Create starts a fresh session under a new id.
func (m *Manager) Create() *store.Session {
	for {
		s := store.NewSession(uuid.NewString())
		if m.sessionRepo.Add(s) {
			return s
		}
	}
}

// LoadOrCreate returns the cached session for id. An unknown or evicted id
// gets a fresh session under the same id; an empty id gets a new one.
// Concurrent callers for the same id receive the same instance.
func (m *Manager) LoadOrCreate(id string) (s *store.Session, created bool) {
	if id == "" {
		return m.Create(), true
	}
	if s, ok := m.sessionRepo.Get(id); ok {
		return s, false
	}

	fresh := store.NewSession(id)
	if m.sessionRepo.Add(fresh) {
		return fresh, true
	}
	// lost the race to another caller
	if s, ok := m.sessionRepo.Get(id); ok {
		return s, false
	}
	m.sessionRepo.Save(fresh)
	return fresh, true
}

// Get returns a cached session without creating one.
func (m *Manager) Get(id string) (*store.Session, bool) {
	return m.sessionRepo.Get(id)
}

// Save refreshes the session's expiry.
func (m *Manager) Save(s *store.Session) {
	m.sessionRepo.Save(s)
}

func (m *Manager) Delete(id string) {
	m.sessionRepo.Delete(id)
}
