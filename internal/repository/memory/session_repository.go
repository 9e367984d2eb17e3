package memory

import (
	"time"

	"mindcare-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps conversation state in process memory. Entries
// expire after ttl without activity and are purged every cleanupInterval.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl, cleanupInterval time.Duration) *SessionRepository {
	return &SessionRepository{
		cache: cache.New(ttl, cleanupInterval),
	}
}

// Save stores the session and restarts its expiry.
func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

// Add stores the session only if the id is free. It reports whether the
// session was stored.
func (r *SessionRepository) Add(session *store.Session) bool {
	return r.cache.Add(session.ID, session, cache.DefaultExpiration) == nil
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}
