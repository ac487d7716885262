package dish

import (
	"Dish-Discovery/pkg/ranking"
	"sync"
	"time"
)

const sessionTTL = 30 * time.Minute

// sessionStore keeps one frozen badge classification per viewer. Entries
// idle for longer than ttl are dropped on the next access.
type sessionStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*sessionEntry
}

type sessionEntry struct {
	session *ranking.BadgeSession
	seen    time.Time
}

func newSessionStore(ttl time.Duration) *sessionStore {
	return &sessionStore{
		ttl:     ttl,
		entries: make(map[string]*sessionEntry),
	}
}

// get returns the viewer's session, creating it when missing. created is
// true when the caller must load the first classification.
func (s *sessionStore) get(key string, now time.Time) (session *ranking.BadgeSession, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prune(now)
	if e, ok := s.entries[key]; ok {
		e.seen = now
		return e.session, false
	}
	e := &sessionEntry{session: ranking.NewBadgeSession(), seen: now}
	s.entries[key] = e
	return e.session, true
}

func (s *sessionStore) peek(key string, now time.Time) *ranking.BadgeSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prune(now)
	if e, ok := s.entries[key]; ok {
		return e.session
	}
	return nil
}

func (s *sessionStore) prune(now time.Time) {
	for key, e := range s.entries {
		if now.Sub(e.seen) > s.ttl {
			delete(s.entries, key)
		}
	}
}
