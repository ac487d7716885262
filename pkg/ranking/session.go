package ranking

import (
	"Dish-Discovery/entities"
	"github.com/google/uuid"
	"sync"
	"time"
)

// RecomputeTrigger names the events allowed to refresh a frozen badge
// classification. Save and like toggles are not triggers.
type RecomputeTrigger int

const (
	TriggerDataLoaded RecomputeTrigger = iota + 1
	TriggerFilterChanged
	TriggerLocationChanged
)

func (t RecomputeTrigger) String() string {
	switch t {
	case TriggerDataLoaded:
		return "DataLoaded"
	case TriggerFilterChanged:
		return "FilterChanged"
	case TriggerLocationChanged:
		return "LocationChanged"
	default:
		return "Unknown"
	}
}

func (t RecomputeTrigger) Valid() bool {
	return t >= TriggerDataLoaded && t <= TriggerLocationChanged
}

// BadgeSession freezes badge classification for one viewing session so that
// badges stay put while the user toggles saves and likes.
type BadgeSession struct {
	mu       sync.RWMutex
	frozenAt time.Time
	badges   map[uuid.UUID]Badge
	last     RecomputeTrigger
}

func NewBadgeSession() *BadgeSession {
	return &BadgeSession{badges: map[uuid.UUID]Badge{}}
}

// Recompute replaces the frozen classification with one computed over pool
// at now. It reports false and keeps the previous classification when
// trigger is not a recognised recompute trigger.
func (s *BadgeSession) Recompute(trigger RecomputeTrigger, pool []*entities.Dish, now time.Time) bool {
	if !trigger.Valid() {
		return false
	}
	badges := ClassifyAll(pool, now)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.badges = badges
	s.frozenAt = now
	s.last = trigger
	return true
}

func (s *BadgeSession) Badge(dishID uuid.UUID) Badge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.badges[dishID]
}

func (s *BadgeSession) FrozenAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frozenAt
}

func (s *BadgeSession) LastTrigger() RecomputeTrigger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}
