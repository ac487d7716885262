package ranking

import (
	"Dish-Discovery/entities"
	"github.com/google/uuid"
	"sort"
	"time"
)

type Badge string

const (
	BadgeNone     Badge = ""
	BadgeTop      Badge = "Top"
	BadgeTrending Badge = "Trending"
	BadgeNew      Badge = "New"
)

const (
	topSize      = 3
	trendingSize = 5
)

func IsNew(dish *entities.Dish, now time.Time) bool {
	return age(dish.CreatedAt, now) <= 7*day
}

// IsTop keeps exactly three ids: dishes tied with the third place but
// sorted after it are not Top.
func IsTop(dish *entities.Dish, pool []*entities.Dish) bool {
	return contains(topBySaves(pool), dish.ID)
}

func TrendingScore(dish *entities.Dish, now time.Time) int {
	boost := 0
	switch a := age(dish.CreatedAt, now); {
	case a <= 3*day:
		boost = 10
	case a <= 7*day:
		boost = 4
	}
	return 2*boost + dish.SavedCount
}

func IsTrending(dish *entities.Dish, pool []*entities.Dish, now time.Time) bool {
	if !IsNew(dish, now) {
		return false
	}
	return contains(trending(pool, now), dish.ID)
}

// PrimaryBadge returns the single highest-priority badge for dish,
// evaluated against the whole catalog pool.
func PrimaryBadge(dish *entities.Dish, pool []*entities.Dish, now time.Time) Badge {
	if dish == nil || dish.IsArchived {
		return BadgeNone
	}
	switch {
	case IsTop(dish, pool):
		return BadgeTop
	case IsTrending(dish, pool, now):
		return BadgeTrending
	case IsNew(dish, now):
		return BadgeNew
	default:
		return BadgeNone
	}
}

// ClassifyAll computes the primary badge of every active dish in pool in
// one pass. Dishes without a badge are absent from the map.
func ClassifyAll(pool []*entities.Dish, now time.Time) map[uuid.UUID]Badge {
	top := topBySaves(pool)
	hot := trending(pool, now)

	badges := make(map[uuid.UUID]Badge)
	for _, d := range active(pool) {
		switch {
		case contains(top, d.ID):
			badges[d.ID] = BadgeTop
		case IsNew(d, now) && contains(hot, d.ID):
			badges[d.ID] = BadgeTrending
		case IsNew(d, now):
			badges[d.ID] = BadgeNew
		}
	}
	return badges
}

func topBySaves(pool []*entities.Dish) []uuid.UUID {
	candidates := active(pool)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].SavedCount > candidates[j].SavedCount
	})
	return firstIDs(candidates, topSize)
}

func trending(pool []*entities.Dish, now time.Time) []uuid.UUID {
	var recent []*entities.Dish
	for _, d := range active(pool) {
		if IsNew(d, now) {
			recent = append(recent, d)
		}
	}

	scores := make(map[*entities.Dish]int, len(recent))
	for _, d := range recent {
		scores[d] = TrendingScore(d, now)
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return scores[recent[i]] > scores[recent[j]]
	})
	return firstIDs(recent, trendingSize)
}

func firstIDs(dishes []*entities.Dish, n int) []uuid.UUID {
	if len(dishes) < n {
		n = len(dishes)
	}
	ids := make([]uuid.UUID, 0, n)
	for _, d := range dishes[:n] {
		ids = append(ids, d.ID)
	}
	return ids
}

func contains(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
