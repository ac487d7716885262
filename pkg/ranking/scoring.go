// Package ranking orders and classifies dishes for the feed, search and
// nearby views. Every function here works on a snapshot supplied by the
// caller and never touches storage.
package ranking

import (
	"Dish-Discovery/entities"
	"sort"
	"time"
)

const day = 24 * time.Hour

func age(createdAt, now time.Time) time.Duration {
	a := now.Sub(createdAt)
	if a < 0 {
		return 0
	}
	return a
}

// RecencyBoost rewards dishes created in the last week.
func RecencyBoost(createdAt, now time.Time) int {
	switch a := age(createdAt, now); {
	case a <= 3*day:
		return 5
	case a <= 7*day:
		return 2
	default:
		return 0
	}
}

func Score(dish *entities.Dish, now time.Time) int {
	return 2*dish.SavedCount + RecencyBoost(dish.CreatedAt, now)
}

// Rank drops archived dishes and orders the rest by Score, highest first.
// Equal scores keep their input order.
func Rank(dishes []*entities.Dish, now time.Time) []*entities.Dish {
	ranked := active(dishes)
	scores := make(map[*entities.Dish]int, len(ranked))
	for _, d := range ranked {
		scores[d] = Score(d, now)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	return ranked
}

func active(dishes []*entities.Dish) []*entities.Dish {
	out := make([]*entities.Dish, 0, len(dishes))
	for _, d := range dishes {
		if d == nil || d.IsArchived {
			continue
		}
		out = append(out, d)
	}
	return out
}
