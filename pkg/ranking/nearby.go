package ranking

import (
	"Dish-Discovery/entities"
	"github.com/google/uuid"
	"sort"
)

type NearbyDish struct {
	Dish       *entities.Dish
	DistanceKm float64
}

// NearbyRank orders active dishes by distance from (lat, lng) to their
// restaurant. Dishes whose restaurant is unknown or lacks a coordinate are
// left out.
func NearbyRank(dishes []*entities.Dish, restaurants []*entities.Restaurant, lat, lng float64) []NearbyDish {
	byID := make(map[uuid.UUID]*entities.Restaurant, len(restaurants))
	for _, r := range restaurants {
		if r != nil {
			byID[r.ID] = r
		}
	}

	out := make([]NearbyDish, 0, len(dishes))
	for _, d := range active(dishes) {
		r, ok := byID[d.RestaurantID]
		if !ok || !r.HasCoordinates() {
			continue
		}
		out = append(out, NearbyDish{
			Dish:       d,
			DistanceKm: Haversine(lat, lng, *r.Latitude, *r.Longitude),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})
	return out
}

// WithinRadius keeps the prefix of an ascending NearbyRank result that lies
// inside radiusKm. A non-positive radius keeps everything.
func WithinRadius(ranked []NearbyDish, radiusKm float64) []NearbyDish {
	if radiusKm <= 0 {
		return ranked
	}
	n := sort.Search(len(ranked), func(i int) bool {
		return ranked[i].DistanceKm > radiusKm
	})
	return ranked[:n]
}
