package ranking

import (
	"Dish-Discovery/entities"
	"sort"
	"time"
)

type (
	Cuisine  string
	SortMode string
)

const (
	CuisineAll      Cuisine = "All"
	CuisineItalian  Cuisine = "Italian"
	CuisineJapanese Cuisine = "Japanese"
	CuisineAmerican Cuisine = "American"
	CuisineMexican  Cuisine = "Mexican"
	CuisineIndian   Cuisine = "Indian"
	CuisineHealthy  Cuisine = "Healthy"
	CuisineSweets   Cuisine = "Sweets"
	CuisineOther    Cuisine = "Other"

	SortRecency SortMode = "Recency"
	SortLikes   SortMode = "Likes"
	SortRating  SortMode = "Rating"
)

var cuisineFoodTypes = map[Cuisine][]entities.FoodType{
	CuisineItalian:  {entities.FoodTypePizza, entities.FoodTypePasta},
	CuisineJapanese: {entities.FoodTypeSushi, entities.FoodTypeRamen},
	CuisineAmerican: {entities.FoodTypeBurger},
	CuisineMexican:  {entities.FoodTypeTaco},
	CuisineIndian:   {entities.FoodTypeCurry},
	CuisineHealthy:  {entities.FoodTypeSalad},
	CuisineSweets:   {entities.FoodTypeDessert},
	CuisineOther:    {entities.FoodTypeOther},
}

// ParseCuisine accepts the exact cuisine names; an empty string means All.
func ParseCuisine(s string) (Cuisine, bool) {
	if s == "" || Cuisine(s) == CuisineAll {
		return CuisineAll, true
	}
	if _, ok := cuisineFoodTypes[Cuisine(s)]; ok {
		return Cuisine(s), true
	}
	return "", false
}

// ParseSortMode accepts the exact mode names; an empty string means Recency.
func ParseSortMode(s string) (SortMode, bool) {
	switch SortMode(s) {
	case "", SortRecency:
		return SortRecency, true
	case SortLikes, SortRating:
		return SortMode(s), true
	}
	return "", false
}

func (c Cuisine) Matches(foodType entities.FoodType) bool {
	if c == CuisineAll {
		return true
	}
	for _, ft := range cuisineFoodTypes[c] {
		if ft == foodType {
			return true
		}
	}
	return false
}

// SearchRank orders an already text-matched result set: relevance pre-order,
// cuisine filter, then the chosen sort. Likes and Rating fall back to
// recency on ties.
func SearchRank(results []*entities.Dish, cuisine Cuisine, mode SortMode, now time.Time) []*entities.Dish {
	ranked := Rank(results, now)

	filtered := make([]*entities.Dish, 0, len(ranked))
	for _, d := range ranked {
		if cuisine.Matches(d.FoodType) {
			filtered = append(filtered, d)
		}
	}

	newer := func(a, b *entities.Dish) bool {
		return a.CreatedAt.After(b.CreatedAt)
	}

	var less func(a, b *entities.Dish) bool
	switch mode {
	case SortLikes:
		less = func(a, b *entities.Dish) bool {
			if a.LikeCount != b.LikeCount {
				return a.LikeCount > b.LikeCount
			}
			return newer(a, b)
		}
	case SortRating:
		less = func(a, b *entities.Dish) bool {
			if a.RatingOrZero() != b.RatingOrZero() {
				return a.RatingOrZero() > b.RatingOrZero()
			}
			return newer(a, b)
		}
	default:
		less = newer
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return less(filtered[i], filtered[j])
	})
	return filtered
}
