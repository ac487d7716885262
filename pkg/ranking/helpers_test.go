package ranking

import (
	"Dish-Discovery/entities"
	"github.com/google/uuid"
	"time"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newDish(name string, ageDays float64, saves int) *entities.Dish {
	created := testNow.Add(-time.Duration(ageDays * float64(day)))
	return &entities.Dish{
		ID:         uuid.New(),
		Name:       name,
		FoodType:   entities.FoodTypeOther,
		SavedCount: saves,
		Timestamp:  entities.Timestamp{CreatedAt: created, UpdatedAt: created},
	}
}

func names(dishes []*entities.Dish) []string {
	out := make([]string, 0, len(dishes))
	for _, d := range dishes {
		out = append(out, d.Name)
	}
	return out
}
