package entities

import (
	"time"

	"github.com/google/uuid"
)

type Dish struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name               string     `gorm:"not null" json:"name"`
	RestaurantID       uuid.UUID  `gorm:"type:uuid;index" json:"restaurant_id"`
	ImageURL           string     `json:"image_url,omitempty"`
	FoodType           FoodType   `gorm:"not null;default:Other" json:"food_type"`
	SavedCount         int        `gorm:"not null;default:0" json:"saved_count"`
	LikeCount          int        `gorm:"not null;default:0" json:"like_count"`
	Rating             *float64   `json:"rating,omitempty"`
	CreatedByUserID    uuid.UUID  `gorm:"type:uuid;index" json:"created_by_user_id"`
	LastEditedByUserID *uuid.UUID `gorm:"type:uuid" json:"last_edited_by_user_id,omitempty"`
	IsArchived         bool       `gorm:"not null;default:false;index" json:"is_archived"`

	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
	Timestamp
}

// DishSave is the single edge behind both Dish.savedByUserIds and
// User.savedDishIds.
type DishSave struct {
	DishID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"dish_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"user_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	Dish *Dish `gorm:"foreignKey:DishID" json:"-"`
}

type DishLike struct {
	DishID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"dish_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"user_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	Dish *Dish `gorm:"foreignKey:DishID" json:"-"`
}

func (d *Dish) RatingOrZero() float64 {
	if d.Rating == nil {
		return 0
	}
	return *d.Rating
}
