package dish

import (
	"Dish-Discovery/entities"
	"Dish-Discovery/pkg/restaurant"
	"context"
	"errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"strings"
)

const (
	columnSavedCount = "saved_count"
	columnLikeCount  = "like_count"
)

type (
	DishRepository interface {
		// Transaction runs fn against a repository bound to a single
		// database transaction.
		Transaction(ctx context.Context, fn func(repo DishRepository) error) error
		// Restaurants returns a restaurant repository sharing this
		// repository's connection or transaction.
		Restaurants() restaurant.RestaurantRepository

		CreateDish(ctx context.Context, dish *entities.Dish) error
		GetDishByID(ctx context.Context, id string) (*entities.Dish, error)
		GetDishForUpdate(ctx context.Context, id string) (*entities.Dish, error)
		GetActiveDishes(ctx context.Context) ([]*entities.Dish, error)
		SearchDishes(ctx context.Context, query string) ([]*entities.Dish, error)
		SuggestDishes(ctx context.Context, prefix string, limit int) ([]*entities.Dish, error)
		UpdateDishFields(ctx context.Context, id string, fields map[string]interface{}) error
		SetCounter(ctx context.Context, id string, column string, value int64) error

		// Saves and likes
		HasSave(ctx context.Context, dishID, userID string) (bool, error)
		AddSave(ctx context.Context, save *entities.DishSave) error
		RemoveSave(ctx context.Context, dishID, userID string) error
		ClearSaves(ctx context.Context, dishID string) (int64, error)
		CountSaves(ctx context.Context, dishID string) (int64, error)
		GetSavedDishesByUser(ctx context.Context, userID string) ([]*entities.Dish, error)

		HasLike(ctx context.Context, dishID, userID string) (bool, error)
		AddLike(ctx context.Context, like *entities.DishLike) error
		RemoveLike(ctx context.Context, dishID, userID string) error
		CountLikes(ctx context.Context, dishID string) (int64, error)
		GetLikedDishesByUser(ctx context.Context, userID string) ([]*entities.Dish, error)
	}

	dishRepository struct {
		db *gorm.DB
	}
)

func NewDishRepository(db *gorm.DB) DishRepository {
	return &dishRepository{db: db}
}

func (r *dishRepository) Transaction(ctx context.Context, fn func(repo DishRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&dishRepository{db: tx})
	})
}

func (r *dishRepository) Restaurants() restaurant.RestaurantRepository {
	return restaurant.NewRestaurantRepository(r.db)
}

func (r *dishRepository) CreateDish(ctx context.Context, dish *entities.Dish) error {
	return r.db.WithContext(ctx).Create(dish).Error
}

func (r *dishRepository) GetDishByID(ctx context.Context, id string) (*entities.Dish, error) {
	var dish entities.Dish
	if err := r.db.WithContext(ctx).
		Preload("Restaurant").
		Where("id = ?", id).
		First(&dish).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *dishRepository) GetDishForUpdate(ctx context.Context, id string) (*entities.Dish, error) {
	var dish entities.Dish
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&dish).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *dishRepository) GetActiveDishes(ctx context.Context) ([]*entities.Dish, error) {
	var dishes []*entities.Dish
	if err := r.db.WithContext(ctx).
		Preload("Restaurant").
		Where("is_archived = ?", false).
		Order("created_at asc").
		Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

// SearchDishes matches the query against dish and restaurant names. The
// result keeps catalog order; ranking is the caller's job.
func (r *dishRepository) SearchDishes(ctx context.Context, query string) ([]*entities.Dish, error) {
	var dishes []*entities.Dish

	q := r.db.WithContext(ctx).
		Preload("Restaurant").
		Joins("JOIN restaurants ON restaurants.id = dishes.restaurant_id").
		Where("dishes.is_archived = ?", false)

	if query = strings.TrimSpace(query); query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		q = q.Where("(LOWER(dishes.name) LIKE ? OR LOWER(restaurants.name) LIKE ?)", pattern, pattern)
	}

	if err := q.Order("dishes.created_at asc").Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

func (r *dishRepository) SuggestDishes(ctx context.Context, prefix string, limit int) ([]*entities.Dish, error) {
	var dishes []*entities.Dish
	if err := r.db.WithContext(ctx).
		Preload("Restaurant").
		Where("is_archived = ? AND LOWER(name) LIKE ?", false, strings.ToLower(prefix)+"%").
		Order("saved_count desc").
		Order("created_at desc").
		Limit(limit).
		Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

func (r *dishRepository) UpdateDishFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&entities.Dish{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// SetCounter writes a denormalized counter without touching updated_at.
func (r *dishRepository) SetCounter(ctx context.Context, id string, column string, value int64) error {
	if column != columnSavedCount && column != columnLikeCount {
		return errors.New("unknown counter column " + column)
	}
	return r.db.WithContext(ctx).
		Model(&entities.Dish{}).
		Where("id = ?", id).
		UpdateColumn(column, value).Error
}

func (r *dishRepository) HasSave(ctx context.Context, dishID, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.DishSave{}).
		Where("dish_id = ? AND user_id = ?", dishID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *dishRepository) AddSave(ctx context.Context, save *entities.DishSave) error {
	return r.db.WithContext(ctx).Create(save).Error
}

func (r *dishRepository) RemoveSave(ctx context.Context, dishID, userID string) error {
	return r.db.WithContext(ctx).
		Where("dish_id = ? AND user_id = ?", dishID, userID).
		Delete(&entities.DishSave{}).Error
}

func (r *dishRepository) ClearSaves(ctx context.Context, dishID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("dish_id = ?", dishID).
		Delete(&entities.DishSave{})
	return res.RowsAffected, res.Error
}

func (r *dishRepository) CountSaves(ctx context.Context, dishID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.DishSave{}).
		Where("dish_id = ?", dishID).
		Count(&count).Error
	return count, err
}

func (r *dishRepository) GetSavedDishesByUser(ctx context.Context, userID string) ([]*entities.Dish, error) {
	var dishes []*entities.Dish
	if err := r.db.WithContext(ctx).
		Preload("Restaurant").
		Joins("JOIN dish_saves ON dish_saves.dish_id = dishes.id").
		Where("dish_saves.user_id = ?", userID).
		Order("dish_saves.created_at desc").
		Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

func (r *dishRepository) HasLike(ctx context.Context, dishID, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.DishLike{}).
		Where("dish_id = ? AND user_id = ?", dishID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *dishRepository) AddLike(ctx context.Context, like *entities.DishLike) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *dishRepository) RemoveLike(ctx context.Context, dishID, userID string) error {
	return r.db.WithContext(ctx).
		Where("dish_id = ? AND user_id = ?", dishID, userID).
		Delete(&entities.DishLike{}).Error
}

func (r *dishRepository) CountLikes(ctx context.Context, dishID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.DishLike{}).
		Where("dish_id = ?", dishID).
		Count(&count).Error
	return count, err
}

func (r *dishRepository) GetLikedDishesByUser(ctx context.Context, userID string) ([]*entities.Dish, error) {
	var dishes []*entities.Dish
	if err := r.db.WithContext(ctx).
		Preload("Restaurant").
		Joins("JOIN dish_likes ON dish_likes.dish_id = dishes.id").
		Where("dish_likes.user_id = ?", userID).
		Order("dish_likes.created_at desc").
		Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}
