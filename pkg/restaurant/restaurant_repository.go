package restaurant

import (
	"Dish-Discovery/entities"
	"context"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"strings"
	"time"
)

type (
	RestaurantRepository interface {
		// Transaction runs fn against a repository bound to a single
		// database transaction.
		Transaction(ctx context.Context, fn func(repo RestaurantRepository) error) error

		CreateRestaurant(ctx context.Context, restaurant *entities.Restaurant) error
		ProvisionRestaurant(ctx context.Context, restaurant *entities.Restaurant) (*entities.Restaurant, bool, error)
		GetRestaurantByID(ctx context.Context, id string) (*entities.Restaurant, error)
		GetRestaurantForUpdate(ctx context.Context, id string) (*entities.Restaurant, error)
		FindRestaurantByName(ctx context.Context, name string, city string) (*entities.Restaurant, error)
		GetRestaurantsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Restaurant, error)
		UpdateClaimFields(ctx context.Context, id string, from []entities.ClaimStatus, fields map[string]interface{}) (int64, error)
		UpdateSignatureDish(ctx context.Context, id string, dishID uuid.UUID, now time.Time) error

		// Geocoding
		GetPendingGeocode(ctx context.Context, limit int) ([]*entities.Restaurant, error)
		UpdateCoordinates(ctx context.Context, id uuid.UUID, lat, lng float64) error
		MarkGeocodeFailed(ctx context.Context, id uuid.UUID) error
	}

	restaurantRepository struct {
		db *gorm.DB
	}
)

func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) Transaction(ctx context.Context, fn func(repo RestaurantRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&restaurantRepository{db: tx})
	})
}

func (r *restaurantRepository) CreateRestaurant(ctx context.Context, restaurant *entities.Restaurant) error {
	return r.db.WithContext(ctx).Create(restaurant).Error
}

// ProvisionRestaurant inserts restaurant unless a listing with the same name
// and city already exists, in which case that listing is returned instead.
// The boolean reports whether a row was inserted.
func (r *restaurantRepository) ProvisionRestaurant(ctx context.Context, restaurant *entities.Restaurant) (*entities.Restaurant, bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(restaurant)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 1 {
		return restaurant, true, nil
	}

	existing, err := r.FindRestaurantByName(ctx, restaurant.Name, restaurant.City)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *restaurantRepository) GetRestaurantByID(ctx context.Context, id string) (*entities.Restaurant, error) {
	var restaurant entities.Restaurant
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) GetRestaurantForUpdate(ctx context.Context, id string) (*entities.Restaurant, error) {
	var restaurant entities.Restaurant
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) FindRestaurantByName(ctx context.Context, name string, city string) (*entities.Restaurant, error) {
	var restaurant entities.Restaurant
	// An empty city only matches listings that have no city either.
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Where("LOWER(COALESCE(city, '')) = ?", strings.ToLower(strings.TrimSpace(city))).
		Order("created_at asc").
		First(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) GetRestaurantsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Restaurant, error) {
	var restaurants []*entities.Restaurant
	if len(ids) == 0 {
		return restaurants, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

// UpdateClaimFields applies fields only while the row is still in one of
// the from states and reports how many rows changed.
func (r *restaurantRepository) UpdateClaimFields(ctx context.Context, id string, from []entities.ClaimStatus, fields map[string]interface{}) (int64, error) {
	states := make([]string, 0, len(from))
	for _, s := range from {
		states = append(states, string(s))
	}

	res := r.db.WithContext(ctx).
		Model(&entities.Restaurant{}).
		Where("id = ? AND claim_status IN ?", id, states).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *restaurantRepository) UpdateSignatureDish(ctx context.Context, id string, dishID uuid.UUID, now time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entities.Restaurant{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"signature_dish_id": dishID,
			"updated_at":        now,
		}).Error
}

func (r *restaurantRepository) GetPendingGeocode(ctx context.Context, limit int) ([]*entities.Restaurant, error) {
	var restaurants []*entities.Restaurant
	if err := r.db.WithContext(ctx).
		Where("geo_status = ?", string(entities.GeoStatusPending)).
		Order("created_at asc").
		Limit(limit).
		Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *restaurantRepository) UpdateCoordinates(ctx context.Context, id uuid.UUID, lat, lng float64) error {
	return r.db.WithContext(ctx).
		Model(&entities.Restaurant{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"latitude":   lat,
			"longitude":  lng,
			"geo_status": string(entities.GeoStatusResolved),
		}).Error
}

func (r *restaurantRepository) MarkGeocodeFailed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.Restaurant{}).
		Where("id = ?", id).
		Update("geo_status", string(entities.GeoStatusFailed)).Error
}
