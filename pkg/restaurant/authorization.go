package restaurant

import (
	"Dish-Discovery/domain"
	"Dish-Discovery/entities"
	"context"
	"errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// DishReader is the slice of dish storage the restaurant package needs.
	DishReader interface {
		GetDishByID(ctx context.Context, id string) (*entities.Dish, error)
		GetActiveDishes(ctx context.Context) ([]*entities.Dish, error)
	}

	AuthorizationService interface {
		CanEdit(ctx context.Context, dishID string, userID string) (bool, error)
		CanArchiveOrRestore(ctx context.Context, dishID string, userID string) (bool, error)
	}

	authorizationService struct {
		dishReader           DishReader
		restaurantRepository RestaurantRepository
	}
)

// CanEdit reports whether userID may change the dish's content: its author
// always may, and so may the verified owner or claimant of its restaurant.
func CanEdit(dish *entities.Dish, restaurant *entities.Restaurant, userID uuid.UUID) bool {
	if dish == nil || userID == uuid.Nil {
		return false
	}
	if dish.CreatedByUserID == userID {
		return true
	}
	if restaurant == nil || restaurant.ID != dish.RestaurantID {
		return false
	}
	if restaurant.ClaimStatus != entities.ClaimStatusVerified {
		return false
	}
	return sameUser(restaurant.OwnerUserID, userID) || sameUser(restaurant.ClaimedByUserID, userID)
}

// CanArchiveOrRestore is narrower than CanEdit: only the author qualifies.
func CanArchiveOrRestore(dish *entities.Dish, userID uuid.UUID) bool {
	if dish == nil || userID == uuid.Nil {
		return false
	}
	return dish.CreatedByUserID == userID
}

func sameUser(id *uuid.UUID, userID uuid.UUID) bool {
	return id != nil && *id == userID
}

func NewAuthorizationService(dishReader DishReader, restaurantRepository RestaurantRepository) AuthorizationService {
	return &authorizationService{
		dishReader:           dishReader,
		restaurantRepository: restaurantRepository,
	}
}

func (s *authorizationService) CanEdit(ctx context.Context, dishID string, userID string) (bool, error) {
	dish, userUUID, err := s.load(ctx, dishID, userID)
	if err != nil {
		return false, err
	}

	restaurant, err := s.restaurantRepository.GetRestaurantByID(ctx, dish.RestaurantID.String())
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return CanEdit(dish, restaurant, userUUID), nil
}

func (s *authorizationService) CanArchiveOrRestore(ctx context.Context, dishID string, userID string) (bool, error) {
	dish, userUUID, err := s.load(ctx, dishID, userID)
	if err != nil {
		return false, err
	}
	return CanArchiveOrRestore(dish, userUUID), nil
}

func (s *authorizationService) load(ctx context.Context, dishID string, userID string) (*entities.Dish, uuid.UUID, error) {
	if _, err := uuid.Parse(dishID); err != nil {
		return nil, uuid.Nil, domain.ErrDishNotFound
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, uuid.Nil, domain.ErrParseUUID
	}

	dish, err := s.dishReader.GetDishByID(ctx, dishID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uuid.Nil, domain.ErrDishNotFound
		}
		return nil, uuid.Nil, err
	}
	return dish, userUUID, nil
}
