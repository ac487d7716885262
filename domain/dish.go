package domain

import (
	"fmt"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessAddDish         = "dish added successfully"
	MessageSuccessUpdateDish      = "dish updated successfully"
	MessageSuccessArchiveDish     = "dish archived successfully"
	MessageSuccessRestoreDish     = "dish restored successfully"
	MessageSuccessUploadDishImage = "dish image uploaded successfully"
	MessageSuccessGetDishes       = "dishes retrieved successfully"
	MessageSuccessGetDish         = "dish retrieved successfully"
	MessageSuccessToggleSave      = "dish save toggled"
	MessageSuccessToggleLike      = "dish like toggled"
	MessageSuccessGetPermissions  = "dish permissions retrieved successfully"
	MessageSuccessGetSuggestions  = "suggestions retrieved successfully"

	MessageFailedAddDish         = "failed to add dish"
	MessageFailedUpdateDish      = "failed to update dish"
	MessageFailedArchiveDish     = "failed to archive dish"
	MessageFailedRestoreDish     = "failed to restore dish"
	MessageFailedUploadDishImage = "failed to upload dish image"
	MessageFailedGetDishes       = "failed to retrieve dishes"
	MessageFailedGetDish         = "failed to retrieve dish"
	MessageFailedToggleSave      = "failed to toggle dish save"
	MessageFailedToggleLike      = "failed to toggle dish like"
	MessageFailedGetPermissions  = "failed to retrieve dish permissions"
	MessageFailedGetSuggestions  = "failed to retrieve suggestions"

	ErrDishNotFound      = fmt.Errorf("dish %w", ErrNotFound)
	ErrDishNameEmpty     = fmt.Errorf("%w: dish name must not be empty", ErrValidation)
	ErrDishArchived      = fmt.Errorf("%w: dish is archived", ErrValidation)
	ErrInvalidFoodType   = fmt.Errorf("%w: unknown food type", ErrValidation)
	ErrInvalidCuisine    = fmt.Errorf("%w: unknown cuisine", ErrValidation)
	ErrInvalidSortMode   = fmt.Errorf("%w: unknown sort mode", ErrValidation)
	ErrInvalidRating     = fmt.Errorf("%w: rating must be between 0 and 5", ErrValidation)
	ErrInvalidCoordinate = fmt.Errorf("%w: invalid coordinates", ErrValidation)
)

type (
	AddDishRequest struct {
		Name              string                `json:"name" form:"name" validate:"required,max=120"`
		RestaurantName    string                `json:"restaurant_name" form:"restaurant_name" validate:"required,max=120"`
		RestaurantAddress string                `json:"restaurant_address" form:"restaurant_address" validate:"omitempty,max=255"`
		RestaurantCity    string                `json:"restaurant_city" form:"restaurant_city" validate:"omitempty,max=80"`
		RestaurantCountry string                `json:"restaurant_country" form:"restaurant_country" validate:"omitempty,max=80"`
		FoodType          string                `json:"food_type" form:"food_type" validate:"required,foodtype"`
		Rating            *float64              `json:"rating" form:"rating" validate:"omitempty,min=0,max=5"`
		Image             *multipart.FileHeader `json:"-" form:"-"`
	}

	// UpdateDishRequest uses pointers so that an omitted field is
	// distinguishable from a cleared one.
	UpdateDishRequest struct {
		Name     *string  `json:"name" validate:"omitempty,max=120"`
		FoodType *string  `json:"food_type" validate:"omitempty,foodtype"`
		ImageURL *string  `json:"image_url" validate:"omitempty,url"`
		Rating   *float64 `json:"rating" validate:"omitempty,min=0,max=5"`
	}

	UploadDishImageRequest struct {
		DishID string                `validate:"required,uuid"`
		Image  *multipart.FileHeader `validate:"required"`
	}

	SearchDishesRequest struct {
		Query   string `query:"q" validate:"max=120"`
		Cuisine string `query:"cuisine" validate:"omitempty,cuisine"`
		Sort    string `query:"sort" validate:"omitempty,sortmode"`
	}

	NearbyDishesRequest struct {
		Latitude  *float64 `query:"lat" validate:"required,latitude"`
		Longitude *float64 `query:"lng" validate:"required,longitude"`
		RadiusKm  float64  `query:"radius_km" validate:"omitempty,gt=0"`
	}

	DishResponse struct {
		ID                 string    `json:"id"`
		Name               string    `json:"name"`
		RestaurantID       string    `json:"restaurant_id"`
		RestaurantName     string    `json:"restaurant_name,omitempty"`
		ImageURL           string    `json:"image_url,omitempty"`
		FoodType           string    `json:"food_type"`
		SavedCount         int       `json:"saved_count"`
		LikeCount          int       `json:"like_count"`
		Rating             *float64  `json:"rating,omitempty"`
		CreatedByUserID    string    `json:"created_by_user_id"`
		LastEditedByUserID string    `json:"last_edited_by_user_id,omitempty"`
		IsArchived         bool      `json:"is_archived"`
		Badge              string    `json:"badge,omitempty"`
		Score              int       `json:"score"`
		DistanceKm         *float64  `json:"distance_km,omitempty"`
		CreatedAt          time.Time `json:"created_at"`
		UpdatedAt          time.Time `json:"updated_at"`
	}

	ToggleResponse struct {
		DishID string `json:"dish_id"`
		Active bool   `json:"active"`
		Count  int    `json:"count"`
	}

	DishPermissionsResponse struct {
		DishID            string `json:"dish_id"`
		CanEdit           bool   `json:"can_edit"`
		CanArchiveRestore bool   `json:"can_archive_or_restore"`
	}

	SuggestionResponse struct {
		ID             string `json:"id"`
		Name           string `json:"name"`
		RestaurantName string `json:"restaurant_name,omitempty"`
	}
)
