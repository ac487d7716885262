package domain

import (
	"fmt"
	"time"
)

var (
	MessageSuccessGetRestaurant    = "restaurant retrieved successfully"
	MessageSuccessSubmitClaim      = "restaurant claim submitted successfully"
	MessageSuccessUpdateClaim      = "restaurant claim updated successfully"
	MessageSuccessSetSignatureDish = "signature dish updated successfully"
	MessageSuccessGetSavedDishes   = "saved dishes retrieved successfully"
	MessageSuccessGetLikedDishes   = "liked dishes retrieved successfully"
	MessageFailedGetRestaurant     = "failed to retrieve restaurant"
	MessageFailedSubmitClaim       = "failed to submit restaurant claim"
	MessageFailedUpdateClaim       = "failed to update restaurant claim"
	MessageFailedSetSignatureDish  = "failed to update signature dish"
	MessageFailedGetSavedDishes    = "failed to retrieve saved dishes"
	MessageFailedGetLikedDishes    = "failed to retrieve liked dishes"

	ErrRestaurantNotFound     = fmt.Errorf("restaurant %w", ErrNotFound)
	ErrInvalidClaimTarget     = fmt.Errorf("%w: claim target must be Verified or Rejected", ErrInvalidStateTransition)
	ErrDishNotInRestaurant    = fmt.Errorf("%w: dish does not belong to restaurant", ErrValidation)
	ErrRestaurantNameRequired = fmt.Errorf("%w: restaurant name must not be empty", ErrValidation)
)

type (
	SubmitClaimRequest struct {
		ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	}

	UpdateClaimStateRequest struct {
		ClaimStatus string `json:"claim_status" validate:"required"`
	}

	SetSignatureDishRequest struct {
		DishID string `json:"dish_id" validate:"required,uuid"`
	}

	RestaurantResponse struct {
		ID               string         `json:"id"`
		Name             string         `json:"name"`
		Address          string         `json:"address,omitempty"`
		City             string         `json:"city,omitempty"`
		Country          string         `json:"country,omitempty"`
		Latitude         *float64       `json:"latitude,omitempty"`
		Longitude        *float64       `json:"longitude,omitempty"`
		OwnershipType    string         `json:"ownership_type"`
		ClaimStatus      string         `json:"claim_status"`
		ClaimedByUserID  string         `json:"claimed_by_user_id,omitempty"`
		OwnerUserID      string         `json:"owner_user_id,omitempty"`
		ClaimRequestedAt *time.Time     `json:"claim_requested_at,omitempty"`
		ClaimReviewedAt  *time.Time     `json:"claim_reviewed_at,omitempty"`
		SignatureDishID  string         `json:"signature_dish_id,omitempty"`
		SignatureDish    *DishResponse  `json:"signature_dish,omitempty"`
		Dishes           []DishResponse `json:"dishes,omitempty"`
	}

	ClaimStateResponse struct {
		RestaurantID     string     `json:"restaurant_id"`
		OwnershipType    string     `json:"ownership_type"`
		ClaimStatus      string     `json:"claim_status"`
		ClaimedByUserID  string     `json:"claimed_by_user_id,omitempty"`
		OwnerUserID      string     `json:"owner_user_id,omitempty"`
		ClaimRequestedAt *time.Time `json:"claim_requested_at,omitempty"`
		ClaimReviewedAt  *time.Time `json:"claim_reviewed_at,omitempty"`
	}
)
