package domain

import (
	"Dish-Discovery/entities"
	"github.com/google/uuid"
)

func NewDishResponse(d *entities.Dish) DishResponse {
	res := DishResponse{
		ID:              d.ID.String(),
		Name:            d.Name,
		RestaurantID:    d.RestaurantID.String(),
		ImageURL:        d.ImageURL,
		FoodType:        string(d.FoodType),
		SavedCount:      d.SavedCount,
		LikeCount:       d.LikeCount,
		Rating:          d.Rating,
		CreatedByUserID: d.CreatedByUserID.String(),
		IsArchived:      d.IsArchived,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	if d.Restaurant != nil {
		res.RestaurantName = d.Restaurant.Name
	}
	if d.LastEditedByUserID != nil {
		res.LastEditedByUserID = d.LastEditedByUserID.String()
	}
	return res
}

func NewRestaurantResponse(r *entities.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:               r.ID.String(),
		Name:             r.Name,
		Address:          r.Address,
		City:             r.City,
		Country:          r.Country,
		Latitude:         r.Latitude,
		Longitude:        r.Longitude,
		OwnershipType:    string(r.OwnershipType),
		ClaimStatus:      string(r.ClaimStatus),
		ClaimedByUserID:  optionalID(r.ClaimedByUserID),
		OwnerUserID:      optionalID(r.OwnerUserID),
		ClaimRequestedAt: r.ClaimRequestedAt,
		ClaimReviewedAt:  r.ClaimReviewedAt,
		SignatureDishID:  optionalID(r.SignatureDishID),
	}
}

func NewClaimStateResponse(r *entities.Restaurant) ClaimStateResponse {
	return ClaimStateResponse{
		RestaurantID:     r.ID.String(),
		OwnershipType:    string(r.OwnershipType),
		ClaimStatus:      string(r.ClaimStatus),
		ClaimedByUserID:  optionalID(r.ClaimedByUserID),
		OwnerUserID:      optionalID(r.OwnerUserID),
		ClaimRequestedAt: r.ClaimRequestedAt,
		ClaimReviewedAt:  r.ClaimReviewedAt,
	}
}

func optionalID(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
