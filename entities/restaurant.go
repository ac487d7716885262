package entities

import (
	"time"

	"github.com/google/uuid"
)

type Restaurant struct {
	ID                uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	Name              string        `gorm:"not null;index" json:"name"`
	Address           string        `json:"address,omitempty"`
	City              string        `gorm:"index" json:"city,omitempty"`
	Country           string        `json:"country,omitempty"`
	Latitude          *float64      `json:"latitude,omitempty"`
	Longitude         *float64      `json:"longitude,omitempty"`
	GeoStatus         GeoStatus     `gorm:"not null;default:PENDING;index" json:"geo_status"`
	OwnershipType     OwnershipType `gorm:"not null;default:Community" json:"ownership_type"`
	ClaimStatus       ClaimStatus   `gorm:"not null;default:None" json:"claim_status"`
	ClaimedByUserID   *uuid.UUID    `gorm:"type:uuid" json:"claimed_by_user_id,omitempty"`
	ClaimContactEmail string        `json:"-"`
	OwnerUserID       *uuid.UUID    `gorm:"type:uuid" json:"owner_user_id,omitempty"`
	ClaimRequestedAt  *time.Time    `gorm:"type:timestamp" json:"claim_requested_at,omitempty"`
	ClaimReviewedAt   *time.Time    `gorm:"type:timestamp" json:"claim_reviewed_at,omitempty"`
	SignatureDishID   *uuid.UUID    `gorm:"type:uuid" json:"signature_dish_id,omitempty"`

	Dishes []*Dish `gorm:"foreignKey:RestaurantID" json:"-"`
	Timestamp
}

func (r *Restaurant) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}
