package entities

type (
	OwnershipType string
	ClaimStatus   string
	FoodType      string
	GeoStatus     string
)

const (
	OwnershipCommunity    OwnershipType = "Community"
	OwnershipOwnerManaged OwnershipType = "OwnerManaged"

	ClaimStatusNone     ClaimStatus = "None"
	ClaimStatusPending  ClaimStatus = "Pending"
	ClaimStatusVerified ClaimStatus = "Verified"
	ClaimStatusRejected ClaimStatus = "Rejected"

	GeoStatusPending  GeoStatus = "PENDING"
	GeoStatusResolved GeoStatus = "RESOLVED"
	GeoStatusFailed   GeoStatus = "FAILED"
)

const (
	FoodTypePizza   FoodType = "Pizza"
	FoodTypePasta   FoodType = "Pasta"
	FoodTypeBurger  FoodType = "Burger"
	FoodTypeSushi   FoodType = "Sushi"
	FoodTypeRamen   FoodType = "Ramen"
	FoodTypeTaco    FoodType = "Taco"
	FoodTypeCurry   FoodType = "Curry"
	FoodTypeSalad   FoodType = "Salad"
	FoodTypeDessert FoodType = "Dessert"
	FoodTypeOther   FoodType = "Other"
)

var FoodTypes = []FoodType{
	FoodTypePizza,
	FoodTypePasta,
	FoodTypeBurger,
	FoodTypeSushi,
	FoodTypeRamen,
	FoodTypeTaco,
	FoodTypeCurry,
	FoodTypeSalad,
	FoodTypeDessert,
	FoodTypeOther,
}

var ClaimStatuses = []ClaimStatus{
	ClaimStatusNone,
	ClaimStatusPending,
	ClaimStatusVerified,
	ClaimStatusRejected,
}

func (f FoodType) Valid() bool {
	for _, known := range FoodTypes {
		if f == known {
			return true
		}
	}
	return false
}

func (s ClaimStatus) Valid() bool {
	for _, known := range ClaimStatuses {
		if s == known {
			return true
		}
	}
	return false
}
