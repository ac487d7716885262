package handlers

import (
	"Dish-Discovery/entities"
	"Dish-Discovery/internal/database/dbtest"
	"Dish-Discovery/internal/utils"
	"Dish-Discovery/pkg/dish"
	"Dish-Discovery/pkg/restaurant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func newRestaurantServer(t *testing.T) (*testServer, *entities.Restaurant) {
	t.Helper()
	require.NoError(t, utils.InitValidator())
	db := dbtest.OpenTestDB(t)

	dishRepo := dish.NewDishRepository(db)
	h := NewRestaurantHandler(restaurant.NewRestaurantService(dishRepo.Restaurants(), dishRepo, nil, nil), utils.Validate)

	app := fiber.New()
	group := app.Group("/restaurants", func(c *fiber.Ctx) error {
		c.Locals("user_id", c.Get("X-User"))
		c.Locals("email", "claimant@dish.test")
		return c.Next()
	})
	group.Get("/:id", h.GetRestaurant)
	group.Get("/:id/claim", h.GetClaimState)
	group.Post("/:id/claim", h.SubmitClaim)
	group.Patch("/:id/claim", h.UpdateClaimState)

	r := &entities.Restaurant{
		ID:            uuid.New(),
		Name:          "Warung Bu Tini",
		GeoStatus:     entities.GeoStatusPending,
		OwnershipType: entities.OwnershipCommunity,
		ClaimStatus:   entities.ClaimStatusNone,
	}
	require.NoError(t, db.Create(r).Error)
	return &testServer{app: app, db: db}, r
}

func TestClaimHandlers(t *testing.T) {
	s, r := newRestaurantServer(t)
	claimant := uuid.NewString()
	path := "/restaurants/" + r.ID.String() + "/claim"

	code, res := s.call(t, fiber.MethodPost, path, claimant, "")
	require.Equal(t, fiber.StatusOK, code, res.Error)
	assert.Equal(t, "Pending", res.Data.(map[string]interface{})["claim_status"])

	code, _ = s.call(t, fiber.MethodPost, path, uuid.NewString(), "")
	assert.Equal(t, fiber.StatusConflict, code)

	code, _ = s.call(t, fiber.MethodPatch, path, "", `{"claim_status":"Pending"}`)
	assert.Equal(t, fiber.StatusConflict, code)

	code, _ = s.call(t, fiber.MethodPatch, path, "", `{}`)
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, res = s.call(t, fiber.MethodPatch, path, "", `{"claim_status":"Verified"}`)
	require.Equal(t, fiber.StatusOK, code, res.Error)
	data := res.Data.(map[string]interface{})
	assert.Equal(t, "Verified", data["claim_status"])
	assert.Equal(t, claimant, data["owner_user_id"])

	var stored entities.Restaurant
	require.NoError(t, s.db.Where("id = ?", r.ID).First(&stored).Error)
	assert.Equal(t, "claimant@dish.test", stored.ClaimContactEmail)
}

func TestRestaurantHandlerNotFound(t *testing.T) {
	s, _ := newRestaurantServer(t)

	code, _ := s.call(t, fiber.MethodGet, "/restaurants/"+uuid.NewString(), "", "")
	assert.Equal(t, fiber.StatusNotFound, code)

	code, _ = s.call(t, fiber.MethodGet, "/restaurants/nope/claim", "", "")
	assert.Equal(t, fiber.StatusNotFound, code)

	code, _ = s.call(t, fiber.MethodPost, "/restaurants/"+uuid.NewString()+"/claim", uuid.NewString(), `{"contact_email":"not-an-email"}`)
	assert.Equal(t, fiber.StatusBadRequest, code)
}
