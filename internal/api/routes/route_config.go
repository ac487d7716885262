package routes

import (
	"Dish-Discovery/internal/api/handlers"
	"Dish-Discovery/internal/middleware"
	"Dish-Discovery/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	DishHandler       handlers.DishHandler
	RestaurantHandler handlers.RestaurantHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Dishes()
	c.Restaurants()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users", c.Middleware.AuthMiddleware(c.JWTService))
	{
		user.Get("/me", c.UserHandler.Me)
		user.Get("/me/saved", c.UserHandler.GetSavedDishes)
		user.Get("/me/liked", c.UserHandler.GetLikedDishes)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Dishes() {
	dishes := c.App.Group("/api/v1/dishes", c.Middleware.AuthMiddleware(c.JWTService))

	// Discovery
	dishes.Get("", c.DishHandler.GetFeed)
	dishes.Get("/search", c.DishHandler.SearchDishes)
	dishes.Get("/nearby", c.DishHandler.GetNearbyDishes)
	dishes.Get("/suggest", c.DishHandler.SuggestDishes)

	dishes.Post("", c.DishHandler.AddDish)
	dishes.Get("/:id", c.DishHandler.GetDish)
	dishes.Patch("/:id", c.DishHandler.UpdateDish)
	dishes.Get("/:id/permissions", c.DishHandler.GetPermissions)
	dishes.Post("/:id/image", c.DishHandler.UploadDishImage)
	dishes.Post("/:id/archive", c.DishHandler.ArchiveDish)
	dishes.Post("/:id/restore", c.DishHandler.RestoreDish)
	dishes.Post("/:id/save", c.DishHandler.ToggleSave)
	dishes.Post("/:id/like", c.DishHandler.ToggleLike)
}

func (c *Config) Restaurants() {
	restaurants := c.App.Group("/api/v1/restaurants", c.Middleware.AuthMiddleware(c.JWTService))

	restaurants.Get("/:id", c.RestaurantHandler.GetRestaurant)
	restaurants.Get("/:id/claim", c.RestaurantHandler.GetClaimState)
	restaurants.Post("/:id/claim", c.RestaurantHandler.SubmitClaim)
	restaurants.Patch("/:id/claim", c.Middleware.AdminOnly(), c.RestaurantHandler.UpdateClaimState)
	restaurants.Put("/:id/signature-dish", c.RestaurantHandler.SetSignatureDish)
}
