package handlers

import (
	"Dish-Discovery/domain"
	"Dish-Discovery/internal/api/presenters"
	"Dish-Discovery/pkg/dish"
	"github.com/gofiber/fiber/v2"
)

type (
	UserHandler interface {
		Me(c *fiber.Ctx) error
		GetSavedDishes(c *fiber.Ctx) error
		GetLikedDishes(c *fiber.Ctx) error
	}

	userHandler struct {
		dishService dish.DishService
	}
)

func NewUserHandler(dishService dish.DishService) UserHandler {
	return &userHandler{dishService: dishService}
}

func (h *userHandler) Me(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, fiber.Map{
		"user_id": c.Locals("user_id"),
		"role":    c.Locals("role"),
		"email":   c.Locals("email"),
	}, fiber.StatusOK, domain.MessageSuccessGetMe)
}

func (h *userHandler) GetSavedDishes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.dishService.GetSavedDishes(c.Context(), userID)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetSavedDishes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetSavedDishes)
}

func (h *userHandler) GetLikedDishes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.dishService.GetLikedDishes(c.Context(), userID)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetLikedDishes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetLikedDishes)
}
