package handlers

import (
	"Dish-Discovery/domain"
	"Dish-Discovery/internal/api/presenters"
	"Dish-Discovery/pkg/restaurant"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RestaurantHandler interface {
		GetRestaurant(c *fiber.Ctx) error
		GetClaimState(c *fiber.Ctx) error
		SubmitClaim(c *fiber.Ctx) error
		UpdateClaimState(c *fiber.Ctx) error
		SetSignatureDish(c *fiber.Ctx) error
	}

	restaurantHandler struct {
		restaurantService restaurant.RestaurantService
		validator         *validator.Validate
	}
)

func NewRestaurantHandler(restaurantService restaurant.RestaurantService, validator *validator.Validate) RestaurantHandler {
	return &restaurantHandler{
		restaurantService: restaurantService,
		validator:         validator,
	}
}

func (h *restaurantHandler) GetRestaurant(c *fiber.Ctx) error {
	res, err := h.restaurantService.GetRestaurant(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetRestaurant, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRestaurant)
}

func (h *restaurantHandler) GetClaimState(c *fiber.Ctx) error {
	res, err := h.restaurantService.GetClaimState(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetRestaurant, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRestaurant)
}

// SubmitClaim takes an optional body; without one the claimant's token
// e-mail is used for the decision notice.
func (h *restaurantHandler) SubmitClaim(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.SubmitClaimRequest)

	if len(c.Body()) > 0 {
		if err := decodeStrict(c, req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}
	if req.ContactEmail == "" {
		req.ContactEmail, _ = c.Locals("email").(string)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSubmitClaim, err)
	}

	res, err := h.restaurantService.SubmitClaim(c.Context(), c.Params("id"), *req, userID)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedSubmitClaim, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSubmitClaim)
}

func (h *restaurantHandler) UpdateClaimState(c *fiber.Ctx) error {
	req := new(domain.UpdateClaimStateRequest)

	if err := decodeStrict(c, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateClaim, err)
	}

	res, err := h.restaurantService.UpdateClaimState(c.Context(), c.Params("id"), *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedUpdateClaim, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateClaim)
}

func (h *restaurantHandler) SetSignatureDish(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.SetSignatureDishRequest)

	if err := decodeStrict(c, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetSignatureDish, err)
	}

	if err := h.restaurantService.SetSignatureDish(c.Context(), c.Params("id"), *req, userID); err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedSetSignatureDish, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSetSignatureDish)
}
