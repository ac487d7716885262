package handlers

import (
	"Dish-Discovery/domain"
	"Dish-Discovery/internal/api/presenters"
	"Dish-Discovery/pkg/dish"
	"Dish-Discovery/pkg/lookup"
	"errors"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	DishHandler interface {
		AddDish(c *fiber.Ctx) error
		UpdateDish(c *fiber.Ctx) error
		UploadDishImage(c *fiber.Ctx) error
		ArchiveDish(c *fiber.Ctx) error
		RestoreDish(c *fiber.Ctx) error
		GetDish(c *fiber.Ctx) error
		GetPermissions(c *fiber.Ctx) error
		ToggleSave(c *fiber.Ctx) error
		ToggleLike(c *fiber.Ctx) error
		GetFeed(c *fiber.Ctx) error
		SearchDishes(c *fiber.Ctx) error
		GetNearbyDishes(c *fiber.Ctx) error
		SuggestDishes(c *fiber.Ctx) error
	}

	dishHandler struct {
		dishService dish.DishService
		validator   *validator.Validate
	}
)

func NewDishHandler(dishService dish.DishService, validator *validator.Validate) DishHandler {
	return &dishHandler{
		dishService: dishService,
		validator:   validator,
	}
}

// AddDish accepts either a JSON body or a multipart form with an optional
// "image" file.
func (h *dishHandler) AddDish(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AddDishRequest)

	if isMultipart(c) {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
		if file, err := c.FormFile("image"); err == nil {
			req.Image = file
		}
	} else if err := decodeStrict(c, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddDish, err)
	}

	res, err := h.dishService.AddDish(c.Context(), *req, userID)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedAddDish, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddDish)
}

func (h *dishHandler) UpdateDish(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	dishID := c.Params("id")
	req := new(domain.UpdateDishRequest)

	if err := decodeStrict(c, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateDish, err)
	}

	res, err := h.dishService.UpdateDish(c.Context(), dishID, *req, userID)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedUpdateDish, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateDish)
}

func (h *dishHandler) UploadDishImage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req := domain.UploadDishImageRequest{
		DishID: c.Params("id"),
		Image:  file,
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadDishImage, err)
	}

	res, err := h.dishService.UploadDishImage(c.Context(), req, userID)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedUploadDishImage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadDishImage)
}

func (h *dishHandler) ArchiveDish(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.dishService.ArchiveDish(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedArchiveDish, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessArchiveDish)
}

func (h *dishHandler) RestoreDish(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.dishService.RestoreDish(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedRestoreDish, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRestoreDish)
}

func (h *dishHandler) GetDish(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.dishService.GetDish(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetDish, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDish)
}

func (h *dishHandler) GetPermissions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.dishService.GetPermissions(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetPermissions, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPermissions)
}

func (h *dishHandler) ToggleSave(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.dishService.ToggleSave(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedToggleSave, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleSave)
}

func (h *dishHandler) ToggleLike(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.dishService.ToggleLike(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedToggleLike, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleLike)
}

func (h *dishHandler) GetFeed(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	reload := c.QueryBool("reload", false)

	res, err := h.dishService.GetFeed(c.Context(), userID, reload)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetDishes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDishes)
}

func (h *dishHandler) SearchDishes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.SearchDishesRequest)

	if err := c.QueryParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDishes, err)
	}

	res, err := h.dishService.SearchDishes(c.UserContext(), *req, userID)
	if err != nil {
		if errors.Is(err, lookup.ErrSuperseded) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedSuperseded, err)
		}
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetDishes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDishes)
}

func (h *dishHandler) GetNearbyDishes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.NearbyDishesRequest)

	if err := c.QueryParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDishes, err)
	}

	res, err := h.dishService.GetNearbyDishes(c.Context(), *req, userID)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetDishes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDishes)
}

func (h *dishHandler) SuggestDishes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.dishService.SuggestDishes(c.UserContext(), c.Query("q"), userID)
	if err != nil {
		if errors.Is(err, lookup.ErrSuperseded) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedSuperseded, err)
		}
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetSuggestions, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetSuggestions)
}
