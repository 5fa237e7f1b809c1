package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"foodrush/internal/repositories"
	"foodrush/internal/services"
)

// errorStatus maps service and repository errors to HTTP status codes.
func errorStatus(err error) int {
	var couponErr *services.CouponError
	switch {
	case errors.As(err, &couponErr):
		return fiber.StatusBadRequest
	case errors.Is(err, repositories.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, repositories.ErrVersionConflict):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidState):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidInput):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// fail writes a uniform error response.
func fail(c *fiber.Ctx, message string, err error) error {
	return c.Status(errorStatus(err)).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// authedEmail pulls the authenticated email out of the request locals set by
// the JWT middleware.
func authedEmail(c *fiber.Ctx) (string, bool) {
	email, ok := c.Locals("email").(string)
	return email, ok && email != ""
}
