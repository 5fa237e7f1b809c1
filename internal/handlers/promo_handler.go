package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"foodrush/internal/models"
	"foodrush/internal/services"
)

// PromoHandler handles HTTP requests for promo codes.
type PromoHandler struct {
	service  *services.PromoService
	validate *validator.Validate
}

// NewPromoHandler creates a new PromoHandler.
func NewPromoHandler(service *services.PromoService) *PromoHandler {
	return &PromoHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the promo routes with the Fiber app.
func (h *PromoHandler) RegisterRoutes(router fiber.Router) {
	promoRoutes := router.Group("/promo")
	promoRoutes.Get("/", h.HandleGetPromoCodes)
	promoRoutes.Post("/", h.HandleCreatePromoCode)
	promoRoutes.Post("/validate", h.HandleValidate)
	promoRoutes.Post("/apply", h.HandleApply)
}

// HandleGetPromoCodes retrieves all promo codes.
func (h *PromoHandler) HandleGetPromoCodes(c *fiber.Ctx) error {
	promos, err := h.service.GetAllPromoCodes()
	if err != nil {
		log.Printf("Error getting promo codes: %v", err)
		return fail(c, "Could not retrieve promo codes", err)
	}
	return c.JSON(promos)
}

// HandleCreatePromoCode creates a new promo code.
func (h *PromoHandler) HandleCreatePromoCode(c *fiber.Ctx) error {
	var promo models.PromoCode
	if err := c.BodyParser(&promo); err != nil {
		log.Printf("Error parsing promo create body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(promo); err != nil {
		return validationFailed(c, err)
	}

	if err := h.service.CreatePromoCode(&promo); err != nil {
		log.Printf("Error creating promo code %s: %v", promo.Code, err)
		return fail(c, "Could not create promo code", err)
	}
	return c.Status(fiber.StatusCreated).JSON(promo)
}

// ValidatePromoRequest asks whether a code applies to an order amount.
type ValidatePromoRequest struct {
	Code        string  `json:"code" validate:"required"`
	OrderAmount float64 `json:"order_amount" validate:"gte=0"`
}

// HandleValidate checks a promo code against an order amount and returns the
// computed discount. Validation is read-only.
func (h *PromoHandler) HandleValidate(c *fiber.Ctx) error {
	var req ValidatePromoRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing promo validate body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	promo, discount, err := h.service.Validate(req.Code, req.OrderAmount)
	if err != nil {
		log.Printf("Promo code %s rejected for amount %.2f: %v", req.Code, req.OrderAmount, err)
		return fail(c, "Promo code rejected", err)
	}
	return c.JSON(fiber.Map{
		"valid":       true,
		"discount":    discount,
		"description": promo.Description,
		"promo_code":  promo,
	})
}

// ApplyPromoRequest names the code whose usage should be counted.
type ApplyPromoRequest struct {
	Code string `json:"code" validate:"required"`
}

// HandleApply counts one usage of a promo code. At-least-once semantics:
// repeating the request double-counts.
func (h *PromoHandler) HandleApply(c *fiber.Ctx) error {
	var req ApplyPromoRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing promo apply body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	if err := h.service.Apply(req.Code); err != nil {
		log.Printf("Error applying promo code %s: %v", req.Code, err)
		return fail(c, "Could not apply promo code", err)
	}
	return c.JSON(fiber.Map{
		"message": "Promo code applied",
	})
}
