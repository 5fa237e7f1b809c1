package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"foodrush/internal/services"
)

// OrderHandler handles HTTP requests for orders and order tracking.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	orderRoutes := router.Group("/orders", authRequired)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/my", h.HandleGetMyOrders)
	orderRoutes.Get("/restaurant/:restaurantId", h.HandleGetRestaurantOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Get("/:id/tracking", h.HandleGetTracking)
	orderRoutes.Post("/:id/status", h.HandleUpdateStatus)
	orderRoutes.Post("/:id/cancel", h.HandleCancelOrder)
}

// HandleCreateOrder prices and places a new order for the authenticated user.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	email, ok := authedEmail(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	var req services.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	order, err := h.service.CreateOrder(email, req)
	if err != nil {
		log.Printf("Error creating order for %s: %v", email, err)
		return fail(c, "Could not create order", err)
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetMyOrders retrieves the authenticated user's orders, newest first.
func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	email, ok := authedEmail(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	orders, err := h.service.GetUserOrders(email)
	if err != nil {
		log.Printf("Error getting orders for %s: %v", email, err)
		return fail(c, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

// HandleGetRestaurantOrders retrieves a restaurant's orders, newest first.
func (h *OrderHandler) HandleGetRestaurantOrders(c *fiber.Ctx) error {
	restaurantID := c.Params("restaurantId")
	orders, err := h.service.GetRestaurantOrders(restaurantID)
	if err != nil {
		log.Printf("Error getting orders for restaurant %s: %v", restaurantID, err)
		return fail(c, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrderByID(orderID)
	if err != nil {
		log.Printf("Error getting order %s: %v", orderID, err)
		return fail(c, "Could not retrieve order", err)
	}
	return c.JSON(order)
}

// HandleGetTracking returns the tracking projection for an order.
func (h *OrderHandler) HandleGetTracking(c *fiber.Ctx) error {
	orderID := c.Params("id")
	info, err := h.service.GetTracking(orderID)
	if err != nil {
		log.Printf("Error getting tracking for order %s: %v", orderID, err)
		return fail(c, "Could not retrieve tracking", err)
	}
	return c.JSON(info)
}

// StatusUpdateRequest carries the target status for an order.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleUpdateStatus advances an order through its lifecycle.
func (h *OrderHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")

	var req StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing status update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	order, err := h.service.UpdateStatus(orderID, req.Status)
	if err != nil {
		log.Printf("Error updating status of order %s to %s: %v", orderID, req.Status, err)
		return fail(c, "Could not update order status", err)
	}
	return c.JSON(order)
}

// CancelRequest carries the cancellation reason.
type CancelRequest struct {
	Reason string `json:"reason"`
}

// HandleCancelOrder cancels a non-terminal order.
func (h *OrderHandler) HandleCancelOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")

	var req CancelRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing cancel request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.Reason == "" {
		req.Reason = "User cancelled"
	}

	order, err := h.service.CancelOrder(orderID, req.Reason)
	if err != nil {
		log.Printf("Error cancelling order %s: %v", orderID, err)
		return fail(c, "Could not cancel order", err)
	}
	return c.JSON(order)
}
