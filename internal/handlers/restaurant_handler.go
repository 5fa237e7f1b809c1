package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"foodrush/internal/models"
	"foodrush/internal/services"
)

// RestaurantHandler handles HTTP requests for restaurants and menus.
type RestaurantHandler struct {
	service  *services.RestaurantService
	validate *validator.Validate
}

// NewRestaurantHandler creates a new RestaurantHandler.
func NewRestaurantHandler(service *services.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the restaurant routes with the Fiber app.
func (h *RestaurantHandler) RegisterRoutes(router fiber.Router) {
	restaurantRoutes := router.Group("/restaurants")
	restaurantRoutes.Get("/", h.HandleGetRestaurants)
	restaurantRoutes.Post("/", h.HandleCreateRestaurant)
	restaurantRoutes.Get("/:id", h.HandleGetRestaurantByID)
	restaurantRoutes.Get("/:id/menu", h.HandleGetMenu)
	restaurantRoutes.Post("/:id/menu", h.HandleCreateMenuItem)
}

// HandleGetRestaurants retrieves all restaurants.
func (h *RestaurantHandler) HandleGetRestaurants(c *fiber.Ctx) error {
	restaurants, err := h.service.GetAllRestaurants()
	if err != nil {
		log.Printf("Error getting all restaurants: %v", err)
		return fail(c, "Could not retrieve restaurants", err)
	}
	return c.JSON(restaurants)
}

// HandleGetRestaurantByID retrieves a single restaurant.
func (h *RestaurantHandler) HandleGetRestaurantByID(c *fiber.Ctx) error {
	id := c.Params("id")
	restaurant, err := h.service.GetRestaurantByID(id)
	if err != nil {
		log.Printf("Error getting restaurant %s: %v", id, err)
		return fail(c, "Could not retrieve restaurant", err)
	}
	return c.JSON(restaurant)
}

// HandleCreateRestaurant creates a new restaurant.
func (h *RestaurantHandler) HandleCreateRestaurant(c *fiber.Ctx) error {
	var restaurant models.Restaurant
	if err := c.BodyParser(&restaurant); err != nil {
		log.Printf("Error parsing restaurant create body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(restaurant); err != nil {
		return validationFailed(c, err)
	}

	if err := h.service.CreateRestaurant(&restaurant); err != nil {
		log.Printf("Error creating restaurant %s: %v", restaurant.Name, err)
		return fail(c, "Could not create restaurant", err)
	}
	return c.Status(fiber.StatusCreated).JSON(restaurant)
}

// HandleGetMenu retrieves a restaurant's menu.
func (h *RestaurantHandler) HandleGetMenu(c *fiber.Ctx) error {
	id := c.Params("id")
	menu, err := h.service.GetMenu(id)
	if err != nil {
		log.Printf("Error getting menu for restaurant %s: %v", id, err)
		return fail(c, "Could not retrieve menu", err)
	}
	return c.JSON(menu)
}

// HandleCreateMenuItem adds a dish to a restaurant's menu.
func (h *RestaurantHandler) HandleCreateMenuItem(c *fiber.Ctx) error {
	var item models.MenuItem
	if err := c.BodyParser(&item); err != nil {
		log.Printf("Error parsing menu item create body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	item.RestaurantID = c.Params("id")
	if err := h.validate.Struct(item); err != nil {
		return validationFailed(c, err)
	}

	if err := h.service.CreateMenuItem(&item); err != nil {
		log.Printf("Error creating menu item %s: %v", item.Name, err)
		return fail(c, "Could not create menu item", err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}
