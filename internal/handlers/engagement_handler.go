package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"foodrush/internal/models"
	"foodrush/internal/services"
)

// EngagementHandler handles HTTP requests for reviews, favorites and wallets.
type EngagementHandler struct {
	service  *services.EngagementService
	validate *validator.Validate
}

// NewEngagementHandler creates a new EngagementHandler.
func NewEngagementHandler(service *services.EngagementService) *EngagementHandler {
	return &EngagementHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the review, favorite and wallet routes.
func (h *EngagementHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	router.Get("/restaurants/:id/reviews", h.HandleGetReviews)
	router.Post("/restaurants/:id/reviews", authRequired, h.HandleCreateReview)

	favoriteRoutes := router.Group("/favorites", authRequired)
	favoriteRoutes.Get("/", h.HandleGetFavorites)
	favoriteRoutes.Post("/:restaurantId", h.HandleAddFavorite)
	favoriteRoutes.Delete("/:restaurantId", h.HandleRemoveFavorite)

	walletRoutes := router.Group("/wallet", authRequired)
	walletRoutes.Get("/", h.HandleGetWallet)
	walletRoutes.Post("/credit", h.HandleCreditWallet)
	walletRoutes.Post("/debit", h.HandleDebitWallet)
}

// HandleGetReviews retrieves all reviews for a restaurant.
func (h *EngagementHandler) HandleGetReviews(c *fiber.Ctx) error {
	restaurantID := c.Params("id")
	reviews, err := h.service.GetRestaurantReviews(restaurantID)
	if err != nil {
		log.Printf("Error getting reviews for restaurant %s: %v", restaurantID, err)
		return fail(c, "Could not retrieve reviews", err)
	}
	return c.JSON(reviews)
}

// HandleCreateReview stores the authenticated user's review of a restaurant.
func (h *EngagementHandler) HandleCreateReview(c *fiber.Ctx) error {
	email, ok := authedEmail(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	var review models.Review
	if err := c.BodyParser(&review); err != nil {
		log.Printf("Error parsing review body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	review.UserEmail = email
	review.RestaurantID = c.Params("id")
	if err := h.validate.Struct(review); err != nil {
		return validationFailed(c, err)
	}

	if err := h.service.CreateReview(&review); err != nil {
		log.Printf("Error creating review for restaurant %s: %v", review.RestaurantID, err)
		return fail(c, "Could not create review", err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// HandleGetFavorites retrieves the authenticated user's favorites.
func (h *EngagementHandler) HandleGetFavorites(c *fiber.Ctx) error {
	email, _ := authedEmail(c)
	favorites, err := h.service.GetFavorites(email)
	if err != nil {
		log.Printf("Error getting favorites for %s: %v", email, err)
		return fail(c, "Could not retrieve favorites", err)
	}
	return c.JSON(favorites)
}

// HandleAddFavorite marks a restaurant as a favorite.
func (h *EngagementHandler) HandleAddFavorite(c *fiber.Ctx) error {
	email, _ := authedEmail(c)
	restaurantID := c.Params("restaurantId")
	if err := h.service.AddFavorite(email, restaurantID); err != nil {
		log.Printf("Error adding favorite %s for %s: %v", restaurantID, email, err)
		return fail(c, "Could not add favorite", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Favorite added",
	})
}

// HandleRemoveFavorite removes a favorite.
func (h *EngagementHandler) HandleRemoveFavorite(c *fiber.Ctx) error {
	email, _ := authedEmail(c)
	restaurantID := c.Params("restaurantId")
	if err := h.service.RemoveFavorite(email, restaurantID); err != nil {
		log.Printf("Error removing favorite %s for %s: %v", restaurantID, email, err)
		return fail(c, "Could not remove favorite", err)
	}
	return c.JSON(fiber.Map{
		"message": "Favorite removed",
	})
}

// HandleGetWallet retrieves the authenticated user's wallet.
func (h *EngagementHandler) HandleGetWallet(c *fiber.Ctx) error {
	email, _ := authedEmail(c)
	wallet, err := h.service.GetWallet(email)
	if err != nil {
		log.Printf("Error getting wallet for %s: %v", email, err)
		return fail(c, "Could not retrieve wallet", err)
	}
	return c.JSON(wallet)
}

// WalletMutationRequest carries a balance mutation.
type WalletMutationRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description"`
}

// HandleCreditWallet adds funds to the authenticated user's wallet.
func (h *EngagementHandler) HandleCreditWallet(c *fiber.Ctx) error {
	return h.mutateWallet(c, h.service.CreditWallet)
}

// HandleDebitWallet removes funds from the authenticated user's wallet.
func (h *EngagementHandler) HandleDebitWallet(c *fiber.Ctx) error {
	return h.mutateWallet(c, h.service.DebitWallet)
}

func (h *EngagementHandler) mutateWallet(c *fiber.Ctx, mutate func(string, float64, string) (*models.Wallet, error)) error {
	email, _ := authedEmail(c)

	var req WalletMutationRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing wallet mutation body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	wallet, err := mutate(email, req.Amount, req.Description)
	if err != nil {
		log.Printf("Error mutating wallet for %s: %v", email, err)
		return fail(c, "Could not update wallet", err)
	}
	return c.JSON(wallet)
}
