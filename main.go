package main

import (
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"foodrush/internal/config"
	"foodrush/internal/dispatch"
	"foodrush/internal/handlers"
	"foodrush/internal/middleware"
	"foodrush/internal/models"
	"foodrush/internal/pricing"
	"foodrush/internal/repositories"
	"foodrush/internal/services"
	"foodrush/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	// --- Database ---
	db, err := openDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.PromoCode{},
		&models.Review{},
		&models.Favorite{},
		&models.Wallet{},
		&models.WalletTransaction{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ ---
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
	}
	defer mqClient.Close()

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	restaurantRepo := repositories.NewGORMRestaurantRepository(db)
	menuRepo := repositories.NewGORMMenuItemRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	promoRepo := repositories.NewGORMPromoRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)
	favoriteRepo := repositories.NewGORMFavoriteRepository(db)
	walletRepo := repositories.NewGORMWalletRepository(db)

	seedData(restaurantRepo, menuRepo, promoRepo)

	// --- Services ---
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	estimator := pricing.NewEstimator(cfg.Pricing, rng)
	assigner := dispatch.NewSimulatedAssigner(rng)

	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	promoService := services.NewPromoService(promoRepo, nil)
	orderService := services.NewOrderService(
		orderRepo, restaurantRepo, menuRepo, promoService,
		cfg.Pricing, estimator, assigner, mqClient, nil,
	)
	restaurantService := services.NewRestaurantService(restaurantRepo, menuRepo)
	engagementService := services.NewEngagementService(reviewRepo, favoriteRepo, walletRepo, restaurantRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	orderHandler := handlers.NewOrderHandler(orderService)
	promoHandler := handlers.NewPromoHandler(promoService)
	restaurantHandler := handlers.NewRestaurantHandler(restaurantService)
	engagementHandler := handlers.NewEngagementHandler(engagementService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())

	authRequired := middleware.AuthRequired(authService)

	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1, authRequired)
	restaurantHandler.RegisterRoutes(apiV1)
	promoHandler.RegisterRoutes(apiV1)
	orderHandler.RegisterRoutes(apiV1, authRequired)
	engagementHandler.RegisterRoutes(apiV1, authRequired)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Order event consumer ---
	go func() {
		log.Println("Starting RabbitMQ consumer for order events...")
		messageHandler := func(msg amqp.Delivery) error {
			log.Printf("Received order event %s (Tag: %d): %s", msg.Type, msg.DeliveryTag, string(msg.Body))
			return nil
		}
		if consumerErr := mqClient.ConsumeOrderEvents(messageHandler); consumerErr != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
		}
	}()

	// --- Start HTTP server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// openDatabase opens the configured GORM backend.
func openDatabase(cfg config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(cfg.DBDSN), &gorm.Config{})
	}
}

// seedData populates an empty database with a sample restaurant, its menu and
// a pair of promo codes so the API is usable out of the box.
func seedData(
	restaurantRepo repositories.RestaurantRepository,
	menuRepo repositories.MenuItemRepository,
	promoRepo repositories.PromoRepository,
) {
	existing, err := restaurantRepo.GetAll()
	if err != nil || len(existing) > 0 {
		return
	}

	lat, lng := 12.9716, 77.5946
	restaurant := models.Restaurant{
		Name:        "Spice Garden",
		Description: "North Indian classics",
		Address:     "4th Block, Koramangala",
		City:        "Bangalore",
		CuisineType: "North Indian",
		Rating:      4.5,
		IsOpen:      true,
		Latitude:    &lat,
		Longitude:   &lng,
	}
	if err := restaurantRepo.Create(&restaurant); err != nil {
		log.Printf("Error seeding restaurant: %v", err)
		return
	}

	menu := []models.MenuItem{
		{RestaurantID: restaurant.ID, Name: "Paneer Butter Masala", Price: 220, Category: "Mains", IsVeg: true, Available: true},
		{RestaurantID: restaurant.ID, Name: "Butter Naan", Price: 40, Category: "Breads", IsVeg: true, Available: true},
		{RestaurantID: restaurant.ID, Name: "Chicken Biryani", Price: 280, Category: "Mains", Available: true},
	}
	for i := range menu {
		if err := menuRepo.Create(&menu[i]); err != nil {
			log.Printf("Error seeding menu item %s: %v", menu[i].Name, err)
		}
	}

	minOrder := 100.0
	maxDiscount := 80.0
	promos := []models.PromoCode{
		{Code: "SAVE20", Description: "Flat 20 off on orders above 100", DiscountType: models.DiscountFixed, DiscountValue: 20, MinOrder: &minOrder, Active: true},
		{Code: "FIRST50", Description: "50% off up to 80", DiscountType: models.DiscountPercentage, DiscountValue: 50, MaxDiscount: &maxDiscount, Active: true},
	}
	for i := range promos {
		if err := promoRepo.Create(&promos[i]); err != nil {
			log.Printf("Error seeding promo code %s: %v", promos[i].Code, err)
		} else {
			log.Printf("Seeded promo code: %s", promos[i].Code)
		}
	}
}
