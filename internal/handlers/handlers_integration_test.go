package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"foodrush/internal/dispatch"
	"foodrush/internal/handlers"
	"foodrush/internal/middleware"
	"foodrush/internal/models"
	"foodrush/internal/pricing"
	"foodrush/internal/repositories"
	"foodrush/internal/services"
)

type testEnv struct {
	app          *fiber.App
	restaurantID string
	pizzaID      string
	colaID       string
}

// newTestEnv wires the full HTTP surface against in-memory repositories,
// mirroring the production composition without a database or broker.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	userRepo := repositories.NewMockUserRepository()
	restaurantRepo := repositories.NewMockRestaurantRepository()
	menuRepo := repositories.NewMockMenuItemRepository()
	orderRepo := repositories.NewMockOrderRepository()
	promoRepo := repositories.NewMockPromoRepository()

	lat, lng := 12.9716, 77.5946
	restaurant := &models.Restaurant{
		Name: "Spice Garden", Address: "4th Block, Koramangala", City: "Bangalore",
		IsOpen: true, Latitude: &lat, Longitude: &lng,
	}
	assert.NoError(t, restaurantRepo.Create(restaurant))

	pizza := &models.MenuItem{RestaurantID: restaurant.ID, Name: "Paneer Pizza", Price: 120, Available: true}
	cola := &models.MenuItem{RestaurantID: restaurant.ID, Name: "Cola", Price: 30, Available: true}
	assert.NoError(t, menuRepo.Create(pizza))
	assert.NoError(t, menuRepo.Create(cola))

	minOrder := 100.0
	assert.NoError(t, promoRepo.Create(&models.PromoCode{
		Code: "SAVE20", Description: "Flat 20 off on orders above 100",
		DiscountType: models.DiscountFixed, DiscountValue: 20,
		MinOrder: &minOrder, Active: true,
	}))

	policy := pricing.DefaultPolicy()
	rng := rand.New(rand.NewSource(42))

	authService := services.NewAuthService(userRepo, "test-secret")
	promoService := services.NewPromoService(promoRepo, nil)
	orderService := services.NewOrderService(
		orderRepo, restaurantRepo, menuRepo, promoService,
		policy, pricing.NewEstimator(policy, rng), dispatch.NewSimulatedAssigner(rng),
		nil, nil,
	)
	restaurantService := services.NewRestaurantService(restaurantRepo, menuRepo)

	app := fiber.New()
	authRequired := middleware.AuthRequired(authService)
	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1, authRequired)
	handlers.NewRestaurantHandler(restaurantService).RegisterRoutes(apiV1)
	handlers.NewPromoHandler(promoService).RegisterRoutes(apiV1)
	handlers.NewOrderHandler(orderService).RegisterRoutes(apiV1, authRequired)

	return &testEnv{
		app:          app,
		restaurantID: restaurant.ID,
		pizzaID:      pizza.ID,
		colaID:       cola.ID,
	}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// registerAndLogin creates a user and returns a valid bearer token.
func (e *testEnv) registerAndLogin(t *testing.T) string {
	t.Helper()

	resp := e.request(t, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"name": "Asha", "email": "asha@example.com", "password": "secret123",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = e.request(t, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email": "asha@example.com", "password": "secret123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var login struct {
		Token string `json:"token"`
	}
	decode(t, resp, &login)
	assert.NotEmpty(t, login.Token)
	return login.Token
}

func (e *testEnv) placeOrder(t *testing.T, token string, couponCode string) models.Order {
	t.Helper()

	body := fiber.Map{
		"restaurant_id":    e.restaurantID,
		"delivery_address": "42 Residency Road",
		"items": []fiber.Map{
			{"menu_item_id": e.pizzaID, "quantity": 1},
			{"menu_item_id": e.colaID, "quantity": 1},
		},
	}
	if couponCode != "" {
		body["coupon_code"] = couponCode
	}

	resp := e.request(t, http.MethodPost, "/api/v1/orders/", token, body)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var order models.Order
	decode(t, resp, &order)
	return order
}

func TestOrdersRequireAuthentication(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/v1/orders/my", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodGet, "/api/v1/orders/my", "not-a-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestRestaurantsAndMenuArePublic(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/v1/restaurants/", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var restaurants []models.Restaurant
	decode(t, resp, &restaurants)
	assert.Len(t, restaurants, 1)
	assert.Equal(t, "Spice Garden", restaurants[0].Name)

	resp = env.request(t, http.MethodGet, fmt.Sprintf("/api/v1/restaurants/%s/menu", env.restaurantID), "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var menu []models.MenuItem
	decode(t, resp, &menu)
	assert.Len(t, menu, 2)
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t)

	order := env.placeOrder(t, token, "SAVE20")
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, 150.0, order.ItemTotal)
	assert.Equal(t, 20.0, order.Discount)
	assert.Equal(t, "SAVE20", order.CouponCode)
	assert.NotEmpty(t, order.ID)

	// Advance the lifecycle; OUT_FOR_DELIVERY assigns a partner.
	for _, status := range []string{"CONFIRMED", "PREPARING", "OUT_FOR_DELIVERY"} {
		resp := env.request(t, http.MethodPost, "/api/v1/orders/"+order.ID+"/status", token,
			fiber.Map{"status": status})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		decode(t, resp, &order)
		assert.Equal(t, models.OrderStatus(status), order.Status)
	}
	assert.NotEmpty(t, order.PartnerName)
	assert.NotEmpty(t, order.PartnerPhone)

	// Tracking reflects the completed milestones.
	resp := env.request(t, http.MethodGet, "/api/v1/orders/"+order.ID+"/tracking", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var info services.OrderTrackingInfo
	decode(t, resp, &info)
	assert.Equal(t, models.StatusOutForDelivery, info.Status)
	assert.NotNil(t, info.Partner)
	labels := make([]string, 0, len(info.Timeline))
	for _, e := range info.Timeline {
		labels = append(labels, e.Label)
	}
	assert.Equal(t, []string{"Order Placed", "Order Confirmed", "Being Prepared", "Out for Delivery"}, labels)

	// Moving backwards is rejected as a conflict.
	resp = env.request(t, http.MethodPost, "/api/v1/orders/"+order.ID+"/status", token,
		fiber.Map{"status": "CONFIRMED"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// The order shows up in the user's history.
	resp = env.request(t, http.MethodGet, "/api/v1/orders/my", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var orders []models.Order
	decode(t, resp, &orders)
	assert.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
}

func TestOrderCancellationOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t)
	order := env.placeOrder(t, token, "")

	// An empty body falls back to the default reason.
	resp := env.request(t, http.MethodPost, "/api/v1/orders/"+order.ID+"/cancel", token, fiber.Map{})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var cancelled models.Order
	decode(t, resp, &cancelled)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Equal(t, "User cancelled", cancelled.CancellationReason)

	// Cancelling a cancelled order conflicts.
	resp = env.request(t, http.MethodPost, "/api/v1/orders/"+order.ID+"/cancel", token,
		fiber.Map{"reason": "again"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestPromoValidateEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/promo/validate", "",
		fiber.Map{"code": "SAVE20", "order_amount": 150})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var result struct {
		Valid    bool    `json:"valid"`
		Discount float64 `json:"discount"`
	}
	decode(t, resp, &result)
	assert.True(t, result.Valid)
	assert.Equal(t, 20.0, result.Discount)

	// Below the minimum order the code is rejected with a 400.
	resp = env.request(t, http.MethodPost, "/api/v1/promo/validate", "",
		fiber.Map{"code": "SAVE20", "order_amount": 50})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Unknown codes are a 404.
	resp = env.request(t, http.MethodPost, "/api/v1/promo/validate", "",
		fiber.Map{"code": "NOPE", "order_amount": 150})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateOrder_UnknownMenuItemIs404(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t)

	resp := env.request(t, http.MethodPost, "/api/v1/orders/", token, fiber.Map{
		"restaurant_id":    env.restaurantID,
		"delivery_address": "42 Residency Road",
		"items":            []fiber.Map{{"menu_item_id": "no-such-item", "quantity": 1}},
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
