package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"foodrush/internal/dispatch"
	"foodrush/internal/geo"
	"foodrush/internal/models"
	"foodrush/internal/pricing"
	"foodrush/internal/repositories"
	"foodrush/internal/tracking"
)

// EventPublisher publishes order lifecycle events. Satisfied by
// *rabbitmq.Client; nil disables publishing.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// OrderLineRequest is one requested line of a new order. A zero quantity
// defaults to 1; negative quantities are rejected.
type OrderLineRequest struct {
	MenuItemID   string `json:"menu_item_id" validate:"required"`
	Quantity     int    `json:"quantity"`
	Instructions string `json:"instructions,omitempty"`
}

// CreateOrderRequest carries everything needed to place an order.
type CreateOrderRequest struct {
	RestaurantID      string             `json:"restaurant_id" validate:"required"`
	Items             []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress   string             `json:"delivery_address" validate:"required"`
	DeliveryLatitude  *float64           `json:"delivery_latitude,omitempty"`
	DeliveryLongitude *float64           `json:"delivery_longitude,omitempty"`
	CouponCode        string             `json:"coupon_code,omitempty"`
	Instructions      string             `json:"instructions,omitempty"`
}

// OrderTrackingInfo is the derived, non-persisted tracking projection.
type OrderTrackingInfo struct {
	OrderID          string                  `json:"order_id"`
	Status           models.OrderStatus      `json:"status"`
	RestaurantName   string                  `json:"restaurant_name"`
	DeliveryAddress  string                  `json:"delivery_address"`
	EstimatedMinutes int                     `json:"estimated_minutes"`
	RemainingMinutes int                     `json:"remaining_minutes"`
	Partner          *models.DeliveryPartner `json:"partner,omitempty"`
	Timeline         []tracking.Event        `json:"timeline"`
}

// OrderService owns order pricing and the order lifecycle: creation with the
// full fee breakdown, forward-only status transitions with per-status
// timestamps, cancellation and the tracking projection.
type OrderService struct {
	orderRepo      repositories.OrderRepository
	restaurantRepo repositories.RestaurantRepository
	menuRepo       repositories.MenuItemRepository
	promoService   *PromoService
	calculator     *pricing.Calculator
	estimator      *pricing.Estimator
	assigner       dispatch.PartnerAssigner
	publisher      EventPublisher
	policy         pricing.Policy
	now            func() time.Time
}

// NewOrderService creates a new OrderService. A nil clock defaults to
// time.Now; a nil publisher disables event publishing.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	restaurantRepo repositories.RestaurantRepository,
	menuRepo repositories.MenuItemRepository,
	promoService *PromoService,
	policy pricing.Policy,
	estimator *pricing.Estimator,
	assigner dispatch.PartnerAssigner,
	publisher EventPublisher,
	now func() time.Time,
) *OrderService {
	if now == nil {
		now = time.Now
	}
	return &OrderService{
		orderRepo:      orderRepo,
		restaurantRepo: restaurantRepo,
		menuRepo:       menuRepo,
		promoService:   promoService,
		calculator:     pricing.NewCalculator(policy),
		estimator:      estimator,
		assigner:       assigner,
		publisher:      publisher,
		policy:         policy,
		now:            now,
	}
}

// CreateOrder prices and persists a new order. Any invalid line aborts the
// whole creation; no partially-priced order is ever saved.
func (s *OrderService) CreateOrder(userEmail string, req CreateOrderRequest) (*models.Order, error) {
	restaurant, err := s.restaurantRepo.GetByID(req.RestaurantID)
	if err != nil {
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order needs at least one item: %w", ErrInvalidInput)
	}

	var itemTotal float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		if line.Quantity < 0 {
			return nil, fmt.Errorf("quantity %d for item %s: %w", line.Quantity, line.MenuItemID, ErrInvalidInput)
		}
		qty := line.Quantity
		if qty == 0 {
			qty = 1
		}

		menuItem, err := s.menuRepo.GetByID(line.MenuItemID)
		if err != nil {
			return nil, err
		}
		if menuItem.RestaurantID != restaurant.ID {
			return nil, fmt.Errorf("menu item %s does not belong to restaurant %s: %w", menuItem.ID, restaurant.ID, ErrInvalidInput)
		}

		// Unit price is copied here and stays immutable on the line.
		items = append(items, models.OrderItem{
			MenuItemID:   menuItem.ID,
			MenuItem:     *menuItem,
			Quantity:     qty,
			UnitPrice:    menuItem.Price,
			Instructions: line.Instructions,
		})
		itemTotal += menuItem.Price * float64(qty)
	}

	distanceKm := geo.Distance(
		restaurant.Latitude, restaurant.Longitude,
		req.DeliveryLatitude, req.DeliveryLongitude,
		s.policy.DefaultDistanceKm,
	)
	quote := s.calculator.QuoteFees(itemTotal, distanceKm)

	var discount float64
	var couponCode string
	if req.CouponCode != "" {
		promo, d, err := s.promoService.Validate(req.CouponCode, itemTotal)
		if err != nil {
			return nil, err
		}
		discount = d
		couponCode = promo.Code
	}

	order := &models.Order{
		UserEmail:         userEmail,
		RestaurantID:      restaurant.ID,
		Restaurant:        *restaurant,
		Items:             items,
		ItemTotal:         itemTotal,
		DeliveryFee:       quote.DeliveryFee,
		PlatformFee:       quote.PlatformFee,
		Tax:               quote.Tax,
		Discount:          discount,
		CouponCode:        couponCode,
		Status:            models.StatusPending,
		DeliveryAddress:   req.DeliveryAddress,
		DeliveryLatitude:  req.DeliveryLatitude,
		DeliveryLongitude: req.DeliveryLongitude,
		EstimatedMinutes:  s.estimator.EstimateMinutes(distanceKm),
		Instructions:      req.Instructions,
		CreatedAt:         s.now(),
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Usage counting is at-least-once: the coupon is counted only after the
	// order is safely persisted, and a failed increment is logged rather
	// than rolling back the order.
	if couponCode != "" {
		if err := s.promoService.Apply(couponCode); err != nil {
			log.Printf("Warning: failed to count usage of coupon %s for order %s: %v", couponCode, order.ID, err)
		}
	}

	s.publishEvent("order.created", order)
	return order, nil
}

// GetOrderByID retrieves a single order.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// GetUserOrders retrieves a user's orders, newest first.
func (s *OrderService) GetUserOrders(userEmail string) ([]models.Order, error) {
	return s.orderRepo.ListByUser(userEmail)
}

// GetRestaurantOrders retrieves a restaurant's orders, newest first.
func (s *OrderService) GetRestaurantOrders(restaurantID string) ([]models.Order, error) {
	return s.orderRepo.ListByRestaurant(restaurantID)
}

// UpdateStatus advances an order to a new status, stamping the matching
// timestamp. The first transition into OUT_FOR_DELIVERY assigns a delivery
// partner if none is assigned yet. Cancellation goes through CancelOrder,
// not here.
func (s *OrderService) UpdateStatus(orderID string, status string) (*models.Order, error) {
	newStatus, ok := models.ParseOrderStatus(status)
	if !ok {
		return nil, fmt.Errorf("unknown order status %q: %w", status, ErrInvalidInput)
	}
	if newStatus == models.StatusCancelled {
		return nil, fmt.Errorf("cancellation requires a reason, use the cancel operation: %w", ErrInvalidInput)
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Advance(newStatus, s.now()); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidState)
	}

	if newStatus == models.StatusOutForDelivery && !order.PartnerAssigned() {
		order.AssignPartner(s.assigner.Assign())
	}

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	s.publishEvent("order.status_updated", order)
	return order, nil
}

// CancelOrder cancels a non-terminal order, recording the reason.
func (s *OrderService) CancelOrder(orderID, reason string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(reason, s.now()); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidState)
	}

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	s.publishEvent("order.cancelled", order)
	return order, nil
}

// GetTracking builds the tracking projection for an order.
func (s *OrderService) GetTracking(orderID string) (*OrderTrackingInfo, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	info := &OrderTrackingInfo{
		OrderID:          order.ID,
		Status:           order.Status,
		RestaurantName:   order.Restaurant.Name,
		DeliveryAddress:  order.DeliveryAddress,
		EstimatedMinutes: order.EstimatedMinutes,
		RemainingMinutes: tracking.RemainingMinutes(order, s.now()),
		Timeline:         tracking.BuildTimeline(order),
	}
	if order.PartnerAssigned() {
		info.Partner = &models.DeliveryPartner{
			Name:   order.PartnerName,
			Phone:  order.PartnerPhone,
			Rating: order.PartnerRating,
		}
	}
	return info, nil
}

func (s *OrderService) publishEvent(routingKey string, order *models.Order) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"order_id":      order.ID,
		"user_email":    order.UserEmail,
		"restaurant_id": order.RestaurantID,
		"status":        order.Status,
		"total":         order.TotalPayable(),
	})
	if err != nil {
		log.Printf("Failed to marshal %s event for order %s: %v", routingKey, order.ID, err)
		return
	}
	if err := s.publisher.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", routingKey, order.ID, err)
	}
}
