package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodrush/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// Create persists the order and its items in a single transaction.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID retrieves an order with its items and restaurant.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items.MenuItem").Preload("Restaurant").
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	return &order, nil
}

// ListByUser retrieves a user's orders, newest first.
func (r *GORMOrderRepository) ListByUser(email string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items.MenuItem").Preload("Restaurant").
		Where("user_email = ?", email).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for user %s: %w", email, err)
	}
	return orders, nil
}

// ListByRestaurant retrieves a restaurant's orders, newest first.
func (r *GORMOrderRepository) ListByRestaurant(restaurantID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items.MenuItem").
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for restaurant %s: %w", restaurantID, err)
	}
	return orders, nil
}

// Update writes the mutable lifecycle fields under a version check so that
// concurrent status updates cannot silently overwrite each other.
func (r *GORMOrderRepository) Update(order *models.Order) error {
	res := r.db.Model(&models.Order{}).
		Where("id = ? AND version = ?", order.ID, order.Version).
		Updates(map[string]interface{}{
			"status":              order.Status,
			"confirmed_at":        order.ConfirmedAt,
			"preparing_at":        order.PreparingAt,
			"ready_at":            order.ReadyAt,
			"out_for_delivery_at": order.OutForDeliveryAt,
			"delivered_at":        order.DeliveredAt,
			"cancelled_at":        order.CancelledAt,
			"cancellation_reason": order.CancellationReason,
			"partner_name":        order.PartnerName,
			"partner_phone":       order.PartnerPhone,
			"partner_rating":      order.PartnerRating,
			"version":             order.Version + 1,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update order %s: %w", order.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %s: %w", order.ID, ErrVersionConflict)
	}
	order.Version++
	return nil
}
