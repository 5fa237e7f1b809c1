package repositories

import "foodrush/internal/models"

// OrderRepository defines the interface for order data access.
//
// Create persists the order together with its items atomically. Update writes
// the mutable lifecycle fields under a version check: implementations must
// return ErrVersionConflict (wrapped) when the stored version does not match,
// and bump order.Version on success.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	ListByUser(email string) ([]models.Order, error)
	ListByRestaurant(restaurantID string) ([]models.Order, error)
	Update(order *models.Order) error
}
