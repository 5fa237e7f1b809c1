package repositories

import "foodrush/internal/models"

// RestaurantRepository defines the interface for restaurant data access.
type RestaurantRepository interface {
	GetAll() ([]models.Restaurant, error)
	GetByID(id string) (*models.Restaurant, error)
	Create(restaurant *models.Restaurant) error
}

// MenuItemRepository defines the interface for menu item data access.
type MenuItemRepository interface {
	GetByID(id string) (*models.MenuItem, error)
	GetByRestaurant(restaurantID string) ([]models.MenuItem, error)
	Create(item *models.MenuItem) error
}
