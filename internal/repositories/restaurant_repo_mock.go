package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"foodrush/internal/models"
)

// MockRestaurantRepository is an in-memory implementation of RestaurantRepository.
type MockRestaurantRepository struct {
	restaurants map[string]models.Restaurant
	mu          sync.RWMutex
}

// NewMockRestaurantRepository creates a new instance of MockRestaurantRepository.
func NewMockRestaurantRepository() *MockRestaurantRepository {
	return &MockRestaurantRepository{
		restaurants: make(map[string]models.Restaurant),
	}
}

// GetAll returns all restaurants.
func (r *MockRestaurantRepository) GetAll() ([]models.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Restaurant, 0, len(r.restaurants))
	for _, restaurant := range r.restaurants {
		list = append(list, restaurant)
	}
	return list, nil
}

// GetByID returns a restaurant by its ID.
func (r *MockRestaurantRepository) GetByID(id string) (*models.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	restaurant, ok := r.restaurants[id]
	if !ok {
		return nil, fmt.Errorf("restaurant %s: %w", id, ErrNotFound)
	}
	return &restaurant, nil
}

// Create adds a new restaurant.
func (r *MockRestaurantRepository) Create(restaurant *models.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if restaurant.ID == "" {
		restaurant.ID = uuid.New().String()
	}
	for i := range restaurant.MenuItems {
		if restaurant.MenuItems[i].ID == "" {
			restaurant.MenuItems[i].ID = uuid.New().String()
		}
		restaurant.MenuItems[i].RestaurantID = restaurant.ID
	}
	r.restaurants[restaurant.ID] = *restaurant
	return nil
}

// MockMenuItemRepository is an in-memory implementation of MenuItemRepository.
type MockMenuItemRepository struct {
	items map[string]models.MenuItem
	mu    sync.RWMutex
}

// NewMockMenuItemRepository creates a new instance of MockMenuItemRepository.
func NewMockMenuItemRepository() *MockMenuItemRepository {
	return &MockMenuItemRepository{
		items: make(map[string]models.MenuItem),
	}
}

// GetByID returns a menu item by its ID.
func (r *MockMenuItemRepository) GetByID(id string) (*models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("menu item %s: %w", id, ErrNotFound)
	}
	return &item, nil
}

// GetByRestaurant returns all menu items of a restaurant.
func (r *MockMenuItemRepository) GetByRestaurant(restaurantID string) ([]models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []models.MenuItem
	for _, item := range r.items {
		if item.RestaurantID == restaurantID {
			items = append(items, item)
		}
	}
	return items, nil
}

// Create adds a new menu item.
func (r *MockMenuItemRepository) Create(item *models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.items[item.ID] = *item
	return nil
}
