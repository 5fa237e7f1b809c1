package services

import (
	"foodrush/internal/models"
	"foodrush/internal/repositories"
)

// RestaurantService handles business logic related to restaurants and menus.
type RestaurantService struct {
	restaurantRepo repositories.RestaurantRepository
	menuRepo       repositories.MenuItemRepository
}

// NewRestaurantService creates a new RestaurantService.
func NewRestaurantService(restaurantRepo repositories.RestaurantRepository, menuRepo repositories.MenuItemRepository) *RestaurantService {
	return &RestaurantService{
		restaurantRepo: restaurantRepo,
		menuRepo:       menuRepo,
	}
}

// GetAllRestaurants retrieves all restaurants.
func (s *RestaurantService) GetAllRestaurants() ([]models.Restaurant, error) {
	return s.restaurantRepo.GetAll()
}

// GetRestaurantByID retrieves a single restaurant by its ID.
func (s *RestaurantService) GetRestaurantByID(id string) (*models.Restaurant, error) {
	return s.restaurantRepo.GetByID(id)
}

// CreateRestaurant creates a new restaurant.
func (s *RestaurantService) CreateRestaurant(restaurant *models.Restaurant) error {
	return s.restaurantRepo.Create(restaurant)
}

// GetMenu retrieves the menu of a restaurant.
func (s *RestaurantService) GetMenu(restaurantID string) ([]models.MenuItem, error) {
	if _, err := s.restaurantRepo.GetByID(restaurantID); err != nil {
		return nil, err
	}
	return s.menuRepo.GetByRestaurant(restaurantID)
}

// CreateMenuItem adds a dish to a restaurant's menu.
func (s *RestaurantService) CreateMenuItem(item *models.MenuItem) error {
	if _, err := s.restaurantRepo.GetByID(item.RestaurantID); err != nil {
		return err
	}
	return s.menuRepo.Create(item)
}
