package repositories

import "foodrush/internal/models"

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	Create(review *models.Review) error
	GetByRestaurant(restaurantID string) ([]models.Review, error)
}

// FavoriteRepository defines the interface for favorite data access.
type FavoriteRepository interface {
	Add(favorite *models.Favorite) error
	Remove(userEmail, restaurantID string) error
	GetByUser(userEmail string) ([]models.Favorite, error)
}

// WalletRepository defines the interface for wallet data access.
type WalletRepository interface {
	GetByUser(userEmail string) (*models.Wallet, error)
	Create(wallet *models.Wallet) error
	SaveBalance(wallet *models.Wallet, tx *models.WalletTransaction) error
}
