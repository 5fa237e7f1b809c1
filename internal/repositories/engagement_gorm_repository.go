package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodrush/internal/models"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{db: db}
}

// Create creates a new review.
func (r *GORMReviewRepository) Create(review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if err := r.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// GetByRestaurant retrieves all reviews for a restaurant.
func (r *GORMReviewRepository) GetByRestaurant(restaurantID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews for restaurant %s: %w", restaurantID, err)
	}
	return reviews, nil
}

// GORMFavoriteRepository is a GORM implementation of FavoriteRepository.
type GORMFavoriteRepository struct {
	db *gorm.DB
}

// NewGORMFavoriteRepository creates a new instance of GORMFavoriteRepository.
func NewGORMFavoriteRepository(db *gorm.DB) *GORMFavoriteRepository {
	return &GORMFavoriteRepository{db: db}
}

// Add marks a restaurant as favorited by a user.
func (r *GORMFavoriteRepository) Add(favorite *models.Favorite) error {
	if favorite.ID == "" {
		favorite.ID = uuid.New().String()
	}
	if err := r.db.Create(favorite).Error; err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// Remove deletes a user's favorite.
func (r *GORMFavoriteRepository) Remove(userEmail, restaurantID string) error {
	res := r.db.Delete(&models.Favorite{}, "user_email = ? AND restaurant_id = ?", userEmail, restaurantID)
	if res.Error != nil {
		return fmt.Errorf("failed to remove favorite: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("favorite for restaurant %s: %w", restaurantID, ErrNotFound)
	}
	return nil
}

// GetByUser retrieves all of a user's favorites.
func (r *GORMFavoriteRepository) GetByUser(userEmail string) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := r.db.Find(&favorites, "user_email = ?", userEmail).Error; err != nil {
		return nil, fmt.Errorf("failed to get favorites for %s: %w", userEmail, err)
	}
	return favorites, nil
}

// GORMWalletRepository is a GORM implementation of WalletRepository.
type GORMWalletRepository struct {
	db *gorm.DB
}

// NewGORMWalletRepository creates a new instance of GORMWalletRepository.
func NewGORMWalletRepository(db *gorm.DB) *GORMWalletRepository {
	return &GORMWalletRepository{db: db}
}

// GetByUser retrieves a user's wallet.
func (r *GORMWalletRepository) GetByUser(userEmail string) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.First(&wallet, "user_email = ?", userEmail).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("wallet for %s: %w", userEmail, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get wallet for %s: %w", userEmail, err)
	}
	return &wallet, nil
}

// Create creates a new wallet.
func (r *GORMWalletRepository) Create(wallet *models.Wallet) error {
	if wallet.ID == "" {
		wallet.ID = uuid.New().String()
	}
	if err := r.db.Create(wallet).Error; err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

// SaveBalance writes the wallet balance and its transaction row atomically.
func (r *GORMWalletRepository) SaveBalance(wallet *models.Wallet, walletTx *models.WalletTransaction) error {
	if walletTx.ID == "" {
		walletTx.ID = uuid.New().String()
	}
	walletTx.WalletID = wallet.ID
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(wallet).Update("balance", wallet.Balance).Error; err != nil {
			return err
		}
		return tx.Create(walletTx).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save wallet balance: %w", err)
	}
	return nil
}
