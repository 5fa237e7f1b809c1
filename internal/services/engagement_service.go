package services

import (
	"errors"
	"fmt"

	"foodrush/internal/models"
	"foodrush/internal/repositories"
)

// EngagementService handles reviews, favorites and wallets. These are thin
// pass-through operations; the wallet only supports balance mutation with a
// transaction row per mutation.
type EngagementService struct {
	reviewRepo     repositories.ReviewRepository
	favoriteRepo   repositories.FavoriteRepository
	walletRepo     repositories.WalletRepository
	restaurantRepo repositories.RestaurantRepository
}

// NewEngagementService creates a new EngagementService.
func NewEngagementService(
	reviewRepo repositories.ReviewRepository,
	favoriteRepo repositories.FavoriteRepository,
	walletRepo repositories.WalletRepository,
	restaurantRepo repositories.RestaurantRepository,
) *EngagementService {
	return &EngagementService{
		reviewRepo:     reviewRepo,
		favoriteRepo:   favoriteRepo,
		walletRepo:     walletRepo,
		restaurantRepo: restaurantRepo,
	}
}

// CreateReview stores a user's review of a restaurant.
func (s *EngagementService) CreateReview(review *models.Review) error {
	if _, err := s.restaurantRepo.GetByID(review.RestaurantID); err != nil {
		return err
	}
	return s.reviewRepo.Create(review)
}

// GetRestaurantReviews retrieves all reviews for a restaurant.
func (s *EngagementService) GetRestaurantReviews(restaurantID string) ([]models.Review, error) {
	return s.reviewRepo.GetByRestaurant(restaurantID)
}

// AddFavorite marks a restaurant as a user's favorite.
func (s *EngagementService) AddFavorite(userEmail, restaurantID string) error {
	if _, err := s.restaurantRepo.GetByID(restaurantID); err != nil {
		return err
	}
	return s.favoriteRepo.Add(&models.Favorite{
		UserEmail:    userEmail,
		RestaurantID: restaurantID,
	})
}

// RemoveFavorite removes a user's favorite.
func (s *EngagementService) RemoveFavorite(userEmail, restaurantID string) error {
	return s.favoriteRepo.Remove(userEmail, restaurantID)
}

// GetFavorites retrieves all of a user's favorites.
func (s *EngagementService) GetFavorites(userEmail string) ([]models.Favorite, error) {
	return s.favoriteRepo.GetByUser(userEmail)
}

// GetWallet retrieves a user's wallet, creating an empty one on first use.
func (s *EngagementService) GetWallet(userEmail string) (*models.Wallet, error) {
	wallet, err := s.walletRepo.GetByUser(userEmail)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	wallet = &models.Wallet{UserEmail: userEmail}
	if err := s.walletRepo.Create(wallet); err != nil {
		return nil, err
	}
	return wallet, nil
}

// CreditWallet adds funds to a user's wallet.
func (s *EngagementService) CreditWallet(userEmail string, amount float64, description string) (*models.Wallet, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("credit amount must be positive: %w", ErrInvalidInput)
	}
	wallet, err := s.GetWallet(userEmail)
	if err != nil {
		return nil, err
	}
	wallet.Balance += amount
	tx := &models.WalletTransaction{Kind: models.WalletCredit, Amount: amount, Description: description}
	if err := s.walletRepo.SaveBalance(wallet, tx); err != nil {
		return nil, err
	}
	return wallet, nil
}

// DebitWallet removes funds from a user's wallet.
func (s *EngagementService) DebitWallet(userEmail string, amount float64, description string) (*models.Wallet, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("debit amount must be positive: %w", ErrInvalidInput)
	}
	wallet, err := s.GetWallet(userEmail)
	if err != nil {
		return nil, err
	}
	if wallet.Balance < amount {
		return nil, fmt.Errorf("insufficient wallet balance: %w", ErrInvalidState)
	}
	wallet.Balance -= amount
	tx := &models.WalletTransaction{Kind: models.WalletDebit, Amount: amount, Description: description}
	if err := s.walletRepo.SaveBalance(wallet, tx); err != nil {
		return nil, err
	}
	return wallet, nil
}
