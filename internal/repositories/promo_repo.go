package repositories

import "foodrush/internal/models"

// PromoRepository defines the interface for promo code data access.
//
// IncrementUsage bumps the usage count under a version check: implementations
// must return ErrVersionConflict (wrapped) when a concurrent increment won,
// so callers can reload and retry without losing counts.
type PromoRepository interface {
	GetAll() ([]models.PromoCode, error)
	GetActiveByCode(code string) (*models.PromoCode, error)
	Create(promo *models.PromoCode) error
	IncrementUsage(promo *models.PromoCode) error
}
