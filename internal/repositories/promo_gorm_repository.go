package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodrush/internal/models"
)

// GORMPromoRepository is a GORM implementation of PromoRepository.
type GORMPromoRepository struct {
	db *gorm.DB
}

// NewGORMPromoRepository creates a new instance of GORMPromoRepository.
func NewGORMPromoRepository(db *gorm.DB) *GORMPromoRepository {
	return &GORMPromoRepository{db: db}
}

// GetAll retrieves all promo codes.
func (r *GORMPromoRepository) GetAll() ([]models.PromoCode, error) {
	var promos []models.PromoCode
	if err := r.db.Find(&promos).Error; err != nil {
		return nil, fmt.Errorf("failed to get all promo codes: %w", err)
	}
	return promos, nil
}

// GetActiveByCode retrieves an active promo code by its code.
func (r *GORMPromoRepository) GetActiveByCode(code string) (*models.PromoCode, error) {
	var promo models.PromoCode
	err := r.db.First(&promo, "code = ? AND active = ?", code, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("promo code %s: %w", code, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get promo code %s: %w", code, err)
	}
	return &promo, nil
}

// Create creates a new promo code.
func (r *GORMPromoRepository) Create(promo *models.PromoCode) error {
	if promo.ID == "" {
		promo.ID = uuid.New().String()
	}
	if err := r.db.Create(promo).Error; err != nil {
		return fmt.Errorf("failed to create promo code: %w", err)
	}
	return nil
}

// IncrementUsage bumps the usage count under a version check.
func (r *GORMPromoRepository) IncrementUsage(promo *models.PromoCode) error {
	res := r.db.Model(&models.PromoCode{}).
		Where("id = ? AND version = ?", promo.ID, promo.Version).
		Updates(map[string]interface{}{
			"usage_count": promo.UsageCount + 1,
			"version":     promo.Version + 1,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to increment usage for promo %s: %w", promo.Code, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("promo code %s: %w", promo.Code, ErrVersionConflict)
	}
	promo.UsageCount++
	promo.Version++
	return nil
}
