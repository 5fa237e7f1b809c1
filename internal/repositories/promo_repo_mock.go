package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"foodrush/internal/models"
)

// MockPromoRepository is an in-memory implementation of PromoRepository.
type MockPromoRepository struct {
	promos map[string]models.PromoCode // keyed by code
	mu     sync.RWMutex
}

// NewMockPromoRepository creates a new instance of MockPromoRepository.
func NewMockPromoRepository() *MockPromoRepository {
	return &MockPromoRepository{
		promos: make(map[string]models.PromoCode),
	}
}

// GetAll returns all promo codes.
func (r *MockPromoRepository) GetAll() ([]models.PromoCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.PromoCode, 0, len(r.promos))
	for _, promo := range r.promos {
		list = append(list, promo)
	}
	return list, nil
}

// GetActiveByCode returns an active promo code by its code.
func (r *MockPromoRepository) GetActiveByCode(code string) (*models.PromoCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	promo, ok := r.promos[code]
	if !ok || !promo.Active {
		return nil, fmt.Errorf("promo code %s: %w", code, ErrNotFound)
	}
	return &promo, nil
}

// Create adds a new promo code.
func (r *MockPromoRepository) Create(promo *models.PromoCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if promo.ID == "" {
		promo.ID = uuid.New().String()
	}
	r.promos[promo.Code] = *promo
	return nil
}

// IncrementUsage bumps the usage count under the same version check the GORM
// implementation performs.
func (r *MockPromoRepository) IncrementUsage(promo *models.PromoCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.promos[promo.Code]
	if !ok {
		return fmt.Errorf("promo code %s: %w", promo.Code, ErrNotFound)
	}
	if stored.Version != promo.Version {
		return fmt.Errorf("promo code %s: %w", promo.Code, ErrVersionConflict)
	}
	stored.UsageCount++
	stored.Version++
	r.promos[promo.Code] = stored
	promo.UsageCount = stored.UsageCount
	promo.Version = stored.Version
	return nil
}
