package services

import (
	"errors"
	"fmt"
	"time"

	"foodrush/internal/models"
	"foodrush/internal/repositories"
)

// PromoService validates and applies promo codes. Validation is a pure
// function of the stored code, the order amount and the injected clock;
// expiry is checked lazily here, no background process deactivates codes.
type PromoService struct {
	promoRepo repositories.PromoRepository
	now       func() time.Time
}

// NewPromoService creates a new PromoService. A nil clock defaults to
// time.Now.
func NewPromoService(promoRepo repositories.PromoRepository, now func() time.Time) *PromoService {
	if now == nil {
		now = time.Now
	}
	return &PromoService{
		promoRepo: promoRepo,
		now:       now,
	}
}

// GetAllPromoCodes retrieves all promo codes.
func (s *PromoService) GetAllPromoCodes() ([]models.PromoCode, error) {
	return s.promoRepo.GetAll()
}

// CreatePromoCode creates a new promo code.
func (s *PromoService) CreatePromoCode(promo *models.PromoCode) error {
	return s.promoRepo.Create(promo)
}

// Validate checks a code against its activity window, usage limit and minimum
// order amount, and returns the code with the computed discount. Rejections
// come back as *CouponError; a missing or inactive code as
// repositories.ErrNotFound.
func (s *PromoService) Validate(code string, orderAmount float64) (*models.PromoCode, float64, error) {
	promo, err := s.promoRepo.GetActiveByCode(code)
	if err != nil {
		return nil, 0, err
	}

	now := s.now()
	if promo.ValidFrom != nil && now.Before(*promo.ValidFrom) {
		return nil, 0, &CouponError{Code: code, Reason: CouponNotYetValid, Message: "promo code not yet valid"}
	}
	if promo.ValidUntil != nil && now.After(*promo.ValidUntil) {
		return nil, 0, &CouponError{Code: code, Reason: CouponExpired, Message: "promo code expired"}
	}
	if promo.UsageLimit != nil && promo.UsageCount >= *promo.UsageLimit {
		return nil, 0, &CouponError{Code: code, Reason: CouponUsageLimitReached, Message: "promo code usage limit reached"}
	}
	if promo.MinOrder != nil && orderAmount < *promo.MinOrder {
		return nil, 0, &CouponError{
			Code:    code,
			Reason:  CouponMinimumOrderNotMet,
			Message: fmt.Sprintf("minimum order amount %.2f required", *promo.MinOrder),
		}
	}

	return promo, Discount(promo, orderAmount), nil
}

// Discount computes the discount a promo code grants on an order amount.
// Percentage discounts are capped at the code's maximum discount; fixed
// discounts are clamped to the order amount so the total can never go
// negative.
func Discount(promo *models.PromoCode, orderAmount float64) float64 {
	var discount float64
	switch promo.DiscountType {
	case models.DiscountPercentage:
		discount = orderAmount * promo.DiscountValue / 100
		if promo.MaxDiscount != nil && discount > *promo.MaxDiscount {
			discount = *promo.MaxDiscount
		}
	case models.DiscountFixed:
		discount = promo.DiscountValue
		if discount > orderAmount {
			discount = orderAmount
		}
	}
	return discount
}

// applyRetries bounds the reload-and-retry loop on version conflicts.
const applyRetries = 3

// Apply increments the code's usage count. The counting contract is
// at-least-once: calling Apply twice counts twice, callers deduplicate if
// they need exactly-once. Version conflicts from concurrent applies are
// retried with a fresh read so no increment is lost.
func (s *PromoService) Apply(code string) error {
	for attempt := 0; attempt < applyRetries; attempt++ {
		promo, err := s.promoRepo.GetActiveByCode(code)
		if err != nil {
			return err
		}
		err = s.promoRepo.IncrementUsage(promo)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repositories.ErrVersionConflict) {
			return err
		}
	}
	return fmt.Errorf("failed to apply promo code %s after %d attempts: %w", code, applyRetries, repositories.ErrVersionConflict)
}
