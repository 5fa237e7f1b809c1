package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"foodrush/internal/models"
	"foodrush/internal/repositories"
	"foodrush/internal/services"
)

// MockPromoRepository is a mock implementation of repositories.PromoRepository
type MockPromoRepository struct {
	mock.Mock
}

func (m *MockPromoRepository) GetAll() ([]models.PromoCode, error) {
	args := m.Called()
	return args.Get(0).([]models.PromoCode), args.Error(1)
}

func (m *MockPromoRepository) GetActiveByCode(code string) (*models.PromoCode, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromoCode), args.Error(1)
}

func (m *MockPromoRepository) Create(promo *models.PromoCode) error {
	args := m.Called(promo)
	return args.Error(0)
}

func (m *MockPromoRepository) IncrementUsage(promo *models.PromoCode) error {
	args := m.Called(promo)
	return args.Error(0)
}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
func timePtr(t time.Time) *time.Time {
	return &t
}

func TestPromoService_Validate_FixedDiscount(t *testing.T) {
	mockRepo := new(MockPromoRepository)
	service := services.NewPromoService(mockRepo, fixedClock)

	save20 := &models.PromoCode{
		Code:          "SAVE20",
		DiscountType:  models.DiscountFixed,
		DiscountValue: 20,
		MinOrder:      floatPtr(100),
		Active:        true,
	}
	mockRepo.On("GetActiveByCode", "SAVE20").Return(save20, nil).Once()

	promo, discount, err := service.Validate("SAVE20", 150)
	assert.NoError(t, err)
	assert.Equal(t, "SAVE20", promo.Code)
	assert.Equal(t, 20.0, discount)
	mockRepo.AssertExpectations(t)
}

func TestPromoService_Validate_FixedDiscountClampedToOrderAmount(t *testing.T) {
	mockRepo := new(MockPromoRepository)
	service := services.NewPromoService(mockRepo, fixedClock)

	big := &models.PromoCode{
		Code:          "BIG200",
		DiscountType:  models.DiscountFixed,
		DiscountValue: 200,
		Active:        true,
	}
	mockRepo.On("GetActiveByCode", "BIG200").Return(big, nil).Once()

	_, discount, err := service.Validate("BIG200", 150)
	assert.NoError(t, err)
	assert.Equal(t, 150.0, discount)
	mockRepo.AssertExpectations(t)
}

func TestPromoService_Validate_PercentageCappedAtMaxDiscount(t *testing.T) {
	mockRepo := new(MockPromoRepository)
	service := services.NewPromoService(mockRepo, fixedClock)

	half := &models.PromoCode{
		Code:          "FIRST50",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 50,
		MaxDiscount:   floatPtr(80),
		Active:        true,
	}
	mockRepo.On("GetActiveByCode", "FIRST50").Return(half, nil).Twice()

	// Below the cap: plain percentage.
	_, discount, err := service.Validate("FIRST50", 100)
	assert.NoError(t, err)
	assert.Equal(t, 50.0, discount)

	// Above the cap: clamped.
	_, discount, err = service.Validate("FIRST50", 400)
	assert.NoError(t, err)
	assert.Equal(t, 80.0, discount)
	mockRepo.AssertExpectations(t)
}

func TestPromoService_Validate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		promo  *models.PromoCode
		amount float64
		reason services.CouponRejectReason
	}{
		{
			name: "not yet valid",
			promo: &models.PromoCode{
				Code: "SOON", DiscountType: models.DiscountFixed, DiscountValue: 10,
				ValidFrom: timePtr(testNow.Add(time.Hour)), Active: true,
			},
			amount: 100,
			reason: services.CouponNotYetValid,
		},
		{
			name: "expired",
			promo: &models.PromoCode{
				Code: "OLD", DiscountType: models.DiscountFixed, DiscountValue: 10,
				ValidUntil: timePtr(testNow.Add(-time.Hour)), Active: true,
			},
			amount: 100,
			reason: services.CouponExpired,
		},
		{
			name: "usage limit reached",
			promo: &models.PromoCode{
				Code: "WORNOUT", DiscountType: models.DiscountFixed, DiscountValue: 10,
				UsageLimit: intPtr(5), UsageCount: 5, Active: true,
			},
			amount: 100,
			reason: services.CouponUsageLimitReached,
		},
		{
			name: "minimum order not met",
			promo: &models.PromoCode{
				Code: "SAVE20", DiscountType: models.DiscountFixed, DiscountValue: 20,
				MinOrder: floatPtr(100), Active: true,
			},
			amount: 99,
			reason: services.CouponMinimumOrderNotMet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPromoRepository)
			service := services.NewPromoService(mockRepo, fixedClock)
			mockRepo.On("GetActiveByCode", tt.promo.Code).Return(tt.promo, nil).Once()

			_, _, err := service.Validate(tt.promo.Code, tt.amount)
			assert.Error(t, err)

			var couponErr *services.CouponError
			assert.ErrorAs(t, err, &couponErr)
			assert.Equal(t, tt.reason, couponErr.Reason)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestPromoService_Validate_ExpiredWinsOverOtherFields(t *testing.T) {
	// An expired code is rejected even when every other constraint passes.
	mockRepo := new(MockPromoRepository)
	service := services.NewPromoService(mockRepo, fixedClock)

	expired := &models.PromoCode{
		Code:          "OLD50",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 50,
		MinOrder:      floatPtr(10),
		UsageLimit:    intPtr(1000),
		ValidUntil:    timePtr(testNow.Add(-24 * time.Hour)),
		Active:        true,
	}
	mockRepo.On("GetActiveByCode", "OLD50").Return(expired, nil).Once()

	_, _, err := service.Validate("OLD50", 10000)
	var couponErr *services.CouponError
	assert.ErrorAs(t, err, &couponErr)
	assert.Equal(t, services.CouponExpired, couponErr.Reason)
	mockRepo.AssertExpectations(t)
}

func TestPromoService_Validate_UnknownCode(t *testing.T) {
	service := services.NewPromoService(repositories.NewMockPromoRepository(), fixedClock)

	_, _, err := service.Validate("NOPE", 100)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestPromoService_Apply_CountsAtLeastOnce(t *testing.T) {
	promoRepo := repositories.NewMockPromoRepository()
	service := services.NewPromoService(promoRepo, fixedClock)

	err := promoRepo.Create(&models.PromoCode{
		Code: "SAVE20", Description: "flat 20 off",
		DiscountType: models.DiscountFixed, DiscountValue: 20, Active: true,
	})
	assert.NoError(t, err)

	// Apply is not idempotent: two calls count two usages.
	assert.NoError(t, service.Apply("SAVE20"))
	assert.NoError(t, service.Apply("SAVE20"))

	promo, err := promoRepo.GetActiveByCode("SAVE20")
	assert.NoError(t, err)
	assert.Equal(t, 2, promo.UsageCount)
}
