package pricing_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"foodrush/internal/pricing"
)

func TestCalculator_DeliveryFee(t *testing.T) {
	calc := pricing.NewCalculator(pricing.DefaultPolicy())

	tests := []struct {
		name      string
		itemTotal float64
		distance  float64
		want      float64
	}{
		{"below threshold pays base plus per km", 150, 2, 56},
		{"at threshold is free", 199, 2, 0},
		{"above threshold is free", 500, 10, 0},
		{"zero distance still pays base", 50, 0, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calc.DeliveryFee(tt.itemTotal, tt.distance))
		})
	}
}

func TestCalculator_QuoteFees(t *testing.T) {
	calc := pricing.NewCalculator(pricing.DefaultPolicy())

	quote := calc.QuoteFees(150, 2)
	assert.Equal(t, 56.0, quote.DeliveryFee)
	assert.Equal(t, 3.0, quote.PlatformFee)
	assert.Equal(t, 7.5, quote.Tax)
}

func TestCalculator_FeesIndependentOfDiscount(t *testing.T) {
	// Fees are a function of item total and distance only; there is no
	// discount input anywhere in the calculator.
	calc := pricing.NewCalculator(pricing.DefaultPolicy())

	assert.Equal(t, calc.QuoteFees(150, 2), calc.QuoteFees(150, 2))
}

func TestEstimator_EstimateMinutes(t *testing.T) {
	policy := pricing.DefaultPolicy()
	est := pricing.NewEstimator(policy, rand.New(rand.NewSource(1)))

	for i := 0; i < 100; i++ {
		minutes := est.EstimateMinutes(2)
		// prep in [15, 25) plus 2 km at 3 min/km
		assert.GreaterOrEqual(t, minutes, 15+6)
		assert.Less(t, minutes, 25+6)
	}
}

func TestEstimator_DeterministicWithSameSeed(t *testing.T) {
	policy := pricing.DefaultPolicy()
	a := pricing.NewEstimator(policy, rand.New(rand.NewSource(7)))
	b := pricing.NewEstimator(policy, rand.New(rand.NewSource(7)))

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.EstimateMinutes(4), b.EstimateMinutes(4))
	}
}
