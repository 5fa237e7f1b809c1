package pricing

import "math/rand"

// Policy carries the business constants for order pricing. Historical builds
// of the platform disagreed on the free-delivery threshold (99 vs 150 vs 199)
// and the tax rate (5% vs 10%); both are policy fields so the choice is made
// once, in configuration, with the defaults below.
type Policy struct {
	BaseDeliveryFee       float64 // flat component of the delivery fee
	PerKmFee              float64 // per-kilometer surcharge
	FreeDeliveryThreshold float64 // item total at which delivery is free
	PlatformFeeRate       float64 // fraction of item total
	TaxRate               float64 // fraction of item total
	DefaultDistanceKm     float64 // used when coordinates are missing
	PrepTimeMinMinutes    int     // lower bound of randomized prep time
	PrepTimeMaxMinutes    int     // upper bound of randomized prep time
	MinutesPerKm          int     // travel component of the time estimate
}

// DefaultPolicy returns the canonical pricing constants.
func DefaultPolicy() Policy {
	return Policy{
		BaseDeliveryFee:       40,
		PerKmFee:              8,
		FreeDeliveryThreshold: 199,
		PlatformFeeRate:       0.02,
		TaxRate:               0.05,
		DefaultDistanceKm:     3.0,
		PrepTimeMinMinutes:    15,
		PrepTimeMaxMinutes:    25,
		MinutesPerKm:          3,
	}
}

// Quote is the fee breakdown for an order. Fees are computed from the item
// total and distance only; coupon discounts never reduce the fee bases.
type Quote struct {
	DeliveryFee float64
	PlatformFee float64
	Tax         float64
}

// Calculator computes order fees under a policy.
type Calculator struct {
	policy Policy
}

// NewCalculator creates a Calculator for the given policy.
func NewCalculator(policy Policy) *Calculator {
	return &Calculator{policy: policy}
}

// DeliveryFee is waived above the free-delivery threshold, otherwise the base
// fee plus the per-kilometer surcharge.
func (c *Calculator) DeliveryFee(itemTotal, distanceKm float64) float64 {
	if itemTotal >= c.policy.FreeDeliveryThreshold {
		return 0
	}
	return c.policy.BaseDeliveryFee + c.policy.PerKmFee*distanceKm
}

// PlatformFee is the platform's percentage cut of the item total.
func (c *Calculator) PlatformFee(itemTotal float64) float64 {
	return itemTotal * c.policy.PlatformFeeRate
}

// Tax is the tax on the item total.
func (c *Calculator) Tax(itemTotal float64) float64 {
	return itemTotal * c.policy.TaxRate
}

// QuoteFees returns the full fee breakdown for an order.
func (c *Calculator) QuoteFees(itemTotal, distanceKm float64) Quote {
	return Quote{
		DeliveryFee: c.DeliveryFee(itemTotal, distanceKm),
		PlatformFee: c.PlatformFee(itemTotal),
		Tax:         c.Tax(itemTotal),
	}
}

// Estimator produces delivery-time estimates. The preparation component is
// randomized, so the randomness source is injected to keep tests
// deterministic.
type Estimator struct {
	policy Policy
	rng    *rand.Rand
}

// NewEstimator creates an Estimator using the given randomness source.
func NewEstimator(policy Policy, rng *rand.Rand) *Estimator {
	return &Estimator{policy: policy, rng: rng}
}

// EstimateMinutes returns a randomized preparation time plus a
// distance-proportional travel time.
func (e *Estimator) EstimateMinutes(distanceKm float64) int {
	span := e.policy.PrepTimeMaxMinutes - e.policy.PrepTimeMinMinutes
	prep := e.policy.PrepTimeMinMinutes
	if span > 0 {
		prep += e.rng.Intn(span)
	}
	return prep + int(distanceKm*float64(e.policy.MinutesPerKm))
}
