package models

import (
	"time"

	"gorm.io/gorm"
)

// Discount kinds for promo codes.
const (
	DiscountPercentage = "PERCENTAGE"
	DiscountFixed      = "FIXED"
)

// PromoCode is a named discount rule with validity and usage constraints.
// Expiry is checked lazily at validation time; no background process
// deactivates codes.
type PromoCode struct {
	ID            string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Code          string     `json:"code" gorm:"uniqueIndex;type:varchar(50)" validate:"required,min=2,max=50"`
	Description   string     `json:"description" validate:"required"`
	DiscountType  string     `json:"discount_type" gorm:"type:varchar(20)" validate:"required,oneof=PERCENTAGE FIXED"`
	DiscountValue float64    `json:"discount_value" validate:"required,gt=0"`
	MinOrder      *float64   `json:"min_order,omitempty"`
	MaxDiscount   *float64   `json:"max_discount,omitempty"`
	ValidFrom     *time.Time `json:"valid_from,omitempty"`
	ValidUntil    *time.Time `json:"valid_until,omitempty"`
	UsageLimit    *int       `json:"usage_limit,omitempty"`
	UsageCount    int        `json:"usage_count"`
	Active        bool       `json:"active"`

	// Version guards concurrent usage-count increments.
	Version    int `json:"-"`
	gorm.Model `json:"-"`
}
