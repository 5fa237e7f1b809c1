package services

import (
	"errors"
	"fmt"
)

// Service-level sentinel errors. Repositories contribute ErrNotFound and
// ErrVersionConflict; these cover the business-rule failures.
var (
	// ErrInvalidInput marks malformed requests: bad quantities, unknown
	// status strings, missing required fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState marks illegal lifecycle moves: backward status
	// transitions or cancelling a terminal order.
	ErrInvalidState = errors.New("invalid state")
)

// Coupon rejection reasons.
type CouponRejectReason string

const (
	CouponNotYetValid        CouponRejectReason = "NOT_YET_VALID"
	CouponExpired            CouponRejectReason = "EXPIRED"
	CouponUsageLimitReached  CouponRejectReason = "USAGE_LIMIT_REACHED"
	CouponMinimumOrderNotMet CouponRejectReason = "MINIMUM_ORDER_NOT_MET"
)

// CouponError is a structured coupon rejection. A missing or inactive code is
// reported as repositories.ErrNotFound instead.
type CouponError struct {
	Code    string
	Reason  CouponRejectReason
	Message string
}

func (e *CouponError) Error() string {
	return fmt.Sprintf("coupon %s rejected: %s", e.Code, e.Message)
}
