package models

import (
	"fmt"
	"time"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending        OrderStatus = "PENDING"
	StatusConfirmed      OrderStatus = "CONFIRMED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusReady          OrderStatus = "READY"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusNearby         OrderStatus = "NEARBY"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCancelled      OrderStatus = "CANCELLED"
)

// statusRank orders the forward lifecycle. An order may only move to a
// strictly higher rank; CANCELLED sits outside the ranking and is only
// reachable through Order.Cancel.
var statusRank = map[OrderStatus]int{
	StatusPending:        0,
	StatusConfirmed:      1,
	StatusPreparing:      2,
	StatusReady:          3,
	StatusOutForDelivery: 4,
	StatusNearby:         5,
	StatusDelivered:      6,
}

// ParseOrderStatus maps a raw status string to an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	status := OrderStatus(s)
	if _, ok := statusRank[status]; ok {
		return status, true
	}
	if status == StatusCancelled {
		return status, true
	}
	return "", false
}

// IsTerminal reports whether no further transitions are allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether moving from s to next is a legal forward
// move. Skipping intermediate states is allowed; moving backwards is not.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// OrderItem is a single line of an order. The unit price is copied from the
// menu item at creation time and never changes afterwards; the item never
// outlives its order.
type OrderItem struct {
	ID           string   `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID      string   `json:"order_id" gorm:"index;type:varchar(36)"`
	MenuItemID   string   `json:"menu_item_id" gorm:"type:varchar(36)" validate:"required"`
	MenuItem     MenuItem `json:"menu_item" gorm:"foreignKey:MenuItemID"`
	Quantity     int      `json:"quantity" validate:"gte=1"`
	UnitPrice    float64  `json:"unit_price"`
	Instructions string   `json:"instructions,omitempty"`
}

// LineTotal returns quantity times the unit price captured at creation.
func (i OrderItem) LineTotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

// Order is the central aggregate: line items, the price breakdown computed at
// creation, the lifecycle status and one nullable timestamp per transition.
type Order struct {
	ID           string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserEmail    string      `json:"user_email" gorm:"index"`
	RestaurantID string      `json:"restaurant_id" gorm:"index;type:varchar(36)"`
	Restaurant   Restaurant  `json:"restaurant" gorm:"foreignKey:RestaurantID"`
	Items        []OrderItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`

	ItemTotal   float64 `json:"item_total"`
	DeliveryFee float64 `json:"delivery_fee"`
	PlatformFee float64 `json:"platform_fee"`
	Tax         float64 `json:"tax"`
	Discount    float64 `json:"discount"`
	CouponCode  string  `json:"coupon_code,omitempty"`

	Status            OrderStatus `json:"status" gorm:"type:varchar(20);index"`
	DeliveryAddress   string      `json:"delivery_address"`
	DeliveryLatitude  *float64    `json:"delivery_latitude,omitempty"`
	DeliveryLongitude *float64    `json:"delivery_longitude,omitempty"`

	PartnerName   string  `json:"partner_name,omitempty"`
	PartnerPhone  string  `json:"partner_phone,omitempty"`
	PartnerRating float64 `json:"partner_rating,omitempty"`

	EstimatedMinutes   int    `json:"estimated_minutes"`
	CancellationReason string `json:"cancellation_reason,omitempty"`
	Instructions       string `json:"instructions,omitempty"`

	CreatedAt        time.Time  `json:"created_at"`
	ConfirmedAt      *time.Time `json:"confirmed_at,omitempty"`
	PreparingAt      *time.Time `json:"preparing_at,omitempty"`
	ReadyAt          *time.Time `json:"ready_at,omitempty"`
	OutForDeliveryAt *time.Time `json:"out_for_delivery_at,omitempty"`
	DeliveredAt      *time.Time `json:"delivered_at,omitempty"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`

	// Version guards concurrent status writes (optimistic concurrency).
	Version int `json:"-"`
}

// TotalPayable is the amount charged to the user.
func (o *Order) TotalPayable() float64 {
	return o.ItemTotal + o.DeliveryFee + o.PlatformFee + o.Tax - o.Discount
}

// PartnerAssigned reports whether a delivery partner has been assigned.
func (o *Order) PartnerAssigned() bool {
	return o.PartnerName != ""
}

// DeliveryPartner is the courier snapshot attached to an out-for-delivery order.
type DeliveryPartner struct {
	Name   string  `json:"name"`
	Phone  string  `json:"phone"`
	Rating float64 `json:"rating"`
}

// AssignPartner records the courier snapshot on the order.
func (o *Order) AssignPartner(p DeliveryPartner) {
	o.PartnerName = p.Name
	o.PartnerPhone = p.Phone
	o.PartnerRating = p.Rating
}

// Advance moves the order to next and stamps the matching timestamp field.
// Illegal moves (backwards, out of a terminal state, or into CANCELLED) are
// rejected. NEARBY is a real state but carries no timestamp of its own.
func (o *Order) Advance(next OrderStatus, now time.Time) error {
	if next == StatusCancelled {
		return fmt.Errorf("use Cancel to cancel an order")
	}
	if !o.Status.CanTransitionTo(next) {
		return fmt.Errorf("illegal transition %s -> %s", o.Status, next)
	}
	o.Status = next
	switch next {
	case StatusConfirmed:
		o.ConfirmedAt = &now
	case StatusPreparing:
		o.PreparingAt = &now
	case StatusReady:
		o.ReadyAt = &now
	case StatusOutForDelivery:
		o.OutForDeliveryAt = &now
	case StatusDelivered:
		o.DeliveredAt = &now
	}
	return nil
}

// Cancel moves the order to CANCELLED, recording the reason. Terminal orders
// cannot be cancelled.
func (o *Order) Cancel(reason string, now time.Time) error {
	if o.Status.IsTerminal() {
		return fmt.Errorf("order is already %s", o.Status)
	}
	o.Status = StatusCancelled
	o.CancellationReason = reason
	o.CancelledAt = &now
	return nil
}
