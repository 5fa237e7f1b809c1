package tracking

import (
	"time"

	"foodrush/internal/models"
)

// Event is a completed order milestone.
type Event struct {
	Label string    `json:"label"`
	At    time.Time `json:"at"`
}

// BuildTimeline derives the chronological milestone list from an order's
// timestamp fields. The label order below is canonical; events are emitted in
// this fixed order, not sorted by timestamp value. "Order Placed" is always
// present. NEARBY has no timestamp and therefore no timeline entry.
func BuildTimeline(order *models.Order) []Event {
	events := []Event{{Label: "Order Placed", At: order.CreatedAt}}

	milestones := []struct {
		label string
		at    *time.Time
	}{
		{"Order Confirmed", order.ConfirmedAt},
		{"Being Prepared", order.PreparingAt},
		{"Ready for Pickup", order.ReadyAt},
		{"Out for Delivery", order.OutForDeliveryAt},
		{"Delivered", order.DeliveredAt},
	}
	for _, m := range milestones {
		if m.at != nil {
			events = append(events, Event{Label: m.label, At: *m.at})
		}
	}
	return events
}

// RemainingMinutes estimates how long until delivery: zero once delivered,
// otherwise the creation-time estimate minus elapsed minutes, floored at zero.
func RemainingMinutes(order *models.Order, now time.Time) int {
	if order.Status == models.StatusDelivered {
		return 0
	}
	elapsed := int(now.Sub(order.CreatedAt).Minutes())
	remaining := order.EstimatedMinutes - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}
