package dispatch

import (
	"fmt"
	"math/rand"

	"foodrush/internal/models"
)

// PartnerAssigner picks a delivery partner for an order going out for
// delivery. The order state machine only depends on this interface, so the
// simulated assigner below can be swapped for a real dispatch integration.
type PartnerAssigner interface {
	Assign() models.DeliveryPartner
}

// roster of simulated couriers.
var partnerRoster = []string{
	"Rahul Kumar",
	"Amit Singh",
	"Priya Sharma",
	"Vikram Patel",
	"Sneha Reddy",
	"Arjun Nair",
}

// SimulatedAssigner is a stand-in for a real dispatch system. It picks a name
// from a fixed roster, a rating uniformly in [4.0, 5.0) and a synthetic phone
// number.
type SimulatedAssigner struct {
	rng *rand.Rand
}

// NewSimulatedAssigner creates a SimulatedAssigner using the given randomness
// source.
func NewSimulatedAssigner(rng *rand.Rand) *SimulatedAssigner {
	return &SimulatedAssigner{rng: rng}
}

// Assign returns a simulated delivery partner.
func (a *SimulatedAssigner) Assign() models.DeliveryPartner {
	return models.DeliveryPartner{
		Name:   partnerRoster[a.rng.Intn(len(partnerRoster))],
		Phone:  fmt.Sprintf("+91 98%08d", a.rng.Intn(100000000)),
		Rating: 4.0 + a.rng.Float64(),
	}
}
