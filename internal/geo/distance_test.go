package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"foodrush/internal/geo"
)

func TestHaversine_KnownDistance(t *testing.T) {
	// Bangalore -> Chennai is roughly 290 km as the crow flies.
	d := geo.Haversine(12.9716, 77.5946, 13.0827, 80.2707)
	assert.InDelta(t, 290, d, 5)
}

func TestHaversine_SamePointIsZero(t *testing.T) {
	assert.Equal(t, 0.0, geo.Haversine(12.9716, 77.5946, 12.9716, 77.5946))
}

func TestHaversine_Symmetric(t *testing.T) {
	ab := geo.Haversine(12.9716, 77.5946, 19.0760, 72.8777)
	ba := geo.Haversine(19.0760, 72.8777, 12.9716, 77.5946)
	assert.Equal(t, ab, ba)
}

func TestDistance_MissingCoordinatesFallsBackToDefault(t *testing.T) {
	lat, lng := 12.9716, 77.5946

	assert.Equal(t, 3.0, geo.Distance(nil, nil, &lat, &lng, 3.0))
	assert.Equal(t, 3.0, geo.Distance(&lat, &lng, nil, &lng, 3.0))
	assert.Equal(t, 5.5, geo.Distance(&lat, nil, &lat, &lng, 5.5))
}

func TestDistance_AllCoordinatesPresent(t *testing.T) {
	lat1, lng1 := 12.9716, 77.5946
	lat2, lng2 := 13.0827, 80.2707

	d := geo.Distance(&lat1, &lng1, &lat2, &lng2, 3.0)
	assert.InDelta(t, 290, d, 5)
}
