package dispatch_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"foodrush/internal/dispatch"
)

func TestSimulatedAssigner_Assign(t *testing.T) {
	assigner := dispatch.NewSimulatedAssigner(rand.New(rand.NewSource(1)))

	for i := 0; i < 50; i++ {
		partner := assigner.Assign()

		assert.NotEmpty(t, partner.Name)
		assert.True(t, strings.HasPrefix(partner.Phone, "+91 98"))
		assert.GreaterOrEqual(t, partner.Rating, 4.0)
		assert.Less(t, partner.Rating, 5.0)
	}
}
