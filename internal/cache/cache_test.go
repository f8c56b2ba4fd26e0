package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tripweaver/layover-engine/internal/models"
)

func request(origin, tier string) models.DiscoveryRequest {
	return models.DiscoveryRequest{
		Origin:        origin,
		DepartureDate: "2026-09-14",
		Preferences:   models.Preferences{BudgetTier: tier, MinLayoverMinutes: 120},
	}
}

func TestGenerateKey_StableForIdenticalRequests(t *testing.T) {
	a := generateKey(request("JFK", "budget"))
	b := generateKey(request("JFK", "budget"))

	assert.Equal(t, a, b)
	assert.Contains(t, a, "layover:")
}

func TestGenerateKey_VariesWithOriginAndPreferences(t *testing.T) {
	base := generateKey(request("JFK", "budget"))

	assert.NotEqual(t, base, generateKey(request("LAX", "budget")))
	assert.NotEqual(t, base, generateKey(request("JFK", "premium")))
}

func TestNoOpCache_AlwaysMisses(t *testing.T) {
	c := NewNoOpCache()
	req := request("JFK", "budget")

	assert.NoError(t, c.Set(context.Background(), req, []models.Candidate{{Code: "SIN"}}))

	_, found := c.Get(context.Background(), req)
	assert.False(t, found)
	assert.NoError(t, c.Close())
}
