package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRequest() TripRequest {
	return TripRequest{
		Destination: "Paris",
		Budget:      1000,
		Days:        3,
		Interests:   []string{"Food", "Heritage"},
	}
}

func TestTripRequest_Validate(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		assert.NoError(t, validRequest().Validate())
	})

	t.Run("empty destination rejected", func(t *testing.T) {
		req := validRequest()
		req.Destination = "   "
		assert.Error(t, req.Validate())
	})

	t.Run("non-positive budget rejected", func(t *testing.T) {
		req := validRequest()
		req.Budget = 0
		assert.Error(t, req.Validate())
	})

	t.Run("days out of bounds rejected", func(t *testing.T) {
		req := validRequest()
		req.Days = 0
		assert.Error(t, req.Validate())

		req.Days = MaxTripDays + 1
		assert.Error(t, req.Validate())
	})

	t.Run("empty interests rejected", func(t *testing.T) {
		req := validRequest()
		req.Interests = nil
		assert.Error(t, req.Validate())
	})
}

func TestTripRequest_NormalizedInterests(t *testing.T) {
	req := TripRequest{
		Interests: []string{"Nightlife", "food", "  Food ", "HERITAGE", ""},
	}
	assert.Equal(t, []string{"food", "heritage", "nightlife"}, req.NormalizedInterests())
}
