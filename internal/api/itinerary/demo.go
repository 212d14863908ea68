package itinerary

import "github.com/FACorreiaa/go-trip-itinerary/internal/types"

// demoItinerary is the fixed demonstration document returned when no Gemini
// credential is configured. The request parameters are echoed back so the
// document stays consistent with what the caller asked for.
func demoItinerary(req types.TripRequest) *types.ItineraryDocument {
	return &types.ItineraryDocument{
		Destination: req.Destination,
		Days:        req.Days,
		Budget:      req.Budget,
		Interests:   req.Interests,
		Plan: []types.DayPlan{
			{Day: 1, Activities: []string{"Visit heritage site", "Local food tour"}},
			{Day: 2, Activities: []string{"Nightlife exploration", "City walk"}},
		},
		CostBreakdown: types.CostBreakdown{
			"transport":     {Items: map[string]float64{"flights": 200, "local_transport": 50}},
			"food":          {Items: map[string]float64{"breakfast": 30, "lunch": 50, "dinner": 70}},
			"activities":    {Items: map[string]float64{"tours": 100, "tickets": 50}},
			"accommodation": {Items: map[string]float64{"hotel": 300}},
		},
	}
}
