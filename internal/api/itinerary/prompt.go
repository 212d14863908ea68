package itinerary

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// buildItineraryPrompt renders the generation instruction, embedding the trip
// parameters and the exact output-shape contract the parser expects.
func buildItineraryPrompt(req types.TripRequest) string {
	return fmt.Sprintf(`
    Create a %d-day travel itinerary for %s.
    Budget: %.0f
    Interests: %s
    Provide a valid JSON object with the following keys:
    - destination (string)
    - days (number)
    - budget (number)
    - interests (list of strings)
    - plan (list of objects: each has 'day' and 'activities')
    - cost_breakdown (object with nested details like transport (flights, local_transport), food (breakfast, lunch, dinner), activities (tickets, tours), accommodation (hotel, others))
    Ensure the output is ONLY valid JSON without extra text or formatting.
    `, req.Days, req.Destination, req.Budget, strings.Join(req.Interests, ", "))
}
