package types

import (
	"fmt"
	"sort"
	"strings"
)

// MaxTripDays bounds the duration slider in the client and the API alike.
const MaxTripDays = 14

// TripRequest holds the trip parameters collected from the planning form.
type TripRequest struct {
	Destination string   `json:"destination"`
	Budget      float64  `json:"budget"`
	Days        int      `json:"days"`
	Interests   []string `json:"interests"`
}

// Validate checks the request against the input constraints enforced by the UI.
func (r TripRequest) Validate() error {
	if strings.TrimSpace(r.Destination) == "" {
		return fmt.Errorf("destination must not be empty")
	}
	if r.Budget <= 0 {
		return fmt.Errorf("budget must be positive")
	}
	if r.Days < 1 || r.Days > MaxTripDays {
		return fmt.Errorf("days must be between 1 and %d", MaxTripDays)
	}
	if len(r.Interests) == 0 {
		return fmt.Errorf("at least one interest is required")
	}
	return nil
}

// NormalizedInterests returns the interests sorted, deduplicated and
// case-folded, for fingerprinting.
func (r TripRequest) NormalizedInterests() []string {
	seen := make(map[string]bool, len(r.Interests))
	out := make([]string, 0, len(r.Interests))
	for _, interest := range r.Interests {
		key := strings.ToLower(strings.TrimSpace(interest))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
