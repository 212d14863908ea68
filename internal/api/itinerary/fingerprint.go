package itinerary

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// Fingerprint returns a deterministic cache key for a trip request. Interests
// are sorted, deduplicated and case-folded first, so the key is invariant
// under their input order.
func Fingerprint(req types.TripRequest) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%.2f|%d|%s",
		strings.ToLower(strings.TrimSpace(req.Destination)),
		req.Budget,
		req.Days,
		strings.Join(req.NormalizedInterests(), ","),
	)
	return hex.EncodeToString(h.Sum(nil))
}
