package itinerary

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// extractJSON recovers the JSON object from raw model output. Models often
// wrap the object in a markdown code fence; in that case the substring
// between the first '{' and the last '}' is used. Unfenced output is taken
// verbatim.
func extractJSON(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	firstBrace := strings.Index(text, "{")
	lastBrace := strings.LastIndex(text, "}")
	if firstBrace == -1 || lastBrace <= firstBrace {
		return text
	}
	return text[firstBrace : lastBrace+1]
}

// parseItinerary parses extracted model output into an ItineraryDocument.
func parseItinerary(jsonStr string) (*types.ItineraryDocument, error) {
	var doc types.ItineraryDocument
	if err := json.Unmarshal([]byte(jsonStr), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse itinerary JSON: %w", err)
	}
	return &doc, nil
}
