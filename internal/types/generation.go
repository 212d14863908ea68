package types

// GenerationError describes a failed itinerary generation: the external call
// failed or the model returned text that could not be parsed as JSON.
type GenerationError struct {
	Reason string `json:"reason"`
}

func (e *GenerationError) Error() string {
	return e.Reason
}

// GenerateResult is a tagged result: exactly one of Itinerary or Err is set.
// Callers must check Failed before rendering the document, so an error can
// never be mistaken for a valid itinerary.
type GenerateResult struct {
	Fingerprint string
	FromCache   bool
	Itinerary   *ItineraryDocument
	Err         *GenerationError
}

// Failed reports whether the result carries an error instead of a document.
func (r GenerateResult) Failed() bool {
	return r.Err != nil
}
