package types

// TripState is the explicit, serializable session state: the itinerary, PDF
// flag and booking flag for one planning session, transformed only through
// Reduce.
type TripState struct {
	SessionID  string             `json:"session_id"`
	Request    *TripRequest       `json:"request,omitempty"`
	Itinerary  *ItineraryDocument `json:"itinerary,omitempty"`
	LastError  *GenerationError   `json:"last_error,omitempty"`
	PDFReady   bool               `json:"pdf_ready"`
	TripBooked bool               `json:"trip_booked"`
}

// TripActionKind enumerates the state transitions a session supports.
type TripActionKind string

const (
	ActionItineraryGenerated TripActionKind = "itinerary_generated"
	ActionGenerationFailed   TripActionKind = "generation_failed"
	ActionPDFGenerated       TripActionKind = "pdf_generated"
	ActionTripBooked         TripActionKind = "trip_booked"
	ActionReset              TripActionKind = "reset"
)

// TripAction is a single transition request against a TripState.
type TripAction struct {
	Kind      TripActionKind
	Request   *TripRequest
	Itinerary *ItineraryDocument
	Err       *GenerationError
}

// Reduce applies an action to a state and returns the new state. It is pure:
// the input state is never mutated, so every transition is testable without
// an HTTP harness.
func Reduce(state TripState, action TripAction) TripState {
	next := state
	switch action.Kind {
	case ActionItineraryGenerated:
		next.Request = action.Request
		next.Itinerary = action.Itinerary
		next.LastError = nil
		next.PDFReady = false
		next.TripBooked = false
	case ActionGenerationFailed:
		next.Request = action.Request
		next.Itinerary = nil
		next.LastError = action.Err
		next.PDFReady = false
	case ActionPDFGenerated:
		next.PDFReady = true
	case ActionTripBooked:
		next.TripBooked = true
	case ActionReset:
		next = TripState{SessionID: state.SessionID}
	}
	return next
}
