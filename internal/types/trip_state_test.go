package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce_Transitions(t *testing.T) {
	req := validRequest()
	doc := &ItineraryDocument{Destination: req.Destination, Days: req.Days}
	initial := TripState{SessionID: "s-1"}

	generated := Reduce(initial, TripAction{
		Kind:      ActionItineraryGenerated,
		Request:   &req,
		Itinerary: doc,
	})
	require.NotNil(t, generated.Itinerary)
	assert.False(t, generated.PDFReady)
	assert.False(t, generated.TripBooked)
	assert.Nil(t, generated.LastError)

	pdfReady := Reduce(generated, TripAction{Kind: ActionPDFGenerated})
	assert.True(t, pdfReady.PDFReady)

	booked := Reduce(pdfReady, TripAction{Kind: ActionTripBooked})
	assert.True(t, booked.TripBooked)

	reset := Reduce(booked, TripAction{Kind: ActionReset})
	assert.Equal(t, TripState{SessionID: "s-1"}, reset)
}

func TestReduce_GenerationFailureKeepsErrorInBand(t *testing.T) {
	req := validRequest()
	state := Reduce(TripState{SessionID: "s-2"}, TripAction{
		Kind:    ActionGenerationFailed,
		Request: &req,
		Err:     &GenerationError{Reason: "model unavailable"},
	})
	assert.Nil(t, state.Itinerary)
	require.NotNil(t, state.LastError)
	assert.Equal(t, "model unavailable", state.LastError.Reason)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	original := TripState{SessionID: "s-3", TripBooked: true}
	_ = Reduce(original, TripAction{Kind: ActionReset})
	assert.True(t, original.TripBooked)
}
