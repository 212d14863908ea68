package trip

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-itinerary/config"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/pdfexport"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newDemoService wires the trip service against the demo-mode generator (no
// AI credential) and the real PDF exporter.
func newDemoService() *ServiceImpl {
	logger := testLogger()
	generator := itinerary.NewService(nil, &config.Config{}, logger)
	exporter := pdfexport.NewService(logger)
	return NewService(NewSessionStore(0, 0), generator, exporter, logger)
}

func planRequest() types.TripRequest {
	return types.TripRequest{
		Destination: "Paris",
		Budget:      1000,
		Days:        3,
		Interests:   []string{"Food", "Heritage"},
	}
}

func TestPlan_FullDemoFlow(t *testing.T) {
	service := newDemoService()
	ctx := context.Background()

	state, err := service.Plan(ctx, planRequest())
	require.NoError(t, err)
	require.NotEmpty(t, state.SessionID)
	require.NotNil(t, state.Itinerary)
	assert.Nil(t, state.LastError)
	assert.False(t, state.PDFReady)
	assert.False(t, state.TripBooked)

	data, afterPDF, err := service.ExportPDF(ctx, state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
	assert.True(t, afterPDF.PDFReady)

	booked, err := service.Book(ctx, state.SessionID)
	require.NoError(t, err)
	assert.True(t, booked.TripBooked)

	reset, err := service.Reset(ctx, state.SessionID)
	require.NoError(t, err)
	assert.Nil(t, reset.Itinerary)
	assert.False(t, reset.TripBooked)
	assert.Equal(t, state.SessionID, reset.SessionID)
}

func TestReset_ClearsItineraryCache(t *testing.T) {
	logger := testLogger()
	generator := itinerary.NewService(nil, &config.Config{}, logger)
	service := NewService(NewSessionStore(0, 0), generator, pdfexport.NewService(logger), logger)
	ctx := context.Background()

	state, err := service.Plan(ctx, planRequest())
	require.NoError(t, err)
	require.NotNil(t, state.Itinerary)

	_, err = service.Reset(ctx, state.SessionID)
	require.NoError(t, err)

	// The same parameters must regenerate after a reset, not replay the
	// cached document.
	result := generator.Generate(ctx, planRequest())
	require.False(t, result.Failed())
	assert.False(t, result.FromCache)
}

func TestPlan_InvalidRequestRejected(t *testing.T) {
	service := newDemoService()

	req := planRequest()
	req.Days = 0
	_, err := service.Plan(context.Background(), req)
	assert.Error(t, err)
}

func TestSessionActions_RequireExistingSession(t *testing.T) {
	service := newDemoService()
	ctx := context.Background()

	_, err := service.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, _, err = service.ExportPDF(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = service.Book(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = service.Reset(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestBookAndExport_RequireItinerary(t *testing.T) {
	service := newDemoService()
	ctx := context.Background()

	state := service.store.Create()

	_, _, err := service.ExportPDF(ctx, state.SessionID)
	assert.ErrorIs(t, err, ErrNoItinerary)

	_, err = service.Book(ctx, state.SessionID)
	assert.ErrorIs(t, err, ErrNoItinerary)
}

func TestSessionStore_ApplyIsIsolatedPerSession(t *testing.T) {
	store := NewSessionStore(0, 0)
	a := store.Create()
	b := store.Create()

	_, ok := store.Apply(a.SessionID, types.TripAction{Kind: types.ActionTripBooked})
	require.True(t, ok)

	stateB, ok := store.Get(b.SessionID)
	require.True(t, ok)
	assert.False(t, stateB.TripBooked)
}
