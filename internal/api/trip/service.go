package trip

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-itinerary/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/pdfexport"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// ErrSessionNotFound is returned for unknown or expired session IDs.
var ErrSessionNotFound = fmt.Errorf("trip session not found")

// ErrNoItinerary is returned when an action needs a generated itinerary but
// the session has none.
var ErrNoItinerary = fmt.Errorf("session has no generated itinerary")

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service drives a planning session end to end: generate, export, book,
// reset. Every transition goes through the pure state reducer.
type Service interface {
	Plan(ctx context.Context, req types.TripRequest) (types.TripState, error)
	Get(ctx context.Context, sessionID string) (types.TripState, error)
	ExportPDF(ctx context.Context, sessionID string) ([]byte, types.TripState, error)
	Book(ctx context.Context, sessionID string) (types.TripState, error)
	Reset(ctx context.Context, sessionID string) (types.TripState, error)
}

type ServiceImpl struct {
	logger    *slog.Logger
	store     *SessionStore
	generator itinerary.Service
	exporter  pdfexport.Service
}

func NewService(store *SessionStore, generator itinerary.Service, exporter pdfexport.Service, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:    logger,
		store:     store,
		generator: generator,
		exporter:  exporter,
	}
}

// Plan creates a session and generates the itinerary for the request. A
// failed generation still produces a session carrying the error state, so the
// client can retry without losing the session.
func (s *ServiceImpl) Plan(ctx context.Context, req types.TripRequest) (types.TripState, error) {
	ctx, span := otel.Tracer("TripService").Start(ctx, "Plan", trace.WithAttributes(
		attribute.String("trip.destination", req.Destination),
	))
	defer span.End()

	if err := req.Validate(); err != nil {
		span.SetStatus(codes.Error, "Invalid trip request")
		return types.TripState{}, err
	}

	state := s.store.Create()
	span.SetAttributes(attribute.String("trip.session_id", state.SessionID))

	result := s.generator.Generate(ctx, req)
	if result.Failed() {
		next, _ := s.store.Apply(state.SessionID, types.TripAction{
			Kind:    types.ActionGenerationFailed,
			Request: &req,
			Err:     result.Err,
		})
		s.logger.WarnContext(ctx, "Trip planned with failed generation",
			slog.String("session_id", state.SessionID), slog.String("reason", result.Err.Reason))
		span.SetStatus(codes.Error, "Generation failed")
		return next, nil
	}

	next, _ := s.store.Apply(state.SessionID, types.TripAction{
		Kind:      types.ActionItineraryGenerated,
		Request:   &req,
		Itinerary: result.Itinerary,
	})
	s.logger.InfoContext(ctx, "Trip planned",
		slog.String("session_id", state.SessionID), slog.Bool("from_cache", result.FromCache))
	span.SetStatus(codes.Ok, "Trip planned")
	return next, nil
}

func (s *ServiceImpl) Get(ctx context.Context, sessionID string) (types.TripState, error) {
	state, found := s.store.Get(sessionID)
	if !found {
		return types.TripState{}, ErrSessionNotFound
	}
	return state, nil
}

// ExportPDF renders the session's itinerary as a PDF and marks the session.
func (s *ServiceImpl) ExportPDF(ctx context.Context, sessionID string) ([]byte, types.TripState, error) {
	ctx, span := otel.Tracer("TripService").Start(ctx, "ExportPDF", trace.WithAttributes(
		attribute.String("trip.session_id", sessionID),
	))
	defer span.End()

	state, found := s.store.Get(sessionID)
	if !found {
		span.SetStatus(codes.Error, "Session not found")
		return nil, types.TripState{}, ErrSessionNotFound
	}
	if state.Itinerary == nil {
		span.SetStatus(codes.Error, "No itinerary in session")
		return nil, state, ErrNoItinerary
	}

	data, err := s.exporter.Export(ctx, state.Itinerary)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "PDF export failed")
		return nil, state, err
	}

	next, _ := s.store.Apply(sessionID, types.TripAction{Kind: types.ActionPDFGenerated})
	span.SetStatus(codes.Ok, "PDF exported")
	return data, next, nil
}

// Book flips the demo booking flag. No inventory is touched anywhere.
func (s *ServiceImpl) Book(ctx context.Context, sessionID string) (types.TripState, error) {
	state, found := s.store.Get(sessionID)
	if !found {
		return types.TripState{}, ErrSessionNotFound
	}
	if state.Itinerary == nil {
		return state, ErrNoItinerary
	}
	next, _ := s.store.Apply(sessionID, types.TripAction{Kind: types.ActionTripBooked})
	s.logger.InfoContext(ctx, "Trip booked (demo)", slog.String("session_id", sessionID))
	return next, nil
}

// Reset clears the session back to its initial state, backing the
// "plan another trip" control.
func (s *ServiceImpl) Reset(ctx context.Context, sessionID string) (types.TripState, error) {
	next, found := s.store.Apply(sessionID, types.TripAction{Kind: types.ActionReset})
	if !found {
		return types.TripState{}, ErrSessionNotFound
	}
	// A reset also drops cached itineraries, so planning again regenerates
	// instead of replaying the previous document.
	s.generator.ClearCache()
	s.logger.InfoContext(ctx, "Trip session reset", slog.String("session_id", sessionID))
	return next, nil
}
