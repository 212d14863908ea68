package trip

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-itinerary/internal/api"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/pdfexport"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

type Handler struct {
	logger  *slog.Logger
	service Service
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// Plan handles POST /trip - creates a session and generates its itinerary.
func (h *Handler) Plan(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TripHandler").Start(r.Context(), "Plan", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/trip"),
	))
	defer span.End()

	var req types.TripRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	state, err := h.service.Plan(ctx, req)
	if err != nil {
		span.SetStatus(codes.Error, "Invalid trip request")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	status := http.StatusOK
	if state.LastError != nil {
		// Session exists but generation failed; the error travels in the
		// state so the client can retry against the same session.
		status = http.StatusUnprocessableEntity
		span.SetStatus(codes.Error, "Generation failed")
	} else {
		span.SetStatus(codes.Ok, "Trip planned")
	}
	api.WriteJSONResponse(w, r, status, state)
}

// Get handles GET /trip/{sessionID} - returns the session state.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TripHandler").Start(r.Context(), "Get")
	defer span.End()

	state, err := h.service.Get(ctx, chi.URLParam(r, "sessionID"))
	if err != nil {
		span.SetStatus(codes.Error, "Session not found")
		api.ErrorResponse(w, r, http.StatusNotFound, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "Session returned")
	api.WriteJSONResponse(w, r, http.StatusOK, state)
}

// ExportPDF handles POST /trip/{sessionID}/pdf - returns the itinerary PDF.
func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TripHandler").Start(r.Context(), "ExportPDF")
	defer span.End()

	sessionID := chi.URLParam(r, "sessionID")
	data, _, err := h.service.ExportPDF(ctx, sessionID)
	if err != nil {
		h.writeServiceError(w, r, span, err)
		return
	}

	span.SetStatus(codes.Ok, "PDF exported")
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", pdfexport.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.ErrorContext(ctx, "Failed to write PDF response",
			slog.String("session_id", sessionID), slog.Any("error", err))
	}
}

// Book handles POST /trip/{sessionID}/book - demo booking confirmation.
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TripHandler").Start(r.Context(), "Book")
	defer span.End()

	state, err := h.service.Book(ctx, chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeServiceError(w, r, span, err)
		return
	}

	span.SetStatus(codes.Ok, "Trip booked")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"message": "Your trip has been booked (demo mode). Safe travels!",
		"state":   state,
	})
}

// Reset handles POST /trip/{sessionID}/reset - clears the session.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TripHandler").Start(r.Context(), "Reset")
	defer span.End()

	state, err := h.service.Reset(ctx, chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeServiceError(w, r, span, err)
		return
	}
	span.SetStatus(codes.Ok, "Session reset")
	api.WriteJSONResponse(w, r, http.StatusOK, state)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, span trace.Span, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		span.SetStatus(codes.Error, "Session not found")
		api.ErrorResponse(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNoItinerary):
		span.SetStatus(codes.Error, "No itinerary in session")
		api.ErrorResponse(w, r, http.StatusConflict, err.Error())
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, "Internal error")
		api.ErrorResponse(w, r, http.StatusInternalServerError, err.Error())
	}
}
