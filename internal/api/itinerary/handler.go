package itinerary

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-itinerary/internal/api"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// GenerateResponse is the success payload of POST /itinerary.
type GenerateResponse struct {
	Fingerprint string                   `json:"fingerprint"`
	FromCache   bool                     `json:"from_cache"`
	Itinerary   *types.ItineraryDocument `json:"itinerary"`
}

// Generate handles POST /itinerary - generates (or returns the cached)
// itinerary for the posted trip request.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "Generate", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itinerary"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Generate"))

	var req types.TripRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		l.WarnContext(ctx, "Invalid trip request", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid trip request")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result := h.service.Generate(ctx, req)
	if result.Failed() {
		l.WarnContext(ctx, "Generation failed", slog.String("reason", result.Err.Reason))
		span.SetStatus(codes.Error, "Generation failed")
		api.ErrorResponse(w, r, http.StatusUnprocessableEntity, result.Err.Reason)
		return
	}

	span.SetStatus(codes.Ok, "Itinerary generated")
	api.WriteJSONResponse(w, r, http.StatusOK, GenerateResponse{
		Fingerprint: result.Fingerprint,
		FromCache:   result.FromCache,
		Itinerary:   result.Itinerary,
	})
}
