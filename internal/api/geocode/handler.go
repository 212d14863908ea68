package geocode

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-trip-itinerary/internal/api"
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

// Resolve handles GET /geocode?q=<place> - resolves a place name to
// coordinates through the fallback chain.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GeocodeHandler").Start(r.Context(), "Resolve")
	defer span.End()

	place := r.URL.Query().Get("q")
	if place == "" {
		span.SetStatus(codes.Error, "Missing query parameter")
		api.ErrorResponse(w, r, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	coords, source := h.service.Resolve(ctx, place)

	h.logger.InfoContext(ctx, "Place resolved",
		slog.String("place", place), slog.String("source", string(source)))
	span.SetStatus(codes.Ok, "Place resolved")

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"lat":    coords.Lat,
		"lon":    coords.Lon,
		"source": source,
	})
}
