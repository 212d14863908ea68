package maprender

import (
	"log/slog"
	"net/http"
	"strings"

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

// Render handles GET /map?destination=<name>&activities=<a,b,c> - returns the
// embeddable map artifact for a destination.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("MapRenderHandler").Start(r.Context(), "Render")
	defer span.End()

	destination := r.URL.Query().Get("destination")
	if destination == "" {
		span.SetStatus(codes.Error, "Missing destination")
		api.ErrorResponse(w, r, http.StatusBadRequest, "query parameter 'destination' is required")
		return
	}

	var activities []string
	if raw := r.URL.Query().Get("activities"); raw != "" {
		for _, a := range strings.Split(raw, ",") {
			if a = strings.TrimSpace(a); a != "" {
				activities = append(activities, a)
			}
		}
	}

	artifact := h.service.Render(ctx, destination, activities)

	h.logger.InfoContext(ctx, "Map rendered",
		slog.String("destination", destination),
		slog.String("mode", artifact.Mode),
		slog.Int("markers", len(artifact.Markers)))
	span.SetStatus(codes.Ok, "Map rendered")

	api.WriteJSONResponse(w, r, http.StatusOK, artifact)
}
