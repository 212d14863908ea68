package pdfexport

import (
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-trip-itinerary/internal/api"
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

// Export handles POST /itinerary/pdf - renders the posted itinerary document
// as a PDF download.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PDFExportHandler").Start(r.Context(), "Export")
	defer span.End()

	var doc types.ItineraryDocument
	if err := api.DecodeJSONBody(w, r, &doc); err != nil {
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	data, err := h.service.Export(ctx, &doc)
	if err != nil {
		h.logger.ErrorContext(ctx, "PDF export failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "PDF export failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to export itinerary as PDF")
		return
	}

	span.SetStatus(codes.Ok, "PDF exported")
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.ErrorContext(ctx, "Failed to write PDF response", slog.Any("error", err))
	}
}
