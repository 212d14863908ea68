package container

import (
	"context"
	"errors"
	"log/slog"

	"github.com/FACorreiaa/go-trip-itinerary/config"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/geocode"
	generativeAI "github.com/FACorreiaa/go-trip-itinerary/internal/api/generative_ai"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/maprender"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/pdfexport"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/trip"
)

// Container holds all application dependencies.
type Container struct {
	Config           *config.Config
	Logger           *slog.Logger
	ItineraryHandler *itinerary.Handler
	GeocodeHandler   *geocode.Handler
	MapHandler       *maprender.Handler
	PDFHandler       *pdfexport.Handler
	TripHandler      *trip.Handler
}

// NewContainer initializes and returns a new dependency container.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	// AI client: a missing credential is the documented demo mode, any other
	// construction error is fatal.
	var aiClient generativeAI.Client
	client, err := generativeAI.NewAIClient(ctx, cfg.AI.Model)
	switch {
	case errors.Is(err, generativeAI.ErrNoAPIKey):
		logger.Warn("No Gemini credential configured, running in demo mode")
	case err != nil:
		logger.Error("Failed to create AI client", slog.Any("error", err))
		return nil, err
	default:
		aiClient = client
	}

	itineraryService := itinerary.NewService(aiClient, cfg, logger)
	itineraryHandler := itinerary.NewHandler(itineraryService, logger)

	geocodeClient := geocode.NewClient(cfg.Geocode.BaseURL, cfg.Geocode.Timeout)
	geocodeService := geocode.NewService(geocodeClient, logger)
	geocodeHandler := geocode.NewHandler(geocodeService, logger)

	mapService := maprender.NewService(geocodeService, cfg.Maps.EmbedBaseURL, cfg.Maps.PlaceholderURL, logger)
	mapHandler := maprender.NewHandler(mapService, logger)

	pdfService := pdfexport.NewService(logger)
	pdfHandler := pdfexport.NewHandler(pdfService, logger)

	sessionStore := trip.NewSessionStore(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	tripService := trip.NewService(sessionStore, itineraryService, pdfService, logger)
	tripHandler := trip.NewHandler(tripService, logger)

	return &Container{
		Config:           cfg,
		Logger:           logger,
		ItineraryHandler: itineraryHandler,
		GeocodeHandler:   geocodeHandler,
		MapHandler:       mapHandler,
		PDFHandler:       pdfHandler,
		TripHandler:      tripHandler,
	}, nil
}
