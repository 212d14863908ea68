// internal/router/router.go
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/FACorreiaa/go-trip-itinerary/internal/api/geocode"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/maprender"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/pdfexport"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/trip"
)

// Config contains the handlers needed for the router setup.
type Config struct {
	ItineraryHandler *itinerary.Handler
	GeocodeHandler   *geocode.Handler
	MapHandler       *maprender.Handler
	PDFHandler       *pdfexport.Handler
	TripHandler      *trip.Handler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are applied before
// mounting this router in main.go. All routes are public: the planner has no
// accounts.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Heartbeat/Health check endpoint
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Stateless building blocks
		r.Post("/itinerary", cfg.ItineraryHandler.Generate)
		r.Post("/itinerary/pdf", cfg.PDFHandler.Export)
		r.Get("/geocode", cfg.GeocodeHandler.Resolve)
		r.Get("/map", cfg.MapHandler.Render)

		// Session-driven planning flow
		r.Post("/trip", cfg.TripHandler.Plan)
		r.Route("/trip/{sessionID}", func(r chi.Router) {
			r.Get("/", cfg.TripHandler.Get)
			r.Post("/pdf", cfg.TripHandler.ExportPDF)
			r.Post("/book", cfg.TripHandler.Book)
			r.Post("/reset", cfg.TripHandler.Reset)
		})
	})

	return r
}
