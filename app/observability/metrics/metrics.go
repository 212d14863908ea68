package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	GenerationsTotal          metric.Int64Counter
	GenerationDurationSeconds metric.Float64Histogram
	CacheHitsTotal            metric.Int64Counter
	CacheMissesTotal          metric.Int64Counter
	PDFExportsTotal           metric.Int64Counter
	GeocodeFallbacksTotal     metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments once, using the
// globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("TripItineraryAPI")
		var err error
		m := &AppMetrics{}

		m.GenerationsTotal, err = meter.Int64Counter(
			"itinerary_generations_total",
			metric.WithDescription("Total number of itinerary generation attempts"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_generations_total: %v", err)
		}

		m.GenerationDurationSeconds, err = meter.Float64Histogram(
			"itinerary_generation_duration_seconds",
			metric.WithDescription("Duration of itinerary generation calls in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_generation_duration_seconds: %v", err)
		}

		m.CacheHitsTotal, err = meter.Int64Counter(
			"itinerary_cache_hits_total",
			metric.WithDescription("Itinerary cache hits"),
			metric.WithUnit("{lookup}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_cache_hits_total: %v", err)
		}

		m.CacheMissesTotal, err = meter.Int64Counter(
			"itinerary_cache_misses_total",
			metric.WithDescription("Itinerary cache misses"),
			metric.WithUnit("{lookup}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_cache_misses_total: %v", err)
		}

		m.PDFExportsTotal, err = meter.Int64Counter(
			"itinerary_pdf_exports_total",
			metric.WithDescription("Total number of PDF exports"),
			metric.WithUnit("{export}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_pdf_exports_total: %v", err)
		}

		m.GeocodeFallbacksTotal, err = meter.Int64Counter(
			"geocode_fallbacks_total",
			metric.WithDescription("Geocode lookups served from the static fallback table"),
			metric.WithUnit("{lookup}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create geocode_fallbacks_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the initialized metrics, initializing them lazily if needed.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}
