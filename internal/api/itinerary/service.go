package itinerary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-trip-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-itinerary/config"
	generativeAI "github.com/FACorreiaa/go-trip-itinerary/internal/api/generative_ai"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for itinerary generation.
type Service interface {
	Generate(ctx context.Context, req types.TripRequest) types.GenerateResult
	ClearCache()
}

// ServiceImpl generates itineraries through the Gemini client and caches
// successful documents by request fingerprint. A nil AI client means no
// credential is configured and the service runs in demo mode.
type ServiceImpl struct {
	logger   *slog.Logger
	aiClient generativeAI.Client
	cache    *cache.Cache
	group    singleflight.Group
	genCfg   *genai.GenerateContentConfig
}

// NewService creates a new itinerary service instance.
func NewService(aiClient generativeAI.Client, cfg *config.Config, logger *slog.Logger) *ServiceImpl {
	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	cleanup := cfg.Cache.CleanupInterval
	if cleanup <= 0 {
		cleanup = 1 * time.Hour
	}
	return &ServiceImpl{
		logger:   logger,
		aiClient: aiClient,
		cache:    cache.New(ttl, cleanup),
		genCfg: &genai.GenerateContentConfig{
			Temperature:     genai.Ptr(cfg.AI.Temperature),
			TopP:            genai.Ptr(cfg.AI.TopP),
			TopK:            genai.Ptr(cfg.AI.TopK),
			MaxOutputTokens: cfg.AI.MaxOutputTokens,
		},
	}
}

// Generate returns the itinerary for a trip request, from cache when an
// identical request was served before. Failed generations are never cached,
// so a retry with the same parameters can still succeed. Concurrent requests
// for the same fingerprint are collapsed into a single model call.
func (s *ServiceImpl) Generate(ctx context.Context, req types.TripRequest) types.GenerateResult {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Generate", trace.WithAttributes(
		attribute.String("trip.destination", req.Destination),
		attribute.Int("trip.days", req.Days),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Generate"), slog.String("destination", req.Destination))

	if err := req.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid trip request")
		return types.GenerateResult{Err: &types.GenerationError{Reason: err.Error()}}
	}

	fingerprint := Fingerprint(req)
	span.SetAttributes(attribute.String("trip.fingerprint", fingerprint))

	if cached, found := s.cache.Get(fingerprint); found {
		metrics.Get().CacheHitsTotal.Add(ctx, 1)
		l.DebugContext(ctx, "Itinerary served from cache", slog.String("fingerprint", fingerprint))
		span.SetStatus(codes.Ok, "Cache hit")
		return types.GenerateResult{
			Fingerprint: fingerprint,
			FromCache:   true,
			Itinerary:   cached.(*types.ItineraryDocument),
		}
	}
	metrics.Get().CacheMissesTotal.Add(ctx, 1)

	// Collapse concurrent identical requests into one model call. The flight
	// may be shared by several waiters, so detach it from the initiating
	// caller's cancellation: one canceled request must not fail the rest.
	shared, err, _ := s.group.Do(fingerprint, func() (interface{}, error) {
		return s.generateUncached(context.WithoutCancel(ctx), req, fingerprint)
	})
	if err != nil {
		// generateUncached reports failures in-band, never through err.
		return types.GenerateResult{Fingerprint: fingerprint, Err: &types.GenerationError{Reason: err.Error()}}
	}
	result := shared.(types.GenerateResult)
	if result.Failed() {
		span.SetStatus(codes.Error, result.Err.Reason)
	} else {
		span.SetStatus(codes.Ok, "Itinerary generated")
	}
	return result
}

func (s *ServiceImpl) generateUncached(ctx context.Context, req types.TripRequest, fingerprint string) (types.GenerateResult, error) {
	l := s.logger.With(slog.String("method", "generateUncached"), slog.String("fingerprint", fingerprint))

	if s.aiClient == nil {
		// Offline/demo mode: no credential configured.
		doc := demoItinerary(req)
		s.cache.SetDefault(fingerprint, doc)
		metrics.Get().GenerationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "demo")))
		l.InfoContext(ctx, "No Gemini credential configured, returning demo itinerary")
		return types.GenerateResult{Fingerprint: fingerprint, Itinerary: doc}, nil
	}

	prompt := buildItineraryPrompt(req)

	startTime := time.Now()
	raw, err := s.aiClient.GenerateContent(ctx, prompt, s.genCfg)
	metrics.Get().GenerationDurationSeconds.Record(ctx, time.Since(startTime).Seconds())
	if err != nil {
		metrics.Get().GenerationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "call_error")))
		l.ErrorContext(ctx, "Model call failed", slog.Any("error", err))
		return types.GenerateResult{
			Fingerprint: fingerprint,
			Err:         &types.GenerationError{Reason: fmt.Sprintf("itinerary generation failed: %v", err)},
		}, nil
	}

	doc, err := parseItinerary(extractJSON(raw))
	if err != nil {
		metrics.Get().GenerationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "parse_error")))
		l.ErrorContext(ctx, "Model returned malformed JSON", slog.Any("error", err))
		return types.GenerateResult{
			Fingerprint: fingerprint,
			Err:         &types.GenerationError{Reason: fmt.Sprintf("Invalid JSON response from Gemini: %v", err)},
		}, nil
	}

	s.cache.SetDefault(fingerprint, doc)
	metrics.Get().GenerationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "success")))
	l.InfoContext(ctx, "Itinerary generated", slog.Int("plan_days", len(doc.Plan)))
	return types.GenerateResult{Fingerprint: fingerprint, Itinerary: doc}, nil
}

// ClearCache drops all cached itineraries. Used by the session reset flow.
func (s *ServiceImpl) ClearCache() {
	s.cache.Flush()
}
