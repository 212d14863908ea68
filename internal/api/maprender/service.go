package maprender

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"math/rand"
	"net/url"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-itinerary/internal/api/geocode"
)

const maxActivityMarkers = 10

// Marker is one pin on the rendered map. Activity markers are placed with a
// small pseudo-random offset around the destination: they are decorative, not
// real geocoded locations. Any change to that must go through per-activity
// geocoding, not silent tightening of the jitter.
type Marker struct {
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Kind  string  `json:"kind"` // "destination" or "activity"
}

// MapArtifact is the embeddable map produced for a destination.
type MapArtifact struct {
	Mode     string   `json:"mode"` // "embed" or "placeholder"
	EmbedURL string   `json:"embed_url,omitempty"`
	HTML     string   `json:"html,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
	Markers  []Marker `json:"markers"`
}

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service renders an embeddable map for a destination and optional activity
// labels. Rendering never fails past this boundary: any construction problem
// degrades to a placeholder artifact.
type Service interface {
	Render(ctx context.Context, destination string, activities []string) MapArtifact
}

type ServiceImpl struct {
	logger         *slog.Logger
	geocoder       geocode.Service
	embedBaseURL   string
	placeholderURL string
	apiKey         string
}

// NewService creates a new map renderer. The maps API key is read from the
// environment; an empty key switches every render to placeholder mode.
func NewService(geocoder geocode.Service, embedBaseURL, placeholderURL string, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:         logger,
		geocoder:       geocoder,
		embedBaseURL:   embedBaseURL,
		placeholderURL: placeholderURL,
		apiKey:         os.Getenv("GOOGLE_MAPS_API_KEY"),
	}
}

// Render resolves the destination, builds the embed artifact and attaches the
// marker list. On any primary construction failure a placeholder artifact is
// returned instead.
func (s *ServiceImpl) Render(ctx context.Context, destination string, activities []string) MapArtifact {
	ctx, span := otel.Tracer("MapRenderService").Start(ctx, "Render", trace.WithAttributes(
		attribute.String("map.destination", destination),
		attribute.Int("map.activities", len(activities)),
	))
	defer span.End()

	center, source := s.geocoder.Resolve(ctx, destination)
	span.SetAttributes(attribute.String("map.geocode_source", string(source)))

	markers := buildMarkers(destination, center, activities)

	if s.apiKey == "" {
		s.logger.InfoContext(ctx, "Maps API key not configured, returning placeholder map")
		span.SetStatus(codes.Ok, "Placeholder map (no credential)")
		return s.placeholder(markers)
	}

	artifact, err := s.buildEmbed(destination, activities, markers)
	if err != nil {
		s.logger.WarnContext(ctx, "Map construction failed, substituting placeholder", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Ok, "Placeholder map (construction failed)")
		return s.placeholder(markers)
	}

	span.SetStatus(codes.Ok, "Embed map rendered")
	return artifact
}

func (s *ServiceImpl) placeholder(markers []Marker) MapArtifact {
	return MapArtifact{
		Mode:     "placeholder",
		ImageURL: s.placeholderURL,
		Markers:  markers,
	}
}

func (s *ServiceImpl) buildEmbed(destination string, activities []string, markers []Marker) (MapArtifact, error) {
	base, err := url.Parse(s.embedBaseURL)
	if err != nil {
		return MapArtifact{}, fmt.Errorf("invalid embed base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return MapArtifact{}, fmt.Errorf("embed base URL %q has no scheme or host", s.embedBaseURL)
	}

	// Search for the destination plus the first activity, so the embed
	// centers on something recognisable.
	query := destination
	if len(activities) > 0 {
		query = destination + " " + activities[0]
	}

	params := url.Values{}
	params.Set("key", s.apiKey)
	params.Set("q", query)
	base.RawQuery = params.Encode()

	embedURL := base.String()
	html := fmt.Sprintf(
		`<iframe src="%s" width="700" height="450" style="border:0;" allowfullscreen="" loading="lazy"></iframe>`,
		embedURL,
	)

	return MapArtifact{
		Mode:     "embed",
		EmbedURL: embedURL,
		HTML:     html,
		Markers:  markers,
	}, nil
}

// buildMarkers places the destination pin plus up to maxActivityMarkers
// jittered activity pins. The jitter seed is derived from the destination so
// repeated renders are stable.
func buildMarkers(destination string, center geocode.Coordinates, activities []string) []Marker {
	markers := []Marker{{
		Label: destination,
		Lat:   center.Lat,
		Lon:   center.Lon,
		Kind:  "destination",
	}}

	seed := fnv.New64a()
	seed.Write([]byte(strings.ToLower(destination)))
	rng := rand.New(rand.NewSource(int64(seed.Sum64())))

	for i, activity := range activities {
		if i >= maxActivityMarkers {
			break
		}
		markers = append(markers, Marker{
			Label: activity,
			Lat:   center.Lat + (rng.Float64()-0.5)*0.02,
			Lon:   center.Lon + (rng.Float64()-0.5)*0.02,
			Kind:  "activity",
		})
	}
	return markers
}
