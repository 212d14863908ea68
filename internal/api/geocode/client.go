package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Client looks up coordinates for free-text place names against a
// Nominatim-compatible geocoding endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a geocoding API client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Lookup queries the geocoding service and returns the first result's
// coordinates. ok is false on any failure: network error, non-2xx status,
// empty result set or malformed payload.
func (c *Client) Lookup(ctx context.Context, place string) (Coordinates, bool) {
	endpoint := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", c.baseURL, url.QueryEscape(place))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Coordinates{}, false
	}
	req.Header.Set("User-Agent", "go-trip-itinerary/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Coordinates{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return Coordinates{}, false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Coordinates{}, false
	}

	// Nominatim returns lat/lon as strings.
	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.Unmarshal(body, &results); err != nil || len(results) == 0 {
		return Coordinates{}, false
	}

	lat, errLat := strconv.ParseFloat(results[0].Lat, 64)
	lon, errLon := strconv.ParseFloat(results[0].Lon, 64)
	if errLat != nil || errLon != nil {
		return Coordinates{}, false
	}
	return Coordinates{Lat: lat, Lon: lon}, true
}
