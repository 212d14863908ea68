package geocode

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_Lookup(t *testing.T) {
	t.Run("first result used", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Tokyo", r.URL.Query().Get("q"))
			w.Write([]byte(`[{"lat": "35.6762", "lon": "139.6503"}, {"lat": "0", "lon": "0"}]`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, time.Second)
		coords, ok := client.Lookup(context.Background(), "Tokyo")
		require.True(t, ok)
		assert.InDelta(t, 35.6762, coords.Lat, 0.0001)
		assert.InDelta(t, 139.6503, coords.Lon, 0.0001)
	})

	t.Run("empty result set is absent", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		_, ok := NewClient(srv.URL, time.Second).Lookup(context.Background(), "Nowhere")
		assert.False(t, ok)
	})

	t.Run("malformed body is absent", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"not": "an array"}`))
		}))
		defer srv.Close()

		_, ok := NewClient(srv.URL, time.Second).Lookup(context.Background(), "Paris")
		assert.False(t, ok)
	})

	t.Run("server error is absent", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, ok := NewClient(srv.URL, time.Second).Lookup(context.Background(), "Paris")
		assert.False(t, ok)
	})
}

func TestResolve_FallbackChain(t *testing.T) {
	t.Run("external lookup wins when available", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"lat": "52.52", "lon": "13.405"}]`))
		}))
		defer srv.Close()

		service := NewService(NewClient(srv.URL, time.Second), testLogger())
		coords, source := service.Resolve(context.Background(), "Berlin")
		assert.Equal(t, SourceLookup, source)
		assert.InDelta(t, 52.52, coords.Lat, 0.0001)
	})

	t.Run("static table matched by substring", func(t *testing.T) {
		// nil client: geocoding disabled.
		service := NewService(nil, testLogger())

		coords, source := service.Resolve(context.Background(), "Tokyo Disneyland")
		assert.Equal(t, SourceFallback, source)
		assert.Equal(t, wellKnownCities["tokyo"], coords)
	})

	t.Run("unknown place falls back to default", func(t *testing.T) {
		service := NewService(nil, testLogger())

		coords, source := service.Resolve(context.Background(), "Middle of Nowhere")
		assert.Equal(t, SourceDefault, source)
		assert.Equal(t, defaultLocation, coords)
	})

	t.Run("failed lookup degrades to static table", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		service := NewService(NewClient(srv.URL, time.Second), testLogger())
		coords, source := service.Resolve(context.Background(), "paris, france")
		assert.Equal(t, SourceFallback, source)
		assert.Equal(t, wellKnownCities["paris"], coords)
	})
}
