package service

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanfire/backend/internal/observability"
)

const (
	testAPIKey = "test-key"
	laLat      = 34.0522
	laLon      = -118.2437
)

var fixedNow = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

const openWeatherBody = `{
	"main": {"temp": 21.47, "humidity": 44, "pressure": 1013},
	"weather": [{"description": "few clouds", "icon": "02d"}],
	"wind": {"speed": 4.1, "deg": 250},
	"name": "Los Angeles"
}`

func newTestWeatherService(t *testing.T, apiKey, baseURL string) (*WeatherService, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetricsForTesting()
	svc := NewWeatherService(apiKey, 2*time.Second, metrics, observability.DiscardLogger(),
		WithBaseURL(baseURL),
		WithClock(clockwork.NewFakeClockAt(fixedNow)),
		WithRand(rand.New(rand.NewSource(42))),
	)
	return svc, metrics
}

func TestWeatherService_Live(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, testAPIKey, r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "34.0522", r.URL.Query().Get("lat"))
		assert.Equal(t, "-118.2437", r.URL.Query().Get("lon"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(openWeatherBody))
	}))
	defer srv.Close()

	svc, metrics := newTestWeatherService(t, testAPIKey, srv.URL)
	require.True(t, svc.Live())

	got, err := svc.GetWeather(context.Background(), laLat, laLon)
	require.NoError(t, err)

	assert.Equal(t, 21.5, got.Temperature)
	assert.Equal(t, 44, got.Humidity)
	assert.Equal(t, 14.8, got.WindSpeed) // 4.1 m/s
	assert.Equal(t, 250, got.WindDirection)
	assert.Equal(t, "few clouds", got.Description)
	assert.Equal(t, "02d", got.Icon)
	assert.Equal(t, 1013, got.Pressure)
	assert.Equal(t, "Los Angeles", got.Location)
	assert.Equal(t, fixedNow, got.Timestamp)
	assert.Equal(t, liveSource, got.Source)
	assert.False(t, got.IsMock)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WeatherRequests.WithLabelValues("live")))
}

func TestWeatherService_NoKeyUsesMock(t *testing.T) {
	for _, key := range []string{"", placeholderAPIKey} {
		svc, _ := newTestWeatherService(t, key, "http://127.0.0.1:0")
		assert.False(t, svc.Live())

		got, err := svc.GetWeather(context.Background(), laLat, laLon)
		require.NoError(t, err)
		assert.True(t, got.IsMock)
		assert.Equal(t, mockSource, got.Source)
	}
}

func TestWeatherService_MockRanges(t *testing.T) {
	svc, _ := newTestWeatherService(t, "", "")

	for i := 0; i < 200; i++ {
		got, err := svc.GetWeather(context.Background(), laLat, laLon)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, got.Temperature, 15.0)
		assert.LessOrEqual(t, got.Temperature, 30.0)
		assert.GreaterOrEqual(t, got.Humidity, 30)
		assert.LessOrEqual(t, got.Humidity, 70)
		assert.GreaterOrEqual(t, got.WindSpeed, 10.0)
		assert.LessOrEqual(t, got.WindSpeed, 25.0)
		assert.GreaterOrEqual(t, got.WindDirection, 0)
		assert.LessOrEqual(t, got.WindDirection, 360)
		assert.GreaterOrEqual(t, got.Pressure, 1000)
		assert.LessOrEqual(t, got.Pressure, 1020)
		assert.Equal(t, "clear sky", got.Description)
		assert.Equal(t, "Los Angeles", got.Location)
		assert.Equal(t, fixedNow, got.Timestamp)
	}
}

func TestWeatherService_FallbackOnNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	svc, metrics := newTestWeatherService(t, testAPIKey, srv.URL)

	got, err := svc.GetWeather(context.Background(), laLat, laLon)
	require.NoError(t, err)
	assert.True(t, got.IsMock)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WeatherRequests.WithLabelValues("fallback")))
}

func TestWeatherService_FallbackOnNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	svc, _ := newTestWeatherService(t, testAPIKey, url)

	got, err := svc.GetWeather(context.Background(), laLat, laLon)
	require.NoError(t, err)
	assert.True(t, got.IsMock)
}

func TestWeatherService_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	svc, metrics := newTestWeatherService(t, testAPIKey, srv.URL)

	got, err := svc.GetWeather(context.Background(), laLat, laLon)
	require.NoError(t, err)
	assert.True(t, got.IsMock)
	assert.Equal(t, laLat, got.Lat)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WeatherRequests.WithLabelValues("fallback")))
	assert.Zero(t, testutil.ToFloat64(metrics.WeatherRequests.WithLabelValues("live")))
}
