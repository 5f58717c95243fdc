package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpdelivery "github.com/urbanfire/backend/internal/delivery/http"
	"github.com/urbanfire/backend/internal/domain"
	"github.com/urbanfire/backend/internal/observability"
	"github.com/urbanfire/backend/internal/repository/postgres"
	"github.com/urbanfire/backend/internal/service"
)

type fixedWeather struct {
	weather domain.Weather
}

func (f fixedWeather) GetWeather(_ context.Context, lat, lon float64) (domain.Weather, error) {
	w := f.weather
	w.Lat, w.Lon = lat, lon
	return w, nil
}

func newTestApp(t *testing.T, weather service.WeatherProvider) (*fiber.App, *service.FireService) {
	t.Helper()
	svc := service.NewFireService(
		weather,
		postgres.NewMockRepository(),
		observability.NewMetricsForTesting(),
		observability.DiscardLogger(),
	)
	app := httpdelivery.NewApp(svc, httpdelivery.Options{AccessLog: io.Discard})
	return app, svc
}

func liveWeather() fixedWeather {
	return fixedWeather{weather: domain.Weather{
		Temperature: 24.3,
		WindSpeed:   25,
		Location:    "Los Angeles",
		Timestamp:   time.Now(),
		Source:      "OpenWeatherMap API",
	}}
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestHealthCheck(t *testing.T) {
	app, _ := newTestApp(t, liveWeather())

	code, body := doJSON(t, app, http.MethodGet, "/api/health", "")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "Urban Fire Prediction API", body["service"])
	assert.Equal(t, "ok", body["database"])
}

func TestSimulate_Defaults(t *testing.T) {
	app, _ := newTestApp(t, liveWeather())

	req := httptest.NewRequest(http.MethodPost, "/api/simulate", strings.NewReader(`{"lat": 34.0522, "lon": -118.2437}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got domain.SimulationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.True(t, got.Success)
	require.NotNil(t, got.Data)

	assert.Equal(t, domain.ResultParameters{
		BaseWind:        15,
		UrbanWind:       19.4,
		SpreadRate:      37.382,
		BuildingDensity: 40,
		TimeSteps:       10,
		TimeInterval:    5,
	}, got.Data.Parameters)
	require.Len(t, got.Data.Zones, 10)
	assert.Len(t, got.Data.Zones[0].Perimeter, 16)
	assert.Equal(t, 50.0, got.Data.Summary.TotalTime)
	assert.Equal(t, 1869.1, got.Data.Summary.MaxDistance)
}

func TestSimulate_WireFieldNames(t *testing.T) {
	app, _ := newTestApp(t, liveWeather())

	code, body := doJSON(t, app, http.MethodPost, "/api/simulate",
		`{"lat": 34.0522, "lon": -118.2437, "windSpeed": 20, "buildingDensity": 30, "timeSteps": 3}`)
	require.Equal(t, http.StatusOK, code)

	data := body["data"].(map[string]any)
	assert.Contains(t, data, "origin")
	assert.Contains(t, data, "summary")

	params := data["parameters"].(map[string]any)
	for _, key := range []string{"baseWind", "urbanWind", "spreadRate", "buildingDensity", "timeSteps", "timeInterval"} {
		assert.Contains(t, params, key)
	}
	assert.Equal(t, 20.0, params["baseWind"])

	zones := data["zones"].([]any)
	require.Len(t, zones, 3)
	zone := zones[2].(map[string]any)
	for _, key := range []string{"step", "time", "distance", "intensity", "perimeter"} {
		assert.Contains(t, zone, key)
	}
	assert.Equal(t, 0.5, zone["intensity"])

	summary := data["summary"].(map[string]any)
	for _, key := range []string{"totalTime", "maxDistance", "affectedArea"} {
		assert.Contains(t, summary, key)
	}
}

func TestSimulate_LiveWeather(t *testing.T) {
	app, _ := newTestApp(t, liveWeather())

	code, body := doJSON(t, app, http.MethodPost, "/api/simulate",
		`{"lat": 34.0522, "lon": -118.2437, "windSpeed": 5, "useLiveWeather": true}`)
	require.Equal(t, http.StatusOK, code)

	params := body["data"].(map[string]any)["parameters"].(map[string]any)
	assert.Equal(t, 25.0, params["baseWind"])
	assert.Equal(t, 32.33, params["urbanWind"])
}

func TestSimulate_MissingCoordinates(t *testing.T) {
	app, _ := newTestApp(t, liveWeather())

	for _, body := range []string{`{"lon": -118.2437}`, `{"lat": 34.0522}`, `{}`} {
		code, resp := doJSON(t, app, http.MethodPost, "/api/simulate", body)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "Missing lat or lon", resp["error"])
	}
}

func TestSimulate_InvalidBody(t *testing.T) {
	app, _ := newTestApp(t, liveWeather())

	code, resp := doJSON(t, app, http.MethodPost, "/api/simulate", `{"lat": "north"`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid request body", resp["error"])
}

func TestSimulate_InvalidParameters(t *testing.T) {
	app, _ := newTestApp(t, liveWeather())

	code, resp := doJSON(t, app, http.MethodPost, "/api/simulate", `{"lat": 34.0522, "lon": -118.2437, "timeSteps": 0}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, resp["success"])
	assert.Contains(t, resp["error"], "time steps")
}

func TestSimulate_WorkBounds(t *testing.T) {
	app, _ := newTestApp(t, liveWeather())

	tests := []struct {
		name string
		body string
		want string
	}{
		{"too many steps", `{"lat": 0, "lon": 0, "timeSteps": 100000000}`, "timeSteps must be at most 1000"},
		{"interval too long", `{"lat": 0, "lon": 0, "timeInterval": 1e9}`, "timeInterval must be at most 1440 minutes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := doJSON(t, app, http.MethodPost, "/api/simulate", tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, false, resp["success"])
			assert.Equal(t, tt.want, resp["error"])
		})
	}

	code, resp := doJSON(t, app, http.MethodPost, "/api/simulate",
		`{"lat": 0, "lon": 0, "timeSteps": 1000, "timeInterval": 1440}`)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, resp["data"].(map[string]any)["zones"], 1000)
}

func TestGetWeather(t *testing.T) {
	app, svc := newTestApp(t, liveWeather())

	code, body := doJSON(t, app, http.MethodGet, "/api/weather?lat=40.7128&lon=-74.006", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	assert.Equal(t, 25.0, data["windSpeed"])
	assert.Equal(t, 40.7128, data["lat"])
	assert.Equal(t, -74.006, data["lon"])

	svc.WaitBackground()
	code, body = doJSON(t, app, http.MethodGet, "/api/weather/history?hours=1", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1.0, body["count"])
}

func TestGetWeather_DefaultLocation(t *testing.T) {
	app, _ := newTestApp(t, liveWeather())

	code, body := doJSON(t, app, http.MethodGet, "/api/weather", "")
	require.Equal(t, http.StatusOK, code)

	data := body["data"].(map[string]any)
	assert.Equal(t, domain.DefaultLocationLat, data["lat"])
	assert.Equal(t, domain.DefaultLocationLon, data["lon"])
}

func TestGetWeather_InvalidCoordinate(t *testing.T) {
	app, _ := newTestApp(t, liveWeather())

	tests := []struct {
		query string
		want  string
	}{
		{"lat=abc", "Invalid lat"},
		{"lat=NaN", "Invalid lat"},
		{"lat=34&lon=Inf", "Invalid lon"},
		{"lat=-Inf&lon=0", "Invalid lat"},
	}
	for _, tt := range tests {
		code, body := doJSON(t, app, http.MethodGet, "/api/weather?"+tt.query, "")
		assert.Equal(t, http.StatusBadRequest, code, tt.query)
		assert.Equal(t, tt.want, body["error"], tt.query)
	}
}

func TestGetWeatherHistory_Empty(t *testing.T) {
	app, _ := newTestApp(t, liveWeather())

	code, body := doJSON(t, app, http.MethodGet, "/api/weather/history", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0.0, body["count"])
	assert.Equal(t, []any{}, body["data"])
}

func TestGetConfig(t *testing.T) {
	app, _ := newTestApp(t, liveWeather())

	code, body := doJSON(t, app, http.MethodGet, "/api/config", "")
	require.Equal(t, http.StatusOK, code)

	sim := body["simulation"].(map[string]any)
	assert.Equal(t, 15.0, sim["windSpeed"])
	assert.Equal(t, 40.0, sim["buildingDensity"])
	assert.Equal(t, 10.0, sim["timeSteps"])
	assert.Equal(t, 5.0, sim["timeInterval"])

	loc := body["defaultLocation"].(map[string]any)
	assert.Equal(t, 34.0522, loc["latitude"])
	assert.Equal(t, false, body["liveWeather"])
}

func TestMetricsEndpoint(t *testing.T) {
	app, _ := newTestApp(t, liveWeather())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "go_goroutines")
}

func TestUnknownRoute(t *testing.T) {
	app, _ := newTestApp(t, liveWeather())

	code, body := doJSON(t, app, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, false, body["success"])
}
