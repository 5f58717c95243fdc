package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/urbanfire/backend/internal/domain"
	"github.com/urbanfire/backend/internal/observability"
	"github.com/urbanfire/backend/pkg/utils"
)

const (
	// DefaultOpenWeatherURL is the current-conditions endpoint
	DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

	placeholderAPIKey = "YOUR_OPENWEATHER_KEY_HERE"
	liveSource        = "OpenWeatherMap API"
	mockSource        = "Mock Data (Add API key for real data)"
)

// WeatherProvider supplies current conditions for a coordinate
type WeatherProvider interface {
	GetWeather(ctx context.Context, lat, lon float64) (domain.Weather, error)
}

// WeatherService handles weather data fetching
type WeatherService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	clock      clockwork.Clock
	metrics    *observability.Metrics
	logger     *slog.Logger

	mu  sync.Mutex // guards rnd
	rnd *rand.Rand
}

// WeatherOption customizes a WeatherService
type WeatherOption func(*WeatherService)

// WithBaseURL points the service at a different OpenWeatherMap-compatible endpoint
func WithBaseURL(u string) WeatherOption {
	return func(s *WeatherService) { s.baseURL = u }
}

// WithClock sets the time source used for timestamps
func WithClock(c clockwork.Clock) WeatherOption {
	return func(s *WeatherService) { s.clock = c }
}

// WithRand sets the randomness used for mock conditions
func WithRand(r *rand.Rand) WeatherOption {
	return func(s *WeatherService) { s.rnd = r }
}

// NewWeatherService creates a new weather service. An empty or placeholder
// API key puts the service in mock mode.
func NewWeatherService(apiKey string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger, opts ...WeatherOption) *WeatherService {
	if apiKey == placeholderAPIKey {
		apiKey = ""
	}
	s := &WeatherService{
		apiKey:  apiKey,
		baseURL: DefaultOpenWeatherURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		clock:   clockwork.NewRealClock(),
		metrics: metrics,
		logger:  logger,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Live reports whether a real provider is configured
func (s *WeatherService) Live() bool {
	return s.apiKey != ""
}

// OpenWeatherResponse represents the OpenWeatherMap API response
type OpenWeatherResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
		Pressure int     `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"` // m/s
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Name string `json:"name"`
}

// GetWeather fetches current weather for a coordinate. Network failures,
// non-200 responses and undecodable bodies all fall back to mock data.
func (s *WeatherService) GetWeather(ctx context.Context, lat, lon float64) (domain.Weather, error) {
	if !s.Live() {
		return s.mockWeather(lat, lon), nil
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("appid", s.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return domain.Weather{}, fmt.Errorf("weather: failed to create request: %w", err)
	}

	start := s.clock.Now()
	resp, err := s.httpClient.Do(req)
	s.metrics.WeatherAPIDuration.Observe(s.clock.Since(start).Seconds())
	if err != nil {
		s.logger.Warn("weather api request failed, using mock data", "error", err)
		s.metrics.WeatherRequests.WithLabelValues("fallback").Inc()
		return s.mockWeather(lat, lon), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("weather api returned non-200, using mock data", "status", resp.StatusCode)
		s.metrics.WeatherRequests.WithLabelValues("fallback").Inc()
		return s.mockWeather(lat, lon), nil
	}

	var owResp OpenWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&owResp); err != nil {
		s.logger.Warn("weather api returned malformed body, using mock data", "error", err)
		s.metrics.WeatherRequests.WithLabelValues("fallback").Inc()
		return s.mockWeather(lat, lon), nil
	}
	s.metrics.WeatherRequests.WithLabelValues("live").Inc()

	weather := domain.Weather{
		Temperature:   utils.RoundTo(owResp.Main.Temp, 1),
		Humidity:      owResp.Main.Humidity,
		WindSpeed:     utils.RoundTo(owResp.Wind.Speed*3.6, 1),
		WindDirection: owResp.Wind.Deg,
		Pressure:      owResp.Main.Pressure,
		Location:      owResp.Name,
		Lat:           lat,
		Lon:           lon,
		Timestamp:     s.clock.Now(),
		Source:        liveSource,
		IsMock:        false,
	}

	if len(owResp.Weather) > 0 {
		weather.Description = owResp.Weather[0].Description
		weather.Icon = owResp.Weather[0].Icon
	}

	return weather, nil
}

// mockWeather returns plausible random conditions. Never use it where
// reproducibility matters.
func (s *WeatherService) mockWeather(lat, lon float64) domain.Weather {
	s.metrics.WeatherRequests.WithLabelValues("mock").Inc()

	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.Weather{
		Temperature:   utils.RoundTo(utils.Lerp(15, 30, s.rnd.Float64()), 1),
		Humidity:      30 + s.rnd.Intn(41),
		WindSpeed:     utils.RoundTo(utils.Lerp(10, 25, s.rnd.Float64()), 1),
		WindDirection: s.rnd.Intn(361),
		Description:   "clear sky",
		Icon:          "01d",
		Pressure:      1000 + s.rnd.Intn(21),
		Location:      "Los Angeles",
		Lat:           lat,
		Lon:           lon,
		Timestamp:     s.clock.Now(),
		Source:        mockSource,
		IsMock:        true,
	}
}
