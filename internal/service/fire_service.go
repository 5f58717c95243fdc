package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/urbanfire/backend/internal/domain"
	"github.com/urbanfire/backend/internal/firemodel"
	"github.com/urbanfire/backend/internal/observability"
)

// FireService runs spread simulations and serves the weather that feeds them
type FireService struct {
	weather WeatherProvider
	repo    domain.WeatherRepository
	metrics *observability.Metrics
	logger  *slog.Logger

	wgBg sync.WaitGroup // tracks background saves for graceful shutdown
}

// NewFireService creates a new fire service
func NewFireService(
	weather WeatherProvider,
	repo domain.WeatherRepository,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *FireService {
	return &FireService{
		weather: weather,
		repo:    repo,
		metrics: metrics,
		logger:  logger,
	}
}

// WaitBackground blocks until all background save goroutines complete.
// Call during graceful shutdown to avoid dropped writes.
func (s *FireService) WaitBackground() {
	s.wgBg.Wait()
}

// Simulate runs the spread model. With useLiveWeather the wind speed is
// replaced by the current wind at the origin before the model runs.
func (s *FireService) Simulate(ctx context.Context, params domain.SimulationParameters, useLiveWeather bool) (domain.SimulationResult, error) {
	if useLiveWeather {
		w, err := s.GetWeather(ctx, params.OriginLat, params.OriginLon)
		if err != nil {
			s.metrics.Simulations.WithLabelValues("error").Inc()
			return domain.SimulationResult{}, fmt.Errorf("fire: live wind lookup failed: %w", err)
		}
		params.WindSpeed = w.WindSpeed
	}

	start := time.Now()
	result, err := firemodel.Simulate(params)
	s.metrics.SimulationDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		outcome := "error"
		if errors.Is(err, firemodel.ErrInvalidParameters) {
			outcome = "invalid"
		}
		s.metrics.Simulations.WithLabelValues(outcome).Inc()
		s.logger.Warn("simulation rejected", "error", err)
		return domain.SimulationResult{}, err
	}

	s.metrics.Simulations.WithLabelValues("success").Inc()
	s.metrics.SimulationSteps.Observe(float64(params.TimeSteps))
	s.logger.Debug("simulation complete",
		"lat", params.OriginLat,
		"lon", params.OriginLon,
		"spread_rate", result.Parameters.SpreadRate,
		"max_distance", result.Summary.MaxDistance,
	)
	return result, nil
}

// GetWeather returns current conditions and records live observations in
// the background.
func (s *FireService) GetWeather(ctx context.Context, lat, lon float64) (domain.Weather, error) {
	w, err := s.weather.GetWeather(ctx, lat, lon)
	if err != nil {
		return domain.Weather{}, err
	}
	if w.IsMock {
		return w, nil
	}

	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.SaveWeather(bgCtx, w); err != nil {
			s.logger.Error("failed to save weather observation", "error", err)
		}
	}()

	return w, nil
}

// WeatherHistory returns recorded observations within a time range
func (s *FireService) WeatherHistory(ctx context.Context, from, to time.Time) ([]domain.Weather, error) {
	return s.repo.GetHistoricalWeather(ctx, from, to)
}

// Health checks the backing store
func (s *FireService) Health(ctx context.Context) error {
	return s.repo.Health(ctx)
}
