package domain

import (
	"context"
	"time"
)

// WeatherRepository defines the interface for weather observation persistence.
// The domain defines it; the postgres package implements it.
type WeatherRepository interface {
	// SaveWeather persists a single observation
	SaveWeather(ctx context.Context, data Weather) error

	// GetHistoricalWeather retrieves observations between from and to, newest first
	GetHistoricalWeather(ctx context.Context, from, to time.Time) ([]Weather, error)

	// Health checks database connectivity
	Health(ctx context.Context) error
}
