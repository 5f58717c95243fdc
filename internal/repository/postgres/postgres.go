package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/urbanfire/backend/internal/domain"
)

// Schema creates the observation table if it does not exist
const Schema = `
	CREATE TABLE IF NOT EXISTS weather_observations (
		id             BIGSERIAL PRIMARY KEY,
		lat            DOUBLE PRECISION NOT NULL,
		lon            DOUBLE PRECISION NOT NULL,
		temperature    DOUBLE PRECISION NOT NULL,
		humidity       INTEGER NOT NULL,
		wind_speed     DOUBLE PRECISION NOT NULL,
		wind_direction INTEGER NOT NULL,
		description    TEXT NOT NULL,
		icon           TEXT NOT NULL,
		pressure       INTEGER NOT NULL,
		location       TEXT NOT NULL,
		source         TEXT NOT NULL,
		observed_at    TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS weather_observations_observed_at_idx
		ON weather_observations (observed_at DESC);
`

// PostgresRepository implements domain.WeatherRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Migrate applies Schema
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("postgres: failed to apply schema: %w", err)
	}
	return nil
}

// SaveWeather persists a weather observation to PostgreSQL
func (r *PostgresRepository) SaveWeather(ctx context.Context, data domain.Weather) error {
	query := `
		INSERT INTO weather_observations (
			lat, lon, temperature, humidity, wind_speed, wind_direction,
			description, icon, pressure, location, source, observed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		data.Lat, data.Lon, data.Temperature, data.Humidity, data.WindSpeed, data.WindDirection,
		data.Description, data.Icon, data.Pressure, data.Location, data.Source, data.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save weather observation: %w", err)
	}

	return nil
}

// GetHistoricalWeather retrieves weather history from PostgreSQL
func (r *PostgresRepository) GetHistoricalWeather(ctx context.Context, from, to time.Time) ([]domain.Weather, error) {
	query := `
		SELECT lat, lon, temperature, humidity, wind_speed, wind_direction,
			   description, icon, pressure, location, source, observed_at
		FROM weather_observations
		WHERE observed_at BETWEEN $1 AND $2
		ORDER BY observed_at DESC
		LIMIT 100
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query weather observations: %w", err)
	}
	defer rows.Close()

	var results []domain.Weather
	for rows.Next() {
		var w domain.Weather
		err := rows.Scan(
			&w.Lat, &w.Lon, &w.Temperature, &w.Humidity, &w.WindSpeed, &w.WindDirection,
			&w.Description, &w.Icon, &w.Pressure, &w.Location, &w.Source, &w.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan weather row: %w", err)
		}
		results = append(results, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read weather rows: %w", err)
	}

	return results, nil
}

// Close releases the connection pool
func (r *PostgresRepository) Close() {
	r.pool.Close()
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
