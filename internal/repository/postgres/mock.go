package postgres

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/urbanfire/backend/internal/domain"
)

const historyLimit = 100

// MockRepository implements domain.WeatherRepository in memory for
// demo mode and tests
type MockRepository struct {
	mu           sync.RWMutex
	observations []domain.Weather
}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

// SaveWeather keeps the observation in memory
func (r *MockRepository) SaveWeather(ctx context.Context, data domain.Weather) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observations = append(r.observations, data)
	return nil
}

// GetHistoricalWeather mirrors the SQL query: inclusive range, newest
// first, at most 100 rows
func (r *MockRepository) GetHistoricalWeather(ctx context.Context, from, to time.Time) ([]domain.Weather, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []domain.Weather
	for _, w := range r.observations {
		if w.Timestamp.Before(from) || w.Timestamp.After(to) {
			continue
		}
		results = append(results, w)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Timestamp.After(results[j].Timestamp)
	})
	if len(results) > historyLimit {
		results = results[:historyLimit]
	}
	return results, nil
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}
