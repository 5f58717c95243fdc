package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/urbanfire/backend/internal/domain"
	"github.com/urbanfire/backend/internal/observability"
)

// CachedWeather wraps a WeatherProvider with a TTL cache keyed on the
// coordinate rounded to four decimals (about 11 m).
type CachedWeather struct {
	inner      WeatherProvider
	ttl        time.Duration
	maxEntries int
	clock      clockwork.Clock
	metrics    *observability.Metrics

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	weather   domain.Weather
	expiresAt time.Time
}

// NewCachedWeather creates a cache decorator around a weather provider.
func NewCachedWeather(inner WeatherProvider, ttl time.Duration, maxEntries int, clock clockwork.Clock, metrics *observability.Metrics) *CachedWeather {
	return &CachedWeather{
		inner:      inner,
		ttl:        ttl,
		maxEntries: maxEntries,
		clock:      clock,
		metrics:    metrics,
		entries:    make(map[string]cacheEntry),
	}
}

func (c *CachedWeather) GetWeather(ctx context.Context, lat, lon float64) (domain.Weather, error) {
	key := fmt.Sprintf("%.4f,%.4f", lat, lon)
	now := c.clock.Now()

	c.mu.Lock()
	e, ok := c.entries[key]
	c.mu.Unlock()
	if ok && now.Before(e.expiresAt) {
		c.metrics.WeatherCache.WithLabelValues("hit").Inc()
		return e.weather, nil
	}
	c.metrics.WeatherCache.WithLabelValues("miss").Inc()

	weather, err := c.inner.GetWeather(ctx, lat, lon)
	if err != nil {
		return weather, err
	}
	// Mock values are random; caching them would pin one sample.
	if weather.IsMock {
		return weather, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.maxEntries {
		c.evict(now)
	}
	c.entries[key] = cacheEntry{weather: weather, expiresAt: now.Add(c.ttl)}
	return weather, nil
}

// evict drops expired entries, and the entry closest to expiry if the
// cache is still full. Caller holds mu.
func (c *CachedWeather) evict(now time.Time) {
	var oldestKey string
	var oldest time.Time
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
			continue
		}
		if oldestKey == "" || e.expiresAt.Before(oldest) {
			oldestKey, oldest = k, e.expiresAt
		}
	}
	if len(c.entries) >= c.maxEntries && oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// Len returns the number of cached entries, expired or not.
func (c *CachedWeather) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
