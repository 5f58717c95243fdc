package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	Port            string
	Env             string
	DatabaseURL     string
	StaticDir       string
	CORSOrigins     string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// OpenWeatherMap settings. An empty key runs the weather endpoint on mock data.
	OpenWeatherAPIKey string
	OpenWeatherURL    string
	WeatherTimeout    time.Duration
	WeatherCacheTTL   time.Duration
	WeatherCacheSize  int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	weatherTimeout, err := parseDuration("WEATHER_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	cacheTTL, err := parseDuration("WEATHER_CACHE_TTL", "10m")
	if err != nil {
		return nil, err
	}
	cacheSize, err := parsePositiveInt("WEATHER_CACHE_SIZE", 256)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:            getEnv("PORT", "5001"),
		Env:             getEnv("GO_ENV", "development"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		StaticDir:       getEnv("STATIC_DIR", "./frontend"),
		CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		OpenWeatherAPIKey: getEnv("OPENWEATHER_API_KEY", ""),
		OpenWeatherURL:    getEnv("OPENWEATHER_URL", "https://api.openweathermap.org/data/2.5/weather"),
		WeatherTimeout:    weatherTimeout,
		WeatherCacheTTL:   cacheTTL,
		WeatherCacheSize:  cacheSize,
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, errors.New("invalid PORT")
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(key, defaultValue string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, defaultValue))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, defaultValue int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}
