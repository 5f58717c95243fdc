package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/urbanfire/backend/internal/config"
	"github.com/urbanfire/backend/internal/delivery/http"
	"github.com/urbanfire/backend/internal/observability"
	"github.com/urbanfire/backend/internal/repository/postgres"
	"github.com/urbanfire/backend/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// Weather observations are optional; without a database they stay in memory
	repo := newRepository(cfg, logger)

	// Dependency Injection: Services
	clock := clockwork.NewRealClock()
	weatherSvc := service.NewWeatherService(cfg.OpenWeatherAPIKey, cfg.WeatherTimeout, metrics, logger,
		service.WithBaseURL(cfg.OpenWeatherURL),
		service.WithClock(clock),
	)
	if weatherSvc.Live() {
		logger.Info("openweathermap enabled", "cache_ttl", cfg.WeatherCacheTTL, "cache_size", cfg.WeatherCacheSize)
	} else {
		logger.Info("openweathermap disabled, serving mock weather")
	}
	weather := service.NewCachedWeather(weatherSvc, cfg.WeatherCacheTTL, cfg.WeatherCacheSize, clock, metrics)
	fireSvc := service.NewFireService(weather, repo, metrics, logger)

	app := http.NewApp(fireSvc, http.Options{
		CORSOrigins: cfg.CORSOrigins,
		StaticDir:   cfg.StaticDir,
		LiveWeather: weatherSvc.Live(),
	})

	// Graceful shutdown
	go func() {
		logger.Info("server starting", "addr", cfg.Addr(), "env", cfg.Env)
		if err := app.Listen(cfg.Addr()); err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	fireSvc.WaitBackground()
	if closer, ok := repo.(interface{ Close() }); ok {
		closer.Close()
	}
	logger.Info("server exited gracefully")
}

func newRepository(cfg *config.Config, logger *slog.Logger) service.WeatherRepository {
	if cfg.DatabaseURL == "" {
		logger.Info("DATABASE_URL not set, keeping weather observations in memory")
		return postgres.NewMockRepository()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err == nil {
		err = pool.Ping(ctx)
	}
	if err != nil {
		logger.Warn("could not connect to database, keeping weather observations in memory", "error", err)
		if pool != nil {
			pool.Close()
		}
		return postgres.NewMockRepository()
	}

	repo := postgres.NewPostgresRepository(pool)
	if err := repo.Migrate(ctx); err != nil {
		logger.Warn("schema migration failed", "error", err)
	}
	logger.Info("connected to PostgreSQL")
	return repo
}
