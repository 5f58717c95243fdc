package http

import (
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/urbanfire/backend/internal/service"
)

// Options configures the Fiber application
type Options struct {
	CORSOrigins string
	StaticDir   string    // served at / when set
	AccessLog   io.Writer // defaults to stdout
	LiveWeather bool
}

// NewApp builds the Fiber application with middleware and routes
func NewApp(fireSvc *service.FireService, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Urban Fire Prediction API",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: ErrorHandler,
	})

	accessLog := opts.AccessLog
	if accessLog == nil {
		accessLog = os.Stdout
	}
	origins := opts.CORSOrigins
	if origins == "" {
		origins = "*"
	}

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
		Output: accessLog,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	SetupRoutes(app, fireSvc, opts.LiveWeather)

	if opts.StaticDir != "" {
		app.Static("/", opts.StaticDir)
	}

	return app
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, fireSvc *service.FireService, liveWeather bool) {
	handler := NewHandler(fireSvc, liveWeather)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	{
		api.Get("/health", handler.HealthCheck)
		api.Get("/config", handler.GetConfig)

		api.Post("/simulate", handler.Simulate)

		api.Get("/weather", handler.GetWeather)
		api.Get("/weather/history", handler.GetWeatherHistory)
	}
}
