package http

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/urbanfire/backend/internal/domain"
	"github.com/urbanfire/backend/internal/firemodel"
	"github.com/urbanfire/backend/internal/service"
	"github.com/urbanfire/backend/pkg/utils"
)

var errNonFinite = errors.New("value must be finite")

// Handler contains all HTTP handlers
type Handler struct {
	fireSvc     *service.FireService
	liveWeather bool
}

// NewHandler creates a new handler
func NewHandler(fireSvc *service.FireService, liveWeather bool) *Handler {
	return &Handler{
		fireSvc:     fireSvc,
		liveWeather: liveWeather,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	database := "ok"
	if err := h.fireSvc.Health(c.UserContext()); err != nil {
		database = "unavailable"
	}

	return c.JSON(fiber.Map{
		"status":   "healthy",
		"service":  "Urban Fire Prediction API",
		"database": database,
	})
}

// Simulate runs a fire spread simulation from the posted origin
func (h *Handler) Simulate(c *fiber.Ctx) error {
	var req domain.SimulationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	params, ok := req.Parameters()
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Missing lat or lon")
	}
	if params.TimeSteps > domain.MaxTimeSteps {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("timeSteps must be at most %d", domain.MaxTimeSteps))
	}
	if params.TimeInterval > domain.MaxTimeInterval {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("timeInterval must be at most %g minutes", domain.MaxTimeInterval))
	}

	result, err := h.fireSvc.Simulate(c.UserContext(), params, req.UseLiveWeather)
	if err != nil {
		if errors.Is(err, firemodel.ErrInvalidParameters) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(domain.SimulationResponse{
		Data:    &result,
		Success: true,
	})
}

// GetWeather returns current weather for the lat/lon query, defaulting to
// the map's home location
func (h *Handler) GetWeather(c *fiber.Ctx) error {
	lat, err := queryFloat(c, "lat", domain.DefaultLocationLat)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lat")
	}
	lon, err := queryFloat(c, "lon", domain.DefaultLocationLon)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lon")
	}

	weather, err := h.fireSvc.GetWeather(c.UserContext(), lat, lon)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch weather data")
	}

	return c.JSON(domain.WeatherResponse{
		Data:    weather,
		Success: true,
	})
}

// GetWeatherHistory returns recorded observations within the last hours
func (h *Handler) GetWeatherHistory(c *fiber.Ctx) error {
	hours := c.QueryInt("hours", 24)
	if hours < 1 || hours > 720 { // max 30 days
		hours = 24
	}

	to := time.Now()
	from := to.Add(-time.Duration(hours) * time.Hour)

	data, err := h.fireSvc.WeatherHistory(c.UserContext(), from, to)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch weather history")
	}
	if data == nil {
		data = []domain.Weather{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

// GetConfig returns the defaults the map frontend starts from
func (h *Handler) GetConfig(c *fiber.Ctx) error {
	var cfg domain.ClientConfig
	cfg.DefaultLocation.Latitude = domain.DefaultLocationLat
	cfg.DefaultLocation.Longitude = domain.DefaultLocationLon
	cfg.DefaultLocation.Zoom = domain.DefaultLocationZoom
	cfg.Simulation.WindSpeed = domain.DefaultWindSpeed
	cfg.Simulation.BuildingDensity = domain.DefaultBuildingDensity
	cfg.Simulation.TimeSteps = domain.DefaultTimeSteps
	cfg.Simulation.TimeInterval = domain.DefaultTimeInterval
	cfg.LiveWeather = h.liveWeather

	return c.JSON(cfg)
}

func queryFloat(c *fiber.Ctx, key string, defaultValue float64) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if !utils.IsFinite(v) {
		return 0, errNonFinite
	}
	return v, nil
}

// ErrorHandler renders every error as the {success:false, error} envelope
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
