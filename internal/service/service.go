package service

import (
	"github.com/urbanfire/backend/internal/domain"
)

// WeatherRepository is re-exported from domain for convenience
type WeatherRepository = domain.WeatherRepository
