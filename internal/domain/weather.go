package domain

import "time"

// Weather represents current conditions at a location
type Weather struct {
	Temperature   float64   `json:"temperature"` // Celsius
	Humidity      int       `json:"humidity"`
	WindSpeed     float64   `json:"windSpeed"`     // km/h
	WindDirection int       `json:"windDirection"` // degrees
	Description   string    `json:"description"`
	Icon          string    `json:"icon"`
	Pressure      int       `json:"pressure"` // hPa
	Location      string    `json:"location"`
	Lat           float64   `json:"lat"`
	Lon           float64   `json:"lon"`
	Timestamp     time.Time `json:"timestamp"`
	Source        string    `json:"source"`
	IsMock        bool      `json:"isMock"`
}

// WeatherResponse wraps weather data with metadata
type WeatherResponse struct {
	Data    Weather `json:"data"`
	Success bool    `json:"success"`
	Error   string  `json:"error,omitempty"`
}
