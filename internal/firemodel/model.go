// Package firemodel estimates the radial spread of an urban fire.
//
// The model is a handful of closed-form expressions: street canyon wind
// amplification feeds a Rothermel-style spread rate, and the rate is
// projected outward from the origin as a 16-point great-circle perimeter
// per time step. Every function is pure and safe for concurrent use.
package firemodel

import (
	"errors"
	"fmt"
	"math"

	"github.com/urbanfire/backend/internal/domain"
	"github.com/urbanfire/backend/pkg/utils"
)

// ErrInvalidParameters is wrapped by every error Simulate returns.
var ErrInvalidParameters = errors.New("firemodel: invalid parameters")

// Evaluated in float64 at run time rather than as exact constants so the
// conversions round the same way as the conventional radians/degrees helpers.
var (
	pi       = math.Pi
	degToRad = pi / 180
	radToDeg = 180 / pi
)

// UrbanWind returns the wind speed in km/h inside a street canyon of the
// default geometry.
func UrbanWind(baseWindSpeed float64) float64 {
	return CanyonWind(baseWindSpeed, DefaultBuildingHeight, DefaultStreetWidth)
}

// CanyonWind amplifies a base wind speed by the canyon aspect ratio
// buildingHeight/streetWidth. streetWidth must be non-zero.
func CanyonWind(baseWindSpeed, buildingHeight, streetWidth float64) float64 {
	aspectRatio := buildingHeight / streetWidth
	urbanWind := baseWindSpeed * (1 + CFDConstant*aspectRatio)
	return utils.RoundTo(urbanWind, 2)
}

// SpreadRate returns the fire front speed in m/min for a wind speed in km/h
// and a building density in percent.
func SpreadRate(windSpeed, buildingDensity float64) float64 {
	windMs := windSpeed / kmhPerMs

	energy, packing, coefficient := FuelEnergy, PackingRatio, WindCoefficient
	moisture, depth, density := FuelMoisture, FuelDepth, FuelDensity

	numerator := energy * packing * (1 + coefficient*math.Pow(windMs, WindExponent))
	denominator := moisture * depth * density

	densityFactor := 1 - buildingDensity/100
	spreadRate := (numerator / denominator) * densityFactor
	return utils.RoundTo(spreadRate, 3)
}

// Destination returns the point reached by travelling distance meters from
// (lat, lon) on the given bearing (degrees clockwise from north) along a
// great circle.
func Destination(lat, lon, bearing, distance float64) (float64, float64) {
	lat1 := lat * degToRad
	lon1 := lon * degToRad
	theta := bearing * degToRad
	delta := distance / EarthRadius

	lat2 := math.Asin(
		math.Sin(lat1)*math.Cos(delta) +
			math.Cos(lat1)*math.Sin(delta)*math.Cos(theta),
	)

	lon2 := lon1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(lat1),
		math.Cos(delta)-math.Sin(lat1)*math.Sin(lat2),
	)

	return lat2 * radToDeg, lon2 * radToDeg
}

// Perimeter returns PerimeterPoints points at evenly spaced bearings,
// starting due north and proceeding clockwise.
func Perimeter(lat, lon, distance float64) []domain.GeoPoint {
	points := make([]domain.GeoPoint, 0, PerimeterPoints)
	for i := 0; i < PerimeterPoints; i++ {
		bearing := (360.0 / PerimeterPoints) * float64(i)
		pLat, pLon := Destination(lat, lon, bearing, distance)
		points = append(points, domain.GeoPoint{Lat: pLat, Lon: pLon})
	}
	return points
}

// Validate reports the first parameter outside the domain of the model.
func Validate(p domain.SimulationParameters) error {
	switch {
	case !utils.IsFinite(p.OriginLat, p.OriginLon, p.WindSpeed, p.BuildingDensity, p.TimeInterval):
		return fmt.Errorf("%w: parameters must be finite numbers", ErrInvalidParameters)
	case p.OriginLat < -90 || p.OriginLat > 90:
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidParameters, p.OriginLat)
	case p.OriginLon < -180 || p.OriginLon > 180:
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidParameters, p.OriginLon)
	case p.WindSpeed < 0:
		return fmt.Errorf("%w: wind speed %v must not be negative", ErrInvalidParameters, p.WindSpeed)
	case p.BuildingDensity < 0 || p.BuildingDensity > 100:
		return fmt.Errorf("%w: building density %v out of range [0, 100]", ErrInvalidParameters, p.BuildingDensity)
	case p.TimeSteps < 1:
		return fmt.Errorf("%w: time steps %d must be at least 1", ErrInvalidParameters, p.TimeSteps)
	case p.TimeInterval <= 0:
		return fmt.Errorf("%w: time interval %v must be positive", ErrInvalidParameters, p.TimeInterval)
	}
	return nil
}

// Simulate runs the spread model. The spread rate is derived from the
// urban-adjusted wind only; the base wind is echoed in the result but
// takes no further part in the computation.
func Simulate(p domain.SimulationParameters) (domain.SimulationResult, error) {
	if err := Validate(p); err != nil {
		return domain.SimulationResult{}, err
	}

	urbanWind := UrbanWind(p.WindSpeed)
	spreadRate := SpreadRate(urbanWind, p.BuildingDensity)

	zones := make([]domain.FireZone, 0, p.TimeSteps)
	for step := 1; step <= p.TimeSteps; step++ {
		distance := spreadRate * p.TimeInterval * float64(step)
		intensity := utils.Lerp(1.0, IntensityDecay, float64(step)/float64(p.TimeSteps))

		zones = append(zones, domain.FireZone{
			Step:      step,
			Time:      float64(step) * p.TimeInterval,
			Distance:  utils.RoundTo(distance, 2),
			Intensity: utils.RoundTo(intensity, 3),
			Perimeter: Perimeter(p.OriginLat, p.OriginLon, distance),
		})
	}

	maxDistance := spreadRate * p.TimeInterval * float64(p.TimeSteps)

	return domain.SimulationResult{
		Origin: domain.GeoPoint{Lat: p.OriginLat, Lon: p.OriginLon},
		Parameters: domain.ResultParameters{
			BaseWind:        p.WindSpeed,
			UrbanWind:       urbanWind,
			SpreadRate:      spreadRate,
			BuildingDensity: p.BuildingDensity,
			TimeSteps:       p.TimeSteps,
			TimeInterval:    p.TimeInterval,
		},
		Zones: zones,
		Summary: domain.Summary{
			TotalTime:    float64(p.TimeSteps) * p.TimeInterval,
			MaxDistance:  utils.RoundTo(maxDistance, 2),
			AffectedArea: utils.RoundTo(math.Pi*(maxDistance*maxDistance), 2),
		},
	}, nil
}
