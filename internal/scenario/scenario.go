// Package scenario loads fire spread scenarios from YAML files.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/urbanfire/backend/internal/domain"
	"github.com/urbanfire/backend/internal/firemodel"
)

// Scenario is a named simulation setup. Optional values left out of the
// file take the simulation defaults.
type Scenario struct {
	Name            string           `yaml:"name"`
	Origin          *domain.GeoPoint `yaml:"origin"`
	WindSpeed       *float64         `yaml:"windSpeed"`
	BuildingDensity *float64         `yaml:"buildingDensity"`
	TimeSteps       *int             `yaml:"timeSteps"`
	TimeInterval    *float64         `yaml:"timeInterval"`
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a scenario document, rejecting unknown fields.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("scenario: parsing YAML: %w", err)
	}
	return &s, nil
}

// Parameters resolves the scenario against the simulation defaults.
func (s *Scenario) Parameters() (domain.SimulationParameters, error) {
	if s.Origin == nil {
		return domain.SimulationParameters{}, errors.New("scenario: origin is required")
	}

	p := domain.DefaultSimulationParameters(s.Origin.Lat, s.Origin.Lon)
	if s.WindSpeed != nil {
		p.WindSpeed = *s.WindSpeed
	}
	if s.BuildingDensity != nil {
		p.BuildingDensity = *s.BuildingDensity
	}
	if s.TimeSteps != nil {
		p.TimeSteps = *s.TimeSteps
	}
	if s.TimeInterval != nil {
		p.TimeInterval = *s.TimeInterval
	}
	return p, nil
}

// Validate reports every problem with the scenario rather than stopping at
// the first one.
func (s *Scenario) Validate() []error {
	var errs []error
	if s.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if s.Origin == nil {
		return append(errs, errors.New("origin is required"))
	}

	p, _ := s.Parameters()
	checks := []struct {
		ok  bool
		msg string
	}{
		{p.OriginLat >= -90 && p.OriginLat <= 90, fmt.Sprintf("origin.lat %v out of range [-90, 90]", p.OriginLat)},
		{p.OriginLon >= -180 && p.OriginLon <= 180, fmt.Sprintf("origin.lon %v out of range [-180, 180]", p.OriginLon)},
		{p.WindSpeed >= 0, fmt.Sprintf("windSpeed %v must not be negative", p.WindSpeed)},
		{p.BuildingDensity >= 0 && p.BuildingDensity <= 100, fmt.Sprintf("buildingDensity %v out of range [0, 100]", p.BuildingDensity)},
		{p.TimeSteps >= 1, fmt.Sprintf("timeSteps %d must be at least 1", p.TimeSteps)},
		{p.TimeInterval > 0, fmt.Sprintf("timeInterval %v must be positive", p.TimeInterval)},
	}
	for _, c := range checks {
		if !c.ok {
			errs = append(errs, errors.New(c.msg))
		}
	}
	if len(errs) == 0 {
		// Catches anything the field checks miss, such as non-finite values.
		if err := firemodel.Validate(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
