package domain

// Simulation defaults applied when a request omits a parameter
const (
	DefaultWindSpeed       = 15.0
	DefaultBuildingDensity = 40.0
	DefaultTimeSteps       = 10
	DefaultTimeInterval    = 5.0
)

// Upper bounds accepted from API clients
const (
	MaxTimeSteps    = 1000
	MaxTimeInterval = 1440.0 // one day
)

// Default map location (downtown Los Angeles)
const (
	DefaultLocationLat  = 34.0522
	DefaultLocationLon  = -118.2437
	DefaultLocationZoom = 13
)

// GeoPoint is a latitude/longitude pair in degrees
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// SimulationParameters are the inputs of a single spread simulation
type SimulationParameters struct {
	OriginLat       float64 `json:"lat"`
	OriginLon       float64 `json:"lon"`
	WindSpeed       float64 `json:"windSpeed"`       // km/h
	BuildingDensity float64 `json:"buildingDensity"` // percent
	TimeSteps       int     `json:"timeSteps"`
	TimeInterval    float64 `json:"timeInterval"` // minutes per step
}

// DefaultSimulationParameters returns parameters for the given origin with
// every optional value set to its default.
func DefaultSimulationParameters(lat, lon float64) SimulationParameters {
	return SimulationParameters{
		OriginLat:       lat,
		OriginLon:       lon,
		WindSpeed:       DefaultWindSpeed,
		BuildingDensity: DefaultBuildingDensity,
		TimeSteps:       DefaultTimeSteps,
		TimeInterval:    DefaultTimeInterval,
	}
}

// FireZone is the fire front at one time step
type FireZone struct {
	Step      int        `json:"step"`
	Time      float64    `json:"time"`      // minutes since ignition
	Distance  float64    `json:"distance"`  // meters from origin
	Intensity float64    `json:"intensity"` // 1.0 at ignition, 0.5 at the last step
	Perimeter []GeoPoint `json:"perimeter"`
}

// ResultParameters echoes the inputs together with the derived rates
type ResultParameters struct {
	BaseWind        float64 `json:"baseWind"`
	UrbanWind       float64 `json:"urbanWind"`
	SpreadRate      float64 `json:"spreadRate"` // m/min
	BuildingDensity float64 `json:"buildingDensity"`
	TimeSteps       int     `json:"timeSteps"`
	TimeInterval    float64 `json:"timeInterval"`
}

// Summary aggregates the final state of a simulation
type Summary struct {
	TotalTime    float64 `json:"totalTime"`    // minutes
	MaxDistance  float64 `json:"maxDistance"`  // meters
	AffectedArea float64 `json:"affectedArea"` // square meters
}

// SimulationResult is the full output of a spread simulation
type SimulationResult struct {
	Origin     GeoPoint         `json:"origin"`
	Parameters ResultParameters `json:"parameters"`
	Zones      []FireZone       `json:"zones"`
	Summary    Summary          `json:"summary"`
}

// SimulationRequest is the wire form of POST /api/simulate.
// Pointers distinguish omitted fields from explicit zeros.
type SimulationRequest struct {
	Lat             *float64 `json:"lat"`
	Lon             *float64 `json:"lon"`
	WindSpeed       *float64 `json:"windSpeed,omitempty"`
	BuildingDensity *float64 `json:"buildingDensity,omitempty"`
	TimeSteps       *int     `json:"timeSteps,omitempty"`
	TimeInterval    *float64 `json:"timeInterval,omitempty"`
	UseLiveWeather  bool     `json:"useLiveWeather,omitempty"`
}

// Parameters resolves the request against the defaults. The second return
// value is false when the origin is missing.
func (r SimulationRequest) Parameters() (SimulationParameters, bool) {
	if r.Lat == nil || r.Lon == nil {
		return SimulationParameters{}, false
	}

	params := DefaultSimulationParameters(*r.Lat, *r.Lon)
	if r.WindSpeed != nil {
		params.WindSpeed = *r.WindSpeed
	}
	if r.BuildingDensity != nil {
		params.BuildingDensity = *r.BuildingDensity
	}
	if r.TimeSteps != nil {
		params.TimeSteps = *r.TimeSteps
	}
	if r.TimeInterval != nil {
		params.TimeInterval = *r.TimeInterval
	}
	return params, true
}

// SimulationResponse wraps a simulation result with metadata
type SimulationResponse struct {
	Data    *SimulationResult `json:"data,omitempty"`
	Success bool              `json:"success"`
	Error   string            `json:"error,omitempty"`
}

// ClientConfig is served to the map frontend on startup
type ClientConfig struct {
	DefaultLocation struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Zoom      int     `json:"zoom"`
	} `json:"defaultLocation"`
	Simulation struct {
		WindSpeed       float64 `json:"windSpeed"`
		BuildingDensity float64 `json:"buildingDensity"`
		TimeSteps       int     `json:"timeSteps"`
		TimeInterval    float64 `json:"timeInterval"`
	} `json:"simulation"`
	LiveWeather bool `json:"liveWeather"`
}
