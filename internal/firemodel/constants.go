package firemodel

// Street canyon wind amplification
const (
	CFDConstant           = 0.22
	DefaultBuildingHeight = 20.0 // m
	DefaultStreetWidth    = 15.0 // m
)

// Rothermel-style fuel constants for urban structures
const (
	FuelEnergy      = 3000.0
	PackingRatio    = 0.8
	WindCoefficient = 0.4
	WindExponent    = 0.02526
	FuelMoisture    = 0.035
	FuelDensity     = 780.0
	FuelDepth       = 2.0
)

// Geometry of the emitted perimeters
const (
	EarthRadius     = 6371000.0 // m, spherical
	PerimeterPoints = 16
	IntensityDecay  = 0.5
)

const kmhPerMs = 3.6
