package models

import "fmt"

// Station is an upstream observation station. IDs are scoped to the network
// that published them (NDBC buoy IDs and CO-OPS tide station IDs overlap in
// format but never refer to the same sensor).
type Station struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CandidateMatch pairs a station with its distance from a query point.
// Computed at query time, never stored.
type CandidateMatch struct {
	Station    Station
	DistanceKm float64
}

func (c CandidateMatch) String() string {
	name := c.Station.Name
	if name == "" {
		name = c.Station.ID
	}
	return fmt.Sprintf("%s (%.1f km)", name, c.DistanceKm)
}

// Coordinate is a WGS84 point in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f, %.4f", c.Latitude, c.Longitude)
}
