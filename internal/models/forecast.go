package models

import "time"

// GridPoint identifies a cell in the NWS forecast grid.
type GridPoint struct {
	GridID string
	GridX  int
	GridY  int
}

// ForecastPeriod is one named period from the textual forecast, kept for
// display and for the wind family's descriptive last-resort fallback.
type ForecastPeriod struct {
	Name          string
	StartTime     time.Time
	Temperature   float64 // Fahrenheit
	WindSpeed     string  // descriptive, e.g. "10 to 15 mph"
	WindDirection string  // descriptive, e.g. "NW"
	ShortForecast string
	DetailedText  string
}
