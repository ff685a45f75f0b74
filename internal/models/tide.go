package models

import "time"

// TideType represents whether a predicted tide is high or low
type TideType string

const (
	TideHigh TideType = "H"
	TideLow  TideType = "L"
)

// TideEvent represents a single high or low tide occurrence
type TideEvent struct {
	Time   time.Time
	Type   TideType
	Height float64 // feet relative to MLLW (Mean Lower Low Water)
}

// TideData contains tide predictions for a station, plus the current
// observed water level when the station has that sensor (many don't).
type TideData struct {
	StationID    string
	StationName  string
	Events       []TideEvent // Ordered by time
	WaterLevelFt *float64    // nil when the station lacks a water level sensor
	UpdatedAt    time.Time
}

// GetEventsForDay returns tide events for a specific date
func (td *TideData) GetEventsForDay(date time.Time) []TideEvent {
	var events []TideEvent
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	for _, event := range td.Events {
		if event.Time.After(startOfDay) && event.Time.Before(endOfDay) {
			events = append(events, event)
		}
	}
	return events
}

// NextEvent returns the first predicted event after t, or nil if none remain.
func (td *TideData) NextEvent(t time.Time) *TideEvent {
	for i := range td.Events {
		if td.Events[i].Time.After(t) {
			return &td.Events[i]
		}
	}
	return nil
}
