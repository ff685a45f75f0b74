package models

import "time"

// Source tags identifying which upstream network contributed a measurement
// family to a SeaStateResult.
const (
	SourceNDBC  = "NDBC"
	SourceNWS   = "NWS"
	SourceCOOPS = "CO-OPS"
)

// SkipReason explains why a candidate station was passed over during
// resolution. Surfaced to the caller as diagnostic output, never swallowed.
type SkipReason string

const (
	SkipOffline    SkipReason = "offline"
	SkipNoWaveData SkipReason = "no wave data"
	SkipNoWindData SkipReason = "no wind data"
)

// SkippedStation records one candidate that was visited and rejected.
type SkippedStation struct {
	Candidate CandidateMatch
	Reason    SkipReason
}

// WaveReport is the wave family's contribution to a sea state result.
type WaveReport struct {
	Station      *Station // nil when the data came from the forecast grid
	DistanceKm   float64
	Observation  WaveData
	ObservedAt   time.Time
	Skipped      []SkippedStation
	Alternatives []CandidateMatch // farther candidates worth mentioning, never auto-selected
	GridFallback bool             // true when the ring search supplied the data
}

// WindReport is the wind family's contribution to a sea state result.
type WindReport struct {
	Station     *Station
	DistanceKm  float64
	Observation WindData
	ObservedAt  time.Time
	Skipped     []SkippedStation
	// Descriptive is the forecast's coarse wind text, set only when every
	// numeric tier failed (e.g. "10 to 15 kt becoming W").
	Descriptive string
	// Source is the network tag of whichever tier supplied the data.
	Source string
}

// TideReport is the tide family's contribution to a sea state result.
type TideReport struct {
	Station    Station
	DistanceKm float64
	Data       TideData
}

// SeaStateResult is the merged outcome of one resolution request. A nil
// family pointer means that family was unavailable; at least one is always
// non-nil (an all-nil outcome is reported as a total failure instead).
type SeaStateResult struct {
	Location Coordinate
	Waves    *WaveReport
	Wind     *WindReport
	Tides    *TideReport

	// Sources lists contributing networks in the order they first
	// succeeded, without duplicates.
	Sources []string

	ResolvedAt time.Time
}

// AddSource appends tag to Sources unless already present.
func (r *SeaStateResult) AddSource(tag string) {
	for _, s := range r.Sources {
		if s == tag {
			return
		}
	}
	r.Sources = append(r.Sources, tag)
}
