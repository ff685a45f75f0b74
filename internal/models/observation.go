package models

import "time"

// Observation is a single normalized reading from a station. Every leaf is a
// pointer: nil means the station did not report that field (sentinel or
// missing column), which is not the same thing as zero.
type Observation struct {
	StationID string    `json:"station_id"`
	Timestamp time.Time `json:"timestamp"` // UTC

	Waves      WaveData       `json:"waves"`
	Wind       WindData       `json:"wind"`
	Atmosphere AtmosphereData `json:"atmosphere"`

	// Water level above MLLW, when the reporting station has that sensor.
	TideFt *float64 `json:"tide_ft,omitempty"`
}

// WaveData holds the wave group of an observation, including the swell
// breakdown from the spectral summary feed when one is available.
type WaveData struct {
	HeightM          *float64 `json:"height_m,omitempty"`
	DominantPeriodS  *float64 `json:"dominant_period_s,omitempty"`
	AveragePeriodS   *float64 `json:"average_period_s,omitempty"`
	DirectionDeg     *float64 `json:"direction_deg,omitempty"`

	SwellHeightM        *float64 `json:"swell_height_m,omitempty"`
	SwellPeriodS        *float64 `json:"swell_period_s,omitempty"`
	SwellDirectionDeg   *float64 `json:"swell_direction_deg,omitempty"`
	WindWaveHeightM     *float64 `json:"wind_wave_height_m,omitempty"`
	WindWavePeriodS     *float64 `json:"wind_wave_period_s,omitempty"`
	WindWaveDirectionDeg *float64 `json:"wind_wave_direction_deg,omitempty"`

	// Steepness is an opaque categorical token from the spectral feed
	// (e.g. "SWELL", "AVERAGE", "STEEP", and one undocumented value).
	// Carried through untranslated.
	Steepness string `json:"steepness,omitempty"`
}

// HasWaveSignal reports whether this observation carries usable wave data:
// a non-absent height or dominant period.
func (w WaveData) HasWaveSignal() bool {
	return w.HeightM != nil || w.DominantPeriodS != nil
}

// WindData holds the wind group of an observation.
type WindData struct {
	SpeedMS      *float64 `json:"speed_ms,omitempty"`
	DirectionDeg *float64 `json:"direction_deg,omitempty"`
	GustMS       *float64 `json:"gust_ms,omitempty"`
}

// HasWindSignal reports whether the observation carries a numeric wind speed.
func (w WindData) HasWindSignal() bool {
	return w.SpeedMS != nil
}

// AtmosphereData holds the pressure/temperature group of an observation.
type AtmosphereData struct {
	PressureHPa         *float64 `json:"pressure_hpa,omitempty"`
	AirTempC            *float64 `json:"air_temp_c,omitempty"`
	WaterTempC          *float64 `json:"water_temp_c,omitempty"`
	DewPointC           *float64 `json:"dew_point_c,omitempty"`
	VisibilityNmi       *float64 `json:"visibility_nmi,omitempty"`
	PressureTendencyHPa *float64 `json:"pressure_tendency_hpa,omitempty"`
}

// Float returns a pointer to v. Convenience for building observations in
// tests and fallback paths.
func Float(v float64) *float64 { return &v }
