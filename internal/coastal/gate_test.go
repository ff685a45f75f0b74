package coastal

import (
	"strings"
	"testing"
)

func TestGateIsCoastal(t *testing.T) {
	gate := NewGate(nil)

	tests := []struct {
		name string
		lat  float64
		lon  float64
		want bool
	}{
		{"Honolulu", 21.3, -157.8, true},
		{"Seattle", 47.6062, -122.3321, true},
		{"Miami", 25.7617, -80.1918, true},
		{"Galveston", 29.3013, -94.7977, true},
		{"San Juan PR", 18.4655, -66.1057, true},
		{"Kodiak AK", 57.79, -152.4072, true},
		{"Denver", 39.7392, -104.9903, false},
		{"Salt Lake City", 40.7608, -111.891, false},
		{"Atlanta", 33.749, -84.388, false},
		{"London", 51.5074, -0.1278, false},
		{"Tokyo", 35.6762, 139.6503, false},
		{"mid-Pacific", 0.0, -170.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gate.IsCoastal(tt.lat, tt.lon); got != tt.want {
				t.Errorf("IsCoastal(%v, %v) = %v, want %v", tt.lat, tt.lon, got, tt.want)
			}
		})
	}
}

func TestGateFailOpen(t *testing.T) {
	gate := NewGate(nil, FailOpen())

	// Inland but inside an admitted region: admitted under fail-open.
	if !gate.IsCoastal(39.7392, -104.9903) {
		t.Error("fail-open gate should admit in-region inland points")
	}

	// Region admission still applies even when failing open.
	if gate.IsCoastal(51.5074, -0.1278) {
		t.Error("fail-open gate should still reject out-of-region points")
	}
}

func TestGateWithBoundary(t *testing.T) {
	// A small synthetic ring around the Honolulu waterfront.
	b := &Boundary{rings: []ring{{
		pts: []point{
			{lon: -158.2, lat: 21.2},
			{lon: -157.6, lat: 21.2},
			{lon: -157.6, lat: 21.4},
			{lon: -158.2, lat: 21.4},
		},
		minLat: 21.2, maxLat: 21.4, minLon: -158.2, maxLon: -157.6,
	}}}

	gate := NewGate(nil, WithBoundary(b))

	if !gate.IsCoastal(21.3, -157.8) {
		t.Error("point inside boundary ring should be coastal")
	}
	if gate.IsCoastal(20.9, -156.7) {
		t.Error("in-region point outside boundary ring should not be coastal")
	}
}

func TestGateExplain(t *testing.T) {
	gate := NewGate(nil)

	tests := []struct {
		name string
		lat  float64
		lon  float64
		want string
	}{
		{"out of region", 51.5074, -0.1278, "outside all supported regions"},
		{"inland", 39.7392, -104.9903, "excluded inland zone"},
		{"coastal", 21.3, -157.8, "coastal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gate.Explain(tt.lat, tt.lon)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Explain(%v, %v) = %q, want substring %q", tt.lat, tt.lon, got, tt.want)
			}
		})
	}
}
