package nws

import (
	"testing"
	"time"
)

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"PT1H", time.Hour},
		{"PT2H", 2 * time.Hour},
		{"PT30M", 30 * time.Minute},
		{"PT10S", 10 * time.Second},
		{"P1D", 24 * time.Hour},
		{"P1DT6H", 30 * time.Hour},
		// Malformed inputs degrade to zero rather than erroring.
		{"", 0},
		{"1H", 0},
		{"PT", 0},
		{"PTXH", 0},
		{"PT1", 0},
		{"P1H", 0}, // hours require the T separator
	}

	for _, tt := range tests {
		if got := parseISODuration(tt.in); got != tt.want {
			t.Errorf("parseISODuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func testSeries(t *testing.T) *GridSeries {
	t.Helper()
	base := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)
	return &GridSeries{
		GridID: "HFO", GridX: 154, GridY: 143,
		Properties: map[string][]SeriesEntry{
			"waveHeight": {
				{Start: base, Duration: 2 * time.Hour, Value: ptr(1.2), Unit: "wmoUnit:m"},
				{Start: base.Add(2 * time.Hour), Duration: 3 * time.Hour, Value: ptr(1.4), Unit: "wmoUnit:m"},
				{Start: base.Add(5 * time.Hour), Duration: time.Hour, Value: nil, Unit: "wmoUnit:m"},
			},
			"windSpeed": {
				// Malformed duration parsed to zero length: matches nothing.
				{Start: base, Duration: 0, Value: ptr(5.0), Unit: "wmoUnit:km_h-1"},
			},
		},
	}
}

func TestGridSeriesCurrent(t *testing.T) {
	g := testSeries(t)
	base := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)

	e, ok := g.Current("waveHeight", base.Add(30*time.Minute))
	if !ok || e.Value == nil || *e.Value != 1.2 {
		t.Errorf("Current(+30m) = %+v, %v; want first entry", e, ok)
	}

	// Interval start is inclusive, end exclusive.
	e, ok = g.Current("waveHeight", base.Add(2*time.Hour))
	if !ok || *e.Value != 1.4 {
		t.Errorf("Current(+2h) = %+v, %v; want second entry", e, ok)
	}

	// Zero-length interval from a malformed duration never matches.
	if _, ok := g.Current("windSpeed", base); ok {
		t.Error("zero-length interval should contain nothing")
	}

	if _, ok := g.Current("waveHeight", base.Add(48*time.Hour)); ok {
		t.Error("reference beyond all intervals should not match")
	}

	if _, ok := g.Current("nosuch", base); ok {
		t.Error("unknown property should not match")
	}
}

func TestGridSeriesNext(t *testing.T) {
	g := testSeries(t)
	base := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)

	e, ok := g.Next("waveHeight", base)
	if !ok || !e.Start.Equal(base.Add(2*time.Hour)) {
		t.Errorf("Next(base) start = %v, want base+2h", e.Start)
	}

	// "Next" is strictly after: an entry starting exactly at ref is not it.
	e, ok = g.Next("waveHeight", base.Add(2*time.Hour))
	if !ok || !e.Start.Equal(base.Add(5*time.Hour)) {
		t.Errorf("Next(base+2h) start = %v, want base+5h", e.Start)
	}

	if _, ok := g.Next("waveHeight", base.Add(6*time.Hour)); ok {
		t.Error("no entry starts after the final interval")
	}
}

func TestHasWaveData(t *testing.T) {
	g := testSeries(t)
	if !g.HasWaveData() {
		t.Error("series with non-null waveHeight values should have wave data")
	}

	// All-null wave series does not count.
	empty := &GridSeries{Properties: map[string][]SeriesEntry{
		"waveHeight": {{Start: time.Now(), Duration: time.Hour, Value: nil}},
		"windSpeed":  {{Start: time.Now(), Duration: time.Hour, Value: ptr(3.0)}},
	}}
	if empty.HasWaveData() {
		t.Error("all-null wave series should not count as wave data")
	}

	none := &GridSeries{Properties: map[string][]SeriesEntry{}}
	if none.HasWaveData() {
		t.Error("empty property map should not have wave data")
	}
}

func ptr(v float64) *float64 { return &v }
