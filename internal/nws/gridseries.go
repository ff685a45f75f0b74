// Package nws talks to the NWS API: point-to-grid lookup, raw gridpoint
// time series, textual forecasts, and the observation stations attached to a
// forecast grid.
package nws

import (
	"strconv"
	"strings"
	"time"
)

// waveProperties is the fixed set of wave-related gridpoint series. A grid
// cell "has wave data" iff at least one of these has a non-empty value
// series.
var waveProperties = []string{
	"waveHeight",
	"wavePeriod",
	"waveDirection",
	"primarySwellHeight",
	"primarySwellDirection",
	"secondarySwellHeight",
	"secondarySwellDirection",
	"wavePeriod2",
	"windWaveHeight",
}

// SeriesEntry is one interval of a gridpoint time series. Value is nil when
// the upstream reported null for the interval.
type SeriesEntry struct {
	Start    time.Time
	Duration time.Duration
	Value    *float64
	Unit     string
}

// End returns the exclusive end of the entry's interval.
func (e SeriesEntry) End() time.Time { return e.Start.Add(e.Duration) }

// Contains reports whether ref falls inside the interval. Zero-length
// intervals (malformed durations) contain nothing.
func (e SeriesEntry) Contains(ref time.Time) bool {
	return !ref.Before(e.Start) && ref.Before(e.End())
}

// GridSeries is the parsed property map of one forecast grid cell.
type GridSeries struct {
	GridID     string
	GridX      int
	GridY      int
	Properties map[string][]SeriesEntry
}

// Current returns the entry for prop whose interval contains ref.
func (g *GridSeries) Current(prop string, ref time.Time) (SeriesEntry, bool) {
	for _, e := range g.Properties[prop] {
		if e.Contains(ref) {
			return e, true
		}
	}
	return SeriesEntry{}, false
}

// Next returns the earliest entry for prop whose start is strictly after
// ref.
func (g *GridSeries) Next(prop string, ref time.Time) (SeriesEntry, bool) {
	var best SeriesEntry
	found := false
	for _, e := range g.Properties[prop] {
		if !e.Start.After(ref) {
			continue
		}
		if !found || e.Start.Before(best.Start) {
			best = e
			found = true
		}
	}
	return best, found
}

// HasWaveData reports whether any wave-related series carries at least one
// non-null value.
func (g *GridSeries) HasWaveData() bool {
	for _, prop := range waveProperties {
		for _, e := range g.Properties[prop] {
			if e.Value != nil {
				return true
			}
		}
	}
	return false
}

// parseValidTime splits an NWS validTime like
// "2025-08-30T18:00:00+00:00/PT2H" into its start instant and duration.
// A malformed duration yields a zero-length interval — the entry then
// matches nothing, which degrades to "no data" instead of failing the
// whole payload.
func parseValidTime(s string) (time.Time, time.Duration, bool) {
	idx := strings.IndexByte(s, '/')
	if idx < 0 {
		return time.Time{}, 0, false
	}
	start, err := time.Parse(time.RFC3339, s[:idx])
	if err != nil {
		return time.Time{}, 0, false
	}
	return start, parseISODuration(s[idx+1:]), true
}

// parseISODuration handles the duration subset the gridpoint API emits:
// "P" / "PT" prefixed integer segments with D, H, M, or S unit letters,
// e.g. PT1H, PT30M, P1D, P1DT6H. Anything malformed parses as zero.
func parseISODuration(s string) time.Duration {
	if !strings.HasPrefix(s, "P") {
		return 0
	}
	s = s[1:]

	var total time.Duration
	inTime := false
	num := ""
	for _, r := range s {
		switch {
		case r == 'T':
			if inTime || num != "" {
				return 0
			}
			inTime = true
		case r >= '0' && r <= '9':
			num += string(r)
		default:
			n, err := strconv.Atoi(num)
			if err != nil {
				return 0
			}
			num = ""
			switch r {
			case 'D':
				if inTime {
					return 0
				}
				total += time.Duration(n) * 24 * time.Hour
			case 'H':
				if !inTime {
					return 0
				}
				total += time.Duration(n) * time.Hour
			case 'M':
				if !inTime {
					return 0
				}
				total += time.Duration(n) * time.Minute
			case 'S':
				if !inTime {
					return 0
				}
				total += time.Duration(n) * time.Second
			default:
				return 0
			}
		}
	}
	if num != "" {
		return 0 // trailing digits with no unit letter
	}
	return total
}
