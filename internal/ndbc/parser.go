// Package ndbc fetches and parses NDBC realtime2 station feeds: the
// standard meteorological file (.txt) and the spectral wave summary (.spec).
// Both are whitespace-delimited text with a commented header line, a units
// line, and data lines most-recent-first.
package ndbc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/coastwatch/buoyant/internal/models"
)

// ErrEmptyPayload means the feed returned nothing parsable at all: no
// header, no data lines. This is fatal for the source, unlike a sentinel
// value, which only blanks one field.
var ErrEmptyPayload = errors.New("observation payload empty or too short")

// column pairs a header field name with its token position. The list is
// built once from the header line, so value zipping never depends on any
// map iteration order.
type column struct {
	name  string
	index int
}

// Sentinel conventions by field family. "MM" is always missing; the numeric
// sentinels vary with the field's magnitude.
var (
	directionFields = map[string]bool{"WDIR": true, "MWD": true, "SwD": true, "WWD": true}
	pressureFields  = map[string]bool{"PRES": true, "BAR": true, "PTDY": true}
)

func sentinelValue(field string) float64 {
	switch {
	case directionFields[field]:
		return 999
	case pressureFields[field]:
		return 9999
	default:
		return 99
	}
}

// parseValue turns one token into an optional float. Sentinels become nil.
func parseValue(field, token string) *float64 {
	if token == "" || token == "MM" {
		return nil
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return nil
	}
	if v == sentinelValue(field) {
		return nil
	}
	return &v
}

// parseHeader splits the commented header line into ordered columns.
func parseHeader(line string) []column {
	line = strings.TrimPrefix(line, "#")
	fields := strings.Fields(line)
	cols := make([]column, len(fields))
	for i, f := range fields {
		cols[i] = column{name: f, index: i}
	}
	return cols
}

// dataLines splits a feed body into its header columns and data lines,
// validating overall shape. The second line (units) is skipped.
func dataLines(raw string) ([]column, []string, error) {
	var header string
	var data []string
	sawHeader := false

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if !sawHeader {
				header = line
				sawHeader = true
			}
			// Subsequent comment lines (the units row) carry no values.
			continue
		}
		data = append(data, line)
	}

	if !sawHeader || len(data) == 0 {
		return nil, nil, ErrEmptyPayload
	}
	return parseHeader(header), data, nil
}

// parseTimestamp composes the UTC observation instant from the five leading
// date columns. Two-digit years are 2000-relative; source months are already
// 1-indexed. Unparsable components are a fatal parse error for the
// observation, never a silent skip.
func parseTimestamp(values map[string]string) (time.Time, error) {
	get := func(names ...string) (int, error) {
		for _, n := range names {
			tok, ok := values[n]
			if !ok {
				continue
			}
			v, err := strconv.Atoi(tok)
			if err != nil {
				return 0, fmt.Errorf("bad %s value %q", n, tok)
			}
			return v, nil
		}
		return 0, fmt.Errorf("missing date column %s", names[0])
	}

	year, err := get("YY", "YYYY")
	if err != nil {
		return time.Time{}, err
	}
	if year < 100 {
		year += 2000
	}
	month, err := get("MM")
	if err != nil {
		return time.Time{}, err
	}
	day, err := get("DD")
	if err != nil {
		return time.Time{}, err
	}
	hour, err := get("hh")
	if err != nil {
		return time.Time{}, err
	}
	minute, err := get("mm")
	if err != nil {
		return time.Time{}, err
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("date components out of range: month %d day %d", month, day)
	}
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC), nil
}

// zipLine pairs header columns with one data line's tokens by position.
// Short lines leave trailing columns unset.
func zipLine(cols []column, line string) map[string]string {
	tokens := strings.Fields(line)
	values := make(map[string]string, len(cols))
	for _, c := range cols {
		if c.index < len(tokens) {
			values[c.name] = tokens[c.index]
		}
	}
	return values
}

// ParseStandard parses the realtime2 standard meteorological feed, returning
// the n most recent observations (clamped to what the file holds; n <= 0
// means 1). Data lines arrive most-recent-first and stay that way.
func ParseStandard(stationID, raw string, n int) ([]models.Observation, error) {
	cols, lines, err := dataLines(raw)
	if err != nil {
		return nil, err
	}

	if n <= 0 {
		n = 1
	}
	if n > len(lines) {
		n = len(lines)
	}

	obs := make([]models.Observation, 0, n)
	for _, line := range lines[:n] {
		o, err := parseStandardLine(stationID, cols, line)
		if err != nil {
			return nil, fmt.Errorf("parsing observation line %q: %w", line, err)
		}
		obs = append(obs, o)
	}
	return obs, nil
}

// ParseStandardLatest is ParseStandard limited to the most recent line.
func ParseStandardLatest(stationID, raw string) (*models.Observation, error) {
	obs, err := ParseStandard(stationID, raw, 1)
	if err != nil {
		return nil, err
	}
	return &obs[0], nil
}

func parseStandardLine(stationID string, cols []column, line string) (models.Observation, error) {
	values := zipLine(cols, line)

	ts, err := parseTimestamp(values)
	if err != nil {
		return models.Observation{}, err
	}

	o := models.Observation{StationID: stationID, Timestamp: ts}

	o.Wind.DirectionDeg = parseValue("WDIR", values["WDIR"])
	o.Wind.SpeedMS = parseValue("WSPD", values["WSPD"])
	o.Wind.GustMS = parseValue("GST", values["GST"])

	o.Waves.HeightM = parseValue("WVHT", values["WVHT"])
	o.Waves.DominantPeriodS = parseValue("DPD", values["DPD"])
	o.Waves.AveragePeriodS = parseValue("APD", values["APD"])
	o.Waves.DirectionDeg = parseValue("MWD", values["MWD"])

	o.Atmosphere.PressureHPa = firstValue(values, "PRES", "BAR")
	o.Atmosphere.AirTempC = parseValue("ATMP", values["ATMP"])
	o.Atmosphere.WaterTempC = parseValue("WTMP", values["WTMP"])
	o.Atmosphere.DewPointC = parseValue("DEWP", values["DEWP"])
	o.Atmosphere.VisibilityNmi = parseValue("VIS", values["VIS"])
	o.Atmosphere.PressureTendencyHPa = parseValue("PTDY", values["PTDY"])

	o.TideFt = parseValue("TIDE", values["TIDE"])

	return o, nil
}

func firstValue(values map[string]string, fields ...string) *float64 {
	for _, f := range fields {
		if tok, ok := values[f]; ok {
			return parseValue(f, tok)
		}
	}
	return nil
}
