package ndbc

import (
	"fmt"
	"strconv"

	"github.com/coastwatch/buoyant/internal/models"
)

// ParseSpectral parses the realtime2 spectral wave summary (.spec) feed and
// returns the most recent entry's wave detail. Tokenization matches the
// standard feed; the differences are the categorical STEEPNESS column,
// carried through opaque (it has an undocumented fourth value upstream, so
// no severity is ever inferred), and the two swell direction columns, which
// hold either a numeric bearing or a 16-point compass token.
func ParseSpectral(stationID, raw string) (*models.Observation, error) {
	cols, lines, err := dataLines(raw)
	if err != nil {
		return nil, err
	}

	values := zipLine(cols, lines[0])
	ts, err := parseTimestamp(values)
	if err != nil {
		return nil, fmt.Errorf("parsing spectral line %q: %w", lines[0], err)
	}

	o := &models.Observation{StationID: stationID, Timestamp: ts}

	o.Waves.HeightM = parseValue("WVHT", values["WVHT"])
	o.Waves.SwellHeightM = parseValue("SwH", values["SwH"])
	o.Waves.SwellPeriodS = parseValue("SwP", values["SwP"])
	o.Waves.WindWaveHeightM = parseValue("WWH", values["WWH"])
	o.Waves.WindWavePeriodS = parseValue("WWP", values["WWP"])
	o.Waves.SwellDirectionDeg = parseDirection(values["SwD"])
	o.Waves.WindWaveDirectionDeg = parseDirection(values["WWD"])
	o.Waves.AveragePeriodS = parseValue("APD", values["APD"])
	o.Waves.DirectionDeg = parseValue("MWD", values["MWD"])

	if s, ok := values["STEEPNESS"]; ok && s != "MM" {
		o.Waves.Steepness = s
	}

	return o, nil
}

// parseDirection accepts either a numeric bearing or a cardinal token.
// Anything unrecognized is absent, not zero — "N" means north, but garbage
// never does.
func parseDirection(token string) *float64 {
	if token == "" || token == "MM" {
		return nil
	}
	if v, err := strconv.ParseFloat(token, 64); err == nil {
		if v == 999 {
			return nil
		}
		return &v
	}
	if deg, ok := compassToDegrees(token); ok {
		return &deg
	}
	return nil
}
