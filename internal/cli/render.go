package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/coastwatch/buoyant/internal/models"
)

const (
	metersToFeet = 3.28084
	msToKnots    = 1.94384
)

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderResult(w io.Writer, name string, result *models.SeaStateResult, asJSON bool) error {
	if asJSON {
		return renderJSON(w, result)
	}

	fmt.Fprintf(w, "⚓ %s\n\n", name)

	fmt.Fprintln(w, "Waves")
	if result.Waves == nil {
		fmt.Fprintln(w, "  unavailable")
	} else {
		printWaves(w, result.Waves)
	}

	fmt.Fprintln(w, "\nWind")
	if result.Wind == nil {
		fmt.Fprintln(w, "  unavailable")
	} else {
		printWind(w, result.Wind)
	}

	fmt.Fprintln(w, "\nTides")
	if result.Tides == nil {
		fmt.Fprintln(w, "  unavailable")
	} else {
		printTides(w, result.Tides)
	}

	fmt.Fprintf(w, "\nSources: %s\n", strings.Join(result.Sources, ", "))
	return nil
}

func printWaves(w io.Writer, waves *models.WaveReport) {
	obs := waves.Observation
	if obs.HeightM != nil {
		fmt.Fprintf(w, "  Height:    %.1f ft\n", *obs.HeightM*metersToFeet)
	}
	if obs.DominantPeriodS != nil {
		fmt.Fprintf(w, "  Period:    %.0f s\n", *obs.DominantPeriodS)
	}
	if obs.DirectionDeg != nil {
		fmt.Fprintf(w, "  Direction: %.0f°\n", *obs.DirectionDeg)
	}
	if obs.SwellHeightM != nil {
		fmt.Fprintf(w, "  Swell:     %.1f ft", *obs.SwellHeightM*metersToFeet)
		if obs.SwellPeriodS != nil {
			fmt.Fprintf(w, " @ %.0f s", *obs.SwellPeriodS)
		}
		fmt.Fprintln(w)
	}
	if obs.Steepness != "" {
		fmt.Fprintf(w, "  Steepness: %s\n", strings.ToLower(obs.Steepness))
	}

	switch {
	case waves.GridFallback:
		fmt.Fprintln(w, "  From the marine forecast grid (no buoy in range reported waves)")
	case waves.Station != nil:
		fmt.Fprintf(w, "  Station %s · %.1f km away · observed %s\n",
			stationLabel(*waves.Station), waves.DistanceKm, waves.ObservedAt.Format("15:04 MST"))
	}
	for _, skip := range waves.Skipped {
		fmt.Fprintf(w, "  (skipped %s: %s)\n", skip.Candidate, skip.Reason)
	}
	for _, alt := range waves.Alternatives {
		fmt.Fprintf(w, "  (also nearby: %s)\n", alt)
	}
}

func printWind(w io.Writer, wind *models.WindReport) {
	if wind.Descriptive != "" {
		fmt.Fprintf(w, "  Forecast: %s\n", wind.Descriptive)
		return
	}
	obs := wind.Observation
	if obs.SpeedMS != nil {
		fmt.Fprintf(w, "  Speed:     %.0f kt\n", *obs.SpeedMS*msToKnots)
	}
	if obs.GustMS != nil {
		fmt.Fprintf(w, "  Gusts:     %.0f kt\n", *obs.GustMS*msToKnots)
	}
	if obs.DirectionDeg != nil {
		fmt.Fprintf(w, "  Direction: %.0f°\n", *obs.DirectionDeg)
	}
	if wind.Station != nil {
		fmt.Fprintf(w, "  Station %s · %.1f km away\n", stationLabel(*wind.Station), wind.DistanceKm)
	}
}

func printTides(w io.Writer, tides *models.TideReport) {
	if tides.Data.WaterLevelFt != nil {
		fmt.Fprintf(w, "  Water level now: %.1f ft\n", *tides.Data.WaterLevelFt)
	}
	for i, ev := range tides.Data.Events {
		if i >= 4 {
			break
		}
		kind := "Low "
		if ev.Type == models.TideHigh {
			kind = "High"
		}
		fmt.Fprintf(w, "  %s  %s  %.1f ft\n", kind, ev.Time.Local().Format("Mon 15:04"), ev.Height)
	}
	fmt.Fprintf(w, "  Station %s · %.1f km away\n", stationLabel(tides.Station), tides.DistanceKm)
}

func renderObservation(w io.Writer, obs *models.Observation, asJSON bool) error {
	if asJSON {
		return renderJSON(w, obs)
	}

	fmt.Fprintf(w, "Station %s · %s\n\n", obs.StationID, obs.Timestamp.Format("2006-01-02 15:04 MST"))
	if obs.Waves.HasWaveSignal() {
		fmt.Fprintln(w, "Waves")
		if obs.Waves.HeightM != nil {
			fmt.Fprintf(w, "  Height:    %.1f ft\n", *obs.Waves.HeightM*metersToFeet)
		}
		if obs.Waves.DominantPeriodS != nil {
			fmt.Fprintf(w, "  Period:    %.0f s\n", *obs.Waves.DominantPeriodS)
		}
		if obs.Waves.SwellHeightM != nil {
			fmt.Fprintf(w, "  Swell:     %.1f ft\n", *obs.Waves.SwellHeightM*metersToFeet)
		}
	}
	if obs.Wind.HasWindSignal() {
		fmt.Fprintln(w, "Wind")
		fmt.Fprintf(w, "  Speed:     %.0f kt\n", *obs.Wind.SpeedMS*msToKnots)
		if obs.Wind.DirectionDeg != nil {
			fmt.Fprintf(w, "  Direction: %.0f°\n", *obs.Wind.DirectionDeg)
		}
	}
	if obs.Atmosphere.WaterTempC != nil {
		fmt.Fprintf(w, "Water temp:  %.1f °F\n", *obs.Atmosphere.WaterTempC*9/5+32)
	}
	if obs.Atmosphere.PressureHPa != nil {
		fmt.Fprintf(w, "Pressure:    %.1f hPa\n", *obs.Atmosphere.PressureHPa)
	}
	return nil
}

func renderObservations(w io.Writer, observations []models.Observation, asJSON bool) error {
	if asJSON {
		return renderJSON(w, observations)
	}
	for i := range observations {
		if err := renderObservation(w, &observations[i], false); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return nil
}

func renderForecast(w io.Writer, name string, periods []models.ForecastPeriod, asJSON bool) error {
	if asJSON {
		return renderJSON(w, periods)
	}
	fmt.Fprintf(w, "Forecast for %s\n\n", name)
	for _, p := range periods {
		fmt.Fprintf(w, "%s: %s\n", p.Name, p.DetailedText)
	}
	return nil
}

func stationLabel(s models.Station) string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}
