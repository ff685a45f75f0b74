package ui

import (
	"fmt"
	"strings"

	"github.com/coastwatch/buoyant/internal/models"
)

const (
	metersToFeet = 3.28084
	msToKnots    = 1.94384
)

// compassLabels in 22.5° steps starting at north.
var compassLabels = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

func degreesToCompass(deg float64) string {
	idx := int((deg+11.25)/22.5) % 16
	if idx < 0 {
		idx += 16
	}
	return compassLabels[idx]
}

func renderWaves(w *models.WaveReport) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("🌊 Waves") + "\n\n")
	if w == nil {
		b.WriteString(mutedStyle.Render("unavailable"))
		return b.String()
	}

	if w.Observation.HeightM != nil {
		b.WriteString(line("Height", fmt.Sprintf("%.1f ft", *w.Observation.HeightM*metersToFeet)))
	}
	if w.Observation.DominantPeriodS != nil {
		b.WriteString(line("Period", fmt.Sprintf("%.0f s", *w.Observation.DominantPeriodS)))
	}
	if w.Observation.DirectionDeg != nil {
		b.WriteString(line("Direction", fmt.Sprintf("%s (%.0f°)", degreesToCompass(*w.Observation.DirectionDeg), *w.Observation.DirectionDeg)))
	}
	if w.Observation.SwellHeightM != nil {
		b.WriteString(line("Swell", fmt.Sprintf("%.1f ft", *w.Observation.SwellHeightM*metersToFeet)))
	}
	if w.Observation.Steepness != "" {
		b.WriteString(line("Steepness", strings.ToLower(w.Observation.Steepness)))
	}

	if w.GridFallback {
		b.WriteString(mutedStyle.Render("forecast grid") + "\n")
	} else if w.Station != nil {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%s · %.1f km", stationLabel(*w.Station), w.DistanceKm)) + "\n")
	}
	return b.String()
}

func renderWind(w *models.WindReport) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("💨 Wind") + "\n\n")
	if w == nil {
		b.WriteString(mutedStyle.Render("unavailable"))
		return b.String()
	}

	if w.Descriptive != "" {
		b.WriteString(valueStyle.Render(w.Descriptive) + "\n")
		b.WriteString(mutedStyle.Render("forecast") + "\n")
		return b.String()
	}

	if w.Observation.SpeedMS != nil {
		b.WriteString(line("Speed", fmt.Sprintf("%.0f kt", *w.Observation.SpeedMS*msToKnots)))
	}
	if w.Observation.GustMS != nil {
		b.WriteString(line("Gusts", fmt.Sprintf("%.0f kt", *w.Observation.GustMS*msToKnots)))
	}
	if w.Observation.DirectionDeg != nil {
		b.WriteString(line("Direction", fmt.Sprintf("%s (%.0f°)", degreesToCompass(*w.Observation.DirectionDeg), *w.Observation.DirectionDeg)))
	}
	if w.Station != nil {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%s · %.1f km", stationLabel(*w.Station), w.DistanceKm)) + "\n")
	}
	return b.String()
}

func renderTides(t *models.TideReport) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("🌙 Tides") + "\n\n")
	if t == nil {
		b.WriteString(mutedStyle.Render("unavailable"))
		return b.String()
	}

	if t.Data.WaterLevelFt != nil {
		b.WriteString(line("Now", fmt.Sprintf("%.1f ft", *t.Data.WaterLevelFt)))
	}
	for i, ev := range t.Data.Events {
		if i >= 4 {
			break
		}
		kind := "Low"
		if ev.Type == models.TideHigh {
			kind = "High"
		}
		b.WriteString(line(kind, fmt.Sprintf("%s  %.1f ft", ev.Time.Local().Format("Mon 15:04"), ev.Height)))
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s · %.1f km", stationLabel(t.Station), t.DistanceKm)) + "\n")
	return b.String()
}

func line(label, value string) string {
	return labelStyle.Render(label+": ") + valueStyle.Render(value) + "\n"
}

func stationLabel(s models.Station) string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}

func joinSources(sources []string) string {
	if len(sources) == 0 {
		return "none"
	}
	return strings.Join(sources, ", ")
}
