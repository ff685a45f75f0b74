package resolve

import (
	"context"
	"time"

	"github.com/coastwatch/buoyant/internal/gridsearch"
	"github.com/coastwatch/buoyant/internal/models"
	"github.com/coastwatch/buoyant/internal/nws"
)

// resolveWaves walks buoy candidates closest-first and accepts the first
// one reporting a wave height or period. When every candidate comes up
// empty it falls back to a ring search over the forecast grid. Returns nil
// when both tiers fail.
func (r *Resolver) resolveWaves(ctx context.Context, lat, lon float64) *models.WaveReport {
	candidates, err := r.buoys.WithinRadius(lat, lon, buoyRadiusKm)
	if err != nil {
		r.logger.Error("buoy candidate query failed", "error", err)
		candidates = nil
	}

	var skipped []models.SkippedStation
	for i, cand := range candidates {
		obs, err := r.buoySvc.LatestObservation(ctx, cand.Station.ID)
		if err != nil {
			r.logger.Debug("buoy offline", "station", cand.Station.ID, "error", err)
			skipped = append(skipped, models.SkippedStation{Candidate: cand, Reason: models.SkipOffline})
			continue
		}
		if !obs.Waves.HasWaveSignal() {
			skipped = append(skipped, models.SkippedStation{Candidate: cand, Reason: models.SkipNoWaveData})
			continue
		}

		station := cand.Station
		report := &models.WaveReport{
			Station:      &station,
			DistanceKm:   cand.DistanceKm,
			Observation:  obs.Waves,
			ObservedAt:   obs.Timestamp,
			Skipped:      skipped,
			Alternatives: nearbyAlternatives(candidates, i),
		}

		// Swell breakdown comes from a separate feed not every buoy
		// publishes. Best effort only.
		if spec, err := r.buoySvc.SpectralSummary(ctx, station.ID); err == nil {
			mergeSpectral(&report.Observation, spec.Waves)
		}
		return report
	}

	return r.waveGridFallback(ctx, lat, lon, skipped)
}

// nearbyAlternatives returns candidates beyond the accepted one (index
// won) that are within alternativeWindowKm extra distance. Informational
// only; they are never auto-selected.
func nearbyAlternatives(candidates []models.CandidateMatch, won int) []models.CandidateMatch {
	limit := candidates[won].DistanceKm + alternativeWindowKm
	var alts []models.CandidateMatch
	for _, c := range candidates[won+1:] {
		if c.DistanceKm <= limit {
			alts = append(alts, c)
		}
	}
	return alts
}

// waveGridFallback ring-searches the point's forecast grid for a cell
// carrying wave data and lifts the current (or imminent) values out of its
// time series.
func (r *Resolver) waveGridFallback(ctx context.Context, lat, lon float64, skipped []models.SkippedStation) *models.WaveReport {
	grid, err := r.gridSvc.PointGrid(ctx, lat, lon)
	if err != nil {
		r.logger.Debug("no forecast grid for point", "lat", lat, "lon", lon, "error", err)
		return nil
	}

	probe := func(ctx context.Context, gridID string, x, y int) *nws.GridSeries {
		series, err := r.gridSvc.GridData(ctx, gridID, x, y)
		if err != nil || !series.HasWaveData() {
			return nil
		}
		return series
	}

	hit := gridsearch.Search(ctx, grid.GridID, grid.GridX, grid.GridY, probe, r.logger)
	if hit == nil {
		return nil
	}

	now := r.clock.Now()
	wave := models.WaveData{
		HeightM:           r.seriesValue(hit.Data, "waveHeight", now),
		DominantPeriodS:   r.seriesValue(hit.Data, "wavePeriod", now),
		DirectionDeg:      r.seriesValue(hit.Data, "waveDirection", now),
		SwellHeightM:      r.seriesValue(hit.Data, "primarySwellHeight", now),
		SwellDirectionDeg: r.seriesValue(hit.Data, "primarySwellDirection", now),
		WindWaveHeightM:   r.seriesValue(hit.Data, "windWaveHeight", now),
	}
	if !wave.HasWaveSignal() {
		return nil
	}
	return &models.WaveReport{
		Observation:  wave,
		ObservedAt:   now,
		Skipped:      skipped,
		GridFallback: true,
	}
}

// seriesValue returns the property's value at ref, or the next upcoming
// value when the series has a gap at ref.
func (r *Resolver) seriesValue(series *nws.GridSeries, prop string, ref time.Time) *float64 {
	if e, ok := series.Current(prop, ref); ok {
		return e.Value
	}
	if e, ok := series.Next(prop, ref); ok {
		return e.Value
	}
	return nil
}
