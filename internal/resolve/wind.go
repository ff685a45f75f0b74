package resolve

import (
	"context"
	"strings"

	"github.com/coastwatch/buoyant/internal/models"
	"github.com/coastwatch/buoyant/internal/stations"
)

// resolveWind walks the same buoy candidates as the wave family but judges
// them on wind alone, so the wind winner may differ from the wave winner.
// Fallback tiers: nearest NWS land observation station for the point's
// grid, then the forecast's descriptive wind text. Returns nil when all
// three tiers fail.
func (r *Resolver) resolveWind(ctx context.Context, lat, lon float64) *models.WindReport {
	candidates, err := r.buoys.WithinRadius(lat, lon, buoyRadiusKm)
	if err != nil {
		r.logger.Error("buoy candidate query failed", "error", err)
		candidates = nil
	}

	var skipped []models.SkippedStation
	for _, cand := range candidates {
		obs, err := r.buoySvc.LatestObservation(ctx, cand.Station.ID)
		if err != nil {
			skipped = append(skipped, models.SkippedStation{Candidate: cand, Reason: models.SkipOffline})
			continue
		}
		if !obs.Wind.HasWindSignal() {
			skipped = append(skipped, models.SkippedStation{Candidate: cand, Reason: models.SkipNoWindData})
			continue
		}
		station := cand.Station
		return &models.WindReport{
			Station:     &station,
			DistanceKm:  cand.DistanceKm,
			Observation: obs.Wind,
			ObservedAt:  obs.Timestamp,
			Skipped:     skipped,
			Source:      models.SourceNDBC,
		}
	}

	grid, err := r.gridSvc.PointGrid(ctx, lat, lon)
	if err != nil {
		r.logger.Debug("no forecast grid for point", "lat", lat, "lon", lon, "error", err)
		return nil
	}

	if report := r.windFromGridStations(ctx, lat, lon, grid, skipped); report != nil {
		return report
	}
	return r.windFromForecast(ctx, grid, skipped)
}

// windFromGridStations looks up the land observation stations serving the
// grid cell and probes them closest-first for a reading with wind.
func (r *Resolver) windFromGridStations(ctx context.Context, lat, lon float64, grid *models.GridPoint, skipped []models.SkippedStation) *models.WindReport {
	list, err := r.gridSvc.GridStations(ctx, grid.GridID, grid.GridX, grid.GridY)
	if err != nil {
		r.logger.Debug("grid station list unavailable", "grid_id", grid.GridID, "error", err)
		return nil
	}

	candidates, err := stations.NewIndex(list).WithinRadius(lat, lon, windObsRadiusKm)
	if err != nil || len(candidates) == 0 {
		return nil
	}

	for _, cand := range candidates {
		obs, err := r.gridSvc.LatestStationObservation(ctx, cand.Station.ID)
		if err != nil || !obs.Wind.HasWindSignal() {
			continue
		}
		station := cand.Station
		return &models.WindReport{
			Station:     &station,
			DistanceKm:  cand.DistanceKm,
			Observation: obs.Wind,
			ObservedAt:  obs.Timestamp,
			Skipped:     skipped,
			Source:      models.SourceNWS,
		}
	}
	return nil
}

// windFromForecast is the coarse last resort: the first forecast period's
// descriptive wind text. No numbers, but better than nothing.
func (r *Resolver) windFromForecast(ctx context.Context, grid *models.GridPoint, skipped []models.SkippedStation) *models.WindReport {
	periods, err := r.gridSvc.Forecast(ctx, grid.GridID, grid.GridX, grid.GridY)
	if err != nil || len(periods) == 0 {
		return nil
	}
	first := periods[0]
	text := strings.TrimSpace(first.WindSpeed + " " + first.WindDirection)
	if text == "" {
		return nil
	}
	return &models.WindReport{
		ObservedAt:  first.StartTime,
		Skipped:     skipped,
		Descriptive: text,
		Source:      models.SourceNWS,
	}
}
