package resolve

import (
	"context"

	"github.com/coastwatch/buoyant/internal/models"
)

// resolveTides fetches predictions from the nearest tide station in range.
// The water level observation is a separate product many stations lack;
// its absence never fails the family. Returns nil when no station is in
// range or the prediction fetch fails.
func (r *Resolver) resolveTides(ctx context.Context, lat, lon float64) *models.TideReport {
	station, distKm, err := r.tideIdx.Nearest(lat, lon, tideRadiusKm)
	if err != nil {
		r.logger.Error("tide station query failed", "error", err)
		return nil
	}
	if station == nil {
		r.logger.Debug("no tide station in range", "lat", lat, "lon", lon, "radius_km", tideRadiusKm)
		return nil
	}

	now := r.clock.Now()
	data, err := r.tideSvc.GetTidePredictions(ctx, station.ID, now, now.AddDate(0, 0, 2))
	if err != nil {
		r.logger.Debug("tide predictions unavailable", "station", station.ID, "error", err)
		return nil
	}
	if data.StationName == "" {
		data.StationName = station.Name
	}

	if level, err := r.tideSvc.GetWaterLevel(ctx, station.ID); err == nil {
		data.WaterLevelFt = level
	}

	return &models.TideReport{
		Station:    *station,
		DistanceKm: distKm,
		Data:       *data,
	}
}
