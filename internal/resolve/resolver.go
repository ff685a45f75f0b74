// Package resolve turns a coordinate into a composite sea state report by
// gating the point, walking candidate stations closest-first, and falling
// back across upstream sources when stations come up empty.
package resolve

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/coastwatch/buoyant/internal/coastal"
	"github.com/coastwatch/buoyant/internal/models"
	"github.com/coastwatch/buoyant/internal/nws"
	"github.com/coastwatch/buoyant/internal/observability"
	"github.com/coastwatch/buoyant/internal/stations"
)

const (
	// buoyRadiusKm bounds the candidate search for the wave and wind
	// families.
	buoyRadiusKm = 30.0

	// tideRadiusKm bounds the tide station search. Tide gauges are
	// sparser than buoys, so the radius is wider.
	tideRadiusKm = 50.0

	// alternativeWindowKm: candidates farther than the accepted station
	// but within this much extra distance are surfaced as alternatives.
	alternativeWindowKm = 15.0

	// windObsRadiusKm bounds the NWS land-station fallback for wind.
	windObsRadiusKm = 100.0
)

// BuoyService provides NDBC station observations.
type BuoyService interface {
	LatestObservation(ctx context.Context, stationID string) (*models.Observation, error)
	SpectralSummary(ctx context.Context, stationID string) (*models.Observation, error)
}

// GridService provides NWS forecast grid data and land observations.
type GridService interface {
	PointGrid(ctx context.Context, lat, lon float64) (*models.GridPoint, error)
	GridData(ctx context.Context, gridID string, x, y int) (*nws.GridSeries, error)
	Forecast(ctx context.Context, gridID string, x, y int) ([]models.ForecastPeriod, error)
	GridStations(ctx context.Context, gridID string, x, y int) ([]models.Station, error)
	LatestStationObservation(ctx context.Context, stationID string) (*models.Observation, error)
}

// TideService provides CO-OPS tide predictions and water levels.
type TideService interface {
	GetTidePredictions(ctx context.Context, stationID string, startDate, endDate time.Time) (*models.TideData, error)
	GetWaterLevel(ctx context.Context, stationID string) (*float64, error)
}

// Resolver orchestrates the three measurement families for one request at
// a time. It holds no per-request state and is safe for concurrent use.
type Resolver struct {
	gate    *coastal.Gate
	buoys   *stations.Index
	tideIdx *stations.Index
	buoySvc BuoyService
	gridSvc GridService
	tideSvc TideService
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
}

// SetMetrics attaches Prometheus instrumentation. Optional; a nil-metrics
// resolver skips recording.
func (r *Resolver) SetMetrics(m *observability.Metrics) { r.metrics = m }

// New creates a Resolver. clock may be nil (real clock); logger may be nil.
func New(gate *coastal.Gate, buoys, tideStations *stations.Index, buoySvc BuoyService, gridSvc GridService, tideSvc TideService, clock clockwork.Clock, logger *slog.Logger) *Resolver {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		gate:    gate,
		buoys:   buoys,
		tideIdx: tideStations,
		buoySvc: buoySvc,
		gridSvc: gridSvc,
		tideSvc: tideSvc,
		clock:   clock,
		logger:  logger,
	}
}

// ResolveSeaState resolves waves, wind, and tides for a coordinate. The
// three families run concurrently; they share no state and each owns its
// own fallback chain. A partial result is a success. The error is a
// *GateRejection or *TotalFailure; nothing else escapes.
func (r *Resolver) ResolveSeaState(ctx context.Context, lat, lon float64) (*models.SeaStateResult, error) {
	if !r.gate.IsCoastal(lat, lon) {
		if r.metrics != nil {
			r.metrics.GateRejections.Inc()
		}
		return nil, &GateRejection{Latitude: lat, Longitude: lon, Reason: r.gate.Explain(lat, lon)}
	}
	started := r.clock.Now()

	var (
		waves *models.WaveReport
		wind  *models.WindReport
		tides *models.TideReport
		wg    sync.WaitGroup
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		waves = r.resolveWaves(ctx, lat, lon)
	}()
	go func() {
		defer wg.Done()
		wind = r.resolveWind(ctx, lat, lon)
	}()
	go func() {
		defer wg.Done()
		tides = r.resolveTides(ctx, lat, lon)
	}()
	wg.Wait()

	if r.metrics != nil {
		r.metrics.ResolutionDuration.Observe(r.clock.Now().Sub(started).Seconds())
		r.metrics.FamilyOutcomes.WithLabelValues("waves", outcomeLabel(waves != nil)).Inc()
		r.metrics.FamilyOutcomes.WithLabelValues("wind", outcomeLabel(wind != nil)).Inc()
		r.metrics.FamilyOutcomes.WithLabelValues("tides", outcomeLabel(tides != nil)).Inc()
	}

	if waves == nil && wind == nil && tides == nil {
		return nil, &TotalFailure{Latitude: lat, Longitude: lon}
	}

	result := &models.SeaStateResult{
		Location:   models.Coordinate{Latitude: lat, Longitude: lon},
		Waves:      waves,
		Wind:       wind,
		Tides:      tides,
		ResolvedAt: r.clock.Now(),
	}
	if waves != nil {
		if waves.GridFallback {
			result.AddSource(models.SourceNWS)
		} else {
			result.AddSource(models.SourceNDBC)
		}
	}
	if wind != nil {
		result.AddSource(wind.Source)
	}
	if tides != nil {
		result.AddSource(models.SourceCOOPS)
	}

	r.logger.Info("resolved sea state",
		"lat", lat, "lon", lon,
		"waves", waves != nil, "wind", wind != nil, "tides", tides != nil,
		"sources", result.Sources)
	return result, nil
}

// Candidates is the raw material of a resolution: nearby stations of both
// classes plus the point's forecast grid cell.
type Candidates struct {
	Buoys        []models.CandidateMatch
	TideStations []models.CandidateMatch
	GridCell     *models.GridPoint
}

// FindCandidates reports what the resolver would work with at a
// coordinate, without fetching any observations. The grid cell lookup is
// best-effort; GridCell is nil when the point lookup fails.
func (r *Resolver) FindCandidates(ctx context.Context, lat, lon, radiusKm float64) (*Candidates, error) {
	buoys, err := r.buoys.WithinRadius(lat, lon, radiusKm)
	if err != nil {
		return nil, err
	}
	tideStations, err := r.tideIdx.WithinRadius(lat, lon, radiusKm)
	if err != nil {
		return nil, err
	}

	c := &Candidates{Buoys: buoys, TideStations: tideStations}
	if grid, err := r.gridSvc.PointGrid(ctx, lat, lon); err == nil {
		c.GridCell = grid
	} else {
		r.logger.Debug("grid cell lookup failed", "lat", lat, "lon", lon, "error", err)
	}
	return c, nil
}

// FetchStation fetches and normalizes the latest observation from a single
// named buoy, with spectral enrichment when the station publishes it.
func (r *Resolver) FetchStation(ctx context.Context, stationID string) (*models.Observation, error) {
	obs, err := r.buoySvc.LatestObservation(ctx, stationID)
	if err != nil {
		return nil, err
	}
	if spec, err := r.buoySvc.SpectralSummary(ctx, stationID); err == nil {
		mergeSpectral(&obs.Waves, spec.Waves)
	}
	return obs, nil
}

func outcomeLabel(resolved bool) string {
	if resolved {
		return "resolved"
	}
	return "unavailable"
}

// mergeSpectral copies spectral-feed fields into a standard-feed wave
// group, filling only what the standard feed left absent.
func mergeSpectral(dst *models.WaveData, src models.WaveData) {
	if dst.SwellHeightM == nil {
		dst.SwellHeightM = src.SwellHeightM
	}
	if dst.SwellPeriodS == nil {
		dst.SwellPeriodS = src.SwellPeriodS
	}
	if dst.SwellDirectionDeg == nil {
		dst.SwellDirectionDeg = src.SwellDirectionDeg
	}
	if dst.WindWaveHeightM == nil {
		dst.WindWaveHeightM = src.WindWaveHeightM
	}
	if dst.WindWavePeriodS == nil {
		dst.WindWavePeriodS = src.WindWavePeriodS
	}
	if dst.WindWaveDirectionDeg == nil {
		dst.WindWaveDirectionDeg = src.WindWaveDirectionDeg
	}
	if dst.AveragePeriodS == nil {
		dst.AveragePeriodS = src.AveragePeriodS
	}
	if dst.DirectionDeg == nil {
		dst.DirectionDeg = src.DirectionDeg
	}
	if dst.Steepness == "" {
		dst.Steepness = src.Steepness
	}
}
