package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/coastwatch/buoyant/internal/cache"
	"github.com/coastwatch/buoyant/internal/coastal"
	"github.com/coastwatch/buoyant/internal/config"
	"github.com/coastwatch/buoyant/internal/coops"
	"github.com/coastwatch/buoyant/internal/geocoding"
	"github.com/coastwatch/buoyant/internal/ndbc"
	"github.com/coastwatch/buoyant/internal/nws"
	"github.com/coastwatch/buoyant/internal/observability"
	"github.com/coastwatch/buoyant/internal/ratelimit"
	"github.com/coastwatch/buoyant/internal/resolve"
	"github.com/coastwatch/buoyant/internal/stations"
)

// app wires the full pipeline: config, station indexes, politeness layer,
// upstream clients, and the resolver.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	resolver *resolve.Resolver
	ndbc     *ndbc.Client
	nws      *nws.Client

	geocoder *geocoding.Geocoder // lazy; most commands never need it
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	var metrics *observability.Metrics
	if cfg.MetricsAddr != "" {
		metrics = observability.NewMetrics()
		go func() {
			if err := observability.Serve(cfg.MetricsAddr); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	if err := stations.ProvisionDatabase(ctx, cfg.DatabasePath, logger); err != nil {
		return nil, fmt.Errorf("provisioning station lists: %w", err)
	}
	buoys, tides, err := stations.LoadIndexes(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("loading station indexes: %w", err)
	}

	var gateOpts []coastal.Option
	if cfg.BoundaryPath != "" {
		boundary, err := coastal.LoadBoundary(cfg.BoundaryPath)
		if err != nil {
			logger.Warn("coastal boundary unusable, gate failing open", "path", cfg.BoundaryPath, "error", err)
			gateOpts = append(gateOpts, coastal.FailOpen())
		} else {
			gateOpts = append(gateOpts, coastal.WithBoundary(boundary))
		}
	}
	gate := coastal.NewGate(logger, gateOpts...)

	limiter := ratelimit.New(nil, logger)
	payloads := cache.New(cache.NewMemoryStore(), cfg.CacheTTL, nil, logger)
	if metrics != nil {
		limiter.SetOutcomeHook(func(source string, success bool) {
			outcome := "success"
			if !success {
				outcome = "error"
			}
			metrics.UpstreamRequests.WithLabelValues(source, outcome).Inc()
		})
		payloads.SetLookupHook(func(hit bool) {
			result := "miss"
			if hit {
				result = "hit"
			}
			metrics.CacheLookups.WithLabelValues(result).Inc()
		})
	}

	ndbcClient := ndbc.NewClient(limiter, payloads, logger)
	nwsClient := nws.NewClient(limiter, payloads, logger)
	coopsClient := coops.NewClient(limiter, logger)

	resolver := resolve.New(gate, buoys, tides, ndbcClient, nwsClient, coopsClient, nil, logger)
	if metrics != nil {
		resolver.SetMetrics(metrics)
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		resolver: resolver,
		ndbc:     ndbcClient,
		nws:      nwsClient,
	}, nil
}

func (a *app) close() {
	if a.geocoder != nil {
		a.geocoder.Close()
	}
}

// locate resolves a zip code or "City, ST" query to coordinates,
// provisioning the zip table on first use.
func (a *app) locate(ctx context.Context, query string) (*geocoding.Location, error) {
	if a.geocoder == nil {
		g, err := geocoding.NewGeocoder(a.cfg.DatabasePath, a.logger)
		if err != nil {
			return nil, err
		}
		a.geocoder = g
	}
	return a.geocoder.Geocode(ctx, query)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
