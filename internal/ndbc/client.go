package ndbc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/coastwatch/buoyant/internal/cache"
	"github.com/coastwatch/buoyant/internal/models"
	"github.com/coastwatch/buoyant/internal/ratelimit"
)

// Client fetches realtime2 feeds for individual stations, going through the
// rate limiter before each request and the observation cache around it.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	limiter    *ratelimit.Limiter
	cache      *cache.Cache
	logger     *slog.Logger
}

// NewClient creates an NDBC client. cache may be nil to fetch uncached.
func NewClient(limiter *ratelimit.Limiter, obsCache *cache.Cache, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: "https://www.ndbc.noaa.gov/data/realtime2",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		userAgent: "buoyant/1.0 (github.com/coastwatch/buoyant)",
		limiter:   limiter,
		cache:     obsCache,
		logger:    logger,
	}
}

// SetBaseURL overrides the upstream base URL. Used by tests.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// LatestObservation fetches and parses a station's most recent standard
// meteorological observation.
func (c *Client) LatestObservation(ctx context.Context, stationID string) (*models.Observation, error) {
	raw, err := c.fetch(ctx, stationID+".txt")
	if err != nil {
		return nil, err
	}
	return ParseStandardLatest(stationID, string(raw))
}

// RecentObservations fetches the station's n most recent standard
// observations, most recent first.
func (c *Client) RecentObservations(ctx context.Context, stationID string, n int) ([]models.Observation, error) {
	raw, err := c.fetch(ctx, stationID+".txt")
	if err != nil {
		return nil, err
	}
	return ParseStandard(stationID, string(raw), n)
}

// SpectralSummary fetches the station's spectral wave summary. Not every
// station serves one; callers treat an error here as "no extra detail".
func (c *Client) SpectralSummary(ctx context.Context, stationID string) (*models.Observation, error) {
	raw, err := c.fetch(ctx, stationID+".spec")
	if err != nil {
		return nil, err
	}
	return ParseSpectral(stationID, string(raw))
}

func (c *Client) fetch(ctx context.Context, file string) ([]byte, error) {
	key := "ndbc:" + file
	if c.cache != nil {
		if payload, ok := c.cache.Get(ctx, key); ok {
			return payload, nil
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Acquire(ctx, ratelimit.SourceNDBC); err != nil {
			return nil, err
		}
	}

	url := c.baseURL + "/" + file
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure()
		return nil, fmt.Errorf("fetching %s: %w", file, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.recordFailure()
		return nil, fmt.Errorf("NDBC returned status %d for %s", resp.StatusCode, file)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordFailure()
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}

	if c.limiter != nil {
		c.limiter.RecordSuccess(ratelimit.SourceNDBC)
	}
	if c.cache != nil {
		c.cache.Set(ctx, key, payload)
	}
	return payload, nil
}

func (c *Client) recordFailure() {
	if c.limiter != nil {
		c.limiter.RecordFailure(ratelimit.SourceNDBC)
	}
}
