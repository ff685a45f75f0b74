// Package coops talks to the NOAA CO-OPS API for tide predictions and
// observed water levels.
package coops

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/coastwatch/buoyant/internal/models"
	"github.com/coastwatch/buoyant/internal/ratelimit"
)

// Client implements tide data access against the CO-OPS datagetter API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	logger     *slog.Logger
}

// NewClient creates a CO-OPS client.
func NewClient(limiter *ratelimit.Limiter, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: limiter,
		logger:  logger,
	}
}

// SetBaseURL overrides the upstream base URL. Used by tests.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// GetTidePredictions retrieves high/low tide predictions for a date range.
func (c *Client) GetTidePredictions(ctx context.Context, stationID string, startDate, endDate time.Time) (*models.TideData, error) {
	params := url.Values{}
	params.Add("begin_date", startDate.Format("20060102"))
	params.Add("end_date", endDate.Format("20060102"))
	params.Add("station", stationID)
	params.Add("product", "predictions")
	params.Add("datum", "MLLW") // Mean Lower Low Water
	params.Add("time_zone", "gmt")
	params.Add("interval", "hilo") // High and low tides only
	params.Add("units", "english") // Feet
	params.Add("format", "json")
	params.Add("application", "buoyant")

	body, err := c.fetch(ctx, params)
	if err != nil {
		return nil, err
	}

	var parsed tideResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding predictions: %w", err)
	}
	if len(parsed.Predictions) == 0 {
		return nil, fmt.Errorf("station %s returned no tide predictions", stationID)
	}

	tideData := &models.TideData{
		StationID:   stationID,
		StationName: parsed.Metadata.Name,
		Events:      make([]models.TideEvent, 0, len(parsed.Predictions)),
		UpdatedAt:   time.Now(),
	}

	for _, pred := range parsed.Predictions {
		eventTime, err := time.Parse("2006-01-02 15:04", pred.Time)
		if err != nil {
			continue // Skip invalid times
		}

		height, err := strconv.ParseFloat(pred.Height, 64)
		if err != nil {
			continue // Skip events with invalid height
		}

		tideType := models.TideLow
		if pred.Type == "H" {
			tideType = models.TideHigh
		}

		tideData.Events = append(tideData.Events, models.TideEvent{
			Time:   eventTime.UTC(),
			Type:   tideType,
			Height: height,
		})
	}

	return tideData, nil
}

// GetWaterLevel retrieves the station's most recent observed water level.
// Many tide stations lack the sensor; callers treat an error here as
// "level unknown", not as a failure of the tide family.
func (c *Client) GetWaterLevel(ctx context.Context, stationID string) (*float64, error) {
	params := url.Values{}
	params.Add("date", "latest")
	params.Add("station", stationID)
	params.Add("product", "water_level")
	params.Add("datum", "MLLW")
	params.Add("time_zone", "gmt")
	params.Add("units", "english")
	params.Add("format", "json")
	params.Add("application", "buoyant")

	body, err := c.fetch(ctx, params)
	if err != nil {
		return nil, err
	}

	var parsed waterLevelResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding water level: %w", err)
	}
	if len(parsed.Data) == 0 {
		return nil, fmt.Errorf("station %s has no water level data", stationID)
	}

	level, err := strconv.ParseFloat(parsed.Data[len(parsed.Data)-1].Value, 64)
	if err != nil {
		return nil, fmt.Errorf("unparsable water level %q: %w", parsed.Data[len(parsed.Data)-1].Value, err)
	}
	return &level, nil
}

func (c *Client) fetch(ctx context.Context, params url.Values) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Acquire(ctx, ratelimit.SourceCOOPS); err != nil {
			return nil, err
		}
	}

	requestURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure()
		return nil, fmt.Errorf("fetching tide data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.recordFailure()
		return nil, fmt.Errorf("CO-OPS returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordFailure()
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if c.limiter != nil {
		c.limiter.RecordSuccess(ratelimit.SourceCOOPS)
	}
	return body, nil
}

func (c *Client) recordFailure() {
	if c.limiter != nil {
		c.limiter.RecordFailure(ratelimit.SourceCOOPS)
	}
}

// Internal types for CO-OPS API responses

type tideResponse struct {
	Metadata struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Lat  string `json:"lat"`
		Lon  string `json:"lon"`
	} `json:"metadata"`
	Predictions []struct {
		Time   string `json:"t"`
		Height string `json:"v"`    // CO-OPS returns this as string
		Type   string `json:"type"` // "H" or "L"
	} `json:"predictions"`
}

type waterLevelResponse struct {
	Data []struct {
		Time  string `json:"t"`
		Value string `json:"v"`
	} `json:"data"`
}
