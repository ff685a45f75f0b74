package nws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/coastwatch/buoyant/internal/cache"
	"github.com/coastwatch/buoyant/internal/models"
	"github.com/coastwatch/buoyant/internal/ratelimit"
)

// Client talks to api.weather.gov.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	limiter    *ratelimit.Limiter
	cache      *cache.Cache
	logger     *slog.Logger
}

// NewClient creates an NWS API client. cache may be nil.
func NewClient(limiter *ratelimit.Limiter, payloadCache *cache.Cache, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: "https://api.weather.gov",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		userAgent: "buoyant/1.0 (github.com/coastwatch/buoyant)",
		limiter:   limiter,
		cache:     payloadCache,
		logger:    logger,
	}
}

// SetBaseURL overrides the upstream base URL. Used by tests.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// PointGrid resolves a coordinate to its forecast grid cell.
func (c *Client) PointGrid(ctx context.Context, lat, lon float64) (*models.GridPoint, error) {
	body, err := c.fetch(ctx, fmt.Sprintf("/points/%.4f,%.4f", lat, lon))
	if err != nil {
		return nil, err
	}

	var parsed pointResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding point response: %w", err)
	}
	if parsed.Properties.GridID == "" {
		return nil, fmt.Errorf("point response carried no grid identity")
	}

	return &models.GridPoint{
		GridID: parsed.Properties.GridID,
		GridX:  parsed.Properties.GridX,
		GridY:  parsed.Properties.GridY,
	}, nil
}

// GridData fetches the raw gridpoint property series for one cell.
func (c *Client) GridData(ctx context.Context, gridID string, x, y int) (*GridSeries, error) {
	body, err := c.fetch(ctx, fmt.Sprintf("/gridpoints/%s/%d,%d", gridID, x, y))
	if err != nil {
		return nil, err
	}

	var parsed gridResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding gridpoint response: %w", err)
	}

	series := &GridSeries{
		GridID:     gridID,
		GridX:      x,
		GridY:      y,
		Properties: make(map[string][]SeriesEntry, len(parsed.Properties)),
	}
	for name, payload := range parsed.Properties {
		var prop gridProperty
		if err := json.Unmarshal(payload, &prop); err != nil {
			continue // non-series properties (strings, geometry) are skipped
		}
		if len(prop.Values) == 0 {
			continue
		}
		entries := make([]SeriesEntry, 0, len(prop.Values))
		for _, v := range prop.Values {
			start, dur, ok := parseValidTime(v.ValidTime)
			if !ok {
				continue
			}
			entries = append(entries, SeriesEntry{
				Start:    start,
				Duration: dur,
				Value:    v.Value,
				Unit:     prop.UOM,
			})
		}
		series.Properties[name] = entries
	}
	return series, nil
}

// Forecast fetches the textual forecast periods for a grid cell.
func (c *Client) Forecast(ctx context.Context, gridID string, x, y int) ([]models.ForecastPeriod, error) {
	body, err := c.fetch(ctx, fmt.Sprintf("/gridpoints/%s/%d,%d/forecast", gridID, x, y))
	if err != nil {
		return nil, err
	}

	var parsed forecastResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding forecast response: %w", err)
	}

	periods := make([]models.ForecastPeriod, 0, len(parsed.Properties.Periods))
	for _, p := range parsed.Properties.Periods {
		start, _ := time.Parse(time.RFC3339, p.StartTime)
		periods = append(periods, models.ForecastPeriod{
			Name:          p.Name,
			StartTime:     start,
			Temperature:   float64(p.Temperature),
			WindSpeed:     p.WindSpeed,
			WindDirection: p.WindDirection,
			ShortForecast: p.ShortForecast,
			DetailedText:  p.DetailedForecast,
		})
	}
	return periods, nil
}

// GridStations lists the observation stations attached to a forecast grid,
// in the API's own nearest-first order.
func (c *Client) GridStations(ctx context.Context, gridID string, x, y int) ([]models.Station, error) {
	body, err := c.fetch(ctx, fmt.Sprintf("/gridpoints/%s/%d,%d/stations", gridID, x, y))
	if err != nil {
		return nil, err
	}

	var parsed stationsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding stations response: %w", err)
	}

	stations := make([]models.Station, 0, len(parsed.Features))
	for _, f := range parsed.Features {
		s := models.Station{
			ID:   f.Properties.StationIdentifier,
			Name: f.Properties.Name,
		}
		if len(f.Geometry.Coordinates) == 2 {
			s.Longitude = f.Geometry.Coordinates[0]
			s.Latitude = f.Geometry.Coordinates[1]
		}
		stations = append(stations, s)
	}
	return stations, nil
}

// LatestStationObservation fetches the most recent observation from an NWS
// land/coastal observation station and normalizes its wind group.
func (c *Client) LatestStationObservation(ctx context.Context, stationID string) (*models.Observation, error) {
	body, err := c.fetch(ctx, fmt.Sprintf("/stations/%s/observations/latest", stationID))
	if err != nil {
		return nil, err
	}

	var parsed observationResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding observation response: %w", err)
	}

	obs := &models.Observation{StationID: stationID}
	if ts, err := time.Parse(time.RFC3339, parsed.Properties.Timestamp); err == nil {
		obs.Timestamp = ts.UTC()
	}
	obs.Wind.SpeedMS = toMetersPerSecond(parsed.Properties.WindSpeed)
	obs.Wind.GustMS = toMetersPerSecond(parsed.Properties.WindGust)
	obs.Wind.DirectionDeg = parsed.Properties.WindDirection.Value
	obs.Atmosphere.AirTempC = parsed.Properties.Temperature.Value
	obs.Atmosphere.PressureHPa = toHectopascals(parsed.Properties.BarometricPressure)
	return obs, nil
}

func toMetersPerSecond(m measurement) *float64 {
	if m.Value == nil {
		return nil
	}
	v := *m.Value
	if strings.HasSuffix(m.UnitCode, "km_h-1") || strings.HasSuffix(m.UnitCode, "km_h") {
		v = v / 3.6
	}
	return &v
}

func toHectopascals(m measurement) *float64 {
	if m.Value == nil {
		return nil
	}
	v := *m.Value
	if strings.HasSuffix(m.UnitCode, "Pa") && !strings.HasSuffix(m.UnitCode, "hPa") {
		v = v / 100
	}
	return &v
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	key := "nws:" + path
	if c.cache != nil {
		if payload, ok := c.cache.Get(ctx, key); ok {
			return payload, nil
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Acquire(ctx, ratelimit.SourceNWS); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/geo+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure()
		return nil, fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.recordFailure()
		return nil, fmt.Errorf("NWS returned status %d for %s", resp.StatusCode, path)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordFailure()
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if c.limiter != nil {
		c.limiter.RecordSuccess(ratelimit.SourceNWS)
	}
	if c.cache != nil {
		c.cache.Set(ctx, key, payload)
	}
	return payload, nil
}

func (c *Client) recordFailure() {
	if c.limiter != nil {
		c.limiter.RecordFailure(ratelimit.SourceNWS)
	}
}

// Internal types for NWS API responses

type pointResponse struct {
	Properties struct {
		GridID string `json:"gridId"`
		GridX  int    `json:"gridX"`
		GridY  int    `json:"gridY"`
	} `json:"properties"`
}

type gridResponse struct {
	Properties map[string]json.RawMessage `json:"properties"`
}

type gridProperty struct {
	UOM    string `json:"uom"`
	Values []struct {
		ValidTime string   `json:"validTime"`
		Value     *float64 `json:"value"`
	} `json:"values"`
}

type forecastResponse struct {
	Properties struct {
		Periods []struct {
			Name             string `json:"name"`
			StartTime        string `json:"startTime"`
			Temperature      int    `json:"temperature"`
			WindSpeed        string `json:"windSpeed"`
			WindDirection    string `json:"windDirection"`
			ShortForecast    string `json:"shortForecast"`
			DetailedForecast string `json:"detailedForecast"`
		} `json:"periods"`
	} `json:"properties"`
}

type stationsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
		Properties struct {
			StationIdentifier string `json:"stationIdentifier"`
			Name              string `json:"name"`
		} `json:"properties"`
	} `json:"features"`
}

type measurement struct {
	UnitCode string   `json:"unitCode"`
	Value    *float64 `json:"value"`
}

type observationResponse struct {
	Properties struct {
		Timestamp          string      `json:"timestamp"`
		Temperature        measurement `json:"temperature"`
		WindDirection      measurement `json:"windDirection"`
		WindSpeed          measurement `json:"windSpeed"`
		WindGust           measurement `json:"windGust"`
		BarometricPressure measurement `json:"barometricPressure"`
	} `json:"properties"`
}
