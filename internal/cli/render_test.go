package cli

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastwatch/buoyant/internal/models"
)

func sampleResult() *models.SeaStateResult {
	station := models.Station{ID: "44013", Name: "Boston Approach"}
	skipped := models.Station{ID: "44029", Name: "Mass Bay"}
	return &models.SeaStateResult{
		Location: models.Coordinate{Latitude: 42.35, Longitude: -70.65},
		Waves: &models.WaveReport{
			Station:    &station,
			DistanceKm: 12.3,
			Observation: models.WaveData{
				HeightM:         models.Float(2.0),
				DominantPeriodS: models.Float(9),
			},
			ObservedAt: time.Date(2026, 3, 1, 11, 50, 0, 0, time.UTC),
			Skipped: []models.SkippedStation{
				{Candidate: models.CandidateMatch{Station: skipped, DistanceKm: 8.1}, Reason: models.SkipOffline},
			},
			Alternatives: []models.CandidateMatch{
				{Station: models.Station{ID: "44018", Name: "Cape Cod"}, DistanceKm: 19.9},
			},
		},
		Sources: []string{models.SourceNDBC},
	}
}

func TestRenderResultText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderResult(&buf, "Boston, MA 02109", sampleResult(), false))
	out := buf.String()

	assert.Contains(t, out, "Boston, MA 02109")
	assert.Contains(t, out, "6.6 ft") // 2.0 m
	assert.Contains(t, out, "9 s")
	assert.Contains(t, out, "Boston Approach")
	assert.Contains(t, out, "skipped Mass Bay (8.1 km): offline")
	assert.Contains(t, out, "also nearby: Cape Cod (19.9 km)")
	assert.Contains(t, out, "unavailable") // wind and tides
	assert.Contains(t, out, "Sources: NDBC")
}

func TestRenderResultJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderResult(&buf, "ignored", sampleResult(), true))

	var decoded models.SeaStateResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.NotNil(t, decoded.Waves)
	assert.Equal(t, "44013", decoded.Waves.Station.ID)
	assert.Nil(t, decoded.Wind)
}

func TestRenderResultGridFallback(t *testing.T) {
	result := sampleResult()
	result.Waves.Station = nil
	result.Waves.GridFallback = true
	result.Waves.Alternatives = nil

	var buf bytes.Buffer
	require.NoError(t, renderResult(&buf, "x", result, false))
	assert.Contains(t, buf.String(), "marine forecast grid")
}

func TestRenderObservationText(t *testing.T) {
	obs := &models.Observation{
		StationID: "51201",
		Timestamp: time.Date(2026, 3, 1, 11, 50, 0, 0, time.UTC),
		Waves:     models.WaveData{HeightM: models.Float(1.5)},
		Wind:      models.WindData{SpeedMS: models.Float(10), DirectionDeg: models.Float(270)},
		Atmosphere: models.AtmosphereData{
			WaterTempC: models.Float(25),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, renderObservation(&buf, obs, false))
	out := buf.String()

	assert.Contains(t, out, "Station 51201")
	assert.Contains(t, out, "4.9 ft")
	assert.Contains(t, out, "19 kt") // 10 m/s
	assert.Contains(t, out, "77.0 °F")
}
