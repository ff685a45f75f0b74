package coops

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastwatch/buoyant/internal/models"
)

const predictionsBody = `{
	"metadata": {"id": "8443970", "name": "Boston", "lat": "42.3539", "lon": "-71.0503"},
	"predictions": [
		{"t": "2026-03-01 04:12", "v": "9.412", "type": "H"},
		{"t": "2026-03-01 10:31", "v": "0.213", "type": "L"},
		{"t": "2026-03-01 16:40", "v": "8.977", "type": "H"},
		{"t": "bogus", "v": "1.0", "type": "L"},
		{"t": "2026-03-01 22:55", "v": "not-a-number", "type": "L"}
	]
}`

const waterLevelBody = `{
	"data": [
		{"t": "2026-03-01 12:00", "v": "4.821"},
		{"t": "2026-03-01 12:06", "v": "4.902"}
	]
}`

func TestGetTidePredictions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "predictions", q.Get("product"))
		assert.Equal(t, "MLLW", q.Get("datum"))
		assert.Equal(t, "hilo", q.Get("interval"))
		assert.Equal(t, "english", q.Get("units"))
		assert.Equal(t, "8443970", q.Get("station"))
		w.Write([]byte(predictionsBody))
	}))
	defer server.Close()

	client := NewClient(nil, nil)
	client.SetBaseURL(server.URL)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	data, err := client.GetTidePredictions(context.Background(), "8443970", start, start.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.Equal(t, "8443970", data.StationID)
	assert.Equal(t, "Boston", data.StationName)

	// The bogus time and unparsable height rows are dropped.
	require.Len(t, data.Events, 3)
	assert.Equal(t, models.TideHigh, data.Events[0].Type)
	assert.InDelta(t, 9.412, data.Events[0].Height, 0.001)
	assert.Equal(t, models.TideLow, data.Events[1].Type)
	assert.Equal(t, time.Date(2026, 3, 1, 16, 40, 0, 0, time.UTC), data.Events[2].Time)
}

func TestGetTidePredictionsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"metadata": {"id": "0000000"}, "predictions": []}`))
	}))
	defer server.Close()

	client := NewClient(nil, nil)
	client.SetBaseURL(server.URL)

	_, err := client.GetTidePredictions(context.Background(), "0000000", time.Now(), time.Now())
	assert.ErrorContains(t, err, "no tide predictions")
}

func TestGetWaterLevel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "water_level", r.URL.Query().Get("product"))
		w.Write([]byte(waterLevelBody))
	}))
	defer server.Close()

	client := NewClient(nil, nil)
	client.SetBaseURL(server.URL)

	level, err := client.GetWaterLevel(context.Background(), "8443970")
	require.NoError(t, err)
	require.NotNil(t, level)

	// Most recent reading wins.
	assert.InDelta(t, 4.902, *level, 0.001)
}

func TestGetWaterLevelNoSensor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	client := NewClient(nil, nil)
	client.SetBaseURL(server.URL)

	_, err := client.GetWaterLevel(context.Background(), "9999999")
	assert.ErrorContains(t, err, "no water level data")
}

func TestFetchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(nil, nil)
	client.SetBaseURL(server.URL)

	_, err := client.GetTidePredictions(context.Background(), "8443970", time.Now(), time.Now())
	assert.ErrorContains(t, err, "status 503")
}
