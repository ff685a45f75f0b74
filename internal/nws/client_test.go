package nws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const pointBody = `{"properties":{"gridId":"HFO","gridX":154,"gridY":143}}`

const gridBody = `{"properties":{
	"updateTime":"2025-08-30T12:00:00+00:00",
	"waveHeight":{"uom":"wmoUnit:m","values":[
		{"validTime":"2025-08-30T12:00:00+00:00/PT2H","value":1.2},
		{"validTime":"2025-08-30T14:00:00+00:00/BROKEN","value":1.4}
	]},
	"temperature":{"uom":"wmoUnit:degC","values":[
		{"validTime":"2025-08-30T12:00:00+00:00/PT1H","value":26.0}
	]}
}}`

const forecastBody = `{"properties":{"periods":[
	{"name":"This Afternoon","startTime":"2025-08-30T12:00:00-10:00","temperature":84,
	 "windSpeed":"10 to 15 mph","windDirection":"ENE","shortForecast":"Mostly Sunny",
	 "detailedForecast":"Mostly sunny, with a high near 84."}
]}}`

const stationsBody = `{"features":[
	{"geometry":{"coordinates":[-157.9,21.32]},"properties":{"stationIdentifier":"PHNL","name":"Honolulu Intl"}},
	{"geometry":{"coordinates":[-157.75,21.45]},"properties":{"stationIdentifier":"PHNG","name":"Kaneohe Bay MCAS"}}
]}`

const observationBody = `{"properties":{
	"timestamp":"2025-08-30T21:53:00+00:00",
	"temperature":{"unitCode":"wmoUnit:degC","value":27.2},
	"windDirection":{"unitCode":"wmoUnit:degree_(angle)","value":70},
	"windSpeed":{"unitCode":"wmoUnit:km_h-1","value":18.36},
	"windGust":{"unitCode":"wmoUnit:km_h-1","value":null},
	"barometricPressure":{"unitCode":"wmoUnit:Pa","value":101690}
}}`

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/points/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(pointBody))
	})
	mux.HandleFunc("/gridpoints/HFO/154,143/forecast", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(forecastBody))
	})
	mux.HandleFunc("/gridpoints/HFO/154,143/stations", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(stationsBody))
	})
	mux.HandleFunc("/gridpoints/HFO/154,143", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(gridBody))
	})
	mux.HandleFunc("/stations/PHNL/observations/latest", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(observationBody))
	})
	return httptest.NewServer(mux)
}

func TestPointGrid(t *testing.T) {
	server := testServer(t)
	defer server.Close()

	client := NewClient(nil, nil, nil)
	client.SetBaseURL(server.URL)

	gp, err := client.PointGrid(context.Background(), 21.3, -157.8)
	if err != nil {
		t.Fatalf("PointGrid() error = %v", err)
	}
	if gp.GridID != "HFO" || gp.GridX != 154 || gp.GridY != 143 {
		t.Errorf("grid = %+v, want HFO 154,143", gp)
	}
}

func TestGridData(t *testing.T) {
	server := testServer(t)
	defer server.Close()

	client := NewClient(nil, nil, nil)
	client.SetBaseURL(server.URL)

	g, err := client.GridData(context.Background(), "HFO", 154, 143)
	if err != nil {
		t.Fatalf("GridData() error = %v", err)
	}

	if !g.HasWaveData() {
		t.Error("grid cell with waveHeight values should have wave data")
	}

	ref := time.Date(2025, 8, 30, 12, 30, 0, 0, time.UTC)
	e, ok := g.Current("waveHeight", ref)
	if !ok || e.Value == nil || *e.Value != 1.2 {
		t.Errorf("Current(waveHeight) = %+v, %v", e, ok)
	}

	// The entry with the broken duration exists but matches no instant.
	if _, ok := g.Current("waveHeight", time.Date(2025, 8, 30, 14, 30, 0, 0, time.UTC)); ok {
		t.Error("malformed-duration entry should be a zero-length interval")
	}

	// Non-series properties (updateTime) are skipped, not fatal.
	if _, ok := g.Properties["updateTime"]; ok {
		t.Error("string property should not appear in the series map")
	}
}

func TestForecast(t *testing.T) {
	server := testServer(t)
	defer server.Close()

	client := NewClient(nil, nil, nil)
	client.SetBaseURL(server.URL)

	periods, err := client.Forecast(context.Background(), "HFO", 154, 143)
	if err != nil {
		t.Fatalf("Forecast() error = %v", err)
	}
	if len(periods) != 1 {
		t.Fatalf("got %d periods, want 1", len(periods))
	}
	p := periods[0]
	if p.WindSpeed != "10 to 15 mph" || p.WindDirection != "ENE" {
		t.Errorf("wind = %q %q", p.WindSpeed, p.WindDirection)
	}
}

func TestGridStations(t *testing.T) {
	server := testServer(t)
	defer server.Close()

	client := NewClient(nil, nil, nil)
	client.SetBaseURL(server.URL)

	stations, err := client.GridStations(context.Background(), "HFO", 154, 143)
	if err != nil {
		t.Fatalf("GridStations() error = %v", err)
	}
	if len(stations) != 2 {
		t.Fatalf("got %d stations, want 2", len(stations))
	}
	if stations[0].ID != "PHNL" || stations[0].Latitude != 21.32 || stations[0].Longitude != -157.9 {
		t.Errorf("first station = %+v", stations[0])
	}
}

func TestLatestStationObservation(t *testing.T) {
	server := testServer(t)
	defer server.Close()

	client := NewClient(nil, nil, nil)
	client.SetBaseURL(server.URL)

	obs, err := client.LatestStationObservation(context.Background(), "PHNL")
	if err != nil {
		t.Fatalf("LatestStationObservation() error = %v", err)
	}

	if obs.Wind.SpeedMS == nil || *obs.Wind.SpeedMS < 5.09 || *obs.Wind.SpeedMS > 5.11 {
		t.Errorf("wind speed = %v, want 5.1 m/s (18.36 km/h)", obs.Wind.SpeedMS)
	}
	if obs.Wind.GustMS != nil {
		t.Errorf("null gust should be absent, got %v", *obs.Wind.GustMS)
	}
	if obs.Wind.DirectionDeg == nil || *obs.Wind.DirectionDeg != 70 {
		t.Errorf("wind direction = %v, want 70", obs.Wind.DirectionDeg)
	}
	if obs.Atmosphere.PressureHPa == nil || *obs.Atmosphere.PressureHPa != 1016.9 {
		t.Errorf("pressure = %v, want 1016.9 hPa", obs.Atmosphere.PressureHPa)
	}
}

func TestFetchNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(nil, nil, nil)
	client.SetBaseURL(server.URL)

	if _, err := client.GridData(context.Background(), "HFO", 1, 1); err == nil {
		t.Fatal("404 should surface as an error")
	}
}
