package stations

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/coastwatch/buoyant/internal/database"
	"github.com/coastwatch/buoyant/internal/models"
	_ "modernc.org/sqlite"
)

var (
	tideStationURL = "https://api.tidesandcurrents.noaa.gov/mdapi/prod/webapi/stations.json?type=tidepredictions"
	buoyStationURL = "https://www.ndbc.noaa.gov/data/stations/station_table.txt"

	provisionMu sync.Mutex
)

// tideStationResponse matches the CO-OPS MDAPI station list payload.
type tideStationResponse struct {
	Stations []struct {
		ID        string  `json:"id"`
		Name      string  `json:"name"`
		Latitude  float64 `json:"lat"`
		Longitude float64 `json:"lng"`
	} `json:"stations"`
}

// NeedsProvisioning checks whether the station tables exist yet.
func NeedsProvisioning(dbPath string) (bool, error) {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return true, nil
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return false, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('buoy_stations', 'tide_stations')").Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking for station tables: %w", err)
	}
	return count < 2, nil
}

// ProvisionDatabase downloads both station lists into the sqlite database.
// When a download fails the bundled fallback list for that set is inserted
// instead, so the process always starts with something to index.
func ProvisionDatabase(ctx context.Context, dbPath string, logger *slog.Logger) error {
	provisionMu.Lock()
	defer provisionMu.Unlock()

	if logger == nil {
		logger = slog.Default()
	}

	needs, err := NeedsProvisioning(dbPath)
	if err != nil {
		return err
	}
	if !needs {
		return nil
	}

	logger.Info("station tables not found, provisioning", "path", dbPath)

	db, err := database.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database for building: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS buoy_stations (
			id TEXT PRIMARY KEY,
			name TEXT,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL
		);
		CREATE TABLE IF NOT EXISTS tide_stations (
			id TEXT PRIMARY KEY,
			name TEXT,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_buoy_stations_coords ON buoy_stations(latitude, longitude);
		CREATE INDEX IF NOT EXISTS idx_tide_stations_coords ON tide_stations(latitude, longitude);
	`); err != nil {
		return fmt.Errorf("creating station tables: %w", err)
	}

	buoys, err := fetchBuoyStations(ctx)
	if err != nil {
		logger.Warn("buoy station download failed, using bundled fallback list", "error", err)
		buoys = fallbackBuoyStations
	}
	if err := insertStations(db, "buoy_stations", buoys, logger); err != nil {
		return fmt.Errorf("inserting buoy stations: %w", err)
	}

	tides, err := fetchTideStations(ctx)
	if err != nil {
		logger.Warn("tide station download failed, using bundled fallback list", "error", err)
		tides = fallbackTideStations
	}
	if err := insertStations(db, "tide_stations", tides, logger); err != nil {
		return fmt.Errorf("inserting tide stations: %w", err)
	}

	logger.Info("station database provisioned", "path", dbPath, "buoys", len(buoys), "tide_stations", len(tides))
	return nil
}

// LoadIndexes reads both station sets out of the database into immutable
// spatial indexes. Provisioning must have run first.
func LoadIndexes(dbPath string) (buoys *Index, tides *Index, err error) {
	db, err := database.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening station database: %w", err)
	}
	defer db.Close()

	buoyList, err := readStations(db, "buoy_stations")
	if err != nil {
		return nil, nil, err
	}
	tideList, err := readStations(db, "tide_stations")
	if err != nil {
		return nil, nil, err
	}
	return NewIndex(buoyList), NewIndex(tideList), nil
}

func readStations(db *sql.DB, table string) ([]models.Station, error) {
	rows, err := db.Query("SELECT id, name, latitude, longitude FROM " + table)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	var list []models.Station
	for rows.Next() {
		var s models.Station
		if err := rows.Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude); err != nil {
			continue
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func insertStations(db *sql.DB, table string, list []models.Station, logger *slog.Logger) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO " + table + " (id, name, latitude, longitude) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	count := 0
	for _, s := range list {
		if _, err := stmt.Exec(s.ID, s.Name, s.Latitude, s.Longitude); err != nil {
			logger.Warn("station insert failed", "table", table, "id", s.ID, "error", err)
			continue
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s: %w", table, err)
	}
	logger.Info("stations inserted", "table", table, "count", count)
	return nil
}

// fetchTideStations downloads the CO-OPS MDAPI tide prediction station list.
func fetchTideStations(ctx context.Context) ([]models.Station, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequestWithContext(ctx, "GET", tideStationURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching tide stations: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("CO-OPS MDAPI returned status %d", resp.StatusCode)
	}

	var parsed tideStationResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding tide station list: %w", err)
	}

	list := make([]models.Station, 0, len(parsed.Stations))
	for _, s := range parsed.Stations {
		list = append(list, models.Station{
			ID:        s.ID,
			Name:      s.Name,
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
		})
	}
	return list, nil
}

// fetchBuoyStations downloads and parses the NDBC station table, a
// pipe-delimited text file with one station per line.
func fetchBuoyStations(ctx context.Context) ([]models.Station, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequestWithContext(ctx, "GET", buoyStationURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching buoy stations: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NDBC station table returned status %d", resp.StatusCode)
	}

	var list []models.Station
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s, ok := parseStationTableLine(line)
		if !ok {
			continue
		}
		list = append(list, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading station table: %w", err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("station table contained no parsable stations")
	}
	return list, nil
}

// parseStationTableLine parses one NDBC station_table.txt line:
//
//	ID | OWNER | TTYPE | HULL | NAME | PAYLOAD | LOCATION | TIMEZONE | ...
//
// LOCATION starts with "30.000 N 90.000 W". Stations with unparsable
// locations are skipped, not fatal.
func parseStationTableLine(line string) (models.Station, bool) {
	fields := strings.Split(line, "|")
	if len(fields) < 7 {
		return models.Station{}, false
	}

	id := strings.TrimSpace(fields[0])
	name := strings.TrimSpace(fields[4])
	loc := strings.Fields(strings.TrimSpace(fields[6]))
	if id == "" || len(loc) < 4 {
		return models.Station{}, false
	}

	lat, err := strconv.ParseFloat(loc[0], 64)
	if err != nil {
		return models.Station{}, false
	}
	if loc[1] == "S" {
		lat = -lat
	}

	lon, err := strconv.ParseFloat(loc[2], 64)
	if err != nil {
		return models.Station{}, false
	}
	if loc[3] == "W" {
		lon = -lon
	}

	return models.Station{ID: id, Name: name, Latitude: lat, Longitude: lon}, true
}
