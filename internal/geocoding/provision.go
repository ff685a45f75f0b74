package geocoding

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/coastwatch/buoyant/internal/database"
)

// zipcodeCSVURL is variable so tests can point it at a local server.
var zipcodeCSVURL = "https://raw.githubusercontent.com/midwire/free_zipcode_data/develop/all_us_zipcodes.csv"

// ProvisionZipcodeTable opens the shared database and builds the zipcodes
// table from the public CSV dump when it does not exist yet. Returns the
// open handle either way.
func ProvisionZipcodeTable(dbPath string, logger *slog.Logger) (*sql.DB, error) {
	db, err := database.Open(dbPath)
	if err != nil {
		return nil, err
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='zipcodes'").Scan(&count)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("checking for zipcodes table: %w", err)
	}
	if count > 0 {
		return db, nil
	}

	logger.Info("zip code table not found, provisioning", "url", zipcodeCSVURL)
	if err := buildZipcodeTable(db, logger); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func buildZipcodeTable(db *sql.DB, logger *slog.Logger) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS zipcodes (
			zipcode TEXT PRIMARY KEY,
			city TEXT NOT NULL,
			state TEXT NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_zipcodes_state ON zipcodes(state);
	`)
	if err != nil {
		return fmt.Errorf("creating zipcodes table: %w", err)
	}

	resp, err := http.Get(zipcodeCSVURL)
	if err != nil {
		return fmt.Errorf("downloading zip code data: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("zip code download returned status %d", resp.StatusCode)
	}

	count, err := importZipcodeCSV(db, resp.Body)
	if err != nil {
		return err
	}
	logger.Info("provisioned zip code table", "rows", count)
	return nil
}

// importZipcodeCSV streams the CSV into the zipcodes table. Rows with
// unparsable coordinates are skipped. CSV columns:
// Zipcode,ZipCodeType,City,State,LocationType,Lat,Long,...
func importZipcodeCSV(db *sql.DB, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	if _, err := reader.Read(); err != nil { // header
		return 0, fmt.Errorf("reading CSV header: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	stmt, err := tx.Prepare("INSERT OR IGNORE INTO zipcodes (zipcode, city, state, latitude, longitude) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	defer stmt.Close()

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil || len(record) < 7 {
			continue
		}

		lat, latErr := strconv.ParseFloat(record[5], 64)
		lon, lonErr := strconv.ParseFloat(record[6], 64)
		if latErr != nil || lonErr != nil {
			continue
		}

		if _, err := stmt.Exec(record[0], record[2], record[3], lat, lon); err != nil {
			continue
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}
