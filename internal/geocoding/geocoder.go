// Package geocoding resolves zip codes and "City, ST" queries to
// coordinates using a locally provisioned table. No network calls at
// query time.
package geocoding

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// Location is a geocoded place.
type Location struct {
	Latitude  float64
	Longitude float64
	Name      string
}

// Geocoder answers location queries from the shared sqlite database.
type Geocoder struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewGeocoder opens (and if needed provisions) the zip code table at
// dbPath.
func NewGeocoder(dbPath string, logger *slog.Logger) (*Geocoder, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := ProvisionZipcodeTable(dbPath, logger)
	if err != nil {
		return nil, fmt.Errorf("provisioning zip code table: %w", err)
	}
	return &Geocoder{db: db, logger: logger}, nil
}

// Close releases the database handle.
func (g *Geocoder) Close() error { return g.db.Close() }

var zipcodePattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// Geocode resolves a zip code or a "City, ST" query.
func (g *Geocoder) Geocode(ctx context.Context, query string) (*Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	if zipcodePattern.MatchString(query) {
		// ZIP+4 suffixes don't change the centroid.
		return g.lookupZipcode(ctx, strings.SplitN(query, "-", 2)[0])
	}

	parts := strings.Split(query, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid format: expected a zip code or 'City, ST' (e.g. 'Chatham, MA')")
	}
	city := strings.TrimSpace(parts[0])
	state := strings.TrimSpace(parts[1])
	if city == "" || state == "" {
		return nil, fmt.Errorf("city and state cannot be empty")
	}
	return g.lookupCityState(ctx, city, state)
}

func (g *Geocoder) lookupZipcode(ctx context.Context, zipcode string) (*Location, error) {
	var city, state string
	var lat, lon float64

	err := g.db.QueryRowContext(ctx,
		"SELECT city, state, latitude, longitude FROM zipcodes WHERE zipcode = ?",
		zipcode,
	).Scan(&city, &state, &lat, &lon)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("zip code %s not found", zipcode)
	}
	if err != nil {
		return nil, fmt.Errorf("querying zip code: %w", err)
	}

	return &Location{
		Latitude:  lat,
		Longitude: lon,
		Name:      fmt.Sprintf("%s, %s %s", city, state, zipcode),
	}, nil
}

// lookupCityState returns the first matching zip code row, lowest zip
// first, matching case-insensitively.
func (g *Geocoder) lookupCityState(ctx context.Context, city, state string) (*Location, error) {
	var zipcode, foundCity, foundState string
	var lat, lon float64

	err := g.db.QueryRowContext(ctx,
		`SELECT zipcode, city, state, latitude, longitude FROM zipcodes
		 WHERE city = ? COLLATE NOCASE AND state = ? COLLATE NOCASE
		 ORDER BY zipcode LIMIT 1`,
		city, state,
	).Scan(&zipcode, &foundCity, &foundState, &lat, &lon)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no location found for %s, %s", city, state)
	}
	if err != nil {
		return nil, fmt.Errorf("querying city/state: %w", err)
	}

	return &Location{
		Latitude:  lat,
		Longitude: lon,
		Name:      fmt.Sprintf("%s, %s %s", foundCity, foundState, zipcode),
	}, nil
}
