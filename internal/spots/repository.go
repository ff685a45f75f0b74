// Package spots persists named locations the user wants to check
// repeatedly, so "buoyant watch home-break" works without re-geocoding.
package spots

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/coastwatch/buoyant/internal/database"
)

// Spot is a saved location.
type Spot struct {
	ID        int64
	Name      string
	Query     string // the zip or "City, ST" the user originally entered
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
}

// Repository handles persistence for saved spots.
type Repository struct {
	db *sql.DB
}

// NewRepository opens the shared database and ensures the spots table
// exists.
func NewRepository(dbPath string) (*Repository, error) {
	db, err := database.Open(dbPath)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS spots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			query TEXT,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_spots_name ON spots(name);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating spots table: %w", err)
	}
	return &Repository{db: db}, nil
}

// Close releases the database handle.
func (r *Repository) Close() error { return r.db.Close() }

// Save inserts or updates a spot by name.
func (r *Repository) Save(spot *Spot) error {
	if spot.CreatedAt.IsZero() {
		spot.CreatedAt = time.Now()
	}

	res, err := r.db.Exec(`
		INSERT INTO spots (name, query, latitude, longitude, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			query = excluded.query,
			latitude = excluded.latitude,
			longitude = excluded.longitude
	`, spot.Name, spot.Query, spot.Latitude, spot.Longitude, spot.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving spot: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		spot.ID = id
	}
	return nil
}

// Get returns the spot with the given name.
func (r *Repository) Get(name string) (*Spot, error) {
	var s Spot
	err := r.db.QueryRow(
		"SELECT id, name, query, latitude, longitude, created_at FROM spots WHERE name = ?",
		name,
	).Scan(&s.ID, &s.Name, &s.Query, &s.Latitude, &s.Longitude, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no saved spot named %q", name)
	}
	if err != nil {
		return nil, fmt.Errorf("querying spot: %w", err)
	}
	return &s, nil
}

// List returns all saved spots ordered by name.
func (r *Repository) List() ([]Spot, error) {
	rows, err := r.db.Query("SELECT id, name, query, latitude, longitude, created_at FROM spots ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing spots: %w", err)
	}
	defer rows.Close()

	var spots []Spot
	for rows.Next() {
		var s Spot
		if err := rows.Scan(&s.ID, &s.Name, &s.Query, &s.Latitude, &s.Longitude, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning spot: %w", err)
		}
		spots = append(spots, s)
	}
	return spots, rows.Err()
}

// Delete removes a spot by name.
func (r *Repository) Delete(name string) error {
	res, err := r.db.Exec("DELETE FROM spots WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting spot: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("no saved spot named %q", name)
	}
	return nil
}
