// Package stations provides the spatial index over the two station sets
// (NDBC buoys and CO-OPS tide stations) and the sqlite-backed provisioning
// that loads them at startup.
package stations

import (
	"errors"
	"math"
	"sort"

	"github.com/coastwatch/buoyant/internal/models"
)

// ErrNegativeRadius is returned for a negative search radius. This is a
// caller programming error, never retried.
var ErrNegativeRadius = errors.New("search radius must be non-negative")

const earthRadiusKm = 6371.0

// HaversineKm calculates the great-circle distance in kilometers between two
// lat/lon points.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// Index is an immutable set of stations supporting nearest and
// within-radius queries. Station counts are in the low thousands, so a full
// scan per query is fine; a grid index would be the extension point for
// larger sets.
type Index struct {
	stations []models.Station
}

// NewIndex builds an index from a station list, dropping stations whose
// coordinates are missing or out of range rather than letting them poison
// queries later. The list is copied; the index never mutates after this.
func NewIndex(list []models.Station) *Index {
	idx := &Index{stations: make([]models.Station, 0, len(list))}
	for _, s := range list {
		if !validCoordinate(s.Latitude, s.Longitude) {
			continue
		}
		idx.stations = append(idx.stations, s)
	}
	return idx
}

func validCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return false
	}
	// (0, 0) is the classic unparsed-coordinate artifact and is open ocean
	// off West Africa, outside every supported region anyway.
	return lat != 0 || lon != 0
}

// Len returns the number of usable stations in the index.
func (i *Index) Len() int { return len(i.stations) }

// WithinRadius returns all stations within radiusKm of (lat, lon), sorted
// ascending by distance. Ties keep original list order.
func (i *Index) WithinRadius(lat, lon, radiusKm float64) ([]models.CandidateMatch, error) {
	if radiusKm < 0 {
		return nil, ErrNegativeRadius
	}

	var matches []models.CandidateMatch
	for _, s := range i.stations {
		d := HaversineKm(lat, lon, s.Latitude, s.Longitude)
		if d <= radiusKm {
			matches = append(matches, models.CandidateMatch{Station: s, DistanceKm: d})
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].DistanceKm < matches[b].DistanceKm
	})

	return matches, nil
}

// Nearest returns the single closest station within maxDistanceKm, or nil
// when no station is in range.
func (i *Index) Nearest(lat, lon, maxDistanceKm float64) (*models.Station, float64, error) {
	if maxDistanceKm < 0 {
		return nil, 0, ErrNegativeRadius
	}

	best := -1
	bestDist := math.MaxFloat64
	for n, s := range i.stations {
		d := HaversineKm(lat, lon, s.Latitude, s.Longitude)
		if d <= maxDistanceKm && d < bestDist {
			best = n
			bestDist = d
		}
	}
	if best < 0 {
		return nil, 0, nil
	}
	s := i.stations[best]
	return &s, bestDist, nil
}
