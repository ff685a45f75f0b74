package coastal

import (
	"fmt"

	shp "github.com/jonas-p/go-shp"
)

// Boundary is the precomputed coastal-strip ring polygon: a landmass outline
// buffered ~0.15 degrees outward and inward, with the inner buffer
// subtracted. Any point inside one of its rings is coastal regardless of
// water-body type. The polygon is produced offline; this loader only reads
// it.
type Boundary struct {
	rings []ring
}

type ring struct {
	pts                            []point
	minLat, maxLat, minLon, maxLon float64
}

type point struct {
	lon float64
	lat float64
}

// LoadBoundary reads the coastal-strip polygon from a shapefile. Each part
// of each polygon record becomes one ring.
func LoadBoundary(path string) (*Boundary, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening boundary shapefile: %w", err)
	}
	defer reader.Close()

	b := &Boundary{}
	for reader.Next() {
		_, s := reader.Shape()
		polygon, ok := s.(*shp.Polygon)
		if !ok {
			continue
		}
		for partIdx := 0; partIdx < len(polygon.Parts); partIdx++ {
			start := int(polygon.Parts[partIdx])
			end := len(polygon.Points)
			if partIdx+1 < len(polygon.Parts) {
				end = int(polygon.Parts[partIdx+1])
			}
			if end-start < 3 {
				continue
			}
			r := ring{minLat: 91, maxLat: -91, minLon: 181, maxLon: -181}
			for i := start; i < end; i++ {
				p := point{lon: polygon.Points[i].X, lat: polygon.Points[i].Y}
				r.pts = append(r.pts, p)
				if p.lat < r.minLat {
					r.minLat = p.lat
				}
				if p.lat > r.maxLat {
					r.maxLat = p.lat
				}
				if p.lon < r.minLon {
					r.minLon = p.lon
				}
				if p.lon > r.maxLon {
					r.maxLon = p.lon
				}
			}
			b.rings = append(b.rings, r)
		}
	}

	if len(b.rings) == 0 {
		return nil, fmt.Errorf("boundary shapefile %s contains no polygon rings", path)
	}
	return b, nil
}

// Contains runs a ray-casting point-in-polygon test against each ring,
// with a bounding-box pre-check per ring.
func (b *Boundary) Contains(lat, lon float64) bool {
	for _, r := range b.rings {
		if lat < r.minLat || lat > r.maxLat || lon < r.minLon || lon > r.maxLon {
			continue
		}
		if r.contains(lat, lon) {
			return true
		}
	}
	return false
}

func (r ring) contains(lat, lon float64) bool {
	inside := false
	n := len(r.pts)
	j := n - 1
	for i := 0; i < n; i++ {
		pi, pj := r.pts[i], r.pts[j]
		if (pi.lat > lat) != (pj.lat > lat) &&
			lon < (pj.lon-pi.lon)*(lat-pi.lat)/(pj.lat-pi.lat)+pi.lon {
			inside = !inside
		}
		j = i
	}
	return inside
}
