// Package coastal decides whether a coordinate is admissible for marine
// resolution: inside a supported territory and close enough to the coast.
package coastal

import (
	"fmt"
	"log/slog"
)

// Gate is the point admissibility test. It admits a point in two stages:
// region admission against fixed territory boxes, then a land-exclusion test
// against either the coastal-strip boundary polygon or, when no boundary is
// loaded, the fallback inland rectangles.
type Gate struct {
	boundary *Boundary
	failOpen bool
	logger   *slog.Logger
}

// Option configures a Gate.
type Option func(*Gate)

// WithBoundary supplies the precomputed coastal-strip polygon. Without it the
// gate falls back to the inland exclusion rectangles.
func WithBoundary(b *Boundary) Option {
	return func(g *Gate) { g.boundary = b }
}

// FailOpen makes the land-exclusion stage admit everything. Used when the
// boundary artifact was expected but could not be loaded: degrading to
// "every in-region point is coastal" beats refusing all requests.
func FailOpen() Option {
	return func(g *Gate) { g.failOpen = true }
}

// NewGate builds a gate. logger may be nil.
func NewGate(logger *slog.Logger, opts ...Option) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Gate{logger: logger}
	for _, opt := range opts {
		opt(g)
	}
	if g.failOpen {
		g.logger.Warn("coastal gate running fail-open, land exclusion disabled")
	}
	return g
}

// IsCoastal reports whether (lat, lon) is admissible.
func (g *Gate) IsCoastal(lat, lon float64) bool {
	if _, ok := admittedRegion(lat, lon); !ok {
		return false
	}
	if g.failOpen {
		return true
	}
	if g.boundary != nil {
		return g.boundary.Contains(lat, lon)
	}
	_, inland := inlandZone(lat, lon)
	return !inland
}

// Explain returns a human-readable admissibility verdict for (lat, lon),
// distinguishing out-of-region points from in-region inland points.
func (g *Gate) Explain(lat, lon float64) string {
	region, ok := admittedRegion(lat, lon)
	if !ok {
		return fmt.Sprintf("%.4f, %.4f is outside all supported regions (US coastal waters and territories)", lat, lon)
	}
	if g.IsCoastal(lat, lon) {
		return fmt.Sprintf("%.4f, %.4f is in coastal %s", lat, lon, region.name)
	}
	if g.boundary != nil {
		return fmt.Sprintf("%.4f, %.4f is in %s but outside the coastal strip", lat, lon, region.name)
	}
	zone, _ := inlandZone(lat, lon)
	return fmt.Sprintf("%.4f, %.4f is in %s but in the excluded inland zone (%s)", lat, lon, region.name, zone.name)
}
