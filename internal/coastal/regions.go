package coastal

// rect is a closed lat/lon box. All region and exclusion geometry below is
// axis-aligned; the real coastal-strip polygon (see boundary.go) supersedes
// the exclusion rectangles whenever it is available.
type rect struct {
	name   string
	minLat float64
	maxLat float64
	minLon float64
	maxLon float64
}

func (r rect) contains(lat, lon float64) bool {
	return lat >= r.minLat && lat <= r.maxLat && lon >= r.minLon && lon <= r.maxLon
}

// admittedRegions covers each supported territory. Points outside every
// region are rejected outright, before any land test.
var admittedRegions = []rect{
	{name: "mainland US", minLat: 24.5, maxLat: 49.5, minLon: -125.0, maxLon: -66.9},
	{name: "Alaska", minLat: 51.0, maxLat: 71.5, minLon: -179.95, maxLon: -129.9},
	{name: "Hawaii", minLat: 18.5, maxLat: 22.75, minLon: -160.5, maxLon: -154.5},
	{name: "Puerto Rico / USVI", minLat: 17.5, maxLat: 18.6, minLon: -68.0, maxLon: -64.5},
	{name: "Guam / Pacific territories", minLat: 13.0, maxLat: 20.2, minLon: 144.5, maxLon: 146.1},
}

// inlandZones are known-inland boxes used only when no boundary polygon is
// loaded. They are deliberately coarse: the buffered coastal-strip polygon is
// the production land test, these keep obviously landlocked queries (Denver,
// Salt Lake City, Atlanta) out when that artifact is missing.
var inlandZones = []rect{
	{name: "interior west", minLat: 31.5, maxLat: 49.0, minLon: -116.5, maxLon: -95.0},
	{name: "interior east", minLat: 33.0, maxLat: 44.5, minLon: -95.0, maxLon: -81.5},
	{name: "interior Alaska", minLat: 63.5, maxLat: 67.5, minLon: -158.0, maxLon: -141.0},
}

func admittedRegion(lat, lon float64) (rect, bool) {
	for _, r := range admittedRegions {
		if r.contains(lat, lon) {
			return r, true
		}
	}
	return rect{}, false
}

func inlandZone(lat, lon float64) (rect, bool) {
	for _, z := range inlandZones {
		if z.contains(lat, lon) {
			return z, true
		}
	}
	return rect{}, false
}
