package ndbc

// compassDegrees maps the standard 16-point compass rose to bearings.
// N is 0, each step clockwise adds 22.5.
var compassDegrees = map[string]float64{
	"N":   0,
	"NNE": 22.5,
	"NE":  45,
	"ENE": 67.5,
	"E":   90,
	"ESE": 112.5,
	"SE":  135,
	"SSE": 157.5,
	"S":   180,
	"SSW": 202.5,
	"SW":  225,
	"WSW": 247.5,
	"W":   270,
	"WNW": 292.5,
	"NW":  315,
	"NNW": 337.5,
}

// compassToDegrees converts a cardinal token to a bearing. Unrecognized
// tokens map to absent, never to zero.
func compassToDegrees(token string) (float64, bool) {
	deg, ok := compassDegrees[token]
	return deg, ok
}
