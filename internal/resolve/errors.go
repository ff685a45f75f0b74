package resolve

import "fmt"

// GateRejection means the requested coordinate is not a supported coastal
// location. Terminal for the request.
type GateRejection struct {
	Latitude  float64
	Longitude float64
	Reason    string
}

func (e *GateRejection) Error() string {
	return fmt.Sprintf("(%.4f, %.4f) is not a supported coastal location: %s", e.Latitude, e.Longitude, e.Reason)
}

// TotalFailure means every measurement family failed for an admitted
// coordinate. Distinct from a partial result, which is a success with
// some families nil.
type TotalFailure struct {
	Latitude  float64
	Longitude float64
}

func (e *TotalFailure) Error() string {
	return fmt.Sprintf("no marine data available near (%.4f, %.4f)", e.Latitude, e.Longitude)
}
