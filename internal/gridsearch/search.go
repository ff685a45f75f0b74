// Package gridsearch finds a usable forecast grid cell near a starting
// cell. NWS marine grid coverage is sparse and there is no way to ask
// the API which cells carry wave data, so we probe outward from the
// center cell in a small, bounded pattern.
package gridsearch

import (
	"context"
	"log/slog"
)

// Probe fetches and classifies a single grid cell. It returns nil both
// when the cell does not exist and when it exists but carries no marine
// data; the API does not let us tell those apart.
type Probe[T any] func(ctx context.Context, gridID string, x, y int) *T

// Offset is a cell displacement relative to the search center.
type Offset struct {
	DX int
	DY int
}

// Result pairs the data found with the offset it was found at.
type Result[T any] struct {
	Data   *T
	Offset Offset
	X      int
	Y      int
}

// ring1 is the center cell and its eight immediate neighbors.
var ring1 = []Offset{
	{0, 0},   // center
	{-1, 0},  // west
	{1, 0},   // east
	{0, -1},  // south
	{0, 1},   // north
	{-1, 1},  // northwest
	{1, -1},  // southeast
	{1, 1},   // northeast
	{-1, -1}, // southwest
}

// ring2 is the outer band: two cells out along each axis, then the
// knight's-move cells between them.
var ring2 = []Offset{
	{-2, 0},
	{2, 0},
	{0, -2},
	{0, 2},
	{-2, 1},
	{2, -1},
	{-1, 2},
	{1, -2},
	{-2, -1},
	{2, 1},
	{1, 2},
	{-1, -2},
}

// Search probes cells around (centerX, centerY) in a fixed order and
// returns the first cell whose probe yields data. At most 21 cells are
// probed; if none yield data the search reports nil and the caller is
// expected to fall back to another source rather than widen the ring.
func Search[T any](ctx context.Context, gridID string, centerX, centerY int, probe Probe[T], logger *slog.Logger) *Result[T] {
	if logger == nil {
		logger = slog.Default()
	}

	probed := 0
	for _, band := range [][]Offset{ring1, ring2} {
		for _, off := range band {
			if ctx.Err() != nil {
				return nil
			}
			x, y := centerX+off.DX, centerY+off.DY
			probed++
			if data := probe(ctx, gridID, x, y); data != nil {
				logger.Debug("grid search hit",
					"grid_id", gridID, "x", x, "y", y,
					"dx", off.DX, "dy", off.DY, "probed", probed)
				return &Result[T]{Data: data, Offset: off, X: x, Y: y}
			}
		}
	}

	logger.Debug("grid search exhausted", "grid_id", gridID, "probed", probed)
	return nil
}
