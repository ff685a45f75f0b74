package gridsearch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cell struct{ x, y int }

// recordingProbe returns a probe that logs every visited cell and
// yields data only for cells in hits.
func recordingProbe(visited *[]cell, hits map[cell]bool) Probe[string] {
	return func(ctx context.Context, gridID string, x, y int) *string {
		*visited = append(*visited, cell{x, y})
		if hits[cell{x, y}] {
			s := "data"
			return &s
		}
		return nil
	}
}

func TestSearchCenterHit(t *testing.T) {
	var visited []cell
	probe := recordingProbe(&visited, map[cell]bool{{150, 140}: true})

	res := Search(context.Background(), "HFO", 150, 140, probe, nil)
	require.NotNil(t, res)

	assert.Equal(t, Offset{0, 0}, res.Offset)
	assert.Equal(t, 150, res.X)
	assert.Equal(t, 140, res.Y)
	assert.Len(t, visited, 1, "search must stop at the first hit")
}

func TestSearchVisitationOrder(t *testing.T) {
	var visited []cell
	probe := recordingProbe(&visited, nil)

	res := Search(context.Background(), "HFO", 0, 0, probe, nil)
	assert.Nil(t, res)

	want := []cell{
		{0, 0},
		{-1, 0}, {1, 0}, {0, -1}, {0, 1},
		{-1, 1}, {1, -1}, {1, 1}, {-1, -1},
		{-2, 0}, {2, 0}, {0, -2}, {0, 2},
		{-2, 1}, {2, -1}, {-1, 2}, {1, -2},
		{-2, -1}, {2, 1}, {1, 2}, {-1, -2},
	}
	assert.Equal(t, want, visited)
}

func TestSearchProbeBound(t *testing.T) {
	var visited []cell
	probe := recordingProbe(&visited, nil)

	res := Search(context.Background(), "MTR", 50, 60, probe, nil)

	assert.Nil(t, res)
	assert.Len(t, visited, 21, "exhausted search probes exactly 21 cells")
}

func TestSearchFirstHitWins(t *testing.T) {
	var visited []cell
	// Both east (ring 1) and west-2 (ring 2) have data; east is
	// visited first so it must win.
	probe := recordingProbe(&visited, map[cell]bool{
		{11, 20}: true,
		{8, 20}:  true,
	})

	res := Search(context.Background(), "SEW", 10, 20, probe, nil)
	require.NotNil(t, res)

	assert.Equal(t, Offset{1, 0}, res.Offset)
	assert.Equal(t, "data", *res.Data)
	assert.Len(t, visited, 3)
}

func TestSearchRingTwoHit(t *testing.T) {
	var visited []cell
	probe := recordingProbe(&visited, map[cell]bool{{10, 22}: true})

	res := Search(context.Background(), "SEW", 10, 20, probe, nil)
	require.NotNil(t, res)

	assert.Equal(t, Offset{0, 2}, res.Offset)
	assert.Len(t, visited, 13)
}

func TestSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var visited []cell
	probe := recordingProbe(&visited, map[cell]bool{{0, 0}: true})

	res := Search(ctx, "HFO", 0, 0, probe, nil)

	assert.Nil(t, res)
	assert.Empty(t, visited, "cancelled search must not probe")
}
