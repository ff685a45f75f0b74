package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastwatch/buoyant/internal/models"
)

type stubResolver struct {
	result *models.SeaStateResult
	err    error
}

func (s *stubResolver) ResolveSeaState(context.Context, float64, float64) (*models.SeaStateResult, error) {
	return s.result, s.err
}

func sampleResult() *models.SeaStateResult {
	station := models.Station{ID: "51201", Name: "Waimea Bay"}
	return &models.SeaStateResult{
		Location: models.Coordinate{Latitude: 21.3, Longitude: -157.8},
		Waves: &models.WaveReport{
			Station:    &station,
			DistanceKm: 2.4,
			Observation: models.WaveData{
				HeightM:         models.Float(1.5),
				DominantPeriodS: models.Float(13),
				DirectionDeg:    models.Float(315),
			},
		},
		Wind: &models.WindReport{
			Station:     &station,
			Observation: models.WindData{SpeedMS: models.Float(5), DirectionDeg: models.Float(90)},
			Source:      models.SourceNDBC,
		},
		Sources: []string{models.SourceNDBC},
	}
}

func TestModelResolvedMessage(t *testing.T) {
	m := NewModel(&stubResolver{}, "Honolulu, HI", 21.3, -157.8, time.Minute)

	updated, cmd := m.Update(resolvedMsg{result: sampleResult()})
	model := updated.(Model)

	assert.False(t, model.loading)
	require.NotNil(t, model.result)
	assert.NotNil(t, cmd, "a refresh must be scheduled after a result")
}

func TestModelViewRendersFamilies(t *testing.T) {
	m := NewModel(&stubResolver{}, "Honolulu, HI", 21.3, -157.8, time.Minute)
	updated, _ := m.Update(resolvedMsg{result: sampleResult()})
	view := updated.(Model).View()

	assert.Contains(t, view, "Honolulu, HI")
	assert.Contains(t, view, "4.9 ft") // 1.5 m
	assert.Contains(t, view, "13 s")
	assert.Contains(t, view, "NW (315°)")
	assert.Contains(t, view, "10 kt") // 5 m/s
	assert.Contains(t, view, "Waimea Bay")
	assert.Contains(t, view, "unavailable") // tide pane
	assert.Contains(t, view, "Sources: NDBC")
}

func TestModelViewLoading(t *testing.T) {
	m := NewModel(&stubResolver{}, "Honolulu, HI", 21.3, -157.8, time.Minute)
	assert.Contains(t, m.View(), "Resolving sea state")
}

func TestModelResolveFailure(t *testing.T) {
	m := NewModel(&stubResolver{}, "Honolulu, HI", 21.3, -157.8, time.Minute)

	updated, cmd := m.Update(resolveFailedMsg{err: errors.New("no marine data available near (21.3000, -157.8000)")})
	model := updated.(Model)

	assert.False(t, model.loading)
	assert.Contains(t, model.View(), "no marine data available")
	assert.NotNil(t, cmd, "failed refreshes still reschedule")
}

func TestModelQuitKey(t *testing.T) {
	m := NewModel(&stubResolver{}, "Honolulu, HI", 21.3, -157.8, time.Minute)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModelManualRefresh(t *testing.T) {
	m := NewModel(&stubResolver{result: sampleResult()}, "Honolulu, HI", 21.3, -157.8, time.Minute)
	updated, _ := m.Update(resolvedMsg{result: sampleResult()})
	model := updated.(Model)

	refreshed, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.True(t, refreshed.(Model).loading)
	assert.NotNil(t, cmd)
}

func TestDegreesToCompass(t *testing.T) {
	cases := map[float64]string{
		0:     "N",
		22.5:  "NNE",
		90:    "E",
		180:   "S",
		270:   "W",
		315:   "NW",
		348.8: "NNW",
		359:   "N",
	}
	for deg, want := range cases {
		assert.Equal(t, want, degreesToCompass(deg), "%.1f°", deg)
	}
}
