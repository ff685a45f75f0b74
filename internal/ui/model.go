// Package ui is the live conditions dashboard: a bubbletea model that
// re-resolves one location on an interval and renders the three
// measurement families side by side.
package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/coastwatch/buoyant/internal/models"
)

// resolveTimeout bounds one refresh cycle; individual fetches inside it
// carry their own shorter timeouts.
const resolveTimeout = 60 * time.Second

// Resolver is the slice of the resolution engine the dashboard needs.
type Resolver interface {
	ResolveSeaState(ctx context.Context, lat, lon float64) (*models.SeaStateResult, error)
}

// Model is the dashboard state.
type Model struct {
	resolver     Resolver
	locationName string
	lat, lon     float64
	refreshEvery time.Duration

	spinner     spinner.Model
	loading     bool
	result      *models.SeaStateResult
	err         error
	lastUpdated time.Time
	width       int
}

// NewModel creates a dashboard for one location.
func NewModel(resolver Resolver, locationName string, lat, lon float64, refreshEvery time.Duration) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	return Model{
		resolver:     resolver,
		locationName: locationName,
		lat:          lat,
		lon:          lon,
		refreshEvery: refreshEvery,
		spinner:      s,
		loading:      true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.resolveCmd())
}

func (m Model) resolveCmd() tea.Cmd {
	resolver, lat, lon := m.resolver, m.lat, m.lon
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
		defer cancel()

		result, err := resolver.ResolveSeaState(ctx, lat, lon)
		if err != nil {
			return resolveFailedMsg{err: err}
		}
		return resolvedMsg{result: result}
	}
}

func (m Model) scheduleRefresh() tea.Cmd {
	return tea.Tick(m.refreshEvery, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			if !m.loading {
				m.loading = true
				return m, tea.Batch(m.spinner.Tick, m.resolveCmd())
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case resolvedMsg:
		m.loading = false
		m.err = nil
		m.result = msg.result
		m.lastUpdated = time.Now()
		return m, m.scheduleRefresh()

	case resolveFailedMsg:
		m.loading = false
		m.err = msg.err
		return m, m.scheduleRefresh()

	case refreshTickMsg:
		if !m.loading {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.resolveCmd())
		}
	}
	return m, nil
}

func (m Model) View() string {
	header := titleStyle.Render(fmt.Sprintf("⚓ %s", m.locationName)) + "\n" +
		mutedStyle.Render(fmt.Sprintf("%.4f, %.4f", m.lat, m.lon)) + "\n\n"

	if m.loading && m.result == nil && m.err == nil {
		return header + m.spinner.View() + " Resolving sea state...\n"
	}

	var body string
	if m.err != nil {
		body = errorStyle.Render(m.err.Error()) + "\n"
	}

	if m.result != nil {
		panes := lipgloss.JoinHorizontal(lipgloss.Top,
			paneStyle.Render(renderWaves(m.result.Waves)),
			paneStyle.Render(renderWind(m.result.Wind)),
			paneStyle.Render(renderTides(m.result.Tides)),
		)
		body += panes + "\n"
		body += mutedStyle.Render(fmt.Sprintf("Sources: %s", joinSources(m.result.Sources)))
		if !m.lastUpdated.IsZero() {
			body += mutedStyle.Render(fmt.Sprintf("  ·  updated %s", m.lastUpdated.Format("15:04:05")))
		}
		if m.loading {
			body += "  " + m.spinner.View()
		}
		body += "\n"
	}

	return header + body + helpStyle.Render("r: refresh  ·  q: quit") + "\n"
}
