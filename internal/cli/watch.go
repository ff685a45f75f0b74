package cli

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/coastwatch/buoyant/internal/spots"
	"github.com/coastwatch/buoyant/internal/ui"
)

var watchRefresh time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <spot-name | zip | \"City, ST\">",
	Short: "Live dashboard that refreshes on an interval",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer app.close()

		query := strings.Join(args, " ")
		name, lat, lon := query, 0.0, 0.0

		// A bare word might be a saved spot; try that first.
		if repo, repoErr := spots.NewRepository(app.cfg.DatabasePath); repoErr == nil {
			if spot, err := repo.Get(query); err == nil {
				name, lat, lon = spot.Name, spot.Latitude, spot.Longitude
			}
			repo.Close()
		}

		if lat == 0 && lon == 0 {
			loc, err := app.locate(ctx, query)
			if err != nil {
				return err
			}
			name, lat, lon = loc.Name, loc.Latitude, loc.Longitude
		}

		model := ui.NewModel(app.resolver, name, lat, lon, watchRefresh)
		_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchRefresh, "refresh", 10*time.Minute, "refresh interval")
	rootCmd.AddCommand(watchCmd)
}
