package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast <zip | \"City, ST\">",
	Short: "Text forecast for a location's grid cell",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer app.close()

		loc, err := app.locate(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}

		grid, err := app.nws.PointGrid(ctx, loc.Latitude, loc.Longitude)
		if err != nil {
			return fmt.Errorf("no forecast grid for %s: %w", loc.Name, err)
		}
		periods, err := app.nws.Forecast(ctx, grid.GridID, grid.GridX, grid.GridY)
		if err != nil {
			return err
		}
		return renderForecast(cmd.OutOrStdout(), loc.Name, periods, jsonOutput)
	},
}

func init() {
	rootCmd.AddCommand(forecastCmd)
}
