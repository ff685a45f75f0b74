package cli

import (
	"github.com/spf13/cobra"
)

var buoyLast int

var buoyCmd = &cobra.Command{
	Use:   "buoy <station-id>",
	Short: "Latest observations from a specific NDBC buoy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer app.close()

		if buoyLast > 1 {
			observations, err := app.ndbc.RecentObservations(ctx, args[0], buoyLast)
			if err != nil {
				return err
			}
			return renderObservations(cmd.OutOrStdout(), observations, jsonOutput)
		}

		obs, err := app.resolver.FetchStation(ctx, args[0])
		if err != nil {
			return err
		}
		return renderObservation(cmd.OutOrStdout(), obs, jsonOutput)
	},
}

func init() {
	buoyCmd.Flags().IntVar(&buoyLast, "last", 1, "number of recent observations to show")
	rootCmd.AddCommand(buoyCmd)
}
