package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var coordsCmd = &cobra.Command{
	Use:   "coords <lat> <lon>",
	Short: "Sea state report for raw coordinates",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lat, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid latitude %q", args[0])
		}
		lon, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid longitude %q", args[1])
		}

		ctx := cmd.Context()
		app, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer app.close()

		result, err := app.resolver.ResolveSeaState(ctx, lat, lon)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("%.4f, %.4f", lat, lon)
		return renderResult(cmd.OutOrStdout(), name, result, jsonOutput)
	},
}

func init() {
	rootCmd.AddCommand(coordsCmd)
}
