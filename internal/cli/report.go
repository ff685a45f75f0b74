package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report <zip | \"City, ST\">",
	Short: "Full sea state report for a location",
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

		result, err := app.resolver.ResolveSeaState(ctx, loc.Latitude, loc.Longitude)
		if err != nil {
			return err
		}
		return renderResult(cmd.OutOrStdout(), loc.Name, result, jsonOutput)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
