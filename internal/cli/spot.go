package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coastwatch/buoyant/internal/spots"
)

var spotCmd = &cobra.Command{
	Use:   "spot",
	Short: "Manage saved locations",
}

var spotSaveCmd = &cobra.Command{
	Use:   "save <name> <zip | \"City, ST\">",
	Short: "Save a location under a name",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer app.close()

		query := strings.Join(args[1:], " ")
		loc, err := app.locate(ctx, query)
		if err != nil {
			return err
		}

		repo, err := spots.NewRepository(app.cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer repo.Close()

		spot := &spots.Spot{
			Name:      args[0],
			Query:     query,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
		}
		if err := repo.Save(spot); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %q → %s\n", spot.Name, loc.Name)
		return nil
	},
}

var spotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved locations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.close()

		repo, err := spots.NewRepository(app.cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer repo.Close()

		list, err := repo.List()
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No saved spots. Add one with: buoyant spot save <name> <location>")
			return nil
		}
		for _, s := range list {
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s (%.4f, %.4f)\n", s.Name, s.Query, s.Latitude, s.Longitude)
		}
		return nil
	},
}

var spotRemoveCmd = &cobra.Command{
	Use:     "rm <name>",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove a saved location",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.close()

		repo, err := spots.NewRepository(app.cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer repo.Close()

		if err := repo.Delete(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %q\n", args[0])
		return nil
	},
}

func init() {
	spotCmd.AddCommand(spotSaveCmd, spotListCmd, spotRemoveCmd)
	rootCmd.AddCommand(spotCmd)
}
