package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/storefront/internal/config"
	"github.com/mrlokans/storefront/internal/entities"
	"github.com/mrlokans/storefront/internal/entrypoint"
)

func newSeedHomepageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-homepage",
		Short: "Create the homepage settings row with default copy",
		Long: `Creates the single homepage settings row with the default English and
Tamil card copy. An existing row is left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := entrypoint.NewApp(config.NewConfig())
			if err != nil {
				return err
			}
			defer app.Close()

			created, err := app.Settings.EnsureHomePageSettings(cmd.Context(), entities.DefaultHomePageSettings())
			if err != nil {
				return fmt.Errorf("seed homepage settings: %w", err)
			}

			if created {
				fmt.Fprintln(cmd.OutOrStdout(), "Homepage settings created with default copy")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Homepage settings already exist, nothing to do")
			}
			return nil
		},
	}
}
