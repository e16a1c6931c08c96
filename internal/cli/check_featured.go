package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/storefront/internal/config"
	"github.com/mrlokans/storefront/internal/entrypoint"
	"github.com/mrlokans/storefront/internal/scheduler"
)

// ErrFeaturedInconsistent is returned when the featured list has problems.
var ErrFeaturedInconsistent = errors.New("featured list is inconsistent")

func newCheckFeaturedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-featured",
		Short: "Report gaps or duplicates in the featured books order",
		Long: `Loads the featured books and reports display orders that are not a dense
0..N-1 sequence, plus books featured more than once. Nothing is repaired.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := entrypoint.NewApp(config.NewConfig())
			if err != nil {
				return err
			}
			defer app.Close()

			problems, err := scheduler.CheckFeaturedOrder(cmd.Context(), app.Featured)
			if err != nil {
				return err
			}
			if len(problems) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Featured order is consistent")
				return nil
			}

			for _, problem := range problems {
				fmt.Fprintln(cmd.OutOrStdout(), "- "+problem)
			}
			return fmt.Errorf("%w: %d problem(s)", ErrFeaturedInconsistent, len(problems))
		},
	}
}
