// Package cli holds the storefront command line: the server and the
// maintenance commands that run against the same database.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the storefront command tree. version is reported by serve.
func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storefront",
		Short: "Bookstore storefront and homepage administration",
		Long: `Storefront serves the bookstore landing page and the admin screens
used to edit it.

Configuration is read from the environment and an optional .env file.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCmd(version))
	cmd.AddCommand(newSeedHomepageCmd())
	cmd.AddCommand(newImportBooksCmd())
	cmd.AddCommand(newCheckFeaturedCmd())

	return cmd
}
