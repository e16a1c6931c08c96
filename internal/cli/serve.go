package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/storefront/internal/config"
	"github.com/mrlokans/storefront/internal/entrypoint"
)

func newServeCmd(version string) *cobra.Command {
	var port int32

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Example: `  # Start on the configured PORT (default 8080)
  storefront serve

  # Override the port
  storefront serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewConfig()
			if cmd.Flags().Changed("port") {
				cfg.HTTP.Port = port
			}
			return entrypoint.Run(cfg, version)
		},
	}

	cmd.Flags().Int32Var(&port, "port", 8080, "Port to listen on (overrides PORT)")

	return cmd
}
