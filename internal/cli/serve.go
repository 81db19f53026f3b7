package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/boothtree/pkg/api"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve tree builds over HTTP",
		Long: `Serve runs the HTTP API until interrupted:

  GET /healthz
  GET /v1/trees/{width}
  GET /v1/trees/{width}/layout
  GET /v1/trees/{width}/artifacts/{format}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.config.Server.Addr
			}
			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			printInfo("Serving on %s", addr)
			return api.New(runner, c.Logger).ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}
