package cli

import (
	"go-pipelinereport/internal/app"

	"github.com/spf13/cobra"
)

func newServeCommand(rt *appRuntime) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve reports, health and metrics over HTTP",
		Long: `Start an HTTP server exposing:
  GET /health          source database reachability
  GET /metrics         Prometheus metrics
  GET /api/v1/reports  generate and return a report (?format=, ?view=json, ?now=)

Each report request rewrites the configured output files. Requests carrying
?now= only render the report and leave the files on disk untouched.

The report API requires a bearer token when JWT_SECRET is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				rt.cfg.Port = port
			}
			return app.Serve(cmd.Context(), rt.cfg, rt.logger)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	return cmd
}
