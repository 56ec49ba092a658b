// Package cli implements the pipelinereport command tree.
package cli

import (
	"go-pipelinereport/internal/app"
	"go-pipelinereport/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// appRuntime is filled by the root command before any subcommand runs.
type appRuntime struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewRoot creates the root command.
func NewRoot() *cobra.Command {
	rt := &appRuntime{}

	root := &cobra.Command{
		Use:   "pipelinereport",
		Short: "Report on pipeline executions of the last 24 hours",
		Long: `pipelinereport reads the most recent rows of the pipeline log table, keeps
those of the last 24 hours and writes a report.

Configuration comes from the environment (or .env.<APP_ENV>): DB_DRIVER, DB_DSN,
LOGS_TABLE, REPORT_FORMAT, REPORT_OUTPUT and friends.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := app.Setup()
			if err != nil {
				return err
			}
			rt.cfg = cfg
			rt.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.logger != nil {
				_ = rt.logger.Sync()
			}
		},
	}

	root.AddCommand(
		newGenerateCommand(rt),
		newServeCommand(rt),
		newTokenCommand(rt),
	)
	return root
}
