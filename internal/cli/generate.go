package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"go-pipelinereport/internal/bootstrap"
	"go-pipelinereport/internal/report"
	"go-pipelinereport/internal/services"

	"github.com/spf13/cobra"
)

func newGenerateCommand(rt *appRuntime) *cobra.Command {
	var (
		format  string
		out     string
		nowFlag string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the report once and write it to disk",
		Long: `Generate the pipeline execution report for the 24 hours ending now.

Formats:
  markdown-html  Markdown document plus its HTML rendering (default output.md / output.html)
  html-table     Single HTML table with a numberOfExecution column (default output.html)

Examples:
  pipelinereport generate
  pipelinereport generate --format html-table --out reports/today.html
  pipelinereport generate --now 2026-10-19T06:00:00Z --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rt.cfg
			if cmd.Flags().Changed("format") {
				cfg.ReportFormat = format
			}
			if cmd.Flags().Changed("out") {
				cfg.ReportOutput = out
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			var now time.Time
			if nowFlag != "" {
				parsed, err := time.Parse(time.RFC3339, nowFlag)
				if err != nil {
					return fmt.Errorf("invalid --now %q: %w", nowFlag, err)
				}
				now = parsed
			}

			components, err := bootstrap.InitializeAppComponents(cfg, rt.logger, nil, nil)
			if err != nil {
				return err
			}
			result, err := components.ReportService.Generate(cmd.Context(), services.ReportRequest{
				Format:     report.Format(cfg.ReportFormat),
				OutputPath: cfg.ReportOutput,
				Now:        now,
			})
			if err != nil {
				return err
			}

			if !asJSON {
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "report format: markdown-html or html-table (overrides REPORT_FORMAT)")
	cmd.Flags().StringVar(&out, "out", "", "output path (overrides REPORT_OUTPUT)")
	cmd.Flags().StringVar(&nowFlag, "now", "", "RFC3339 reference instant of the 24h window (default: current time)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the filtered records and summary as JSON")
	return cmd
}
