package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdomarsaleem1/calendar-analytics/config"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/insights"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/logging"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/report"
)

// Report command flags.
var (
	reportOutput string
	reportFormat string
	reportTitle  string
)

// ReportCommandDeps holds the dependencies for the report command.
type ReportCommandDeps struct {
	Config     *config.CLIConfig
	LoadConfig func() (*config.CLIConfig, error)
}

// DefaultReportDeps returns the default dependencies for production use.
func DefaultReportDeps() *ReportCommandDeps {
	return &ReportCommandDeps{
		LoadConfig: config.LoadConfig,
	}
}

// NewReportCommand creates the report command.
func NewReportCommand(deps *ReportCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultReportDeps()
	}

	cmd := &cobra.Command{
		Use:   "report <insights.json>",
		Short: "Render a saved analysis in another format",
		Long: `Render a saved analysis in another format.

Takes the JSON file written by "analyze --format json" and renders it
again, so one analysis run can produce markdown, HTML, and text reports
without reloading the calendars.

Examples:
  calan report insights.json
  calan report insights.json --format html --output report.html
  calan report insights.json --format text`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), deps, args[0])
		},
	}

	cmd.Flags().StringVar(&reportOutput, "output", "./report.md", "Report output path")
	cmd.Flags().StringVar(&reportFormat, "format", "", "Report format: text, markdown, html, json")
	cmd.Flags().StringVar(&reportTitle, "title", "", "Report title")

	return cmd
}

// runReport executes the report command.
func runReport(ctx context.Context, deps *ReportCommandDeps, inputPath string) error {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	deps.Config = cfg

	log := newRunLogger(cfg).WithContext(ctx)

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading insights file: %w", err)
	}
	var full insights.FullInsights
	if err := json.Unmarshal(data, &full); err != nil {
		return fmt.Errorf("decoding insights file: %w", err)
	}

	format, err := report.ParseFormat(formatOrDefault(reportFormat, cfg))
	if err != nil {
		return err
	}

	title := reportTitle
	if title == "" {
		title = "Calendar Analytics Report"
	}
	if err := report.NewGenerator().Save(&full, reportOutput, format, title); err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	analysisMetrics().RecordReportGenerated(string(format))
	log.Info("report rendered",
		logging.F("input", inputPath),
		logging.F("path", reportOutput),
		logging.F("format", string(format)))

	fmt.Printf("Report saved to %s\n", reportOutput)
	return nil
}
