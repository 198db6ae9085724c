package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mdomarsaleem1/calendar-analytics/config"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/ingest/calendar"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/ingest/hris"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/insights"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/logging"
)

// Individual command flags.
var (
	individualEmail     string
	individualHRIS      string
	individualCalendars string
	individualOutput    string
	individualOutputFmt string
)

// IndividualCommandDeps holds the dependencies for the individual command.
type IndividualCommandDeps struct {
	Config     *config.CLIConfig
	LoadConfig func() (*config.CLIConfig, error)
}

// DefaultIndividualDeps returns the default dependencies for production use.
func DefaultIndividualDeps() *IndividualCommandDeps {
	return &IndividualCommandDeps{
		LoadConfig: config.LoadConfig,
	}
}

// NewIndividualCommand creates the individual command.
func NewIndividualCommand(deps *IndividualCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultIndividualDeps()
	}

	cmd := &cobra.Command{
		Use:   "individual",
		Short: "Analyze one person's meeting load",
		Long: `Analyze one person's meeting load.

Filters the loaded calendars to meetings the given person attends and
writes their personal summary (meeting counts, hours, types, busiest
days, back-to-back pressure) as a JSON report.

Examples:
  calan individual --email jane_at_example_com@example.com --hris hris_data.json --calendars ./calendars
  calan individual --email jane@example.com --hris hris.csv --calendars ./calendars --output jane.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndividual(cmd.Context(), deps)
		},
	}

	cmd.Flags().StringVar(&individualEmail, "email", "", "Email address of the person to analyze (required)")
	cmd.Flags().StringVar(&individualHRIS, "hris", "", "HR directory export (.json or .csv, required)")
	cmd.Flags().StringVar(&individualCalendars, "calendars", "", "Calendar export file or directory (required)")
	cmd.Flags().StringVar(&individualOutput, "output", "", "Report output path (default ./report_<email>.json)")
	cmd.Flags().StringVarP(&individualOutputFmt, "out", "o", "", "Console output format: text, json, yaml")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("hris")
	cmd.MarkFlagRequired("calendars")

	return cmd
}

// individualResult is the console summary of an individual analysis run.
type individualResult struct {
	Email         string  `json:"email" yaml:"email"`
	ReportPath    string  `json:"report_path" yaml:"report_path"`
	TotalMeetings int     `json:"total_meetings" yaml:"total_meetings"`
	TotalHours    float64 `json:"total_hours" yaml:"total_hours"`
}

// runIndividual executes the individual command.
func runIndividual(ctx context.Context, deps *IndividualCommandDeps) error {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	deps.Config = cfg

	log := newRunLogger(cfg).WithContext(ctx)

	email := strings.ToLower(strings.TrimSpace(individualEmail))
	if email == "" {
		return fmt.Errorf("email must not be empty")
	}

	hrisResult, err := hris.NewLoader(cfg.CompanyName, cfg.CompanyDomain).LoadFile(individualHRIS)
	if err != nil {
		return fmt.Errorf("loading directory data: %w", err)
	}
	org := hrisResult.Org
	for _, warning := range hrisResult.Warnings {
		log.Warn("directory load warning", logging.F("warning", warning))
	}
	if org.Domain == "" {
		org.Domain = firstEmailDomain(org)
	}

	files, err := collectCalendarFiles(individualCalendars)
	if err != nil {
		return err
	}
	events, err := loadCalendarEvents(ctx, calendar.NewLoader(org.Domain), files, log)
	if err != nil {
		return err
	}

	engine := insights.NewEngine(org, insights.Options{
		HourlyRate:   cfg.HourlyRate,
		WorkDayStart: cfg.WorkDayStart,
		WorkDayEnd:   cfg.WorkDayEnd,
	})
	started := time.Now()
	ins, ok := engine.AnalyzeIndividual(events, email)
	if !ok {
		analysisMetrics().RecordAnalysis("individual", "error", time.Since(started).Seconds())
		return fmt.Errorf("%s is not in the employee directory", email)
	}
	analysisMetrics().RecordAnalysis("individual", "ok", time.Since(started).Seconds())

	outPath := individualOutput
	if outPath == "" {
		outPath = "./report_" + strings.ReplaceAll(email, "@", "_") + ".json"
	}
	data, err := json.MarshalIndent(ins, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	log.Info("individual report saved", logging.F("email", email), logging.F("path", outPath))

	result := individualResult{
		Email:         email,
		ReportPath:    outPath,
		TotalMeetings: ins.Summary.TotalMeetings,
		TotalHours:    ins.Summary.TotalHours,
	}
	return outputIndividual(cfg, result)
}

// outputIndividual outputs the individual analysis summary.
func outputIndividual(cfg *config.CLIConfig, result individualResult) error {
	switch resolveOutputFormat(individualOutputFmt, cfg) {
	case config.OutputFormatJSON:
		return outputJSON(result)
	case config.OutputFormatYAML:
		return outputYAML(result)
	default:
		fmt.Printf("Report saved to %s\n\n", result.ReportPath)
		fmt.Printf("  Email:          %s\n", result.Email)
		fmt.Printf("  Total Meetings: %d\n", result.TotalMeetings)
		fmt.Printf("  Total Hours:    %.1f\n", result.TotalHours)
		return nil
	}
}
