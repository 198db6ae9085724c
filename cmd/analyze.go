package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mdomarsaleem1/calendar-analytics/config"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/ingest/calendar"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/ingest/hris"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/insights"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/logging"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/report"
)

// Analyze command flags.
var (
	analyzeHRIS      string
	analyzeCalendars string
	analyzeOutput    string
	analyzeFormat    string
	analyzeDomain    string
	analyzeRecommend bool
	analyzeOutputFmt string
)

// AnalyzeCommandDeps holds the dependencies for the analyze command.
type AnalyzeCommandDeps struct {
	Config     *config.CLIConfig
	LoadConfig func() (*config.CLIConfig, error)
}

// DefaultAnalyzeDeps returns the default dependencies for production use.
func DefaultAnalyzeDeps() *AnalyzeCommandDeps {
	return &AnalyzeCommandDeps{
		LoadConfig: config.LoadConfig,
	}
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(deps *AnalyzeCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultAnalyzeDeps()
	}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze calendar data against the employee directory",
		Long: `Analyze calendar data against the employee directory.

Loads an HR directory export and one or more calendar exports, runs the
full meeting analysis (types, timing, cost, cross-functional health,
manager one-on-one coverage), and writes a report.

The calendar path may be a single file or a directory of *.json / *.csv
exports, one per person, named after the owner's email address (with "@"
encoded as "_at_" and "." as "_").

Examples:
  calan analyze --hris hris_data.json --calendars ./calendars
  calan analyze --hris hris.csv --calendars me.json --output report.html --format html
  calan analyze --hris hris_data.json --calendars ./calendars -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), deps)
		},
	}

	cmd.Flags().StringVar(&analyzeHRIS, "hris", "", "HR directory export (.json or .csv, required)")
	cmd.Flags().StringVar(&analyzeCalendars, "calendars", "", "Calendar export file or directory (required)")
	cmd.Flags().StringVar(&analyzeOutput, "output", "./report.md", "Report output path")
	cmd.Flags().StringVar(&analyzeFormat, "format", "", "Report format: text, markdown, html, json")
	cmd.Flags().StringVar(&analyzeDomain, "domain", "", "Company email domain (default: from directory data)")
	cmd.Flags().BoolVar(&analyzeRecommend, "recommendations", true, "Include best-practice recommendations in the report")
	cmd.Flags().StringVarP(&analyzeOutputFmt, "out", "o", "", "Console output format: text, json, yaml")
	cmd.MarkFlagRequired("hris")
	cmd.MarkFlagRequired("calendars")

	return cmd
}

// analyzeResult is the console summary of an analysis run.
type analyzeResult struct {
	ReportPath    string  `json:"report_path" yaml:"report_path"`
	Employees     int     `json:"employees" yaml:"employees"`
	Calendars     int     `json:"calendars" yaml:"calendars"`
	TotalMeetings int     `json:"total_meetings" yaml:"total_meetings"`
	TotalHours    float64 `json:"total_hours" yaml:"total_hours"`
	AvgPerDay     float64 `json:"avg_meetings_per_day" yaml:"avg_meetings_per_day"`
}

// runAnalyze executes the analyze command.
func runAnalyze(ctx context.Context, deps *AnalyzeCommandDeps) error {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	deps.Config = cfg

	log := newRunLogger(cfg).WithContext(ctx)
	m := analysisMetrics()

	format, err := report.ParseFormat(formatOrDefault(analyzeFormat, cfg))
	if err != nil {
		return err
	}

	// Directory first: the company domain may come from it.
	domain := analyzeDomain
	if domain == "" {
		domain = cfg.CompanyDomain
	}
	hrisResult, err := hris.NewLoader(cfg.CompanyName, domain).LoadFile(analyzeHRIS)
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
	m.SetDirectorySize(len(org.Employees))
	log.Info("directory loaded",
		logging.F("company", org.CompanyName),
		logging.F("domain", org.Domain),
		logging.F("employees", len(org.Employees)))

	files, err := collectCalendarFiles(analyzeCalendars)
	if err != nil {
		return err
	}
	events, err := loadCalendarEvents(ctx, calendar.NewLoader(org.Domain), files, log)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return fmt.Errorf("no events found in %s", analyzeCalendars)
	}

	engine := insights.NewEngine(org, insights.Options{
		HourlyRate:   cfg.HourlyRate,
		WorkDayStart: cfg.WorkDayStart,
		WorkDayEnd:   cfg.WorkDayEnd,
	})

	started := time.Now()
	full := engine.Full(events, analyzeRecommend)
	m.RecordAnalysis("org", "ok", time.Since(started).Seconds())
	m.RecordEventsAnalyzed(len(events))

	title := "Calendar Analytics Report"
	if org.CompanyName != "" {
		title = org.CompanyName + " Calendar Analytics"
	}
	if err := report.NewGenerator().Save(full, analyzeOutput, format, title); err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	m.RecordReportGenerated(string(format))
	log.Info("report saved", logging.F("path", analyzeOutput), logging.F("format", string(format)))

	result := analyzeResult{
		ReportPath: analyzeOutput,
		Employees:  len(org.Employees),
		Calendars:  len(files),
	}
	if full.Summary != nil {
		result.TotalMeetings = full.Summary.TotalMeetings
		result.TotalHours = full.Summary.TotalHours
		result.AvgPerDay = full.Summary.AvgMeetingsPerDay
	}
	return outputAnalyze(cfg, result)
}

// formatOrDefault returns the report format from flag or config.
func formatOrDefault(flagValue string, cfg *config.CLIConfig) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg != nil {
		return cfg.ReportFormat
	}
	return ""
}

// outputAnalyze outputs the analysis summary.
func outputAnalyze(cfg *config.CLIConfig, result analyzeResult) error {
	switch resolveOutputFormat(analyzeOutputFmt, cfg) {
	case config.OutputFormatJSON:
		return outputJSON(result)
	case config.OutputFormatYAML:
		return outputYAML(result)
	default:
		return outputAnalyzeText(result)
	}
}

// outputAnalyzeText outputs the analysis summary in human-readable form.
func outputAnalyzeText(result analyzeResult) error {
	fmt.Printf("Report saved to %s\n\n", result.ReportPath)
	fmt.Printf("  Employees:      %d\n", result.Employees)
	fmt.Printf("  Calendars:      %d\n", result.Calendars)
	fmt.Printf("  Total Meetings: %d\n", result.TotalMeetings)
	fmt.Printf("  Total Hours:    %.1f\n", result.TotalHours)
	fmt.Printf("  Avg per Day:    %.1f\n", result.AvgPerDay)
	return nil
}
