package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mdomarsaleem1/calendar-analytics/config"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/insights"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/logging"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/report"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/sample"
)

// Demo command flags.
var (
	demoEmployees int
	demoDays      int
)

// demoSeed keeps demo output identical between runs.
const demoSeed = 42

// DemoCommandDeps holds the dependencies for the demo command.
type DemoCommandDeps struct {
	Config     *config.CLIConfig
	LoadConfig func() (*config.CLIConfig, error)
}

// DefaultDemoDeps returns the default dependencies for production use.
func DefaultDemoDeps() *DemoCommandDeps {
	return &DemoCommandDeps{
		LoadConfig: config.LoadConfig,
	}
}

// NewDemoCommand creates the demo command.
func NewDemoCommand(deps *DemoCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultDemoDeps()
	}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run an end-to-end analysis on generated data",
		Long: `Run an end-to-end analysis on generated data.

Generates a synthetic company in memory, analyzes it, and prints the
executive summary plus a handful of key findings. Nothing is written to
disk. Useful for a first look at what the analysis produces.

Examples:
  calan demo
  calan demo --employees 60 --days 30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), deps)
		},
	}

	cmd.Flags().IntVar(&demoEmployees, "employees", 30, "Number of employees to generate")
	cmd.Flags().IntVar(&demoDays, "days", 14, "Number of calendar days to generate")

	return cmd
}

// runDemo executes the demo command.
func runDemo(ctx context.Context, deps *DemoCommandDeps) error {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	deps.Config = cfg

	log := newRunLogger(cfg).WithContext(ctx)

	if demoEmployees < 1 {
		return fmt.Errorf("employees must be at least 1")
	}
	if demoDays < 1 {
		return fmt.Errorf("days must be at least 1")
	}

	gen := sample.NewGenerator("demo.com", demoSeed)
	org := gen.GenerateOrganization(demoEmployees, "Demo Corp")
	calendars := gen.GenerateCalendars(org, demoDays, time.Time{}, 4)

	// Calendars overlap: the same meeting appears in every attendee's
	// calendar, so collapse by event ID.
	seen := make(map[string]bool)
	var events []*model.Event
	for _, calEvents := range calendars {
		for _, e := range calEvents {
			if seen[e.ID] {
				continue
			}
			seen[e.ID] = true
			events = append(events, e)
		}
	}
	log.Info("demo data generated",
		logging.F("employees", len(org.Employees)),
		logging.F("events", len(events)))

	engine := insights.NewEngine(org, insights.Options{
		HourlyRate:   cfg.HourlyRate,
		WorkDayStart: cfg.WorkDayStart,
		WorkDayEnd:   cfg.WorkDayEnd,
	})
	started := time.Now()
	full := engine.Full(events, true)
	analysisMetrics().RecordAnalysis("demo", "ok", time.Since(started).Seconds())
	analysisMetrics().RecordEventsAnalyzed(len(events))

	fmt.Println(report.NewGenerator().ExecutiveSummary(full))
	printKeyInsights(full)
	return nil
}

// printKeyInsights prints a short digest of the most interesting findings.
func printKeyInsights(full *insights.FullInsights) {
	fmt.Println("KEY INSIGHTS")
	fmt.Println("------------")

	if m := full.SizeDurationMatrix; m != nil {
		small := m.SmallShort + m.SmallMedium + m.SmallLong
		large := m.LargeShort + m.LargeMedium + m.LargeLong
		fmt.Printf("  Small meetings (2-4 people): %d\n", small)
		fmt.Printf("  Large meetings (9+ people):  %d\n", large)
	}

	if h := full.CrossFunctionalHealth; h != nil {
		fmt.Printf("  Collaboration health: %.0f/100 (%s), %.1f%% cross-functional\n",
			h.HealthScore, h.HealthRating, h.CrossFunctionalPercentage)
	}

	if bp := full.BestPractices; bp != nil {
		if len(bp.HighPriority) > 0 {
			fmt.Println("\n  Top issues:")
			for i, rec := range bp.HighPriority {
				if i >= 2 {
					break
				}
				fmt.Printf("    - %s: %s\n", rec.Issue, rec.Finding)
			}
		}
		if len(bp.PositivePatterns) > 0 {
			fmt.Println("\n  Working well:")
			for i, p := range bp.PositivePatterns {
				if i >= 2 {
					break
				}
				fmt.Printf("    - %s: %s\n", p.Pattern, p.Finding)
			}
		}
	}
}
