// Package report renders analysis results as text, markdown, HTML, or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mdomarsaleem1/calendar-analytics/pkg/classify"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/insights"
)

// Format is a report output format.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

// ParseFormat validates a format string, defaulting to markdown when empty.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported report format: %q", s)
}

// Generator renders insight reports. GeneratedAt is stamped into the text
// and markdown headers.
type Generator struct {
	GeneratedAt time.Time
}

func NewGenerator() *Generator {
	return &Generator{GeneratedAt: time.Now()}
}

// Render produces the report in the requested format.
func (g *Generator) Render(ins *insights.FullInsights, format Format, title string) (string, error) {
	switch format {
	case FormatText:
		return g.ExecutiveSummary(ins), nil
	case FormatMarkdown:
		return g.Markdown(ins, title), nil
	case FormatHTML:
		return g.HTML(ins, title), nil
	case FormatJSON:
		return g.JSON(ins)
	}
	return "", fmt.Errorf("unsupported report format: %q", format)
}

// Save renders the report and writes it to path.
func (g *Generator) Save(ins *insights.FullInsights, path string, format Format, title string) error {
	content, err := g.Render(ins, format, title)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// ExecutiveSummary renders a concise fixed-width text summary.
func (g *Generator) ExecutiveSummary(ins *insights.FullInsights) string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)
	sub := strings.Repeat("-", 40)

	fmt.Fprintf(&b, "%s\nCALENDAR ANALYTICS - EXECUTIVE SUMMARY\n%s\n\n", rule, rule)

	s := ins.Summary
	if s != nil {
		fmt.Fprintf(&b, "Analysis Period: %d days\n", s.UniqueDaysAnalyzed)
		fmt.Fprintf(&b, "Generated: %s\n\n", g.GeneratedAt.Format("2006-01-02 15:04"))
		fmt.Fprintf(&b, "KEY METRICS\n%s\n", sub)
		fmt.Fprintf(&b, "Total Meetings:          %10d\n", s.TotalMeetings)
		fmt.Fprintf(&b, "Total Hours:             %10.1f\n", s.TotalHours)
		fmt.Fprintf(&b, "Avg Meetings/Day:        %10.1f\n", s.AvgMeetingsPerDay)
		fmt.Fprintf(&b, "Avg Hours/Day:           %10.1f\n", s.AvgHoursPerDay)
		fmt.Fprintf(&b, "Avg Meeting Duration:    %10.0f min\n", s.AvgMeetingDurationMinutes)
		fmt.Fprintf(&b, "Avg Attendees:           %10.1f\n", s.AvgAttendees)
		fmt.Fprintf(&b, "Recurring Meetings:      %10.1f%%\n", s.RecurringPercentage)
		fmt.Fprintf(&b, "External Meetings:       %10.1f%%\n\n", s.ExternalPercentage)
	}

	if bp := ins.BestPractices; bp != nil {
		if len(bp.HighPriority) > 0 {
			fmt.Fprintf(&b, "HIGH PRIORITY ISSUES\n%s\n", sub)
			for _, issue := range bp.HighPriority {
				fmt.Fprintf(&b, "• %s\n  %s\n", issue.Issue, issue.Finding)
			}
			b.WriteString("\n")
		}
		if len(bp.PositivePatterns) > 0 {
			fmt.Fprintf(&b, "POSITIVE PATTERNS\n%s\n", sub)
			for _, p := range bp.PositivePatterns {
				fmt.Fprintf(&b, "• %s\n", p.Pattern)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString(rule)
	return b.String()
}

// Markdown renders the full report as markdown.
func (g *Generator) Markdown(ins *insights.FullInsights, title string) string {
	if title == "" {
		title = "Calendar Analytics Report"
	}
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "*Generated: %s*\n\n", g.GeneratedAt.Format("2006-01-02 15:04"))

	b.WriteString("## Table of Contents\n")
	b.WriteString("1. [Executive Summary](#executive-summary)\n")
	b.WriteString("2. [Meeting Size & Duration](#meeting-size--duration)\n")
	b.WriteString("3. [Meeting Types](#meeting-types)\n")
	b.WriteString("4. [Time Patterns](#time-patterns)\n")
	b.WriteString("5. [Cross-Functional Collaboration](#cross-functional-collaboration)\n")
	b.WriteString("6. [Recommendations](#recommendations)\n\n")

	g.writeSummarySection(&b, ins)
	g.writeMatrixSection(&b, ins)
	g.writeTypesSection(&b, ins)
	g.writeTimingSection(&b, ins)
	g.writeCrossFunctionalSection(&b, ins)
	g.writeRecommendationsSection(&b, ins)

	return b.String()
}

func (g *Generator) writeSummarySection(b *strings.Builder, ins *insights.FullInsights) {
	b.WriteString("## Executive Summary\n\n")
	s := ins.Summary
	if s == nil {
		return
	}
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| Total Meetings | %d |\n", s.TotalMeetings)
	fmt.Fprintf(b, "| Total Hours | %.1f |\n", s.TotalHours)
	fmt.Fprintf(b, "| Days Analyzed | %d |\n", s.UniqueDaysAnalyzed)
	fmt.Fprintf(b, "| Avg Meetings/Day | %.1f |\n", s.AvgMeetingsPerDay)
	fmt.Fprintf(b, "| Avg Hours/Day | %.1f |\n", s.AvgHoursPerDay)
	fmt.Fprintf(b, "| Avg Duration | %.0f min |\n", s.AvgMeetingDurationMinutes)
	fmt.Fprintf(b, "| Recurring %% | %.1f%% |\n", s.RecurringPercentage)
	fmt.Fprintf(b, "| External %% | %.1f%% |\n\n", s.ExternalPercentage)
}

func (g *Generator) writeMatrixSection(b *strings.Builder, ins *insights.FullInsights) {
	b.WriteString("## Meeting Size & Duration\n\n")
	b.WriteString("### 3x3 Matrix (Count / Hours)\n\n")
	m := ins.SizeDurationMatrix
	if m == nil {
		return
	}
	b.WriteString("| Size \\ Duration | Short (≤30m) | Medium (31-60m) | Long (>60m) |\n")
	b.WriteString("|-----------------|--------------|-----------------|-------------|\n")
	fmt.Fprintf(b, "| Small | %d (%.1fh) | %d (%.1fh) | %d (%.1fh) |\n",
		m.SmallShort, m.SmallShortHours, m.SmallMedium, m.SmallMediumHours, m.SmallLong, m.SmallLongHours)
	fmt.Fprintf(b, "| Medium | %d (%.1fh) | %d (%.1fh) | %d (%.1fh) |\n",
		m.MediumShort, m.MediumShortHours, m.MediumMedium, m.MediumMediumHours, m.MediumLong, m.MediumLongHours)
	fmt.Fprintf(b, "| Large | %d (%.1fh) | %d (%.1fh) | %d (%.1fh) |\n\n",
		m.LargeShort, m.LargeShortHours, m.LargeMedium, m.LargeMediumHours, m.LargeLong, m.LargeLongHours)
}

// typeOrder fixes the row order of the meeting-type table.
var typeOrder = []classify.MeetingType{
	classify.TypeOneOnOne,
	classify.TypeSmallTeam,
	classify.TypeLargeTeam,
	classify.TypeAllHands,
	classify.TypeExternal,
}

func (g *Generator) writeTypesSection(b *strings.Builder, ins *insights.FullInsights) {
	b.WriteString("## Meeting Types\n\n")
	b.WriteString("### 1:1 vs Team Meetings\n\n")

	if len(ins.OneOnOneVsTeam) > 0 {
		b.WriteString("| Type | Count | Hours | % of Meetings | % of Time |\n")
		b.WriteString("|------|-------|-------|---------------|-----------|\n")
		for _, mt := range typeOrder {
			stats, ok := ins.OneOnOneVsTeam[mt]
			if !ok {
				continue
			}
			fmt.Fprintf(b, "| %s | %d | %.1f | %.1f%% | %.1f%% |\n",
				mt, stats.Count, stats.Hours, stats.PercentageOfMeetings, stats.PercentageOfTime)
		}
		b.WriteString("\n")
	}

	b.WriteString("### Recurring vs Ad-hoc\n\n")
	if r := ins.RecurringVsAdhoc; r != nil {
		b.WriteString("| Type | Count | Hours | Avg Duration | Avg Attendees |\n")
		b.WriteString("|------|-------|-------|--------------|---------------|\n")
		fmt.Fprintf(b, "| Recurring | %d | %.1f | %.0f min | %.1f |\n",
			r.Recurring.Count, r.Recurring.Hours, r.Recurring.AvgDurationMinutes, r.Recurring.AvgAttendees)
		fmt.Fprintf(b, "| Ad-hoc | %d | %.1f | %.0f min | %.1f |\n\n",
			r.Adhoc.Count, r.Adhoc.Hours, r.Adhoc.AvgDurationMinutes, r.Adhoc.AvgAttendees)
	}
}

func (g *Generator) writeTimingSection(b *strings.Builder, ins *insights.FullInsights) {
	b.WriteString("## Time Patterns\n\n")
	t := ins.TimingAnalysis
	if t == nil {
		return
	}
	fmt.Fprintf(b, "**Busiest Day:** %s\n\n", orNA(t.BusiestDay))
	fmt.Fprintf(b, "**Peak Hour:** %s\n\n", orNA(t.BusiestHour))

	b.WriteString("| Time Period | Meetings | Hours |\n")
	b.WriteString("|-------------|----------|-------|\n")
	fmt.Fprintf(b, "| Early Morning (<9am) | %d | %.1f |\n", t.EarlyMorningMeetings.Count, t.EarlyMorningMeetings.Hours)
	fmt.Fprintf(b, "| Lunch Time (12-1pm) | %d | %.1f |\n", t.LunchTimeMeetings.Count, t.LunchTimeMeetings.Hours)
	fmt.Fprintf(b, "| Late Evening (>6pm) | %d | %.1f |\n\n", t.LateEveningMeetings.Count, t.LateEveningMeetings.Hours)
}

func (g *Generator) writeCrossFunctionalSection(b *strings.Builder, ins *insights.FullInsights) {
	b.WriteString("## Cross-Functional Collaboration\n\n")
	cf := ins.CrossFunctionalHealth
	if cf == nil {
		return
	}
	fmt.Fprintf(b, "**Health Score:** %.0f/100 (%s)\n\n", cf.HealthScore, orNA(cf.HealthRating))
	fmt.Fprintf(b, "**Cross-Functional Meetings:** %.1f%%\n\n", cf.CrossFunctionalPercentage)

	if len(cf.StrongestConnections) > 0 {
		b.WriteString("### Strongest Connections\n\n")
		connections := cf.StrongestConnections
		if len(connections) > 3 {
			connections = connections[:3]
		}
		for _, conn := range connections {
			fmt.Fprintf(b, "- %s ↔ %s: %d meetings\n", conn.FunctionA, conn.FunctionB, conn.MeetingCount)
		}
		b.WriteString("\n")
	}
}

func (g *Generator) writeRecommendationsSection(b *strings.Builder, ins *insights.FullInsights) {
	b.WriteString("## Recommendations\n\n")
	bp := ins.BestPractices
	if bp == nil {
		return
	}

	if len(bp.HighPriority) > 0 {
		b.WriteString("### \U0001F534 High Priority\n\n")
		for _, rec := range bp.HighPriority {
			fmt.Fprintf(b, "**%s**\n", rec.Issue)
			fmt.Fprintf(b, "- *Finding:* %s\n", rec.Finding)
			fmt.Fprintf(b, "- *Recommendation:* %s\n", rec.Recommendation)
			fmt.Fprintf(b, "- *Impact:* %s\n\n", rec.Impact)
		}
	}

	if len(bp.MediumPriority) > 0 {
		b.WriteString("### \U0001F7E1 Medium Priority\n\n")
		for _, rec := range bp.MediumPriority {
			fmt.Fprintf(b, "**%s**\n", rec.Issue)
			fmt.Fprintf(b, "- *Finding:* %s\n", rec.Finding)
			fmt.Fprintf(b, "- *Recommendation:* %s\n\n", rec.Recommendation)
		}
	}

	if len(bp.PositivePatterns) > 0 {
		b.WriteString("### \U0001F7E2 Positive Patterns\n\n")
		for _, p := range bp.PositivePatterns {
			fmt.Fprintf(b, "- **%s**: %s\n", p.Pattern, p.Finding)
		}
		b.WriteString("\n")
	}
}

// JSON renders the raw insight structures.
func (g *Generator) JSON(ins *insights.FullInsights) (string, error) {
	data, err := json.MarshalIndent(ins, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode insights: %w", err)
	}
	return string(data), nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
