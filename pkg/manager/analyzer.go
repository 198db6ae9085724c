// Package manager analyzes how people managers spend their meeting time:
// coaching in 1:1s, skip-level engagement, team meetings, and signals of
// over-monitoring.
package manager

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/mdomarsaleem1/calendar-analytics/pkg/classify"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"
)

// DefaultMinOneOnOneHours is the monthly 1:1 hours below which a
// manager-report relationship is flagged.
const DefaultMinOneOnOneHours = 1.0

// DefaultMicromanagementThreshold is the monitoring score at and above which a
// manager is flagged for micromanagement patterns.
const DefaultMicromanagementThreshold = 6.0

// TimeAllocation is the meeting-time breakdown for a single manager.
type TimeAllocation struct {
	ManagerEmail      string `json:"manager_email"`
	ManagerName       string `json:"manager_name"`
	DirectReportCount int    `json:"direct_report_count"`

	TotalMeetingHours float64 `json:"total_meeting_hours"`

	OneOnOneHours        float64 `json:"one_on_one_hours"`
	SkipLevelHours       float64 `json:"skip_level_hours"`
	TeamMeetingHours     float64 `json:"team_meeting_hours"`
	CrossFunctionalHours float64 `json:"cross_functional_hours"`
	ExternalHours        float64 `json:"external_hours"`
	StatusUpdateHours    float64 `json:"status_update_hours"`
	StrategicHours       float64 `json:"strategic_hours"`
	OperationalHours     float64 `json:"operational_hours"`

	OneOnOneCount       int `json:"one_on_one_count"`
	SkipLevelCount      int `json:"skip_level_count"`
	TeamMeetingCount    int `json:"team_meeting_count"`
	MeetingsWithReports int `json:"meetings_with_reports"`
}

// Percentages returns the share of total meeting time per allocation bucket.
// Empty when the manager has no meeting time.
func (t *TimeAllocation) Percentages() map[string]float64 {
	if t.TotalMeetingHours == 0 {
		return map[string]float64{}
	}
	pct := func(hours float64) float64 {
		return round1(hours / t.TotalMeetingHours * 100)
	}
	return map[string]float64{
		"one_on_one_pct":       pct(t.OneOnOneHours),
		"skip_level_pct":       pct(t.SkipLevelHours),
		"team_meeting_pct":     pct(t.TeamMeetingHours),
		"cross_functional_pct": pct(t.CrossFunctionalHours),
		"external_pct":         pct(t.ExternalHours),
	}
}

// OneOnOneRatio is the share of meeting time spent in 1:1s with reports.
func (t *TimeAllocation) OneOnOneRatio() float64 {
	if t.TotalMeetingHours == 0 {
		return 0
	}
	return t.OneOnOneHours / t.TotalMeetingHours
}

// CoachingTimePerReport is average 1:1 hours per direct report.
func (t *TimeAllocation) CoachingTimePerReport() float64 {
	if t.DirectReportCount == 0 {
		return 0
	}
	return t.OneOnOneHours / float64(t.DirectReportCount)
}

// MonitoringIndicator scores over-monitoring behavior on a 0-10 scale.
// Status-meeting share and the ratio of group meetings with reports to 1:1s
// both push the score up.
func (t *TimeAllocation) MonitoringIndicator() float64 {
	if t.MeetingsWithReports == 0 {
		return 0
	}

	statusRatio := t.StatusUpdateHours / math.Max(t.TotalMeetingHours, 1)

	groupMeetings := float64(t.MeetingsWithReports - t.OneOnOneCount)
	groupRatio := groupMeetings / math.Max(float64(t.OneOnOneCount), 1)

	score := statusRatio*5 + math.Min(groupRatio*2, 5)
	return round1(math.Min(score, 10))
}

// Insights returns actionable observations for this manager.
func (t *TimeAllocation) Insights() []string {
	var insights []string

	oneOnOnePct := t.Percentages()["one_on_one_pct"]

	if oneOnOnePct < 15 && t.DirectReportCount > 0 {
		insights = append(insights, fmt.Sprintf(
			"Low 1:1 time (%.1f%%). Consider increasing direct coaching time with %d reports.",
			oneOnOnePct, t.DirectReportCount))
	} else if oneOnOnePct > 40 {
		insights = append(insights, fmt.Sprintf(
			"High 1:1 time (%.1f%%). Ensure team alignment through group discussions isn't being missed.",
			oneOnOnePct))
	}

	if t.DirectReportCount > 0 {
		if perReport := t.CoachingTimePerReport(); perReport < 1 {
			insights = append(insights, fmt.Sprintf(
				"Only %.1f hrs/report in 1:1s. Consider more frequent check-ins.", perReport))
		}
	}

	if score := t.MonitoringIndicator(); score > 6 {
		insights = append(insights, fmt.Sprintf(
			"High monitoring score (%.1f/10). Consider empowering team with more autonomy.", score))
	}

	if t.SkipLevelCount == 0 && t.DirectReportCount > 3 {
		insights = append(insights,
			"No skip-level meetings detected. Consider connecting with reports' teams for broader visibility.")
	}

	strategicPct := t.StrategicHours / math.Max(t.TotalMeetingHours, 1) * 100
	if strategicPct < 10 && t.TotalMeetingHours > 20 {
		insights = append(insights,
			"Low strategic meeting time. Ensure sufficient focus on long-term planning and vision work.")
	}

	return insights
}

// Analyzer computes leadership time analytics over a directory.
type Analyzer struct {
	Org *model.Organization
}

// NewAnalyzer creates a manager analyzer for the organization.
func NewAnalyzer(org *model.Organization) *Analyzer {
	return &Analyzer{Org: org}
}

// AnalyzeManager breaks down where one manager's meeting time goes. Events
// not involving the manager are ignored. An unknown email yields an empty
// allocation.
func (a *Analyzer) AnalyzeManager(events []*model.Event, managerEmail string) *TimeAllocation {
	mgr := a.Org.GetEmployee(managerEmail)
	if mgr == nil {
		return &TimeAllocation{ManagerEmail: managerEmail, ManagerName: managerEmail}
	}

	directReports := a.Org.GetDirectReports(managerEmail)
	reportEmails := make(map[string]bool, len(directReports))
	for _, r := range directReports {
		reportEmails[strings.ToLower(r.Email)] = true
	}

	skipLevelEmails := make(map[string]bool)
	for _, r := range directReports {
		for _, sr := range a.Org.GetDirectReports(r.Email) {
			skipLevelEmails[strings.ToLower(sr.Email)] = true
		}
	}

	alloc := &TimeAllocation{
		ManagerEmail:      managerEmail,
		ManagerName:       mgr.Name,
		DirectReportCount: len(directReports),
	}

	for _, e := range events {
		if !e.HasAttendee(managerEmail) {
			continue
		}
		hours := e.DurationHours()
		alloc.TotalMeetingHours += hours

		others := make(map[string]bool, len(e.Attendees)+1)
		for _, att := range e.Attendees {
			others[strings.ToLower(att.Email)] = true
		}
		others[strings.ToLower(e.OrganizerEmail)] = true
		delete(others, strings.ToLower(managerEmail))

		reportsPresent := 0
		skipLevelPresent := false
		for email := range others {
			if reportEmails[email] {
				reportsPresent++
			}
			if skipLevelEmails[email] {
				skipLevelPresent = true
			}
		}

		switch {
		case e.IsOneOnOne() && reportsPresent > 0:
			alloc.OneOnOneHours += hours
			alloc.OneOnOneCount++
			alloc.MeetingsWithReports++
		case e.IsOneOnOne() && skipLevelPresent:
			alloc.SkipLevelHours += hours
			alloc.SkipLevelCount++
		case reportsPresent > 1:
			alloc.TeamMeetingHours += hours
			alloc.TeamMeetingCount++
			alloc.MeetingsWithReports++
		case reportsPresent > 0:
			alloc.MeetingsWithReports++
		}

		if e.HasExternalAttendees() {
			alloc.ExternalHours += hours
		} else {
			functions := make(map[model.JobFunction]bool)
			for email := range others {
				if emp := a.Org.GetEmployee(email); emp != nil {
					functions[emp.JobFunction] = true
				}
			}
			if len(functions) > 1 {
				alloc.CrossFunctionalHours += hours
			}
		}

		switch classify.CategoryOf(e) {
		case classify.CategoryStatusUpdate:
			alloc.StatusUpdateHours += hours
		case classify.CategoryStrategic:
			alloc.StrategicHours += hours
		case classify.CategoryOperational:
			alloc.OperationalHours += hours
		}
	}

	return alloc
}

// AnalyzeAll computes allocations for every manager in the directory.
func (a *Analyzer) AnalyzeAll(events []*model.Event) map[string]*TimeAllocation {
	results := make(map[string]*TimeAllocation)
	for _, mgr := range a.Org.GetAllManagers() {
		results[mgr.Email] = a.AnalyzeManager(events, mgr.Email)
	}
	return results
}

// Leaderboard metrics.
const (
	MetricOneOnOneRatio         = "one_on_one_ratio"
	MetricCoachingTimePerReport = "coaching_time_per_report"
	MetricMonitoringIndicator   = "monitoring_indicator"
	MetricSkipLevelEngagement   = "skip_level_engagement"
)

// LeaderboardEntry ranks one manager on a chosen metric.
type LeaderboardEntry struct {
	Email         string          `json:"email"`
	Name          string          `json:"name"`
	DirectReports int             `json:"direct_reports"`
	Score         float64         `json:"score"`
	Metric        string          `json:"metric"`
	Details       *TimeAllocation `json:"details"`
}

// Leaderboard ranks managers with at least one direct report by the given
// metric, best first. The monitoring metric is inverted so that lower
// monitoring ranks higher.
func (a *Analyzer) Leaderboard(events []*model.Event, metric string) []LeaderboardEntry {
	allocations := a.AnalyzeAll(events)

	var board []LeaderboardEntry
	for email, alloc := range allocations {
		if alloc.DirectReportCount == 0 {
			continue
		}

		var score float64
		switch metric {
		case MetricOneOnOneRatio:
			score = alloc.OneOnOneRatio()
		case MetricCoachingTimePerReport:
			score = alloc.CoachingTimePerReport()
		case MetricMonitoringIndicator:
			score = -alloc.MonitoringIndicator()
		case MetricSkipLevelEngagement:
			score = float64(alloc.SkipLevelCount)
		}

		board = append(board, LeaderboardEntry{
			Email:         email,
			Name:          alloc.ManagerName,
			DirectReports: alloc.DirectReportCount,
			Score:         round2(score),
			Metric:        metric,
			Details:       alloc,
		})
	}

	sort.Slice(board, func(i, j int) bool {
		if board[i].Score != board[j].Score {
			return board[i].Score > board[j].Score
		}
		return board[i].Email < board[j].Email
	})
	return board
}

// AtRiskRelationship flags a manager-report pair that may need attention.
type AtRiskRelationship struct {
	ManagerEmail      string   `json:"manager_email"`
	ManagerName       string   `json:"manager_name"`
	ReportEmail       string   `json:"report_email"`
	ReportName        string   `json:"report_name"`
	OneOnOneCount     int      `json:"one_on_one_count"`
	OneOnOneHours     float64  `json:"one_on_one_hours"`
	TotalMeetingHours float64  `json:"total_meeting_hours"`
	RiskFactors       []string `json:"risk_factors"`
}

// AtRiskRelationships scans every manager-report pair for missing 1:1s, low
// 1:1 hours relative to minMonthlyHours, or 1:1 time under 30% of the pair's
// shared meeting time.
func (a *Analyzer) AtRiskRelationships(events []*model.Event, minMonthlyHours float64) []AtRiskRelationship {
	var atRisk []AtRiskRelationship

	for _, mgr := range a.Org.GetAllManagers() {
		for _, report := range a.Org.GetDirectReports(mgr.Email) {
			var oneOnOneCount int
			var oneOnOneHours, totalHours float64

			for _, e := range events {
				if !e.HasAttendee(mgr.Email) || !e.HasAttendee(report.Email) {
					continue
				}
				totalHours += e.DurationHours()
				if e.IsOneOnOne() {
					oneOnOneCount++
					oneOnOneHours += e.DurationHours()
				}
			}

			var factors []string
			if oneOnOneCount == 0 {
				factors = append(factors, "No 1:1 meetings")
			}
			if oneOnOneHours < minMonthlyHours {
				factors = append(factors, fmt.Sprintf("Low 1:1 time (%.1f hrs)", oneOnOneHours))
			}
			if totalHours > 0 && oneOnOneHours/totalHours < 0.3 {
				ratio := oneOnOneHours / totalHours * 100
				factors = append(factors, fmt.Sprintf("1:1 only %.0f%% of interaction time", ratio))
			}

			if len(factors) > 0 {
				atRisk = append(atRisk, AtRiskRelationship{
					ManagerEmail:      mgr.Email,
					ManagerName:       mgr.Name,
					ReportEmail:       report.Email,
					ReportName:        report.Name,
					OneOnOneCount:     oneOnOneCount,
					OneOnOneHours:     round2(oneOnOneHours),
					TotalMeetingHours: round2(totalHours),
					RiskFactors:       factors,
				})
			}
		}
	}

	return atRisk
}

// SpanStats aggregates manager allocations within one span-of-control bucket.
type SpanStats struct {
	ManagerCount         int     `json:"manager_count"`
	AvgOneOnOneRatio     float64 `json:"avg_one_on_one_ratio"`
	AvgCoachingPerReport float64 `json:"avg_coaching_per_report"`
	AvgMonitoringScore   float64 `json:"avg_monitoring_score"`
	AvgTotalMeetingHours float64 `json:"avg_total_meeting_hours"`
}

// SpanOfControlImpact groups managers by direct-report count and averages
// their allocation metrics per bucket.
func (a *Analyzer) SpanOfControlImpact(events []*model.Event) map[string]SpanStats {
	bySpan := make(map[string][]*TimeAllocation)

	for _, alloc := range a.AnalyzeAll(events) {
		if alloc.DirectReportCount == 0 {
			continue
		}
		var bucket string
		switch span := alloc.DirectReportCount; {
		case span <= 3:
			bucket = "small (1-3)"
		case span <= 6:
			bucket = "medium (4-6)"
		case span <= 10:
			bucket = "large (7-10)"
		default:
			bucket = "very_large (11+)"
		}
		bySpan[bucket] = append(bySpan[bucket], alloc)
	}

	results := make(map[string]SpanStats, len(bySpan))
	for bucket, allocs := range bySpan {
		n := float64(len(allocs))
		var ratio, coaching, monitoring, hours float64
		for _, alloc := range allocs {
			ratio += alloc.OneOnOneRatio()
			coaching += alloc.CoachingTimePerReport()
			monitoring += alloc.MonitoringIndicator()
			hours += alloc.TotalMeetingHours
		}
		results[bucket] = SpanStats{
			ManagerCount:         len(allocs),
			AvgOneOnOneRatio:     round2(ratio / n),
			AvgCoachingPerReport: round2(coaching / n),
			AvgMonitoringScore:   round1(monitoring / n),
			AvgTotalMeetingHours: round1(hours / n),
		}
	}
	return results
}

// MicromanagementFlag describes a manager with a high monitoring score.
type MicromanagementFlag struct {
	ManagerEmail       string   `json:"manager_email"`
	ManagerName        string   `json:"manager_name"`
	DirectReports      int      `json:"direct_reports"`
	MonitoringScore    float64  `json:"monitoring_score"`
	StatusMeetingHours float64  `json:"status_meeting_hours"`
	MeetingsPerReport  float64  `json:"meetings_per_report"`
	OneOnOneRatioPct   float64  `json:"one_on_one_ratio"`
	Recommendations    []string `json:"recommendations"`
}

// MicromanagementPatterns flags managers whose monitoring score is at or
// above the threshold, highest score first.
func (a *Analyzer) MicromanagementPatterns(events []*model.Event, threshold float64) []MicromanagementFlag {
	var flagged []MicromanagementFlag

	for email, alloc := range a.AnalyzeAll(events) {
		if alloc.DirectReportCount == 0 {
			continue
		}
		score := alloc.MonitoringIndicator()
		if score < threshold {
			continue
		}

		perReport := float64(alloc.MeetingsWithReports) / math.Max(float64(alloc.DirectReportCount), 1)
		flagged = append(flagged, MicromanagementFlag{
			ManagerEmail:       email,
			ManagerName:        alloc.ManagerName,
			DirectReports:      alloc.DirectReportCount,
			MonitoringScore:    score,
			StatusMeetingHours: round2(alloc.StatusUpdateHours),
			MeetingsPerReport:  round1(perReport),
			OneOnOneRatioPct:   round1(alloc.OneOnOneRatio() * 100),
			Recommendations: []string{
				"Consider reducing status update meetings",
				"Delegate more decision-making to team",
				"Focus 1:1s on coaching rather than status",
				"Establish async communication channels for updates",
			},
		})
	}

	sort.Slice(flagged, func(i, j int) bool {
		if flagged[i].MonitoringScore != flagged[j].MonitoringScore {
			return flagged[i].MonitoringScore > flagged[j].MonitoringScore
		}
		return flagged[i].ManagerEmail < flagged[j].ManagerEmail
	})
	return flagged
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
