package manager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"
)

func testOrg() *model.Organization {
	org := model.NewOrganization("Acme", "acme.com")
	add := func(email, name, managerEmail string, level model.JobLevel) {
		org.AddEmployee(&model.Employee{
			ID: email, Email: email, Name: name, ManagerEmail: managerEmail,
			JobLevel: level, JobFunction: model.FunctionEngineering,
		})
	}
	add("mgr@acme.com", "Mina Manager", "", model.LevelManager)
	add("r1@acme.com", "Report One", "mgr@acme.com", model.LevelLead)
	add("r2@acme.com", "Report Two", "mgr@acme.com", model.LevelIC)
	add("r3@acme.com", "Report Three", "mgr@acme.com", model.LevelIC)
	add("s1@acme.com", "Skip One", "r1@acme.com", model.LevelIC)
	org.BuildRelationships()
	return org
}

func meeting(subject, organizer string, minutes int, attendees ...string) *model.Event {
	start := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	e := &model.Event{
		ID: subject, Subject: subject, OrganizerEmail: organizer,
		Start: start, End: start.Add(time.Duration(minutes) * time.Minute),
	}
	for _, a := range attendees {
		e.Attendees = append(e.Attendees, model.NewAttendee(a, "", model.ResponseAccepted))
	}
	return e
}

func managerEvents() []*model.Event {
	return []*model.Event{
		meeting("Mina / Report One", "mgr@acme.com", 60, "r1@acme.com"),
		meeting("Roadmap deep dive", "mgr@acme.com", 60, "r1@acme.com", "r2@acme.com"),
		meeting("Mina / Skip One", "mgr@acme.com", 30, "s1@acme.com"),
	}
}

func TestAnalyzeManagerBuckets(t *testing.T) {
	a := NewAnalyzer(testOrg())
	alloc := a.AnalyzeManager(managerEvents(), "mgr@acme.com")

	assert.Equal(t, "Mina Manager", alloc.ManagerName)
	assert.Equal(t, 3, alloc.DirectReportCount)
	assert.InDelta(t, 2.5, alloc.TotalMeetingHours, 0.001)

	assert.InDelta(t, 1.0, alloc.OneOnOneHours, 0.001)
	assert.Equal(t, 1, alloc.OneOnOneCount)
	assert.InDelta(t, 1.0, alloc.TeamMeetingHours, 0.001)
	assert.Equal(t, 1, alloc.TeamMeetingCount)
	assert.Equal(t, 2, alloc.MeetingsWithReports)

	assert.InDelta(t, 0.5, alloc.SkipLevelHours, 0.001)
	assert.Equal(t, 1, alloc.SkipLevelCount)
}

func TestAnalyzeManagerIgnoresOtherPeoplesMeetings(t *testing.T) {
	a := NewAnalyzer(testOrg())
	events := append(managerEvents(),
		meeting("Peer chat", "r2@acme.com", 60, "r3@acme.com"))

	alloc := a.AnalyzeManager(events, "mgr@acme.com")
	assert.InDelta(t, 2.5, alloc.TotalMeetingHours, 0.001)
}

func TestAnalyzeManagerUnknownEmail(t *testing.T) {
	a := NewAnalyzer(testOrg())
	alloc := a.AnalyzeManager(managerEvents(), "ghost@acme.com")

	assert.Equal(t, "ghost@acme.com", alloc.ManagerName)
	assert.Zero(t, alloc.DirectReportCount)
	assert.Zero(t, alloc.TotalMeetingHours)
}

func TestPercentagesEmptyWithoutMeetings(t *testing.T) {
	alloc := &TimeAllocation{}
	assert.Empty(t, alloc.Percentages())
}

func TestMonitoringIndicator(t *testing.T) {
	alloc := &TimeAllocation{
		TotalMeetingHours:   10,
		StatusUpdateHours:   4,
		MeetingsWithReports: 5,
		OneOnOneCount:       1,
	}
	// status factor 0.4*5 = 2, group factor capped at 5.
	assert.InDelta(t, 7.0, alloc.MonitoringIndicator(), 0.001)

	assert.Zero(t, (&TimeAllocation{TotalMeetingHours: 10}).MonitoringIndicator())
}

func TestInsights(t *testing.T) {
	alloc := &TimeAllocation{
		DirectReportCount:   2,
		TotalMeetingHours:   10,
		OneOnOneHours:       1,
		OneOnOneCount:       1,
		MeetingsWithReports: 1,
	}
	insights := alloc.Insights()

	require.NotEmpty(t, insights)
	assert.Contains(t, insights[0], "Low 1:1 time (10.0%)")
	assert.Contains(t, insights[1], "Only 0.5 hrs/report")
}

func TestAnalyzeAllCoversEveryManager(t *testing.T) {
	a := NewAnalyzer(testOrg())
	results := a.AnalyzeAll(managerEvents())

	require.Len(t, results, 2)
	assert.Contains(t, results, "mgr@acme.com")
	assert.Contains(t, results, "r1@acme.com")
}

func TestLeaderboardOneOnOneRatio(t *testing.T) {
	a := NewAnalyzer(testOrg())
	board := a.Leaderboard(managerEvents(), MetricOneOnOneRatio)

	require.Len(t, board, 2)
	assert.Equal(t, "mgr@acme.com", board[0].Email)
	assert.InDelta(t, 0.4, board[0].Score, 0.001)
	assert.Equal(t, "r1@acme.com", board[1].Email)
	assert.Zero(t, board[1].Score)
}

func TestAtRiskRelationships(t *testing.T) {
	a := NewAnalyzer(testOrg())
	atRisk := a.AtRiskRelationships(managerEvents(), DefaultMinOneOnOneHours)

	byPair := make(map[string]AtRiskRelationship)
	for _, r := range atRisk {
		byPair[r.ManagerEmail+"|"+r.ReportEmail] = r
	}

	// r1 gets a 1:1 and half the shared time, so the pair is healthy.
	assert.NotContains(t, byPair, "mgr@acme.com|r1@acme.com")

	r2 := byPair["mgr@acme.com|r2@acme.com"]
	assert.Contains(t, r2.RiskFactors, "No 1:1 meetings")
	assert.Contains(t, r2.RiskFactors, "1:1 only 0% of interaction time")

	r3 := byPair["mgr@acme.com|r3@acme.com"]
	assert.Equal(t, []string{"No 1:1 meetings", "Low 1:1 time (0.0 hrs)"}, r3.RiskFactors)

	// r1 never meets their own report in this window.
	assert.Contains(t, byPair, "r1@acme.com|s1@acme.com")
}

func TestSpanOfControlImpact(t *testing.T) {
	a := NewAnalyzer(testOrg())
	results := a.SpanOfControlImpact(managerEvents())

	require.Contains(t, results, "small (1-3)")
	small := results["small (1-3)"]
	assert.Equal(t, 2, small.ManagerCount)
	assert.InDelta(t, 0.2, small.AvgOneOnOneRatio, 0.001)
}

func TestMicromanagementPatterns(t *testing.T) {
	a := NewAnalyzer(testOrg())
	flagged := a.MicromanagementPatterns(managerEvents(), 0)

	require.Len(t, flagged, 2)
	assert.Equal(t, "mgr@acme.com", flagged[0].ManagerEmail)
	assert.InDelta(t, 2.0, flagged[0].MonitoringScore, 0.001)
	assert.Len(t, flagged[0].Recommendations, 4)

	assert.Empty(t, a.MicromanagementPatterns(managerEvents(), DefaultMicromanagementThreshold))
}
