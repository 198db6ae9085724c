package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdomarsaleem1/calendar-analytics/pkg/aggregate"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/classify"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/crossfunc"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/textual"
)

func testOrg() *model.Organization {
	org := model.NewOrganization("Acme", "acme.com")
	add := func(email, name, managerEmail string, level model.JobLevel, fn model.JobFunction) {
		org.AddEmployee(&model.Employee{
			ID: email, Email: email, Name: name, ManagerEmail: managerEmail,
			JobLevel: level, JobFunction: fn,
		})
	}
	add("mgr@acme.com", "Mina Manager", "", model.LevelManager, model.FunctionEngineering)
	add("eng1@acme.com", "Eng One", "mgr@acme.com", model.LevelIC, model.FunctionEngineering)
	add("sales1@acme.com", "Sales One", "", model.LevelIC, model.FunctionSales)
	org.BuildRelationships()
	return org
}

func meeting(subject, organizer string, start time.Time, minutes int, attendees ...string) *model.Event {
	e := &model.Event{
		ID: subject, Subject: subject, OrganizerEmail: organizer,
		Start: start, End: start.Add(time.Duration(minutes) * time.Minute),
	}
	for _, a := range attendees {
		e.Attendees = append(e.Attendees, model.NewAttendee(a, "", model.ResponseAccepted))
	}
	return e
}

func externalMeeting(subject, organizer string, start time.Time, minutes int) *model.Event {
	e := meeting(subject, organizer, start, minutes)
	att := model.NewAttendee("buyer@client.io", "", model.ResponseAccepted)
	att.IsExternal = true
	e.Attendees = append(e.Attendees, att)
	return e
}

var monday = time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

func TestWorkMeetings(t *testing.T) {
	cancelled := meeting("Cancelled", "mgr@acme.com", monday, 30, "eng1@acme.com")
	cancelled.IsCancelled = true
	allDay := meeting("Offsite", "mgr@acme.com", monday, 480, "eng1@acme.com")
	allDay.IsAllDay = true
	solo := meeting("Focus block", "mgr@acme.com", monday, 60)
	keep := meeting("Planning", "mgr@acme.com", monday, 30, "eng1@acme.com")

	work := WorkMeetings([]*model.Event{cancelled, allDay, solo, keep})
	require.Len(t, work, 1)
	assert.Equal(t, "Planning", work[0].Subject)
}

func TestSummarize(t *testing.T) {
	eng := NewEngine(testOrg(), Options{})
	recurring := meeting("Weekly sync", "mgr@acme.com", monday, 60, "eng1@acme.com")
	recurring.IsRecurring = true
	events := []*model.Event{
		recurring,
		externalMeeting("Client demo", "sales1@acme.com", monday.Add(2*time.Hour), 30),
		meeting("Planning", "mgr@acme.com", monday.AddDate(0, 0, 1), 30, "eng1@acme.com"),
	}

	s := eng.Summarize(events)
	require.NotNil(t, s)
	assert.Equal(t, 3, s.TotalMeetings)
	assert.InDelta(t, 2.0, s.TotalHours, 0.001)
	assert.Equal(t, 2, s.UniqueDaysAnalyzed)
	assert.InDelta(t, 1.5, s.AvgMeetingsPerDay, 0.001)
	assert.InDelta(t, 1.0, s.AvgHoursPerDay, 0.001)
	assert.InDelta(t, 40.0, s.AvgMeetingDurationMinutes, 0.001)
	assert.InDelta(t, 33.3, s.RecurringPercentage, 0.001)
	assert.InDelta(t, 33.3, s.ExternalPercentage, 0.001)
}

func TestSummarizeEmpty(t *testing.T) {
	eng := NewEngine(testOrg(), Options{})
	assert.Nil(t, eng.Summarize(nil))
}

func TestInternalVsExternal(t *testing.T) {
	eng := NewEngine(testOrg(), Options{})
	events := []*model.Event{
		meeting("Eng sync", "mgr@acme.com", monday, 60, "eng1@acme.com"),
		externalMeeting("Client demo", "sales1@acme.com", monday.Add(4*time.Hour), 30),
		externalMeeting("Renewal call", "sales1@acme.com", monday.Add(4*time.Hour), 30),
	}

	result := eng.InternalVsExternal(events)
	assert.Equal(t, 1, result.Internal.Count)
	assert.Equal(t, 2, result.External.Count)
	assert.InDelta(t, 66.7, result.External.Percentage, 0.001)
	assert.InDelta(t, 1.0, result.External.AvgExternalAttendees, 0.001)

	sales := result.ByFunction[model.FunctionSales]
	assert.Equal(t, 2, sales.TotalMeetings)
	assert.InDelta(t, 100.0, sales.ExternalPercentage, 0.001)

	require.Len(t, result.CustomerFacing, 1)
	assert.Equal(t, model.FunctionSales, result.CustomerFacing[0].Function)

	require.NotNil(t, result.ExternalPatterns)
	assert.Equal(t, "14:00", result.ExternalPatterns.PeakHour)
	assert.InDelta(t, 30.0, result.ExternalPatterns.AvgDurationMinutes, 0.001)
}

func TestInternalVsExternalNoExternal(t *testing.T) {
	eng := NewEngine(testOrg(), Options{})
	result := eng.InternalVsExternal([]*model.Event{
		meeting("Eng sync", "mgr@acme.com", monday, 30, "eng1@acme.com"),
	})
	assert.Nil(t, result.ExternalPatterns)
	assert.Empty(t, result.CustomerFacing)
}

func TestFullInsights(t *testing.T) {
	eng := NewEngine(testOrg(), Options{})
	events := []*model.Event{
		meeting("Mina / Eng One", "mgr@acme.com", monday, 30, "eng1@acme.com"),
		meeting("Sprint planning", "mgr@acme.com", monday.Add(2*time.Hour), 60, "eng1@acme.com", "sales1@acme.com"),
		externalMeeting("Client demo", "sales1@acme.com", monday.Add(5*time.Hour), 30),
	}

	result := eng.Full(events, true)
	require.NotNil(t, result.Summary)
	assert.Equal(t, 3, result.Summary.TotalMeetings)
	assert.Equal(t, 3, result.SizeDurationMatrix.TotalMeetings())
	assert.NotNil(t, result.EfficiencyMetrics)
	assert.NotNil(t, result.CalendarFragmentation)
	assert.NotNil(t, result.MeetingCost)
	assert.NotNil(t, result.CrossFunctionalHealth)
	assert.NotNil(t, result.ManagerInsights)
	assert.NotNil(t, result.BestPractices)
	assert.NotEmpty(t, result.TextInsights.TopicAnalysis.TopicClusters)
}

func TestFullInsightsIsDeterministic(t *testing.T) {
	eng := NewEngine(testOrg(), Options{})
	events := []*model.Event{
		meeting("Mina / Eng One", "mgr@acme.com", monday, 30, "eng1@acme.com"),
		meeting("Sprint planning", "mgr@acme.com", monday.Add(2*time.Hour), 60, "eng1@acme.com", "sales1@acme.com"),
		externalMeeting("Client demo", "sales1@acme.com", monday.Add(5*time.Hour), 30),
	}

	first := eng.Full(events, true)
	second := eng.Full(events, true)
	assert.Equal(t, first, second)
}

func TestAnalyzeIndividual(t *testing.T) {
	eng := NewEngine(testOrg(), Options{})
	events := []*model.Event{
		meeting("Mina / Eng One", "mgr@acme.com", monday, 30, "eng1@acme.com"),
		meeting("Sprint planning", "eng1@acme.com", monday.Add(2*time.Hour), 60, "mgr@acme.com"),
		meeting("Sales pipeline", "sales1@acme.com", monday.Add(3*time.Hour), 30),
	}

	result, ok := eng.AnalyzeIndividual(events, "eng1@acme.com")
	require.True(t, ok)
	assert.Equal(t, "Eng One", result.Employee.Name)
	assert.Equal(t, 2, result.Summary.TotalMeetings)
	assert.Equal(t, 1, result.Summary.MeetingsOrganized)
	assert.Equal(t, 1, result.Summary.MeetingsAttended)
	assert.InDelta(t, 1.5, result.Summary.TotalHours, 0.001)
	assert.InDelta(t, 45.0, result.Summary.AvgMeetingDuration, 0.001)
	assert.Nil(t, result.ManagerAllocation)

	mgrResult, ok := eng.AnalyzeIndividual(events, "mgr@acme.com")
	require.True(t, ok)
	require.NotNil(t, mgrResult.ManagerAllocation)
	assert.Equal(t, 1, mgrResult.ManagerAllocation.OneOnOneCount)
}

func TestAnalyzeIndividualUnknown(t *testing.T) {
	eng := NewEngine(testOrg(), Options{})
	result, ok := eng.AnalyzeIndividual(nil, "ghost@acme.com")
	assert.False(t, ok)
	assert.Nil(t, result)
}

func TestCompareTeams(t *testing.T) {
	eng := NewEngine(testOrg(), Options{})
	events := []*model.Event{
		meeting("Eng sync", "mgr@acme.com", monday, 60, "eng1@acme.com"),
		meeting("Eng retro", "mgr@acme.com", monday.Add(2*time.Hour), 60, "eng1@acme.com"),
		meeting("Pipeline review", "sales1@acme.com", monday, 30, "mgr@acme.com"),
	}
	teams := map[string][]string{
		"Engineering": {"eng1@acme.com"},
		"Sales":       {"sales1@acme.com"},
		"Empty":       {"nobody@acme.com"},
	}

	result := eng.CompareTeams(events, teams)
	require.Len(t, result, 2)

	engTeam := result["Engineering"]
	assert.Equal(t, 2, engTeam.TotalMeetings)
	assert.InDelta(t, 2.0, engTeam.HoursPerPerson, 0.001)
	assert.Equal(t, 2, engTeam.HoursPerPersonRank)

	sales := result["Sales"]
	assert.Equal(t, 1, sales.TotalMeetings)
	assert.Equal(t, 1, sales.HoursPerPersonRank)
	assert.Equal(t, 1, sales.AvgMeetingDurationRank)
}

func TestRecommendThresholds(t *testing.T) {
	eng := NewEngine(testOrg(), Options{})
	bundle := &FullInsights{
		Summary: &Summary{
			TotalMeetings:             10,
			AvgHoursPerDay:            7,
			AvgMeetingDurationMinutes: 55,
			RecurringPercentage:       80,
		},
		EfficiencyMetrics: &aggregate.EfficiencyResult{
			AvgResponseRate:          50,
			LargeMeetingsOver10:      6,
			StandardLengthPercentage: 90,
		},
		CalendarFragmentation: &aggregate.FragmentationResult{AvgFragmentationScore: 4},
		TimingAnalysis: &aggregate.TimingResult{
			EarlyMorningMeetings: aggregate.TimingBucket{Count: 1},
			LateEveningMeetings:  aggregate.TimingBucket{Count: 1},
			LunchTimeMeetings:    aggregate.TimingBucket{Count: 2},
		},
		OneOnOneVsTeam: map[classify.MeetingType]aggregate.TypeStats{
			classify.TypeOneOnOne: {PercentageOfMeetings: 20},
		},
		CrossFunctionalHealth: &crossfunc.HealthResult{HealthScore: 70},
		TextInsights: textual.ComprehensiveAnalysis{
			NamingPatterns: textual.NamingAnalysis{VagueMeetingCount: 2},
		},
	}

	recs := eng.Recommend(nil, bundle)
	assert.Len(t, recs.HighPriority, 3)
	assert.Len(t, recs.MediumPriority, 4)
	assert.Len(t, recs.LowPriority, 2)
	assert.Len(t, recs.PositivePatterns, 3)

	assert.Equal(t, "Excessive meeting time", recs.HighPriority[0].Issue)
	assert.Contains(t, recs.HighPriority[0].Finding, "7.0 hours/day")
}

func TestRecommendQuietCalendar(t *testing.T) {
	eng := NewEngine(testOrg(), Options{})
	recs := eng.Recommend(nil, &FullInsights{
		Summary: &Summary{TotalMeetings: 4, AvgHoursPerDay: 2, AvgMeetingDurationMinutes: 30},
	})
	assert.Empty(t, recs.HighPriority)
	assert.Empty(t, recs.MediumPriority)
	assert.Empty(t, recs.LowPriority)
}
