package aggregate

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"
)

func event(subject string, start time.Time, minutes, attendees int, recurring bool) *model.Event {
	e := &model.Event{
		ID:             subject,
		Subject:        subject,
		OrganizerEmail: "organizer@acme.com",
		Start:          start,
		End:            start.Add(time.Duration(minutes) * time.Minute),
		IsRecurring:    recurring,
	}
	for i := 0; i < attendees; i++ {
		e.Attendees = append(e.Attendees,
			model.NewAttendee(fmt.Sprintf("person%d@acme.com", i), "", model.ResponseAccepted))
	}
	return e
}

var monday = time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

func TestSizeDurationMatrixCellSum(t *testing.T) {
	events := []*model.Event{
		event("a", monday, 30, 1, false),  // small, short
		event("b", monday, 75, 4, false),  // medium, long
		event("c", monday, 45, 7, false),  // large, medium
		event("d", monday, 15, 1, false),  // small, short
	}
	m := SizeDurationAnalysis(events)
	assert.Equal(t, len(events), m.TotalMeetings())
	assert.Equal(t, 2, m.SmallShort)
	assert.Equal(t, 1, m.MediumLong)
	assert.Equal(t, 1, m.LargeMedium)
	assert.InDelta(t, 0.75, m.SmallShortHours, 0.001)
}

func TestSizeDurationMatrixEmpty(t *testing.T) {
	m := SizeDurationAnalysis(nil)
	assert.Equal(t, 0, m.TotalMeetings())
	assert.Empty(t, m.TimeDistribution())
}

func TestRecurringVsAdhoc(t *testing.T) {
	events := []*model.Event{
		event("standup", monday, 15, 4, true),
		event("standup 2", monday.AddDate(0, 0, 1), 15, 4, true),
		event("one-off", monday, 60, 2, false),
	}
	a := NewAnalyzer(nil)
	result := a.RecurringVsAdhoc(events, false)

	assert.Equal(t, 2, result.Recurring.Count)
	assert.Equal(t, 1, result.Adhoc.Count)
	assert.InDelta(t, 66.7, result.RecurringPercentage, 0.01)
	assert.InDelta(t, 15.0, result.Recurring.AvgDurationMinutes, 0.01)
	assert.InDelta(t, 5.0, result.Recurring.AvgAttendees, 0.01)
	assert.Nil(t, result.ByLevel)
}

func TestRecurringVsAdhocByLevel(t *testing.T) {
	org := model.NewOrganization("Acme", "acme.com")
	org.AddEmployee(&model.Employee{
		ID: "e1", Email: "organizer@acme.com", Name: "Org Anizer",
		JobLevel: model.LevelManager, JobFunction: model.FunctionEngineering,
	})

	events := []*model.Event{
		event("standup", monday, 15, 4, true),
		event("one-off", monday, 60, 2, false),
	}
	a := NewAnalyzer(org)
	result := a.RecurringVsAdhoc(events, true)

	require.Contains(t, result.ByLevel, "Manager")
	split := result.ByLevel["Manager"]
	assert.Equal(t, 1, split.RecurringCount)
	assert.Equal(t, 1, split.AdhocCount)
	assert.InDelta(t, 50.0, split.RecurringPercentage, 0.01)
	// Levels with no organized meetings are omitted.
	assert.NotContains(t, result.ByLevel, "VP")
}

func TestOneOnOneVsTeamDistribution(t *testing.T) {
	external := event("vendor call", monday, 30, 3, false)
	external.Attendees[0].IsExternal = true

	events := []*model.Event{
		event("1:1", monday, 30, 1, false),
		event("team sync", monday, 60, 4, false),
		event("all hands", monday, 60, 15, false),
		external,
	}
	a := NewAnalyzer(nil)
	dist := a.OneOnOneVsTeam(events)

	assert.Equal(t, 1, dist["1:1"].Count)
	assert.Equal(t, 1, dist["small_team"].Count)
	assert.Equal(t, 1, dist["all_hands"].Count)
	assert.Equal(t, 1, dist["external"].Count)
	assert.Equal(t, 0, dist["large_team"].Count)
	assert.InDelta(t, 25.0, dist["1:1"].PercentageOfMeetings, 0.01)
}

func TestOneOnOneVsTeamEmpty(t *testing.T) {
	a := NewAnalyzer(nil)
	dist := a.OneOnOneVsTeam(nil)
	for _, stats := range dist {
		assert.Zero(t, stats.Count)
		assert.Zero(t, stats.PercentageOfMeetings)
	}
}

func TestTimingAllBucketsPresent(t *testing.T) {
	a := NewAnalyzer(nil)
	result := a.Timing([]*model.Event{event("a", monday, 60, 2, false)})

	assert.Len(t, result.ByDayOfWeek, 7)
	assert.Len(t, result.ByHour, 24)
	assert.Equal(t, 1, result.ByDayOfWeek["Monday"].Count)
	assert.Equal(t, 1, result.ByHour["10:00"].Count)
	assert.Equal(t, "Monday", result.BusiestDay)
	assert.Equal(t, "10:00", result.BusiestHour)
}

func TestTimingSpecialWindows(t *testing.T) {
	morning := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 4, 18, 30, 0, 0, time.UTC)
	noon := time.Date(2024, 3, 4, 12, 15, 0, 0, time.UTC)

	a := NewAnalyzer(nil)
	result := a.Timing([]*model.Event{
		event("early", morning, 30, 2, false),
		event("late", evening, 30, 2, false),
		event("lunch", noon, 30, 2, false),
	})
	assert.Equal(t, 1, result.EarlyMorningMeetings.Count)
	assert.Equal(t, 1, result.LateEveningMeetings.Count)
	assert.Equal(t, 1, result.LunchTimeMeetings.Count)
}

func TestTimingBusiestTiesAreDeterministic(t *testing.T) {
	tuesday := monday.AddDate(0, 0, 1)
	a := NewAnalyzer(nil)
	result := a.Timing([]*model.Event{
		event("mon", monday, 60, 2, false),
		event("tue", tuesday, 60, 2, false),
	})
	// Equal hours on Monday and Tuesday: earliest day wins.
	assert.Equal(t, "Monday", result.BusiestDay)
}

func TestEfficiency(t *testing.T) {
	noResponse := event("silent", monday, 30, 2, false)
	for i := range noResponse.Attendees {
		noResponse.Attendees[i].Response = model.ResponseNone
	}

	events := []*model.Event{
		event("a", monday, 30, 2, false),
		event("b", monday, 60, 12, false),
		noResponse,
	}
	a := NewAnalyzer(nil)
	result := a.Efficiency(events)
	require.NotNil(t, result)

	assert.InDelta(t, 66.7, result.AvgResponseRate, 0.01)
	assert.Equal(t, 2, result.StandardLengthMeetings["30_min"])
	assert.Equal(t, 1, result.StandardLengthMeetings["60_min"])
	assert.InDelta(t, 100.0, result.StandardLengthPercentage, 0.01)
	assert.Equal(t, 0, result.MeetingsOver1Hour)
	assert.Equal(t, 1, result.LargeMeetingsOver10)
}

func TestEfficiencyEmpty(t *testing.T) {
	a := NewAnalyzer(nil)
	assert.Nil(t, a.Efficiency(nil))
}

func TestFragmentation(t *testing.T) {
	// Three meetings with a 90 minute focus gap after the first.
	first := event("a", monday, 30, 2, false)                      // 10:00-10:30
	second := event("b", monday.Add(2*time.Hour), 30, 2, false)    // 12:00-12:30
	third := event("c", monday.Add(150*time.Minute), 30, 2, false) // 12:30-13:00

	a := NewAnalyzer(nil)
	result := a.Fragmentation([]*model.Event{first, second, third}, 9, 18)
	require.NotNil(t, result)
	require.Len(t, result.DailyStats, 1)

	day := result.DailyStats[0]
	assert.Equal(t, 3, day.MeetingCount)
	assert.InDelta(t, 1.5, day.MeetingHours, 0.001)
	assert.Equal(t, 1, day.FocusBlocks60MinPlus)
	// 3 meetings / max(1.5h, 1) = 2.0
	assert.InDelta(t, 2.0, day.FragmentationScore, 0.001)
	assert.Equal(t, 0, result.DaysWithNoFocusBlocks)
}

func TestFragmentationEmpty(t *testing.T) {
	a := NewAnalyzer(nil)
	assert.Nil(t, a.Fragmentation(nil, 9, 18))
}

func TestCost(t *testing.T) {
	events := []*model.Event{
		event("a", monday, 60, 1, false), // 1h x 2 people = 2 attendee-hours
		event("b", monday, 30, 3, false), // 0.5h x 4 people = 2 attendee-hours
	}
	a := NewAnalyzer(nil)
	result := a.Cost(events, 100)

	assert.InDelta(t, 4.0, result.TotalAttendeeHours, 0.001)
	assert.InDelta(t, 400.0, result.TotalEstimatedCost, 0.001)
	assert.InDelta(t, 200.0, result.AvgCostPerMeeting, 0.001)
	assert.InDelta(t, 2.0, result.ByMeetingType["1:1"].Hours, 0.001)
}

func TestCostEmpty(t *testing.T) {
	a := NewAnalyzer(nil)
	result := a.Cost(nil, DefaultHourlyRate)
	assert.Zero(t, result.TotalEstimatedCost)
	assert.Zero(t, result.AvgCostPerMeeting)
}
