package aggregate

import (
	"fmt"
	"math"
	"sort"

	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"
)

// DayOrder is the canonical weekday ordering for timing reports.
var DayOrder = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// TimingBucket is a count/hours pair for one day, hour, or special window.
type TimingBucket struct {
	Count int     `json:"count"`
	Hours float64 `json:"hours"`
}

// TimingResult describes when meetings happen across the week and day.
// All seven days and all 24 hours are always present, zero or not.
type TimingResult struct {
	ByDayOfWeek          map[string]TimingBucket `json:"by_day_of_week"`
	ByHour               map[string]TimingBucket `json:"by_hour"`
	EarlyMorningMeetings TimingBucket            `json:"early_morning_meetings"`
	LateEveningMeetings  TimingBucket            `json:"late_evening_meetings"`
	LunchTimeMeetings    TimingBucket            `json:"lunch_time_meetings"`
	BusiestDay           string                  `json:"busiest_day,omitempty"`
	BusiestHour          string                  `json:"busiest_hour,omitempty"`
}

// Timing builds day-of-week and hour-of-day histograms plus the early,
// late, and lunch windows. Busiest day is by total hours, busiest hour by
// count; ties go to the earliest day and lowest hour.
func (a *Analyzer) Timing(events []*model.Event) *TimingResult {
	dayStats := make(map[string]TimingBucket, len(DayOrder))
	for _, day := range DayOrder {
		dayStats[day] = TimingBucket{}
	}
	hourStats := make(map[string]TimingBucket, 24)
	for hour := 0; hour < 24; hour++ {
		hourStats[fmt.Sprintf("%02d:00", hour)] = TimingBucket{}
	}

	var early, late, lunch TimingBucket
	for _, e := range events {
		hours := e.DurationHours()

		day := dayStats[e.DayOfWeek()]
		day.Count++
		day.Hours += hours
		dayStats[e.DayOfWeek()] = day

		key := fmt.Sprintf("%02d:00", e.HourOfDay())
		hb := hourStats[key]
		hb.Count++
		hb.Hours += hours
		hourStats[key] = hb

		if e.IsEarlyMorning() {
			early.Count++
			early.Hours += hours
		}
		if e.IsLateEvening() {
			late.Count++
			late.Hours += hours
		}
		if e.IsLunchTime() {
			lunch.Count++
			lunch.Hours += hours
		}
	}

	for day, b := range dayStats {
		b.Hours = round2(b.Hours)
		dayStats[day] = b
	}
	for hour, b := range hourStats {
		b.Hours = round2(b.Hours)
		hourStats[hour] = b
	}
	early.Hours = round2(early.Hours)
	late.Hours = round2(late.Hours)
	lunch.Hours = round2(lunch.Hours)

	result := &TimingResult{
		ByDayOfWeek:          dayStats,
		ByHour:               hourStats,
		EarlyMorningMeetings: early,
		LateEveningMeetings:  late,
		LunchTimeMeetings:    lunch,
	}

	busiestDay, bestHours := "", -1.0
	for _, day := range DayOrder {
		if dayStats[day].Hours > bestHours {
			busiestDay, bestHours = day, dayStats[day].Hours
		}
	}
	result.BusiestDay = busiestDay

	busiestHour, bestCount := "", -1
	for hour := 0; hour < 24; hour++ {
		key := fmt.Sprintf("%02d:00", hour)
		if hourStats[key].Count > bestCount {
			busiestHour, bestCount = key, hourStats[key].Count
		}
	}
	result.BusiestHour = busiestHour

	return result
}

// DailyFragmentation holds fragmentation metrics for a single calendar day.
type DailyFragmentation struct {
	Date                    string  `json:"date"`
	MeetingCount            int     `json:"meeting_count"`
	MeetingHours            float64 `json:"meeting_hours"`
	AvailableFocusTimeHours float64 `json:"available_focus_time_hours"`
	FocusBlocks60MinPlus    int     `json:"focus_blocks_60min_plus"`
	AvgGapMinutes           float64 `json:"avg_gap_minutes"`
	FragmentationScore      float64 `json:"fragmentation_score"`
}

// FragmentationResult summarizes fragmentation across all observed days.
type FragmentationResult struct {
	DailyStats             []DailyFragmentation `json:"daily_stats"`
	AvgMeetingsPerDay      float64              `json:"avg_meetings_per_day"`
	AvgMeetingHoursPerDay  float64              `json:"avg_meeting_hours_per_day"`
	AvgFocusHoursPerDay    float64              `json:"avg_focus_hours_per_day"`
	AvgFragmentationScore  float64              `json:"avg_fragmentation_score"`
	DaysWithNoFocusBlocks  int                  `json:"days_with_no_focus_blocks"`
}

// Fragmentation groups events by calendar date and measures how broken up
// each day is. A focus block is a gap of at least 60 minutes between
// consecutive meetings; the fragmentation score is meeting count divided by
// max(meeting hours, 1). Returns nil when no events produce any day.
func (a *Analyzer) Fragmentation(events []*model.Event, workStart, workEnd int) *FragmentationResult {
	byDate := make(map[string][]*model.Event)
	for _, e := range events {
		key := e.Start.Format("2006-01-02")
		byDate[key] = append(byDate[key], e)
	}
	if len(byDate) == 0 {
		return nil
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	workHours := float64(workEnd - workStart)
	daily := make([]DailyFragmentation, 0, len(dates))
	for _, date := range dates {
		dayEvents := byDate[date]
		sort.Slice(dayEvents, func(i, j int) bool {
			return dayEvents[i].Start.Before(dayEvents[j].Start)
		})

		var gaps []float64
		for i := 0; i < len(dayEvents)-1; i++ {
			gap := dayEvents[i+1].Start.Sub(dayEvents[i].End).Minutes()
			if gap > 0 {
				gaps = append(gaps, gap)
			}
		}

		var meetingHours float64
		for _, e := range dayEvents {
			meetingHours += e.DurationHours()
		}

		focusBlocks := 0
		var gapSum float64
		for _, g := range gaps {
			gapSum += g
			if g >= 60 {
				focusBlocks++
			}
		}

		day := DailyFragmentation{
			Date:                    date,
			MeetingCount:            len(dayEvents),
			MeetingHours:            round2(meetingHours),
			AvailableFocusTimeHours: round2(workHours - meetingHours),
			FocusBlocks60MinPlus:    focusBlocks,
			FragmentationScore:      round2(float64(len(dayEvents)) / math.Max(meetingHours, 1)),
		}
		if len(gaps) > 0 {
			day.AvgGapMinutes = round1(gapSum / float64(len(gaps)))
		}
		daily = append(daily, day)
	}

	result := &FragmentationResult{DailyStats: daily}
	var countSum int
	var hoursSum, focusSum, fragSum float64
	for _, d := range daily {
		countSum += d.MeetingCount
		hoursSum += d.MeetingHours
		focusSum += d.AvailableFocusTimeHours
		fragSum += d.FragmentationScore
		if d.FocusBlocks60MinPlus == 0 {
			result.DaysWithNoFocusBlocks++
		}
	}
	n := float64(len(daily))
	result.AvgMeetingsPerDay = round1(float64(countSum) / n)
	result.AvgMeetingHoursPerDay = round1(hoursSum / n)
	result.AvgFocusHoursPerDay = round1(focusSum / n)
	result.AvgFragmentationScore = round2(fragSum / n)
	return result
}
