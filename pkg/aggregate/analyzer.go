// Package aggregate computes batch meeting statistics: the size/duration
// matrix, recurring vs ad-hoc splits, 1:1 vs team distributions, timing
// histograms, efficiency metrics, fragmentation, and cost estimates.
// Every analysis is a stateless reduction over the event list; every ratio
// reports 0 when its denominator is 0.
package aggregate

import (
	"math"
	"sort"

	"github.com/mdomarsaleem1/calendar-analytics/pkg/classify"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"
)

// DefaultHourlyRate is the per-attendee-hour cost used when none is given.
const DefaultHourlyRate = 75.0

// Analyzer runs meeting-pattern analyses, optionally enriched with
// organization data for level breakdowns.
type Analyzer struct {
	Org *model.Organization
}

// NewAnalyzer builds an analyzer. Org may be nil; organization-aware
// breakdowns are then skipped.
func NewAnalyzer(org *model.Organization) *Analyzer {
	return &Analyzer{Org: org}
}

// PartitionStats summarizes one side of the recurring/ad-hoc split.
type PartitionStats struct {
	Count              int     `json:"count"`
	Hours              float64 `json:"hours"`
	AvgDurationMinutes float64 `json:"avg_duration_minutes"`
	AvgAttendees       float64 `json:"avg_attendees"`
}

// LevelSplit is the recurring/ad-hoc split for meetings organized by
// employees at one job level.
type LevelSplit struct {
	RecurringCount          int     `json:"recurring_count"`
	AdhocCount              int     `json:"adhoc_count"`
	RecurringPercentage     float64 `json:"recurring_percentage"`
	TotalMeetingsOrganized  int     `json:"total_meetings_organized"`
}

// RecurringAdhocResult is the recurring vs ad-hoc analysis output.
type RecurringAdhocResult struct {
	Recurring           PartitionStats        `json:"recurring"`
	Adhoc               PartitionStats        `json:"adhoc"`
	RecurringPercentage float64               `json:"recurring_percentage"`
	ByLevel             map[string]LevelSplit `json:"by_level,omitempty"`
}

func partitionStats(events []*model.Event) PartitionStats {
	stats := PartitionStats{Count: len(events)}
	if len(events) == 0 {
		return stats
	}
	var hours float64
	var minutes, attendees int
	for _, e := range events {
		hours += e.DurationHours()
		minutes += e.DurationMinutes()
		attendees += e.AttendeeCount()
	}
	stats.Hours = round2(hours)
	stats.AvgDurationMinutes = round1(float64(minutes) / float64(len(events)))
	stats.AvgAttendees = round1(float64(attendees) / float64(len(events)))
	return stats
}

// RecurringVsAdhoc partitions events by the recurring flag. With byLevel set
// and an organization present, it also splits by the organizer's job level,
// omitting levels that organized nothing.
func (a *Analyzer) RecurringVsAdhoc(events []*model.Event, byLevel bool) *RecurringAdhocResult {
	var recurring, adhoc []*model.Event
	for _, e := range events {
		if e.IsRecurring {
			recurring = append(recurring, e)
		} else {
			adhoc = append(adhoc, e)
		}
	}

	result := &RecurringAdhocResult{
		Recurring: partitionStats(recurring),
		Adhoc:     partitionStats(adhoc),
	}
	if len(events) > 0 {
		result.RecurringPercentage = round1(float64(len(recurring)) / float64(len(events)) * 100)
	}
	if byLevel && a.Org != nil {
		result.ByLevel = a.splitByLevel(recurring, adhoc)
	}
	return result
}

func (a *Analyzer) splitByLevel(recurring, adhoc []*model.Event) map[string]LevelSplit {
	organizerLevel := func(e *model.Event) model.JobLevel {
		if emp := a.Org.GetEmployee(e.OrganizerEmail); emp != nil {
			return emp.JobLevel
		}
		return ""
	}

	out := make(map[string]LevelSplit)
	for _, level := range model.JobLevels {
		var rec, adh int
		for _, e := range recurring {
			if organizerLevel(e) == level {
				rec++
			}
		}
		for _, e := range adhoc {
			if organizerLevel(e) == level {
				adh++
			}
		}
		total := rec + adh
		if total == 0 {
			continue
		}
		out[string(level)] = LevelSplit{
			RecurringCount:         rec,
			AdhocCount:             adh,
			RecurringPercentage:    round1(float64(rec) / float64(total) * 100),
			TotalMeetingsOrganized: total,
		}
	}
	return out
}

// TypeStats summarizes one meeting-type bucket of the distribution.
type TypeStats struct {
	Count                int     `json:"count"`
	Hours                float64 `json:"hours"`
	PercentageOfMeetings float64 `json:"percentage_of_meetings"`
	PercentageOfTime     float64 `json:"percentage_of_time"`
	AvgDurationMinutes   float64 `json:"avg_duration_minutes"`
}

// distributionTypes lists the buckets of the 1:1 vs team distribution.
// Organizer-only focus blocks are not part of the distribution.
var distributionTypes = []classify.MeetingType{
	classify.TypeOneOnOne,
	classify.TypeSmallTeam,
	classify.TypeLargeTeam,
	classify.TypeAllHands,
	classify.TypeExternal,
}

// OneOnOneVsTeam partitions events by meeting type and reports count, hours,
// share of meetings, share of time, and mean duration per bucket.
func (a *Analyzer) OneOnOneVsTeam(events []*model.Event) map[classify.MeetingType]TypeStats {
	buckets := make(map[classify.MeetingType][]*model.Event, len(distributionTypes))
	for _, t := range distributionTypes {
		buckets[t] = nil
	}
	for _, e := range events {
		t := classify.Type(e)
		if _, ok := buckets[t]; ok {
			buckets[t] = append(buckets[t], e)
		}
	}

	totalEvents := len(events)
	var totalHours float64
	for _, e := range events {
		totalHours += e.DurationHours()
	}

	result := make(map[classify.MeetingType]TypeStats, len(distributionTypes))
	for _, t := range distributionTypes {
		typeEvents := buckets[t]
		var hours float64
		var minutes int
		for _, e := range typeEvents {
			hours += e.DurationHours()
			minutes += e.DurationMinutes()
		}
		stats := TypeStats{Count: len(typeEvents), Hours: round2(hours)}
		if totalEvents > 0 {
			stats.PercentageOfMeetings = round1(float64(len(typeEvents)) / float64(totalEvents) * 100)
		}
		if totalHours > 0 {
			stats.PercentageOfTime = round1(hours / totalHours * 100)
		}
		if len(typeEvents) > 0 {
			stats.AvgDurationMinutes = round1(float64(minutes) / float64(len(typeEvents)))
		}
		result[t] = stats
	}
	return result
}

// EfficiencyResult holds meeting efficiency metrics for a batch.
type EfficiencyResult struct {
	AvgResponseRate          float64        `json:"avg_response_rate"`
	AvgAcceptanceRate        float64        `json:"avg_acceptance_rate"`
	AvgDurationMinutes       float64        `json:"avg_duration_minutes"`
	MedianDurationMinutes    int            `json:"median_duration_minutes"`
	AvgAttendees             float64        `json:"avg_attendees"`
	MedianAttendees          int            `json:"median_attendees"`
	StandardLengthMeetings   map[string]int `json:"standard_length_meetings"`
	StandardLengthPercentage float64        `json:"standard_length_percentage"`
	MeetingsOver1Hour        int            `json:"meetings_over_1_hour"`
	MeetingsOver2Hours       int            `json:"meetings_over_2_hours"`
	LargeMeetingsOver10      int            `json:"large_meetings_over_10"`
}

// Efficiency computes response, acceptance, duration, and attendee metrics.
// Returns nil for an empty batch.
func (a *Analyzer) Efficiency(events []*model.Event) *EfficiencyResult {
	if len(events) == 0 {
		return nil
	}

	var responseSum, acceptanceSum float64
	durations := make([]int, 0, len(events))
	attendees := make([]int, 0, len(events))
	for _, e := range events {
		responseSum += e.ResponseRate()
		acceptanceSum += e.AcceptanceRate()
		durations = append(durations, e.DurationMinutes())
		attendees = append(attendees, e.AttendeeCount())
	}

	standard := map[string]int{"15_min": 0, "30_min": 0, "45_min": 0, "60_min": 0, "90_min": 0}
	roundNumber := 0
	over60, over120, over10 := 0, 0, 0
	var durationSum, attendeeSum int
	for i, d := range durations {
		switch d {
		case 15:
			standard["15_min"]++
		case 30:
			standard["30_min"]++
		case 45:
			standard["45_min"]++
		case 60:
			standard["60_min"]++
		case 90:
			standard["90_min"]++
		}
		switch d {
		case 15, 30, 45, 60, 90, 120:
			roundNumber++
		}
		if d > 60 {
			over60++
		}
		if d > 120 {
			over120++
		}
		if attendees[i] > 10 {
			over10++
		}
		durationSum += d
		attendeeSum += attendees[i]
	}

	sortedDurations := append([]int(nil), durations...)
	sort.Ints(sortedDurations)
	sortedAttendees := append([]int(nil), attendees...)
	sort.Ints(sortedAttendees)

	n := len(events)
	return &EfficiencyResult{
		AvgResponseRate:          round1(responseSum / float64(n) * 100),
		AvgAcceptanceRate:        round1(acceptanceSum / float64(n) * 100),
		AvgDurationMinutes:       round1(float64(durationSum) / float64(n)),
		MedianDurationMinutes:    sortedDurations[n/2],
		AvgAttendees:             round1(float64(attendeeSum) / float64(n)),
		MedianAttendees:          sortedAttendees[n/2],
		StandardLengthMeetings:   standard,
		StandardLengthPercentage: round1(float64(roundNumber) / float64(n) * 100),
		MeetingsOver1Hour:        over60,
		MeetingsOver2Hours:       over120,
		LargeMeetingsOver10:      over10,
	}
}

// TypeCost is cost attributed to one meeting type.
type TypeCost struct {
	Hours         float64 `json:"hours"`
	EstimatedCost float64 `json:"estimated_cost"`
}

// CostResult estimates the people cost of the meeting load.
type CostResult struct {
	TotalAttendeeHours float64             `json:"total_attendee_hours"`
	TotalEstimatedCost float64             `json:"total_estimated_cost"`
	AvgCostPerMeeting  float64             `json:"avg_cost_per_meeting"`
	ByMeetingType      map[string]TypeCost `json:"by_meeting_type"`
	HourlyRateUsed     float64             `json:"hourly_rate_used"`
}

// Cost estimates total meeting cost as attendee-hours times the hourly rate,
// broken down by meeting type.
func (a *Analyzer) Cost(events []*model.Event, hourlyRate float64) *CostResult {
	var totalAttendeeHours float64
	byType := make(map[classify.MeetingType]float64)
	for _, e := range events {
		attendeeHours := e.DurationHours() * float64(e.AttendeeCount())
		totalAttendeeHours += attendeeHours
		byType[classify.Type(e)] += attendeeHours
	}

	allTypes := []classify.MeetingType{
		classify.TypeOneOnOne, classify.TypeSmallTeam, classify.TypeLargeTeam,
		classify.TypeAllHands, classify.TypeExternal, classify.TypeFocusTime,
	}
	typeCosts := make(map[string]TypeCost, len(allTypes))
	for _, t := range allTypes {
		typeCosts[string(t)] = TypeCost{
			Hours:         round2(byType[t]),
			EstimatedCost: round2(byType[t] * hourlyRate),
		}
	}

	result := &CostResult{
		TotalAttendeeHours: round2(totalAttendeeHours),
		TotalEstimatedCost: round2(totalAttendeeHours * hourlyRate),
		ByMeetingType:      typeCosts,
		HourlyRateUsed:     hourlyRate,
	}
	if len(events) > 0 {
		result.AvgCostPerMeeting = round2(totalAttendeeHours * hourlyRate / float64(len(events)))
	}
	return result
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
