// Package process combines calendar events with the HR directory.
//
// The Processor enriches attendees with directory data and provides the
// filtering, grouping, and aggregation primitives the analyzers build on.
package process

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"
)

// Processor enriches and slices event sets against an organization.
type Processor struct {
	Org *model.Organization
}

// NewProcessor creates a processor for the given directory.
func NewProcessor(org *model.Organization) *Processor {
	return &Processor{Org: org}
}

// EnrichAttendees fills in attendee names from the directory and settles
// the external flag. Events are mutated in place and returned.
func (p *Processor) EnrichAttendees(events []*model.Event) []*model.Event {
	for _, e := range events {
		for i := range e.Attendees {
			a := &e.Attendees[i]
			if emp := p.Org.GetEmployee(a.Email); emp != nil {
				if a.Name == "" {
					a.Name = emp.Name
				}
				a.IsExternal = false
			} else {
				a.IsExternal = !p.Org.IsInternalEmail(a.Email)
			}
		}
	}
	return events
}

// FilterByDateRange keeps events starting within [start, end].
func (p *Processor) FilterByDateRange(events []*model.Event, start, end time.Time) []*model.Event {
	var filtered []*model.Event
	for _, e := range events {
		if !e.Start.Before(start) && !e.Start.After(end) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// FilterByEmployee keeps events the employee organizes or attends.
func (p *Processor) FilterByEmployee(events []*model.Event, email string, asOrganizer, asAttendee bool) []*model.Event {
	var filtered []*model.Event
	for _, e := range events {
		switch {
		case asOrganizer && e.IsOrganizer(email):
			filtered = append(filtered, e)
		case asAttendee && e.HasAttendee(email):
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// FilterNonCancelled drops cancelled events.
func (p *Processor) FilterNonCancelled(events []*model.Event) []*model.Event {
	var filtered []*model.Event
	for _, e := range events {
		if !e.IsCancelled {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// FilterWorkMeetings keeps actual meetings: not all-day, not marked free,
// and with at least one other participant.
func (p *Processor) FilterWorkMeetings(events []*model.Event) []*model.Event {
	var filtered []*model.Event
	for _, e := range events {
		if !e.IsAllDay && e.ShowAs != "free" && e.AttendeeCount() > 1 {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// GroupByWeek groups events by ISO week, keyed "2024-W10".
func (p *Processor) GroupByWeek(events []*model.Event) map[string][]*model.Event {
	grouped := make(map[string][]*model.Event)
	for _, e := range events {
		year, week := e.Start.ISOWeek()
		key := fmt.Sprintf("%d-W%02d", year, week)
		grouped[key] = append(grouped[key], e)
	}
	return grouped
}

// GroupByMonth groups events by calendar month, keyed "2024-03".
func (p *Processor) GroupByMonth(events []*model.Event) map[string][]*model.Event {
	grouped := make(map[string][]*model.Event)
	for _, e := range events {
		key := e.Start.Format("2006-01")
		grouped[key] = append(grouped[key], e)
	}
	return grouped
}

// GroupByDayOfWeek groups events by weekday name.
func (p *Processor) GroupByDayOfWeek(events []*model.Event) map[string][]*model.Event {
	grouped := make(map[string][]*model.Event)
	for _, e := range events {
		grouped[e.DayOfWeek()] = append(grouped[e.DayOfWeek()], e)
	}
	return grouped
}

// GroupByOrganizer groups events by lowercased organizer email.
func (p *Processor) GroupByOrganizer(events []*model.Event) map[string][]*model.Event {
	grouped := make(map[string][]*model.Event)
	for _, e := range events {
		key := strings.ToLower(e.OrganizerEmail)
		grouped[key] = append(grouped[key], e)
	}
	return grouped
}

// RecurringEvents keeps only recurring events.
func (p *Processor) RecurringEvents(events []*model.Event) []*model.Event {
	var filtered []*model.Event
	for _, e := range events {
		if e.IsRecurring {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// AdhocEvents keeps only non-recurring events.
func (p *Processor) AdhocEvents(events []*model.Event) []*model.Event {
	var filtered []*model.Event
	for _, e := range events {
		if !e.IsRecurring {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// OneOnOneMeetings keeps only two-person meetings.
func (p *Processor) OneOnOneMeetings(events []*model.Event) []*model.Event {
	var filtered []*model.Event
	for _, e := range events {
		if e.IsOneOnOne() {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// ExternalMeetings keeps meetings with at least one external attendee.
func (p *Processor) ExternalMeetings(events []*model.Event) []*model.Event {
	var filtered []*model.Event
	for _, e := range events {
		if e.HasExternalAttendees() {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// InternalMeetings keeps meetings with only internal participants.
func (p *Processor) InternalMeetings(events []*model.Event) []*model.Event {
	var filtered []*model.Event
	for _, e := range events {
		if !e.HasExternalAttendees() {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// TotalMeetingHours sums event durations in hours.
func (p *Processor) TotalMeetingHours(events []*model.Event) float64 {
	total := 0.0
	for _, e := range events {
		total += e.DurationHours()
	}
	return total
}

// AverageMeetingDuration is the mean duration in minutes, 0 when empty.
func (p *Processor) AverageMeetingDuration(events []*model.Event) float64 {
	if len(events) == 0 {
		return 0
	}
	total := 0
	for _, e := range events {
		total += e.DurationMinutes()
	}
	return float64(total) / float64(len(events))
}

// MeetingLoadByDay sums meeting hours per weekday.
func (p *Processor) MeetingLoadByDay(events []*model.Event) map[string]float64 {
	load := make(map[string]float64)
	for day, dayEvents := range p.GroupByDayOfWeek(events) {
		load[day] = p.TotalMeetingHours(dayEvents)
	}
	return load
}

// BackToBackPair is two consecutive same-day meetings with little or no
// gap between them.
type BackToBackPair struct {
	First  *model.Event
	Second *model.Event
}

// FindBackToBack finds consecutive same-day meetings whose gap is at most
// bufferMinutes.
func (p *Processor) FindBackToBack(events []*model.Event, bufferMinutes int) []BackToBackPair {
	if len(events) < 2 {
		return nil
	}

	sorted := make([]*model.Event, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	var pairs []BackToBackPair
	for i := 0; i < len(sorted)-1; i++ {
		current, next := sorted[i], sorted[i+1]

		cy, cm, cd := current.Start.Date()
		ny, nm, nd := next.Start.Date()
		if cy != ny || cm != nm || cd != nd {
			continue
		}

		gap := next.Start.Sub(current.End).Minutes()
		if gap <= float64(bufferMinutes) {
			pairs = append(pairs, BackToBackPair{First: current, Second: next})
		}
	}
	return pairs
}

// FocusTime computes non-meeting hours during the work day, keyed by date
// "2024-03-04". Days without events are absent from the result.
func (p *Processor) FocusTime(events []*model.Event, workStartHour, workEndHour int) map[string]float64 {
	byDate := make(map[string][]*model.Event)
	for _, e := range events {
		key := e.Start.Format("2006-01-02")
		byDate[key] = append(byDate[key], e)
	}

	workHours := float64(workEndHour - workStartHour)
	focus := make(map[string]float64, len(byDate))
	for date, dayEvents := range byDate {
		meetingHours := p.TotalMeetingHours(dayEvents)
		focus[date] = max(0, workHours-meetingHours)
	}
	return focus
}

// ParticipantRelationship describes how a meeting's internal participants
// relate to each other in the org chart.
type ParticipantRelationship struct {
	SameTeam             bool                `json:"same_team"`
	CrossFunctional      bool                `json:"cross_functional"`
	HasManagerReport     bool                `json:"has_manager_report"`
	FunctionsRepresented []model.JobFunction `json:"functions_represented"`
	TeamsRepresented     []string            `json:"teams_represented"`
}

// AnalyzeParticipants resolves a meeting's participants against the
// directory and reports team, function, and reporting-line overlap.
// Participants not in the directory are ignored.
func (p *Processor) AnalyzeParticipants(event *model.Event) ParticipantRelationship {
	var employees []*model.Employee
	for _, email := range event.AttendeeEmails() {
		if emp := p.Org.GetEmployee(email); emp != nil {
			employees = append(employees, emp)
		}
	}

	if len(employees) < 2 {
		return ParticipantRelationship{}
	}

	teamSet := make(map[string]bool)
	functionSet := make(map[model.JobFunction]bool)
	for _, emp := range employees {
		if emp.Team != "" {
			teamSet[emp.Team] = true
		}
		functionSet[emp.JobFunction] = true
	}

	hasManagerReport := false
	for _, emp := range employees {
		for _, other := range employees {
			if emp != other && emp.ReportsTo(other) {
				hasManagerReport = true
				break
			}
		}
		if hasManagerReport {
			break
		}
	}

	teams := make([]string, 0, len(teamSet))
	for team := range teamSet {
		teams = append(teams, team)
	}
	sort.Strings(teams)

	functions := make([]model.JobFunction, 0, len(functionSet))
	for fn := range functionSet {
		functions = append(functions, fn)
	}
	sort.Slice(functions, func(i, j int) bool { return functions[i] < functions[j] })

	return ParticipantRelationship{
		SameTeam:             len(teams) == 1,
		CrossFunctional:      len(functions) > 1,
		HasManagerReport:     hasManagerReport,
		FunctionsRepresented: functions,
		TeamsRepresented:     teams,
	}
}

// IdentifySeries groups events belonging to the same meeting series.
// Events sharing a series master are grouped under it; recurring events
// without one fall back to the normalized subject; ad-hoc events each form
// their own group.
func (p *Processor) IdentifySeries(events []*model.Event) map[string][]*model.Event {
	series := make(map[string][]*model.Event)
	for _, e := range events {
		var key string
		switch {
		case e.SeriesMasterID != "":
			key = e.SeriesMasterID
		case e.IsRecurring:
			key = "recurring:" + strings.ToLower(strings.TrimSpace(e.Subject))
		default:
			key = "adhoc:" + e.ID
		}
		series[key] = append(series[key], e)
	}
	return series
}

// EmployeeStats is a per-employee meeting summary.
type EmployeeStats struct {
	Email              string  `json:"email"`
	Name               string  `json:"name"`
	TotalMeetings      int     `json:"total_meetings"`
	MeetingsOrganized  int     `json:"meetings_organized"`
	MeetingsAttended   int     `json:"meetings_attended"`
	TotalHours         float64 `json:"total_hours"`
	HoursOrganized     float64 `json:"hours_organized"`
	HoursAttended      float64 `json:"hours_attended"`
	AvgMeetingDuration float64 `json:"avg_meeting_duration"`
	OneOnOnes          int     `json:"one_on_ones"`
	RecurringMeetings  int     `json:"recurring_meetings"`
	ExternalMeetings   int     `json:"external_meetings"`
	BackToBackCount    int     `json:"back_to_back_count"`
}

// EmployeeMeetingStats computes a meeting summary for one employee across
// the given events.
func (p *Processor) EmployeeMeetingStats(events []*model.Event, email string) EmployeeStats {
	own := p.FilterByEmployee(events, email, true, true)

	var organized, attended []*model.Event
	for _, e := range own {
		if e.IsOrganizer(email) {
			organized = append(organized, e)
		} else {
			attended = append(attended, e)
		}
	}

	name := email
	if emp := p.Org.GetEmployee(email); emp != nil {
		name = emp.Name
	}

	return EmployeeStats{
		Email:              email,
		Name:               name,
		TotalMeetings:      len(own),
		MeetingsOrganized:  len(organized),
		MeetingsAttended:   len(attended),
		TotalHours:         p.TotalMeetingHours(own),
		HoursOrganized:     p.TotalMeetingHours(organized),
		HoursAttended:      p.TotalMeetingHours(attended),
		AvgMeetingDuration: p.AverageMeetingDuration(own),
		OneOnOnes:          len(p.OneOnOneMeetings(own)),
		RecurringMeetings:  len(p.RecurringEvents(own)),
		ExternalMeetings:   len(p.ExternalMeetings(own)),
		BackToBackCount:    len(p.FindBackToBack(own, 5)),
	}
}
