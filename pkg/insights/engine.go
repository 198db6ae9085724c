// Package insights orchestrates every analyzer into one report: summary,
// distributions, timing, efficiency, fragmentation, cross-functional health,
// text analysis, manager analytics, and best-practice recommendations.
package insights

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/mdomarsaleem1/calendar-analytics/pkg/aggregate"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/classify"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/crossfunc"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/manager"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/textual"
)

// Options tune the engine. Zero values fall back to the defaults.
type Options struct {
	HourlyRate   float64
	WorkDayStart int
	WorkDayEnd   int
}

func (o Options) withDefaults() Options {
	if o.HourlyRate == 0 {
		o.HourlyRate = aggregate.DefaultHourlyRate
	}
	if o.WorkDayStart == 0 {
		o.WorkDayStart = 9
	}
	if o.WorkDayEnd == 0 {
		o.WorkDayEnd = 18
	}
	return o
}

// Engine runs all analyzers over one organization.
type Engine struct {
	Org *model.Organization

	opts      Options
	aggregate *aggregate.Analyzer
	crossfunc *crossfunc.Analyzer
	manager   *manager.Analyzer
}

// NewEngine wires the per-domain analyzers around a shared directory.
func NewEngine(org *model.Organization, opts Options) *Engine {
	return &Engine{
		Org:       org,
		opts:      opts.withDefaults(),
		aggregate: aggregate.NewAnalyzer(org),
		crossfunc: crossfunc.NewAnalyzer(org),
		manager:   manager.NewAnalyzer(org),
	}
}

// WorkMeetings filters out cancelled events, all-day blocks, and solo
// placeholders.
func WorkMeetings(events []*model.Event) []*model.Event {
	var work []*model.Event
	for _, e := range events {
		if !e.IsCancelled && !e.IsAllDay && e.AttendeeCount() > 1 {
			work = append(work, e)
		}
	}
	return work
}

// Summary is the executive overview of a batch of meetings.
type Summary struct {
	TotalMeetings             int     `json:"total_meetings"`
	TotalHours                float64 `json:"total_hours"`
	UniqueDaysAnalyzed        int     `json:"unique_days_analyzed"`
	AvgMeetingsPerDay         float64 `json:"avg_meetings_per_day"`
	AvgHoursPerDay            float64 `json:"avg_hours_per_day"`
	AvgMeetingDurationMinutes float64 `json:"avg_meeting_duration_minutes"`
	AvgAttendees              float64 `json:"avg_attendees"`
	RecurringPercentage       float64 `json:"recurring_percentage"`
	ExternalPercentage        float64 `json:"external_percentage"`
}

// ManagerInsights bundles the organization-wide manager analyses.
type ManagerInsights struct {
	SpanOfControlImpact  map[string]manager.SpanStats  `json:"span_of_control_impact"`
	AtRiskRelationships  []manager.AtRiskRelationship  `json:"at_risk_relationships"`
	MicromanagementFlags []manager.MicromanagementFlag `json:"micromanagement_flags"`
}

// FullInsights is the complete analysis output.
type FullInsights struct {
	Summary               *Summary                                     `json:"summary"`
	SizeDurationMatrix    *aggregate.SizeDurationMatrix                `json:"size_duration_matrix"`
	RecurringVsAdhoc      *aggregate.RecurringAdhocResult              `json:"recurring_vs_adhoc"`
	OneOnOneVsTeam        map[classify.MeetingType]aggregate.TypeStats `json:"one_on_one_vs_team"`
	TimingAnalysis        *aggregate.TimingResult                      `json:"timing_analysis"`
	EfficiencyMetrics     *aggregate.EfficiencyResult                  `json:"efficiency_metrics"`
	CalendarFragmentation *aggregate.FragmentationResult               `json:"calendar_fragmentation"`
	MeetingCost           *aggregate.CostResult                        `json:"meeting_cost"`
	InternalVsExternal    *InternalExternalResult                      `json:"internal_vs_external"`
	CrossFunctionalHealth *crossfunc.HealthResult                      `json:"cross_functional_health"`
	TextInsights          textual.ComprehensiveAnalysis                `json:"text_insights"`
	ManagerInsights       *ManagerInsights                             `json:"manager_insights,omitempty"`
	BestPractices         *Recommendations                             `json:"best_practices,omitempty"`
}

// Full runs every analysis over the work meetings in events. Manager
// insights appear only when the directory has managers; recommendations only
// when requested.
func (eng *Engine) Full(events []*model.Event, includeRecommendations bool) *FullInsights {
	work := WorkMeetings(events)

	result := &FullInsights{
		Summary:               eng.Summarize(work),
		SizeDurationMatrix:    aggregate.SizeDurationAnalysis(work),
		RecurringVsAdhoc:      eng.aggregate.RecurringVsAdhoc(work, true),
		OneOnOneVsTeam:        eng.aggregate.OneOnOneVsTeam(work),
		TimingAnalysis:        eng.aggregate.Timing(work),
		EfficiencyMetrics:     eng.aggregate.Efficiency(work),
		CalendarFragmentation: eng.aggregate.Fragmentation(work, eng.opts.WorkDayStart, eng.opts.WorkDayEnd),
		MeetingCost:           eng.aggregate.Cost(work, eng.opts.HourlyRate),
		InternalVsExternal:    eng.InternalVsExternal(work),
		CrossFunctionalHealth: eng.crossfunc.CollaborationHealth(work),
		TextInsights:          textual.Comprehensive(work),
	}

	if len(eng.Org.GetAllManagers()) > 0 {
		result.ManagerInsights = &ManagerInsights{
			SpanOfControlImpact:  eng.manager.SpanOfControlImpact(work),
			AtRiskRelationships:  eng.manager.AtRiskRelationships(work, manager.DefaultMinOneOnOneHours),
			MicromanagementFlags: eng.manager.MicromanagementPatterns(work, manager.DefaultMicromanagementThreshold),
		}
	}

	if includeRecommendations {
		result.BestPractices = eng.Recommend(work, result)
	}
	return result
}

// Summarize computes the executive summary. Nil when there is nothing to
// analyze.
func (eng *Engine) Summarize(events []*model.Event) *Summary {
	if len(events) == 0 {
		return nil
	}

	var totalHours float64
	var totalMinutes, totalAttendees, recurring, external int
	days := make(map[string]bool)
	for _, e := range events {
		totalHours += e.DurationHours()
		totalMinutes += e.DurationMinutes()
		totalAttendees += e.AttendeeCount()
		if e.IsRecurring {
			recurring++
		}
		if e.HasExternalAttendees() {
			external++
		}
		days[e.Start.Format("2006-01-02")] = true
	}

	n := float64(len(events))
	s := &Summary{
		TotalMeetings:             len(events),
		TotalHours:                round2(totalHours),
		UniqueDaysAnalyzed:        len(days),
		AvgMeetingDurationMinutes: round1(float64(totalMinutes) / n),
		AvgAttendees:              round1(float64(totalAttendees) / n),
		RecurringPercentage:       round1(float64(recurring) / n * 100),
		ExternalPercentage:        round1(float64(external) / n * 100),
	}
	if len(days) > 0 {
		s.AvgMeetingsPerDay = round1(n / float64(len(days)))
		s.AvgHoursPerDay = round1(totalHours / float64(len(days)))
	}
	return s
}

// SideStats is the count/hours/share triple for one side of the
// internal-external split.
type SideStats struct {
	Count      int     `json:"count"`
	Hours      float64 `json:"hours"`
	Percentage float64 `json:"percentage"`
}

// ExternalStats extends SideStats with the mean external headcount.
type ExternalStats struct {
	SideStats
	AvgExternalAttendees float64 `json:"avg_external_attendees"`
}

// FunctionExternal is one function's external-meeting footprint.
type FunctionExternal struct {
	TotalMeetings      int     `json:"total_meetings"`
	ExternalMeetings   int     `json:"external_meetings"`
	ExternalPercentage float64 `json:"external_percentage"`
	ExternalHours      float64 `json:"external_hours"`
}

// CustomerFacingFunction is a function whose external share exceeds 30%.
type CustomerFacingFunction struct {
	Function model.JobFunction `json:"function"`
	FunctionExternal
}

// ExternalPatterns describes when and how external meetings happen.
type ExternalPatterns struct {
	PeakHour            string  `json:"peak_hour"`
	AvgDurationMinutes  float64 `json:"avg_duration_minutes"`
	RecurringPercentage float64 `json:"recurring_percentage"`
}

// InternalExternalResult is the internal-vs-external analysis.
type InternalExternalResult struct {
	Internal         SideStats                              `json:"internal"`
	External         ExternalStats                          `json:"external"`
	ByFunction       map[model.JobFunction]FunctionExternal `json:"by_function"`
	CustomerFacing   []CustomerFacingFunction               `json:"customer_facing_functions"`
	ExternalPatterns *ExternalPatterns                      `json:"external_patterns,omitempty"`
}

// InternalVsExternal splits meetings by external participation, breaks the
// split down per organizing function, and flags customer-facing functions.
func (eng *Engine) InternalVsExternal(events []*model.Event) *InternalExternalResult {
	var internal, external []*model.Event
	for _, e := range events {
		if e.HasExternalAttendees() {
			external = append(external, e)
		} else {
			internal = append(internal, e)
		}
	}

	sumHours := func(batch []*model.Event) float64 {
		var h float64
		for _, e := range batch {
			h += e.DurationHours()
		}
		return h
	}
	share := func(n int) float64 {
		if len(events) == 0 {
			return 0
		}
		return round1(float64(n) / float64(len(events)) * 100)
	}

	result := &InternalExternalResult{
		Internal: SideStats{
			Count:      len(internal),
			Hours:      round2(sumHours(internal)),
			Percentage: share(len(internal)),
		},
		External: ExternalStats{
			SideStats: SideStats{
				Count:      len(external),
				Hours:      round2(sumHours(external)),
				Percentage: share(len(external)),
			},
		},
		ByFunction: make(map[model.JobFunction]FunctionExternal),
	}
	if len(external) > 0 {
		extAttendees := 0
		for _, e := range external {
			extAttendees += e.ExternalAttendeeCount()
		}
		result.External.AvgExternalAttendees = round1(float64(extAttendees) / float64(len(external)))
	}

	for _, fn := range model.JobFunctions {
		emails := make(map[string]bool)
		for _, emp := range eng.Org.GetEmployeesByFunction(fn) {
			emails[strings.ToLower(emp.Email)] = true
		}
		if len(emails) == 0 {
			continue
		}

		var fnEvents, fnExternal []*model.Event
		for _, e := range events {
			if emails[strings.ToLower(e.OrganizerEmail)] {
				fnEvents = append(fnEvents, e)
				if e.HasExternalAttendees() {
					fnExternal = append(fnExternal, e)
				}
			}
		}
		if len(fnEvents) == 0 {
			continue
		}

		fe := FunctionExternal{
			TotalMeetings:      len(fnEvents),
			ExternalMeetings:   len(fnExternal),
			ExternalPercentage: round1(float64(len(fnExternal)) / float64(len(fnEvents)) * 100),
			ExternalHours:      round2(sumHours(fnExternal)),
		}
		result.ByFunction[fn] = fe

		if fe.ExternalPercentage > 30 {
			result.CustomerFacing = append(result.CustomerFacing, CustomerFacingFunction{
				Function:         fn,
				FunctionExternal: fe,
			})
		}
	}
	sort.Slice(result.CustomerFacing, func(i, j int) bool {
		a, b := result.CustomerFacing[i], result.CustomerFacing[j]
		if a.ExternalPercentage != b.ExternalPercentage {
			return a.ExternalPercentage > b.ExternalPercentage
		}
		return a.Function < b.Function
	})

	if len(external) > 0 {
		byHour := make(map[int]int)
		var extMinutes, extRecurring int
		for _, e := range external {
			byHour[e.HourOfDay()]++
			extMinutes += e.DurationMinutes()
			if e.IsRecurring {
				extRecurring++
			}
		}
		peakHour, peakCount := 0, -1
		for hour := 0; hour < 24; hour++ {
			if byHour[hour] > peakCount {
				peakHour, peakCount = hour, byHour[hour]
			}
		}
		result.ExternalPatterns = &ExternalPatterns{
			PeakHour:            fmt.Sprintf("%02d:00", peakHour),
			AvgDurationMinutes:  round1(float64(extMinutes) / float64(len(external))),
			RecurringPercentage: round1(float64(extRecurring) / float64(len(external)) * 100),
		}
	}

	return result
}

// EmployeeProfile identifies the subject of an individual analysis.
type EmployeeProfile struct {
	Email         string            `json:"email"`
	Name          string            `json:"name"`
	Title         string            `json:"title,omitempty"`
	Function      model.JobFunction `json:"function"`
	Level         model.JobLevel    `json:"level"`
	IsManager     bool              `json:"is_manager"`
	DirectReports int               `json:"direct_reports"`
}

// IndividualSummary counts one person's meeting load.
type IndividualSummary struct {
	TotalMeetings      int     `json:"total_meetings"`
	MeetingsOrganized  int     `json:"meetings_organized"`
	MeetingsAttended   int     `json:"meetings_attended"`
	TotalHours         float64 `json:"total_hours"`
	AvgMeetingDuration float64 `json:"avg_meeting_duration"`
}

// IndividualInsights is the per-employee analysis.
type IndividualInsights struct {
	Employee          EmployeeProfile                              `json:"employee"`
	Summary           IndividualSummary                            `json:"summary"`
	SizeDuration      *aggregate.SizeDurationMatrix                `json:"size_duration"`
	MeetingTypes      map[classify.MeetingType]aggregate.TypeStats `json:"meeting_types"`
	Timing            *aggregate.TimingResult                      `json:"timing"`
	Fragmentation     *aggregate.FragmentationResult               `json:"fragmentation"`
	ManagerAllocation *manager.TimeAllocation                      `json:"manager_allocation,omitempty"`
}

// AnalyzeIndividual scopes the analysis to meetings the employee attends.
// The second return value is false when the email is not in the directory.
func (eng *Engine) AnalyzeIndividual(events []*model.Event, email string) (*IndividualInsights, bool) {
	employee := eng.Org.GetEmployee(email)
	if employee == nil {
		return nil, false
	}

	var personEvents []*model.Event
	organized, attended := 0, 0
	var totalHours float64
	var totalMinutes int
	for _, e := range events {
		if !e.HasAttendee(email) {
			continue
		}
		personEvents = append(personEvents, e)
		if e.IsOrganizer(email) {
			organized++
		} else {
			attended++
		}
		totalHours += e.DurationHours()
		totalMinutes += e.DurationMinutes()
	}

	result := &IndividualInsights{
		Employee: EmployeeProfile{
			Email:         email,
			Name:          employee.Name,
			Title:         employee.JobTitle,
			Function:      employee.JobFunction,
			Level:         employee.JobLevel,
			IsManager:     employee.IsPeopleManager(),
			DirectReports: employee.DirectReportCount(),
		},
		Summary: IndividualSummary{
			TotalMeetings:     len(personEvents),
			MeetingsOrganized: organized,
			MeetingsAttended:  attended,
			TotalHours:        round2(totalHours),
		},
		SizeDuration:  aggregate.SizeDurationAnalysis(personEvents),
		MeetingTypes:  eng.aggregate.OneOnOneVsTeam(personEvents),
		Timing:        eng.aggregate.Timing(personEvents),
		Fragmentation: eng.aggregate.Fragmentation(personEvents, eng.opts.WorkDayStart, eng.opts.WorkDayEnd),
	}
	if len(personEvents) > 0 {
		result.Summary.AvgMeetingDuration = round1(float64(totalMinutes) / float64(len(personEvents)))
	}

	if employee.IsPeopleManager() {
		result.ManagerAllocation = eng.manager.AnalyzeManager(events, email)
	}
	return result, true
}

// TeamComparison is one team's meeting profile, with ranks filled in when
// several teams are compared.
type TeamComparison struct {
	MemberCount        int     `json:"member_count"`
	TotalMeetings      int     `json:"total_meetings"`
	TotalHours         float64 `json:"total_hours"`
	HoursPerPerson     float64 `json:"hours_per_person"`
	AvgMeetingDuration float64 `json:"avg_meeting_duration"`
	RecurringPct       float64 `json:"recurring_pct"`
	ExternalPct        float64 `json:"external_pct"`
	OneOnOnePct        float64 `json:"one_on_one_pct"`

	HoursPerPersonRank     int `json:"hours_per_person_rank,omitempty"`
	AvgMeetingDurationRank int `json:"avg_meeting_duration_rank,omitempty"`
	RecurringPctRank       int `json:"recurring_pct_rank,omitempty"`
}

// CompareTeams profiles each named team over the events its members attend.
// Teams with no meetings are omitted. With more than one team, each gets a
// 1-based rank per metric, lowest value first.
func (eng *Engine) CompareTeams(events []*model.Event, teams map[string][]string) map[string]*TeamComparison {
	comparisons := make(map[string]*TeamComparison)

	for teamName, emails := range teams {
		emailSet := make(map[string]bool, len(emails))
		for _, e := range emails {
			emailSet[strings.ToLower(e)] = true
		}

		var teamEvents []*model.Event
		for _, e := range events {
			for _, att := range e.AttendeeEmails() {
				if emailSet[strings.ToLower(att)] {
					teamEvents = append(teamEvents, e)
					break
				}
			}
		}
		if len(teamEvents) == 0 {
			continue
		}

		var hours float64
		var minutes, recurring, external, oneOnOne int
		for _, e := range teamEvents {
			hours += e.DurationHours()
			minutes += e.DurationMinutes()
			if e.IsRecurring {
				recurring++
			}
			if e.HasExternalAttendees() {
				external++
			}
			if e.IsOneOnOne() {
				oneOnOne++
			}
		}

		n := float64(len(teamEvents))
		comparisons[teamName] = &TeamComparison{
			MemberCount:        len(emails),
			TotalMeetings:      len(teamEvents),
			TotalHours:         round2(hours),
			HoursPerPerson:     round2(hours / float64(len(emails))),
			AvgMeetingDuration: round1(float64(minutes) / n),
			RecurringPct:       round1(float64(recurring) / n * 100),
			ExternalPct:        round1(float64(external) / n * 100),
			OneOnOnePct:        round1(float64(oneOnOne) / n * 100),
		}
	}

	if len(comparisons) > 1 {
		rank := func(value func(*TeamComparison) float64, assign func(*TeamComparison, int)) {
			names := make([]string, 0, len(comparisons))
			for name := range comparisons {
				names = append(names, name)
			}
			sort.Slice(names, func(i, j int) bool {
				a, b := value(comparisons[names[i]]), value(comparisons[names[j]])
				if a != b {
					return a < b
				}
				return names[i] < names[j]
			})
			for i, name := range names {
				assign(comparisons[name], i+1)
			}
		}
		rank(func(c *TeamComparison) float64 { return c.HoursPerPerson },
			func(c *TeamComparison, r int) { c.HoursPerPersonRank = r })
		rank(func(c *TeamComparison) float64 { return c.AvgMeetingDuration },
			func(c *TeamComparison, r int) { c.AvgMeetingDurationRank = r })
		rank(func(c *TeamComparison) float64 { return c.RecurringPct },
			func(c *TeamComparison, r int) { c.RecurringPctRank = r })
	}

	return comparisons
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
