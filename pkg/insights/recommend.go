package insights

import (
	"fmt"

	"github.com/mdomarsaleem1/calendar-analytics/pkg/classify"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"
)

// Recommendation is one actionable finding.
type Recommendation struct {
	Issue          string `json:"issue"`
	Finding        string `json:"finding"`
	Recommendation string `json:"recommendation"`
	Impact         string `json:"impact"`
}

// PositivePattern highlights something the organization already does well.
type PositivePattern struct {
	Pattern string `json:"pattern"`
	Finding string `json:"finding"`
	Benefit string `json:"benefit"`
}

// Recommendations groups findings by priority.
type Recommendations struct {
	HighPriority     []Recommendation  `json:"high_priority"`
	MediumPriority   []Recommendation  `json:"medium_priority"`
	LowPriority      []Recommendation  `json:"low_priority"`
	PositivePatterns []PositivePattern `json:"positive_patterns"`
}

// Recommend derives best-practice recommendations from an already computed
// insights bundle.
func (eng *Engine) Recommend(events []*model.Event, insights *FullInsights) *Recommendations {
	recs := &Recommendations{}

	var summary Summary
	if insights.Summary != nil {
		summary = *insights.Summary
	}

	switch avgHours := summary.AvgHoursPerDay; {
	case avgHours > 6:
		recs.HighPriority = append(recs.HighPriority, Recommendation{
			Issue:          "Excessive meeting time",
			Finding:        fmt.Sprintf("Average %.1f hours/day in meetings", avgHours),
			Recommendation: "Reduce meeting time to 4-5 hours/day. Consider async alternatives for status updates.",
			Impact:         "High - affects deep work and productivity",
		})
	case avgHours > 5:
		recs.MediumPriority = append(recs.MediumPriority, Recommendation{
			Issue:          "High meeting load",
			Finding:        fmt.Sprintf("Average %.1f hours/day in meetings", avgHours),
			Recommendation: "Review recurring meetings for necessity. Implement 'no meeting' time blocks.",
			Impact:         "Medium - may limit focus time",
		})
	}

	if avgDuration := summary.AvgMeetingDurationMinutes; avgDuration > 50 {
		recs.HighPriority = append(recs.HighPriority, Recommendation{
			Issue:          "Meetings default to 1 hour",
			Finding:        fmt.Sprintf("Average meeting is %.0f minutes", avgDuration),
			Recommendation: "Default to 25 or 50 minute meetings. Most discussions can be 25 mins.",
			Impact:         "High - creates buffer time between meetings",
		})
	}

	if frag := insights.CalendarFragmentation; frag != nil && frag.AvgFragmentationScore > 3 {
		recs.HighPriority = append(recs.HighPriority, Recommendation{
			Issue:          "High calendar fragmentation",
			Finding:        fmt.Sprintf("Fragmentation score: %.1f", frag.AvgFragmentationScore),
			Recommendation: "Cluster meetings together. Block focus time. Use meeting-free mornings.",
			Impact:         "High - fragmented calendars reduce deep work by 40%+",
		})
	}

	if eff := insights.EfficiencyMetrics; eff != nil {
		if eff.AvgResponseRate < 70 {
			recs.MediumPriority = append(recs.MediumPriority, Recommendation{
				Issue:          "Low meeting response rates",
				Finding:        fmt.Sprintf("Only %.0f%% of invitees respond", eff.AvgResponseRate),
				Recommendation: "Send calendar invites earlier. Include clear agendas. Follow up on non-responses.",
				Impact:         "Medium - unclear attendance affects meeting effectiveness",
			})
		}
		if eff.LargeMeetingsOver10 > 5 {
			recs.MediumPriority = append(recs.MediumPriority, Recommendation{
				Issue:          "Many large meetings",
				Finding:        fmt.Sprintf("%d meetings with 10+ attendees", eff.LargeMeetingsOver10),
				Recommendation: "Large meetings often have passive attendees. Consider smaller working groups.",
				Impact:         "Medium - large meetings are often inefficient",
			})
		}
	}

	if recurringPct := summary.RecurringPercentage; recurringPct > 70 {
		recs.MediumPriority = append(recs.MediumPriority, Recommendation{
			Issue:          "High recurring meeting percentage",
			Finding:        fmt.Sprintf("%.0f%% of meetings are recurring", recurringPct),
			Recommendation: "Review recurring meetings quarterly. Cancel or reduce frequency of low-value meetings.",
			Impact:         "Medium - recurring meetings can become stale",
		})
	}

	total := summary.TotalMeetings
	if total == 0 {
		total = 1
	}

	if vague := insights.TextInsights.NamingPatterns.VagueMeetingCount; float64(vague)/float64(total) > 0.15 {
		recs.MediumPriority = append(recs.MediumPriority, Recommendation{
			Issue:          "Vague meeting names",
			Finding:        fmt.Sprintf("%d meetings have generic names like 'Meeting' or 'Sync'", vague),
			Recommendation: "Use descriptive names with action verbs (e.g., 'Review Q4 plan' not 'Meeting')",
			Impact:         "Medium - clear names improve preparation and attendance",
		})
	}

	if timing := insights.TimingAnalysis; timing != nil {
		unusual := timing.EarlyMorningMeetings.Count + timing.LateEveningMeetings.Count
		if float64(unusual)/float64(total) > 0.1 {
			recs.LowPriority = append(recs.LowPriority, Recommendation{
				Issue:          "Meetings outside core hours",
				Finding:        fmt.Sprintf("%d meetings before 9am or after 6pm", unusual),
				Recommendation: "Respect working hours when possible. Use async communication for non-urgent topics.",
				Impact:         "Low - affects work-life balance",
			})
		}
		if lunch := timing.LunchTimeMeetings.Count; float64(lunch)/float64(total) > 0.1 {
			recs.LowPriority = append(recs.LowPriority, Recommendation{
				Issue:          "Frequent lunch-time meetings",
				Finding:        fmt.Sprintf("%d meetings scheduled 12-1pm", lunch),
				Recommendation: "Keep lunch hour free when possible for breaks and informal connections.",
				Impact:         "Low - affects wellbeing and informal networking",
			})
		}
	}

	if oneOnOnes, ok := insights.OneOnOneVsTeam[classify.TypeOneOnOne]; ok && oneOnOnes.PercentageOfMeetings >= 15 {
		recs.PositivePatterns = append(recs.PositivePatterns, PositivePattern{
			Pattern: "Healthy 1:1 meeting ratio",
			Finding: fmt.Sprintf("%.0f%% of meetings are 1:1s", oneOnOnes.PercentageOfMeetings),
			Benefit: "1:1s are effective for coaching, feedback, and relationship building",
		})
	}

	if health := insights.CrossFunctionalHealth; health != nil && health.HealthScore >= 60 {
		recs.PositivePatterns = append(recs.PositivePatterns, PositivePattern{
			Pattern: "Good cross-functional collaboration",
			Finding: fmt.Sprintf("Collaboration health score: %.0f/100", health.HealthScore),
			Benefit: "Strong cross-functional ties improve innovation and alignment",
		})
	}

	if eff := insights.EfficiencyMetrics; eff != nil && eff.StandardLengthPercentage >= 80 {
		recs.PositivePatterns = append(recs.PositivePatterns, PositivePattern{
			Pattern: "Consistent meeting lengths",
			Finding: fmt.Sprintf("%.0f%% of meetings use standard durations", eff.StandardLengthPercentage),
			Benefit: "Predictable meeting lengths help with calendar management",
		})
	}

	return recs
}
