package crossfunc

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"
)

// DefaultSiloThresholdPct is the same-function share at which a function is
// considered siloed.
const DefaultSiloThresholdPct = 80.0

// Silo describes one function whose meetings are overwhelmingly
// intra-function.
type Silo struct {
	Function               model.JobFunction `json:"function"`
	TotalMeetings          int               `json:"total_meetings"`
	SameFunctionMeetings   int               `json:"same_function_meetings"`
	CrossFunctionMeetings  int               `json:"cross_function_meetings"`
	SameFunctionPercentage float64           `json:"same_function_percentage"`
	SiloSeverity           string            `json:"silo_severity"`
	Recommendations        []string          `json:"recommendations"`
}

// IdentifySilos flags functions where at least thresholdPct of meetings are
// single-function. Severity is high at 90% and medium below. Results sort
// descending by same-function percentage.
func (a *Analyzer) IdentifySilos(events []*model.Event, thresholdPct float64) []Silo {
	type counts struct {
		total, same, cross int
	}
	perFunction := make(map[model.JobFunction]*counts)

	for _, e := range events {
		functions, _ := a.eventFunctions(e)
		for _, fn := range functions {
			c, ok := perFunction[fn]
			if !ok {
				c = &counts{}
				perFunction[fn] = c
			}
			c.total++
			if len(functions) == 1 {
				c.same++
			} else {
				c.cross++
			}
		}
	}

	var silos []Silo
	for fn, c := range perFunction {
		if c.total == 0 {
			continue
		}
		samePct := float64(c.same) / float64(c.total) * 100
		if samePct < thresholdPct {
			continue
		}
		severity := "medium"
		if samePct >= 90 {
			severity = "high"
		}
		silos = append(silos, Silo{
			Function:               fn,
			TotalMeetings:          c.total,
			SameFunctionMeetings:   c.same,
			CrossFunctionMeetings:  c.cross,
			SameFunctionPercentage: round1(samePct),
			SiloSeverity:           severity,
			Recommendations: []string{
				"Schedule regular cross-functional syncs with related teams",
				fmt.Sprintf("Include %s in broader planning meetings", fn),
				"Create joint projects with other functions",
			},
		})
	}

	sort.Slice(silos, func(i, j int) bool {
		if silos[i].SameFunctionPercentage != silos[j].SameFunctionPercentage {
			return silos[i].SameFunctionPercentage > silos[j].SameFunctionPercentage
		}
		return silos[i].Function < silos[j].Function
	})
	return silos
}

// BoundarySpanner describes one employee's cross-functional footprint.
type BoundarySpanner struct {
	Email                   string            `json:"email"`
	Name                    string            `json:"name"`
	Function                model.JobFunction `json:"function"`
	TotalMeetings           int               `json:"total_meetings"`
	CrossFunctionalMeetings int               `json:"cross_functional_meetings"`
	CrossFunctionalRatio    float64           `json:"cross_functional_ratio"`
	FunctionsConnected      []string          `json:"functions_connected"`
	BoundarySpanningScore   float64           `json:"boundary_spanning_score"`
}

// BoundarySpanningResult ranks employees by how much they connect functions.
type BoundarySpanningResult struct {
	BoundarySpanners         []BoundarySpanner `json:"boundary_spanners"`
	AvgCrossFunctionalRatio  float64           `json:"avg_cross_functional_ratio"`
	EmployeesAnalyzed        int               `json:"employees_analyzed"`
}

// BoundarySpanning scores each known participant: (cross-functional meeting
// ratio x 5) + min(distinct functions connected, 5). Reports the top 20.
func (a *Analyzer) BoundarySpanning(events []*model.Event) *BoundarySpanningResult {
	type spannerState struct {
		employee   *model.Employee
		total      int
		cross      int
		functions  map[model.JobFunction]bool
	}
	perEmail := make(map[string]*spannerState)

	for _, e := range events {
		functions, _ := a.eventFunctions(e)
		isCross := len(functions) > 1

		for _, email := range e.AttendeeEmails() {
			emp := a.Org.GetEmployee(email)
			if emp == nil {
				continue
			}
			s, ok := perEmail[email]
			if !ok {
				s = &spannerState{employee: emp, functions: make(map[model.JobFunction]bool)}
				perEmail[email] = s
			}
			s.total++
			if isCross {
				s.cross++
				for _, fn := range functions {
					s.functions[fn] = true
				}
			}
		}
	}

	var spanners []BoundarySpanner
	var ratioSum float64
	for email, s := range perEmail {
		if s.total == 0 {
			continue
		}
		ratio := float64(s.cross) / float64(s.total)
		connected := make([]string, 0, len(s.functions))
		for fn := range s.functions {
			connected = append(connected, string(fn))
		}
		sort.Strings(connected)

		score := ratio*5 + float64(min(len(s.functions), 5))
		spanner := BoundarySpanner{
			Email:                   email,
			Name:                    s.employee.Name,
			Function:                s.employee.JobFunction,
			TotalMeetings:           s.total,
			CrossFunctionalMeetings: s.cross,
			CrossFunctionalRatio:    round1(ratio * 100),
			FunctionsConnected:      connected,
			BoundarySpanningScore:   round1(score),
		}
		ratioSum += spanner.CrossFunctionalRatio
		spanners = append(spanners, spanner)
	}

	sort.Slice(spanners, func(i, j int) bool {
		if spanners[i].BoundarySpanningScore != spanners[j].BoundarySpanningScore {
			return spanners[i].BoundarySpanningScore > spanners[j].BoundarySpanningScore
		}
		return spanners[i].Email < spanners[j].Email
	})

	result := &BoundarySpanningResult{EmployeesAnalyzed: len(spanners)}
	if len(spanners) > 0 {
		result.AvgCrossFunctionalRatio = round1(ratioSum / float64(len(spanners)))
	}
	if len(spanners) > 20 {
		spanners = spanners[:20]
	}
	result.BoundarySpanners = spanners
	return result
}

// HealthResult is the composite collaboration health assessment.
type HealthResult struct {
	HealthScore               float64             `json:"health_score"`
	HealthRating              string              `json:"health_rating"`
	TotalMeetingsAnalyzed     int                 `json:"total_meetings_analyzed"`
	CrossFunctionalMeetings   int                 `json:"cross_functional_meetings"`
	CrossFunctionalPercentage float64             `json:"cross_functional_percentage"`
	SiloCount                 int                 `json:"silo_count"`
	ActiveFunctions           int                 `json:"active_functions"`
	TopBoundarySpanners       []BoundarySpanner   `json:"top_boundary_spanners"`
	StrongestConnections      []ConnectionSummary `json:"strongest_connections"`
	WeakestConnections        []ConnectionSummary `json:"weakest_connections"`
	Recommendations           []string            `json:"recommendations"`
}

// CollaborationHealth combines the matrix, silo, and boundary-spanner
// analyses into a 0-100 score with four independently capped factors:
// cross-functional ratio (30), silo penalty (30), boundary spanner strength
// (20), and connection coverage (20).
func (a *Analyzer) CollaborationHealth(events []*model.Event) *HealthResult {
	matrix := a.InteractionMatrix(events)
	silos := a.IdentifySilos(events, DefaultSiloThresholdPct)
	spanning := a.BoundarySpanning(events)

	totalMeetings := len(events)
	crossRatio := 0.0
	if totalMeetings > 0 {
		crossRatio = float64(matrix.TotalCrossFunctionalMeetings) / float64(totalMeetings)
	}

	score := math.Min(crossRatio*100, 30)
	score += math.Max(30-float64(len(silos))*10, 0)

	if len(spanning.BoundarySpanners) > 0 {
		top := spanning.BoundarySpanners
		if len(top) > 10 {
			top = top[:10]
		}
		var sum float64
		for _, s := range top {
			sum += s.BoundarySpanningScore
		}
		score += sum / float64(len(top)) * 2
	}

	activeFunctions := matrix.FunctionCount
	expectedConnections := float64(activeFunctions*(activeFunctions-1)) / 2
	if expectedConnections > 0 {
		observed := 0
		for _, fi := range a.Interactions(events) {
			if fi.MeetingCount > 0 {
				observed++
			}
		}
		score += float64(observed) / expectedConnections * 20
	}

	score = math.Min(round1(score), 100)

	result := &HealthResult{
		HealthScore:               score,
		HealthRating:              healthRating(score),
		TotalMeetingsAnalyzed:     totalMeetings,
		CrossFunctionalMeetings:   matrix.TotalCrossFunctionalMeetings,
		CrossFunctionalPercentage: round1(crossRatio * 100),
		SiloCount:                 len(silos),
		ActiveFunctions:           activeFunctions,
	}

	result.TopBoundarySpanners = spanning.BoundarySpanners
	if len(result.TopBoundarySpanners) > 5 {
		result.TopBoundarySpanners = result.TopBoundarySpanners[:5]
	}
	result.StrongestConnections = matrix.StrongestConnections
	if len(result.StrongestConnections) > 3 {
		result.StrongestConnections = result.StrongestConnections[:3]
	}
	result.WeakestConnections = matrix.WeakestConnections
	if len(result.WeakestConnections) > 3 {
		result.WeakestConnections = result.WeakestConnections[:3]
	}

	if crossRatio < 0.3 {
		result.Recommendations = append(result.Recommendations,
			"Cross-functional meeting ratio is low. Consider creating more joint initiatives and shared goals between teams.")
	}
	if len(silos) > 0 {
		names := make([]string, 0, 3)
		for i, s := range silos {
			if i == 3 {
				break
			}
			names = append(names, string(s.Function))
		}
		result.Recommendations = append(result.Recommendations, fmt.Sprintf(
			"Potential silos identified in: %s. Focus on improving collaboration with these teams.",
			strings.Join(names, ", ")))
	}
	if spanning.AvgCrossFunctionalRatio < 30 {
		result.Recommendations = append(result.Recommendations,
			"Few employees are connecting across functions. Consider identifying and empowering boundary spanners.")
	}

	return result
}

func healthRating(score float64) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	case score >= 20:
		return "Needs Improvement"
	default:
		return "Critical"
	}
}
