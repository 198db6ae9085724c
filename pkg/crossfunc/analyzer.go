// Package crossfunc analyzes collaboration between job functions: pairwise
// interaction records, the full interaction matrix, silo detection, boundary
// spanner scoring, and a composite collaboration health score.
package crossfunc

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"
)

// maxSampleSubjects caps the per-pair sample subject list.
const maxSampleSubjects = 10

// FunctionInteraction records collaboration between one pair of functions.
// FunctionA sorts alphabetically before FunctionB, so (A,B) and (B,A) land
// in the same record.
type FunctionInteraction struct {
	FunctionA          model.JobFunction `json:"function_a"`
	FunctionB          model.JobFunction `json:"function_b"`
	MeetingCount       int               `json:"meeting_count"`
	TotalHours         float64           `json:"total_hours"`
	UniqueParticipants map[string]bool   `json:"-"`
	SampleSubjects     []string          `json:"sample_subjects"`
}

// Key is the canonical "A:B" pair identifier.
func (fi *FunctionInteraction) Key() string {
	return PairKey(fi.FunctionA, fi.FunctionB)
}

// ParticipantCount is the number of distinct participants across both sides.
func (fi *FunctionInteraction) ParticipantCount() int {
	return len(fi.UniqueParticipants)
}

// PairKey builds the alphabetical "A:B" key for a function pair.
func PairKey(a, b model.JobFunction) string {
	if strings.Compare(string(a), string(b)) > 0 {
		a, b = b, a
	}
	return fmt.Sprintf("%s:%s", a, b)
}

// Analyzer runs cross-functional analyses against an organization directory.
type Analyzer struct {
	Org *model.Organization
}

// NewAnalyzer builds an analyzer for the given organization.
func NewAnalyzer(org *model.Organization) *Analyzer {
	return &Analyzer{Org: org}
}

// eventFunctions resolves the functions present in an event, in first-seen
// attendee order, with the participant emails per function. Attendees with
// no directory entry are skipped.
func (a *Analyzer) eventFunctions(e *model.Event) ([]model.JobFunction, map[model.JobFunction][]string) {
	var order []model.JobFunction
	members := make(map[model.JobFunction][]string)
	for _, email := range e.AttendeeEmails() {
		emp := a.Org.GetEmployee(email)
		if emp == nil {
			continue
		}
		if _, seen := members[emp.JobFunction]; !seen {
			order = append(order, emp.JobFunction)
		}
		members[emp.JobFunction] = append(members[emp.JobFunction], email)
	}
	return order, members
}

// Interactions aggregates every function-pair interaction across the batch.
// Events spanning fewer than two known functions contribute nothing.
func (a *Analyzer) Interactions(events []*model.Event) map[string]*FunctionInteraction {
	interactions := make(map[string]*FunctionInteraction)

	for _, e := range events {
		functions, members := a.eventFunctions(e)
		if len(functions) < 2 {
			continue
		}

		for i := 0; i < len(functions); i++ {
			for j := i + 1; j < len(functions); j++ {
				fa, fb := functions[i], functions[j]
				if strings.Compare(string(fa), string(fb)) > 0 {
					fa, fb = fb, fa
				}
				key := PairKey(fa, fb)

				interaction, ok := interactions[key]
				if !ok {
					interaction = &FunctionInteraction{
						FunctionA:          fa,
						FunctionB:          fb,
						UniqueParticipants: make(map[string]bool),
					}
					interactions[key] = interaction
				}

				interaction.MeetingCount++
				interaction.TotalHours += e.DurationHours()
				for _, email := range members[functions[i]] {
					interaction.UniqueParticipants[email] = true
				}
				for _, email := range members[functions[j]] {
					interaction.UniqueParticipants[email] = true
				}
				if len(interaction.SampleSubjects) < maxSampleSubjects {
					interaction.SampleSubjects = append(interaction.SampleSubjects, e.Subject)
				}
			}
		}
	}

	return interactions
}

// MatrixCell is one cell of the interaction matrix.
type MatrixCell struct {
	Count int     `json:"count"`
	Hours float64 `json:"hours"`
	Self  bool    `json:"self"`
}

// ConnectionSummary is a rendered interaction used in rankings.
type ConnectionSummary struct {
	FunctionA          model.JobFunction `json:"function_a"`
	FunctionB          model.JobFunction `json:"function_b"`
	MeetingCount       int               `json:"meeting_count"`
	TotalHours         float64           `json:"total_hours"`
	UniqueParticipants int               `json:"unique_participants"`
	SampleSubjects     []string          `json:"sample_subjects"`
}

// MatrixResult is the full interaction matrix plus connection rankings.
type MatrixResult struct {
	Matrix                       map[string]map[string]MatrixCell `json:"matrix"`
	TotalCrossFunctionalMeetings int                              `json:"total_cross_functional_meetings"`
	TotalCrossFunctionalHours    float64                          `json:"total_cross_functional_hours"`
	StrongestConnections         []ConnectionSummary              `json:"strongest_connections"`
	WeakestConnections           []ConnectionSummary              `json:"weakest_connections"`
	FunctionCount                int                              `json:"function_count"`
}

func summarize(fi *FunctionInteraction) ConnectionSummary {
	samples := fi.SampleSubjects
	if len(samples) > 5 {
		samples = samples[:5]
	}
	return ConnectionSummary{
		FunctionA:          fi.FunctionA,
		FunctionB:          fi.FunctionB,
		MeetingCount:       fi.MeetingCount,
		TotalHours:         round2(fi.TotalHours),
		UniqueParticipants: fi.ParticipantCount(),
		SampleSubjects:     samples,
	}
}

// sortedInteractions orders interactions by meeting count descending with
// the pair key as a deterministic tie break.
func sortedInteractions(interactions map[string]*FunctionInteraction) []*FunctionInteraction {
	list := make([]*FunctionInteraction, 0, len(interactions))
	for _, fi := range interactions {
		list = append(list, fi)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].MeetingCount != list[j].MeetingCount {
			return list[i].MeetingCount > list[j].MeetingCount
		}
		return list[i].Key() < list[j].Key()
	})
	return list
}

// InteractionMatrix builds the |functions| x |functions| matrix with
// strongest and weakest connection rankings. Weakest connections exclude
// zero-count pairs; the matrix itself shows every pair.
func (a *Analyzer) InteractionMatrix(events []*model.Event) *MatrixResult {
	interactions := a.Interactions(events)

	matrix := make(map[string]map[string]MatrixCell, len(model.JobFunctions))
	for _, fn := range model.JobFunctions {
		row := make(map[string]MatrixCell, len(model.JobFunctions))
		for _, other := range model.JobFunctions {
			if fn == other {
				row[string(other)] = MatrixCell{Self: true}
				continue
			}
			cell := MatrixCell{}
			if fi, ok := interactions[PairKey(fn, other)]; ok {
				cell.Count = fi.MeetingCount
				cell.Hours = round2(fi.TotalHours)
			}
			row[string(other)] = cell
		}
		matrix[string(fn)] = row
	}

	result := &MatrixResult{Matrix: matrix}
	for _, fi := range interactions {
		result.TotalCrossFunctionalMeetings += fi.MeetingCount
		result.TotalCrossFunctionalHours += fi.TotalHours
	}
	result.TotalCrossFunctionalHours = round2(result.TotalCrossFunctionalHours)

	ranked := sortedInteractions(interactions)
	for i := 0; i < len(ranked) && i < 5; i++ {
		result.StrongestConnections = append(result.StrongestConnections, summarize(ranked[i]))
	}
	start := len(ranked) - 5
	if start < 0 {
		start = 0
	}
	for _, fi := range ranked[start:] {
		if fi.MeetingCount > 0 {
			result.WeakestConnections = append(result.WeakestConnections, summarize(fi))
		}
	}

	// Active functions: any nonzero off-diagonal cell in the row.
	for _, fn := range model.JobFunctions {
		for _, other := range model.JobFunctions {
			if fn != other && matrix[string(fn)][string(other)].Count > 0 {
				result.FunctionCount++
				break
			}
		}
	}

	return result
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
