// Package sample generates synthetic organizations and calendar data for
// demos and testing. Output is deterministic for a given seed, and the
// exported files load back through the hris and calendar ingest packages.
package sample

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"
)

var firstNames = []string{
	"Alice", "Bob", "Charlie", "Diana", "Edward", "Fiona", "George", "Hannah",
	"Ivan", "Julia", "Kevin", "Laura", "Michael", "Nina", "Oscar", "Patricia",
	"Quinn", "Rachel", "Samuel", "Teresa", "Uma", "Victor", "Wendy", "Xavier",
	"Yolanda", "Zachary", "Amir", "Bianca", "Carlos", "Deepa", "Elena", "Feng",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Anderson", "Taylor", "Thomas", "Moore", "Jackson",
	"Martin", "Lee", "Perez", "Thompson", "White", "Chen", "Patel", "Kim", "Singh",
}

// Subject templates by meeting type. Placeholders are filled from the
// organizer, the first attendee, and the pools below.
var meetingTemplates = map[string][]string{
	"sprint": {
		"Sprint Planning - {team}",
		"{team} Daily Standup",
		"Sprint Retrospective",
		"Backlog Grooming",
		"Sprint Review - {project}",
	},
	"one_on_one": {
		"1:1 with {name}",
		"{name} / {name2} Sync",
		"Weekly 1:1",
		"Career Development Chat",
		"Check-in with {name}",
	},
	"project": {
		"{project} Kickoff",
		"{project} Status Update",
		"{project} Design Review",
		"{project} Technical Discussion",
		"Review {project} Requirements",
	},
	"team": {
		"{team} Team Meeting",
		"{team} All Hands",
		"Weekly Team Sync - {team}",
		"{team} Planning Session",
	},
	"client": {
		"Client Call - {client}",
		"{client} Demo",
		"{client} QBR",
		"Sales Pitch - {client}",
		"{client} Contract Review",
	},
	"interview": {
		"Interview - {role}",
		"Phone Screen - {name}",
		"Technical Interview",
		"Hiring Debrief",
		"Candidate Assessment",
	},
	"misc": {
		"Meeting",
		"Quick Sync",
		"Discussion",
		"Call",
		"Touchbase",
	},
}

var (
	projects  = []string{"Atlas", "Beacon", "Catalyst", "Delta", "Echo", "Falcon", "Griffin"}
	clients   = []string{"Acme Corp", "TechStart Inc", "Global Industries", "Digital Solutions", "Innovation Labs"}
	teams     = []string{"Platform", "Product", "Growth", "Infrastructure", "Mobile", "Data", "Security"}
	roles     = []string{"Senior Engineer", "Product Manager", "Designer", "Data Scientist", "Engineering Manager"}
	locations = []string{"San Francisco", "New York", "London", "Remote"}
)

var meetingTypes = []struct {
	name   string
	weight int
}{
	{"one_on_one", 30},
	{"team", 20},
	{"project", 20},
	{"sprint", 15},
	{"client", 8},
	{"interview", 5},
	{"misc", 2},
}

// Start-hour weights for 08:00 through 18:00, peaking late morning and
// mid afternoon.
var hourWeights = []int{1, 5, 8, 10, 10, 6, 8, 10, 10, 8, 4}

var durationChoices = map[string][]int{
	"one_on_one": {15, 30, 45, 60},
	"team":       {30, 60, 90},
	"project":    {30, 60},
	"sprint":     {15, 60, 90, 120},
	"client":     {30, 60},
	"interview":  {45, 60},
	"misc":       {15, 30},
}

// Generator produces a synthetic organization and its calendars. All
// randomness flows through a single seeded source, so the same seed always
// yields the same data.
type Generator struct {
	companyDomain string
	rng           *rand.Rand
	usedEmails    map[string]int
}

// NewGenerator creates a generator for the given company domain and seed.
func NewGenerator(companyDomain string, seed int64) *Generator {
	if companyDomain == "" {
		companyDomain = "example.com"
	}
	return &Generator{
		companyDomain: strings.ToLower(companyDomain),
		rng:           rand.New(rand.NewSource(seed)),
		usedEmails:    make(map[string]int),
	}
}

// GenerateOrganization builds an org chart: a CEO, five VP department
// heads, managers under each head, and ICs under each manager.
func (g *Generator) GenerateOrganization(employeeCount int, companyName string) *model.Organization {
	org := model.NewOrganization(companyName, g.companyDomain)

	ceo := g.newEmployee(model.LevelCLevel, model.FunctionExecutive, "")
	org.AddEmployee(ceo)

	functions := []model.JobFunction{
		model.FunctionEngineering,
		model.FunctionProduct,
		model.FunctionSales,
		model.FunctionMarketing,
		model.FunctionHR,
	}

	heads := make([]*model.Employee, 0, len(functions))
	for _, fn := range functions {
		head := g.newEmployee(model.LevelVP, fn, ceo.Email)
		org.AddEmployee(head)
		heads = append(heads, head)
	}

	remaining := employeeCount - org.EmployeeCount()
	perDept := remaining / len(heads)

	for _, head := range heads {
		managerCount := max(1, perDept/6)
		managers := make([]*model.Employee, 0, managerCount)
		for i := 0; i < managerCount; i++ {
			m := g.newEmployee(model.LevelManager, head.JobFunction, head.Email)
			org.AddEmployee(m)
			managers = append(managers, m)
		}

		icsPerManager := (perDept - managerCount) / max(managerCount, 1)
		for _, m := range managers {
			for i := 0; i < icsPerManager; i++ {
				level := choose(g.rng, []model.JobLevel{model.LevelIC, model.LevelSeniorIC})
				org.AddEmployee(g.newEmployee(level, m.JobFunction, m.Email))
			}
		}
	}

	org.BuildRelationships()
	return org
}

func (g *Generator) newEmployee(level model.JobLevel, fn model.JobFunction, managerEmail string) *model.Employee {
	first := choose(g.rng, firstNames)
	last := choose(g.rng, lastNames)
	email := g.uniqueEmail(first, last)

	team := string(fn)
	if fn == model.FunctionEngineering {
		team = choose(g.rng, teams)
	}

	return &model.Employee{
		ID:            fmt.Sprintf("EMP%04d", hash32(email)%10000),
		Email:         email,
		Name:          first + " " + last,
		JobTitle:      titleFor(level, fn),
		JobLevel:      level,
		JobFunction:   fn,
		Department:    string(fn),
		Team:          team,
		Location:      choose(g.rng, locations),
		ManagerEmail:  managerEmail,
		IsActive:      true,
		CompanyDomain: g.companyDomain,
	}
}

// uniqueEmail derives first.last@domain, suffixing the local part with a
// counter when the combination repeats.
func (g *Generator) uniqueEmail(first, last string) string {
	local := strings.ToLower(first) + "." + strings.ToLower(last)
	g.usedEmails[local]++
	if n := g.usedEmails[local]; n > 1 {
		local = fmt.Sprintf("%s%d", local, n)
	}
	return local + "@" + g.companyDomain
}

func titleFor(level model.JobLevel, fn model.JobFunction) string {
	switch level {
	case model.LevelVP:
		return "VP of " + string(fn)
	case model.LevelCLevel:
		return "Chief " + string(fn) + " Officer"
	}

	prefix := ""
	switch level {
	case model.LevelSeniorIC, model.LevelSeniorManager:
		prefix = "Senior "
	case model.LevelLead:
		prefix = "Lead "
	}

	base := string(fn)
	switch fn {
	case model.FunctionEngineering:
		switch level {
		case model.LevelIC, model.LevelSeniorIC, model.LevelLead:
			base = "Software Engineer"
		default:
			base = "Engineering Manager"
		}
	case model.FunctionProduct:
		base = "Product Manager"
	case model.FunctionDesign:
		base = "Designer"
	case model.FunctionSales:
		base = pickBase(level, "Sales Representative", "Sales Manager")
	case model.FunctionMarketing:
		base = pickBase(level, "Marketing Specialist", "Marketing Manager")
	case model.FunctionHR:
		base = pickBase(level, "HR Specialist", "HR Manager")
	case model.FunctionExecutive:
		base = "Executive"
	}
	return prefix + base
}

func pickBase(level model.JobLevel, ic, manager string) string {
	if level == model.LevelIC {
		return ic
	}
	return manager
}

// GenerateCalendars builds per-employee calendars covering the given span.
// Weekends are skipped; start defaults to days before now, truncated to
// midnight UTC. perDay is the mean meetings per person per working day.
func (g *Generator) GenerateCalendars(org *model.Organization, days int, start time.Time, perDay float64) map[string][]*model.Event {
	if start.IsZero() {
		start = time.Now().UTC().AddDate(0, 0, -days)
	}
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

	calendars := make(map[string][]*model.Event, len(org.Employees))
	for email := range org.Employees {
		calendars[email] = nil
	}

	employees := sortedEmployees(org)

	for offset := 0; offset < days; offset++ {
		day := start.AddDate(0, 0, offset)
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		for _, emp := range employees {
			n := int(g.rng.NormFloat64()*1.5 + perDay)
			n = max(0, min(8, n))

			for i := 0; i < n; i++ {
				event := g.generateEvent(org, emp, day, employees)
				if event == nil {
					continue
				}
				for _, email := range event.AttendeeEmails() {
					key := strings.ToLower(email)
					if _, ok := calendars[key]; ok {
						calendars[key] = append(calendars[key], event)
					}
				}
			}
		}
	}
	return calendars
}

func (g *Generator) generateEvent(org *model.Organization, organizer *model.Employee, day time.Time, employees []*model.Employee) *model.Event {
	meetingType := meetingTypes[weightedIndex(g.rng, typeWeights())].name

	hour := 8 + weightedIndex(g.rng, hourWeights)
	minute := choose(g.rng, []int{0, 30})
	duration := choose(g.rng, durationChoices[meetingType])

	start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
	end := start.Add(time.Duration(duration) * time.Minute)

	attendees := g.generateAttendees(org, organizer, meetingType, employees)
	if len(attendees) == 0 {
		return nil
	}

	subject := g.generateSubject(meetingType, organizer, attendees)

	recurring := false
	switch meetingType {
	case "one_on_one", "team", "sprint":
		recurring = g.rng.Float64() < 0.7
	}
	pattern := ""
	if recurring {
		pattern = "weekly"
	}

	return &model.Event{
		ID:                fmt.Sprintf("evt_%08x", hash32(subject+organizer.Email+start.Format(time.RFC3339))),
		Subject:           subject,
		OrganizerEmail:    organizer.Email,
		Start:             start,
		End:               end,
		Attendees:         attendees,
		IsRecurring:       recurring,
		RecurrencePattern: pattern,
		Importance:        choose(g.rng, []string{"normal", "normal", "normal", "high"}),
		Sensitivity:       "normal",
		ShowAs:            "busy",
	}
}

func (g *Generator) generateAttendees(org *model.Organization, organizer *model.Employee, meetingType string, employees []*model.Employee) []model.Attendee {
	var attendees []model.Attendee

	internal := func(emp *model.Employee, response model.ResponseStatus) model.Attendee {
		return model.NewAttendee(emp.Email, emp.Name, response)
	}

	switch meetingType {
	case "one_on_one":
		var candidates []*model.Employee
		if organizer.IsPeopleManager() {
			candidates = org.GetDirectReports(organizer.Email)
		}
		if organizer.ManagerEmail != "" {
			if m := org.GetEmployee(organizer.ManagerEmail); m != nil {
				candidates = append(candidates, m)
			}
		}
		peers := org.GetTeamMembers(organizer)
		if len(peers) > 5 {
			peers = peers[:5]
		}
		candidates = append(candidates, peers...)

		if len(candidates) > 0 {
			other := choose(g.rng, candidates)
			response := choose(g.rng, []model.ResponseStatus{
				model.ResponseAccepted, model.ResponseAccepted, model.ResponseTentative,
			})
			attendees = append(attendees, internal(other, response))
		}

	case "team":
		members := org.GetTeamMembers(organizer)
		count := min(len(members), g.rng.Intn(6)+3)
		for _, emp := range g.sample(members, count) {
			response := choose(g.rng, []model.ResponseStatus{
				model.ResponseAccepted, model.ResponseAccepted, model.ResponseNone,
			})
			attendees = append(attendees, internal(emp, response))
		}

	case "project", "sprint":
		count := g.rng.Intn(5) + 3
		sampled := g.sample(employees, min(len(employees), count+5))
		if len(sampled) > count {
			sampled = sampled[:count]
		}
		for _, emp := range sampled {
			if emp.Email == organizer.Email {
				continue
			}
			response := choose(g.rng, []model.ResponseStatus{
				model.ResponseAccepted, model.ResponseTentative, model.ResponseNone,
			})
			attendees = append(attendees, internal(emp, response))
		}

	case "client":
		client := choose(g.rng, clients)
		contact := model.NewAttendee(
			"contact@"+strings.ReplaceAll(strings.ToLower(client), " ", "")+".com",
			choose(g.rng, firstNames)+" from "+client,
			model.ResponseAccepted,
		)
		contact.IsExternal = true
		attendees = append(attendees, contact)
		for _, emp := range g.sample(employees, min(2, len(employees))) {
			if emp.Email == organizer.Email {
				continue
			}
			attendees = append(attendees, internal(emp, model.ResponseAccepted))
		}

	case "interview":
		candidate := model.NewAttendee(
			fmt.Sprintf("candidate_%d@email.com", g.rng.Intn(900)+100),
			choose(g.rng, firstNames)+" "+choose(g.rng, lastNames),
			model.ResponseAccepted,
		)
		candidate.IsExternal = true
		attendees = append(attendees, candidate)

	default:
		count := g.rng.Intn(4) + 1
		for _, emp := range g.sample(employees, min(count, len(employees))) {
			if emp.Email == organizer.Email {
				continue
			}
			attendees = append(attendees, internal(emp, model.ResponseAccepted))
		}
	}

	return attendees
}

func (g *Generator) generateSubject(meetingType string, organizer *model.Employee, attendees []model.Attendee) string {
	templates, ok := meetingTemplates[meetingType]
	if !ok {
		templates = meetingTemplates["misc"]
	}
	template := choose(g.rng, templates)

	team := organizer.Team
	if team == "" {
		team = choose(g.rng, teams)
	}
	name := "Someone"
	if len(attendees) > 0 {
		name = firstWord(attendees[0].Name)
	}

	return strings.NewReplacer(
		"{team}", team,
		"{project}", choose(g.rng, projects),
		"{client}", choose(g.rng, clients),
		"{name}", name,
		"{name2}", firstWord(organizer.Name),
		"{role}", choose(g.rng, roles),
	).Replace(template)
}

// sample returns n distinct elements in shuffled order.
func (g *Generator) sample(employees []*model.Employee, n int) []*model.Employee {
	if n <= 0 || len(employees) == 0 {
		return nil
	}
	shuffled := make([]*model.Employee, len(employees))
	copy(shuffled, employees)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

func choose[T any](rng *rand.Rand, options []T) T {
	return options[rng.Intn(len(options))]
}

func weightedIndex(rng *rand.Rand, weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	pick := rng.Intn(total)
	for i, w := range weights {
		pick -= w
		if pick < 0 {
			return i
		}
	}
	return len(weights) - 1
}

func typeWeights() []int {
	weights := make([]int, len(meetingTypes))
	for i, mt := range meetingTypes {
		weights[i] = mt.weight
	}
	return weights
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return s
	}
	return fields[0]
}

func hash32(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

func sortedEmployees(org *model.Organization) []*model.Employee {
	out := make([]*model.Employee, 0, len(org.Employees))
	for _, e := range org.Employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out
}
