// Package classify maps a single calendar event to its classification
// labels: size, duration, meeting type, purpose category, and topic
// clusters. All functions are pure; no state is carried between calls.
package classify

import (
	"regexp"
	"strings"

	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"
)

// SizeCategory buckets an event by participant count.
type SizeCategory string

const (
	SizeSmall  SizeCategory = "small" // 1:1 or solo
	SizeMedium SizeCategory = "medium"
	SizeLarge  SizeCategory = "large"
)

// DurationCategory buckets an event by length.
type DurationCategory string

const (
	DurationShort  DurationCategory = "short"
	DurationMedium DurationCategory = "medium"
	DurationLong   DurationCategory = "long"
)

// MeetingType is the structural classification used for 1:1 vs team
// breakdowns. External attendance takes precedence over size.
type MeetingType string

const (
	TypeOneOnOne  MeetingType = "1:1"
	TypeSmallTeam MeetingType = "small_team" // 3-5 people
	TypeLargeTeam MeetingType = "large_team" // 6-10 people
	TypeAllHands  MeetingType = "all_hands"  // 11+ people
	TypeExternal  MeetingType = "external"
	TypeFocusTime MeetingType = "focus_time" // organizer-only block
)

// Size returns the size category for an event.
func Size(e *model.Event) SizeCategory {
	count := e.AttendeeCount()
	switch {
	case count <= 2:
		return SizeSmall
	case count <= 5:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// Duration returns the duration category for an event.
func Duration(e *model.Event) DurationCategory {
	minutes := e.DurationMinutes()
	switch {
	case minutes <= 30:
		return DurationShort
	case minutes <= 60:
		return DurationMedium
	default:
		return DurationLong
	}
}

// Type returns the meeting type. Any external attendee makes the meeting
// external regardless of size. An organizer-only event is a focus block.
func Type(e *model.Event) MeetingType {
	if e.HasExternalAttendees() {
		return TypeExternal
	}
	switch count := e.AttendeeCount(); {
	case count <= 1:
		return TypeFocusTime
	case count == 2:
		return TypeOneOnOne
	case count <= 5:
		return TypeSmallTeam
	case count <= 10:
		return TypeLargeTeam
	default:
		return TypeAllHands
	}
}

// Category is the purpose taxonomy derived from subject and body text.
type Category string

const (
	CategoryStatusUpdate Category = "status_update"
	CategoryPlanning     Category = "planning"
	CategoryReview       Category = "review"
	CategoryBrainstorm   Category = "brainstorm"
	CategoryDecision     Category = "decision"
	CategoryTraining     Category = "training"
	CategorySocial       Category = "social"
	CategoryClient       Category = "client_meeting"
	CategoryInterview    Category = "interview"
	CategoryPerformance  Category = "performance"
	CategoryProject      Category = "project"
	CategoryOperational  Category = "operational"
	CategoryStrategic    Category = "strategic"
	CategoryOther        Category = "other"
)

// categoryRule pairs a category with its keyword pattern. Rules run in
// declaration order and the first match wins, so more specific categories
// must stay ahead of generic ones.
type categoryRule struct {
	category Category
	pattern  *regexp.Regexp
}

var categoryRules = []categoryRule{
	{CategoryStatusUpdate, regexp.MustCompile(`(status|standup|stand-up|sync|check-in|check in|weekly|daily)`)},
	{CategoryPlanning, regexp.MustCompile(`(planning|plan|roadmap|sprint|backlog|quarterly)`)},
	{CategoryReview, regexp.MustCompile(`(review|retrospective|retro|post-mortem|postmortem|feedback)`)},
	{CategoryBrainstorm, regexp.MustCompile(`(brainstorm|ideation|workshop|design thinking|whiteboard)`)},
	{CategoryDecision, regexp.MustCompile(`(decision|approve|approval|sign-off|signoff|go/no-go)`)},
	{CategoryTraining, regexp.MustCompile(`(training|onboarding|learning|tutorial|demo|demonstration)`)},
	{CategorySocial, regexp.MustCompile(`(happy hour|team building|celebration|birthday|farewell|lunch|coffee)`)},
	{CategoryClient, regexp.MustCompile(`(client|customer|sales call|pitch|proposal|demo)`)},
	{CategoryInterview, regexp.MustCompile(`(interview|hiring|candidate|recruitment)`)},
	{CategoryPerformance, regexp.MustCompile(`(performance|1:1|one-on-one|career|growth|development)`)},
	{CategoryProject, regexp.MustCompile(`(project|kickoff|kick-off|milestone|deliverable)`)},
	{CategoryOperational, regexp.MustCompile(`(ops|operational|incident|outage|on-call|support)`)},
	{CategoryStrategic, regexp.MustCompile(`(strategy|strategic|vision|leadership|exec|board)`)},
}

// CategoryOf classifies the event's purpose from its subject and body.
// Empty text matches nothing and yields CategoryOther.
func CategoryOf(e *model.Event) Category {
	text := strings.ToLower(e.Subject + " " + e.Body)
	for _, rule := range categoryRules {
		if rule.pattern.MatchString(text) {
			return rule.category
		}
	}
	return CategoryOther
}

// Topic identifies a content cluster. Unlike Category, topic matching is
// multi-label: one event can hit several topics at once.
type Topic string

const (
	TopicProductPlanning  Topic = "product_planning"
	TopicEngineering      Topic = "engineering"
	TopicSprintAgile      Topic = "sprint_agile"
	TopicHiringTalent     Topic = "hiring_talent"
	TopicCustomerClient   Topic = "customer_client"
	TopicProjectDelivery  Topic = "project_delivery"
	TopicPeopleHR         Topic = "people_hr"
	TopicStrategy         Topic = "strategy"
	TopicOperations       Topic = "operations"
	TopicTrainingLearning Topic = "training_learning"
	TopicSocial           Topic = "social"
)

// TopicPattern describes one topic cluster's keywords and match pattern.
type TopicPattern struct {
	Topic    Topic
	Keywords []string
	Pattern  *regexp.Regexp
}

// TopicPatterns is the fixed, ordered set of topic clusters.
var TopicPatterns = []TopicPattern{
	{TopicProductPlanning,
		[]string{"roadmap", "product", "feature", "planning", "prd", "spec", "requirements"},
		regexp.MustCompile(`(roadmap|product|feature|planning|prd|spec|requirement)`)},
	{TopicEngineering,
		[]string{"technical", "architecture", "code", "review", "design", "api", "system"},
		regexp.MustCompile(`(technical|architecture|code|review|design|api|system|engineering)`)},
	{TopicSprintAgile,
		[]string{"sprint", "standup", "retrospective", "backlog", "scrum", "agile", "kanban"},
		regexp.MustCompile(`(sprint|standup|stand-up|retro|backlog|scrum|agile|kanban)`)},
	{TopicHiringTalent,
		[]string{"interview", "hiring", "candidate", "recruiting", "debrief", "offer"},
		regexp.MustCompile(`(interview|hiring|candidate|recruiting|debrief|offer)`)},
	{TopicCustomerClient,
		[]string{"customer", "client", "sales", "demo", "pitch", "proposal", "account"},
		regexp.MustCompile(`(customer|client|sales|demo|pitch|proposal|account)`)},
	{TopicProjectDelivery,
		[]string{"project", "delivery", "milestone", "launch", "release", "deploy"},
		regexp.MustCompile(`(project|delivery|milestone|launch|release|deploy|ship)`)},
	{TopicPeopleHR,
		[]string{"performance", "career", "growth", "feedback", "development", "review"},
		regexp.MustCompile(`(performance|career|growth|feedback|development|1:1|one-on-one)`)},
	{TopicStrategy,
		[]string{"strategy", "vision", "goals", "okr", "kpi", "quarterly", "annual"},
		regexp.MustCompile(`(strategy|vision|goals|okr|kpi|quarterly|annual|objectives)`)},
	{TopicOperations,
		[]string{"ops", "operations", "incident", "support", "on-call", "escalation"},
		regexp.MustCompile(`(ops|operations|incident|support|on-call|escalation|outage)`)},
	{TopicTrainingLearning,
		[]string{"training", "workshop", "learning", "onboarding", "tutorial", "bootcamp"},
		regexp.MustCompile(`(training|workshop|learning|onboarding|tutorial|bootcamp)`)},
	{TopicSocial,
		[]string{"happy hour", "team building", "lunch", "coffee", "celebration", "birthday"},
		regexp.MustCompile(`(happy.?hour|team.?building|lunch|coffee|celebration|birthday|social)`)},
}

// Topics returns every topic cluster the event matches, in pattern order.
func Topics(e *model.Event) []Topic {
	text := strings.ToLower(e.Subject + " " + e.Body)
	var matched []Topic
	for _, tp := range TopicPatterns {
		if tp.Pattern.MatchString(text) {
			matched = append(matched, tp.Topic)
		}
	}
	return matched
}
