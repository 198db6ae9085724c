// Package textual mines meeting subjects and bodies: topic clustering,
// keyword frequency, category distribution, naming conventions, and
// sentiment indicators.
package textual

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/mdomarsaleem1/calendar-analytics/pkg/classify"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"
)

// stopWords are filtered out of keyword extraction.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "up": true, "about": true,
	"into": true, "through": true, "during": true, "before": true,
	"after": true, "above": true, "below": true, "between": true,
	"under": true, "again": true, "further": true, "then": true,
	"once": true, "here": true, "there": true, "when": true, "where": true,
	"why": true, "how": true, "all": true, "each": true, "few": true,
	"more": true, "most": true, "other": true, "some": true, "such": true,
	"no": true, "nor": true, "not": true, "only": true, "own": true,
	"same": true, "so": true, "than": true, "too": true, "very": true,
	"can": true, "will": true, "just": true, "should": true, "now": true,
	"re": true, "vs": true, "w": true, "meeting": true, "call": true,
	"sync": true, "chat": true, "discussion": true, "follow": true,
	"quick": true, "brief": true,
}

var punctuation = regexp.MustCompile(`[^\w\s]`)

// TopicCluster is one content cluster with the meetings that matched it.
type TopicCluster struct {
	Name           classify.Topic `json:"name"`
	Keywords       []string       `json:"keywords"`
	MeetingCount   int            `json:"meeting_count"`
	TotalHours     float64        `json:"total_hours"`
	SampleSubjects []string       `json:"sample_subjects"`
}

// TopicAnalysis summarizes how well meetings map onto the topic clusters.
type TopicAnalysis struct {
	TopicClusters       []TopicCluster `json:"topic_clusters"`
	ClassificationRate  float64        `json:"classification_rate"`
	TotalClassified     int            `json:"total_classified"`
	TotalUnclassified   int            `json:"total_unclassified"`
	UnclassifiedSamples []string       `json:"unclassified_samples"`
}

// AnalyzeTopics clusters events by topic. A meeting can land in several
// clusters; clusters with no meetings are omitted. Each cluster keeps up to
// five sample subjects.
func AnalyzeTopics(events []*model.Event) TopicAnalysis {
	type clusterState struct {
		count    int
		hours    float64
		subjects []string
	}
	clusters := make(map[classify.Topic]*clusterState, len(classify.TopicPatterns))
	for _, tp := range classify.TopicPatterns {
		clusters[tp.Topic] = &clusterState{}
	}

	classified := 0
	var unclassified []string

	for _, e := range events {
		topics := classify.Topics(e)
		for _, topic := range topics {
			cs := clusters[topic]
			cs.count++
			cs.hours += e.DurationHours()
			if len(cs.subjects) < 10 {
				cs.subjects = append(cs.subjects, e.Subject)
			}
		}
		if len(topics) > 0 {
			classified++
		} else {
			unclassified = append(unclassified, e.Subject)
		}
	}

	result := TopicAnalysis{
		TotalClassified:   classified,
		TotalUnclassified: len(unclassified),
	}
	if len(events) > 0 {
		result.ClassificationRate = round1(float64(classified) / float64(len(events)) * 100)
	}
	if len(unclassified) > 10 {
		unclassified = unclassified[:10]
	}
	result.UnclassifiedSamples = unclassified

	for _, tp := range classify.TopicPatterns {
		cs := clusters[tp.Topic]
		if cs.count == 0 {
			continue
		}
		samples := cs.subjects
		if len(samples) > 5 {
			samples = samples[:5]
		}
		result.TopicClusters = append(result.TopicClusters, TopicCluster{
			Name:           tp.Topic,
			Keywords:       tp.Keywords,
			MeetingCount:   cs.count,
			TotalHours:     round2(cs.hours),
			SampleSubjects: samples,
		})
	}
	sort.SliceStable(result.TopicClusters, func(i, j int) bool {
		return result.TopicClusters[i].MeetingCount > result.TopicClusters[j].MeetingCount
	})
	return result
}

// KeywordCount is one word and its occurrence count.
type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// KeywordAnalysis holds subject-line word frequencies, overall and per
// meeting category.
type KeywordAnalysis struct {
	TopKeywords      []KeywordCount                       `json:"top_keywords"`
	TotalUniqueWords int                                  `json:"total_unique_words"`
	ByCategory       map[classify.Category][]KeywordCount `json:"by_category"`
}

// ExtractKeywords counts subject-line words longer than two characters,
// excluding stop words, and returns the topN overall plus the top ten per
// category.
func ExtractKeywords(events []*model.Event, topN int) KeywordAnalysis {
	counts := make(map[string]int)
	byCategory := make(map[classify.Category]map[string]int)

	for _, e := range events {
		words := tokenize(e.Subject)
		for _, w := range words {
			counts[w]++
		}

		category := classify.CategoryOf(e)
		cat, ok := byCategory[category]
		if !ok {
			cat = make(map[string]int)
			byCategory[category] = cat
		}
		for _, w := range words {
			cat[w]++
		}
	}

	result := KeywordAnalysis{
		TopKeywords:      topCounts(counts, topN),
		TotalUniqueWords: len(counts),
		ByCategory:       make(map[classify.Category][]KeywordCount, len(byCategory)),
	}
	for category, cat := range byCategory {
		result.ByCategory[category] = topCounts(cat, 10)
	}
	return result
}

func tokenize(subject string) []string {
	text := punctuation.ReplaceAllString(strings.ToLower(subject), " ")
	var words []string
	for _, w := range strings.Fields(text) {
		if len(w) > 2 && !stopWords[w] {
			words = append(words, w)
		}
	}
	return words
}

// topCounts ranks words by count descending, alphabetical within a count.
func topCounts(counts map[string]int, n int) []KeywordCount {
	ranked := make([]KeywordCount, 0, len(counts))
	for w, c := range counts {
		ranked = append(ranked, KeywordCount{Word: w, Count: c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Word < ranked[j].Word
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// CategoryBreakdown is the footprint of one meeting category.
type CategoryBreakdown struct {
	Category             classify.Category `json:"category"`
	Count                int               `json:"count"`
	Hours                float64           `json:"hours"`
	PercentageOfMeetings float64           `json:"percentage_of_meetings"`
	PercentageOfTime     float64           `json:"percentage_of_time"`
	SampleSubjects       []string          `json:"sample_subjects"`
}

// CategoryAnalysis is the category distribution across all events.
type CategoryAnalysis struct {
	Categories         []CategoryBreakdown `json:"categories"`
	TotalMeetings      int                 `json:"total_meetings"`
	TotalHours         float64             `json:"total_hours"`
	MostCommonCategory classify.Category   `json:"most_common_category,omitempty"`
}

// AnalyzeCategories classifies every event and reports per-category counts,
// hours, and shares, most common category first.
func AnalyzeCategories(events []*model.Event) CategoryAnalysis {
	type catState struct {
		count    int
		hours    float64
		subjects []string
	}
	stats := make(map[classify.Category]*catState)
	var totalHours float64

	for _, e := range events {
		category := classify.CategoryOf(e)
		cs, ok := stats[category]
		if !ok {
			cs = &catState{}
			stats[category] = cs
		}
		cs.count++
		cs.hours += e.DurationHours()
		if len(cs.subjects) < 5 {
			cs.subjects = append(cs.subjects, e.Subject)
		}
		totalHours += e.DurationHours()
	}

	result := CategoryAnalysis{
		TotalMeetings: len(events),
		TotalHours:    round2(totalHours),
	}
	for category, cs := range stats {
		b := CategoryBreakdown{
			Category:       category,
			Count:          cs.count,
			Hours:          round2(cs.hours),
			SampleSubjects: cs.subjects,
		}
		if len(events) > 0 {
			b.PercentageOfMeetings = round1(float64(cs.count) / float64(len(events)) * 100)
		}
		if totalHours > 0 {
			b.PercentageOfTime = round1(cs.hours / totalHours * 100)
		}
		result.Categories = append(result.Categories, b)
	}
	sort.Slice(result.Categories, func(i, j int) bool {
		if result.Categories[i].Count != result.Categories[j].Count {
			return result.Categories[i].Count > result.Categories[j].Count
		}
		return result.Categories[i].Category < result.Categories[j].Category
	})
	if len(result.Categories) > 0 {
		result.MostCommonCategory = result.Categories[0].Category
	}
	return result
}

// Naming pattern detectors.
var (
	datePattern       = regexp.MustCompile(`\d{1,2}/\d{1,2}|\d{4}|jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec`)
	namesPattern      = regexp.MustCompile(`with\s+\w+|/\s*\w+|<>|&`)
	abbrevPattern     = regexp.MustCompile(`\b[A-Z]{2,}\b`)
	vaguePattern      = regexp.MustCompile(`^(meeting|call|sync|chat|catch up|check in|touchbase|touch base)$`)
	projectCode       = regexp.MustCompile(`\b[A-Z]+-\d+\b|\b[A-Z]{2,4}-\w+\b`)
	recurrencePattern = regexp.MustCompile(`weekly|daily|monthly|bi-weekly|biweekly|recurring`)
)

var actionWords = []string{
	"review", "discuss", "plan", "decide", "present",
	"analyze", "define", "create", "design",
}

// NamingCounts tallies how many subjects exhibit each naming pattern.
type NamingCounts struct {
	HasDate                int `json:"has_date"`
	HasAttendeeNames       int `json:"has_attendee_names"`
	UsesAbbreviations      int `json:"uses_abbreviations"`
	IsVague                int `json:"is_vague"`
	IsDescriptive          int `json:"is_descriptive"`
	HasProjectCode         int `json:"has_project_code"`
	HasRecurrenceIndicator int `json:"has_recurrence_indicator"`
}

// NamingAnalysis scores meeting naming conventions.
type NamingAnalysis struct {
	PatternCounts       NamingCounts       `json:"pattern_counts"`
	PatternPercentages  map[string]float64 `json:"pattern_percentages"`
	NamingQualityScore  float64            `json:"naming_quality_score"`
	VagueMeetingCount   int                `json:"vague_meeting_count"`
	VagueMeetingSamples []string           `json:"vague_meeting_samples"`
	WellNamedSamples    []string           `json:"well_named_samples"`
	Recommendations     []string           `json:"recommendations"`
}

// AnalyzeNaming inspects subjects for naming conventions and computes a
// 0-100 quality score: descriptive names and project codes push it up,
// vague or date-only names pull it down.
func AnalyzeNaming(events []*model.Event) NamingAnalysis {
	var counts NamingCounts
	var vague, wellNamed []string

	for _, e := range events {
		subject := strings.ToLower(e.Subject)

		if datePattern.MatchString(subject) {
			counts.HasDate++
		}
		if namesPattern.MatchString(subject) {
			counts.HasAttendeeNames++
		}
		if abbrevPattern.MatchString(e.Subject) {
			counts.UsesAbbreviations++
		}
		if vaguePattern.MatchString(strings.TrimSpace(subject)) {
			counts.IsVague++
			vague = append(vague, e.Subject)
		}
		for _, word := range actionWords {
			if strings.Contains(subject, word) {
				counts.IsDescriptive++
				if len(wellNamed) < 10 {
					wellNamed = append(wellNamed, e.Subject)
				}
				break
			}
		}
		if projectCode.MatchString(e.Subject) {
			counts.HasProjectCode++
		}
		if recurrencePattern.MatchString(subject) {
			counts.HasRecurrenceIndicator++
		}
	}

	total := len(events)
	var score float64
	if total > 0 {
		n := float64(total)
		score += float64(counts.IsDescriptive) / n * 40
		score -= float64(counts.IsVague) / n * 30
		score += float64(counts.HasProjectCode) / n * 20
		score -= float64(counts.HasDate) / n * 10
		score = math.Max(0, math.Min(100, score+50))
	}

	if len(vague) > 10 {
		vague = vague[:10]
	}

	return NamingAnalysis{
		PatternCounts:       counts,
		PatternPercentages:  namingPercentages(counts, total),
		NamingQualityScore:  round1(score),
		VagueMeetingCount:   counts.IsVague,
		VagueMeetingSamples: vague,
		WellNamedSamples:    wellNamed,
		Recommendations:     namingRecommendations(counts, total),
	}
}

func namingPercentages(counts NamingCounts, total int) map[string]float64 {
	pct := func(v int) float64 {
		if total == 0 {
			return 0
		}
		return round1(float64(v) / float64(total) * 100)
	}
	return map[string]float64{
		"has_date":                 pct(counts.HasDate),
		"has_attendee_names":       pct(counts.HasAttendeeNames),
		"uses_abbreviations":       pct(counts.UsesAbbreviations),
		"is_vague":                 pct(counts.IsVague),
		"is_descriptive":           pct(counts.IsDescriptive),
		"has_project_code":         pct(counts.HasProjectCode),
		"has_recurrence_indicator": pct(counts.HasRecurrenceIndicator),
	}
}

func namingRecommendations(counts NamingCounts, total int) []string {
	var recs []string
	if total == 0 {
		return recs
	}
	n := float64(total)

	if vaguePct := float64(counts.IsVague) / n * 100; vaguePct > 20 {
		recs = append(recs, fmt.Sprintf(
			"%.0f%% of meetings have vague names. Use descriptive names that indicate "+
				"the purpose (e.g., 'Review Q4 Marketing Plan' instead of 'Meeting').", vaguePct))
	}
	if float64(counts.IsDescriptive)/n < 0.3 {
		recs = append(recs,
			"Include action verbs in meeting names to clarify purpose "+
				"(e.g., 'Decide on vendor selection' or 'Review design mockups').")
	}
	if float64(counts.HasProjectCode)/n < 0.1 {
		recs = append(recs,
			"Consider using project codes or tags to help with filtering and reporting "+
				"(e.g., '[PROJ-123] Sprint Planning').")
	}
	return recs
}

// Sentiment indicator patterns, checked in priority order.
var (
	urgentPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\burgent\b`), regexp.MustCompile(`\basap\b`),
		regexp.MustCompile(`\bemergency\b`), regexp.MustCompile(`\bcritical\b`),
		regexp.MustCompile(`\bimmediate\b`), regexp.MustCompile(`\bescalation\b`),
		regexp.MustCompile(`\bsev\s*[1-2]\b`),
	}
	positivePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bcelebrat`), regexp.MustCompile(`\bcongrat`),
		regexp.MustCompile(`\bsuccess\b`), regexp.MustCompile(`\bwin\b`),
		regexp.MustCompile(`\bachiev`), regexp.MustCompile(`\blaunch\b`),
		regexp.MustCompile(`\bship`), regexp.MustCompile(`\bwelcome\b`),
	}
	negativePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bissue\b`), regexp.MustCompile(`\bproblem\b`),
		regexp.MustCompile(`\bfailed\b`), regexp.MustCompile(`\bblocked\b`),
		regexp.MustCompile(`\bincident\b`), regexp.MustCompile(`\boutage\b`),
		regexp.MustCompile(`\bescalat`), regexp.MustCompile(`\bbug\b`),
	}
)

// SentimentMeeting is one flagged meeting.
type SentimentMeeting struct {
	Subject string `json:"subject"`
	Date    string `json:"date"`
}

// SentimentSummary counts meetings per sentiment bucket.
type SentimentSummary struct {
	UrgentCount              int `json:"urgent_count"`
	PositiveCount            int `json:"positive_count"`
	PotentiallyNegativeCount int `json:"potentially_negative_count"`
	NeutralCount             int `json:"neutral_count"`
}

// SentimentAnalysis flags urgent, positive, and potentially negative meeting
// subjects.
type SentimentAnalysis struct {
	Summary                     SentimentSummary   `json:"summary"`
	UrgentMeetings              []SentimentMeeting `json:"urgent_meetings"`
	PositiveMeetings            []SentimentMeeting `json:"positive_meetings"`
	PotentiallyNegativeMeetings []SentimentMeeting `json:"potentially_negative_meetings"`
}

// DetectSentiment buckets events by subject-line sentiment. Urgent wins over
// positive, which wins over negative; anything unmatched is neutral. Each
// bucket keeps at most ten samples.
func DetectSentiment(events []*model.Event) SentimentAnalysis {
	var result SentimentAnalysis

	matchAny := func(patterns []*regexp.Regexp, text string) bool {
		for _, p := range patterns {
			if p.MatchString(text) {
				return true
			}
		}
		return false
	}

	for _, e := range events {
		subject := strings.ToLower(e.Subject)
		sample := SentimentMeeting{Subject: e.Subject, Date: e.Start.Format(time.RFC3339)}

		switch {
		case matchAny(urgentPatterns, subject):
			result.Summary.UrgentCount++
			if len(result.UrgentMeetings) < 10 {
				result.UrgentMeetings = append(result.UrgentMeetings, sample)
			}
		case matchAny(positivePatterns, subject):
			result.Summary.PositiveCount++
			if len(result.PositiveMeetings) < 10 {
				result.PositiveMeetings = append(result.PositiveMeetings, sample)
			}
		case matchAny(negativePatterns, subject):
			result.Summary.PotentiallyNegativeCount++
			if len(result.PotentiallyNegativeMeetings) < 10 {
				result.PotentiallyNegativeMeetings = append(result.PotentiallyNegativeMeetings, sample)
			}
		default:
			result.Summary.NeutralCount++
		}
	}
	return result
}

// ComprehensiveAnalysis bundles all text analyses.
type ComprehensiveAnalysis struct {
	TopicAnalysis     TopicAnalysis     `json:"topic_analysis"`
	KeywordAnalysis   KeywordAnalysis   `json:"keyword_analysis"`
	CategoryAnalysis  CategoryAnalysis  `json:"category_analysis"`
	NamingPatterns    NamingAnalysis    `json:"naming_patterns"`
	SentimentAnalysis SentimentAnalysis `json:"sentiment_analysis"`
}

// Comprehensive runs every text analysis over the same event set.
func Comprehensive(events []*model.Event) ComprehensiveAnalysis {
	return ComprehensiveAnalysis{
		TopicAnalysis:     AnalyzeTopics(events),
		KeywordAnalysis:   ExtractKeywords(events, 50),
		CategoryAnalysis:  AnalyzeCategories(events),
		NamingPatterns:    AnalyzeNaming(events),
		SentimentAnalysis: DetectSentiment(events),
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
