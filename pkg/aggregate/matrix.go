package aggregate

import (
	"github.com/mdomarsaleem1/calendar-analytics/pkg/classify"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"
)

// SizeDurationMatrix is the 3x3 grid of meeting counts and hours keyed by
// size category (rows) and duration category (columns). Every event lands
// in exactly one cell, so the cell counts sum to the input event count.
type SizeDurationMatrix struct {
	SmallShort   int `json:"small_short"`
	SmallMedium  int `json:"small_medium"`
	SmallLong    int `json:"small_long"`
	MediumShort  int `json:"medium_short"`
	MediumMedium int `json:"medium_medium"`
	MediumLong   int `json:"medium_long"`
	LargeShort   int `json:"large_short"`
	LargeMedium  int `json:"large_medium"`
	LargeLong    int `json:"large_long"`

	SmallShortHours   float64 `json:"small_short_hours"`
	SmallMediumHours  float64 `json:"small_medium_hours"`
	SmallLongHours    float64 `json:"small_long_hours"`
	MediumShortHours  float64 `json:"medium_short_hours"`
	MediumMediumHours float64 `json:"medium_medium_hours"`
	MediumLongHours   float64 `json:"medium_long_hours"`
	LargeShortHours   float64 `json:"large_short_hours"`
	LargeMediumHours  float64 `json:"large_medium_hours"`
	LargeLongHours    float64 `json:"large_long_hours"`
}

// TotalMeetings sums all nine cell counts.
func (m *SizeDurationMatrix) TotalMeetings() int {
	return m.SmallShort + m.SmallMedium + m.SmallLong +
		m.MediumShort + m.MediumMedium + m.MediumLong +
		m.LargeShort + m.LargeMedium + m.LargeLong
}

// TotalHours sums all nine cell hour totals.
func (m *SizeDurationMatrix) TotalHours() float64 {
	return m.SmallShortHours + m.SmallMediumHours + m.SmallLongHours +
		m.MediumShortHours + m.MediumMediumHours + m.MediumLongHours +
		m.LargeShortHours + m.LargeMediumHours + m.LargeLongHours
}

// Cell returns the count and hours for one size/duration pair.
func (m *SizeDurationMatrix) Cell(size classify.SizeCategory, dur classify.DurationCategory) (int, float64) {
	switch size {
	case classify.SizeSmall:
		switch dur {
		case classify.DurationShort:
			return m.SmallShort, m.SmallShortHours
		case classify.DurationMedium:
			return m.SmallMedium, m.SmallMediumHours
		default:
			return m.SmallLong, m.SmallLongHours
		}
	case classify.SizeMedium:
		switch dur {
		case classify.DurationShort:
			return m.MediumShort, m.MediumShortHours
		case classify.DurationMedium:
			return m.MediumMedium, m.MediumMediumHours
		default:
			return m.MediumLong, m.MediumLongHours
		}
	default:
		switch dur {
		case classify.DurationShort:
			return m.LargeShort, m.LargeShortHours
		case classify.DurationMedium:
			return m.LargeMedium, m.LargeMediumHours
		default:
			return m.LargeLong, m.LargeLongHours
		}
	}
}

func (m *SizeDurationMatrix) add(size classify.SizeCategory, dur classify.DurationCategory, hours float64) {
	switch size {
	case classify.SizeSmall:
		switch dur {
		case classify.DurationShort:
			m.SmallShort++
			m.SmallShortHours += hours
		case classify.DurationMedium:
			m.SmallMedium++
			m.SmallMediumHours += hours
		default:
			m.SmallLong++
			m.SmallLongHours += hours
		}
	case classify.SizeMedium:
		switch dur {
		case classify.DurationShort:
			m.MediumShort++
			m.MediumShortHours += hours
		case classify.DurationMedium:
			m.MediumMedium++
			m.MediumMediumHours += hours
		default:
			m.MediumLong++
			m.MediumLongHours += hours
		}
	default:
		switch dur {
		case classify.DurationShort:
			m.LargeShort++
			m.LargeShortHours += hours
		case classify.DurationMedium:
			m.LargeMedium++
			m.LargeMediumHours += hours
		default:
			m.LargeLong++
			m.LargeLongHours += hours
		}
	}
}

// TimeDistribution returns the percentage of total hours in each cell,
// rounded to one decimal. Empty input yields an empty map.
func (m *SizeDurationMatrix) TimeDistribution() map[string]float64 {
	total := m.TotalHours()
	if total == 0 {
		return map[string]float64{}
	}
	return map[string]float64{
		"small_short_pct":   round1(m.SmallShortHours / total * 100),
		"small_medium_pct":  round1(m.SmallMediumHours / total * 100),
		"small_long_pct":    round1(m.SmallLongHours / total * 100),
		"medium_short_pct":  round1(m.MediumShortHours / total * 100),
		"medium_medium_pct": round1(m.MediumMediumHours / total * 100),
		"medium_long_pct":   round1(m.MediumLongHours / total * 100),
		"large_short_pct":   round1(m.LargeShortHours / total * 100),
		"large_medium_pct":  round1(m.LargeMediumHours / total * 100),
		"large_long_pct":    round1(m.LargeLongHours / total * 100),
	}
}

// SizeDurationAnalysis builds the size/duration matrix from a batch of events.
func SizeDurationAnalysis(events []*model.Event) *SizeDurationMatrix {
	matrix := &SizeDurationMatrix{}
	for _, e := range events {
		matrix.add(classify.Size(e), classify.Duration(e), e.DurationHours())
	}
	return matrix
}
