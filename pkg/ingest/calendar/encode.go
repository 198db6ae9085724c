package calendar

import (
	"encoding/json"
	"fmt"

	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"
)

const graphDateTimeLayout = "2006-01-02T15:04:05"

// MarshalGraph renders events in the Microsoft Graph export shape, the same
// shape LoadJSON reads. Used by the sample data generator so generated
// calendars load through the normal ingest path.
func MarshalGraph(events []*model.Event) ([]byte, error) {
	out := make([]graphEvent, 0, len(events))
	for _, e := range events {
		ge := graphEvent{
			ID:      e.ID,
			Subject: e.Subject,
			Start: graphDateTime{
				DateTime: e.Start.UTC().Format(graphDateTimeLayout),
				TimeZone: "UTC",
			},
			End: graphDateTime{
				DateTime: e.End.UTC().Format(graphDateTimeLayout),
				TimeZone: "UTC",
			},
			Organizer: &graphRecipient{
				EmailAddress: graphEmailAddress{Address: e.OrganizerEmail},
			},
			Location:       graphLocation{DisplayName: e.Location},
			Body:           graphItemBody{Content: e.Body},
			IsCancelled:    e.IsCancelled,
			IsAllDay:       e.IsAllDay,
			Sensitivity:    e.Sensitivity,
			ShowAs:         e.ShowAs,
			Categories:     e.Categories,
			Importance:     e.Importance,
			SeriesMasterID: e.SeriesMasterID,
		}
		for _, a := range e.Attendees {
			ga := graphAttendee{
				EmailAddress: graphEmailAddress{Address: a.Email, Name: a.Name},
				Type:         "optional",
			}
			ga.Status.Response = string(a.Response)
			if a.IsRequired {
				ga.Type = "required"
			}
			ge.Attendees = append(ge.Attendees, ga)
		}
		if e.IsRecurring {
			raw, err := json.Marshal(e.RecurrencePattern)
			if err != nil {
				return nil, fmt.Errorf("event %s: recurrence: %w", e.ID, err)
			}
			ge.Recurrence = raw
		}
		if e.OnlineMeetingURL != "" {
			ge.OnlineMeeting = &graphOnlineMeeting{JoinURL: e.OnlineMeetingURL}
		}
		out = append(out, ge)
	}
	return json.MarshalIndent(out, "", "  ")
}
