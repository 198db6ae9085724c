package calendar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"
)

// Microsoft Graph API event shapes. Only the fields the analytics layer
// consumes are mapped.

type graphDateTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type graphEmailAddress struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

type graphRecipient struct {
	EmailAddress graphEmailAddress `json:"emailAddress"`
}

type graphAttendee struct {
	EmailAddress graphEmailAddress `json:"emailAddress"`
	Status       struct {
		Response string `json:"response"`
	} `json:"status"`
	Type string `json:"type"`
}

type graphLocation struct {
	DisplayName string `json:"displayName"`
}

type graphItemBody struct {
	Content string `json:"content"`
}

type graphOnlineMeeting struct {
	JoinURL string `json:"joinUrl"`
}

type graphEvent struct {
	ID             string              `json:"id"`
	ICalUID        string              `json:"iCalUId,omitempty"`
	Subject        string              `json:"subject"`
	Start          graphDateTime       `json:"start"`
	End            graphDateTime       `json:"end"`
	Attendees      []graphAttendee     `json:"attendees"`
	Organizer      *graphRecipient     `json:"organizer"`
	Location       graphLocation       `json:"location"`
	Body           graphItemBody       `json:"body"`
	Recurrence     json.RawMessage     `json:"recurrence,omitempty"`
	IsCancelled    bool                `json:"isCancelled"`
	IsAllDay       bool                `json:"isAllDay"`
	Sensitivity    string              `json:"sensitivity"`
	ShowAs         string              `json:"showAs"`
	Categories     []string            `json:"categories,omitempty"`
	Importance     string              `json:"importance"`
	SeriesMasterID string              `json:"seriesMasterId,omitempty"`
	OnlineMeeting  *graphOnlineMeeting `json:"onlineMeeting,omitempty"`
}

// responseMap translates Graph response values to the normalized set.
var responseMap = map[string]model.ResponseStatus{
	"accepted":            model.ResponseAccepted,
	"declined":            model.ResponseDeclined,
	"tentative":           model.ResponseTentative,
	"tentativelyaccepted": model.ResponseTentative,
	"none":                model.ResponseNone,
	"notresponded":        model.ResponseNone,
	"organizer":           model.ResponseOrganizer,
}

// LoadJSON loads a Microsoft Graph JSON export. The payload may be a bare
// array of events, a {"value": [...]} envelope, or a single event object.
func (l *Loader) LoadJSON(data []byte, ownerEmail string) (*LoadResult, error) {
	var raw []graphEvent

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse event array: %w", err)
		}
	} else {
		var envelope struct {
			Value []graphEvent `json:"value"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("failed to parse payload: %w", err)
		}
		if envelope.Value != nil {
			raw = envelope.Value
		} else {
			var single graphEvent
			if err := json.Unmarshal(trimmed, &single); err != nil {
				return nil, fmt.Errorf("failed to parse event: %w", err)
			}
			raw = []graphEvent{single}
		}
	}

	result := &LoadResult{}
	for i, ge := range raw {
		event, err := l.parseGraphEvent(&ge, ownerEmail)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("event %d: %v", i, err))
			continue
		}
		result.Events = append(result.Events, event)
	}
	return result, nil
}

func (l *Loader) parseGraphEvent(ge *graphEvent, ownerEmail string) (*model.Event, error) {
	start, err := parseDateTime(ge.Start.DateTime)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := parseDateTime(ge.End.DateTime)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	organizer := ownerEmail
	if ge.Organizer != nil && ge.Organizer.EmailAddress.Address != "" {
		organizer = ge.Organizer.EmailAddress.Address
	}

	attendees := make([]model.Attendee, 0, len(ge.Attendees))
	for _, ga := range ge.Attendees {
		response, ok := responseMap[strings.ToLower(ga.Status.Response)]
		if !ok {
			response = model.ResponseNone
		}
		a := model.NewAttendee(ga.EmailAddress.Address, ga.EmailAddress.Name, response)
		a.IsRequired = strings.EqualFold(ga.Type, "required")
		a.IsExternal = l.isExternalEmail(ga.EmailAddress.Address)
		attendees = append(attendees, a)
	}
	attendees = dropOrganizer(attendees, organizer)

	id := ge.ID
	if id == "" {
		id = ge.ICalUID
	}
	if id == "" {
		id = "evt_" + uuid.NewString()
	}

	recurring := len(ge.Recurrence) > 0 && !bytes.Equal(bytes.TrimSpace(ge.Recurrence), []byte("null"))
	pattern := ""
	if recurring {
		// A plain JSON string keeps its value; structured recurrence
		// objects are kept verbatim.
		if err := json.Unmarshal(ge.Recurrence, &pattern); err != nil {
			pattern = string(ge.Recurrence)
		}
	}

	sensitivity := strings.ToLower(ge.Sensitivity)
	if sensitivity == "" {
		sensitivity = "normal"
	}
	showAs := strings.ToLower(ge.ShowAs)
	if showAs == "" {
		showAs = "busy"
	}
	importance := strings.ToLower(ge.Importance)
	if importance == "" {
		importance = "normal"
	}

	event := &model.Event{
		ID:                id,
		Subject:           ge.Subject,
		OrganizerEmail:    organizer,
		Start:             start,
		End:               end,
		Attendees:         attendees,
		Location:          ge.Location.DisplayName,
		Body:              ge.Body.Content,
		IsRecurring:       recurring,
		RecurrencePattern: pattern,
		IsCancelled:       ge.IsCancelled,
		IsAllDay:          ge.IsAllDay,
		Sensitivity:       sensitivity,
		ShowAs:            showAs,
		Categories:        ge.Categories,
		Importance:        importance,
		SeriesMasterID:    ge.SeriesMasterID,
	}
	if ge.OnlineMeeting != nil {
		event.OnlineMeetingURL = ge.OnlineMeeting.JoinURL
	}
	return event, nil
}
