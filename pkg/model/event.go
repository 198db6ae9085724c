// Package model defines the normalized calendar-event and organization
// directory types consumed by the analytics packages. Events are built once
// by the ingest layer and treated as immutable afterwards, except for a
// single attendee-enrichment pass that backfills external flags.
package model

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ResponseStatus is an attendee's reply to a meeting invitation.
type ResponseStatus string

const (
	ResponseAccepted  ResponseStatus = "accepted"
	ResponseDeclined  ResponseStatus = "declined"
	ResponseTentative ResponseStatus = "tentative"
	ResponseNone      ResponseStatus = "none"
	ResponseOrganizer ResponseStatus = "organizer"
)

// Attendee is one invited participant on an event.
type Attendee struct {
	Email       string         `json:"email"`
	Name        string         `json:"name,omitempty"`
	Response    ResponseStatus `json:"response"`
	IsRequired  bool           `json:"is_required"`
	IsOrganizer bool           `json:"is_organizer,omitempty"`
	IsExternal  bool           `json:"is_external"`
}

var titleCaser = cases.Title(language.English)

// NewAttendee builds an attendee, deriving a display name from the email
// local part when none is supplied.
func NewAttendee(email, name string, response ResponseStatus) Attendee {
	if name == "" {
		local, _, _ := strings.Cut(email, "@")
		name = titleCaser.String(strings.ReplaceAll(local, ".", " "))
	}
	if response == "" {
		response = ResponseNone
	}
	return Attendee{Email: email, Name: name, Response: response, IsRequired: true}
}

// Event is a single calendar event normalized from an Outlook 365 export.
type Event struct {
	ID                string     `json:"event_id"`
	Subject           string     `json:"subject"`
	OrganizerEmail    string     `json:"organizer_email"`
	Start             time.Time  `json:"start_time"`
	End               time.Time  `json:"end_time"`
	Attendees         []Attendee `json:"attendees,omitempty"`
	Location          string     `json:"location,omitempty"`
	Body              string     `json:"body,omitempty"`
	IsRecurring       bool       `json:"is_recurring"`
	RecurrencePattern string     `json:"recurrence_pattern,omitempty"`
	IsCancelled       bool       `json:"is_cancelled"`
	IsAllDay          bool       `json:"is_all_day"`
	Sensitivity       string     `json:"sensitivity,omitempty"` // normal, personal, private, confidential
	ShowAs            string     `json:"show_as,omitempty"`     // free, tentative, busy, oof, workingElsewhere
	Categories        []string   `json:"categories,omitempty"`
	Importance        string     `json:"importance,omitempty"` // low, normal, high
	SeriesMasterID    string     `json:"series_master_id,omitempty"`
	OnlineMeetingURL  string     `json:"online_meeting_url,omitempty"`
}

// DurationMinutes is the elapsed meeting time in whole minutes.
func (e *Event) DurationMinutes() int {
	return int(e.End.Sub(e.Start).Seconds() / 60)
}

// DurationHours is the elapsed meeting time in fractional hours.
func (e *Event) DurationHours() float64 {
	return float64(e.DurationMinutes()) / 60
}

// AttendeeCount counts participants including the organizer.
func (e *Event) AttendeeCount() int {
	return len(e.Attendees) + 1
}

// ExternalAttendeeCount counts attendees outside the company domain.
func (e *Event) ExternalAttendeeCount() int {
	n := 0
	for _, a := range e.Attendees {
		if a.IsExternal {
			n++
		}
	}
	return n
}

// InternalAttendeeCount counts internal participants including the organizer.
func (e *Event) InternalAttendeeCount() int {
	return e.AttendeeCount() - e.ExternalAttendeeCount()
}

// HasExternalAttendees reports whether any attendee is external.
func (e *Event) HasExternalAttendees() bool {
	return e.ExternalAttendeeCount() > 0
}

// IsOneOnOne reports whether the event has exactly two participants.
func (e *Event) IsOneOnOne() bool {
	return e.AttendeeCount() == 2
}

// DayOfWeek is the weekday name of the event start.
func (e *Event) DayOfWeek() string {
	return e.Start.Weekday().String()
}

// HourOfDay is the local hour in which the event starts.
func (e *Event) HourOfDay() int {
	return e.Start.Hour()
}

// IsEarlyMorning reports a start before 09:00.
func (e *Event) IsEarlyMorning() bool {
	return e.HourOfDay() < 9
}

// IsLateEvening reports a start at or after 18:00.
func (e *Event) IsLateEvening() bool {
	return e.HourOfDay() >= 18
}

// IsLunchTime reports a start during the 12:00 hour.
func (e *Event) IsLunchTime() bool {
	return e.HourOfDay() == 12
}

// AttendeeEmails returns every participant email, organizer included, with
// the organizer deduplicated if it also appears in the attendee list.
func (e *Event) AttendeeEmails() []string {
	emails := make([]string, 0, len(e.Attendees)+1)
	seenOrganizer := false
	for _, a := range e.Attendees {
		emails = append(emails, a.Email)
		if strings.EqualFold(a.Email, e.OrganizerEmail) {
			seenOrganizer = true
		}
	}
	if !seenOrganizer {
		emails = append(emails, e.OrganizerEmail)
	}
	return emails
}

// HasAttendee reports whether email participates in the event.
func (e *Event) HasAttendee(email string) bool {
	for _, p := range e.AttendeeEmails() {
		if strings.EqualFold(p, email) {
			return true
		}
	}
	return false
}

// IsOrganizer reports whether email organized the event.
func (e *Event) IsOrganizer(email string) bool {
	return strings.EqualFold(e.OrganizerEmail, email)
}

// ResponseRate is the fraction of non-organizer attendees who replied
// (accepted, declined, or tentative). Events with no attendees report 1.0.
func (e *Event) ResponseRate() float64 {
	if len(e.Attendees) == 0 {
		return 1.0
	}
	responded := 0
	for _, a := range e.Attendees {
		switch a.Response {
		case ResponseAccepted, ResponseDeclined, ResponseTentative:
			responded++
		}
	}
	return float64(responded) / float64(len(e.Attendees))
}

// AcceptanceRate is the fraction of non-organizer attendees who accepted.
// Events with no attendees report 1.0.
func (e *Event) AcceptanceRate() float64 {
	if len(e.Attendees) == 0 {
		return 1.0
	}
	accepted := 0
	for _, a := range e.Attendees {
		if a.Response == ResponseAccepted {
			accepted++
		}
	}
	return float64(accepted) / float64(len(e.Attendees))
}
