// Package calendar loads Outlook 365 calendar exports.
//
// Two source formats are supported: the CSV export produced by the Outlook
// desktop client and the JSON shape returned by the Microsoft Graph
// /me/events endpoint. Rows or events that cannot be interpreted are
// skipped and reported as warnings rather than failing the whole load.
package calendar

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"

	caerrors "github.com/mdomarsaleem1/calendar-analytics/pkg/errors"
)

// Loader reads calendar exports and normalizes them into events.
type Loader struct {
	companyDomain string
}

// NewLoader creates a loader. companyDomain is used to flag attendees
// outside the company; leave it empty to treat everyone as internal.
func NewLoader(companyDomain string) *Loader {
	return &Loader{companyDomain: strings.ToLower(strings.TrimSpace(companyDomain))}
}

// LoadResult is the outcome of a load: the parsed events plus warnings for
// any records that were skipped.
type LoadResult struct {
	Events   []*model.Event
	Warnings []string
}

// LoadFile loads a calendar export, dispatching on the file extension.
// ownerEmail is the calendar owner, used as the organizer fallback.
func (l *Loader) LoadFile(path, ownerEmail string) (*LoadResult, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return l.LoadCSVFile(path, ownerEmail)
	case ".json":
		return l.LoadJSONFile(path, ownerEmail)
	default:
		return nil, fmt.Errorf("%s: %w", path, caerrors.ErrUnsupportedFormat)
	}
}

// LoadCalendars loads one export per employee. paths maps the owner email
// to the export file. Results are keyed by the lowercased owner email.
func (l *Loader) LoadCalendars(paths map[string]string) (map[string][]*model.Event, error) {
	emails := make([]string, 0, len(paths))
	for email := range paths {
		emails = append(emails, email)
	}
	sort.Strings(emails)

	calendars := make(map[string][]*model.Event, len(paths))
	for _, email := range emails {
		result, err := l.LoadFile(paths[email], email)
		if err != nil {
			return nil, fmt.Errorf("calendar for %s: %w", email, err)
		}
		calendars[strings.ToLower(email)] = result.Events
	}
	return calendars, nil
}

// LoadJSONFile loads a Microsoft Graph JSON export from a file path.
func (l *Loader) LoadJSONFile(path, ownerEmail string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return l.LoadJSON(data, ownerEmail)
}

// datetimeFormats covers the timestamp shapes seen across Outlook CSV
// exports and Graph API payloads. Order matters: ISO first, then US, then
// day-first variants.
var datetimeFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 15:04",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
}

// parseDateTime parses a timestamp trying each known format in turn.
// Fractional seconds are tolerated by any format that includes seconds.
func parseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, format := range datetimeFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp: %q", s)
}

// isExternalEmail reports whether the email's domain differs from the
// company domain. Unset domain or malformed email means internal.
func (l *Loader) isExternalEmail(email string) bool {
	if l.companyDomain == "" {
		return false
	}
	_, domain, ok := strings.Cut(email, "@")
	if !ok {
		return false
	}
	return strings.ToLower(domain) != l.companyDomain
}

// parseAttendeeList parses a comma or semicolon separated attendee string.
// Entries may be bare emails or "Name <email>".
func (l *Loader) parseAttendeeList(s string, required bool) []model.Attendee {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var parts []string
	switch {
	case strings.Contains(s, ";"):
		parts = strings.Split(s, ";")
	case strings.Contains(s, ","):
		parts = strings.Split(s, ",")
	default:
		parts = []string{s}
	}

	var attendees []model.Attendee
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		var email, name string
		if open := strings.Index(part, "<"); open != -1 {
			end := strings.Index(part, ">")
			if end <= open {
				continue
			}
			name = strings.TrimSpace(part[:open])
			email = strings.TrimSpace(part[open+1 : end])
		} else if strings.Contains(part, "@") {
			email = part
		} else {
			continue
		}

		a := model.NewAttendee(email, name, model.ResponseNone)
		a.IsRequired = required
		a.IsExternal = l.isExternalEmail(email)
		attendees = append(attendees, a)
	}
	return attendees
}

// parseCategories splits a delimited category string.
func parseCategories(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	sep := ""
	switch {
	case strings.Contains(s, ";"):
		sep = ";"
	case strings.Contains(s, ","):
		sep = ","
	default:
		return []string{s}
	}

	var categories []string
	for _, c := range strings.Split(s, sep) {
		if c = strings.TrimSpace(c); c != "" {
			categories = append(categories, c)
		}
	}
	return categories
}

// dropOrganizer removes the organizer from an attendee list. The event
// model counts the organizer separately, so keeping it would double count.
func dropOrganizer(attendees []model.Attendee, organizerEmail string) []model.Attendee {
	kept := attendees[:0]
	for _, a := range attendees {
		if strings.EqualFold(a.Email, organizerEmail) {
			continue
		}
		kept = append(kept, a)
	}
	return kept
}
