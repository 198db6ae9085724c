package calendar

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"
)

// LoadCSVFile loads an Outlook CSV export from a file path.
func (l *Loader) LoadCSVFile(path, ownerEmail string) (*LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return l.LoadCSV(f, ownerEmail)
}

// LoadCSV loads an Outlook CSV export from a reader. Column headers are
// matched case-insensitively with spaces folded to underscores, so both
// the desktop export ("Start Date") and snake_case exports work.
func (l *Loader) LoadCSV(r io.Reader, ownerEmail string) (*LoadResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return &LoadResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[normalizeColumn(name)] = i
	}

	result := &LoadResult{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		event, err := l.parseCSVRow(record, columns, ownerEmail)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		result.Events = append(result.Events, event)
	}

	return result, nil
}

// normalizeColumn lowercases a header name, folds spaces to underscores,
// and strips the UTF-8 BOM Outlook prepends to the first column.
func normalizeColumn(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, " ", "_")
}

// field returns the first matching column value for the given aliases.
func field(record []string, columns map[string]int, aliases ...string) string {
	for _, alias := range aliases {
		if i, ok := columns[alias]; ok && i < len(record) {
			return strings.TrimSpace(record[i])
		}
	}
	return ""
}

func (l *Loader) parseCSVRow(record []string, columns map[string]int, ownerEmail string) (*model.Event, error) {
	startStr := strings.TrimSpace(field(record, columns, "start_date") + " " + field(record, columns, "start_time"))
	endStr := strings.TrimSpace(field(record, columns, "end_date") + " " + field(record, columns, "end_time"))

	start, err := parseDateTime(startStr)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := parseDateTime(endStr)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	organizer := field(record, columns, "organizer", "meeting_organizer")
	if organizer == "" {
		organizer = ownerEmail
	}

	attendees := l.parseAttendeeList(field(record, columns, "required_attendees", "attendees"), true)
	attendees = append(attendees, l.parseAttendeeList(field(record, columns, "optional_attendees"), false)...)
	attendees = dropOrganizer(attendees, organizer)

	id := field(record, columns, "uid", "event_id")
	if id == "" {
		id = "evt_" + uuid.NewString()
	}

	importance := strings.ToLower(field(record, columns, "priority", "importance"))
	if importance == "" {
		importance = "normal"
	}
	showAs := strings.ToLower(field(record, columns, "show_as"))
	if showAs == "" {
		showAs = "busy"
	}

	return &model.Event{
		ID:                id,
		Subject:           field(record, columns, "subject"),
		OrganizerEmail:    organizer,
		Start:             start,
		End:               end,
		Attendees:         attendees,
		Location:          field(record, columns, "location"),
		Body:              field(record, columns, "description", "body"),
		IsRecurring:       isTruthy(field(record, columns, "recurring", "is_recurring")),
		RecurrencePattern: field(record, columns, "recurrence_pattern"),
		IsAllDay:          isTruthy(field(record, columns, "all_day_event", "is_all_day")),
		Categories:        parseCategories(field(record, columns, "categories")),
		Importance:        importance,
		ShowAs:            showAs,
	}, nil
}

func isTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true
	}
	return false
}
