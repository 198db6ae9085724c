package calendar

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdomarsaleem1/calendar-analytics/pkg/errors"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"
)

func TestLoadCSV_DesktopExport(t *testing.T) {
	csvData := "\ufeffSubject,Start Date,Start Time,End Date,End Time,Organizer,Required Attendees,Optional Attendees,Recurring,All day event,Location,Description,Categories,Priority,Show As\n" +
		`Roadmap review,3/4/2024,10:00:00 AM,3/4/2024,11:00:00 AM,mina@acme.com,Alice Adams <alice@acme.com>; bob.smith@acme.com,carol@client.io,Yes,,Room 4,Quarterly roadmap,Planning; Q2,High,Busy` + "\n"

	loader := NewLoader("acme.com")
	result, err := loader.LoadCSV(strings.NewReader(csvData), "mina@acme.com")
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	assert.Empty(t, result.Warnings)

	e := result.Events[0]
	assert.Equal(t, "Roadmap review", e.Subject)
	assert.Equal(t, "mina@acme.com", e.OrganizerEmail)
	assert.Equal(t, time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC), e.Start)
	assert.Equal(t, 60, e.DurationMinutes())
	assert.True(t, e.IsRecurring)
	assert.False(t, e.IsAllDay)
	assert.Equal(t, "Room 4", e.Location)
	assert.Equal(t, "Quarterly roadmap", e.Body)
	assert.Equal(t, []string{"Planning", "Q2"}, e.Categories)
	assert.Equal(t, "high", e.Importance)
	assert.Equal(t, "busy", e.ShowAs)

	require.Len(t, e.Attendees, 3)
	assert.Equal(t, "alice@acme.com", e.Attendees[0].Email)
	assert.Equal(t, "Alice Adams", e.Attendees[0].Name)
	assert.True(t, e.Attendees[0].IsRequired)
	assert.False(t, e.Attendees[0].IsExternal)
	assert.Equal(t, "Bob Smith", e.Attendees[1].Name) // derived from local part
	assert.Equal(t, "carol@client.io", e.Attendees[2].Email)
	assert.False(t, e.Attendees[2].IsRequired)
	assert.True(t, e.Attendees[2].IsExternal)
}

func TestLoadCSV_SnakeCaseExport(t *testing.T) {
	csvData := "subject,start_date,start_time,end_date,end_time,attendees,is_recurring\n" +
		"Standup,2024-03-04,09:15,2024-03-04,09:30,dana@acme.com,true\n"

	loader := NewLoader("acme.com")
	result, err := loader.LoadCSV(strings.NewReader(csvData), "mina@acme.com")
	require.NoError(t, err)
	require.Len(t, result.Events, 1)

	e := result.Events[0]
	// No organizer column: owner is the organizer.
	assert.Equal(t, "mina@acme.com", e.OrganizerEmail)
	assert.True(t, strings.HasPrefix(e.ID, "evt_"))
	assert.Equal(t, 15, e.DurationMinutes())
	assert.True(t, e.IsRecurring)
	assert.Equal(t, "normal", e.Importance)
	assert.Equal(t, "busy", e.ShowAs)
}

func TestLoadCSV_SkipsBadRows(t *testing.T) {
	csvData := "subject,start_date,start_time,end_date,end_time\n" +
		"Broken,someday,soon,2024-03-04,10:00\n" +
		"Good,2024-03-04,10:00,2024-03-04,10:30\n"

	loader := NewLoader("acme.com")
	result, err := loader.LoadCSV(strings.NewReader(csvData), "mina@acme.com")
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	assert.Equal(t, "Good", result.Events[0].Subject)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "line 2")
}

func TestLoadCSV_Empty(t *testing.T) {
	loader := NewLoader("")
	result, err := loader.LoadCSV(strings.NewReader(""), "")
	require.NoError(t, err)
	assert.Empty(t, result.Events)
}

func TestParseDateTime_Formats(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2024-03-04T10:00:00Z", time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)},
		{"2024-03-04T10:00:00.0000000", time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)},
		{"2024-03-04T10:00:00", time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)},
		{"2024-03-04 10:00:00", time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)},
		{"2024-03-04 10:00", time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)},
		{"3/4/2024 1:30:00 PM", time.Date(2024, 3, 4, 13, 30, 0, 0, time.UTC)},
		{"3/4/2024 13:30", time.Date(2024, 3, 4, 13, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseDateTime(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
		})
	}

	_, err := parseDateTime("next tuesday")
	assert.Error(t, err)
	_, err = parseDateTime("")
	assert.Error(t, err)
}

func TestParseAttendeeList(t *testing.T) {
	loader := NewLoader("acme.com")

	attendees := loader.parseAttendeeList("Alice <alice@acme.com>, bob@acme.com, Room 4", true)
	require.Len(t, attendees, 2) // non-email entries are dropped
	assert.Equal(t, "alice@acme.com", attendees[0].Email)
	assert.Equal(t, "Alice", attendees[0].Name)
	assert.Equal(t, "bob@acme.com", attendees[1].Email)

	assert.Empty(t, loader.parseAttendeeList("  ", true))
}

func TestIsExternalEmail(t *testing.T) {
	loader := NewLoader("Acme.COM")

	assert.False(t, loader.isExternalEmail("mina@acme.com"))
	assert.False(t, loader.isExternalEmail("mina@ACME.com"))
	assert.True(t, loader.isExternalEmail("buyer@client.io"))
	assert.False(t, loader.isExternalEmail("not-an-email"))

	open := NewLoader("")
	assert.False(t, open.isExternalEmail("buyer@client.io"))
}

const graphPayload = `{
  "value": [
    {
      "id": "AAMk1",
      "subject": "Design sync",
      "start": {"dateTime": "2024-03-04T10:00:00.0000000", "timeZone": "UTC"},
      "end": {"dateTime": "2024-03-04T10:45:00.0000000", "timeZone": "UTC"},
      "organizer": {"emailAddress": {"address": "mina@acme.com", "name": "Mina"}},
      "attendees": [
        {"emailAddress": {"address": "mina@acme.com", "name": "Mina"}, "status": {"response": "organizer"}, "type": "required"},
        {"emailAddress": {"address": "alice@acme.com", "name": "Alice"}, "status": {"response": "tentativelyAccepted"}, "type": "required"},
        {"emailAddress": {"address": "buyer@client.io", "name": "Buyer"}, "status": {"response": "notResponded"}, "type": "optional"}
      ],
      "location": {"displayName": "Teams"},
      "body": {"content": "Agenda: review mocks"},
      "recurrence": {"pattern": {"type": "weekly", "interval": 1}},
      "isCancelled": false,
      "isAllDay": false,
      "showAs": "Busy",
      "importance": "Normal",
      "categories": ["Design"],
      "seriesMasterId": "AAMkMaster",
      "onlineMeeting": {"joinUrl": "https://teams.example.com/j/1"}
    }
  ]
}`

func TestLoadJSON_GraphEnvelope(t *testing.T) {
	loader := NewLoader("acme.com")
	result, err := loader.LoadJSON([]byte(graphPayload), "mina@acme.com")
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	assert.Empty(t, result.Warnings)

	e := result.Events[0]
	assert.Equal(t, "AAMk1", e.ID)
	assert.Equal(t, "Design sync", e.Subject)
	assert.Equal(t, "mina@acme.com", e.OrganizerEmail)
	assert.Equal(t, 45, e.DurationMinutes())
	assert.Equal(t, "Teams", e.Location)
	assert.Equal(t, "Agenda: review mocks", e.Body)
	assert.True(t, e.IsRecurring)
	assert.Contains(t, e.RecurrencePattern, "weekly")
	assert.Equal(t, "busy", e.ShowAs)
	assert.Equal(t, "normal", e.Sensitivity)
	assert.Equal(t, "AAMkMaster", e.SeriesMasterID)
	assert.Equal(t, "https://teams.example.com/j/1", e.OnlineMeetingURL)

	// Organizer is dropped from the attendee list, so the count holds.
	require.Len(t, e.Attendees, 2)
	assert.Equal(t, 3, e.AttendeeCount())
	assert.Equal(t, model.ResponseTentative, e.Attendees[0].Response)
	assert.True(t, e.Attendees[0].IsRequired)
	assert.Equal(t, model.ResponseNone, e.Attendees[1].Response)
	assert.False(t, e.Attendees[1].IsRequired)
	assert.True(t, e.Attendees[1].IsExternal)
}

func TestLoadJSON_BareArrayAndSingleObject(t *testing.T) {
	loader := NewLoader("acme.com")

	array := `[{"subject": "A", "start": {"dateTime": "2024-03-04T10:00:00"}, "end": {"dateTime": "2024-03-04T10:30:00"}}]`
	result, err := loader.LoadJSON([]byte(array), "mina@acme.com")
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	assert.Equal(t, "A", result.Events[0].Subject)
	// No id in payload: a synthetic one is minted.
	assert.True(t, strings.HasPrefix(result.Events[0].ID, "evt_"))

	single := `{"subject": "B", "start": {"dateTime": "2024-03-04T11:00:00"}, "end": {"dateTime": "2024-03-04T11:30:00"}}`
	result, err = loader.LoadJSON([]byte(single), "mina@acme.com")
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	assert.Equal(t, "B", result.Events[0].Subject)
	assert.Equal(t, "mina@acme.com", result.Events[0].OrganizerEmail)
}

func TestLoadJSON_SkipsBadEvents(t *testing.T) {
	loader := NewLoader("acme.com")

	payload := `[
	  {"subject": "No times"},
	  {"subject": "Good", "start": {"dateTime": "2024-03-04T10:00:00"}, "end": {"dateTime": "2024-03-04T10:30:00"}}
	]`
	result, err := loader.LoadJSON([]byte(payload), "mina@acme.com")
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	assert.Equal(t, "Good", result.Events[0].Subject)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "event 0")
}

func TestLoadJSON_Malformed(t *testing.T) {
	loader := NewLoader("acme.com")
	_, err := loader.LoadJSON([]byte("{not json"), "")
	assert.Error(t, err)
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	loader := NewLoader("acme.com")
	_, err := loader.LoadFile("calendar.xlsx", "mina@acme.com")
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedFormat(err))
}

func TestLoadCalendars(t *testing.T) {
	dir := t.TempDir()
	minaPath := filepath.Join(dir, "mina.json")
	alicePath := filepath.Join(dir, "alice.json")

	minaJSON := `[{"subject": "M", "start": {"dateTime": "2024-03-04T10:00:00"}, "end": {"dateTime": "2024-03-04T10:30:00"}}]`
	require.NoError(t, os.WriteFile(minaPath, []byte(minaJSON), 0o644))
	require.NoError(t, os.WriteFile(alicePath, []byte(`[]`), 0o644))

	loader := NewLoader("acme.com")
	calendars, err := loader.LoadCalendars(map[string]string{
		"Mina@acme.com":  minaPath,
		"alice@acme.com": alicePath,
	})
	require.NoError(t, err)
	require.Len(t, calendars, 2)
	assert.Len(t, calendars["mina@acme.com"], 1)
	assert.Empty(t, calendars["alice@acme.com"])

	_, err = loader.LoadCalendars(map[string]string{
		"ghost@acme.com": filepath.Join(dir, "missing.json"),
	})
	assert.Error(t, err)
}
