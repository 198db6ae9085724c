package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdomarsaleem1/calendar-analytics/pkg/sample"
)

// TestNewIndividualCommand verifies the individual command structure.
func TestNewIndividualCommand(t *testing.T) {
	deps := DefaultIndividualDeps()
	cmd := NewIndividualCommand(deps)

	assert.Equal(t, "individual", cmd.Use, "command name should be individual")
	assert.NotEmpty(t, cmd.Short, "command should have short description")
	assert.NotEmpty(t, cmd.Long, "command should have long description")

	for _, name := range []string{"email", "hris", "calendars", "output"} {
		flag := cmd.Flags().Lookup(name)
		require.NotNil(t, flag, "%s flag should exist", name)
		assert.Equal(t, "string", flag.Value.Type(), "%s flag should be string", name)
	}
}

// TestIndividualCommand_RequiresEmail verifies that --email is required.
func TestIndividualCommand_RequiresEmail(t *testing.T) {
	deps := &IndividualCommandDeps{LoadConfig: testLoadConfig}
	cmd := NewIndividualCommand(deps)
	cmd.SetArgs([]string{})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	assert.Error(t, err, "individual command should require --email")
}

// TestIndividualCommand_WritesReport verifies an end-to-end run for one
// person picked from the generated calendars.
func TestIndividualCommand_WritesReport(t *testing.T) {
	hrisPath, calDir := writeSampleDataSet(t, 20, 5)

	entries, err := os.ReadDir(calDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	stem := strings.TrimSuffix(entries[0].Name(), filepath.Ext(entries[0].Name()))
	email := sample.EmailFromFileName(stem)

	outPath := filepath.Join(t.TempDir(), "individual.json")
	deps := &IndividualCommandDeps{LoadConfig: testLoadConfig}
	cmd := NewIndividualCommand(deps)
	cmd.SetArgs([]string{
		"--email", email,
		"--hris", hrisPath,
		"--calendars", calDir,
		"--output", outPath,
	})

	out, err := captureStdout(t, cmd.Execute)
	require.NoError(t, err)
	assert.Contains(t, out, "Report saved to")
	assert.Contains(t, out, email)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var decoded struct {
		Employee struct {
			Email string `json:"email"`
		} `json:"employee"`
		Summary struct {
			TotalMeetings int `json:"total_meetings"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, email, decoded.Employee.Email)
	assert.Greater(t, decoded.Summary.TotalMeetings, 0)
}

// TestIndividualCommand_UnknownEmail verifies the directory membership check.
func TestIndividualCommand_UnknownEmail(t *testing.T) {
	hrisPath, calDir := writeSampleDataSet(t, 20, 5)

	deps := &IndividualCommandDeps{LoadConfig: testLoadConfig}
	cmd := NewIndividualCommand(deps)
	cmd.SetArgs([]string{
		"--email", "nobody@acme.io",
		"--hris", hrisPath,
		"--calendars", calDir,
	})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not in the employee directory")
}
