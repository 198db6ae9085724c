package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewGenerateSampleCommand verifies the generate-sample command structure.
func TestNewGenerateSampleCommand(t *testing.T) {
	deps := DefaultGenerateSampleDeps()
	cmd := NewGenerateSampleCommand(deps)

	assert.Equal(t, "generate-sample", cmd.Use, "command name should be generate-sample")
	assert.NotEmpty(t, cmd.Short, "command should have short description")
	assert.NotEmpty(t, cmd.Long, "command should have long description")

	// Verify flags exist.
	employeesFlag := cmd.Flags().Lookup("employees")
	require.NotNil(t, employeesFlag, "employees flag should exist")
	assert.Equal(t, "int", employeesFlag.Value.Type(), "employees flag should be int")
	assert.Equal(t, "50", employeesFlag.DefValue)

	daysFlag := cmd.Flags().Lookup("days")
	require.NotNil(t, daysFlag, "days flag should exist")
	assert.Equal(t, "30", daysFlag.DefValue)

	seedFlag := cmd.Flags().Lookup("seed")
	require.NotNil(t, seedFlag, "seed flag should exist")
	assert.Equal(t, "int64", seedFlag.Value.Type(), "seed flag should be int64")

	outputFlag := cmd.Flags().Lookup("output")
	require.NotNil(t, outputFlag, "output flag should exist")
	assert.Equal(t, "./sample_data", outputFlag.DefValue)

	// Verify shorthand for console output flag.
	outShortFlag := cmd.Flags().ShorthandLookup("o")
	require.NotNil(t, outShortFlag, "console output flag should have shorthand -o")
}

// TestGenerateSampleCommand_WritesDataSet verifies an end-to-end run.
func TestGenerateSampleCommand_WritesDataSet(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "sample")
	deps := &GenerateSampleCommandDeps{LoadConfig: testLoadConfig}
	cmd := NewGenerateSampleCommand(deps)
	cmd.SetArgs([]string{
		"--employees", "12",
		"--days", "3",
		"--seed", "42",
		"--domain", "acme.io",
		"--company", "Acme",
		"--output", outDir,
		"-o", "json",
	})

	out, err := captureStdout(t, cmd.Execute)
	require.NoError(t, err)

	var result struct {
		Company   string `json:"company"`
		Domain    string `json:"domain"`
		Employees int    `json:"employees"`
		Calendars int    `json:"calendars"`
		Events    int    `json:"events"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "Acme", result.Company)
	assert.Equal(t, "acme.io", result.Domain)
	assert.Greater(t, result.Employees, 0)
	assert.Greater(t, result.Events, 0)

	// Directory export exists.
	_, err = os.Stat(filepath.Join(outDir, "hris_data.json"))
	require.NoError(t, err, "hris_data.json should be written")

	// One calendar per employee.
	entries, err := os.ReadDir(filepath.Join(outDir, "calendars"))
	require.NoError(t, err)
	assert.Len(t, entries, result.Calendars, "each employee should get a calendar file")
}

// TestGenerateSampleCommand_RejectsZeroEmployees verifies input validation.
func TestGenerateSampleCommand_RejectsZeroEmployees(t *testing.T) {
	deps := &GenerateSampleCommandDeps{LoadConfig: testLoadConfig}
	cmd := NewGenerateSampleCommand(deps)
	cmd.SetArgs([]string{"--employees", "0"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "employees must be at least 1")
}
