// Package cmd provides CLI commands for the calan tool.
package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdomarsaleem1/calendar-analytics/config"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"
)

// testLoadConfig returns a config loader that skips files and environment.
func testLoadConfig() (*config.CLIConfig, error) {
	return config.DefaultConfig(), nil
}

// captureStdout runs fn and returns everything it printed to stdout.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := fn()

	w.Close()
	os.Stdout = orig
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out), runErr
}

func TestCollectCalendarFiles_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jane_at_example_com.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	files, err := collectCalendarFiles(path)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, path, files[0].Path)
	assert.Equal(t, "jane@example.com", files[0].Owner)
}

func TestCollectCalendarFiles_Directory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"bob_at_acme_io.json", "amy_at_acme_io.csv", "notes.txt", "readme.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	files, err := collectCalendarFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2, "only .json and .csv should be picked up")

	// Sorted by path.
	assert.Equal(t, "amy@acme.io", files[0].Owner)
	assert.Equal(t, "bob@acme.io", files[1].Owner)
}

func TestCollectCalendarFiles_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	_, err := collectCalendarFiles(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no calendar files")
}

func TestCollectCalendarFiles_MissingPath(t *testing.T) {
	_, err := collectCalendarFiles(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestFirstEmailDomain(t *testing.T) {
	org := model.NewOrganization("Acme", "")
	org.AddEmployee(&model.Employee{Email: "zed@acme.io", Name: "Zed"})
	org.AddEmployee(&model.Employee{Email: "amy@acme.io", Name: "Amy"})

	assert.Equal(t, "acme.io", firstEmailDomain(org))
}

func TestResolveOutputFormat(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.OutputFormat = config.OutputFormatYAML

	assert.Equal(t, config.OutputFormatJSON, resolveOutputFormat("json", cfg), "flag wins")
	assert.Equal(t, config.OutputFormatYAML, resolveOutputFormat("", cfg), "config is the fallback")
	assert.Equal(t, config.OutputFormatText, resolveOutputFormat("", nil))
}
