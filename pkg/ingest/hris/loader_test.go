package hris

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdomarsaleem1/calendar-analytics/pkg/errors"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"
)

func TestParseJobLevel(t *testing.T) {
	tests := []struct {
		name     string
		levelStr string
		jobTitle string
		want     model.JobLevel
	}{
		{"exact ic", "IC", "", model.LevelIC},
		{"exact senior manager", "Senior Manager", "", model.LevelSeniorManager},
		{"exact vp", "vp", "", model.LevelVP},
		{"partial senior grade", "L6 Senior", "", model.LevelSeniorIC},
		{"exact vice president", "Vice President", "", model.LevelVP},
		{"ic substring wins in partial scan", "Regional Vice President", "", model.LevelIC},
		{"title manager", "", "Engineering Manager", model.LevelManager},
		{"title principal", "", "Principal Engineer", model.LevelLead},
		{"title director", "", "Director of Engineering", model.LevelDirector},
		{"title cto", "", "CTO", model.LevelCLevel},
		{"level wins over title", "Staff", "Engineering Manager", model.LevelSeniorIC},
		{"nothing", "", "", model.LevelUnknown},
		{"unmatched", "Band Q", "Wizard", model.LevelUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseJobLevel(tt.levelStr, tt.jobTitle))
		})
	}
}

func TestParseJobFunction(t *testing.T) {
	tests := []struct {
		name        string
		functionStr string
		jobTitle    string
		want        model.JobFunction
	}{
		{"exact data science", "Data Science", "", model.FunctionDataScience},
		{"exact ops alias", "ops", "", model.FunctionOperations},
		{"partial sales org", "Global Sales Org", "", model.FunctionSales},
		{"first table entry wins", "Product Design", "", model.FunctionProduct},
		{"title software", "R&D", "Software Engineer", model.FunctionEngineering},
		{"title ux", "", "UX Designer", model.FunctionDesign},
		{"nothing", "", "", model.FunctionOther},
		{"unmatched", "Q division", "Wizard", model.FunctionOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseJobFunction(tt.functionStr, tt.jobTitle))
		})
	}
}

const directoryCSV = "\ufeffEmployee ID,Email,Full Name,Job Title,Level,Department,Team,Manager Email,Location,Hire Date,Is Manager\n" +
	"E1,vera@acme.com,Vera Vale,Director of Engineering,Director,Engineering,Platform,,London,2018-05-01,yes\n" +
	"E2,Mina@acme.com,Mina Park,Engineering Manager,Manager,Engineering,Platform,vera@acme.com,London,2020-02-10,yes\n" +
	"E3,alice@acme.com,,Software Engineer,Senior,Engineering,Platform,mina@acme.com,Berlin,2022-09-15,\n" +
	",,,,,,,,,,\n"

func TestLoadCSV(t *testing.T) {
	loader := NewLoader("Acme", "acme.com")
	result, err := loader.LoadCSV(strings.NewReader(directoryCSV))
	require.NoError(t, err)

	org := result.Org
	assert.Equal(t, "Acme", org.CompanyName)
	assert.Equal(t, "acme.com", org.Domain)
	// The blank row has no email and is skipped.
	assert.Equal(t, 3, org.EmployeeCount())

	vera := org.GetEmployee("vera@acme.com")
	require.NotNil(t, vera)
	assert.Equal(t, model.LevelDirector, vera.JobLevel)
	assert.Equal(t, model.FunctionEngineering, vera.JobFunction)
	assert.True(t, vera.IsManager)
	assert.Equal(t, []string{"mina@acme.com"}, vera.DirectReports)

	mina := org.GetEmployee("MINA@acme.com") // lookup is case-insensitive
	require.NotNil(t, mina)
	assert.Equal(t, "mina@acme.com", mina.Email)
	assert.Equal(t, "E2", mina.ID)
	assert.Equal(t, []string{"alice@acme.com"}, mina.DirectReports)

	alice := org.GetEmployee("alice@acme.com")
	require.NotNil(t, alice)
	assert.Equal(t, "Alice", alice.Name) // derived from the email local part
	assert.Equal(t, model.LevelSeniorIC, alice.JobLevel)
	assert.Equal(t, "mina@acme.com", alice.ManagerEmail)
	// Skip-level inferred as the manager's manager.
	assert.Equal(t, "vera@acme.com", alice.SkipLevelManagerEmail)
	assert.False(t, alice.IsManager)
}

func TestLoadCSV_Empty(t *testing.T) {
	loader := NewLoader("Acme", "acme.com")
	result, err := loader.LoadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Org.EmployeeCount())
}

func TestLoadJSON_Envelopes(t *testing.T) {
	loader := NewLoader("Acme", "acme.com")

	employees := `{"employees": [
	  {"email": "Vera@acme.com", "name": "Vera Vale", "job_title": "VP Engineering", "level": "VP", "function": "Engineering", "is_manager": true},
	  {"work_email": "bob@acme.com", "full_name": "Bob Smith", "title": "Staff Engineer", "department": "Engineering", "manager_email": "vera@acme.com"}
	]}`
	result, err := loader.LoadJSON([]byte(employees))
	require.NoError(t, err)
	org := result.Org
	require.Equal(t, 2, org.EmployeeCount())

	bob := org.GetEmployee("bob@acme.com")
	require.NotNil(t, bob)
	assert.Equal(t, "Bob Smith", bob.Name)
	assert.Equal(t, "Staff Engineer", bob.JobTitle)
	assert.Equal(t, model.LevelSeniorIC, bob.JobLevel)
	assert.Equal(t, model.FunctionEngineering, bob.JobFunction)
	assert.Equal(t, "vera@acme.com", bob.ManagerEmail)

	vera := org.GetEmployee("vera@acme.com")
	require.NotNil(t, vera)
	assert.Equal(t, []string{"bob@acme.com"}, vera.DirectReports)

	data := `{"data": [{"email": "solo@acme.com"}]}`
	result, err = loader.LoadJSON([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Org.EmployeeCount())

	array := `[{"email": "a@acme.com"}, {"email": "b@acme.com"}]`
	result, err = loader.LoadJSON([]byte(array))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Org.EmployeeCount())

	single := `{"email": "one@acme.com", "name": "One"}`
	result, err = loader.LoadJSON([]byte(single))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Org.EmployeeCount())

	_, err = loader.LoadJSON([]byte("{broken"))
	assert.Error(t, err)
}

func TestLoadJSON_SkipsEntriesWithoutEmail(t *testing.T) {
	loader := NewLoader("Acme", "acme.com")
	result, err := loader.LoadJSON([]byte(`[{"name": "No Email"}, {"email": "ok@acme.com"}]`))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Org.EmployeeCount())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hris.csv")
	require.NoError(t, os.WriteFile(path, []byte(directoryCSV), 0o644))

	loader := NewLoader("Acme", "acme.com")
	result, err := loader.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Org.EmployeeCount())

	_, err = loader.LoadFile(filepath.Join(dir, "hris.xml"))
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedFormat(err))
}

func TestFromEmployees(t *testing.T) {
	loader := NewLoader("Acme", "acme.com")
	org := loader.FromEmployees([]*model.Employee{
		{Email: "boss@acme.com", Name: "Boss"},
		{Email: "report@acme.com", Name: "Report", ManagerEmail: "boss@acme.com"},
	})

	require.Equal(t, 2, org.EmployeeCount())
	boss := org.GetEmployee("boss@acme.com")
	require.NotNil(t, boss)
	assert.True(t, boss.IsManager)
	assert.Equal(t, []string{"report@acme.com"}, boss.DirectReports)
}
