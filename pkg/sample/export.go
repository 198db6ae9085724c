package sample

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mdomarsaleem1/calendar-analytics/pkg/ingest/calendar"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"
)

type hrisExport struct {
	CompanyName string         `json:"company_name"`
	Domain      string         `json:"domain"`
	Employees   []hrisEmployee `json:"employees"`
}

type hrisEmployee struct {
	EmployeeID            string   `json:"employee_id"`
	Email                 string   `json:"email"`
	Name                  string   `json:"name"`
	JobTitle              string   `json:"job_title"`
	Level                 string   `json:"level"`
	Function              string   `json:"function"`
	Department            string   `json:"department"`
	Team                  string   `json:"team"`
	Location              string   `json:"location"`
	ManagerEmail          string   `json:"manager_email,omitempty"`
	SkipLevelManagerEmail string   `json:"skip_level_manager_email,omitempty"`
	IsManager             bool     `json:"is_manager"`
	DirectReports         []string `json:"direct_reports,omitempty"`
}

// Export writes the generated data set to outputDir: hris_data.json for the
// directory, and one Graph-format JSON calendar per employee under
// calendars/. Both files load back through the ingest packages.
func (g *Generator) Export(org *model.Organization, calendars map[string][]*model.Event, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	export := hrisExport{
		CompanyName: org.CompanyName,
		Domain:      org.Domain,
	}
	for _, emp := range sortedEmployees(org) {
		export.Employees = append(export.Employees, hrisEmployee{
			EmployeeID:            emp.ID,
			Email:                 emp.Email,
			Name:                  emp.Name,
			JobTitle:              emp.JobTitle,
			Level:                 string(emp.JobLevel),
			Function:              string(emp.JobFunction),
			Department:            emp.Department,
			Team:                  emp.Team,
			Location:              emp.Location,
			ManagerEmail:          emp.ManagerEmail,
			SkipLevelManagerEmail: emp.SkipLevelManagerEmail,
			IsManager:             emp.IsManager,
			DirectReports:         emp.DirectReports,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, "hris_data.json"), data, 0o644); err != nil {
		return fmt.Errorf("failed to write hris_data.json: %w", err)
	}

	calendarDir := filepath.Join(outputDir, "calendars")
	if err := os.MkdirAll(calendarDir, 0o755); err != nil {
		return fmt.Errorf("failed to create calendars directory: %w", err)
	}

	emails := make([]string, 0, len(calendars))
	for email := range calendars {
		emails = append(emails, email)
	}
	sort.Strings(emails)

	for _, email := range emails {
		data, err := calendar.MarshalGraph(calendars[email])
		if err != nil {
			return fmt.Errorf("failed to encode calendar for %s: %w", email, err)
		}
		path := filepath.Join(calendarDir, SafeFileName(email)+".json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write calendar for %s: %w", email, err)
		}
	}
	return nil
}

// SafeFileName converts an email address to a filesystem-friendly stem.
// EmailFromFileName inverts it when scanning a calendars directory.
func SafeFileName(email string) string {
	return strings.NewReplacer("@", "_at_", ".", "_").Replace(email)
}

// EmailFromFileName recovers an email address from a calendar file stem.
func EmailFromFileName(stem string) string {
	email := strings.Replace(stem, "_at_", "@", 1)
	return strings.ReplaceAll(email, "_", ".")
}
