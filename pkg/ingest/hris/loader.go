// Package hris loads HR directory exports into an Organization.
//
// CSV and JSON exports are supported with flexible column naming, covering
// Workday and BambooHR style exports. Job levels and functions are
// normalized from free-form grade and department strings.
package hris

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"

	caerrors "github.com/mdomarsaleem1/calendar-analytics/pkg/errors"
)

// Loader reads HR directory exports.
type Loader struct {
	companyName   string
	companyDomain string
}

// NewLoader creates a loader for the given company.
func NewLoader(companyName, companyDomain string) *Loader {
	return &Loader{
		companyName:   companyName,
		companyDomain: strings.ToLower(strings.TrimSpace(companyDomain)),
	}
}

// LoadResult is the outcome of a directory load.
type LoadResult struct {
	Org      *model.Organization
	Warnings []string
}

// LoadFile loads a directory export, dispatching on the file extension.
func (l *Loader) LoadFile(path string) (*LoadResult, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return l.LoadCSVFile(path)
	case ".json":
		return l.LoadJSONFile(path)
	default:
		return nil, fmt.Errorf("%s: %w", path, caerrors.ErrUnsupportedFormat)
	}
}

// LoadCSVFile loads a CSV directory export from a file path.
func (l *Loader) LoadCSVFile(path string) (*LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return l.LoadCSV(f)
}

// LoadCSV loads a CSV directory export from a reader. Column headers are
// matched case-insensitively with spaces folded to underscores, and each
// logical field accepts the aliases common across HRIS vendors.
func (l *Loader) LoadCSV(r io.Reader) (*LoadResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		org := model.NewOrganization(l.companyName, l.companyDomain)
		return &LoadResult{Org: org}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[normalizeColumn(name)] = i
	}

	org := model.NewOrganization(l.companyName, l.companyDomain)
	result := &LoadResult{Org: org}
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

		if e := l.parseCSVRow(record, columns); e != nil {
			org.AddEmployee(e)
		}
	}

	org.BuildRelationships()
	return result, nil
}

func (l *Loader) parseCSVRow(record []string, columns map[string]int) *model.Employee {
	email := field(record, columns, "email", "work_email", "corporate_email", "email_address")
	if email == "" {
		return nil
	}

	name := field(record, columns, "name", "full_name", "employee_name", "display_name")
	id := field(record, columns, "employee_id", "id", "emp_id", "worker_id")
	if id == "" {
		id = email
	}

	jobTitle := field(record, columns, "job_title", "title", "position", "role")
	levelStr := field(record, columns, "level", "job_level", "grade", "band")
	functionStr := field(record, columns,
		"function", "job_function", "department", "dept", "business_unit", "org_unit")

	return &model.Employee{
		ID:          id,
		Email:       strings.ToLower(email),
		Name:        nameOrDerived(name, email),
		JobTitle:    jobTitle,
		JobLevel:    ParseJobLevel(levelStr, jobTitle),
		JobFunction: ParseJobFunction(functionStr, jobTitle),
		Department:  functionStr,
		Team:        field(record, columns, "team", "team_name", "group"),
		Location:    field(record, columns, "location", "office", "site", "work_location"),
		ManagerEmail: strings.ToLower(field(record, columns,
			"manager_email", "manager", "reports_to", "supervisor_email", "direct_manager")),
		SkipLevelManagerEmail: strings.ToLower(field(record, columns,
			"skip_level_manager", "skip_manager", "skip_level", "second_level_manager", "grandmanager")),
		HireDate:      field(record, columns, "hire_date", "start_date", "join_date"),
		IsManager:     isTruthy(field(record, columns, "is_manager", "manager_flag", "people_manager")),
		IsActive:      true,
		CostCenter:    field(record, columns, "cost_center", "cost_centre"),
		Division:      field(record, columns, "division", "segment"),
		CompanyDomain: l.companyDomain,
	}
}

// jsonEmployee accepts the alias field names seen in JSON exports.
type jsonEmployee struct {
	Email                 string   `json:"email"`
	WorkEmail             string   `json:"work_email"`
	EmployeeID            string   `json:"employee_id"`
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	FullName              string   `json:"full_name"`
	JobTitle              string   `json:"job_title"`
	Title                 string   `json:"title"`
	Level                 string   `json:"level"`
	JobLevel              string   `json:"job_level"`
	Function              string   `json:"function"`
	Department            string   `json:"department"`
	Team                  string   `json:"team"`
	Location              string   `json:"location"`
	ManagerEmail          string   `json:"manager_email"`
	SkipLevelManagerEmail string   `json:"skip_level_manager_email"`
	HireDate              string   `json:"hire_date"`
	IsManager             bool     `json:"is_manager"`
	DirectReports         []string `json:"direct_reports"`
	CostCenter            string   `json:"cost_center"`
	Division              string   `json:"division"`
}

// LoadJSONFile loads a JSON directory export from a file path.
func (l *Loader) LoadJSONFile(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return l.LoadJSON(data)
}

// LoadJSON loads a JSON directory export. The payload may be a bare array,
// an {"employees": [...]} or {"data": [...]} envelope, or a single object.
func (l *Loader) LoadJSON(data []byte) (*LoadResult, error) {
	var raw []jsonEmployee
	companyName := l.companyName
	companyDomain := l.companyDomain

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
			return nil, fmt.Errorf("failed to parse employee array: %w", err)
		}
	} else {
		var envelope struct {
			CompanyName string         `json:"company_name"`
			Domain      string         `json:"domain"`
			Employees   []jsonEmployee `json:"employees"`
			Data        []jsonEmployee `json:"data"`
		}
		if err := json.Unmarshal([]byte(trimmed), &envelope); err != nil {
			return nil, fmt.Errorf("failed to parse payload: %w", err)
		}
		if companyName == "" {
			companyName = envelope.CompanyName
		}
		if companyDomain == "" {
			companyDomain = strings.ToLower(envelope.Domain)
		}
		switch {
		case envelope.Employees != nil:
			raw = envelope.Employees
		case envelope.Data != nil:
			raw = envelope.Data
		default:
			var single jsonEmployee
			if err := json.Unmarshal([]byte(trimmed), &single); err != nil {
				return nil, fmt.Errorf("failed to parse employee: %w", err)
			}
			raw = []jsonEmployee{single}
		}
	}

	org := model.NewOrganization(companyName, companyDomain)
	for i := range raw {
		if e := l.fromJSON(&raw[i]); e != nil {
			org.AddEmployee(e)
		}
	}

	org.BuildRelationships()
	return &LoadResult{Org: org}, nil
}

func (l *Loader) fromJSON(je *jsonEmployee) *model.Employee {
	email := je.Email
	if email == "" {
		email = je.WorkEmail
	}
	if email == "" {
		return nil
	}

	id := je.EmployeeID
	if id == "" {
		id = je.ID
	}
	if id == "" {
		id = email
	}

	name := je.Name
	if name == "" {
		name = je.FullName
	}

	jobTitle := je.JobTitle
	if jobTitle == "" {
		jobTitle = je.Title
	}
	levelStr := je.Level
	if levelStr == "" {
		levelStr = je.JobLevel
	}
	functionStr := je.Function
	if functionStr == "" {
		functionStr = je.Department
	}

	return &model.Employee{
		ID:                    id,
		Email:                 strings.ToLower(email),
		Name:                  nameOrDerived(name, email),
		JobTitle:              jobTitle,
		JobLevel:              ParseJobLevel(levelStr, jobTitle),
		JobFunction:           ParseJobFunction(functionStr, jobTitle),
		Department:            functionStr,
		Team:                  je.Team,
		Location:              je.Location,
		ManagerEmail:          strings.ToLower(je.ManagerEmail),
		SkipLevelManagerEmail: strings.ToLower(je.SkipLevelManagerEmail),
		HireDate:              je.HireDate,
		IsManager:             je.IsManager,
		IsActive:              true,
		DirectReports:         je.DirectReports,
		CostCenter:            je.CostCenter,
		Division:              je.Division,
		CompanyDomain:         l.companyDomain,
	}
}

// FromEmployees builds an organization from already-constructed employees
// and wires the reporting relationships. Used by the sample data generator.
func (l *Loader) FromEmployees(employees []*model.Employee) *model.Organization {
	org := model.NewOrganization(l.companyName, l.companyDomain)
	for _, e := range employees {
		org.AddEmployee(e)
	}
	org.BuildRelationships()
	return org
}

var titleCaser = cases.Title(language.English)

// nameOrDerived falls back to a title-cased name derived from the email
// local part when the export has no name.
func nameOrDerived(name, email string) string {
	if name != "" {
		return name
	}
	local, _, _ := strings.Cut(email, "@")
	return titleCaser.String(strings.ReplaceAll(local, ".", " "))
}

func normalizeColumn(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, " ", "_")
}

func field(record []string, columns map[string]int, aliases ...string) string {
	for _, alias := range aliases {
		if i, ok := columns[alias]; ok && i < len(record) {
			return strings.TrimSpace(record[i])
		}
	}
	return ""
}

func isTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "y":
		return true
	}
	return false
}
