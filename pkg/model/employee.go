package model

import "strings"

// JobLevel is an employee's seniority level, ordered from individual
// contributor up to C-level.
type JobLevel string

const (
	LevelUnknown        JobLevel = "Unknown"
	LevelIC             JobLevel = "IC"
	LevelSeniorIC       JobLevel = "Senior IC"
	LevelLead           JobLevel = "Lead"
	LevelManager        JobLevel = "Manager"
	LevelSeniorManager  JobLevel = "Senior Manager"
	LevelDirector       JobLevel = "Director"
	LevelSeniorDirector JobLevel = "Senior Director"
	LevelVP             JobLevel = "VP"
	LevelSVP            JobLevel = "SVP"
	LevelCLevel         JobLevel = "C-Level"
)

// JobLevels lists every level from IC up, Unknown last.
var JobLevels = []JobLevel{
	LevelIC, LevelSeniorIC, LevelLead, LevelManager, LevelSeniorManager,
	LevelDirector, LevelSeniorDirector, LevelVP, LevelSVP, LevelCLevel,
	LevelUnknown,
}

// Numeric returns the ordinal position of the level for comparisons.
// Unknown is 0.
func (l JobLevel) Numeric() int {
	switch l {
	case LevelIC:
		return 1
	case LevelSeniorIC:
		return 2
	case LevelLead:
		return 3
	case LevelManager:
		return 4
	case LevelSeniorManager:
		return 5
	case LevelDirector:
		return 6
	case LevelSeniorDirector:
		return 7
	case LevelVP:
		return 8
	case LevelSVP:
		return 9
	case LevelCLevel:
		return 10
	default:
		return 0
	}
}

// JobFunction is the closed set of job function categories.
type JobFunction string

const (
	FunctionEngineering     JobFunction = "Engineering"
	FunctionProduct         JobFunction = "Product"
	FunctionDesign          JobFunction = "Design"
	FunctionDataScience     JobFunction = "Data Science"
	FunctionSales           JobFunction = "Sales"
	FunctionMarketing       JobFunction = "Marketing"
	FunctionCustomerSuccess JobFunction = "Customer Success"
	FunctionOperations      JobFunction = "Operations"
	FunctionHR              JobFunction = "Human Resources"
	FunctionFinance         JobFunction = "Finance"
	FunctionLegal           JobFunction = "Legal"
	FunctionIT              JobFunction = "IT"
	FunctionExecutive       JobFunction = "Executive"
	FunctionAdmin           JobFunction = "Admin"
	FunctionOther           JobFunction = "Other"
)

// JobFunctions lists every function category in display order.
var JobFunctions = []JobFunction{
	FunctionEngineering, FunctionProduct, FunctionDesign, FunctionDataScience,
	FunctionSales, FunctionMarketing, FunctionCustomerSuccess,
	FunctionOperations, FunctionHR, FunctionFinance, FunctionLegal,
	FunctionIT, FunctionExecutive, FunctionAdmin, FunctionOther,
}

// Employee is one person from the HRIS directory.
type Employee struct {
	ID                    string      `json:"employee_id"`
	Email                 string      `json:"email"`
	Name                  string      `json:"name"`
	JobTitle              string      `json:"job_title,omitempty"`
	JobLevel              JobLevel    `json:"job_level"`
	JobFunction           JobFunction `json:"job_function"`
	Department            string      `json:"department,omitempty"`
	Team                  string      `json:"team,omitempty"`
	Location              string      `json:"location,omitempty"`
	ManagerEmail          string      `json:"manager_email,omitempty"`
	SkipLevelManagerEmail string      `json:"skip_level_manager_email,omitempty"`
	HireDate              string      `json:"hire_date,omitempty"`
	IsManager             bool        `json:"is_manager"`
	IsActive              bool        `json:"is_active"`
	DirectReports         []string    `json:"direct_reports,omitempty"`
	CostCenter            string      `json:"cost_center,omitempty"`
	Division              string      `json:"division,omitempty"`
	CompanyDomain         string      `json:"company_domain,omitempty"`
}

// DirectReportCount is the number of direct reports.
func (e *Employee) DirectReportCount() int {
	return len(e.DirectReports)
}

// IsPeopleManager reports whether the employee manages people, either by
// having reports or by the explicit manager flag.
func (e *Employee) IsPeopleManager() bool {
	return e.DirectReportCount() > 0 || e.IsManager
}

// FirstName returns the first whitespace-separated name component.
func (e *Employee) FirstName() string {
	parts := strings.Fields(e.Name)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

// LastName returns the last name component, or empty for single-word names.
func (e *Employee) LastName() string {
	parts := strings.Fields(e.Name)
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-1]
}

// SameTeam reports whether both employees share a non-empty team.
func (e *Employee) SameTeam(other *Employee) bool {
	return e.Team != "" && e.Team == other.Team
}

// SameFunction reports whether both employees share a job function.
func (e *Employee) SameFunction(other *Employee) bool {
	return e.JobFunction == other.JobFunction
}

// ReportsTo reports whether e's manager is other.
func (e *Employee) ReportsTo(other *Employee) bool {
	return e.ManagerEmail != "" && strings.EqualFold(e.ManagerEmail, other.Email)
}
