package model

import (
	"sort"
	"strings"
)

// Organization is the company directory: a lookup from lowercased email to
// Employee, plus the company domain used to decide internal vs external
// attendees. The loader builds it once; analysis treats it as read-only
// after BuildRelationships has run.
type Organization struct {
	CompanyName string               `json:"company_name"`
	Domain      string               `json:"domain"`
	Employees   map[string]*Employee `json:"employees"`
}

// NewOrganization creates an empty directory for the given company.
func NewOrganization(name, domain string) *Organization {
	return &Organization{
		CompanyName: name,
		Domain:      domain,
		Employees:   make(map[string]*Employee),
	}
}

// AddEmployee registers an employee keyed by lowercased email.
func (o *Organization) AddEmployee(e *Employee) {
	o.Employees[strings.ToLower(e.Email)] = e
}

// GetEmployee resolves an email to an employee, or nil when unknown.
func (o *Organization) GetEmployee(email string) *Employee {
	return o.Employees[strings.ToLower(email)]
}

// GetManager resolves an employee's manager, or nil.
func (o *Organization) GetManager(e *Employee) *Employee {
	if e.ManagerEmail == "" {
		return nil
	}
	return o.GetEmployee(e.ManagerEmail)
}

// GetSkipLevelManager resolves the skip-level manager, falling back to the
// manager's manager when no explicit skip-level email is recorded.
func (o *Organization) GetSkipLevelManager(e *Employee) *Employee {
	if e.SkipLevelManagerEmail != "" {
		return o.GetEmployee(e.SkipLevelManagerEmail)
	}
	if m := o.GetManager(e); m != nil {
		return o.GetManager(m)
	}
	return nil
}

// GetDirectReports returns every employee whose manager email matches.
func (o *Organization) GetDirectReports(managerEmail string) []*Employee {
	var reports []*Employee
	for _, e := range o.Employees {
		if e.ManagerEmail != "" && strings.EqualFold(e.ManagerEmail, managerEmail) {
			reports = append(reports, e)
		}
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].Email < reports[j].Email })
	return reports
}

// GetTeamMembers returns the other members of an employee's team.
func (o *Organization) GetTeamMembers(e *Employee) []*Employee {
	var members []*Employee
	for _, other := range o.Employees {
		if other.Team == e.Team && other.Email != e.Email {
			members = append(members, other)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Email < members[j].Email })
	return members
}

// GetEmployeesByFunction returns all employees with the given function.
func (o *Organization) GetEmployeesByFunction(fn JobFunction) []*Employee {
	var out []*Employee
	for _, e := range o.Employees {
		if e.JobFunction == fn {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out
}

// GetAllManagers returns every people manager in the directory.
func (o *Organization) GetAllManagers() []*Employee {
	var managers []*Employee
	for _, e := range o.Employees {
		if e.IsPeopleManager() {
			managers = append(managers, e)
		}
	}
	sort.Slice(managers, func(i, j int) bool { return managers[i].Email < managers[j].Email })
	return managers
}

// IsInternalEmail reports whether the email belongs to the company domain.
func (o *Organization) IsInternalEmail(email string) bool {
	_, domain, found := strings.Cut(email, "@")
	if !found {
		return false
	}
	return strings.EqualFold(domain, o.Domain)
}

// GetReportingChain walks manager links upward to the top of the org,
// stopping on cycles or dangling references.
func (o *Organization) GetReportingChain(e *Employee) []*Employee {
	var chain []*Employee
	seen := map[string]bool{strings.ToLower(e.Email): true}
	current := e
	for current.ManagerEmail != "" {
		manager := o.GetEmployee(current.ManagerEmail)
		if manager == nil || seen[strings.ToLower(manager.Email)] {
			break
		}
		seen[strings.ToLower(manager.Email)] = true
		chain = append(chain, manager)
		current = manager
	}
	return chain
}

// EmployeeCount is the directory size.
func (o *Organization) EmployeeCount() int {
	return len(o.Employees)
}

// ManagerCount is the number of people managers.
func (o *Organization) ManagerCount() int {
	return len(o.GetAllManagers())
}

// FunctionBreakdown counts employees per job function.
func (o *Organization) FunctionBreakdown() map[JobFunction]int {
	breakdown := make(map[JobFunction]int)
	for _, e := range o.Employees {
		breakdown[e.JobFunction]++
	}
	return breakdown
}

// LevelBreakdown counts employees per job level.
func (o *Organization) LevelBreakdown() map[JobLevel]int {
	breakdown := make(map[JobLevel]int)
	for _, e := range o.Employees {
		breakdown[e.JobLevel]++
	}
	return breakdown
}

// BuildRelationships rebuilds direct-report back-links from manager emails
// and infers skip-level managers as the manager's manager where absent.
// Runs once after loading; the directory is read-only afterwards.
func (o *Organization) BuildRelationships() {
	for _, e := range o.Employees {
		e.DirectReports = nil
	}
	for _, e := range o.Employees {
		if e.ManagerEmail == "" {
			continue
		}
		if manager := o.GetEmployee(e.ManagerEmail); manager != nil {
			manager.DirectReports = append(manager.DirectReports, e.Email)
			if !manager.IsManager {
				manager.IsManager = true
			}
		}
	}
	for _, e := range o.Employees {
		sort.Strings(e.DirectReports)
	}
	for _, e := range o.Employees {
		if e.SkipLevelManagerEmail != "" {
			continue
		}
		if skip := o.GetSkipLevelManager(e); skip != nil {
			e.SkipLevelManagerEmail = skip.Email
		}
	}
}
