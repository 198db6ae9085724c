package hris

import (
	"strings"

	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"
)

// Level and function tables are ordered slices rather than maps: partial
// matching takes the first entry whose key is a substring, so earlier
// entries win (e.g. "senior" before "senior manager" means a bare
// "Senior ..." grade resolves to Senior IC unless it matched exactly).

type levelEntry struct {
	key   string
	level model.JobLevel
}

var levelTable = []levelEntry{
	{"ic", model.LevelIC},
	{"individual contributor", model.LevelIC},
	{"associate", model.LevelIC},
	{"junior", model.LevelIC},
	{"entry", model.LevelIC},
	{"senior", model.LevelSeniorIC},
	{"senior ic", model.LevelSeniorIC},
	{"staff", model.LevelSeniorIC},
	{"lead", model.LevelLead},
	{"tech lead", model.LevelLead},
	{"team lead", model.LevelLead},
	{"principal", model.LevelLead},
	{"manager", model.LevelManager},
	{"people manager", model.LevelManager},
	{"senior manager", model.LevelSeniorManager},
	{"director", model.LevelDirector},
	{"senior director", model.LevelSeniorDirector},
	{"vp", model.LevelVP},
	{"vice president", model.LevelVP},
	{"svp", model.LevelSVP},
	{"senior vice president", model.LevelSVP},
	{"evp", model.LevelSVP},
	{"c-level", model.LevelCLevel},
	{"ceo", model.LevelCLevel},
	{"cto", model.LevelCLevel},
	{"cfo", model.LevelCLevel},
	{"coo", model.LevelCLevel},
	{"cio", model.LevelCLevel},
	{"cpo", model.LevelCLevel},
	{"chief", model.LevelCLevel},
}

type functionEntry struct {
	key      string
	function model.JobFunction
}

var functionTable = []functionEntry{
	{"engineering", model.FunctionEngineering},
	{"software", model.FunctionEngineering},
	{"development", model.FunctionEngineering},
	{"tech", model.FunctionEngineering},
	{"technology", model.FunctionEngineering},
	{"product", model.FunctionProduct},
	{"product management", model.FunctionProduct},
	{"design", model.FunctionDesign},
	{"ux", model.FunctionDesign},
	{"ui", model.FunctionDesign},
	{"data", model.FunctionDataScience},
	{"data science", model.FunctionDataScience},
	{"analytics", model.FunctionDataScience},
	{"ml", model.FunctionDataScience},
	{"machine learning", model.FunctionDataScience},
	{"sales", model.FunctionSales},
	{"business development", model.FunctionSales},
	{"account", model.FunctionSales},
	{"marketing", model.FunctionMarketing},
	{"growth", model.FunctionMarketing},
	{"customer success", model.FunctionCustomerSuccess},
	{"cs", model.FunctionCustomerSuccess},
	{"support", model.FunctionCustomerSuccess},
	{"operations", model.FunctionOperations},
	{"ops", model.FunctionOperations},
	{"hr", model.FunctionHR},
	{"human resources", model.FunctionHR},
	{"people", model.FunctionHR},
	{"talent", model.FunctionHR},
	{"recruiting", model.FunctionHR},
	{"finance", model.FunctionFinance},
	{"accounting", model.FunctionFinance},
	{"legal", model.FunctionLegal},
	{"compliance", model.FunctionLegal},
	{"it", model.FunctionIT},
	{"infrastructure", model.FunctionIT},
	{"security", model.FunctionIT},
	{"executive", model.FunctionExecutive},
	{"admin", model.FunctionAdmin},
	{"administrative", model.FunctionAdmin},
}

// ParseJobLevel resolves a level string, falling back to the job title.
// Resolution order: exact match on the level, substring match on the
// level, substring match on the title.
func ParseJobLevel(levelStr, jobTitle string) model.JobLevel {
	if levelStr != "" {
		lower := strings.ToLower(strings.TrimSpace(levelStr))
		for _, e := range levelTable {
			if e.key == lower {
				return e.level
			}
		}
		for _, e := range levelTable {
			if strings.Contains(lower, e.key) {
				return e.level
			}
		}
	}

	if jobTitle != "" {
		lower := strings.ToLower(jobTitle)
		for _, e := range levelTable {
			if strings.Contains(lower, e.key) {
				return e.level
			}
		}
	}

	return model.LevelUnknown
}

// ParseJobFunction resolves a function or department string, falling back
// to the job title. Same resolution order as ParseJobLevel.
func ParseJobFunction(functionStr, jobTitle string) model.JobFunction {
	if functionStr != "" {
		lower := strings.ToLower(strings.TrimSpace(functionStr))
		for _, e := range functionTable {
			if e.key == lower {
				return e.function
			}
		}
		for _, e := range functionTable {
			if strings.Contains(lower, e.key) {
				return e.function
			}
		}
	}

	if jobTitle != "" {
		lower := strings.ToLower(jobTitle)
		for _, e := range functionTable {
			if strings.Contains(lower, e.key) {
				return e.function
			}
		}
	}

	return model.FunctionOther
}
