package services

import (
	"errors"
	"strings"

	"agencydash/model"
)

var ErrUnknownDepartment = errors.New("no dashboard for this department")

// departmentDashboards is checked in order; the first keyword contained in
// the department wins.
var departmentDashboards = []struct {
	keyword   string
	dashboard model.Dashboard
}{
	{"graphic", model.DashboardGraphics},
	{"video", model.DashboardVideo},
	{"social", model.DashboardSocialMedia},
	{"production", model.DashboardProductionIncharge},
}

// ResolveDashboard picks the dashboard an employee lands on after login.
// Email overrides come first, then the department keyword; strategy
// employees split on the head role.
func ResolveDashboard(emp *model.Employee, overrides map[string]model.Dashboard) (model.Dashboard, error) {
	if d, ok := overrides[strings.ToLower(strings.TrimSpace(emp.Email))]; ok {
		return d, nil
	}

	department := strings.ToLower(strings.TrimSpace(emp.Department))
	if department == "" {
		return "", ErrUnknownDepartment
	}
	if strings.Contains(department, "strategy") {
		if emp.IsHead() {
			return model.DashboardStrategyHead, nil
		}
		return model.DashboardStrategyEmployee, nil
	}
	for _, dd := range departmentDashboards {
		if strings.Contains(department, dd.keyword) {
			return dd.dashboard, nil
		}
	}
	return "", ErrUnknownDepartment
}

// MatchesDepartment compares free-text departments the way the login gate
// does: the lower-cased department must contain the keyword.
func MatchesDepartment(department, keyword string) bool {
	department = strings.ToLower(strings.TrimSpace(department))
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return true
	}
	return strings.Contains(department, keyword)
}
