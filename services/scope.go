package services

import (
	"errors"
	"strings"

	"agencydash/model"
)

var (
	ErrForbidden       = errors.New("not allowed for this dashboard")
	ErrForbiddenStatus = errors.New("status not allowed for this dashboard")
)

// taskCreators may create and edit tasks.
var taskCreators = map[model.Dashboard]bool{
	model.DashboardSuperAdmin:         true,
	model.DashboardProductionIncharge: true,
	model.DashboardStrategyHead:       true,
	model.DashboardStrategyEmployee:   true,
}

// statusPermissions lists the statuses each dashboard may set. The super
// admin may set any status.
var statusPermissions = map[model.Dashboard][]string{
	model.DashboardProductionIncharge: {model.StatusPending, model.StatusApproved, model.StatusRejected, model.StatusAssignedToDepartment},
	model.DashboardStrategyHead:       {model.StatusPending},
	model.DashboardStrategyEmployee:   {model.StatusPending},
	model.DashboardGraphics:           {model.StatusInProgress, model.StatusCompleted},
	model.DashboardVideo:              {model.StatusInProgress, model.StatusCompleted},
	model.DashboardSocialMedia:        {model.StatusInProgress, model.StatusPosted},
}

func CanCreateTasks(d model.Dashboard) bool {
	return taskCreators[d]
}

// CanSetStatus reports whether dashboard d may move a task to status.
func CanSetStatus(d model.Dashboard, status string) bool {
	if d == model.DashboardSuperAdmin {
		return true
	}
	for _, allowed := range statusPermissions[d] {
		if allowed == status {
			return true
		}
	}
	return false
}

// TaskVisible reports whether the session's dashboard shows the task.
// ownClients holds the IDs of the clients assigned to a strategy employee.
func TaskVisible(s model.Session, t model.Task, ownClients map[string]bool) bool {
	if t.Deleted {
		return false
	}
	switch s.Dashboard {
	case model.DashboardSuperAdmin, model.DashboardProductionIncharge, model.DashboardStrategyHead:
		return true
	case model.DashboardStrategyEmployee:
		return strings.EqualFold(t.CreatedBy, s.Email) || (t.ClientID != "" && ownClients[t.ClientID])
	case model.DashboardGraphics, model.DashboardVideo, model.DashboardSocialMedia:
		if !MatchesDepartment(t.Department, s.Dashboard.Department()) {
			return false
		}
		return s.IsHead() || strings.EqualFold(t.AssignedTo, s.Email)
	}
	return false
}

// ScopeTasks keeps the tasks visible to the session.
func ScopeTasks(s model.Session, tasks []model.Task, ownClients map[string]bool) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if TaskVisible(s, t, ownClients) {
			out = append(out, t)
		}
	}
	return out
}
