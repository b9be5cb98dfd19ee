package services

import (
	"context"
	"time"

	"agencydash/dto"
	"agencydash/model"
)

type DashboardService struct {
	tasks   *TaskService
	clients *ClientService
	now     func() time.Time
}

func NewDashboardService(tasks *TaskService, clients *ClientService) *DashboardService {
	return &DashboardService{tasks: tasks, clients: clients, now: time.Now}
}

// Summary builds the stat cards and client-grouped task table for the
// session's dashboard. Stats cover every visible task; the table honours
// the filters and is paginated by client group.
func (s *DashboardService) Summary(ctx context.Context, session model.Session, q dto.TaskQuery) (*dto.DashboardResponse, error) {
	visible, err := s.tasks.Visible(ctx, session)
	if err != nil {
		return nil, err
	}
	clients, err := s.tasks.Clients(ctx)
	if err != nil {
		return nil, err
	}

	filtered := FilterTasks(visible, TaskFilterFromQuery(q))
	groups, page := Paginate(GroupTasksByClient(filtered, clients), q.Page, q.PageSize)

	stages, err := s.stageCounts(ctx, session, clients)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		Session:    session,
		Redirect:   session.Dashboard.Path(),
		Stats:      ComputeTaskStats(visible, s.now()),
		Stages:     stages,
		Groups:     groups,
		Pagination: page,
	}, nil
}

func (s *DashboardService) stageCounts(ctx context.Context, session model.Session, master []model.Client) ([]dto.StageCount, error) {
	switch session.Dashboard {
	case model.DashboardSuperAdmin, model.DashboardProductionIncharge:
		return StageCounts(master), nil
	case model.DashboardStrategyHead:
		clients, err := s.clients.HeadClients(ctx, ClientFilter{})
		if err != nil {
			return nil, err
		}
		return StageCounts(clients), nil
	case model.DashboardStrategyEmployee:
		clients, err := s.clients.EmployeeClients(ctx, session, ClientFilter{})
		if err != nil {
			return nil, err
		}
		return StageCounts(clients), nil
	}
	return nil, nil
}

// ComputeTaskStats fills the stat cards. A task is overdue when its
// deadline is before today and it has not reached a terminal status.
func ComputeTaskStats(tasks []model.Task, now time.Time) dto.TaskStats {
	stats := dto.TaskStats{ByStatus: map[string]int{}}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	month := now.Format("2006-01")

	for _, t := range tasks {
		if t.Deleted {
			continue
		}
		stats.Total++

		status, ok := model.CanonicalStatus(t.Status)
		if !ok {
			status = "other"
		}
		stats.ByStatus[status]++

		if t.IsDone() {
			if MatchesMonth(month, t.PostDate, t.Deadline) {
				stats.CompletedThisMonth++
			}
			continue
		}
		if deadline, ok := model.ParseDate(t.Deadline); ok && deadline.Before(today) {
			stats.Overdue++
		}
	}
	return stats
}
