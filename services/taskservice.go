package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"agencydash/dto"
	"agencydash/model"
	"agencydash/repository"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidAssignee = errors.New("assignee must be an active employee of the task's department")
)

type TaskService struct {
	store *repository.Store
	now   func() time.Time
}

func NewTaskService(store *repository.Store) *TaskService {
	return &TaskService{store: store, now: time.Now}
}

// ownClients returns the IDs of the strategy clients assigned to email.
func (s *TaskService) ownClients(ctx context.Context, session model.Session) (map[string]bool, error) {
	owned := map[string]bool{}
	if session.Dashboard != model.DashboardStrategyEmployee {
		return owned, nil
	}
	clients, err := s.store.StrategyClients.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range clients {
		if c.Deleted || !strings.EqualFold(c.AssignedToEmployee, session.Email) {
			continue
		}
		owned[c.ID] = true
		if c.ClientID != "" {
			owned[c.ClientID] = true
		}
	}
	return owned, nil
}

// Visible lists the tasks the session's dashboard shows.
func (s *TaskService) Visible(ctx context.Context, session model.Session) ([]model.Task, error) {
	tasks, err := s.store.Tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	owned, err := s.ownClients(ctx, session)
	if err != nil {
		return nil, err
	}
	return ScopeTasks(session, tasks, owned), nil
}

// List returns the visible tasks narrowed by the filter chain.
func (s *TaskService) List(ctx context.Context, session model.Session, f TaskFilter) ([]model.Task, error) {
	tasks, err := s.Visible(ctx, session)
	if err != nil {
		return nil, err
	}
	return FilterTasks(tasks, f), nil
}

// Clients lists the master client records, used to name task groups.
func (s *TaskService) Clients(ctx context.Context) ([]model.Client, error) {
	return s.store.Clients.List(ctx)
}

func (s *TaskService) get(ctx context.Context, session model.Session, id string) (*model.Task, map[string]bool, error) {
	task, err := s.store.Tasks.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	owned, err := s.ownClients(ctx, session)
	if err != nil {
		return nil, nil, err
	}
	if !TaskVisible(session, *task, owned) {
		return nil, nil, ErrTaskNotFound
	}
	return task, owned, nil
}

func (s *TaskService) Get(ctx context.Context, session model.Session, id string) (*model.Task, error) {
	task, _, err := s.get(ctx, session, id)
	return task, err
}

// lookupClient finds a master client by document ID or business clientId.
func (s *TaskService) lookupClient(ctx context.Context, clientID string) (*model.Client, error) {
	if clientID == "" {
		return nil, nil
	}
	if c, err := s.store.Clients.Get(ctx, clientID); err == nil {
		return c, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	clients, err := s.store.Clients.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		if clients[i].ClientID == clientID && !clients[i].Deleted {
			return &clients[i], nil
		}
	}
	return nil, nil
}

func (s *TaskService) Create(ctx context.Context, session model.Session, req dto.CreateTaskRequest) (*model.Task, error) {
	if !CanCreateTasks(session.Dashboard) {
		return nil, ErrForbidden
	}

	if session.Dashboard == model.DashboardStrategyEmployee && req.ClientID != "" {
		owned, err := s.ownClients(ctx, session)
		if err != nil {
			return nil, err
		}
		if !owned[req.ClientID] {
			return nil, fmt.Errorf("%w: client is not assigned to you", ErrForbidden)
		}
	}

	now := s.now()
	task := &model.Task{
		TaskName:    strings.TrimSpace(req.TaskName),
		Description: strings.TrimSpace(req.Description),
		ClientID:    req.ClientID,
		ClientName:  strings.TrimSpace(req.ClientName),
		Department:  strings.TrimSpace(req.Department),
		Status:      model.StatusPending,
		PostDate:    req.PostDate,
		Deadline:    req.Deadline,
		AssignedTo:  strings.ToLower(strings.TrimSpace(req.AssignedTo)),
		CreatedBy:   session.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	client, err := s.lookupClient(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if client != nil {
		task.ClientName = client.ClientName
	}
	if task.AssignedTo != "" {
		if err := s.checkAssignee(ctx, task.AssignedTo, task.Department); err != nil {
			return nil, err
		}
	}

	if err := s.store.Tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Edit(ctx context.Context, session model.Session, id string, req dto.UpdateTaskRequest) (*model.Task, error) {
	if !CanCreateTasks(session.Dashboard) {
		return nil, ErrForbidden
	}
	if _, _, err := s.get(ctx, session, id); err != nil {
		return nil, err
	}

	var client *model.Client
	if req.ClientID != nil {
		var err error
		if client, err = s.lookupClient(ctx, *req.ClientID); err != nil {
			return nil, err
		}
	}

	return s.update(ctx, id, func(t *model.Task) error {
		if req.TaskName != nil {
			t.TaskName = strings.TrimSpace(*req.TaskName)
		}
		if req.Description != nil {
			t.Description = strings.TrimSpace(*req.Description)
		}
		if req.ClientName != nil {
			t.ClientName = strings.TrimSpace(*req.ClientName)
		}
		if req.ClientID != nil {
			t.ClientID = *req.ClientID
			if client != nil {
				t.ClientName = client.ClientName
			}
		}
		if req.PostDate != nil {
			t.PostDate = *req.PostDate
		}
		if req.Deadline != nil {
			t.Deadline = *req.Deadline
		}
		return nil
	})
}

// SetStatus moves a task to status if the session's dashboard may.
func (s *TaskService) SetStatus(ctx context.Context, session model.Session, id, status string) (*model.Task, error) {
	canonical, ok := model.CanonicalStatus(status)
	if !ok || !CanSetStatus(session.Dashboard, canonical) {
		return nil, ErrForbiddenStatus
	}
	if _, _, err := s.get(ctx, session, id); err != nil {
		return nil, err
	}
	return s.update(ctx, id, func(t *model.Task) error {
		t.Status = canonical
		return nil
	})
}

// Assign routes a task to a department and/or employee. Production and the
// super admin may do both; department heads may only pick an assignee
// inside their own department.
func (s *TaskService) Assign(ctx context.Context, session model.Session, id string, req dto.AssignTaskRequest) (*model.Task, error) {
	task, _, err := s.get(ctx, session, id)
	if err != nil {
		return nil, err
	}

	department := strings.TrimSpace(req.Department)
	assignee := strings.ToLower(strings.TrimSpace(req.AssignedTo))

	switch session.Dashboard {
	case model.DashboardSuperAdmin, model.DashboardProductionIncharge:
		if department == "" && assignee == "" {
			return nil, fmt.Errorf("%w: department or assignee required", ErrInvalidAssignee)
		}
	default:
		own := session.Dashboard.Department()
		if !session.IsHead() || own == "" {
			return nil, ErrForbidden
		}
		if !MatchesDepartment(task.Department, own) {
			return nil, fmt.Errorf("%w: task belongs to another department", ErrForbidden)
		}
		if department != "" && !MatchesDepartment(department, own) {
			return nil, fmt.Errorf("%w: cannot move tasks to another department", ErrForbidden)
		}
		if assignee == "" {
			return nil, fmt.Errorf("%w: assignee required", ErrInvalidAssignee)
		}
		department = ""
	}

	target := task.Department
	if department != "" {
		target = department
	}
	if assignee != "" {
		if err := s.checkAssignee(ctx, assignee, target); err != nil {
			return nil, err
		}
	}

	return s.update(ctx, id, func(t *model.Task) error {
		if department != "" {
			t.Department = department
			if !t.IsDone() {
				t.Status = model.StatusAssignedToDepartment
			}
		}
		if assignee != "" {
			t.AssignedTo = assignee
		}
		return nil
	})
}

func (s *TaskService) checkAssignee(ctx context.Context, email, department string) error {
	emp, err := s.store.Employees.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrInvalidAssignee
	}
	if err != nil {
		return err
	}
	if emp.IsInactive() {
		return ErrInvalidAssignee
	}
	if department != "" && !MatchesDepartment(emp.Department, department) {
		return ErrInvalidAssignee
	}
	return nil
}

// Delete flags the task as deleted; records are never removed.
func (s *TaskService) Delete(ctx context.Context, session model.Session, id string) error {
	if session.Dashboard != model.DashboardSuperAdmin {
		return ErrForbidden
	}
	if _, _, err := s.get(ctx, session, id); err != nil {
		return err
	}
	_, err := s.update(ctx, id, func(t *model.Task) error {
		t.Deleted = true
		return nil
	})
	return err
}

func (s *TaskService) update(ctx context.Context, id string, mutate func(*model.Task) error) (*model.Task, error) {
	task, err := s.store.Tasks.Update(ctx, id, func(t *model.Task) error {
		if err := mutate(t); err != nil {
			return err
		}
		t.UpdatedAt = s.now()
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrTaskNotFound
	}
	return task, err
}
