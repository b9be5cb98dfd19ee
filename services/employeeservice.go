package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"agencydash/dto"
	"agencydash/model"
	"agencydash/repository"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailTaken       = errors.New("email is already registered")
)

type EmployeeService struct {
	employees repository.EmployeeRepository
	now       func() time.Time
}

func NewEmployeeService(employees repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employees: employees, now: time.Now}
}

func (s *EmployeeService) List(ctx context.Context, q dto.EmployeeQuery) ([]model.Employee, error) {
	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.Employee, 0, len(employees))
	for _, e := range employees {
		if q.Department != "" && !MatchesDepartment(e.Department, q.Department) {
			continue
		}
		if q.Status != "" {
			inactive := strings.EqualFold(q.Status, model.EmployeeInactive)
			if e.IsInactive() != inactive {
				continue
			}
		}
		if q.Search != "" && !containsFold(q.Search, e.EmployeeName, e.Email, e.Department) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].EmployeeName) < strings.ToLower(out[j].EmployeeName)
	})
	return out, nil
}

// Assignable lists active employees of a department for assignment pickers.
func (s *EmployeeService) Assignable(ctx context.Context, department string) ([]model.Employee, error) {
	return s.List(ctx, dto.EmployeeQuery{Department: department, Status: model.EmployeeActive})
}

func (s *EmployeeService) Create(ctx context.Context, req dto.CreateEmployeeRequest) (*model.Employee, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	_, err := s.employees.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := model.RoleEmployee
	if req.Role == model.RoleHead {
		role = model.RoleHead
	}

	now := s.now()
	emp := &model.Employee{
		Email:        email,
		Password:     hashed,
		EmployeeName: strings.TrimSpace(req.EmployeeName),
		Department:   strings.TrimSpace(req.Department),
		Role:         role,
		Status:       model.EmployeeActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.employees.Create(ctx, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *EmployeeService) Update(ctx context.Context, id string, req dto.UpdateEmployeeRequest) (*model.Employee, error) {
	var hashed string
	if req.Password != nil {
		var err error
		if hashed, err = HashPassword(*req.Password); err != nil {
			return nil, err
		}
	}

	emp, err := s.employees.Update(ctx, id, func(e *model.Employee) error {
		if req.EmployeeName != nil {
			e.EmployeeName = strings.TrimSpace(*req.EmployeeName)
		}
		if req.Department != nil {
			e.Department = strings.TrimSpace(*req.Department)
		}
		if req.Role != nil {
			e.Role = *req.Role
		}
		if req.Status != nil {
			e.Status = *req.Status
		}
		if hashed != "" {
			e.Password = hashed
		}
		e.UpdatedAt = s.now()
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrEmployeeNotFound
	}
	return emp, err
}

// Deactivate disables login for the employee; records are kept.
func (s *EmployeeService) Deactivate(ctx context.Context, id string) error {
	status := model.EmployeeInactive
	_, err := s.Update(ctx, id, dto.UpdateEmployeeRequest{Status: &status})
	return err
}

// RehashPasswords replaces every plaintext password with its bcrypt hash
// and returns how many records changed.
func (s *EmployeeService) RehashPasswords(ctx context.Context) (int, error) {
	employees, err := s.employees.List(ctx)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, e := range employees {
		if e.Password == "" || IsPasswordHashed(e.Password) {
			continue
		}
		hashed, err := HashPassword(e.Password)
		if err != nil {
			return changed, err
		}
		_, err = s.employees.Update(ctx, e.ID, func(rec *model.Employee) error {
			// Skip records changed since the listing.
			if IsPasswordHashed(rec.Password) {
				return nil
			}
			rec.Password = hashed
			rec.UpdatedAt = s.now()
			return nil
		})
		if err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}
