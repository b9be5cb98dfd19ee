package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"agencydash/dto"
	"agencydash/model"
	"agencydash/repository"
)

var (
	ErrClientNotFound = errors.New("client not found")
	ErrClientExists   = errors.New("a client with this clientId already exists")
	ErrStageBackwards = errors.New("stage can only move forward")
	ErrUnknownStage   = errors.New("unknown stage")
	ErrNotStrategy    = errors.New("employee is not an active strategy employee")
)

type ClientService struct {
	store *repository.Store
	now   func() time.Time
}

func NewClientService(store *repository.Store) *ClientService {
	return &ClientService{store: store, now: time.Now}
}

func (s *ClientService) List(ctx context.Context, f ClientFilter) ([]model.Client, error) {
	clients, err := s.store.Clients.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterClients(clients, f), nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*model.Client, error) {
	return getClient(ctx, s.store.Clients, id)
}

func getClient(ctx context.Context, repo repository.ClientRepository, id string) (*model.Client, error) {
	client, err := repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}
	if client.Deleted {
		return nil, ErrClientNotFound
	}
	return client, nil
}

func (s *ClientService) Create(ctx context.Context, req dto.CreateClientRequest) (*model.Client, error) {
	clientID := strings.TrimSpace(req.ClientID)
	if clientID == "" {
		clientID = "CL-" + strings.ToUpper(uuid.New().String()[:8])
	} else {
		existing, err := s.store.Clients.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, c := range existing {
			if !c.Deleted && strings.EqualFold(c.ClientID, clientID) {
				return nil, ErrClientExists
			}
		}
	}

	stage := model.StageOnboarding
	if req.Stage != "" {
		canonical, ok := model.CanonicalStage(req.Stage)
		if !ok {
			return nil, ErrUnknownStage
		}
		stage = canonical
	}

	now := s.now()
	client := &model.Client{
		ClientID:      clientID,
		ClientName:    strings.TrimSpace(req.ClientName),
		ContactPerson: strings.TrimSpace(req.ContactPerson),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         strings.TrimSpace(req.Phone),
		Address:       strings.TrimSpace(req.Address),
		Stage:         stage,
		Status:        model.ClientActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.Clients.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Update edits the master record and mirrors the change onto the strategy
// copies. The super admin may move the stage in either direction.
func (s *ClientService) Update(ctx context.Context, id string, req dto.UpdateClientRequest) (*model.Client, error) {
	var stage string
	if req.Stage != nil {
		canonical, ok := model.CanonicalStage(*req.Stage)
		if !ok {
			return nil, ErrUnknownStage
		}
		stage = canonical
	}

	return s.updateEverywhere(ctx, id, func(c *model.Client) error {
		if req.ClientName != nil {
			c.ClientName = strings.TrimSpace(*req.ClientName)
		}
		if req.ContactPerson != nil {
			c.ContactPerson = strings.TrimSpace(*req.ContactPerson)
		}
		if req.Email != nil {
			c.Email = strings.ToLower(strings.TrimSpace(*req.Email))
		}
		if req.Phone != nil {
			c.Phone = strings.TrimSpace(*req.Phone)
		}
		if req.Address != nil {
			c.Address = strings.TrimSpace(*req.Address)
		}
		if req.AssignedToEmployee != nil {
			c.AssignedToEmployee = strings.ToLower(strings.TrimSpace(*req.AssignedToEmployee))
		}
		if stage != "" {
			c.Stage = stage
		}
		if req.Status != nil {
			c.Status = *req.Status
		}
		return nil
	})
}

// Delete flags the client and its strategy copies as deleted.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	_, err := s.updateEverywhere(ctx, id, func(c *model.Client) error {
		c.Deleted = true
		return nil
	})
	return err
}

// updateEverywhere applies mutate to the master record, then to whichever
// strategy copies exist.
func (s *ClientService) updateEverywhere(ctx context.Context, id string, mutate func(*model.Client) error) (*model.Client, error) {
	if _, err := getClient(ctx, s.store.Clients, id); err != nil {
		return nil, err
	}
	now := s.now()
	stamp := func(c *model.Client) error {
		if err := mutate(c); err != nil {
			return err
		}
		c.UpdatedAt = now
		return nil
	}

	client, err := s.store.Clients.Update(ctx, id, stamp)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}
	for _, repo := range []repository.ClientRepository{s.store.StrategyHeadClients, s.store.StrategyClients} {
		if _, err := repo.Update(ctx, id, stamp); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("mirror client %s: %w", id, err)
		}
	}
	return client, nil
}

// Forward hands a client to the strategy head and moves it to the
// strategy stage unless it is already further along.
func (s *ClientService) Forward(ctx context.Context, id string) (*model.Client, error) {
	client, err := s.updateEverywhere(ctx, id, func(c *model.Client) error {
		if model.StageIndex(c.Stage) < model.StageIndex(model.StageStrategy) {
			c.Stage = model.StageStrategy
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	headCopy := *client
	if err := s.store.StrategyHeadClients.Create(ctx, &headCopy); err != nil {
		return nil, fmt.Errorf("forward client %s: %w", id, err)
	}
	return client, nil
}

func (s *ClientService) HeadClients(ctx context.Context, f ClientFilter) ([]model.Client, error) {
	clients, err := s.store.StrategyHeadClients.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterClients(clients, f), nil
}

// AssignToEmployee gives a forwarded client to a strategy employee.
func (s *ClientService) AssignToEmployee(ctx context.Context, id, email string) (*model.Client, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := getClient(ctx, s.store.StrategyHeadClients, id); err != nil {
		return nil, err
	}

	emp, err := s.store.Employees.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotStrategy
	}
	if err != nil {
		return nil, err
	}
	if emp.IsInactive() || !MatchesDepartment(emp.Department, "strategy") {
		return nil, ErrNotStrategy
	}

	client, err := s.updateEverywhere(ctx, id, func(c *model.Client) error {
		c.AssignedToEmployee = email
		return nil
	})
	if err != nil {
		return nil, err
	}

	assigned := *client
	if err := s.store.StrategyClients.Create(ctx, &assigned); err != nil {
		return nil, fmt.Errorf("assign client %s: %w", id, err)
	}
	return &assigned, nil
}

// EmployeeClients lists the strategy clients assigned to the session.
func (s *ClientService) EmployeeClients(ctx context.Context, session model.Session, f ClientFilter) ([]model.Client, error) {
	clients, err := s.store.StrategyClients.List(ctx)
	if err != nil {
		return nil, err
	}
	f.AssignedTo = session.Email
	return FilterClients(clients, f), nil
}

// AdvanceStage moves one of the session's clients to a later stage.
func (s *ClientService) AdvanceStage(ctx context.Context, session model.Session, id, stage string) (*model.Client, error) {
	canonical, ok := model.CanonicalStage(stage)
	if !ok {
		return nil, ErrUnknownStage
	}

	current, err := getClient(ctx, s.store.StrategyClients, id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(current.AssignedToEmployee, session.Email) {
		return nil, ErrClientNotFound
	}
	if model.StageIndex(canonical) < model.StageIndex(current.Stage) {
		return nil, ErrStageBackwards
	}

	return s.updateEverywhere(ctx, id, func(c *model.Client) error {
		c.Stage = canonical
		return nil
	})
}

// StageCounts counts clients per stage. Unknown labels are counted under
// their own text after the known stages.
func StageCounts(clients []model.Client) []dto.StageCount {
	counts := make([]dto.StageCount, len(model.Stages))
	for i, stage := range model.Stages {
		counts[i].Stage = stage
	}
	other := map[string]int{}
	var otherOrder []string

	for _, c := range clients {
		if c.Deleted {
			continue
		}
		if i := model.StageIndex(c.Stage); i >= 0 {
			counts[i].Count++
			continue
		}
		label := strings.TrimSpace(c.Stage)
		if label == "" {
			label = "Unstaged"
		}
		if _, seen := other[label]; !seen {
			otherOrder = append(otherOrder, label)
		}
		other[label]++
	}
	for _, label := range otherOrder {
		counts = append(counts, dto.StageCount{Stage: label, Count: other[label]})
	}
	return counts
}
