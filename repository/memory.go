package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"agencydash/model"
)

// NewMemoryStore returns a Store kept in process memory. It backs the
// handler tests and STORE_DRIVER=memory local runs.
func NewMemoryStore() *Store {
	return &Store{
		Employees:           &memoryEmployees{MemoryCollection: NewMemoryCollection[model.Employee]()},
		Clients:             NewMemoryCollection[model.Client](),
		StrategyHeadClients: NewMemoryCollection[model.Client](),
		StrategyClients:     NewMemoryCollection[model.Client](),
		Tasks:               NewMemoryCollection[model.Task](),
		LoginGuard:          NewMemoryLoginGuard(),
	}
}

type MemoryCollection[T any, P docPtr[T]] struct {
	mu      sync.RWMutex
	records map[string]T
	order   []string
}

func NewMemoryCollection[T any, P docPtr[T]]() *MemoryCollection[T, P] {
	return &MemoryCollection[T, P]{records: map[string]T{}}
}

func (c *MemoryCollection[T, P]) List(_ context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	records := make([]T, 0, len(c.order))
	for _, id := range c.order {
		records = append(records, c.records[id])
	}
	return records, nil
}

func (c *MemoryCollection[T, P]) Get(_ context.Context, id string) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (c *MemoryCollection[T, P]) Create(_ context.Context, rec *T) error {
	p := P(rec)
	if p.DocID() == "" {
		p.SetDocID(uuid.New().String())
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.records[p.DocID()]; !exists {
		c.order = append(c.order, p.DocID())
	}
	c.records[p.DocID()] = *rec
	return nil
}

func (c *MemoryCollection[T, P]) Update(_ context.Context, id string, mutate func(*T) error) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := mutate(&rec); err != nil {
		return nil, err
	}
	P(&rec).SetDocID(id)
	c.records[id] = rec
	return &rec, nil
}

type memoryEmployees struct {
	*MemoryCollection[model.Employee, *model.Employee]
}

func (e *memoryEmployees) FindByEmail(ctx context.Context, email string) (*model.Employee, error) {
	employees, _ := e.List(ctx)
	email = strings.ToLower(strings.TrimSpace(email))
	for i := range employees {
		if employees[i].Email == email {
			return &employees[i], nil
		}
	}
	return nil, ErrNotFound
}

type MemoryLoginGuard struct {
	mu       sync.Mutex
	failures map[string][]model.LoginFailure
	blocks   map[string]model.LoginBlock
}

func NewMemoryLoginGuard() *MemoryLoginGuard {
	return &MemoryLoginGuard{
		failures: map[string][]model.LoginFailure{},
		blocks:   map[string]model.LoginBlock{},
	}
}

func (g *MemoryLoginGuard) RecordFailure(_ context.Context, failure model.LoginFailure) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failures[failure.Email] = append(g.failures[failure.Email], failure)
	return nil
}

func (g *MemoryLoginGuard) CountFailures(_ context.Context, email string, now time.Time) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	count := 0
	for _, f := range g.failures[email] {
		if now.Before(f.ExpiresAt) {
			count++
		}
	}
	return count, nil
}

func (g *MemoryLoginGuard) Block(_ context.Context, block model.LoginBlock) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.blocks[block.Email] = block
	return nil
}

func (g *MemoryLoginGuard) ActiveBlock(_ context.Context, email string, now time.Time) (*model.LoginBlock, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	block, ok := g.blocks[email]
	if !ok {
		return nil, nil
	}
	if now.Before(block.ExpiresAt) {
		return &block, nil
	}
	delete(g.blocks, email)
	return nil, nil
}

func (g *MemoryLoginGuard) Clear(_ context.Context, email string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.failures, email)
	return nil
}
