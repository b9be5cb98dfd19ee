package repository

import (
	"context"
	"errors"
	"time"

	"agencydash/model"
)

// Firestore collection names.
const (
	CollectionTasks               = "tasks"
	CollectionClients             = "clients"
	CollectionEmployees           = "employees"
	CollectionStrategyHeadClients = "strategyHeadClients"
	CollectionStrategyClients     = "strategyClients"
	CollectionLoginFailures       = "loginFailures"
	CollectionLoginBlocks         = "loginBlocks"
)

var ErrNotFound = errors.New("record not found")

// Document is a record addressable by its synthetic ID.
type Document interface {
	DocID() string
	SetDocID(id string)
}

type docPtr[T any] interface {
	*T
	Document
}

// Collection is a loosely typed top-level collection of records.
type Collection[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	// Create stores rec under its ID, generating one when empty.
	Create(ctx context.Context, rec *T) error
	// Update reads the record, applies mutate and writes it back.
	Update(ctx context.Context, id string, mutate func(*T) error) (*T, error)
}

type EmployeeRepository interface {
	Collection[model.Employee]
	FindByEmail(ctx context.Context, email string) (*model.Employee, error)
}

type ClientRepository = Collection[model.Client]

type TaskRepository = Collection[model.Task]

// LoginGuardRepository tracks rejected sign-ins and lockouts per email.
type LoginGuardRepository interface {
	RecordFailure(ctx context.Context, failure model.LoginFailure) error
	CountFailures(ctx context.Context, email string, now time.Time) (int, error)
	Block(ctx context.Context, block model.LoginBlock) error
	// ActiveBlock returns the current block for email, or nil when the
	// email may sign in. Expired blocks are removed.
	ActiveBlock(ctx context.Context, email string, now time.Time) (*model.LoginBlock, error)
	Clear(ctx context.Context, email string) error
}

// Store groups every collection the dashboards read and write.
type Store struct {
	Employees           EmployeeRepository
	Clients             ClientRepository
	StrategyHeadClients ClientRepository
	StrategyClients     ClientRepository
	Tasks               TaskRepository
	LoginGuard          LoginGuardRepository
}
