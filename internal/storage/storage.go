package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/staffly-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrInvalidID indicates an identifier the backend could never have issued.
var ErrInvalidID = errors.New("invalid id format")

// UserStore persists accounts. Email is unique.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	// ListUsers returns users whose role is one of roles, or every user when
	// roles is empty.
	ListUsers(ctx context.Context, roles ...models.Role) ([]models.User, error)
	SetRole(ctx context.Context, id string, role models.Role) (models.UpdateResult, error)
	SetVerified(ctx context.Context, id string, verified bool) (models.UpdateResult, error)
	SetWorkStatus(ctx context.Context, id string, status models.WorkStatus) (models.UpdateResult, error)
}

// PayrollFilter narrows ListPayrolls. Empty fields match everything.
type PayrollFilter struct {
	EmployeeEmail string
	PaymentStatus string
}

// PaymentUpdate overwrites the payment fields of a payroll.
type PaymentUpdate struct {
	PaymentDate   string
	PaymentStatus string
	TransactionID string
}

// PayrollStore persists payrolls. The period key is unique.
type PayrollStore interface {
	CreatePayroll(ctx context.Context, p models.Payroll) (models.Payroll, error)
	PayrollExists(ctx context.Context, key models.PeriodKey) (bool, error)
	ListPayrolls(ctx context.Context, filter PayrollFilter) ([]models.Payroll, error)
	UpdatePayment(ctx context.Context, id string, update PaymentUpdate) (models.UpdateResult, error)
}

// TaskStore persists task logs.
type TaskStore interface {
	CreateTask(ctx context.Context, t models.Task) (models.Task, error)
	FindTask(ctx context.Context, id string) (models.Task, error)
	// ListTasks returns the tasks of userEmail, or all tasks when it is empty.
	ListTasks(ctx context.Context, userEmail string) ([]models.Task, error)
	UpdateTask(ctx context.Context, id string, changes models.TaskChanges) (models.UpdateResult, error)
	DeleteTask(ctx context.Context, id string) (models.DeleteResult, error)
}

// Store bundles the collections of one backend.
type Store interface {
	Users() UserStore
	Payrolls() PayrollStore
	Tasks() TaskStore
	// Migrate creates tables or indexes, including the unique constraints the
	// services rely on. It is idempotent.
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
