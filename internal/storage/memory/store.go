package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/hongminglow/staffly-be/internal/ids"
	"github.com/hongminglow/staffly-be/internal/models"
	"github.com/hongminglow/staffly-be/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps every collection in process memory. Each collection is guarded
// by the store mutex so check-then-insert sequences are atomic.
type Store struct {
	mu       sync.RWMutex
	users    []models.User
	payrolls []models.Payroll
	tasks    []models.Task
	now      func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{now: time.Now}
}

func (s *Store) Users() storage.UserStore       { return userStore{s} }
func (s *Store) Payrolls() storage.PayrollStore { return payrollStore{s} }
func (s *Store) Tasks() storage.TaskStore       { return taskStore{s} }

func (s *Store) Migrate(context.Context) error { return nil }
func (s *Store) Ping(context.Context) error    { return nil }
func (s *Store) Close(context.Context) error   { return nil }

func checkID(id string) error {
	if !ids.Valid(id) {
		return storage.ErrInvalidID
	}
	return nil
}

type userStore struct{ s *Store }

func (u userStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, existing := range u.s.users {
		if existing.Email == user.Email {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	user.ID = ids.New()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = u.s.now().UTC()
	}
	u.s.users = append(u.s.users, user)
	return user, nil
}

func (u userStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	for _, user := range u.s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (u userStore) FindByID(_ context.Context, id string) (models.User, error) {
	if err := checkID(id); err != nil {
		return models.User{}, err
	}
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	for _, user := range u.s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (u userStore) ListUsers(_ context.Context, roles ...models.Role) ([]models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	out := make([]models.User, 0, len(u.s.users))
	for _, user := range u.s.users {
		if len(roles) == 0 || slices.Contains(roles, user.Role) {
			out = append(out, user)
		}
	}
	return out, nil
}

func (u userStore) SetRole(_ context.Context, id string, role models.Role) (models.UpdateResult, error) {
	return u.update(id, func(user *models.User) bool {
		changed := user.Role != role
		user.Role = role
		return changed
	})
}

func (u userStore) SetVerified(_ context.Context, id string, verified bool) (models.UpdateResult, error) {
	return u.update(id, func(user *models.User) bool {
		changed := user.IsVerified != verified
		user.IsVerified = verified
		return changed
	})
}

func (u userStore) SetWorkStatus(_ context.Context, id string, status models.WorkStatus) (models.UpdateResult, error) {
	return u.update(id, func(user *models.User) bool {
		changed := user.WorkStatus != status
		user.WorkStatus = status
		return changed
	})
}

func (u userStore) update(id string, apply func(*models.User) bool) (models.UpdateResult, error) {
	if err := checkID(id); err != nil {
		return models.UpdateResult{}, err
	}
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for i := range u.s.users {
		if u.s.users[i].ID == id {
			res := models.UpdateResult{MatchedCount: 1}
			if apply(&u.s.users[i]) {
				res.ModifiedCount = 1
			}
			return res, nil
		}
	}
	return models.UpdateResult{}, nil
}

type payrollStore struct{ s *Store }

func (p payrollStore) CreatePayroll(_ context.Context, payroll models.Payroll) (models.Payroll, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	key := payroll.Key()
	for _, existing := range p.s.payrolls {
		if existing.Key() == key {
			return models.Payroll{}, storage.ErrAlreadyExists
		}
	}
	payroll.ID = ids.New()
	if payroll.CreatedAt.IsZero() {
		payroll.CreatedAt = p.s.now().UTC()
	}
	p.s.payrolls = append(p.s.payrolls, payroll)
	return payroll, nil
}

func (p payrollStore) PayrollExists(_ context.Context, key models.PeriodKey) (bool, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	for _, existing := range p.s.payrolls {
		if existing.Key() == key {
			return true, nil
		}
	}
	return false, nil
}

func (p payrollStore) ListPayrolls(_ context.Context, filter storage.PayrollFilter) ([]models.Payroll, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	out := make([]models.Payroll, 0, len(p.s.payrolls))
	for _, payroll := range p.s.payrolls {
		if filter.EmployeeEmail != "" && payroll.Employee.Email != filter.EmployeeEmail {
			continue
		}
		if filter.PaymentStatus != "" && payroll.PaymentStatus != filter.PaymentStatus {
			continue
		}
		out = append(out, payroll)
	}
	return out, nil
}

func (p payrollStore) UpdatePayment(_ context.Context, id string, update storage.PaymentUpdate) (models.UpdateResult, error) {
	if err := checkID(id); err != nil {
		return models.UpdateResult{}, err
	}
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	for i := range p.s.payrolls {
		payroll := &p.s.payrolls[i]
		if payroll.ID != id {
			continue
		}
		res := models.UpdateResult{MatchedCount: 1}
		if payroll.PaymentDate != update.PaymentDate || payroll.PaymentStatus != update.PaymentStatus || payroll.TransactionID != update.TransactionID {
			res.ModifiedCount = 1
		}
		payroll.PaymentDate = update.PaymentDate
		payroll.PaymentStatus = update.PaymentStatus
		payroll.TransactionID = update.TransactionID
		return res, nil
	}
	return models.UpdateResult{}, nil
}

type taskStore struct{ s *Store }

func (t taskStore) CreateTask(_ context.Context, task models.Task) (models.Task, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	task.ID = ids.New()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = t.s.now().UTC()
	}
	t.s.tasks = append(t.s.tasks, task)
	return task, nil
}

func (t taskStore) FindTask(_ context.Context, id string) (models.Task, error) {
	if err := checkID(id); err != nil {
		return models.Task{}, err
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	for _, task := range t.s.tasks {
		if task.ID == id {
			return task, nil
		}
	}
	return models.Task{}, storage.ErrNotFound
}

func (t taskStore) ListTasks(_ context.Context, userEmail string) ([]models.Task, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	out := make([]models.Task, 0, len(t.s.tasks))
	for _, task := range t.s.tasks {
		if userEmail == "" || task.UserEmail == userEmail {
			out = append(out, task)
		}
	}
	return out, nil
}

func (t taskStore) UpdateTask(_ context.Context, id string, changes models.TaskChanges) (models.UpdateResult, error) {
	if err := checkID(id); err != nil {
		return models.UpdateResult{}, err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for i := range t.s.tasks {
		task := &t.s.tasks[i]
		if task.ID != id {
			continue
		}
		res := models.UpdateResult{MatchedCount: 1}
		if task.Task != changes.Task || task.Hour != changes.Hour || task.Date != changes.Date {
			res.ModifiedCount = 1
		}
		task.Task, task.Hour, task.Date = changes.Task, changes.Hour, changes.Date
		return res, nil
	}
	return models.UpdateResult{}, nil
}

func (t taskStore) DeleteTask(_ context.Context, id string) (models.DeleteResult, error) {
	if err := checkID(id); err != nil {
		return models.DeleteResult{}, err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for i, task := range t.s.tasks {
		if task.ID == id {
			t.s.tasks = slices.Delete(t.s.tasks, i, i+1)
			return models.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return models.DeleteResult{}, nil
}
