package service

import (
	"context"
	"strings"

	"github.com/hongminglow/staffly-be/internal/apperr"
	"github.com/hongminglow/staffly-be/internal/auth"
	"github.com/hongminglow/staffly-be/internal/models"
	"github.com/hongminglow/staffly-be/internal/models/dto"
	"github.com/hongminglow/staffly-be/internal/storage"
)

const taskNotFound = "Task not found"

// Tasks manages daily work logs. With ownerOnly set, only a task's owner may
// change or delete it; otherwise any authenticated caller may.
type Tasks struct {
	store     storage.TaskStore
	self      SelfChecker
	ownerOnly bool
}

func NewTasks(store storage.TaskStore, self SelfChecker, ownerOnly bool) *Tasks {
	return &Tasks{store: store, self: self, ownerOnly: ownerOnly}
}

// Create logs a task for the caller. user_email defaults to the caller.
func (s *Tasks) Create(ctx context.Context, req dto.CreateTaskRequest) (models.InsertResult, error) {
	id, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return models.InsertResult{}, apperr.Unauthorized("Unauthorized access")
	}
	owner := normalizeEmail(req.UserEmail)
	if owner == "" {
		owner = normalizeEmail(id.Email)
	}
	if err := s.self.RequireSelf(ctx, owner); err != nil {
		return models.InsertResult{}, err
	}
	if err := validateTask(req.Task, req.Hour); err != nil {
		return models.InsertResult{}, err
	}

	created, err := s.store.CreateTask(ctx, models.Task{
		UserEmail: owner,
		Task:      strings.TrimSpace(req.Task),
		Hour:      req.Hour,
		Date:      strings.TrimSpace(req.Date),
	})
	if err != nil {
		return models.InsertResult{}, storeError(err, "")
	}
	return models.InsertResult{InsertedID: &created.ID}, nil
}

func validateTask(task string, hour float64) error {
	if strings.TrimSpace(task) == "" {
		return apperr.BadRequest("task is required")
	}
	if hour < 0 {
		return apperr.BadRequest("hour must not be negative")
	}
	return nil
}

func (s *Tasks) ListAll(ctx context.Context) ([]models.Task, error) {
	return s.list(ctx, "")
}

func (s *Tasks) ListForUser(ctx context.Context, email string) ([]models.Task, error) {
	return s.list(ctx, normalizeEmail(email))
}

func (s *Tasks) list(ctx context.Context, email string) ([]models.Task, error) {
	tasks, err := s.store.ListTasks(ctx, email)
	if err != nil {
		return nil, storeError(err, "")
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

func (s *Tasks) Update(ctx context.Context, id string, req dto.UpdateTaskRequest) (models.UpdateResult, error) {
	if err := s.authorize(ctx, id); err != nil {
		return models.UpdateResult{}, err
	}
	if err := validateTask(req.Task, req.Hour); err != nil {
		return models.UpdateResult{}, err
	}
	res, err := s.store.UpdateTask(ctx, id, models.TaskChanges{
		Task: strings.TrimSpace(req.Task),
		Hour: req.Hour,
		Date: strings.TrimSpace(req.Date),
	})
	return res, storeError(err, taskNotFound)
}

func (s *Tasks) Delete(ctx context.Context, id string) (models.DeleteResult, error) {
	if err := s.authorize(ctx, id); err != nil {
		return models.DeleteResult{}, err
	}
	res, err := s.store.DeleteTask(ctx, id)
	return res, storeError(err, taskNotFound)
}

func (s *Tasks) authorize(ctx context.Context, id string) error {
	if !s.ownerOnly {
		return nil
	}
	task, err := s.store.FindTask(ctx, id)
	if err != nil {
		return storeError(err, taskNotFound)
	}
	return s.self.RequireSelf(ctx, task.UserEmail)
}
